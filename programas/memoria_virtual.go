package programas

import (
	"fmt"

	"github.com/sisoputnfrba/tp-2025-1c-LosCuervosXeneizes-simulador/kernel"
	"github.com/sisoputnfrba/tp-2025-1c-LosCuervosXeneizes-simulador/utils"
)

// PaginasPruebaVirtual es la cantidad de páginas de 1 KiB que usa PruebaMemoriaVirtual
const PaginasPruebaVirtual = 50

// PruebaMemoriaVirtual asigna página por página, escribe una marca en cada una,
// libera la mitad, vuelve a asignar y verifica todo
func PruebaMemoriaVirtual(p *kernel.Proceso) {
	if err := EjecutarPruebaMemoriaVirtual(p); err != nil {
		utils.ErrorLog.Error("Prueba de memoria virtual fallida", "pid", p.PID(), "error", err)
		return
	}
	utils.InfoLog.Info("Prueba de memoria virtual completa", "pid", p.PID(), "nombre", p.Nombre())
}

func EjecutarPruebaMemoriaVirtual(p *kernel.Proceso) error {
	tamPagina := p.TamPagina()
	direcciones := make([]int, PaginasPruebaVirtual)
	for i := range direcciones {
		direccion, err := p.AsignarMemoria(tamPagina)
		if err != nil {
			return fmt.Errorf("no se pudo asignar la página %d: %w", i, err)
		}
		direcciones[i] = direccion
	}
	utils.InfoLog.Info("Páginas asignadas", "cantidad", PaginasPruebaVirtual)

	for i, direccion := range direcciones {
		if err := escribirYVerificar(p, direccion, 10, i*10); err != nil {
			return fmt.Errorf("página %d: %w", i, err)
		}
	}
	for i, direccion := range direcciones {
		if err := verificar(p, direccion, 10, i*10); err != nil {
			return fmt.Errorf("página %d: %w", i, err)
		}
	}

	mitad := PaginasPruebaVirtual / 2
	for i := 0; i < mitad; i++ {
		if err := p.LiberarMemoria(direcciones[i], tamPagina); err != nil {
			return fmt.Errorf("no se pudo liberar la página %d: %w", i, err)
		}
	}
	utils.InfoLog.Info("Mitad de las páginas liberadas", "cantidad", mitad)

	nuevas := make([]int, mitad)
	for i := range nuevas {
		direccion, err := p.AsignarMemoria(tamPagina)
		if err != nil {
			return fmt.Errorf("no se pudo asignar la página nueva %d: %w", i, err)
		}
		nuevas[i] = direccion
		if err := escribirYVerificar(p, direccion, 10, 100+i*10); err != nil {
			return fmt.Errorf("página nueva %d: %w", i, err)
		}
	}

	for i := mitad; i < PaginasPruebaVirtual; i++ {
		if err := verificar(p, direcciones[i], 10, i*10); err != nil {
			return fmt.Errorf("página original %d: %w", i, err)
		}
	}
	for i, direccion := range nuevas {
		if err := verificar(p, direccion, 10, 100+i*10); err != nil {
			return fmt.Errorf("página nueva %d: %w", i, err)
		}
	}

	for i := mitad; i < PaginasPruebaVirtual; i++ {
		p.LiberarMemoria(direcciones[i], tamPagina)
	}
	for _, direccion := range nuevas {
		p.LiberarMemoria(direccion, tamPagina)
	}
	return nil
}
