package programas

import (
	"errors"
	"fmt"

	"github.com/sisoputnfrba/tp-2025-1c-LosCuervosXeneizes-simulador/kernel"
	"github.com/sisoputnfrba/tp-2025-1c-LosCuervosXeneizes-simulador/utils"
)

var ErrVerificacion = errors.New("el valor leído no coincide con el escrito")

// PruebaMemoria ejercita asignación, lectura, escritura y liberación en un solo proceso
func PruebaMemoria(p *kernel.Proceso) {
	if err := EjecutarPruebaMemoria(p); err != nil {
		utils.ErrorLog.Error("Prueba de memoria fallida", "pid", p.PID(), "error", err)
		return
	}
	utils.InfoLog.Info("Prueba de memoria completa", "pid", p.PID(), "nombre", p.Nombre())
}

func EjecutarPruebaMemoria(p *kernel.Proceso) error {
	tamPagina := p.TamPagina()
	direccion1, err := p.AsignarMemoria(tamPagina)
	if err != nil {
		return fmt.Errorf("no se pudo asignar memoria: %w", err)
	}
	utils.InfoLog.Info("Memoria asignada", "bytes", tamPagina, "direccion", direccion1)

	if err := escribirYVerificar(p, direccion1, 10, 0); err != nil {
		return err
	}

	direccion2, err := p.AsignarMemoria(2 * tamPagina)
	if err != nil {
		return fmt.Errorf("no se pudo asignar más memoria: %w", err)
	}
	if err := escribirYVerificar(p, direccion2, 10, 100); err != nil {
		return err
	}

	// Las dos asignaciones no se pisan
	if err := verificar(p, direccion1, 10, 0); err != nil {
		return err
	}
	if err := p.LiberarMemoria(direccion2, 2*tamPagina); err != nil {
		return fmt.Errorf("no se pudo liberar la segunda asignación: %w", err)
	}

	fuera := direccion1 + tamPagina + tamPagina/2
	if _, err := p.Leer(fuera); !errors.Is(err, kernel.ErrAccesoInvalido) {
		return fmt.Errorf("se esperaba acceso inválido fuera de la asignación, se obtuvo %v", err)
	}
	utils.InfoLog.Info("Acceso fuera de la asignación rechazado", "direccion", fuera)

	if err := p.LiberarMemoria(direccion1, tamPagina); err != nil {
		return fmt.Errorf("no se pudo liberar la primera asignación: %w", err)
	}
	if _, err := p.Leer(direccion1); !errors.Is(err, kernel.ErrAccesoInvalido) {
		return fmt.Errorf("se esperaba acceso inválido sobre memoria liberada, se obtuvo %v", err)
	}
	utils.InfoLog.Info("Acceso a memoria liberada rechazado", "direccion", direccion1)
	return nil
}

func escribirYVerificar(p *kernel.Proceso, direccion int, cantidad int, base int) error {
	for i := 0; i < cantidad; i++ {
		if err := p.Escribir(direccion+i, byte(base+i)); err != nil {
			return fmt.Errorf("error escribiendo dirección %d: %w", direccion+i, err)
		}
	}
	return verificar(p, direccion, cantidad, base)
}

func verificar(p *kernel.Proceso, direccion int, cantidad int, base int) error {
	for i := 0; i < cantidad; i++ {
		valor, err := p.Leer(direccion + i)
		if err != nil {
			return fmt.Errorf("error leyendo dirección %d: %w", direccion+i, err)
		}
		if valor != byte(base+i) {
			return fmt.Errorf("%w: dirección %d, esperado %d, leído %d", ErrVerificacion, direccion+i, byte(base+i), valor)
		}
	}
	return nil
}
