package memoria

import (
	"errors"
	"fmt"

	"github.com/sisoputnfrba/tp-2025-1c-LosCuervosXeneizes-simulador/dispositivos"
	"github.com/sisoputnfrba/tp-2025-1c-LosCuervosXeneizes-simulador/utils"
)

var ErrSwapCorto = errors.New("lectura o escritura incompleta en swap")

// Swap guarda páginas en slots de un único descriptor.
// Los slots se asignan en orden creciente y nunca se reutilizan.
type Swap struct {
	dispositivo dispositivos.Dispositivo
	descriptor  int
	tamPagina   int
	retardoMs   int
	proximoSlot int
}

// AbrirSwap abre el archivo de swap. Si no existe lo crea, lo cierra y lo vuelve a abrir.
func AbrirSwap(d dispositivos.Dispositivo, nombre string, tamPagina int, retardoMs int) (*Swap, error) {
	descriptor, err := d.Abrir(nombre)
	if err != nil {
		utils.InfoLog.Debug("Archivo de swap inexistente, se crea", "archivo", nombre, "error", err)

		creado, errCrear := d.Abrir(nombre + dispositivos.SufijoCrear)
		if errCrear != nil {
			return nil, fmt.Errorf("error al crear archivo de swap %s: %w", nombre, errCrear)
		}
		if errCerrar := d.Cerrar(creado); errCerrar != nil {
			return nil, fmt.Errorf("error al cerrar archivo de swap %s: %w", nombre, errCerrar)
		}
		descriptor, err = d.Abrir(nombre)
		if err != nil {
			return nil, fmt.Errorf("error al reabrir archivo de swap %s: %w", nombre, err)
		}
	}

	utils.InfoLog.Info("Swap abierto", "archivo", nombre, "descriptor", descriptor)
	return &Swap{
		dispositivo: d,
		descriptor:  descriptor,
		tamPagina:   tamPagina,
		retardoMs:   retardoMs,
	}, nil
}

// Guardar escribe la página en un slot nuevo y devuelve su número
func (s *Swap) Guardar(contenido []byte) (int, error) {
	utils.AplicarRetardo("swap", s.retardoMs)

	slot := s.proximoSlot
	s.proximoSlot++

	if err := s.dispositivo.Posicionar(s.descriptor, int64(slot)*int64(s.tamPagina)); err != nil {
		return SinDisco, fmt.Errorf("error posicionando slot %d: %w", slot, err)
	}
	escritos, err := s.dispositivo.Escribir(s.descriptor, contenido[:s.tamPagina])
	if err != nil {
		return SinDisco, fmt.Errorf("error escribiendo slot %d: %w", slot, err)
	}
	if escritos != s.tamPagina {
		return SinDisco, fmt.Errorf("%w: slot %d, %d de %d bytes", ErrSwapCorto, slot, escritos, s.tamPagina)
	}
	return slot, nil
}

// Cargar copia el contenido del slot en destino
func (s *Swap) Cargar(slot int, destino []byte) error {
	utils.AplicarRetardo("swap", s.retardoMs)

	if slot < 0 || slot >= s.proximoSlot {
		return fmt.Errorf("%w: slot %d inexistente", ErrSwapCorto, slot)
	}
	if err := s.dispositivo.Posicionar(s.descriptor, int64(slot)*int64(s.tamPagina)); err != nil {
		return fmt.Errorf("error posicionando slot %d: %w", slot, err)
	}
	datos, err := s.dispositivo.Leer(s.descriptor, s.tamPagina)
	if err != nil {
		return fmt.Errorf("error leyendo slot %d: %w", slot, err)
	}
	if len(datos) != s.tamPagina {
		return fmt.Errorf("%w: slot %d, %d de %d bytes", ErrSwapCorto, slot, len(datos), s.tamPagina)
	}
	copy(destino, datos)
	return nil
}

// SlotsUsados devuelve cuántos slots se escribieron desde que se abrió
func (s *Swap) SlotsUsados() int {
	return s.proximoSlot
}

func (s *Swap) Cerrar() error {
	return s.dispositivo.Cerrar(s.descriptor)
}
