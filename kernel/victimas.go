package kernel

import (
	"fmt"
	"math/rand"
)

// SeleccionVictima elige una página residente para desalojar.
// Recibe los candidatos en orden de prioridad, seguidos por los dormidos.
type SeleccionVictima interface {
	Elegir(candidatos []*PCB, rng *rand.Rand) (pcb *PCB, pagina int, ok bool)
}

func NuevaSeleccionVictima(algoritmo string) (SeleccionVictima, error) {
	switch algoritmo {
	case AlgoritmoAleatorio, "":
		return MuestreoAleatorio{}, nil
	case AlgoritmoExhaustivo:
		return BarridoExhaustivo{}, nil
	case AlgoritmoLRU:
		return MenosRecienteUsada{}, nil
	default:
		return nil, fmt.Errorf("%w: algoritmo de víctima %q", ErrConfigInvalida, algoritmo)
	}
}

// MuestreoAleatorio sortea tantos procesos como candidatos haya, con reposición,
// y desaloja la primera página residente del primero que tenga alguna.
// Puede fallar aunque exista una víctima.
type MuestreoAleatorio struct{}

func (MuestreoAleatorio) Elegir(candidatos []*PCB, rng *rand.Rand) (*PCB, int, bool) {
	for range candidatos {
		pcb := candidatos[rng.Intn(len(candidatos))]
		if pagina, _, ok := pcb.Tabla().PrimeraResidente(); ok {
			return pcb, pagina, true
		}
	}
	return nil, -1, false
}

// BarridoExhaustivo recorre los candidatos en orden y falla solo si ninguno tiene páginas residentes
type BarridoExhaustivo struct{}

func (BarridoExhaustivo) Elegir(candidatos []*PCB, _ *rand.Rand) (*PCB, int, bool) {
	for _, pcb := range candidatos {
		if pagina, _, ok := pcb.Tabla().PrimeraResidente(); ok {
			return pcb, pagina, true
		}
	}
	return nil, -1, false
}

// MenosRecienteUsada elige la página residente con la traducción más antigua.
// Los aciertos de TLB no actualizan el tick.
type MenosRecienteUsada struct{}

func (MenosRecienteUsada) Elegir(candidatos []*PCB, _ *rand.Rand) (*PCB, int, bool) {
	var (
		victima *PCB
		pagina  = -1
		minimo  uint64
	)
	for _, pcb := range candidatos {
		tabla := pcb.Tabla()
		for p := 0; p < tabla.Cantidad(); p++ {
			entrada := tabla.Entrada(p)
			if entrada == nil || !entrada.Residente() {
				continue
			}
			if victima == nil || entrada.UltimoAcceso < minimo {
				victima, pagina, minimo = pcb, p, entrada.UltimoAcceso
			}
		}
	}
	return victima, pagina, victima != nil
}
