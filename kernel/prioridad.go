package kernel

import "fmt"

type Prioridad int

const (
	PrioridadTiempoReal Prioridad = iota
	PrioridadInteractiva
	PrioridadSegundoPlano

	cantidadPrioridades
)

func (p Prioridad) String() string {
	switch p {
	case PrioridadTiempoReal:
		return "REALTIME"
	case PrioridadInteractiva:
		return "INTERACTIVE"
	case PrioridadSegundoPlano:
		return "BACKGROUND"
	default:
		return fmt.Sprintf("Prioridad(%d)", int(p))
	}
}

func (p Prioridad) valida() bool {
	return p >= PrioridadTiempoReal && p < cantidadPrioridades
}

// ParsePrioridad acepta los nombres que devuelve String
func ParsePrioridad(nombre string) (Prioridad, error) {
	for p := PrioridadTiempoReal; p < cantidadPrioridades; p++ {
		if p.String() == nombre {
			return p, nil
		}
	}
	return PrioridadInteractiva, fmt.Errorf("%w: prioridad %q", ErrParametroInvalido, nombre)
}

// degradar baja un nivel, BACKGROUND queda igual
func (p Prioridad) degradar() Prioridad {
	if p < PrioridadSegundoPlano {
		return p + 1
	}
	return p
}
