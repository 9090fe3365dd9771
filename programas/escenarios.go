package programas

import (
	"fmt"
	"sort"
	"time"

	"github.com/sisoputnfrba/tp-2025-1c-LosCuervosXeneizes-simulador/kernel"
	"github.com/sisoputnfrba/tp-2025-1c-LosCuervosXeneizes-simulador/utils"
)

// Escenario crea los procesos iniciales de una simulación con la prioridad indicada
type Escenario func(k *kernel.Kernel, prioridad kernel.Prioridad)

var escenarios = map[string]Escenario{
	"PingPong": func(k *kernel.Kernel, prioridad kernel.Prioridad) {
		k.CrearProcesoConPrioridad(NombrePong, Pong, prioridad)
		// Pong no termina, la simulación se detiene cuando Ping completa sus intercambios
		k.CrearProcesoConPrioridad(NombrePing, NuevoPing(time.Second, 5, func(completados int) {
			utils.InfoLog.Info("Intercambios completados, deteniendo simulación", "intercambios", completados)
			k.Detener()
		}), prioridad)
	},
	"PruebaMemoria": func(k *kernel.Kernel, prioridad kernel.Prioridad) {
		k.CrearProcesoConPrioridad("PruebaMemoria", PruebaMemoria, prioridad)
	},
	"PruebaMemoriaVirtual": func(k *kernel.Kernel, prioridad kernel.Prioridad) {
		k.CrearProcesoConPrioridad("PruebaMemoriaVirtual", PruebaMemoriaVirtual, prioridad)
	},
}

func BuscarEscenario(nombre string) (Escenario, error) {
	escenario, existe := escenarios[nombre]
	if !existe {
		return nil, fmt.Errorf("no existe el programa %q, disponibles: %v", nombre, NombresEscenarios())
	}
	return escenario, nil
}

func NombresEscenarios() []string {
	nombres := make([]string, 0, len(escenarios))
	for nombre := range escenarios {
		nombres = append(nombres, nombre)
	}
	sort.Strings(nombres)
	return nombres
}
