package utils

import (
	"time"
)

// AplicarRetardo aplica un retardo simulado y lo registra.
// Un retardo nulo o negativo no duerme.
func AplicarRetardo(operacion string, duracionMs int) {
	if duracionMs <= 0 {
		return
	}
	InfoLog.Debug("Aplicando retardo", "operación", operacion, "duración_ms", duracionMs)
	time.Sleep(time.Duration(duracionMs) * time.Millisecond)
	InfoLog.Debug("Retardo completado", "operación", operacion)
}
