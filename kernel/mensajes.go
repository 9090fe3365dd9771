package kernel

import (
	"github.com/sisoputnfrba/tp-2025-1c-LosCuervosXeneizes-simulador/utils"
)

// enviarMensaje entrega una copia al destino y lo despierta si esperaba un mensaje.
// Nunca replanifica al emisor; solo elige proceso si el kernel estaba ocioso.
// Requiere el mutex tomado.
func (k *Kernel) enviarMensaje(emisor int, m MensajeKernel) {
	copia := m.Copiar()
	copia.Emisor = emisor

	destino, existe := k.procesos[copia.Destino]
	if !existe {
		utils.InfoLog.Debug("Mensaje descartado, destino inexistente", "emisor", emisor, "destino", copia.Destino, "tipo", copia.Tipo)
		return
	}

	destino.agregarMensaje(copia)
	utils.InfoLog.Debug("Mensaje entregado", "emisor", emisor, "destino", destino.PID, "tipo", copia.Tipo, "bytes", len(copia.Datos))

	if _, esperando := k.esperandoMensaje[destino.PID]; esperando {
		delete(k.esperandoMensaje, destino.PID)
		k.encolar(destino)
	}

	if k.actual == nil && !k.detenido {
		k.cambiarTarea()
	}
}

// recibir devuelve el próximo mensaje; si no hay ninguno bloquea al proceso hasta que llegue
func (k *Kernel) recibir(pcb *PCB) (MensajeKernel, bool) {
	k.mutex.Lock()
	k.abandonarSiDetenido()
	if err := k.verificarActual(pcb); err != nil {
		k.mutex.Unlock()
		utils.InfoLog.Debug("Recibir ignorado", "pid", pcb.PID, "error", err)
		return MensajeKernel{}, false
	}

	if m, ok := pcb.siguienteMensaje(); ok {
		k.mutex.Unlock()
		return m, true
	}

	pcb.CambiarEstado(EstadoWaitingMessage)
	k.esperandoMensaje[pcb.PID] = pcb
	k.actual = nil
	k.cambiarTarea()
	k.mutex.Unlock()

	k.esperarTurno(pcb)

	k.mutex.Lock()
	defer k.mutex.Unlock()
	if _, vivo := k.procesos[pcb.PID]; !vivo {
		return MensajeKernel{}, false
	}
	return pcb.siguienteMensaje()
}
