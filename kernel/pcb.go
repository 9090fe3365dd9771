package kernel

import (
	"fmt"
	"time"

	"github.com/sisoputnfrba/tp-2025-1c-LosCuervosXeneizes-simulador/memoria"
	"github.com/sisoputnfrba/tp-2025-1c-LosCuervosXeneizes-simulador/utils"
)

const (
	EstadoNew            = "NEW"
	EstadoReady          = "READY"
	EstadoExec           = "EXEC"
	EstadoSleeping       = "SLEEPING"
	EstadoWaitingMessage = "WAITING_MESSAGE"
	EstadoExit           = "EXIT"
)

const maxTimeoutsConsecutivos = 5

type PCB struct {
	PID       int
	Nombre    string
	Prioridad Prioridad
	Estado    string

	// Cero si el proceso no duerme
	despertar            time.Time
	timeoutsConsecutivos int

	mensajes     []MensajeKernel
	tabla        *memoria.TablaPaginas
	descriptores map[int]struct{}
	Metricas     memoria.MetricasProceso

	// Solo la gorutina del proceso actual tiene el turno
	turno *utils.Semaforo
}

func NuevoPCB(pid int, nombre string, prioridad Prioridad, paginasVirtuales int) *PCB {
	pcb := &PCB{
		PID:          pid,
		Nombre:       nombre,
		Prioridad:    prioridad,
		Estado:       EstadoNew,
		tabla:        memoria.NewTablaPaginas(paginasVirtuales),
		descriptores: make(map[int]struct{}),
		turno:        utils.NewSemaforo(1, 0),
	}

	utils.InfoLog.Info(fmt.Sprintf("(%d) - Se crea el proceso - Estado: %s", pcb.PID, pcb.Estado),
		"nombre", nombre, "prioridad", prioridad.String())
	return pcb
}

func (pcb *PCB) CambiarEstado(nuevoEstado string) {
	if pcb.Estado == nuevoEstado {
		return
	}
	estadoAnterior := pcb.Estado
	pcb.Estado = nuevoEstado
	utils.InfoLog.Info(fmt.Sprintf("(%d) - Pasa del estado %s al estado %s", pcb.PID, estadoAnterior, nuevoEstado))
}

// Tabla expone la tabla de páginas para las estrategias de selección de víctima
func (pcb *PCB) Tabla() *memoria.TablaPaginas {
	return pcb.tabla
}

// IncrementarTimeouts cuenta un fin de quantum; pasados cinco seguidos baja la prioridad.
// El planificador cooperativo no lo invoca.
func (pcb *PCB) IncrementarTimeouts() {
	pcb.timeoutsConsecutivos++
	if pcb.timeoutsConsecutivos > maxTimeoutsConsecutivos {
		anterior := pcb.Prioridad
		pcb.Prioridad = pcb.Prioridad.degradar()
		pcb.timeoutsConsecutivos = 0
		utils.InfoLog.Debug("Prioridad degradada", "pid", pcb.PID, "anterior", anterior.String(), "nueva", pcb.Prioridad.String())
	}
}

func (pcb *PCB) dormirHasta(momento time.Time) {
	pcb.despertar = momento
}

func (pcb *PCB) debeDespertar(ahora time.Time) bool {
	return !pcb.despertar.IsZero() && !ahora.Before(pcb.despertar)
}

func (pcb *PCB) limpiarDespertar() {
	pcb.despertar = time.Time{}
}

func (pcb *PCB) agregarMensaje(m MensajeKernel) {
	pcb.mensajes = append(pcb.mensajes, m)
}

func (pcb *PCB) siguienteMensaje() (MensajeKernel, bool) {
	if len(pcb.mensajes) == 0 {
		return MensajeKernel{}, false
	}
	m := pcb.mensajes[0]
	pcb.mensajes[0] = MensajeKernel{}
	pcb.mensajes = pcb.mensajes[1:]
	return m.Copiar(), true
}

func (pcb *PCB) String() string {
	return fmt.Sprintf("PCB{PID: %d, Nombre: %s, Prioridad: %s, Estado: %s}",
		pcb.PID, pcb.Nombre, pcb.Prioridad, pcb.Estado)
}
