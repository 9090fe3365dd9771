package kernel

import (
	"fmt"
	"runtime"
	"time"

	"github.com/sisoputnfrba/tp-2025-1c-LosCuervosXeneizes-simulador/utils"
)

// Programa es el código que ejecuta un proceso
type Programa func(p *Proceso)

// lanzar crea la gorutina del proceso, que no ejecuta nada hasta recibir su turno
func (k *Kernel) lanzar(pcb *PCB, programa Programa) {
	go func() {
		k.esperarTurno(pcb)
		defer k.finalizarGorutina(pcb)

		programa(&Proceso{kernel: k, pcb: pcb})
	}()
}

// finalizarGorutina termina el proceso cuando su programa retorna o entra en pánico
func (k *Kernel) finalizarGorutina(pcb *PCB) {
	if r := recover(); r != nil {
		utils.ErrorLog.Error(fmt.Sprintf("(%d) - Error en el proceso", pcb.PID), "panic", r)
	}

	k.mutex.Lock()
	defer k.mutex.Unlock()
	k.terminar(pcb)
}

// esperarTurno bloquea la gorutina hasta que el proceso vuelva a ser el actual.
// Si mientras tanto se detuvo el kernel la gorutina termina.
func (k *Kernel) esperarTurno(pcb *PCB) {
	pcb.turno.Wait()

	k.mutex.Lock()
	detenido := k.detenido
	k.mutex.Unlock()
	if detenido {
		runtime.Goexit()
	}
}

// cambiarTarea elige el próximo proceso. Requiere el mutex tomado.
func (k *Kernel) cambiarTarea() {
	k.despertarDormidos()
	k.tlb.Limpiar()

	if k.actual != nil {
		k.encolar(k.actual)
		k.actual = nil
	}

	siguiente := k.desencolar()
	if siguiente == nil {
		utils.InfoLog.Debug("Sin procesos listos, kernel ocioso")
		k.programarDespertador()
		return
	}

	k.actual = siguiente
	siguiente.CambiarEstado(EstadoExec)
	siguiente.turno.Signal()
}

func (k *Kernel) encolar(pcb *PCB) {
	pcb.CambiarEstado(EstadoReady)
	k.colas[pcb.Prioridad] = append(k.colas[pcb.Prioridad], pcb)
}

// desencolar toma el primero de la cola de mayor prioridad no vacía
func (k *Kernel) desencolar() *PCB {
	for p := range k.colas {
		if len(k.colas[p]) == 0 {
			continue
		}
		pcb := k.colas[p][0]
		k.colas[p][0] = nil
		k.colas[p] = k.colas[p][1:]
		return pcb
	}
	return nil
}

func (k *Kernel) despertarDormidos() {
	ahora := time.Now()
	quedan := k.dormidos[:0]
	for _, pcb := range k.dormidos {
		if pcb.debeDespertar(ahora) {
			pcb.limpiarDespertar()
			k.encolar(pcb)
			continue
		}
		quedan = append(quedan, pcb)
	}
	clear(k.dormidos[len(quedan):])
	k.dormidos = quedan
}

// programarDespertador arma un timer para el vencimiento más próximo cuando el kernel queda ocioso
func (k *Kernel) programarDespertador() {
	if len(k.dormidos) == 0 {
		return
	}

	proximo := k.dormidos[0].despertar
	for _, pcb := range k.dormidos[1:] {
		if pcb.despertar.Before(proximo) {
			proximo = pcb.despertar
		}
	}

	if k.despertador != nil {
		k.despertador.Stop()
	}
	k.despertador = time.AfterFunc(time.Until(proximo), k.alVencerDespertador)
}

func (k *Kernel) alVencerDespertador() {
	k.mutex.Lock()
	defer k.mutex.Unlock()

	if k.detenido || k.actual != nil {
		return
	}
	k.cambiarTarea()
}

// verificarActual exige que el pedido venga del proceso en ejecución
func (k *Kernel) verificarActual(pcb *PCB) error {
	if k.detenido {
		return ErrKernelDetenido
	}
	if k.actual != pcb {
		return fmt.Errorf("%w: PID %d", ErrProcesoNoActual, pcb.PID)
	}
	return nil
}

// abandonarSiDetenido corta la gorutina del llamador si el kernel ya se detuvo.
// Requiere el mutex tomado y lo libera antes de cortar.
func (k *Kernel) abandonarSiDetenido() {
	if k.detenido {
		k.mutex.Unlock()
		runtime.Goexit()
	}
}

func (k *Kernel) ceder(pcb *PCB) {
	k.mutex.Lock()
	k.abandonarSiDetenido()
	if err := k.verificarActual(pcb); err != nil {
		k.mutex.Unlock()
		utils.InfoLog.Debug("Ceder ignorado", "pid", pcb.PID, "error", err)
		return
	}
	k.cambiarTarea()
	k.mutex.Unlock()

	k.esperarTurno(pcb)
}

func (k *Kernel) dormir(pcb *PCB, duracion time.Duration) {
	k.mutex.Lock()
	k.abandonarSiDetenido()
	if err := k.verificarActual(pcb); err != nil {
		k.mutex.Unlock()
		utils.InfoLog.Debug("Dormir ignorado", "pid", pcb.PID, "error", err)
		return
	}

	pcb.dormirHasta(time.Now().Add(duracion))
	pcb.CambiarEstado(EstadoSleeping)
	k.dormidos = append(k.dormidos, pcb)
	k.actual = nil
	k.cambiarTarea()
	k.mutex.Unlock()

	k.esperarTurno(pcb)
}

// salir termina el proceso actual y corta su gorutina
func (k *Kernel) salir(pcb *PCB) {
	k.mutex.Lock()
	k.terminar(pcb)
	k.mutex.Unlock()

	runtime.Goexit()
}

// terminar retira el proceso y, si era el actual, elige otro. Requiere el mutex tomado.
func (k *Kernel) terminar(pcb *PCB) {
	if pcb.Estado == EstadoExit {
		return
	}
	k.retirar(pcb)
	k.notificarCambio()

	if k.actual == pcb {
		k.actual = nil
		k.cambiarTarea()
	}
}

// retirar libera los marcos y descriptores del proceso y lo quita de toda estructura del kernel.
// Las páginas en swap no se recuperan.
func (k *Kernel) retirar(pcb *PCB) {
	if pcb.Estado == EstadoExit {
		return
	}

	k.asignador.Liberar(pcb.tabla.MarcosResidentes()...)
	for id := range pcb.descriptores {
		if err := k.vfs.Cerrar(id); err != nil {
			utils.ErrorLog.Error("Error cerrando descriptor", "pid", pcb.PID, "descriptor", id, "error", err)
		}
	}
	pcb.descriptores = make(map[int]struct{})

	delete(k.procesos, pcb.PID)
	delete(k.esperandoMensaje, pcb.PID)
	for p := range k.colas {
		k.colas[p] = quitarPCB(k.colas[p], pcb)
	}
	k.dormidos = quitarPCB(k.dormidos, pcb)

	pcb.CambiarEstado(EstadoExit)
	utils.InfoLog.Info(fmt.Sprintf("(%d) - Finaliza el proceso", pcb.PID), pcb.Metricas.LogArgs()...)
}

func quitarPCB(lista []*PCB, pcb *PCB) []*PCB {
	for i, p := range lista {
		if p == pcb {
			return append(lista[:i], lista[i+1:]...)
		}
	}
	return lista
}
