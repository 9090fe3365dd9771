package kernel

import (
	"fmt"
	"time"

	"github.com/sisoputnfrba/tp-2025-1c-LosCuervosXeneizes-simulador/dispositivos"
)

// Proceso es la vista del kernel que recibe cada programa.
// Sus métodos solo deben llamarse desde la gorutina del propio programa.
type Proceso struct {
	kernel *Kernel
	pcb    *PCB
}

func (p *Proceso) PID() int {
	return p.pcb.PID
}

func (p *Proceso) Nombre() string {
	return p.pcb.Nombre
}

// TamPagina devuelve el tamaño de página configurado, la unidad de AsignarMemoria y LiberarMemoria
func (p *Proceso) TamPagina() int {
	return p.kernel.config.TamPagina
}

// BuscarPID devuelve el PID de un proceso vivo por nombre o PIDNinguno
func (p *Proceso) BuscarPID(nombre string) int {
	return p.kernel.BuscarPIDPorNombre(nombre)
}

func (p *Proceso) Crear(nombre string, programa Programa) int {
	return p.kernel.CrearProceso(nombre, programa)
}

func (p *Proceso) CrearConPrioridad(nombre string, programa Programa, prioridad Prioridad) int {
	return p.kernel.CrearProcesoConPrioridad(nombre, programa, prioridad)
}

// Enviar no espera confirmación; un destino inexistente descarta el mensaje
func (p *Proceso) Enviar(destino int, tipo int, datos []byte) {
	k := p.kernel
	k.mutex.Lock()
	defer k.mutex.Unlock()

	if k.detenido {
		return
	}
	k.enviarMensaje(p.pcb.PID, MensajeKernel{Destino: destino, Tipo: tipo, Datos: datos})
}

// Recibir devuelve el próximo mensaje, bloqueando si la cola está vacía.
// Devuelve false si el proceso ya no existe.
func (p *Proceso) Recibir() (MensajeKernel, bool) {
	return p.kernel.recibir(p.pcb)
}

func (p *Proceso) Dormir(duracion time.Duration) {
	p.kernel.dormir(p.pcb, duracion)
}

// Ceder devuelve el procesador; el proceso vuelve al final de su cola
func (p *Proceso) Ceder() {
	p.kernel.ceder(p.pcb)
}

// Salir termina el proceso; no retorna
func (p *Proceso) Salir() {
	p.kernel.salir(p.pcb)
}

// AsignarMemoria devuelve la dirección virtual de un rango alineado a página
func (p *Proceso) AsignarMemoria(tamanio int) (int, error) {
	return p.kernel.asignarMemoria(p.pcb, tamanio)
}

func (p *Proceso) LiberarMemoria(direccion int, tamanio int) error {
	return p.kernel.liberarMemoria(p.pcb, direccion, tamanio)
}

func (p *Proceso) Leer(direccion int) (byte, error) {
	return p.kernel.leer(p.pcb, direccion)
}

func (p *Proceso) Escribir(direccion int, valor byte) error {
	return p.kernel.escribir(p.pcb, direccion, valor)
}

// Abrir abre un dispositivo por el VFS; el descriptor queda asociado al proceso
func (p *Proceso) Abrir(nombre string) (int, error) {
	k := p.kernel
	k.mutex.Lock()
	defer k.mutex.Unlock()

	if err := k.verificarActual(p.pcb); err != nil {
		return -1, err
	}
	id, err := k.vfs.Abrir(nombre)
	if err != nil {
		return -1, err
	}
	p.pcb.descriptores[id] = struct{}{}
	return id, nil
}

func (p *Proceso) Cerrar(id int) error {
	k := p.kernel
	k.mutex.Lock()
	defer k.mutex.Unlock()

	if err := p.verificarDescriptor(id); err != nil {
		return err
	}
	delete(p.pcb.descriptores, id)
	return k.vfs.Cerrar(id)
}

func (p *Proceso) LeerDispositivo(id int, n int) ([]byte, error) {
	k := p.kernel
	k.mutex.Lock()
	defer k.mutex.Unlock()

	if err := p.verificarDescriptor(id); err != nil {
		return nil, err
	}
	return k.vfs.Leer(id, n)
}

func (p *Proceso) EscribirDispositivo(id int, datos []byte) (int, error) {
	k := p.kernel
	k.mutex.Lock()
	defer k.mutex.Unlock()

	if err := p.verificarDescriptor(id); err != nil {
		return 0, err
	}
	return k.vfs.Escribir(id, datos)
}

func (p *Proceso) Posicionar(id int, offset int64) error {
	k := p.kernel
	k.mutex.Lock()
	defer k.mutex.Unlock()

	if err := p.verificarDescriptor(id); err != nil {
		return err
	}
	return k.vfs.Posicionar(id, offset)
}

// verificarDescriptor impide usar descriptores de otros procesos o del swap
func (p *Proceso) verificarDescriptor(id int) error {
	if err := p.kernel.verificarActual(p.pcb); err != nil {
		return err
	}
	if _, propio := p.pcb.descriptores[id]; !propio {
		return fmt.Errorf("%w: %d no pertenece al PID %d", dispositivos.ErrDescriptorInvalido, id, p.pcb.PID)
	}
	return nil
}
