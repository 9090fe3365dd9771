package kernel

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/sisoputnfrba/tp-2025-1c-LosCuervosXeneizes-simulador/dispositivos"
	"github.com/sisoputnfrba/tp-2025-1c-LosCuervosXeneizes-simulador/memoria"
	"github.com/sisoputnfrba/tp-2025-1c-LosCuervosXeneizes-simulador/utils"
)

// Kernel es el contexto de una simulación. Todo su estado se protege con mutex;
// solo cambiarTarea modifica el proceso actual.
type Kernel struct {
	config Config
	mutex  sync.Mutex

	colas            [cantidadPrioridades][]*PCB
	dormidos         []*PCB
	esperandoMensaje map[int]*PCB
	procesos         map[int]*PCB
	actual           *PCB
	proximoPID       int
	detenido         bool

	rng         *rand.Rand
	tick        uint64
	despertador *time.Timer

	// Se cierra y se reemplaza cada vez que termina un proceso
	cambios chan struct{}

	asignador *memoria.Asignador
	memoria   *memoria.MemoriaFisica
	tlb       *memoria.TLB
	swap      *memoria.Swap
	vfs       *dispositivos.VFS
	victima   SeleccionVictima
}

// Nuevo valida la configuración, arma la memoria y abre el swap
func Nuevo(config Config) (*Kernel, error) {
	if err := config.Validar(); err != nil {
		return nil, err
	}

	semilla := config.Semilla
	if semilla == 0 {
		semilla = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(semilla))

	victima, err := NuevaSeleccionVictima(config.AlgoritmoVictima)
	if err != nil {
		return nil, err
	}

	vfs := dispositivos.NewVFS()
	swap, err := memoria.AbrirSwap(vfs, config.SwapfilePath, config.TamPagina, config.RetardoSwap)
	if err != nil {
		return nil, fmt.Errorf("no se pudo iniciar el kernel: %w", err)
	}

	k := &Kernel{
		config:           config,
		esperandoMensaje: make(map[int]*PCB),
		procesos:         make(map[int]*PCB),
		rng:              rng,
		cambios:          make(chan struct{}),
		asignador:        memoria.NewAsignador(config.cantidadMarcos(), rng),
		memoria:          memoria.NewMemoriaFisica(config.TamMemoria, config.TamPagina),
		tlb:              memoria.NewTLB(config.EntradasTLB, rng),
		swap:             swap,
		vfs:              vfs,
		victima:          victima,
	}

	utils.InfoLog.Info("Kernel inicializado",
		"marcos", config.cantidadMarcos(),
		"tam_pagina", config.TamPagina,
		"paginas_virtuales", config.PaginasVirtuales,
		"entradas_tlb", config.EntradasTLB,
		"algoritmo_victima", config.AlgoritmoVictima)
	return k, nil
}

// Detener finaliza todos los procesos, despierta sus gorutinas y cierra el swap.
// Se puede llamar más de una vez.
func (k *Kernel) Detener() {
	k.mutex.Lock()
	if k.detenido {
		k.mutex.Unlock()
		return
	}
	k.detenido = true
	if k.despertador != nil {
		k.despertador.Stop()
	}
	for _, pcb := range k.procesos {
		k.retirar(pcb)
		pcb.turno.Signal()
	}
	k.actual = nil
	k.notificarCambio()
	k.mutex.Unlock()

	if err := k.swap.Cerrar(); err != nil {
		utils.ErrorLog.Error("Error cerrando swap", "error", err)
	}
	utils.InfoLog.Info("Kernel detenido")
}

// UsarSeleccionVictima reemplaza la estrategia de reemplazo configurada
func (k *Kernel) UsarSeleccionVictima(s SeleccionVictima) {
	k.mutex.Lock()
	defer k.mutex.Unlock()
	k.victima = s
}

// CrearProceso crea un proceso con prioridad INTERACTIVE
func (k *Kernel) CrearProceso(nombre string, programa Programa) int {
	return k.CrearProcesoConPrioridad(nombre, programa, PrioridadInteractiva)
}

// CrearProcesoConPrioridad encola el proceso y, si no hay ninguno en ejecución,
// lo pone a correr antes de volver. Devuelve PIDNinguno si el kernel está detenido.
func (k *Kernel) CrearProcesoConPrioridad(nombre string, programa Programa, prioridad Prioridad) int {
	if !prioridad.valida() {
		prioridad = PrioridadInteractiva
	}

	k.mutex.Lock()
	if k.detenido {
		k.mutex.Unlock()
		return PIDNinguno
	}

	pcb := NuevoPCB(k.proximoPID, nombre, prioridad, k.config.PaginasVirtuales)
	k.proximoPID++
	k.procesos[pcb.PID] = pcb
	k.encolar(pcb)
	if k.actual == nil {
		k.cambiarTarea()
	}
	k.mutex.Unlock()

	k.lanzar(pcb, programa)
	return pcb.PID
}

// EnviarMensaje entrega un mensaje con emisor PIDNinguno
func (k *Kernel) EnviarMensaje(destino int, tipo int, datos []byte) {
	k.mutex.Lock()
	defer k.mutex.Unlock()
	k.enviarMensaje(PIDNinguno, MensajeKernel{Destino: destino, Tipo: tipo, Datos: datos})
}

// BuscarPIDPorNombre devuelve el menor PID vivo con ese nombre o PIDNinguno
func (k *Kernel) BuscarPIDPorNombre(nombre string) int {
	k.mutex.Lock()
	defer k.mutex.Unlock()
	return k.buscarPIDPorNombre(nombre)
}

func (k *Kernel) buscarPIDPorNombre(nombre string) int {
	encontrado := PIDNinguno
	for pid, pcb := range k.procesos {
		if pcb.Nombre == nombre && (encontrado == PIDNinguno || pid < encontrado) {
			encontrado = pid
		}
	}
	return encontrado
}

func (k *Kernel) PIDActual() int {
	k.mutex.Lock()
	defer k.mutex.Unlock()
	if k.actual == nil {
		return PIDNinguno
	}
	return k.actual.PID
}

// Esperar bloquea hasta que no quede ningún proceso vivo o se cancele el contexto
func (k *Kernel) Esperar(ctx context.Context) error {
	for {
		k.mutex.Lock()
		if len(k.procesos) == 0 {
			k.mutex.Unlock()
			return nil
		}
		cambios := k.cambios
		k.mutex.Unlock()

		select {
		case <-cambios:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (k *Kernel) notificarCambio() {
	close(k.cambios)
	k.cambios = make(chan struct{})
}

// ProcesoInstantanea describe un proceso vivo
type ProcesoInstantanea struct {
	PID                int                     `json:"pid"`
	Nombre             string                  `json:"nombre"`
	Prioridad          string                  `json:"prioridad"`
	Estado             string                  `json:"estado"`
	PaginasAsignadas   int                     `json:"paginas_asignadas"`
	PaginasResidentes  int                     `json:"paginas_residentes"`
	MensajesPendientes int                     `json:"mensajes_pendientes"`
	Metricas           memoria.MetricasProceso `json:"metricas"`
}

// Instantanea es el estado observable del kernel en un momento dado
type Instantanea struct {
	Actual        int                  `json:"actual"`
	Procesos      []ProcesoInstantanea `json:"procesos"`
	ColasReady    map[string]int       `json:"colas_ready"`
	Dormidos      int                  `json:"dormidos"`
	EsperandoMsj  int                  `json:"esperando_mensaje"`
	MarcosLibres  int                  `json:"marcos_libres"`
	MarcosTotales int                  `json:"marcos_totales"`
	SlotsSwap     int                  `json:"slots_swap"`
	AciertosTLB   int                  `json:"aciertos_tlb"`
	FallosTLB     int                  `json:"fallos_tlb"`
}

func (k *Kernel) Instantanea() Instantanea {
	k.mutex.Lock()
	defer k.mutex.Unlock()

	inst := Instantanea{
		Actual:        PIDNinguno,
		Procesos:      make([]ProcesoInstantanea, 0, len(k.procesos)),
		ColasReady:    make(map[string]int),
		Dormidos:      len(k.dormidos),
		EsperandoMsj:  len(k.esperandoMensaje),
		MarcosLibres:  k.asignador.Libres(),
		MarcosTotales: k.asignador.Total(),
		SlotsSwap:     k.swap.SlotsUsados(),
		AciertosTLB:   k.tlb.Aciertos,
		FallosTLB:     k.tlb.Fallos,
	}
	if k.actual != nil {
		inst.Actual = k.actual.PID
	}
	for p, cola := range k.colas {
		inst.ColasReady[Prioridad(p).String()] = len(cola)
	}
	for _, pcb := range k.procesos {
		inst.Procesos = append(inst.Procesos, ProcesoInstantanea{
			PID:                pcb.PID,
			Nombre:             pcb.Nombre,
			Prioridad:          pcb.Prioridad.String(),
			Estado:             pcb.Estado,
			PaginasAsignadas:   pcb.tabla.Asignadas(),
			PaginasResidentes:  len(pcb.tabla.MarcosResidentes()),
			MensajesPendientes: len(pcb.mensajes),
			Metricas:           pcb.Metricas,
		})
	}
	sort.Slice(inst.Procesos, func(i, j int) bool {
		return inst.Procesos[i].PID < inst.Procesos[j].PID
	})
	return inst
}
