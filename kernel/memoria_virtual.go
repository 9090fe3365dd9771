package kernel

import (
	"fmt"

	"github.com/sisoputnfrba/tp-2025-1c-LosCuervosXeneizes-simulador/memoria"
	"github.com/sisoputnfrba/tp-2025-1c-LosCuervosXeneizes-simulador/utils"
)

// asignarMemoria reserva páginas contiguas sin asignarles marco; los marcos se piden al primer acceso
func (k *Kernel) asignarMemoria(pcb *PCB, tamanio int) (int, error) {
	k.mutex.Lock()
	defer k.mutex.Unlock()

	if err := k.verificarActual(pcb); err != nil {
		return -1, err
	}
	if tamanio <= 0 {
		return -1, fmt.Errorf("%w: tamaño %d", ErrParametroInvalido, tamanio)
	}

	paginas := memoria.PaginasNecesarias(tamanio, k.config.TamPagina)
	inicio, ok := pcb.tabla.BuscarRangoLibre(paginas)
	if !ok {
		return -1, fmt.Errorf("%w: no hay %d páginas virtuales contiguas para el PID %d", ErrSinEspacio, paginas, pcb.PID)
	}
	pcb.tabla.Reservar(inicio, paginas)

	direccion := inicio * k.config.TamPagina
	utils.InfoLog.Debug("Memoria asignada", "pid", pcb.PID, "direccion", direccion, "paginas", paginas)
	return direccion, nil
}

// liberarMemoria devuelve los marcos residentes del rango y borra sus entradas
func (k *Kernel) liberarMemoria(pcb *PCB, direccion int, tamanio int) error {
	k.mutex.Lock()
	defer k.mutex.Unlock()

	if err := k.verificarActual(pcb); err != nil {
		return err
	}

	tamPagina := k.config.TamPagina
	if direccion < 0 || tamanio <= 0 || !memoria.Alineada(direccion, tamPagina) || !memoria.Alineada(tamanio, tamPagina) {
		return fmt.Errorf("%w: dirección %d y tamaño %d deben estar alineados a página", ErrParametroInvalido, direccion, tamanio)
	}

	inicio := memoria.Pagina(direccion, tamPagina)
	paginas := tamanio / tamPagina
	if inicio+paginas > pcb.tabla.Cantidad() {
		return fmt.Errorf("%w: el rango supera el espacio virtual del PID %d", ErrParametroInvalido, pcb.PID)
	}

	for p := inicio; p < inicio+paginas; p++ {
		entrada := pcb.tabla.Quitar(p)
		if entrada != nil && entrada.Residente() {
			k.asignador.Liberar(entrada.Marco)
		}
		k.tlb.Invalidar(p)
	}

	utils.InfoLog.Debug("Memoria liberada", "pid", pcb.PID, "direccion", direccion, "paginas", paginas)
	return nil
}

func (k *Kernel) leer(pcb *PCB, direccion int) (byte, error) {
	k.mutex.Lock()
	defer k.mutex.Unlock()

	marco, desplazamiento, err := k.traducir(pcb, direccion)
	if err != nil {
		return 0, err
	}
	pcb.Metricas.LecturasMemoria++
	return k.memoria.LeerByte(marco, desplazamiento), nil
}

func (k *Kernel) escribir(pcb *PCB, direccion int, valor byte) error {
	k.mutex.Lock()
	defer k.mutex.Unlock()

	marco, desplazamiento, err := k.traducir(pcb, direccion)
	if err != nil {
		return err
	}
	pcb.Metricas.EscriturasMemoria++
	k.memoria.EscribirByte(marco, desplazamiento, valor)
	return nil
}

// traducir resuelve una dirección virtual del proceso actual, primero en la TLB
func (k *Kernel) traducir(pcb *PCB, direccion int) (int, int, error) {
	if err := k.verificarActual(pcb); err != nil {
		return 0, 0, err
	}
	if direccion < 0 {
		return 0, 0, fmt.Errorf("%w: dirección negativa %d", ErrAccesoInvalido, direccion)
	}

	pagina := memoria.Pagina(direccion, k.config.TamPagina)
	desplazamiento := memoria.Desplazamiento(direccion, k.config.TamPagina)

	if marco, ok := k.tlb.Buscar(pagina); ok {
		pcb.Metricas.AciertosTLB++
		return marco, desplazamiento, nil
	}
	pcb.Metricas.FallosTLB++

	marco, err := k.obtenerMapeo(pcb, pagina)
	if err != nil {
		return 0, 0, err
	}
	return marco, desplazamiento, nil
}

// obtenerMapeo consulta la tabla de páginas y atiende el fallo de página si hace falta
func (k *Kernel) obtenerMapeo(pcb *PCB, pagina int) (int, error) {
	k.tick++
	pcb.Metricas.AccesosTablasPaginas++

	entrada := pcb.tabla.Entrada(pagina)
	if entrada == nil {
		return memoria.SinMarco, fmt.Errorf("%w: página %d sin asignar en el PID %d", ErrAccesoInvalido, pagina, pcb.PID)
	}
	entrada.UltimoAcceso = k.tick

	if entrada.Residente() {
		k.tlb.Actualizar(pagina, entrada.Marco)
		return entrada.Marco, nil
	}

	pcb.Metricas.FallosPagina++
	utils.InfoLog.Debug("Fallo de página", "pid", pcb.PID, "pagina", pagina)

	marco, ok := k.asignador.TomarLibre()
	if !ok {
		var err error
		marco, err = k.desalojarVictima()
		if err != nil {
			return memoria.SinMarco, fmt.Errorf("%w: página %d del PID %d: %w", ErrAccesoInvalido, pagina, pcb.PID, err)
		}
	}

	if entrada.PaginaDisco != memoria.SinDisco {
		contenido := make([]byte, k.config.TamPagina)
		if err := k.swap.Cargar(entrada.PaginaDisco, contenido); err != nil {
			k.asignador.Liberar(marco)
			return memoria.SinMarco, fmt.Errorf("%w: página %d del PID %d: %w", ErrAccesoInvalido, pagina, pcb.PID, err)
		}
		k.memoria.EscribirPagina(marco, contenido)
		pcb.Metricas.SubidasMemoria++
		utils.InfoLog.Info(fmt.Sprintf("(%d) - Subida a memoria de la página %d desde el slot %d", pcb.PID, pagina, entrada.PaginaDisco), "marco", marco)
	} else {
		k.memoria.LimpiarPagina(marco)
	}

	// El slot de disco se conserva; el próximo desalojo escribe en uno nuevo
	entrada.Marco = marco
	k.tlb.Actualizar(pagina, marco)
	return marco, nil
}

// candidatosVictima devuelve las colas de listos por prioridad y luego los dormidos.
// Quedan afuera el proceso actual y los que esperan un mensaje.
func (k *Kernel) candidatosVictima() []*PCB {
	var candidatos []*PCB
	for _, cola := range k.colas {
		candidatos = append(candidatos, cola...)
	}
	return append(candidatos, k.dormidos...)
}

// desalojarVictima baja una página a swap y devuelve su marco ya ocupado para el nuevo dueño
func (k *Kernel) desalojarVictima() (int, error) {
	candidatos := k.candidatosVictima()
	if len(candidatos) == 0 {
		return memoria.SinMarco, fmt.Errorf("%w: no hay marcos libres ni procesos para desalojar", ErrSinEspacio)
	}

	victima, pagina, ok := k.victima.Elegir(candidatos, k.rng)
	if !ok {
		return memoria.SinMarco, fmt.Errorf("%w: no se encontró página para desalojar", ErrSinEspacio)
	}

	entrada := victima.tabla.Entrada(pagina)
	slot, err := k.swap.Guardar(k.memoria.LeerPagina(entrada.Marco))
	if err != nil {
		return memoria.SinMarco, err
	}

	marco := entrada.Marco
	entrada.Marco = memoria.SinMarco
	entrada.PaginaDisco = slot
	victima.Metricas.BajadasSwap++

	utils.InfoLog.Info(fmt.Sprintf("(%d) - Bajada a swap de la página %d en el slot %d", victima.PID, pagina, slot), "marco", marco)
	return marco, nil
}
