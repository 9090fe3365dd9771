package kernel

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func configPrueba(t *testing.T) Config {
	t.Helper()
	config := ConfigPorDefecto()
	config.SwapfilePath = filepath.Join(t.TempDir(), "pagefile.sys")
	config.Semilla = 1
	return config
}

func nuevoKernelPrueba(t *testing.T, config Config) *Kernel {
	t.Helper()
	k, err := Nuevo(config)
	if err != nil {
		t.Fatalf("Expected kernel to start, got %v", err)
	}
	t.Cleanup(k.Detener)
	return k
}

func esperarFin(t *testing.T, k *Kernel) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := k.Esperar(ctx); err != nil {
		t.Fatalf("Expected every process to finish, got %v (%+v)", err, k.Instantanea())
	}
}

// registro junta eventos de varias gorutinas
type registro struct {
	mutex   sync.Mutex
	eventos []string
}

func (r *registro) anotar(evento string) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.eventos = append(r.eventos, evento)
}

func (r *registro) obtener() []string {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return append([]string(nil), r.eventos...)
}

func anotador(r *registro, evento string) Programa {
	return func(p *Proceso) {
		r.anotar(evento)
	}
}

func TestPrioridadEstricta(t *testing.T) {
	k := nuevoKernelPrueba(t, configPrueba(t))
	r := &registro{}

	k.CrearProceso("lanzador", func(p *Proceso) {
		p.CrearConPrioridad("segundo-plano", anotador(r, "B"), PrioridadSegundoPlano)
		p.CrearConPrioridad("interactivo", anotador(r, "I"), PrioridadInteractiva)
		p.CrearConPrioridad("tiempo-real", anotador(r, "R"), PrioridadTiempoReal)
	})
	esperarFin(t, k)

	eventos := r.obtener()
	esperados := []string{"R", "I", "B"}
	if len(eventos) != len(esperados) {
		t.Fatalf("Expected %v, got %v", esperados, eventos)
	}
	for i := range esperados {
		if eventos[i] != esperados[i] {
			t.Errorf("Expected %v, got %v", esperados, eventos)
			break
		}
	}
}

func TestTiempoRealNuncaCedeASegundoPlano(t *testing.T) {
	k := nuevoKernelPrueba(t, configPrueba(t))
	r := &registro{}

	k.CrearProceso("lanzador", func(p *Proceso) {
		p.CrearConPrioridad("B", anotador(r, "B"), PrioridadSegundoPlano)
		p.CrearConPrioridad("A", func(p *Proceso) {
			for i := 0; i < 5; i++ {
				r.anotar("A")
				p.Ceder()
			}
		}, PrioridadTiempoReal)
	})
	esperarFin(t, k)

	eventos := r.obtener()
	if len(eventos) != 6 || eventos[5] != "B" {
		t.Errorf("Expected five A events before B, got %v", eventos)
	}
}

func TestPIDsUnicos(t *testing.T) {
	k := nuevoKernelPrueba(t, configPrueba(t))
	const cantidad = 50

	propios := make(chan int, cantidad)
	devueltos := make(map[int]bool)
	for i := 0; i < cantidad; i++ {
		pid := k.CrearProceso("efimero", func(p *Proceso) {
			propios <- p.PID()
		})
		if devueltos[pid] {
			t.Fatalf("Expected unique PIDs, %d repeated", pid)
		}
		devueltos[pid] = true
	}
	esperarFin(t, k)
	close(propios)

	vistos := make(map[int]bool)
	for pid := range propios {
		if vistos[pid] || !devueltos[pid] {
			t.Errorf("Unexpected PID %d seen by a process", pid)
		}
		vistos[pid] = true
	}
	if len(vistos) != cantidad {
		t.Errorf("Expected %d processes to run, got %d", cantidad, len(vistos))
	}

	// Un PID terminado nunca se reutiliza
	nuevo := k.CrearProceso("otro", func(p *Proceso) {})
	if devueltos[nuevo] {
		t.Errorf("Expected a fresh PID, got reused %d", nuevo)
	}
	esperarFin(t, k)
}

func TestProcesoSoloCedeYVuelveACorrer(t *testing.T) {
	k := nuevoKernelPrueba(t, configPrueba(t))
	r := &registro{}

	k.CrearProceso("solo", func(p *Proceso) {
		for i := 0; i < 3; i++ {
			p.Ceder()
			if k.PIDActual() != p.PID() {
				t.Errorf("Expected the only process to be current after yielding")
			}
		}
		r.anotar("fin")
	})
	esperarFin(t, k)

	if eventos := r.obtener(); len(eventos) != 1 {
		t.Errorf("Expected process to finish once, got %v", eventos)
	}
	if k.PIDActual() != PIDNinguno {
		t.Errorf("Expected idle kernel, got current %d", k.PIDActual())
	}
}

func TestCederAlternaEnLaMismaPrioridad(t *testing.T) {
	k := nuevoKernelPrueba(t, configPrueba(t))
	r := &registro{}

	alternar := func(nombre string) Programa {
		return func(p *Proceso) {
			for i := 0; i < 3; i++ {
				r.anotar(nombre)
				p.Ceder()
			}
		}
	}
	k.CrearProceso("lanzador", func(p *Proceso) {
		p.Crear("x", alternar("x"))
		p.Crear("y", alternar("y"))
	})
	esperarFin(t, k)

	eventos := r.obtener()
	esperados := []string{"x", "y", "x", "y", "x", "y"}
	for i := range esperados {
		if i >= len(eventos) || eventos[i] != esperados[i] {
			t.Fatalf("Expected round robin %v, got %v", esperados, eventos)
		}
	}
}

func TestDormirDespiertaConKernelOcioso(t *testing.T) {
	k := nuevoKernelPrueba(t, configPrueba(t))

	var transcurrido time.Duration
	k.CrearProceso("dormilon", func(p *Proceso) {
		inicio := time.Now()
		p.Dormir(50 * time.Millisecond)
		transcurrido = time.Since(inicio)
	})
	esperarFin(t, k)

	if transcurrido < 50*time.Millisecond {
		t.Errorf("Expected at least 50ms asleep, got %v", transcurrido)
	}
}

func TestDormidoNoCorreAntesDeTiempo(t *testing.T) {
	k := nuevoKernelPrueba(t, configPrueba(t))
	r := &registro{}

	k.CrearProceso("lanzador", func(p *Proceso) {
		p.CrearConPrioridad("dormilon", func(p *Proceso) {
			p.Dormir(100 * time.Millisecond)
			r.anotar("desperto")
		}, PrioridadTiempoReal)
		p.Crear("ocupado", func(p *Proceso) {
			r.anotar("ocupado")
		})
	})
	esperarFin(t, k)

	eventos := r.obtener()
	if len(eventos) != 2 || eventos[0] != "ocupado" || eventos[1] != "desperto" {
		t.Errorf("Expected the sleeper to run last, got %v", eventos)
	}
}

func TestPanicEnProgramaTerminaSoloEseProceso(t *testing.T) {
	k := nuevoKernelPrueba(t, configPrueba(t))
	r := &registro{}

	k.CrearProceso("roto", func(p *Proceso) {
		panic("falla del programa")
	})
	k.CrearProceso("sano", anotador(r, "sano"))
	esperarFin(t, k)

	if eventos := r.obtener(); len(eventos) != 1 {
		t.Errorf("Expected the healthy process to run, got %v", eventos)
	}
}

func TestSalirNoEjecutaElRestoDelPrograma(t *testing.T) {
	k := nuevoKernelPrueba(t, configPrueba(t))
	r := &registro{}

	k.CrearProceso("saliente", func(p *Proceso) {
		r.anotar("antes")
		p.Salir()
		r.anotar("despues")
	})
	esperarFin(t, k)

	if eventos := r.obtener(); len(eventos) != 1 || eventos[0] != "antes" {
		t.Errorf("Expected only the event before exit, got %v", eventos)
	}
}

func TestBuscarPIDPorNombre(t *testing.T) {
	k := nuevoKernelPrueba(t, configPrueba(t))

	encontrado := make(chan int, 1)
	k.CrearProceso("lanzador", func(p *Proceso) {
		if p.Nombre() != "lanzador" {
			t.Errorf("Expected name lanzador, got %q", p.Nombre())
		}
		pid := p.Crear("objetivo", func(p *Proceso) {})
		if p.BuscarPID("objetivo") != pid {
			t.Errorf("Expected to find PID %d by name", pid)
		}
		encontrado <- p.BuscarPID("inexistente")
	})
	esperarFin(t, k)

	if pid := <-encontrado; pid != PIDNinguno {
		t.Errorf("Expected PIDNinguno for unknown name, got %d", pid)
	}
	if k.BuscarPIDPorNombre("objetivo") != PIDNinguno {
		t.Errorf("Expected finished process not to be found")
	}
}

func TestDetenerLiberaProcesosBloqueados(t *testing.T) {
	k := nuevoKernelPrueba(t, configPrueba(t))

	k.CrearProceso("esperando", func(p *Proceso) {
		p.Recibir()
		t.Errorf("Expected the receive to never return")
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := k.Esperar(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Expected blocked process to keep the kernel busy, got %v", err)
	}

	k.Detener()
	esperarFin(t, k)

	if pid := k.CrearProceso("tarde", func(p *Proceso) {}); pid != PIDNinguno {
		t.Errorf("Expected no process creation after stop, got %d", pid)
	}
}

func TestDetenerCortaAlProcesoEnEjecucion(t *testing.T) {
	specs := []struct {
		nombre string
		paso   func(p *Proceso)
	}{
		{"ceder", func(p *Proceso) { p.Ceder() }},
		{"dormir", func(p *Proceso) { p.Dormir(time.Millisecond) }},
		{"recibir", func(p *Proceso) {
			p.Enviar(p.PID(), 0, nil)
			p.Recibir()
		}},
	}

	for _, spec := range specs {
		k := nuevoKernelPrueba(t, configPrueba(t))
		var vueltas atomic.Int64
		fin := make(chan struct{})

		k.CrearProceso("incansable", func(p *Proceso) {
			defer close(fin)
			for {
				vueltas.Add(1)
				spec.paso(p)
			}
		})

		limite := time.Now().Add(5 * time.Second)
		for vueltas.Load() < 5 && time.Now().Before(limite) {
			time.Sleep(time.Millisecond)
		}
		k.Detener()

		select {
		case <-fin:
		case <-time.After(2 * time.Second):
			t.Fatalf("[%s] Expected the running process to end after stop, %d iterations so far", spec.nombre, vueltas.Load())
		}

		antes := vueltas.Load()
		time.Sleep(20 * time.Millisecond)
		if despues := vueltas.Load(); despues != antes {
			t.Errorf("[%s] Expected no iterations after stop, got %d more", spec.nombre, despues-antes)
		}
	}
}

func TestInstantanea(t *testing.T) {
	k := nuevoKernelPrueba(t, configPrueba(t))

	listo := make(chan Instantanea, 1)
	k.CrearProceso("observador", func(p *Proceso) {
		p.Crear("en-cola", func(p *Proceso) {})
		if _, err := p.AsignarMemoria(2048); err != nil {
			t.Errorf("Expected allocation, got %v", err)
		}
		listo <- k.Instantanea()
	})
	esperarFin(t, k)

	inst := <-listo
	if inst.Actual != 0 || len(inst.Procesos) != 2 {
		t.Fatalf("Unexpected snapshot %+v", inst)
	}
	if inst.Procesos[0].Estado != EstadoExec || inst.Procesos[1].Estado != EstadoReady {
		t.Errorf("Unexpected states %+v", inst.Procesos)
	}
	if inst.Procesos[0].PaginasAsignadas != 2 || inst.Procesos[0].PaginasResidentes != 0 {
		t.Errorf("Expected two lazy pages, got %+v", inst.Procesos[0])
	}
	if inst.ColasReady[PrioridadInteractiva.String()] != 1 || inst.MarcosLibres != inst.MarcosTotales {
		t.Errorf("Unexpected queues or frames %+v", inst)
	}
}
