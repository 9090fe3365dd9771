package kernel

import (
	"bytes"
	"fmt"
	"testing"
	"time"
)

func TestMensajesDeUnEmisorLleganEnOrden(t *testing.T) {
	k := nuevoKernelPrueba(t, configPrueba(t))
	const cantidad = 5
	r := &registro{}

	receptor := k.CrearProceso("receptor", func(p *Proceso) {
		for i := 0; i < cantidad; i++ {
			m, ok := p.Recibir()
			if !ok {
				t.Errorf("Expected message %d", i)
				return
			}
			r.anotar(fmt.Sprintf("%d:%d:%s", m.Emisor, m.Tipo, m.Datos))
		}
	})
	emisor := k.CrearProceso("emisor", func(p *Proceso) {
		destino := p.BuscarPID("receptor")
		for i := 0; i < cantidad; i++ {
			p.Enviar(destino, i, []byte(fmt.Sprintf("m%d", i)))
		}
	})
	esperarFin(t, k)

	eventos := r.obtener()
	if len(eventos) != cantidad {
		t.Fatalf("Expected %d messages for PID %d, got %v", cantidad, receptor, eventos)
	}
	for i, evento := range eventos {
		esperado := fmt.Sprintf("%d:%d:m%d", emisor, i, i)
		if evento != esperado {
			t.Errorf("Expected %q at position %d, got %q", esperado, i, evento)
		}
	}
}

func TestRecibirBloqueaHastaUnEnvio(t *testing.T) {
	k := nuevoKernelPrueba(t, configPrueba(t))
	recibido := make(chan MensajeKernel, 1)

	pid := k.CrearProceso("receptor", func(p *Proceso) {
		m, _ := p.Recibir()
		recibido <- m
	})

	time.Sleep(20 * time.Millisecond)
	select {
	case m := <-recibido:
		t.Fatalf("Expected receive to block, got %v", m)
	default:
	}

	datos := []byte("hola")
	k.EnviarMensaje(pid, 7, datos)
	datos[0] = 'X'
	esperarFin(t, k)

	m := <-recibido
	if m.Emisor != PIDNinguno || m.Destino != pid || m.Tipo != 7 {
		t.Errorf("Unexpected message header %v", m)
	}
	if !bytes.Equal(m.Datos, []byte("hola")) {
		t.Errorf("Expected payload copied at send time, got %q", m.Datos)
	}
}

func TestRecibirConMensajePendienteNoCede(t *testing.T) {
	k := nuevoKernelPrueba(t, configPrueba(t))
	r := &registro{}

	k.CrearProceso("autoenvio", func(p *Proceso) {
		p.Crear("otro", anotador(r, "otro"))
		p.Enviar(p.PID(), 1, nil)
		if _, ok := p.Recibir(); !ok {
			t.Errorf("Expected own pending message")
		}
		r.anotar("autoenvio")
	})
	esperarFin(t, k)

	eventos := r.obtener()
	if len(eventos) != 2 || eventos[0] != "autoenvio" {
		t.Errorf("Expected receive with a pending message not to yield, got %v", eventos)
	}
}

func TestEnvioADestinoInexistenteSeDescarta(t *testing.T) {
	k := nuevoKernelPrueba(t, configPrueba(t))
	r := &registro{}

	k.CrearProceso("emisor", func(p *Proceso) {
		p.Enviar(999, 1, []byte("nadie"))
		r.anotar("sigue")
	})
	k.EnviarMensaje(12345, 1, nil)
	esperarFin(t, k)

	if eventos := r.obtener(); len(eventos) != 1 {
		t.Errorf("Expected sender to keep running, got %v", eventos)
	}
}

func TestModificarMensajeRecibidoNoAfectaAlEmisor(t *testing.T) {
	k := nuevoKernelPrueba(t, configPrueba(t))
	original := []byte{1, 2, 3}

	k.CrearProceso("receptor", func(p *Proceso) {
		m, _ := p.Recibir()
		m.Datos[0] = 99
	})
	k.CrearProceso("emisor", func(p *Proceso) {
		p.Enviar(p.BuscarPID("receptor"), 1, original)
	})
	esperarFin(t, k)

	if original[0] != 1 {
		t.Errorf("Expected sender payload untouched, got %v", original)
	}
}

func TestCopiarMensaje(t *testing.T) {
	m := MensajeKernel{Emisor: 1, Destino: 2, Tipo: 3, Datos: []byte("abc")}
	copia := m.Copiar()
	copia.Datos[0] = 'z'

	if string(m.Datos) != "abc" {
		t.Errorf("Expected deep copy, original changed to %q", m.Datos)
	}
	if (MensajeKernel{}).Copiar().Datos != nil {
		t.Errorf("Expected nil payload to stay nil")
	}
}
