package memoria

import (
	"math/rand"
	"testing"
)

func TestTLBAciertoYFallo(t *testing.T) {
	tlb := NewTLB(2, rand.New(rand.NewSource(1)))

	if _, ok := tlb.Buscar(0); ok {
		t.Fatalf("Expected empty TLB to miss")
	}

	tlb.Actualizar(0, 10)
	tlb.Actualizar(1, 11)

	if marco, ok := tlb.Buscar(1); !ok || marco != 11 {
		t.Errorf("Expected hit on frame 11, got %d (%v)", marco, ok)
	}
	if tlb.Aciertos != 1 || tlb.Fallos != 1 {
		t.Errorf("Expected 1 hit and 1 miss, got %d/%d", tlb.Aciertos, tlb.Fallos)
	}
}

func validas(tlb *TLB) int {
	n := 0
	for _, entrada := range tlb.entradas {
		if entrada.valida {
			n++
		}
	}
	return n
}

func TestTLBReemplazoAleatorioConservaCapacidad(t *testing.T) {
	tlb := NewTLB(2, rand.New(rand.NewSource(5)))
	for pagina := 0; pagina < 6; pagina++ {
		tlb.Actualizar(pagina, 10+pagina)
	}

	if marco, ok := tlb.Buscar(5); !ok || marco != 15 {
		t.Fatalf("Expected newest entry to be cached")
	}
	if n := validas(tlb); n < 1 || n > 2 {
		t.Errorf("Expected between 1 and 2 valid entries, got %d", n)
	}
}

func TestTLBReemplazaAlAzarAunConSlotLibre(t *testing.T) {
	desalojos := 0
	for semilla := int64(1); semilla <= 50; semilla++ {
		tlb := NewTLB(2, rand.New(rand.NewSource(semilla)))
		gemelo := rand.New(rand.NewSource(semilla))

		tlb.Actualizar(0, 10)
		tlb.Actualizar(1, 11)

		primero, segundo := gemelo.Intn(2), gemelo.Intn(2)
		_, sigue := tlb.Buscar(0)
		if sigue != (primero != segundo) {
			t.Fatalf("[semilla %d] Expected page 0 cached=%v, got %v", semilla, primero != segundo, sigue)
		}
		if !sigue {
			desalojos++
		}
	}

	if desalojos == 0 {
		t.Errorf("Expected some insertion to evict a valid entry while a slot was free")
	}
}

func TestTLBActualizarMismaPaginaNoDuplica(t *testing.T) {
	tlb := NewTLB(2, rand.New(rand.NewSource(5)))
	tlb.Actualizar(0, 10)
	tlb.Actualizar(0, 20)

	if marco, ok := tlb.Buscar(0); !ok || marco != 20 {
		t.Errorf("Expected updated frame 20, got %d (%v)", marco, ok)
	}
	if n := validas(tlb); n != 1 {
		t.Errorf("Expected a single entry for page 0, got %d", n)
	}
}

func TestTLBInvalidarYLimpiar(t *testing.T) {
	tlb := NewTLB(2, rand.New(rand.NewSource(1)))
	tlb.Actualizar(0, 10)
	tlb.Actualizar(1, 11)

	tlb.Invalidar(0)
	if _, ok := tlb.Buscar(0); ok {
		t.Errorf("Expected invalidated page to miss")
	}

	tlb.Limpiar()
	if _, ok := tlb.Buscar(1); ok {
		t.Errorf("Expected cleared TLB to miss")
	}
}

func TestTLBDeshabilitada(t *testing.T) {
	tlb := NewTLB(0, rand.New(rand.NewSource(1)))
	tlb.Actualizar(0, 10)

	if _, ok := tlb.Buscar(0); ok {
		t.Errorf("Expected zero-capacity TLB to always miss")
	}
}
