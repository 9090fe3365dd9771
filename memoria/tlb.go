package memoria

import "math/rand"

type entradaTLB struct {
	pagina int
	marco  int
	valida bool
}

// TLB es una caché de traducciones con reemplazo aleatorio.
// Capacidad cero la deshabilita.
type TLB struct {
	entradas []entradaTLB
	rng      *rand.Rand
	Aciertos int
	Fallos   int
}

func NewTLB(capacidad int, rng *rand.Rand) *TLB {
	return &TLB{
		entradas: make([]entradaTLB, capacidad),
		rng:      rng,
	}
}

func (t *TLB) Buscar(pagina int) (int, bool) {
	for _, entrada := range t.entradas {
		if entrada.valida && entrada.pagina == pagina {
			t.Aciertos++
			return entrada.marco, true
		}
	}
	t.Fallos++
	return SinMarco, false
}

// Actualizar pisa un slot elegido al azar, esté libre o no.
// Si la página ya estaba cargada solo se actualiza su marco.
func (t *TLB) Actualizar(pagina int, marco int) {
	if len(t.entradas) == 0 {
		return
	}

	for i, entrada := range t.entradas {
		if entrada.valida && entrada.pagina == pagina {
			t.entradas[i].marco = marco
			return
		}
	}

	destino := t.rng.Intn(len(t.entradas))
	t.entradas[destino] = entradaTLB{pagina: pagina, marco: marco, valida: true}
}

// Invalidar descarta la traducción de una página
func (t *TLB) Invalidar(pagina int) {
	for i := range t.entradas {
		if t.entradas[i].pagina == pagina {
			t.entradas[i].valida = false
		}
	}
}

// Limpiar descarta todas las traducciones
func (t *TLB) Limpiar() {
	for i := range t.entradas {
		t.entradas[i].valida = false
	}
}

func (t *TLB) Capacidad() int {
	return len(t.entradas)
}
