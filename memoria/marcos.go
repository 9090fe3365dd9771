package memoria

import (
	"math/bits"
	"math/rand"
)

// Asignador lleva el registro de marcos físicos ocupados con un bitmap.
// Un bit en 1 indica marco ocupado. No es seguro para uso concurrente;
// el kernel lo protege con su propio mutex.
type Asignador struct {
	bitmap []uint64
	total  int
	libres int
	rng    *rand.Rand
}

// NewAsignador crea un asignador de total marcos, todos libres
func NewAsignador(total int, rng *rand.Rand) *Asignador {
	return &Asignador{
		bitmap: make([]uint64, (total+63)/64),
		total:  total,
		libres: total,
		rng:    rng,
	}
}

// TomarLibre elige uniformemente un marco libre y lo marca ocupado.
// Devuelve false si no queda ninguno.
func (a *Asignador) TomarLibre() (int, bool) {
	if a.libres == 0 {
		return -1, false
	}

	// Se elige el k-ésimo marco libre y se lo ubica palabra por palabra
	k := a.rng.Intn(a.libres)
	for i, palabra := range a.bitmap {
		disponibles := ^palabra & a.mascara(i)
		cantidad := bits.OnesCount64(disponibles)
		if k >= cantidad {
			k -= cantidad
			continue
		}
		for ; k > 0; k-- {
			disponibles &= disponibles - 1
		}
		bit := bits.TrailingZeros64(disponibles)
		a.bitmap[i] |= 1 << uint(bit)
		a.libres--
		return i*64 + bit, true
	}
	return -1, false
}

// Liberar devuelve los marcos al pool. Ignora marcos fuera de rango o ya libres.
func (a *Asignador) Liberar(marcos ...int) {
	for _, marco := range marcos {
		if !a.Ocupado(marco) {
			continue
		}
		a.bitmap[marco/64] &^= 1 << uint(marco%64)
		a.libres++
	}
}

// Ocupado indica si el marco está asignado
func (a *Asignador) Ocupado(marco int) bool {
	if marco < 0 || marco >= a.total {
		return false
	}
	return a.bitmap[marco/64]&(1<<uint(marco%64)) != 0
}

func (a *Asignador) Libres() int { return a.libres }

func (a *Asignador) Total() int { return a.total }

// mascara deja fuera los bits sobrantes de la última palabra
func (a *Asignador) mascara(indice int) uint64 {
	resto := a.total - indice*64
	if resto >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << uint(resto)) - 1
}
