package utils

// Semaforo implementa un semáforo contador con canales.
// La capacidad es el máximo de señales que puede acumular.
type Semaforo struct {
	c chan struct{}
}

// NewSemaforo crea un semáforo con la capacidad dada y las señales iniciales pedidas
func NewSemaforo(capacidad int, iniciales int) *Semaforo {
	if capacidad <= 0 {
		capacidad = 1
	}
	s := &Semaforo{
		c: make(chan struct{}, capacidad),
	}
	for i := 0; i < iniciales && i < capacidad; i++ {
		s.c <- struct{}{}
	}
	return s
}

// Wait (P) consume una señal, bloquea si no hay ninguna
func (s *Semaforo) Wait() {
	<-s.c
}

// Signal (V) agrega una señal
func (s *Semaforo) Signal() {
	select {
	case s.c <- struct{}{}:
	default:
		// Capacidad completa, no hace nada para prevenir incremento excesivo
	}
}
