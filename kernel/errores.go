package kernel

import "errors"

var (
	// ErrAccesoInvalido se devuelve al leer o escribir una dirección sin página asignada,
	// una dirección negativa, o cuando un fallo de página no se puede atender.
	ErrAccesoInvalido = errors.New("acceso inválido a memoria")

	// ErrSinEspacio indica que un pedido de memoria no se puede satisfacer
	ErrSinEspacio = errors.New("sin espacio")

	ErrParametroInvalido = errors.New("parámetro inválido")

	// ErrProcesoNoActual se devuelve cuando un proceso que no está en EXEC pide un servicio
	ErrProcesoNoActual = errors.New("el proceso no es el actual")

	ErrKernelDetenido = errors.New("kernel detenido")
)
