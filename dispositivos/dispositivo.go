package dispositivos

import "errors"

// MaxDescriptores es la cantidad de descriptores abiertos que admite cada dispositivo
const MaxDescriptores = 10

var (
	ErrSinDescriptores    = errors.New("no hay descriptores libres")
	ErrDescriptorInvalido = errors.New("descriptor inválido")
	ErrNombreInvalido     = errors.New("nombre de dispositivo vacío")
)

// Dispositivo es el contrato de acceso a bytes que usan el swap y los procesos
type Dispositivo interface {
	// Abrir devuelve un descriptor para el nombre dado
	Abrir(nombre string) (int, error)
	Cerrar(id int) error
	// Leer devuelve hasta n bytes, menos si se alcanzó el final de los datos
	Leer(id int, n int) ([]byte, error)
	Escribir(id int, datos []byte) (int, error)
	// Posicionar mueve el cursor a un desplazamiento absoluto
	Posicionar(id int, offset int64) error
}

func descriptorValido(id int) bool {
	return id >= 0 && id < MaxDescriptores
}
