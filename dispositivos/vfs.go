package dispositivos

import (
	"fmt"
	"strings"
	"sync"

	"github.com/sisoputnfrba/tp-2025-1c-LosCuervosXeneizes-simulador/utils"
)

// PrefijoAleatorio enruta la apertura al dispositivo aleatorio, con formato /dev/random[:semilla]
const PrefijoAleatorio = "/dev/random"

type mapeo struct {
	dispositivo Dispositivo
	id          int
}

// VFS traduce sus descriptores a los de cada dispositivo concreto
type VFS struct {
	mutex     sync.Mutex
	mapeos    [MaxDescriptores]*mapeo
	aleatorio Dispositivo
	archivos  Dispositivo
}

func NewVFS() *VFS {
	return &VFS{
		aleatorio: NewDispositivoAleatorio(),
		archivos:  NewSistemaArchivos(),
	}
}

func (v *VFS) Abrir(nombre string) (int, error) {
	if nombre == "" {
		return -1, ErrNombreInvalido
	}

	destino := v.archivos
	nombreDispositivo := nombre
	if strings.HasPrefix(nombre, PrefijoAleatorio) {
		destino = v.aleatorio
		nombreDispositivo = ""
		if _, semilla, ok := strings.Cut(nombre, ":"); ok {
			nombreDispositivo = semilla
		}
	}

	id, err := destino.Abrir(nombreDispositivo)
	if err != nil {
		return -1, err
	}

	v.mutex.Lock()
	defer v.mutex.Unlock()

	for i, m := range v.mapeos {
		if m == nil {
			v.mapeos[i] = &mapeo{dispositivo: destino, id: id}
			utils.InfoLog.Debug("Dispositivo abierto", "nombre", nombre, "descriptor", i)
			return i, nil
		}
	}

	// Sin lugar en la tabla del VFS, se devuelve el descriptor del dispositivo
	destino.Cerrar(id)
	return -1, ErrSinDescriptores
}

func (v *VFS) Cerrar(id int) error {
	v.mutex.Lock()
	m, err := v.obtener(id)
	if err == nil {
		v.mapeos[id] = nil
	}
	v.mutex.Unlock()

	if err != nil {
		return err
	}
	return m.dispositivo.Cerrar(m.id)
}

func (v *VFS) Leer(id int, n int) ([]byte, error) {
	m, err := v.buscar(id)
	if err != nil {
		return nil, err
	}
	return m.dispositivo.Leer(m.id, n)
}

func (v *VFS) Escribir(id int, datos []byte) (int, error) {
	m, err := v.buscar(id)
	if err != nil {
		return 0, err
	}
	return m.dispositivo.Escribir(m.id, datos)
}

func (v *VFS) Posicionar(id int, offset int64) error {
	m, err := v.buscar(id)
	if err != nil {
		return err
	}
	return m.dispositivo.Posicionar(m.id, offset)
}

func (v *VFS) buscar(id int) (*mapeo, error) {
	v.mutex.Lock()
	defer v.mutex.Unlock()
	return v.obtener(id)
}

func (v *VFS) obtener(id int) (*mapeo, error) {
	if !descriptorValido(id) || v.mapeos[id] == nil {
		return nil, fmt.Errorf("%w: %d", ErrDescriptorInvalido, id)
	}
	return v.mapeos[id], nil
}
