package dispositivos

import (
	"fmt"
	"math/rand"
	"strconv"
	"sync"
	"time"
)

// DispositivoAleatorio entrega bytes pseudoaleatorios.
// El nombre al abrir es una semilla opcional; si no es un entero se siembra con la hora.
type DispositivoAleatorio struct {
	mutex       sync.Mutex
	generadores [MaxDescriptores]*rand.Rand
}

func NewDispositivoAleatorio() *DispositivoAleatorio {
	return &DispositivoAleatorio{}
}

func (d *DispositivoAleatorio) Abrir(nombre string) (int, error) {
	semilla, err := strconv.ParseInt(nombre, 10, 64)
	if err != nil {
		semilla = time.Now().UnixNano()
	}

	d.mutex.Lock()
	defer d.mutex.Unlock()

	for i, generador := range d.generadores {
		if generador == nil {
			d.generadores[i] = rand.New(rand.NewSource(semilla))
			return i, nil
		}
	}
	return -1, ErrSinDescriptores
}

func (d *DispositivoAleatorio) Cerrar(id int) error {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if _, err := d.obtener(id); err != nil {
		return err
	}
	d.generadores[id] = nil
	return nil
}

func (d *DispositivoAleatorio) Leer(id int, n int) ([]byte, error) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	generador, err := d.obtener(id)
	if err != nil {
		return nil, err
	}
	datos := make([]byte, n)
	generador.Read(datos)
	return datos, nil
}

// Escribir no escribe nada en un dispositivo aleatorio
func (d *DispositivoAleatorio) Escribir(id int, datos []byte) (int, error) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if _, err := d.obtener(id); err != nil {
		return 0, err
	}
	return 0, nil
}

// Posicionar descarta offset bytes de la secuencia
func (d *DispositivoAleatorio) Posicionar(id int, offset int64) error {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	generador, err := d.obtener(id)
	if err != nil {
		return err
	}
	if offset > 0 {
		generador.Read(make([]byte, offset))
	}
	return nil
}

func (d *DispositivoAleatorio) obtener(id int) (*rand.Rand, error) {
	if !descriptorValido(id) || d.generadores[id] == nil {
		return nil, fmt.Errorf("%w: %d", ErrDescriptorInvalido, id)
	}
	return d.generadores[id], nil
}
