package dispositivos

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/sisoputnfrba/tp-2025-1c-LosCuervosXeneizes-simulador/utils"
)

// SufijoCrear pedido al abrir indica que el archivo se crea si no existe
const SufijoCrear = ":create"

// SistemaArchivos respalda descriptores con archivos del host
type SistemaArchivos struct {
	mutex    sync.Mutex
	archivos [MaxDescriptores]*os.File
}

func NewSistemaArchivos() *SistemaArchivos {
	return &SistemaArchivos{}
}

func (s *SistemaArchivos) Abrir(nombre string) (int, error) {
	flags := os.O_RDWR
	if strings.HasSuffix(nombre, SufijoCrear) {
		nombre = strings.TrimSuffix(nombre, SufijoCrear)
		flags |= os.O_CREATE
	}
	if nombre == "" {
		return -1, ErrNombreInvalido
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	for i, archivo := range s.archivos {
		if archivo != nil {
			continue
		}
		f, err := os.OpenFile(nombre, flags, 0644)
		if err != nil {
			return -1, fmt.Errorf("no se pudo abrir %s: %w", nombre, err)
		}
		s.archivos[i] = f
		utils.InfoLog.Debug("Archivo abierto", "archivo", nombre, "descriptor", i)
		return i, nil
	}
	return -1, ErrSinDescriptores
}

func (s *SistemaArchivos) Cerrar(id int) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	archivo, err := s.obtener(id)
	if err != nil {
		return err
	}
	s.archivos[id] = nil
	return archivo.Close()
}

func (s *SistemaArchivos) Leer(id int, n int) ([]byte, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	archivo, err := s.obtener(id)
	if err != nil {
		return nil, err
	}

	datos := make([]byte, n)
	leidos, err := io.ReadFull(archivo, datos)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, fmt.Errorf("error leyendo descriptor %d: %w", id, err)
	}
	return datos[:leidos], nil
}

func (s *SistemaArchivos) Escribir(id int, datos []byte) (int, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	archivo, err := s.obtener(id)
	if err != nil {
		return 0, err
	}
	escritos, err := archivo.Write(datos)
	if err != nil {
		return escritos, fmt.Errorf("error escribiendo descriptor %d: %w", id, err)
	}
	return escritos, nil
}

func (s *SistemaArchivos) Posicionar(id int, offset int64) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	archivo, err := s.obtener(id)
	if err != nil {
		return err
	}
	if _, err := archivo.Seek(offset, io.SeekStart); err != nil {
		return fmt.Errorf("error posicionando descriptor %d: %w", id, err)
	}
	return nil
}

func (s *SistemaArchivos) obtener(id int) (*os.File, error) {
	if !descriptorValido(id) || s.archivos[id] == nil {
		return nil, fmt.Errorf("%w: %d", ErrDescriptorInvalido, id)
	}
	return s.archivos[id], nil
}
