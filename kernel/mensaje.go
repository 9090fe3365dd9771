package kernel

import "fmt"

// PIDNinguno identifica al kernel como emisor y a la ausencia de proceso
const PIDNinguno = -1

// MensajeKernel viaja entre procesos siempre por copia
type MensajeKernel struct {
	Emisor  int    `json:"emisor"`
	Destino int    `json:"destino"`
	Tipo    int    `json:"tipo"`
	Datos   []byte `json:"datos"`
}

// Copiar devuelve una copia profunda, los datos no se comparten
func (m MensajeKernel) Copiar() MensajeKernel {
	copia := m
	if m.Datos != nil {
		copia.Datos = make([]byte, len(m.Datos))
		copy(copia.Datos, m.Datos)
	}
	return copia
}

func (m MensajeKernel) String() string {
	return fmt.Sprintf("Mensaje{Emisor: %d, Destino: %d, Tipo: %d, Datos: %d bytes}",
		m.Emisor, m.Destino, m.Tipo, len(m.Datos))
}
