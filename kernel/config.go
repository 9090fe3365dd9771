package kernel

import (
	"errors"
	"fmt"
)

const (
	AlgoritmoAleatorio  = "ALEATORIO"
	AlgoritmoExhaustivo = "EXHAUSTIVO"
	AlgoritmoLRU        = "LRU"
)

var ErrConfigInvalida = errors.New("configuración inválida")

type Config struct {
	TamPagina        int    `json:"TAM_PAGINA"`
	TamMemoria       int    `json:"TAM_MEMORIA"`
	PaginasVirtuales int    `json:"PAGINAS_VIRTUALES"`
	EntradasTLB      int    `json:"ENTRADAS_TLB"`
	SwapfilePath     string `json:"SWAPFILE_PATH"`
	RetardoSwap      int    `json:"RETARDO_SWAP"`
	AlgoritmoVictima string `json:"ALGORITMO_VICTIMA"`
	Semilla          int64  `json:"SEMILLA"`
	LogLevel         string `json:"LOG_LEVEL"`
	LogFile          string `json:"LOG_FILE"`
}

// ConfigPorDefecto devuelve páginas de 1 KiB, 1 MiB de memoria física,
// 100 páginas virtuales por proceso y una TLB de 2 entradas
func ConfigPorDefecto() Config {
	return Config{
		TamPagina:        1024,
		TamMemoria:       1024 * 1024,
		PaginasVirtuales: 100,
		EntradasTLB:      2,
		SwapfilePath:     "pagefile.sys",
		AlgoritmoVictima: AlgoritmoAleatorio,
		LogLevel:         "info",
	}
}

func (c Config) Validar() error {
	switch {
	case c.TamPagina <= 0:
		return fmt.Errorf("%w: TAM_PAGINA debe ser positivo (%d)", ErrConfigInvalida, c.TamPagina)
	case c.TamMemoria <= 0 || c.TamMemoria%c.TamPagina != 0:
		return fmt.Errorf("%w: TAM_MEMORIA debe ser múltiplo positivo de TAM_PAGINA (%d)", ErrConfigInvalida, c.TamMemoria)
	case c.PaginasVirtuales <= 0:
		return fmt.Errorf("%w: PAGINAS_VIRTUALES debe ser positivo (%d)", ErrConfigInvalida, c.PaginasVirtuales)
	case c.EntradasTLB < 0:
		return fmt.Errorf("%w: ENTRADAS_TLB no puede ser negativo (%d)", ErrConfigInvalida, c.EntradasTLB)
	case c.SwapfilePath == "":
		return fmt.Errorf("%w: falta SWAPFILE_PATH", ErrConfigInvalida)
	case c.RetardoSwap < 0:
		return fmt.Errorf("%w: RETARDO_SWAP no puede ser negativo (%d)", ErrConfigInvalida, c.RetardoSwap)
	}

	if _, err := NuevaSeleccionVictima(c.AlgoritmoVictima); err != nil {
		return err
	}
	return nil
}

func (c Config) cantidadMarcos() int {
	return c.TamMemoria / c.TamPagina
}
