package main

import (
	"github.com/sisoputnfrba/tp-2025-1c-LosCuervosXeneizes-simulador/kernel"
	"github.com/sisoputnfrba/tp-2025-1c-LosCuervosXeneizes-simulador/utils"
)

// SimuladorConfig agrega al kernel la dirección del monitor HTTP
type SimuladorConfig struct {
	kernel.Config
	IPMonitor     string `json:"IP_MONITOR"`
	PuertoMonitor int    `json:"PUERTO_MONITOR"` // 0 deshabilita el monitor
}

// cargarConfiguracion parte de los valores por defecto y los pisa con el archivo
func cargarConfiguracion(ruta string) (*SimuladorConfig, error) {
	config := &SimuladorConfig{
		Config:    kernel.ConfigPorDefecto(),
		IPMonitor: "127.0.0.1",
	}
	if err := utils.CargarConfiguracionSobre(ruta, config); err != nil {
		return nil, err
	}
	if err := config.Validar(); err != nil {
		return nil, err
	}
	return config, nil
}
