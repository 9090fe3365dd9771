package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// CargarConfiguracion decodifica el archivo JSON de la ruta en una instancia nueva de T.
func CargarConfiguracion[T any](ruta string) (*T, error) {
	var config T
	if err := CargarConfiguracionSobre(ruta, &config); err != nil {
		return nil, err
	}
	return &config, nil
}

// CargarConfiguracionSobre decodifica el archivo encima de valores ya cargados,
// de modo que las claves ausentes conservan sus valores por defecto.
// Los campos desconocidos se rechazan para detectar errores de tipeo en las claves.
func CargarConfiguracionSobre[T any](ruta string, config *T) error {
	InfoLog.Info("Cargando configuración", "ruta", ruta)

	absPath, err := filepath.Abs(ruta)
	if err != nil {
		return fmt.Errorf("error obteniendo ruta absoluta de %s: %w", ruta, err)
	}

	file, err := os.Open(absPath)
	if err != nil {
		return fmt.Errorf("error abriendo archivo de configuración %s: %w", absPath, err)
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(config); err != nil {
		return fmt.Errorf("error decodificando configuración %s: %w", absPath, err)
	}

	InfoLog.Info("Configuración cargada correctamente", "archivo", absPath)
	return nil
}
