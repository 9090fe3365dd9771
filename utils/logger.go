package utils

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

var (
	InfoLog  = slog.Default()
	ErrorLog = slog.Default()
)

// InicializarLogger configura los loggers globales sobre stdout
func InicializarLogger(logLevel string, moduleName string) {
	configurarLoggers(os.Stdout, logLevel, moduleName)
}

// InicializarLoggerArchivo escribe tanto en consola como en el archivo indicado.
// El archivo se abre en modo append y queda abierto mientras viva el proceso.
func InicializarLoggerArchivo(logLevel string, moduleName string, logPath string) error {
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0666)
	if err != nil {
		return fmt.Errorf("error al abrir archivo de log %s: %w", logPath, err)
	}

	configurarLoggers(io.MultiWriter(os.Stdout, logFile), logLevel, moduleName)
	return nil
}

func configurarLoggers(salida io.Writer, logLevel string, moduleName string) {
	level, err := ConvertirNivelLog(logLevel)

	handler := slog.NewTextHandler(salida, &slog.HandlerOptions{
		Level: level,
	})

	logger := slog.New(handler).With("modulo", moduleName)

	InfoLog = logger
	ErrorLog = logger

	if err != nil {
		InfoLog.Warn(err.Error())
	}
}

// ConvertirNivelLog traduce el nivel del archivo de configuración a slog.Level.
// Ante un nivel desconocido devuelve INFO junto con un error descriptivo.
func ConvertirNivelLog(logLevel string) (slog.Level, error) {
	switch logLevel {
	case "debug", "DEBUG":
		return slog.LevelDebug, nil
	case "info", "INFO", "":
		return slog.LevelInfo, nil
	case "warn", "WARN":
		return slog.LevelWarn, nil
	case "error", "ERROR":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("no existe el nivel de log %q, se usa INFO por defecto", logLevel)
	}
}
