package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/sisoputnfrba/tp-2025-1c-LosCuervosXeneizes-simulador/kernel"
	"github.com/sisoputnfrba/tp-2025-1c-LosCuervosXeneizes-simulador/programas"
	"github.com/sisoputnfrba/tp-2025-1c-LosCuervosXeneizes-simulador/utils"
)

func main() {
	utils.InicializarLogger("INFO", "simulador")

	if len(os.Args) >= 2 && os.Args[1] == "estado" {
		if err := ejecutarEstado(os.Args[2:]); err != nil {
			utils.ErrorLog.Error("No se pudo consultar el estado", "error", err)
			os.Exit(1)
		}
		return
	}

	if len(os.Args) < 3 {
		fmt.Fprintf(os.Stderr, "Uso: %s <archivo_configuracion> <programa> [prioridad]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "     %s estado <ip> <puerto>\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Programas: %v\n", programas.NombresEscenarios())
		fmt.Fprintf(os.Stderr, "Prioridades: REALTIME, INTERACTIVE (por defecto), BACKGROUND\n")
		fmt.Fprintf(os.Stderr, "Ejemplo: %s configs/simulador-config.json PingPong\n", os.Args[0])
		os.Exit(1)
	}

	prioridad, err := prioridadInicial(os.Args[3:])
	if err != nil {
		utils.ErrorLog.Error("Prioridad inválida", "error", err)
		os.Exit(1)
	}

	if err := ejecutarSimulacion(os.Args[1], os.Args[2], prioridad); err != nil {
		utils.ErrorLog.Error("Error durante la simulación", "error", err)
		os.Exit(1)
	}
}

// prioridadInicial lee el argumento opcional de prioridad de los procesos del escenario
func prioridadInicial(args []string) (kernel.Prioridad, error) {
	if len(args) == 0 {
		return kernel.PrioridadInteractiva, nil
	}
	return kernel.ParsePrioridad(args[0])
}

func ejecutarSimulacion(configPath string, nombrePrograma string, prioridad kernel.Prioridad) error {
	config, err := cargarConfiguracion(configPath)
	if err != nil {
		return err
	}

	if config.LogFile != "" {
		if err := utils.InicializarLoggerArchivo(config.LogLevel, "simulador", config.LogFile); err != nil {
			return err
		}
	} else {
		utils.InicializarLogger(config.LogLevel, "simulador")
	}

	escenario, err := programas.BuscarEscenario(nombrePrograma)
	if err != nil {
		return err
	}

	k, err := kernel.Nuevo(config.Config)
	if err != nil {
		return err
	}
	defer k.Detener()

	if config.PuertoMonitor > 0 {
		monitor := iniciarMonitor(k, config.IPMonitor, config.PuertoMonitor)
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			monitor.Shutdown(ctx)
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	utils.InfoLog.Info("Simulación iniciada", "programa", nombrePrograma, "prioridad", prioridad)
	escenario(k, prioridad)

	if err := k.Esperar(ctx); err != nil {
		utils.InfoLog.Info("Ctrl+C recibido. Finalizando simulación")
		return nil
	}
	utils.InfoLog.Info("Simulación finalizada", "programa", nombrePrograma)
	return nil
}

func ejecutarEstado(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("uso: estado <ip> <puerto>")
	}
	puerto, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("el puerto debe ser un número entero: %w", err)
	}
	return consultarEstado(args[0], puerto)
}
