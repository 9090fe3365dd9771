package main

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/sisoputnfrba/tp-2025-1c-LosCuervosXeneizes-simulador/kernel"
	"github.com/sisoputnfrba/tp-2025-1c-LosCuervosXeneizes-simulador/utils"
)

// iniciarMonitor expone la instantánea del kernel en GET /estado
func iniciarMonitor(k *kernel.Kernel, ip string, puerto int) *utils.HTTPServer {
	servidor := utils.NewHTTPServer(ip, puerto, "simulador")
	servidor.RegisterHTTPHandler("/estado", func(r *http.Request) (interface{}, error) {
		return k.Instantanea(), nil
	})

	go func() {
		if err := servidor.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.ErrorLog.Error("Error en el monitor HTTP", "error", err)
		}
	}()
	return servidor
}

// consultarEstado imprime la instantánea de un simulador en ejecución
func consultarEstado(ip string, puerto int) error {
	cliente := utils.NewHTTPClient(ip, puerto, "simulador->monitor")
	if err := cliente.VerificarConexion(); err != nil {
		return err
	}

	var estado kernel.Instantanea
	if err := cliente.ObtenerJSON("/estado", &estado); err != nil {
		return err
	}

	fmt.Printf("Proceso actual: %d\n", estado.Actual)
	fmt.Printf("Marcos libres: %d/%d - Slots de swap: %d - TLB: %d aciertos, %d fallos\n",
		estado.MarcosLibres, estado.MarcosTotales, estado.SlotsSwap, estado.AciertosTLB, estado.FallosTLB)
	for _, p := range estado.Procesos {
		fmt.Printf("(%d) %s [%s] %s - páginas: %d asignadas, %d residentes - mensajes: %d\n",
			p.PID, p.Nombre, p.Prioridad, p.Estado, p.PaginasAsignadas, p.PaginasResidentes, p.MensajesPendientes)
	}
	return nil
}
