package programas

import (
	"fmt"
	"strings"
	"time"

	"github.com/sisoputnfrba/tp-2025-1c-LosCuervosXeneizes-simulador/kernel"
	"github.com/sisoputnfrba/tp-2025-1c-LosCuervosXeneizes-simulador/utils"
)

const (
	MsgPing = 1
	MsgPong = 2

	NombrePing = "Ping"
	NombrePong = "Pong"
)

// NuevoPing espera a que arranque Pong, le manda intercambios mensajes PING y
// espera cada PONG. Si informar no es nil recibe la cantidad completada.
func NuevoPing(espera time.Duration, intercambios int, informar func(completados int)) kernel.Programa {
	return func(p *kernel.Proceso) {
		utils.InfoLog.Info("Ping iniciado", "pid", p.PID(), "nombre", p.Nombre())
		completados := 0
		defer func() {
			if informar != nil {
				informar(completados)
			}
		}()

		p.Dormir(espera)

		pong := p.BuscarPID(NombrePong)
		if pong == kernel.PIDNinguno {
			utils.ErrorLog.Error("Ping no encontró a Pong")
			return
		}
		utils.InfoLog.Info("Ping encontró a Pong", "pid_pong", pong)

		for completados < intercambios {
			texto := fmt.Sprintf("PING %d", completados)
			p.Enviar(pong, MsgPing, []byte(texto))
			utils.InfoLog.Info("Ping envió mensaje", "mensaje", texto)

			respuesta, ok := p.Recibir()
			if ok && respuesta.Tipo == MsgPong {
				utils.InfoLog.Info("Ping recibió respuesta", "mensaje", string(respuesta.Datos))
				completados++
			}

			p.Ceder()
		}

		utils.InfoLog.Info("Ping finalizado", "intercambios", completados)
	}
}

// Ping hace cinco intercambios después de esperar un segundo
var Ping = NuevoPing(time.Second, 5, nil)

// Pong responde cada PING con un PONG del mismo número. No termina nunca.
func Pong(p *kernel.Proceso) {
	utils.InfoLog.Info("Pong iniciado", "pid", p.PID(), "nombre", p.Nombre())

	for {
		mensaje, ok := p.Recibir()
		if ok && mensaje.Tipo == MsgPing {
			texto := string(mensaje.Datos)
			utils.InfoLog.Info("Pong recibió mensaje", "mensaje", texto, "emisor", mensaje.Emisor)

			numero := ""
			if campos := strings.Fields(texto); len(campos) > 1 {
				numero = campos[1]
			}
			respuesta := "PONG " + numero
			p.Enviar(mensaje.Emisor, MsgPong, []byte(respuesta))
			utils.InfoLog.Info("Pong envió respuesta", "mensaje", respuesta)
		}

		p.Ceder()
	}
}
