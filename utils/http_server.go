package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"sync"
)

// HTTPHandlerFunc produce la respuesta JSON de una consulta
type HTTPHandlerFunc func(*http.Request) (interface{}, error)

// HTTPServer expone consultas de solo lectura de un módulo
type HTTPServer struct {
	IP       string
	Puerto   int
	Nombre   string
	handlers map[string]HTTPHandlerFunc
	Listener net.Listener

	mutex   sync.Mutex
	server  *http.Server
	cerrado bool
}

// NewHTTPServer crea un nuevo servidor HTTP
func NewHTTPServer(ip string, puerto int, nombre string) *HTTPServer {
	return &HTTPServer{
		IP:       ip,
		Puerto:   puerto,
		Nombre:   nombre,
		handlers: make(map[string]HTTPHandlerFunc),
	}
}

// RegisterHTTPHandler registra un manejador GET para una ruta
func (s *HTTPServer) RegisterHTTPHandler(ruta string, handler HTTPHandlerFunc) {
	s.handlers[ruta] = handler
}

// Handler arma el mux con las rutas registradas más /health
func (s *HTTPServer) Handler() http.Handler {
	mux := http.NewServeMux()

	for ruta, handler := range s.handlers {
		mux.HandleFunc(ruta, func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				http.Error(w, "Método no permitido", http.StatusMethodNotAllowed)
				return
			}

			respuesta, err := handler(r)
			if err != nil {
				http.Error(w, fmt.Sprintf("Error en el manejador: %v", err), http.StatusInternalServerError)
				return
			}

			w.Header().Set("Content-Type", "application/json")
			if err := json.NewEncoder(w).Encode(respuesta); err != nil {
				ErrorLog.Error("Error codificando respuesta", "ruta", ruta, "error", err)
			}
		})
	}

	// Endpoint de healthcheck
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok", "module": s.Nombre})
	})

	return mux
}

// Start inicia el servidor HTTP y bloquea hasta que se detenga.
// Si Shutdown ya fue llamado devuelve http.ErrServerClosed sin escuchar.
func (s *HTTPServer) Start() error {
	s.mutex.Lock()
	if s.cerrado {
		s.mutex.Unlock()
		return http.ErrServerClosed
	}
	s.server = &http.Server{Handler: s.Handler()}
	servidor := s.server
	s.mutex.Unlock()

	// Si ya tiene Listener asignado se usa ese
	if s.Listener != nil {
		InfoLog.Info("Servidor HTTP escuchando", "módulo", s.Nombre, "dirección", s.Listener.Addr().String())
		return servidor.Serve(s.Listener)
	}

	servidor.Addr = fmt.Sprintf("%s:%d", s.IP, s.Puerto)
	InfoLog.Info("Servidor HTTP escuchando", "módulo", s.Nombre, "dirección", servidor.Addr)
	return servidor.ListenAndServe()
}

// Shutdown detiene el servidor, o impide que arranque si todavía no lo hizo
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	s.mutex.Lock()
	s.cerrado = true
	servidor := s.server
	s.mutex.Unlock()

	if servidor == nil {
		return nil
	}
	return servidor.Shutdown(ctx)
}
