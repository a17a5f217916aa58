package web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
)

type Server struct {
	Hub  *Hub
	http *http.Server
}

func NewServer() *Server {
	return &Server{
		Hub: NewHub(),
	}
}

// Start serves the websocket endpoint and an optional static viewer
// directory. Blocks until the listener fails or Shutdown is called.
func (s *Server) Start(port int, distDir string) error {
	go s.Hub.Run()

	mux := http.NewServeMux()

	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		serveWs(s.Hub, w, r)
	})

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	if distDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(distDir)))
	}

	addr := fmt.Sprintf(":%d", port)
	s.http = &http.Server{Addr: addr, Handler: mux}
	log.Printf("HTTP server listening on %s", addr)
	if err := s.http.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}
