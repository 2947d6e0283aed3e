// Package web exposes the allocation pipeline over HTTP: a multipart
// CSV upload endpoint that runs one job synchronously and returns the
// assembled reports, plus a health check.
package web

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"premalloc/internal/model"
	"premalloc/internal/pipeline"
)

// Server is the premalloc HTTP server.
type Server struct {
	config     *model.Config
	httpServer *http.Server
	router     *mux.Router
}

// NewServer creates a server with its pipeline and routes wired.
func NewServer(cfg *model.Config) (*Server, error) {
	pipe, err := pipeline.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("build pipeline: %w", err)
	}

	s := &Server{config: cfg}
	s.setupRoutes(pipe)

	s.httpServer = &http.Server{
		Addr:        fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:     s.router,
		ReadTimeout: 30 * time.Second,
		// A run geocodes sequentially with an inter-call delay, so the
		// response can legitimately take minutes for a full file.
		WriteTimeout: 15 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}
	return s, nil
}

func (s *Server) setupRoutes(pipe *pipeline.Pipeline) {
	s.router = mux.NewRouter()

	h := &GeocodeHandler{pipeline: pipe, config: s.config}

	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/geocode", h.Upload).Methods(http.MethodPost)
	api.HandleFunc("/health", h.Health).Methods(http.MethodGet)

	s.router.Use(corsMiddleware())
}

// Start runs the server until SIGINT/SIGTERM, then shuts down
// gracefully.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		fmt.Printf("premalloc server listening on http://%s\n", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		}
	}()

	<-stop
	fmt.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	fmt.Println("Server stopped")
	return nil
}
