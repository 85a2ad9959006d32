package journeyplanner

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/ourenbus/journey-planner/config"
	"github.com/ourenbus/journey-planner/gtfs"
	"github.com/ourenbus/journey-planner/metrics"
	"github.com/ourenbus/journey-planner/planner"
)

// Server exposes the journey planner over HTTP. The schedule snapshot is
// fixed at construction; reloading means building a new Server.
type Server struct {
	cfg      config.AppConfig
	idx      *gtfs.Index
	planner  *planner.Planner
	mcol     *metrics.Collector
	validate *validator.Validate

	httpSrv    *http.Server
	metricsSrv *http.Server
}

// NewServer wires a planner over the given snapshot. mcol may be nil.
func NewServer(cfg config.AppConfig, idx *gtfs.Index, mcol *metrics.Collector) *Server {
	if mcol != nil {
		st := idx.Stats()
		mcol.ScheduleStops.Set(float64(st.Stops))
		mcol.ScheduleTrips.Set(float64(st.Trips))
	}
	return &Server{
		cfg:      cfg,
		idx:      idx,
		planner:  planner.New(idx, planner.OptionsFromConfig(cfg.Planner)),
		mcol:     mcol,
		validate: validator.New(),
	}
}

// Start launches the API server (and the metrics server when configured).
func (s *Server) Start() {
	r := mux.NewRouter()
	r.HandleFunc("/api/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/api/journey", s.handleJourney).Methods(http.MethodGet)

	handler := cors.Default().Handler(recoveryMiddleware(loggingMiddleware(r)))

	addr := fmt.Sprintf(":%d", s.cfg.Server.Port)
	s.httpSrv = &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	go func() {
		if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()
	log.Printf("server listening on %s", addr)

	if s.mcol != nil && s.cfg.Metrics.Addr != "" {
		s.metricsSrv = s.mcol.Serve(s.cfg.Metrics.Addr)
	}
}

// HandleGracefulShutdown blocks until SIGINT/SIGTERM, then drains the servers.
func (s *Server) HandleGracefulShutdown() {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	log.Printf("shutdown signal received")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if s.httpSrv != nil {
		if err := s.httpSrv.Shutdown(ctx); err != nil {
			log.Printf("server shutdown error: %v", err)
		} else {
			log.Printf("server shut down successfully")
		}
	}
	if s.metricsSrv != nil {
		_ = s.metricsSrv.Shutdown(ctx)
	}
}
