// Package server exposes the workload submission api over http
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/schema"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"github.com/threefoldtech/tfgrid-sdk-go/grid-workloads/provision"
	"github.com/threefoldtech/tfgrid-sdk-go/grid-workloads/store"
)

const (
	// RequestIDHeader carries the id of a request, generated if the client did not set it
	RequestIDHeader = "X-Request-ID"

	maxBodySize     = 1 << 20
	shutdownTimeout = 10 * time.Second
)

// Server of the workloads api
type Server struct {
	engine *provision.Engine
	store  store.Store

	router    *mux.Router
	decoder   *schema.Decoder
	registry  *prometheus.Registry
	submitted *prometheus.CounterVec
}

// New creates a new server, workloads are applied with the engine and read
// from the store
func New(engine *provision.Engine, s store.Store) *Server {
	srv := &Server{
		engine:   engine,
		store:    s,
		router:   mux.NewRouter(),
		decoder:  schema.NewDecoder(),
		registry: prometheus.NewRegistry(),
		submitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "grid_workloads_submitted_total",
			Help: "Number of submitted workloads by result.",
		}, []string{"result"}),
	}

	srv.registry.MustRegister(srv.submitted)
	srv.registerHandlers()
	return srv
}

func (s *Server) registerHandlers() {
	r := s.router

	r.HandleFunc("/workloads", WrapFunc(s.submitHandler)).Methods(http.MethodPost)
	r.HandleFunc("/nodes/{node_id}/workloads", WrapFunc(s.listHandler)).Methods(http.MethodGet)
	r.HandleFunc("/nodes/{node_id}/workloads/{workload_id:[0-9]+}", WrapFunc(s.getHandler)).Methods(http.MethodGet)
	r.HandleFunc("/nodes/{node_id}/workloads/{workload_id:[0-9]+}", WrapFunc(s.deleteHandler)).Methods(http.MethodDelete)
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	r.Use(requestID)
}

// Handler returns the http handler of the api
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves the api on addr until ctx is done
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	log.Info().Str("address", addr).Msg("server is listening")

	select {
	case err := <-errCh:
		return errors.Wrap(err, "http server error")
	case <-ctx.Done():
	}

	shutdownCtx, shutdownRelease := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownRelease()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "http shutdown error")
	}

	log.Info().Msg("graceful shutdown complete")
	return nil
}

// requestID attaches a request id and a logger holding it to every request
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)

		logger := log.With().Str("request_id", id).Logger()
		r = r.WithContext(logger.WithContext(r.Context()))

		start := time.Now()
		next.ServeHTTP(w, r)

		logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("duration", time.Since(start)).
			Msg("request served")
	})
}
