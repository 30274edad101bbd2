// Package server exposes the kolam pipeline and the design service client
// over HTTP.
//
// Routes:
//
//	GET  /healthz          liveness probe
//	POST /render           draw params (or supplied markup) in one format
//	POST /generate         remote generation from params and a design family
//	POST /generate/image   remote generation from a photo
//	POST /analyze          remote analysis of a photo
//
// Every response carries an X-Request-ID header. Errors are JSON objects
// with "error" and "code" fields; remote failures keep the service's text.
package server

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/kolam/pkg/design"
	"github.com/matzehuels/kolam/pkg/integrations/kolamkar"
	"github.com/matzehuels/kolam/pkg/kolam"
	"github.com/matzehuels/kolam/pkg/pipeline"
)

// maxBodyBytes bounds request bodies. Photos arrive base64-encoded.
const maxBodyBytes = 32 << 20

// Remote is the design service used by the generation and analysis routes.
// *kolamkar.Client implements it.
type Remote interface {
	Generate(ctx context.Context, p kolam.Params, d design.Config, refresh bool) (string, error)
	GenerateFromImage(ctx context.Context, dataURL string, refresh bool) (string, error)
	Analyze(ctx context.Context, dataURL string, refresh bool) (*kolamkar.Report, error)
}

// Server wraps http.Server with the kolam routes and graceful shutdown.
type Server struct {
	*http.Server
	runner  *pipeline.Runner
	remote  Remote
	logger  *log.Logger
	healthy atomic.Bool
}

// New creates a server listening on addr. remote may be nil, in which case
// the remote routes answer 501.
func New(addr string, runner *pipeline.Runner, remote Remote, logger *log.Logger) *Server {
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger)
	}
	if logger == nil {
		logger = runner.Logger
	}
	s := &Server{
		runner: runner,
		remote: remote,
		logger: logger,
	}
	s.Server = &http.Server{
		Addr:         addr,
		Handler:      s.Routes(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	s.healthy.Store(true)
	return s
}

// Routes builds the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Group(func(r chi.Router) {
		r.Use(middleware.AllowContentType("application/json"))
		r.Post("/render", s.handleRender)
		r.Post("/generate", s.handleGenerate)
		r.Post("/generate/image", s.handleGenerateFromImage)
		r.Post("/analyze", s.handleAnalyze)
	})
	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	done := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info("shutting down server")
		s.healthy.Store(false)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		done <- s.Shutdown(shutdownCtx)
	}()

	s.logger.Info("starting server", "addr", s.Addr)
	if err := s.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return <-done
}
