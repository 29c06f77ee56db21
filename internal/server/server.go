// Package server is the web surface: the landing page, one form page per
// methodology, and a small JSON API over the same validate/assemble pipeline.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/josephgoksu/promptfy/internal/logger"
	"github.com/josephgoksu/promptfy/internal/methodology"
	"github.com/josephgoksu/promptfy/internal/telemetry"
)

// Options configure a Server. Zero values fall back to the embedded catalog,
// a no-op logger and a no-op telemetry client.
type Options struct {
	Host           string
	Port           int
	AllowedOrigins []string
	Prefill        bool
	Catalog        *methodology.Catalog
	Logger         *logger.Logger
	Telemetry      telemetry.Client
}

type Server struct {
	catalog   *methodology.Catalog
	log       *logger.Logger
	telemetry telemetry.Client
	origins   []string
	prefill   atomic.Bool

	engine *gin.Engine
	server *http.Server
}

func New(opts Options) (*Server, error) {
	if opts.Catalog == nil {
		opts.Catalog = methodology.Default()
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	if opts.Telemetry == nil {
		opts.Telemetry = telemetry.NewNoopClient()
	}

	s := &Server{
		catalog:   opts.Catalog,
		log:       opts.Logger,
		telemetry: opts.Telemetry,
		origins:   opts.AllowedOrigins,
	}
	s.prefill.Store(opts.Prefill)

	engine, err := s.registerRoutes()
	if err != nil {
		return nil, err
	}
	s.engine = engine

	s.server = &http.Server{
		Addr:              net.JoinHostPort(opts.Host, strconv.Itoa(opts.Port)),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

// Addr is the listen address.
func (s *Server) Addr() string {
	return s.server.Addr
}

// Handler exposes the router for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// SetPrefill toggles whether new form pages open with example text.
// Safe to call while serving.
func (s *Server) SetPrefill(on bool) {
	s.prefill.Store(on)
}

func (s *Server) Start(wg *sync.WaitGroup, errChan chan<- error) {
	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		errChan <- fmt.Errorf("listen %s: %w", s.server.Addr, err)
		return
	}
	s.serve(wg, ln, errChan)
}

func (s *Server) serve(wg *sync.WaitGroup, ln net.Listener, errChan chan<- error) {
	s.log.Info("web server listening", "addr", ln.Addr().String())
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("web server error: %w", err)
		}
	}()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
