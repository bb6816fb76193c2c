// Package httpserver wires the docs and admin HTTP servers.
package httpserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	derrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/render"
	"git.home.luguber.info/inful/docsite/internal/server/handlers"
	smw "git.home.luguber.info/inful/docsite/internal/server/middleware"
	"git.home.luguber.info/inful/docsite/internal/site"
)

// Server manages the docs and admin HTTP endpoints.
type Server struct {
	docsServer  *http.Server
	adminServer *http.Server
	docsAddr    net.Addr
	adminAddr   net.Addr
	opts        Options
	logger      *slog.Logger

	docsRoot           string
	docsHandlers       *handlers.DocsHandlers
	apiHandlers        *handlers.APIHandlers
	monitoringHandlers *handlers.MonitoringHandlers

	errorAdapter *derrors.HTTPErrorAdapter
}

// New constructs a new HTTP server wiring instance.
func New(s *site.Site, pages *render.Pages, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.StartTime.IsZero() {
		opts.StartTime = time.Now()
	}
	return &Server{
		opts:               opts,
		logger:             opts.Logger,
		docsRoot:           s.DocsRoot(),
		docsHandlers:       handlers.NewDocsHandlers(pages, opts.Logger),
		apiHandlers:        handlers.NewAPIHandlers(s, opts.CacheControl, opts.Logger),
		monitoringHandlers: handlers.NewMonitoringHandlers(opts.StartTime, opts.Ready, opts.Logger),
		errorAdapter:       derrors.NewHTTPErrorAdapter(opts.Logger),
	}
}

// Start binds both ports and starts serving. Ports are bound before either
// server starts so a conflict fails fast without leaving one half running.
func (s *Server) Start(ctx context.Context) error {
	type preBind struct {
		name string
		port int
		ln   net.Listener
	}
	binds := []preBind{
		{name: "docs", port: s.opts.DocsPort},
		{name: "admin", port: s.opts.AdminPort},
	}
	var bindErrs []error
	lc := net.ListenConfig{}
	for i := range binds {
		addr := fmt.Sprintf(":%d", binds[i].port)
		ln, err := lc.Listen(ctx, "tcp", addr)
		if err != nil {
			bindErrs = append(bindErrs, fmt.Errorf("%s port %d: %w", binds[i].name, binds[i].port, err))
			continue
		}
		binds[i].ln = ln
	}
	if len(bindErrs) > 0 {
		for _, b := range binds {
			if b.ln != nil {
				_ = b.ln.Close()
			}
		}
		return derrors.WrapError(errors.Join(bindErrs...), derrors.CategoryRuntime, "http startup failed").Build()
	}

	s.docsServer = s.newServer("docs", s.docsMux())
	s.adminServer = s.newServer("admin", s.adminMux())
	s.docsAddr = binds[0].ln.Addr()
	s.adminAddr = binds[1].ln.Addr()
	s.serve("docs", s.docsServer, binds[0].ln)
	s.serve("admin", s.adminServer, binds[1].ln)

	s.logger.Info("HTTP servers started",
		slog.String("docs_addr", s.docsAddr.String()),
		slog.String("admin_addr", s.adminAddr.String()))
	return nil
}

// DocsAddr returns the bound docs address, or nil before Start.
func (s *Server) DocsAddr() net.Addr { return s.docsAddr }

// AdminAddr returns the bound admin address, or nil before Start.
func (s *Server) AdminAddr() net.Addr { return s.adminAddr }

// Stop gracefully shuts down both servers.
func (s *Server) Stop(ctx context.Context) error {
	var errs []error
	if s.adminServer != nil {
		if err := s.adminServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("admin server shutdown: %w", err))
		}
	}
	if s.docsServer != nil {
		if err := s.docsServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("docs server shutdown: %w", err))
		}
	}
	if len(errs) > 0 {
		return derrors.WrapError(errors.Join(errs...), derrors.CategoryRuntime, "http shutdown failed").Build()
	}
	s.logger.Info("HTTP servers stopped")
	return nil
}

func (s *Server) newServer(name string, mux http.Handler) *http.Server {
	chain := smw.Chain(s.logger, s.errorAdapter, s.opts.Recorder, name)
	return &http.Server{
		Handler:           chain(mux),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
		ErrorLog:          slog.NewLogLogger(s.logger.Handler(), slog.LevelWarn),
	}
}

// serve launches srv on its pre-bound listener.
func (s *Server) serve(kind string, srv *http.Server, ln net.Listener) {
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error(fmt.Sprintf("%s server error", kind), logfields.Error(err))
		}
	}()
}
