// Package daemon runs the docsite HTTP servers and the navigation cache
// sweeper until its context is cancelled.
package daemon

import (
	"context"
	"io/fs"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/content"
	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/metrics"
	"git.home.luguber.info/inful/docsite/internal/render"
	"git.home.luguber.info/inful/docsite/internal/server/handlers"
	"git.home.luguber.info/inful/docsite/internal/server/httpserver"
	"git.home.luguber.info/inful/docsite/internal/site"
)

// Status represents the current state of the daemon.
type Status string

const (
	StatusStopped  Status = "stopped"
	StatusStarting Status = "starting"
	StatusRunning  Status = "running"
	StatusStopping Status = "stopping"
	StatusError    Status = "error"
)

// SweepJobName names the cache sweeper in the scheduler and in logs.
const SweepJobName = "navigation-cache-sweep"

// Options supplies the daemon's collaborators. Zero values select the
// production defaults.
type Options struct {
	// FS is the content store; defaults to the configured content root.
	FS       fs.FS
	Logger   *slog.Logger
	Registry *prom.Registry
	// Ports override the configured ports; used by tests to bind port 0.
	DocsPort, AdminPort *int

	// ConfigPath, when set, is watched and reloaded on change. Only the
	// log level takes effect live; Level must be the logger's LevelVar.
	ConfigPath     string
	Level          *slog.LevelVar
	ReloadDebounce time.Duration
}

// Daemon represents the main daemon service.
type Daemon struct {
	config    *config.Config
	status    atomic.Value
	startTime time.Time
	mu        sync.Mutex
	logger    *slog.Logger

	fsys       fs.FS
	site       *site.Site
	httpServer *httpserver.Server
	scheduler  *Scheduler
	level      *slog.LevelVar

	configPath     string
	reloadDebounce time.Duration
	watcher        *ConfigWatcher
}

// New wires a daemon from cfg.
func New(cfg *config.Config, opts Options) (*Daemon, error) {
	if cfg == nil {
		return nil, errors.ConfigError("configuration is required").Build()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	fsys := opts.FS
	if fsys == nil {
		fsys = content.DirStore(cfg.Content.Root)
	}
	reg := opts.Registry
	if reg == nil {
		reg = prom.NewRegistry()
	}
	recorder := metrics.NewPrometheusRecorder(reg)

	s := site.New(fsys, site.Config{
		Content:       cfg.ContentOptions(),
		DocsRoot:      cfg.Content.DocsRoot,
		CacheTTL:      cfg.Navigation.CacheTTL,
		CacheCapacity: cfg.Navigation.CacheCapacity,
		Logger:        logger,
		Recorder:      recorder,
	})
	renderer, err := render.New()
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryRender, "failed to load page templates").Build()
	}
	scheduler, err := NewScheduler(logger)
	if err != nil {
		return nil, err
	}

	d := &Daemon{
		config:    cfg,
		logger:    logger,
		fsys:      fsys,
		site:      s,
		scheduler: scheduler,
		level:     opts.Level,

		configPath:     opts.ConfigPath,
		reloadDebounce: opts.ReloadDebounce,
	}
	d.status.Store(StatusStopped)

	docsPort, adminPort := cfg.Server.DocsPort, cfg.Server.AdminPort
	if opts.DocsPort != nil {
		docsPort = *opts.DocsPort
	}
	if opts.AdminPort != nil {
		adminPort = *opts.AdminPort
	}
	d.httpServer = httpserver.New(s, render.NewPages(s, renderer, cfg.Site.Title), httpserver.Options{
		DocsPort:       docsPort,
		AdminPort:      adminPort,
		CacheControl:   handlers.SharedCacheControl(cfg.Server.SharedCacheMaxAge, cfg.Server.StaleWhileRevalidate),
		Logger:         logger,
		Recorder:       recorder,
		MetricsHandler: metrics.HTTPHandler(reg),
		Ready:          d.ready,
	})
	return d, nil
}

// GetStatus returns the current daemon status.
func (d *Daemon) GetStatus() Status {
	return d.status.Load().(Status)
}

// Site returns the site the daemon serves.
func (d *Daemon) Site() *site.Site { return d.site }

// DocsAddr returns the bound docs address once running.
func (d *Daemon) DocsAddr() net.Addr { return d.httpServer.DocsAddr() }

// AdminAddr returns the bound admin address once running.
func (d *Daemon) AdminAddr() net.Addr { return d.httpServer.AdminAddr() }

// Start binds the servers and schedules the cache sweeper. It returns once
// everything is running.
func (d *Daemon) Start(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if st := d.GetStatus(); st != StatusStopped {
		return errors.NewError(errors.CategoryRuntime, "daemon is not stopped").
			WithContext("status", string(st)).
			Build()
	}
	d.status.Store(StatusStarting)
	d.startTime = time.Now()

	if _, err := fs.Stat(d.fsys, "."); err != nil {
		d.logger.Warn("Content root is not readable; pages will be empty until it is",
			logfields.Path(d.config.Content.Root), logfields.Error(err))
	}

	if _, err := d.scheduler.ScheduleEvery(SweepJobName, d.config.Navigation.SweepInterval, d.sweep); err != nil {
		d.status.Store(StatusError)
		return err
	}
	if err := d.httpServer.Start(ctx); err != nil {
		d.status.Store(StatusError)
		_ = d.scheduler.Stop()
		return err
	}
	d.scheduler.Start()
	if d.configPath != "" {
		if err := d.startWatcher(); err != nil {
			// Serving continues without live reload.
			d.logger.Warn("Configuration reload disabled", logfields.Error(err))
		}
	}

	d.status.Store(StatusRunning)
	d.logger.Info("docsite daemon started",
		logfields.Path(d.config.Content.Root),
		slog.String("docs_addr", d.DocsAddr().String()),
		slog.String("admin_addr", d.AdminAddr().String()),
		slog.Duration("sweep_interval", d.config.Navigation.SweepInterval))
	return nil
}

// Stop gracefully shuts down the servers and the scheduler.
func (d *Daemon) Stop(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	switch d.GetStatus() {
	case StatusStopped, StatusStopping:
		return nil
	}
	d.status.Store(StatusStopping)
	d.logger.Info("Stopping docsite daemon")

	var errs []error
	if d.watcher != nil {
		if err := d.watcher.Stop(); err != nil {
			errs = append(errs, err)
		}
		d.watcher = nil
	}
	if err := d.scheduler.Stop(); err != nil {
		errs = append(errs, err)
	}
	if err := d.httpServer.Stop(ctx); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		d.status.Store(StatusError)
		return errors.WrapError(errs[0], errors.CategoryRuntime, "daemon shutdown incomplete").Build()
	}

	d.status.Store(StatusStopped)
	d.logger.Info("docsite daemon stopped", slog.Duration("uptime", time.Since(d.startTime)))
	return nil
}

// Run starts the daemon, blocks until ctx is done, then stops it within
// the configured shutdown timeout.
func (d *Daemon) Run(ctx context.Context) error {
	if err := d.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()

	stopCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.config.Server.ShutdownTimeout)
	defer cancel()
	return d.Stop(stopCtx)
}

func (d *Daemon) sweep() {
	if n := d.site.Sweep(); n > 0 {
		d.logger.Debug("Swept expired navigation entries", logfields.Job(SweepJobName), logfields.Count(n))
	}
}

func (d *Daemon) startWatcher() error {
	w, err := NewConfigWatcher(d.configPath, d.reloadDebounce, d.applyConfig, d.logger)
	if err != nil {
		return err
	}
	if err := w.Start(); err != nil {
		return err
	}
	d.watcher = w
	return nil
}

// applyConfig takes a reloaded configuration. The log level is applied and
// cached navigation is dropped; every other change needs a restart and is
// only reported.
func (d *Daemon) applyConfig(next *config.Config) {
	if d.level != nil {
		d.level.Set(next.Logging.Level.Slog())
	}
	d.site.Navigation().Invalidate()

	if fields := restartFields(d.config, next); len(fields) > 0 {
		d.logger.Warn("Configuration changes require a restart to take effect",
			slog.Any("sections", fields))
	}
	d.logger.Info("Configuration reloaded", slog.String("log_level", string(next.Logging.Level)))
}

func restartFields(cur, next *config.Config) []string {
	var fields []string
	if cur.Site != next.Site {
		fields = append(fields, "site")
	}
	if cur.Content != next.Content {
		fields = append(fields, "content")
	}
	if cur.Navigation != next.Navigation {
		fields = append(fields, "navigation")
	}
	if cur.Server != next.Server {
		fields = append(fields, "server")
	}
	return fields
}

func (d *Daemon) ready(context.Context) error {
	if d.GetStatus() != StatusRunning {
		return errors.NewError(errors.CategoryRuntime, "daemon not running").Build()
	}
	_, err := fs.Stat(d.fsys, ".")
	return err
}
