package httpserver

import (
	"log/slog"
	"net/http"
	"time"

	"git.home.luguber.info/inful/docsite/internal/metrics"
	"git.home.luguber.info/inful/docsite/internal/server/handlers"
)

// Options configures the servers. Zero ports let the kernel choose.
type Options struct {
	DocsPort  int
	AdminPort int
	// CacheControl is sent with sibling listings.
	CacheControl string

	Logger   *slog.Logger
	Recorder metrics.Recorder
	// MetricsHandler serves /metrics on the admin port when set.
	MetricsHandler http.Handler
	// Ready backs /readyz; nil is always ready.
	Ready handlers.ReadyFunc
	// StartTime is reported as the start of uptime; zero means now.
	StartTime time.Time
}
