package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/server/responses"
	"git.home.luguber.info/inful/docsite/internal/version"
)

// ReadyFunc reports why the server cannot serve content, or nil.
type ReadyFunc func(ctx context.Context) error

// MonitoringHandlers contains health and readiness handlers.
type MonitoringHandlers struct {
	startTime    time.Time
	ready        ReadyFunc
	now          func() time.Time
	errorAdapter *errors.HTTPErrorAdapter
}

// NewMonitoringHandlers creates monitoring handlers. A nil ready is always ready.
func NewMonitoringHandlers(startTime time.Time, ready ReadyFunc, logger *slog.Logger) *MonitoringHandlers {
	if ready == nil {
		ready = func(context.Context) error { return nil }
	}
	return &MonitoringHandlers{
		startTime:    startTime,
		ready:        ready,
		now:          time.Now,
		errorAdapter: errors.NewHTTPErrorAdapter(logger),
	}
}

// HandleHealthCheck reports liveness.
func (h *MonitoringHandlers) HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	now := h.now()
	health := &responses.HealthResponse{
		Status:    "healthy",
		Timestamp: now.UTC(),
		Version:   version.Version,
		Uptime:    now.Sub(h.startTime).Seconds(),
	}
	if err := writeJSONPretty(w, r, http.StatusOK, health); err != nil {
		h.errorAdapter.WriteErrorResponse(w, r,
			errors.WrapError(err, errors.CategoryInternal, "failed to write health response").Build())
	}
}

// HandleReadiness reports whether the content store is readable.
func (h *MonitoringHandlers) HandleReadiness(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	resp := responses.ReadinessResponse{Status: "ready"}
	if err := h.ready(r.Context()); err != nil {
		status = http.StatusServiceUnavailable
		resp = responses.ReadinessResponse{Status: "not ready", Reason: "content store unavailable"}
	}
	if err := writeJSON(w, status, resp); err != nil {
		h.errorAdapter.WriteErrorResponse(w, r,
			errors.WrapError(err, errors.CategoryInternal, "failed to write readiness response").Build())
	}
}
