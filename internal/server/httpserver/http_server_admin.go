package httpserver

import "net/http"

func (s *Server) adminMux() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.monitoringHandlers.HandleHealthCheck)
	mux.HandleFunc("GET /health", s.monitoringHandlers.HandleHealthCheck)
	mux.HandleFunc("GET /readyz", s.monitoringHandlers.HandleReadiness)
	mux.HandleFunc("GET /ready", s.monitoringHandlers.HandleReadiness)

	if s.opts.MetricsHandler != nil {
		mux.Handle("GET /metrics", s.opts.MetricsHandler)
	}
	return mux
}
