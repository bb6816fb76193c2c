// Package responses defines API response types used by docsite HTTP handlers.
package responses

import (
	"time"

	"git.home.luguber.info/inful/docsite/internal/navigation"
)

// SiblingFilesResponse lists the entries beside the requested page.
type SiblingFilesResponse struct {
	Files []navigation.Item `json:"files"`
}

// SectionsResponse lists the corpus sections.
type SectionsResponse struct {
	Sections []navigation.Item `json:"sections"`
}

// RoutesResponse lists every addressable page.
type RoutesResponse struct {
	Count  int      `json:"count"`
	Routes []string `json:"routes"`
}

// HealthResponse represents the health check API response.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	Uptime    float64   `json:"uptime"`
}

// ReadinessResponse reports whether the content store can be served.
type ReadinessResponse struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}
