// Package handlers contains HTTP handlers for the docsite servers.
//
// This package provides handlers for:
//   - Rendered documentation pages (docs)
//   - The navigation JSON API (sibling files, sections, routes)
//   - Health and readiness endpoints (monitoring)
//
// Handlers report failures through the foundation/errors HTTP adapter so
// that no internal diagnostic reaches a visitor, and JSON bodies use the
// server/responses types.
package handlers
