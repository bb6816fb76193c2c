// Package logfields holds the canonical slog attribute keys used across docsite.
package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyPath       = "path"
	KeyFile       = "file"
	KeySection    = "section"
	KeySlug       = "slug"
	KeyKind       = "kind"
	KeyRoute      = "route"
	KeyCount      = "count"
	KeyDurationMS = "duration_ms"
	KeyMethod     = "method"
	KeyStatus     = "status"
	KeyUserAgent  = "user_agent"
	KeyRemoteAddr = "remote_addr"
	KeyRequestID  = "request_id"
	KeyCacheKey   = "cache_key"
	KeyJob        = "job"
	KeyPort       = "port"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Path(p string) slog.Attr          { return slog.String(KeyPath, p) }
func File(f string) slog.Attr          { return slog.String(KeyFile, f) }
func Section(s string) slog.Attr       { return slog.String(KeySection, s) }
func Slug(s string) slog.Attr          { return slog.String(KeySlug, s) }
func Kind(k string) slog.Attr          { return slog.String(KeyKind, k) }
func Route(r string) slog.Attr         { return slog.String(KeyRoute, r) }
func Count(n int) slog.Attr            { return slog.Int(KeyCount, n) }
func DurationMS(ms float64) slog.Attr  { return slog.Float64(KeyDurationMS, ms) }
func Method(m string) slog.Attr        { return slog.String(KeyMethod, m) }
func Status(code int) slog.Attr        { return slog.Int(KeyStatus, code) }
func UserAgent(ua string) slog.Attr    { return slog.String(KeyUserAgent, ua) }
func RemoteAddr(addr string) slog.Attr { return slog.String(KeyRemoteAddr, addr) }
func RequestID(id string) slog.Attr    { return slog.String(KeyRequestID, id) }
func CacheKey(k string) slog.Attr      { return slog.String(KeyCacheKey, k) }
func Job(name string) slog.Attr        { return slog.String(KeyJob, name) }
func Port(p int) slog.Attr             { return slog.Int(KeyPort, p) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
