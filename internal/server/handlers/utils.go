package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"git.home.luguber.info/inful/docsite/internal/logfields"
)

// writeJSON serializes the provided value to JSON and writes it with the given
// status code. Encoding is performed into an intermediate buffer so that we
// don't send partial responses if serialization fails.
func writeJSON(w http.ResponseWriter, status int, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(true)
	if err := enc.Encode(v); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Error("failed writing JSON response body", logfields.Error(err))
		return err
	}
	return nil
}

// writeJSONPretty pretty prints when the request asks for ?pretty=1.
func writeJSONPretty(w http.ResponseWriter, r *http.Request, status int, v any) error {
	if p := r.URL.Query().Get("pretty"); p == "1" || p == "true" {
		b, err := json.MarshalIndent(v, "", "  ")
		if err == nil {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(status)
			if _, werr := w.Write(append(b, '\n')); werr != nil {
				slog.Error("failed writing pretty JSON", logfields.Error(werr))
				return werr
			}
			return nil
		}
		slog.Warn("pretty JSON marshal failed, falling back to standard encode", logfields.Error(err))
	}
	return writeJSON(w, status, v)
}

// SharedCacheControl builds a Cache-Control value letting shared caches
// keep a response for maxAge and serve it stale while revalidating.
func SharedCacheControl(maxAge, staleWhileRevalidate time.Duration) string {
	return fmt.Sprintf("public, s-maxage=%d, stale-while-revalidate=%d",
		int64(maxAge.Seconds()), int64(staleWhileRevalidate.Seconds()))
}

// etagMatches reports whether an If-None-Match header value matches etag.
// Weak comparison is used, as for GET and HEAD.
func etagMatches(header, etag string) bool {
	if header == "" || etag == "" {
		return false
	}
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == strings.TrimPrefix(etag, "W/") {
			return true
		}
	}
	return false
}

// pathSegments splits a wildcard path value into non-empty segments.
func pathSegments(p string) []string {
	var segments []string
	for _, s := range strings.Split(p, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}
