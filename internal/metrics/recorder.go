package metrics

import "time"

// CacheResult labels cache lookups.
type CacheResult string

const (
	CacheHit  CacheResult = "hit"
	CacheMiss CacheResult = "miss"
)

// Recorder defines observability hooks for content resolution and serving.
// Implementations may forward to Prometheus or any other backend.
type Recorder interface {
	ObserveTreeBuildDuration(d time.Duration)
	IncClassification(kind string, legacy bool)
	IncCacheLookup(cache string, result CacheResult)
	IncCacheEviction(cache string)
	SetRouteCount(n int)
	IncHTTPRequest(handler string, status int)
	ObserveHTTPRequestDuration(handler string, d time.Duration)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveTreeBuildDuration(time.Duration)           {}
func (NoopRecorder) IncClassification(string, bool)                   {}
func (NoopRecorder) IncCacheLookup(string, CacheResult)               {}
func (NoopRecorder) IncCacheEviction(string)                          {}
func (NoopRecorder) SetRouteCount(int)                                {}
func (NoopRecorder) IncHTTPRequest(string, int)                       {}
func (NoopRecorder) ObserveHTTPRequestDuration(string, time.Duration) {}

// OrNoop returns r, or a NoopRecorder when r is nil.
func OrNoop(r Recorder) Recorder {
	if r == nil {
		return NoopRecorder{}
	}
	return r
}
