package navcache

import (
	"time"

	"git.home.luguber.info/inful/docsite/internal/metrics"
)

// Clock returns the current time.
type Clock func() time.Time

type options struct {
	ttl      time.Duration
	capacity int
	clock    Clock
	name     string
	recorder metrics.Recorder
}

func defaultOptions() options {
	return options{
		ttl:      DefaultTTL,
		capacity: DefaultCapacity,
		clock:    time.Now,
		name:     "navigation",
		recorder: metrics.NoopRecorder{},
	}
}

// Option configures a Cache.
type Option func(*options)

// WithTTL sets how long an entry is served. Non-positive values keep the default.
func WithTTL(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.ttl = d
		}
	}
}

// WithCapacity sets the maximum number of entries. Non-positive values keep the default.
func WithCapacity(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.capacity = n
		}
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(clock Clock) Option {
	return func(o *options) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// WithName labels the cache in metrics.
func WithName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.name = name
		}
	}
}

// WithRecorder reports lookups and evictions to r.
func WithRecorder(r metrics.Recorder) Option {
	return func(o *options) {
		o.recorder = metrics.OrNoop(r)
	}
}
