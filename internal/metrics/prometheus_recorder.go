package metrics

import (
	"strconv"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "docsite"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	treeBuildDuration prom.Histogram
	classifications   *prom.CounterVec
	cacheLookups      *prom.CounterVec
	cacheEvictions    *prom.CounterVec
	routeCount        prom.Gauge
	httpRequests      *prom.CounterVec
	httpDuration      *prom.HistogramVec
}

// NewPrometheusRecorder constructs the metrics and registers them with reg.
// A nil reg gets a fresh private registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		treeBuildDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "tree_build_duration_seconds",
			Help:      "Duration of content tree builds",
			Buckets:   prom.DefBuckets,
		}),
		classifications: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "path_classifications_total",
			Help:      "Path classification outcomes by kind and addressing scheme",
		}, []string{"kind", "legacy"}),
		cacheLookups: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Navigation cache lookups by cache and result",
		}, []string{"cache", "result"}),
		cacheEvictions: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "cache_evictions_total",
			Help:      "Navigation cache capacity evictions",
		}, []string{"cache"}),
		routeCount: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "routes",
			Help:      "Number of routes from the last enumeration",
		}),
		httpRequests: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by handler and status code",
		}, []string{"handler", "status"}),
		httpDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by handler",
			Buckets:   prom.DefBuckets,
		}, []string{"handler"}),
	}
	reg.MustRegister(pr.treeBuildDuration, pr.classifications, pr.cacheLookups, pr.cacheEvictions, pr.routeCount, pr.httpRequests, pr.httpDuration)
	return pr
}

func (p *PrometheusRecorder) ObserveTreeBuildDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.treeBuildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncClassification(kind string, legacy bool) {
	if p == nil {
		return
	}
	if kind == "" {
		kind = "not_found"
	}
	p.classifications.WithLabelValues(kind, strconv.FormatBool(legacy)).Inc()
}

func (p *PrometheusRecorder) IncCacheLookup(cache string, result CacheResult) {
	if p == nil {
		return
	}
	p.cacheLookups.WithLabelValues(cache, string(result)).Inc()
}

func (p *PrometheusRecorder) IncCacheEviction(cache string) {
	if p == nil {
		return
	}
	p.cacheEvictions.WithLabelValues(cache).Inc()
}

func (p *PrometheusRecorder) SetRouteCount(n int) {
	if p == nil {
		return
	}
	p.routeCount.Set(float64(n))
}

func (p *PrometheusRecorder) IncHTTPRequest(handler string, status int) {
	if p == nil {
		return
	}
	p.httpRequests.WithLabelValues(handler, strconv.Itoa(status)).Inc()
}

func (p *PrometheusRecorder) ObserveHTTPRequestDuration(handler string, d time.Duration) {
	if p == nil {
		return
	}
	p.httpDuration.WithLabelValues(handler).Observe(d.Seconds())
}
