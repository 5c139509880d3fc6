package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/refrainlabs/refrain/src/song"
)

// Recorder exposes counters and timings for the lookup pipeline. It
// implements the observer the lookup service reports to.
type Recorder struct {
	registry *prometheus.Registry

	lookups  *prometheus.CounterVec
	cache    *prometheus.CounterVec
	sources  *prometheus.CounterVec
	duration prometheus.Histogram
}

// NewRecorder creates a Recorder with its own registry so tests don't
// collide on the global one.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "refrain_lookups_total",
			Help: "Lyrics lookups by outcome.",
		}, []string{"outcome"}),
		cache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "refrain_cache_events_total",
			Help: "Result cache hits and misses.",
		}, []string{"event"}),
		sources: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "refrain_source_results_total",
			Help: "Per-source lookup attempts by result.",
		}, []string{"source", "result"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "refrain_resolve_duration_seconds",
			Help:    "Time spent resolving a lookup end to end.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	r.registry.MustRegister(r.lookups, r.cache, r.sources, r.duration)
	return r
}

// Registry returns the registry the recorder's collectors live in.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

func (r *Recorder) CacheHit() {
	r.cache.WithLabelValues("hit").Inc()
}

func (r *Recorder) CacheMiss() {
	r.cache.WithLabelValues("miss").Inc()
}

func (r *Recorder) SourceResult(name song.SourceName, ok bool) {
	result := "miss"
	if ok {
		result = "hit"
	}
	r.sources.WithLabelValues(string(name), result).Inc()
}

func (r *Recorder) Resolved(success bool, elapsed time.Duration) {
	outcome := "failure"
	if success {
		outcome = "success"
	}
	r.lookups.WithLabelValues(outcome).Inc()
	r.duration.Observe(elapsed.Seconds())
}
