// Package metrics provides Prometheus metrics for LiveGuide.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "liveguide"
)

// HTTP metrics
var (
	// HTTPRequestsTotal counts HTTP requests by method, path, and status.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration tracks HTTP request latency.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	// HTTPRequestsInFlight tracks concurrent HTTP requests.
	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests currently being processed",
		},
	)
)

// Guide state metrics
var (
	// ProjectsTotal tracks the number of live projects by kind.
	ProjectsTotal = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "guide",
			Name:      "projects_total",
			Help:      "Number of projects currently in the store by kind",
		},
		[]string{"kind"},
	)

	// StateWritesTotal counts persisted state writes by result.
	StateWritesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "guide",
			Name:      "state_writes_total",
			Help:      "Total persisted state writes",
		},
		[]string{"result"}, // ok, quota, error
	)

	// PreviewsBuilt counts assembled preview documents.
	PreviewsBuilt = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "guide",
			Name:      "previews_built_total",
			Help:      "Total preview documents assembled",
		},
	)

	// ExportsTotal counts exports by mode.
	ExportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "guide",
			Name:      "exports_total",
			Help:      "Total exports produced",
		},
		[]string{"mode"}, // flat, archive
	)

	// ShareTokensTotal counts share encodes/decodes by result.
	ShareTokensTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "guide",
			Name:      "share_tokens_total",
			Help:      "Total share token operations",
		},
		[]string{"op", "result"}, // encode/decode, ok/invalid
	)
)

// Mirror metrics
var (
	// MirrorSyncsTotal counts mirror sync runs.
	MirrorSyncsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "mirror",
			Name:      "syncs_total",
			Help:      "Total mirror sync runs",
		},
	)

	// MirrorEntitiesTotal counts per-entity mirror outcomes.
	MirrorEntitiesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "mirror",
			Name:      "entities_total",
			Help:      "Total mirrored entities by result",
		},
		[]string{"result"}, // synced, failed
	)
)

// Auth metrics
var (
	// AuthAttemptsTotal counts authentication attempts.
	AuthAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "auth",
			Name:      "attempts_total",
			Help:      "Total authentication attempts",
		},
		[]string{"result"}, // success, failure, locked
	)

	// AuthTokensIssued counts issued tokens.
	AuthTokensIssued = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "auth",
			Name:      "tokens_issued_total",
			Help:      "Total tokens issued",
		},
		[]string{"type"}, // access, refresh
	)
)

// Info metric
var (
	// BuildInfo exposes build information.
	BuildInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "build_info",
			Help:      "Build information",
		},
		[]string{"version", "commit", "build_time"},
	)
)

// SetBuildInfo sets the build info metric.
func SetBuildInfo(version, commit, buildTime string) {
	BuildInfo.WithLabelValues(version, commit, buildTime).Set(1)
}
