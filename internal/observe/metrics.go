// Package observe provides application-wide observability primitives for
// Timbre: OpenTelemetry metrics and the Prometheus exporter bridge.
//
// Metrics are recorded through the OpenTelemetry Metrics API. A Prometheus
// exporter bridge is available via [InitProvider] so that metrics can still be
// scraped via the standard /metrics endpoint. A package-level default
// [Metrics] instance ([DefaultMetrics]) is provided for convenience; tests
// should use [NewMetrics] with a custom [metric.MeterProvider] to avoid
// cross-test pollution.
package observe

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope name used for all Timbre metrics.
const meterName = "github.com/timbre-tts/timbre"

// Metrics holds all OpenTelemetry metric instruments for the application.
// All fields are safe for concurrent use; the underlying OTel types handle
// their own synchronisation.
type Metrics struct {
	// RefreshDuration tracks the latency of a full voices-directory rescan.
	RefreshDuration metric.Float64Histogram

	// Refreshes counts registry refresh operations. Use with attribute:
	//   attribute.String("status", ...) with values "ok" or "unlisted".
	// "unlisted" covers every case where the directory could not be listed:
	// missing, unreadable, or not a directory.
	Refreshes metric.Int64Counter

	// TranscriptErrors counts transcript files that could not be read.
	// Use with attribute:
	//   attribute.String("voice", ...)
	TranscriptErrors metric.Int64Counter

	// VoicesAvailable reports the number of voices currently listed by the
	// registry. Use with attribute:
	//   attribute.String("source", ...) with values "predefined" or "file"
	VoicesAvailable metric.Int64Gauge

	// HTTPRequestDuration tracks HTTP request processing time. Use with attributes:
	//   attribute.String("method", ...), attribute.String("path", ...)
	HTTPRequestDuration metric.Float64Histogram
}

// scanBuckets defines histogram bucket boundaries (in seconds) sized for
// local directory scans, which complete in milliseconds on warm caches but
// can stretch to seconds on cold network mounts.
var scanBuckets = []float64{
	0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5,
}

// NewMetrics creates a fully initialised [Metrics] struct using the given
// [metric.MeterProvider]. Returns an error if any instrument creation fails.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.RefreshDuration, err = m.Float64Histogram("timbre.refresh.duration",
		metric.WithDescription("Latency of a voices-directory rescan."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(scanBuckets...),
	); err != nil {
		return nil, err
	}
	if met.Refreshes, err = m.Int64Counter("timbre.refreshes",
		metric.WithDescription("Total registry refresh operations by status."),
	); err != nil {
		return nil, err
	}
	if met.TranscriptErrors, err = m.Int64Counter("timbre.transcript.errors",
		metric.WithDescription("Total transcript read failures by voice name."),
	); err != nil {
		return nil, err
	}
	if met.VoicesAvailable, err = m.Int64Gauge("timbre.voices.available",
		metric.WithDescription("Number of voices currently listed by the registry, by source."),
	); err != nil {
		return nil, err
	}
	if met.HTTPRequestDuration, err = m.Float64Histogram("timbre.http.request.duration",
		metric.WithDescription("HTTP request latency by method and path."),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}

	return met, nil
}

// defaultMetrics is the lazily-initialised package-level Metrics instance.
var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// DefaultMetrics returns the package-level [Metrics] instance, creating it on
// first call using [otel.GetMeterProvider]. Subsequent calls return the same
// pointer. Panics if instrument creation fails (should not happen with the
// global provider).
func DefaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		var err error
		defaultMetrics, err = NewMetrics(otel.GetMeterProvider())
		if err != nil {
			panic("observe: failed to create default metrics: " + err.Error())
		}
	})
	return defaultMetrics
}

// RecordRefresh is a convenience method that records one refresh operation
// with its duration in seconds and completion status.
func (m *Metrics) RecordRefresh(ctx context.Context, seconds float64, status string) {
	m.Refreshes.Add(ctx, 1,
		metric.WithAttributes(attribute.String("status", status)),
	)
	m.RefreshDuration.Record(ctx, seconds)
}

// RecordTranscriptError is a convenience method that records a transcript
// read failure for the named voice.
func (m *Metrics) RecordTranscriptError(ctx context.Context, voice string) {
	m.TranscriptErrors.Add(ctx, 1,
		metric.WithAttributes(attribute.String("voice", voice)),
	)
}

// SetVoicesAvailable is a convenience method that records the current voice
// count for one source category.
func (m *Metrics) SetVoicesAvailable(ctx context.Context, source string, n int64) {
	m.VoicesAvailable.Record(ctx, n,
		metric.WithAttributes(attribute.String("source", source)),
	)
}
