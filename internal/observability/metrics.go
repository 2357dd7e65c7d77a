package observability

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// Metrics expose les compteurs du gateway: le but premier est de vérifier
// que le budget d'appels provider est respecté (appels réels vs hits cache
// vs refus de throttle).
type Metrics struct {
	meter metric.Meter

	// Appels provider
	ProviderCallsTotal  metric.Int64Counter
	ProviderErrorsTotal metric.Int64Counter

	// Throttle et cache
	ThrottleDeniedTotal metric.Int64Counter
	CacheHitsTotal      metric.Int64Counter

	// Cycle de vie des jobs
	JobsSubmittedTotal metric.Int64Counter
	JobsCompletedTotal metric.Int64Counter
	JobsFailedTotal    metric.Int64Counter

	// HTTP
	HTTPRequestDuration metric.Float64Histogram
	HTTPRequestsTotal   metric.Int64Counter
}

// NewMetrics crée les métriques et les enregistre sur un exporter
// Prometheus; le handler retourné sert /metrics
func NewMetrics(ctx context.Context) (*Metrics, http.Handler, error) {
	exporter, err := prometheus.New()
	if err != nil {
		return nil, nil, err
	}

	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	meter := provider.Meter("viducate")
	m := &Metrics{meter: meter}

	m.ProviderCallsTotal, err = meter.Int64Counter(
		"provider_calls_total",
		metric.WithDescription("Total number of real calls to the D-ID API"),
	)
	if err != nil {
		return nil, nil, err
	}

	m.ProviderErrorsTotal, err = meter.Int64Counter(
		"provider_errors_total",
		metric.WithDescription("Total number of failed D-ID API calls"),
	)
	if err != nil {
		return nil, nil, err
	}

	m.ThrottleDeniedTotal, err = meter.Int64Counter(
		"throttle_denied_total",
		metric.WithDescription("Provider calls refused by the call throttle"),
	)
	if err != nil {
		return nil, nil, err
	}

	m.CacheHitsTotal, err = meter.Int64Counter(
		"status_cache_hits_total",
		metric.WithDescription("Status queries answered from cache, by staleness tier"),
	)
	if err != nil {
		return nil, nil, err
	}

	m.JobsSubmittedTotal, err = meter.Int64Counter(
		"jobs_submitted_total",
		metric.WithDescription("Total number of talks submitted to the provider"),
	)
	if err != nil {
		return nil, nil, err
	}

	m.JobsCompletedTotal, err = meter.Int64Counter(
		"jobs_completed_total",
		metric.WithDescription("Jobs observed reaching the completed state"),
	)
	if err != nil {
		return nil, nil, err
	}

	m.JobsFailedTotal, err = meter.Int64Counter(
		"jobs_failed_total",
		metric.WithDescription("Jobs observed reaching the failed state"),
	)
	if err != nil {
		return nil, nil, err
	}

	m.HTTPRequestDuration, err = meter.Float64Histogram(
		"http_request_duration_seconds",
		metric.WithDescription("HTTP request latency in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10),
	)
	if err != nil {
		return nil, nil, err
	}

	m.HTTPRequestsTotal, err = meter.Int64Counter(
		"http_requests_total",
		metric.WithDescription("Total number of HTTP requests"),
	)
	if err != nil {
		return nil, nil, err
	}

	return m, promhttp.Handler(), nil
}

// RecordProviderCall comptabilise un appel réel au provider
func (m *Metrics) RecordProviderCall(ctx context.Context, operation string, success bool) {
	if m == nil {
		return
	}

	attrs := metric.WithAttributes(attribute.String("operation", operation))
	m.ProviderCallsTotal.Add(ctx, 1, attrs)
	if !success {
		m.ProviderErrorsTotal.Add(ctx, 1, attrs)
	}
}

// RecordThrottleDenied comptabilise un refus du throttle
func (m *Metrics) RecordThrottleDenied(ctx context.Context, operation string) {
	if m == nil {
		return
	}
	m.ThrottleDeniedTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", operation)))
}

// RecordCacheHit comptabilise une réponse servie depuis le cache
func (m *Metrics) RecordCacheHit(ctx context.Context, tier string) {
	if m == nil {
		return
	}
	m.CacheHitsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("tier", tier)))
}

// RecordJobSubmitted comptabilise une soumission réussie
func (m *Metrics) RecordJobSubmitted(ctx context.Context) {
	if m == nil {
		return
	}
	m.JobsSubmittedTotal.Add(ctx, 1)
}

// RecordJobFinished comptabilise un passage observé en état terminal
func (m *Metrics) RecordJobFinished(ctx context.Context, success bool) {
	if m == nil {
		return
	}
	if success {
		m.JobsCompletedTotal.Add(ctx, 1)
	} else {
		m.JobsFailedTotal.Add(ctx, 1)
	}
}

// RecordHTTPRequest comptabilise une requête HTTP entrante
func (m *Metrics) RecordHTTPRequest(ctx context.Context, method, path string, statusCode int, durationSeconds float64) {
	if m == nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("path", path),
		attribute.Int("status", statusCode),
	)
	m.HTTPRequestDuration.Record(ctx, durationSeconds, attrs)
	m.HTTPRequestsTotal.Add(ctx, 1, attrs)
}
