package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics records authentication decision metrics.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: must honor cancellation/deadlines and return quickly.
// - Errors: implementations must not panic.
type Metrics interface {
	// RecordDecision records one gate decision with duration and rejection
	// status. err is nil for allowed requests.
	RecordDecision(ctx context.Context, meta RequestMeta, duration time.Duration, err error)
}

// metricsImpl is the concrete implementation of Metrics.
type metricsImpl struct {
	meter          metric.Meter
	decisionCount  metric.Int64Counter
	rejectionCount metric.Int64Counter
	durationHist   metric.Float64Histogram
}

// NewMetrics creates a Metrics instance with the given meter.
func NewMetrics(meter metric.Meter) (Metrics, error) {
	decisionCount, err := meter.Int64Counter(
		"auth.decisions.total",
		metric.WithDescription("Total number of authentication decisions"),
		metric.WithUnit("{decision}"),
	)
	if err != nil {
		return nil, err
	}

	rejectionCount, err := meter.Int64Counter(
		"auth.rejections.total",
		metric.WithDescription("Total number of rejected requests"),
		metric.WithUnit("{rejection}"),
	)
	if err != nil {
		return nil, err
	}

	durationHist, err := meter.Float64Histogram(
		"auth.decision.duration_ms",
		metric.WithDescription("Classification plus verification duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &metricsImpl{
		meter:          meter,
		decisionCount:  decisionCount,
		rejectionCount: rejectionCount,
		durationHist:   durationHist,
	}, nil
}

// RecordDecision records metrics for one gate decision.
func (m *metricsImpl) RecordDecision(ctx context.Context, meta RequestMeta, duration time.Duration, err error) {
	attrs := []attribute.KeyValue{
		attribute.String("auth.class", meta.Class),
	}
	if meta.Method != "" {
		attrs = append(attrs, attribute.String("http.method", meta.Method))
	}

	opt := metric.WithAttributes(attrs...)

	m.decisionCount.Add(ctx, 1, opt)

	if err != nil {
		m.rejectionCount.Add(ctx, 1, metric.WithAttributes(append(attrs,
			attribute.String("auth.reason", err.Error()))...))
	}

	m.durationHist.Record(ctx, float64(duration.Microseconds())/1000.0, opt)
}

// NoopMetrics returns a metrics implementation that does nothing.
func NoopMetrics() Metrics {
	return &noopMetrics{}
}

type noopMetrics struct{}

func (m *noopMetrics) RecordDecision(ctx context.Context, meta RequestMeta, duration time.Duration, err error) {
}
