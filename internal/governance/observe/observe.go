// Package observe wraps governance operations with structured debug events
// and tracing spans (§4.10): the single place every other component
// routes through to become observable, mirroring the teacher's
// TracingManager/MetricsManager pairing but scoped to one named span
// prefix and one event type.
package observe

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const spanPrefix = "mcp.governance."

// Event is the structured record emitted on every observed call (§6
// "Observer events").
type Event struct {
	Type       string
	Operation  string
	Outcome    string
	DurationMs int64
	Detail     string
	EventID    string
}

// Observer is the governance observer interface: Observe wraps a
// synchronous operation, ObserveAsync wraps one returning an error from a
// context-aware function (§4.10).
type Observer interface {
	Observe(ctx context.Context, operation string, attrs map[string]string, fn func() (any, error)) (any, error)
	ObserveAsync(ctx context.Context, operation string, attrs map[string]string, fn func(context.Context) (any, error)) (any, error)
}

// tracingObserver is the default Observer: it starts an otel span per
// call, records a zap debug event, and increments Prometheus counters.
type tracingObserver struct {
	tracer  oteltrace.Tracer
	logger  *zap.SugaredLogger
	metrics *Metrics
}

// Metrics are the Prometheus instruments the observer updates on every
// call, grounded on the teacher's MetricsManager pattern of one counter
// per outcome plus a duration histogram.
type Metrics struct {
	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics registers the governance observer's instruments against the
// given registry.
func NewMetrics(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mcp_fusion_governance_operations_total",
			Help: "Total number of governance operations by outcome.",
		}, []string{"operation", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mcp_fusion_governance_operation_duration_seconds",
			Help:    "Governance operation duration in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation", "outcome"}),
	}
	registry.MustRegister(m.calls, m.duration)
	return m
}

// New builds the default tracing+metrics+logging Observer.
func New(serviceName string, logger *zap.SugaredLogger, metrics *Metrics) Observer {
	return &tracingObserver{
		tracer:  otel.Tracer(serviceName),
		logger:  logger,
		metrics: metrics,
	}
}

func (o *tracingObserver) Observe(ctx context.Context, operation string, attrs map[string]string, fn func() (any, error)) (any, error) {
	return o.run(ctx, operation, attrs, func(context.Context) (any, error) { return fn() })
}

func (o *tracingObserver) ObserveAsync(ctx context.Context, operation string, attrs map[string]string, fn func(context.Context) (any, error)) (any, error) {
	return o.run(ctx, operation, attrs, fn)
}

func (o *tracingObserver) run(ctx context.Context, operation string, attrs map[string]string, fn func(context.Context) (any, error)) (any, error) {
	eventID := uuid.NewString()
	spanAttrs := []attribute.KeyValue{
		attribute.String("mcp.governance.operation", operation),
		attribute.String("mcp.governance.event_id", eventID),
	}
	for k, v := range attrs {
		spanAttrs = append(spanAttrs, attribute.String(k, v))
	}

	ctx, span := o.tracer.Start(ctx, spanPrefix+operation, oteltrace.WithAttributes(spanAttrs...))
	defer span.End()

	start := time.Now()
	result, err := fn(ctx)
	duration := time.Since(start)
	durationMs := duration.Milliseconds()

	outcome := "success"
	detail := ""
	if err != nil {
		outcome = "failure"
		detail = err.Error()
		span.RecordError(err)
		span.SetStatus(codes.Error, detail)
	} else {
		span.SetStatus(codes.Ok, "")
	}

	if o.metrics != nil {
		o.metrics.calls.WithLabelValues(operation, outcome).Inc()
		o.metrics.duration.WithLabelValues(operation, outcome).Observe(duration.Seconds())
	}

	if o.logger != nil {
		event := Event{Type: "governance", Operation: operation, Outcome: outcome, DurationMs: durationMs, Detail: detail, EventID: eventID}
		if outcome == "success" {
			o.logger.Debugw("governance", "operation", event.Operation, "outcome", event.Outcome, "durationMs", event.DurationMs, "eventId", event.EventID)
		} else {
			o.logger.Debugw("governance", "operation", event.Operation, "outcome", event.Outcome, "durationMs", event.DurationMs, "detail", event.Detail, "eventId", event.EventID)
		}
	}

	return result, err
}

// Noop is an Observer that just invokes the wrapped function, for callers
// that want to disable governance observability entirely (§4.10).
type Noop struct{}

func (Noop) Observe(_ context.Context, _ string, _ map[string]string, fn func() (any, error)) (any, error) {
	return fn()
}

func (Noop) ObserveAsync(ctx context.Context, _ string, _ map[string]string, fn func(context.Context) (any, error)) (any, error) {
	return fn(ctx)
}
