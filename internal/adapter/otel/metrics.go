package otel

import (
	"context"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/Strob0t/clientdesk/internal/operation"
)

const meterName = "clientdesk"

// Metrics records one data point per operation invocation. It implements
// operation.Observer.
type Metrics struct {
	Operations metric.Int64Counter
	Rejected   metric.Int64Counter
	Redirects  metric.Int64Counter
	Duration   metric.Float64Histogram
}

var _ operation.Observer = (*Metrics)(nil)

// NewMetrics creates all metric instruments on mp. A nil mp uses the global
// meter provider.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	meter := mp.Meter(meterName)
	m := &Metrics{}
	var err error

	m.Operations, err = meter.Int64Counter("clientdesk.operations",
		metric.WithDescription("Number of operations answered"))
	if err != nil {
		return nil, err
	}

	m.Rejected, err = meter.Int64Counter("clientdesk.operations.rejected",
		metric.WithDescription("Number of operations answered with errors"))
	if err != nil {
		return nil, err
	}

	m.Redirects, err = meter.Int64Counter("clientdesk.operations.redirects",
		metric.WithDescription("Number of operations answered with a redirect"))
	if err != nil {
		return nil, err
	}

	m.Duration, err = meter.Float64Histogram("clientdesk.operation.duration_seconds",
		metric.WithDescription("Operation duration in seconds"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, err
	}

	return m, nil
}

// ObserveOperation records the outcome of one invocation.
func (m *Metrics) ObserveOperation(ctx context.Context, name string, kind operation.Kind, env operation.Envelope, elapsed time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("operation.name", name),
		attribute.String("operation.kind", string(kind)),
		attribute.String("operation.status", strconv.Itoa(env.Status)),
	)
	m.Operations.Add(ctx, 1, attrs)
	m.Duration.Record(ctx, elapsed.Seconds(), attrs)
	if !env.Success {
		m.Rejected.Add(ctx, 1, attrs)
	}
	if env.Redirect != nil {
		m.Redirects.Add(ctx, 1, attrs)
	}
}
