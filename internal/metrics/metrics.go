package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type Metrics struct {
	recordsCreated metric.Int64Counter
	recordsUpdated metric.Int64Counter
	recordsDeleted metric.Int64Counter
	recordsViewed  metric.Int64Counter
	recordsSeeded  metric.Int64Counter
	logins         metric.Int64Counter

	dependencyResponseTime metric.Float64Histogram
	dependencyUp           metric.Int64Gauge
}

func New(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	var err error

	m.recordsCreated, err = meter.Int64Counter(
		"academic_service.records.created",
		metric.WithDescription("Total number of records created"),
		metric.WithUnit("{record}"),
	)
	if err != nil {
		return nil, err
	}

	m.recordsUpdated, err = meter.Int64Counter(
		"academic_service.records.updated",
		metric.WithDescription("Total number of records updated"),
		metric.WithUnit("{record}"),
	)
	if err != nil {
		return nil, err
	}

	m.recordsDeleted, err = meter.Int64Counter(
		"academic_service.records.deleted",
		metric.WithDescription("Total number of records deleted"),
		metric.WithUnit("{record}"),
	)
	if err != nil {
		return nil, err
	}

	m.recordsViewed, err = meter.Int64Counter(
		"academic_service.records.viewed",
		metric.WithDescription("Total number of record reads"),
		metric.WithUnit("{view}"),
	)
	if err != nil {
		return nil, err
	}

	m.recordsSeeded, err = meter.Int64Counter(
		"academic_service.records.seeded",
		metric.WithDescription("Total number of records inserted or migrated by the startup seeder"),
		metric.WithUnit("{record}"),
	)
	if err != nil {
		return nil, err
	}

	m.logins, err = meter.Int64Counter(
		"academic_service.logins",
		metric.WithDescription("Total number of login attempts"),
		metric.WithUnit("{login}"),
	)
	if err != nil {
		return nil, err
	}

	m.dependencyResponseTime, err = meter.Float64Histogram(
		"dependency.response_time",
		metric.WithDescription("Dependency health check response time"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0),
	)
	if err != nil {
		return nil, err
	}

	m.dependencyUp, err = meter.Int64Gauge(
		"dependency.up",
		metric.WithDescription("Dependency availability status (1=up, 0=down)"),
		metric.WithUnit("{status}"),
	)
	if err != nil {
		return nil, err
	}

	return m, nil
}

// RegisterServiceInfo exports a constant gauge carrying build metadata.
func RegisterServiceInfo(meter metric.Meter, serviceName, version, env string) error {
	info, err := meter.Int64ObservableGauge(
		"service.info",
		metric.WithDescription("Service metadata information"),
		metric.WithUnit("{info}"),
	)
	if err != nil {
		return err
	}

	attrs := metric.WithAttributes(
		attribute.String("service_name", serviceName),
		attribute.String("version", version),
		attribute.String("environment", env),
	)
	_, err = meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		o.ObserveInt64(info, 1, attrs)
		return nil
	}, info)
	return err
}

func (m *Metrics) RecordCreated(ctx context.Context, entity string) {
	if m != nil && m.recordsCreated != nil {
		m.recordsCreated.Add(ctx, 1, entityAttr(entity))
	}
}

func (m *Metrics) RecordUpdated(ctx context.Context, entity string) {
	if m != nil && m.recordsUpdated != nil {
		m.recordsUpdated.Add(ctx, 1, entityAttr(entity))
	}
}

func (m *Metrics) RecordDeleted(ctx context.Context, entity string) {
	if m != nil && m.recordsDeleted != nil {
		m.recordsDeleted.Add(ctx, 1, entityAttr(entity))
	}
}

func (m *Metrics) RecordViewed(ctx context.Context, entity string) {
	if m != nil && m.recordsViewed != nil {
		m.recordsViewed.Add(ctx, 1, entityAttr(entity))
	}
}

func (m *Metrics) RecordSeeded(ctx context.Context, entity string, n int) {
	if m != nil && m.recordsSeeded != nil && n > 0 {
		m.recordsSeeded.Add(ctx, int64(n), entityAttr(entity))
	}
}

func (m *Metrics) RecordLogin(ctx context.Context, method string, success bool) {
	if m != nil && m.logins != nil {
		m.logins.Add(ctx, 1, metric.WithAttributes(
			attribute.String("method", method),
			attribute.Bool("success", success),
		))
	}
}

func (m *Metrics) RecordDependencyCheck(ctx context.Context, dependency string, duration time.Duration, err error) {
	if m == nil || m.dependencyResponseTime == nil {
		return
	}

	attrs := metric.WithAttributes(attribute.String("dependency", dependency))
	m.dependencyResponseTime.Record(ctx, duration.Seconds(), attrs)

	up := int64(1)
	if err != nil {
		up = 0
	}
	m.dependencyUp.Record(ctx, up, attrs)
}

func entityAttr(entity string) metric.AddOption {
	return metric.WithAttributes(attribute.String("entity", entity))
}

// NewMock creates a no-op Metrics instance for testing
// The returned Metrics will safely ignore all Record* calls
func NewMock() *Metrics {
	return &Metrics{}
}
