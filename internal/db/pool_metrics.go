package db

import (
	"context"
	"database/sql"

	"go.opentelemetry.io/otel/metric"
)

// RegisterPoolMetrics exports connection pool stats as observable gauges.
func RegisterPoolMetrics(meter metric.Meter, sqlDB *sql.DB) error {
	open, err := meter.Int64ObservableGauge(
		"db.connections.open",
		metric.WithDescription("Current number of open database connections"),
		metric.WithUnit("{connection}"),
	)
	if err != nil {
		return err
	}

	idle, err := meter.Int64ObservableGauge(
		"db.connections.idle",
		metric.WithDescription("Current number of idle database connections"),
		metric.WithUnit("{connection}"),
	)
	if err != nil {
		return err
	}

	inUse, err := meter.Int64ObservableGauge(
		"db.connections.in_use",
		metric.WithDescription("Current number of in-use database connections"),
		metric.WithUnit("{connection}"),
	)
	if err != nil {
		return err
	}

	maxOpen, err := meter.Int64ObservableGauge(
		"db.connections.max_open",
		metric.WithDescription("Maximum number of open connections allowed"),
		metric.WithUnit("{connection}"),
	)
	if err != nil {
		return err
	}

	_, err = meter.RegisterCallback(
		func(ctx context.Context, observer metric.Observer) error {
			stats := sqlDB.Stats()
			observer.ObserveInt64(open, int64(stats.OpenConnections))
			observer.ObserveInt64(idle, int64(stats.Idle))
			observer.ObserveInt64(inUse, int64(stats.InUse))
			observer.ObserveInt64(maxOpen, int64(stats.MaxOpenConnections))
			return nil
		},
		open, idle, inUse, maxOpen,
	)
	return err
}
