package metrics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"academic-service/internal/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
)

func TestMetrics(t *testing.T) {
	ctx := context.Background()

	m, err := metrics.New(noop.NewMeterProvider().Meter("test"))
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		m.RecordCreated(ctx, "student")
		m.RecordUpdated(ctx, "subject")
		m.RecordDeleted(ctx, "class")
		m.RecordViewed(ctx, "student")
		m.RecordSeeded(ctx, "student", 10)
		m.RecordLogin(ctx, "form", true)
		m.RecordDependencyCheck(ctx, "database", 3*time.Millisecond, nil)
		m.RecordDependencyCheck(ctx, "nats", time.Second, errors.New("timeout"))
	})

	assert.NoError(t, metrics.RegisterServiceInfo(noop.NewMeterProvider().Meter("test"), "academic-service", "dev", "local"))
}

func TestMetrics_NilSafe(t *testing.T) {
	ctx := context.Background()

	var nilMetrics *metrics.Metrics
	assert.NotPanics(t, func() {
		nilMetrics.RecordCreated(ctx, "student")
		metrics.NewMock().RecordLogin(ctx, "google", false)
		metrics.NewMock().RecordDependencyCheck(ctx, "database", time.Millisecond, nil)
	})
}
