package app

import (
	"context"
	"log/slog"

	"academic-service/internal/config"
	"academic-service/internal/events"
	"academic-service/internal/health"
	"academic-service/internal/kafka"
	"academic-service/internal/messaging"
)

// openPublishers connects the configured brokers. A broker that cannot be
// reached is logged and skipped, records are still served without it.
func openPublishers(cfg *config.Config, logger *slog.Logger, checks map[string]health.Check) events.Publisher {
	var publishers []events.Publisher

	if cfg.NATS.URL != "" {
		natsProducer, err := messaging.NewProducer(cfg.NATS.URL, cfg.NATS.Subject, logger)
		if err != nil {
			logger.Warn("failed to initialize NATS producer", "error", err)
		} else {
			publishers = append(publishers, natsProducer)
			checks["nats"] = func(context.Context) error { return natsProducer.HealthCheck() }
		}
	}

	if len(cfg.Kafka.Brokers) > 0 {
		kafkaProducer, err := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger)
		if err != nil {
			logger.Warn("failed to initialize kafka producer", "error", err)
		} else {
			publishers = append(publishers, kafkaProducer)
		}
	}

	if len(publishers) == 0 {
		logger.Info("no message broker configured, change events are dropped")
		return events.Noop()
	}
	return events.Multi(publishers...)
}
