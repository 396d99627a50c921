package messaging

import (
	"context"
	"encoding/json"
	"log/slog"

	"academic-service/internal/events"

	"github.com/nats-io/nats.go"
)

// Producer publishes record change events on a NATS subject. The entity and
// action are appended to the base subject, e.g. "academic.records.student.created".
type Producer struct {
	conn    *nats.Conn
	subject string
	logger  *slog.Logger
}

func NewProducer(url string, subject string, logger *slog.Logger) (*Producer, error) {
	nc, err := nats.Connect(url, nats.Name("academic-service"))
	if err != nil {
		return nil, err
	}

	logger.Info("NATS producer initialized", "url", url, "subject", subject)

	return &Producer{
		conn:    nc,
		subject: subject,
		logger:  logger,
	}, nil
}

func (p *Producer) Subject(event events.Event) string {
	return p.subject + "." + event.Entity + "." + event.Action
}

func (p *Producer) Publish(ctx context.Context, event events.Event) error {
	valueBytes, err := json.Marshal(event)
	if err != nil {
		p.logger.ErrorContext(ctx, "failed to marshal event", "error", err)
		return err
	}

	subject := p.Subject(event)
	if err := p.conn.Publish(subject, valueBytes); err != nil {
		p.logger.ErrorContext(ctx, "failed to send event to NATS", "subject", subject, "error", err)
		return err
	}

	p.logger.DebugContext(ctx, "event sent to NATS", "subject", subject, "id", event.ID)
	return nil
}

// HealthCheck verifies the NATS connection is up
func (p *Producer) HealthCheck() error {
	if p.conn == nil {
		return nats.ErrConnectionClosed
	}
	if !p.conn.IsConnected() {
		return nats.ErrDisconnected
	}
	return nil
}

func (p *Producer) Close() error {
	if err := p.conn.Drain(); err != nil {
		p.conn.Close()
		return err
	}
	return nil
}
