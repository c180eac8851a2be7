package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go"
)

// NATSPublisher publishes check-in events on a NATS connection. Downstream
// services (email templates, organizer dashboards) subscribe to the
// checkin.* subjects.
type NATSPublisher struct {
	conn   *nats.Conn
	logger *slog.Logger
}

func NewNATSPublisher(url string, logger *slog.Logger) (*NATSPublisher, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("connect to nats: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &NATSPublisher{conn: conn, logger: logger}, nil
}

func (p *NATSPublisher) Publish(ctx context.Context, subject string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal event data: %w", err)
	}
	p.logger.DebugContext(ctx, "publishing event", "subject", subject, "bytes", len(payload))
	return p.conn.Publish(subject, payload)
}

func (p *NATSPublisher) Close() error {
	p.conn.Close()
	return nil
}
