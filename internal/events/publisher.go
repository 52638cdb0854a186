// Package events publishes seat block/unblock outcomes to RabbitMQ so other
// PictureTime services can react without polling the booking backend.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// SeatsUpdated is emitted after the booking backend confirms a batch.
type SeatsUpdated struct {
	ShowID     int       `json:"show_id"`
	DigiplexID int       `json:"digiplex_id"`
	Operation  string    `json:"operation"`
	Seats      []string  `json:"seats"`
	Updated    int       `json:"updated"`
	StaffID    string    `json:"staff_id"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type Publisher interface {
	PublishSeatsUpdated(ctx context.Context, event SeatsUpdated) error
	Close() error
}

// NewPublisher returns an AMQP publisher, or a no-op one when url is empty.
func NewPublisher(url, queue string, log *zap.Logger) Publisher {
	if url == "" {
		log.Info("AMQP_URL not set, seat events disabled")
		return noopPublisher{}
	}
	return &amqpPublisher{
		url:   url,
		queue: queue,
		log:   log.With(zap.String("component", "events"), zap.String("queue", queue)),
	}
}

type noopPublisher struct{}

func (noopPublisher) PublishSeatsUpdated(context.Context, SeatsUpdated) error { return nil }
func (noopPublisher) Close() error                                           { return nil }

// amqpPublisher dials per publish.
type amqpPublisher struct {
	url   string
	queue string
	log   *zap.Logger
}

func (p *amqpPublisher) PublishSeatsUpdated(ctx context.Context, event SeatsUpdated) error {
	msg, err := newPublishing(event)
	if err != nil {
		return err
	}

	timeout, err := dialTimeout(ctx)
	if err != nil {
		return fmt.Errorf("dial broker: %w", err)
	}
	conn, err := amqp.DialConfig(p.url, amqp.Config{
		Locale: "en_US",
		Dial:   amqp.DefaultDial(timeout),
	})
	if err != nil {
		p.log.Warn("dial broker failed", zap.Error(err))
		return fmt.Errorf("dial broker: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	if err := ch.PublishWithContext(ctx, "", p.queue, false, false, msg); err != nil {
		p.log.Warn("publish failed", zap.Int("show_id", event.ShowID), zap.Error(err))
		return fmt.Errorf("publish seats updated: %w", err)
	}

	p.log.Debug("seats updated event published",
		zap.Int("show_id", event.ShowID),
		zap.String("operation", event.Operation),
		zap.Int("updated", event.Updated))
	return nil
}

func (p *amqpPublisher) Close() error { return nil }

// defaultDialTimeout bounds connect and handshake when ctx has no deadline.
const defaultDialTimeout = 5 * time.Second

// dialTimeout is the time left on ctx for connecting and the AMQP handshake.
func dialTimeout(ctx context.Context) (time.Duration, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	deadline, ok := ctx.Deadline()
	if !ok {
		return defaultDialTimeout, nil
	}
	left := time.Until(deadline)
	if left <= 0 {
		return 0, context.DeadlineExceeded
	}
	return left, nil
}

func newPublishing(event SeatsUpdated) (amqp.Publishing, error) {
	if event.UpdatedAt.IsZero() {
		event.UpdatedAt = time.Now().UTC()
	}
	body, err := json.Marshal(event)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("encode seats updated: %w", err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    event.UpdatedAt,
		Type:         "seats.updated",
		Body:         body,
	}, nil
}
