package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"hospitaladmin/internal/domain"
)

// PublisherConfig holds configuration for creating a schedule event publisher.
type PublisherConfig struct {
	Enabled  bool
	URL      string
	Exchange string
}

// Publisher is a ScheduleEventPublisher that owns a broker connection.
type Publisher interface {
	domain.ScheduleEventPublisher
	Close() error
}

// NewPublisher creates a publisher from config. When disabled, a no-op publisher is returned
// so callers never branch on broker availability.
func NewPublisher(cfg PublisherConfig, logger *slog.Logger) (Publisher, error) {
	if !cfg.Enabled {
		logger.Info("rabbitmq disabled, schedule events will not be published")
		return &noopPublisher{logger: logger}, nil
	}
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open rabbitmq channel: %w", err)
	}
	if err := ch.ExchangeDeclare(cfg.Exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange %q: %w", cfg.Exchange, err)
	}
	logger.Info("rabbitmq publisher ready", "exchange", cfg.Exchange)
	return &amqpPublisher{conn: conn, channel: ch, exchange: cfg.Exchange}, nil
}

type amqpPublisher struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
}

func (p *amqpPublisher) Publish(ctx context.Context, event domain.ScheduleEvent) error {
	msg, err := buildPublishing(event)
	if err != nil {
		return err
	}
	// amqp channels are not safe for concurrent publishes.
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.channel.PublishWithContext(ctx, p.exchange, routingKey(event), false, false, msg); err != nil {
		return fmt.Errorf("publish %s: %w", event.Type, err)
	}
	return nil
}

func (p *amqpPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.channel.Close(); err != nil {
		p.conn.Close()
		return err
	}
	return p.conn.Close()
}

// routingKey is "schedule.<event type>", e.g. schedule.slot.added.
func routingKey(event domain.ScheduleEvent) string {
	return "schedule." + string(event.Type)
}

func buildPublishing(event domain.ScheduleEvent) (amqp.Publishing, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("encode schedule event: %w", err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    event.OccurredAt,
		Type:         string(event.Type),
		Body:         body,
	}, nil
}

type noopPublisher struct {
	logger *slog.Logger
}

func (n *noopPublisher) Publish(ctx context.Context, event domain.ScheduleEvent) error {
	n.logger.DebugContext(ctx, "schedule event (noop)", "type", event.Type, "doctor_id", event.DoctorID, "date", event.Date)
	return nil
}

func (n *noopPublisher) Close() error { return nil }
