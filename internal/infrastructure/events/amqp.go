package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"skill-match/internal/config"
	"skill-match/internal/domain/event"

	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

var ErrClosed = errors.New("amqp publisher closed")

// AMQPPublisher sends events to a durable topic exchange with routing key
// "user.<event type>".
type AMQPPublisher struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
	logger   *zap.Logger
	closed   bool
}

var _ event.Publisher = (*AMQPPublisher)(nil)

func NewAMQPPublisher(cfg config.EventsConfig, logger *zap.Logger) (*AMQPPublisher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	conn, err := amqp.Dial(cfg.AMQPURL)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open rabbitmq channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		cfg.Exchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", cfg.Exchange, err)
	}

	logger.Info("amqp publisher ready", zap.String("exchange", cfg.Exchange))
	return &AMQPPublisher{conn: conn, ch: ch, exchange: cfg.Exchange, logger: logger}, nil
}

func RoutingKey(e event.Event) string {
	return "user." + e.Type
}

func (p *AMQPPublisher) Publish(ctx context.Context, e event.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	body, err := json.Marshal(e)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrClosed
	}

	return p.ch.Publish(
		p.exchange,
		RoutingKey(e),
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    e.ID.String(),
			Timestamp:    e.OccurredAt,
			Type:         e.Type,
			Body:         body,
		},
	)
}

func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true

	var firstErr error
	if err := p.ch.Close(); err != nil {
		firstErr = err
	}
	if err := p.conn.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
