package rabbitmq

import (
	"fmt"
	"sync"
	"time"

	amqp "github.com/streadway/amqp"
	"go.uber.org/zap"
)

// Client holds the RabbitMQ connection and the channel used for publishing.
type Client struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	audit    string
	logger   *zap.Logger
	mu       sync.Mutex // amqp channels are not safe for concurrent publishing
}

// Config holds RabbitMQ connection details. Events are published to the
// fanout Exchange; Queue is bound to it for downstream consumers and the
// audit log reads its own copy from AuditQueue.
type Config struct {
	URL      string
	Exchange string
	Queue    string
}

// AuditQueue is the name of the queue the audit consumer reads.
func (cfg Config) AuditQueue() string {
	return cfg.Queue + ".audit"
}

// declarer is the part of *amqp.Channel that sets up the topology.
type declarer interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	QueueBind(name, key, exchange string, noWait bool, args amqp.Table) error
}

// NewClient connects to RabbitMQ, opens a channel and declares the
// durable event exchange with its event and audit queues.
func NewClient(cfg Config, logger *zap.Logger) (*Client, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := declareTopology(ch, cfg); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	logger.Info("rabbitmq client connected",
		zap.String("exchange", cfg.Exchange), zap.String("queue", cfg.Queue))

	return &Client{
		conn:     conn,
		channel:  ch,
		exchange: cfg.Exchange,
		audit:    cfg.AuditQueue(),
		logger:   logger,
	}, nil
}

func declareTopology(ch declarer, cfg Config) error {
	err := ch.ExchangeDeclare(
		cfg.Exchange,        // name
		amqp.ExchangeFanout, // kind
		true,                // durable
		false,               // auto-deleted
		false,               // internal
		false,               // no-wait
		nil,                 // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare exchange %s: %w", cfg.Exchange, err)
	}

	for _, name := range []string{cfg.Queue, cfg.AuditQueue()} {
		_, err := ch.QueueDeclare(
			name,  // name
			true,  // durable
			false, // delete when unused
			false, // exclusive
			false, // no-wait
			nil,   // arguments
		)
		if err != nil {
			return fmt.Errorf("failed to declare queue %s: %w", name, err)
		}
		// Fanout exchanges ignore the routing key.
		if err := ch.QueueBind(name, "", cfg.Exchange, false, nil); err != nil {
			return fmt.Errorf("failed to bind queue %s: %w", name, err)
		}
	}
	return nil
}

// Close closes the RabbitMQ connection and channel.
func (c *Client) Close() error {
	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("errors closing RabbitMQ client: %v", errs)
	}
	return nil
}

// Publish sends a persistent JSON message to the event exchange.
// eventType is carried in the message's type property.
func (c *Client) Publish(eventType string, body []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available")
	}

	err := c.channel.Publish(
		c.exchange, // exchange
		"",         // routing key
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Type:         eventType,
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		})
	if err != nil {
		return fmt.Errorf("failed to publish %s event: %w", eventType, err)
	}

	c.logger.Debug("event published", zap.String("type", eventType))
	return nil
}

// Consume starts delivering the audit queue's copy of every event to
// handler on a dedicated channel. Messages are acked when handler succeeds
// and requeued otherwise.
func (c *Client) Consume(handler func(msg amqp.Delivery) error) error {
	if c.conn == nil {
		return fmt.Errorf("RabbitMQ connection is not available for consumption")
	}

	ch, err := c.conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open consumer channel: %w", err)
	}
	msgs, err := ch.Consume(
		c.audit, // queue
		"",      // consumer tag
		false,   // auto-ack
		false,   // exclusive
		false,   // no-local
		false,   // no-wait
		nil,     // args
	)
	if err != nil {
		ch.Close()
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	go func() {
		defer ch.Close()
		for msg := range msgs {
			if err := handler(msg); err != nil {
				c.logger.Warn("error processing message",
					zap.Uint64("delivery_tag", msg.DeliveryTag), zap.Error(err))
				// A message that fails twice is dropped.
				if nackErr := msg.Nack(false, !msg.Redelivered); nackErr != nil {
					c.logger.Warn("error nacking message", zap.Error(nackErr))
				}
				continue
			}
			if ackErr := msg.Ack(false); ackErr != nil {
				c.logger.Warn("error acking message", zap.Error(ackErr))
			}
		}
	}()

	return nil
}
