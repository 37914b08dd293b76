// Package publisher carries player traffic over RabbitMQ: commands and
// notices go out to the embedded player, state events come back.
package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"feed_player/internal/domain"
)

var ErrConsumerClosed = errors.New("event consumer closed")

type RabbitMQ struct {
	conn       *amqp.Connection
	channel    *amqp.Channel
	exchange   string
	commandKey string
	noticeKey  string
	eventQueue string
	logger     *slog.Logger
}

type Config struct {
	URL               string
	Exchange          string
	CommandRoutingKey string
	NoticeRoutingKey  string
	EventRoutingKey   string
	EventQueue        string
}

func NewRabbitMQ(cfg Config, logger *slog.Logger) (*RabbitMQ, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		cfg.Exchange,
		"direct",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	q, err := ch.QueueDeclare(
		cfg.EventQueue,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare queue: %w", err)
	}

	err = ch.QueueBind(
		q.Name,
		cfg.EventRoutingKey,
		cfg.Exchange,
		false,
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("bind queue: %w", err)
	}

	logger.Info("connected to rabbitmq",
		"exchange", cfg.Exchange,
		"event_queue", cfg.EventQueue,
		"command_routing_key", cfg.CommandRoutingKey,
		"notice_routing_key", cfg.NoticeRoutingKey,
	)

	return &RabbitMQ{
		conn:       conn,
		channel:    ch,
		exchange:   cfg.Exchange,
		commandKey: cfg.CommandRoutingKey,
		noticeKey:  cfg.NoticeRoutingKey,
		eventQueue: q.Name,
		logger:     logger,
	}, nil
}

type CommandMessage struct {
	Command   domain.PlayerCommand `json:"command"`
	Timestamp time.Time            `json:"timestamp"`
}

type NoticeMessage struct {
	Notice    domain.Notice `json:"notice"`
	Timestamp time.Time     `json:"timestamp"`
}

func (r *RabbitMQ) SendCommand(ctx context.Context, cmd domain.PlayerCommand) error {
	if err := r.publish(ctx, r.commandKey, CommandMessage{Command: cmd, Timestamp: time.Now().UTC()}); err != nil {
		return err
	}

	r.logger.Debug("sent player command",
		"action", cmd.Action,
		"video_id", cmd.VideoID,
	)
	return nil
}

func (r *RabbitMQ) Notify(ctx context.Context, notice domain.Notice) error {
	return r.publish(ctx, r.noticeKey, NoticeMessage{Notice: notice, Timestamp: time.Now().UTC()})
}

func (r *RabbitMQ) publish(ctx context.Context, routingKey string, msg any) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	err = r.channel.PublishWithContext(
		ctx,
		r.exchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			DeliveryMode: amqp.Transient,
			ContentType:  "application/json",
			MessageId:    uuid.NewString(),
			Body:         body,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}
	return nil
}

// ConsumeEvents delivers player events from the event queue to handle until
// ctx is done. Malformed messages are dropped. Handler errors are logged and
// the delivery is still acked.
func (r *RabbitMQ) ConsumeEvents(ctx context.Context, handle func(context.Context, domain.PlayerEvent) error) error {
	deliveries, err := r.channel.ConsumeWithContext(ctx, r.eventQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", r.eventQueue, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return ErrConsumerClosed
			}
			r.handleDelivery(ctx, d, handle)
		}
	}
}

func (r *RabbitMQ) handleDelivery(ctx context.Context, d amqp.Delivery, handle func(context.Context, domain.PlayerEvent) error) {
	var event domain.PlayerEvent
	if err := json.Unmarshal(d.Body, &event); err != nil {
		r.logger.Warn("dropping malformed player event", "message_id", d.MessageId, "error", err)
		_ = d.Nack(false, false)
		return
	}

	if err := handle(ctx, event); err != nil {
		r.logger.Error("failed to handle player event",
			"state", event.State,
			"video_id", event.VideoID,
			"error", err,
		)
	}
	_ = d.Ack(false)
}

func (r *RabbitMQ) Close() error {
	if r.channel != nil {
		r.channel.Close()
	}
	if r.conn != nil {
		return r.conn.Close()
	}
	return nil
}
