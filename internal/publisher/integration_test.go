//go:build integration

package publisher

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/rabbitmq"
	"github.com/testcontainers/testcontainers-go/wait"

	"feed_player/internal/domain"
)

type RabbitMQIntegrationSuite struct {
	suite.Suite
	ctx       context.Context
	container *rabbitmq.RabbitMQContainer
	amqpURL   string
	logger    *slog.Logger
}

func (s *RabbitMQIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()
	s.logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	container, err := rabbitmq.Run(s.ctx,
		"rabbitmq:3.13-management-alpine",
		testcontainers.WithWaitStrategy(
			wait.ForLog("Server startup complete").
				WithStartupTimeout(60*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	amqpURL, err := container.AmqpURL(s.ctx)
	s.Require().NoError(err)
	s.amqpURL = amqpURL
}

func (s *RabbitMQIntegrationSuite) TearDownSuite() {
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

func TestRabbitMQIntegrationSuite(t *testing.T) {
	suite.Run(t, new(RabbitMQIntegrationSuite))
}

func (s *RabbitMQIntegrationSuite) config(name string) Config {
	return Config{
		URL:               s.amqpURL,
		Exchange:          "test-exchange-" + name,
		CommandRoutingKey: "commands-" + name,
		NoticeRoutingKey:  "notices-" + name,
		EventRoutingKey:   "events-" + name,
		EventQueue:        "test-events-" + name,
	}
}

func (s *RabbitMQIntegrationSuite) TestPublisher_Connection() {
	pub, err := NewRabbitMQ(s.config("connect"), s.logger)
	s.NoError(err)
	s.NotNil(pub)

	s.NoError(pub.Close())
}

func (s *RabbitMQIntegrationSuite) TestSendCommand() {
	cfg := s.config("command")
	pub, err := NewRabbitMQ(cfg, s.logger)
	s.Require().NoError(err)
	defer pub.Close()

	msgs := s.bindQueue(cfg.Exchange, cfg.CommandRoutingKey)

	err = pub.SendCommand(s.ctx, domain.PlayerCommand{Action: domain.ActionLoad, VideoID: "dQw4w9WgXcQ"})
	s.NoError(err)

	msg := s.receive(msgs)
	s.Require().NotNil(msg)
	s.Equal("application/json", msg.ContentType)
	s.NotEmpty(msg.MessageId)

	var received CommandMessage
	s.NoError(json.Unmarshal(msg.Body, &received))
	s.Equal(domain.ActionLoad, received.Command.Action)
	s.Equal("dQw4w9WgXcQ", received.Command.VideoID)
	s.False(received.Timestamp.IsZero())
}

func (s *RabbitMQIntegrationSuite) TestNotify() {
	cfg := s.config("notice")
	pub, err := NewRabbitMQ(cfg, s.logger)
	s.Require().NoError(err)
	defer pub.Close()

	msgs := s.bindQueue(cfg.Exchange, cfg.NoticeRoutingKey)

	err = pub.Notify(s.ctx, domain.Notice{Level: domain.NoticeInfo, Message: "Playing - Song"})
	s.NoError(err)

	msg := s.receive(msgs)
	s.Require().NotNil(msg)

	var received NoticeMessage
	s.NoError(json.Unmarshal(msg.Body, &received))
	s.Equal("Playing - Song", received.Notice.Message)
	s.Equal(domain.NoticeInfo, received.Notice.Level)
}

func (s *RabbitMQIntegrationSuite) TestConsumeEvents() {
	cfg := s.config("events")
	pub, err := NewRabbitMQ(cfg, s.logger)
	s.Require().NoError(err)
	defer pub.Close()

	ctx, cancel := context.WithCancel(s.ctx)
	defer cancel()

	received := make(chan domain.PlayerEvent, 2)
	done := make(chan error, 1)
	go func() {
		done <- pub.ConsumeEvents(ctx, func(_ context.Context, e domain.PlayerEvent) error {
			received <- e
			return nil
		})
	}()

	s.publishRaw(cfg.Exchange, cfg.EventRoutingKey, []byte("not json"))
	body, err := json.Marshal(domain.PlayerEvent{State: domain.PlayerEnded, VideoID: "dQw4w9WgXcQ"})
	s.Require().NoError(err)
	s.publishRaw(cfg.Exchange, cfg.EventRoutingKey, body)

	select {
	case e := <-received:
		s.Equal(domain.PlayerEnded, e.State)
		s.Equal("dQw4w9WgXcQ", e.VideoID)
	case <-time.After(5 * time.Second):
		s.Fail("Timeout waiting for event")
	}

	cancel()
	select {
	case err := <-done:
		s.NoError(err)
	case <-time.After(5 * time.Second):
		s.Fail("consumer did not stop")
	}
}

func (s *RabbitMQIntegrationSuite) bindQueue(exchange, routingKey string) <-chan amqp.Delivery {
	conn, err := amqp.Dial(s.amqpURL)
	s.Require().NoError(err)
	s.T().Cleanup(func() { conn.Close() })

	ch, err := conn.Channel()
	s.Require().NoError(err)

	q, err := ch.QueueDeclare("", false, true, true, false, nil)
	s.Require().NoError(err)
	s.Require().NoError(ch.QueueBind(q.Name, routingKey, exchange, false, nil))

	msgs, err := ch.Consume(q.Name, "", true, false, false, false, nil)
	s.Require().NoError(err)
	return msgs
}

func (s *RabbitMQIntegrationSuite) publishRaw(exchange, routingKey string, body []byte) {
	conn, err := amqp.Dial(s.amqpURL)
	s.Require().NoError(err)
	defer conn.Close()

	ch, err := conn.Channel()
	s.Require().NoError(err)
	defer ch.Close()

	err = ch.PublishWithContext(s.ctx, exchange, routingKey, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
	s.Require().NoError(err)
}

func (s *RabbitMQIntegrationSuite) receive(msgs <-chan amqp.Delivery) *amqp.Delivery {
	select {
	case msg := <-msgs:
		return &msg
	case <-time.After(5 * time.Second):
		s.Fail("Timeout waiting for message")
		return nil
	}
}
