package events

import (
	"context"
	"encoding/json"
	"time"

	"fieldserve/internal/domain/reservation"
	"fieldserve/internal/pkg/config"
	"fieldserve/internal/pkg/errs"
	"fieldserve/internal/pkg/metrics"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	outcomeSuccess = "success"
	outcomeFailure = "failure"
)

// AMQPSink publishes lifecycle events to per-kind durable queues on the
// default exchange. Messages are persistent so they survive broker
// restarts; a fresh connection per publish keeps the sink free of broken
// channel state after broker hiccups.
type AMQPSink struct {
	url     string
	metrics *metrics.Metrics
}

func NewAMQPSink(cfg config.AMQPConfig, m *metrics.Metrics) *AMQPSink {
	return &AMQPSink{url: cfg.URL, metrics: m}
}

type envelope struct {
	Kind       string            `json:"kind"`
	OccurredAt time.Time         `json:"occurred_at"`
	Payload    reservation.Event `json:"payload"`
}

func (s *AMQPSink) Publish(ctx context.Context, event reservation.Event) error {
	if err := s.publish(ctx, event); err != nil {
		s.metrics.EventsPublished.WithLabelValues(event.Kind(), outcomeFailure).Inc()
		return err
	}
	s.metrics.EventsPublished.WithLabelValues(event.Kind(), outcomeSuccess).Inc()
	return nil
}

func (s *AMQPSink) publish(ctx context.Context, event reservation.Event) error {
	conn, err := amqp.Dial(s.url)
	if err != nil {
		return errs.Wrap(err, "amqp dial failed")
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return errs.Wrap(err, "amqp channel open failed")
	}
	defer func() { _ = ch.Close() }()

	queue := event.Kind()
	if _, err := ch.QueueDeclare(
		queue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	); err != nil {
		return errs.Wrap(err, "amqp queue declare failed")
	}

	body, err := json.Marshal(envelope{
		Kind:       event.Kind(),
		OccurredAt: time.Now().UTC(),
		Payload:    event,
	})
	if err != nil {
		return errs.Wrap(err, "failed to marshal event")
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	// Default exchange routes by queue name.
	if err := ch.PublishWithContext(ctx, "", queue, false, false, pub); err != nil {
		return errs.Wrap(err, "amqp publish failed")
	}
	return nil
}
