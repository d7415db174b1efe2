package bootstrap

import (
	"fieldserve/internal/infra/events"
	"fieldserve/internal/pkg/config"
	"fieldserve/internal/pkg/metrics"
	"fieldserve/internal/usecase/commands"

	"go.uber.org/fx"
)

var EventsModule = fx.Module("events",
	fx.Provide(
		fx.Annotate(
			NewEventSink,
			fx.As(new(commands.EventSink)),
		),
	),
)

func NewEventSink(cfg config.Config, m *metrics.Metrics) *events.AMQPSink {
	return events.NewAMQPSink(cfg.AMQP, m)
}
