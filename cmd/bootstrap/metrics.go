package bootstrap

import (
	"fieldserve/internal/pkg/metrics"

	"go.uber.org/fx"
)

const metricsNamespace = "fieldserve"

var MetricsModule = fx.Module("metrics",
	fx.Provide(
		NewMetrics,
	),
)

func NewMetrics() *metrics.Metrics {
	return metrics.NewMetrics(metricsNamespace)
}
