package observability

import (
	"strings"

	"github.com/uptrace/uptrace-go/uptrace"
	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/tournament-engine/internal/config"
	"github.com/riskibarqy/tournament-engine/internal/platform/logging"
)

// startTracing installs the global OpenTelemetry providers exported to Uptrace. The use case
// spans, otelhttp and otelsqlx all pick them up through the otel globals.
func startTracing(cfg config.Config, logger *logging.Logger) (stopFunc, error) {
	if !cfg.UptraceEnabled {
		logger.Info("tracing disabled", "reason", "UPTRACE_ENABLED=false")
		return nil, nil
	}
	dsn := strings.TrimSpace(cfg.UptraceDSN)
	if dsn == "" {
		logger.Warn("tracing disabled", "reason", "UPTRACE_DSN empty")
		return nil, nil
	}

	uptrace.ConfigureOpentelemetry(
		uptrace.WithDSN(dsn),
		uptrace.WithServiceName(cfg.ServiceName),
		uptrace.WithServiceVersion(cfg.ServiceVersion),
		uptrace.WithDeploymentEnvironment(cfg.AppEnv),
		uptrace.WithResourceAttributes(attribute.String("tournament.store", cfg.StoreDriver)),
	)
	logger.Info("tracing enabled", "exporter", "uptrace", "store", cfg.StoreDriver)

	return uptrace.Shutdown, nil
}
