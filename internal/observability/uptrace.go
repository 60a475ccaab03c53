// Package observability configures OpenTelemetry export to Uptrace and
// opens the root span of each CLI command.
package observability

import (
	"context"
	"strings"

	"github.com/riskibarqy/tactics-board/internal/config"
	"github.com/riskibarqy/tactics-board/internal/platform/logging"
	"github.com/uptrace/uptrace-go/uptrace"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Shutdown flushes pending spans.
type Shutdown func(context.Context) error

func noopShutdown(context.Context) error { return nil }

var commandTracer = otel.Tracer("tactics-board/cmd/tactics")

// disabledReason is empty when export should be configured.
func disabledReason(cfg config.Config) string {
	switch {
	case !cfg.UptraceEnabled:
		return "UPTRACE_ENABLED=false"
	case strings.TrimSpace(cfg.UptraceDSN) == "":
		return "UPTRACE_DSN empty"
	default:
		return ""
	}
}

// InitUptrace installs the global tracer and meter providers. Without a
// DSN nothing is exported and the returned Shutdown is a no-op.
func InitUptrace(cfg config.Config, logger *logging.Logger) (Shutdown, error) {
	if reason := disabledReason(cfg); reason != "" {
		logger.Debug("uptrace disabled", "reason", reason)
		return noopShutdown, nil
	}

	uptrace.ConfigureOpentelemetry(
		uptrace.WithDSN(cfg.UptraceDSN),
		uptrace.WithServiceName(cfg.ServiceName),
		uptrace.WithServiceVersion(cfg.ServiceVersion),
		uptrace.WithDeploymentEnvironment(cfg.AppEnv),
		uptrace.WithResourceAttributes(attribute.String("tactics.store", cfg.Store)),
	)
	logger.Info("uptrace enabled", "service_name", cfg.ServiceName, "store", cfg.Store)

	return uptrace.Shutdown, nil
}

// StartCommand opens the root span for one CLI invocation. Usecase spans
// only attach below a valid parent, so commands run without it stay untraced.
func StartCommand(ctx context.Context, path string) (context.Context, trace.Span) {
	return commandTracer.Start(ctx, path, trace.WithSpanKind(trace.SpanKindInternal))
}

// EndCommand records err, if any, and ends the span.
func EndCommand(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
