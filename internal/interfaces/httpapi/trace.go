package httpapi

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/riskibarqy/football-stats/internal/platform/tracing"
)

const handlerSpanPrefix = "httpapi.Handler."

var handlerTracer = otel.Tracer("football-stats/internal/interfaces/httpapi")

// startSpan only traces handler entry points; helpers share the handler span.
func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	if !isHandlerSpan(name) {
		name = ""
	}
	return tracing.StartChild(ctx, handlerTracer, name)
}

func isHandlerSpan(name string) bool {
	return len(name) > len(handlerSpanPrefix) && strings.HasPrefix(name, handlerSpanPrefix)
}
