package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "reachforge"

// StartGenerationSpan starts a span for a writing agent generation.
func StartGenerationSpan(ctx context.Context, ventureID, model string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "generate",
		trace.WithAttributes(
			attribute.String("venture.id", ventureID),
			attribute.String("llm.model", model),
		),
	)
}

// StartSuggestionSpan starts a span for a suggestion agent run.
func StartSuggestionSpan(ctx context.Context, ventureID, kind string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "suggest",
		trace.WithAttributes(
			attribute.String("venture.id", ventureID),
			attribute.String("suggestion.kind", kind),
		),
	)
}
