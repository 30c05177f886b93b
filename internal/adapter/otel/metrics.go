package otel

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "reachforge"

// Metrics holds all ReachForge metric instruments.
type Metrics struct {
	DraftsGenerated metric.Int64Counter
	DraftsPublished metric.Int64Counter
	SuggestionRuns  metric.Int64Counter
	OutreachCreated metric.Int64Counter
	LLMTokensIn     metric.Int64Counter
	LLMTokensOut    metric.Int64Counter
	LLMCallDuration metric.Float64Histogram
}

// NewMetrics creates all metric instruments.
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(meterName)
	m := &Metrics{}
	var err error

	m.DraftsGenerated, err = meter.Int64Counter("reachforge.drafts.generated",
		metric.WithDescription("Number of content drafts generated"))
	if err != nil {
		return nil, err
	}

	m.DraftsPublished, err = meter.Int64Counter("reachforge.drafts.published",
		metric.WithDescription("Number of content drafts published"))
	if err != nil {
		return nil, err
	}

	m.SuggestionRuns, err = meter.Int64Counter("reachforge.suggestions.runs",
		metric.WithDescription("Number of suggestion agent invocations"))
	if err != nil {
		return nil, err
	}

	m.OutreachCreated, err = meter.Int64Counter("reachforge.outreach.created",
		metric.WithDescription("Number of outreach tasks created"))
	if err != nil {
		return nil, err
	}

	m.LLMTokensIn, err = meter.Int64Counter("reachforge.llm.tokens_in",
		metric.WithDescription("Prompt tokens sent to the LLM provider"))
	if err != nil {
		return nil, err
	}

	m.LLMTokensOut, err = meter.Int64Counter("reachforge.llm.tokens_out",
		metric.WithDescription("Completion tokens received from the LLM provider"))
	if err != nil {
		return nil, err
	}

	m.LLMCallDuration, err = meter.Float64Histogram("reachforge.llm.call_duration_seconds",
		metric.WithDescription("LLM provider call duration in seconds"))
	if err != nil {
		return nil, err
	}

	return m, nil
}
