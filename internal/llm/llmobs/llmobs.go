package llmobs

import (
	"context"

	"weekly-reports/internal/interfaces"
	"weekly-reports/internal/logger"
	"weekly-reports/internal/trace"
)

// observableAdapter wraps an Adapter with observability (logging & tracing)
type observableAdapter struct {
	adapter  interfaces.Adapter
	provider string
}

// Compile-time interface check
var _ interfaces.Adapter = (*observableAdapter)(nil)

// Wrap wraps an adapter with observability middleware
func Wrap(adapter interfaces.Adapter, provider string) interfaces.Adapter {
	return &observableAdapter{
		adapter:  adapter,
		provider: provider,
	}
}

// GenerateContent requests a summary with observability
func (oa *observableAdapter) GenerateContent(ctx context.Context, prompt string) (string, error) {
	ctx, span := trace.StartSpan(ctx, "llm.GenerateContent")
	defer span.End()

	// Use DebugSkip(1) to report the actual caller, not this middleware wrapper
	logger.DebugSkip(ctx, 1, "Requesting summary",
		"provider", oa.provider,
		"prompt_bytes", len(prompt),
	)

	summary, err := oa.adapter.GenerateContent(ctx, prompt)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Failed to generate summary", err,
			"provider", oa.provider,
		)
		return "", err
	}

	logger.InfoSkip(ctx, 1, "Summary received",
		"provider", oa.provider,
		"summary_bytes", len(summary),
	)

	return summary, nil
}
