package noop

import (
	"context"

	"weekly-reports/internal/logger"
)

// Name is the provider key of this adapter.
const Name = "noop"

// Adapter is used for dry runs. It never calls a provider and always returns
// an empty summary, so nothing is written.
type Adapter struct{}

func New() *Adapter {
	return &Adapter{}
}

// GenerateContent implements interfaces.Adapter.
func (a *Adapter) GenerateContent(ctx context.Context, prompt string) (string, error) {
	logger.Debug(ctx, "Noop adapter called - returning empty summary", "prompt_bytes", len(prompt))
	return "", nil
}
