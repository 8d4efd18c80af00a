package interfaces

import (
	"context"

	"weekly-reports/internal/types"
)

// WeeklySummarizer runs the resolve, aggregate, prompt, generate and write
// pipeline once.
type WeeklySummarizer interface {
	Run(ctx context.Context, req types.SummaryRequest) (types.SummaryResult, error)
}
