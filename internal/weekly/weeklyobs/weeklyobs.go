package weeklyobs

import (
	"context"

	"weekly-reports/internal/interfaces"
	"weekly-reports/internal/logger"
	"weekly-reports/internal/trace"
	"weekly-reports/internal/types"
)

type observableSummarizer struct {
	summarizer interfaces.WeeklySummarizer
}

var _ interfaces.WeeklySummarizer = (*observableSummarizer)(nil)

func Wrap(summarizer interfaces.WeeklySummarizer) interfaces.WeeklySummarizer {
	return &observableSummarizer{
		summarizer: summarizer,
	}
}

func (ows *observableSummarizer) Run(ctx context.Context, req types.SummaryRequest) (types.SummaryResult, error) {
	ctx, span := trace.StartSpan(ctx, "weekly.Run")
	defer span.End()

	logger.InfoSkip(ctx, 1, "Starting weekly summary generation",
		"reports_dir", req.ReportsDir,
		"format", req.Format,
	)

	res, err := ows.summarizer.Run(ctx, req)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Weekly summary generation failed", err,
			"run_id", res.RunID,
			"reports_dir", req.ReportsDir,
		)
		return res, err
	}

	if res.Path == "" {
		logger.InfoSkip(ctx, 1, "No summary produced",
			"run_id", res.RunID,
			"range", res.Range.String(),
			"reports", res.ReportCount,
		)
		return res, nil
	}

	logger.InfoSkip(ctx, 1, "Weekly summary generated successfully",
		"run_id", res.RunID,
		"range", res.Range.String(),
		"reports", res.ReportCount,
		"path", res.Path,
	)

	return res, nil
}
