// Package weekly runs one summarization: resolve the range, aggregate the
// daily reports, build the prompt, ask the provider and write the result.
package weekly

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"weekly-reports/internal/daterange"
	"weekly-reports/internal/interfaces"
	"weekly-reports/internal/logger"
	"weekly-reports/internal/prompt"
	"weekly-reports/internal/reports"
	"weekly-reports/internal/types"
)

// Output formats accepted by Run.
const (
	FormatText     = "txt"
	FormatMarkdown = "md"
)

var (
	ErrInvalidFormat  = errors.New("format must be 'txt' or 'md'")
	ErrMissingReports = errors.New("reports directory is required")
)

// ValidFormat reports whether f is an accepted output extension.
func ValidFormat(f string) bool {
	return f == FormatText || f == FormatMarkdown
}

// Summarizer implements interfaces.WeeklySummarizer.
type Summarizer struct {
	adapter   interfaces.Adapter
	extension string
	now       func() time.Time
	debug     bool
	debugOut  io.Writer
}

var _ interfaces.WeeklySummarizer = (*Summarizer)(nil)

type Option func(*Summarizer)

// WithReportExtension overrides the daily report extension (default "md").
func WithReportExtension(ext string) Option {
	return func(s *Summarizer) { s.extension = ext }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Summarizer) { s.now = now }
}

// WithDebug prints the full prompt to w before the provider call.
func WithDebug(on bool, w io.Writer) Option {
	return func(s *Summarizer) {
		s.debug = on
		if w != nil {
			s.debugOut = w
		}
	}
}

func NewSummarizer(adapter interfaces.Adapter, opts ...Option) *Summarizer {
	s := &Summarizer{
		adapter:   adapter,
		extension: reports.DefaultExtension,
		now:       time.Now,
		debugOut:  os.Stdout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run executes the pipeline once. An empty summary is not an error: nothing
// is written and Result.Path stays empty.
func (s *Summarizer) Run(ctx context.Context, req types.SummaryRequest) (types.SummaryResult, error) {
	if req.ReportsDir == "" {
		return types.SummaryResult{}, ErrMissingReports
	}
	if req.Format == "" {
		req.Format = FormatText
	}
	if !ValidFormat(req.Format) {
		return types.SummaryResult{}, fmt.Errorf("%w, got '%s'", ErrInvalidFormat, req.Format)
	}
	if req.OutputDir == "" {
		req.OutputDir = req.ReportsDir
	}

	now := s.now()
	res := types.SummaryResult{
		RunID: uuid.NewString(),
		Range: daterange.Resolve(now, req.Start, req.End),
	}
	ctx = logger.WithFields(ctx, "run_id", res.RunID)

	batch := reports.NewAggregator(req.ReportsDir, s.extension).Collect(ctx, res.Range)
	res.ReportCount = len(batch.Reports)
	res.ReportBytes = batch.Size()
	res.FailedReports = batch.FailedCount()
	logger.Info(ctx, "Reports collected",
		"range", res.Range.String(),
		"reports", res.ReportCount,
		"bytes", res.ReportBytes,
		"failed", res.FailedReports,
	)

	p := prompt.Build(batch.Text())
	if s.debug {
		fmt.Fprintf(s.debugOut, "[DEBUG] PROMPT:\n\n%s\n", p)
	}

	summary, err := s.adapter.GenerateContent(ctx, p)
	if err != nil {
		return res, err
	}
	res.Summary = summary
	if summary == "" {
		logger.Warn(ctx, "Provider returned an empty summary, nothing written")
		return res, nil
	}

	path, err := writeSummary(req.OutputDir, now, req.Format, summary)
	if err != nil {
		return res, err
	}
	res.Path = path
	return res, nil
}
