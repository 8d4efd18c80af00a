// Package reports loads daily report files over a date range and
// concatenates them into the text handed to the prompt builder.
package reports

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/hashicorp/go-multierror"

	"weekly-reports/internal/logger"
	"weekly-reports/internal/types"
)

// DefaultExtension is the extension of daily report files.
const DefaultExtension = "md"

// BlockSeparator joins consecutive report blocks.
const BlockSeparator = "\n\n"

// ErrInvalidEncoding marks a report whose bytes are not valid UTF-8.
var ErrInvalidEncoding = errors.New("report is not valid UTF-8")

// FileReadError is recorded when a report exists but cannot be read.
type FileReadError struct {
	Path string
	Err  error
}

func (e *FileReadError) Error() string {
	return fmt.Sprintf("reading %s: %v", e.Path, e.Err)
}

func (e *FileReadError) Unwrap() error { return e.Err }

// Batch is the outcome of one aggregation.
type Batch struct {
	Range   types.DateRange
	Reports []types.Report
	// Failed holds one *FileReadError per unreadable report, nil if none.
	Failed error
}

// Text renders every report as "<file name>\n<content>", joined by a blank
// line, in chronological order. It is empty when no report was found.
func (b Batch) Text() string {
	blocks := make([]string, 0, len(b.Reports))
	for _, r := range b.Reports {
		blocks = append(blocks, r.Name+"\n"+r.Content)
	}
	return strings.Join(blocks, BlockSeparator)
}

// Size is the number of content bytes collected.
func (b Batch) Size() int {
	n := 0
	for _, r := range b.Reports {
		n += len(r.Content)
	}
	return n
}

// FailedCount is the number of reports recorded in Failed.
func (b Batch) FailedCount() int {
	var merr *multierror.Error
	if errors.As(b.Failed, &merr) {
		return merr.Len()
	}
	if b.Failed != nil {
		return 1
	}
	return 0
}

// Aggregator reads <dir>/<YYYY-MM-DD>.<ext> files.
type Aggregator struct {
	dir string
	ext string
}

func NewAggregator(dir, ext string) *Aggregator {
	ext = strings.TrimPrefix(ext, ".")
	if ext == "" {
		ext = DefaultExtension
	}
	return &Aggregator{dir: dir, ext: ext}
}

// FileName is the report file name for a date.
func (a *Aggregator) FileName(day time.Time) string {
	return day.Format(types.DateLayout) + "." + a.ext
}

// Collect reads every report in rng. Missing days are skipped silently;
// unreadable files are logged and recorded in Batch.Failed. Collect never
// fails as a whole.
func (a *Aggregator) Collect(ctx context.Context, rng types.DateRange) Batch {
	op := logger.StartOperation(ctx, "reports.Collect", "dir", a.dir, "range", rng.String())
	ctx = op.GetContext()

	batch := Batch{Range: rng}
	var failed *multierror.Error

	for _, day := range rng.Days() {
		name := a.FileName(day)
		path := filepath.Join(a.dir, name)

		content, err := readReport(path)
		if errors.Is(err, fs.ErrNotExist) {
			logger.Debug(ctx, "No report for date", "date", day.Format(types.DateLayout))
			continue
		}
		if err != nil {
			readErr := &FileReadError{Path: path, Err: err}
			logger.Warn(ctx, "Skipping unreadable report", "path", path, "error", err)
			failed = multierror.Append(failed, readErr)
			continue
		}

		batch.Reports = append(batch.Reports, types.Report{Date: day, Name: name, Content: content})
	}

	batch.Failed = failed.ErrorOrNil()
	op.End("reports", len(batch.Reports))
	return batch
}

// Aggregate is Collect followed by Text.
func Aggregate(ctx context.Context, dir string, rng types.DateRange) string {
	return NewAggregator(dir, DefaultExtension).Collect(ctx, rng).Text()
}

func readReport(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", ErrInvalidEncoding
	}
	return string(data), nil
}
