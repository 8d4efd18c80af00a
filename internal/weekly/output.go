package weekly

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"weekly-reports/internal/types"
)

// OutputPrefix starts every summary file name.
const OutputPrefix = "resumo_semanal_"

// OutputName is the summary file name for a run on day.
func OutputName(day time.Time, format string) string {
	return OutputPrefix + day.Format(types.DateLayout) + "." + format
}

// writeSummary creates dir if needed and replaces any summary already
// written for the same day.
func writeSummary(dir string, now time.Time, format, summary string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	path := filepath.Join(dir, OutputName(now, format))
	if err := os.WriteFile(path, []byte(summary), 0o644); err != nil {
		return "", fmt.Errorf("writing summary: %w", err)
	}
	return path, nil
}
