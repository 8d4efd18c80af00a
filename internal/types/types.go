package types

import "time"

// DateLayout is the ISO-8601 calendar date used for report file names.
const DateLayout = "2006-01-02"

// Report is a single day's free-form log backed by <date>.<ext>.
type Report struct {
	Date    time.Time `json:"date"`
	Name    string    `json:"name"`
	Content string    `json:"content"`
}

// DateRange is an inclusive [Start, End] pair of calendar dates.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Days returns every date of the range in chronological order.
func (r DateRange) Days() []time.Time {
	if r.End.Before(r.Start) {
		return nil
	}
	var days []time.Time
	for d := r.Start; !d.After(r.End); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

func (r DateRange) String() string {
	return r.Start.Format(DateLayout) + ".." + r.End.Format(DateLayout)
}

// SummaryRequest describes one orchestrator invocation.
type SummaryRequest struct {
	ReportsDir string
	OutputDir  string
	Start      *time.Time
	End        *time.Time
	Format     string
}

// SummaryResult reports what a run produced. Path is empty when the
// provider returned nothing and no file was written.
type SummaryResult struct {
	RunID       string    `json:"run_id"`
	Range       DateRange `json:"range"`
	ReportCount int       `json:"report_count"`
	ReportBytes int       `json:"report_bytes"`
	// FailedReports counts files that existed but could not be read.
	FailedReports int    `json:"failed_reports"`
	Summary       string `json:"summary"`
	Path          string `json:"path"`
}
