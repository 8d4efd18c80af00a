// Package daterange resolves the inclusive date range a weekly summary covers.
//
// Weeks run Sunday through Saturday. Without explicit dates the range is the
// last complete week before the one containing "now".
package daterange

import (
	"fmt"
	"time"

	"weekly-reports/internal/types"
)

// WeekLength is the number of days in a default range.
const WeekLength = 7

// Day truncates t to midnight in its own location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Parse reads an ISO YYYY-MM-DD date in local time.
func Parse(s string) (time.Time, error) {
	t, err := time.ParseInLocation(types.DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q must be in the format YYYY-MM-DD", s)
	}
	return t, nil
}

// LastWeek returns the Sunday..Saturday week preceding the week of now.
func LastWeek(now time.Time) types.DateRange {
	today := Day(now)
	sunday := today.AddDate(0, 0, -int(today.Weekday()))
	start := sunday.AddDate(0, 0, -WeekLength)
	return types.DateRange{Start: start, End: start.AddDate(0, 0, WeekLength-1)}
}

// Resolve fills in whatever the caller omitted. A lone end date covers the
// six days before it, a lone start date the six days after it. Explicit
// bounds given in the wrong order are swapped.
func Resolve(now time.Time, start, end *time.Time) types.DateRange {
	switch {
	case start == nil && end == nil:
		return LastWeek(now)
	case start == nil:
		e := Day(*end)
		return types.DateRange{Start: e.AddDate(0, 0, -(WeekLength - 1)), End: e}
	case end == nil:
		s := Day(*start)
		return types.DateRange{Start: s, End: s.AddDate(0, 0, WeekLength-1)}
	}

	s, e := Day(*start), Day(*end)
	if e.Before(s) {
		s, e = e, s
	}
	return types.DateRange{Start: s, End: e}
}
