package reporting

import (
	"errors"
	"time"
)

// Period selects a settlement window kind.
type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
)

// ErrInvalidPeriod is returned for an unknown period tag.
var ErrInvalidPeriod = errors.New("reporting: invalid period")

// ParsePeriod validates a period tag; empty defaults to daily.
func ParsePeriod(raw string) (Period, error) {
	switch Period(raw) {
	case PeriodDaily, PeriodWeekly, PeriodMonthly:
		return Period(raw), nil
	case "":
		return PeriodDaily, nil
	}
	return "", ErrInvalidPeriod
}

// Window is an inclusive settlement boundary.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether ts falls inside the window, boundaries
// included.
func (w Window) Contains(ts time.Time) bool {
	return !ts.Before(w.Start) && !ts.After(w.End)
}

// WindowFor computes the settlement window holding now, in now's
// location. Daily spans the local calendar day, weekly runs Monday
// through Sunday, monthly the first through last calendar day.
func WindowFor(period Period, now time.Time) Window {
	dayStart := startOfDay(now)
	switch period {
	case PeriodWeekly:
		// Monday starts the week.
		offset := (int(now.Weekday()) + 6) % 7
		monday := dayStart.AddDate(0, 0, -offset)
		return Window{Start: monday, End: monday.AddDate(0, 0, 7).Add(-time.Nanosecond)}
	case PeriodMonthly:
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return Window{Start: first, End: first.AddDate(0, 1, 0).Add(-time.Nanosecond)}
	default:
		return Window{Start: dayStart, End: dayStart.AddDate(0, 0, 1).Add(-time.Nanosecond)}
	}
}

func startOfDay(ts time.Time) time.Time {
	return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, ts.Location())
}
