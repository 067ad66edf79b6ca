package domain

import "time"

// DateRange is an inclusive, day-granularity rental period. Both endpoints
// are normalized to midnight UTC so that two ranges built from different
// clock readings of the same calendar day compare equal.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange builds a range covering [start, end], both inclusive.
func NewDateRange(start, end time.Time) (DateRange, error) {
	start = TruncateToDay(start)
	end = TruncateToDay(end)
	if end.Before(start) {
		return DateRange{}, ErrInvalidPeriod
	}
	return DateRange{Start: start, End: end}, nil
}

// Overlaps reports whether the two ranges share at least one day.
// Endpoints count: a range ending on day D overlaps a range starting on day D.
// The stock availability sweep deliberately uses a different, half-open rule;
// see the availability checker.
func (r DateRange) Overlaps(other DateRange) bool {
	return !r.Start.After(other.End) && !r.End.Before(other.Start)
}

// Days returns the number of calendar days covered, endpoints included.
func (r DateRange) Days() int {
	return int(r.End.Sub(r.Start).Hours()/24) + 1
}

// TruncateToDay drops the time-of-day component, keeping the calendar date in UTC.
func TruncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
