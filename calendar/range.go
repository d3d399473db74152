package calendar

import (
	"github.com/cardops/backoffice/cerrors"
)

// DateRange is an inclusive [Start, End] interval at day granularity.
// Construction enforces Start <= End, grounded on the invariant spec.md
// requires for every DateRange operation below.
type DateRange struct {
	Start Date
	End   Date
}

// NewDateRange builds an inclusive date range. Fails if start is after end.
func NewDateRange(start, end Date) (DateRange, error) {
	if start.After(end) {
		return DateRange{}, cerrors.New(cerrors.InvalidArgument,
			"date range start %s is after end %s", start, end)
	}
	return DateRange{Start: start, End: end}, nil
}

// MustNewDateRange builds a DateRange and panics on failure. Reserved for
// tests and compile-time-constant ranges.
func MustNewDateRange(start, end Date) DateRange {
	r, err := NewDateRange(start, end)
	if err != nil {
		panic(err)
	}
	return r
}

// SingleDay builds a one-day range covering exactly d.
func SingleDay(d Date) DateRange {
	return DateRange{Start: d, End: d}
}

// Contains reports whether d falls within the inclusive range.
func (r DateRange) Contains(d Date) bool {
	return !d.Before(r.Start) && !d.After(r.End)
}

// Overlaps reports whether r and other share at least one day.
func (r DateRange) Overlaps(other DateRange) bool {
	return !r.Start.After(other.End) && !other.Start.After(r.End)
}

// Intersection returns the overlapping sub-range of r and other, and false
// if they do not overlap.
func (r DateRange) Intersection(other DateRange) (DateRange, bool) {
	if !r.Overlaps(other) {
		return DateRange{}, false
	}
	start := r.Start
	if other.Start.After(start) {
		start = other.Start
	}
	end := r.End
	if other.End.Before(end) {
		end = other.End
	}
	return DateRange{Start: start, End: end}, true
}

// Extend returns the smallest range covering both r and other, regardless
// of whether they overlap or touch.
func (r DateRange) Extend(other DateRange) DateRange {
	start := r.Start
	if other.Start.Before(start) {
		start = other.Start
	}
	end := r.End
	if other.End.After(end) {
		end = other.End
	}
	return DateRange{Start: start, End: end}
}

// Shift moves both endpoints by n days (n may be negative).
func (r DateRange) Shift(n int) DateRange {
	return DateRange{Start: r.Start.AddDays(n), End: r.End.AddDays(n)}
}

// Shrink moves Start forward and End backward by n days each, returning an
// error if the result would no longer satisfy Start <= End.
func (r DateRange) Shrink(n int) (DateRange, error) {
	return NewDateRange(r.Start.AddDays(n), r.End.AddDays(-n))
}

// DayCount returns the number of calendar days the range spans, inclusive
// of both endpoints (a single-day range has DayCount 1).
func (r DateRange) DayCount() int {
	return r.End.DaysSince(r.Start) + 1
}

// Days yields every date in the range in ascending order.
func (r DateRange) Days() []Date {
	n := r.DayCount()
	days := make([]Date, n)
	d := r.Start
	for i := 0; i < n; i++ {
		days[i] = d
		d = d.AddDays(1)
	}
	return days
}

func (r DateRange) String() string {
	return r.Start.String() + ".." + r.End.String()
}
