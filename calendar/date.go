// Package calendar provides the day-granularity date primitives the
// sweep-line balance calculator and debt buckets are built on: a Date value
// type and an inclusive DateRange with the integer-day operations spec.md
// requires (contains, overlaps, intersection, extend, shift, shrink,
// dayCount).
package calendar

import (
	"fmt"
	"time"
)

// Date is a calendar day, stored as a UTC midnight time.Time the way the
// teacher's ast.Date embeds time.Time, but normalised to day granularity on
// construction so two Dates for the same calendar day always compare equal
// and hash identically as map keys.
type Date struct {
	t time.Time
}

// NewDate builds a Date from a year/month/day triple.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// FromTime truncates an arbitrary time.Time down to its calendar day.
func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

// ParseDate parses a "2006-01-02" formatted string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{t: t}, nil
}

// MustParseDate parses s and panics on failure. Reserved for tests and
// call sites with compile-time-constant dates.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Time returns the underlying UTC-midnight time.Time.
func (d Date) Time() time.Time {
	return d.t
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool {
	return d.t.Before(other.t)
}

// After reports whether d is strictly later than other.
func (d Date) After(other Date) bool {
	return d.t.After(other.t)
}

// Equal reports whether d and other are the same calendar day.
func (d Date) Equal(other Date) bool {
	return d.t.Equal(other.t)
}

// AddDays returns the date n days after d (n may be negative).
func (d Date) AddDays(n int) Date {
	return Date{t: d.t.AddDate(0, 0, n)}
}

// DaysSince returns the integer number of days between other and d
// (d - other), positive when d is later.
func (d Date) DaysSince(other Date) int {
	return int(d.t.Sub(other.t).Hours() / 24)
}

// String renders the date as "2006-01-02".
func (d Date) String() string {
	return d.t.Format("2006-01-02")
}
