// Package schedule is the availability and conflict engine of the shop calendar.
//
// Everything here is pure: callers load a snapshot of appointments, blocked times and business
// hours, and the functions in this package decide what is bookable. Nothing in this package
// touches storage, so the same snapshot always yields the same answer.
//
// All intervals are half-open, [Start, End). Two intervals that merely touch
// (a.End == b.Start) do not overlap.
package schedule

import (
	"errors"
	"time"
)

// ErrEmptyInterval is returned by NewInterval when end is not after start.
var ErrEmptyInterval = errors.New("interval end must be after start")

// Interval is a half-open time range [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewInterval builds an interval and rejects ranges whose end is not strictly after the start.
func NewInterval(start, end time.Time) (Interval, error) {
	if !end.After(start) {
		return Interval{}, ErrEmptyInterval
	}
	return Interval{Start: start, End: end}, nil
}

// Span lets an Interval be used wherever a Busy record is expected.
func (i Interval) Span() Interval {
	return i
}

func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// Contains reports whether t lies in [Start, End).
func (i Interval) Contains(t time.Time) bool {
	return !t.Before(i.Start) && t.Before(i.End)
}

// Covers reports whether o lies entirely inside i.
func (i Interval) Covers(o Interval) bool {
	return !o.Start.Before(i.Start) && !o.End.After(i.End)
}

// Overlaps reports whether the two intervals share at least one instant.
//
// This is the same relation as "a starts inside b, or a ends inside b, or a strictly contains b",
// with the end point of a counted as inside b only when it is past b.Start.
func (i Interval) Overlaps(o Interval) bool {
	return i.Start.Before(o.End) && o.Start.Before(i.End)
}

// Overlaps is the free-function form of Interval.Overlaps.
func Overlaps(a, b Interval) bool {
	return a.Overlaps(b)
}

// Within reports whether point lies in [interval.Start, interval.End).
func Within(point time.Time, interval Interval) bool {
	return interval.Contains(point)
}
