package schedule

// Busy is anything that occupies the calendar for a span of time.
type Busy interface {
	Span() Interval
}

// Releasable is implemented by busy records that can stop occupying the calendar,
// such as a cancelled appointment. Released records never conflict.
type Releasable interface {
	Released() bool
}

func occupies[T Busy](item T) bool {
	if r, ok := any(item).(Releasable); ok && r.Released() {
		return false
	}
	return true
}

// Overlapping returns the items whose span overlaps candidate, in input order.
func Overlapping[T Busy](candidate Interval, items []T) []T {
	var out []T
	for _, item := range items {
		if occupies(item) && candidate.Overlaps(item.Span()) {
			out = append(out, item)
		}
	}
	return out
}

// HasConflict reports whether any item overlaps candidate.
func HasConflict[T Busy](candidate Interval, items []T) bool {
	for _, item := range items {
		if occupies(item) && candidate.Overlaps(item.Span()) {
			return true
		}
	}
	return false
}
