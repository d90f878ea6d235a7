package schedule

import (
	"iter"
	"time"
)

// SlotStep is the cadence at which candidate start times are generated.
const SlotStep = 15 * time.Minute

// Slots yields every candidate [cursor, cursor+duration) inside window, with cursor starting at
// window.Start and advancing by SlotStep. It stops at the first candidate that would end after
// window.End. The sequence can be ranged over any number of times.
func Slots(window Interval, duration time.Duration) iter.Seq[Interval] {
	return func(yield func(Interval) bool) {
		if duration <= 0 {
			return
		}
		for cursor := window.Start; cursor.Before(window.End); cursor = cursor.Add(SlotStep) {
			end := cursor.Add(duration)
			if end.After(window.End) {
				return
			}
			if !yield(Interval{Start: cursor, End: end}) {
				return
			}
		}
	}
}
