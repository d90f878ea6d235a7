package schedule

import "time"

// AvailableSlots lists every start time on date's calendar day at which a booking of duration fits
// inside business hours without overlapping appointments or blocked times. The result is ordered
// by start time and is empty when the shop is closed.
func AvailableSlots[A Busy, B Busy](cal *Calendar, date time.Time, duration time.Duration, appointments []A, blocked []B) []Interval {
	window, ok := cal.Window(date)
	if !ok {
		return nil
	}
	var out []Interval
	for candidate := range Slots(window, duration) {
		if HasConflict(candidate, appointments) || HasConflict(candidate, blocked) {
			continue
		}
		out = append(out, candidate)
	}
	return out
}

// IsFree reports whether interval overlaps neither an appointment nor a blocked time.
func IsFree[A Busy, B Busy](interval Interval, appointments []A, blocked []B) bool {
	return !HasConflict(interval, appointments) && !HasConflict(interval, blocked)
}
