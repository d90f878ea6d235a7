package schedule

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidClock    = errors.New("time of day must use HH:MM format")
	ErrInvalidDayHours = errors.New("closing time must be after opening time")
	ErrUnknownWeekday  = errors.New("unknown weekday")
	ErrInvalidTimezone = errors.New("invalid timezone")
)

// Clock is a wall-clock time of day with minute precision.
type Clock struct {
	Hour   int
	Minute int
}

// ParseClock parses "HH:MM" (24-hour). A trailing ":SS" is accepted and ignored when zero.
func ParseClock(s string) (Clock, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			if t.Second() != 0 {
				return Clock{}, ErrInvalidClock
			}
			return Clock{Hour: t.Hour(), Minute: t.Minute()}, nil
		}
	}
	return Clock{}, ErrInvalidClock
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

func (c Clock) minutes() int {
	return c.Hour*60 + c.Minute
}

// On anchors the clock to the calendar day of date, in date's location.
func (c Clock) On(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, c.Hour, c.Minute, 0, 0, date.Location())
}

func (c Clock) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *Clock) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return ErrInvalidClock
	}
	parsed, err := ParseClock(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// DayHours is the operating window of one weekday. A nil Open or Close means closed.
type DayHours struct {
	Open  *Clock `json:"open"`
	Close *Clock `json:"close"`
}

// IsOpen reports whether both bounds are configured.
func (d DayHours) IsOpen() bool {
	return d.Open != nil && d.Close != nil
}

// Validate rejects windows that close at or before they open. Overnight windows are not supported.
func (d DayHours) Validate() error {
	if !d.IsOpen() {
		return nil
	}
	if d.Close.minutes() <= d.Open.minutes() {
		return ErrInvalidDayHours
	}
	return nil
}

// Hours builds an open DayHours from two "HH:MM" strings. It panics on malformed input and is
// meant for defaults and tests.
func Hours(open, close string) DayHours {
	o, err := ParseClock(open)
	if err != nil {
		panic(err)
	}
	c, err := ParseClock(close)
	if err != nil {
		panic(err)
	}
	return DayHours{Open: &o, Close: &c}
}

// WeeklyHours holds one entry per weekday, indexed by time.Weekday.
//
// In JSON it is an object keyed by lowercase English weekday names. Missing days are closed;
// unknown keys are rejected so a typo cannot silently close a day.
type WeeklyHours [7]DayHours

func (w WeeklyHours) Day(d time.Weekday) DayHours {
	return w[d]
}

// Validate checks every day's window.
func (w WeeklyHours) Validate() error {
	for d, h := range w {
		if err := h.Validate(); err != nil {
			return fmt.Errorf("%s: %w", weekdayKey(time.Weekday(d)), err)
		}
	}
	return nil
}

func weekdayKey(d time.Weekday) string {
	return strings.ToLower(d.String())
}

// ParseWeekday maps a lowercase (or any case) English weekday name to time.Weekday.
func ParseWeekday(name string) (time.Weekday, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for d := time.Sunday; d <= time.Saturday; d++ {
		if weekdayKey(d) == name {
			return d, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownWeekday, name)
}

func (w WeeklyHours) MarshalJSON() ([]byte, error) {
	// Monday first, matching how the dashboard renders the week.
	order := []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday, time.Sunday}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, d := range order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, _ := json.Marshal(weekdayKey(d))
		val, err := json.Marshal(w[d])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (w *WeeklyHours) UnmarshalJSON(data []byte) error {
	var raw map[string]DayHours
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var out WeeklyHours
	for name, h := range raw {
		d, err := ParseWeekday(name)
		if err != nil {
			return err
		}
		out[d] = h
	}
	if err := out.Validate(); err != nil {
		return err
	}
	*w = out
	return nil
}

// Calendar binds weekly hours to the business timezone.
type Calendar struct {
	Hours    WeeklyHours
	Location *time.Location
}

// NewCalendar loads the IANA timezone and validates the hours.
func NewCalendar(hours WeeklyHours, timezone string) (*Calendar, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidTimezone, timezone, err)
	}
	if err := hours.Validate(); err != nil {
		return nil, err
	}
	return &Calendar{Hours: hours, Location: loc}, nil
}

func (c *Calendar) location() *time.Location {
	if c.Location == nil {
		return time.UTC
	}
	return c.Location
}

// Day returns midnight of t's calendar day in the business timezone.
func (c *Calendar) Day(t time.Time) time.Time {
	t = t.In(c.location())
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, c.location())
}

// DayBounds returns [midnight, next midnight) of t's calendar day in the business timezone.
func (c *Calendar) DayBounds(t time.Time) Interval {
	start := c.Day(t)
	return Interval{Start: start, End: start.AddDate(0, 0, 1)}
}

// Window resolves the operating window for date's calendar day in the business timezone.
// ok is false when the shop is closed that day.
func (c *Calendar) Window(date time.Time) (window Interval, ok bool) {
	day := c.Day(date)
	h := c.Hours.Day(day.Weekday())
	if !h.IsOpen() {
		return Interval{}, false
	}
	open, close := h.Open.On(day), h.Close.On(day)
	if !close.After(open) {
		return Interval{}, false
	}
	return Interval{Start: open, End: close}, true
}

// ParseDate parses an ISO date (YYYY-MM-DD) as midnight in the business timezone.
func (c *Calendar) ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(time.DateOnly, strings.TrimSpace(s), c.location())
}

// ParseDateTime combines an ISO date and an "HH:MM" time into an instant in the business timezone.
func (c *Calendar) ParseDateTime(date, clock string) (time.Time, error) {
	day, err := c.ParseDate(date)
	if err != nil {
		return time.Time{}, err
	}
	ck, err := ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	return ck.On(day), nil
}
