package schedule

import (
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAppointment struct {
	id        string
	span      Interval
	cancelled bool
}

func (a fakeAppointment) Span() Interval { return a.span }
func (a fakeAppointment) Key() string    { return a.id }
func (a fakeAppointment) Released() bool { return a.cancelled }

type fakeBlock struct {
	span   Interval
	reason string
}

func (b fakeBlock) Span() Interval { return b.span }

func starts(slots []Interval) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.Start.Format("15:04")
	}
	return out
}

func TestSlots(t *testing.T) {
	window := iv(9, 0, 10, 0)

	got := slices.Collect(Slots(window, 30*time.Minute))
	assert.Equal(t, []string{"09:00", "09:15", "09:30"}, starts(got))
	for _, s := range got {
		assert.False(t, s.End.After(window.End), "slot %v ends after close", s)
		assert.Equal(t, 30*time.Minute, s.Duration())
	}

	// Restartable: ranging again yields the same sequence.
	assert.Equal(t, got, slices.Collect(Slots(window, 30*time.Minute)))
}

func TestSlotsEdgeCases(t *testing.T) {
	window := iv(9, 0, 10, 0)

	assert.Empty(t, slices.Collect(Slots(window, 61*time.Minute)), "duration longer than the window")
	assert.Len(t, slices.Collect(Slots(window, time.Hour)), 1, "duration equal to the window")
	assert.Empty(t, slices.Collect(Slots(window, 0)))

	// Early break stops the generator.
	n := 0
	for range Slots(window, 15*time.Minute) {
		n++
		if n == 2 {
			break
		}
	}
	assert.Equal(t, 2, n)
}

func TestAvailableSlots(t *testing.T) {
	cal := &Calendar{Hours: mondayHours(), Location: time.UTC}
	monday := at(0, 0)

	tests := []struct {
		name         string
		duration     time.Duration
		appointments []fakeAppointment
		blocked      []fakeBlock
		include      []string
		exclude      []string
		count        int
	}{
		{
			name:     "empty day, 30 minute service",
			duration: 30 * time.Minute,
			include:  []string{"09:00", "17:30"},
			exclude:  []string{"17:45"},
			count:    35,
		},
		{
			name:         "existing 09:00-09:30 appointment",
			duration:     30 * time.Minute,
			appointments: []fakeAppointment{{id: "a1", span: iv(9, 0, 9, 30)}},
			include:      []string{"09:30", "09:45"},
			exclude:      []string{"09:00", "09:15"},
			count:        33,
		},
		{
			name:         "cancelled appointment frees its slot",
			duration:     30 * time.Minute,
			appointments: []fakeAppointment{{id: "a1", span: iv(9, 0, 9, 30), cancelled: true}},
			include:      []string{"09:00", "09:15"},
			count:        35,
		},
		{
			name:     "blocked lunch hour",
			duration: 45 * time.Minute,
			blocked:  []fakeBlock{{span: iv(12, 0, 13, 0), reason: "lunch"}},
			include:  []string{"11:15", "13:00"},
			exclude:  []string{"11:30", "12:00", "12:45"},
		},
		{
			name:     "service longer than the day",
			duration: 10 * time.Hour,
			count:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := starts(AvailableSlots(cal, monday, tt.duration, tt.appointments, tt.blocked))
			for _, s := range tt.include {
				assert.Contains(t, got, s)
			}
			for _, s := range tt.exclude {
				assert.NotContains(t, got, s)
			}
			if tt.count > 0 || len(tt.include) == 0 {
				assert.Len(t, got, tt.count)
			}
			assert.True(t, slices.IsSorted(got), "slots must be ordered by start")
		})
	}
}

func TestAvailableSlotsClosedDay(t *testing.T) {
	var hours WeeklyHours
	hours[time.Monday] = DayHours{Open: nil, Close: nil}
	cal := &Calendar{Hours: hours, Location: time.UTC}

	assert.Empty(t, AvailableSlots[fakeAppointment, fakeBlock](cal, at(0, 0), 30*time.Minute, nil, nil))
}

func TestAvailableSlotsIsIdempotent(t *testing.T) {
	cal := &Calendar{Hours: mondayHours(), Location: time.UTC}
	appts := []fakeAppointment{{id: "a", span: iv(10, 0, 11, 0)}, {id: "b", span: iv(14, 15, 14, 45)}}
	blocked := []fakeBlock{{span: iv(16, 0, 18, 0)}}

	first := AvailableSlots(cal, at(0, 0), 30*time.Minute, appts, blocked)
	second := AvailableSlots(cal, at(0, 0), 30*time.Minute, appts, blocked)
	assert.Equal(t, first, second)
}

func TestBookingAReturnedSlotRemovesIt(t *testing.T) {
	cal := &Calendar{Hours: mondayHours(), Location: time.UTC}
	var appts []fakeAppointment

	before := AvailableSlots[fakeAppointment, fakeBlock](cal, at(0, 0), 30*time.Minute, appts, nil)
	require.NotEmpty(t, before)
	picked := before[3]

	appts = append(appts, fakeAppointment{id: "new", span: picked})
	after := AvailableSlots[fakeAppointment, fakeBlock](cal, at(0, 0), 30*time.Minute, appts, nil)

	assert.NotContains(t, after, picked)
	for _, s := range after {
		assert.False(t, s.Overlaps(picked))
	}
}

func TestIsFree(t *testing.T) {
	appts := []fakeAppointment{{id: "a", span: iv(10, 0, 10, 30)}}
	blocked := []fakeBlock{{span: iv(12, 0, 13, 0)}}

	assert.True(t, IsFree(iv(10, 30, 11, 0), appts, blocked), "adjacent to appointment")
	assert.False(t, IsFree(iv(10, 15, 10, 45), appts, blocked))
	assert.False(t, IsFree(iv(12, 30, 13, 30), appts, blocked))
	assert.True(t, IsFree(iv(13, 0, 13, 30), appts, blocked), "adjacent to block")
}

func TestOverlappingKeepsInputOrder(t *testing.T) {
	items := []fakeAppointment{
		{id: "late", span: iv(11, 0, 12, 0)},
		{id: "skip", span: iv(13, 0, 14, 0)},
		{id: "early", span: iv(9, 0, 10, 30)},
	}
	hits := Overlapping(iv(10, 0, 11, 30), items)
	require.Len(t, hits, 2)
	assert.Equal(t, "late", hits[0].id)
	assert.Equal(t, "early", hits[1].id)
}
