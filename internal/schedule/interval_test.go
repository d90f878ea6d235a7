package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(h, m int) time.Time {
	return time.Date(2026, 10, 19, h, m, 0, 0, time.UTC)
}

func iv(h1, m1, h2, m2 int) Interval {
	return Interval{Start: at(h1, m1), End: at(h2, m2)}
}

func TestNewInterval(t *testing.T) {
	_, err := NewInterval(at(10, 0), at(10, 0))
	assert.ErrorIs(t, err, ErrEmptyInterval)

	_, err = NewInterval(at(10, 0), at(9, 0))
	assert.ErrorIs(t, err, ErrEmptyInterval)

	got, err := NewInterval(at(9, 0), at(9, 30))
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, got.Duration())
}

func TestOverlaps(t *testing.T) {
	base := iv(10, 0, 11, 0)

	tests := []struct {
		name  string
		other Interval
		want  bool
	}{
		{"identical", iv(10, 0, 11, 0), true},
		{"adjacent before", iv(9, 0, 10, 0), false},
		{"adjacent after", iv(11, 0, 12, 0), false},
		{"disjoint before", iv(8, 0, 9, 0), false},
		{"disjoint after", iv(12, 0, 13, 0), false},
		{"starts inside", iv(10, 30, 11, 30), true},
		{"ends inside", iv(9, 30, 10, 30), true},
		{"nested", iv(10, 15, 10, 45), true},
		{"contains", iv(9, 0, 12, 0), true},
		{"same start longer", iv(10, 0, 12, 0), true},
		{"same end earlier start", iv(9, 0, 11, 0), true},
		{"one minute overlap", iv(10, 59, 11, 30), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(base, tt.other))
			assert.Equal(t, tt.want, Overlaps(tt.other, base), "overlap must be symmetric")
		})
	}
}

// threeWay is the start-inside / end-inside / strictly-contains formulation of overlap,
// with the end point counted only once it is past the other interval's start.
func threeWay(a, b Interval) bool {
	startInside := !a.Start.Before(b.Start) && a.Start.Before(b.End)
	endInside := a.End.After(b.Start) && !a.End.After(b.End)
	contains := a.Start.Before(b.Start) && a.End.After(b.End)
	return startInside || endInside || contains
}

func TestOverlapsMatchesThreeWayDefinition(t *testing.T) {
	// Every pair of intervals on a 15-minute grid between 09:00 and 11:00.
	var grid []Interval
	for s := 0; s < 8; s++ {
		for e := s + 1; e <= 8; e++ {
			grid = append(grid, Interval{
				Start: at(9, 0).Add(time.Duration(s) * SlotStep),
				End:   at(9, 0).Add(time.Duration(e) * SlotStep),
			})
		}
	}

	for _, a := range grid {
		for _, b := range grid {
			shared := false
			for m := a.Start; m.Before(a.End); m = m.Add(time.Minute) {
				if b.Contains(m) {
					shared = true
					break
				}
			}
			require.Equal(t, shared, Overlaps(a, b), "a=%v b=%v", a, b)
			require.Equal(t, threeWay(a, b), Overlaps(a, b), "a=%v b=%v", a, b)
		}
	}
}

func TestWithinIsHalfOpen(t *testing.T) {
	i := iv(9, 0, 10, 0)
	assert.True(t, Within(at(9, 0), i))
	assert.True(t, Within(at(9, 59), i))
	assert.False(t, Within(at(10, 0), i))
	assert.False(t, Within(at(8, 59), i))
}

func TestCovers(t *testing.T) {
	day := iv(9, 0, 18, 0)
	assert.True(t, day.Covers(iv(9, 0, 18, 0)))
	assert.True(t, day.Covers(iv(17, 30, 18, 0)))
	assert.False(t, day.Covers(iv(8, 45, 9, 15)))
	assert.False(t, day.Covers(iv(17, 45, 18, 15)))
}
