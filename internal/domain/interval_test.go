package domain

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour, minute int) time.Time {
	return time.Date(2025, 6, 2, hour, minute, 0, 0, time.UTC)
}

func TestInterval_Overlaps(t *testing.T) {
	base := Interval{Start: at(10, 0), End: at(11, 0)}

	tests := []struct {
		name  string
		other Interval
		want  bool
	}{
		{name: "identical", other: base, want: true},
		{name: "starts inside", other: Interval{Start: at(10, 30), End: at(11, 30)}, want: true},
		{name: "ends inside", other: Interval{Start: at(9, 30), End: at(10, 30)}, want: true},
		{name: "contains", other: Interval{Start: at(9, 0), End: at(12, 0)}, want: true},
		{name: "inside", other: Interval{Start: at(10, 15), End: at(10, 45)}, want: true},
		{name: "touches end", other: Interval{Start: at(11, 0), End: at(12, 0)}, want: false},
		{name: "touches start", other: Interval{Start: at(9, 0), End: at(10, 0)}, want: false},
		{name: "before", other: Interval{Start: at(8, 0), End: at(9, 0)}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Overlaps(tt.other))
			assert.Equal(t, tt.want, tt.other.Overlaps(base), "overlap must be symmetric")
		})
	}
}

func TestInterval_OverlapsMatchesAnalyticPredicate(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	day := at(0, 0)

	for i := 0; i < 2000; i++ {
		s1, e1 := randomWindow(rng)
		s2, e2 := randomWindow(rng)

		a := Interval{Start: day.Add(time.Duration(s1) * time.Minute), End: day.Add(time.Duration(e1) * time.Minute)}
		b := Interval{Start: day.Add(time.Duration(s2) * time.Minute), End: day.Add(time.Duration(e2) * time.Minute)}

		want := s1 < e2 && s2 < e1
		require.Equal(t, want, a.Overlaps(b), "[%d,%d) vs [%d,%d)", s1, e1, s2, e2)
	}
}

func randomWindow(rng *rand.Rand) (int, int) {
	start := rng.Intn(24 * 60)
	return start, start + 1 + rng.Intn(180)
}

func TestNewInterval(t *testing.T) {
	_, err := NewInterval(at(10, 0), at(10, 0))
	assert.ErrorIs(t, err, ErrInvalidInterval)

	_, err = NewInterval(at(11, 0), at(10, 0))
	assert.ErrorIs(t, err, ErrInvalidInterval)

	iv, err := NewInterval(at(10, 0), at(11, 20))
	require.NoError(t, err)
	assert.Equal(t, 80*time.Minute, iv.Duration())
}

func TestInterval_Contains(t *testing.T) {
	day := Interval{Start: at(9, 0), End: at(17, 0)}

	assert.True(t, day.Contains(Interval{Start: at(9, 0), End: at(17, 0)}))
	assert.True(t, day.Contains(Interval{Start: at(15, 40), End: at(17, 0)}))
	assert.False(t, day.Contains(Interval{Start: at(16, 0), End: at(17, 20)}))
	assert.False(t, day.Contains(Interval{Start: at(8, 59), End: at(10, 0)}))
}
