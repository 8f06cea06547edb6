package subdivide

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/floatdur/floatdur-go/pkg/duration"
)

func TestSubdivide(t *testing.T) {
	s := New(duration.Zero(), duration.Minutes(1), 3)
	rev := s

	assert.Equal(t, []duration.Duration{
		duration.Zero(),
		duration.Seconds(30),
		duration.Minutes(1),
	}, s.Collect())

	assert.Equal(t, []duration.Duration{
		duration.Minutes(1),
		duration.Seconds(30),
		duration.Zero(),
	}, slices.Collect(rev.Backward()))
}

func TestStepSize(t *testing.T) {
	s := New(duration.Seconds(10), duration.Seconds(20), 5)
	assert.Equal(t, duration.Seconds(2.5), s.StepSize())

	down := New(duration.Hours(1), duration.Zero(), 4)
	assert.Equal(t, duration.Minutes(-20), down.StepSize())

	flat := New(duration.Seconds(3), duration.Seconds(3), 10)
	assert.True(t, flat.StepSize().IsZero())
	for d := range flat.All() {
		assert.Equal(t, duration.Seconds(3), d)
	}
}

func TestCountAndEndpoints(t *testing.T) {
	tests := []struct {
		name       string
		begin, end duration.Duration
		steps      int
	}{
		{"two steps", duration.Zero(), duration.Seconds(1), 2},
		{"tenths", duration.Zero(), duration.Seconds(1), 11},
		{"awkward step", duration.Seconds(0.1), duration.Seconds(0.7), 7},
		{"many steps", duration.Milliseconds(-3), duration.Hours(10), 10_001},
		{"descending", duration.Days(1), duration.Seconds(-1), 13},
		{"huge range", duration.MinValue().Div(2), duration.MaxValue().Div(2), 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.begin, tt.end, tt.steps)
			require.Equal(t, tt.steps, s.Len())

			got := s.Collect()
			require.Len(t, got, tt.steps)
			assert.Equal(t, tt.begin, got[0])
			assert.Equal(t, tt.end, got[len(got)-1], "the final sample is exactly the end")
			assert.Equal(t, 0, s.Len())

			back := New(tt.begin, tt.end, tt.steps)
			reversed := slices.Collect(back.Backward())
			slices.Reverse(reversed)
			assert.Equal(t, got, reversed)
		})
	}
}

func TestSamplesAreEvenlySpaced(t *testing.T) {
	s := New(duration.Zero(), duration.Seconds(10), 11)
	step := s.StepSize()

	i := 0
	for d := range s.All() {
		assert.True(t, d.ApproxEqual(step.Mul(float64(i)), 1e-12), "sample %d = %v", i, d)
		i++
	}
	assert.Equal(t, 11, i)
}

func TestBothEnds(t *testing.T) {
	s := New(duration.Zero(), duration.Seconds(5), 6)

	var front, back []duration.Duration
	for s.Len() > 0 {
		if d, ok := s.Next(); ok {
			front = append(front, d)
		}
		if d, ok := s.NextBack(); ok {
			back = append(back, d)
		}
	}

	assert.Equal(t, []duration.Duration{duration.Zero(), duration.Seconds(1), duration.Seconds(2)}, front)
	assert.Equal(t, []duration.Duration{duration.Seconds(5), duration.Seconds(4), duration.Seconds(3)}, back)

	_, ok := s.Next()
	assert.False(t, ok)
	_, ok = s.NextBack()
	assert.False(t, ok)
}

func TestBothEndsOddCount(t *testing.T) {
	s := New(duration.Zero(), duration.Seconds(4), 5)

	seen := map[duration.Duration]int{}
	take := func(d duration.Duration, ok bool) {
		if ok {
			seen[d]++
		}
	}

	take(s.Next())
	take(s.NextBack())
	take(s.NextBack())
	assert.Equal(t, 2, s.Len())
	take(s.Next())
	take(s.Next())
	take(s.Next())
	take(s.NextBack())

	assert.Equal(t, 0, s.Len())
	assert.Len(t, seen, 5)
	for d, n := range seen {
		assert.Equal(t, 1, n, "sample %v visited %d times", d, n)
	}
}

func TestLenIsExact(t *testing.T) {
	s := New(duration.Zero(), duration.Minutes(1), 7)
	want := 7
	for i := 0; want > 0; i++ {
		require.Equal(t, want, s.Len())
		if i%2 == 0 {
			s.Next()
		} else {
			s.NextBack()
		}
		want--
	}
	assert.Equal(t, 0, s.Len())
}

func TestAt(t *testing.T) {
	s := New(duration.Zero(), duration.Seconds(40), 5)
	s.Next()
	s.NextBack()

	d, ok := s.At(0)
	require.True(t, ok)
	assert.Equal(t, duration.Seconds(10), d)

	d, ok = s.At(2)
	require.True(t, ok)
	assert.Equal(t, duration.Seconds(30), d)

	_, ok = s.At(3)
	assert.False(t, ok)
	_, ok = s.At(-1)
	assert.False(t, ok)

	assert.Equal(t, 3, s.Len(), "At does not consume")

	full := New(duration.Zero(), duration.Seconds(0.3), 4)
	last, ok := full.At(3)
	require.True(t, ok)
	assert.Equal(t, duration.Seconds(0.3), last)
}

func TestCopyIsIndependent(t *testing.T) {
	s := New(duration.Zero(), duration.Seconds(3), 4)
	s.Next()

	c := s
	assert.Equal(t, s.Collect(), c.Collect())
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 0, c.Len())
}

func TestBreakLeavesRemainder(t *testing.T) {
	s := New(duration.Zero(), duration.Seconds(9), 10)
	for d := range s.All() {
		if d == duration.Seconds(3) {
			break
		}
	}
	assert.Equal(t, 6, s.Len())

	next, ok := s.Next()
	require.True(t, ok)
	assert.Equal(t, duration.Seconds(4), next)
}

func TestValuesRestarts(t *testing.T) {
	values := Values(duration.Zero(), duration.Seconds(2), 3)
	first := slices.Collect(values)
	second := slices.Collect(values)
	assert.Equal(t, first, second)
	assert.Len(t, first, 3)
}

func TestWithStep(t *testing.T) {
	var times []duration.Duration
	for tm, dt := range WithStep(duration.Zero(), duration.Hours(1), 5) {
		assert.Equal(t, duration.Minutes(15), dt)
		times = append(times, tm)
	}
	assert.Equal(t, []duration.Duration{
		duration.Zero(),
		duration.Minutes(15),
		duration.Minutes(30),
		duration.Minutes(45),
		duration.Hours(1),
	}, times)

	// Integrating a constant rate over the samples recovers the span.
	total := duration.Zero()
	first := true
	for _, dt := range WithStep(duration.Zero(), duration.Minutes(10), 101) {
		if first {
			first = false
			continue
		}
		total = total.Add(dt)
	}
	assert.True(t, total.ApproxEqual(duration.Minutes(10), 1e-12))
}

func TestFewerThanTwoStepsPanics(t *testing.T) {
	for _, steps := range []int{1, 0, -5} {
		assert.Panics(t, func() { New(duration.Zero(), duration.Seconds(1), steps) })
	}
	assert.Panics(t, func() { WithStep(duration.Zero(), duration.Seconds(1), 1) })
}
