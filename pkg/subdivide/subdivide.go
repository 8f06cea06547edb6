// Package subdivide generates evenly spaced duration samples between two
// endpoints.
//
// A Sequence is lazy and exact-length. It can be consumed from the front,
// from the back, or from both ends at once; together the two ends visit
// every sample exactly once.
//
//	seq := subdivide.New(duration.Zero(), duration.Minutes(1), 3)
//	for t := range seq.All() {
//		fmt.Println(t) // 0, 30 and 60 seconds
//	}
package subdivide

import (
	"fmt"
	"iter"

	"github.com/floatdur/floatdur-go/pkg/duration"
)

// Sequence is a single traversal over steps evenly spaced samples from a
// start to an end duration, both inclusive.
//
// Sequence is a value type: copying an unconsumed or partially consumed
// Sequence yields an independent traversal at the same position. A
// Sequence cannot be restarted; build a new one with New instead.
type Sequence struct {
	start duration.Duration
	end   duration.Duration
	step  duration.Duration
	last  int

	// front is the next index to yield from the front, back is one past the
	// next index to yield from the back.
	front, back int
}

// New returns the Sequence of steps samples from begin to end. The step
// size is (end-begin)/(steps-1), the i-th sample is begin + step*i and the
// final sample is exactly end.
//
// New panics if steps < 2, since such a sequence could not contain both
// endpoints.
func New(begin, end duration.Duration, steps int) Sequence {
	if steps < 2 {
		panic(fmt.Sprintf("subdivide: at least 2 steps are required, got %d", steps))
	}
	return Sequence{
		start: begin,
		end:   end,
		step:  end.Sub(begin).Div(float64(steps - 1)),
		last:  steps - 1,
		back:  steps,
	}
}

// StepSize returns the distance between consecutive samples.
func (s *Sequence) StepSize() duration.Duration {
	return s.step
}

// Len returns the number of samples not yet consumed from either end.
func (s *Sequence) Len() int {
	return s.back - s.front
}

// Next consumes and returns the next sample from the front. The boolean is
// false once the sequence is exhausted.
func (s *Sequence) Next() (duration.Duration, bool) {
	if s.front >= s.back {
		return duration.Zero(), false
	}
	i := s.front
	s.front++
	return s.sample(i), true
}

// NextBack consumes and returns the next sample from the back. The boolean
// is false once the sequence is exhausted.
func (s *Sequence) NextBack() (duration.Duration, bool) {
	if s.front >= s.back {
		return duration.Zero(), false
	}
	s.back--
	return s.sample(s.back), true
}

// At returns the i-th remaining sample without consuming anything. The
// boolean is false when i is outside [0, Len()).
func (s *Sequence) At(i int) (duration.Duration, bool) {
	if i < 0 || i >= s.Len() {
		return duration.Zero(), false
	}
	return s.sample(s.front + i), true
}

// All returns an iterator that consumes the remaining samples front to
// back. Breaking out of the loop leaves the rest unconsumed.
func (s *Sequence) All() iter.Seq[duration.Duration] {
	return func(yield func(duration.Duration) bool) {
		for {
			d, ok := s.Next()
			if !ok || !yield(d) {
				return
			}
		}
	}
}

// Backward returns an iterator that consumes the remaining samples back to
// front.
func (s *Sequence) Backward() iter.Seq[duration.Duration] {
	return func(yield func(duration.Duration) bool) {
		for {
			d, ok := s.NextBack()
			if !ok || !yield(d) {
				return
			}
		}
	}
}

// Collect consumes the remaining samples and returns them in order.
func (s *Sequence) Collect() []duration.Duration {
	out := make([]duration.Duration, 0, s.Len())
	for d := range s.All() {
		out = append(out, d)
	}
	return out
}

func (s *Sequence) sample(i int) duration.Duration {
	if i == s.last {
		return s.end
	}
	return s.start.Add(s.step.Mul(float64(i)))
}

// Values returns an iterator over the samples of New(begin, end, steps).
// Each call to the iterator starts a fresh traversal.
func Values(begin, end duration.Duration, steps int) iter.Seq[duration.Duration] {
	seq := New(begin, end, steps)
	return func(yield func(duration.Duration) bool) {
		s := seq
		s.All()(yield)
	}
}

// WithStep is like Values but pairs every sample with the step size, for
// driving fixed-step simulation loops:
//
//	for t, dt := range subdivide.WithStep(duration.Zero(), duration.Hours(1), 100) {
//		v += a(t) * dt.Seconds()
//	}
func WithStep(begin, end duration.Duration, steps int) iter.Seq2[duration.Duration, duration.Duration] {
	seq := New(begin, end, steps)
	return func(yield func(duration.Duration, duration.Duration) bool) {
		s := seq
		for d := range s.All() {
			if !yield(d, s.step) {
				return
			}
		}
	}
}
