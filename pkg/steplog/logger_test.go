package steplog

import (
	"sync"
	"testing"
)

// recorder collects events for testing.
type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) Log(event Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func TestNoopLogger(t *testing.T) {
	var l Logger = NoopLogger{}
	l.Log(Event{RunID: "ignored"})

	var zero NoopLogger
	zero.Log(Event{})
}

func TestMultiLoggerCallsAll(t *testing.T) {
	r1, r2 := &recorder{}, &recorder{}
	multi := NewMultiLogger(r1, nil, r2)

	multi.Log(Event{RunID: "run-1", Kind: KindStep})

	for i, r := range []*recorder{r1, r2} {
		if len(r.events) != 1 {
			t.Errorf("logger %d: got %d events, want 1", i, len(r.events))
			continue
		}
		if r.events[0].RunID != "run-1" {
			t.Errorf("logger %d: RunID = %q, want run-1", i, r.events[0].RunID)
		}
	}
}

func TestMultiLoggerEmptyList(t *testing.T) {
	multi := NewMultiLogger()
	multi.Log(Event{RunID: "run-1"})
}
