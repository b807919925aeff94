package sim

import (
	"testing"
)

// TestEventHeap_TimestampOrdering tests that events pop in fire-time order.
func TestEventHeap_TimestampOrdering(t *testing.T) {
	h := NewEventHeap()

	p := &Passenger{ID: 0}
	e1 := NewStageAttemptEvent(10.0, p)
	e2 := NewStageAttemptEvent(2.5, p)
	e3 := NewStageAttemptEvent(7.25, p)
	e1.setSeq(1)
	e2.setSeq(2)
	e3.setSeq(3)

	h.Schedule(e1)
	h.Schedule(e2)
	h.Schedule(e3)

	want := []float64{2.5, 7.25, 10.0}
	for i, w := range want {
		e := h.PopNext()
		if e.Timestamp() != w {
			t.Errorf("pop %d: timestamp = %v, want %v", i, e.Timestamp(), w)
		}
	}
	if h.Len() != 0 {
		t.Errorf("heap should be empty, len = %d", h.Len())
	}
}

// TestEventHeap_FIFOAmongSimultaneousEvents tests that events sharing a
// fire-time pop in insertion order.
func TestEventHeap_FIFOAmongSimultaneousEvents(t *testing.T) {
	s := NewSimulator(DefaultConfig(), 1)

	pA := &Passenger{ID: 1}
	pB := &Passenger{ID: 2}
	pC := &Passenger{ID: 3}

	// Schedule assigns increasing insertion sequences.
	s.Schedule(NewStageAttemptEvent(5.0, pA))
	s.Schedule(NewStageAttemptEvent(5.0, pB))
	s.Schedule(NewStageAttemptEvent(5.0, pC))

	want := []int{1, 2, 3}
	for i, id := range want {
		e := s.EventQueue.PopNext().(*StageAttemptEvent)
		if e.Passenger.ID != id {
			t.Errorf("pop %d: passenger = %d, want %d (FIFO violated)", i, e.Passenger.ID, id)
		}
	}
}

func TestEventHeap_Peek_DoesNotRemove(t *testing.T) {
	h := NewEventHeap()
	e := NewArrivalEvent(3.0)
	e.setSeq(1)
	h.Schedule(e)

	if got := h.Peek(); got != Event(e) {
		t.Errorf("Peek returned %v, want the scheduled event", got)
	}
	if h.Len() != 1 {
		t.Errorf("Peek modified heap length: got %d, want 1", h.Len())
	}
}

func TestEventHeap_Empty_ReturnsNil(t *testing.T) {
	h := NewEventHeap()
	if h.PopNext() != nil {
		t.Error("PopNext on empty heap should return nil")
	}
	if h.Peek() != nil {
		t.Error("Peek on empty heap should return nil")
	}
}
