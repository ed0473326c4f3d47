package pin

import (
	"testing"

	"github.com/stablemem/pinmove/errors"
)

type payload struct {
	n int
}

func TestSlot_StartsEmpty(t *testing.T) {
	s := New[payload]()

	if s.Occupied() {
		t.Fatal("new slot should be empty")
	}
	if s.Generation() != 0 {
		t.Fatalf("expected generation 0, got %d", s.Generation())
	}
	if _, err := s.AcquireOccupied(); !errors.IsEmpty(err) {
		t.Fatalf("expected empty error, got %v", err)
	}
}

func TestSlot_CommitOccupies(t *testing.T) {
	s := New[payload]()

	h, err := s.AcquireEmpty()
	if err != nil {
		t.Fatalf("AcquireEmpty failed: %v", err)
	}
	if err := h.Commit(payload{n: 7}); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}

	if !s.Occupied() {
		t.Fatal("slot should be occupied after Commit")
	}
	if s.Generation() != 1 {
		t.Fatalf("expected generation 1, got %d", s.Generation())
	}

	occ, err := s.AcquireOccupied()
	if err != nil {
		t.Fatalf("AcquireOccupied failed: %v", err)
	}
	if occ.Value().n != 7 {
		t.Fatalf("expected 7, got %d", occ.Value().n)
	}
	occ.Release()

	// Occupied slot rejects empty acquisition.
	if _, err := s.AcquireEmpty(); !errors.IsAlreadyOccupied(err) {
		t.Fatalf("expected already_occupied, got %v", err)
	}
}

func TestSlot_HandleExclusivity(t *testing.T) {
	s := New[payload]()

	h, err := s.AcquireEmpty()
	if err != nil {
		t.Fatalf("AcquireEmpty failed: %v", err)
	}

	// No second handle of either kind while the first is live.
	if _, err := s.AcquireEmpty(); err == nil {
		t.Fatal("second AcquireEmpty should fail")
	}
	if _, err := s.AcquireOccupied(); err == nil {
		t.Fatal("AcquireOccupied with live empty handle should fail")
	}

	h.Release()
	if _, err := s.AcquireEmpty(); err != nil {
		t.Fatalf("AcquireEmpty after release failed: %v", err)
	}
}

func TestSlot_OccupiedHandleExclusivity(t *testing.T) {
	s := New[payload]()
	mustCommit(t, s, payload{n: 1})

	occ, err := s.AcquireOccupied()
	if err != nil {
		t.Fatalf("AcquireOccupied failed: %v", err)
	}
	if _, err := s.AcquireOccupied(); err == nil {
		t.Fatal("second AcquireOccupied should fail")
	}
	occ.Release()

	if _, err := s.AcquireOccupied(); err != nil {
		t.Fatalf("AcquireOccupied after release failed: %v", err)
	}
}

func TestSlot_DestroyEmpties(t *testing.T) {
	s := New[payload]()
	mustCommit(t, s, payload{n: 3})

	occ, err := s.AcquireOccupied()
	if err != nil {
		t.Fatalf("AcquireOccupied failed: %v", err)
	}
	if err := occ.Destroy(); err != nil {
		t.Fatalf("Destroy failed: %v", err)
	}

	if s.Occupied() {
		t.Fatal("slot should be empty after Destroy")
	}

	// Re-occupying starts a new generation with zeroed storage.
	h, err := s.AcquireEmpty()
	if err != nil {
		t.Fatalf("AcquireEmpty after Destroy failed: %v", err)
	}
	if h.Ptr().n != 0 {
		t.Fatalf("storage not zeroed after Destroy: %d", h.Ptr().n)
	}
	if err := h.Commit(payload{n: 4}); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}
	if s.Generation() != 2 {
		t.Fatalf("expected generation 2, got %d", s.Generation())
	}
}

type wipeSignal struct {
	wiped *bool
}

func (w *wipeSignal) Wipe() {
	if w.wiped != nil {
		*w.wiped = true
	}
}

func TestSlot_DestroyRunsWiper(t *testing.T) {
	var wiped bool
	s := New[wipeSignal]()
	mustCommit(t, s, wipeSignal{wiped: &wiped})

	occ, err := s.AcquireOccupied()
	if err != nil {
		t.Fatalf("AcquireOccupied failed: %v", err)
	}
	if err := occ.Destroy(); err != nil {
		t.Fatalf("Destroy failed: %v", err)
	}
	if !wiped {
		t.Fatal("Destroy should run the value's Wipe method")
	}
}

func TestHandle_UseAfterRelease(t *testing.T) {
	s := New[payload]()

	h, err := s.AcquireEmpty()
	if err != nil {
		t.Fatalf("AcquireEmpty failed: %v", err)
	}
	h.Release()

	if h.Ptr() != nil {
		t.Fatal("released handle should not expose storage")
	}
	if err := h.Commit(payload{}); err == nil {
		t.Fatal("Commit on released handle should fail")
	}

	mustCommit(t, s, payload{n: 1})
	occ, err := s.AcquireOccupied()
	if err != nil {
		t.Fatalf("AcquireOccupied failed: %v", err)
	}
	occ.Release()
	if occ.Value() != nil {
		t.Fatal("released handle should not expose value")
	}
	if err := occ.Destroy(); err == nil {
		t.Fatal("Destroy on released handle should fail")
	}
}

func TestNewWithStorage_NilPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on nil storage")
		}
	}()
	NewWithStorage[payload](nil)
}

type eventRecorder struct {
	events []Event
}

func (r *eventRecorder) OnSlotEvent(e Event) {
	r.events = append(r.events, e)
}

func TestSlot_Observer(t *testing.T) {
	s := New[payload]()
	rec := &eventRecorder{}
	s.Subscribe(rec)

	mustCommit(t, s, payload{n: 1})
	occ, err := s.AcquireOccupied()
	if err != nil {
		t.Fatalf("AcquireOccupied failed: %v", err)
	}
	if err := occ.Destroy(); err != nil {
		t.Fatalf("Destroy failed: %v", err)
	}

	want := []EventType{EventOccupied, EventEmptied}
	if len(rec.events) != len(want) {
		t.Fatalf("expected %d events, got %d", len(want), len(rec.events))
	}
	for i, ty := range want {
		if rec.events[i].Type != ty {
			t.Fatalf("event %d: expected %d, got %d", i, ty, rec.events[i].Type)
		}
	}

	s.Unsubscribe(rec)
	mustCommit(t, s, payload{n: 2})
	if len(rec.events) != len(want) {
		t.Fatal("should not receive events after Unsubscribe")
	}
}

func mustCommit[T any](t *testing.T, s *Slot[T], v T) {
	t.Helper()
	h, err := s.AcquireEmpty()
	if err != nil {
		t.Fatalf("AcquireEmpty failed: %v", err)
	}
	if err := h.Commit(v); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}
}
