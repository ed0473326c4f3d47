package pin

import (
	stderrors "errors"
	"testing"

	"github.com/stablemem/pinmove/errors"
)

// token relocates by copying its count and zeroing the source, so a
// round trip restores the original value.
type token struct {
	n int
}

func (t *token) TransferInto(dst *token) error {
	dst.n = t.n
	t.n = 0
	return nil
}

var errBoom = stderrors.New("boom")

// flaky writes garbage into the destination before failing, exercising the
// driver's rollback of partial writes.
type flaky struct {
	n    int
	fail bool
}

func (f *flaky) TransferInto(dst *flaky) error {
	if f.fail {
		dst.n = 999
		return errBoom
	}
	dst.n = f.n
	f.n = 0
	return nil
}

func TestTransfer_Commit(t *testing.T) {
	src := New[token]()
	dst := New[token]()
	mustCommit(t, src, token{n: 42})

	h, err := Transfer(src, dst)
	if err != nil {
		t.Fatalf("Transfer failed: %v", err)
	}
	if h.Value().n != 42 {
		t.Fatalf("expected 42 in destination, got %d", h.Value().n)
	}

	if src.Occupied() {
		t.Fatal("source should be empty after transfer")
	}
	if !dst.Occupied() {
		t.Fatal("destination should be occupied after transfer")
	}
	if dst.Generation() != 1 {
		t.Fatalf("expected destination generation 1, got %d", dst.Generation())
	}

	// No double invalidation: the old source reads as empty.
	if _, err := src.AcquireOccupied(); !errors.IsEmpty(err) {
		t.Fatalf("expected empty on old source, got %v", err)
	}

	// Single commit: the returned handle is the sole reference until
	// released.
	if _, err := dst.AcquireOccupied(); err == nil {
		t.Fatal("destination acquire should fail while transfer handle is live")
	}
	h.Release()
	occ, err := dst.AcquireOccupied()
	if err != nil {
		t.Fatalf("destination acquire after release failed: %v", err)
	}
	occ.Release()
}

func TestTransfer_SourceEmpty(t *testing.T) {
	src := New[token]()
	dst := New[token]()

	_, err := Transfer(src, dst)
	if !errors.IsEmpty(err) {
		t.Fatalf("expected empty, got %v", err)
	}
	if dst.Occupied() {
		t.Fatal("destination should remain empty")
	}
	if !dst.Idle() || !src.Idle() {
		t.Fatal("no handle should remain live after a failed transfer")
	}
}

func TestTransfer_DestinationOccupied(t *testing.T) {
	src := New[token]()
	dst := New[token]()
	mustCommit(t, src, token{n: 1})
	mustCommit(t, dst, token{n: 2})

	_, err := Transfer(src, dst)
	if !errors.IsAlreadyOccupied(err) {
		t.Fatalf("expected already_occupied, got %v", err)
	}

	// Source unchanged and reusable.
	occ, err := src.AcquireOccupied()
	if err != nil {
		t.Fatalf("source acquire after failed transfer: %v", err)
	}
	if occ.Value().n != 1 {
		t.Fatalf("source content changed: %d", occ.Value().n)
	}
	occ.Release()
}

func TestTransfer_ContractFailureRollsBack(t *testing.T) {
	src := New[flaky]()
	dst := New[flaky]()
	mustCommit(t, src, flaky{n: 7, fail: true})

	_, err := Transfer(src, dst)
	if !errors.IsContractFailed(err) {
		t.Fatalf("expected contract_failed, got %v", err)
	}
	if !stderrors.Is(err, errBoom) {
		t.Fatal("contract cause should be preserved through the wrap")
	}

	// Atomicity: source occupancy and content identical, destination empty
	// with zeroed storage.
	if !src.Occupied() {
		t.Fatal("source should remain occupied")
	}
	occ, err := src.AcquireOccupied()
	if err != nil {
		t.Fatalf("source acquire after rollback: %v", err)
	}
	if occ.Value().n != 7 {
		t.Fatalf("source content changed: %d", occ.Value().n)
	}
	occ.Release()

	if dst.Occupied() {
		t.Fatal("destination should remain empty")
	}
	emp, err := dst.AcquireEmpty()
	if err != nil {
		t.Fatalf("destination acquire after rollback: %v", err)
	}
	if emp.Ptr().n != 0 {
		t.Fatalf("partial write not rolled back: %d", emp.Ptr().n)
	}
	emp.Release()
}

func TestTransfer_AliasedSlots(t *testing.T) {
	s := New[token]()
	mustCommit(t, s, token{n: 5})

	if _, err := Transfer(s, s); err == nil {
		t.Fatal("transfer onto the same slot should fail")
	}
	if !s.Occupied() {
		t.Fatal("slot should be unchanged")
	}
}

func TestTransfer_RoundTrip(t *testing.T) {
	a := New[token]()
	b := New[token]()
	mustCommit(t, a, token{n: 123})

	h, err := Transfer(a, b)
	if err != nil {
		t.Fatalf("A->B failed: %v", err)
	}
	h.Release()

	h, err = Transfer(b, a)
	if err != nil {
		t.Fatalf("B->A failed: %v", err)
	}
	defer h.Release()

	if h.Value().n != 123 {
		t.Fatalf("round trip lost the value: %d", h.Value().n)
	}
	if b.Occupied() {
		t.Fatal("intermediate slot should be empty after round trip")
	}
}

func TestTransfer_Events(t *testing.T) {
	src := New[flaky]()
	dst := New[flaky]()
	srcRec := &eventRecorder{}
	dstRec := &eventRecorder{}
	src.Subscribe(srcRec)
	dst.Subscribe(dstRec)

	mustCommit(t, src, flaky{n: 1})
	h, err := Transfer(src, dst)
	if err != nil {
		t.Fatalf("Transfer failed: %v", err)
	}
	h.Release()

	srcWant := []EventType{EventOccupied, EventEmptied}
	dstWant := []EventType{EventOccupied, EventTransferred}
	checkEvents(t, "source", srcRec.events, srcWant)
	checkEvents(t, "destination", dstRec.events, dstWant)

	// Failed transfer only notifies the source.
	occ, err := dst.AcquireOccupied()
	if err != nil {
		t.Fatalf("AcquireOccupied failed: %v", err)
	}
	occ.Value().fail = true
	occ.Release()

	back := New[flaky]()
	if _, err := Transfer(dst, back); err == nil {
		t.Fatal("expected contract failure")
	}
	last := dstRec.events[len(dstRec.events)-1]
	if last.Type != EventTransferFailed {
		t.Fatalf("expected transfer_failed event, got %d", last.Type)
	}
}

func checkEvents(t *testing.T, who string, got []Event, want []EventType) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s: expected %d events, got %d", who, len(want), len(got))
	}
	for i, ty := range want {
		if got[i].Type != ty {
			t.Fatalf("%s event %d: expected %d, got %d", who, i, ty, got[i].Type)
		}
	}
}
