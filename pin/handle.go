package pin

import "github.com/stablemem/pinmove/errors"

// EmptyHandle grants exclusive write access to an empty slot's storage and
// the single-use permission to mark it occupied via Commit. The zero value
// is invalid; handles come from Slot.AcquireEmpty.
type EmptyHandle[T any] struct {
	slot     *Slot[T]
	released bool
}

// Ptr returns the destination storage. The address is the value's final,
// fixed location; address-dependent initialization may capture it. Returns
// nil after the handle was released or consumed.
func (h *EmptyHandle[T]) Ptr() *T {
	if h.released {
		return nil
	}
	return h.slot.storage
}

// Commit writes v into the slot's storage and marks the slot occupied,
// consuming the handle. This is the direct construction-in-place path for a
// slot's first occupancy.
func (h *EmptyHandle[T]) Commit(v T) error {
	if h.released {
		return errors.HandleReleased()
	}
	*h.slot.storage = v
	return h.slot.markOccupied(h)
}

// Release gives the handle up without occupying the slot.
func (h *EmptyHandle[T]) Release() {
	if h.released {
		return
	}
	h.released = true
	h.slot.live = liveNone
}

// OccupiedHandle grants exclusive read/mutate access to a slot's live value
// and the single-use permission to consume it. The zero value is invalid;
// handles come from Slot.AcquireOccupied or a committed transfer.
type OccupiedHandle[T any] struct {
	slot     *Slot[T]
	released bool
}

// Value returns the live value. The address is stable for as long as the
// value occupies the slot. Returns nil after the handle was released or
// consumed.
func (h *OccupiedHandle[T]) Value() *T {
	if h.released {
		return nil
	}
	return h.slot.storage
}

// Destroy ends the value's life in place: it runs the value's Wipe method
// if it implements pinmove.Wiper, zeroes the storage, and marks the slot
// empty, consuming the handle.
func (h *OccupiedHandle[T]) Destroy() error {
	if h.released {
		return errors.HandleReleased()
	}
	return h.slot.destroyInPlace(h)
}

// Release gives the handle up, leaving the slot occupied.
func (h *OccupiedHandle[T]) Release() {
	if h.released {
		return
	}
	h.released = true
	h.slot.live = liveNone
}
