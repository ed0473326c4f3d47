package arena

import (
	"go.uber.org/zap"

	"github.com/stablemem/pinmove/errors"
	"github.com/stablemem/pinmove/pin"
)

// Cells per slab. Slabs are allocated once and never resized, so every cell
// address is stable for the arena's lifetime.
const slabCells = 64

// Arena allocates pinned slots whose storage cells live in fixed slabs.
// Destroyed slots can be recycled, reusing their cells for later
// allocations without ever relocating a live value.
type Arena[T any] struct {
	slabs  [][]T
	cells  map[*pin.Slot[T]]*T
	slots  []*pin.Slot[T]
	free   []*pin.Slot[T]
	used   int
	closed bool
}

// New creates an empty arena.
func New[T any]() *Arena[T] {
	return &Arena[T]{
		cells: make(map[*pin.Slot[T]]*T),
	}
}

// Allocate reserves a cell and returns an empty slot over it. Recycled
// cells are reused before a new slab is grown.
func (a *Arena[T]) Allocate() (*pin.Slot[T], error) {
	if a.closed {
		return nil, errors.Closed("arena")
	}

	if n := len(a.free); n > 0 {
		s := a.free[n-1]
		a.free = a.free[:n-1]
		a.slots = append(a.slots, s)
		return s, nil
	}

	if len(a.slabs) == 0 || a.used == slabCells {
		a.slabs = append(a.slabs, make([]T, slabCells))
		a.used = 0
		Logger().Debug("arena slab grown", zap.Int("slabs", len(a.slabs)))
	}
	cell := &a.slabs[len(a.slabs)-1][a.used]
	a.used++

	s := pin.NewWithStorage(cell)
	a.cells[s] = cell
	a.slots = append(a.slots, s)
	return s, nil
}

// Recycle returns an empty, idle slot's cell to the arena for reuse. The
// cell is zeroed first so no inert bytes leak into the next occupant's
// uninitialized storage.
func (a *Arena[T]) Recycle(s *pin.Slot[T]) error {
	if a.closed {
		return errors.Closed("arena")
	}
	cell, ok := a.cells[s]
	if !ok {
		return errors.NotRecyclable("slot does not belong to this arena")
	}
	if s.Occupied() {
		return errors.NotRecyclable("slot still holds a live value")
	}
	if !s.Idle() {
		return errors.NotRecyclable("slot has a live handle")
	}

	for i, live := range a.slots {
		if live == s {
			a.slots = append(a.slots[:i], a.slots[i+1:]...)
			var zero T
			*cell = zero
			a.free = append(a.free, s)
			return nil
		}
	}
	return errors.NotRecyclable("slot already recycled")
}

// Len returns the number of slots currently handed out.
func (a *Arena[T]) Len() int {
	return len(a.slots)
}

// Each iterates over the handed-out slots.
func (a *Arena[T]) Each(fn func(*pin.Slot[T]) bool) {
	for _, s := range a.slots {
		if !fn(s) {
			return
		}
	}
}

// Close destroys every remaining occupant in place (running its Wipe method
// if the value implements pinmove.Wiper) and stops accepting operations.
// Slots with a live handle are skipped and logged.
func (a *Arena[T]) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true

	for _, s := range a.slots {
		if !s.Occupied() {
			continue
		}
		h, err := s.AcquireOccupied()
		if err != nil {
			Logger().Warn("arena close: slot left live", zap.Error(err))
			continue
		}
		if err := h.Destroy(); err != nil {
			Logger().Warn("arena close: destroy failed", zap.Error(err))
		}
	}

	a.slots = nil
	a.free = nil
	a.cells = nil
	a.slabs = nil
	return nil
}
