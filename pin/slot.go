package pin

import (
	"go.uber.org/zap"

	"github.com/stablemem/pinmove"
	"github.com/stablemem/pinmove/errors"
)

type liveKind uint8

const (
	liveNone liveKind = iota
	liveEmpty
	liveOccupied
)

// Slot is a fixed-address storage location that is either empty or holds
// exactly one live value of type T. The value's storage is a separately
// allocated cell whose address never changes for the slot's lifetime; the
// Slot struct itself never embeds the value.
//
// All access goes through exclusive handles returned by AcquireEmpty and
// AcquireOccupied. At most one handle per slot is live at a time; this is a
// logical contract, not a runtime lock, so callers sharing a slot across
// goroutines must serialize acquire/transfer sequences themselves.
type Slot[T any] struct {
	storage   *T
	observers []Observer
	gen       uint64
	live      liveKind
	occupied  bool
}

// New creates an empty slot with freshly boxed storage. The cell is
// reachable only through the slot, so its address is stable for the slot's
// lifetime.
func New[T any]() *Slot[T] {
	return &Slot[T]{storage: new(T)}
}

// NewWithStorage creates an empty slot over caller-provided storage, such as
// an arena cell. The pointed-to memory must stay at a fixed address for the
// slot's lifetime and must not be accessed except through the slot.
func NewWithStorage[T any](p *T) *Slot[T] {
	if p == nil {
		panic("pin: nil storage")
	}
	return &Slot[T]{storage: p}
}

// Occupied reports whether the slot currently holds a live value.
func (s *Slot[T]) Occupied() bool {
	return s.occupied
}

// Generation returns the number of empty-to-occupied transitions the slot
// has gone through.
func (s *Slot[T]) Generation() uint64 {
	return s.gen
}

// Idle reports whether no handle for the slot is currently live.
func (s *Slot[T]) Idle() bool {
	return s.live == liveNone
}

// AcquireEmpty grants exclusive write access to the slot's uninitialized
// storage. It fails with AlreadyOccupied if the slot holds a live value and
// with HandleOutstanding if another handle is live.
func (s *Slot[T]) AcquireEmpty() (*EmptyHandle[T], error) {
	if s.live != liveNone {
		return nil, errors.HandleOutstanding()
	}
	if s.occupied {
		return nil, errors.AlreadyOccupied()
	}
	s.live = liveEmpty
	return &EmptyHandle[T]{slot: s}, nil
}

// AcquireOccupied grants exclusive access to the slot's live value. It fails
// with Empty if the slot holds no value and with HandleOutstanding if
// another handle is live.
func (s *Slot[T]) AcquireOccupied() (*OccupiedHandle[T], error) {
	if s.live != liveNone {
		return nil, errors.HandleOutstanding()
	}
	if !s.occupied {
		return nil, errors.Empty()
	}
	s.live = liveOccupied
	return &OccupiedHandle[T]{slot: s}, nil
}

// Subscribe adds an observer for the slot's lifecycle events.
func (s *Slot[T]) Subscribe(o Observer) {
	s.observers = append(s.observers, o)
}

// Unsubscribe removes an observer.
func (s *Slot[T]) Unsubscribe(o Observer) {
	for i, obs := range s.observers {
		if obs == o {
			s.observers = append(s.observers[:i], s.observers[i+1:]...)
			return
		}
	}
}

func (s *Slot[T]) notify(e Event) {
	for _, o := range s.observers {
		o.OnSlotEvent(e)
	}
}

// markOccupied flips the slot to occupied, consuming the handle. Only the
// transfer driver and EmptyHandle.Commit call it, so a slot can never be
// declared occupied without its storage having been initialized.
func (s *Slot[T]) markOccupied(h *EmptyHandle[T]) error {
	if h.slot != s || h.released {
		return errors.HandleReleased()
	}
	h.released = true
	s.live = liveNone
	s.occupied = true
	s.gen++
	Logger().Debug("slot occupied", zap.Uint64("generation", s.gen))
	s.notify(Event{Type: EventOccupied, Generation: s.gen})
	return nil
}

// markEmptied flips the slot to empty, consuming the handle. The prior
// storage is treated as inert bytes from here on; it is not zeroed, because
// the transfer contract or Destroy already did whatever cleanup the value
// type requires.
func (s *Slot[T]) markEmptied(h *OccupiedHandle[T]) error {
	if h.slot != s || h.released {
		return errors.HandleReleased()
	}
	h.released = true
	s.live = liveNone
	s.occupied = false
	Logger().Debug("slot emptied", zap.Uint64("generation", s.gen))
	s.notify(Event{Type: EventEmptied, Generation: s.gen})
	return nil
}

// destroyInPlace scrubs and zeroes the storage behind a live occupied
// handle, then empties the slot.
func (s *Slot[T]) destroyInPlace(h *OccupiedHandle[T]) error {
	if h.slot != s || h.released {
		return errors.HandleReleased()
	}
	if w, ok := any(s.storage).(pinmove.Wiper); ok {
		w.Wipe()
	}
	var zero T
	*s.storage = zero
	return s.markEmptied(h)
}
