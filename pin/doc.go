// Package pin provides pinned slots and the transfer primitive that
// relocates a value's logical identity between them.
//
// # Slots
//
// A Slot[T] owns at most one live value whose storage address is fixed for
// the slot's lifetime. Slots start empty, become occupied through
// EmptyHandle.Commit or a committed transfer, and become empty again only
// through a transfer out or OccupiedHandle.Destroy. A slot is never
// occupied twice without an intervening empty state, and never readable
// while empty.
//
// # Handles
//
// Handles are single-slot capability tokens:
//
//	h, err := slot.AcquireEmpty()     // write access, Commit to occupy
//	h, err := slot.AcquireOccupied()  // read/mutate access, Destroy to empty
//
// At most one handle per slot is live at a time; a second acquire fails
// with handle_outstanding until the first is released or consumed.
// Occupancy transitions themselves are package-internal, so a slot can
// never be marked occupied without initialized storage.
//
// # Transfer
//
// A value type opts in by implementing Transferable on its pointer type:
//
//	func (s *Bytes) TransferInto(dst *Bytes) error { ... }
//
//	h, err := pin.Transfer(src, dst)
//
// The driver validates both slots before any user logic runs, hands the
// contract the real destination address, and flips both occupancy states
// only after the contract succeeds. On failure the destination storage is
// zeroed and both slots are observably unchanged; the contract's error
// comes back wrapped in ContractFailed and is always recoverable.
//
// # Observability
//
// Slots accept per-slot Observers for lifecycle events, and the package
// logs occupancy transitions at debug level through the zap logger
// installed with SetLogger.
package pin
