package pin

// Event types for slot lifecycle notifications.
type EventType uint8

const (
	EventOccupied EventType = iota
	EventEmptied
	EventTransferred
	EventTransferFailed
)

// Event describes a slot lifecycle transition. Generation is the slot's
// generation at the time of the event.
type Event struct {
	Type       EventType
	Generation uint64
}

// Observer receives notifications about a slot's lifecycle events.
// Observers are registered per slot via Slot.Subscribe.
//
// On a committed transfer the source emits EventEmptied, the destination
// emits EventOccupied followed by EventTransferred. On a rolled-back
// transfer the source emits EventTransferFailed and neither slot changes.
type Observer interface {
	OnSlotEvent(Event)
}
