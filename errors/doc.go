// Package errors provides structured error types for slot and transfer
// failures.
//
// Every error carries a Phase (where it happened) and a Kind (what
// happened), formatted as:
//
//	[acquire] empty: slot holds no value
//	[contract] contract_failed: transfer contract could not produce
//	destination state (caused by: ...)
//
// Errors of the same Phase and Kind compare equal under errors.Is, so
// callers can match categories against the exported Err* targets or use the
// Is* helpers:
//
//	if pinerrors.IsAlreadyOccupied(err) {
//	    // pick a different destination slot
//	}
//
// Slot-state failures (empty, already_occupied, handle_outstanding) are
// detected before any user logic runs and have no side effects.
// contract_failed is reported only after the transfer was rolled back and
// always wraps the contract's own cause; it is never fatal from the
// library's point of view.
package errors
