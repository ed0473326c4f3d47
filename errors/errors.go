package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Phase indicates where in a slot operation the error occurred
type Phase string

const (
	PhaseAcquire  Phase = "acquire"  // taking a slot handle
	PhaseContract Phase = "contract" // user transfer logic
	PhaseCommit   Phase = "commit"   // occupancy transitions
	PhaseAlloc    Phase = "alloc"    // storage allocation
	PhaseRuntime  Phase = "runtime"  // backing store operations
)

// Kind categorizes the error
type Kind string

const (
	KindEmpty             Kind = "empty"
	KindAlreadyOccupied   Kind = "already_occupied"
	KindContractFailed    Kind = "contract_failed"
	KindHandleOutstanding Kind = "handle_outstanding"
	KindHandleReleased    Kind = "handle_released"
	KindAliasedSlots      Kind = "aliased_slots"
	KindExhausted         Kind = "exhausted"
	KindOutOfBounds       Kind = "out_of_bounds"
	KindClosed            Kind = "closed"
	KindNotRecyclable     Kind = "not_recyclable"
)

// Error is the structured error type used throughout the library
type Error struct {
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Match targets for errors.Is checks. Only Phase and Kind participate in
// matching, so these compare equal to any error of the same category.
var (
	ErrEmpty             = &Error{Phase: PhaseAcquire, Kind: KindEmpty}
	ErrAlreadyOccupied   = &Error{Phase: PhaseAcquire, Kind: KindAlreadyOccupied}
	ErrContractFailed    = &Error{Phase: PhaseContract, Kind: KindContractFailed}
	ErrHandleOutstanding = &Error{Phase: PhaseAcquire, Kind: KindHandleOutstanding}
	ErrHandleReleased    = &Error{Phase: PhaseCommit, Kind: KindHandleReleased}
	ErrAliasedSlots      = &Error{Phase: PhaseAcquire, Kind: KindAliasedSlots}
	ErrExhausted         = &Error{Phase: PhaseAlloc, Kind: KindExhausted}
	ErrClosed            = &Error{Phase: PhaseRuntime, Kind: KindClosed}
)

// Convenience constructors for common error patterns

// Empty reports an attempt to read a live value from a slot that holds none.
func Empty() *Error {
	return &Error{
		Phase:  PhaseAcquire,
		Kind:   KindEmpty,
		Detail: "slot holds no value",
	}
}

// AlreadyOccupied reports an attempt to initialize a slot that already
// holds a live value.
func AlreadyOccupied() *Error {
	return &Error{
		Phase:  PhaseAcquire,
		Kind:   KindAlreadyOccupied,
		Detail: "slot already holds a live value",
	}
}

// ContractFailed wraps a transfer contract's failure. The transfer was
// rolled back; the caller may retry or pick another destination.
func ContractFailed(cause error) *Error {
	return &Error{
		Phase:  PhaseContract,
		Kind:   KindContractFailed,
		Detail: "transfer contract could not produce destination state",
		Cause:  cause,
	}
}

// HandleOutstanding reports an acquire attempt while another handle for the
// same slot is still live.
func HandleOutstanding() *Error {
	return &Error{
		Phase:  PhaseAcquire,
		Kind:   KindHandleOutstanding,
		Detail: "another handle for this slot is live",
	}
}

// HandleReleased reports use of a handle after it was released or consumed.
func HandleReleased() *Error {
	return &Error{
		Phase:  PhaseCommit,
		Kind:   KindHandleReleased,
		Detail: "handle already released",
	}
}

// AliasedSlots reports a transfer where source and destination are the same
// slot.
func AliasedSlots() *Error {
	return &Error{
		Phase:  PhaseAcquire,
		Kind:   KindAliasedSlots,
		Detail: "source and destination are the same slot",
	}
}

// Exhausted reports a failed storage allocation.
func Exhausted(n uint32) *Error {
	return &Error{
		Phase:  PhaseAlloc,
		Kind:   KindExhausted,
		Detail: fmt.Sprintf("cannot reserve %d bytes", n),
	}
}

// OutOfBounds reports a region outside the backing store.
func OutOfBounds(offset, size, limit uint32) *Error {
	return &Error{
		Phase:  PhaseRuntime,
		Kind:   KindOutOfBounds,
		Detail: fmt.Sprintf("region [%d, %d) exceeds store size %d", offset, offset+size, limit),
	}
}

// Closed reports an operation on a closed store or arena.
func Closed(what string) *Error {
	return &Error{
		Phase:  PhaseRuntime,
		Kind:   KindClosed,
		Detail: fmt.Sprintf("%s is closed", what),
	}
}

// NotRecyclable reports a recycle attempt on a slot that is still in use.
func NotRecyclable(detail string) *Error {
	return &Error{
		Phase:  PhaseRuntime,
		Kind:   KindNotRecyclable,
		Detail: detail,
	}
}

// Matching helpers

// IsEmpty reports whether err is an empty-slot acquire failure.
func IsEmpty(err error) bool {
	return stderrors.Is(err, ErrEmpty)
}

// IsAlreadyOccupied reports whether err is an occupied-destination failure.
func IsAlreadyOccupied(err error) bool {
	return stderrors.Is(err, ErrAlreadyOccupied)
}

// IsContractFailed reports whether err is a rolled-back contract failure.
func IsContractFailed(err error) bool {
	return stderrors.Is(err, ErrContractFailed)
}

// IsExhausted reports whether err, or any error it wraps, is a storage
// exhaustion failure.
func IsExhausted(err error) bool {
	return stderrors.Is(err, ErrExhausted)
}
