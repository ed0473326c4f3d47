package dynref

import "github.com/stablemem/pinmove"

var _ pinmove.Wiper = (*Guard[int])(nil)

// DynRef is a cell that other code reads through while some pinned Guard
// keeps an address published in it. The cell holds at most one pointer;
// releasing the guard clears it.
type DynRef[T any] struct {
	ptr *T
}

// New creates an empty reference cell.
func New[T any]() *DynRef[T] {
	return &DynRef[T]{}
}

// IsSome reports whether an address is currently published.
func (d *DynRef[T]) IsSome() bool {
	return d.ptr != nil
}

// IsNone reports whether the cell is empty.
func (d *DynRef[T]) IsNone() bool {
	return d.ptr == nil
}

// Do calls fn with the published value, if any, and reports whether it ran.
func (d *DynRef[T]) Do(fn func(*T)) bool {
	if d.ptr == nil {
		return false
	}
	fn(d.ptr)
	return true
}

// Map applies fn to the published value, if any.
func Map[T, U any](d *DynRef[T], fn func(*T) U) (U, bool) {
	if d.ptr == nil {
		var zero U
		return zero, false
	}
	return fn(d.ptr), true
}

// Lock publishes v's address in the cell and returns the guard responsible
// for clearing it. The guard is meant to be housed in a pinned slot; its
// identity, not its address, is what keeps the publication alive, so it can
// be transferred to an outer frame to extend the publication past the frame
// that created it.
func (d *DynRef[T]) Lock(v *T) Guard[T] {
	d.ptr = v
	return Guard[T]{ref: d}
}

// Guard owns one publication in a DynRef. A disarmed guard (zero value, or
// a source after transfer) does nothing on release.
type Guard[T any] struct {
	ref *DynRef[T]
}

// Armed reports whether the guard still owns a publication.
func (g *Guard[T]) Armed() bool {
	return g.ref != nil
}

// Release clears the cell and disarms the guard.
func (g *Guard[T]) Release() {
	if g.ref != nil {
		g.ref.ptr = nil
		g.ref = nil
	}
}

// Wipe implements pinmove.Wiper: destroying a slot-housed guard in place
// releases its publication, like letting the guard go out of scope.
func (g *Guard[T]) Wipe() {
	g.Release()
}

// TransferInto hands the publication to dst and disarms the receiver. The
// cell keeps pointing at the referenced value throughout; only the
// responsibility for clearing it moves. Cannot fail.
func (g *Guard[T]) TransferInto(dst *Guard[T]) error {
	dst.ref = g.ref
	g.ref = nil
	return nil
}
