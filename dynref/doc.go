// Package dynref demonstrates address-keyed state as a client of the pin
// transfer contract.
//
// A DynRef cell publishes the address of some value for as long as a Guard
// housed in a pinned slot stays armed. Destroying the guard's slot clears
// the cell. Because Guard implements the transfer contract, the guard can
// move into a slot in an outer frame, keeping the publication alive after
// the inner frame is gone:
//
//	dr := dynref.New[string]()
//	outer := pin.New[dynref.Guard[string]]()
//
//	func() {
//	    inner := pin.New[dynref.Guard[string]]()
//	    h, _ := inner.AcquireEmpty()
//	    _ = h.Commit(dr.Lock(&s))
//
//	    out, _ := pin.Transfer(inner, outer) // publication escapes the frame
//	    out.Release()
//	}()
//	// dr.IsSome() is still true; destroying outer clears it.
package dynref
