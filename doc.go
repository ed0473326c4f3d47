// Package pinmove provides pinned-slot storage and an explicit transfer
// primitive for values whose memory address must not change.
//
// Some values depend on address stability for correctness: self-referential
// structures, secret material that must be wiped in place, handles keyed by
// address in external systems. Such values must never be relocated by an
// ordinary copy, yet they still need to change location exactly once under
// controlled conditions, for example when ownership moves across a function
// boundary or into a container. This library makes that relocation an
// explicit, all-or-nothing operation with user-defined move logic.
//
// # Architecture Overview
//
// The library is organized into a small set of packages:
//
//	pinmove/         Root package with Storage, Region and Wiper interfaces
//	├── pin/         Pinned slots, access handles, the Transferable contract
//	│                and the Transfer driver
//	├── arena/       Address-stable slot allocation: slab Arena and the
//	│                wazero-backed Linear byte store
//	├── errors/      Structured error types shared across packages
//	├── secret/      Self-wiping secret bytes, a Transferable client
//	└── dynref/      Address-published references with transferable guards
//
// # Quick Start
//
// House a value in a slot, then move it:
//
//	src := pin.New[secret.Bytes]()
//	dst := pin.New[secret.Bytes]()
//
//	if err := secret.Seed(src, store, []byte("xyz")); err != nil {
//	    log.Fatal(err)
//	}
//
//	h, err := pin.Transfer(src, dst)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer h.Release()
//
//	// src is now empty; dst holds the secret, the old bytes are zeroed.
//
// # Slots and Handles
//
// A Slot is a fixed-address storage location that is either empty or holds
// one live value. All access goes through exclusive handles:
//
//	EmptyHandle     write access to uninitialized storage, Commit to occupy
//	OccupiedHandle  read/mutate access to the live value, Destroy to empty
//
// At most one handle per slot is live at a time. Acquiring a handle in the
// wrong occupancy state fails without side effects.
//
// # Transfer
//
// A value type opts into relocation by implementing Transferable on its
// pointer type. The driver validates both slots, invokes the contract with
// the real destination address, and flips both occupancy states only on
// success. On contract failure the destination storage is zeroed and both
// slots are observably unchanged.
//
// # Concurrency
//
// Slots and arenas are not internally synchronized across transfer
// sequences; the exclusivity of handles is a logical contract. Callers that
// share slots across goroutines must serialize acquire/transfer sequences
// per slot. The Linear store guards its allocator state so that independent
// regions can be used from separate goroutines.
package pinmove
