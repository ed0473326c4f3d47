// Package secret provides self-wiping secret bytes as a client of the pin
// transfer contract.
//
// A secret's plaintext never lives on the Go heap: Seed copies it into an
// off-heap storage region and zeroes the caller's buffer, transfers move it
// region-to-region wiping the source, and Destroy or arena teardown scrubs
// it through pinmove.Wiper. The address-stable slot guarantees that no
// intermediate copy of the plaintext is ever left behind by a relocation.
//
//	lin, _ := arena.NewLinear(ctx, nil)
//	slot := pin.New[secret.Bytes]()
//
//	buf := []byte("hunter2")
//	if err := secret.Seed(slot, lin, buf); err != nil { ... }
//	// buf is now all zeroes
//
//	h, _ := slot.AcquireOccupied()
//	h.Value().Reveal(func(b []byte) { use(b) })
//	h.Release()
package secret
