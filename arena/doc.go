// Package arena supplies the pinning primitives behind pin.Slot: storage
// whose addresses are fixed for the storage's lifetime.
//
// # Slab Arena
//
// Arena[T] hands out pin slots whose cells live in fixed-size slabs. A slab
// is allocated once and never resized, so a cell's address is stable no
// matter how many slots are allocated afterwards. Destroyed slots can be
// recycled; their cells are zeroed and reused.
//
//	a := arena.New[secret.Bytes]()
//	defer a.Close()
//
//	slot, err := a.Allocate()
//
// # Linear Store
//
// Linear is byte-granular storage backed by the linear memory of a wazero
// module. Payload bytes live outside the Go heap: the garbage collector
// never copies or retains them, memory growth never changes an offset, and
// wiping a region deterministically destroys the data. Regions are
// allocated with a bump pointer and reused through per-size free lists.
//
//	lin, err := arena.NewLinear(ctx, &arena.LinearConfig{Pages: 1, MaxPages: 4})
//	defer lin.Close(ctx)
//
//	r, err := lin.Alloc(32)
//
// Exhaustion surfaces as an [alloc] exhausted error, which transfer
// contracts report upward as a recoverable contract failure.
package arena
