package arena

import (
	"context"
	"fmt"
	"sync"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/stablemem/pinmove"
	"github.com/stablemem/pinmove/errors"
)

// PageSize is the WebAssembly page size in bytes.
const PageSize = 65536

// LinearConfig configures a Linear store.
type LinearConfig struct {
	// Pages is the initial size in 64KiB pages. 0 means 1.
	Pages uint32

	// MaxPages caps growth. 0 means 16 (1MiB). Allocations beyond the cap
	// fail with an exhausted error.
	MaxPages uint32
}

// Linear is byte-granular pinned storage backed by the linear memory of a
// wazero module. Region offsets are stable for the store's lifetime: the
// memory may grow, but existing bytes never move to a different offset, and
// the payload lives outside the Go heap so the garbage collector never
// copies or retains it. Wiping a region is therefore deterministic, which
// makes Linear a fit for secret material.
//
// Linear implements pinmove.Storage.
type Linear struct {
	runtime wazero.Runtime
	mod     api.Module
	mem     api.Memory
	free    map[uint32][]uint32
	next    uint32
	max     uint32
	mu      sync.Mutex
	closed  bool
}

var _ pinmove.Storage = (*Linear)(nil)

// NewLinear instantiates the backing module and returns an empty store.
func NewLinear(ctx context.Context, cfg *LinearConfig) (*Linear, error) {
	pages := uint32(1)
	maxPages := uint32(16)
	if cfg != nil {
		if cfg.Pages > 0 {
			pages = cfg.Pages
		}
		if cfg.MaxPages > 0 {
			maxPages = cfg.MaxPages
		}
	}
	if maxPages < pages {
		maxPages = pages
	}

	rcfg := wazero.NewRuntimeConfigInterpreter().WithMemoryLimitPages(maxPages)
	runtime := wazero.NewRuntimeWithConfig(ctx, rcfg)

	mod, err := runtime.Instantiate(ctx, memoryModule(pages, maxPages))
	if err != nil {
		_ = runtime.Close(ctx)
		return nil, fmt.Errorf("instantiate memory module: %w", err)
	}
	mem := mod.ExportedMemory("memory")
	if mem == nil {
		_ = runtime.Close(ctx)
		return nil, fmt.Errorf("memory module exports no memory")
	}

	Logger().Debug("linear store ready",
		zap.Uint32("pages", pages),
		zap.Uint32("max_pages", maxPages))

	return &Linear{
		runtime: runtime,
		mod:     mod,
		mem:     mem,
		free:    make(map[uint32][]uint32),
		next:    8, // offset 0 stays unallocated so stray zero regions never alias real data
		max:     maxPages * PageSize,
	}, nil
}

// Alloc reserves n bytes at a fixed offset. Freed regions of the same size
// are reused before the bump pointer advances.
func (l *Linear) Alloc(n uint32) (pinmove.Region, error) {
	if n == 0 {
		return pinmove.Region{}, errors.New(errors.PhaseAlloc, errors.KindOutOfBounds).
			Detail("zero-length region").Build()
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return pinmove.Region{}, errors.Closed("linear store")
	}

	if list := l.free[n]; len(list) > 0 {
		off := list[len(list)-1]
		l.free[n] = list[:len(list)-1]
		return pinmove.Region{Offset: off, Size: n}, nil
	}

	if n > l.max-l.next {
		return pinmove.Region{}, errors.Exhausted(n)
	}
	end := l.next + n
	if end > l.mem.Size() {
		delta := (end - l.mem.Size() + PageSize - 1) / PageSize
		if _, ok := l.mem.Grow(delta); !ok {
			return pinmove.Region{}, errors.Exhausted(n)
		}
	}

	r := pinmove.Region{Offset: l.next, Size: n}
	l.next = end
	return r, nil
}

// Write copies b into the region.
func (l *Linear) Write(r pinmove.Region, b []byte) error {
	if uint32(len(b)) > r.Size {
		return errors.OutOfBounds(r.Offset, uint32(len(b)), r.Size)
	}
	if !l.mem.Write(r.Offset, b) {
		return errors.OutOfBounds(r.Offset, r.Size, l.mem.Size())
	}
	return nil
}

// Read returns the region's contents. The slice is a view into the backing
// memory and is only valid until the next write or grow.
func (l *Linear) Read(r pinmove.Region) ([]byte, error) {
	buf, ok := l.mem.Read(r.Offset, r.Size)
	if !ok {
		return nil, errors.OutOfBounds(r.Offset, r.Size, l.mem.Size())
	}
	return buf, nil
}

// Wipe overwrites the region with zero bytes.
func (l *Linear) Wipe(r pinmove.Region) error {
	if !l.mem.Write(r.Offset, make([]byte, r.Size)) {
		return errors.OutOfBounds(r.Offset, r.Size, l.mem.Size())
	}
	return nil
}

// Free wipes the region and returns it to the allocator for same-size
// reuse.
func (l *Linear) Free(r pinmove.Region) {
	if !r.Valid() {
		return
	}
	if err := l.Wipe(r); err != nil {
		Logger().Warn("free: wipe failed", zap.Error(err))
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	l.free[r.Size] = append(l.free[r.Size], r.Offset)
}

// Size returns the current store size in bytes.
func (l *Linear) Size() uint32 {
	return l.mem.Size()
}

// Close wipes the whole store and shuts the backing runtime down.
func (l *Linear) Close(ctx context.Context) error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return nil
	}
	l.closed = true
	l.mu.Unlock()

	l.mem.Write(0, make([]byte, l.mem.Size()))
	if err := l.mod.Close(ctx); err != nil {
		return err
	}
	return l.runtime.Close(ctx)
}
