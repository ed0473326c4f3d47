package pinmove

// Region identifies a fixed range of off-heap storage. A region's offset is
// stable for the lifetime of the storage that produced it.
type Region struct {
	Offset uint32
	Size   uint32
}

// Valid reports whether the region refers to allocated storage.
// The zero Region is reserved and never returned by an allocator.
func (r Region) Valid() bool {
	return r.Size != 0
}

// Storage is byte-level storage with fixed offsets. Allocated regions never
// move; Free returns a region for reuse without invalidating other regions.
type Storage interface {
	// Alloc reserves n bytes and returns a region describing them.
	Alloc(n uint32) (Region, error)

	// Write copies b into the region. len(b) must not exceed the region size.
	Write(r Region, b []byte) error

	// Read returns the region's current contents. The returned slice may
	// alias the underlying storage and is only valid until the next write.
	Read(r Region) ([]byte, error)

	// Wipe overwrites the region with zero bytes.
	Wipe(r Region) error

	// Free returns the region to the allocator. The contents are wiped first.
	Free(r Region)
}

// Wiper is optionally implemented by values that must scrub internal state
// before their storage is released or reused.
type Wiper interface {
	Wipe()
}
