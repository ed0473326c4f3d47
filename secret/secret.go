package secret

import (
	"errors"

	"github.com/stablemem/pinmove"
	"github.com/stablemem/pinmove/pin"
)

// ErrWiped is returned when reading a secret whose payload was already
// destroyed.
var ErrWiped = errors.New("secret: payload wiped")

// Bytes is secret material housed in a pinned slot. The payload lives
// off the Go heap in a pinmove.Storage region, so wiping it is
// deterministic: no GC copy of the plaintext survives. The struct itself
// only carries the region descriptor.
//
// Bytes implements the transfer contract by allocating a fresh region for
// the destination, copying the payload, and wiping the source region, and
// implements pinmove.Wiper so in-place destruction scrubs the payload too.
type Bytes struct {
	store  pinmove.Storage
	region pinmove.Region
	wiped  bool
}

// Seed initializes an empty slot with secret material. The payload is
// copied into store and the caller's buffer is zeroed, so the only
// remaining plaintext is the off-heap copy owned by the slot.
func Seed(slot *pin.Slot[Bytes], store pinmove.Storage, b []byte) error {
	h, err := slot.AcquireEmpty()
	if err != nil {
		return err
	}

	r, err := store.Alloc(uint32(len(b)))
	if err != nil {
		h.Release()
		return err
	}
	if err := store.Write(r, b); err != nil {
		store.Free(r)
		h.Release()
		return err
	}
	zero(b)

	return h.Commit(Bytes{store: store, region: r})
}

// TransferInto relocates the payload into a fresh region for dst and wipes
// the source region. Allocation is the only fallible step and happens
// before the source is touched, so a failed transfer leaves the source
// payload intact.
func (s *Bytes) TransferInto(dst *Bytes) error {
	r, err := s.store.Alloc(s.region.Size)
	if err != nil {
		return err
	}
	data, err := s.store.Read(s.region)
	if err != nil {
		s.store.Free(r)
		return err
	}
	if err := s.store.Write(r, data); err != nil {
		s.store.Free(r)
		return err
	}

	*dst = Bytes{store: s.store, region: r}
	s.store.Free(s.region)
	s.region = pinmove.Region{}
	s.wiped = true
	return nil
}

// Reveal passes the current payload to fn. The slice aliases the backing
// store and must not escape fn.
func (s *Bytes) Reveal(fn func([]byte)) error {
	if s.wiped || !s.region.Valid() {
		return ErrWiped
	}
	data, err := s.store.Read(s.region)
	if err != nil {
		return err
	}
	fn(data)
	return nil
}

// Region returns the off-heap region currently holding the payload.
func (s *Bytes) Region() pinmove.Region {
	return s.region
}

// Len returns the payload length in bytes.
func (s *Bytes) Len() int {
	return int(s.region.Size)
}

// Wiped reports whether the payload was destroyed.
func (s *Bytes) Wiped() bool {
	return s.wiped
}

// Wipe destroys the payload in place. Implements pinmove.Wiper.
func (s *Bytes) Wipe() {
	if s.region.Valid() {
		s.store.Free(s.region)
		s.region = pinmove.Region{}
	}
	s.wiped = true
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
