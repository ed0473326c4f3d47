package pin

import (
	"go.uber.org/zap"

	"github.com/stablemem/pinmove/errors"
)

// Transfer moves the value housed in src into dst by invoking the value
// type's Transferable contract, and returns a live occupied handle on dst as
// the sole reference to the relocated value. The caller releases the handle
// when done with it.
//
// The operation is atomic from the caller's point of view:
//
//   - src not occupied
//     fails with Empty, nothing changed;
//   - dst not empty
//     fails with AlreadyOccupied, nothing changed;
//   - contract returns an error
//     fails with ContractFailed wrapping it, the destination storage is
//     zeroed, src stays occupied with its content intact;
//   - contract succeeds
//     src becomes empty, dst becomes occupied, dst's generation advances.
//
// Transfer is synchronous and does not block; once the contract is invoked
// the call runs to completion.
func Transfer[T any, PT Transferable[T]](src, dst *Slot[T]) (*OccupiedHandle[T], error) {
	if src == dst {
		return nil, errors.AliasedSlots()
	}

	occ, err := src.AcquireOccupied()
	if err != nil {
		return nil, err
	}
	emp, err := dst.AcquireEmpty()
	if err != nil {
		occ.Release()
		return nil, err
	}

	Logger().Debug("transfer contract invoked",
		zap.Uint64("src_generation", src.gen),
		zap.Uint64("dst_generation", dst.gen))

	if cerr := PT(occ.Value()).TransferInto(emp.Ptr()); cerr != nil {
		// Roll back: a partial destination write becomes inert zeroes and
		// the slot stays observably empty.
		var zero T
		*emp.Ptr() = zero
		emp.Release()
		occ.Release()
		Logger().Debug("transfer rolled back", zap.Error(cerr))
		src.notify(Event{Type: EventTransferFailed, Generation: src.gen})
		return nil, errors.ContractFailed(cerr)
	}

	if err := src.markEmptied(occ); err != nil {
		return nil, err
	}
	if err := dst.markOccupied(emp); err != nil {
		return nil, err
	}
	dst.notify(Event{Type: EventTransferred, Generation: dst.gen})

	return dst.AcquireOccupied()
}
