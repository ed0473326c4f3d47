package pin

// Transferable is the contract a value type implements to describe how its
// state relocates from one pinned slot to another. It is implemented on the
// pointer type, which the transfer driver constrains to *T.
//
// TransferInto is invoked with the receiver housed in the occupied source
// slot and dst pointing at the destination slot's storage. dst is the real,
// final address of the relocated value; address-dependent types may capture
// it. The implementation must:
//
//   - write a complete, valid value through dst before returning nil;
//   - leave the source inert afterwards, performing whatever cleanup the
//     type requires (zeroing secret bytes, releasing the old registration);
//   - not mutate the receiver's state until the destination write can no
//     longer fail. Do fallible work first, then copy, then invalidate the
//     source.
//
// On a non-nil return the driver discards any partial destination write and
// rolls the transfer back, so from the caller's point of view the source is
// unchanged and the destination is still empty. The error is returned to
// the caller wrapped in ContractFailed.
type Transferable[T any] interface {
	*T
	TransferInto(dst *T) error
}
