package core

import "errors"

// Sentinel errors for the kernel. Every fallible operation wraps one of
// these with fmt.Errorf("...: %w", Err...) so callers can classify with
// errors.Is and the ABI layer can translate to a result code.
var (
	// ErrNotFound covers unknown handles, unknown line-item ids and
	// calls that require a terminal before one is initialized.
	ErrNotFound = errors.New("pos: not found")

	// ErrInvalidState covers operations rejected by the transaction
	// state machine and terminal re-initialization under a different id.
	ErrInvalidState = errors.New("pos: invalid state")

	// ErrValidation covers malformed inputs: empty SKU, zero quantity,
	// bad currency code, negative tender, voided or cyclic parents.
	ErrValidation = errors.New("pos: validation failed")

	// ErrCurrencyMismatch is returned when a money operand's currency
	// differs from the transaction's or the other operand's.
	ErrCurrencyMismatch = errors.New("pos: currency mismatch")

	// ErrOverflow is returned when minor-unit arithmetic would exceed
	// the int64 range.
	ErrOverflow = errors.New("pos: money overflow")

	// ErrInternal is returned for every call after the registry has
	// been poisoned by a panic caught at the boundary.
	ErrInternal = errors.New("pos: internal error")
)
