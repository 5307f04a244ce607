// Package abi implements the kernel's C-callable surface in Go. Every
// function here mirrors one exported symbol; cmd/poskernel-lib wraps
// them with cgo. Keeping the surface in ordinary Go keeps the boundary
// protocol testable without a C toolchain.
package abi

import (
	"errors"

	"poskernel/core"
)

// PkResult is the fixed 8-byte status struct every boundary function
// returns. The reserved word keeps the layout stable for future use.
type PkResult struct {
	Code     int32
	Reserved int32
}

// Result codes. The set is closed; hosts switch on these values.
const (
	CodeOk                 int32 = 0
	CodeNotFound           int32 = 1
	CodeInvalidState       int32 = 2
	CodeValidationFailed   int32 = 3
	CodeInsufficientBuffer int32 = 4
	CodeCurrencyMismatch   int32 = 5
	CodeOverflow           int32 = 6
	CodeInternalError      int32 = 255
)

func ok() PkResult                { return PkResult{Code: CodeOk} }
func failure(code int32) PkResult { return PkResult{Code: code} }

// ResultIsOk reports success. Exported for hosts whose languages make
// struct field access awkward.
func ResultIsOk(r PkResult) bool { return r.Code == CodeOk }

// ResultGetCode extracts the code from a result struct.
func ResultGetCode(r PkResult) int32 { return r.Code }

// resultFromError translates the kernel's error taxonomy into a result
// code. Unrecognized errors are internal by definition: the kernel
// produces nothing outside the taxonomy.
func resultFromError(err error) PkResult {
	switch {
	case err == nil:
		return ok()
	case errors.Is(err, core.ErrNotFound):
		return failure(CodeNotFound)
	case errors.Is(err, core.ErrInvalidState):
		return failure(CodeInvalidState)
	case errors.Is(err, core.ErrValidation):
		return failure(CodeValidationFailed)
	case errors.Is(err, core.ErrCurrencyMismatch):
		return failure(CodeCurrencyMismatch)
	case errors.Is(err, core.ErrOverflow):
		return failure(CodeOverflow)
	default:
		return failure(CodeInternalError)
	}
}
