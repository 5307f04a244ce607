package abi

import (
	"fmt"
	"strings"
	"unicode/utf8"
	"unsafe"

	"poskernel/core"
)

// stringIn copies a (ptr,len) UTF-8 input into a Go string. A null
// pointer with a non-zero length is a validation failure; invalid
// UTF-8 is coerced to replacement characters and never fatal. The
// bytes are copied, so the caller may free its buffer on return.
func stringIn(ptr unsafe.Pointer, length uint64) (string, error) {
	if length == 0 {
		return "", nil
	}
	if ptr == nil {
		return "", fmt.Errorf("pos: null pointer with length %d: %w", length, core.ErrValidation)
	}
	s := string(unsafe.Slice((*byte)(ptr), length))
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, "�")
	}
	return s, nil
}

// writeString implements the two-call retrieval pattern. The exact
// byte count of s (no trailing NUL) is always written to required;
// bytes are written only when the caller's buffer holds them all.
// Partial writes never happen.
func writeString(s string, buf unsafe.Pointer, bufSize uint64, required *uint64) PkResult {
	if required == nil {
		return failure(CodeValidationFailed)
	}
	need := uint64(len(s))
	*required = need
	if need == 0 {
		return ok()
	}
	if buf == nil || bufSize < need {
		return failure(CodeInsufficientBuffer)
	}
	copy(unsafe.Slice((*byte)(buf), need), s)
	return ok()
}
