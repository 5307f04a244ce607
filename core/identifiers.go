package core

import (
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
)

// TransactionID is a 128-bit unique value printed as 32 lowercase hex
// characters with no separators.
type TransactionID string

// NewTransactionID draws a random 128-bit id.
func NewTransactionID() TransactionID {
	u := uuid.New()
	return TransactionID(hex.EncodeToString(u[:]))
}

// Handle is the opaque token identifying a transaction across the ABI
// boundary. Zero is reserved and never allocated.
type Handle uint64

// InvalidHandle is the sentinel value no live transaction ever has.
const InvalidHandle Handle = 0

// lineItemID builds the stable id for the counter-th line of tx. Ids
// are assigned once at insertion and never reused, even after voids.
func lineItemID(tx TransactionID, counter uint32) string {
	return fmt.Sprintf("TXN_%s_LN_%04d", tx, counter)
}
