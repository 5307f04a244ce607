package abi

import (
	"unsafe"

	"poskernel/core"
)

// guard runs one boundary function. A panic escaping a handler poisons
// the process-wide registry and surfaces as InternalError; panics never
// cross the ABI.
func guard(fn func() PkResult) (res PkResult) {
	defer func() {
		if r := recover(); r != nil {
			core.Default().Poison()
			res = failure(CodeInternalError)
		}
	}()
	return fn()
}

// Version returns the kernel version string. The cgo shim hands it out
// as a pointer to static storage.
func Version() string { return core.KernelVersion }

// InitializeTerminal binds the process to a terminal id.
func InitializeTerminal(idPtr unsafe.Pointer, idLen uint64) PkResult {
	return guard(func() PkResult {
		id, err := stringIn(idPtr, idLen)
		if err != nil {
			return resultFromError(err)
		}
		return resultFromError(core.Default().InitializeTerminal(id))
	})
}

// ShutdownTerminal closes every outstanding handle and releases the
// binding.
func ShutdownTerminal() PkResult {
	return guard(func() PkResult {
		return resultFromError(core.Default().ShutdownTerminal())
	})
}

// GetTerminalInfo retrieves the bound terminal id via the two-call
// string protocol.
func GetTerminalInfo(buf unsafe.Pointer, bufSize uint64, required *uint64) PkResult {
	return guard(func() PkResult {
		id, err := core.Default().TerminalID()
		if err != nil {
			return resultFromError(err)
		}
		return writeString(id, buf, bufSize, required)
	})
}

// BeginTransaction opens a Building transaction and writes its handle.
func BeginTransaction(storePtr unsafe.Pointer, storeLen uint64, currencyPtr unsafe.Pointer, currencyLen uint64, outHandle *uint64) PkResult {
	return guard(func() PkResult {
		if outHandle == nil {
			return failure(CodeValidationFailed)
		}
		*outHandle = uint64(core.InvalidHandle)
		store, err := stringIn(storePtr, storeLen)
		if err != nil {
			return resultFromError(err)
		}
		currency, err := stringIn(currencyPtr, currencyLen)
		if err != nil {
			return resultFromError(err)
		}
		h, err := core.Default().Begin(store, currency)
		if err != nil {
			return resultFromError(err)
		}
		*outHandle = uint64(h)
		return ok()
	})
}

// CloseTransaction removes the handle from the registry.
func CloseTransaction(handle uint64) PkResult {
	return guard(func() PkResult {
		return resultFromError(core.Default().Close(core.Handle(handle)))
	})
}

// resolve wraps handle lookup for the operation functions.
func resolve(handle uint64) (*core.Transaction, PkResult) {
	tx, err := core.Default().Resolve(core.Handle(handle))
	if err != nil {
		return nil, resultFromError(err)
	}
	return tx, ok()
}

// AddLine appends a root line item priced in the transaction currency.
func AddLine(handle uint64, skuPtr unsafe.Pointer, skuLen uint64, qty int32, unitMinor int64) PkResult {
	return guard(func() PkResult {
		sku, err := stringIn(skuPtr, skuLen)
		if err != nil {
			return resultFromError(err)
		}
		tx, res := resolve(handle)
		if !ResultIsOk(res) {
			return res
		}
		unit := core.Money{MinorUnits: unitMinor, Currency: tx.Currency()}
		_, err = tx.AddLineItem(sku, qty, unit)
		return resultFromError(err)
	})
}

// AddChildLine appends a line under an existing parent line number.
func AddChildLine(handle uint64, skuPtr unsafe.Pointer, skuLen uint64, qty int32, unitMinor int64, parentLineNumber int32) PkResult {
	return guard(func() PkResult {
		sku, err := stringIn(skuPtr, skuLen)
		if err != nil {
			return resultFromError(err)
		}
		tx, res := resolve(handle)
		if !ResultIsOk(res) {
			return res
		}
		unit := core.Money{MinorUnits: unitMinor, Currency: tx.Currency()}
		_, err = tx.AddChildLineItem(sku, qty, unit, parentLineNumber)
		return resultFromError(err)
	})
}

// AddModificationByLineItemID appends a child under a parent addressed
// by its stable id.
func AddModificationByLineItemID(handle uint64, parentIDPtr unsafe.Pointer, parentIDLen uint64, skuPtr unsafe.Pointer, skuLen uint64, qty int32, unitMinor int64) PkResult {
	return guard(func() PkResult {
		parentID, err := stringIn(parentIDPtr, parentIDLen)
		if err != nil {
			return resultFromError(err)
		}
		sku, err := stringIn(skuPtr, skuLen)
		if err != nil {
			return resultFromError(err)
		}
		tx, res := resolve(handle)
		if !ResultIsOk(res) {
			return res
		}
		unit := core.Money{MinorUnits: unitMinor, Currency: tx.Currency()}
		_, err = tx.AddModificationByLineItemID(parentID, sku, qty, unit)
		return resultFromError(err)
	})
}

// VoidLineItemByID voids the identified line and its subtree.
func VoidLineItemByID(handle uint64, idPtr unsafe.Pointer, idLen uint64, reasonPtr unsafe.Pointer, reasonLen uint64) PkResult {
	return guard(func() PkResult {
		id, err := stringIn(idPtr, idLen)
		if err != nil {
			return resultFromError(err)
		}
		reason, err := stringIn(reasonPtr, reasonLen)
		if err != nil {
			return resultFromError(err)
		}
		tx, res := resolve(handle)
		if !ResultIsOk(res) {
			return res
		}
		return resultFromError(tx.VoidLineItemByID(id, reason))
	})
}

// VoidLineItem voids by line number and cascades like
// VoidLineItemByID.
func VoidLineItem(handle uint64, lineNumber int32, reasonPtr unsafe.Pointer, reasonLen uint64) PkResult {
	return guard(func() PkResult {
		reason, err := stringIn(reasonPtr, reasonLen)
		if err != nil {
			return resultFromError(err)
		}
		tx, res := resolve(handle)
		if !ResultIsOk(res) {
			return res
		}
		return resultFromError(tx.VoidLineItem(lineNumber, reason))
	})
}

// ModifyLineItemByID sets the identified line's quantity and unit
// price and recomputes the extended price.
func ModifyLineItemByID(handle uint64, idPtr unsafe.Pointer, idLen uint64, newQty int32, newUnitMinor int64) PkResult {
	return guard(func() PkResult {
		id, err := stringIn(idPtr, idLen)
		if err != nil {
			return resultFromError(err)
		}
		tx, res := resolve(handle)
		if !ResultIsOk(res) {
			return res
		}
		unit := core.Money{MinorUnits: newUnitMinor, Currency: tx.Currency()}
		_, err = tx.ModifyLineItemByID(id, &newQty, &unit)
		return resultFromError(err)
	})
}

// AddCashTender applies a cash amount in the transaction currency.
func AddCashTender(handle uint64, amountMinor int64) PkResult {
	return guard(func() PkResult {
		tx, res := resolve(handle)
		if !ResultIsOk(res) {
			return res
		}
		amount := core.Money{MinorUnits: amountMinor, Currency: tx.Currency()}
		_, err := tx.AddCashTender(amount)
		return resultFromError(err)
	})
}

// GetTotals writes the transaction's money summary and state.
func GetTotals(handle uint64, outTotal, outTendered, outChange *int64, outState *int32) PkResult {
	return guard(func() PkResult {
		if outTotal == nil || outTendered == nil || outChange == nil || outState == nil {
			return failure(CodeValidationFailed)
		}
		tx, res := resolve(handle)
		if !ResultIsOk(res) {
			return res
		}
		tot, err := tx.GetTotals()
		if err != nil {
			return resultFromError(err)
		}
		*outTotal = tot.Total.MinorUnits
		*outTendered = tot.Tendered.MinorUnits
		*outChange = tot.ChangeDue.MinorUnits
		*outState = int32(tot.State)
		return ok()
	})
}

// GetLineCount writes the count of all lines, voided rows included.
func GetLineCount(handle uint64, outCount *int32) PkResult {
	return guard(func() PkResult {
		if outCount == nil {
			return failure(CodeValidationFailed)
		}
		tx, res := resolve(handle)
		if !ResultIsOk(res) {
			return res
		}
		*outCount = tx.LineCount()
		return ok()
	})
}

// GetStoreName retrieves the store label via the two-call protocol.
func GetStoreName(handle uint64, buf unsafe.Pointer, bufSize uint64, required *uint64) PkResult {
	return guard(func() PkResult {
		tx, res := resolve(handle)
		if !ResultIsOk(res) {
			return res
		}
		return writeString(tx.StoreName(), buf, bufSize, required)
	})
}

// GetCurrency retrieves the normalized 3-letter code via the two-call
// protocol.
func GetCurrency(handle uint64, buf unsafe.Pointer, bufSize uint64, required *uint64) PkResult {
	return guard(func() PkResult {
		tx, res := resolve(handle)
		if !ResultIsOk(res) {
			return res
		}
		return writeString(tx.Currency(), buf, bufSize, required)
	})
}

// GetCurrencyDecimalPlaces writes the recommended minor-unit scale for
// the transaction's currency.
func GetCurrencyDecimalPlaces(handle uint64, outPlaces *uint8) PkResult {
	return guard(func() PkResult {
		if outPlaces == nil {
			return failure(CodeValidationFailed)
		}
		tx, res := resolve(handle)
		if !ResultIsOk(res) {
			return res
		}
		*outPlaces = tx.CurrencyDecimalPlaces()
		return ok()
	})
}

// ValidateCurrencyCode checks the 3-ASCII-letter shape without needing
// a handle.
func ValidateCurrencyCode(ptr unsafe.Pointer, length uint64) PkResult {
	return guard(func() PkResult {
		code, err := stringIn(ptr, length)
		if err != nil {
			return resultFromError(err)
		}
		if !core.IsValidCurrencyCode(code) {
			return failure(CodeValidationFailed)
		}
		return ok()
	})
}

// IsStandardCurrency reports membership in the fixed currency table.
// Malformed input is simply not standard.
func IsStandardCurrency(ptr unsafe.Pointer, length uint64) bool {
	std := false
	guard(func() PkResult {
		code, err := stringIn(ptr, length)
		if err != nil {
			return resultFromError(err)
		}
		std = core.IsStandardCurrency(code)
		return ok()
	})
	return std
}
