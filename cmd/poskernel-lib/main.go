// Command poskernel-lib builds the kernel as a C-linkage dynamic
// library:
//
//	go build -buildmode=c-shared -o libposkernel.so ./cmd/poskernel-lib
//
// Every exported symbol is a thin cast over internal/abi; no logic
// lives here. Input buffers are caller-owned and copied on entry;
// output buffers are caller-allocated. The only pointer the library
// hands out is pk_get_version, which points at static storage.
package main

/*
#include <stdint.h>
#include <stdbool.h>

typedef struct {
	int32_t code;
	int32_t reserved;
} PkResult;
*/
import "C"

import (
	"unsafe"

	"poskernel/internal/abi"
)

var versionC = C.CString(abi.Version())

func cres(r abi.PkResult) C.PkResult {
	return C.PkResult{code: C.int32_t(r.Code), reserved: C.int32_t(r.Reserved)}
}

func gres(r C.PkResult) abi.PkResult {
	return abi.PkResult{Code: int32(r.code), Reserved: int32(r.reserved)}
}

//export pk_get_version
func pk_get_version() *C.char { return versionC }

//export pk_result_is_ok
func pk_result_is_ok(r C.PkResult) C.bool {
	return C.bool(abi.ResultIsOk(gres(r)))
}

//export pk_result_get_code
func pk_result_get_code(r C.PkResult) C.int32_t {
	return C.int32_t(abi.ResultGetCode(gres(r)))
}

//export pk_initialize_terminal
func pk_initialize_terminal(idPtr unsafe.Pointer, idLen C.uint64_t) C.PkResult {
	return cres(abi.InitializeTerminal(idPtr, uint64(idLen)))
}

//export pk_shutdown_terminal
func pk_shutdown_terminal() C.PkResult {
	return cres(abi.ShutdownTerminal())
}

//export pk_get_terminal_info
func pk_get_terminal_info(buf unsafe.Pointer, bufSize C.uint64_t, required *C.uint64_t) C.PkResult {
	return cres(abi.GetTerminalInfo(buf, uint64(bufSize), (*uint64)(unsafe.Pointer(required))))
}

//export pk_begin_transaction
func pk_begin_transaction(storePtr unsafe.Pointer, storeLen C.uint64_t, currencyPtr unsafe.Pointer, currencyLen C.uint64_t, outHandle *C.uint64_t) C.PkResult {
	return cres(abi.BeginTransaction(storePtr, uint64(storeLen), currencyPtr, uint64(currencyLen), (*uint64)(unsafe.Pointer(outHandle))))
}

//export pk_close_transaction
func pk_close_transaction(handle C.uint64_t) C.PkResult {
	return cres(abi.CloseTransaction(uint64(handle)))
}

//export pk_add_line
func pk_add_line(handle C.uint64_t, skuPtr unsafe.Pointer, skuLen C.uint64_t, qty C.int32_t, unitMinor C.int64_t) C.PkResult {
	return cres(abi.AddLine(uint64(handle), skuPtr, uint64(skuLen), int32(qty), int64(unitMinor)))
}

//export pk_add_child_line
func pk_add_child_line(handle C.uint64_t, skuPtr unsafe.Pointer, skuLen C.uint64_t, qty C.int32_t, unitMinor C.int64_t, parentLineNumber C.int32_t) C.PkResult {
	return cres(abi.AddChildLine(uint64(handle), skuPtr, uint64(skuLen), int32(qty), int64(unitMinor), int32(parentLineNumber)))
}

//export pk_add_modification_by_line_item_id
func pk_add_modification_by_line_item_id(handle C.uint64_t, parentIDPtr unsafe.Pointer, parentIDLen C.uint64_t, skuPtr unsafe.Pointer, skuLen C.uint64_t, qty C.int32_t, unitMinor C.int64_t) C.PkResult {
	return cres(abi.AddModificationByLineItemID(uint64(handle), parentIDPtr, uint64(parentIDLen), skuPtr, uint64(skuLen), int32(qty), int64(unitMinor)))
}

//export pk_void_line_item_by_id
func pk_void_line_item_by_id(handle C.uint64_t, idPtr unsafe.Pointer, idLen C.uint64_t, reasonPtr unsafe.Pointer, reasonLen C.uint64_t) C.PkResult {
	return cres(abi.VoidLineItemByID(uint64(handle), idPtr, uint64(idLen), reasonPtr, uint64(reasonLen)))
}

//export pk_void_line_item
func pk_void_line_item(handle C.uint64_t, lineNumber C.int32_t, reasonPtr unsafe.Pointer, reasonLen C.uint64_t) C.PkResult {
	return cres(abi.VoidLineItem(uint64(handle), int32(lineNumber), reasonPtr, uint64(reasonLen)))
}

//export pk_modify_line_item_by_id
func pk_modify_line_item_by_id(handle C.uint64_t, idPtr unsafe.Pointer, idLen C.uint64_t, newQty C.int32_t, newUnitMinor C.int64_t) C.PkResult {
	return cres(abi.ModifyLineItemByID(uint64(handle), idPtr, uint64(idLen), int32(newQty), int64(newUnitMinor)))
}

//export pk_add_cash_tender
func pk_add_cash_tender(handle C.uint64_t, amountMinor C.int64_t) C.PkResult {
	return cres(abi.AddCashTender(uint64(handle), int64(amountMinor)))
}

//export pk_get_totals
func pk_get_totals(handle C.uint64_t, outTotal *C.int64_t, outTendered *C.int64_t, outChange *C.int64_t, outState *C.int32_t) C.PkResult {
	return cres(abi.GetTotals(uint64(handle),
		(*int64)(unsafe.Pointer(outTotal)),
		(*int64)(unsafe.Pointer(outTendered)),
		(*int64)(unsafe.Pointer(outChange)),
		(*int32)(unsafe.Pointer(outState))))
}

//export pk_get_line_count
func pk_get_line_count(handle C.uint64_t, outCount *C.int32_t) C.PkResult {
	return cres(abi.GetLineCount(uint64(handle), (*int32)(unsafe.Pointer(outCount))))
}

//export pk_get_store_name
func pk_get_store_name(handle C.uint64_t, buf unsafe.Pointer, bufSize C.uint64_t, required *C.uint64_t) C.PkResult {
	return cres(abi.GetStoreName(uint64(handle), buf, uint64(bufSize), (*uint64)(unsafe.Pointer(required))))
}

//export pk_get_currency
func pk_get_currency(handle C.uint64_t, buf unsafe.Pointer, bufSize C.uint64_t, required *C.uint64_t) C.PkResult {
	return cres(abi.GetCurrency(uint64(handle), buf, uint64(bufSize), (*uint64)(unsafe.Pointer(required))))
}

//export pk_get_currency_decimal_places
func pk_get_currency_decimal_places(handle C.uint64_t, outPlaces *C.uint8_t) C.PkResult {
	return cres(abi.GetCurrencyDecimalPlaces(uint64(handle), (*uint8)(unsafe.Pointer(outPlaces))))
}

//export pk_validate_currency_code
func pk_validate_currency_code(ptr unsafe.Pointer, length C.uint64_t) C.PkResult {
	return cres(abi.ValidateCurrencyCode(ptr, uint64(length)))
}

//export pk_is_standard_currency
func pk_is_standard_currency(ptr unsafe.Pointer, length C.uint64_t) C.bool {
	return C.bool(abi.IsStandardCurrency(ptr, uint64(length)))
}

func main() {}
