package services

import (
	"poskernel/core"
)

// KernelService wraps the kernel operations used by the HTTP API. It
// owns no state of its own: everything lives in the registry and its
// transactions, so the façade can be restarted freely.
type KernelService struct {
	reg *core.Registry
}

// NewService binds the façade to a registry, normally core.Default().
func NewService(reg *core.Registry) *KernelService {
	return &KernelService{reg: reg}
}

func (ks *KernelService) InitializeTerminal(id string) error {
	return ks.reg.InitializeTerminal(id)
}

func (ks *KernelService) TerminalID() (string, error) {
	return ks.reg.TerminalID()
}

func (ks *KernelService) Begin(store, currency string) (core.Handle, error) {
	return ks.reg.Begin(store, currency)
}

func (ks *KernelService) Close(h core.Handle) error {
	return ks.reg.Close(h)
}

func (ks *KernelService) resolve(h core.Handle) (*core.Transaction, error) {
	return ks.reg.Resolve(h)
}

func (ks *KernelService) AddLine(h core.Handle, sku string, qty int32, unitMinor int64) (core.LineItem, error) {
	tx, err := ks.resolve(h)
	if err != nil {
		return core.LineItem{}, err
	}
	return tx.AddLineItem(sku, qty, core.Money{MinorUnits: unitMinor, Currency: tx.Currency()})
}

func (ks *KernelService) AddChildLine(h core.Handle, sku string, qty int32, unitMinor int64, parent int32) (core.LineItem, error) {
	tx, err := ks.resolve(h)
	if err != nil {
		return core.LineItem{}, err
	}
	return tx.AddChildLineItem(sku, qty, core.Money{MinorUnits: unitMinor, Currency: tx.Currency()}, parent)
}

func (ks *KernelService) AddModification(h core.Handle, parentID, sku string, qty int32, unitMinor int64) (core.LineItem, error) {
	tx, err := ks.resolve(h)
	if err != nil {
		return core.LineItem{}, err
	}
	return tx.AddModificationByLineItemID(parentID, sku, qty, core.Money{MinorUnits: unitMinor, Currency: tx.Currency()})
}

func (ks *KernelService) VoidLineByID(h core.Handle, id, reason string) error {
	tx, err := ks.resolve(h)
	if err != nil {
		return err
	}
	return tx.VoidLineItemByID(id, reason)
}

func (ks *KernelService) VoidLine(h core.Handle, number int32, reason string) error {
	tx, err := ks.resolve(h)
	if err != nil {
		return err
	}
	return tx.VoidLineItem(number, reason)
}

func (ks *KernelService) ModifyLine(h core.Handle, id string, newQty *int32, newUnitMinor *int64) (core.LineItem, error) {
	tx, err := ks.resolve(h)
	if err != nil {
		return core.LineItem{}, err
	}
	var unit *core.Money
	if newUnitMinor != nil {
		unit = &core.Money{MinorUnits: *newUnitMinor, Currency: tx.Currency()}
	}
	return tx.ModifyLineItemByID(id, newQty, unit)
}

func (ks *KernelService) Tender(h core.Handle, amountMinor int64) (core.State, error) {
	tx, err := ks.resolve(h)
	if err != nil {
		return 0, err
	}
	return tx.AddCashTender(core.Money{MinorUnits: amountMinor, Currency: tx.Currency()})
}

func (ks *KernelService) VoidTransaction(h core.Handle) error {
	tx, err := ks.resolve(h)
	if err != nil {
		return err
	}
	return tx.VoidTransaction()
}

func (ks *KernelService) Totals(h core.Handle) (core.Totals, error) {
	tx, err := ks.resolve(h)
	if err != nil {
		return core.Totals{}, err
	}
	return tx.GetTotals()
}

// Lines returns every row plus the transaction currency scale, which
// clients need to render minor units.
func (ks *KernelService) Lines(h core.Handle) ([]core.LineItem, uint8, error) {
	tx, err := ks.resolve(h)
	if err != nil {
		return nil, 0, err
	}
	return tx.Lines(), tx.CurrencyDecimalPlaces(), nil
}

func (ks *KernelService) Version() string { return core.KernelVersion }
