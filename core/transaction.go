package core

import (
	"fmt"
	"strings"
	"sync"
)

// State is the lifecycle position of a transaction. Completed and
// Voided are terminal and mutually exclusive.
type State int32

const (
	StateBuilding  State = 0
	StateCompleted State = 1
	StateVoided    State = 2
)

func (s State) String() string {
	switch s {
	case StateBuilding:
		return "Building"
	case StateCompleted:
		return "Completed"
	case StateVoided:
		return "Voided"
	}
	return fmt.Sprintf("State(%d)", int32(s))
}

// TenderMethod tags how value was applied. The kernel implements cash
// end to end; other methods are future extensions of the tag, not
// emulated behaviour.
type TenderMethod int32

const (
	TenderCash TenderMethod = 0
)

func (m TenderMethod) String() string {
	if m == TenderCash {
		return "Cash"
	}
	return fmt.Sprintf("TenderMethod(%d)", int32(m))
}

// Tender is one application of value against the transaction total.
type Tender struct {
	Amount Money        `json:"amount"`
	Method TenderMethod `json:"method"`
}

// Totals is the read-only money summary of a transaction.
type Totals struct {
	Total     Money `json:"total"`
	Tendered  Money `json:"tendered"`
	ChangeDue Money `json:"change_due"`
	State     State `json:"state"`
}

// Transaction is the aggregate: an ordered line-item forest plus the
// tenders applied against it, guarded by one mutex so every operation
// is atomic with respect to every other.
type Transaction struct {
	mu sync.Mutex

	id        TransactionID
	storeName string
	currency  string
	state     State

	lines   *lineIndex
	tenders []Tender

	lineIDCounter  uint32
	lineNumCounter int32
}

// NewTransaction opens a Building transaction for the given store in
// the given currency. The currency code is normalized to uppercase.
func NewTransaction(storeName, currency string) (*Transaction, error) {
	if strings.TrimSpace(storeName) == "" {
		return nil, fmt.Errorf("pos: store name is empty: %w", ErrValidation)
	}
	code, err := NormalizeCurrency(currency)
	if err != nil {
		return nil, err
	}
	return &Transaction{
		id:        NewTransactionID(),
		storeName: storeName,
		currency:  code,
		state:     StateBuilding,
		lines:     newLineIndex(),
	}, nil
}

// ID returns the transaction's 128-bit identifier.
func (t *Transaction) ID() TransactionID {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.id
}

// StoreName returns the store label supplied at begin.
func (t *Transaction) StoreName() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.storeName
}

// Currency returns the normalized 3-letter code.
func (t *Transaction) Currency() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.currency
}

// CurrencyDecimalPlaces returns the recommended minor-unit scale for
// the transaction's currency.
func (t *Transaction) CurrencyDecimalPlaces() uint8 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return DecimalPlacesFor(t.currency)
}

// State returns the current lifecycle position.
func (t *Transaction) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// LineCount counts every row ever added, voided rows included. Rows
// are retained for audit; numbers are never compacted.
func (t *Transaction) LineCount() int32 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return int32(t.lines.len())
}

// requireBuilding gates every mutation.
func (t *Transaction) requireBuilding(op string) error {
	if t.state != StateBuilding {
		return fmt.Errorf("pos: %s in state %s: %w", op, t.state, ErrInvalidState)
	}
	return nil
}

// appendLine validates and inserts one row. parent is 0 for roots.
// Validation happens entirely before the first mutation so a failed
// call leaves the aggregate untouched.
func (t *Transaction) appendLine(sku string, qty int32, unit Money, parent int32) (LineItem, error) {
	if strings.TrimSpace(sku) == "" {
		return LineItem{}, fmt.Errorf("pos: empty sku: %w", ErrValidation)
	}
	if qty == 0 {
		return LineItem{}, fmt.Errorf("pos: quantity must be non-zero: %w", ErrValidation)
	}
	if unit.Currency != t.currency {
		return LineItem{}, fmt.Errorf("pos: line currency %s on %s transaction: %w", unit.Currency, t.currency, ErrCurrencyMismatch)
	}
	var parentID string
	if parent != 0 {
		if err := t.lines.validateParent(parent); err != nil {
			return LineItem{}, err
		}
		p, _ := t.lines.findByNumber(parent)
		parentID = p.LineItemID
	}
	extended, err := unit.Mul(int64(qty))
	if err != nil {
		return LineItem{}, err
	}
	if extended.Currency != t.currency {
		return LineItem{}, fmt.Errorf("pos: extended price currency %s: %w", extended.Currency, ErrCurrencyMismatch)
	}

	t.lineIDCounter++
	t.lineNumCounter++
	li := &LineItem{
		LineItemID:       lineItemID(t.id, t.lineIDCounter),
		LineNumber:       t.lineNumCounter,
		ProductID:        sku,
		Quantity:         qty,
		UnitPrice:        unit,
		ExtendedPrice:    extended,
		ParentLineNumber: parent,
		ParentLineItemID: parentID,
	}
	t.lines.insert(li)
	return *li, nil
}

// AddLineItem appends a root line. Zero unit prices are allowed (set
// components, gifts); negative quantities are allowed (returns).
func (t *Transaction) AddLineItem(sku string, qty int32, unit Money) (LineItem, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.requireBuilding("add line"); err != nil {
		return LineItem{}, err
	}
	return t.appendLine(sku, qty, unit, 0)
}

// AddChildLineItem appends a line under an existing, non-voided parent
// identified by line number.
func (t *Transaction) AddChildLineItem(sku string, qty int32, unit Money, parent int32) (LineItem, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.requireBuilding("add child line"); err != nil {
		return LineItem{}, err
	}
	if parent == 0 {
		return LineItem{}, fmt.Errorf("pos: parent line number 0: %w", ErrValidation)
	}
	return t.appendLine(sku, qty, unit, parent)
}

// AddModificationByLineItemID appends a child under a parent addressed
// by its stable id. When both forms could identify a target, the stable
// id is authoritative; this is that path.
func (t *Transaction) AddModificationByLineItemID(parentID, sku string, qty int32, unit Money) (LineItem, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.requireBuilding("add modification"); err != nil {
		return LineItem{}, err
	}
	p, ok := t.lines.findByID(parentID)
	if !ok {
		return LineItem{}, fmt.Errorf("pos: line item %q: %w", parentID, ErrNotFound)
	}
	return t.appendLine(sku, qty, unit, p.LineNumber)
}

// VoidLineItemByID voids the target row and every descendant, deepest
// first. Voiding an already-voided row is a no-op.
func (t *Transaction) VoidLineItemByID(id, reason string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.requireBuilding("void line"); err != nil {
		return err
	}
	li, ok := t.lines.findByID(id)
	if !ok {
		return fmt.Errorf("pos: line item %q: %w", id, ErrNotFound)
	}
	return t.lines.voidCascade(li.LineNumber, reason)
}

// VoidLineItem voids by line number. It looks the row up by number and
// runs the same cascade as VoidLineItemByID.
func (t *Transaction) VoidLineItem(number int32, reason string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.requireBuilding("void line"); err != nil {
		return err
	}
	li, ok := t.lines.findByNumber(number)
	if !ok {
		return fmt.Errorf("pos: line %d: %w", number, ErrNotFound)
	}
	return t.lines.voidCascade(li.LineNumber, reason)
}

// ModifyLineItemByID updates quantity and/or unit price of a non-voided
// row and recomputes the extended price. Nil means "leave unchanged".
func (t *Transaction) ModifyLineItemByID(id string, newQty *int32, newUnit *Money) (LineItem, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.requireBuilding("modify line"); err != nil {
		return LineItem{}, err
	}
	li, ok := t.lines.findByID(id)
	if !ok {
		return LineItem{}, fmt.Errorf("pos: line item %q: %w", id, ErrNotFound)
	}
	if li.Voided {
		return LineItem{}, fmt.Errorf("pos: line item %q is voided: %w", id, ErrValidation)
	}
	qty := li.Quantity
	if newQty != nil {
		if *newQty == 0 {
			return LineItem{}, fmt.Errorf("pos: quantity must be non-zero: %w", ErrValidation)
		}
		qty = *newQty
	}
	unit := li.UnitPrice
	if newUnit != nil {
		if newUnit.Currency != t.currency {
			return LineItem{}, fmt.Errorf("pos: unit price currency %s on %s transaction: %w", newUnit.Currency, t.currency, ErrCurrencyMismatch)
		}
		unit = *newUnit
	}
	extended, err := unit.Mul(int64(qty))
	if err != nil {
		return LineItem{}, err
	}
	if extended.Currency != t.currency {
		return LineItem{}, fmt.Errorf("pos: extended price currency %s: %w", extended.Currency, ErrCurrencyMismatch)
	}
	li.Quantity = qty
	li.UnitPrice = unit
	li.ExtendedPrice = extended
	return *li, nil
}

// totalLocked sums extended prices over non-voided rows. Callers hold
// the mutex.
func (t *Transaction) totalLocked() (Money, error) {
	total := Zero(t.currency)
	var err error
	t.lines.ascend(func(li *LineItem) bool {
		if li.Voided {
			return true
		}
		total, err = total.Add(li.ExtendedPrice)
		return err == nil
	})
	if err != nil {
		return Money{}, err
	}
	return total, nil
}

// tenderedLocked sums applied tenders. Callers hold the mutex.
func (t *Transaction) tenderedLocked() (Money, error) {
	sum := Zero(t.currency)
	for _, td := range t.tenders {
		var err error
		if sum, err = sum.Add(td.Amount); err != nil {
			return Money{}, err
		}
	}
	return sum, nil
}

// AddCashTender applies a non-negative cash amount in the transaction
// currency. When the cumulative tendered amount reaches the total the
// transaction completes; a zero tender against a zero or negative total
// is the explicit settlement path for returns and full-void sales.
func (t *Transaction) AddCashTender(amount Money) (State, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.requireBuilding("tender"); err != nil {
		return t.state, err
	}
	if amount.Currency != t.currency {
		return t.state, fmt.Errorf("pos: tender currency %s on %s transaction: %w", amount.Currency, t.currency, ErrCurrencyMismatch)
	}
	if amount.Negative() {
		return t.state, fmt.Errorf("pos: tender amount %d is negative: %w", amount.MinorUnits, ErrValidation)
	}
	total, err := t.totalLocked()
	if err != nil {
		return t.state, err
	}
	tendered, err := t.tenderedLocked()
	if err != nil {
		return t.state, err
	}
	if tendered, err = tendered.Add(amount); err != nil {
		return t.state, err
	}

	t.tenders = append(t.tenders, Tender{Amount: amount, Method: TenderCash})
	if tendered.MinorUnits >= total.MinorUnits {
		t.state = StateCompleted
	}
	return t.state, nil
}

// VoidTransaction abandons a Building transaction, preserving its rows
// and tenders for audit. Completed and Voided are terminal.
func (t *Transaction) VoidTransaction() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.requireBuilding("void transaction"); err != nil {
		return err
	}
	t.state = StateVoided
	return nil
}

// GetTotals returns the money summary. Change due is never negative;
// an undertendered transaction simply owes zero change.
func (t *Transaction) GetTotals() (Totals, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	total, err := t.totalLocked()
	if err != nil {
		return Totals{}, err
	}
	tendered, err := t.tenderedLocked()
	if err != nil {
		return Totals{}, err
	}
	change, err := tendered.Sub(total)
	if err != nil {
		return Totals{}, err
	}
	if change.Negative() {
		change = Zero(t.currency)
	}
	return Totals{Total: total, Tendered: tendered, ChangeDue: change, State: t.state}, nil
}

// Line returns a copy of the row with the given line number.
func (t *Transaction) Line(number int32) (LineItem, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	li, ok := t.lines.findByNumber(number)
	if !ok {
		return LineItem{}, fmt.Errorf("pos: line %d: %w", number, ErrNotFound)
	}
	return *li, nil
}

// LineByID returns a copy of the row with the given stable id.
func (t *Transaction) LineByID(id string) (LineItem, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	li, ok := t.lines.findByID(id)
	if !ok {
		return LineItem{}, fmt.Errorf("pos: line item %q: %w", id, ErrNotFound)
	}
	return *li, nil
}

// Lines returns copies of every row in line-number order, voided rows
// included.
func (t *Transaction) Lines() []LineItem {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]LineItem, 0, t.lines.len())
	t.lines.ascend(func(li *LineItem) bool {
		out = append(out, *li)
		return true
	})
	return out
}

// Tenders returns copies of the applied tenders in order.
func (t *Transaction) Tenders() []Tender {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Tender, len(t.tenders))
	copy(out, t.tenders)
	return out
}
