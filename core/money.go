package core

import (
	"fmt"
	"math"
	"strings"
)

// Money is an exact amount of a single currency, counted in that
// currency's smallest representable unit (cents for USD, yen for JPY,
// fils for BHD). The kernel never chooses a scale: hosts pass amounts
// already scaled and read them back verbatim.
type Money struct {
	MinorUnits int64  `json:"minor_units"`
	Currency   string `json:"currency"`
}

// standardCurrencies is the fixed membership table behind
// IsStandardCurrency. Codes outside it are still usable; their scale
// comes from decimalPlaces, or the default when they are absent there.
var standardCurrencies = map[string]struct{}{
	"USD": {}, "EUR": {}, "JPY": {}, "GBP": {}, "CAD": {}, "AUD": {},
}

// decimalPlaces maps well-known ISO codes to their minor-unit scale.
var decimalPlaces = map[string]uint8{
	"USD": 2, "EUR": 2, "GBP": 2, "CAD": 2, "AUD": 2,
	"JPY": 0,
	"BHD": 3, "KWD": 3,
}

// defaultDecimalPlaces is used for codes absent from the table.
const defaultDecimalPlaces uint8 = 2

// IsValidCurrencyCode reports whether code is exactly three ASCII
// letters. Case is not significant; NormalizeCurrency uppercases.
func IsValidCurrencyCode(code string) bool {
	if len(code) != 3 {
		return false
	}
	for i := 0; i < 3; i++ {
		c := code[i]
		if (c < 'A' || c > 'Z') && (c < 'a' || c > 'z') {
			return false
		}
	}
	return true
}

// IsStandardCurrency reports membership in the fixed table
// {USD, EUR, JPY, GBP, CAD, AUD}. The code is normalized first.
func IsStandardCurrency(code string) bool {
	if !IsValidCurrencyCode(code) {
		return false
	}
	_, ok := standardCurrencies[strings.ToUpper(code)]
	return ok
}

// NormalizeCurrency validates code and returns its canonical uppercase
// form.
func NormalizeCurrency(code string) (string, error) {
	if !IsValidCurrencyCode(code) {
		return "", fmt.Errorf("pos: currency %q must be 3 ASCII letters: %w", code, ErrValidation)
	}
	return strings.ToUpper(code), nil
}

// DecimalPlacesFor returns the recommended minor-unit scale for code,
// defaulting to 2 for codes outside the shipped table. Hosts use this to
// round consistently; the kernel itself never rescales.
func DecimalPlacesFor(code string) uint8 {
	if dp, ok := decimalPlaces[strings.ToUpper(code)]; ok {
		return dp
	}
	return defaultDecimalPlaces
}

// Zero returns the zero amount of the given currency. The code is
// recorded as given; callers that accept host input normalize first.
func Zero(currency string) Money {
	return Money{MinorUnits: 0, Currency: currency}
}

// NewMoney validates and normalizes the currency code and returns the
// tagged amount.
func NewMoney(minor int64, currency string) (Money, error) {
	code, err := NormalizeCurrency(currency)
	if err != nil {
		return Money{}, err
	}
	return Money{MinorUnits: minor, Currency: code}, nil
}

// sameCurrency fails fast on mixed-currency arithmetic.
func (m Money) sameCurrency(o Money) error {
	if m.Currency != o.Currency {
		return fmt.Errorf("pos: %s vs %s: %w", m.Currency, o.Currency, ErrCurrencyMismatch)
	}
	return nil
}

// Add returns m+o. Operand currencies must match and the sum must fit
// in int64; nothing is ever truncated.
func (m Money) Add(o Money) (Money, error) {
	if err := m.sameCurrency(o); err != nil {
		return Money{}, err
	}
	if (o.MinorUnits > 0 && m.MinorUnits > math.MaxInt64-o.MinorUnits) ||
		(o.MinorUnits < 0 && m.MinorUnits < math.MinInt64-o.MinorUnits) {
		return Money{}, fmt.Errorf("pos: add %d+%d %s: %w", m.MinorUnits, o.MinorUnits, m.Currency, ErrOverflow)
	}
	return Money{MinorUnits: m.MinorUnits + o.MinorUnits, Currency: m.Currency}, nil
}

// Sub returns m-o under the same rules as Add.
func (m Money) Sub(o Money) (Money, error) {
	if err := m.sameCurrency(o); err != nil {
		return Money{}, err
	}
	if (o.MinorUnits < 0 && m.MinorUnits > math.MaxInt64+o.MinorUnits) ||
		(o.MinorUnits > 0 && m.MinorUnits < math.MinInt64+o.MinorUnits) {
		return Money{}, fmt.Errorf("pos: sub %d-%d %s: %w", m.MinorUnits, o.MinorUnits, m.Currency, ErrOverflow)
	}
	return Money{MinorUnits: m.MinorUnits - o.MinorUnits, Currency: m.Currency}, nil
}

// Mul returns m*scalar exactly. Division is deliberately not offered;
// splitting an amount is a host policy, not kernel arithmetic.
func (m Money) Mul(scalar int64) (Money, error) {
	if m.MinorUnits == 0 || scalar == 0 {
		return Zero(m.Currency), nil
	}
	if (m.MinorUnits == math.MinInt64 && scalar == -1) ||
		(scalar == math.MinInt64 && m.MinorUnits == -1) {
		return Money{}, fmt.Errorf("pos: mul %d*%d %s: %w", m.MinorUnits, scalar, m.Currency, ErrOverflow)
	}
	p := m.MinorUnits * scalar
	if p/scalar != m.MinorUnits {
		return Money{}, fmt.Errorf("pos: mul %d*%d %s: %w", m.MinorUnits, scalar, m.Currency, ErrOverflow)
	}
	return Money{MinorUnits: p, Currency: m.Currency}, nil
}

// Negative reports whether the amount is below zero.
func (m Money) Negative() bool { return m.MinorUnits < 0 }

func (m Money) String() string {
	return fmt.Sprintf("%d %s", m.MinorUnits, m.Currency)
}
