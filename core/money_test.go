package core

import (
	"errors"
	"math"
	"testing"
)

// TestMoneyAddLaws verifies commutativity and associativity for
// matching currencies.
func TestMoneyAddLaws(t *testing.T) {
	a := Money{MinorUnits: 199, Currency: "USD"}
	b := Money{MinorUnits: 98, Currency: "USD"}
	c := Money{MinorUnits: -50, Currency: "USD"}

	ab, err := a.Add(b)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	ba, err := b.Add(a)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if ab != ba {
		t.Fatalf("a+b=%v b+a=%v", ab, ba)
	}

	abc1, _ := ab.Add(c)
	bc, _ := b.Add(c)
	abc2, _ := a.Add(bc)
	if abc1 != abc2 {
		t.Fatalf("(a+b)+c=%v a+(b+c)=%v", abc1, abc2)
	}
}

// TestMoneyCurrencyMismatch ensures mixed-currency arithmetic fails
// instead of guessing.
func TestMoneyCurrencyMismatch(t *testing.T) {
	usd := Money{MinorUnits: 100, Currency: "USD"}
	eur := Money{MinorUnits: 100, Currency: "EUR"}
	if _, err := usd.Add(eur); !errors.Is(err, ErrCurrencyMismatch) {
		t.Fatalf("Add: want ErrCurrencyMismatch, got %v", err)
	}
	if _, err := usd.Sub(eur); !errors.Is(err, ErrCurrencyMismatch) {
		t.Fatalf("Sub: want ErrCurrencyMismatch, got %v", err)
	}
}

// TestMoneyOverflow checks that every arithmetic path reports overflow
// rather than wrapping.
func TestMoneyOverflow(t *testing.T) {
	top := Money{MinorUnits: math.MaxInt64, Currency: "USD"}
	one := Money{MinorUnits: 1, Currency: "USD"}
	if _, err := top.Add(one); !errors.Is(err, ErrOverflow) {
		t.Fatalf("Add: want ErrOverflow, got %v", err)
	}

	bottom := Money{MinorUnits: math.MinInt64, Currency: "USD"}
	if _, err := bottom.Sub(one); !errors.Is(err, ErrOverflow) {
		t.Fatalf("Sub: want ErrOverflow, got %v", err)
	}
	if _, err := bottom.Mul(-1); !errors.Is(err, ErrOverflow) {
		t.Fatalf("Mul(-1): want ErrOverflow, got %v", err)
	}
	if _, err := top.Mul(2); !errors.Is(err, ErrOverflow) {
		t.Fatalf("Mul(2): want ErrOverflow, got %v", err)
	}
}

// TestMoneyMulExact verifies multiplication is exact for plain cases,
// including negatives and zero.
func TestMoneyMulExact(t *testing.T) {
	m := Money{MinorUnits: 99, Currency: "USD"}
	p, err := m.Mul(2)
	if err != nil || p.MinorUnits != 198 {
		t.Fatalf("99*2 = %v, %v", p, err)
	}
	n, err := m.Mul(-3)
	if err != nil || n.MinorUnits != -297 {
		t.Fatalf("99*-3 = %v, %v", n, err)
	}
	z, err := m.Mul(0)
	if err != nil || z.MinorUnits != 0 || z.Currency != "USD" {
		t.Fatalf("99*0 = %v, %v", z, err)
	}
}

// TestCurrencyCodeValidation covers the boundary shapes from the
// retail integration suite: 2 letters, 4 letters, embedded digit.
func TestCurrencyCodeValidation(t *testing.T) {
	for _, bad := range []string{"us", "USDX", "US1", "", "U$D"} {
		if IsValidCurrencyCode(bad) {
			t.Fatalf("code %q accepted", bad)
		}
	}
	for _, good := range []string{"USD", "usd", "Sgd", "XXX"} {
		if !IsValidCurrencyCode(good) {
			t.Fatalf("code %q rejected", good)
		}
	}
}

// TestNormalizeCurrency checks uppercase normalization on ingress.
func TestNormalizeCurrency(t *testing.T) {
	code, err := NormalizeCurrency("sgd")
	if err != nil || code != "SGD" {
		t.Fatalf("NormalizeCurrency(sgd) = %q, %v", code, err)
	}
	if _, err := NormalizeCurrency("SGDX"); !errors.Is(err, ErrValidation) {
		t.Fatalf("want ErrValidation, got %v", err)
	}
}

// TestStandardCurrencyTable pins the fixed membership set.
func TestStandardCurrencyTable(t *testing.T) {
	for _, code := range []string{"USD", "EUR", "JPY", "GBP", "CAD", "AUD", "jpy"} {
		if !IsStandardCurrency(code) {
			t.Fatalf("%q not standard", code)
		}
	}
	for _, code := range []string{"SGD", "BHD", "XXX", "US"} {
		if IsStandardCurrency(code) {
			t.Fatalf("%q reported standard", code)
		}
	}
}

// TestDecimalPlaces pins the shipped scale table and its default.
func TestDecimalPlaces(t *testing.T) {
	cases := map[string]uint8{
		"USD": 2, "EUR": 2, "GBP": 2, "CAD": 2, "AUD": 2,
		"JPY": 0, "BHD": 3, "KWD": 3,
		"SGD": 2, // not in the table, default applies
		"jpy": 0, // lookup normalizes
	}
	for code, want := range cases {
		if got := DecimalPlacesFor(code); got != want {
			t.Fatalf("DecimalPlacesFor(%s)=%d want %d", code, got, want)
		}
	}
}

// TestNewMoneyNormalizes verifies NewMoney validates and uppercases.
func TestNewMoneyNormalizes(t *testing.T) {
	m, err := NewMoney(850, "jpy")
	if err != nil || m.Currency != "JPY" || m.MinorUnits != 850 {
		t.Fatalf("NewMoney = %v, %v", m, err)
	}
	if _, err := NewMoney(1, "yen"); err != nil {
		t.Fatalf("3-letter code rejected: %v", err)
	}
	if _, err := NewMoney(1, "ye"); !errors.Is(err, ErrValidation) {
		t.Fatalf("want ErrValidation, got %v", err)
	}
}
