package core

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// Money is an amount in hundredths of the major currency unit
// (10000 == 100.00). Integer storage keeps budgets free of float drift.
type Money int64

// minorDigits is the number of decimal places stored by Money.
const minorDigits int32 = 2

// DefaultPriceDecimals is the number of major-unit decimal places a computed
// bid is rounded to (0.1 of the major unit, i.e. 10 hundredths).
const DefaultPriceDecimals int32 = 1

// Decimal returns m in major units.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(int64(m), -minorDigits)
}

// String formats m in major units without trailing zeros ("2.1", "2", "0.75").
func (m Money) String() string {
	return m.Decimal().String()
}

// MoneyFromDecimal converts a major-unit amount to Money. Amounts finer than
// one hundredth are rejected rather than truncated.
func MoneyFromDecimal(d decimal.Decimal) (Money, error) {
	minor := d.Shift(minorDigits)
	if !minor.IsInteger() {
		return 0, fmt.Errorf("amount %s has more than %d decimal places", d.String(), minorDigits)
	}
	if minor.GreaterThan(maxMinor) || minor.LessThan(minMinor) {
		return 0, fmt.Errorf("amount %s is out of range", d.String())
	}
	return Money(minor.IntPart()), nil
}

// ParseMoney parses a major-unit decimal string such as "2.25".
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", s, err)
	}
	return MoneyFromDecimal(d)
}

var (
	maxMinor = decimal.NewFromInt(math.MaxInt64)
	minMinor = decimal.NewFromInt(math.MinInt64)
)

// Quantize rounds m to the given number of major-unit decimal places,
// half away from zero. 0.85 quantized to 1 decimal is 0.9. Amounts that would
// round past the Money range are rounded toward zero instead.
func Quantize(m Money, decimals int32) Money {
	if decimals >= minorDigits {
		return m
	}
	rounded := m.Decimal().Round(decimals).Shift(minorDigits)
	if rounded.GreaterThan(maxMinor) || rounded.LessThan(minMinor) {
		rounded = m.Decimal().RoundDown(decimals).Shift(minorDigits)
	}
	return Money(rounded.IntPart())
}

// AddMoney returns a+b and whether the sum fits in Money.
func AddMoney(a, b Money) (Money, bool) {
	sum := a + b
	if (b > 0 && sum < a) || (b < 0 && sum > a) {
		return 0, false
	}
	return sum, true
}

// Quantum returns the smallest amount representable after quantization.
func Quantum(decimals int32) Money {
	if decimals >= minorDigits {
		return 1
	}
	return Money(decimal.New(1, minorDigits-decimals).IntPart())
}

// Affordable reports whether an organization holding budget can pay amount.
func Affordable(amount, budget Money) bool {
	return amount <= budget
}
