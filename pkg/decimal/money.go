package decimal

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	lakh  = decimal.NewFromInt(100000)
	crore = decimal.NewFromInt(10000000)
)

// Money represents a rupee amount with decimal precision
type Money struct {
	decimal.Decimal
}

// NewMoneyFromDecimal creates a new Money instance from a decimal.Decimal
func NewMoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d}
}

// String returns the amount with two decimals
func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}

// Format renders whole rupees with Indian digit grouping, e.g. ₹12,34,567.
func (m Money) Format() string {
	rounded := m.Decimal.Round(0)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Neg()
	}
	return sign + "₹" + groupIndian(rounded.String())
}

// Compact renders large amounts in lakhs or crores (₹1.21 L, ₹2.50 Cr) and
// smaller ones as Format does.
func (m Money) Compact() string {
	abs := m.Decimal.Abs()
	switch {
	case abs.GreaterThanOrEqual(crore):
		return fmt.Sprintf("₹%s Cr", m.Decimal.Div(crore).StringFixed(2))
	case abs.GreaterThanOrEqual(lakh):
		return fmt.Sprintf("₹%s L", m.Decimal.Div(lakh).StringFixed(2))
	}
	return m.Format()
}

// groupIndian inserts separators after the last three digits and then every two.
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	var parts []string
	for len(head) > 2 {
		parts = append([]string{head[len(head)-2:]}, parts...)
		head = head[:len(head)-2]
	}
	if head != "" {
		parts = append([]string{head}, parts...)
	}
	return strings.Join(append(parts, tail), ",")
}
