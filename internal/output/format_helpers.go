package output

import (
	"strconv"

	money "github.com/rpgo/corpus-projector/pkg/decimal"
	"github.com/shopspring/decimal"
)

// FormatCurrency formats a rupee amount with Indian digit grouping and no
// fraction digits.
func FormatCurrency(amount decimal.Decimal) string { return money.NewMoneyFromDecimal(amount).Format() }

// FormatCompact formats a rupee amount in lakhs or crores.
func FormatCompact(amount decimal.Decimal) string { return money.NewMoneyFromDecimal(amount).Compact() }

// FormatPercentage formats a decimal as a percentage with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(2) + "%" }

// FormatRate formats a fraction (0.03) as a percentage with one decimal (3.0%).
func FormatRate(fraction decimal.Decimal) string {
	return fraction.Mul(decimalHundred).StringFixed(1) + "%"
}

func intToString(i int) string { return strconv.Itoa(i) }

func boolToString(b bool) string { return strconv.FormatBool(b) }

func safeAgeString(age *int) string {
	if age == nil {
		return ""
	}
	return intToString(*age)
}

var decimalHundred = decimal.NewFromInt(100)
