//go:build unit

package output

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatCurrency(t *testing.T) {
	v := decimal.NewFromFloat(1234567.6)
	got := FormatCurrency(v)
	want := "₹12,34,568"
	if got != want {
		t.Errorf("FormatCurrency(%v) = %q, want %q", v, got, want)
	}
}

func TestFormatCompact(t *testing.T) {
	if got, want := FormatCompact(decimal.NewFromInt(25000000)), "₹2.50 Cr"; got != want {
		t.Errorf("FormatCompact = %q, want %q", got, want)
	}
}

func TestFormatPercentage(t *testing.T) {
	v := decimal.NewFromFloat(12.3456)
	got := FormatPercentage(v)
	want := "12.35%"
	if got != want {
		t.Errorf("FormatPercentage(%v) = %q, want %q", v, got, want)
	}
}

func TestFormatRate(t *testing.T) {
	if got, want := FormatRate(decimal.NewFromFloat(0.035)), "3.5%"; got != want {
		t.Errorf("FormatRate = %q, want %q", got, want)
	}
}
