// Package money formats and parses the currency amounts shown across the
// application. Amounts are stored as plain numerics; rendering always uses a
// fixed symbol prefix with two decimals.
package money

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Symbol is the currency prefix used for all rendered amounts.
const Symbol = "€"

// ErrInvalidAmount indicates input that does not parse to a finite number.
var ErrInvalidAmount = errors.New("money: invalid amount")

var groupedPrinter = message.NewPrinter(language.English)

// Format renders an amount as a symbol-prefixed two-decimal string, e.g.
// 10 -> "€10.00". No thousands grouping; row-level totals round-trip through
// Parse and numeric sort comparisons.
func Format(amount float64) string {
	return fmt.Sprintf("%s%.2f", Symbol, amount)
}

// FormatGrouped renders an amount with thousands separators for dashboard
// figures, e.g. 1200 -> "€1,200.00".
func FormatGrouped(amount float64) string {
	return Symbol + groupedPrinter.Sprintf("%.2f", amount)
}

// Parse extracts a numeric amount from user or rendered input. All characters
// except digits and separators are stripped, a decimal comma is normalised to
// a period, and anything that still fails to parse to a finite number is
// rejected with ErrInvalidAmount.
func Parse(input string) (float64, error) {
	var b strings.Builder
	for _, r := range input {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' || r == '-' {
			b.WriteRune(r)
		}
	}
	s := b.String()
	if s == "" {
		return 0, ErrInvalidAmount
	}
	if strings.Contains(s, ",") {
		if strings.Contains(s, ".") {
			// Both present: commas are thousands separators.
			s = strings.ReplaceAll(s, ",", "")
		} else {
			s = strings.ReplaceAll(s, ",", ".")
		}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrInvalidAmount
	}
	return v, nil
}
