package utils

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// CurrencySymbol is the marker placed in front of every formatted amount
const CurrencySymbol = "$"

// DateLayout is the DD/MM/YYYY layout used on invoices
const DateLayout = "02/01/2006"

// leadingNumber matches the numeric prefix a form field may start with
var leadingNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// FormatCurrency formats an amount as "$ 1.234,50".
// Negative amounts carry the sign in front of the marker: "-$ 12,00".
func FormatCurrency(amount float64) string {
	return FormatCurrencySymbol(CurrencySymbol, amount)
}

// FormatCurrencySymbol formats an amount with dot-grouped thousands and a
// decimal comma, prefixed with the given currency marker and a space
func FormatCurrencySymbol(symbol string, amount float64) string {
	amount = finite(amount)
	fixed := decimal.NewFromFloat(amount).Abs().StringFixed(2)
	intPart, decPart, _ := strings.Cut(fixed, ".")

	sign := ""
	if amount < 0 && fixed != "0.00" {
		sign = "-"
	}

	return sign + symbol + " " + groupThousands(intPart) + "," + decPart
}

// groupThousands inserts a dot every three digits from the right
func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// FormatToday returns the current local date as DD/MM/YYYY
func FormatToday() string {
	return FormatDate(time.Now())
}

// FormatDate formats t as DD/MM/YYYY
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a DD/MM/YYYY string in UTC
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.UTC)
}

// FormatQuantity renders a quantity as its plain shortest decimal form
func FormatQuantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}

// FormatRate renders a percentage with two decimals and a decimal comma
func FormatRate(rate float64) string {
	return strings.Replace(decimal.NewFromFloat(finite(rate)).StringFixed(2), ".", ",", 1)
}

// ParseNumber reads the numeric prefix of a form value.
// Anything that does not start with a finite number yields 0.
func ParseNumber(s string) float64 {
	match := leadingNumber.FindString(strings.TrimSpace(s))
	if match == "" {
		return 0
	}

	v, err := strconv.ParseFloat(match, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// finite maps NaN and infinities to zero
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
