package utils

import (
	"math"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   string
	}{
		{name: "zero", amount: 0, want: "$ 0,00"},
		{name: "grouped with one decimal", amount: 1234.5, want: "$ 1.234,50"},
		{name: "negative", amount: -12, want: "-$ 12,00"},
		{name: "below a thousand", amount: 495, want: "$ 495,00"},
		{name: "exact thousands", amount: 6000, want: "$ 6.000,00"},
		{name: "millions", amount: 1234567.891, want: "$ 1.234.567,89"},
		{name: "rounds half up", amount: 0.125, want: "$ 0,13"},
		{name: "negative rounding to zero is unsigned", amount: -0.001, want: "$ 0,00"},
		{name: "negative grouped", amount: -6495, want: "-$ 6.495,00"},
		{name: "NaN treated as zero", amount: math.NaN(), want: "$ 0,00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCurrency(tt.amount))
		})
	}
}

func TestFormatCurrency_Pattern(t *testing.T) {
	positive := regexp.MustCompile(`^\$ \d{1,3}(\.\d{3})*,\d{2}$`)
	negative := regexp.MustCompile(`^-\$ \d{1,3}(\.\d{3})*,\d{2}$`)

	amounts := []float64{0.01, 1, 12.3, 999.99, 1000, 65432.1, 1e9 + 0.5, 98765432.25}
	for _, a := range amounts {
		assert.Regexp(t, positive, FormatCurrency(a), "amount %v", a)
		assert.Regexp(t, negative, FormatCurrency(-a), "amount %v", -a)
	}
}

func TestFormatCurrencySymbol(t *testing.T) {
	assert.Equal(t, "€ 1.000,00", FormatCurrencySymbol("€", 1000))
	assert.Equal(t, "-€ 0,50", FormatCurrencySymbol("€", -0.5))
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2025, time.March, 7, 15, 4, 5, 0, time.Local)
	assert.Equal(t, "07/03/2025", FormatDate(d))

	today := FormatToday()
	assert.Regexp(t, `^\d{2}/\d{2}/\d{4}$`, today)

	parsed, err := ParseDate(today)
	require.NoError(t, err)
	assert.Equal(t, today, FormatDate(parsed))
}

func TestParseDate_Invalid(t *testing.T) {
	_, err := ParseDate("2025-03-07")
	assert.Error(t, err)
}

func TestFormatQuantity(t *testing.T) {
	assert.Equal(t, "80", FormatQuantity(80))
	assert.Equal(t, "1.5", FormatQuantity(1.5))
	assert.Equal(t, "12000", FormatQuantity(12000))
	assert.Equal(t, "0", FormatQuantity(0))
}

func TestFormatRate(t *testing.T) {
	assert.Equal(t, "8,25", FormatRate(8.25))
	assert.Equal(t, "0,00", FormatRate(0))
	assert.Equal(t, "19,00", FormatRate(19))
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"80", 80},
		{" 75 ", 75},
		{"8.25", 8.25},
		{"-3", -3},
		{".5", 0.5},
		{"12abc", 12},
		{"1e3", 1000},
		{"", 0},
		{"abc", 0},
		{"NaN", 0},
		{"Infinity", 0},
		{"1e400", 0},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseNumber(tt.in))
		})
	}
}
