package services

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAmountInWords_UppercaseWithCurrencyMarker(t *testing.T) {
	words := AmountInWords(decimal.RequireFromString("27642.00"))

	assert.Equal(t, strings.ToUpper(words), words, "words must be uppercase")
	assert.True(t, strings.Contains(words, "DOLLARS") || strings.Contains(words, "CENTS"),
		"words must carry a currency marker: %q", words)
	assert.Contains(t, words, "THOUSAND")
	assert.NotContains(t, words, "ZERO CENTS")
}

func TestAmountInWords_SmallAmount(t *testing.T) {
	words := AmountInWords(decimal.NewFromInt(5))
	assert.Contains(t, words, "FIVE")
	assert.True(t, strings.HasSuffix(words, "DOLLARS"), "got %q", words)
}

func TestAmountInWords_IgnoresFractionalCents(t *testing.T) {
	whole := AmountInWords(decimal.NewFromInt(120))
	fractional := AmountInWords(decimal.RequireFromString("120.75"))
	assert.Equal(t, whole, fractional, "cents are not separately worded")
}

func TestAmountInWords_FallbackForNegative(t *testing.T) {
	words := AmountInWords(decimal.RequireFromString("-12.50"))
	assert.Contains(t, words, "TOTAL AMOUNT: $")
	assert.Contains(t, words, "-12.50")
}

func TestAmountInWords_FallbackBeyondWordableRange(t *testing.T) {
	words := AmountInWords(decimal.NewFromInt(2_500_000_000))
	assert.Contains(t, words, "TOTAL AMOUNT: $")
	assert.Contains(t, words, "2,500,000,000.00", "fallback keeps thousands grouping")
}

func TestFormatGroupedQuantity(t *testing.T) {
	assert.Equal(t, "4,607", FormatGroupedQuantity(decimal.NewFromInt(4607)))
	assert.Equal(t, "0", FormatGroupedQuantity(decimal.Zero))
}

func TestFormatGroupedAmount(t *testing.T) {
	assert.Equal(t, "$27,642.00", FormatGroupedAmount(decimal.RequireFromString("27642")))
	assert.Equal(t, "$0.00", FormatGroupedAmount(decimal.Zero))
}
