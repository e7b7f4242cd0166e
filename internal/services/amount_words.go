package services

import (
	"errors"
	"strings"

	"github.com/divan/num2words"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// englishPrinter formats numbers with English thousands grouping. Safe for
// concurrent use.
var englishPrinter = message.NewPrinter(language.English)

// maxWordableAmount bounds the words conversion. Totals at or beyond one
// billion dollars (or negative ones) take the literal fallback path.
var maxWordableAmount = decimal.NewFromInt(1_000_000_000)

// AmountInWords converts the integer part of a USD total into uppercase
// English words followed by a currency marker. Fractional cents are not
// separately worded. It never fails: when the conversion cannot run, it
// falls back to a literal numeric rendering such as
// "TOTAL AMOUNT: $27,642.00".
func AmountInWords(total decimal.Decimal) string {
	words, err := convertToWords(total)
	if err != nil {
		asFloat, _ := total.Float64()
		return englishPrinter.Sprintf("TOTAL AMOUNT: $%.2f", asFloat)
	}
	return words
}

func convertToWords(total decimal.Decimal) (string, error) {
	if total.IsNegative() || total.GreaterThanOrEqual(maxWordableAmount) {
		return "", errors.New("total outside wordable range")
	}

	words := strings.ToUpper(strings.TrimSpace(num2words.Convert(int(total.IntPart()))))
	if words == "" {
		return "", errors.New("empty word conversion")
	}

	// A conversion that spelled out zero cents collapses to plain dollars;
	// one that mentions no currency at all gets the marker appended.
	words = strings.ReplaceAll(words, " AND ZERO CENTS", " DOLLARS")
	if !strings.Contains(words, "CENTS") && !strings.Contains(words, "DOLLARS") {
		words += " DOLLARS"
	}
	return words, nil
}

// formatGroupedInt renders an integer with thousands separators, e.g. 4607
// becomes "4,607".
func formatGroupedInt(n int64) string {
	return englishPrinter.Sprintf("%d", n)
}

// FormatGroupedQuantity renders a quantity total with thousands separators.
func FormatGroupedQuantity(q decimal.Decimal) string {
	return formatGroupedInt(q.IntPart())
}

// FormatGroupedAmount renders a dollar total such as "$27,642.00".
func FormatGroupedAmount(v decimal.Decimal) string {
	asFloat, _ := v.Float64()
	return englishPrinter.Sprintf("$%.2f", asFloat)
}
