package statement

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// printer renders amounts with ko-KR thousands grouping.
var printer = message.NewPrinter(language.Korean)

// FormatAmount formats a raw DART amount string for table display.
// Blank and "-" values stay the placeholder "-"; values that do not parse as
// a number pass through unchanged; everything else gets thousands grouping
// with no forced decimal places.
func FormatAmount(raw string) string {
	if raw == "" || raw == "-" {
		return "-"
	}

	num, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
	if err != nil {
		return raw
	}

	return groupNumber(num)
}

// ParseAmount converts a raw amount string to a number for charting.
// Blank, "-", and non-numeric values normalize to 0.
func ParseAmount(raw string) float64 {
	if raw == "" || raw == "-" {
		return 0
	}

	num, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
	if err != nil {
		return 0
	}
	return num
}

// groupNumber applies ko-KR grouping. DART amounts are integral KRW, so the
// integer path covers real data; the decimal path keeps fractional inputs
// readable without padding zeros.
func groupNumber(num float64) string {
	if num == math.Trunc(num) && math.Abs(num) < 1e15 {
		return printer.Sprintf("%d", int64(num))
	}
	return printer.Sprintf("%v", number.Decimal(num, number.MaxFractionDigits(3)))
}
