// Package format turns raw payload fields into display strings.
// Every function is total: missing or non-numeric input renders as Placeholder.
package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/huangsam/auditview/core/payload"
)

// Placeholder is shown for values that cannot be formatted.
const Placeholder = "N/A"

// CurrencyUnit is appended to currency amounts.
const CurrencyUnit = "元"

// ScoreScale is the denominator shown for scores.
const ScoreScale = 10

// countDigits is the maximum number of fractional digits shown by Count.
const countDigits = 3

// number extracts a finite float from x. Strings are never parsed.
func number(x any) (float64, bool) {
	return payload.Float(x)
}

// Percentage renders a fraction as a percentage: 0.153 -> "15.3%".
func Percentage(x any, decimals int) string {
	f, ok := number(x)
	if !ok {
		return Placeholder
	}
	return scaledFixed(f, 100, decimals, "%")
}

// Points renders a value already in percent units: 15.3 -> "15.3%".
func Points(x any, decimals int) string {
	f, ok := number(x)
	if !ok {
		return Placeholder
	}
	return scaledFixed(f, 1, decimals, "%")
}

// Ratio renders a plain number with fixed decimals.
func Ratio(x any, decimals int) string {
	f, ok := number(x)
	if !ok {
		return Placeholder
	}
	return fixed(f, decimals)
}

// Count renders a thousands-grouped number with at most three fractional digits.
func Count(x any) string {
	f, ok := number(x)
	if !ok {
		return Placeholder
	}
	return grouped(f)
}

// Currency renders a grouped amount followed by the currency unit.
func Currency(x any) string {
	f, ok := number(x)
	if !ok {
		return Placeholder
	}
	return grouped(f) + " " + CurrencyUnit
}

// Scaled renders x divided by div as a grouped integer: 1234567, 10000 -> "123".
func Scaled(x any, div float64) string {
	f, ok := number(x)
	if !ok || div == 0 {
		return Placeholder
	}
	q := math.Round(f / div)
	if math.IsInf(q, 0) || math.IsNaN(q) {
		return Placeholder
	}
	if q >= math.MaxInt64 || q < math.MinInt64 {
		return grouped(q)
	}
	return humanize.Comma(int64(q))
}

// Rank renders an ordinal position: 3 -> "第 3 位".
func Rank(x any) string {
	if f, ok := number(x); ok {
		return fmt.Sprintf("第 %s 位", grouped(f))
	}
	if s := Text(x); s != "" {
		return fmt.Sprintf("第 %s 位", s)
	}
	return Placeholder
}

// Score renders x multiplied by scale out of ten: (0.75, 10, 1) -> "7.5/10".
func Score(x any, scale float64, decimals int) string {
	f, ok := number(x)
	if !ok {
		return Placeholder
	}
	return scaledFixed(f, scale, decimals, fmt.Sprintf("/%d", ScoreScale))
}

// Infer renders a value of unknown unit. Numbers strictly between 0 and 100 are
// treated as already-percent, other numbers are grouped counts and strings pass through.
func Infer(x any) string {
	return InferValue(x).Text
}

// Text returns the trimmed string form of a scalar, or "" when absent.
func Text(x any) string {
	return payload.Wrap(x).Text()
}

// TextOr returns Text(x), or fallback when it is empty.
func TextOr(x any, fallback string) string {
	if s := Text(x); s != "" {
		return s
	}
	return fallback
}

// Join renders the scalar items of a list separated by "、".
func Join(x any) string {
	return strings.Join(payload.Wrap(x).Strings(), "、")
}

// scaledFixed renders f*scale with a suffix, or Placeholder when the product overflows.
func scaledFixed(f, scale float64, decimals int, suffix string) string {
	v := f * scale
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return Placeholder
	}
	return fixed(v, decimals) + suffix
}

func fixed(f float64, decimals int) string {
	if decimals < 0 {
		decimals = 0
	}
	return strconv.FormatFloat(f, 'f', decimals, 64)
}

func grouped(f float64) string {
	p := math.Pow(10, countDigits)
	if r := math.Round(f*p) / p; !math.IsInf(r, 0) && !math.IsNaN(r) {
		f = r
	}
	if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		return humanize.Comma(int64(f))
	}
	return humanize.Commaf(f)
}
