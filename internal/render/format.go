// Package render provides locale-aware number formatting shared by the
// CLI output surfaces.
package render

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer is the locale-aware message printer for number formatting.
// English locale keeps thousand separators consistent across machines.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// Display thresholds for abbreviated large-number output.
const (
	millionThreshold = 1_000_000
	billionThreshold = 1_000_000_000
)

// FormatNumber formats an integer with thousand separators.
func FormatNumber(n int64) string {
	return printer.Sprintf("%d", n)
}

// FormatFloat formats a float with the given precision and thousand
// separators in the integer part.
func FormatFloat(f float64, precision int) string {
	if precision <= 0 {
		return FormatNumber(int64(math.Round(f)))
	}
	format := fmt.Sprintf("%%.%df", precision)
	return printer.Sprintf(format, f)
}

// FormatTonnes renders a mass in tonnes CO2e for table output.
func FormatTonnes(t float64) string {
	return FormatFloat(t, 1) + " t"
}

// FormatEuro renders an amount as "€X,XXX.XX", with a minus sign ahead
// of the currency symbol for negative values.
func FormatEuro(amount float64) string {
	if amount < 0 {
		return "-€" + FormatFloat(math.Abs(amount), 2)
	}
	return "€" + FormatFloat(amount, 2)
}

// FormatPercent renders a ratio (0.025) as a percentage ("2.5%").
func FormatPercent(ratio float64) string {
	return fmt.Sprintf("%.1f%%", ratio*100)
}

// FormatLarge abbreviates values at million scale and above; smaller
// values use comma-separated integers.
func FormatLarge(n float64) string {
	if n >= billionThreshold {
		return fmt.Sprintf("~%.1f billion", n/billionThreshold)
	}
	if n >= millionThreshold {
		return fmt.Sprintf("~%.1f million", n/millionThreshold)
	}
	return FormatNumber(int64(math.Round(n)))
}
