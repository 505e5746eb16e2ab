package format

import (
	"fmt"
	"math"
	"time"
)

// Currency renders an integer cent amount as a display string, e.g. 1999 ->
// "$19.99". Amounts are non-negative everywhere in the schema but a sign is
// handled anyway so a bad row can't render as "$-1.-50".
func Currency(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}

// DollarsToCents converts a form amount to the stored integer representation.
func DollarsToCents(dollars float64) int64 {
	return int64(math.Round(dollars * 100))
}

// CentsToDollars is the exact inverse used when pre-populating edit forms.
func CentsToDollars(cents int64) float64 {
	return float64(cents) / 100
}

// Date renders a calendar date in ISO form for storage and API payloads.
func Date(t time.Time) string {
	return t.Format("2006-01-02")
}
