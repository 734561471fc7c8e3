// Package format turns pipeline numbers into display strings.
package format

import (
	"math"
	"time"

	"github.com/dustin/go-humanize"
)

// Currency renders a whole-peso amount with thousands separators, e.g.
// "$1,250,000".
func Currency(v float64) string {
	if v < 0 {
		return "-$" + humanize.Commaf(math.Round(-v))
	}
	return "$" + humanize.Commaf(math.Round(v))
}

// Percent renders a 0..100 share with at most one decimal.
func Percent(v float64) string {
	return humanize.FtoaWithDigits(v, 1) + "%"
}

// Decimal renders v with at most one decimal, e.g. ratings and day counts.
func Decimal(v float64) string {
	return humanize.FtoaWithDigits(v, 1)
}

// Count renders an integer count with thousands separators.
func Count(n int) string {
	return humanize.Comma(int64(n))
}

// Ago renders t relative to now ("3 days ago", "2 hours from now").
// A zero time renders as "never".
func Ago(t, now time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

// Date renders a calendar day.
func Date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

// DatePtr is Date for optional dates.
func DatePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return Date(*t)
}
