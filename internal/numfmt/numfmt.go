// Package numfmt formats scores for display.
package numfmt

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Score groups digits: 12345 → "12,345".
func Score(n int) string {
	return printer.Sprintf("%d", n)
}

// Countdown renders a grace countdown as seconds with one decimal.
func Countdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}
