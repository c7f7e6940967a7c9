package util

import (
	"strconv"
	"strings"
)

// FormatMonto renders a monetary amount with thousand separators, or "N/A"
// when the amount is absent. Absent is not the same as zero.
func FormatMonto(v *float64) string {
	if v == nil {
		return "N/A"
	}
	s := strconv.FormatFloat(*v, 'f', -1, 64)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, d := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	out := b.String()
	if frac != "" {
		out += "." + frac
	}
	if neg {
		return "-$" + out
	}
	return "$" + out
}

// Preview truncates long text for one-line display.
func Preview(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
