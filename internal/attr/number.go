// Package attr decodes SVG presentation attribute text: style strings, color
// literals, point lists and the loosely encoded numbers inside them.
package attr

import (
	"strings"

	pstrconv "github.com/tdewolff/parse/v2/strconv"
)

const leadingSpace = " \t\n\r\f\v"

// ParseNumber coerces s into a float the way C atof does: leading whitespace is
// skipped, the longest numeric prefix is consumed and anything after it is
// ignored. Text without a numeric prefix yields 0. Unlike atof, hex and
// inf/nan spellings are not numbers here: "0x10" yields 0, "inf" yields 0.
// Overflowing exponents such as "1e400" give +Inf.
func ParseNumber(s string) float64 {
	return NumberOr(s, 0)
}

// NumberOr is ParseNumber returning def when s has no numeric prefix.
func NumberOr(s string, def float64) float64 {
	s = strings.TrimLeft(s, leadingSpace)
	f, n := pstrconv.ParseFloat([]byte(s))
	if n == 0 {
		return def
	}
	return f
}
