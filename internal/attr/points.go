package attr

import (
	"strings"
)

func isPointSeparator(r rune) bool {
	switch r {
	case ',', ' ', '\t', '\r', '\n':
		return true
	}
	return false
}

// ParsePoints reads a points attribute into (x, y) pairs. Runs of separators
// count as one, every token is coerced with ParseNumber and a trailing unpaired
// token is dropped.
func ParsePoints(points string) [][2]float64 {
	tokens := strings.FieldsFunc(points, isPointSeparator)
	pts := make([][2]float64, 0, len(tokens)/2)
	for i := 0; i+1 < len(tokens); i += 2 {
		pts = append(pts, [2]float64{ParseNumber(tokens[i]), ParseNumber(tokens[i+1])})
	}
	return pts
}
