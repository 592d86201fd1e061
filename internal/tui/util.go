package tui

import (
	"math"
)

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// clipSegment clips a segment to the rectangle [0,w]x[0,h] (Liang-Barsky).
func clipSegment(x0, y0, x1, y1, w, h float64) (float64, float64, float64, float64, bool) {
	t0, t1 := 0.0, 1.0
	dx, dy := x1-x0, y1-y0
	for _, e := range [4][2]float64{{-dx, x0}, {dx, w - x0}, {-dy, y0}, {dy, h - y0}} {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return 0, 0, 0, 0, false
			}
			t0 = math.Max(t0, r)
		} else {
			if r < t0 {
				return 0, 0, 0, 0, false
			}
			t1 = math.Min(t1, r)
		}
	}
	return x0 + t0*dx, y0 + t0*dy, x0 + t1*dx, y0 + t1*dy, true
}

// toGrid rounds v after limiting it to [-1, limit], so far off-screen
// coordinates convert to int safely.
func toGrid(v float64, limit int) int {
	return int(math.Round(math.Max(-1, math.Min(v, float64(limit)))))
}
