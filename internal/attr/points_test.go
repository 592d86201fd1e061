package attr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePoints(t *testing.T) {
	tests := []struct {
		name   string
		points string
		want   [][2]float64
	}{
		{"pairs", "10,20 30,40", [][2]float64{{10, 20}, {30, 40}}},
		{"dangling x", "10,20,30", [][2]float64{{10, 20}}},
		{"padded", "  10 , 20  ", [][2]float64{{10, 20}}},
		{"last token without separator", "0,0 5,5 9,1", [][2]float64{{0, 0}, {5, 5}, {9, 1}}},
		{"spaces only", "1 2 3 4", [][2]float64{{1, 2}, {3, 4}}},
		{"mixed whitespace", "1\t2\n3\r\n4", [][2]float64{{1, 2}, {3, 4}}},
		{"coalesced separators", ",,1,,, 2 ,", [][2]float64{{1, 2}}},
		{"garbage tokens", "a,b 1.5x,-2", [][2]float64{{0, 0}, {1.5, -2}}},
		{"exponent", "1e2,-3.5E-1", [][2]float64{{100, -0.35}}},
		{"duplicates kept", "1,1 1,1", [][2]float64{{1, 1}, {1, 1}}},
		{"empty", "", [][2]float64{}},
		{"single token", "42", [][2]float64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParsePoints(tt.points))
		})
	}
}

func TestParsePoints_CountIsHalfTheTokens(t *testing.T) {
	for n := 0; n < 9; n++ {
		s := ""
		for i := 0; i < n; i++ {
			s += "7 "
		}
		assert.Len(t, ParsePoints(s), n/2)
	}
}
