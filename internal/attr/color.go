package attr

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an RGB triple without alpha. Decoded hex colors are always within
// [0,1]; legacy named colors may carry 255 magnitudes.
type Color struct {
	R float64 `yaml:"r"`
	G float64 `yaml:"g"`
	B float64 `yaml:"b"`
}

// Colorful returns c clamped into the unit cube.
func (c Color) Colorful() colorful.Color {
	return colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped()
}

// Hex formats c as #rrggbb.
func (c Color) Hex() string {
	return c.Colorful().Hex()
}

// NRGBA converts c into an opaque image color.
func (c Color) NRGBA() color.NRGBA {
	r, g, b := c.Colorful().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}
}

func (c Color) String() string {
	return fmt.Sprintf("(%g, %g, %g)", c.R, c.G, c.B)
}

// Mode selects the hex and named color arithmetic.
type Mode int

const (
	// Standard decodes #RRGGBB pairs as (16*hi+lo)/255 and named colors into [0,1].
	Standard Mode = iota
	// Legacy decodes pairs as (15*hi+lo)/255 and keeps 255 magnitudes for named
	// colors.
	Legacy
)

func (m Mode) String() string {
	if m == Legacy {
		return "legacy"
	}
	return "standard"
}

// named colors in 0..255 magnitudes, looked up case-sensitively.
var namedColors = map[string][3]float64{
	"black":  {0, 0, 0},
	"red":    {255, 0, 0},
	"green":  {0, 255, 0},
	"blue":   {0, 0, 255},
	"yellow": {255, 255, 0},
}

// Decoder turns color literals into Colors.
type Decoder struct {
	mode Mode
}

func NewDecoder(mode Mode) *Decoder {
	return &Decoder{mode: mode}
}

var defaultDecoder = NewDecoder(Standard)

// Decode decodes literal with the Standard arithmetic.
func Decode(literal string) (Color, error) {
	return defaultDecoder.Decode(literal)
}

func (d *Decoder) Mode() Mode {
	return d.mode
}

// Decode accepts, in order of precedence, a named color, "#" followed by six hex
// digits, and the five character "# xxx" placeholder which maps to black.
func (d *Decoder) Decode(literal string) (Color, error) {
	if rgb, ok := namedColors[literal]; ok {
		if d.mode == Legacy {
			return Color{R: rgb[0], G: rgb[1], B: rgb[2]}, nil
		}
		return Color{R: rgb[0] / 255, G: rgb[1] / 255, B: rgb[2] / 255}, nil
	}

	switch {
	case len(literal) == 7 && literal[0] == '#':
		var ch [3]float64
		for i := range ch {
			v, err := d.hexPair(literal, literal[1+2*i], literal[2+2*i])
			if err != nil {
				return Color{}, err
			}
			ch[i] = v
		}
		return Color{R: ch[0], G: ch[1], B: ch[2]}, nil
	case len(literal) == 5 && literal[0] == '#' && literal[1] == ' ':
		return Color{}, nil
	}
	return Color{}, &ColorError{Literal: literal, Err: ErrInvalidColor}
}

func (d *Decoder) hexPair(literal string, hi, lo byte) (float64, error) {
	h, ok := hexNibble(hi)
	if !ok {
		return 0, &ColorError{Literal: literal, Char: hi, Err: ErrInvalidHexDigit}
	}
	l, ok := hexNibble(lo)
	if !ok {
		return 0, &ColorError{Literal: literal, Char: lo, Err: ErrInvalidHexDigit}
	}

	mul := 16
	if d.mode == Legacy {
		mul = 15
	}
	v := float64(mul*h+l) / 255
	if v < 0 || v > 1 {
		return 0, &ColorError{Literal: literal, Err: fmt.Errorf("%w: channel %g out of range", ErrInvalidColor, v)}
	}
	return v, nil
}

func hexNibble(c byte) (int, bool) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), true
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10, true
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10, true
	}
	return 0, false
}
