package attr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stroked struct {
	width  float64
	stroke Color
	sets   int
}

func (s *stroked) SetStrokeWidth(w float64) { s.width = w; s.sets++ }
func (s *stroked) SetStroke(c Color)        { s.stroke = c; s.sets++ }

type filled struct {
	fill Color
	sets int
}

func (f *filled) SetFill(c Color) { f.fill = c; f.sets++ }

func TestSplitStyle(t *testing.T) {
	got := SplitStyle(";stroke : red;;bogus; fill:#00ff00 ;a:b:c;")
	assert.Equal(t, []StyleEntry{
		{Name: "stroke", Value: "red"},
		{Name: "fill", Value: "#00ff00"},
		{Name: "a", Value: "b:c"},
	}, got)

	assert.Empty(t, SplitStyle(""))
	assert.Empty(t, SplitStyle(";;;"))
}

func TestParseStyle_TrimsNameAndValue(t *testing.T) {
	// "# abc " is six characters untrimmed; trimmed it is the legacy placeholder
	f := &filled{fill: Color{1, 1, 1}}
	require.NoError(t, ParseStyle("fill:# abc ", f))
	assert.Equal(t, Color{}, f.fill)

	s := &stroked{width: 1}
	require.NoError(t, ParseStyle(" stroke : red ; stroke-width :\t2 ", s))
	assert.Equal(t, Color{R: 1}, s.stroke)
	assert.Equal(t, 2.0, s.width)
	assert.Equal(t, 2, s.sets)
}

func TestParseStyle_StrokeTarget(t *testing.T) {
	s := &stroked{width: 1}
	require.NoError(t, ParseStyle("stroke-width:2.5;stroke:#ff0000", s))
	assert.Equal(t, 2.5, s.width)
	assert.Equal(t, Color{1, 0, 0}, s.stroke)
}

func TestParseStyle_LaterEntriesOverride(t *testing.T) {
	s := &stroked{width: 1}
	require.NoError(t, ParseStyle("stroke:red;stroke-width:4;stroke:blue;stroke-width:2", s))
	assert.Equal(t, 2.0, s.width)
	assert.Equal(t, Color{0, 0, 1}, s.stroke)
}

func TestParseStyle_UnknownPropertiesAreIgnored(t *testing.T) {
	s := &stroked{width: 1}
	require.NoError(t, ParseStyle("opacity:0.5", s))
	require.NoError(t, ParseStyle("", s))
	require.NoError(t, ParseStyle("no colon here;;", s))
	assert.Equal(t, 1.0, s.width)
	assert.Zero(t, s.sets)
}

func TestParseStyle_PropertyTargetCannotAccept(t *testing.T) {
	f := &filled{}
	// stroke is not decoded for a fill-only target, so a bad literal is harmless
	require.NoError(t, ParseStyle("stroke:#zz0000;stroke-width:9", f))
	assert.Zero(t, f.sets)

	s := &stroked{width: 1}
	require.NoError(t, ParseStyle("fill:notacolor", s))
	assert.Zero(t, s.sets)
}

func TestParseStyle_Fill(t *testing.T) {
	f := &filled{}
	require.NoError(t, ParseStyle("fill:yellow", f))
	assert.Equal(t, Color{1, 1, 0}, f.fill)
}

func TestParseStyle_PermissiveWidth(t *testing.T) {
	tests := []struct {
		style string
		want  float64
	}{
		{"stroke-width:3px", 3},
		{"stroke-width:abc", 0},
		{"stroke-width:", 0},
		{"stroke-width: 1.5e1", 15},
	}
	for _, tt := range tests {
		t.Run(tt.style, func(t *testing.T) {
			s := &stroked{width: 1}
			require.NoError(t, ParseStyle(tt.style, s))
			assert.Equal(t, tt.want, s.width)
		})
	}
}

func TestParseStyle_ColorErrorPropagates(t *testing.T) {
	s := &stroked{width: 1}
	err := ParseStyle("stroke-width:2;stroke:#zz0000;stroke-width:7", s)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidHexDigit)

	var se *StyleError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "stroke", se.Property)
	assert.Equal(t, "#zz0000", se.Value)
	assert.Contains(t, err.Error(), "#zz0000")

	// entries before the failure stay applied, entries after it are not reached
	assert.Equal(t, 2.0, s.width)

	err = ParseStyle("fill:notacolor", &filled{})
	assert.ErrorIs(t, err, ErrInvalidColor)
	assert.Contains(t, err.Error(), "notacolor")
}

func TestParseStyle_Idempotent(t *testing.T) {
	const style = "stroke-width:0.75; stroke:#1a2b3c ;opacity:1"
	a, b := &stroked{width: 1}, &stroked{width: 1}
	require.NoError(t, ParseStyle(style, a))
	require.NoError(t, ParseStyle(style, b))
	assert.Equal(t, a, b)
}

func TestDecoder_ParseStyleUsesMode(t *testing.T) {
	s := &stroked{}
	require.NoError(t, NewDecoder(Legacy).ParseStyle("stroke:#ff0000", s))
	assert.Equal(t, 240.0/255, s.stroke.R)

	require.NoError(t, NewDecoder(Standard).ParseStyle("stroke:#ff0000", s))
	assert.Equal(t, 1.0, s.stroke.R)
}
