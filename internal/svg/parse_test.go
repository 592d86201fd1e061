package svg

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"rapidsvg/internal/attr"
	"rapidsvg/internal/geom"
)

func TestParse_EndToEnd(t *testing.T) {
	const data = `<svg width="100" height="50"><line x1="0" y1="0" x2="10" y2="10" style="stroke-width:3;stroke:#00ff00"/></svg>`

	doc, err := Parse([]byte(data), WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)

	assert.Equal(t, 100.0, doc.Width)
	assert.Equal(t, 50.0, doc.Height)
	require.Len(t, doc.Lines, 1)
	assert.Empty(t, doc.Polygons)
	assert.Equal(t, geom.Line{X1: 0, Y1: 0, X2: 10, Y2: 10, Width: 3, Stroke: attr.Color{G: 1}}, doc.Lines[0])
}

func TestParse_LegacyDecoder(t *testing.T) {
	const data = `<svg><line style="stroke:#00ff00"/><polygon style="fill:red"/></svg>`

	doc, err := Parse([]byte(data), WithDecoder(attr.NewDecoder(attr.Legacy)))
	require.NoError(t, err)
	require.Len(t, doc.Lines, 1)
	require.Len(t, doc.Polygons, 1)
	assert.Equal(t, attr.Color{G: 240.0 / 255}, doc.Lines[0].Stroke)
	assert.Equal(t, attr.Color{R: 255}, doc.Polygons[0].Fill)
}

func TestParse_Defaults(t *testing.T) {
	doc, err := Parse([]byte(`<svg width="auto"><line x1="4"/><polygon/></svg>`))
	require.NoError(t, err)

	assert.Equal(t, 1.0, doc.Width)
	assert.Equal(t, 1.0, doc.Height)
	require.Len(t, doc.Lines, 1)
	assert.Equal(t, geom.Line{X1: 4, Width: 1}, doc.Lines[0])
	require.Len(t, doc.Polygons, 1)
	assert.Empty(t, doc.Polygons[0].Points)
	assert.Equal(t, attr.Color{}, doc.Polygons[0].Fill)
}

func TestParse_Polygon(t *testing.T) {
	const data = `<svg width="10mm" height="20"><polygon points="0,0 5,5 9,1 3" style="fill:blue;stroke:#zz0000"/></svg>`

	doc, err := Parse([]byte(data))
	require.NoError(t, err)
	assert.Equal(t, 10.0, doc.Width)
	require.Len(t, doc.Polygons, 1)
	assert.Equal(t, []geom.Point{{0, 0}, {5, 5}, {9, 1}}, doc.Polygons[0].Points)
	assert.Equal(t, attr.Color{B: 1}, doc.Polygons[0].Fill)
}

func TestParse_BreadthFirstGroups(t *testing.T) {
	const data = `<svg>
  <g>
    <line x1="3"/>
    <g><line x1="4"/></g>
  </g>
  <line x1="1"/>
  <rect width="5" height="5"/>
  <text><line x1="99"/></text>
  <line x1="2"/>
</svg>`

	doc, err := Parse([]byte(data))
	require.NoError(t, err)

	var got []float64
	for _, l := range doc.Lines {
		got = append(got, l.X1)
	}
	assert.Equal(t, []float64{1, 2, 3, 4}, got)
}

func TestParse_MissingRoot(t *testing.T) {
	for _, data := range []string{`<html><line/></html>`, `<?xml version="1.0"?><!-- nothing -->`} {
		_, err := Parse([]byte(data))
		assert.ErrorIs(t, err, ErrMissingRootElement, data)
	}
}

func TestParse_BadColorAbortsLoad(t *testing.T) {
	const data = `<svg>
  <line style="stroke:red"/>
  <line style="stroke:#zz0000"/>
  <polygon style="fill:green"/>
</svg>`

	doc, err := Parse([]byte(data))
	require.Error(t, err)
	assert.Nil(t, doc)
	assert.ErrorIs(t, err, attr.ErrInvalidHexDigit)
	assert.Contains(t, err.Error(), "#zz0000")

	var ee *ElementError
	require.True(t, errors.As(err, &ee))
	assert.Equal(t, "line", ee.Element)
	assert.Equal(t, 1, ee.Index)

	_, err = Parse([]byte(`<svg><polygon style="fill:notacolor"/></svg>`))
	assert.ErrorIs(t, err, attr.ErrInvalidColor)
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, "polygon", ee.Element)
}

func TestParse_DeclaredCharset(t *testing.T) {
	data := []byte("<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?>\n<svg width=\"7\"><desc>caf\xe9</desc><line x2=\"5\"/></svg>")

	doc, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, 7.0, doc.Width)
	require.Len(t, doc.Lines, 1)
	assert.Equal(t, 5.0, doc.Lines[0].X2)
}
