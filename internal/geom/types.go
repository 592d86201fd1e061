package geom

import (
	"math"

	"rapidsvg/internal/attr"
)

// Point is an (x, y) pair in canvas units.
type Point = [2]float64

type BBox struct {
	MinX float64 `yaml:"min_x"`
	MinY float64 `yaml:"min_y"`
	MaxX float64 `yaml:"max_x"`
	MaxY float64 `yaml:"max_y"`
}

// Width and Height are zero for an empty or degenerate box.
func (b BBox) Width() float64  { return b.MaxX - b.MinX }
func (b BBox) Height() float64 { return b.MaxY - b.MinY }

// Valid reports whether b spans a non-zero area.
func (b BBox) Valid() bool {
	return b.Width() > 0 && b.Height() > 0
}

// bboxBuilder grows a box one vertex at a time.
type bboxBuilder struct {
	box BBox
	n   int
}

func (bb *bboxBuilder) add(x, y float64) {
	bb.n++
	if bb.n == 1 {
		bb.box = BBox{MinX: x, MinY: y, MaxX: x, MaxY: y}
		return
	}
	if x < bb.box.MinX {
		bb.box.MinX = x
	}
	if y < bb.box.MinY {
		bb.box.MinY = y
	}
	if x > bb.box.MaxX {
		bb.box.MaxX = x
	}
	if y > bb.box.MaxY {
		bb.box.MaxY = y
	}
}

// Line is a straight stroked segment.
type Line struct {
	X1     float64    `yaml:"x1"`
	Y1     float64    `yaml:"y1"`
	X2     float64    `yaml:"x2"`
	Y2     float64    `yaml:"y2"`
	Width  float64    `yaml:"width"`
	Stroke attr.Color `yaml:"stroke"`
}

// NewLine returns a line with the default 1.0 width and black stroke.
func NewLine() Line {
	return Line{Width: 1}
}

// SetStrokeWidth stores w; negative widths become 0, non-finite ones are
// ignored.
func (l *Line) SetStrokeWidth(w float64) {
	if math.IsInf(w, 0) || math.IsNaN(w) {
		return
	}
	if w < 0 {
		w = 0
	}
	l.Width = w
}

func (l *Line) SetStroke(c attr.Color) { l.Stroke = c }

// Polygon is a closed filled outline. Points keep parse order and may repeat.
type Polygon struct {
	Points []Point    `yaml:"points,flow"`
	Fill   attr.Color `yaml:"fill"`
}

func (p *Polygon) SetFill(c attr.Color) { p.Fill = c }

// Document is the parsed content of one SVG file.
type Document struct {
	Width    float64   `yaml:"width"`
	Height   float64   `yaml:"height"`
	Lines    []Line    `yaml:"lines"`
	Polygons []Polygon `yaml:"polygons"`
}

// NewDocument returns an empty 1x1 document.
func NewDocument() *Document {
	return &Document{Width: 1, Height: 1}
}

// Shapes is the number of lines and polygons.
func (d *Document) Shapes() int {
	return len(d.Lines) + len(d.Polygons)
}

// Bounds is the extent of all line endpoints and polygon vertices.
func (d *Document) Bounds() (BBox, bool) {
	var bb bboxBuilder
	for _, l := range d.Lines {
		bb.add(l.X1, l.Y1)
		bb.add(l.X2, l.Y2)
	}
	for _, p := range d.Polygons {
		for _, pt := range p.Points {
			bb.add(pt[0], pt[1])
		}
	}
	return bb.box, bb.n > 0
}

// ViewBox is the area a viewer should fit: the declared canvas, or the content
// bounds when the canvas is degenerate.
func (d *Document) ViewBox() BBox {
	canvas := BBox{MaxX: d.Width, MaxY: d.Height}
	if canvas.Valid() {
		return canvas
	}
	if b, ok := d.Bounds(); ok && b.Valid() {
		return b
	}
	return BBox{MaxX: 1, MaxY: 1}
}
