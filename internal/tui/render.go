package tui

import (
	"math"
	"sort"
	"strings"

	"rapidsvg/internal/attr"
	"rapidsvg/internal/geom"
)

const hoverInk = "#FFA500"

// inkFor picks the terminal color of a shape. Very dark colors fall back to
// the base foreground, the default black would vanish on a dark terminal.
func inkFor(c attr.Color) string {
	col := c.Colorful()
	if l, _, _ := col.Lab(); l < 0.15 {
		return string(baseFg)
	}
	return col.Hex()
}

// scale is the number of micro-pixels per canvas unit. Braille dots are close
// to square so a single factor keeps the aspect ratio.
func (m Model) scale(w, h int) float64 {
	if !m.view.Valid() || w < 1 || h < 1 {
		return 0
	}
	return math.Min(float64(w*2-1)/m.view.Width(), float64(h*4-1)/m.view.Height()) * m.zoom
}

// projectF maps canvas coordinates into the microgrid (2x4 per cell) of a
// w x h cell map, taking zoom around the view center and pan into account.
func (m Model) projectF(x, y float64, w, h int) (float64, float64, bool) {
	s := m.scale(w, h)
	if s <= 0 {
		return 0, 0, false
	}
	cx := (m.view.MinX + m.view.MaxX) / 2
	cy := (m.view.MinY + m.view.MaxY) / 2
	sx := float64(w*2-1)/2 + (x-cx)*s + float64(m.offsetX*2)
	sy := float64(h*4-1)/2 + (y-cy)*s + float64(m.offsetY*4)
	return sx, sy, true
}

// screenXYMicro is projectF rounded to a micro-pixel.
func (m Model) screenXYMicro(x, y float64, w, h int) (int, int, bool) {
	sx, sy, ok := m.projectF(x, y, w, h)
	if !ok {
		return 0, 0, false
	}
	return int(math.Round(sx)), int(math.Round(sy)), true
}

// cellToCanvas converts the center of a map cell back to canvas coordinates.
func (m Model) cellToCanvas(cx, cy, w, h int) (float64, float64, bool) {
	s := m.scale(w, h)
	if s <= 0 {
		return 0, 0, false
	}
	mx := float64(cx*2) + 0.5
	my := float64(cy*4) + 1.5
	x := (m.view.MinX+m.view.MaxX)/2 + (mx-float64(w*2-1)/2-float64(m.offsetX*2))/s
	y := (m.view.MinY+m.view.MaxY)/2 + (my-float64(h*4-1)/2-float64(m.offsetY*4))/s
	return x, y, true
}

func (m Model) renderMap(w, h int) string {
	br := newBrailleBuf(w, h)

	if m.showPolys {
		for _, p := range m.doc.Polygons {
			m.fillPolygon(br, p, w, h)
		}
	}
	if m.showLines {
		for _, l := range m.doc.Lines {
			m.strokeLine(br, l, w, h)
		}
	}

	// Hover highlight: an orange circle at the hovered vertex cell
	if m.hovering {
		br.setGlyph(m.hoverMicX/2, m.hoverMicY/4, '◯', hoverInk)
	}
	return strings.Join(br.toLines(), "\n")
}

// segment draws a clipped line between micro coordinates.
func segment(br *brailleBuf, x0, y0, x1, y1 float64, ink string) {
	x0, y0, x1, y1, ok := clipSegment(x0, y0, x1, y1, float64(br.w*2-1), float64(br.h*4-1))
	if !ok {
		return
	}
	br.drawLineMicro(int(math.Round(x0)), int(math.Round(y0)), int(math.Round(x1)), int(math.Round(y1)), ink)
}

type crossing struct {
	x   float64
	dir int
}

// fillPolygon fills using the non-zero winding rule on micro rows, then traces
// the outline so thin shapes stay visible.
func (m Model) fillPolygon(br *brailleBuf, p geom.Polygon, w, h int) {
	if len(p.Points) < 3 {
		return
	}
	pts := make([][2]float64, 0, len(p.Points))
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, pt := range p.Points {
		x, y, ok := m.projectF(pt[0], pt[1], w, h)
		if !ok {
			return
		}
		pts = append(pts, [2]float64{x, y})
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}
	ink := inkFor(p.Fill)

	first := max(0, toGrid(math.Ceil(minY), h*4))
	last := min(h*4-1, toGrid(math.Floor(maxY), h*4))
	var xs []crossing
	for row := first; row <= last; row++ {
		y := float64(row)
		xs = xs[:0]
		for i := range pts {
			a, b := pts[i], pts[(i+1)%len(pts)]
			if a[1] == b[1] { // horizontal edge: skip
				continue
			}
			dir := 1
			if a[1] > b[1] {
				dir = -1
			}
			if (y >= a[1] && y < b[1]) || (y >= b[1] && y < a[1]) {
				t := (y - a[1]) / (b[1] - a[1])
				xs = append(xs, crossing{x: a[0] + t*(b[0]-a[0]), dir: dir})
			}
		}
		sort.Slice(xs, func(i, j int) bool { return xs[i].x < xs[j].x })
		winding := 0
		for i := 0; i+1 < len(xs); i++ {
			winding += xs[i].dir
			if winding != 0 {
				br.hline(toGrid(xs[i].x, w*2), toGrid(xs[i+1].x, w*2), row, ink)
			}
		}
	}

	for i := range pts {
		a, b := pts[i], pts[(i+1)%len(pts)]
		segment(br, a[0], a[1], b[0], b[1], ink)
	}
}

// strokeLine draws l as parallel passes across its projected width.
func (m Model) strokeLine(br *brailleBuf, l geom.Line, w, h int) {
	if l.Width <= 0 {
		return
	}
	x0, y0, ok0 := m.projectF(l.X1, l.Y1, w, h)
	x1, y1, ok1 := m.projectF(l.X2, l.Y2, w, h)
	if !ok0 || !ok1 {
		return
	}
	ink := inkFor(l.Stroke)

	thickness := int(math.Round(l.Width * m.scale(w, h)))
	thickness = min(max(thickness, 1), w*2+h*4)
	length := math.Hypot(x1-x0, y1-y0)
	if thickness == 1 || length == 0 {
		segment(br, x0, y0, x1, y1, ink)
		return
	}
	nx, ny := -(y1-y0)/length, (x1-x0)/length
	half := float64(thickness-1) / 2
	// half pixel steps leave no gaps on diagonals
	for k := -half; k <= half; k += 0.5 {
		segment(br, x0+nx*k, y0+ny*k, x1+nx*k, y1+ny*k, ink)
	}
}

type vertex struct {
	x, y   float64
	mx, my int
	kind   string
	index  int
	color  attr.Color
}

// nearestVertex finds the shape vertex closest to micro position (px, py).
func (m Model) nearestVertex(px, py, w, h int) (vertex, bool) {
	best := math.MaxInt
	var found vertex
	consider := func(x, y float64, kind string, index int, c attr.Color) {
		mx, my, ok := m.screenXYMicro(x, y, w, h)
		if !ok {
			return
		}
		dx, dy := mx-px, my-py
		if d := dx*dx + dy*dy; d < best {
			best = d
			found = vertex{x: x, y: y, mx: mx, my: my, kind: kind, index: index, color: c}
		}
	}
	if m.showLines {
		for i, l := range m.doc.Lines {
			consider(l.X1, l.Y1, "line", i, l.Stroke)
			consider(l.X2, l.Y2, "line", i, l.Stroke)
		}
	}
	if m.showPolys {
		for i, p := range m.doc.Polygons {
			for _, pt := range p.Points {
				consider(pt[0], pt[1], "polygon", i, p.Fill)
			}
		}
	}
	return found, best != math.MaxInt
}

// inspectNearest finds the vertex closest to the viewport center.
func (m Model) inspectNearest() (vertex, bool) {
	lay := m.layout()
	return m.nearestVertex(lay.mapW, lay.mapH*2, lay.mapW, lay.mapH)
}
