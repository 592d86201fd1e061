package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// brailleBuf is a canvas of braille cells, each holding 2x4 dots and one ink.
type brailleBuf struct {
	w, h  int        // in cells
	m     [][]uint8  // per-cell 8-bit mask
	ink   [][]string // per-cell color, last writer wins
	glyph [][]rune   // per-cell override of the dot pattern
}

func newBrailleBuf(w, h int) *brailleBuf {
	m := make([][]uint8, h)
	ink := make([][]string, h)
	glyph := make([][]rune, h)
	for i := range m {
		m[i] = make([]uint8, w)
		ink[i] = make([]string, w)
		glyph[i] = make([]rune, w)
	}
	return &brailleBuf{w: w, h: h, m: m, ink: ink, glyph: glyph}
}

// dot bits indexed by [column][row] inside a cell
var brailleBits = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// setPixel sets a micro-pixel at micro coords (2x4 per cell)
func (b *brailleBuf) setPixel(mx, my int, ink string) {
	if mx < 0 || my < 0 {
		return
	}
	cx, rx := mx/2, mx%2
	cy, ry := my/4, my%4
	if cy >= b.h || cx >= b.w {
		return
	}
	b.m[cy][cx] |= brailleBits[rx][ry]
	b.ink[cy][cx] = ink
}

// drawLineMicro draws a line on the microgrid using Bresenham. Callers clip
// the segment to the grid first.
func (b *brailleBuf) drawLineMicro(x0, y0, x1, y1 int, ink string) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		b.setPixel(x0, y0, ink)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// hline fills micro row my from x0 to x1 inclusive.
func (b *brailleBuf) hline(x0, x1, my int, ink string) {
	x0 = max(x0, 0)
	x1 = min(x1, b.w*2-1)
	for x := x0; x <= x1; x++ {
		b.setPixel(x, my, ink)
	}
}

// setGlyph replaces a whole cell with r.
func (b *brailleBuf) setGlyph(cx, cy int, r rune, ink string) {
	if cx < 0 || cy < 0 || cx >= b.w || cy >= b.h {
		return
	}
	b.glyph[cy][cx] = r
	b.ink[cy][cx] = ink
}

func (b *brailleBuf) cell(x, y int) rune {
	if g := b.glyph[y][x]; g != 0 {
		return g
	}
	mask := b.m[y][x]
	if mask == 0 {
		return ' '
	}
	return rune(0x2800 + int(mask))
}

// toLines renders rows, coloring runs of cells that share an ink.
func (b *brailleBuf) toLines() []string {
	styles := map[string]lipgloss.Style{}
	out := make([]string, b.h)
	for y := 0; y < b.h; y++ {
		var sb strings.Builder
		for x := 0; x < b.w; {
			ink := b.ink[y][x]
			run := []rune{b.cell(x, y)}
			x++
			for x < b.w && b.ink[y][x] == ink {
				run = append(run, b.cell(x, y))
				x++
			}
			if ink == "" {
				sb.WriteString(string(run))
				continue
			}
			st, ok := styles[ink]
			if !ok {
				st = lipgloss.NewStyle().Foreground(lipgloss.Color(ink))
				styles[ink] = st
			}
			sb.WriteString(st.Render(string(run)))
		}
		out[y] = sb.String()
	}
	return out
}
