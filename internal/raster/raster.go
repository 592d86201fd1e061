// Package raster draws parsed documents into images.
package raster

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/disintegration/imaging"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"

	"rapidsvg/internal/geom"
)

// maxRasterDim bounds either side of the produced image.
var maxRasterDim = 8192

const miterLimit = 4

// Options control the produced image. Zero sizes follow the document size,
// a single zero side keeps the aspect ratio.
type Options struct {
	Width      int
	Height     int
	Background color.Color
}

// targetSize fits the intrinsic size into the requested box keeping aspect
// ratio and clamps it to maxRasterDim.
func targetSize(intrW, intrH float64, targetW, targetH int) (int, int) {
	if !(intrW > 0) {
		intrW = 1
	}
	if !(intrH > 0) {
		intrH = 1
	}

	w, h := int(math.Ceil(intrW)), int(math.Ceil(intrH))
	if targetW <= 0 && targetH <= 0 {
		// Keep intrinsic size.
	} else if targetW > 0 && targetH <= 0 {
		w = targetW
		h = int(math.Round(float64(w) * intrH / intrW))
	} else if targetH > 0 && targetW <= 0 {
		h = targetH
		w = int(math.Round(float64(h) * intrW / intrH))
	} else {
		scale := math.Min(float64(targetW)/intrW, float64(targetH)/intrH)
		w = int(math.Round(intrW * scale))
		h = int(math.Round(intrH * scale))
	}
	w = max(w, 1)
	h = max(h, 1)

	if w > maxRasterDim || h > maxRasterDim {
		s := min(float64(maxRasterDim)/float64(w), float64(maxRasterDim)/float64(h))
		w = max(int(math.Round(float64(w)*s)), 1)
		h = max(int(math.Round(float64(h)*s)), 1)
	}
	return w, h
}

func newCanvas(w, h int, bg color.Color) *image.RGBA {
	if bg == nil {
		bg = color.White
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), &image.Uniform{C: bg}, image.Point{}, draw.Src)
	return dst
}

type transform struct {
	sx, sy float64
}

func (t transform) point(x, y float64) fixed.Point26_6 {
	return fixed.Point26_6{
		X: fixed.Int26_6(math.Round(x * t.sx * 64)),
		Y: fixed.Int26_6(math.Round(y * t.sy * 64)),
	}
}

// Render paints polygons first, then lines, each in document order. Polygons
// use non-zero winding, lines are stroked with butt caps.
func Render(doc *geom.Document, opts Options) *image.RGBA {
	w, h := targetSize(doc.Width, doc.Height, opts.Width, opts.Height)
	dst := newCanvas(w, h, opts.Background)

	t := transform{sx: float64(w) / doc.Width, sy: float64(h) / doc.Height}
	if !(doc.Width > 0) || !(doc.Height > 0) {
		t = transform{sx: 1, sy: 1}
	}
	strokeScale := math.Sqrt(t.sx * t.sy)

	scanner := rasterx.NewScannerGV(w, h, dst, dst.Bounds())
	dasher := rasterx.NewDasher(w, h, scanner)

	filler := &dasher.Filler
	for _, p := range doc.Polygons {
		if len(p.Points) < 3 {
			continue
		}
		dasher.Clear()
		filler.SetWinding(true)
		filler.Start(t.point(p.Points[0][0], p.Points[0][1]))
		for _, pt := range p.Points[1:] {
			filler.Line(t.point(pt[0], pt[1]))
		}
		filler.Stop(true)
		filler.SetColor(p.Fill.NRGBA())
		filler.Draw()
	}

	for _, l := range doc.Lines {
		// wider than the canvas paints the same pixels and keeps 26.6 in range
		width := math.Min(l.Width*strokeScale, float64(w+h))
		if !(width > 0) {
			continue
		}
		dasher.Clear()
		dasher.SetStroke(fixed.Int26_6(width*64), fixed.Int26_6(miterLimit*64),
			rasterx.ButtCap, rasterx.ButtCap, rasterx.FlatGap, rasterx.Bevel, nil, 0)
		dasher.Start(t.point(l.X1, l.Y1))
		dasher.Line(t.point(l.X2, l.Y2))
		dasher.Stop(false)
		dasher.SetColor(l.Stroke.NRGBA())
		dasher.Draw()
	}
	return dst
}

// Reference renders the original markup with a general purpose SVG renderer,
// useful to compare against Render.
func Reference(data []byte, targetW, targetH int) (*image.RGBA, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data), oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, fmt.Errorf("unable to read SVG: %w", err)
	}

	w, h := targetSize(icon.ViewBox.W, icon.ViewBox.H, targetW, targetH)
	icon.SetTarget(0, 0, float64(w), float64(h))

	dst := newCanvas(w, h, color.White)
	scanner := rasterx.NewScannerGV(w, h, dst, dst.Bounds())
	dasher := rasterx.NewDasher(w, h, scanner)
	icon.Draw(dasher, 1.0)
	return dst, nil
}

// Save writes img, the format follows the file extension.
func Save(img image.Image, path string, jpegQuality int) error {
	if err := imaging.Save(img, path, imaging.JPEGQuality(jpegQuality)); err != nil {
		return fmt.Errorf("unable to save image: %w", err)
	}
	return nil
}
