// Package svg builds a geom.Document from the line and polygon elements of an
// SVG file.
package svg

import (
	"fmt"
	"time"

	"github.com/beevik/etree"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"

	"rapidsvg/internal/attr"
	"rapidsvg/internal/geom"
)

type Option func(*options)

type options struct {
	log *zap.Logger
	dec *attr.Decoder
}

// WithLogger sets the logger receiving timings and counts.
func WithLogger(log *zap.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// WithDecoder selects the color arithmetic used for style values.
func WithDecoder(dec *attr.Decoder) Option {
	return func(o *options) {
		if dec != nil {
			o.dec = dec
		}
	}
}

func newOptions(opts []Option) options {
	o := options{
		log: zap.NewNop(),
		dec: attr.NewDecoder(attr.Standard),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Parse decodes SVG markup. Any attribute that cannot be decoded fails the
// whole document.
func Parse(data []byte, opts ...Option) (*geom.Document, error) {
	o := newOptions(opts)

	start := time.Now()
	xdoc := etree.NewDocument()
	xdoc.ReadSettings = etree.ReadSettings{
		CharsetReader: charset.NewReaderLabel,
		Permissive:    true,
	}
	if err := xdoc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("unable to parse XML: %w", err)
	}
	o.log.Debug("Parsed XML", zap.Duration("elapsed", time.Since(start)))

	root := xdoc.SelectElement("svg")
	if root == nil {
		return nil, ErrMissingRootElement
	}

	start = time.Now()
	b := builder{dec: o.dec, doc: geom.NewDocument()}
	if err := b.walk(root); err != nil {
		return nil, err
	}
	o.log.Debug("Walked XML", zap.Duration("elapsed", time.Since(start)))
	o.log.Debug("Document summary",
		zap.Float64("width", b.doc.Width),
		zap.Float64("height", b.doc.Height),
		zap.Int("lines", len(b.doc.Lines)),
		zap.Int("polygons", len(b.doc.Polygons)))
	return b.doc, nil
}

type builder struct {
	dec *attr.Decoder
	doc *geom.Document
}

type (
	lineAttrFunc    func(b *builder, l *geom.Line, value string) error
	polygonAttrFunc func(b *builder, p *geom.Polygon, value string) error
)

var lineAttrs = map[string]lineAttrFunc{
	"x1":    func(_ *builder, l *geom.Line, v string) error { l.X1 = attr.ParseNumber(v); return nil },
	"y1":    func(_ *builder, l *geom.Line, v string) error { l.Y1 = attr.ParseNumber(v); return nil },
	"x2":    func(_ *builder, l *geom.Line, v string) error { l.X2 = attr.ParseNumber(v); return nil },
	"y2":    func(_ *builder, l *geom.Line, v string) error { l.Y2 = attr.ParseNumber(v); return nil },
	"style": func(b *builder, l *geom.Line, v string) error { return b.dec.ParseStyle(v, l) },
}

var polygonAttrs = map[string]polygonAttrFunc{
	"points": func(_ *builder, p *geom.Polygon, v string) error { p.Points = attr.ParsePoints(v); return nil },
	"style":  func(b *builder, p *geom.Polygon, v string) error { return b.dec.ParseStyle(v, p) },
}

// walk visits the tree breadth first: groups are queued, lines and polygons
// are built in the order they are reached.
func (b *builder) walk(root *etree.Element) error {
	b.doc.Width = attr.NumberOr(root.SelectAttrValue("width", ""), 1)
	b.doc.Height = attr.NumberOr(root.SelectAttrValue("height", ""), 1)

	queue := []*etree.Element{root}
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		for _, child := range node.ChildElements() {
			switch child.Tag {
			case "g":
				queue = append(queue, child)
			case "line":
				if err := b.line(child); err != nil {
					return &ElementError{Element: child.Tag, Index: len(b.doc.Lines), Err: err}
				}
			case "polygon":
				if err := b.polygon(child); err != nil {
					return &ElementError{Element: child.Tag, Index: len(b.doc.Polygons), Err: err}
				}
			}
		}
	}
	return nil
}

func (b *builder) line(el *etree.Element) error {
	l := geom.NewLine()
	for _, a := range el.Attr {
		if set, ok := lineAttrs[a.Key]; ok {
			if err := set(b, &l, a.Value); err != nil {
				return err
			}
		}
	}
	b.doc.Lines = append(b.doc.Lines, l)
	return nil
}

func (b *builder) polygon(el *etree.Element) error {
	var p geom.Polygon
	for _, a := range el.Attr {
		if set, ok := polygonAttrs[a.Key]; ok {
			if err := set(b, &p, a.Value); err != nil {
				return err
			}
		}
	}
	b.doc.Polygons = append(b.doc.Polygons, p)
	return nil
}
