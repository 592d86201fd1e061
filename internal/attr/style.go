package attr

import (
	"strings"
)

// StrokeWidther accepts the stroke-width property.
type StrokeWidther interface {
	SetStrokeWidth(w float64)
}

// Strokeable accepts the stroke property.
type Strokeable interface {
	SetStroke(c Color)
}

// Fillable accepts the fill property.
type Fillable interface {
	SetFill(c Color)
}

// StyleEntry is one name:value pair of a style string.
type StyleEntry struct {
	Name  string
	Value string
}

// SplitStyle scans a style string into entries. Empty entries and entries
// without a colon are dropped; names and values are trimmed.
func SplitStyle(style string) []StyleEntry {
	var entries []StyleEntry
	for _, part := range strings.Split(style, ";") {
		if part == "" {
			continue
		}
		name, value, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		entries = append(entries, StyleEntry{Name: strings.TrimSpace(name), Value: strings.TrimSpace(value)})
	}
	return entries
}

type propertySetter func(d *Decoder, target any, value string) error

var properties = map[string]propertySetter{
	"stroke-width": setStrokeWidth,
	"stroke":       setStroke,
	"fill":         setFill,
}

func setStrokeWidth(_ *Decoder, target any, value string) error {
	if t, ok := target.(StrokeWidther); ok {
		t.SetStrokeWidth(ParseNumber(value))
	}
	return nil
}

func setStroke(d *Decoder, target any, value string) error {
	t, ok := target.(Strokeable)
	if !ok {
		return nil
	}
	c, err := d.Decode(value)
	if err != nil {
		return err
	}
	t.SetStroke(c)
	return nil
}

func setFill(d *Decoder, target any, value string) error {
	t, ok := target.(Fillable)
	if !ok {
		return nil
	}
	c, err := d.Decode(value)
	if err != nil {
		return err
	}
	t.SetFill(c)
	return nil
}

// ParseStyle applies style to target using the Standard color arithmetic.
func ParseStyle(style string, target any) error {
	return defaultDecoder.ParseStyle(style, target)
}

// ParseStyle applies the recognized properties of style to target left to
// right, so later entries override earlier ones. Properties target does not
// accept are skipped without decoding their values. The first rejected value
// stops parsing; properties applied before it stay applied.
func (d *Decoder) ParseStyle(style string, target any) error {
	for _, e := range SplitStyle(style) {
		set, ok := properties[e.Name]
		if !ok {
			continue
		}
		if err := set(d, target, e.Value); err != nil {
			return &StyleError{Property: e.Name, Value: e.Value, Err: err}
		}
	}
	return nil
}
