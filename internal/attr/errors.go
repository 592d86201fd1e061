package attr

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidHexDigit = errors.New("invalid hex digit")
	ErrInvalidColor    = errors.New("invalid color")
)

// ColorError reports a color literal that could not be decoded.
type ColorError struct {
	Literal string
	Char    byte // offending character, set for ErrInvalidHexDigit
	Err     error
}

func (e *ColorError) Error() string {
	if errors.Is(e.Err, ErrInvalidHexDigit) {
		return fmt.Sprintf("%v %q in color %q", e.Err, e.Char, e.Literal)
	}
	return fmt.Sprintf("%v: %q", e.Err, e.Literal)
}

func (e *ColorError) Unwrap() error { return e.Err }

// StyleError reports a style property whose value was rejected.
type StyleError struct {
	Property string
	Value    string
	Err      error
}

func (e *StyleError) Error() string {
	return fmt.Sprintf("style property %s: %v", e.Property, e.Err)
}

func (e *StyleError) Unwrap() error { return e.Err }
