package svg

import (
	"errors"
	"fmt"
)

var (
	ErrFileRead           = errors.New("unable to read file")
	ErrMissingRootElement = errors.New("no <svg> element")
	ErrNoFile             = errors.New("no file previously loaded")
)

// FileError wraps the OS error of an unreadable input. It matches ErrFileRead.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%v %q: %v", ErrFileRead, e.Path, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

func (e *FileError) Is(target error) bool { return target == ErrFileRead }

// ElementError names the shape whose attributes could not be decoded. Index is
// the zero based position of the element among elements of the same kind in
// traversal order.
type ElementError struct {
	Element string
	Index   int
	Err     error
}

func (e *ElementError) Error() string {
	return fmt.Sprintf("<%s> #%d: %v", e.Element, e.Index, e.Err)
}

func (e *ElementError) Unwrap() error { return e.Err }
