package svg

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/h2non/filetype"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"rapidsvg/internal/geom"
)

// ReadFile returns the content of path, inflating gzip compressed (svgz) input.
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &FileError{Path: path, Err: err}
	}
	if !filetype.Is(data, "gz") {
		return data, nil
	}
	data, err = inflate(data)
	if err != nil {
		return nil, &FileError{Path: path, Err: err}
	}
	return data, nil
}

func inflate(data []byte) (out []byte, err error) {
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("unable to open gzip stream: %w", err)
	}
	defer func() {
		err = multierr.Append(err, zr.Close())
	}()

	if out, err = io.ReadAll(zr); err != nil {
		return nil, fmt.Errorf("unable to inflate gzip stream: %w", err)
	}
	return out, nil
}

// File remembers the last path it was asked to load so the drawing can be
// reloaded after it changes on disk.
type File struct {
	path string
	doc  *geom.Document
	opts []Option
	log  *zap.Logger
}

// NewFile returns an empty File; opts are applied to every load.
func NewFile(opts ...Option) *File {
	return &File{
		opts: opts,
		log:  newOptions(opts).log,
	}
}

// Load replaces the current content with the drawing at path. The path is
// kept even when loading fails so Reload retries it.
func (f *File) Load(path string) error {
	f.path = path
	f.doc = nil

	start := time.Now()
	data, err := ReadFile(path)
	if err != nil {
		return err
	}
	f.log.Debug("Read file", zap.String("path", path), zap.Duration("elapsed", time.Since(start)))

	doc, err := Parse(data, f.opts...)
	if err != nil {
		return fmt.Errorf("unable to load %q: %w", path, err)
	}
	f.doc = doc
	f.log.Info("Loaded SVG",
		zap.String("path", path),
		zap.Float64("width", doc.Width),
		zap.Float64("height", doc.Height),
		zap.Int("lines", len(doc.Lines)),
		zap.Int("polygons", len(doc.Polygons)))
	return nil
}

// Reload loads the last path again.
func (f *File) Reload() error {
	if f.path == "" {
		return ErrNoFile
	}
	return f.Load(f.path)
}

func (f *File) Path() string {
	return f.path
}

// Document is the content of the last successful load, nil after a failure.
func (f *File) Document() *geom.Document {
	return f.doc
}
