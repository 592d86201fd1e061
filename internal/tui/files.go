package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	"github.com/maruel/natural"
	"go.uber.org/zap"

	"rapidsvg/internal/geom"
	"rapidsvg/internal/svg"
)

type fileItem struct {
	title, desc string
	path        string
}

func (f fileItem) Title() string       { return f.title }
func (f fileItem) Description() string { return f.desc }
func (f fileItem) FilterValue() string { return f.title }

func isDrawing(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".svg", ".svgz":
		return true
	}
	return false
}

func (m *Model) refreshDir() {
	entries, err := os.ReadDir(m.cwd)
	if err != nil {
		m.status = "read dir error: " + err.Error()
		return
	}
	var items []list.Item
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !isDrawing(name) {
			continue
		}
		items = append(items, fileItem{title: name, desc: strings.ToLower(filepath.Ext(name)), path: filepath.Join(m.cwd, name)})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return natural.Less(items[i].(fileItem).title, items[j].(fileItem).title)
	})
	m.items = items
	m.l.SetItems(items)
	if len(items) == 0 {
		m.status = "no drawings in current directory"
	}
}

func (m Model) sourceName() string {
	switch {
	case m.pasted:
		return "<pasted>"
	case m.file.Path() == "":
		return "<none>"
	}
	return filepath.Base(m.file.Path())
}

func (m Model) summary() string {
	return fmt.Sprintf("%s  %gx%g  lines=%d polygons=%d",
		m.sourceName(), m.doc.Width, m.doc.Height, len(m.doc.Lines), len(m.doc.Polygons))
}

// setDocument shows doc; resetView returns to the fitted, unzoomed view.
func (m *Model) setDocument(doc *geom.Document, resetView bool) {
	m.doc = doc
	m.view = doc.ViewBox()
	if resetView {
		m.resetView()
	}
	m.inspectPopup = ""
	m.hovering = false
	if m.showShapes {
		m.refreshShapes()
	}
}

func (m *Model) resetView() {
	m.zoom = 1.0
	m.offsetX, m.offsetY = 0, 0
}

// loadPath replaces the drawing with the file at p. On failure the previous
// drawing and its file stay current and the error goes to the status line.
func (m *Model) loadPath(p string) {
	f := svg.NewFile(m.loadOpts...)
	if err := f.Load(p); err != nil {
		m.log.Warn("Unable to load drawing", zap.String("path", p), zap.Error(err))
		m.status = "load error: " + err.Error()
		return
	}
	m.file = f
	m.pasted = false
	m.setDocument(f.Document(), true)
	m.status = "loaded: " + m.summary()
}

// reload reads the current file again keeping zoom and pan.
func (m *Model) reload() {
	if err := m.file.Reload(); err != nil {
		m.log.Warn("Unable to reload drawing", zap.String("path", m.file.Path()), zap.Error(err))
		m.status = "reload error: " + err.Error()
		return
	}
	m.pasted = false
	m.setDocument(m.file.Document(), false)
	m.status = "reloaded: " + m.summary()
}

// loadMarkup renders pasted SVG text.
func (m *Model) loadMarkup(markup string) bool {
	doc, err := svg.Parse([]byte(markup), m.loadOpts...)
	if err != nil {
		m.status = "svg error: " + err.Error()
		return false
	}
	m.pasted = true
	m.setDocument(doc, true)
	m.status = "rendered: " + m.summary()
	return true
}
