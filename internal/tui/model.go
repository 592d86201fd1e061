package tui

import (
	"os"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"rapidsvg/internal/geom"
	"rapidsvg/internal/svg"
)

const (
	defaultZoomStep = 1.25
	defaultPanStep  = 2

	minZoom float64 = 0.05
	maxZoom float64 = 256
)

// Options configure a viewer Model.
type Options struct {
	Log      *zap.Logger
	Load     []svg.Option // applied to file loads and pasted markup
	ZoomStep float64
	PanStep  int
	Dir      string // sidebar directory, current directory when empty
}

type Model struct {
	width  int
	height int

	showSidebar bool
	helpVisible bool

	zoom     float64
	offsetX  int
	offsetY  int
	zoomStep float64
	panStep  int

	status string

	// File explorer
	cwd   string
	l     list.Model
	items []list.Item

	// Data
	file   *svg.File
	doc    *geom.Document
	view   geom.BBox
	pasted bool

	// paste mode
	pasteMode bool
	ta        textarea.Model

	// layer visibility
	showLines bool
	showPolys bool

	// inspect popup
	inspectPopup string

	// hover state
	hovering    bool
	hoverMicX   int
	hoverMicY   int
	hoverHasPos bool
	hoverX      float64
	hoverY      float64

	// left button drag
	dragging bool
	dragX    int
	dragY    int

	// shape table
	showShapes bool
	tbl        table.Model

	log      *zap.Logger
	loadOpts []svg.Option
}

func New(opts Options) Model {
	m := Model{
		showSidebar: false,
		helpVisible: true,
		zoom:        1.0,
		zoomStep:    opts.ZoomStep,
		panStep:     opts.PanStep,
		status:      "rapidsvg ready",
		showLines:   true,
		showPolys:   true,
		doc:         geom.NewDocument(),
		log:         opts.Log,
		loadOpts:    opts.Load,
		cwd:         opts.Dir,
	}
	if m.log == nil {
		m.log = zap.NewNop()
	}
	if m.zoomStep <= 1 {
		m.zoomStep = defaultZoomStep
	}
	if m.panStep <= 0 {
		m.panStep = defaultPanStep
	}
	if m.cwd == "" {
		m.cwd, _ = os.Getwd()
	}
	m.file = svg.NewFile(m.loadOpts...)
	m.view = m.doc.ViewBox()
	// list setup
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Drawings"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	// textarea setup
	m.ta = textarea.New()
	m.ta.Placeholder = "Paste SVG markup here. Press Enter to render; Esc to cancel."
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(6)
	// shape table setup
	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)
	m.refreshDir()
	return m
}

// NewWithFile shows the content of an already loaded file; r reloads it.
func NewWithFile(f *svg.File, opts Options) Model {
	m := New(opts)
	m.file = f
	if doc := f.Document(); doc != nil {
		m.setDocument(doc, true)
		m.status = "loaded: " + m.summary()
	}
	return m
}

func (m Model) Init() tea.Cmd { return nil }
