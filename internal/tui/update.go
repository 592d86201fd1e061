package tui

import (
	"fmt"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.showSidebar {
			m.l.SetSize(sidebarWidth-2, m.layout().contentH-2)
		}
	case tea.KeyMsg:
		// If list is visible and filtering, send keys to list and ignore global commands
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		if m.pasteMode {
			return m.updatePaste(msg)
		}
		if m.showShapes {
			switch msg.String() {
			case "up", "down", "pgup", "pgdown", "home", "end", "k", "j":
				var cmd tea.Cmd
				m.tbl, cmd = m.tbl.Update(msg)
				return m, cmd
			}
		}
		if m.handleKey(msg.String()) {
			return m, tea.Quit
		}
	case tea.MouseMsg:
		m.handleMouse(msg)
	}
	// Pass messages to list when visible
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updatePaste(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.pasteMode = false
		m.ta.Blur()
		m.status = "view mode"
		return m, nil
	case "enter":
		markup := strings.TrimSpace(m.ta.Value())
		if markup == "" {
			m.status = "paste: empty"
			return m, nil
		}
		if m.loadMarkup(markup) {
			m.pasteMode = false
			m.ta.Blur()
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.ta, cmd = m.ta.Update(msg)
	return m, cmd
}

// handleKey applies a view mode key; it reports whether the program should quit.
func (m *Model) handleKey(key string) bool {
	switch key {
	case "ctrl+c", "q":
		return true
	case "1":
		m.showLines = !m.showLines
		m.status = fmt.Sprintf("lines: %v", m.showLines)
	case "2":
		m.showPolys = !m.showPolys
		m.status = fmt.Sprintf("polygons: %v", m.showPolys)
	case "l":
		all := m.showLines && m.showPolys
		m.showLines = !all
		m.showPolys = !all
		m.status = fmt.Sprintf("layers: lines=%v polygons=%v", m.showLines, m.showPolys)
	case "+", "=":
		m.zoomBy(m.zoomStep)
	case "-", "_":
		m.zoomBy(1 / m.zoomStep)
	case "0":
		m.resetView()
		m.status = "view reset"
	case "r":
		m.reload()
	case "tab":
		m.showSidebar = !m.showSidebar
		if m.showSidebar {
			m.refreshDir()
			m.l.SetSize(sidebarWidth-2, m.layout().contentH-2)
		}
	case "p":
		m.pasteMode = true
		m.ta.SetValue("")
		m.ta.Focus()
		m.status = "paste mode"
	case "h":
		m.helpVisible = !m.helpVisible
	case "a":
		m.showShapes = !m.showShapes
		if m.showShapes {
			m.refreshShapes()
		}
	case "i":
		m.inspect()
	case "esc":
		m.inspectPopup = ""
		m.showShapes = false
	case "enter":
		if m.showSidebar {
			if it, ok := m.l.SelectedItem().(fileItem); ok {
				m.loadPath(it.path)
			}
		}
	case "up":
		m.offsetY -= max(1, m.panStep/2)
	case "down":
		m.offsetY += max(1, m.panStep/2)
	case "left":
		m.offsetX -= m.panStep
	case "right":
		m.offsetX += m.panStep
	}
	return false
}

func (m *Model) zoomBy(f float64) {
	z := m.zoom * f
	if z < minZoom || z > maxZoom {
		return
	}
	m.zoom = z
	m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
}

func (m *Model) inspect() {
	v, ok := m.inspectNearest()
	if !ok {
		m.inspectPopup = "no shape nearby"
		m.status = m.inspectPopup
		return
	}
	path := m.file.Path()
	if m.pasted || path == "" {
		path = "-"
	}
	meta := []string{
		fmt.Sprintf("name: %s", m.sourceName()),
		fmt.Sprintf("path: %s", path),
		fmt.Sprintf("canvas: %g x %g", m.doc.Width, m.doc.Height),
		fmt.Sprintf("counts: lines=%d polygons=%d", len(m.doc.Lines), len(m.doc.Polygons)),
		fmt.Sprintf("nearest: x=%g y=%g", v.x, v.y),
		fmt.Sprintf("shape: %s #%d", v.kind, v.index+1),
		fmt.Sprintf("color: %s", v.color.Hex()),
	}
	if v.kind == "line" {
		meta = append(meta, fmt.Sprintf("width: %g", m.doc.Lines[v.index].Width))
	}
	m.inspectPopup = strings.Join(meta, "\n")
	m.status = "inspect popup"
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	lay := m.layout()
	cx, cy := msg.X-lay.mapX, msg.Y-lay.mapY
	inside := cx >= 0 && cx < lay.mapW && cy >= 0 && cy < lay.mapH

	switch {
	case msg.Button == tea.MouseButtonWheelUp && msg.Action == tea.MouseActionPress:
		m.zoomBy(m.zoomStep)
	case msg.Button == tea.MouseButtonWheelDown && msg.Action == tea.MouseActionPress:
		m.zoomBy(1 / m.zoomStep)
	case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
		m.dragging = inside
		m.dragX, m.dragY = msg.X, msg.Y
	case msg.Action == tea.MouseActionRelease:
		m.dragging = false
	case msg.Action == tea.MouseActionMotion && m.dragging:
		m.offsetX += msg.X - m.dragX
		m.offsetY += msg.Y - m.dragY
		m.dragX, m.dragY = msg.X, msg.Y
	}

	if !inside {
		m.hovering = false
		m.hoverHasPos = false
		return
	}
	m.hovering = true
	if x, y, ok := m.cellToCanvas(cx, cy, lay.mapW, lay.mapH); ok {
		m.hoverHasPos = true
		m.hoverX, m.hoverY = x, y
	} else {
		m.hoverHasPos = false
	}
	if v, ok := m.nearestVertex(cx*2, cy*4, lay.mapW, lay.mapH); ok {
		m.hoverMicX, m.hoverMicY = v.mx, v.my
	} else {
		m.hovering = false
	}
}
