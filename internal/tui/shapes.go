package tui

import (
	"fmt"
	"strconv"

	table "github.com/charmbracelet/bubbles/table"

	"rapidsvg/internal/geom"
)

var shapeColumns = []table.Column{
	{Title: "#", Width: 4},
	{Title: "kind", Width: 8},
	{Title: "geometry", Width: 34},
	{Title: "width", Width: 7},
	{Title: "color", Width: 8},
}

func fmtNum(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

// buildShapeRows lists lines then polygons, in document order.
func buildShapeRows(doc *geom.Document) []table.Row {
	rows := make([]table.Row, 0, doc.Shapes())
	n := 0
	for _, l := range doc.Lines {
		n++
		rows = append(rows, table.Row{
			strconv.Itoa(n),
			"line",
			fmt.Sprintf("(%s,%s)-(%s,%s)", fmtNum(l.X1), fmtNum(l.Y1), fmtNum(l.X2), fmtNum(l.Y2)),
			fmtNum(l.Width),
			l.Stroke.Hex(),
		})
	}
	for _, p := range doc.Polygons {
		n++
		geometry := fmt.Sprintf("%d points", len(p.Points))
		if len(p.Points) > 0 {
			geometry += fmt.Sprintf(" from (%s,%s)", fmtNum(p.Points[0][0]), fmtNum(p.Points[0][1]))
		}
		rows = append(rows, table.Row{strconv.Itoa(n), "polygon", geometry, "", p.Fill.Hex()})
	}
	return rows
}

// refreshShapes rebuilds the table from the current drawing.
func (m *Model) refreshShapes() {
	rows := buildShapeRows(m.doc)
	if len(rows) == 0 {
		m.showShapes = false
		m.status = "no shapes in current drawing"
		return
	}
	// clear rows first so columns and rows never disagree during SetColumns
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(shapeColumns)
	m.tbl.SetRows(rows)
}
