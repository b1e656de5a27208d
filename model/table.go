package model

import (
	"fmt"
	"strings"

	"github.com/tsawler/rostra/geom"
)

// Table represents a cell grid placed on the canvas. Cells are styled
// individually; the table itself has no text frame.
type Table struct {
	Rect geom.Rect
	Rows [][]Cell

	// ColWidths and RowHeights override the even split of the table rect
	// when set. Their lengths must match the grid when non-nil.
	ColWidths  []geom.EMU
	RowHeights []geom.EMU
}

func (t *Table) Type() PrimitiveType { return PrimitiveTable }
func (t *Table) Bounds() geom.Rect   { return t.Rect }

// newTable creates a table with the given dimensions, all cells empty
func newTable(r geom.Rect, rows, cols int) *Table {
	t := &Table{
		Rect: r,
		Rows: make([][]Cell, rows),
	}
	for i := 0; i < rows; i++ {
		t.Rows[i] = make([]Cell, cols)
	}
	return t
}

// RowCount returns the number of rows
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// ColCount returns the number of columns in the first row
func (t *Table) ColCount() int {
	if len(t.Rows) == 0 {
		return 0
	}
	return len(t.Rows[0])
}

// Cell returns the cell at the given row and column (0-indexed)
func (t *Table) Cell(row, col int) (*Cell, error) {
	if row < 0 || row >= len(t.Rows) {
		return nil, fmt.Errorf("row index %d out of bounds", row)
	}
	if col < 0 || col >= len(t.Rows[row]) {
		return nil, fmt.Errorf("col index %d out of bounds", col)
	}
	return &t.Rows[row][col], nil
}

// ColumnWidth returns the width of the given column, falling back to an
// even split of the table rect when no explicit widths are set
func (t *Table) ColumnWidth(col int) geom.EMU {
	if col >= 0 && col < len(t.ColWidths) {
		return t.ColWidths[col]
	}
	if n := t.ColCount(); n > 0 {
		return t.Rect.Width / geom.EMU(n)
	}
	return 0
}

// RowHeight returns the height of the given row, falling back to an even
// split of the table rect when no explicit heights are set
func (t *Table) RowHeight(row int) geom.EMU {
	if row >= 0 && row < len(t.RowHeights) {
		return t.RowHeights[row]
	}
	if n := t.RowCount(); n > 0 {
		return t.Rect.Height / geom.EMU(n)
	}
	return 0
}

// GetText returns the tab-separated cell text, one line per row
func (t *Table) GetText() string {
	var sb strings.Builder
	for _, row := range t.Rows {
		for j, cell := range row {
			sb.WriteString(cell.Text)
			if j < len(row)-1 {
				sb.WriteString("\t")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// ToMarkdown converts the table to markdown format, treating the first row
// as the header row
func (t *Table) ToMarkdown() string {
	if len(t.Rows) == 0 {
		return ""
	}

	var sb strings.Builder

	for j, cell := range t.Rows[0] {
		sb.WriteString("| ")
		sb.WriteString(strings.ReplaceAll(cell.Text, "\n", " "))
		sb.WriteString(" ")
		if j == len(t.Rows[0])-1 {
			sb.WriteString("|")
		}
	}
	sb.WriteString("\n")

	for j := range t.Rows[0] {
		sb.WriteString("|---")
		if j == len(t.Rows[0])-1 {
			sb.WriteString("|")
		}
	}
	sb.WriteString("\n")

	for i := 1; i < len(t.Rows); i++ {
		for j, cell := range t.Rows[i] {
			sb.WriteString("| ")
			sb.WriteString(strings.ReplaceAll(cell.Text, "\n", " "))
			sb.WriteString(" ")
			if j == len(t.Rows[i])-1 {
				sb.WriteString("|")
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// Cell represents a table cell with settable text, style, and fill
type Cell struct {
	Text  string
	Style Style
	Fill  *Color // nil inherits the table default
}
