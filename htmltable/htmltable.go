// Package htmltable extracts table data from HTML documents.
//
// The extracted grids are normalized for slide composition: colspan cells
// are expanded with empty-string padding and rowspan cells reserve their
// column in the rows they cover, so every row of a table has the same
// number of cells.
package htmltable

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html"
)

// TableData is one extracted table, ready for slide composition.
type TableData struct {
	Caption string     // text of the <caption> element, when present
	Headers []string   // header row; nil when the table declares none
	Rows    [][]string // data rows, all the same width
}

// ReadFile extracts all tables from an HTML file.
func ReadFile(filename string) ([]TableData, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse extracts all tables from HTML read from r, in document order.
func Parse(r io.Reader) ([]TableData, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	var tables []TableData
	collectTables(doc, &tables)
	return tables, nil
}

// collectTables walks the DOM and parses every table element.
func collectTables(n *html.Node, tables *[]TableData) {
	if n.Type == html.ElementNode {
		if shouldSkipElement(n.Data) {
			return
		}
		if n.Data == "table" {
			if t := parseTable(n); len(t.Rows) > 0 || len(t.Headers) > 0 {
				*tables = append(*tables, t)
			}
			// Nested tables are rare and usually layout scaffolding;
			// the cells of this one already hold their text.
			return
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectTables(c, tables)
	}
}

// cell is a parsed td/th before grid normalization.
type cell struct {
	text     string
	isHeader bool
	rowSpan  int
	colSpan  int
}

func parseTable(tableNode *html.Node) TableData {
	var t TableData
	var raw [][]cell
	headerRows := 0

	for c := tableNode.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.Data {
		case "caption":
			t.Caption = getTextContent(c)
		case "thead":
			for _, row := range parseSectionRows(c, true) {
				raw = append(raw, row)
				headerRows++
			}
		case "tbody", "tfoot":
			raw = append(raw, parseSectionRows(c, false)...)
		case "tr":
			if row := parseTableRow(c, false); len(row) > 0 {
				raw = append(raw, row)
			}
		}
	}

	// No explicit thead: treat a leading all-th row as the header.
	if headerRows == 0 && len(raw) > 0 {
		allHeader := true
		for _, c := range raw[0] {
			if !c.isHeader {
				allHeader = false
				break
			}
		}
		if allHeader {
			headerRows = 1
		}
	}

	grid := normalize(raw)
	if headerRows > 0 && len(grid) > 0 {
		t.Headers = grid[0]
		t.Rows = grid[headerRows:]
	} else {
		t.Rows = grid
	}
	return t
}

// parseSectionRows parses the tr children of thead, tbody, or tfoot.
func parseSectionRows(section *html.Node, isHeader bool) [][]cell {
	var rows [][]cell
	for c := section.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "tr" {
			if row := parseTableRow(c, isHeader); len(row) > 0 {
				rows = append(rows, row)
			}
		}
	}
	return rows
}

// parseTableRow parses a single table row.
func parseTableRow(tr *html.Node, isHeader bool) []cell {
	var row []cell

	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
			parsed := cell{
				text:     getTextContent(c),
				isHeader: isHeader || c.Data == "th",
				rowSpan:  1,
				colSpan:  1,
			}
			for _, attr := range c.Attr {
				switch attr.Key {
				case "rowspan":
					fmt.Sscanf(attr.Val, "%d", &parsed.rowSpan)
				case "colspan":
					fmt.Sscanf(attr.Val, "%d", &parsed.colSpan)
				}
			}
			if parsed.rowSpan < 1 {
				parsed.rowSpan = 1
			}
			if parsed.colSpan < 1 {
				parsed.colSpan = 1
			}
			row = append(row, parsed)
		}
	}

	return row
}

// normalize expands row and column spans into a rectangular string grid.
// A spanning cell keeps its text in the top-left slot; the covered slots
// are filled with empty strings.
func normalize(raw [][]cell) [][]string {
	if len(raw) == 0 {
		return nil
	}

	// pending[col] counts rows still covered by a rowspan above.
	pending := make(map[int]int)
	grid := make([][]string, 0, len(raw))
	width := 0

	for _, row := range raw {
		out := make([]string, 0, len(row))
		col := 0
		place := func(s string) {
			for pending[col] > 0 {
				pending[col]--
				out = append(out, "")
				col++
			}
			out = append(out, s)
			col++
		}

		for _, c := range row {
			place(c.text)
			if c.rowSpan > 1 {
				pending[col-1] += c.rowSpan - 1
			}
			for i := 1; i < c.colSpan; i++ {
				place("")
				if c.rowSpan > 1 {
					pending[col-1] += c.rowSpan - 1
				}
			}
		}
		// Trailing columns covered by spans from above.
		for pending[col] > 0 {
			pending[col]--
			out = append(out, "")
			col++
		}

		if len(out) > width {
			width = len(out)
		}
		grid = append(grid, out)
	}

	// Pad ragged rows so every row has the table width.
	for i, row := range grid {
		for len(row) < width {
			row = append(row, "")
		}
		grid[i] = row
	}

	return grid
}

// shouldSkipElement reports elements whose text is not document content.
func shouldSkipElement(tagName string) bool {
	switch tagName {
	case "script", "style", "noscript", "template", "svg", "math", "iframe", "object", "embed":
		return true
	}
	return false
}

// getTextContent extracts all text content from a node and its descendants.
func getTextContent(n *html.Node) string {
	var result strings.Builder
	getTextContentRecursive(n, &result)
	return strings.Join(strings.Fields(result.String()), " ")
}

func getTextContentRecursive(n *html.Node, result *strings.Builder) {
	if n.Type == html.TextNode {
		result.WriteString(n.Data)
	}
	if n.Type == html.ElementNode {
		if shouldSkipElement(n.Data) {
			return
		}
		if n.Data == "br" {
			result.WriteString(" ")
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		getTextContentRecursive(c, result)
	}
}
