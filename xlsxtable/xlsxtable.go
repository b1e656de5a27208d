// Package xlsxtable reads tabular data from XLSX workbooks.
//
// Each worksheet is flattened into a header row plus data rows, trimmed
// to the occupied cell region, so every row of a table has the same
// width. Cells covered by a merge come through as empty strings, the
// same padding htmltable applies to spanned cells.
package xlsxtable

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Table is one worksheet, ready for slide composition.
type Table struct {
	Sheet   string     // worksheet name
	Headers []string   // first occupied row
	Rows    [][]string // remaining rows, all the same width
}

// ReadFile extracts a table from every non-empty worksheet of an XLSX
// file, in workbook order.
func ReadFile(filename string) ([]Table, error) {
	zr, err := zip.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer zr.Close()

	return read(&zr.Reader)
}

// Read extracts tables from XLSX data read from r.
func Read(r io.ReaderAt, size int64) ([]Table, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}

	return read(zr)
}

func read(zr *zip.Reader) ([]Table, error) {
	wb, err := parseWorkbook(zr)
	if err != nil {
		return nil, err
	}

	shared := parseSharedStrings(zr)
	rels := parseRels(zr)

	var tables []Table
	for i, ref := range wb.Sheets.Sheet {
		data, err := sheetPart(zr, rels[ref.RID], i)
		if err != nil {
			continue
		}

		var ws worksheetXML
		if err := xml.Unmarshal(data, &ws); err != nil {
			continue
		}

		if t := sheetTable(ref.Name, ws, shared); len(t.Headers) > 0 {
			tables = append(tables, t)
		}
	}

	return tables, nil
}

// part reads one file out of the archive by exact name.
func part(zr *zip.Reader, name string) ([]byte, error) {
	for _, f := range zr.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("file not found: %s", name)
}

func parseWorkbook(zr *zip.Reader) (*workbookXML, error) {
	data, err := part(zr, "xl/workbook.xml")
	if err != nil {
		return nil, fmt.Errorf("not an XLSX workbook: %w", err)
	}

	var wb workbookXML
	if err := xml.Unmarshal(data, &wb); err != nil {
		return nil, fmt.Errorf("parsing workbook: %w", err)
	}
	return &wb, nil
}

// parseSharedStrings loads the shared string table. The part is optional;
// a workbook of pure numbers has none.
func parseSharedStrings(zr *zip.Reader) []string {
	data, err := part(zr, "xl/sharedStrings.xml")
	if err != nil {
		return nil
	}

	var sst sharedStringsXML
	if err := xml.Unmarshal(data, &sst); err != nil {
		return nil
	}

	shared := make([]string, len(sst.SI))
	for i, si := range sst.SI {
		if si.T != "" {
			shared[i] = si.T
			continue
		}
		// Rich text entry: concatenate the runs.
		var b strings.Builder
		for _, r := range si.R {
			b.WriteString(r.T)
		}
		shared[i] = b.String()
	}
	return shared
}

// parseRels maps workbook relationship IDs to part targets.
func parseRels(zr *zip.Reader) map[string]string {
	rels := make(map[string]string)

	data, err := part(zr, "xl/_rels/workbook.xml.rels")
	if err != nil {
		return rels
	}

	var r relationshipsXML
	if err := xml.Unmarshal(data, &r); err != nil {
		return rels
	}

	for _, rel := range r.Relationship {
		rels[rel.ID] = rel.Target
	}
	return rels
}

// sheetPart reads the worksheet part for a sheet reference, falling back
// to the conventional name when the relationship target is missing.
func sheetPart(zr *zip.Reader, target string, index int) ([]byte, error) {
	if target == "" {
		target = fmt.Sprintf("worksheets/sheet%d.xml", index+1)
	}
	target = strings.TrimPrefix(target, "/")
	if !strings.HasPrefix(target, "xl/") {
		target = "xl/" + target
	}
	return part(zr, target)
}

// sheetTable flattens one worksheet into a rectangular string grid
// trimmed to its occupied bounds. The first occupied row becomes the
// header row.
func sheetTable(name string, ws worksheetXML, shared []string) Table {
	type pos struct{ row, col int }
	cells := make(map[pos]string)

	minRow, maxRow := -1, -1
	minCol, maxCol := -1, -1

	nextRow := 0
	for _, row := range ws.SheetData.Rows {
		r := row.R - 1
		if row.R == 0 {
			// Row index attribute is optional; absent means next in sequence.
			r = nextRow
		}
		nextRow = r + 1

		nextCol := 0
		for _, c := range row.Cells {
			col := cellColumn(c.R)
			if col < 0 {
				col = nextCol
			}
			nextCol = col + 1

			v := cellValue(c, shared)
			if v == "" {
				continue
			}
			cells[pos{r, col}] = v

			if minRow < 0 || r < minRow {
				minRow = r
			}
			if r > maxRow {
				maxRow = r
			}
			if minCol < 0 || col < minCol {
				minCol = col
			}
			if col > maxCol {
				maxCol = col
			}
		}
	}

	t := Table{Sheet: name}
	if maxRow < 0 {
		return t
	}

	for r := minRow; r <= maxRow; r++ {
		out := make([]string, 0, maxCol-minCol+1)
		for c := minCol; c <= maxCol; c++ {
			out = append(out, cells[pos{r, c}])
		}
		if r == minRow {
			t.Headers = out
		} else {
			t.Rows = append(t.Rows, out)
		}
	}
	return t
}

// cellValue resolves a cell's display text from its type attribute.
func cellValue(c cellXML, shared []string) string {
	switch c.T {
	case "s": // shared string
		i, err := strconv.Atoi(c.V)
		if err != nil || i < 0 || i >= len(shared) {
			return ""
		}
		return shared[i]
	case "b":
		if c.V == "1" {
			return "TRUE"
		}
		return "FALSE"
	case "inlineStr":
		if c.Is == nil {
			return ""
		}
		return c.Is.T
	default: // n, str, e and untyped cells carry their text in <v>
		return c.V
	}
}

// cellColumn parses the column letters of an A1-style reference into a
// zero-based index. Returns -1 when the reference has no letters.
func cellColumn(ref string) int {
	n := 0
	i := 0
	for ; i < len(ref); i++ {
		ch := ref[i]
		switch {
		case ch >= 'A' && ch <= 'Z':
			n = n*26 + int(ch-'A') + 1
		case ch >= 'a' && ch <= 'z':
			n = n*26 + int(ch-'a') + 1
		default:
			if i == 0 {
				return -1
			}
			return n - 1
		}
	}
	if i == 0 {
		return -1
	}
	return n - 1
}
