package compose

import (
	"strings"
	"testing"

	"github.com/tsawler/rostra/geom"
	"github.com/tsawler/rostra/model"
)

func tableAt(t *testing.T, s *model.Slide, i int) *model.Table {
	t.Helper()
	tbl, ok := s.Primitives[i].(*model.Table)
	if !ok {
		t.Fatalf("primitive %d is %T, want *model.Table", i, s.Primitives[i])
	}
	return tbl
}

func cellAt(t *testing.T, tbl *model.Table, row, col int) *model.Cell {
	t.Helper()
	cell, err := tbl.Cell(row, col)
	if err != nil {
		t.Fatalf("Cell(%d, %d) error: %v", row, col, err)
	}
	return cell
}

// ============================================================================
// Table Slide Tests
// ============================================================================

func TestTableSlidePrimitives(t *testing.T) {
	s := newTestSlide(t)

	item := Table{
		Title:   "Open Findings",
		Headers: []string{"Risk", "3Q24", "4Q24"},
		Rows: [][]string{
			{"Technology Operations", "12", "9"},
			{"Development", "4", "4"},
		},
	}
	if err := item.Compose(s); err != nil {
		t.Fatalf("Compose() error: %v", err)
	}

	if s.PrimitiveCount() != 2 {
		t.Fatalf("PrimitiveCount() = %d, want 2", s.PrimitiveCount())
	}

	title := textBoxAt(t, s, 0)
	if got := title.GetText(); got != "Open Findings" {
		t.Errorf("title text = %q, want %q", got, "Open Findings")
	}
	if got := title.Paragraphs[0].Alignment; got != model.AlignCenter {
		t.Errorf("title alignment = %v, want %v", got, model.AlignCenter)
	}

	// One header row above the data rows.
	grid := tableAt(t, s, 1)
	if grid.RowCount() != 3 {
		t.Errorf("RowCount() = %d, want 3", grid.RowCount())
	}
	if grid.ColCount() != 3 {
		t.Errorf("ColCount() = %d, want 3", grid.ColCount())
	}
}

func TestTableSlideGeometry(t *testing.T) {
	s := newTestSlide(t)

	item := Table{
		Title:   "Open Findings",
		Headers: []string{"Risk", "Count"},
		Rows:    [][]string{{"Development", "4"}},
	}
	if err := item.Compose(s); err != nil {
		t.Fatalf("Compose() error: %v", err)
	}

	title := textBoxAt(t, s, 0)
	if got, want := title.Bounds(), geom.RectInches(0.5, 0.3, 12.33, 0.8); got != want {
		t.Errorf("title bounds = %+v, want %+v", got, want)
	}

	grid := tableAt(t, s, 1)
	if got, want := grid.Bounds(), geom.RectInches(0.5, 1.3, 12.33, 5.2); got != want {
		t.Errorf("table bounds = %+v, want %+v", got, want)
	}
}

func TestTableSlideHeaderStyling(t *testing.T) {
	s := newTestSlide(t)

	item := Table{
		Title:   "Open Findings",
		Headers: []string{"Risk", "3Q24"},
		Rows:    [][]string{{"Resiliency", "2"}},
	}
	if err := item.Compose(s); err != nil {
		t.Fatalf("Compose() error: %v", err)
	}

	grid := tableAt(t, s, 1)
	for c, want := range item.Headers {
		cell := cellAt(t, grid, 0, c)
		if cell.Text != want {
			t.Errorf("header %d text = %q, want %q", c, cell.Text, want)
		}
		if !cell.Style.Bold {
			t.Errorf("header %d is not bold", c)
		}
		if cell.Style.Color != defaultBackground {
			t.Errorf("header %d color = %v, want %v", c, cell.Style.Color, defaultBackground)
		}
		if cell.Fill == nil || *cell.Fill != defaultPrimary {
			t.Errorf("header %d fill = %v, want %v", c, cell.Fill, defaultPrimary)
		}
	}

	body := cellAt(t, grid, 1, 0)
	if body.Style.Bold {
		t.Error("body cell is bold, want plain")
	}
	if body.Fill != nil {
		t.Errorf("body cell fill = %v, want none", body.Fill)
	}
}

func TestTableSlideCellContents(t *testing.T) {
	s := newTestSlide(t)

	rows := [][]string{
		{"Technology Operations", "12", "9"},
		{"Development", "4", "4"},
		{"Resiliency", "2", "0"},
	}
	item := Table{
		Title:   "Open Findings",
		Headers: []string{"Risk", "3Q24", "4Q24"},
		Rows:    rows,
	}
	if err := item.Compose(s); err != nil {
		t.Fatalf("Compose() error: %v", err)
	}

	grid := tableAt(t, s, 1)
	for r, row := range rows {
		for c, want := range row {
			if got := cellAt(t, grid, r+1, c).Text; got != want {
				t.Errorf("cell (%d, %d) = %q, want %q", r+1, c, got, want)
			}
		}
	}
}

func TestTableSlideValidation(t *testing.T) {
	offCanvas := DefaultTableConfig()
	offCanvas.Y = 3.0
	offCanvas.Height = 5.2

	tests := []struct {
		name    string
		item    Table
		wantErr string
	}{
		{
			name:    "empty title",
			item:    Table{Title: " ", Headers: []string{"Risk"}},
			wantErr: "title",
		},
		{
			name:    "no headers",
			item:    Table{Title: "Open Findings"},
			wantErr: "headers",
		},
		{
			name: "ragged row",
			item: Table{
				Title:   "Open Findings",
				Headers: []string{"Risk", "Count"},
				Rows:    [][]string{{"Development", "4"}, {"Resiliency"}},
			},
			wantErr: "row 1 has 1 cells, want 2",
		},
		{
			name: "grid off the canvas",
			item: Table{
				Title:   "Open Findings",
				Headers: []string{"Risk"},
				Config:  &offCanvas,
			},
			wantErr: "outside canvas",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSlide(t)
			err := tt.item.Compose(s)
			if err == nil {
				t.Fatal("Compose() succeeded, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
			if s.PrimitiveCount() != 0 {
				t.Errorf("failed compose left %d primitives on the slide", s.PrimitiveCount())
			}
		})
	}
}
