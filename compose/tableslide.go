package compose

import (
	"fmt"
	"strings"

	"github.com/tsawler/rostra/geom"
	"github.com/tsawler/rostra/model"
)

// Title strip above a table, in inches.
const (
	tableTitleY      = 0.3
	tableTitleHeight = 0.8
)

// TableConfig holds the geometry and palette of a table slide.
// Start from DefaultTableConfig and adjust fields.
type TableConfig struct {
	X          float64 // inches; table left edge
	Y          float64 // inches; table top edge
	Width      float64 // inches
	Height     float64 // inches
	TitleSize  float64 // points
	BodySize   float64 // points
	Font       string
	Primary    model.Color // header fill and title color
	HeaderText model.Color // header run color
}

// DefaultTableConfig returns the standard table slide geometry for the
// default canvas
func DefaultTableConfig() TableConfig {
	return TableConfig{
		X:          0.5,
		Y:          1.3,
		Width:      12.33,
		Height:     5.2,
		TitleSize:  20,
		BodySize:   12,
		Primary:    defaultPrimary,
		HeaderText: defaultBackground,
	}
}

// Table composes a titled data grid: a centered bold title above a table
// whose first row holds the headers (bold, colored on a primary fill) and
// whose remaining rows hold the data.
//
// Rows hold already-stringified cell values; sources carrying typed values
// convert every cell explicitly before composing (see the manifest
// package).
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string

	// Config overrides the slide geometry and palette. Nil uses
	// DefaultTableConfig unchanged.
	Config *TableConfig
}

// Compose places the title and grid on the slide. All preconditions (title,
// headers, row widths, canvas bounds) are checked before any primitive is
// emitted; on error the slide is untouched.
func (t Table) Compose(s *model.Slide) error {
	cfg := DefaultTableConfig()
	if t.Config != nil {
		cfg = *t.Config
	}

	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("table title must not be empty")
	}
	if len(t.Headers) == 0 {
		return fmt.Errorf("table headers must not be empty")
	}
	for i, row := range t.Rows {
		if len(row) != len(t.Headers) {
			return fmt.Errorf("table row %d has %d cells, want %d", i, len(row), len(t.Headers))
		}
	}

	titleRect := geom.RectInches(cfg.X, tableTitleY, cfg.Width, tableTitleHeight)
	gridRect := geom.RectInches(cfg.X, cfg.Y, cfg.Width, cfg.Height)
	if err := checkCanvas(s, "table title", titleRect); err != nil {
		return err
	}
	if err := checkCanvas(s, "table", gridRect); err != nil {
		return err
	}

	titleBox := s.AddTextBox(titleRect)
	titleBox.AddParagraph(model.AlignCenter).AddRun(t.Title,
		model.Style{Font: cfg.Font, Size: cfg.TitleSize, Bold: true, Color: cfg.Primary})

	grid, err := s.AddTable(gridRect, len(t.Rows)+1, len(t.Headers))
	if err != nil {
		return err
	}

	headerStyle := model.Style{Font: cfg.Font, Size: cfg.BodySize, Bold: true, Color: cfg.HeaderText}
	for c, h := range t.Headers {
		cell, err := grid.Cell(0, c)
		if err != nil {
			return err
		}
		cell.Text = h
		cell.Style = headerStyle
		fill := cfg.Primary
		cell.Fill = &fill
	}

	bodyStyle := model.Style{Font: cfg.Font, Size: cfg.BodySize}
	for r, row := range t.Rows {
		for c, v := range row {
			cell, err := grid.Cell(r+1, c)
			if err != nil {
				return err
			}
			cell.Text = v
			cell.Style = bodyStyle
		}
	}

	return nil
}
