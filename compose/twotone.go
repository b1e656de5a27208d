package compose

import (
	"fmt"
	"strings"

	"github.com/tsawler/rostra/geom"
	"github.com/tsawler/rostra/model"
)

// DefaultWidgetY is the vertical offset, in inches, of a widget whose Y
// position is omitted.
const DefaultWidgetY = 2.0

// Fixed interior insets of the two-tone widget, in inches.
const (
	titleInsetY     = 0.1
	columnInsetX    = 0.2
	columnInsetY    = 0.1
	leftColumnWidth = 1.0
	rightColumnX    = 1.2
)

// presetRoundedTop is the shape preset used for the widget bands; the
// bottom band is the same preset rotated 180° so its rounded corners face
// down.
const presetRoundedTop = "round2SameRect"

// WidgetConfig holds the geometry and palette of a two-tone widget.
// Start from DefaultWidgetConfig and adjust fields.
type WidgetConfig struct {
	Width        float64 // inches
	TopHeight    float64 // inches; title band
	BottomHeight float64 // inches; column band
	TitleSize    float64 // points
	BodySize     float64 // points
	LineSpacing  float64 // points of space before each line after the first
	BorderWidth  float64 // points
	Font         string  // empty falls back to the theme font
	Primary      model.Color
	Background   model.Color
}

// DefaultWidgetConfig returns the standard widget dimensions and palette
func DefaultWidgetConfig() WidgetConfig {
	return WidgetConfig{
		Width:        3.87,
		TopHeight:    0.51,
		BottomHeight: 0.75,
		TitleSize:    14,
		BodySize:     12,
		LineSpacing:  6,
		BorderWidth:  1,
		Primary:      defaultPrimary,
		Background:   defaultBackground,
	}
}

// TwoTone composes a two-tone metric widget: a primary-colored title band
// over a background-colored band holding two text columns. It emits exactly
// five primitives: the two bands, the title box, and the left and right
// column boxes.
//
// Column lines pair by index. When the lists differ in length both boxes
// still emit max(m, n) paragraphs - the shorter column is padded with empty
// paragraphs so every line keeps its row. An empty list leaves its box
// empty.
type TwoTone struct {
	Title string
	Left  []string // left column lines, top to bottom
	Right []string // right column lines, top to bottom

	// X positions the widget's left edge, in inches. When nil the widget
	// is centered horizontally on the canvas; an explicit value always
	// wins over centering.
	X *float64

	// Y positions the widget's top edge, in inches. When nil the widget
	// sits at DefaultWidgetY.
	Y *float64

	// Config overrides the widget geometry and palette. Nil uses
	// DefaultWidgetConfig unchanged.
	Config *WidgetConfig
}

// Compose places the widget on the slide. It fails before emitting anything
// when the title is empty, a configured dimension is not positive, or the
// widget rect falls outside the canvas.
func (w TwoTone) Compose(s *model.Slide) error {
	cfg := DefaultWidgetConfig()
	if w.Config != nil {
		cfg = *w.Config
	}

	if strings.TrimSpace(w.Title) == "" {
		return fmt.Errorf("widget title must not be empty")
	}
	if cfg.Width <= 0 {
		return fmt.Errorf("widget width must be positive, got %v", cfg.Width)
	}
	if cfg.TopHeight <= 0 {
		return fmt.Errorf("widget top height must be positive, got %v", cfg.TopHeight)
	}
	if cfg.BottomHeight <= 2*columnInsetY {
		return fmt.Errorf("widget bottom height must exceed %vin, got %v", 2*columnInsetY, cfg.BottomHeight)
	}

	width := geom.Inches(cfg.Width)
	top := geom.Inches(cfg.TopHeight)
	bottom := geom.Inches(cfg.BottomHeight)

	x := geom.CenterX(s.Width, width)
	if w.X != nil {
		x = geom.Inches(*w.X)
	}
	y := geom.Inches(DefaultWidgetY)
	if w.Y != nil {
		y = geom.Inches(*w.Y)
	}

	rect := geom.Rect{X: x, Y: y, Width: width, Height: top + bottom}
	if err := checkCanvas(s, "widget", rect); err != nil {
		return err
	}

	border := geom.Points(cfg.BorderWidth)

	topBand := s.AddFilledRect(geom.Rect{X: x, Y: y, Width: width, Height: top},
		cfg.Primary, cfg.Primary, border)
	topBand.Preset = presetRoundedTop

	bottomBand := s.AddFilledRect(geom.Rect{X: x, Y: y + top, Width: width, Height: bottom},
		cfg.Background, cfg.Primary, border)
	bottomBand.Preset = presetRoundedTop
	bottomBand.Rotation = 180

	titleBox := s.AddTextBox(geom.Rect{X: x, Y: y + geom.Inches(titleInsetY), Width: width, Height: top})
	titleStyle := model.Style{Font: cfg.Font, Size: cfg.TitleSize, Bold: true, Color: cfg.Background}
	titleBox.AddParagraph(model.AlignCenter).AddRun(w.Title, titleStyle)

	colY := y + top + geom.Inches(columnInsetY)
	colHeight := bottom - geom.Inches(2*columnInsetY)
	bodyStyle := model.Style{Font: cfg.Font, Size: cfg.BodySize, Bold: true, Color: cfg.Primary}
	spacing := geom.Points(cfg.LineSpacing)

	rows := len(w.Left)
	if len(w.Right) > rows {
		rows = len(w.Right)
	}

	leftBox := s.AddTextBox(geom.Rect{
		X:      x + geom.Inches(columnInsetX),
		Y:      colY,
		Width:  geom.Inches(leftColumnWidth),
		Height: colHeight,
	})
	fillColumn(leftBox, w.Left, rows, model.AlignLeft, bodyStyle, spacing)

	rightBox := s.AddTextBox(geom.Rect{
		X:      x + geom.Inches(rightColumnX),
		Y:      colY,
		Width:  width - geom.Inches(rightColumnX+columnInsetX),
		Height: colHeight,
	})
	fillColumn(rightBox, w.Right, rows, model.AlignRight, bodyStyle, spacing)

	return nil
}

// fillColumn emits one paragraph per row. Rows beyond the column's own
// lines stay empty so the two columns keep pairing by index; a column with
// no lines at all keeps its box empty.
func fillColumn(tb *model.TextBox, lines []string, rows int, align model.Alignment, style model.Style, spacing geom.EMU) {
	if len(lines) == 0 {
		return
	}
	for i := 0; i < rows; i++ {
		p := tb.AddParagraph(align)
		if i > 0 {
			p.SpaceBefore = spacing
		}
		if i < len(lines) {
			p.AddRun(lines[i], style)
		}
	}
}
