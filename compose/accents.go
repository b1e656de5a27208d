package compose

import (
	"fmt"
	"strings"

	"github.com/tsawler/rostra/geom"
	"github.com/tsawler/rostra/model"
)

// TitleConfig holds the geometry and styling of a slide title.
// Start from DefaultTitleConfig and adjust fields.
type TitleConfig struct {
	X      float64 // inches
	Y      float64 // inches
	Width  float64 // inches; zero spans the canvas minus the X margin on both sides
	Height float64 // inches
	Size   float64 // points
	Font   string
	Color  model.Color
}

// DefaultTitleConfig returns the standard title strip geometry
func DefaultTitleConfig() TitleConfig {
	return TitleConfig{
		X:      0.5,
		Y:      0.3,
		Height: 0.9,
		Size:   28,
		Color:  defaultPrimary,
	}
}

// Title composes a slide title: a single text box across the top of the
// canvas holding one run.
type Title struct {
	Text   string
	Config *TitleConfig // nil uses DefaultTitleConfig unchanged
}

// Compose places the title box, failing before emission when the text is
// empty or the strip falls outside the canvas.
func (t Title) Compose(s *model.Slide) error {
	cfg := DefaultTitleConfig()
	if t.Config != nil {
		cfg = *t.Config
	}

	if strings.TrimSpace(t.Text) == "" {
		return fmt.Errorf("slide title must not be empty")
	}

	width := geom.Inches(cfg.Width)
	if cfg.Width == 0 {
		width = s.Width - 2*geom.Inches(cfg.X)
	}
	rect := geom.Rect{X: geom.Inches(cfg.X), Y: geom.Inches(cfg.Y), Width: width, Height: geom.Inches(cfg.Height)}
	if err := checkCanvas(s, "slide title", rect); err != nil {
		return err
	}

	box := s.AddTextBox(rect)
	box.AddParagraph(model.AlignLeft).AddRun(t.Text,
		model.Style{Font: cfg.Font, Size: cfg.Size, Color: cfg.Color})
	return nil
}

// BackdropConfig holds the geometry and color of a content backdrop.
// Start from DefaultBackdropConfig and adjust fields.
type BackdropConfig struct {
	Width  float64 // inches
	Height float64 // inches
	Color  model.Color
}

// DefaultBackdropConfig returns the standard backdrop for the default
// canvas: a light gray panel spanning the full width
func DefaultBackdropConfig() BackdropConfig {
	return BackdropConfig{
		Width:  13.33,
		Height: 6.49,
		Color:  defaultBackdrop,
	}
}

// Backdrop composes the content background panel: a filled rectangle
// centered horizontally and aligned to the bottom edge of the canvas.
type Backdrop struct {
	Config *BackdropConfig // nil uses DefaultBackdropConfig unchanged
}

// Compose places the panel, failing before emission when it does not fit
// the canvas.
func (b Backdrop) Compose(s *model.Slide) error {
	cfg := DefaultBackdropConfig()
	if b.Config != nil {
		cfg = *b.Config
	}

	width := geom.Inches(cfg.Width)
	height := geom.Inches(cfg.Height)
	rect := geom.Rect{
		X:      geom.CenterX(s.Width, width),
		Y:      s.Height - height,
		Width:  width,
		Height: height,
	}
	if err := checkCanvas(s, "backdrop", rect); err != nil {
		return err
	}

	s.AddFilledRect(rect, cfg.Color, cfg.Color, geom.Points(1))
	return nil
}

// DividerConfig holds the geometry and color of a horizontal divider.
// Start from DefaultDividerConfig and adjust fields.
type DividerConfig struct {
	Width  float64 // inches
	Weight float64 // points
	Color  model.Color
}

// DefaultDividerConfig returns the standard divider rule
func DefaultDividerConfig() DividerConfig {
	return DividerConfig{
		Width:  12.52,
		Weight: 4,
		Color:  defaultPrimary,
	}
}

// Divider composes a horizontal rule across the slide.
type Divider struct {
	// Y positions the rule, in inches from the canvas top.
	Y float64

	// X positions the rule's left edge, in inches. When nil the rule is
	// centered horizontally; an explicit value always wins over centering.
	X *float64

	Config *DividerConfig // nil uses DefaultDividerConfig unchanged
}

// Compose places the rule, failing before emission when it falls outside
// the canvas.
func (d Divider) Compose(s *model.Slide) error {
	cfg := DefaultDividerConfig()
	if d.Config != nil {
		cfg = *d.Config
	}

	width := geom.Inches(cfg.Width)
	x := geom.CenterX(s.Width, width)
	if d.X != nil {
		x = geom.Inches(*d.X)
	}

	rect := geom.Rect{X: x, Y: geom.Inches(d.Y), Width: width}
	if err := checkCanvas(s, "divider", rect); err != nil {
		return err
	}

	s.AddLine(rect, cfg.Color, geom.Points(cfg.Weight))
	return nil
}
