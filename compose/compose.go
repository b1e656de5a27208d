package compose

import (
	"fmt"

	"github.com/tsawler/rostra/geom"
	"github.com/tsawler/rostra/model"
)

// Item is a single composition operation. Compose places the item's
// primitives on the slide or returns an error having placed nothing.
type Item interface {
	Compose(s *model.Slide) error
}

// Default palette. These are the fixed design constants; configs carry them
// so individual calls can override.
var (
	defaultPrimary    = model.RGB(31, 57, 108)
	defaultBackground = model.RGB(255, 255, 255)
	defaultBackdrop   = model.RGB(227, 228, 231)
)

// checkCanvas verifies a rect about to be emitted stays inside the slide
// canvas. The name identifies the offending element in the error.
func checkCanvas(s *model.Slide, name string, r geom.Rect) error {
	if r.Within(s.Canvas()) {
		return nil
	}
	return fmt.Errorf("%s rect (%.2f, %.2f, %.2f, %.2f)in outside canvas bounds %.2f×%.2fin",
		name, r.X.Inches(), r.Y.Inches(), r.Width.Inches(), r.Height.Inches(),
		s.Width.Inches(), s.Height.Inches())
}
