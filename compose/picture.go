package compose

import (
	"fmt"
	"os"

	"github.com/tsawler/rostra/geom"
	"github.com/tsawler/rostra/model"
)

// Picture composes an image read from disk. Width and Height are in
// inches; a zero dimension is derived from the image's pixel size, so
// only explicitly sized pictures are checked against the canvas before
// placement.
type Picture struct {
	Path   string
	X      float64 // inches
	Y      float64 // inches
	Width  float64 // inches; zero derives from the image
	Height float64 // inches; zero derives from the image
}

// Compose reads and places the image. Decoding failures and explicit
// out-of-canvas placement fail before any primitive is emitted.
func (p Picture) Compose(s *model.Slide) error {
	data, err := os.ReadFile(p.Path)
	if err != nil {
		return fmt.Errorf("read picture %s: %w", p.Path, err)
	}

	rect := geom.RectInches(p.X, p.Y, p.Width, p.Height)
	if p.Width > 0 && p.Height > 0 {
		if err := checkCanvas(s, "picture", rect); err != nil {
			return err
		}
	}

	if _, err := s.AddPicture(rect, data); err != nil {
		return fmt.Errorf("place picture %s: %w", p.Path, err)
	}
	return nil
}
