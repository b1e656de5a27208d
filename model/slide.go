package model

import (
	"fmt"

	"github.com/tsawler/rostra/geom"
)

// Slide represents a single slide: a fixed-size canvas holding an ordered
// list of placed primitives
type Slide struct {
	Number     int      // 1-indexed slide number
	Width      geom.EMU // canvas width, copied from the deck at creation
	Height     geom.EMU // canvas height
	Primitives []Primitive
}

// Canvas returns the slide's drawing area as a rectangle at the origin
func (s *Slide) Canvas() geom.Rect {
	return geom.Rect{Width: s.Width, Height: s.Height}
}

// AddFilledRect places a filled rectangle on the slide
func (s *Slide) AddFilledRect(r geom.Rect, fill, border Color, borderWidth geom.EMU) *FilledRect {
	fr := &FilledRect{
		Rect:        r,
		Fill:        fill,
		BorderColor: border,
		BorderWidth: borderWidth,
	}
	s.Primitives = append(s.Primitives, fr)
	return fr
}

// AddTextBox places an empty text box on the slide
func (s *Slide) AddTextBox(r geom.Rect) *TextBox {
	tb := &TextBox{Rect: r}
	s.Primitives = append(s.Primitives, tb)
	return tb
}

// AddLine places a straight connector on the slide
func (s *Slide) AddLine(r geom.Rect, color Color, weight geom.EMU) *Line {
	l := &Line{Rect: r, Color: color, Weight: weight}
	s.Primitives = append(s.Primitives, l)
	return l
}

// AddTable places an empty rows × cols table grid on the slide
func (s *Slide) AddTable(r geom.Rect, rows, cols int) (*Table, error) {
	if rows < 1 {
		return nil, fmt.Errorf("table rows must be positive, got %d", rows)
	}
	if cols < 1 {
		return nil, fmt.Errorf("table cols must be positive, got %d", cols)
	}
	t := newTable(r, rows, cols)
	s.Primitives = append(s.Primitives, t)
	return t, nil
}

// PrimitiveCount returns the number of primitives placed on the slide
func (s *Slide) PrimitiveCount() int {
	return len(s.Primitives)
}

// ExtractText concatenates the text of all text-bearing primitives and
// tables, in placement order
func (s *Slide) ExtractText() string {
	var text string
	for _, p := range s.Primitives {
		if tp, ok := p.(TextPrimitive); ok {
			text += tp.GetText() + "\n"
			continue
		}
		if t, ok := p.(*Table); ok {
			text += t.GetText()
		}
	}
	return text
}

// ExtractTables returns all table primitives on the slide
func (s *Slide) ExtractTables() []*Table {
	var tables []*Table
	for _, p := range s.Primitives {
		if t, ok := p.(*Table); ok {
			tables = append(tables, t)
		}
	}
	return tables
}

// PrimitivesInRegion returns primitives whose bounds intersect the given rect
func (s *Slide) PrimitivesInRegion(r geom.Rect) []Primitive {
	var out []Primitive
	for _, p := range s.Primitives {
		if r.Intersects(p.Bounds()) {
			out = append(out, p)
		}
	}
	return out
}
