package model

import (
	"strings"

	"github.com/tsawler/rostra/geom"
)

// PrimitiveType represents the type of slide primitive
type PrimitiveType int

const (
	PrimitiveUnknown PrimitiveType = iota
	PrimitiveFilledRect
	PrimitiveTextBox
	PrimitiveTable
	PrimitiveLine
	PrimitivePicture
)

func (pt PrimitiveType) String() string {
	switch pt {
	case PrimitiveFilledRect:
		return "FilledRect"
	case PrimitiveTextBox:
		return "TextBox"
	case PrimitiveTable:
		return "Table"
	case PrimitiveLine:
		return "Line"
	case PrimitivePicture:
		return "Picture"
	default:
		return "Unknown"
	}
}

// Primitive is the interface for all slide primitives
type Primitive interface {
	Type() PrimitiveType
	Bounds() geom.Rect
}

// TextPrimitive is an interface for primitives that own a text frame.
// Primitive variants without text (filled rectangles, lines, tables,
// pictures) deliberately do not implement it; capability is decided by the
// type, never probed at runtime.
type TextPrimitive interface {
	Primitive
	GetText() string
	GetParagraphs() []*Paragraph
}

// FilledRect represents a filled rectangle with a border
type FilledRect struct {
	Rect        geom.Rect
	Fill        Color
	BorderColor Color
	BorderWidth geom.EMU
	Preset      string  // shape preset geometry; empty means plain rectangle
	Rotation    float64 // degrees clockwise
}

func (r *FilledRect) Type() PrimitiveType { return PrimitiveFilledRect }
func (r *FilledRect) Bounds() geom.Rect   { return r.Rect }

// TextBox represents a text frame holding paragraphs of styled runs
type TextBox struct {
	Rect       geom.Rect
	Paragraphs []*Paragraph
}

func (tb *TextBox) Type() PrimitiveType { return PrimitiveTextBox }
func (tb *TextBox) Bounds() geom.Rect   { return tb.Rect }

// GetParagraphs returns the paragraphs of the text frame
func (tb *TextBox) GetParagraphs() []*Paragraph { return tb.Paragraphs }

// GetText returns the text content, one line per paragraph
func (tb *TextBox) GetText() string {
	parts := make([]string, len(tb.Paragraphs))
	for i, p := range tb.Paragraphs {
		parts[i] = p.GetText()
	}
	return strings.Join(parts, "\n")
}

// AddParagraph appends a paragraph with the given alignment
func (tb *TextBox) AddParagraph(align Alignment) *Paragraph {
	p := &Paragraph{Alignment: align}
	tb.Paragraphs = append(tb.Paragraphs, p)
	return p
}

// Paragraph represents one paragraph inside a text frame
type Paragraph struct {
	Alignment   Alignment
	SpaceBefore geom.EMU // vertical space inserted above the paragraph
	Runs        []*Run
}

// AddRun appends a styled run of text
func (p *Paragraph) AddRun(text string, style Style) *Run {
	r := &Run{Text: text, Style: style}
	p.Runs = append(p.Runs, r)
	return r
}

// GetText returns the concatenated run text
func (p *Paragraph) GetText() string {
	var sb strings.Builder
	for _, r := range p.Runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// Run represents a contiguous span of identically styled text
type Run struct {
	Text  string
	Style Style
}

// Line represents a straight connector. A zero Height draws a horizontal
// rule across the rect's width.
type Line struct {
	Rect   geom.Rect
	Color  Color
	Weight geom.EMU
}

func (l *Line) Type() PrimitiveType { return PrimitiveLine }
func (l *Line) Bounds() geom.Rect   { return l.Rect }

// Alignment represents paragraph alignment
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
	AlignJustify
)

func (a Alignment) String() string {
	switch a {
	case AlignCenter:
		return "Center"
	case AlignRight:
		return "Right"
	case AlignJustify:
		return "Justify"
	default:
		return "Left"
	}
}
