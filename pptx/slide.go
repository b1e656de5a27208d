package pptx

import (
	"strings"

	"github.com/tsawler/rostra/geom"
)

// Slide is the parsed content of one slide part. Shapes are grouped by
// kind; within each group they keep their order in the file.
type Slide struct {
	Index    int    // 0-indexed position in the deck
	Title    string // text of the title placeholder, when one exists
	Content  []TextBlock
	Shapes   []Shape
	Lines    []Line
	Tables   []Table
	Pictures []PictureRef
}

// TextBlock is a text frame read back from a slide. Run-less paragraphs
// are kept so spacing rows survive a round trip.
type TextBlock struct {
	Text        string // non-empty paragraph text joined with newlines
	Paragraphs  []Paragraph
	IsTitle     bool
	Placeholder string   // placeholder type (title, body, etc.)
	X, Y        geom.EMU // position in EMUs
	Width       geom.EMU
	Height      geom.EMU
}

// Paragraph is one paragraph of a text frame.
type Paragraph struct {
	Text        string
	Alignment   string // l, ctr, r, just
	SpaceBefore int    // hundredths of a point
	Runs        []Run
}

// Run is a span of identically formatted text.
type Run struct {
	Text     string
	Bold     bool
	Italic   bool
	FontSize int    // hundredths of a point
	Color    string // RRGGBB hex, empty when unset
	Font     string
}

// Shape is a filled geometry shape with no text frame.
type Shape struct {
	Preset      string // preset geometry name
	Fill        string // RRGGBB hex
	BorderColor string
	BorderWidth geom.EMU
	Rotation    float64 // degrees
	X, Y        geom.EMU
	Width       geom.EMU
	Height      geom.EMU
}

// Line is a connector shape.
type Line struct {
	Color  string // RRGGBB hex
	Weight geom.EMU
	X, Y   geom.EMU
	Width  geom.EMU
	Height geom.EMU
}

// Table is a table read back from a graphic frame.
type Table struct {
	Rows    [][]TableCell
	Columns int
	X, Y    geom.EMU
	Width   geom.EMU
	Height  geom.EMU
}

// TableCell is one cell of a read table.
type TableCell struct {
	Text string
	Bold bool
	Fill string // RRGGBB hex, empty when unfilled
}

// PictureRef points at an embedded image part.
type PictureRef struct {
	Target string // media part path, e.g. ppt/media/image1.png
	Data   []byte
	X, Y   geom.EMU
	Width  geom.EMU
	Height geom.EMU
}

// GetText returns all text from the slide as a single string.
func (s *Slide) GetText() string {
	var b strings.Builder

	if s.Title != "" {
		b.WriteString(s.Title)
		b.WriteString("\n\n")
	}

	for _, block := range s.Content {
		if block.IsTitle {
			continue
		}
		wrote := false
		for _, para := range block.Paragraphs {
			if para.Text != "" {
				b.WriteString(para.Text)
				b.WriteString("\n")
				wrote = true
			}
		}
		if wrote {
			b.WriteString("\n")
		}
	}

	return b.String()
}

// GetMarkdown returns the slide content as Markdown.
func (s *Slide) GetMarkdown() string {
	var b strings.Builder

	if s.Title != "" {
		b.WriteString("# ")
		b.WriteString(s.Title)
		b.WriteString("\n\n")
	}

	for _, block := range s.Content {
		if block.IsTitle {
			continue
		}
		for _, para := range block.Paragraphs {
			if para.Text == "" {
				continue
			}
			b.WriteString(para.Text)
			b.WriteString("\n\n")
		}
	}

	for _, table := range s.Tables {
		b.WriteString("\n")
		b.WriteString(table.ToMarkdown())
	}

	return b.String()
}

// ToMarkdown converts a table to Markdown, treating the first row as the
// header.
func (t *Table) ToMarkdown() string {
	if len(t.Rows) == 0 {
		return ""
	}

	var b strings.Builder

	b.WriteString("|")
	for _, cell := range t.Rows[0] {
		b.WriteString(" " + escapeMarkdown(cell.Text) + " |")
	}
	b.WriteString("\n|")
	for range t.Rows[0] {
		b.WriteString("---|")
	}
	b.WriteString("\n")

	for _, row := range t.Rows[1:] {
		b.WriteString("|")
		for _, cell := range row {
			b.WriteString(" " + escapeMarkdown(cell.Text) + " |")
		}
		b.WriteString("\n")
	}

	return b.String()
}

// escapeMarkdown neutralizes characters that would break a table cell.
func escapeMarkdown(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	return s
}
