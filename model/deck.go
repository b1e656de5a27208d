package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/tsawler/rostra/geom"
)

// Deck represents a complete presentation: canvas dimensions, metadata, and
// an ordered list of slides
type Deck struct {
	Metadata    Metadata
	SlideWidth  geom.EMU
	SlideHeight geom.EMU
	Slides      []*Slide
}

// Metadata contains document-level information written to the document
// properties of the saved file
type Metadata struct {
	Title       string
	Author      string
	Subject     string
	Keywords    []string
	Company     string
	Application string
	Identifier  string // stable per-deck identifier, assigned at creation
	Created     time.Time
	Modified    time.Time
}

// NewDeck creates an empty deck with the default 13.33in × 7.5in canvas
func NewDeck() *Deck {
	return NewDeckSize(geom.Inches(13.33), geom.Inches(7.5))
}

// NewDeckSize creates an empty deck with the given canvas dimensions.
// Every deck gets a unique identifier and UTC creation timestamps.
func NewDeckSize(width, height geom.EMU) *Deck {
	now := time.Now().UTC()
	return &Deck{
		Metadata: Metadata{
			Application: "rostra",
			Identifier:  uuid.NewString(),
			Created:     now,
			Modified:    now,
		},
		SlideWidth:  width,
		SlideHeight: height,
		Slides:      make([]*Slide, 0),
	}
}

// AddSlide appends a new empty slide sized to the deck canvas and returns it
func (d *Deck) AddSlide() *Slide {
	s := &Slide{
		Number: len(d.Slides) + 1,
		Width:  d.SlideWidth,
		Height: d.SlideHeight,
	}
	d.Slides = append(d.Slides, s)
	return s
}

// GetSlide returns a slide by number (1-indexed), or nil when out of range
func (d *Deck) GetSlide(number int) *Slide {
	if number < 1 || number > len(d.Slides) {
		return nil
	}
	return d.Slides[number-1]
}

// SlideCount returns the total number of slides
func (d *Deck) SlideCount() int {
	return len(d.Slides)
}

// PrimitiveCount returns the total number of primitives across all slides
func (d *Deck) PrimitiveCount() int {
	var n int
	for _, s := range d.Slides {
		n += len(s.Primitives)
	}
	return n
}

// ExtractText returns all text content concatenated in slide order
func (d *Deck) ExtractText() string {
	var text string
	for _, s := range d.Slides {
		text += s.ExtractText() + "\n"
	}
	return text
}
