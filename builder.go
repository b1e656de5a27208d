package rostra

import (
	"fmt"
	"io"
	"strings"

	"github.com/tsawler/rostra/compose"
	"github.com/tsawler/rostra/geom"
	"github.com/tsawler/rostra/model"
	"github.com/tsawler/rostra/pptx"
)

// Deck provides a fluent interface for assembling a presentation.
// Each configuration method returns a new Deck instance, making it
// safe to branch chains and reuse common prefixes.
type Deck struct {
	// Configuration
	options deckOptions

	// Pending slides. Each entry holds the composition items of one slide,
	// applied in order when a terminal operation runs.
	slides [][]compose.Item

	// Accumulated error (fail-fast)
	err error

	// Warnings accumulated during assembly
	warnings []Warning
}

// clone creates a shallow copy of the Deck with a deep copy of options.
// This ensures immutability - each chain method returns a new instance.
func (d *Deck) clone() *Deck {
	return &Deck{
		options:  d.options.clone(),
		slides:   append([][]compose.Item(nil), d.slides...),
		err:      d.err,
		warnings: append([]Warning(nil), d.warnings...),
	}
}

// ============================================================================
// Configuration Methods (return new Deck instance)
// ============================================================================

// Size sets the slide canvas size in inches. The default is the standard
// widescreen canvas, 13.33in × 7.5in.
//
// Example:
//
//	warnings, err := rostra.New().Size(10, 7.5).AddSlide(items...).Save("deck.pptx")
func (d *Deck) Size(widthInches, heightInches float64) *Deck {
	newDeck := d.clone()
	if widthInches <= 0 || heightInches <= 0 {
		if newDeck.err == nil {
			newDeck.err = fmt.Errorf("canvas size must be positive, got %v×%v", widthInches, heightInches)
		}
		return newDeck
	}
	newDeck.options.width = geom.Inches(widthInches)
	newDeck.options.height = geom.Inches(heightInches)
	return newDeck
}

// Title sets the document title written to the file's core properties.
func (d *Deck) Title(title string) *Deck {
	newDeck := d.clone()
	newDeck.options.title = title
	return newDeck
}

// Author sets the document author.
func (d *Deck) Author(author string) *Deck {
	newDeck := d.clone()
	newDeck.options.author = author
	return newDeck
}

// Subject sets the document subject.
func (d *Deck) Subject(subject string) *Deck {
	newDeck := d.clone()
	newDeck.options.subject = subject
	return newDeck
}

// Company sets the company name written to the file's app properties.
func (d *Deck) Company(company string) *Deck {
	newDeck := d.clone()
	newDeck.options.company = company
	return newDeck
}

// Keywords adds document keywords. Multiple calls are cumulative.
func (d *Deck) Keywords(words ...string) *Deck {
	newDeck := d.clone()
	newDeck.options.keywords = append(newDeck.options.keywords, words...)
	return newDeck
}

// AddSlide appends a slide assembled from the given composition items.
// Items are applied in order when a terminal operation runs, so later
// items paint over earlier ones. A slide added with no items stays empty
// and is reported as a warning.
//
// Example:
//
//	warnings, err := rostra.New().
//	    AddSlide(
//	        compose.Title{Text: "Technology Operations"},
//	        compose.TwoTone{
//	            Title: "Applications",
//	            Left:  []string{"3Q24", "4Q24"},
//	            Right: []string{"YELLOW", "GREEN"},
//	        },
//	    ).
//	    Save("status.pptx")
func (d *Deck) AddSlide(items ...compose.Item) *Deck {
	newDeck := d.clone()
	newDeck.slides = append(newDeck.slides, append([]compose.Item(nil), items...))
	return newDeck
}

// ============================================================================
// Terminal Operations (assemble the deck and return results)
// ============================================================================

// Build assembles the configured slides into an in-memory deck.
//
// Returns the deck, any warnings gathered during assembly, and an error
// if a composition item failed. Compositions fail fast, so on error the
// partially assembled deck is discarded rather than returned.
func (d *Deck) Build() (*model.Deck, []Warning, error) {
	if d.err != nil {
		return nil, nil, d.err
	}

	deck := model.NewDeck()
	if d.options.width > 0 && d.options.height > 0 {
		deck = model.NewDeckSize(d.options.width, d.options.height)
	}
	deck.Metadata.Title = d.options.title
	deck.Metadata.Author = d.options.author
	deck.Metadata.Subject = d.options.subject
	deck.Metadata.Company = d.options.company
	deck.Metadata.Keywords = append([]string(nil), d.options.keywords...)

	warnings := append([]Warning(nil), d.warnings...)
	for i, items := range d.slides {
		slide := deck.AddSlide()
		if len(items) == 0 {
			warnings = append(warnings, Warning{Slide: i + 1, Message: "slide has no content"})
			continue
		}
		for _, item := range items {
			if err := item.Compose(slide); err != nil {
				return nil, warnings, fmt.Errorf("slide %d: %w", i+1, err)
			}
		}
	}

	return deck, warnings, nil
}

// Save assembles the deck and writes it to a PPTX file.
//
// Example:
//
//	warnings, err := rostra.New().AddSlide(items...).Save("deck.pptx")
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", rostra.FormatWarnings(warnings))
//	}
func (d *Deck) Save(filename string) ([]Warning, error) {
	deck, warnings, err := d.Build()
	if err != nil {
		return warnings, err
	}
	if err := pptx.Save(deck, filename); err != nil {
		return warnings, err
	}
	return warnings, nil
}

// Write assembles the deck and writes the PPTX archive to w. This is
// useful for serving generated decks over HTTP or writing to a buffer
// in tests.
func (d *Deck) Write(w io.Writer) ([]Warning, error) {
	deck, warnings, err := d.Build()
	if err != nil {
		return warnings, err
	}
	if err := pptx.Write(deck, w); err != nil {
		return warnings, err
	}
	return warnings, nil
}

// Outline assembles the deck and returns a plain-text outline: the deck
// title, then one block per slide listing its text content and the shape
// of its tables and pictures. Useful for previewing a deck in logs and
// tests without writing a file.
func (d *Deck) Outline() (string, []Warning, error) {
	deck, warnings, err := d.Build()
	if err != nil {
		return "", warnings, err
	}

	var sb strings.Builder
	if deck.Metadata.Title != "" {
		sb.WriteString(deck.Metadata.Title + "\n")
	}
	for _, slide := range deck.Slides {
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "Slide %d\n", slide.Number)
		for _, p := range slide.Primitives {
			switch v := p.(type) {
			case model.TextPrimitive:
				for _, line := range strings.Split(v.GetText(), "\n") {
					if strings.TrimSpace(line) == "" {
						continue
					}
					sb.WriteString("  " + line + "\n")
				}
			case *model.Table:
				fmt.Fprintf(&sb, "  [table %d×%d]\n", v.RowCount(), v.ColCount())
			case *model.Picture:
				fmt.Fprintf(&sb, "  [%s %d×%dpx]\n", v.Format, v.PixelWidth, v.PixelHeight)
			}
		}
	}
	return sb.String(), warnings, nil
}
