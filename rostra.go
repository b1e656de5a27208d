// Package rostra provides a fluent API for composing PowerPoint decks from
// high-level widgets and saving them as PPTX files.
//
// Basic usage:
//
//	warnings, err := rostra.New().
//	    Title("Status Summary").
//	    AddSlide(
//	        compose.Title{Text: "Technology Operations"},
//	        compose.TwoTone{
//	            Title: "Applications",
//	            Left:  []string{"3Q24", "4Q24"},
//	            Right: []string{"YELLOW", "GREEN"},
//	        },
//	    ).
//	    Save("status.pptx")
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", rostra.FormatWarnings(warnings))
//	}
//
// From a TOML manifest:
//
//	warnings, err := rostra.FromManifest("deck.toml").Save("deck.pptx")
//
// For direct control over placement, the lower-level model and compose
// packages are also available.
package rostra

import (
	"fmt"

	"github.com/tsawler/rostra/compose"
	"github.com/tsawler/rostra/csvtable"
	"github.com/tsawler/rostra/format"
	"github.com/tsawler/rostra/htmltable"
	"github.com/tsawler/rostra/manifest"
	"github.com/tsawler/rostra/xlsxtable"
)

// New returns an empty deck builder with the default canvas and no
// metadata set.
//
// Example:
//
//	warnings, err := rostra.New().AddSlide(compose.Title{Text: "Agenda"}).Save("agenda.pptx")
func New() *Deck {
	return &Deck{options: defaultOptions()}
}

// FromManifest loads a TOML deck manifest and returns a builder with the
// manifest's metadata, canvas size, and slides already applied. Load
// failures surface on the terminal operation, so the result chains the
// same way a New chain does. Unknown manifest keys become deck-level
// warnings.
//
// Example:
//
//	warnings, err := rostra.FromManifest("deck.toml").Save("deck.pptx")
func FromManifest(path string) *Deck {
	d := New()

	if f := format.Detect(path); f != format.Unknown && f != format.TOML {
		d.err = fmt.Errorf("manifest %s: expected TOML, detected %s", path, f)
		return d
	}

	m, keys, err := manifest.Load(path)
	if err != nil {
		d.err = fmt.Errorf("loading manifest: %w", err)
		return d
	}

	if m.WidthInches > 0 && m.HeightInches > 0 {
		d = d.Size(m.WidthInches, m.HeightInches)
	}
	d = d.Title(m.Title).Author(m.Author).Subject(m.Subject).Company(m.Company)
	if len(m.Keywords) > 0 {
		d = d.Keywords(m.Keywords...)
	}
	for _, k := range keys {
		d.warnings = append(d.warnings, Warning{Message: k})
	}

	for _, ms := range m.Slides {
		d = d.AddSlide(slideItems(ms)...)
	}
	return d
}

// slideItems converts one manifest slide into composition items, in the
// fixed stacking order backdrop, title, divider, widgets, tables,
// pictures.
func slideItems(ms manifest.Slide) []compose.Item {
	var items []compose.Item
	if ms.Backdrop {
		items = append(items, compose.Backdrop{})
	}
	if ms.Title != "" {
		items = append(items, compose.Title{Text: ms.Title})
	}
	if ms.DividerY > 0 {
		items = append(items, compose.Divider{Y: ms.DividerY})
	}
	for _, w := range ms.Widgets {
		tw := compose.TwoTone{Title: w.Title, Left: w.Left, Right: w.Right, X: w.X}
		if w.Y != 0 {
			y := w.Y
			tw.Y = &y
		}
		items = append(items, tw)
	}
	for _, t := range ms.Tables {
		items = append(items, compose.Table{Title: t.Title, Headers: t.Headers, Rows: t.StringRows()})
	}
	for _, p := range ms.Pictures {
		items = append(items, compose.Picture{Path: p.Path, X: p.X, Y: p.Y, Width: p.Width, Height: p.Height})
	}
	return items
}

// LoadTable reads tabular data from an HTML, CSV, or XLSX file and
// returns a table item ready for AddSlide. The source format is detected
// from the file extension. HTML sources use the first <table> in the
// document, and its caption fills an empty title; XLSX sources use the
// first non-empty worksheet, and its name fills an empty title.
//
// Example:
//
//	tbl, err := rostra.LoadTable("findings.csv", "Open Findings")
//	if err != nil {
//	    // handle error
//	}
//	warnings, err := rostra.New().AddSlide(tbl).Save("findings.pptx")
func LoadTable(filename, title string) (compose.Table, error) {
	switch f := format.Detect(filename); f {
	case format.HTML:
		tables, err := htmltable.ReadFile(filename)
		if err != nil {
			return compose.Table{}, err
		}
		if len(tables) == 0 {
			return compose.Table{}, fmt.Errorf("no tables found in %s", filename)
		}
		t := tables[0]
		if title == "" {
			title = t.Caption
		}
		return compose.Table{Title: title, Headers: t.Headers, Rows: t.Rows}, nil

	case format.CSV:
		t, err := csvtable.ReadFile(filename)
		if err != nil {
			return compose.Table{}, err
		}
		return compose.Table{Title: title, Headers: t.Headers, Rows: t.Rows}, nil

	case format.XLSX:
		tables, err := xlsxtable.ReadFile(filename)
		if err != nil {
			return compose.Table{}, err
		}
		if len(tables) == 0 {
			return compose.Table{}, fmt.Errorf("no tables found in %s", filename)
		}
		t := tables[0]
		if title == "" {
			title = t.Sheet
		}
		return compose.Table{Title: title, Headers: t.Headers, Rows: t.Rows}, nil

	default:
		return compose.Table{}, fmt.Errorf("unsupported table source %s: detected format %s", filename, f)
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	tbl := rostra.Must(rostra.LoadTable("findings.csv", "Open Findings"))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustSave is a helper that wraps a call to Save() or Write() and panics
// if the error is non-nil. It returns the warnings so callers can still
// log them.
//
// Example:
//
//	rostra.MustSave(rostra.FromManifest("deck.toml").Save("deck.pptx"))
func MustSave(warnings []Warning, err error) []Warning {
	if err != nil {
		panic(err)
	}
	return warnings
}
