// Package model provides the in-memory representation of a slide deck.
//
// This package defines the document tree that composition operations write
// into: a [Deck] holds slides, each [Slide] is a fixed-size canvas holding an
// ordered list of placed primitives. The pptx package serializes these types
// to a presentation file.
//
// # Deck Structure
//
// The [Deck] type represents a complete presentation with metadata and slides:
//
//	deck := model.NewDeck()
//	deck.Metadata.Title = "Risk Summary"
//	slide := deck.AddSlide()
//
// Every slide copies the deck's canvas dimensions at creation, so composition
// functions need only the slide handle.
//
// # Primitives
//
// All slide content implements the [Primitive] interface. The concrete types
// are:
//
//   - [FilledRect] - filled rectangles with border and optional rotation
//   - [TextBox] - text frames holding paragraphs of styled runs
//   - [Table] - cell grids with per-cell text, style, and fill
//   - [Line] - straight connectors (horizontal rules)
//   - [Picture] - embedded raster images
//
// Primitives that own a text frame additionally implement [TextPrimitive].
// [ApplyStyle] uses that capability check to restyle a primitive's runs
// without ever panicking on a primitive that has no text.
//
// # Styling
//
// [Style] is an immutable value passed explicitly into every run; there is
// no ambient default state. [DefaultStyle] returns the documented default
// instance (12pt, black, regular weight, theme font).
package model
