package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Style represents run-level text styling. It is a value type: pass it into
// AddRun and ApplyStyle, never share mutable state through it.
type Style struct {
	Font  string  // font family; empty falls back to the theme's minor font
	Size  float64 // size in points; 0 falls back to the theme default
	Bold  bool
	Color Color
}

// DefaultStyle returns the default text style: 12pt regular black text in
// the theme font.
func DefaultStyle() Style {
	return Style{Size: 12}
}

// ApplyStyle applies a style to every run of a text-bearing primitive.
// It returns false, without panicking, when the primitive has no text
// frame; composition can continue past the refusal.
func ApplyStyle(p Primitive, s Style) bool {
	tp, ok := p.(TextPrimitive)
	if !ok {
		return false
	}
	for _, para := range tp.GetParagraphs() {
		for _, r := range para.Runs {
			r.Style = s
		}
	}
	return true
}

// Color represents an RGB color
type Color struct {
	R, G, B uint8
}

// RGB creates a color from red, green, and blue components
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// Hex returns the color as an uppercase RRGGBB hex string
func (c Color) Hex() string {
	return fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B)
}

// ParseColor parses an RRGGBB hex string, with or without a leading '#'
func ParseColor(s string) (Color, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) != 6 {
		return Color{}, fmt.Errorf("invalid color %q: want RRGGBB", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return Color{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
	}, nil
}
