// Package geom provides length units and rectangle geometry for slide layout.
//
// All positions and sizes are expressed in EMU (English Metric Units), the
// native length unit of Office Open XML drawings. Authors work in inches or
// points and convert at the boundary:
//
//	r := geom.Rect{
//	    X:      geom.Inches(0.47),
//	    Y:      geom.Inches(1.24),
//	    Width:  geom.Inches(3.87),
//	    Height: geom.Points(36),
//	}
//
// The coordinate system has its origin at the top-left of the canvas with Y
// increasing downward.
package geom

import "math"

// EMU is a length in English Metric Units (914400 per inch).
type EMU int64

// Conversion factors to EMU.
const (
	PerInch       EMU = 914400
	PerPoint      EMU = 12700
	PerCentimeter EMU = 360000
	PerPixel      EMU = 9525 // at 96 dpi
)

// Inches converts a length in inches to EMU.
func Inches(in float64) EMU {
	return EMU(math.Round(in * float64(PerInch)))
}

// Points converts a length in typographic points to EMU.
func Points(pt float64) EMU {
	return EMU(math.Round(pt * float64(PerPoint)))
}

// Centimeters converts a length in centimeters to EMU.
func Centimeters(cm float64) EMU {
	return EMU(math.Round(cm * float64(PerCentimeter)))
}

// Pixels converts a length in 96-dpi pixels to EMU.
func Pixels(px float64) EMU {
	return EMU(math.Round(px * float64(PerPixel)))
}

// Inches returns the length in inches.
func (e EMU) Inches() float64 {
	return float64(e) / float64(PerInch)
}

// Points returns the length in typographic points.
func (e EMU) Points() float64 {
	return float64(e) / float64(PerPoint)
}

// Centimeters returns the length in centimeters.
func (e EMU) Centimeters() float64 {
	return float64(e) / float64(PerCentimeter)
}

// Pixels returns the length in 96-dpi pixels.
func (e EMU) Pixels() float64 {
	return float64(e) / float64(PerPixel)
}

// Point represents a 2D point on the canvas
type Point struct {
	X, Y EMU
}

// Rect represents a rectangle placed on the canvas
type Rect struct {
	X      EMU // Left
	Y      EMU // Top
	Width  EMU
	Height EMU
}

// NewRect creates a rectangle from EMU coordinates
func NewRect(x, y, width, height EMU) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// RectInches creates a rectangle from coordinates in inches
func RectInches(x, y, width, height float64) Rect {
	return Rect{
		X:      Inches(x),
		Y:      Inches(y),
		Width:  Inches(width),
		Height: Inches(height),
	}
}

// Left returns the left edge X coordinate
func (r Rect) Left() EMU {
	return r.X
}

// Right returns the right edge X coordinate
func (r Rect) Right() EMU {
	return r.X + r.Width
}

// Top returns the top edge Y coordinate
func (r Rect) Top() EMU {
	return r.Y
}

// Bottom returns the bottom edge Y coordinate
func (r Rect) Bottom() EMU {
	return r.Y + r.Height
}

// Center returns the center point
func (r Rect) Center() Point {
	return Point{
		X: r.X + r.Width/2,
		Y: r.Y + r.Height/2,
	}
}

// Contains checks if a point is inside the rectangle
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left() && p.X <= r.Right() &&
		p.Y >= r.Top() && p.Y <= r.Bottom()
}

// Intersects checks if two rectangles intersect
func (r Rect) Intersects(other Rect) bool {
	return !(r.Right() < other.Left() ||
		r.Left() > other.Right() ||
		r.Bottom() < other.Top() ||
		r.Top() > other.Bottom())
}

// Within reports whether the rectangle lies entirely inside outer.
// All four values must be non-negative relative to outer's origin and the
// right and bottom edges must not pass outer's edges.
func (r Rect) Within(outer Rect) bool {
	return r.X >= outer.X && r.Y >= outer.Y &&
		r.Width >= 0 && r.Height >= 0 &&
		r.Right() <= outer.Right() && r.Bottom() <= outer.Bottom()
}

// IsEmpty returns true if the rectangle has zero area
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// IsValid returns true if the rectangle has positive dimensions
func (r Rect) IsValid() bool {
	return r.Width > 0 && r.Height > 0
}

// CenterX returns the left offset that centers an element of the given
// width horizontally on a canvas of the given width.
func CenterX(canvasWidth, width EMU) EMU {
	return (canvasWidth - width) / 2
}

// CenterY returns the top offset that centers an element of the given
// height vertically on a canvas of the given height.
func CenterY(canvasHeight, height EMU) EMU {
	return (canvasHeight - height) / 2
}
