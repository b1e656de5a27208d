package geom

import (
	"math"
	"testing"
)

// ============================================================================
// Unit Conversion Tests
// ============================================================================

func TestInches(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want EMU
	}{
		{"zero", 0, 0},
		{"one inch", 1, 914400},
		{"canvas width", 13.33, 12188952},
		{"canvas height", 7.5, 6858000},
		{"widget width", 3.87, 3538728},
		{"fractional", 0.5, 457200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Inches(tt.in)
			if got != tt.want {
				t.Errorf("Inches(%v) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestPoints(t *testing.T) {
	tests := []struct {
		name string
		pt   float64
		want EMU
	}{
		{"zero", 0, 0},
		{"one point", 1, 12700},
		{"body spacing", 6, 76200},
		{"title size", 14, 177800},
		{"half point", 0.5, 6350},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Points(tt.pt)
			if got != tt.want {
				t.Errorf("Points(%v) = %d, want %d", tt.pt, got, tt.want)
			}
		})
	}
}

func TestCentimeters(t *testing.T) {
	if got := Centimeters(1); got != 360000 {
		t.Errorf("Centimeters(1) = %d, want 360000", got)
	}
	if got := Centimeters(2.54); got != Inches(1) {
		t.Errorf("Centimeters(2.54) = %d, want %d", got, Inches(1))
	}
}

func TestPixels(t *testing.T) {
	if got := Pixels(96); got != Inches(1) {
		t.Errorf("Pixels(96) = %d, want %d", got, Inches(1))
	}
}

func TestRoundTripConversions(t *testing.T) {
	tests := []struct {
		name string
		in   float64
	}{
		{"whole", 2},
		{"widget x", 0.47},
		{"widget y", 1.24},
		{"top height", 0.51},
		{"bottom height", 0.75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Inches(tt.in).Inches()
			if math.Abs(got-tt.in) > 1e-6 {
				t.Errorf("Inches(%v).Inches() = %v, want %v", tt.in, got, tt.in)
			}
		})
	}

	if got := Points(6).Points(); got != 6 {
		t.Errorf("Points(6).Points() = %v, want 6", got)
	}
}

// ============================================================================
// Rect Tests
// ============================================================================

func TestNewRect(t *testing.T) {
	r := NewRect(10, 20, 100, 50)
	if r.X != 10 || r.Y != 20 || r.Width != 100 || r.Height != 50 {
		t.Errorf("NewRect() = %+v, want {10, 20, 100, 50}", r)
	}
}

func TestRectInches(t *testing.T) {
	r := RectInches(0.47, 1.24, 3.87, 0.51)
	want := Rect{X: Inches(0.47), Y: Inches(1.24), Width: Inches(3.87), Height: Inches(0.51)}
	if r != want {
		t.Errorf("RectInches() = %+v, want %+v", r, want)
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(10, 20, 100, 50)

	if r.Left() != 10 {
		t.Errorf("Left() = %v, want 10", r.Left())
	}
	if r.Right() != 110 {
		t.Errorf("Right() = %v, want 110", r.Right())
	}
	if r.Top() != 20 {
		t.Errorf("Top() = %v, want 20", r.Top())
	}
	if r.Bottom() != 70 {
		t.Errorf("Bottom() = %v, want 70", r.Bottom())
	}
}

func TestRectCenter(t *testing.T) {
	r := NewRect(0, 0, 100, 50)
	c := r.Center()

	if c.X != 50 || c.Y != 25 {
		t.Errorf("Center() = %+v, want {50, 25}", c)
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(0, 0, 100, 100)

	tests := []struct {
		name     string
		point    Point
		expected bool
	}{
		{"inside", Point{50, 50}, true},
		{"on left edge", Point{0, 50}, true},
		{"on right edge", Point{100, 50}, true},
		{"outside left", Point{-1, 50}, false},
		{"outside right", Point{101, 50}, false},
		{"outside bottom", Point{50, 101}, false},
		{"outside top", Point{50, -1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := r.Contains(tt.point)
			if result != tt.expected {
				t.Errorf("Contains(%+v) = %v, want %v", tt.point, result, tt.expected)
			}
		})
	}
}

func TestRectIntersects(t *testing.T) {
	r := NewRect(0, 0, 100, 100)

	tests := []struct {
		name     string
		other    Rect
		expected bool
	}{
		{"overlapping", NewRect(50, 50, 100, 100), true},
		{"touching edge", NewRect(100, 0, 50, 50), true},
		{"inside", NewRect(25, 25, 50, 50), true},
		{"containing", NewRect(-10, -10, 200, 200), true},
		{"no overlap right", NewRect(150, 0, 50, 50), false},
		{"no overlap below", NewRect(0, 150, 50, 50), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := r.Intersects(tt.other)
			if result != tt.expected {
				t.Errorf("Intersects(%+v) = %v, want %v", tt.other, result, tt.expected)
			}
		})
	}
}

func TestRectWithin(t *testing.T) {
	canvas := Rect{Width: Inches(13.33), Height: Inches(7.5)}

	tests := []struct {
		name     string
		r        Rect
		expected bool
	}{
		{"well inside", RectInches(0.47, 1.24, 3.87, 1.26), true},
		{"full canvas", RectInches(0, 0, 13.33, 7.5), true},
		{"negative x", RectInches(-0.1, 1, 1, 1), false},
		{"negative y", RectInches(1, -0.1, 1, 1), false},
		{"past right edge", RectInches(13, 0, 1, 1), false},
		{"past bottom edge", RectInches(0, 7, 1, 1), false},
		{"zero size at origin", NewRect(0, 0, 0, 0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.r.Within(canvas)
			if result != tt.expected {
				t.Errorf("Within(canvas) = %v, want %v for %+v", result, tt.expected, tt.r)
			}
		})
	}
}

func TestRectValidity(t *testing.T) {
	if !NewRect(0, 0, 10, 10).IsValid() {
		t.Error("IsValid() = false for positive dimensions")
	}
	if NewRect(0, 0, 0, 10).IsValid() {
		t.Error("IsValid() = true for zero width")
	}
	if !NewRect(0, 0, 0, 10).IsEmpty() {
		t.Error("IsEmpty() = false for zero width")
	}
	if NewRect(0, 0, 10, 10).IsEmpty() {
		t.Error("IsEmpty() = true for positive dimensions")
	}
}

// ============================================================================
// Centering Tests
// ============================================================================

func TestCenterX(t *testing.T) {
	tests := []struct {
		name          string
		canvas, width float64
		want          float64
	}{
		{"widget on wide canvas", 13.33, 3.87, 4.73},
		{"divider on wide canvas", 13.33, 12.52, 0.405},
		{"full width", 13.33, 13.33, 0},
		{"half width", 10, 5, 2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CenterX(Inches(tt.canvas), Inches(tt.width))
			if got != Inches(tt.want) {
				t.Errorf("CenterX(%v, %v) = %d EMU (%.4fin), want %d EMU (%vin)",
					tt.canvas, tt.width, got, got.Inches(), Inches(tt.want), tt.want)
			}
		})
	}
}

func TestCenterY(t *testing.T) {
	if got := CenterY(Inches(7.5), Inches(6.49)); got != Inches(0.505) {
		t.Errorf("CenterY(7.5, 6.49) = %d, want %d", got, Inches(0.505))
	}
}
