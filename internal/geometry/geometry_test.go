package geometry_test

import (
	"testing"

	"github.com/Gaurav-Gosain/waveland/internal/geometry"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		v, lo, hi, want float64
	}{
		{5, 0, 10, 5},
		{-1, 0, 10, 0},
		{11, 0, 10, 10},
		// Crossing bounds: lo wins.
		{5, 10, 0, 10},
	}
	for _, tt := range tests {
		if got := geometry.Clamp(tt.v, tt.lo, tt.hi); got != tt.want {
			t.Errorf("Clamp(%v, %v, %v) = %v, want %v", tt.v, tt.lo, tt.hi, got, tt.want)
		}
	}
}

func TestRoundPhysical(t *testing.T) {
	// At scale 2, logical values snap to halves.
	if got := geometry.RoundPhysical(1.3, 2); got != 1.5 {
		t.Errorf("RoundPhysical(1.3, 2) = %v, want 1.5", got)
	}
	if got := geometry.FloorPhysical(1.3, 2); got != 1.0 {
		t.Errorf("FloorPhysical(1.3, 2) = %v, want 1.0", got)
	}
	if got := geometry.RoundPhysical(3.7, 1); got != 4.0 {
		t.Errorf("RoundPhysical(3.7, 1) = %v, want 4.0", got)
	}
}

func TestRectContains(t *testing.T) {
	r := geometry.Rc(10, 10, 20, 20)
	if !r.Contains(geometry.Pt(10, 10)) {
		t.Error("top-left corner should be inside")
	}
	if r.Contains(geometry.Pt(30, 30)) {
		t.Error("bottom-right corner should be outside")
	}
	if !r.Contains(geometry.Pt(29.9, 29.9)) {
		t.Error("just inside bottom-right should be inside")
	}
}

func TestRectIntersects(t *testing.T) {
	a := geometry.Rc(0, 0, 10, 10)
	if !a.Intersects(geometry.Rc(5, 5, 10, 10)) {
		t.Error("overlapping rects should intersect")
	}
	if a.Intersects(geometry.Rc(10, 0, 5, 5)) {
		t.Error("edge-adjacent rects should not intersect")
	}
}

func TestRectCenter(t *testing.T) {
	c := geometry.Rc(0, 0, 10, 20).Center()
	if c.X != 5 || c.Y != 10 {
		t.Errorf("center = %v, want (5, 10)", c)
	}
}
