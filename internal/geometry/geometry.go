// Package geometry provides logical-pixel points, sizes and rectangles for
// the layout engine, along with rounding helpers that snap logical values to
// the physical pixel grid of an output.
package geometry

import "math"

// Point is a location in logical pixels.
type Point struct {
	X, Y float64
}

// Pt is a shorthand constructor for Point.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p translated by -q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// RoundPhysical snaps the point to the physical pixel grid at the given scale.
func (p Point) RoundPhysical(scale float64) Point {
	return Point{
		X: RoundPhysical(p.X, scale),
		Y: RoundPhysical(p.Y, scale),
	}
}

// Size is an extent in logical pixels.
type Size struct {
	W, H float64
}

// Sz is a shorthand constructor for Size.
func Sz(w, h float64) Size { return Size{W: w, H: h} }

// IsEmpty reports whether either dimension is zero or negative.
func (s Size) IsEmpty() bool { return s.W <= 0 || s.H <= 0 }

// Max returns the per-dimension maximum of s and t.
func (s Size) Max(t Size) Size {
	return Size{W: math.Max(s.W, t.W), H: math.Max(s.H, t.H)}
}

// RoundPhysical snaps the size to the physical pixel grid at the given scale.
func (s Size) RoundPhysical(scale float64) Size {
	return Size{
		W: RoundPhysical(s.W, scale),
		H: RoundPhysical(s.H, scale),
	}
}

// Rect is an axis-aligned rectangle in logical pixels.
type Rect struct {
	Loc  Point
	Size Size
}

// Rc is a shorthand constructor for Rect.
func Rc(x, y, w, h float64) Rect {
	return Rect{Loc: Point{x, y}, Size: Size{w, h}}
}

// Right returns the x coordinate just past the right edge.
func (r Rect) Right() float64 { return r.Loc.X + r.Size.W }

// Bottom returns the y coordinate just past the bottom edge.
func (r Rect) Bottom() float64 { return r.Loc.Y + r.Size.H }

// Contains reports whether the point lies within the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Loc.X && p.Y >= r.Loc.Y && p.X < r.Right() && p.Y < r.Bottom()
}

// Intersects reports whether the two rectangles overlap.
func (r Rect) Intersects(o Rect) bool {
	return r.Loc.X < o.Right() && o.Loc.X < r.Right() &&
		r.Loc.Y < o.Bottom() && o.Loc.Y < r.Bottom()
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Point {
	return Point{r.Loc.X + r.Size.W/2, r.Loc.Y + r.Size.H/2}
}

// Translate returns the rectangle moved by the given offset.
func (r Rect) Translate(p Point) Rect {
	return Rect{Loc: r.Loc.Add(p), Size: r.Size}
}

// RoundPhysical snaps a logical value to the nearest physical pixel.
func RoundPhysical(v, scale float64) float64 {
	return math.Round(v*scale) / scale
}

// FloorPhysical snaps a logical value to the physical pixel at or below it.
func FloorPhysical(v, scale float64) float64 {
	return math.Floor(v*scale) / scale
}

// Clamp limits v to the [lo, hi] range. When the bounds cross, lo wins.
func Clamp(v, lo, hi float64) float64 {
	if hi < lo {
		hi = lo
	}
	return math.Min(math.Max(v, lo), hi)
}
