// Package render defines the typed render elements the layout engine emits.
// The renderer consumes these and composes a damage-tracked frame; the
// layout never touches the GPU.
package render

import (
	"sync/atomic"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/Gaurav-Gosain/waveland/internal/geometry"
	"github.com/Gaurav-Gosain/waveland/internal/window"
)

// Target says what kind of frame is being composed. Blocked-out windows
// render differently on screencast and capture targets.
type Target int

const (
	TargetOutput Target = iota
	TargetScreencast
	TargetScreenCapture
)

var elementIDs atomic.Uint64

// NewElementID allocates a process-unique element id.
func NewElementID() uint64 { return elementIDs.Add(1) }

// Element is one item in the render stream. Geometries are in logical
// pixels; the renderer converts using the output scale.
type Element interface {
	// Geometry is the bounding rectangle of the element.
	Geometry() geometry.Rect
	// Alpha is the element opacity in [0, 1].
	Alpha() float64
}

// Wayland is a client surface with its popups.
type Wayland struct {
	Window   window.ID
	Location geometry.Point
	Size     geometry.Size
	Scale    float64
	Opacity  float64
	// CornerRadius clips the surface to rounded corners.
	CornerRadius float64
}

func (e *Wayland) Geometry() geometry.Rect {
	return geometry.Rect{Loc: e.Location, Size: e.Size}
}
func (e *Wayland) Alpha() float64 { return e.Opacity }

// SolidColor is an untextured quad.
type SolidColor struct {
	Buffer   *SolidColorBuffer
	Location geometry.Point
	Opacity  float64
}

func (e *SolidColor) Geometry() geometry.Rect {
	return geometry.Rect{Loc: e.Location, Size: e.Buffer.Size}
}
func (e *SolidColor) Alpha() float64 { return e.Opacity }

// SolidColorBuffer is the mutable backing store for solid quads, resized in
// place as the layout changes.
type SolidColorBuffer struct {
	Color colorful.Color
	// ColorAlpha is the color's own alpha, multiplied with element opacity.
	ColorAlpha   float64
	Size         geometry.Size
	CornerRadius float64
}

// Resize sets the buffer extent.
func (b *SolidColorBuffer) Resize(size geometry.Size) { b.Size = size }

// SetColor replaces the buffer color.
func (b *SolidColorBuffer) SetColor(c colorful.Color, alpha float64) {
	b.Color = c
	b.ColorAlpha = alpha
}

// Texture is a raster buffer produced by an earlier render pass, such as a
// window snapshot.
type Texture struct {
	ID       uint64
	Location geometry.Point
	Size     geometry.Size
	Opacity  float64
	// Src and Dst, when non-zero, crop and stretch the texture.
	Src geometry.Rect
	Dst geometry.Rect
}

func (e *Texture) Geometry() geometry.Rect {
	if !e.Dst.Size.IsEmpty() {
		return e.Dst.Translate(e.Location)
	}
	return geometry.Rect{Loc: e.Location, Size: e.Size}
}
func (e *Texture) Alpha() float64 { return e.Opacity }

// Shader runs a custom program over an area. Used for borders, gradients
// and resize cross-fades; the renderer may not have the program compiled, in
// which case the caller falls back to simpler elements.
type Shader struct {
	Program  string
	Location geometry.Point
	Size     geometry.Size
	Opacity  float64
	Uniforms map[string]float64
	Textures map[string]uint64
}

func (e *Shader) Geometry() geometry.Rect {
	return geometry.Rect{Loc: e.Location, Size: e.Size}
}
func (e *Shader) Alpha() float64 { return e.Opacity }

// RelocateMode says whether a Relocate offset replaces or adds to the inner
// element's location.
type RelocateMode int

const (
	RelocateRelative RelocateMode = iota
	RelocateAbsolute
)

// Relocate shifts an inner element.
type Relocate struct {
	Inner  Element
	Offset geometry.Point
	Mode   RelocateMode
}

func (e *Relocate) Geometry() geometry.Rect {
	g := e.Inner.Geometry()
	if e.Mode == RelocateAbsolute {
		return geometry.Rect{Loc: e.Offset, Size: g.Size}
	}
	return g.Translate(e.Offset)
}
func (e *Relocate) Alpha() float64 { return e.Inner.Alpha() }

// Rescale scales an inner element around an origin.
type Rescale struct {
	Inner  Element
	Origin geometry.Point
	Scale  float64
}

func (e *Rescale) Geometry() geometry.Rect {
	g := e.Inner.Geometry()
	return geometry.Rect{
		Loc: geometry.Point{
			X: e.Origin.X + (g.Loc.X-e.Origin.X)*e.Scale,
			Y: e.Origin.Y + (g.Loc.Y-e.Origin.Y)*e.Scale,
		},
		Size: geometry.Size{W: g.Size.W * e.Scale, H: g.Size.H * e.Scale},
	}
}
func (e *Rescale) Alpha() float64 { return e.Inner.Alpha() }

// Crop clips an inner element to a rectangle.
type Crop struct {
	Inner Element
	Rect  geometry.Rect
}

func (e *Crop) Geometry() geometry.Rect {
	g := e.Inner.Geometry()
	r := e.Rect
	x0 := max(g.Loc.X, r.Loc.X)
	y0 := max(g.Loc.Y, r.Loc.Y)
	x1 := min(g.Right(), r.Right())
	y1 := min(g.Bottom(), r.Bottom())
	if x1 < x0 || y1 < y0 {
		return geometry.Rect{}
	}
	return geometry.Rc(x0, y0, x1-x0, y1-y0)
}
func (e *Crop) Alpha() float64 { return e.Inner.Alpha() }
