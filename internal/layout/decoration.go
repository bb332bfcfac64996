package layout

import (
	log "charm.land/log/v2"

	"github.com/Gaurav-Gosain/waveland/internal/config"
	"github.com/Gaurav-Gosain/waveland/internal/geometry"
	"github.com/Gaurav-Gosain/waveland/internal/render"
)

// Whether the renderer has the rounded-border shader compiled. The host
// flips this off when shader compilation fails; decorations then fall back
// to plain quads.
var borderShaderAvailable = true

// SetBorderShaderAvailable toggles the shader fallback. Logged once so the
// degradation is visible.
func SetBorderShaderAvailable(ok bool) {
	if borderShaderAvailable && !ok {
		log.Warn("border shader unavailable, falling back to solid quads")
	}
	borderShaderAvailable = ok
}

// focusRing draws either the border or the focus ring around a tile. The
// two share geometry logic and differ only in config and placement.
type focusRing struct {
	cfg config.RingConfig

	// isBorder selects border semantics: drawn inside the tile, counted
	// into the tile size.
	isBorder bool

	buffers [4]render.SolidColorBuffer
}

func newFocusRing(cfg config.RingConfig, isBorder bool) focusRing {
	return focusRing{cfg: cfg, isBorder: isBorder}
}

func (f *focusRing) updateConfig(cfg config.RingConfig) {
	f.cfg = cfg
}

func (f *focusRing) isOff() bool { return f.cfg.Off }

func (f *focusRing) width() float64 {
	if f.cfg.Off {
		return 0
	}
	return f.cfg.Width
}

// render emits the ring elements around a rectangle of the given size at
// loc. The ring body sits outside the rectangle. When the shader is
// available, a single shader element draws the rounded ring; otherwise four
// side quads approximate it (corner radius is lost, not fatal).
func (f *focusRing) render(loc geometry.Point, size geometry.Size, radius float64, isActive bool, withBackground bool) []render.Element {
	if f.cfg.Off {
		return nil
	}

	color := f.cfg.InactiveColor
	alpha := f.cfg.InactiveAlpha
	if isActive {
		color = f.cfg.ActiveColor
		alpha = f.cfg.ActiveAlpha
	}

	w := f.cfg.Width
	outer := geometry.Rect{
		Loc:  loc.Sub(geometry.Pt(w, w)),
		Size: geometry.Sz(size.W+2*w, size.H+2*w),
	}

	if borderShaderAvailable && radius > 0 {
		return []render.Element{&render.Shader{
			Program:  "border",
			Location: outer.Loc,
			Size:     outer.Size,
			Opacity:  alpha,
			Uniforms: map[string]float64{
				"width":        w,
				"inner_radius": radius,
				"outer_radius": radius + w,
				"color_r":      color.R,
				"color_g":      color.G,
				"color_b":      color.B,
			},
		}}
	}

	if withBackground {
		f.buffers[0].SetColor(color, alpha)
		f.buffers[0].Resize(outer.Size)
		return []render.Element{&render.SolidColor{
			Buffer:   &f.buffers[0],
			Location: outer.Loc,
			Opacity:  1,
		}}
	}

	// Four side quads: top, bottom, left, right.
	sides := [4]geometry.Rect{
		geometry.Rc(outer.Loc.X, outer.Loc.Y, outer.Size.W, w),
		geometry.Rc(outer.Loc.X, outer.Bottom()-w, outer.Size.W, w),
		geometry.Rc(outer.Loc.X, outer.Loc.Y+w, w, outer.Size.H-2*w),
		geometry.Rc(outer.Right()-w, outer.Loc.Y+w, w, outer.Size.H-2*w),
	}

	elems := make([]render.Element, 0, 4)
	for i, side := range sides {
		if side.Size.IsEmpty() {
			continue
		}
		f.buffers[i].SetColor(color, alpha)
		f.buffers[i].Resize(side.Size)
		elems = append(elems, &render.SolidColor{
			Buffer:   &f.buffers[i],
			Location: side.Loc,
			Opacity:  1,
		})
	}
	return elems
}
