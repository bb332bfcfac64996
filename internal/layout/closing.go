package layout

import (
	log "charm.land/log/v2"

	"github.com/Gaurav-Gosain/waveland/internal/animation"
	"github.com/Gaurav-Gosain/waveland/internal/geometry"
	"github.com/Gaurav-Gosain/waveland/internal/render"
)

// closingWindow animates a removed window's raster snapshot out. It lives
// on the space's closing queue and renders above everything until done.
type closingWindow struct {
	snapshot *render.Snapshot

	// center of the captured geometry, the scale anchor.
	center geometry.Point

	// pos in strip coordinates.
	pos geometry.Point

	anim          *animation.Animation
	startingAlpha float64
	startingScale float64
}

// StartCloseAnimation queues a closing animation for a tile that is being
// removed. The tile must have a stored unmap snapshot; without one the
// animation is skipped (logged, not fatal).
func (sp *ScrollingSpace) StartCloseAnimation(tile *Tile, tileStripPos geometry.Point) {
	snapshot := tile.TakeUnmapSnapshot()
	if snapshot == nil {
		log.Debug("no unmap snapshot for closing window, skipping animation",
			"window", tile.win.ID())
		return
	}

	size := snapshot.Size
	c := &closingWindow{
		snapshot:      snapshot,
		center:        geometry.Pt(size.W/2, size.H/2),
		pos:           tileStripPos,
		anim:          animation.New(sp.clock, 1, 0, 0, sp.opts.Animations.WindowClose),
		startingAlpha: 1,
		startingScale: 1,
	}
	sp.closing = append(sp.closing, c)
}

func (c *closingWindow) isDone() bool {
	return c.anim.IsDone()
}

// render draws the snapshot scaled and faded around its center.
func (c *closingWindow) render(viewPos float64, target render.Target) []render.Element {
	val := c.anim.ClampedValue()
	alpha := c.startingAlpha * val
	scale := c.startingScale * (0.7 + 0.3*val)

	loc := geometry.Pt(c.pos.X-viewPos, c.pos.Y)
	contents := c.snapshot.ContentsFor(target)

	elems := make([]render.Element, 0, len(contents))
	for _, e := range contents {
		elems = append(elems, &render.Relocate{
			Inner: &render.Rescale{
				Inner:  &fadeElement{inner: e, alpha: alpha},
				Origin: c.center,
				Scale:  scale,
			},
			Offset: loc,
		})
	}
	return elems
}
