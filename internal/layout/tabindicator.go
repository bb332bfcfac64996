package layout

import (
	"math"

	"github.com/Gaurav-Gosain/waveland/internal/animation"
	"github.com/Gaurav-Gosain/waveland/internal/config"
	"github.com/Gaurav-Gosain/waveland/internal/geometry"
	"github.com/Gaurav-Gosain/waveland/internal/render"
)

// tabIndicator is the per-tab bar along one edge of a tabbed column.
type tabIndicator struct {
	openAnim *animation.Animation
	buffers  []render.SolidColorBuffer
}

// startOpenAnimation plays the indicator's appear animation when a column
// enters tabbed mode.
func (ti *tabIndicator) startOpenAnimation(clock animation.Clock, cfg animation.Config) {
	ti.openAnim = animation.New(clock, 0, 1, 0, cfg)
}

func (ti *tabIndicator) advanceAnimations() {
	if ti.openAnim != nil && ti.openAnim.IsDone() {
		ti.openAnim = nil
	}
}

func (ti *tabIndicator) areAnimationsOngoing() bool {
	return ti.openAnim != nil
}

// tabLengths splits the indicator length into per-tab shares: floored to
// physical pixels, with the leftover pixels handed to the leading tabs.
func tabLengths(cfg *config.TabIndicatorConfig, n int, sideLength, scale float64) []float64 {
	if n == 0 {
		return nil
	}

	px := 1 / scale
	gapsTotal := cfg.GapsBetweenTabs * float64(n-1)
	length := math.Max(cfg.LengthTotalProportion*sideLength, float64(n)*px+gapsTotal)
	length = math.Min(length, sideLength)
	content := length - gapsTotal

	share := geometry.FloorPhysical(content/float64(n), scale)
	lengths := make([]float64, n)
	for i := range lengths {
		lengths[i] = share
	}

	leftover := content - share*float64(n)
	for i := 0; leftover >= px-1e-9 && i < n; i++ {
		lengths[i] += px
		leftover -= px
	}
	return lengths
}

// render emits the indicator bars for a column of tileCount tabs occupying
// colSize at colLoc.
func (ti *tabIndicator) render(
	cfg *config.TabIndicatorConfig,
	colLoc geometry.Point,
	colSize geometry.Size,
	tileCount, activeIdx int,
	scale float64,
) []render.Element {
	if cfg.Off || (cfg.HideWhenSingleTab && tileCount <= 1) {
		return nil
	}

	horizontal := cfg.Position == config.TabIndicatorTop || cfg.Position == config.TabIndicatorBottom
	side := colSize.H
	if horizontal {
		side = colSize.W
	}

	lengths := tabLengths(cfg, tileCount, side, scale)
	total := cfg.GapsBetweenTabs * float64(tileCount-1)
	for _, l := range lengths {
		total += l
	}

	// Center the bar along the side.
	along := (side - total) / 2

	alphaScale := 1.
	if ti.openAnim != nil {
		alphaScale = ti.openAnim.ClampedValue()
	}

	if len(ti.buffers) < tileCount {
		ti.buffers = make([]render.SolidColorBuffer, tileCount)
	}

	var elems []render.Element
	for i, l := range lengths {
		var r geometry.Rect
		switch cfg.Position {
		case config.TabIndicatorRight:
			r = geometry.Rc(colLoc.X+colSize.W-cfg.Width, colLoc.Y+along, cfg.Width, l)
		case config.TabIndicatorTop:
			r = geometry.Rc(colLoc.X+along, colLoc.Y, l, cfg.Width)
		case config.TabIndicatorBottom:
			r = geometry.Rc(colLoc.X+along, colLoc.Y+colSize.H-cfg.Width, l, cfg.Width)
		default:
			r = geometry.Rc(colLoc.X, colLoc.Y+along, cfg.Width, l)
		}

		buf := &ti.buffers[i]
		if i == activeIdx {
			buf.SetColor(cfg.ActiveColor, cfg.ActiveAlpha*alphaScale)
		} else {
			buf.SetColor(cfg.InactiveColor, cfg.InactiveAlpha*alphaScale)
		}
		buf.Resize(r.Size)
		elems = append(elems, &render.SolidColor{
			Buffer:   buf,
			Location: r.Loc,
			Opacity:  1,
		})

		along += l + cfg.GapsBetweenTabs
	}
	return elems
}
