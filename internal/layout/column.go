package layout

import (
	"github.com/Gaurav-Gosain/waveland/internal/animation"
	"github.com/Gaurav-Gosain/waveland/internal/config"
	"github.com/Gaurav-Gosain/waveland/internal/geometry"
	"github.com/Gaurav-Gosain/waveland/internal/render"
	"github.com/Gaurav-Gosain/waveland/internal/window"
)

// Column is a non-empty vertical stack of tiles sharing one width.
type Column struct {
	tiles []*Tile

	// heights holds one height policy per tile, parallel to tiles. At
	// most one tile may be HeightFixed in normal display mode.
	heights []WindowHeight

	activeTileIdx int

	width          ColumnWidth
	presetWidthIdx int

	isFullWidth       bool
	pendingFullscreen bool
	pendingMaximized  bool

	displayMode  DisplayMode
	tabIndicator tabIndicator

	moveX *moveAnimation
	moveY *moveAnimation

	workingArea geometry.Rect
	parentArea  geometry.Rect
	viewSize    geometry.Size
	scale       float64
	clock       animation.Clock
	opts        *config.Options
}

func newColumn(tile *Tile, width ColumnWidth, isFullWidth bool, sp *ScrollingSpace) *Column {
	c := &Column{
		tiles:          []*Tile{tile},
		heights:        []WindowHeight{AutoHeight(1)},
		width:          width,
		presetWidthIdx: -1,
		isFullWidth:    isFullWidth,

		workingArea: sp.workingArea,
		parentArea:  sp.parentArea,
		viewSize:    sp.viewSize,
		scale:       sp.scale,
		clock:       sp.clock,
		opts:        sp.opts,
	}
	tile.UpdateConfig(sp.viewSize, sp.scale, sp.opts)
	return c
}

// TileCount returns the number of tiles.
func (c *Column) TileCount() int { return len(c.tiles) }

// Tiles returns the tile slice. Callers must not mutate it.
func (c *Column) Tiles() []*Tile { return c.tiles }

// ActiveTileIdx returns the active tile index.
func (c *Column) ActiveTileIdx() int { return c.activeTileIdx }

// ActiveTile returns the active tile.
func (c *Column) ActiveTile() *Tile { return c.tiles[c.activeTileIdx] }

// DisplayMode returns the column's display mode.
func (c *Column) DisplayMode() DisplayMode { return c.displayMode }

// StoredWidth returns the stored width policy.
func (c *Column) StoredWidth() ColumnWidth { return c.width }

// IsFullWidth reports the full-width override.
func (c *Column) IsFullWidth() bool { return c.isFullWidth }

// IsPendingFullscreen reports the pending fullscreen flag.
func (c *Column) IsPendingFullscreen() bool { return c.pendingFullscreen }

// IsPendingMaximized reports the pending maximized flag.
func (c *Column) IsPendingMaximized() bool { return c.pendingMaximized }

// Contains reports whether a window lives in this column.
func (c *Column) Contains(id window.ID) bool {
	return c.tileIdx(id) >= 0
}

func (c *Column) tileIdx(id window.ID) int {
	for i, t := range c.tiles {
		if t.win.ID() == id {
			return i
		}
	}
	return -1
}

// SizingMode returns the pending sizing mode that size resolution and view
// placement follow.
func (c *Column) SizingMode() SizingMode {
	switch {
	case c.pendingFullscreen:
		return SizingFullscreen
	case c.pendingMaximized:
		return SizingMaximized
	default:
		return SizingNormal
	}
}

// extraSize is the width/height consumed by the tab indicator.
func (c *Column) extraSize() geometry.Size {
	if c.displayMode != DisplayTabbed {
		return geometry.Size{}
	}
	w, h := c.opts.TabIndicator.ExtraSize(len(c.tiles), c.scale)
	return geometry.Sz(w, h)
}

// Width is the rendered column width: the widest tile (pending sizes
// included) plus the tab indicator.
func (c *Column) Width() float64 {
	w := 0.
	for _, t := range c.tiles {
		w = max(w, t.TileExpectedOrCurrentSize().W)
	}
	if c.displayMode == DisplayTabbed && c.SizingMode().IsNormal() {
		w += c.extraSize().W
	}
	return w
}

// tileContentOffset is the origin shift the tab indicator applies to tiles.
func (c *Column) tileContentOffset() geometry.Point {
	extra := c.extraSize()
	switch c.opts.TabIndicator.Position {
	case config.TabIndicatorLeft:
		return geometry.Pt(extra.W, 0)
	case config.TabIndicatorTop:
		return geometry.Pt(0, extra.H)
	default:
		return geometry.Point{}
	}
}

// tileOffset is the position of tile i relative to the column origin.
func (c *Column) tileOffset(i int) geometry.Point {
	off := c.tileContentOffset()
	if c.displayMode == DisplayTabbed || c.SizingMode().IsFullscreen() {
		return off
	}
	gap := c.opts.Gaps
	for j := 0; j < i; j++ {
		off.Y += c.tiles[j].TileExpectedOrCurrentSize().H + gap
	}
	return off
}

// tileOffsets returns one offset per tile.
func (c *Column) tileOffsets() []geometry.Point {
	out := make([]geometry.Point, len(c.tiles))
	for i := range c.tiles {
		out[i] = c.tileOffset(i)
	}
	return out
}

// Height is the stacked height of the column's tiles.
func (c *Column) Height() float64 {
	if c.displayMode == DisplayTabbed {
		h := 0.
		for _, t := range c.tiles {
			h = max(h, t.TileExpectedOrCurrentSize().H)
		}
		return h + c.extraSize().H
	}
	h := 0.
	for i, t := range c.tiles {
		if i > 0 {
			h += c.opts.Gaps
		}
		h += t.TileExpectedOrCurrentSize().H
	}
	return h
}

func (c *Column) updateConfig(viewSize geometry.Size, scale float64, workingArea, parentArea geometry.Rect, opts *config.Options) {
	c.viewSize = viewSize
	c.scale = scale
	c.workingArea = workingArea
	c.parentArea = parentArea
	c.opts = opts
	for _, t := range c.tiles {
		t.UpdateConfig(viewSize, scale, opts)
	}
}

func (c *Column) advanceAnimations() {
	if c.moveX != nil && c.moveX.anim.IsDone() {
		c.moveX = nil
	}
	if c.moveY != nil && c.moveY.anim.IsDone() {
		c.moveY = nil
	}
	c.tabIndicator.advanceAnimations()
	for _, t := range c.tiles {
		t.AdvanceAnimations()
	}
}

func (c *Column) areAnimationsOngoing() bool {
	if c.moveX != nil || c.moveY != nil || c.tabIndicator.areAnimationsOngoing() {
		return true
	}
	for _, t := range c.tiles {
		if t.AreAnimationsOngoing() {
			return true
		}
	}
	return false
}

// renderOffset is the animated displacement of the whole column.
func (c *Column) renderOffset() geometry.Point {
	var off geometry.Point
	if c.moveX != nil {
		off.X += c.moveX.from * c.moveX.anim.Value()
	}
	if c.moveY != nil {
		off.Y += c.moveY.from * c.moveY.anim.Value()
	}
	return off
}

// animateMoveFrom starts the column move animation from a delta.
func (c *Column) animateMoveFrom(fromDelta geometry.Point) {
	c.animateMoveXFrom(fromDelta.X)
	if fromDelta.Y != 0 {
		anim := animation.New(c.clock, 1, 0, 0, c.opts.Animations.WindowMovement)
		if c.moveY != nil {
			anim = c.moveY.anim.Restarted(1, 0, 0)
		}
		c.moveY = &moveAnimation{anim: anim, from: fromDelta.Y + c.renderOffset().Y}
	}
}

func (c *Column) animateMoveXFrom(from float64) {
	if from == 0 {
		return
	}
	current := c.renderOffset().X
	anim := animation.New(c.clock, 1, 0, 0, c.opts.Animations.WindowMovement)
	if c.moveX != nil {
		anim = c.moveX.anim.Restarted(1, 0, 0)
	}
	c.moveX = &moveAnimation{anim: anim, from: from + current}
}

// activateTile moves the active index, keeping it in range.
func (c *Column) activateTile(idx int) {
	if idx < 0 {
		idx = 0
	}
	if idx >= len(c.tiles) {
		idx = len(c.tiles) - 1
	}
	if idx == c.activeTileIdx {
		return
	}
	prev := c.activeTileIdx
	c.activeTileIdx = idx

	if c.displayMode == DisplayTabbed {
		// Cross-fade between the previous and next visible tab.
		c.tiles[prev].AnimateAlphaTo(0)
		c.tiles[idx].AnimateAlphaFrom(0)
		// Hidden tabs may have stale sizes; the new tab must be
		// up to date.
		c.updateTileSizes(true)
	}
}

// addTile inserts a tile at idx. Gaining a sibling drops a pending
// fullscreen unless the column is tabbed.
func (c *Column) addTile(idx int, tile *Tile, animate bool) {
	if c.pendingFullscreen && c.displayMode != DisplayTabbed {
		c.pendingFullscreen = false
	}
	tile.UpdateConfig(c.viewSize, c.scale, c.opts)
	c.tiles = append(c.tiles, nil)
	copy(c.tiles[idx+1:], c.tiles[idx:])
	c.tiles[idx] = tile

	c.heights = append(c.heights, WindowHeight{})
	copy(c.heights[idx+1:], c.heights[idx:])
	c.heights[idx] = AutoHeight(1)

	if idx <= c.activeTileIdx && len(c.tiles) > 1 {
		c.activeTileIdx++
	}

	c.updateTileSizes(animate)
}

// removeTileAt removes the tile at idx and returns it. The caller removes
// the column when this was the last tile.
func (c *Column) removeTileAt(idx int) *Tile {
	tile := c.tiles[idx]
	c.tiles = append(c.tiles[:idx], c.tiles[idx+1:]...)
	c.heights = append(c.heights[:idx], c.heights[idx+1:]...)

	if len(c.tiles) == 0 {
		return tile
	}

	if idx < c.activeTileIdx || c.activeTileIdx == len(c.tiles) {
		c.activeTileIdx--
		if c.activeTileIdx < 0 {
			c.activeTileIdx = 0
		}
	}

	// A single remaining tile cannot keep a fixed sibling-relative
	// height meaningfully different from auto.
	if len(c.tiles) == 1 && c.heights[0].Kind == HeightAuto {
		c.heights[0] = AutoHeight(1)
	}

	c.updateTileSizes(true)
	return tile
}

// render emits the column's elements at origin, active tile last within the
// tab group so cross-fades overlap correctly.
func (c *Column) render(origin geometry.Point, focusRingOn bool, isActiveColumn bool, target render.Target) []render.Element {
	var elems []render.Element

	origin = origin.Add(c.renderOffset())

	if c.displayMode == DisplayTabbed {
		// Non-active tabs only render while cross-fading.
		for i, t := range c.tiles {
			if i == c.activeTileIdx {
				continue
			}
			if t.alphaAnim == nil {
				continue
			}
			loc := origin.Add(c.tileOffset(i)).Add(t.RenderOffset())
			elems = append(elems, t.Render(loc, false, false, target)...)
		}
		active := c.tiles[c.activeTileIdx]
		loc := origin.Add(c.tileOffset(c.activeTileIdx)).Add(active.RenderOffset())
		elems = append(elems, active.Render(loc, focusRingOn, isActiveColumn, target)...)

		if !c.SizingMode().IsFullscreen() {
			colSize := geometry.Sz(c.Width(), c.Height())
			elems = append(elems, c.tabIndicator.render(
				&c.opts.TabIndicator, origin, colSize,
				len(c.tiles), c.activeTileIdx, c.scale,
			)...)
		}
		return elems
	}

	for i, t := range c.tiles {
		loc := origin.Add(c.tileOffset(i)).Add(t.RenderOffset())
		focus := focusRingOn && i == c.activeTileIdx
		active := isActiveColumn && i == c.activeTileIdx
		elems = append(elems, t.Render(loc, focus, active, target)...)
	}
	return elems
}
