package layout

import (
	"fmt"

	"github.com/Gaurav-Gosain/waveland/internal/animation"
	"github.com/Gaurav-Gosain/waveland/internal/config"
	"github.com/Gaurav-Gosain/waveland/internal/geometry"
	"github.com/Gaurav-Gosain/waveland/internal/render"
	"github.com/Gaurav-Gosain/waveland/internal/transaction"
	"github.com/Gaurav-Gosain/waveland/internal/window"
)

// FloatingSpace is a z-ordered set of floating tiles. Positions are stored
// as fractions of the working area, so the arrangement survives a
// working-area resize.
type FloatingSpace struct {
	// tiles in z-order, last on top. The top tile is the active one.
	tiles []*Tile

	// posFrac holds one fractional position per tile, parallel to tiles.
	posFrac []geometry.Point

	workingArea geometry.Rect
	viewSize    geometry.Size
	scale       float64
	clock       animation.Clock
	opts        *config.Options
}

// NewFloatingSpace returns an empty floating space.
func NewFloatingSpace(viewSize geometry.Size, scale float64, workingArea geometry.Rect, clock animation.Clock, opts *config.Options) *FloatingSpace {
	return &FloatingSpace{
		workingArea: workingArea,
		viewSize:    viewSize,
		scale:       scale,
		clock:       clock,
		opts:        opts,
	}
}

// IsEmpty reports whether the space holds no tiles.
func (fs *FloatingSpace) IsEmpty() bool { return len(fs.tiles) == 0 }

// Tiles returns the tiles bottom to top. Callers must not mutate.
func (fs *FloatingSpace) Tiles() []*Tile { return fs.tiles }

func (fs *FloatingSpace) findWindow(id window.ID) int {
	for i, t := range fs.tiles {
		if t.win.ID() == id {
			return i
		}
	}
	return -1
}

// HasWindow reports whether the window floats here.
func (fs *FloatingSpace) HasWindow(id window.ID) bool {
	return fs.findWindow(id) >= 0
}

// ActiveWindow returns the topmost window.
func (fs *FloatingSpace) ActiveWindow() (window.Window, bool) {
	if len(fs.tiles) == 0 {
		return nil, false
	}
	return fs.tiles[len(fs.tiles)-1].win, true
}

// AddTile inserts a tile, on top when activating. The tile's remembered
// floating position is used when present, otherwise it opens centered.
func (fs *FloatingSpace) AddTile(tile *Tile, activate bool) {
	tile.UpdateConfig(fs.viewSize, fs.scale, fs.opts)

	frac, ok := tile.rememberedFloatingPos()
	if !ok {
		frac = geometry.Pt(0.5, 0.5)
	}

	if size, ok := tile.rememberedFloatingSize(); ok {
		tile.RequestTileSize(
			geometry.Sz(tile.TileWidthForWindowWidth(size.W), tile.TileHeightForWindowHeight(size.H)),
			false, transaction.Transaction{})
	}

	idx := len(fs.tiles)
	if !activate && idx > 0 {
		idx--
	}
	fs.tiles = append(fs.tiles, nil)
	copy(fs.tiles[idx+1:], fs.tiles[idx:])
	fs.tiles[idx] = tile
	fs.posFrac = append(fs.posFrac, geometry.Point{})
	copy(fs.posFrac[idx+1:], fs.posFrac[idx:])
	fs.posFrac[idx] = frac
}

// RemoveWindow extracts the window's tile, remembering its position.
func (fs *FloatingSpace) RemoveWindow(id window.ID) *Tile {
	idx := fs.findWindow(id)
	if idx < 0 {
		panic(fmt.Sprintf("removing window %q not in this floating space", id))
	}

	tile := fs.tiles[idx]
	tile.rememberFloatingPos(fs.posFrac[idx])
	tile.rememberFloatingSize(tile.WindowExpectedOrCurrentSize())

	fs.tiles = append(fs.tiles[:idx], fs.tiles[idx+1:]...)
	fs.posFrac = append(fs.posFrac[:idx], fs.posFrac[idx+1:]...)
	return tile
}

// ActivateWindow raises the window to the top.
func (fs *FloatingSpace) ActivateWindow(id window.ID) bool {
	idx := fs.findWindow(id)
	if idx < 0 {
		return false
	}
	tile := fs.tiles[idx]
	frac := fs.posFrac[idx]
	fs.tiles = append(fs.tiles[:idx], fs.tiles[idx+1:]...)
	fs.posFrac = append(fs.posFrac[:idx], fs.posFrac[idx+1:]...)
	fs.tiles = append(fs.tiles, tile)
	fs.posFrac = append(fs.posFrac, frac)
	return true
}

// tilePos resolves a tile's fractional position to output coordinates.
func (fs *FloatingSpace) tilePos(i int) geometry.Point {
	tile := fs.tiles[i]
	size := tile.TileExpectedOrCurrentSize()
	area := fs.workingArea

	free := geometry.Sz(
		max(0, area.Size.W-size.W),
		max(0, area.Size.H-size.H),
	)
	pos := geometry.Pt(
		area.Loc.X+free.W*fs.posFrac[i].X,
		area.Loc.Y+free.H*fs.posFrac[i].Y,
	)
	return pos.RoundPhysical(fs.scale)
}

// SetWindowPos moves a floating window. Coordinates are output-relative.
func (fs *FloatingSpace) SetWindowPos(id window.ID, xChange, yChange PositionChange) {
	idx := fs.findWindow(id)
	if idx < 0 {
		return
	}

	cur := fs.tilePos(idx)
	x := applyPositionChange(cur.X, xChange)
	y := applyPositionChange(cur.Y, yChange)
	fs.setTilePos(idx, geometry.Pt(x, y))
}

func applyPositionChange(cur float64, change PositionChange) float64 {
	switch change.Kind {
	case AdjustFixedPosition:
		return cur + change.Value
	default:
		return change.Value
	}
}

// MoveWindowTo positions a floating window at an absolute point.
func (fs *FloatingSpace) MoveWindowTo(id window.ID, pos geometry.Point) {
	idx := fs.findWindow(id)
	if idx < 0 {
		return
	}
	fs.setTilePos(idx, pos)
}

func (fs *FloatingSpace) setTilePos(i int, pos geometry.Point) {
	tile := fs.tiles[i]
	size := tile.TileExpectedOrCurrentSize()
	area := fs.workingArea

	free := geometry.Sz(
		max(0, area.Size.W-size.W),
		max(0, area.Size.H-size.H),
	)

	var frac geometry.Point
	if free.W > 0 {
		frac.X = geometry.Clamp((pos.X-area.Loc.X)/free.W, 0, 1)
	}
	if free.H > 0 {
		frac.Y = geometry.Clamp((pos.Y-area.Loc.Y)/free.H, 0, 1)
	}
	fs.posFrac[i] = frac
}

// UpdateWindow ingests a window commit.
func (fs *FloatingSpace) UpdateWindow(id window.ID) {
	idx := fs.findWindow(id)
	if idx < 0 {
		panic(fmt.Sprintf("update for window %q not in this floating space", id))
	}
	fs.tiles[idx].UpdateWindow()
}

// AdvanceAnimations drops finished tile animations.
func (fs *FloatingSpace) AdvanceAnimations() {
	for _, t := range fs.tiles {
		t.AdvanceAnimations()
	}
}

// AreAnimationsOngoing reports whether any tile animates.
func (fs *FloatingSpace) AreAnimationsOngoing() bool {
	for _, t := range fs.tiles {
		if t.AreAnimationsOngoing() {
			return true
		}
	}
	return false
}

// Refresh pushes activation state and flushes configures.
func (fs *FloatingSpace) Refresh(isActiveSpace bool) {
	for i, tile := range fs.tiles {
		active := isActiveSpace && i == len(fs.tiles)-1
		tile.win.SetActivated(active)

		switch tile.win.ConfigureIntent() {
		case window.ConfigureShouldSend, window.ConfigureCanSend:
			tile.win.SendPendingConfigure()
		}
	}
}

// Render emits the floating tiles bottom to top.
func (fs *FloatingSpace) Render(target render.Target, focusRingOn bool) []render.Element {
	var elems []render.Element
	for i, tile := range fs.tiles {
		top := i == len(fs.tiles)-1
		loc := fs.tilePos(i).Add(tile.RenderOffset())
		elems = append(elems, tile.Render(loc, focusRingOn && top, top, target)...)
	}
	return elems
}

// WindowUnder hit-tests from top to bottom.
func (fs *FloatingSpace) WindowUnder(p geometry.Point) (window.Window, bool) {
	for i := len(fs.tiles) - 1; i >= 0; i-- {
		tile := fs.tiles[i]
		loc := fs.tilePos(i).Add(tile.RenderOffset())
		if tile.IsInInputRegion(p.Sub(loc)) {
			return tile.win, true
		}
	}
	return nil, false
}

// UpdateOutputSize applies a changed output geometry, preserving fractions.
func (fs *FloatingSpace) UpdateOutputSize(viewSize geometry.Size, scale float64, workingArea geometry.Rect) {
	fs.viewSize = viewSize
	fs.scale = scale
	fs.workingArea = workingArea
	for _, t := range fs.tiles {
		t.UpdateConfig(viewSize, scale, fs.opts)
	}
}

// UpdateConfig applies new options.
func (fs *FloatingSpace) UpdateConfig(opts *config.Options) {
	fs.opts = opts
	for _, t := range fs.tiles {
		t.UpdateConfig(fs.viewSize, fs.scale, opts)
	}
}
