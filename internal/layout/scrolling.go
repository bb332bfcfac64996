package layout

import (
	"fmt"
	"math"

	"github.com/Gaurav-Gosain/waveland/internal/animation"
	"github.com/Gaurav-Gosain/waveland/internal/config"
	"github.com/Gaurav-Gosain/waveland/internal/geometry"
	"github.com/Gaurav-Gosain/waveland/internal/render"
	"github.com/Gaurav-Gosain/waveland/internal/transaction"
	"github.com/Gaurav-Gosain/waveland/internal/window"
)

// ScrollingSpace is the horizontal ribbon of columns on one workspace. It
// owns the view offset, its gestures, interactive resize and the
// closing-window animations.
type ScrollingSpace struct {
	columns         []*Column
	activeColumnIdx int

	viewOffset viewOffset

	// activatePrevColumnOnRemoval makes removing the active column focus
	// its left neighbour; set when a column is created right of the
	// active one, so closing a just-opened window goes back.
	activatePrevColumnOnRemoval bool

	// viewOffsetToRestore brings the exact scroll position back after a
	// round trip through fullscreen.
	viewOffsetToRestore    float64
	hasViewOffsetToRestore bool

	interactiveResize *interactiveResize

	closing []*closingWindow

	workingArea geometry.Rect
	parentArea  geometry.Rect
	viewSize    geometry.Size
	scale       float64
	clock       animation.Clock
	opts        *config.Options
}

// NewScrollingSpace returns an empty space for an output of the given
// geometry.
func NewScrollingSpace(viewSize geometry.Size, scale float64, workingArea, parentArea geometry.Rect, clock animation.Clock, opts *config.Options) *ScrollingSpace {
	return &ScrollingSpace{
		viewOffset:  staticViewOffset(0),
		workingArea: workingArea,
		parentArea:  parentArea,
		viewSize:    viewSize,
		scale:       scale,
		clock:       clock,
		opts:        opts,
	}
}

// Columns returns the column slice. Callers must not mutate it.
func (sp *ScrollingSpace) Columns() []*Column { return sp.columns }

// ActiveColumnIdx returns the active column index.
func (sp *ScrollingSpace) ActiveColumnIdx() int { return sp.activeColumnIdx }

// ViewOffsetCurrent returns the live view offset.
func (sp *ScrollingSpace) ViewOffsetCurrent() float64 { return sp.viewOffset.current() }

// ViewOffsetTarget returns the view offset's endpoint.
func (sp *ScrollingSpace) ViewOffsetTarget() float64 { return sp.viewOffset.target() }

// IsViewOffsetAnimating reports whether the view is mid-animation.
func (sp *ScrollingSpace) IsViewOffsetAnimating() bool { return sp.viewOffset.isAnimation() }

// IsEmpty reports whether the space holds no columns.
func (sp *ScrollingSpace) IsEmpty() bool { return len(sp.columns) == 0 }

// WorkingArea returns the area tiled windows occupy.
func (sp *ScrollingSpace) WorkingArea() geometry.Rect { return sp.workingArea }

// columnX is the leading x of column i in strip coordinates (x = 0 at the
// first column).
func (sp *ScrollingSpace) columnX(i int) float64 {
	x := 0.
	for j := 0; j < i && j < len(sp.columns); j++ {
		x += sp.columns[j].Width() + sp.opts.Gaps
	}
	return x
}

// viewPos is the current view x in strip coordinates.
func (sp *ScrollingSpace) viewPos() float64 {
	return sp.columnX(sp.activeColumnIdx) + sp.viewOffset.current()
}

// targetViewPos is the view x at the end of any ongoing animation.
func (sp *ScrollingSpace) targetViewPos() float64 {
	return sp.columnX(sp.activeColumnIdx) + sp.viewOffset.target()
}

// ViewPos is the current horizontal scroll position in strip coordinates
// (x = 0 at the first column).
func (sp *ScrollingSpace) ViewPos() float64 { return sp.viewPos() }

// TargetViewPos is the scroll position at the end of any ongoing animation.
func (sp *ScrollingSpace) TargetViewPos() float64 { return sp.targetViewPos() }

// columnY is the screen y a column renders at.
func (sp *ScrollingSpace) columnY(col *Column) float64 {
	switch col.SizingMode() {
	case SizingFullscreen:
		return 0
	case SizingMaximized:
		return sp.parentArea.Loc.Y
	default:
		return sp.workingArea.Loc.Y + sp.opts.Gaps
	}
}

// columnRenderX converts a strip x to a screen x.
func (sp *ScrollingSpace) columnRenderX(i int) float64 {
	return sp.columnX(i) - sp.viewPos()
}

// ColumnScreenX is the on-screen x of column i, for hosts that draw the
// space themselves.
func (sp *ScrollingSpace) ColumnScreenX(i int) float64 {
	return sp.columnRenderX(i)
}

// ColumnScreenY is the on-screen y of column i.
func (sp *ScrollingSpace) ColumnScreenY(i int) float64 {
	return sp.columnY(sp.columns[i])
}

func (sp *ScrollingSpace) isCenteringFocusedColumn() bool {
	return sp.opts.CenterFocusedColumn == config.CenterAlways ||
		(sp.opts.AlwaysCenterSingleColumn && len(sp.columns) <= 1)
}

// computeNewViewOffsetFit fits a column into view: no change when already
// fully visible, otherwise align to the edge closer to the current
// position.
func (sp *ScrollingSpace) computeNewViewOffsetFit(targetX float64, colX, width float64, mode SizingMode) float64 {
	if mode.IsFullscreen() {
		return 0
	}

	area := sp.workingArea
	padding := sp.opts.Gaps
	if mode.IsMaximized() {
		area = sp.parentArea
		padding = 0
	}

	newOffset := computeFitOffset(targetX+area.Loc.X, area.Size.W, colX, width, padding)

	// Non-fullscreen columns are always offset at least by the working
	// area position.
	return newOffset - area.Loc.X
}

// computeFitOffset picks the view offset that brings [colX, colX+width]
// into a view of the given width, moving as little as possible.
func computeFitOffset(viewX, viewWidth, colX, width, gaps float64) float64 {
	padding := geometry.Clamp((viewWidth-width)/2, 0, gaps)

	// Already fully on screen: no change.
	if viewX+padding <= colX && colX+width <= viewX+viewWidth-padding {
		return viewX - colX
	}

	// Align to the closer edge.
	leftAligned := -padding
	rightAligned := width + padding - viewWidth
	if colX < viewX {
		return leftAligned
	}
	return rightAligned
}

func (sp *ScrollingSpace) computeNewViewOffsetCentered(targetX float64, colX, width float64, mode SizingMode) float64 {
	if mode.IsFullscreen() {
		return sp.computeNewViewOffsetFit(targetX, colX, width, mode)
	}

	area := sp.workingArea
	if mode.IsMaximized() {
		area = sp.parentArea
	}

	// Columns at least as wide as the area are left-aligned.
	if area.Size.W <= width {
		return -area.Loc.X
	}

	return -(area.Size.W-width)/2 - area.Loc.X
}

func (sp *ScrollingSpace) computeNewViewOffsetForColumn(targetX float64, idx int, prevIdx int) float64 {
	if sp.isCenteringFocusedColumn() {
		col := sp.columns[idx]
		return sp.computeNewViewOffsetCentered(targetX, sp.columnX(idx), col.Width(), col.SizingMode())
	}

	col := sp.columns[idx]
	fit := func() float64 {
		return sp.computeNewViewOffsetFit(targetX, sp.columnX(idx), col.Width(), col.SizingMode())
	}
	centered := func() float64 {
		return sp.computeNewViewOffsetCentered(targetX, sp.columnX(idx), col.Width(), col.SizingMode())
	}

	switch sp.opts.CenterFocusedColumn {
	case config.CenterAlways:
		return centered()
	case config.CenterOnOverflow:
		if prevIdx < 0 || prevIdx == idx {
			return fit()
		}

		// Take the target's neighbour towards the previous column as
		// the source.
		var sourceIdx int
		if prevIdx > idx {
			sourceIdx = min(idx+1, len(sp.columns)-1)
		} else {
			sourceIdx = max(idx-1, 0)
		}

		sourceX := sp.columnX(sourceIdx)
		sourceW := sp.columns[sourceIdx].Width()
		targetColX := sp.columnX(idx)
		targetW := col.Width()

		var total float64
		if sourceX < targetColX {
			total = targetColX - sourceX + targetW
		} else {
			total = sourceX - targetColX + sourceW
		}
		total += sp.opts.Gaps * 2

		if total <= sp.workingArea.Size.W {
			return fit()
		}
		return centered()
	default:
		return fit()
	}
}

// animateViewOffset moves the view offset to a new value relative to column
// idx, preserving continuity as the active column changes.
func (sp *ScrollingSpace) animateViewOffset(idx int, newViewOffset float64) {
	sp.animateViewOffsetWithConfig(idx, newViewOffset, sp.opts.Animations.HorizontalViewMovement)
}

func (sp *ScrollingSpace) animateViewOffsetWithConfig(idx int, newViewOffset float64, cfg animation.Config) {
	newColX := sp.columnX(idx)
	oldColX := sp.columnX(sp.activeColumnIdx)
	sp.viewOffset.offsetBy(oldColX - newColX)

	pixel := 1 / sp.scale

	// Already there or already heading there: only correct inaccuracy.
	toDiff := newViewOffset - sp.viewOffset.target()
	if math.Abs(toDiff) < pixel {
		sp.viewOffset.offsetBy(toDiff)
		return
	}

	if sp.viewOffset.isDnDScroll() {
		// Keep the DnD gesture alive, retargeting it.
		g := sp.viewOffset.gesture
		g.stationaryViewOffset = newViewOffset
		currentPos := g.currentViewOffset - g.deltaFromTracker
		g.deltaFromTracker = newViewOffset - currentPos
		g.currentViewOffset = newViewOffset
		return
	}

	sp.viewOffset = viewOffset{
		kind: voAnimation,
		anim: animation.New(sp.clock, sp.viewOffset.current(), newViewOffset, 0, cfg),
	}
}

func (sp *ScrollingSpace) animateViewOffsetToColumn(targetX float64, idx int, prevIdx int) {
	newOffset := sp.computeNewViewOffsetForColumn(targetX, idx, prevIdx)
	sp.animateViewOffsetWithConfig(idx, newOffset, sp.opts.Animations.HorizontalViewMovement)
}

// ActivateColumn focuses column idx and scrolls it into view.
func (sp *ScrollingSpace) ActivateColumn(idx int) {
	if sp.activeColumnIdx == idx && (len(sp.columns) == 0 || !sp.viewOffset.isDnDScroll()) {
		return
	}

	sp.animateViewOffsetToColumn(sp.targetViewPos(), idx, sp.activeColumnIdx)

	if sp.activeColumnIdx != idx {
		sp.activeColumnIdx = idx

		// A different column was activated; reset the one-shot flags.
		sp.activatePrevColumnOnRemoval = false
		sp.hasViewOffsetToRestore = false
		sp.interactiveResize = nil
	}
}

// ActiveWindow returns the active tile's window, if the space is non-empty.
func (sp *ScrollingSpace) ActiveWindow() (window.Window, bool) {
	if len(sp.columns) == 0 {
		return nil, false
	}
	return sp.columns[sp.activeColumnIdx].ActiveTile().win, true
}

// HasWindow reports whether the window tiles in this space.
func (sp *ScrollingSpace) HasWindow(id window.ID) bool {
	c, _ := sp.findWindow(id)
	return c >= 0
}

func (sp *ScrollingSpace) findWindow(id window.ID) (colIdx, tileIdx int) {
	for i, col := range sp.columns {
		if j := col.tileIdx(id); j >= 0 {
			return i, j
		}
	}
	return -1, -1
}

// AddWindow wraps the window in a tile and adds it as a new column next to
// the active one.
func (sp *ScrollingSpace) AddWindow(win window.Window, activate bool) {
	tile := NewTile(win, sp.viewSize, sp.scale, sp.clock, sp.opts)
	tile.StartOpenAnimation()
	sp.AddTile(tile, activate)
}

// AddTile inserts a tile as a new column right of the active column, or left
// of it when new windows open on the left.
func (sp *ScrollingSpace) AddTile(tile *Tile, activate bool) {
	idx := 0
	if len(sp.columns) > 0 {
		if sp.opts.NewWindowsOpenRight {
			idx = sp.activeColumnIdx + 1
		} else {
			idx = sp.activeColumnIdx
		}
	}
	sp.addTileAt(idx, tile, activate)
}

func (sp *ScrollingSpace) addTileAt(idx int, tile *Tile, activate bool) {
	col := newColumn(tile, sp.defaultWidthFor(tile), false, sp)
	sp.insertColumn(idx, col, activate)
	col.updateTileSizes(false)
}

// defaultWidthFor picks a new column's width: the configured default, or
// the window's own width when the config leaves the choice to windows.
func (sp *ScrollingSpace) defaultWidthFor(tile *Tile) ColumnWidth {
	if d := sp.opts.DefaultColumnWidth; d != nil {
		switch d.Kind {
		case config.PresetFixed:
			return FixedWidth(tile.TileWidthForWindowWidth(d.Fixed))
		default:
			return ProportionWidth(d.Proportion)
		}
	}
	w := tile.TileExpectedOrCurrentSize().W
	if w <= 0 {
		return ProportionWidth(0.5)
	}
	return FixedWidth(w)
}

// insertColumn adds a prepared column at idx.
func (sp *ScrollingSpace) insertColumn(idx int, col *Column, activate bool) {
	if idx < 0 || idx > len(sp.columns) {
		panic(fmt.Sprintf("column insert index %d out of range", idx))
	}

	col.updateConfig(sp.viewSize, sp.scale, sp.workingArea, sp.parentArea, sp.opts)

	sp.columns = append(sp.columns, nil)
	copy(sp.columns[idx+1:], sp.columns[idx:])
	sp.columns[idx] = col

	if len(sp.columns) == 1 {
		sp.activeColumnIdx = 0
		sp.viewOffset = staticViewOffset(sp.computeNewViewOffsetForColumn(0, 0, -1))
		return
	}

	if activate {
		prev := sp.activeColumnIdx
		if idx <= prev {
			prev++
		}
		// Re-point at the previously active column before animating,
		// so the offset rebases from the right place.
		sp.activeColumnIdx = prev
		// Adding to the right of the active column: removal should go
		// back left.
		fromLeft := idx == prev+1
		sp.ActivateColumn(idx)
		sp.activatePrevColumnOnRemoval = fromLeft
	} else if idx <= sp.activeColumnIdx {
		// The strip grew to the left; the offset stays relative to
		// the active column, so the view doesn't jump.
		sp.activeColumnIdx++
	}
}

// RemoveWindow extracts a window's tile, dropping its column when it was
// the last tile. Returns the removed tile.
func (sp *ScrollingSpace) RemoveWindow(id window.ID) *Tile {
	colIdx, tileIdx := sp.findWindow(id)
	if colIdx < 0 {
		panic(fmt.Sprintf("removing window %q not in this space", id))
	}

	col := sp.columns[colIdx]
	sp.cancelResizeForWindow(id)

	if len(col.tiles) > 1 {
		tile := col.removeTileAt(tileIdx)
		return tile
	}

	tile := col.tiles[0]
	sp.removeColumnAt(colIdx)
	return tile
}

func (sp *ScrollingSpace) removeColumnAt(idx int) *Column {
	col := sp.columns[idx]
	sp.columns = append(sp.columns[:idx], sp.columns[idx+1:]...)

	if len(sp.columns) == 0 {
		sp.activeColumnIdx = 0
		sp.viewOffset = staticViewOffset(0)
		sp.activatePrevColumnOnRemoval = false
		sp.hasViewOffsetToRestore = false
		return col
	}

	if idx < sp.activeColumnIdx {
		// The offset is relative to the active column, so the view
		// stays put.
		sp.activeColumnIdx--
		return col
	}

	if idx == sp.activeColumnIdx {
		newIdx := sp.activeColumnIdx
		if sp.activatePrevColumnOnRemoval && newIdx > 0 {
			newIdx--
		}
		newIdx = min(newIdx, len(sp.columns)-1)
		sp.activeColumnIdx = min(sp.activeColumnIdx, len(sp.columns)-1)
		sp.activatePrevColumnOnRemoval = false
		sp.animateViewOffsetToColumn(sp.targetViewPos(), newIdx, -1)
		sp.activeColumnIdx = newIdx
	}
	return col
}

// ActivateWindow focuses the given window.
func (sp *ScrollingSpace) ActivateWindow(id window.ID) bool {
	colIdx, tileIdx := sp.findWindow(id)
	if colIdx < 0 {
		return false
	}
	sp.columns[colIdx].activateTile(tileIdx)
	sp.ActivateColumn(colIdx)
	return true
}

// Focus movement.

// FocusColumnLeft focuses the previous column.
func (sp *ScrollingSpace) FocusColumnLeft() {
	if sp.activeColumnIdx > 0 {
		sp.ActivateColumn(sp.activeColumnIdx - 1)
	}
}

// FocusColumnRight focuses the next column.
func (sp *ScrollingSpace) FocusColumnRight() {
	if sp.activeColumnIdx+1 < len(sp.columns) {
		sp.ActivateColumn(sp.activeColumnIdx + 1)
	}
}

// FocusColumnFirst focuses the first column.
func (sp *ScrollingSpace) FocusColumnFirst() {
	if len(sp.columns) > 0 {
		sp.ActivateColumn(0)
	}
}

// FocusColumnLast focuses the last column.
func (sp *ScrollingSpace) FocusColumnLast() {
	if len(sp.columns) > 0 {
		sp.ActivateColumn(len(sp.columns) - 1)
	}
}

// FocusWindowUp moves focus one tile up within the active column. Returns
// false at the top, letting the caller cross to another workspace.
func (sp *ScrollingSpace) FocusWindowUp() bool {
	if len(sp.columns) == 0 {
		return false
	}
	col := sp.columns[sp.activeColumnIdx]
	if col.activeTileIdx == 0 {
		return false
	}
	col.activateTile(col.activeTileIdx - 1)
	return true
}

// FocusWindowDown moves focus one tile down within the active column.
func (sp *ScrollingSpace) FocusWindowDown() bool {
	if len(sp.columns) == 0 {
		return false
	}
	col := sp.columns[sp.activeColumnIdx]
	if col.activeTileIdx+1 >= len(col.tiles) {
		return false
	}
	col.activateTile(col.activeTileIdx + 1)
	return true
}

// Column movement.

func (sp *ScrollingSpace) moveColumnTo(newIdx int) {
	idx := sp.activeColumnIdx
	if newIdx == idx || newIdx < 0 || newIdx >= len(sp.columns) {
		return
	}

	col := sp.columns[idx]
	sp.cancelResizeForColumn(col)

	oldX := sp.columnX(idx)

	sp.columns = append(sp.columns[:idx], sp.columns[idx+1:]...)
	sp.columns = append(sp.columns, nil)
	copy(sp.columns[newIdx+1:], sp.columns[newIdx:])
	sp.columns[newIdx] = col

	newX := sp.columnX(newIdx)
	col.animateMoveXFrom(oldX - newX)

	// Animate displaced neighbours from their previous positions.
	lo, hi := min(idx, newIdx), max(idx, newIdx)
	for i := lo; i <= hi; i++ {
		if i == newIdx {
			continue
		}
		other := sp.columns[i]
		shift := col.Width() + sp.opts.Gaps
		if newIdx > idx {
			other.animateMoveXFrom(shift)
		} else {
			other.animateMoveXFrom(-shift)
		}
	}

	sp.activeColumnIdx = newIdx
	sp.animateViewOffsetToColumn(sp.targetViewPos(), newIdx, -1)
}

// MoveColumnLeft swaps the active column with its left neighbour.
func (sp *ScrollingSpace) MoveColumnLeft() { sp.moveColumnTo(sp.activeColumnIdx - 1) }

// MoveColumnRight swaps the active column with its right neighbour.
func (sp *ScrollingSpace) MoveColumnRight() { sp.moveColumnTo(sp.activeColumnIdx + 1) }

// MoveColumnFirst moves the active column to the start.
func (sp *ScrollingSpace) MoveColumnFirst() { sp.moveColumnTo(0) }

// MoveColumnLast moves the active column to the end.
func (sp *ScrollingSpace) MoveColumnLast() { sp.moveColumnTo(len(sp.columns) - 1) }

// MoveWindowUp swaps the active tile with the one above it.
func (sp *ScrollingSpace) MoveWindowUp() bool {
	if len(sp.columns) == 0 {
		return false
	}
	col := sp.columns[sp.activeColumnIdx]
	i := col.activeTileIdx
	if i == 0 {
		return false
	}
	sp.swapTilesInColumn(col, i, i-1)
	return true
}

// MoveWindowDown swaps the active tile with the one below it.
func (sp *ScrollingSpace) MoveWindowDown() bool {
	if len(sp.columns) == 0 {
		return false
	}
	col := sp.columns[sp.activeColumnIdx]
	i := col.activeTileIdx
	if i+1 >= len(col.tiles) {
		return false
	}
	sp.swapTilesInColumn(col, i, i+1)
	return true
}

func (sp *ScrollingSpace) swapTilesInColumn(col *Column, a, b int) {
	offA := col.tileOffset(a)
	offB := col.tileOffset(b)

	col.tiles[a], col.tiles[b] = col.tiles[b], col.tiles[a]
	col.heights[a], col.heights[b] = col.heights[b], col.heights[a]
	if col.activeTileIdx == a {
		col.activeTileIdx = b
	} else if col.activeTileIdx == b {
		col.activeTileIdx = a
	}

	newA := col.tileOffset(a)
	newB := col.tileOffset(b)
	col.tiles[a].AnimateMoveFrom(offB.Sub(newA))
	col.tiles[b].AnimateMoveFrom(offA.Sub(newB))

	col.updateTileSizes(true)
}

// Fullscreen and maximize.

// SetWindowFullscreen puts the window's column into or out of fullscreen. A
// window sharing a normal-mode column is first expelled into its own
// column.
func (sp *ScrollingSpace) SetWindowFullscreen(id window.ID, on bool) {
	colIdx, tileIdx := sp.findWindow(id)
	if colIdx < 0 {
		panic(fmt.Sprintf("fullscreen for window %q not in this space", id))
	}

	col := sp.columns[colIdx]
	if on && len(col.tiles) > 1 && col.displayMode == DisplayNormal {
		// Move the window out into its own column first.
		tile := col.removeTileAt(tileIdx)
		newCol := newColumn(tile, col.width, false, sp)
		sp.insertColumn(colIdx+1, newCol, true)
		col = newCol
		colIdx++
	}

	sp.cancelResizeForColumn(col)

	if on && !col.pendingFullscreen {
		sp.viewOffsetToRestore = sp.viewOffset.stationary()
		sp.hasViewOffsetToRestore = true
	}

	col.SetFullscreen(on, true)

	if colIdx == sp.activeColumnIdx {
		if !on && sp.hasViewOffsetToRestore {
			sp.animateViewOffset(colIdx, sp.viewOffsetToRestore)
			sp.hasViewOffsetToRestore = false
		} else {
			sp.animateViewOffsetToColumn(sp.targetViewPos(), colIdx, -1)
		}
	}
}

// ToggleWindowFullscreen flips the window's fullscreen state.
func (sp *ScrollingSpace) ToggleWindowFullscreen(id window.ID) {
	colIdx, _ := sp.findWindow(id)
	if colIdx < 0 {
		panic(fmt.Sprintf("fullscreen for window %q not in this space", id))
	}
	sp.SetWindowFullscreen(id, !sp.columns[colIdx].pendingFullscreen)
}

// MaximizeColumn toggles the active column's maximized state.
func (sp *ScrollingSpace) MaximizeColumn() {
	if len(sp.columns) == 0 {
		return
	}
	col := sp.columns[sp.activeColumnIdx]
	sp.cancelResizeForColumn(col)
	col.SetMaximized(!col.pendingMaximized, true)
	sp.animateViewOffsetToColumn(sp.targetViewPos(), sp.activeColumnIdx, -1)
}

// ExpandColumnToAvailableWidth grows the active column into the space left
// by fully visible neighbours.
func (sp *ScrollingSpace) ExpandColumnToAvailableWidth() {
	if len(sp.columns) == 0 {
		return
	}
	col := sp.columns[sp.activeColumnIdx]
	sp.cancelResizeForColumn(col)

	gaps := sp.opts.Gaps
	viewX := sp.targetViewPos()
	workingX := sp.workingArea.Loc.X
	workingW := sp.workingArea.Size.W

	taken := 0.
	for i, other := range sp.columns {
		if i == sp.activeColumnIdx {
			continue
		}
		x := sp.columnX(i)
		w := other.Width()
		if x < viewX+workingX+gaps-0.5 {
			continue
		}
		if viewX+workingX+workingW+0.5 < x+w+gaps {
			continue
		}
		taken += w + gaps
	}

	available := workingW - taken - gaps*2
	col.ExpandToAvailableWidth(available, true)
	sp.animateViewOffsetToColumn(sp.targetViewPos(), sp.activeColumnIdx, -1)
}

// Per-frame plumbing.

// UpdateWindow ingests a window commit. Called after the backend applies a
// configure acknowledgement.
func (sp *ScrollingSpace) UpdateWindow(id window.ID) {
	colIdx, tileIdx := sp.findWindow(id)
	if colIdx < 0 {
		panic(fmt.Sprintf("update for window %q not in this space", id))
	}
	sp.columns[colIdx].tiles[tileIdx].UpdateWindow()
}

// AdvanceAnimations is called once per frame before refresh and render.
func (sp *ScrollingSpace) AdvanceAnimations() {
	sp.viewOffset.settleIfDone()
	for _, col := range sp.columns {
		col.advanceAnimations()
	}

	kept := sp.closing[:0]
	for _, c := range sp.closing {
		if !c.isDone() {
			kept = append(kept, c)
		}
	}
	sp.closing = kept
}

// AreAnimationsOngoing reports whether anything in the space animates.
func (sp *ScrollingSpace) AreAnimationsOngoing() bool {
	if sp.viewOffset.isAnimation() || len(sp.closing) > 0 {
		return true
	}
	for _, col := range sp.columns {
		if col.areAnimationsOngoing() {
			return true
		}
	}
	return false
}

// Refresh pushes activation state and flushes pending configures.
func (sp *ScrollingSpace) Refresh(isActiveSpace bool) {
	for colIdx, col := range sp.columns {
		for tileIdx, tile := range col.tiles {
			active := isActiveSpace &&
				colIdx == sp.activeColumnIdx &&
				tileIdx == col.activeTileIdx
			tile.win.SetActivated(active)

			switch tile.win.ConfigureIntent() {
			case window.ConfigureShouldSend, window.ConfigureCanSend:
				tile.win.SendPendingConfigure()
			}
		}
	}
}

// Render emits all elements of the space, closing windows above everything.
func (sp *ScrollingSpace) Render(target render.Target, focusRingOn bool) []render.Element {
	var elems []render.Element

	// Active column last so its decorations draw above neighbours.
	for i := len(sp.columns) - 1; i >= 0; i-- {
		if i == sp.activeColumnIdx {
			continue
		}
		elems = append(elems, sp.renderColumn(i, false, target)...)
	}
	if len(sp.columns) > 0 {
		elems = append(elems, sp.renderColumn(sp.activeColumnIdx, focusRingOn, target)...)
	}

	viewPos := sp.viewPos()
	for _, c := range sp.closing {
		elems = append(elems, c.render(viewPos, target)...)
	}
	return elems
}

func (sp *ScrollingSpace) renderColumn(i int, focusRingOn bool, target render.Target) []render.Element {
	col := sp.columns[i]
	origin := geometry.Pt(sp.columnRenderX(i), sp.columnY(col))
	return col.render(origin, focusRingOn, i == sp.activeColumnIdx, target)
}

// UpdateOutputSize applies a changed output geometry.
func (sp *ScrollingSpace) UpdateOutputSize(viewSize geometry.Size, scale float64, workingArea, parentArea geometry.Rect) {
	sp.viewSize = viewSize
	sp.scale = scale
	sp.workingArea = workingArea
	sp.parentArea = parentArea
	for _, col := range sp.columns {
		col.updateConfig(viewSize, scale, workingArea, parentArea, sp.opts)
		col.updateTileSizes(false)
	}
}

// UpdateConfig applies new options.
func (sp *ScrollingSpace) UpdateConfig(opts *config.Options) {
	sp.opts = opts
	for _, col := range sp.columns {
		col.updateConfig(sp.viewSize, sp.scale, sp.workingArea, sp.parentArea, opts)
		col.updateTileSizes(false)
	}
}

// WindowUnder returns the window whose input region contains the point (in
// output coordinates).
func (sp *ScrollingSpace) WindowUnder(p geometry.Point) (window.Window, bool) {
	for i, col := range sp.columns {
		origin := geometry.Pt(sp.columnRenderX(i), sp.columnY(col)).Add(col.renderOffset())
		if col.displayMode == DisplayTabbed {
			tile := col.ActiveTile()
			loc := origin.Add(col.tileOffset(col.activeTileIdx)).Add(tile.RenderOffset())
			if tile.IsInInputRegion(p.Sub(loc)) {
				return tile.win, true
			}
			continue
		}
		for j, tile := range col.tiles {
			loc := origin.Add(col.tileOffset(j)).Add(tile.RenderOffset())
			if tile.IsInInputRegion(p.Sub(loc)) {
				return tile.win, true
			}
		}
	}
	return nil, false
}

// RequestSizeOnce re-requests every tile's size without animation, sharing
// one transaction. Used after option changes that affect sizes.
func (sp *ScrollingSpace) RequestSizeOnce() {
	txn := transaction.New()
	for _, col := range sp.columns {
		col.updateTileSizesWithTransaction(false, txn)
	}
}
