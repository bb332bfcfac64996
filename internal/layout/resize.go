package layout

import (
	"github.com/Gaurav-Gosain/waveland/internal/geometry"
	"github.com/Gaurav-Gosain/waveland/internal/window"
)

// interactiveResize is the live state of a pointer-driven resize.
type interactiveResize struct {
	window       window.ID
	originalSize geometry.Size
	edges        ResizeEdge
}

// InteractiveResizeBegin starts a resize of the given window by the given
// edges. Only one resize can be active, and only for columns in normal
// sizing mode.
func (sp *ScrollingSpace) InteractiveResizeBegin(id window.ID, edges ResizeEdge) bool {
	if sp.interactiveResize != nil {
		return false
	}

	colIdx, tileIdx := sp.findWindow(id)
	if colIdx < 0 {
		return false
	}
	col := sp.columns[colIdx]
	if !col.SizingMode().IsNormal() {
		return false
	}

	tile := col.tiles[tileIdx]
	sp.interactiveResize = &interactiveResize{
		window:       id,
		originalSize: tile.WindowExpectedOrCurrentSize(),
		edges:        edges,
	}

	// A live gesture fighting the resize would be nonsense.
	sp.viewOffset.stop()
	return true
}

// InteractiveResizeUpdate applies a pointer delta to the active resize.
func (sp *ScrollingSpace) InteractiveResizeUpdate(id window.ID, delta geometry.Point) bool {
	r := sp.interactiveResize
	if r == nil || r.window != id {
		return false
	}

	colIdx, tileIdx := sp.findWindow(id)
	if colIdx < 0 {
		sp.interactiveResize = nil
		return false
	}
	col := sp.columns[colIdx]

	if r.edges&(ResizeEdgeLeft|ResizeEdgeRight) != 0 {
		dx := delta.X
		if r.edges&ResizeEdgeLeft != 0 {
			dx = -dx
		}
		if sp.isCenteringFocusedColumn() {
			// The column grows symmetrically around the center, so
			// the pointer only covers half the growth.
			dx *= 2
		}
		col.SetColumnWidth(SizeChange{Kind: SetFixedSize, Fixed: r.originalSize.W + dx}, tileIdx, false)
	}

	if r.edges&(ResizeEdgeTop|ResizeEdgeBottom) != 0 {
		// Top-edge resize of the topmost tile would move the whole
		// column; ignore it.
		if !(r.edges&ResizeEdgeTop != 0 && tileIdx == 0) {
			dy := delta.Y
			if r.edges&ResizeEdgeTop != 0 {
				dy = -dy
			}
			col.SetWindowHeight(SizeChange{Kind: SetFixedSize, Fixed: r.originalSize.H + dy}, tileIdx, false)
		}
	}

	return true
}

// InteractiveResizeEnd releases the resize. With a window id, only a resize
// of that window ends.
func (sp *ScrollingSpace) InteractiveResizeEnd(id window.ID, matchWindow bool) {
	r := sp.interactiveResize
	if r == nil {
		return
	}
	if matchWindow && r.window != id {
		return
	}
	sp.interactiveResize = nil

	// Keep the resized window in view if it's the active one.
	if colIdx, _ := sp.findWindow(r.window); colIdx == sp.activeColumnIdx && colIdx >= 0 {
		sp.animateViewOffsetToColumn(sp.targetViewPos(), colIdx, -1)
	}
}

// cancelResizeForColumn drops a resize targeting any tile of the column.
// Operations that move tiles around call this so the resize doesn't follow
// a tile to a different position.
func (sp *ScrollingSpace) cancelResizeForColumn(col *Column) {
	if sp.interactiveResize == nil {
		return
	}
	if col.Contains(sp.interactiveResize.window) {
		sp.interactiveResize = nil
	}
}

func (sp *ScrollingSpace) cancelResizeForWindow(id window.ID) {
	if sp.interactiveResize != nil && sp.interactiveResize.window == id {
		sp.interactiveResize = nil
	}
}
