package layout

import (
	"github.com/Gaurav-Gosain/waveland/internal/geometry"
	"github.com/Gaurav-Gosain/waveland/internal/window"
)

// tileVisualOrigin is a tile's on-screen origin: column x plus render
// offsets plus the tile offset. Consume/expel/swap capture these before
// mutating and animate each affected tile from the delta.
func (sp *ScrollingSpace) tileVisualOrigin(colIdx, tileIdx int) geometry.Point {
	col := sp.columns[colIdx]
	origin := geometry.Pt(sp.columnX(colIdx), sp.columnY(col)).
		Add(col.renderOffset()).
		Add(col.tileOffset(tileIdx)).
		Add(col.tiles[tileIdx].RenderOffset())
	return origin
}

// ConsumeOrExpelWindowLeft moves a window that is alone in its column into
// the column to its left, or expels a window that shares its column into a
// new column on the left.
func (sp *ScrollingSpace) ConsumeOrExpelWindowLeft(id window.ID, haveID bool) {
	colIdx, tileIdx := sp.resolveWindowOrActive(id, haveID)
	if colIdx < 0 {
		return
	}
	col := sp.columns[colIdx]
	sp.cancelResizeForColumn(col)

	if len(col.tiles) == 1 {
		// Single tile: consume into the previous column as its bottom
		// tile.
		if colIdx == 0 {
			return
		}
		target := sp.columns[colIdx-1]
		sp.cancelResizeForColumn(target)

		before := sp.tileVisualOrigin(colIdx, 0)
		tile := col.tiles[0]
		wasActive := colIdx == sp.activeColumnIdx

		sp.removeColumnAt(colIdx)
		target = sp.columns[colIdx-1]
		target.addTile(len(target.tiles), tile, true)
		target.activateTile(len(target.tiles) - 1)
		if wasActive {
			sp.ActivateColumn(colIdx - 1)
		}

		after := sp.tileVisualOrigin(colIdx-1, len(target.tiles)-1)
		tile.AnimateMoveFrom(before.Sub(after))
		return
	}

	// Multi-tile column: expel the tile into a new column on the left.
	sp.expelTile(colIdx, tileIdx, colIdx)
}

// ConsumeOrExpelWindowRight is the rightward mirror.
func (sp *ScrollingSpace) ConsumeOrExpelWindowRight(id window.ID, haveID bool) {
	colIdx, tileIdx := sp.resolveWindowOrActive(id, haveID)
	if colIdx < 0 {
		return
	}
	col := sp.columns[colIdx]
	sp.cancelResizeForColumn(col)

	if len(col.tiles) == 1 {
		if colIdx+1 >= len(sp.columns) {
			return
		}
		target := sp.columns[colIdx+1]
		sp.cancelResizeForColumn(target)

		before := sp.tileVisualOrigin(colIdx, 0)
		tile := col.tiles[0]
		wasActive := colIdx == sp.activeColumnIdx

		sp.removeColumnAt(colIdx)
		target = sp.columns[colIdx]
		target.addTile(len(target.tiles), tile, true)
		target.activateTile(len(target.tiles) - 1)
		if wasActive {
			sp.ActivateColumn(colIdx)
		}

		after := sp.tileVisualOrigin(colIdx, len(target.tiles)-1)
		tile.AnimateMoveFrom(before.Sub(after))
		return
	}

	sp.expelTile(colIdx, tileIdx, colIdx+1)
}

// expelTile extracts a tile into a new column at newColIdx.
func (sp *ScrollingSpace) expelTile(colIdx, tileIdx, newColIdx int) {
	col := sp.columns[colIdx]
	before := sp.tileVisualOrigin(colIdx, tileIdx)

	wasActiveTile := colIdx == sp.activeColumnIdx && tileIdx == col.activeTileIdx

	tile := col.removeTileAt(tileIdx)
	newCol := newColumn(tile, col.width, col.isFullWidth, sp)
	sp.insertColumn(newColIdx, newCol, wasActiveTile)
	newCol.updateTileSizes(true)

	finalIdx := newColIdx
	after := sp.tileVisualOrigin(finalIdx, 0)
	tile.AnimateMoveFrom(before.Sub(after))
	tile.AnimateAlphaFrom(1)
}

// ConsumeWindowIntoColumn pulls the top tile of the next column into the
// active column.
func (sp *ScrollingSpace) ConsumeWindowIntoColumn() {
	if sp.activeColumnIdx+1 >= len(sp.columns) {
		return
	}
	colIdx := sp.activeColumnIdx
	col := sp.columns[colIdx]
	next := sp.columns[colIdx+1]
	sp.cancelResizeForColumn(col)
	sp.cancelResizeForColumn(next)

	before := sp.tileVisualOrigin(colIdx+1, 0)

	var tile *Tile
	if len(next.tiles) == 1 {
		tile = next.tiles[0]
		sp.removeColumnAt(colIdx + 1)
	} else {
		tile = next.removeTileAt(0)
	}

	col.addTile(len(col.tiles), tile, true)
	after := sp.tileVisualOrigin(colIdx, len(col.tiles)-1)
	tile.AnimateMoveFrom(before.Sub(after))
}

// ExpelWindowFromColumn moves the active column's bottom tile out into a
// new column to the right.
func (sp *ScrollingSpace) ExpelWindowFromColumn() {
	if len(sp.columns) == 0 {
		return
	}
	colIdx := sp.activeColumnIdx
	col := sp.columns[colIdx]
	if len(col.tiles) == 1 {
		return
	}
	sp.cancelResizeForColumn(col)
	sp.expelTile(colIdx, len(col.tiles)-1, colIdx+1)
}

// SwapWindowInDirection swaps the active tile with its neighbour column's
// tile in the given horizontal direction.
func (sp *ScrollingSpace) SwapWindowInDirection(right bool) {
	if len(sp.columns) == 0 {
		return
	}
	srcColIdx := sp.activeColumnIdx
	dstColIdx := srcColIdx - 1
	if right {
		dstColIdx = srcColIdx + 1
	}
	if dstColIdx < 0 || dstColIdx >= len(sp.columns) {
		return
	}

	src := sp.columns[srcColIdx]
	dst := sp.columns[dstColIdx]
	sp.cancelResizeForColumn(src)
	sp.cancelResizeForColumn(dst)

	// Both single-tile: identical to a column move.
	if len(src.tiles) == 1 && len(dst.tiles) == 1 {
		sp.moveColumnTo(dstColIdx)
		return
	}

	srcTileIdx := src.activeTileIdx
	dstTileIdx := dst.activeTileIdx

	srcBefore := sp.tileVisualOrigin(srcColIdx, srcTileIdx)
	dstBefore := sp.tileVisualOrigin(dstColIdx, dstTileIdx)

	if len(src.tiles) == 1 {
		// The source column collapses on removal; recreate it at the
		// source index with the former target tile.
		srcTile := src.tiles[0]
		width := src.width
		fullWidth := src.isFullWidth

		dstTile := dst.removeTileAt(dstTileIdx)
		sp.removeColumnAt(srcColIdx)

		adjDstIdx := dstColIdx
		if srcColIdx < dstColIdx {
			adjDstIdx--
		}
		sp.columns[adjDstIdx].addTile(dstTileIdx, srcTile, true)
		sp.columns[adjDstIdx].activateTile(dstTileIdx)

		newCol := newColumn(dstTile, width, fullWidth, sp)
		sp.insertColumn(srcColIdx, newCol, false)
		newCol.updateTileSizes(true)

		sp.ActivateColumn(dstColIdx)

		srcAfter := sp.tileVisualOrigin(dstColIdx, dstTileIdx)
		dstAfter := sp.tileVisualOrigin(srcColIdx, 0)
		srcTile.AnimateMoveFrom(srcBefore.Sub(srcAfter))
		dstTile.AnimateMoveFrom(dstBefore.Sub(dstAfter))
		srcTile.AnimateAlphaFrom(1)
		dstTile.AnimateAlphaFrom(1)
		return
	}

	srcTile := src.removeTileAt(srcTileIdx)
	var dstTile *Tile
	if len(dst.tiles) == 1 {
		// The target column would collapse; replace its tile in
		// place.
		dstTile = dst.tiles[0]
		dst.tiles[0] = srcTile
		dst.heights[0] = AutoHeight(1)
		srcTile.UpdateConfig(sp.viewSize, sp.scale, sp.opts)
		dst.updateTileSizes(true)
	} else {
		dstTile = dst.removeTileAt(dstTileIdx)
		dst.addTile(dstTileIdx, srcTile, true)
		dst.activateTile(dstTileIdx)
	}
	src.addTile(srcTileIdx, dstTile, true)
	src.activateTile(srcTileIdx)

	sp.ActivateColumn(dstColIdx)

	srcAfter := sp.tileVisualOrigin(dstColIdx, dst.activeTileIdx)
	dstAfter := sp.tileVisualOrigin(srcColIdx, srcTileIdx)
	srcTile.AnimateMoveFrom(srcBefore.Sub(srcAfter))
	dstTile.AnimateMoveFrom(dstBefore.Sub(dstAfter))
	srcTile.AnimateAlphaFrom(1)
	dstTile.AnimateAlphaFrom(1)
}

// resolveWindowOrActive maps an optional window reference to a column and
// tile index, defaulting to the active tile.
func (sp *ScrollingSpace) resolveWindowOrActive(id window.ID, haveID bool) (int, int) {
	if haveID {
		return sp.findWindow(id)
	}
	if len(sp.columns) == 0 {
		return -1, -1
	}
	col := sp.columns[sp.activeColumnIdx]
	return sp.activeColumnIdx, col.activeTileIdx
}
