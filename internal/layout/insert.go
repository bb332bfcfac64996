package layout

import (
	"math"

	"github.com/Gaurav-Gosain/waveland/internal/geometry"
)

// InsertPositionAt decides where a window dropped at the given point (in
// output coordinates) would land: a new column slot, a position inside a
// column, or nothing tiled.
func (sp *ScrollingSpace) InsertPositionAt(p geometry.Point) InsertPosition {
	if len(sp.columns) == 0 {
		return InsertPosition{Kind: InsertNewColumn, ColumnIdx: 0}
	}

	// Find the closest gap between columns and the column under the
	// point.
	stripX := p.X + sp.viewPos()

	bestGap := 0
	bestGapDist := math.Abs(stripX - 0)
	colX := 0.
	underIdx := -1
	for i, col := range sp.columns {
		w := col.Width()
		if stripX >= colX && stripX < colX+w {
			underIdx = i
		}
		gapX := colX + w + sp.opts.Gaps/2
		if d := math.Abs(stripX - gapX); d < bestGapDist {
			bestGapDist = d
			bestGap = i + 1
		}
		colX += w + sp.opts.Gaps
	}

	if underIdx < 0 {
		return InsertPosition{Kind: InsertNewColumn, ColumnIdx: bestGap}
	}

	col := sp.columns[underIdx]

	// Within a column, pick the closest tile boundary. In tabbed mode
	// only above and below the active tile are candidates.
	colY := sp.columnY(col)
	y := p.Y - colY

	if col.displayMode == DisplayTabbed {
		h := col.Height()
		idx := col.activeTileIdx
		if y > h/2 {
			idx++
		}
		if nearColumnEdge(stripX, sp.columnX(underIdx), col, sp) {
			return InsertPosition{Kind: InsertNewColumn, ColumnIdx: bestGap}
		}
		return InsertPosition{Kind: InsertInColumn, ColumnIdx: underIdx, TileIdx: idx}
	}

	// Column edges win over tile boundaries when closer.
	if nearColumnEdge(stripX, sp.columnX(underIdx), col, sp) {
		return InsertPosition{Kind: InsertNewColumn, ColumnIdx: bestGap}
	}

	boundary := 0
	boundaryDist := math.Abs(y)
	tileY := 0.
	for i, t := range col.tiles {
		tileY += t.TileExpectedOrCurrentSize().H
		if i < len(col.tiles)-1 {
			tileY += sp.opts.Gaps
		}
		if d := math.Abs(y - tileY); d < boundaryDist {
			boundaryDist = d
			boundary = i + 1
		}
	}
	return InsertPosition{Kind: InsertInColumn, ColumnIdx: underIdx, TileIdx: boundary}
}

// nearColumnEdge reports whether the x position is within the edge band of
// the column where a drop means "new column".
func nearColumnEdge(stripX, colX float64, col *Column, sp *ScrollingSpace) bool {
	band := math.Min(col.Width()/4, 64.)
	return stripX < colX+band || stripX > colX+col.Width()-band
}

// AddTileAtInsertPosition places a tile according to a previously computed
// insert position.
func (sp *ScrollingSpace) AddTileAtInsertPosition(tile *Tile, pos InsertPosition, activate bool) {
	switch pos.Kind {
	case InsertInColumn:
		colIdx := min(pos.ColumnIdx, len(sp.columns)-1)
		col := sp.columns[colIdx]
		tileIdx := min(pos.TileIdx, len(col.tiles))
		col.addTile(tileIdx, tile, true)
		col.activateTile(tileIdx)
		if activate {
			sp.ActivateColumn(colIdx)
		}
	default:
		idx := min(pos.ColumnIdx, len(sp.columns))
		sp.addTileAt(idx, tile, activate)
	}
}
