package layout

import (
	"math"

	"github.com/Gaurav-Gosain/waveland/internal/config"
	"github.com/Gaurav-Gosain/waveland/internal/geometry"
	"github.com/Gaurav-Gosain/waveland/internal/transaction"
)

// resolvedSize distinguishes whether a preset resolved to a tile size or
// directly to a window size. Proportions describe the tile (decorations
// included); fixed presets describe the window.
type resolvedSize struct {
	value    float64
	isWindow bool
}

func resolvePresetSize(preset config.PresetSize, gaps, areaDim, extra float64) resolvedSize {
	switch preset.Kind {
	case config.PresetFixed:
		return resolvedSize{value: preset.Fixed, isWindow: true}
	default:
		return resolvedSize{value: (areaDim-gaps)*preset.Proportion - gaps - extra}
	}
}

func (c *Column) resolvePresetWidth(preset config.PresetSize) resolvedSize {
	return resolvePresetSize(preset, c.opts.Gaps, c.workingArea.Size.W, c.extraSize().W)
}

func (c *Column) resolvePresetHeight(preset config.PresetSize) resolvedSize {
	return resolvePresetSize(preset, c.opts.Gaps, c.workingArea.Size.H, c.extraSize().H)
}

// resolveColumnWidth maps the stored width policy to a tile width in
// logical pixels, before min/max clamping.
func (c *Column) resolveColumnWidth(width ColumnWidth) float64 {
	gaps := c.opts.Gaps
	switch width.Kind {
	case WidthProportion:
		return (c.workingArea.Size.W-gaps)*width.Proportion - gaps - c.extraSize().W
	default:
		return width.Fixed
	}
}

func (c *Column) updateTileSizes(animate bool) {
	c.updateTileSizesWithTransaction(animate, transaction.New())
}

// updateTileSizesWithTransaction recomputes every tile's target size and
// issues the configures. This is the single place sizes are decided.
func (c *Column) updateTileSizesWithTransaction(animate bool, txn transaction.Transaction) {
	mode := c.SizingMode()
	if mode.IsFullscreen() || mode.IsMaximized() {
		for i, tile := range c.tiles {
			// In tabbed mode only the visible window participates in
			// the transaction; hidden tabs are flushed individually.
			tileTxn := txn
			if c.displayMode == DisplayTabbed && i != c.activeTileIdx {
				tileTxn = transaction.Transaction{}
			}

			if mode.IsFullscreen() {
				tile.RequestFullscreen(animate, tileTxn)
			} else {
				tile.RequestTileSize(c.parentArea.Size, animate, tileTxn)
			}
		}
		return
	}

	isTabbed := c.displayMode == DisplayTabbed
	n := len(c.tiles)

	minSizes := make([]geometry.Size, n)
	maxSizes := make([]geometry.Size, n)
	for i, tile := range c.tiles {
		m := tile.MinSizeNonfullscreen()
		m.W = math.Max(m.W, 1)
		m.H = math.Max(m.H, 1)
		minSizes[i] = m
		maxSizes[i] = tile.MaxSizeNonfullscreen()
	}

	// Column width bounds: min wins when the bounds cross.
	minWidth := 1.
	for _, m := range minSizes {
		minWidth = math.Max(minWidth, m.W)
	}
	maxWidth := math.MaxFloat64
	for _, m := range maxSizes {
		if m.W > 0 {
			maxWidth = math.Min(maxWidth, m.W)
		}
	}
	maxWidth = math.Max(maxWidth, minWidth)

	storedWidth := c.width
	if c.isFullWidth {
		storedWidth = ProportionWidth(1)
	}
	width := geometry.Clamp(c.resolveColumnWidth(storedWidth), minWidth, maxWidth)

	gaps := c.opts.Gaps
	extra := c.extraSize()
	workingSize := c.workingArea.Size
	maxTileHeight := workingSize.H - gaps*2 - extra.H

	// When several tiles share the column, the single non-auto tile's
	// height is clamped so the others can still reach their min heights.
	maxNonAutoWindowHeight := 0.
	hasMaxNonAuto := false
	if n > 1 && !isTabbed {
		nonAutoIdx := -1
		for i, h := range c.heights {
			if h.Kind != HeightAuto {
				nonAutoIdx = i
				break
			}
		}
		if nonAutoIdx >= 0 {
			minTaken := 0.
			for i, m := range minSizes {
				if i != nonAutoIdx {
					minTaken += m.H + gaps
				}
			}
			heightLeft := maxTileHeight - minTaken
			tile := c.tiles[nonAutoIdx]
			maxNonAutoWindowHeight = math.Max(1, math.Round(tile.WindowHeightForTileHeight(heightLeft)))
			hasMaxNonAuto = true
		}
	}

	// Working copy of per-tile heights, resolved to fixed tile heights as
	// we go. Auto entries keep their weight.
	heights := make([]WindowHeight, n)
	for i, h := range c.heights {
		tile := c.tiles[i]
		switch h.Kind {
		case HeightAuto:
			heights[i] = h
		case HeightFixed:
			wh := math.Max(1, math.Round(tile.WindowHeightForTileHeight(h.Fixed)))
			if hasMaxNonAuto {
				wh = math.Min(wh, maxNonAutoWindowHeight)
			} else {
				wh = math.Min(wh, math.Round(tile.WindowHeightForTileHeight(maxTileHeight)))
			}
			heights[i] = FixedHeight(tile.TileHeightForWindowHeight(wh))
		case HeightPreset:
			preset := c.opts.PresetWindowHeights[h.PresetIdx]
			res := c.resolvePresetHeight(preset)
			wh := res.value
			if !res.isWindow {
				wh = tile.WindowHeightForTileHeight(res.value)
			}
			wh = geometry.Clamp(math.Round(wh), 1, 100000)
			if hasMaxNonAuto {
				wh = math.Min(wh, maxNonAutoWindowHeight)
			}
			heights[i] = FixedHeight(tile.TileHeightForWindowHeight(wh))
		}
	}

	if isTabbed {
		// All tabs share the height of the single fixed tab, if any,
		// or the full working height.
		tabbedHeight := maxTileHeight
		for _, h := range heights {
			if h.Kind == HeightFixed {
				tabbedHeight = h.Fixed
				break
			}
		}

		minHeight := 0.
		for _, m := range minSizes {
			minHeight = math.Max(minHeight, m.H)
		}
		// A larger-than-workspace tab must not force every tab to its
		// size.
		minHeight = math.Min(minHeight, maxTileHeight)
		tabbedHeight = math.Max(tabbedHeight, minHeight)

		for i := range heights {
			heights[i] = FixedHeight(tabbedHeight)
		}
	}

	heightLeft := workingSize.H - extra.H - gaps*float64(n+1)
	autoLeft := n

	// Fix exact-height tiles and subtract every fixed height.
	for i := range heights {
		if minSizes[i].H == maxSizes[i].H && maxSizes[i].H > 0 {
			heights[i] = FixedHeight(minSizes[i].H)
		}
		if heights[i].Kind != HeightFixed {
			continue
		}
		h := heights[i].Fixed
		if maxSizes[i].H > 0 {
			h = math.Min(h, maxSizes[i].H)
		}
		h = math.Max(h, minSizes[i].H)
		heights[i].Fixed = h

		heightLeft -= h
		autoLeft--
	}

	totalWeight := 0.
	for _, h := range heights {
		if h.Kind == HeightAuto {
			totalWeight += h.Weight
		}
	}

	// Iteratively distribute the remaining height. Pick auto heights by
	// weight, and whenever one lands below its tile's min height, pin it
	// there and restart: the remaining pool shrinks monotonically, so
	// this reaches a fixed point where every tile gets at least its min.
	//
	// Max heights are not respected here; the dominant max-height use is
	// fixed-size dialogs with min == max, handled above.
outer:
	for autoLeft > 0 {
		heightLeft2 := heightLeft
		totalWeight2 := totalWeight
		for i := range heights {
			if heights[i].Kind != HeightAuto {
				continue
			}
			weight := heights[i].Weight
			factor := weight / totalWeight2

			auto := heightLeft2 * factor
			if minSizes[i].H > auto {
				auto = minSizes[i].H
				heights[i] = FixedHeight(auto)
				heightLeft -= auto
				totalWeight -= weight
				autoLeft--

				// Continuing the inner loop here could trip later
				// tiles' min checks with stale pool values and
				// cause visible snapping.
				continue outer
			}

			tile := c.tiles[i]
			auto = tile.TileHeightForWindowHeight(
				math.Max(1, math.Round(tile.WindowHeightForTileHeight(auto))))
			heightLeft2 -= auto
			totalWeight2 -= weight
		}

		// All min heights are satisfied; fill the final values.
		for i := range heights {
			if heights[i].Kind != HeightAuto {
				continue
			}
			weight := heights[i].Weight
			factor := weight / totalWeight

			tile := c.tiles[i]
			auto := heightLeft * factor
			auto = tile.TileHeightForWindowHeight(
				math.Max(1, math.Round(tile.WindowHeightForTileHeight(auto))))

			heights[i] = FixedHeight(auto)
			heightLeft -= auto
			totalWeight -= weight
			autoLeft--
		}
	}

	for i, tile := range c.tiles {
		tileTxn := txn
		if isTabbed && i != c.activeTileIdx {
			tileTxn = transaction.Transaction{}
		}
		tile.RequestTileSize(geometry.Sz(width, heights[i].Fixed), animate, tileTxn)
	}
}
