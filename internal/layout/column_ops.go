package layout

import (
	"fmt"
	"math"
	"sort"

	"github.com/Gaurav-Gosain/waveland/internal/config"
	"github.com/Gaurav-Gosain/waveland/internal/geometry"
)

// widthToProportion inverts resolveColumnWidth for proportional widths.
func (c *Column) widthToProportion(tileWidth float64) float64 {
	gaps := c.opts.Gaps
	denom := c.workingArea.Size.W - gaps
	if denom <= 0 {
		return 1
	}
	return (tileWidth + gaps + c.extraSize().W) / denom
}

func (c *Column) heightToProportion(tileHeight float64) float64 {
	gaps := c.opts.Gaps
	denom := c.workingArea.Size.H - gaps
	if denom <= 0 {
		return 1
	}
	return (tileHeight + gaps + c.extraSize().H) / denom
}

// currentTileWidth is the reference width changes are applied against.
func (c *Column) currentTileWidth() float64 {
	w := 0.
	for _, t := range c.tiles {
		w = max(w, t.TileExpectedOrCurrentSize().W)
	}
	return w
}

// SetColumnWidth applies a width change. SetFixed is interpreted as the
// reference tile's window reaching that width.
func (c *Column) SetColumnWidth(change SizeChange, refTileIdx int, animate bool) {
	ref := c.tiles[refTileIdx]
	cur := c.currentTileWidth()

	var width ColumnWidth
	switch change.Kind {
	case SetFixedSize:
		width = FixedWidth(ref.TileWidthForWindowWidth(change.Fixed))
	case SetProportionSize:
		width = ProportionWidth(change.Proportion)
	case AdjustFixedSize:
		width = FixedWidth(cur + change.Fixed)
	case AdjustProportionSize:
		width = ProportionWidth(c.widthToProportion(cur) + change.Proportion)
	}

	c.width = width
	c.presetWidthIdx = -1
	c.isFullWidth = false
	c.pendingMaximized = false
	c.updateTileSizes(animate)
}

// ToggleWidth cycles the column width through the preset list, wrapping
// around. When no preset is selected, it starts from the first preset wider
// than the current width (the last narrower one when going backwards).
func (c *Column) ToggleWidth(forwards bool, animate bool) {
	presets := c.opts.PresetColumnWidths
	if len(presets) == 0 {
		return
	}

	idx := -1
	if c.presetWidthIdx >= 0 {
		if forwards {
			idx = (c.presetWidthIdx + 1) % len(presets)
		} else {
			idx = (c.presetWidthIdx - 1 + len(presets)) % len(presets)
		}
	} else {
		cur := c.currentTileWidth()
		if forwards {
			// First preset strictly wider than the current width.
			for i, p := range presets {
				if c.presetTileWidth(p) > cur+0.5 {
					idx = i
					break
				}
			}
			if idx < 0 {
				idx = 0
			}
		} else {
			for i := len(presets) - 1; i >= 0; i-- {
				if c.presetTileWidth(presets[i]) < cur-0.5 {
					idx = i
					break
				}
			}
			if idx < 0 {
				idx = len(presets) - 1
			}
		}
	}

	p := presets[idx]
	switch p.Kind {
	case config.PresetFixed:
		// Fixed presets describe the window; derive the tile width.
		ref := c.tiles[c.activeTileIdx]
		c.width = FixedWidth(ref.TileWidthForWindowWidth(p.Fixed))
	default:
		c.width = ProportionWidth(p.Proportion)
	}
	c.presetWidthIdx = idx
	c.isFullWidth = false
	c.pendingMaximized = false
	c.updateTileSizes(animate)
}

// presetTileWidth resolves a preset to a tile width for comparisons.
func (c *Column) presetTileWidth(p config.PresetSize) float64 {
	res := c.resolvePresetWidth(p)
	if res.isWindow {
		return c.tiles[c.activeTileIdx].TileWidthForWindowWidth(res.value)
	}
	return res.value
}

// ToggleFullWidth swaps the full-width override. A pending maximize is
// cleared instead, acting as unmaximize.
func (c *Column) ToggleFullWidth(animate bool) {
	if c.pendingMaximized {
		c.pendingMaximized = false
	} else {
		c.isFullWidth = !c.isFullWidth
	}
	c.updateTileSizes(animate)
}

// ExpandToAvailableWidth grows the column to the width left over by its
// visible neighbours, as a fixed width.
func (c *Column) ExpandToAvailableWidth(available float64, animate bool) {
	if available <= 0 {
		return
	}
	c.width = FixedWidth(available)
	c.presetWidthIdx = -1
	c.isFullWidth = false
	c.pendingMaximized = false
	c.updateTileSizes(animate)
}

// convertHeightsToAuto rewrites every height as an auto weight preserving
// the apparent heights: the median height becomes weight 1.
func (c *Column) convertHeightsToAuto() {
	n := len(c.tiles)
	current := make([]float64, n)
	for i, t := range c.tiles {
		current[i] = t.TileExpectedOrCurrentSize().H
	}

	sorted := append([]float64(nil), current...)
	sort.Float64s(sorted)
	median := sorted[n/2]
	if median <= 0 {
		median = 1
	}

	for i := range c.heights {
		c.heights[i] = AutoHeight(current[i] / median)
	}
}

// SetWindowHeight applies a height change to one tile, committing it as a
// fixed height.
func (c *Column) SetWindowHeight(change SizeChange, tileIdx int, animate bool) {
	if c.heights[tileIdx].Kind == HeightAuto {
		// Preserve the other tiles' apparent heights across the
		// conversion.
		c.convertHeightsToAuto()
	}

	tile := c.tiles[tileIdx]
	curTileH := tile.TileExpectedOrCurrentSize().H

	var newTileH float64
	switch change.Kind {
	case SetFixedSize:
		newTileH = tile.TileHeightForWindowHeight(change.Fixed)
	case SetProportionSize:
		gaps := c.opts.Gaps
		newTileH = (c.workingArea.Size.H-gaps)*change.Proportion - gaps - c.extraSize().H
	case AdjustFixedSize:
		newTileH = curTileH + change.Fixed
	case AdjustProportionSize:
		newTileH = (c.workingArea.Size.H-c.opts.Gaps)*(c.heightToProportion(curTileH)+change.Proportion) -
			c.opts.Gaps - c.extraSize().H
	}

	// The new height must leave every other tile at least its min height.
	if len(c.tiles) > 1 && c.displayMode == DisplayNormal {
		gaps := c.opts.Gaps
		budget := c.workingArea.Size.H - gaps*float64(len(c.tiles)+1) - c.extraSize().H
		for i, other := range c.tiles {
			if i == tileIdx {
				continue
			}
			m := other.MinSizeNonfullscreen()
			budget -= math.Max(1, m.H)
		}
		newTileH = math.Min(newTileH, budget)
	}

	// Clamp to the tile's own constraints.
	minH := math.Max(1, tile.MinSizeNonfullscreen().H)
	maxH := tile.MaxSizeNonfullscreen().H
	if maxH <= 0 {
		maxH = math.MaxFloat64
	}
	newTileH = geometry.Clamp(newTileH, minH, maxH)

	c.heights[tileIdx] = FixedHeight(newTileH)
	c.pendingMaximized = false
	c.updateTileSizes(animate)
}

// ResetWindowHeight returns a tile (every tile, in tabbed mode) to auto
// height.
func (c *Column) ResetWindowHeight(tileIdx int, animate bool) {
	if c.displayMode == DisplayTabbed {
		for i := range c.heights {
			c.heights[i] = AutoHeight(1)
		}
	} else {
		c.heights[tileIdx] = AutoHeight(1)
	}
	c.updateTileSizes(animate)
}

// ToggleWindowHeight walks the height preset list, picking the next preset
// strictly larger (or smaller) than the tile's current height; wraps.
func (c *Column) ToggleWindowHeight(tileIdx int, forwards bool, animate bool) {
	presets := c.opts.PresetWindowHeights
	if len(presets) == 0 {
		return
	}

	tile := c.tiles[tileIdx]
	cur := tile.TileExpectedOrCurrentSize().H

	presetTileH := func(p config.PresetSize) float64 {
		res := c.resolvePresetHeight(p)
		if res.isWindow {
			return tile.TileHeightForWindowHeight(res.value)
		}
		return res.value
	}

	idx := -1
	if forwards {
		for i, p := range presets {
			if presetTileH(p) > cur+0.5 {
				idx = i
				break
			}
		}
		if idx < 0 {
			idx = 0
		}
	} else {
		for i := len(presets) - 1; i >= 0; i-- {
			if presetTileH(presets[i]) < cur-0.5 {
				idx = i
				break
			}
		}
		if idx < 0 {
			idx = len(presets) - 1
		}
	}

	if c.heights[tileIdx].Kind == HeightAuto {
		c.convertHeightsToAuto()
	}
	c.heights[tileIdx] = WindowHeight{Kind: HeightPreset, PresetIdx: idx}
	c.pendingMaximized = false
	c.updateTileSizes(animate)
}

// SetFullscreen toggles the pending fullscreen flag. Only single-tile and
// tabbed columns can go fullscreen.
func (c *Column) SetFullscreen(on bool, animate bool) {
	if on == c.pendingFullscreen {
		return
	}
	if on && len(c.tiles) > 1 && c.displayMode != DisplayTabbed {
		panic(fmt.Sprintf("fullscreen requested for column with %d tiles in normal display mode", len(c.tiles)))
	}
	c.pendingFullscreen = on
	c.updateTileSizes(animate)
}

// SetMaximized toggles the pending maximized flag.
func (c *Column) SetMaximized(on bool, animate bool) {
	if on == c.pendingMaximized {
		return
	}
	c.pendingMaximized = on
	c.updateTileSizes(animate)
}

// SetDisplayMode switches between normal and tabbed display, animating every
// tile from its previous visual position and cross-fading hidden tabs.
func (c *Column) SetDisplayMode(mode DisplayMode, animate bool) {
	if mode == c.displayMode {
		return
	}

	oldOffsets := c.tileOffsets()
	c.displayMode = mode
	newOffsets := c.tileOffsets()

	// Leaving tabbed mode with several tiles cannot stay fullscreen.
	if mode == DisplayNormal && c.pendingFullscreen && len(c.tiles) > 1 {
		c.pendingFullscreen = false
	}

	if animate {
		for i, t := range c.tiles {
			delta := oldOffsets[i].Sub(newOffsets[i])
			if delta.X != 0 || delta.Y != 0 {
				t.AnimateMoveFrom(delta)
			}
			if i == c.activeTileIdx {
				continue
			}
			if mode == DisplayTabbed {
				t.AnimateAlphaTo(0)
			} else {
				t.AnimateAlphaFrom(0)
			}
		}
	}

	if mode == DisplayTabbed {
		c.tabIndicator.startOpenAnimation(c.clock, c.opts.Animations.WindowMovement)
	}

	c.updateTileSizes(animate)
}

// ToggleTabbedDisplay flips between normal and tabbed.
func (c *Column) ToggleTabbedDisplay(animate bool) {
	if c.displayMode == DisplayTabbed {
		c.SetDisplayMode(DisplayNormal, animate)
	} else {
		c.SetDisplayMode(DisplayTabbed, animate)
	}
}
