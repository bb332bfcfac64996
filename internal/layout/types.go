// Package layout implements the scrollable tiling model: tiles stacked into
// columns, columns strung along a horizontally scrolling space, workspaces
// pairing a scrolling and a floating space, monitors owning workspaces, and
// the multi-monitor layout on top.
//
// The package never touches devices or sockets. It consumes window handles
// through the backend contract in internal/window and emits typed render
// elements from internal/render.
package layout

import (
	"strings"

	"github.com/Gaurav-Gosain/waveland/internal/config"
	"github.com/Gaurav-Gosain/waveland/internal/geometry"
)

// OutputID identifies an output by name, stable across disconnect and
// reconnect.
type OutputID string

// Output is the layout's view of one connected display.
type Output struct {
	// Name of the connector, e.g. "DP-1".
	Name string
	// Size in logical pixels.
	Size geometry.Size
	// Scale maps logical to physical pixels.
	Scale float64
}

// ID derives the stable output identifier.
func (o *Output) ID() OutputID {
	return OutputID(strings.ToLower(o.Name))
}

// WorkspaceID is an opaque stable workspace identifier, stable across moves
// between monitors.
type WorkspaceID string

// SizingMode affects which area a column resolves its sizes against.
type SizingMode int

const (
	SizingNormal SizingMode = iota
	SizingMaximized
	SizingFullscreen
)

// IsFullscreen reports whether the mode is fullscreen.
func (m SizingMode) IsFullscreen() bool { return m == SizingFullscreen }

// IsMaximized reports whether the mode is maximized.
func (m SizingMode) IsMaximized() bool { return m == SizingMaximized }

// IsNormal reports whether the mode is plain tiling.
func (m SizingMode) IsNormal() bool { return m == SizingNormal }

// DisplayMode is how a column presents its tiles.
type DisplayMode int

const (
	// DisplayNormal stacks tiles vertically.
	DisplayNormal DisplayMode = iota
	// DisplayTabbed shows only the active tile, all tiles sized equally.
	DisplayTabbed
)

// ColumnWidthKind tags the ColumnWidth variants.
type ColumnWidthKind int

const (
	WidthProportion ColumnWidthKind = iota
	WidthFixed
)

// ColumnWidth is a column's stored width: either a proportion of the
// working area or a fixed tile width in logical pixels.
type ColumnWidth struct {
	Kind       ColumnWidthKind
	Proportion float64
	Fixed      float64
}

// ProportionWidth builds a proportional column width.
func ProportionWidth(p float64) ColumnWidth {
	return ColumnWidth{Kind: WidthProportion, Proportion: p}
}

// FixedWidth builds a fixed column width.
func FixedWidth(px float64) ColumnWidth {
	return ColumnWidth{Kind: WidthFixed, Fixed: px}
}

// WindowHeightKind tags the WindowHeight variants.
type WindowHeightKind int

const (
	HeightAuto WindowHeightKind = iota
	HeightPreset
	HeightFixed
)

// WindowHeight is one tile's stored height policy within its column.
type WindowHeight struct {
	Kind WindowHeightKind
	// Weight shares the leftover height between auto tiles.
	Weight float64
	// PresetIdx indexes Options.PresetWindowHeights.
	PresetIdx int
	// Fixed is a tile height in logical pixels.
	Fixed float64
}

// AutoHeight returns the default height policy with the given weight.
func AutoHeight(weight float64) WindowHeight {
	return WindowHeight{Kind: HeightAuto, Weight: weight}
}

// FixedHeight returns a fixed tile height.
func FixedHeight(px float64) WindowHeight {
	return WindowHeight{Kind: HeightFixed, Fixed: px}
}

// SizeChangeKind tags the SizeChange variants.
type SizeChangeKind int

const (
	SetFixedSize SizeChangeKind = iota
	SetProportionSize
	AdjustFixedSize
	AdjustProportionSize
)

// SizeChange describes a width or height change request.
type SizeChange struct {
	Kind SizeChangeKind
	// Fixed is logical pixels for the Set/AdjustFixed kinds.
	Fixed float64
	// Proportion is a fraction of the working area for the proportion
	// kinds (1.0 == 100%).
	Proportion float64
}

// PositionChangeKind tags the PositionChange variants.
type PositionChangeKind int

const (
	SetFixedPosition PositionChangeKind = iota
	AdjustFixedPosition
)

// PositionChange describes a floating-window position change along one axis.
type PositionChange struct {
	Kind  PositionChangeKind
	Value float64
}

// ResizeEdge is a bitmask of the edges an interactive resize grabs.
type ResizeEdge int

const (
	ResizeEdgeTop ResizeEdge = 1 << iota
	ResizeEdgeBottom
	ResizeEdgeLeft
	ResizeEdgeRight
)

// InsertPositionKind tags the InsertPosition variants.
type InsertPositionKind int

const (
	InsertNewColumn InsertPositionKind = iota
	InsertInColumn
	InsertFloating
)

// InsertPosition is where a dropped window would land.
type InsertPosition struct {
	Kind InsertPositionKind
	// ColumnIdx is the target column slot.
	ColumnIdx int
	// TileIdx is the position within the column for InsertInColumn.
	TileIdx int
}

// FocusLayer says which space of a workspace owns keyboard focus.
type FocusLayer int

const (
	FocusTiling FocusLayer = iota
	FocusFloating
)

// Size deltas below this many logical pixels don't get a resize animation.
const resizeAnimationThreshold = 10.

// computeWorkingArea shrinks the output rectangle by the configured struts.
func computeWorkingArea(size geometry.Size, struts config.Struts) geometry.Rect {
	return geometry.Rc(
		struts.Left,
		struts.Top,
		max(1, size.W-struts.Left-struts.Right),
		max(1, size.H-struts.Top-struts.Bottom),
	)
}
