package layout

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/Gaurav-Gosain/waveland/internal/animation"
	"github.com/Gaurav-Gosain/waveland/internal/config"
	"github.com/Gaurav-Gosain/waveland/internal/geometry"
	"github.com/Gaurav-Gosain/waveland/internal/render"
	"github.com/Gaurav-Gosain/waveland/internal/window"
)

// Workspace pairs one scrolling space with one floating space and tracks
// which layer owns focus.
type Workspace struct {
	id WorkspaceID

	scrolling *ScrollingSpace
	floating  *FloatingSpace

	focusLayer FocusLayer

	// name is empty for unnamed workspaces. Named workspaces persist
	// when empty.
	name string

	urgent bool

	// originalOutput is the output this workspace belongs to, re-stamped
	// whenever the workspace is modified on a monitor. Used to bring
	// workspaces home on reconnect.
	originalOutput OutputID

	// output is nil while the workspace is detached (no outputs).
	output *Output

	clock animation.Clock
	opts  *config.Options
}

// NewWorkspace creates a workspace sized for an output. A nil output
// creates a detached workspace.
func NewWorkspace(output *Output, clock animation.Clock, opts *config.Options) *Workspace {
	viewSize := geometry.Sz(1280, 720)
	scale := 1.
	var origin OutputID
	if output != nil {
		viewSize = output.Size
		scale = output.Scale
		origin = output.ID()
	}

	working := computeWorkingArea(viewSize, opts.Struts)
	parent := geometry.Rect{Size: viewSize}

	return &Workspace{
		id:        WorkspaceID(uuid.NewString()),
		scrolling: NewScrollingSpace(viewSize, scale, working, parent, clock, opts),
		floating:  NewFloatingSpace(viewSize, scale, working, clock, opts),

		originalOutput: origin,
		output:         output,
		clock:          clock,
		opts:           opts,
	}
}

// ID returns the stable workspace identifier.
func (ws *Workspace) ID() WorkspaceID { return ws.id }

// Name returns the workspace name, empty when unnamed.
func (ws *Workspace) Name() string { return ws.name }

// SetName names the workspace. Uniqueness is enforced by the Layout.
func (ws *Workspace) SetName(name string) { ws.name = name }

// IsUrgent reports the urgency flag.
func (ws *Workspace) IsUrgent() bool { return ws.urgent }

// SetUrgent sets the urgency flag.
func (ws *Workspace) SetUrgent(urgent bool) { ws.urgent = urgent }

// OriginalOutput returns the workspace's home output id.
func (ws *Workspace) OriginalOutput() OutputID { return ws.originalOutput }

// Scrolling returns the tiling space.
func (ws *Workspace) Scrolling() *ScrollingSpace { return ws.scrolling }

// Floating returns the floating space.
func (ws *Workspace) Floating() *FloatingSpace { return ws.floating }

// FocusedLayer returns the layer owning focus.
func (ws *Workspace) FocusedLayer() FocusLayer { return ws.focusLayer }

// HasWindows reports whether any window lives on the workspace.
func (ws *Workspace) HasWindows() bool {
	return !ws.scrolling.IsEmpty() || !ws.floating.IsEmpty()
}

// HasWindow reports whether the given window lives on the workspace.
func (ws *Workspace) HasWindow(id window.ID) bool {
	return ws.scrolling.HasWindow(id) || ws.floating.HasWindow(id)
}

// stampOriginalOutput re-marks the workspace as belonging to its current
// output. Called on every modification so reclaimed workspaces don't
// teleport back after the user has integrated them into a new monitor.
func (ws *Workspace) stampOriginalOutput() {
	if ws.output != nil {
		ws.originalOutput = ws.output.ID()
	}
}

// AddWindow adds a window to the focused-appropriate layer.
func (ws *Workspace) AddWindow(win window.Window, activate bool, floating bool) {
	ws.stampOriginalOutput()
	if ws.output != nil {
		win.OutputEnter(ws.output.Name)
	}

	if floating {
		tile := NewTile(win, ws.viewSize(), ws.scale(), ws.clock, ws.opts)
		tile.StartOpenAnimation()
		ws.floating.AddTile(tile, activate)
		if activate {
			ws.focusLayer = FocusFloating
		}
		return
	}

	ws.scrolling.AddWindow(win, activate)
	if activate {
		ws.focusLayer = FocusTiling
	}
}

// RemoveWindow extracts a window from whichever space holds it. A tiled
// window plays the close animation when a snapshot is available; a floating
// window does not.
func (ws *Workspace) RemoveWindow(id window.ID) *Tile {
	if ws.scrolling.HasWindow(id) {
		colIdx, tileIdx := ws.scrolling.findWindow(id)
		stripPos := ws.scrolling.tileVisualOrigin(colIdx, tileIdx)
		tile := ws.scrolling.RemoveWindow(id)
		ws.scrolling.StartCloseAnimation(tile, stripPos)
		if ws.output != nil {
			tile.win.OutputLeave(ws.output.Name)
		}
		if ws.scrolling.IsEmpty() {
			ws.focusLayer = FocusFloating
		}
		return tile
	}

	tile := ws.floating.RemoveWindow(id)
	if ws.output != nil {
		tile.win.OutputLeave(ws.output.Name)
	}
	if ws.floating.IsEmpty() {
		ws.focusLayer = FocusTiling
	}
	return tile
}

// UpdateWindow dispatches a window commit to the right space.
func (ws *Workspace) UpdateWindow(id window.ID) {
	if ws.scrolling.HasWindow(id) {
		ws.scrolling.UpdateWindow(id)
		return
	}
	ws.floating.UpdateWindow(id)
}

// ActivateWindow focuses the window in whichever layer holds it.
func (ws *Workspace) ActivateWindow(id window.ID) bool {
	if ws.scrolling.ActivateWindow(id) {
		ws.focusLayer = FocusTiling
		return true
	}
	if ws.floating.ActivateWindow(id) {
		ws.focusLayer = FocusFloating
		return true
	}
	return false
}

// ActiveWindow returns the focused window of the focused layer, falling
// back to the other layer.
func (ws *Workspace) ActiveWindow() (window.Window, bool) {
	if ws.focusLayer == FocusFloating {
		if w, ok := ws.floating.ActiveWindow(); ok {
			return w, true
		}
		return ws.scrolling.ActiveWindow()
	}
	if w, ok := ws.scrolling.ActiveWindow(); ok {
		return w, true
	}
	return ws.floating.ActiveWindow()
}

// FocusFloatingLayer moves focus to the floating layer if it has windows.
func (ws *Workspace) FocusFloatingLayer() bool {
	if ws.floating.IsEmpty() {
		return false
	}
	ws.focusLayer = FocusFloating
	return true
}

// FocusTilingLayer moves focus to the tiling layer if it has windows.
func (ws *Workspace) FocusTilingLayer() bool {
	if ws.scrolling.IsEmpty() {
		return false
	}
	ws.focusLayer = FocusTiling
	return true
}

// SwitchFocusBetweenLayers toggles the focused layer when the other one has
// windows.
func (ws *Workspace) SwitchFocusBetweenLayers() bool {
	if ws.focusLayer == FocusTiling {
		return ws.FocusFloatingLayer()
	}
	return ws.FocusTilingLayer()
}

// ToggleWindowFloating moves a window between the layers, preserving the
// remembered geometry in each direction.
func (ws *Workspace) ToggleWindowFloating(id window.ID) {
	ws.stampOriginalOutput()

	if ws.scrolling.HasWindow(id) {
		// A fullscreen window leaves fullscreen before floating.
		if colIdx, _ := ws.scrolling.findWindow(id); colIdx >= 0 &&
			ws.scrolling.columns[colIdx].pendingFullscreen {
			ws.scrolling.SetWindowFullscreen(id, false)
		}
		tile := ws.scrolling.RemoveWindow(id)
		ws.floating.AddTile(tile, true)
		ws.focusLayer = FocusFloating
		return
	}
	if ws.floating.HasWindow(id) {
		tile := ws.floating.RemoveWindow(id)
		ws.scrolling.AddTile(tile, true)
		ws.focusLayer = FocusTiling
		return
	}
	panic(fmt.Sprintf("toggle floating for window %q not on this workspace", id))
}

// MoveWindowToFloating floats a tiled window.
func (ws *Workspace) MoveWindowToFloating(id window.ID) {
	if ws.scrolling.HasWindow(id) {
		ws.ToggleWindowFloating(id)
	}
}

// MoveWindowToTiling tiles a floating window.
func (ws *Workspace) MoveWindowToTiling(id window.ID) {
	if ws.floating.HasWindow(id) {
		ws.ToggleWindowFloating(id)
	}
}

// SetOutput moves the workspace to another output (nil detaches it),
// notifying every window and resizing the spaces.
func (ws *Workspace) SetOutput(output *Output) {
	if ws.output != nil {
		for _, win := range ws.windows() {
			win.OutputLeave(ws.output.Name)
		}
	}
	ws.output = output
	if output != nil {
		for _, win := range ws.windows() {
			win.OutputEnter(output.Name)
		}
		ws.UpdateOutputSize()
	}
}

// Output returns the workspace's current output, nil when detached.
func (ws *Workspace) Output() *Output { return ws.output }

func (ws *Workspace) windows() []window.Window {
	var out []window.Window
	for _, col := range ws.scrolling.columns {
		for _, t := range col.tiles {
			out = append(out, t.win)
		}
	}
	for _, t := range ws.floating.tiles {
		out = append(out, t.win)
	}
	return out
}

// Windows calls fn for every window on the workspace.
func (ws *Workspace) Windows(fn func(window.Window)) {
	for _, w := range ws.windows() {
		fn(w)
	}
}

func (ws *Workspace) viewSize() geometry.Size {
	if ws.output != nil {
		return ws.output.Size
	}
	return geometry.Sz(1280, 720)
}

func (ws *Workspace) scale() float64 {
	if ws.output != nil {
		return ws.output.Scale
	}
	return 1
}

// UpdateOutputSize re-derives the areas from the current output.
func (ws *Workspace) UpdateOutputSize() {
	viewSize := ws.viewSize()
	scale := ws.scale()
	working := computeWorkingArea(viewSize, ws.opts.Struts)
	parent := geometry.Rect{Size: viewSize}

	ws.scrolling.UpdateOutputSize(viewSize, scale, working, parent)
	ws.floating.UpdateOutputSize(viewSize, scale, working)
}

// UpdateConfig applies new options.
func (ws *Workspace) UpdateConfig(opts *config.Options) {
	ws.opts = opts
	ws.scrolling.UpdateConfig(opts)
	ws.floating.UpdateConfig(opts)
}

// AdvanceAnimations steps both spaces.
func (ws *Workspace) AdvanceAnimations() {
	ws.scrolling.AdvanceAnimations()
	ws.floating.AdvanceAnimations()
}

// AreAnimationsOngoing reports whether either space animates.
func (ws *Workspace) AreAnimationsOngoing() bool {
	return ws.scrolling.AreAnimationsOngoing() || ws.floating.AreAnimationsOngoing()
}

// Refresh pushes activation and flushes configures on both spaces.
func (ws *Workspace) Refresh(isActive bool) {
	ws.scrolling.Refresh(isActive && ws.focusLayer == FocusTiling)
	ws.floating.Refresh(isActive && ws.focusLayer == FocusFloating)
}

// Render draws the tiling layer with the floating layer above it.
func (ws *Workspace) Render(target render.Target) []render.Element {
	focusTiling := ws.focusLayer == FocusTiling
	elems := ws.scrolling.Render(target, focusTiling)
	elems = append(elems, ws.floating.Render(target, !focusTiling)...)
	return elems
}

// WindowUnder hit-tests floating above tiling.
func (ws *Workspace) WindowUnder(p geometry.Point) (window.Window, bool) {
	if w, ok := ws.floating.WindowUnder(p); ok {
		return w, true
	}
	return ws.scrolling.WindowUnder(p)
}

// PopupTargetRect returns the rectangle a popup for the window should be
// positioned against, in output coordinates.
func (ws *Workspace) PopupTargetRect(id window.ID) (geometry.Rect, bool) {
	if colIdx, tileIdx := ws.scrolling.findWindow(id); colIdx >= 0 {
		col := ws.scrolling.columns[colIdx]
		tile := col.tiles[tileIdx]
		loc := geometry.Pt(ws.scrolling.columnRenderX(colIdx), ws.scrolling.columnY(col)).
			Add(col.tileOffset(tileIdx))
		return geometry.Rect{Loc: loc, Size: tile.TileSize()}, true
	}
	if idx := ws.floating.findWindow(id); idx >= 0 {
		return geometry.Rect{
			Loc:  ws.floating.tilePos(idx),
			Size: ws.floating.tiles[idx].TileSize(),
		}, true
	}
	return geometry.Rect{}, false
}
