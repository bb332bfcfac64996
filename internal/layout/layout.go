package layout

import (
	"errors"
	"fmt"
	"time"

	"github.com/Gaurav-Gosain/waveland/internal/animation"
	"github.com/Gaurav-Gosain/waveland/internal/config"
	"github.com/Gaurav-Gosain/waveland/internal/geometry"
	"github.com/Gaurav-Gosain/waveland/internal/render"
	"github.com/Gaurav-Gosain/waveland/internal/window"
)

// Typed failures for invalid external references. Programmer errors panic
// instead.
var (
	ErrUnknownWorkspace = errors.New("unknown workspace reference")
	ErrUnknownOutput    = errors.New("unknown output reference")
	ErrNoOutputs        = errors.New("no outputs connected")
)

// Layout is the multi-monitor root. With no outputs connected, windows live
// on a detached workspace list that migrates to the first output that
// appears.
type Layout struct {
	// monitors is non-empty in the normal state. When empty, noOutputs
	// holds the detached workspaces.
	monitors         []*Monitor
	primaryIdx       int
	activeMonitorIdx int

	noOutputs []*Workspace

	clock animation.Clock
	opts  *config.Options
}

// New returns an empty layout in the no-outputs state.
func New(clock animation.Clock, opts *config.Options) *Layout {
	return &Layout{clock: clock, opts: opts}
}

// Clock returns the shared layout clock.
func (l *Layout) Clock() animation.Clock { return l.clock }

// Options returns the active options.
func (l *Layout) Options() *config.Options { return l.opts }

// HasOutputs reports whether any monitor is connected.
func (l *Layout) HasOutputs() bool { return len(l.monitors) > 0 }

// Monitors returns the monitor list. Callers must not mutate it.
func (l *Layout) Monitors() []*Monitor { return l.monitors }

// ActiveMonitor returns the active monitor in the normal state.
func (l *Layout) ActiveMonitor() (*Monitor, bool) {
	if len(l.monitors) == 0 {
		return nil, false
	}
	return l.monitors[l.activeMonitorIdx], true
}

// PrimaryMonitor returns the primary monitor in the normal state.
func (l *Layout) PrimaryMonitor() (*Monitor, bool) {
	if len(l.monitors) == 0 {
		return nil, false
	}
	return l.monitors[l.primaryIdx], true
}

// ActiveWorkspace returns the active workspace of the active monitor.
func (l *Layout) ActiveWorkspace() (*Workspace, bool) {
	mon, ok := l.ActiveMonitor()
	if !ok {
		return nil, false
	}
	return mon.ActiveWorkspace(), true
}

// AddOutput connects an output. Workspaces whose original output matches
// are reclaimed from their current monitors, preserving their relative
// order.
func (l *Layout) AddOutput(output Output) {
	id := output.ID()

	if len(l.monitors) == 0 {
		workspaces := l.noOutputs
		l.noOutputs = nil
		mon := NewMonitor(output, workspaces, l.clock, l.opts)
		l.monitors = []*Monitor{mon}
		l.primaryIdx = 0
		l.activeMonitorIdx = 0
		return
	}

	// Reclaim this output's workspaces from every existing monitor, in
	// reverse so indices stay valid, restoring order afterwards.
	var reclaimed []*Workspace
	for _, mon := range l.monitors {
		for i := len(mon.workspaces) - 1; i >= 0; i-- {
			ws := mon.workspaces[i]
			if ws.OriginalOutput() != id {
				continue
			}
			if !ws.HasWindows() && ws.Name() == "" {
				// Fresh empty slots stay where they are.
				continue
			}
			mon.removeWorkspaceAt(i)
			reclaimed = append(reclaimed, ws)
		}
		mon.ensureTrailingEmpty()
	}
	for i, j := 0, len(reclaimed)-1; i < j; i, j = i+1, j-1 {
		reclaimed[i], reclaimed[j] = reclaimed[j], reclaimed[i]
	}

	mon := NewMonitor(output, reclaimed, l.clock, l.opts)
	l.monitors = append(l.monitors, mon)
}

// RemoveOutput disconnects an output. Its non-empty workspaces migrate to
// the primary monitor, keeping their original-output stamps so a reconnect
// brings them back.
func (l *Layout) RemoveOutput(name string) {
	idx := l.monitorIdxByName(name)
	if idx < 0 {
		panic(fmt.Sprintf("removing unknown output %q", name))
	}

	mon := l.monitors[idx]
	l.monitors = append(l.monitors[:idx], l.monitors[idx+1:]...)

	workspaces := mon.workspaces
	kept := workspaces[:0]
	for _, ws := range workspaces {
		ws.SetOutput(nil)
		if ws.HasWindows() || ws.Name() != "" {
			kept = append(kept, ws)
		}
	}
	workspaces = kept

	if len(l.monitors) == 0 {
		l.noOutputs = workspaces
		l.primaryIdx = 0
		l.activeMonitorIdx = 0
		return
	}

	if l.primaryIdx >= idx {
		l.primaryIdx = max(0, l.primaryIdx-1)
	}
	if l.activeMonitorIdx >= idx {
		l.activeMonitorIdx = max(0, l.activeMonitorIdx-1)
	}

	primary := l.monitors[l.primaryIdx]
	for _, ws := range workspaces {
		ws.SetOutput(&primary.output)
	}

	// Insert before the trailing empty workspace.
	empty := primary.workspaces[len(primary.workspaces)-1]
	primary.workspaces = append(primary.workspaces[:len(primary.workspaces)-1], workspaces...)
	primary.workspaces = append(primary.workspaces, empty)
	if primary.activeWorkspaceIdx >= len(primary.workspaces) {
		primary.activeWorkspaceIdx = len(primary.workspaces) - 1
	}
}

func (l *Layout) monitorIdxByName(name string) int {
	id := (&Output{Name: name}).ID()
	for i, mon := range l.monitors {
		if mon.output.ID() == id {
			return i
		}
	}
	return -1
}

// UpdateOutput applies a mode or scale change to a connected output.
func (l *Layout) UpdateOutput(output Output) error {
	idx := l.monitorIdxByName(output.Name)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownOutput, output.Name)
	}
	l.monitors[idx].UpdateOutput(output)
	return nil
}

// AddWindow adds a window to the active workspace of the active monitor,
// or to the detached list with no outputs. Returns the output the window
// landed on.
func (l *Layout) AddWindow(win window.Window, activate bool, floating bool) (*Output, bool) {
	if len(l.monitors) == 0 {
		if len(l.noOutputs) == 0 {
			l.noOutputs = append(l.noOutputs, NewWorkspace(nil, l.clock, l.opts))
		}
		l.noOutputs[0].AddWindow(win, activate, floating)
		return nil, false
	}

	mon := l.monitors[l.activeMonitorIdx]
	mon.AddWindow(mon.activeWorkspaceIdx, win, activate, floating)
	return &mon.output, true
}

// AddWindowToWorkspace adds a window to a specific workspace by id.
func (l *Layout) AddWindowToWorkspace(win window.Window, wsID WorkspaceID, activate bool) error {
	for _, mon := range l.monitors {
		for idx, ws := range mon.workspaces {
			if ws.ID() == wsID {
				mon.AddWindow(idx, win, activate, false)
				return nil
			}
		}
	}
	for _, ws := range l.noOutputs {
		if ws.ID() == wsID {
			ws.AddWindow(win, activate, false)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownWorkspace, wsID)
}

// RemoveWindow unmaps a window from wherever it lives. Panics for unknown
// windows: the backend must only remove windows it added.
func (l *Layout) RemoveWindow(id window.ID) {
	for _, mon := range l.monitors {
		if _, ok := mon.RemoveWindow(id); ok {
			return
		}
	}
	for idx, ws := range l.noOutputs {
		if ws.HasWindow(id) {
			ws.RemoveWindow(id)
			if !ws.HasWindows() {
				l.noOutputs = append(l.noOutputs[:idx], l.noOutputs[idx+1:]...)
			}
			return
		}
	}
	panic(fmt.Sprintf("removing window %q not in the layout", id))
}

// UpdateWindow ingests a window commit.
func (l *Layout) UpdateWindow(id window.ID) {
	if ws, ok := l.workspaceWithWindow(id); ok {
		ws.UpdateWindow(id)
		return
	}
	panic(fmt.Sprintf("update for window %q not in the layout", id))
}

func (l *Layout) workspaceWithWindow(id window.ID) (*Workspace, bool) {
	for _, mon := range l.monitors {
		if ws, _, ok := mon.WorkspaceWithWindow(id); ok {
			return ws, true
		}
	}
	for _, ws := range l.noOutputs {
		if ws.HasWindow(id) {
			return ws, true
		}
	}
	return nil, false
}

// HasWindow reports whether the layout knows the window.
func (l *Layout) HasWindow(id window.ID) bool {
	_, ok := l.workspaceWithWindow(id)
	return ok
}

// ActivateWindow focuses a window wherever it is, switching monitor and
// workspace as needed.
func (l *Layout) ActivateWindow(id window.ID) bool {
	for monIdx, mon := range l.monitors {
		ws, wsIdx, ok := mon.WorkspaceWithWindow(id)
		if !ok {
			continue
		}
		l.activeMonitorIdx = monIdx
		mon.ActivateWorkspace(wsIdx)
		ws.ActivateWindow(id)
		return true
	}
	return false
}

// ActiveWindow returns the focused window: always on the active workspace
// of the active monitor.
func (l *Layout) ActiveWindow() (window.Window, bool) {
	ws, ok := l.ActiveWorkspace()
	if !ok {
		return nil, false
	}
	return ws.ActiveWindow()
}

// WindowUnder hit-tests a point on the named output.
func (l *Layout) WindowUnder(outputName string, p geometry.Point) (window.Window, bool) {
	idx := l.monitorIdxByName(outputName)
	if idx < 0 {
		return nil, false
	}
	return l.monitors[idx].ActiveWorkspace().WindowUnder(p)
}

// InsertPositionAt decides where a window dropped at the given point on the
// named output would land.
func (l *Layout) InsertPositionAt(outputName string, p geometry.Point) InsertPosition {
	idx := l.monitorIdxByName(outputName)
	if idx < 0 {
		return InsertPosition{Kind: InsertFloating}
	}
	return l.monitors[idx].ActiveWorkspace().scrolling.InsertPositionAt(p)
}

// PopupTargetRect returns the rectangle popups for the window should be
// positioned against.
func (l *Layout) PopupTargetRect(id window.ID) (geometry.Rect, bool) {
	ws, ok := l.workspaceWithWindow(id)
	if !ok {
		return geometry.Rect{}, false
	}
	return ws.PopupTargetRect(id)
}

// WorkspaceEntry describes one workspace in iteration order.
type WorkspaceEntry struct {
	// Monitor is nil for detached workspaces.
	Monitor   *Monitor
	Idx       int
	Workspace *Workspace
}

// Workspaces lists every workspace across monitors and the detached list.
func (l *Layout) Workspaces() []WorkspaceEntry {
	var out []WorkspaceEntry
	for _, mon := range l.monitors {
		for idx, ws := range mon.workspaces {
			out = append(out, WorkspaceEntry{Monitor: mon, Idx: idx, Workspace: ws})
		}
	}
	for idx, ws := range l.noOutputs {
		out = append(out, WorkspaceEntry{Idx: idx, Workspace: ws})
	}
	return out
}

// SetWorkspaceName names a workspace, enforcing process-wide uniqueness.
func (l *Layout) SetWorkspaceName(ws *Workspace, name string) error {
	if name == "" {
		ws.SetName("")
		return nil
	}
	for _, entry := range l.Workspaces() {
		if entry.Workspace != ws && entry.Workspace.Name() == name {
			return fmt.Errorf("workspace name %q already in use", name)
		}
	}
	ws.SetName(name)
	return nil
}

// FocusWorkspaceByRef activates a workspace by name.
func (l *Layout) FocusWorkspaceByRef(name string) error {
	for monIdx, mon := range l.monitors {
		if _, idx, ok := mon.WorkspaceByName(name); ok {
			l.activeMonitorIdx = monIdx
			mon.ActivateWorkspace(idx)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownWorkspace, name)
}

// MoveWindowToWorkspaceByRef moves the active window to a named workspace.
func (l *Layout) MoveWindowToWorkspaceByRef(name string) error {
	mon, ok := l.ActiveMonitor()
	if !ok {
		return ErrNoOutputs
	}
	for _, target := range l.monitors {
		if _, idx, found := target.WorkspaceByName(name); found {
			if target == mon {
				mon.moveActiveWindowToWorkspace(idx)
				return nil
			}
			// Cross-monitor move.
			ws := mon.ActiveWorkspace()
			win, okWin := ws.ActiveWindow()
			if !okWin {
				return nil
			}
			tile, _ := mon.RemoveWindow(win.ID())
			target.workspaces[idx].stampOriginalOutput()
			target.workspaces[idx].scrolling.AddTile(tile, true)
			tile.win.OutputEnter(target.output.Name)
			target.ActivateWorkspace(idx)
			target.ensureTrailingEmpty()
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownWorkspace, name)
}

// FocusMonitorByName activates a monitor.
func (l *Layout) FocusMonitorByName(name string) error {
	idx := l.monitorIdxByName(name)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownOutput, name)
	}
	l.activeMonitorIdx = idx
	return nil
}

// FocusMonitorNext cycles the active monitor.
func (l *Layout) FocusMonitorNext() {
	if len(l.monitors) > 1 {
		l.activeMonitorIdx = (l.activeMonitorIdx + 1) % len(l.monitors)
	}
}

// MoveWindowToMonitorByName moves the active window to another monitor's
// active workspace.
func (l *Layout) MoveWindowToMonitorByName(name string) error {
	idx := l.monitorIdxByName(name)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownOutput, name)
	}
	src, ok := l.ActiveMonitor()
	if !ok || src == l.monitors[idx] {
		return nil
	}
	win, okWin := src.ActiveWorkspace().ActiveWindow()
	if !okWin {
		return nil
	}

	tile, _ := src.RemoveWindow(win.ID())
	dst := l.monitors[idx]
	target := dst.ActiveWorkspace()
	target.stampOriginalOutput()
	target.scrolling.AddTile(tile, true)
	target.focusLayer = FocusTiling
	tile.win.OutputEnter(dst.output.Name)
	dst.ensureTrailingEmpty()
	l.activeMonitorIdx = idx
	return nil
}

// MoveColumnToMonitorByName moves the active column to another monitor.
func (l *Layout) MoveColumnToMonitorByName(name string) error {
	idx := l.monitorIdxByName(name)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownOutput, name)
	}
	src, ok := l.ActiveMonitor()
	if !ok || src == l.monitors[idx] {
		return nil
	}
	sp := src.ActiveWorkspace().scrolling
	if sp.IsEmpty() {
		return nil
	}

	srcWsIdx := src.activeWorkspaceIdx
	col := sp.removeColumnAt(sp.activeColumnIdx)

	dst := l.monitors[idx]
	target := dst.ActiveWorkspace()
	target.stampOriginalOutput()
	for _, t := range col.tiles {
		t.win.OutputLeave(src.output.Name)
		t.win.OutputEnter(dst.output.Name)
	}
	target.scrolling.insertColumn(len(target.scrolling.columns), col, true)
	target.focusLayer = FocusTiling
	dst.ensureTrailingEmpty()
	src.cleanUpWorkspaceAt(srcWsIdx)
	l.activeMonitorIdx = idx
	return nil
}

// SetWindowFullscreen sets fullscreen on a window's column.
func (l *Layout) SetWindowFullscreen(id window.ID, on bool) {
	ws, ok := l.workspaceWithWindow(id)
	if !ok {
		panic(fmt.Sprintf("fullscreen for window %q not in the layout", id))
	}
	if ws.floating.HasWindow(id) {
		// Floating windows move to the tiling layer to go fullscreen.
		if !on {
			return
		}
		ws.MoveWindowToTiling(id)
	}
	ws.scrolling.SetWindowFullscreen(id, on)
}

// ToggleWindowFullscreen flips fullscreen on a window's column.
func (l *Layout) ToggleWindowFullscreen(id window.ID) {
	ws, ok := l.workspaceWithWindow(id)
	if !ok {
		panic(fmt.Sprintf("fullscreen for window %q not in the layout", id))
	}
	if ws.floating.HasWindow(id) {
		ws.MoveWindowToTiling(id)
	}
	ws.scrolling.ToggleWindowFullscreen(id)
}

// AdvanceAnimations advances the shared clock to now and steps every
// animation. Called exactly once per frame, before Refresh and Render.
func (l *Layout) AdvanceAnimations(now time.Duration) {
	l.clock.SetNow(now)
	for _, mon := range l.monitors {
		mon.AdvanceAnimations()
	}
	for _, ws := range l.noOutputs {
		ws.AdvanceAnimations()
	}
}

// AreAnimationsOngoing reports whether any monitor animates. The host uses
// this to request the next frame.
func (l *Layout) AreAnimationsOngoing() bool {
	for _, mon := range l.monitors {
		if mon.AreAnimationsOngoing() {
			return true
		}
	}
	return false
}

// Refresh pushes activation state and flushes batched configures. Called
// once per frame, after AdvanceAnimations.
func (l *Layout) Refresh() {
	for idx, mon := range l.monitors {
		mon.Refresh(idx == l.activeMonitorIdx)
	}
	for _, ws := range l.noOutputs {
		ws.Refresh(false)
	}
}

// Render emits the element stream for one output.
func (l *Layout) Render(outputName string, target render.Target) []render.Element {
	idx := l.monitorIdxByName(outputName)
	if idx < 0 {
		return nil
	}
	return l.monitors[idx].Render(target)
}

// SendFrameCallbacks delivers frame callbacks to every window on the named
// output.
func (l *Layout) SendFrameCallbacks(outputName string, t time.Duration) {
	idx := l.monitorIdxByName(outputName)
	if idx < 0 {
		return
	}
	for _, ws := range l.monitors[idx].workspaces {
		ws.Windows(func(w window.Window) {
			w.SendFrameCallback(t)
		})
	}
}

// UpdateConfig applies new options everywhere.
func (l *Layout) UpdateConfig(opts *config.Options) {
	l.opts = opts
	l.clock.SetRate(opts.Animations.Slowdown)
	for _, mon := range l.monitors {
		mon.UpdateConfig(opts)
	}
	for _, ws := range l.noOutputs {
		ws.UpdateConfig(opts)
	}
}

// activeScrolling is a helper for actions on the focused tiling space.
func (l *Layout) activeScrolling() (*ScrollingSpace, bool) {
	ws, ok := l.ActiveWorkspace()
	if !ok {
		return nil, false
	}
	return ws.scrolling, true
}
