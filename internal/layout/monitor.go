package layout

import (
	"fmt"

	"github.com/Gaurav-Gosain/waveland/internal/animation"
	"github.com/Gaurav-Gosain/waveland/internal/config"
	"github.com/Gaurav-Gosain/waveland/internal/geometry"
	"github.com/Gaurav-Gosain/waveland/internal/render"
	"github.com/Gaurav-Gosain/waveland/internal/window"
)

// Monitor owns the ordered workspaces of one output. The last workspace is
// always kept empty as the "new workspace" slot.
type Monitor struct {
	output Output

	workspaces         []*Workspace
	activeWorkspaceIdx int

	// workspaceSwitch animates the rendered workspace index during a
	// switch. Nil at rest.
	workspaceSwitch *animation.Animation

	clock animation.Clock
	opts  *config.Options
}

// NewMonitor creates a monitor adopting the given workspaces, appending the
// trailing empty workspace if needed.
func NewMonitor(output Output, workspaces []*Workspace, clock animation.Clock, opts *config.Options) *Monitor {
	m := &Monitor{
		output:     output,
		workspaces: workspaces,
		clock:      clock,
		opts:       opts,
	}
	for _, ws := range m.workspaces {
		ws.SetOutput(&m.output)
	}
	m.ensureTrailingEmpty()
	return m
}

// Output returns the monitor's output.
func (m *Monitor) Output() *Output { return &m.output }

// Workspaces returns the workspace list. Callers must not mutate it.
func (m *Monitor) Workspaces() []*Workspace { return m.workspaces }

// ActiveWorkspaceIdx returns the active workspace index.
func (m *Monitor) ActiveWorkspaceIdx() int { return m.activeWorkspaceIdx }

// ActiveWorkspace returns the active workspace.
func (m *Monitor) ActiveWorkspace() *Workspace {
	return m.workspaces[m.activeWorkspaceIdx]
}

// ensureTrailingEmpty appends a fresh workspace when the last one has
// windows, upholding the invariant that the last workspace is empty.
func (m *Monitor) ensureTrailingEmpty() {
	if len(m.workspaces) == 0 || m.workspaces[len(m.workspaces)-1].HasWindows() {
		m.workspaces = append(m.workspaces, NewWorkspace(&m.output, m.clock, m.opts))
	}
}

// AddWindow inserts a window into the given workspace, re-stamping the
// workspace's home output.
func (m *Monitor) AddWindow(workspaceIdx int, win window.Window, activate bool, floating bool) {
	if workspaceIdx < 0 || workspaceIdx >= len(m.workspaces) {
		panic(fmt.Sprintf("workspace index %d out of range", workspaceIdx))
	}

	ws := m.workspaces[workspaceIdx]
	ws.AddWindow(win, activate, floating)
	if activate {
		m.ActivateWorkspace(workspaceIdx)
	}
	m.ensureTrailingEmpty()
}

// RemoveWindow extracts a window from whichever workspace holds it, and
// culls the workspace when it became empty and is unnamed, non-active and
// non-last.
func (m *Monitor) RemoveWindow(id window.ID) (*Tile, bool) {
	for idx, ws := range m.workspaces {
		if !ws.HasWindow(id) {
			continue
		}
		tile := ws.RemoveWindow(id)
		m.cleanUpWorkspaceAt(idx)
		return tile, true
	}
	return nil, false
}

// cleanUpWorkspaceAt removes one workspace when eligible: empty, unnamed,
// not active and not the trailing slot.
func (m *Monitor) cleanUpWorkspaceAt(idx int) {
	ws := m.workspaces[idx]
	if ws.HasWindows() || ws.Name() != "" ||
		idx == m.activeWorkspaceIdx || idx == len(m.workspaces)-1 {
		return
	}
	m.removeWorkspaceAt(idx)
}

func (m *Monitor) removeWorkspaceAt(idx int) {
	m.workspaces = append(m.workspaces[:idx], m.workspaces[idx+1:]...)
	if idx < m.activeWorkspaceIdx {
		m.activeWorkspaceIdx--
	}
	if m.activeWorkspaceIdx >= len(m.workspaces) {
		m.activeWorkspaceIdx = len(m.workspaces) - 1
	}
}

// ActivateWorkspace switches to workspace idx with the switch animation.
func (m *Monitor) ActivateWorkspace(idx int) {
	if idx < 0 || idx >= len(m.workspaces) {
		panic(fmt.Sprintf("workspace index %d out of range", idx))
	}
	if idx == m.activeWorkspaceIdx {
		return
	}

	from := m.renderWorkspaceIdx()
	m.activeWorkspaceIdx = idx
	m.workspaceSwitch = animation.New(m.clock, from, float64(idx), 0,
		m.opts.Animations.WorkspaceSwitch)
}

// renderWorkspaceIdx is the animated workspace position used by rendering.
func (m *Monitor) renderWorkspaceIdx() float64 {
	if m.workspaceSwitch != nil {
		return m.workspaceSwitch.Value()
	}
	return float64(m.activeWorkspaceIdx)
}

// CleanUpWorkspaces culls all empty, unnamed, non-active workspaces except
// the trailing one. Runs after the switch animation settles.
func (m *Monitor) CleanUpWorkspaces() {
	for idx := len(m.workspaces) - 2; idx >= 0; idx-- {
		m.cleanUpWorkspaceAt(idx)
	}
	m.ensureTrailingEmpty()
}

// SwitchWorkspaceUp activates the previous workspace.
func (m *Monitor) SwitchWorkspaceUp() {
	if m.activeWorkspaceIdx > 0 {
		m.ActivateWorkspace(m.activeWorkspaceIdx - 1)
	}
}

// SwitchWorkspaceDown activates the next workspace.
func (m *Monitor) SwitchWorkspaceDown() {
	if m.activeWorkspaceIdx+1 < len(m.workspaces) {
		m.ActivateWorkspace(m.activeWorkspaceIdx + 1)
	}
}

// MoveToWorkspaceUp moves the active window to the previous workspace.
func (m *Monitor) MoveToWorkspaceUp() {
	m.moveActiveWindowToWorkspace(m.activeWorkspaceIdx - 1)
}

// MoveToWorkspaceDown moves the active window to the next workspace.
func (m *Monitor) MoveToWorkspaceDown() {
	m.moveActiveWindowToWorkspace(m.activeWorkspaceIdx + 1)
}

func (m *Monitor) moveActiveWindowToWorkspace(target int) {
	if target < 0 || target >= len(m.workspaces) {
		return
	}
	ws := m.ActiveWorkspace()
	win, ok := ws.ActiveWindow()
	if !ok {
		return
	}

	floating := ws.floating.HasWindow(win.ID())
	tile := ws.RemoveWindow(win.ID())

	m.workspaces[target].stampOriginalOutput()
	if floating {
		m.workspaces[target].floating.AddTile(tile, true)
		m.workspaces[target].focusLayer = FocusFloating
	} else {
		m.workspaces[target].scrolling.AddTile(tile, true)
		m.workspaces[target].focusLayer = FocusTiling
	}
	tile.win.OutputEnter(m.output.Name)

	// The emptied source workspace is culled once the switch animation
	// settles.
	m.ActivateWorkspace(target)
	m.ensureTrailingEmpty()
}

// MoveColumnToWorkspace moves the active column of the active workspace.
func (m *Monitor) MoveColumnToWorkspace(target int) {
	if target < 0 || target >= len(m.workspaces) {
		return
	}
	sp := m.ActiveWorkspace().scrolling
	if sp.IsEmpty() {
		return
	}

	col := sp.removeColumnAt(sp.activeColumnIdx)
	dst := m.workspaces[target]
	dst.stampOriginalOutput()
	dst.scrolling.insertColumn(len(dst.scrolling.columns), col, true)
	dst.focusLayer = FocusTiling

	m.ActivateWorkspace(target)
	m.ensureTrailingEmpty()
}

// MoveWorkspaceUp swaps the active workspace with the previous one.
func (m *Monitor) MoveWorkspaceUp() { m.swapWorkspaces(m.activeWorkspaceIdx - 1) }

// MoveWorkspaceDown swaps the active workspace with the next one.
func (m *Monitor) MoveWorkspaceDown() { m.swapWorkspaces(m.activeWorkspaceIdx + 1) }

func (m *Monitor) swapWorkspaces(target int) {
	if target < 0 || target >= len(m.workspaces) {
		return
	}
	idx := m.activeWorkspaceIdx
	m.workspaces[idx], m.workspaces[target] = m.workspaces[target], m.workspaces[idx]
	m.workspaces[idx].stampOriginalOutput()
	m.workspaces[target].stampOriginalOutput()
	m.activeWorkspaceIdx = target
	m.ensureTrailingEmpty()
}

// HasWindow reports whether any workspace holds the window.
func (m *Monitor) HasWindow(id window.ID) bool {
	for _, ws := range m.workspaces {
		if ws.HasWindow(id) {
			return true
		}
	}
	return false
}

// WorkspaceWithWindow returns the workspace holding the window.
func (m *Monitor) WorkspaceWithWindow(id window.ID) (*Workspace, int, bool) {
	for idx, ws := range m.workspaces {
		if ws.HasWindow(id) {
			return ws, idx, true
		}
	}
	return nil, -1, false
}

// WorkspaceByName returns the named workspace.
func (m *Monitor) WorkspaceByName(name string) (*Workspace, int, bool) {
	for idx, ws := range m.workspaces {
		if ws.Name() == name {
			return ws, idx, true
		}
	}
	return nil, -1, false
}

// AdvanceAnimations steps all workspaces and settles the switch animation,
// cleaning up workspaces when it finishes.
func (m *Monitor) AdvanceAnimations() {
	if m.workspaceSwitch != nil && m.workspaceSwitch.IsDone() {
		m.workspaceSwitch = nil
		m.CleanUpWorkspaces()
	}
	for _, ws := range m.workspaces {
		ws.AdvanceAnimations()
	}
}

// AreAnimationsOngoing reports whether the monitor animates.
func (m *Monitor) AreAnimationsOngoing() bool {
	if m.workspaceSwitch != nil {
		return true
	}
	for _, ws := range m.workspaces {
		if ws.AreAnimationsOngoing() {
			return true
		}
	}
	return false
}

// Refresh refreshes all workspaces.
func (m *Monitor) Refresh(isActiveMonitor bool) {
	for idx, ws := range m.workspaces {
		ws.Refresh(isActiveMonitor && idx == m.activeWorkspaceIdx)
	}
}

// Render draws the visible workspaces. During a switch, the two adjacent
// workspaces scroll vertically.
func (m *Monitor) Render(target render.Target) []render.Element {
	renderIdx := m.renderWorkspaceIdx()
	h := m.output.Size.H

	var elems []render.Element
	lo := int(renderIdx)
	hi := lo + 1
	for idx := lo; idx <= hi && idx < len(m.workspaces); idx++ {
		offsetY := (float64(idx) - renderIdx) * h
		for _, e := range m.workspaces[idx].Render(target) {
			if offsetY == 0 {
				elems = append(elems, e)
			} else {
				elems = append(elems, &render.Relocate{
					Inner:  e,
					Offset: geometry.Pt(0, offsetY),
				})
			}
		}
	}
	return elems
}

// UpdateConfig applies new options to every workspace.
func (m *Monitor) UpdateConfig(opts *config.Options) {
	m.opts = opts
	for _, ws := range m.workspaces {
		ws.UpdateConfig(opts)
	}
}

// UpdateOutput applies a changed output mode or scale.
func (m *Monitor) UpdateOutput(output Output) {
	m.output = output
	for _, ws := range m.workspaces {
		ws.UpdateOutputSize()
	}
}
