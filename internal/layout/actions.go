package layout

import (
	"github.com/Gaurav-Gosain/waveland/internal/window"
)

// Action is a pure description of one layout operation, decoupled from key
// bindings and IPC. Invalid external references return typed errors;
// everything else is infallible.
type Action interface {
	Do(l *Layout) error
}

// Focus actions.

type FocusColumnLeft struct{}
type FocusColumnRight struct{}
type FocusColumnFirst struct{}
type FocusColumnLast struct{}
type FocusWindowUp struct{}
type FocusWindowDown struct{}
type FocusWorkspaceUp struct{}
type FocusWorkspaceDown struct{}
type FocusWorkspace struct{ Name string }
type FocusMonitorNext struct{}
type FocusMonitor struct{ Output string }
type FocusWindow struct{ ID window.ID }
type FocusFloatingLayer struct{}
type FocusTilingLayer struct{}
type SwitchFocusBetweenFloatingAndTiling struct{}

func (FocusColumnLeft) Do(l *Layout) error {
	if sp, ok := l.activeScrolling(); ok {
		sp.FocusColumnLeft()
	}
	return nil
}

func (FocusColumnRight) Do(l *Layout) error {
	if sp, ok := l.activeScrolling(); ok {
		sp.FocusColumnRight()
	}
	return nil
}

func (FocusColumnFirst) Do(l *Layout) error {
	if sp, ok := l.activeScrolling(); ok {
		sp.FocusColumnFirst()
	}
	return nil
}

func (FocusColumnLast) Do(l *Layout) error {
	if sp, ok := l.activeScrolling(); ok {
		sp.FocusColumnLast()
	}
	return nil
}

func (FocusWindowUp) Do(l *Layout) error {
	if sp, ok := l.activeScrolling(); ok {
		sp.FocusWindowUp()
	}
	return nil
}

func (FocusWindowDown) Do(l *Layout) error {
	if sp, ok := l.activeScrolling(); ok {
		sp.FocusWindowDown()
	}
	return nil
}

func (FocusWorkspaceUp) Do(l *Layout) error {
	if mon, ok := l.ActiveMonitor(); ok {
		mon.SwitchWorkspaceUp()
	}
	return nil
}

func (FocusWorkspaceDown) Do(l *Layout) error {
	if mon, ok := l.ActiveMonitor(); ok {
		mon.SwitchWorkspaceDown()
	}
	return nil
}

func (a FocusWorkspace) Do(l *Layout) error { return l.FocusWorkspaceByRef(a.Name) }

func (FocusMonitorNext) Do(l *Layout) error {
	l.FocusMonitorNext()
	return nil
}

func (a FocusMonitor) Do(l *Layout) error { return l.FocusMonitorByName(a.Output) }

func (a FocusWindow) Do(l *Layout) error {
	l.ActivateWindow(a.ID)
	return nil
}

func (FocusFloatingLayer) Do(l *Layout) error {
	if ws, ok := l.ActiveWorkspace(); ok {
		ws.FocusFloatingLayer()
	}
	return nil
}

func (FocusTilingLayer) Do(l *Layout) error {
	if ws, ok := l.ActiveWorkspace(); ok {
		ws.FocusTilingLayer()
	}
	return nil
}

func (SwitchFocusBetweenFloatingAndTiling) Do(l *Layout) error {
	if ws, ok := l.ActiveWorkspace(); ok {
		ws.SwitchFocusBetweenLayers()
	}
	return nil
}

// Move actions.

type MoveColumnLeft struct{}
type MoveColumnRight struct{}
type MoveColumnFirst struct{}
type MoveColumnLast struct{}
type MoveWindowUp struct{}
type MoveWindowDown struct{}
type MoveWindowToWorkspaceUp struct{}
type MoveWindowToWorkspaceDown struct{}
type MoveWindowToWorkspace struct{ Name string }
type MoveColumnToWorkspaceUp struct{}
type MoveColumnToWorkspaceDown struct{}
type MoveWindowToMonitor struct{ Output string }
type MoveColumnToMonitor struct{ Output string }
type MoveWorkspaceUp struct{}
type MoveWorkspaceDown struct{}

func (MoveColumnLeft) Do(l *Layout) error {
	if sp, ok := l.activeScrolling(); ok {
		sp.MoveColumnLeft()
	}
	return nil
}

func (MoveColumnRight) Do(l *Layout) error {
	if sp, ok := l.activeScrolling(); ok {
		sp.MoveColumnRight()
	}
	return nil
}

func (MoveColumnFirst) Do(l *Layout) error {
	if sp, ok := l.activeScrolling(); ok {
		sp.MoveColumnFirst()
	}
	return nil
}

func (MoveColumnLast) Do(l *Layout) error {
	if sp, ok := l.activeScrolling(); ok {
		sp.MoveColumnLast()
	}
	return nil
}

func (MoveWindowUp) Do(l *Layout) error {
	if sp, ok := l.activeScrolling(); ok {
		sp.MoveWindowUp()
	}
	return nil
}

func (MoveWindowDown) Do(l *Layout) error {
	if sp, ok := l.activeScrolling(); ok {
		sp.MoveWindowDown()
	}
	return nil
}

func (MoveWindowToWorkspaceUp) Do(l *Layout) error {
	if mon, ok := l.ActiveMonitor(); ok {
		mon.MoveToWorkspaceUp()
	}
	return nil
}

func (MoveWindowToWorkspaceDown) Do(l *Layout) error {
	if mon, ok := l.ActiveMonitor(); ok {
		mon.MoveToWorkspaceDown()
	}
	return nil
}

func (a MoveWindowToWorkspace) Do(l *Layout) error {
	return l.MoveWindowToWorkspaceByRef(a.Name)
}

func (MoveColumnToWorkspaceUp) Do(l *Layout) error {
	if mon, ok := l.ActiveMonitor(); ok {
		mon.MoveColumnToWorkspace(mon.ActiveWorkspaceIdx() - 1)
	}
	return nil
}

func (MoveColumnToWorkspaceDown) Do(l *Layout) error {
	if mon, ok := l.ActiveMonitor(); ok {
		mon.MoveColumnToWorkspace(mon.ActiveWorkspaceIdx() + 1)
	}
	return nil
}

func (a MoveWindowToMonitor) Do(l *Layout) error {
	return l.MoveWindowToMonitorByName(a.Output)
}

func (a MoveColumnToMonitor) Do(l *Layout) error {
	return l.MoveColumnToMonitorByName(a.Output)
}

func (MoveWorkspaceUp) Do(l *Layout) error {
	if mon, ok := l.ActiveMonitor(); ok {
		mon.MoveWorkspaceUp()
	}
	return nil
}

func (MoveWorkspaceDown) Do(l *Layout) error {
	if mon, ok := l.ActiveMonitor(); ok {
		mon.MoveWorkspaceDown()
	}
	return nil
}

// Resize actions.

type SetColumnWidth struct{ Change SizeChange }
type SetWindowWidth struct {
	ID     window.ID
	HaveID bool
	Change SizeChange
}
type SetWindowHeight struct {
	ID     window.ID
	HaveID bool
	Change SizeChange
}
type ResetWindowHeight struct {
	ID     window.ID
	HaveID bool
}
type SwitchPresetColumnWidth struct{}
type SwitchPresetColumnWidthBack struct{}
type SwitchPresetWindowWidth struct {
	ID     window.ID
	HaveID bool
}
type SwitchPresetWindowHeight struct{}
type MaximizeColumn struct{}
type ExpandColumnToAvailableWidth struct{}

func (a SetColumnWidth) Do(l *Layout) error {
	sp, ok := l.activeScrolling()
	if !ok || sp.IsEmpty() {
		return nil
	}
	col := sp.columns[sp.activeColumnIdx]
	sp.cancelResizeForColumn(col)
	col.SetColumnWidth(a.Change, col.activeTileIdx, true)
	sp.animateViewOffsetToColumn(sp.targetViewPos(), sp.activeColumnIdx, -1)
	return nil
}

func (a SetWindowWidth) Do(l *Layout) error {
	sp, colIdx, tileIdx, ok := resolveScrollingWindow(l, a.ID, a.HaveID)
	if !ok {
		return nil
	}
	col := sp.columns[colIdx]
	sp.cancelResizeForColumn(col)
	col.SetColumnWidth(a.Change, tileIdx, true)
	return nil
}

func (a SetWindowHeight) Do(l *Layout) error {
	sp, colIdx, tileIdx, ok := resolveScrollingWindow(l, a.ID, a.HaveID)
	if !ok {
		return nil
	}
	col := sp.columns[colIdx]
	sp.cancelResizeForColumn(col)
	col.SetWindowHeight(a.Change, tileIdx, true)
	return nil
}

func (a ResetWindowHeight) Do(l *Layout) error {
	sp, colIdx, tileIdx, ok := resolveScrollingWindow(l, a.ID, a.HaveID)
	if !ok {
		return nil
	}
	sp.columns[colIdx].ResetWindowHeight(tileIdx, true)
	return nil
}

func (SwitchPresetColumnWidth) Do(l *Layout) error {
	sp, ok := l.activeScrolling()
	if !ok || sp.IsEmpty() {
		return nil
	}
	col := sp.columns[sp.activeColumnIdx]
	sp.cancelResizeForColumn(col)
	col.ToggleWidth(true, true)
	sp.animateViewOffsetToColumn(sp.targetViewPos(), sp.activeColumnIdx, -1)
	return nil
}

func (SwitchPresetColumnWidthBack) Do(l *Layout) error {
	sp, ok := l.activeScrolling()
	if !ok || sp.IsEmpty() {
		return nil
	}
	col := sp.columns[sp.activeColumnIdx]
	sp.cancelResizeForColumn(col)
	col.ToggleWidth(false, true)
	sp.animateViewOffsetToColumn(sp.targetViewPos(), sp.activeColumnIdx, -1)
	return nil
}

func (a SwitchPresetWindowWidth) Do(l *Layout) error {
	sp, colIdx, _, ok := resolveScrollingWindow(l, a.ID, a.HaveID)
	if !ok {
		return nil
	}
	col := sp.columns[colIdx]
	sp.cancelResizeForColumn(col)
	col.ToggleWidth(true, true)
	return nil
}

func (SwitchPresetWindowHeight) Do(l *Layout) error {
	sp, ok := l.activeScrolling()
	if !ok || sp.IsEmpty() {
		return nil
	}
	col := sp.columns[sp.activeColumnIdx]
	sp.cancelResizeForColumn(col)
	col.ToggleWindowHeight(col.activeTileIdx, true, true)
	return nil
}

func (MaximizeColumn) Do(l *Layout) error {
	if sp, ok := l.activeScrolling(); ok {
		sp.MaximizeColumn()
	}
	return nil
}

func (ExpandColumnToAvailableWidth) Do(l *Layout) error {
	if sp, ok := l.activeScrolling(); ok {
		sp.ExpandColumnToAvailableWidth()
	}
	return nil
}

// Structural actions.

type ConsumeOrExpelWindowLeft struct {
	ID     window.ID
	HaveID bool
}
type ConsumeOrExpelWindowRight struct {
	ID     window.ID
	HaveID bool
}
type ConsumeWindowIntoColumn struct{}
type ExpelWindowFromColumn struct{}
type SwapWindowLeft struct{}
type SwapWindowRight struct{}
type CenterColumn struct{}
type CenterWindow struct {
	ID     window.ID
	HaveID bool
}
type CenterVisibleColumns struct{}
type ToggleColumnTabbedDisplay struct{}

func (a ConsumeOrExpelWindowLeft) Do(l *Layout) error {
	if sp, ok := l.activeScrolling(); ok {
		sp.ConsumeOrExpelWindowLeft(a.ID, a.HaveID)
	}
	return nil
}

func (a ConsumeOrExpelWindowRight) Do(l *Layout) error {
	if sp, ok := l.activeScrolling(); ok {
		sp.ConsumeOrExpelWindowRight(a.ID, a.HaveID)
	}
	return nil
}

func (ConsumeWindowIntoColumn) Do(l *Layout) error {
	if sp, ok := l.activeScrolling(); ok {
		sp.ConsumeWindowIntoColumn()
	}
	return nil
}

func (ExpelWindowFromColumn) Do(l *Layout) error {
	if sp, ok := l.activeScrolling(); ok {
		sp.ExpelWindowFromColumn()
	}
	return nil
}

func (SwapWindowLeft) Do(l *Layout) error {
	if sp, ok := l.activeScrolling(); ok {
		sp.SwapWindowInDirection(false)
	}
	return nil
}

func (SwapWindowRight) Do(l *Layout) error {
	if sp, ok := l.activeScrolling(); ok {
		sp.SwapWindowInDirection(true)
	}
	return nil
}

func (CenterColumn) Do(l *Layout) error {
	if sp, ok := l.activeScrolling(); ok {
		sp.CenterColumn()
	}
	return nil
}

func (a CenterWindow) Do(l *Layout) error {
	sp, colIdx, _, ok := resolveScrollingWindow(l, a.ID, a.HaveID)
	if !ok {
		return nil
	}
	// Only the active column can meaningfully be centered.
	if colIdx == sp.activeColumnIdx {
		sp.CenterColumn()
	}
	return nil
}

func (CenterVisibleColumns) Do(l *Layout) error {
	if sp, ok := l.activeScrolling(); ok {
		sp.CenterVisibleColumns()
	}
	return nil
}

func (ToggleColumnTabbedDisplay) Do(l *Layout) error {
	sp, ok := l.activeScrolling()
	if !ok || sp.IsEmpty() {
		return nil
	}
	col := sp.columns[sp.activeColumnIdx]
	sp.cancelResizeForColumn(col)
	col.ToggleTabbedDisplay(true)
	return nil
}

// Floating actions.

type ToggleWindowFloating struct {
	ID     window.ID
	HaveID bool
}
type MoveWindowToFloating struct {
	ID     window.ID
	HaveID bool
}
type MoveWindowToTiling struct {
	ID     window.ID
	HaveID bool
}
type MoveFloatingWindow struct {
	ID     window.ID
	HaveID bool
	X, Y   PositionChange
}

func (a ToggleWindowFloating) Do(l *Layout) error {
	ws, id, ok := resolveWorkspaceWindow(l, a.ID, a.HaveID)
	if !ok {
		return nil
	}
	ws.ToggleWindowFloating(id)
	return nil
}

func (a MoveWindowToFloating) Do(l *Layout) error {
	ws, id, ok := resolveWorkspaceWindow(l, a.ID, a.HaveID)
	if !ok {
		return nil
	}
	ws.MoveWindowToFloating(id)
	return nil
}

func (a MoveWindowToTiling) Do(l *Layout) error {
	ws, id, ok := resolveWorkspaceWindow(l, a.ID, a.HaveID)
	if !ok {
		return nil
	}
	ws.MoveWindowToTiling(id)
	return nil
}

func (a MoveFloatingWindow) Do(l *Layout) error {
	ws, id, ok := resolveWorkspaceWindow(l, a.ID, a.HaveID)
	if !ok {
		return nil
	}
	ws.floating.SetWindowPos(id, a.X, a.Y)
	return nil
}

// State actions.

type FullscreenWindow struct {
	ID     window.ID
	HaveID bool
}
type SetFullscreen struct {
	ID window.ID
	On bool
}
type CloseWindow struct {
	ID     window.ID
	HaveID bool
}

func (a FullscreenWindow) Do(l *Layout) error {
	_, id, ok := resolveWorkspaceWindow(l, a.ID, a.HaveID)
	if !ok {
		return nil
	}
	l.ToggleWindowFullscreen(id)
	return nil
}

func (a SetFullscreen) Do(l *Layout) error {
	if !l.HasWindow(a.ID) {
		return nil
	}
	l.SetWindowFullscreen(a.ID, a.On)
	return nil
}

// CloseWindow only captures the unmap snapshot; actually closing the
// client is the host's job.
func (a CloseWindow) Do(l *Layout) error {
	_, id, ok := resolveWorkspaceWindow(l, a.ID, a.HaveID)
	if !ok {
		return nil
	}
	if ws, found := l.workspaceWithWindow(id); found {
		if colIdx, tileIdx := ws.scrolling.findWindow(id); colIdx >= 0 {
			ws.scrolling.columns[colIdx].tiles[tileIdx].StoreUnmapSnapshot()
		}
	}
	return nil
}

// Helpers shared by the actions.

func resolveScrollingWindow(l *Layout, id window.ID, haveID bool) (*ScrollingSpace, int, int, bool) {
	if haveID {
		ws, ok := l.workspaceWithWindow(id)
		if !ok {
			return nil, 0, 0, false
		}
		colIdx, tileIdx := ws.scrolling.findWindow(id)
		if colIdx < 0 {
			return nil, 0, 0, false
		}
		return ws.scrolling, colIdx, tileIdx, true
	}

	sp, ok := l.activeScrolling()
	if !ok || sp.IsEmpty() {
		return nil, 0, 0, false
	}
	col := sp.columns[sp.activeColumnIdx]
	return sp, sp.activeColumnIdx, col.activeTileIdx, true
}

func resolveWorkspaceWindow(l *Layout, id window.ID, haveID bool) (*Workspace, window.ID, bool) {
	if haveID {
		ws, ok := l.workspaceWithWindow(id)
		return ws, id, ok
	}
	ws, ok := l.ActiveWorkspace()
	if !ok {
		return nil, "", false
	}
	win, ok := ws.ActiveWindow()
	if !ok {
		return nil, "", false
	}
	return ws, win.ID(), true
}
