package layout_test

import (
	"testing"

	"github.com/Gaurav-Gosain/waveland/internal/layout"
)

func TestTrailingEmptyWorkspaceMaintained(t *testing.T) {
	f := newFixture(testOptions())
	f.addOutput("out-1")

	mon, _ := f.layout.ActiveMonitor()
	if got := len(mon.Workspaces()); got != 1 {
		t.Fatalf("initial workspace count = %d, want 1", got)
	}

	f.addWindow(1)
	if got := len(mon.Workspaces()); got != 2 {
		t.Fatalf("workspace count after add = %d, want 2", got)
	}
	if mon.Workspaces()[1].HasWindows() {
		t.Error("trailing workspace should be empty")
	}
}

func TestMoveWindowToWorkspaceDown(t *testing.T) {
	f := newFixture(testOptions())
	f.addOutput("out-1")
	f.addWindow(1)
	f.communicate()

	(layout.MoveWindowToWorkspaceDown{}).Do(f.layout)
	f.completeAnimations()

	// The emptied source workspace was culled once the switch settled,
	// so the moved-to workspace is now first.
	mon, _ := f.layout.ActiveMonitor()
	if got := mon.ActiveWorkspaceIdx(); got != 0 {
		t.Fatalf("active workspace = %d, want 0", got)
	}
	if !mon.Workspaces()[0].HasWindow("1") {
		t.Error("window should be on the surviving workspace")
	}
	if got := len(mon.Workspaces()); got != 2 {
		t.Errorf("workspace count = %d, want 2", got)
	}
	if mon.Workspaces()[len(mon.Workspaces())-1].HasWindows() {
		t.Error("trailing workspace should be empty")
	}
}

func TestEmptyWorkspaceCleanupAfterSwitch(t *testing.T) {
	f := newFixture(testOptions())
	f.addOutput("out-1")
	f.addWindow(1)
	f.communicate()

	mon, _ := f.layout.ActiveMonitor()

	// Move the window down: workspace 0 is left empty and is culled once
	// the switch settles. Then add a second window and switch up; no empty
	// workspace other than the active and trailing ones may survive.
	(layout.MoveWindowToWorkspaceDown{}).Do(f.layout)
	f.completeAnimations()
	f.addWindow(2)
	f.communicate()

	(layout.FocusWorkspaceUp{}).Do(f.layout)
	f.completeAnimations()

	for idx, ws := range mon.Workspaces() {
		if !ws.HasWindows() && idx != len(mon.Workspaces())-1 && idx != mon.ActiveWorkspaceIdx() {
			t.Errorf("empty workspace %d survived cleanup", idx)
		}
	}
}

func TestNamedWorkspacePersistsWhenEmpty(t *testing.T) {
	f := newFixture(testOptions())
	f.addOutput("out-1")
	f.addWindow(1)
	f.communicate()

	mon, _ := f.layout.ActiveMonitor()
	ws := mon.ActiveWorkspace()
	if err := f.layout.SetWorkspaceName(ws, "mail"); err != nil {
		t.Fatal(err)
	}

	f.layout.RemoveWindow("1")
	(layout.FocusWorkspaceDown{}).Do(f.layout)
	f.completeAnimations()

	if _, _, ok := mon.WorkspaceByName("mail"); !ok {
		t.Error("named workspace should persist while empty")
	}
}

func TestWorkspaceNamesAreUnique(t *testing.T) {
	f := newFixture(testOptions())
	f.addOutput("out-1")
	f.addWindow(1)
	f.communicate()

	mon, _ := f.layout.ActiveMonitor()
	if err := f.layout.SetWorkspaceName(mon.Workspaces()[0], "work"); err != nil {
		t.Fatal(err)
	}
	if err := f.layout.SetWorkspaceName(mon.Workspaces()[1], "work"); err == nil {
		t.Error("duplicate workspace name should be rejected")
	}
}

func TestFocusWorkspaceByName(t *testing.T) {
	f := newFixture(testOptions())
	f.addOutput("out-1")
	f.addWindow(1)
	f.communicate()

	mon, _ := f.layout.ActiveMonitor()
	if err := f.layout.SetWorkspaceName(mon.Workspaces()[1], "scratch"); err != nil {
		t.Fatal(err)
	}

	if err := (layout.FocusWorkspace{Name: "scratch"}).Do(f.layout); err != nil {
		t.Fatal(err)
	}
	f.completeAnimations()
	if got := mon.ActiveWorkspaceIdx(); got != 1 {
		t.Errorf("active workspace = %d, want 1", got)
	}
}

func TestMoveWindowToMonitor(t *testing.T) {
	f := newFixture(testOptions())
	f.addOutput("out-1")
	f.addOutput("out-2")
	f.addWindow(1)
	f.communicate()

	if err := (layout.MoveWindowToMonitor{Output: "out-2"}).Do(f.layout); err != nil {
		t.Fatal(err)
	}
	f.communicate()
	f.completeAnimations()

	if !f.layout.Monitors()[1].HasWindow("1") {
		t.Error("window should be on out-2")
	}
	if f.layout.Monitors()[0].HasWindow("1") {
		t.Error("window should have left out-1")
	}

	win, ok := f.layout.ActiveWindow()
	if !ok || win.ID() != "1" {
		t.Error("moved window should be the active one")
	}
}
