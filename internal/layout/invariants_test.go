package layout_test

import (
	"fmt"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/Gaurav-Gosain/waveland/internal/layout"
	"github.com/Gaurav-Gosain/waveland/internal/window"
)

// checkInvariants verifies the structural invariants that must hold after
// every operation.
func checkInvariants(t *testing.T, f *fixture, step string) {
	t.Helper()
	l := f.layout

	for _, mon := range l.Monitors() {
		wss := mon.Workspaces()
		if len(wss) == 0 {
			t.Fatalf("%s: monitor %s has no workspaces", step, mon.Output().Name)
		}
		// The trailing workspace is always empty.
		if wss[len(wss)-1].HasWindows() {
			t.Fatalf("%s: monitor %s trailing workspace has windows", step, mon.Output().Name)
		}

		for wsIdx, ws := range wss {
			sp := ws.Scrolling()
			for colIdx, col := range sp.Columns() {
				// Columns are never empty.
				if len(col.Tiles()) == 0 {
					t.Fatalf("%s: empty column %d on %s/%d", step, colIdx, mon.Output().Name, wsIdx)
				}

				// Fullscreen only for single-tile or tabbed columns.
				if col.IsPendingFullscreen() &&
					len(col.Tiles()) > 1 && col.DisplayMode() != layout.DisplayTabbed {
					t.Fatalf("%s: multi-tile normal column pending fullscreen", step)
				}

				checkColumnHeightFit(t, f, col, step)
			}

			// View offset target stays within the strip extended by a
			// view width on each side.
			if !sp.IsEmpty() {
				target := sp.TargetViewPos()
				stripW := 0.
				for _, col := range sp.Columns() {
					stripW += col.Width()
				}
				if target < -1300 || target > stripW+1300 {
					t.Fatalf("%s: view target %v far out of the strip [0, %v]", step, target, stripW)
				}
			}
		}
	}

	// The active window, when present, is on the active workspace of the
	// active monitor.
	if win, ok := l.ActiveWindow(); ok {
		ws, _ := l.ActiveWorkspace()
		if !ws.HasWindow(win.ID()) {
			t.Fatalf("%s: active window %q not on the active workspace", step, win.ID())
		}
	} else if ws, ok := l.ActiveWorkspace(); ok && ws.HasWindows() {
		t.Fatalf("%s: active workspace has windows but no active window", step)
	}

	// Requested sizes stay within the windows' min/max bounds.
	for id, w := range f.windows {
		if !l.HasWindow(id) {
			continue
		}
		size := w.size
		if req, ok := w.RequestedSize(); ok {
			size = req
		}
		if w.minSize.W > 0 && size.W < w.minSize.W-0.5 {
			t.Fatalf("%s: window %q width %v below min %v", step, id, size.W, w.minSize.W)
		}
		if w.maxSize.W > 0 && size.W > w.maxSize.W+0.5 {
			t.Fatalf("%s: window %q width %v above max %v", step, id, size.W, w.maxSize.W)
		}
		if w.minSize.H > 0 && size.H < w.minSize.H-0.5 {
			t.Fatalf("%s: window %q height %v below min %v", step, id, size.H, w.minSize.H)
		}
		if w.maxSize.H > 0 && size.H > w.maxSize.H+0.5 {
			t.Fatalf("%s: window %q height %v above max %v", step, id, size.H, w.maxSize.H)
		}
	}
}

// checkColumnHeightFit verifies that a normal column's requested heights
// plus gaps fit the working area, unless min heights force an overflow.
func checkColumnHeightFit(t *testing.T, f *fixture, col *layout.Column, step string) {
	t.Helper()
	if col.DisplayMode() == layout.DisplayTabbed ||
		col.IsPendingFullscreen() || col.IsPendingMaximized() {
		return
	}

	total := 0.
	minTotal := 0.
	for _, tile := range col.Tiles() {
		w := f.windows[tile.Window().ID()]
		h := w.size.H
		if req, ok := w.RequestedSize(); ok {
			h = req.H
		}
		total += h
		minTotal += math.Max(1, w.minSize.H)
	}

	const workingH = 720.
	if total > math.Max(minTotal, workingH)+0.5 {
		t.Fatalf("%s: column heights %v overflow the working area", step, total)
	}
}

// A seeded random walk over the operation set; every step must uphold the
// invariants.
func TestRandomOperationsUpholdInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(0x5eed))
	f := newFixture(testOptions())
	f.addOutput("out-1")

	nextWindow := 0
	var live []*TestWindow

	ops := []func() string{
		func() string {
			nextWindow++
			w := newTestWindow(nextWindow)
			if rng.Intn(4) == 0 {
				w.minSize.H = float64(100 + rng.Intn(300))
			}
			f.windows[w.id] = w
			live = append(live, w)
			f.layout.AddWindow(w, true, false)
			return fmt.Sprintf("add %s", w.id)
		},
		func() string {
			if len(live) == 0 {
				return "close noop"
			}
			i := rng.Intn(len(live))
			w := live[i]
			live = append(live[:i], live[i+1:]...)
			f.layout.RemoveWindow(w.id)
			delete(f.windows, w.id)
			return fmt.Sprintf("close %s", w.id)
		},
		func() string { (layout.FocusColumnLeft{}).Do(f.layout); return "focus left" },
		func() string { (layout.FocusColumnRight{}).Do(f.layout); return "focus right" },
		func() string { (layout.FocusWindowUp{}).Do(f.layout); return "focus up" },
		func() string { (layout.FocusWindowDown{}).Do(f.layout); return "focus down" },
		func() string { (layout.MoveColumnLeft{}).Do(f.layout); return "move column left" },
		func() string { (layout.MoveColumnRight{}).Do(f.layout); return "move column right" },
		func() string { (layout.MoveWindowUp{}).Do(f.layout); return "move window up" },
		func() string { (layout.MoveWindowDown{}).Do(f.layout); return "move window down" },
		func() string {
			(layout.ConsumeOrExpelWindowLeft{}).Do(f.layout)
			return "consume or expel left"
		},
		func() string {
			(layout.ConsumeOrExpelWindowRight{}).Do(f.layout)
			return "consume or expel right"
		},
		func() string { (layout.ConsumeWindowIntoColumn{}).Do(f.layout); return "consume into column" },
		func() string { (layout.ExpelWindowFromColumn{}).Do(f.layout); return "expel from column" },
		func() string { (layout.ToggleColumnTabbedDisplay{}).Do(f.layout); return "toggle tabbed" },
		func() string { (layout.MaximizeColumn{}).Do(f.layout); return "maximize" },
		func() string { (layout.SwitchPresetColumnWidth{}).Do(f.layout); return "preset width" },
		func() string { (layout.SwitchPresetWindowHeight{}).Do(f.layout); return "preset height" },
		func() string {
			(layout.SetWindowHeight{
				Change: layout.SizeChange{Kind: layout.AdjustFixedSize, Fixed: float64(rng.Intn(200) - 100)},
			}).Do(f.layout)
			return "adjust height"
		},
		func() string {
			(layout.SetColumnWidth{
				Change: layout.SizeChange{Kind: layout.AdjustProportionSize, Proportion: 0.1},
			}).Do(f.layout)
			return "adjust width"
		},
		func() string { (layout.FullscreenWindow{}).Do(f.layout); return "toggle fullscreen" },
		func() string { (layout.FocusWorkspaceUp{}).Do(f.layout); return "workspace up" },
		func() string { (layout.FocusWorkspaceDown{}).Do(f.layout); return "workspace down" },
		func() string { (layout.MoveWindowToWorkspaceDown{}).Do(f.layout); return "move to workspace down" },
		func() string { (layout.MoveWindowToWorkspaceUp{}).Do(f.layout); return "move to workspace up" },
		func() string { (layout.ToggleWindowFloating{}).Do(f.layout); return "toggle floating" },
		func() string { f.communicate(); return "communicate" },
		func() string { f.advance(16 * time.Millisecond); return "advance" },
		func() string { f.completeAnimations(); return "complete animations" },
	}

	for step := 0; step < 1500; step++ {
		name := ops[rng.Intn(len(ops))]()
		checkInvariants(t, f, fmt.Sprintf("step %d (%s)", step, name))
	}

	// Drain: close everything and verify the layout ends clean.
	for _, w := range live {
		f.layout.RemoveWindow(w.id)
		delete(f.windows, w.id)
		checkInvariants(t, f, fmt.Sprintf("drain %s", w.id))
	}
	f.completeAnimations()

	mon, _ := f.layout.ActiveMonitor()
	for _, ws := range mon.Workspaces() {
		if ws.HasWindows() {
			t.Fatal("windows remain after drain")
		}
	}
}

// Removing an unknown window panics: that's a programmer error, not an
// input error.
func TestRemoveUnknownWindowPanics(t *testing.T) {
	f := newFixture(testOptions())
	f.addOutput("out-1")

	defer func() {
		if recover() == nil {
			t.Error("expected a panic")
		}
	}()
	f.layout.RemoveWindow(window.ID("nope"))
}

// Invalid workspace references are typed errors, not panics.
func TestUnknownWorkspaceReference(t *testing.T) {
	f := newFixture(testOptions())
	f.addOutput("out-1")

	err := (layout.FocusWorkspace{Name: "missing"}).Do(f.layout)
	if err == nil {
		t.Fatal("expected an error")
	}
}
