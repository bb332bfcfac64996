package layout_test

import (
	"testing"

	"github.com/Gaurav-Gosain/waveland/internal/geometry"
	"github.com/Gaurav-Gosain/waveland/internal/layout"
	"github.com/Gaurav-Gosain/waveland/internal/window"
)

// wsShape is a comparable snapshot of one workspace's window order.
type wsShape struct {
	windows []window.ID
}

func monitorShapes(l *layout.Layout) map[string][]wsShape {
	out := map[string][]wsShape{}
	for _, mon := range l.Monitors() {
		var shapes []wsShape
		for _, ws := range mon.Workspaces() {
			var shape wsShape
			ws.Windows(func(w window.Window) {
				shape.windows = append(shape.windows, w.ID())
			})
			shapes = append(shapes, shape)
		}
		out[mon.Output().Name] = shapes
	}
	return out
}

func shapesEqual(a, b map[string][]wsShape) bool {
	if len(a) != len(b) {
		return false
	}
	for name, sa := range a {
		sb, ok := b[name]
		if !ok || len(sa) != len(sb) {
			return false
		}
		for i := range sa {
			if len(sa[i].windows) != len(sb[i].windows) {
				return false
			}
			for j := range sa[i].windows {
				if sa[i].windows[j] != sb[i].windows[j] {
					return false
				}
			}
		}
	}
	return true
}

// Disconnecting an output moves its workspaces to the primary; reconnecting
// brings them back in their original relative order with the trailing-empty
// invariant intact on both monitors.
func TestDisconnectReconnectRestoresWorkspaces(t *testing.T) {
	f := newFixture(testOptions())
	f.addOutput("out-1")
	f.addOutput("out-2")

	// Windows on out-1's workspaces.
	f.addWindow(1)
	f.communicate()
	mon := f.layout.Monitors()[0]
	mon.ActivateWorkspace(1)
	f.completeAnimations()
	f.addWindow(2)
	f.communicate()

	before := monitorShapes(f.layout)

	f.layout.RemoveOutput("out-1")

	// Everything lives on out-2 now.
	if got := len(f.layout.Monitors()); got != 1 {
		t.Fatalf("monitor count = %d, want 1", got)
	}
	mon2 := f.layout.Monitors()[0]
	if !mon2.HasWindow("1") || !mon2.HasWindow("2") {
		t.Fatal("windows should have migrated to out-2")
	}

	f.layout.AddOutput(layout.Output{Name: "out-1", Size: geometry.Sz(1280, 720), Scale: 1})

	after := monitorShapes(f.layout)
	if !shapesEqual(before, after) {
		t.Errorf("layout changed across disconnect/reconnect:\nbefore: %v\nafter: %v", before, after)
	}

	for _, mon := range f.layout.Monitors() {
		wss := mon.Workspaces()
		if len(wss) == 0 {
			t.Fatalf("monitor %s has no workspaces", mon.Output().Name)
		}
		if wss[len(wss)-1].HasWindows() {
			t.Errorf("monitor %s trailing workspace is not empty", mon.Output().Name)
		}
	}
}

// Windows added with no outputs land on a detached workspace and migrate to
// the first output that connects.
func TestNoOutputsMigration(t *testing.T) {
	f := newFixture(testOptions())

	f.addWindow(1)
	f.addWindow(2)
	if f.layout.HasOutputs() {
		t.Fatal("expected no outputs")
	}
	if !f.layout.HasWindow("1") || !f.layout.HasWindow("2") {
		t.Fatal("windows should live on the detached list")
	}

	f.addOutput("out-1")
	f.communicate()

	mon, ok := f.layout.ActiveMonitor()
	if !ok {
		t.Fatal("expected a monitor")
	}
	if !mon.HasWindow("1") || !mon.HasWindow("2") {
		t.Fatal("windows should have migrated to the new monitor")
	}
	wss := mon.Workspaces()
	if wss[len(wss)-1].HasWindows() {
		t.Error("trailing workspace should be empty")
	}
}

// Removing the last output parks all windows on the detached list; the
// layout keeps working without outputs.
func TestRemoveLastOutput(t *testing.T) {
	f := newFixture(testOptions())
	f.addOutput("out-1")
	f.addWindow(1)
	f.communicate()

	f.layout.RemoveOutput("out-1")
	if f.layout.HasOutputs() {
		t.Fatal("expected no outputs")
	}
	if !f.layout.HasWindow("1") {
		t.Fatal("window should survive on the detached list")
	}

	// And it comes back.
	f.addOutput("out-1")
	mon, _ := f.layout.ActiveMonitor()
	if !mon.HasWindow("1") {
		t.Fatal("window should be back on the reconnected output")
	}
}

// A modified workspace is re-stamped to its current output and no longer
// returns to its original output on reconnect.
func TestModifiedWorkspaceStaysPut(t *testing.T) {
	f := newFixture(testOptions())
	f.addOutput("out-1")
	f.addOutput("out-2")

	f.addWindow(1)
	f.communicate()

	f.layout.RemoveOutput("out-1")

	// Modify the migrated workspace on out-2: add another window to it.
	f.addWindow(2)
	f.communicate()

	f.layout.AddOutput(layout.Output{Name: "out-1", Size: geometry.Sz(1280, 720), Scale: 1})

	mon2 := f.layout.Monitors()[0]
	if !mon2.HasWindow("1") || !mon2.HasWindow("2") {
		t.Error("the modified workspace should have stayed on out-2")
	}
}
