package layout_test

import (
	"math"
	"testing"
	"time"

	"github.com/Gaurav-Gosain/waveland/internal/config"
	"github.com/Gaurav-Gosain/waveland/internal/layout"
	"github.com/Gaurav-Gosain/waveland/internal/window"
)

// expectColumn is one column of an expected layout state.
type expectColumn struct {
	width layout.ColumnWidth
	tiles []expectTile
}

type expectTile struct {
	w, h float64
	id   window.ID
}

func checkState(t *testing.T, f *fixture, viewPos float64, activeColumn int, cols []expectColumn) {
	t.Helper()

	sp := f.activeScrolling()
	if got := sp.TargetViewPos(); math.Abs(got-viewPos) > 0.5 {
		t.Errorf("view position = %v, want %v", got, viewPos)
	}
	if got := sp.ActiveColumnIdx(); got != activeColumn {
		t.Errorf("active column = %d, want %d", got, activeColumn)
	}
	if got := len(sp.Columns()); got != len(cols) {
		t.Fatalf("column count = %d, want %d", got, len(cols))
	}

	for i, want := range cols {
		col := sp.Columns()[i]
		if got := col.StoredWidth(); got.Kind != want.width.Kind ||
			math.Abs(got.Proportion-want.width.Proportion) > 1e-9 ||
			math.Abs(got.Fixed-want.width.Fixed) > 0.5 {
			t.Errorf("column[%d] width = %+v, want %+v", i, got, want.width)
		}
		if got := len(col.Tiles()); got != len(want.tiles) {
			t.Fatalf("column[%d] tile count = %d, want %d", i, got, len(want.tiles))
		}
		for j, wantTile := range want.tiles {
			tile := col.Tiles()[j]
			size := tile.Window().Size()
			if math.Abs(size.W-wantTile.w) > 0.5 || math.Abs(size.H-wantTile.h) > 0.5 {
				t.Errorf("column[%d] tile[%d] size = %vx%v, want %vx%v",
					i, j, size.W, size.H, wantTile.w, wantTile.h)
			}
			if got := tile.Window().ID(); got != wantTile.id {
				t.Errorf("column[%d] tile[%d] id = %q, want %q", i, j, got, wantTile.id)
			}
		}
	}
}

// Two windows tile side by side at the default half-proportion width.
func TestTwoWindowsTileSideBySide(t *testing.T) {
	f := newFixture(testOptions())
	f.addOutput("out-1")
	f.addWindow(1)
	f.addWindow(2)
	f.communicate()
	f.completeAnimations()

	checkState(t, f, 0, 1, []expectColumn{
		{width: layout.ProportionWidth(0.5), tiles: []expectTile{{640, 720, "1"}}},
		{width: layout.ProportionWidth(0.5), tiles: []expectTile{{640, 720, "2"}}},
	})
}

// Maximizing the middle column of three window-sized columns fills the
// output and restores on the second toggle.
func TestMaximizeMiddleColumn(t *testing.T) {
	opts := testOptions()
	// Windows pick their own width.
	opts.DefaultColumnWidth = nil
	opts.PresetColumnWidths = []config.PresetSize{
		config.Proportion(1. / 3.),
		config.Proportion(1. / 2.),
		config.Proportion(2. / 3.),
	}

	f := newFixture(opts)
	f.addOutput("out-1")
	f.addWindow(1)
	f.addWindow(2)
	f.addWindow(3)
	f.communicate()
	f.completeAnimations()

	if err := (layout.FocusColumnLeft{}).Do(f.layout); err != nil {
		t.Fatal(err)
	}
	if err := (layout.MaximizeColumn{}).Do(f.layout); err != nil {
		t.Fatal(err)
	}
	f.communicate()
	f.completeAnimations()

	// The maximized column aligns with the output, so the view sits at
	// its left edge.
	checkState(t, f, 100, 1, []expectColumn{
		{width: layout.FixedWidth(100), tiles: []expectTile{{100, 720, "1"}}},
		{width: layout.FixedWidth(100), tiles: []expectTile{{1280, 720, "2"}}},
		{width: layout.FixedWidth(100), tiles: []expectTile{{100, 720, "3"}}},
	})

	if err := (layout.MaximizeColumn{}).Do(f.layout); err != nil {
		t.Fatal(err)
	}
	f.communicate()
	f.completeAnimations()

	checkState(t, f, 100, 1, []expectColumn{
		{width: layout.FixedWidth(100), tiles: []expectTile{{100, 720, "1"}}},
		{width: layout.FixedWidth(100), tiles: []expectTile{{100, 720, "2"}}},
		{width: layout.FixedWidth(100), tiles: []expectTile{{100, 720, "3"}}},
	})
}

// Fullscreening a window fills the output while the stored width stays.
func TestFullscreenWindow(t *testing.T) {
	f := newFixture(testOptions())
	f.addOutput("out-1")
	f.addWindow(1)
	f.communicate()
	f.completeAnimations()

	if err := (layout.FullscreenWindow{ID: "1", HaveID: true}).Do(f.layout); err != nil {
		t.Fatal(err)
	}
	f.communicate()
	f.completeAnimations()

	checkState(t, f, 0, 0, []expectColumn{
		{width: layout.ProportionWidth(0.5), tiles: []expectTile{{1280, 720, "1"}}},
	})

	sp := f.activeScrolling()
	if !sp.Columns()[0].IsPendingFullscreen() {
		t.Error("column should be pending fullscreen")
	}
	if !sp.Columns()[0].Tiles()[0].IsFullscreen() {
		t.Error("tile should have committed fullscreen")
	}
}

// Consume-left then expel-right restores the starting layout.
func TestConsumeThenExpelRoundTrip(t *testing.T) {
	f := newFixture(testOptions())
	f.addOutput("out-1")
	f.addWindow(1)
	f.addWindow(2)
	f.communicate()
	f.completeAnimations()

	if err := (layout.ConsumeOrExpelWindowLeft{ID: "2", HaveID: true}).Do(f.layout); err != nil {
		t.Fatal(err)
	}
	f.communicate()
	f.completeAnimations()

	sp := f.activeScrolling()
	if got := len(sp.Columns()); got != 1 {
		t.Fatalf("after consume: column count = %d, want 1", got)
	}
	if got := len(sp.Columns()[0].Tiles()); got != 2 {
		t.Fatalf("after consume: tile count = %d, want 2", got)
	}

	if err := (layout.ConsumeOrExpelWindowRight{ID: "2", HaveID: true}).Do(f.layout); err != nil {
		t.Fatal(err)
	}
	f.communicate()
	f.completeAnimations()

	checkState(t, f, 0, 1, []expectColumn{
		{width: layout.ProportionWidth(0.5), tiles: []expectTile{{640, 720, "1"}}},
		{width: layout.ProportionWidth(0.5), tiles: []expectTile{{640, 720, "2"}}},
	})
}

// A view gesture snaps to the nearest column boundary and schedules an
// animation ending exactly there.
func TestViewGestureSnaps(t *testing.T) {
	opts := testOptions()
	// The gesture must end in an animation.
	opts.Animations.HorizontalViewMovement = config.Default().Animations.HorizontalViewMovement

	f := newFixture(opts)
	f.addOutput("out-1")
	f.addWindow(1)
	f.addWindow(2)
	f.communicate()
	f.completeAnimations()

	sp := f.activeScrolling()

	sp.ViewOffsetGestureBegin(true)
	f.now += 50 * time.Millisecond
	f.clock.SetNow(f.now)

	// Drag by 30% of a column width, accounting for the touchpad
	// normalization factor.
	norm := 1280. / 1200.
	sp.ViewOffsetGestureUpdate(0.3*640/norm, f.now, true)

	f.now += 50 * time.Millisecond
	f.clock.SetNow(f.now)
	if !sp.ViewOffsetGestureEnd(true, true) {
		t.Fatal("gesture end not handled")
	}

	if !sp.IsViewOffsetAnimating() {
		t.Fatal("expected a view offset animation after gesture end")
	}
	// Both columns fit exactly, so the only reachable snap keeps the view
	// at the strip origin with the rightmost column focused.
	if got := sp.TargetViewPos(); math.Abs(got) > 0.5 {
		t.Errorf("snap view position = %v, want 0", got)
	}
	if got := sp.ActiveColumnIdx(); got != 1 {
		t.Errorf("active column = %d, want 1", got)
	}

	f.completeAnimations()
	if sp.IsViewOffsetAnimating() {
		t.Error("animation should have settled")
	}
}

// Toggling a window to floating and back returns it to the tiling layer.
func TestToggleFloatingRoundTrip(t *testing.T) {
	f := newFixture(testOptions())
	f.addOutput("out-1")
	f.addWindow(1)
	f.addWindow(2)
	f.communicate()

	ws, _ := f.layout.ActiveWorkspace()

	if err := (layout.ToggleWindowFloating{ID: "2", HaveID: true}).Do(f.layout); err != nil {
		t.Fatal(err)
	}
	f.communicate()
	if !ws.Floating().HasWindow("2") {
		t.Fatal("window 2 should be floating")
	}
	if ws.Scrolling().HasWindow("2") {
		t.Fatal("window 2 should have left the tiling layer")
	}

	if err := (layout.ToggleWindowFloating{ID: "2", HaveID: true}).Do(f.layout); err != nil {
		t.Fatal(err)
	}
	f.communicate()
	if !ws.Scrolling().HasWindow("2") {
		t.Fatal("window 2 should be tiled again")
	}
	if ws.Floating().HasWindow("2") {
		t.Fatal("window 2 should have left the floating layer")
	}
}

// Tabbed display toggles back to normal.
func TestTabbedDisplayRoundTrip(t *testing.T) {
	f := newFixture(testOptions())
	f.addOutput("out-1")
	f.addWindow(1)
	f.addWindow(2)
	f.communicate()

	sp := f.activeScrolling()
	(layout.ConsumeOrExpelWindowLeft{ID: "2", HaveID: true}).Do(f.layout)
	f.communicate()

	col := sp.Columns()[0]
	if col.DisplayMode() != layout.DisplayNormal {
		t.Fatal("expected normal display mode")
	}

	(layout.ToggleColumnTabbedDisplay{}).Do(f.layout)
	f.communicate()
	if col.DisplayMode() != layout.DisplayTabbed {
		t.Fatal("expected tabbed display mode")
	}

	(layout.ToggleColumnTabbedDisplay{}).Do(f.layout)
	f.communicate()
	if col.DisplayMode() != layout.DisplayNormal {
		t.Fatal("expected normal display mode restored")
	}
}
