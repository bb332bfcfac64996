package layout_test

import (
	"math"
	"testing"

	"github.com/Gaurav-Gosain/waveland/internal/geometry"
	"github.com/Gaurav-Gosain/waveland/internal/layout"
)

// stackThree builds one column holding windows 1, 2, 3 top to bottom.
func stackThree(f *fixture) {
	f.addWindow(1)
	f.addWindow(2)
	f.addWindow(3)
	f.communicate()

	(layout.ConsumeOrExpelWindowLeft{ID: "2", HaveID: true}).Do(f.layout)
	(layout.ConsumeOrExpelWindowLeft{ID: "3", HaveID: true}).Do(f.layout)
	f.communicate()
	f.completeAnimations()
}

func TestHeightDistributionEvenSplit(t *testing.T) {
	f := newFixture(testOptions())
	f.addOutput("out-1")
	stackThree(f)

	sp := f.activeScrolling()
	if got := len(sp.Columns()); got != 1 {
		t.Fatalf("column count = %d, want 1", got)
	}
	col := sp.Columns()[0]
	if got := len(col.Tiles()); got != 3 {
		t.Fatalf("tile count = %d, want 3", got)
	}

	for i, tile := range col.Tiles() {
		h := tile.Window().Size().H
		if math.Abs(h-240) > 0.5 {
			t.Errorf("tile[%d] height = %v, want 240", i, h)
		}
	}
}

// A tile whose min height exceeds its even share is pinned to the min and
// the rest is redistributed.
func TestHeightDistributionRespectsMinHeight(t *testing.T) {
	f := newFixture(testOptions())
	f.addOutput("out-1")

	f.addWindow(1)
	w2 := f.addWindow(2)
	w2.minSize = geometry.Sz(0, 400)
	f.addWindow(3)
	f.communicate()

	(layout.ConsumeOrExpelWindowLeft{ID: "2", HaveID: true}).Do(f.layout)
	(layout.ConsumeOrExpelWindowLeft{ID: "3", HaveID: true}).Do(f.layout)
	f.communicate()
	f.completeAnimations()

	col := f.activeScrolling().Columns()[0]
	heights := map[string]float64{}
	for _, tile := range col.Tiles() {
		heights[string(tile.Window().ID())] = tile.Window().Size().H
	}

	if math.Abs(heights["2"]-400) > 0.5 {
		t.Errorf("constrained tile height = %v, want 400", heights["2"])
	}
	if math.Abs(heights["1"]-160) > 0.5 || math.Abs(heights["3"]-160) > 0.5 {
		t.Errorf("auto tiles = %v / %v, want 160 each", heights["1"], heights["3"])
	}
}

// An exact-size window (min == max) is forced to that height.
func TestHeightDistributionExactSizeDialog(t *testing.T) {
	f := newFixture(testOptions())
	f.addOutput("out-1")

	f.addWindow(1)
	w2 := f.addWindow(2)
	w2.minSize = geometry.Sz(0, 200)
	w2.maxSize = geometry.Sz(0, 200)
	f.communicate()

	(layout.ConsumeOrExpelWindowLeft{ID: "2", HaveID: true}).Do(f.layout)
	f.communicate()
	f.completeAnimations()

	col := f.activeScrolling().Columns()[0]
	for _, tile := range col.Tiles() {
		h := tile.Window().Size().H
		switch tile.Window().ID() {
		case "2":
			if math.Abs(h-200) > 0.5 {
				t.Errorf("dialog height = %v, want 200", h)
			}
		case "1":
			if math.Abs(h-520) > 0.5 {
				t.Errorf("auto tile height = %v, want 520", h)
			}
		}
	}
}

// In tabbed mode all tiles share one size.
func TestTabbedModeEqualSizes(t *testing.T) {
	f := newFixture(testOptions())
	f.addOutput("out-1")
	stackThree(f)

	(layout.ToggleColumnTabbedDisplay{}).Do(f.layout)
	f.communicate()
	f.completeAnimations()

	col := f.activeScrolling().Columns()[0]
	if col.DisplayMode() != layout.DisplayTabbed {
		t.Fatal("expected tabbed display mode")
	}

	first := col.Tiles()[0].Window().Size()
	for i, tile := range col.Tiles() {
		size := tile.Window().Size()
		if size != first {
			t.Errorf("tile[%d] size = %v, want %v", i, size, first)
		}
	}
	if math.Abs(first.H-720) > 0.5 {
		t.Errorf("tabbed height = %v, want 720", first.H)
	}
}

// Setting a window height commits it as fixed and clamps against the other
// tiles' min heights.
func TestSetWindowHeightClamps(t *testing.T) {
	f := newFixture(testOptions())
	f.addOutput("out-1")

	f.addWindow(1)
	w2 := f.addWindow(2)
	w2.minSize = geometry.Sz(0, 300)
	f.communicate()

	(layout.ConsumeOrExpelWindowLeft{ID: "2", HaveID: true}).Do(f.layout)
	f.communicate()

	// Ask window 1 for more height than the column can give it.
	(layout.SetWindowHeight{
		ID: "1", HaveID: true,
		Change: layout.SizeChange{Kind: layout.SetFixedSize, Fixed: 700},
	}).Do(f.layout)
	f.communicate()
	f.completeAnimations()

	col := f.activeScrolling().Columns()[0]
	for _, tile := range col.Tiles() {
		h := tile.Window().Size().H
		switch tile.Window().ID() {
		case "1":
			// 720 minus window 2's min height.
			if math.Abs(h-420) > 0.5 {
				t.Errorf("window 1 height = %v, want 420", h)
			}
		case "2":
			if h < 300-0.5 {
				t.Errorf("window 2 height = %v, below its min 300", h)
			}
		}
	}
}

// Toggling the column width cycles through the presets.
func TestToggleWidthCyclesPresets(t *testing.T) {
	f := newFixture(testOptions())
	f.addOutput("out-1")
	f.addWindow(1)
	f.communicate()

	sp := f.activeScrolling()
	col := sp.Columns()[0]

	// Current width is 640 (half); the first larger preset is 2/3.
	(layout.SwitchPresetColumnWidth{}).Do(f.layout)
	f.communicate()
	f.completeAnimations()
	wantW := math.Floor((1280.) * 2. / 3.)
	if got := col.Tiles()[0].Window().Size().W; math.Abs(got-wantW) > 1 {
		t.Errorf("width after first toggle = %v, want %v", got, wantW)
	}

	// Wraps to the first preset.
	(layout.SwitchPresetColumnWidth{}).Do(f.layout)
	f.communicate()
	f.completeAnimations()
	wantW = math.Floor((1280.) / 3.)
	if got := col.Tiles()[0].Window().Size().W; math.Abs(got-wantW) > 1 {
		t.Errorf("width after second toggle = %v, want %v", got, wantW)
	}
}

// Maximize twice restores the previous width.
func TestMaximizeRoundTrip(t *testing.T) {
	f := newFixture(testOptions())
	f.addOutput("out-1")
	f.addWindow(1)
	f.communicate()

	col := f.activeScrolling().Columns()[0]

	(layout.MaximizeColumn{}).Do(f.layout)
	f.communicate()
	f.completeAnimations()
	if got := col.Tiles()[0].Window().Size().W; math.Abs(got-1280) > 0.5 {
		t.Errorf("maximized width = %v, want 1280", got)
	}
	if !col.IsPendingMaximized() {
		t.Error("column should be pending maximized")
	}

	(layout.MaximizeColumn{}).Do(f.layout)
	f.communicate()
	f.completeAnimations()
	if got := col.Tiles()[0].Window().Size().W; math.Abs(got-640) > 0.5 {
		t.Errorf("restored width = %v, want 640", got)
	}
	if col.IsPendingMaximized() {
		t.Error("column should no longer be pending maximized")
	}
}

// Fullscreen round trip through acknowledgement restores the committed
// flag.
func TestFullscreenRoundTrip(t *testing.T) {
	f := newFixture(testOptions())
	f.addOutput("out-1")
	f.addWindow(1)
	f.communicate()

	(layout.FullscreenWindow{ID: "1", HaveID: true}).Do(f.layout)
	f.communicate()
	f.completeAnimations()

	tile := f.activeScrolling().Columns()[0].Tiles()[0]
	if !tile.IsFullscreen() {
		t.Fatal("tile should be fullscreen after ack")
	}

	(layout.FullscreenWindow{ID: "1", HaveID: true}).Do(f.layout)
	f.communicate()
	f.completeAnimations()

	if tile.IsFullscreen() {
		t.Fatal("tile should have left fullscreen after ack")
	}
	if got := tile.Window().Size(); math.Abs(got.W-640) > 0.5 {
		t.Errorf("restored width = %v, want 640", got.W)
	}
}
