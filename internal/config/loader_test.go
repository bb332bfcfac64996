package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Gaurav-Gosain/waveland/internal/config"
)

func TestDefaultOptions(t *testing.T) {
	opts := config.Default()

	if opts.Gaps <= 0 {
		t.Error("expected positive default gaps")
	}
	if opts.CenterFocusedColumn != config.CenterNever {
		t.Error("expected center_focused_column to default to never")
	}
	if len(opts.PresetColumnWidths) == 0 {
		t.Error("expected default preset column widths")
	}
	if opts.DefaultColumnWidth == nil {
		t.Error("expected a built-in default column width")
	}
	if opts.Animations.Slowdown != 1 {
		t.Errorf("default slowdown = %v, want 1", opts.Animations.Slowdown)
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFromMissingFileUsesDefaults(t *testing.T) {
	opts, err := config.LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if opts.Gaps != config.Default().Gaps {
		t.Error("expected default gaps")
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
[layout]
gaps = 8
center_focused_column = "on-overflow"
default_column_width = "66.667%"
preset_column_widths = ["25%", "50%", "75%"]

[layout.struts]
left = 10
top = 20

[border]
off = false
width = 2
active_color = "#ff0000"

[animations]
slowdown = 2.5

[gestures.dnd_edge_view_scroll]
trigger_width = 64
delay_ms = 250
max_speed = 2000
`)

	opts, err := config.LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}

	if opts.Gaps != 8 {
		t.Errorf("gaps = %v, want 8", opts.Gaps)
	}
	if opts.CenterFocusedColumn != config.CenterOnOverflow {
		t.Error("center_focused_column not applied")
	}
	if opts.DefaultColumnWidth == nil ||
		opts.DefaultColumnWidth.Kind != config.PresetProportion {
		t.Error("default_column_width not applied")
	}
	if len(opts.PresetColumnWidths) != 3 ||
		opts.PresetColumnWidths[0].Proportion != 0.25 {
		t.Errorf("preset widths = %+v", opts.PresetColumnWidths)
	}
	if opts.Struts.Left != 10 || opts.Struts.Top != 20 {
		t.Errorf("struts = %+v", opts.Struts)
	}
	if opts.Border.Off || opts.Border.Width != 2 {
		t.Errorf("border = %+v", opts.Border)
	}
	if opts.Animations.Slowdown != 2.5 {
		t.Errorf("slowdown = %v", opts.Animations.Slowdown)
	}
	dnd := opts.Gestures.DnDEdgeViewScroll
	if dnd.TriggerWidth != 64 || dnd.Delay != 250*time.Millisecond || dnd.MaxSpeed != 2000 {
		t.Errorf("dnd config = %+v", dnd)
	}
}

func TestLoadWindowChoosesWidth(t *testing.T) {
	path := writeConfig(t, `
[layout]
default_column_width = "window"
`)
	opts, err := config.LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if opts.DefaultColumnWidth != nil {
		t.Error("expected window-chooses default width")
	}
}

func TestLoadFixedPreset(t *testing.T) {
	path := writeConfig(t, `
[layout]
preset_column_widths = ["640px", "960"]
`)
	opts, err := config.LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(opts.PresetColumnWidths) != 2 {
		t.Fatalf("preset count = %d", len(opts.PresetColumnWidths))
	}
	for i, want := range []float64{640, 960} {
		p := opts.PresetColumnWidths[i]
		if p.Kind != config.PresetFixed || p.Fixed != want {
			t.Errorf("preset[%d] = %+v, want fixed %v", i, p, want)
		}
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	bad := []string{
		"[layout]\ncenter_focused_column = \"sometimes\"\n",
		"[layout]\npreset_column_widths = [\"huh\"]\n",
		"[border]\nactive_color = \"notacolor\"\n",
		"[tab_indicator]\nposition = \"diagonal\"\n",
		"gaps = {",
	}
	for _, content := range bad {
		path := writeConfig(t, content)
		if _, err := config.LoadFrom(path); err == nil {
			t.Errorf("config %q should have been rejected", content)
		}
	}
}

func TestAnimationsOff(t *testing.T) {
	path := writeConfig(t, "[animations]\noff = true\n")
	opts, err := config.LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if !opts.Animations.WindowOpen.Off || !opts.Animations.HorizontalViewMovement.Off {
		t.Error("animations should all be off")
	}
}

func TestTabIndicatorExtraSize(t *testing.T) {
	ti := config.Default().TabIndicator

	w, h := ti.ExtraSize(3, 1)
	if w != ti.Width+ti.Gap || h != 0 {
		t.Errorf("extra size = %v,%v, want %v,0", w, h, ti.Width+ti.Gap)
	}

	ti.Position = config.TabIndicatorTop
	w, h = ti.ExtraSize(3, 1)
	if w != 0 || h != ti.Width+ti.Gap {
		t.Errorf("top extra size = %v,%v", w, h)
	}

	ti.Off = true
	if w, h := ti.ExtraSize(3, 1); w != 0 || h != 0 {
		t.Errorf("off indicator extra size = %v,%v, want zero", w, h)
	}
}
