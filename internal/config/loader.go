package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/pelletier/go-toml/v2"
)

// fileConfig is the on-disk TOML shape. It is kept separate from Options so
// the file format can stay stable while the in-memory form evolves.
type fileConfig struct {
	Layout struct {
		Gaps                     *float64 `toml:"gaps"`
		CenterFocusedColumn      string   `toml:"center_focused_column"`
		AlwaysCenterSingleColumn *bool    `toml:"always_center_single_column"`
		DefaultColumnWidth       string   `toml:"default_column_width"`
		PresetColumnWidths       []string `toml:"preset_column_widths"`
		PresetWindowHeights      []string `toml:"preset_window_heights"`
		Struts                   struct {
			Left   float64 `toml:"left"`
			Right  float64 `toml:"right"`
			Top    float64 `toml:"top"`
			Bottom float64 `toml:"bottom"`
		} `toml:"struts"`
	} `toml:"layout"`

	Border       ringFile `toml:"border"`
	FocusRing    ringFile `toml:"focus_ring"`
	TabIndicator struct {
		Off                   *bool    `toml:"off"`
		HideWhenSingleTab     *bool    `toml:"hide_when_single_tab"`
		PlaceWithinColumn     *bool    `toml:"place_within_column"`
		Width                 *float64 `toml:"width"`
		Gap                   *float64 `toml:"gap"`
		GapsBetweenTabs       *float64 `toml:"gaps_between_tabs"`
		LengthTotalProportion *float64 `toml:"length_total_proportion"`
		Position              string   `toml:"position"`
	} `toml:"tab_indicator"`

	Animations struct {
		Off      *bool    `toml:"off"`
		Slowdown *float64 `toml:"slowdown"`
	} `toml:"animations"`

	Gestures struct {
		DnDEdgeViewScroll struct {
			TriggerWidth *float64 `toml:"trigger_width"`
			DelayMs      *int     `toml:"delay_ms"`
			MaxSpeed     *float64 `toml:"max_speed"`
		} `toml:"dnd_edge_view_scroll"`
	} `toml:"gestures"`
}

type ringFile struct {
	Off           *bool    `toml:"off"`
	Width         *float64 `toml:"width"`
	ActiveColor   string   `toml:"active_color"`
	InactiveColor string   `toml:"inactive_color"`
}

// Path returns the config file location under the XDG config home.
func Path() (string, error) {
	return xdg.ConfigFile(filepath.Join("waveland", "config.toml"))
}

// Load reads the user config, falling back to defaults when the file does
// not exist. A malformed file is an error; partial configs overlay the
// defaults.
func Load() (*Options, error) {
	path, err := Path()
	if err != nil {
		return Default(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads a config file from an explicit path.
func LoadFrom(path string) (*Options, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	opts := Default()
	if err := fc.apply(opts); err != nil {
		return nil, fmt.Errorf("in %s: %w", path, err)
	}
	return opts, nil
}

func (fc *fileConfig) apply(o *Options) error {
	l := &fc.Layout
	if l.Gaps != nil {
		o.Gaps = *l.Gaps
	}
	switch strings.ToLower(l.CenterFocusedColumn) {
	case "":
	case "never":
		o.CenterFocusedColumn = CenterNever
	case "on-overflow":
		o.CenterFocusedColumn = CenterOnOverflow
	case "always":
		o.CenterFocusedColumn = CenterAlways
	default:
		return fmt.Errorf("unknown center_focused_column %q", l.CenterFocusedColumn)
	}
	if l.AlwaysCenterSingleColumn != nil {
		o.AlwaysCenterSingleColumn = *l.AlwaysCenterSingleColumn
	}
	if l.DefaultColumnWidth == "window" {
		// The window picks its own width.
		o.DefaultColumnWidth = nil
	} else if l.DefaultColumnWidth != "" {
		p, err := parsePreset(l.DefaultColumnWidth)
		if err != nil {
			return err
		}
		o.DefaultColumnWidth = &p
	}
	if len(l.PresetColumnWidths) > 0 {
		ps, err := parsePresets(l.PresetColumnWidths)
		if err != nil {
			return err
		}
		o.PresetColumnWidths = ps
	}
	if len(l.PresetWindowHeights) > 0 {
		ps, err := parsePresets(l.PresetWindowHeights)
		if err != nil {
			return err
		}
		o.PresetWindowHeights = ps
	}
	o.Struts = Struts{
		Left:   l.Struts.Left,
		Right:  l.Struts.Right,
		Top:    l.Struts.Top,
		Bottom: l.Struts.Bottom,
	}

	if err := fc.Border.apply(&o.Border); err != nil {
		return fmt.Errorf("border: %w", err)
	}
	if err := fc.FocusRing.apply(&o.FocusRing); err != nil {
		return fmt.Errorf("focus_ring: %w", err)
	}

	ti := &fc.TabIndicator
	if ti.Off != nil {
		o.TabIndicator.Off = *ti.Off
	}
	if ti.HideWhenSingleTab != nil {
		o.TabIndicator.HideWhenSingleTab = *ti.HideWhenSingleTab
	}
	if ti.PlaceWithinColumn != nil {
		o.TabIndicator.PlaceWithinColumn = *ti.PlaceWithinColumn
	}
	if ti.Width != nil {
		o.TabIndicator.Width = *ti.Width
	}
	if ti.Gap != nil {
		o.TabIndicator.Gap = *ti.Gap
	}
	if ti.GapsBetweenTabs != nil {
		o.TabIndicator.GapsBetweenTabs = *ti.GapsBetweenTabs
	}
	if ti.LengthTotalProportion != nil {
		o.TabIndicator.LengthTotalProportion = *ti.LengthTotalProportion
	}
	switch strings.ToLower(ti.Position) {
	case "":
	case "left":
		o.TabIndicator.Position = TabIndicatorLeft
	case "right":
		o.TabIndicator.Position = TabIndicatorRight
	case "top":
		o.TabIndicator.Position = TabIndicatorTop
	case "bottom":
		o.TabIndicator.Position = TabIndicatorBottom
	default:
		return fmt.Errorf("unknown tab_indicator position %q", ti.Position)
	}

	if fc.Animations.Off != nil && *fc.Animations.Off {
		o.DisableAnimations()
	}
	if fc.Animations.Slowdown != nil {
		o.Animations.Slowdown = *fc.Animations.Slowdown
	}

	dnd := &fc.Gestures.DnDEdgeViewScroll
	if dnd.TriggerWidth != nil {
		o.Gestures.DnDEdgeViewScroll.TriggerWidth = *dnd.TriggerWidth
	}
	if dnd.DelayMs != nil {
		o.Gestures.DnDEdgeViewScroll.Delay = time.Duration(*dnd.DelayMs) * time.Millisecond
	}
	if dnd.MaxSpeed != nil {
		o.Gestures.DnDEdgeViewScroll.MaxSpeed = *dnd.MaxSpeed
	}

	return nil
}

func (rf *ringFile) apply(r *RingConfig) error {
	if rf.Off != nil {
		r.Off = *rf.Off
	}
	if rf.Width != nil {
		r.Width = *rf.Width
	}
	if rf.ActiveColor != "" {
		c, err := colorful.Hex(rf.ActiveColor)
		if err != nil {
			return fmt.Errorf("active_color: %w", err)
		}
		r.ActiveColor = c
	}
	if rf.InactiveColor != "" {
		c, err := colorful.Hex(rf.InactiveColor)
		if err != nil {
			return fmt.Errorf("inactive_color: %w", err)
		}
		r.InactiveColor = c
	}
	return nil
}

func parsePresets(ss []string) ([]PresetSize, error) {
	out := make([]PresetSize, 0, len(ss))
	for _, s := range ss {
		p, err := parsePreset(s)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// parsePreset accepts "50%" for proportions and "640" or "640px" for fixed
// sizes.
func parsePreset(s string) (PresetSize, error) {
	s = strings.TrimSpace(s)
	if v, ok := strings.CutSuffix(s, "%"); ok {
		var p float64
		if _, err := fmt.Sscanf(v, "%g", &p); err != nil {
			return PresetSize{}, fmt.Errorf("bad preset %q", s)
		}
		return Proportion(p / 100), nil
	}
	v := strings.TrimSuffix(s, "px")
	var px float64
	if _, err := fmt.Sscanf(v, "%g", &px); err != nil {
		return PresetSize{}, fmt.Errorf("bad preset %q", s)
	}
	return Fixed(px), nil
}
