// Package config holds the layout options and their TOML loader.
package config

import (
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/Gaurav-Gosain/waveland/internal/animation"
)

// CenterFocusedColumn controls when the view centers the focused column.
type CenterFocusedColumn int

const (
	// CenterNever fits the focused column into view without centering.
	CenterNever CenterFocusedColumn = iota
	// CenterOnOverflow centers only when the column plus its neighbour
	// don't fit.
	CenterOnOverflow
	// CenterAlways always centers the focused column.
	CenterAlways
)

// PresetKind distinguishes proportional and fixed preset sizes.
type PresetKind int

const (
	PresetProportion PresetKind = iota
	PresetFixed
)

// PresetSize is a named width or height cycled through by switch-preset
// actions.
type PresetSize struct {
	Kind       PresetKind
	Proportion float64
	Fixed      float64
}

// Proportion returns a proportional preset.
func Proportion(p float64) PresetSize {
	return PresetSize{Kind: PresetProportion, Proportion: p}
}

// Fixed returns a fixed-pixel preset.
func Fixed(px float64) PresetSize {
	return PresetSize{Kind: PresetFixed, Fixed: px}
}

// Struts reserve space at the output edges for panels.
type Struts struct {
	Left, Right, Top, Bottom float64
}

// RingConfig describes a border or focus ring.
type RingConfig struct {
	Off           bool
	Width         float64
	ActiveColor   colorful.Color
	ActiveAlpha   float64
	InactiveColor colorful.Color
	InactiveAlpha float64
}

// TabIndicatorPosition is the column edge the tab indicator sits on.
type TabIndicatorPosition int

const (
	TabIndicatorLeft TabIndicatorPosition = iota
	TabIndicatorRight
	TabIndicatorTop
	TabIndicatorBottom
)

// TabIndicatorConfig describes the tabbed-column indicator bar.
type TabIndicatorConfig struct {
	Off                   bool
	HideWhenSingleTab     bool
	PlaceWithinColumn     bool
	Width                 float64
	Gap                   float64
	GapsBetweenTabs       float64
	LengthTotalProportion float64
	Position              TabIndicatorPosition
	ActiveColor           colorful.Color
	ActiveAlpha           float64
	InactiveColor         colorful.Color
	InactiveAlpha         float64
}

// ExtraSize returns the width and height the indicator adds to a column of n
// tabs when placed outside the tiles.
func (t *TabIndicatorConfig) ExtraSize(nTabs int, scale float64) (w, h float64) {
	if t.Off || t.PlaceWithinColumn {
		return 0, 0
	}
	if t.HideWhenSingleTab && nTabs <= 1 {
		return 0, 0
	}
	extra := t.Width + t.Gap
	switch t.Position {
	case TabIndicatorTop, TabIndicatorBottom:
		return 0, extra
	default:
		return extra, 0
	}
}

// Animations configures every animated value in the layout.
type Animations struct {
	// Slowdown scales all animation durations; 0 disables animations.
	Slowdown float64

	HorizontalViewMovement animation.Config
	WindowMovement         animation.Config
	WindowOpen             animation.Config
	WindowClose            animation.Config
	WindowResize           animation.Config
	WorkspaceSwitch        animation.Config
}

// DnDEdgeViewScroll configures the drag-and-drop edge scrolling gesture.
type DnDEdgeViewScroll struct {
	// TriggerWidth is the edge band, in logical pixels, that activates
	// the scroll.
	TriggerWidth float64
	// Delay before a non-zero drag actually starts scrolling.
	Delay time.Duration
	// MaxSpeed in logical pixels per second at the very edge.
	MaxSpeed float64
}

// Gestures groups gesture tuning.
type Gestures struct {
	DnDEdgeViewScroll DnDEdgeViewScroll
}

// Options is the full set of configurable layout properties. A single value
// is shared (by pointer) across the whole layout tree.
type Options struct {
	Gaps   float64
	Struts Struts

	CenterFocusedColumn      CenterFocusedColumn
	AlwaysCenterSingleColumn bool

	// NewWindowsOpenRight inserts new columns right of the active one.
	NewWindowsOpenRight bool

	PresetColumnWidths []PresetSize
	DefaultColumnWidth *PresetSize
	PresetWindowHeights []PresetSize

	Border       RingConfig
	FocusRing    RingConfig
	TabIndicator TabIndicatorConfig

	Animations Animations
	Gestures   Gestures
}

// Default returns the options used when no config file is present.
func Default() *Options {
	active, _ := colorful.Hex("#7fc8ff")
	inactive, _ := colorful.Hex("#505050")
	ringActive, _ := colorful.Hex("#7fc8ff")
	ringInactive, _ := colorful.Hex("#353535")

	spring := animation.DefaultSpring
	defaultWidth := Proportion(0.5)

	return &Options{
		Gaps: 16,

		CenterFocusedColumn: CenterNever,
		NewWindowsOpenRight: true,

		// Nil means "window chooses": new columns take the window's
		// own width.
		DefaultColumnWidth: &defaultWidth,

		PresetColumnWidths: []PresetSize{
			Proportion(1. / 3.),
			Proportion(1. / 2.),
			Proportion(2. / 3.),
		},
		PresetWindowHeights: []PresetSize{
			Proportion(1. / 3.),
			Proportion(1. / 2.),
			Proportion(2. / 3.),
		},

		Border: RingConfig{
			Off:           true,
			Width:         4,
			ActiveColor:   active,
			ActiveAlpha:   1,
			InactiveColor: inactive,
			InactiveAlpha: 1,
		},
		FocusRing: RingConfig{
			Width:         4,
			ActiveColor:   ringActive,
			ActiveAlpha:   1,
			InactiveColor: ringInactive,
			InactiveAlpha: 1,
		},
		TabIndicator: TabIndicatorConfig{
			HideWhenSingleTab:     false,
			Width:                 4,
			Gap:                   5,
			GapsBetweenTabs:       0,
			LengthTotalProportion: 0.5,
			Position:              TabIndicatorLeft,
			ActiveColor:           ringActive,
			ActiveAlpha:           1,
			InactiveColor:         ringInactive,
			InactiveAlpha:         1,
		},

		Animations: Animations{
			Slowdown: 1,
			HorizontalViewMovement: animation.Config{
				Spring: &spring,
			},
			WindowMovement: animation.Config{
				Spring: &spring,
			},
			WindowOpen: animation.Config{
				Duration: 150 * time.Millisecond,
				Easing:   animation.EaseOutExpo,
			},
			WindowClose: animation.Config{
				Duration: 150 * time.Millisecond,
				Easing:   animation.EaseOutCubic,
			},
			WindowResize: animation.Config{
				Spring: &spring,
			},
			WorkspaceSwitch: animation.Config{
				Duration: 250 * time.Millisecond,
				Easing:   animation.EaseInOutCubic,
			},
		},

		Gestures: Gestures{
			DnDEdgeViewScroll: DnDEdgeViewScroll{
				TriggerWidth: 30,
				Delay:        100 * time.Millisecond,
				MaxSpeed:     1500,
			},
		},
	}
}

// DisableAnimations turns every animation off. Used by tests and the demo's
// --no-animations flag.
func (o *Options) DisableAnimations() {
	off := animation.Config{Off: true}
	o.Animations.HorizontalViewMovement = off
	o.Animations.WindowMovement = off
	o.Animations.WindowOpen = off
	o.Animations.WindowClose = off
	o.Animations.WindowResize = off
	o.Animations.WorkspaceSwitch = off
}
