// Package window defines the contract between the layout engine and the
// surface backend. The engine is written against this interface only; tests
// drive it with a purely logical implementation.
package window

import (
	"time"

	"github.com/Gaurav-Gosain/waveland/internal/geometry"
	"github.com/Gaurav-Gosain/waveland/internal/transaction"
)

// ID is an opaque stable identifier for a mapped window, unique for the
// window's lifetime.
type ID string

// Serial identifies a configure sent to a window. The client echoes it back
// when acknowledging.
type Serial uint64

// ConfigureIntent describes whether a window wants its pending state
// flushed. Throttled exists to avoid flooding clients with configures.
type ConfigureIntent int

const (
	ConfigureNotNeeded ConfigureIntent = iota
	ConfigureCanSend
	ConfigureThrottled
	ConfigureShouldSend
)

// BlockOutFrom says which render targets should see a solid quad instead of
// the window contents.
type BlockOutFrom int

const (
	BlockOutNever BlockOutFrom = iota
	BlockOutScreencast
	BlockOutScreenCapture
)

// ResolvedRules are the window-rule properties the layout engine consumes.
type ResolvedRules struct {
	// Opacity of the whole tile; 0 means unset (fully opaque).
	Opacity float64

	// BorderOff suppresses the tile border for this window.
	BorderOff bool

	// DrawBorderWithBackground, when set, overrides the server-side
	// decoration heuristic.
	DrawBorderWithBackground *bool

	// GeometryCornerRadius clips the window to rounded corners.
	GeometryCornerRadius float64

	// ClipToGeometry clips the surface to its visual geometry.
	ClipToGeometry bool

	// BlockOutFrom hides the contents from screencasts or captures.
	BlockOutFrom BlockOutFrom
}

// EffectiveOpacity returns the rule opacity with the unset sentinel applied.
func (r *ResolvedRules) EffectiveOpacity() float64 {
	if r.Opacity <= 0 {
		return 1
	}
	if r.Opacity > 1 {
		return 1
	}
	return r.Opacity
}

// Window is the capability set the layout engine needs from a mapped
// toplevel. Sizes are integer logical pixels reported as float64 for
// arithmetic convenience; a zero min/max dimension means "no limit".
type Window interface {
	ID() ID

	// Size is the last committed window geometry size.
	Size() geometry.Size

	// RequestedSize is the size from the last request, if any.
	RequestedSize() (geometry.Size, bool)

	// ExpectedSize is the size that a pending acknowledgement will commit
	// to, if one is in flight.
	ExpectedSize() (geometry.Size, bool)

	MinSize() geometry.Size
	MaxSize() geometry.Size

	IsFullscreen() bool

	// HasSSD reports whether the window draws server-side decorations.
	HasSSD() bool

	// RequestSize issues a configure for the given size. The transaction,
	// when non-zero, groups this configure with others that must become
	// visible together.
	RequestSize(size geometry.Size, animate bool, txn transaction.Transaction) Serial

	// RequestFullscreen issues a fullscreen configure at the given size.
	RequestFullscreen(size geometry.Size)

	ConfigureIntent() ConfigureIntent
	SendPendingConfigure()

	// TakeAnimationSnapshot returns the pre-commit size when the last
	// commit changed the window in a way worth animating.
	TakeAnimationSnapshot() (geometry.Size, bool)

	Rules() *ResolvedRules

	// IsInInputRegion tests a point in window-local coordinates.
	IsInInputRegion(p geometry.Point) bool

	// SetActivated toggles the surface-activated flag.
	SetActivated(active bool)

	// SendFrameCallback asks the surface to draw its next frame.
	SendFrameCallback(t time.Duration)

	// OutputEnter and OutputLeave notify the surface of output membership.
	// Both are idempotent.
	OutputEnter(output string)
	OutputLeave(output string)
}
