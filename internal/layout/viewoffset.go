package layout

import (
	"time"

	"github.com/Gaurav-Gosain/waveland/internal/animation"
)

// viewOffsetKind tags the view offset state machine.
type viewOffsetKind int

const (
	voStatic viewOffsetKind = iota
	voAnimation
	voGesture
)

// viewOffset is the horizontal scroll position of a scrolling space,
// expressed relative to the active column's left edge. It is either at
// rest, animating, or driven by a gesture.
type viewOffset struct {
	kind    viewOffsetKind
	static  float64
	anim    *animation.Animation
	gesture *viewGesture
}

// viewGesture is the live state of a view-offset swipe or DnD scroll.
type viewGesture struct {
	currentViewOffset float64
	tracker           *animation.SwipeTracker

	// deltaFromTracker maps tracker positions onto view offsets, so a
	// gesture picks up from wherever the view was.
	deltaFromTracker float64

	// stationaryViewOffset is the offset the gesture started from.
	stationaryViewOffset float64

	isTouchpad bool

	// DnD edge scrolling reuses the gesture state; these fields are only
	// set for it.
	dndLastEventTime    time.Duration
	isDnD               bool
	dndNonzeroStartTime time.Duration
	hasDnDNonzeroStart  bool
}

func staticViewOffset(v float64) viewOffset {
	return viewOffset{kind: voStatic, static: v}
}

func (v *viewOffset) current() float64 {
	switch v.kind {
	case voAnimation:
		return v.anim.Value()
	case voGesture:
		return v.gesture.currentViewOffset
	default:
		return v.static
	}
}

// target is the endpoint the offset is heading towards. Gestures have no
// endpoint, so their current position is the target.
func (v *viewOffset) target() float64 {
	switch v.kind {
	case voAnimation:
		return v.anim.To()
	case voGesture:
		return v.gesture.currentViewOffset
	default:
		return v.static
	}
}

// stationary is the last at-rest offset.
func (v *viewOffset) stationary() float64 {
	switch v.kind {
	case voAnimation:
		return v.anim.To()
	case voGesture:
		return v.gesture.stationaryViewOffset
	default:
		return v.static
	}
}

// offsetBy shifts the whole state by delta. Used when the active column
// changes so the offset stays relative to the new column.
func (v *viewOffset) offsetBy(delta float64) {
	switch v.kind {
	case voAnimation:
		v.anim.Offset(delta)
	case voGesture:
		v.gesture.deltaFromTracker += delta
		v.gesture.currentViewOffset += delta
		v.gesture.stationaryViewOffset += delta
	default:
		v.static += delta
	}
}

func (v *viewOffset) isGesture() bool { return v.kind == voGesture }

func (v *viewOffset) isAnimation() bool { return v.kind == voAnimation }

func (v *viewOffset) isDnDScroll() bool {
	return v.kind == voGesture && v.gesture.isDnD
}

// settleIfDone replaces a finished animation with its endpoint.
func (v *viewOffset) settleIfDone() {
	if v.kind == voAnimation && v.anim.IsDone() {
		*v = staticViewOffset(v.anim.To())
	}
}

// stop freezes the offset at its current value, cancelling any animation or
// gesture.
func (v *viewOffset) stop() {
	*v = staticViewOffset(v.current())
}
