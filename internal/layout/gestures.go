package layout

import (
	"math"
	"sort"
	"time"

	"github.com/Gaurav-Gosain/waveland/internal/animation"
	"github.com/Gaurav-Gosain/waveland/internal/config"
	"github.com/Gaurav-Gosain/waveland/internal/geometry"
)

// A full touchpad swipe moves the view by one working area width.
const viewGestureWorkingAreaMovement = 1200.

// ViewOffsetGestureBegin starts a view swipe. No-op while a resize is
// active.
func (sp *ScrollingSpace) ViewOffsetGestureBegin(isTouchpad bool) {
	if len(sp.columns) == 0 || sp.interactiveResize != nil {
		return
	}

	sp.viewOffset = viewOffset{
		kind: voGesture,
		gesture: &viewGesture{
			currentViewOffset:    sp.viewOffset.current(),
			tracker:              animation.NewSwipeTracker(),
			deltaFromTracker:     sp.viewOffset.current(),
			stationaryViewOffset: sp.viewOffset.stationary(),
			isTouchpad:           isTouchpad,
		},
	}
}

// DnDScrollGestureBegin starts the drag-and-drop edge scroll, which reuses
// the gesture state with time-based movement.
func (sp *ScrollingSpace) DnDScrollGestureBegin() {
	if sp.viewOffset.isDnDScroll() {
		return
	}

	sp.viewOffset = viewOffset{
		kind: voGesture,
		gesture: &viewGesture{
			currentViewOffset:    sp.viewOffset.current(),
			tracker:              animation.NewSwipeTracker(),
			deltaFromTracker:     sp.viewOffset.current(),
			stationaryViewOffset: sp.viewOffset.stationary(),
			isDnD:                true,
			dndLastEventTime:     sp.clock.NowUnadjusted(),
		},
	}
	sp.interactiveResize = nil
}

// ViewOffsetGestureUpdate feeds a swipe movement. Returns false when no
// matching gesture is active.
func (sp *ScrollingSpace) ViewOffsetGestureUpdate(deltaX float64, timestamp time.Duration, isTouchpad bool) bool {
	if !sp.viewOffset.isGesture() {
		return false
	}
	g := sp.viewOffset.gesture
	if g.isTouchpad != isTouchpad || g.isDnD {
		return false
	}

	g.tracker.Push(deltaX, timestamp)

	normFactor := 1.
	if g.isTouchpad {
		normFactor = sp.workingArea.Size.W / viewGestureWorkingAreaMovement
	}
	g.currentViewOffset = g.tracker.Pos()*normFactor + g.deltaFromTracker
	return true
}

// DnDScrollGestureScroll advances the DnD scroll by a normalized delta in
// [-1, 1]. Scrolling is delayed briefly after entering the edge band to
// avoid flicker when dragging across monitors.
func (sp *ScrollingSpace) DnDScrollGestureScroll(delta float64) bool {
	if !sp.viewOffset.isDnDScroll() {
		return false
	}
	g := sp.viewOffset.gesture
	cfg := &sp.opts.Gestures.DnDEdgeViewScroll

	now := sp.clock.NowUnadjusted()
	lastTime := g.dndLastEventTime
	g.dndLastEventTime = now

	if delta == 0 {
		// Outside the scrolling zone.
		g.hasDnDNonzeroStart = false
		return false
	}

	if !g.hasDnDNonzeroStart {
		g.dndNonzeroStartTime = now
		g.hasDnDNonzeroStart = true
	}
	if now-g.dndNonzeroStartTime < cfg.Delay {
		return true
	}

	timeDelta := (now - lastTime).Seconds()
	g.tracker.Push(delta*timeDelta*cfg.MaxSpeed, now)

	offset := g.tracker.Pos() + g.deltaFromTracker

	// Clamp so the view can't leave the strip by more than a view width.
	leftmost, rightmost := 0., 0.
	if len(sp.columns) > 0 {
		leftmost = -sp.workingArea.Size.W
		lastIdx := len(sp.columns) - 1
		rightmost = sp.columnX(lastIdx) + sp.columns[lastIdx].Width() - sp.workingArea.Loc.X

		activeX := sp.columnX(sp.activeColumnIdx)
		leftmost -= activeX
		rightmost -= activeX
	}
	minOffset := math.Min(leftmost, rightmost)
	maxOffset := math.Max(leftmost, rightmost)
	clamped := geometry.Clamp(offset, minOffset, maxOffset)

	g.deltaFromTracker += clamped - offset
	g.currentViewOffset = clamped
	return true
}

// snapPoint is a view position aligning a column with a canonical spot.
type snapPoint struct {
	// viewPos relative to x = 0 at the first column.
	viewPos float64
	colIdx  int
}

// ViewOffsetGestureEnd finishes a swipe: projects the decelerated end
// position, snaps to the nearest column boundary, picks the final active
// column by travel direction, and animates there with the gesture velocity.
func (sp *ScrollingSpace) ViewOffsetGestureEnd(isTouchpad bool, checkTouchpad bool) bool {
	if !sp.viewOffset.isGesture() {
		return false
	}
	g := sp.viewOffset.gesture
	if checkTouchpad && g.isTouchpad != isTouchpad {
		return false
	}

	// Account for idle time between the last event and now.
	now := sp.clock.NowUnadjusted()
	g.tracker.Push(0, now)

	normFactor := 1.
	if g.isTouchpad {
		normFactor = sp.workingArea.Size.W / viewGestureWorkingAreaMovement
	}
	velocity := g.tracker.Velocity() * normFactor
	currentViewOffset := g.tracker.Pos()*normFactor + g.deltaFromTracker

	if len(sp.columns) == 0 {
		sp.viewOffset = staticViewOffset(currentViewOffset)
		return true
	}

	endPos := g.tracker.ProjectedEndPos() * normFactor
	targetViewOffset := endPos + g.deltaFromTracker

	snaps := sp.snappingPoints()

	sort.Slice(snaps, func(i, j int) bool { return snaps[i].viewPos < snaps[j].viewPos })

	activeColX := sp.columnX(sp.activeColumnIdx)
	targetViewPos := activeColX + targetViewOffset
	best := snaps[0]
	for _, s := range snaps[1:] {
		if math.Abs(s.viewPos-targetViewPos) < math.Abs(best.viewPos-targetViewPos) {
			best = s
		}
	}

	newColIdx := best.colIdx

	if !sp.isCenteringFocusedColumn() {
		// Focus the furthest column towards the direction of travel
		// whose edges stay within the snapped view.
		if targetViewOffset >= g.currentViewOffset {
			for idx := newColIdx + 1; idx < len(sp.columns); idx++ {
				if !sp.columnFitsAtSnap(idx, best.viewPos) {
					break
				}
				newColIdx = idx
			}
		} else {
			for idx := newColIdx - 1; idx >= 0; idx-- {
				if !sp.columnStartsAtSnap(idx, best.viewPos) {
					break
				}
				newColIdx = idx
			}
		}
	}

	newColX := sp.columnX(newColIdx)
	delta := activeColX - newColX

	if sp.activeColumnIdx != newColIdx {
		sp.hasViewOffsetToRestore = false
	}
	sp.activeColumnIdx = newColIdx

	finalOffset := best.viewPos - newColX
	sp.viewOffset = viewOffset{
		kind: voAnimation,
		anim: animation.New(sp.clock, currentViewOffset+delta, finalOffset, velocity,
			sp.opts.Animations.HorizontalViewMovement),
	}

	// Deal with things like snapping to the right edge of a
	// larger-than-view column.
	sp.animateViewOffsetToColumn(sp.targetViewPos(), newColIdx, -1)

	return true
}

// DnDScrollGestureEnd finishes the DnD scroll. When nothing was scrolled,
// the view keeps its position instead of snapping.
func (sp *ScrollingSpace) DnDScrollGestureEnd() {
	if !sp.viewOffset.isGesture() {
		return
	}
	g := sp.viewOffset.gesture

	if g.isDnD && g.tracker.Pos() == 0 {
		sp.viewOffset = staticViewOffset(g.deltaFromTracker)
		if len(sp.columns) > 0 {
			// Make sure the active window remains on screen.
			sp.animateViewOffsetToColumn(sp.targetViewPos(), sp.activeColumnIdx, -1)
		}
		return
	}

	sp.ViewOffsetGestureEnd(false, false)
}

// snappingPoints builds the set of view positions the gesture can settle
// on.
func (sp *ScrollingSpace) snappingPoints() []snapPoint {
	var snaps []snapPoint
	gaps := sp.opts.Gaps

	if sp.isCenteringFocusedColumn() {
		colX := 0.
		for idx, col := range sp.columns {
			w := col.Width()
			mode := col.SizingMode()
			area := sp.workingArea
			if mode.IsMaximized() {
				area = sp.parentArea
			}
			leftStrut := area.Loc.X

			var pos float64
			switch {
			case mode.IsFullscreen():
				pos = colX
			case area.Size.W <= w:
				pos = colX - leftStrut
			default:
				pos = colX - (area.Size.W-w)/2 - leftStrut
			}
			snaps = append(snaps, snapPoint{viewPos: pos, colIdx: idx})
			colX += w + gaps
		}
		return snaps
	}

	viewWidth := sp.viewSize.W
	centerOnOverflow := sp.opts.CenterFocusedColumn == config.CenterOnOverflow

	// Left and right snap of one column, with the OnOverflow adjustment:
	// when the adjacent column would overflow, the snap becomes the
	// centered position instead.
	snapPair := func(colX float64, col *Column, prevW, nextW float64, hasPrev, hasNext bool) (left, right float64) {
		w := col.Width()
		mode := col.SizingMode()

		area := sp.workingArea
		if mode.IsMaximized() {
			area = sp.parentArea
		}
		leftStrut := area.Loc.X
		rightStrut := sp.viewSize.W - area.Size.W - area.Loc.X

		// Fullscreen columns align with the view, not the working
		// area.
		if mode.IsFullscreen() {
			return colX, colX + w
		}

		padding := 0.
		if !mode.IsMaximized() {
			padding = geometry.Clamp((area.Size.W-w)/2, 0, gaps)
		}

		var center float64
		if area.Size.W <= w {
			center = colX - leftStrut
		} else {
			center = colX - (area.Size.W-w)/2 - leftStrut
		}

		overflows := func(adjW float64, hasAdj bool) bool {
			return centerOnOverflow && hasAdj && adjW+3*gaps+w > area.Size.W
		}

		left = colX - padding - leftStrut
		if overflows(nextW, hasNext) {
			left = center
		}
		right = colX + w + padding + rightStrut
		if overflows(prevW, hasPrev) {
			right = center + viewWidth
		}
		return left, right
	}

	adjacentWidth := func(idx int) (float64, bool) {
		if idx < 0 || idx >= len(sp.columns) {
			return 0, false
		}
		return sp.columns[idx].Width(), true
	}

	// The first column's left snap and the last column's right snap
	// clamp the range so the gesture can't fling past the strip.
	firstNextW, firstHasNext := adjacentWidth(1)
	leftmost, _ := snapPair(0, sp.columns[0], 0, firstNextW, false, firstHasNext)

	lastIdx := len(sp.columns) - 1
	lastX := sp.columnX(lastIdx)
	lastPrevW, lastHasPrev := adjacentWidth(lastIdx - 1)
	_, lastRight := snapPair(lastX, sp.columns[lastIdx], lastPrevW, 0, lastHasPrev, false)
	rightmost := lastRight - viewWidth

	snaps = append(snaps,
		snapPoint{viewPos: leftmost, colIdx: 0},
		snapPoint{viewPos: rightmost, colIdx: lastIdx},
	)

	colX := 0.
	for idx, col := range sp.columns {
		prevW, hasPrev := adjacentWidth(idx - 1)
		nextW, hasNext := adjacentWidth(idx + 1)
		left, right := snapPair(colX, col, prevW, nextW, hasPrev, hasNext)

		if leftmost < left && left < rightmost {
			snaps = append(snaps, snapPoint{viewPos: left, colIdx: idx})
		}
		if r := right - viewWidth; leftmost < r && r < rightmost {
			snaps = append(snaps, snapPoint{viewPos: r, colIdx: idx})
		}

		colX += col.Width() + gaps
	}
	return snaps
}

// columnFitsAtSnap reports whether column idx ends within the view placed
// at the snap position.
func (sp *ScrollingSpace) columnFitsAtSnap(idx int, snapViewPos float64) bool {
	col := sp.columns[idx]
	colX := sp.columnX(idx)
	w := col.Width()
	mode := col.SizingMode()

	area := sp.workingArea
	if mode.IsMaximized() {
		area = sp.parentArea
	}
	leftStrut := area.Loc.X

	if mode.IsFullscreen() {
		return snapViewPos+sp.viewSize.W >= colX+w
	}
	padding := 0.
	if !mode.IsMaximized() {
		padding = geometry.Clamp((area.Size.W-w)/2, 0, sp.opts.Gaps)
	}
	return snapViewPos+leftStrut+area.Size.W >= colX+w+padding
}

// columnStartsAtSnap reports whether column idx begins within the view
// placed at the snap position.
func (sp *ScrollingSpace) columnStartsAtSnap(idx int, snapViewPos float64) bool {
	col := sp.columns[idx]
	colX := sp.columnX(idx)
	w := col.Width()
	mode := col.SizingMode()

	area := sp.workingArea
	if mode.IsMaximized() {
		area = sp.parentArea
	}
	leftStrut := area.Loc.X

	if mode.IsFullscreen() {
		return colX >= snapViewPos
	}
	padding := 0.
	if !mode.IsMaximized() {
		padding = geometry.Clamp((area.Size.W-w)/2, 0, sp.opts.Gaps)
	}
	return colX-padding >= snapViewPos+leftStrut
}
