package animation

import "time"

// How far back the velocity estimate looks.
const swipeHistoryWindow = 150 * time.Millisecond

// Deceleration rate for projecting where a flick would land, matching the
// feel of touchpad kinetic scrolling.
const swipeDecelerationRate = 0.998

// SwipeTracker accumulates one-dimensional swipe deltas and estimates the
// gesture velocity from the recent event history.
type SwipeTracker struct {
	pos     float64
	history []swipeSample
}

type swipeSample struct {
	delta float64
	time  time.Duration
}

// NewSwipeTracker returns an empty tracker.
func NewSwipeTracker() *SwipeTracker {
	return &SwipeTracker{}
}

// Push records a movement delta at the given timestamp. Timestamps must be
// monotonically non-decreasing; out-of-order samples reset the history.
func (s *SwipeTracker) Push(delta float64, timestamp time.Duration) {
	if n := len(s.history); n > 0 && s.history[n-1].time > timestamp {
		s.history = s.history[:0]
	}

	s.pos += delta
	s.history = append(s.history, swipeSample{delta: delta, time: timestamp})

	// Trim samples older than the velocity window.
	cutoff := timestamp - swipeHistoryWindow
	first := 0
	for first < len(s.history) && s.history[first].time < cutoff {
		first++
	}
	s.history = s.history[first:]
}

// Pos returns the total accumulated movement.
func (s *SwipeTracker) Pos() float64 { return s.pos }

// Velocity estimates the current velocity in units per second from the
// recent history.
func (s *SwipeTracker) Velocity() float64 {
	if len(s.history) < 2 {
		return 0
	}

	first := s.history[0]
	last := s.history[len(s.history)-1]
	dt := (last.time - first.time).Seconds()
	if dt <= 0 {
		return 0
	}

	total := 0.
	// The first sample's delta happened before the window started.
	for _, sample := range s.history[1:] {
		total += sample.delta
	}
	return total / dt
}

// ProjectedEndPos returns where the gesture would stop if released now and
// left to decelerate.
func (s *SwipeTracker) ProjectedEndPos() float64 {
	v := s.Velocity()
	// Geometric series of per-millisecond decay steps.
	return s.pos + v*swipeDecelerationRate/(1-swipeDecelerationRate)/1000
}
