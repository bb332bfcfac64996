// Package animation provides the shared layout clock, animated values driven
// by easing and spring curves, and the swipe tracker used by view gestures.
package animation

import "time"

// clockSource is the single process-wide time store behind every Clock
// handle. The host sets the time once per frame; everything else reads it.
type clockSource struct {
	now time.Duration

	// Animation slowdown rate. 1 is normal speed, 2 is twice as slow,
	// 0 completes every animation instantly.
	rate float64
}

// Clock is a cheap-to-copy handle into a shared time source.
//
// Now returns the time adjusted by the configured animation slowdown and
// drives animations. NowUnadjusted returns wall-frame time and is used for
// gestures, where input must never be slowed down.
type Clock struct {
	src *clockSource
}

// NewClock returns a clock at time zero with no slowdown.
func NewClock() Clock {
	return Clock{src: &clockSource{rate: 1}}
}

// SetNow advances the shared time source. Called by the host once per frame
// before animations are advanced.
func (c Clock) SetNow(now time.Duration) {
	c.src.now = now
}

// SetRate sets the animation slowdown rate.
func (c Clock) SetRate(rate float64) {
	if rate < 0 {
		rate = 0
	}
	c.src.rate = rate
}

// Rate returns the current animation slowdown rate.
func (c Clock) Rate() float64 { return c.src.rate }

// Now returns the current time adjusted for the animation slowdown.
func (c Clock) Now() time.Duration {
	if c.src.rate == 0 {
		// Instant animations: report time far in the future so every
		// animation completes on its first query.
		return c.src.now + time.Hour*24
	}
	return time.Duration(float64(c.src.now) / c.src.rate)
}

// NowUnadjusted returns the current time ignoring the animation slowdown.
func (c Clock) NowUnadjusted() time.Duration {
	return c.src.now
}
