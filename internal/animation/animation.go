package animation

import "time"

// Config describes how an animated value should move. A zero Config is a
// sensible easing animation; Off disables movement entirely.
type Config struct {
	Off      bool
	Duration time.Duration
	Easing   Easing
	// Spring, when set, drives the animation instead of Duration/Easing.
	Spring *SpringParams
}

// Animation is a value moving from one endpoint to another. It holds a clone
// of the shared clock and reads the current time on every query, so there is
// no explicit advance step.
type Animation struct {
	clock     Clock
	from, to  float64
	startTime time.Duration
	duration  time.Duration
	easing    Easing
	spring    *Spring
	off       bool
}

// New starts an animation from one value to another. initialVelocity (value
// units per second) only affects spring-driven animations.
func New(clock Clock, from, to, initialVelocity float64, cfg Config) *Animation {
	a := &Animation{
		clock:     clock,
		from:      from,
		to:        to,
		startTime: clock.Now(),
		duration:  cfg.Duration,
		easing:    cfg.Easing,
		off:       cfg.Off,
	}

	if cfg.Off {
		a.duration = 0
		return a
	}

	if cfg.Spring != nil {
		// Normalize velocity to the spring's unit displacement.
		norm := 0.
		if d := from - to; d != 0 {
			norm = initialVelocity / d
		}
		s := Spring{Params: *cfg.Spring, InitialVelocity: norm}
		a.spring = &s
		a.duration = s.Duration()
	} else if a.duration <= 0 {
		a.duration = 250 * time.Millisecond
	}

	return a
}

// From returns the starting value.
func (a *Animation) From() float64 { return a.from }

// To returns the endpoint value.
func (a *Animation) To() float64 { return a.to }

// Clock returns the clock handle driving this animation.
func (a *Animation) Clock() Clock { return a.clock }

// Offset shifts both endpoints by delta without disturbing progress.
func (a *Animation) Offset(delta float64) {
	a.from += delta
	a.to += delta
}

// Value returns the current value. Spring values may overshoot the endpoint;
// use ClampedValue where overshoot is not acceptable.
func (a *Animation) Value() float64 {
	elapsed := a.clock.Now() - a.startTime

	if a.spring != nil {
		if elapsed >= a.duration {
			return a.to
		}
		return a.to + (a.from-a.to)*a.spring.Value(elapsed)
	}

	if a.duration <= 0 || elapsed >= a.duration {
		return a.to
	}
	if elapsed < 0 {
		return a.from
	}
	t := float64(elapsed) / float64(a.duration)
	return a.from + (a.to-a.from)*a.easing.Apply(t)
}

// ClampedValue returns the current value clamped between the endpoints.
func (a *Animation) ClampedValue() float64 {
	v := a.Value()
	lo, hi := a.from, a.to
	if lo > hi {
		lo, hi = hi, lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// IsDone reports whether the animation has reached its endpoint.
func (a *Animation) IsDone() bool {
	return a.clock.Now()-a.startTime >= a.duration
}

// Restarted returns a new animation with the same configuration but new
// endpoints, starting now.
func (a *Animation) Restarted(from, to, initialVelocity float64) *Animation {
	cfg := Config{
		Off:      a.off,
		Duration: a.duration,
		Easing:   a.easing,
	}
	if a.spring != nil {
		p := a.spring.Params
		cfg.Spring = &p
		cfg.Duration = 0
	}
	return New(a.clock, from, to, initialVelocity, cfg)
}
