package animation_test

import (
	"math"
	"testing"
	"time"

	"github.com/Gaurav-Gosain/waveland/internal/animation"
)

func TestClockAdjustedRespectsSlowdown(t *testing.T) {
	clock := animation.NewClock()
	clock.SetNow(2 * time.Second)

	if got := clock.NowUnadjusted(); got != 2*time.Second {
		t.Errorf("unadjusted = %v, want 2s", got)
	}

	clock.SetRate(2)
	if got := clock.Now(); got != time.Second {
		t.Errorf("adjusted at 2x slowdown = %v, want 1s", got)
	}

	// Zero rate completes animations instantly.
	clock.SetRate(0)
	if clock.Now() <= 2*time.Second {
		t.Error("zero rate should report far-future time")
	}
}

func TestClockHandlesShareOneSource(t *testing.T) {
	clock := animation.NewClock()
	clone := clock
	clock.SetNow(time.Second)
	if clone.NowUnadjusted() != time.Second {
		t.Error("clone should observe the shared time")
	}
}

func TestAnimationEasingEndpoints(t *testing.T) {
	clock := animation.NewClock()
	a := animation.New(clock, 10, 20, 0, animation.Config{
		Duration: 100 * time.Millisecond,
		Easing:   animation.EaseOutCubic,
	})

	if got := a.Value(); got != 10 {
		t.Errorf("value at start = %v, want 10", got)
	}
	if a.IsDone() {
		t.Error("animation done at start")
	}

	clock.SetNow(50 * time.Millisecond)
	mid := a.Value()
	if mid <= 10 || mid >= 20 {
		t.Errorf("mid value = %v, want strictly between endpoints", mid)
	}

	clock.SetNow(time.Second)
	if got := a.Value(); got != 20 {
		t.Errorf("value at end = %v, want 20", got)
	}
	if !a.IsDone() {
		t.Error("animation should be done")
	}
}

func TestAnimationOffConfigCompletesImmediately(t *testing.T) {
	clock := animation.NewClock()
	a := animation.New(clock, 0, 100, 0, animation.Config{Off: true})
	if !a.IsDone() {
		t.Error("off animation should be done immediately")
	}
	if got := a.Value(); got != 100 {
		t.Errorf("off animation value = %v, want the endpoint", got)
	}
}

func TestAnimationOffsetShiftsEndpoints(t *testing.T) {
	clock := animation.NewClock()
	a := animation.New(clock, 0, 10, 0, animation.Config{Duration: 100 * time.Millisecond})
	a.Offset(5)
	if a.From() != 5 || a.To() != 15 {
		t.Errorf("offset endpoints = %v..%v, want 5..15", a.From(), a.To())
	}
}

func TestSpringSettlesAtRest(t *testing.T) {
	clock := animation.NewClock()
	spring := animation.DefaultSpring
	a := animation.New(clock, 100, 0, 0, animation.Config{Spring: &spring})

	clock.SetNow(10 * time.Second)
	if !a.IsDone() {
		t.Error("spring should settle within 10 seconds")
	}
	if got := a.Value(); got != 0 {
		t.Errorf("settled value = %v, want 0", got)
	}
}

func TestSpringClampedValueStaysInRange(t *testing.T) {
	clock := animation.NewClock()
	spring := animation.SpringParams{DampingRatio: 0.5, Stiffness: 800, Mass: 1, Epsilon: 0.0001}
	a := animation.New(clock, 100, 0, 0, animation.Config{Spring: &spring})

	for ms := 0; ms < 2000; ms += 16 {
		clock.SetNow(time.Duration(ms) * time.Millisecond)
		v := a.ClampedValue()
		if v < 0 || v > 100 {
			t.Fatalf("clamped value %v out of range at %dms", v, ms)
		}
	}
}

func TestSwipeTrackerAccumulatesPosition(t *testing.T) {
	tr := animation.NewSwipeTracker()
	tr.Push(10, 0)
	tr.Push(20, 10*time.Millisecond)
	tr.Push(-5, 20*time.Millisecond)

	if got := tr.Pos(); got != 25 {
		t.Errorf("pos = %v, want 25", got)
	}
}

func TestSwipeTrackerVelocity(t *testing.T) {
	tr := animation.NewSwipeTracker()
	// 10 units every 10ms -> 1000 units/s.
	for i := 0; i <= 10; i++ {
		tr.Push(10, time.Duration(i*10)*time.Millisecond)
	}

	v := tr.Velocity()
	if math.Abs(v-1000) > 50 {
		t.Errorf("velocity = %v, want about 1000", v)
	}

	if end := tr.ProjectedEndPos(); end <= tr.Pos() {
		t.Errorf("projected end %v should be past the current position %v", end, tr.Pos())
	}
}

func TestSwipeTrackerIdleKillsVelocity(t *testing.T) {
	tr := animation.NewSwipeTracker()
	tr.Push(100, 0)
	// A long pause, then the release sample.
	tr.Push(0, time.Second)

	if v := tr.Velocity(); v != 0 {
		t.Errorf("velocity after idle = %v, want 0", v)
	}
}

func TestEasingBounds(t *testing.T) {
	easings := []animation.Easing{
		animation.EaseLinear,
		animation.EaseOutCubic,
		animation.EaseOutExpo,
		animation.EaseInOutCubic,
	}
	for _, e := range easings {
		if got := e.Apply(0); math.Abs(got) > 1e-9 {
			t.Errorf("easing %d at 0 = %v, want 0", e, got)
		}
		if got := e.Apply(1); math.Abs(got-1) > 1e-9 {
			t.Errorf("easing %d at 1 = %v, want 1", e, got)
		}
	}
}
