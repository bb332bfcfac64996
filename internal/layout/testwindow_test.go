package layout_test

import (
	"fmt"
	"time"

	"github.com/Gaurav-Gosain/waveland/internal/animation"
	"github.com/Gaurav-Gosain/waveland/internal/config"
	"github.com/Gaurav-Gosain/waveland/internal/geometry"
	"github.com/Gaurav-Gosain/waveland/internal/layout"
	"github.com/Gaurav-Gosain/waveland/internal/transaction"
	"github.com/Gaurav-Gosain/waveland/internal/window"
)

// TestWindow is a purely logical window: it records size requests and
// commits them when the test "communicates", mimicking a well-behaved
// client's configure/ack round trip.
type TestWindow struct {
	id window.ID

	size       geometry.Size
	minSize    geometry.Size
	maxSize    geometry.Size
	requested  geometry.Size
	hasRequest bool
	fullscreen bool
	wantsFS    bool

	pendingTxn transaction.Transaction

	snapshotSize geometry.Size
	hasSnapshot  bool

	serial  window.Serial
	rules   window.ResolvedRules
	outputs map[string]bool
}

func newTestWindow(n int) *TestWindow {
	return &TestWindow{
		id:      window.ID(fmt.Sprintf("%d", n)),
		size:    geometry.Sz(100, 100),
		outputs: map[string]bool{},
	}
}

// communicate commits the pending configure, like a client acking it.
func (w *TestWindow) communicate() bool {
	if !w.hasRequest {
		return false
	}
	w.snapshotSize = w.size
	w.hasSnapshot = true
	w.size = w.requested
	w.fullscreen = w.wantsFS
	w.hasRequest = false
	if !w.pendingTxn.IsZero() {
		w.pendingTxn.NotifyAck()
		w.pendingTxn = transaction.Transaction{}
	}
	return true
}

func (w *TestWindow) ID() window.ID       { return w.id }
func (w *TestWindow) Size() geometry.Size { return w.size }

func (w *TestWindow) RequestedSize() (geometry.Size, bool) { return w.requested, w.hasRequest }

func (w *TestWindow) ExpectedSize() (geometry.Size, bool) {
	if w.hasRequest {
		return w.requested, true
	}
	return geometry.Size{}, false
}

func (w *TestWindow) MinSize() geometry.Size { return w.minSize }
func (w *TestWindow) MaxSize() geometry.Size { return w.maxSize }

func (w *TestWindow) IsFullscreen() bool { return w.fullscreen }
func (w *TestWindow) HasSSD() bool       { return false }

func (w *TestWindow) RequestSize(size geometry.Size, animate bool, txn transaction.Transaction) window.Serial {
	w.requested = size
	w.hasRequest = true
	w.wantsFS = false
	w.pendingTxn = txn
	w.serial++
	return w.serial
}

func (w *TestWindow) RequestFullscreen(size geometry.Size) {
	w.requested = size
	w.hasRequest = true
	w.wantsFS = true
	w.serial++
}

func (w *TestWindow) ConfigureIntent() window.ConfigureIntent {
	if w.hasRequest {
		return window.ConfigureShouldSend
	}
	return window.ConfigureNotNeeded
}

func (w *TestWindow) SendPendingConfigure() {}

func (w *TestWindow) TakeAnimationSnapshot() (geometry.Size, bool) {
	if !w.hasSnapshot {
		return geometry.Size{}, false
	}
	w.hasSnapshot = false
	return w.snapshotSize, true
}

func (w *TestWindow) Rules() *window.ResolvedRules { return &w.rules }

func (w *TestWindow) IsInInputRegion(p geometry.Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < w.size.W && p.Y < w.size.H
}

func (w *TestWindow) SetActivated(bool)               {}
func (w *TestWindow) SendFrameCallback(time.Duration) {}

func (w *TestWindow) OutputEnter(name string) { w.outputs[name] = true }
func (w *TestWindow) OutputLeave(name string) { delete(w.outputs, name) }

// Test fixture shared by the layout tests.

type fixture struct {
	layout  *layout.Layout
	clock   animation.Clock
	windows map[window.ID]*TestWindow
	now     time.Duration
}

// testOptions is the scenario baseline: no gaps, no animations.
func testOptions() *config.Options {
	opts := config.Default()
	opts.Gaps = 0
	opts.DisableAnimations()
	return opts
}

func newFixture(opts *config.Options) *fixture {
	clock := animation.NewClock()
	return &fixture{
		layout:  layout.New(clock, opts),
		clock:   clock,
		windows: map[window.ID]*TestWindow{},
	}
}

func (f *fixture) addOutput(name string) {
	f.layout.AddOutput(layout.Output{Name: name, Size: geometry.Sz(1280, 720), Scale: 1})
}

func (f *fixture) addWindow(n int) *TestWindow {
	w := newTestWindow(n)
	f.windows[w.id] = w
	f.layout.AddWindow(w, true, false)
	return w
}

// communicate acks every pending configure and feeds the commits back.
func (f *fixture) communicate() {
	for _, w := range f.windows {
		if w.communicate() {
			if f.layout.HasWindow(w.id) {
				f.layout.UpdateWindow(w.id)
			}
		}
	}
}

// advance steps time forward and advances animations.
func (f *fixture) advance(d time.Duration) {
	f.now += d
	f.layout.AdvanceAnimations(f.now)
	f.layout.Refresh()
}

// completeAnimations jumps far forward so every animation settles.
func (f *fixture) completeAnimations() {
	f.advance(time.Hour)
}

func (f *fixture) activeScrolling() *layout.ScrollingSpace {
	ws, ok := f.layout.ActiveWorkspace()
	if !ok {
		panic("no active workspace")
	}
	return ws.Scrolling()
}
