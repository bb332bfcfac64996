package main

import (
	"fmt"
	"time"

	"github.com/Gaurav-Gosain/waveland/internal/geometry"
	"github.com/Gaurav-Gosain/waveland/internal/transaction"
	"github.com/Gaurav-Gosain/waveland/internal/window"
)

// demoWindow is a synthetic client for the demo: it remembers requested
// sizes and commits them when the demo "communicates", mimicking the
// configure/ack round trip of a real client.
type demoWindow struct {
	id    window.ID
	title string

	size       geometry.Size
	requested  geometry.Size
	hasRequest bool
	fullscreen bool
	wantsFS    bool

	pendingTxn transaction.Transaction

	snapshotSize geometry.Size
	hasSnapshot  bool

	serial window.Serial
	rules  window.ResolvedRules
}

func newDemoWindow(n int, size geometry.Size) *demoWindow {
	return &demoWindow{
		id:    window.ID(fmt.Sprintf("demo-%d", n)),
		title: fmt.Sprintf("window %d", n),
		size:  size,
	}
}

// commit applies the last requested state, like a client acking and
// committing a configure.
func (w *demoWindow) commit() bool {
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

func (w *demoWindow) ID() window.ID       { return w.id }
func (w *demoWindow) Size() geometry.Size { return w.size }

func (w *demoWindow) RequestedSize() (geometry.Size, bool) {
	return w.requested, w.hasRequest
}

func (w *demoWindow) ExpectedSize() (geometry.Size, bool) {
	if w.hasRequest {
		return w.requested, true
	}
	return geometry.Size{}, false
}

func (w *demoWindow) MinSize() geometry.Size { return geometry.Size{} }
func (w *demoWindow) MaxSize() geometry.Size { return geometry.Size{} }

func (w *demoWindow) IsFullscreen() bool { return w.fullscreen }
func (w *demoWindow) HasSSD() bool       { return false }

func (w *demoWindow) RequestSize(size geometry.Size, animate bool, txn transaction.Transaction) window.Serial {
	w.requested = size
	w.hasRequest = true
	w.wantsFS = false
	w.pendingTxn = txn
	w.serial++
	return w.serial
}

func (w *demoWindow) RequestFullscreen(size geometry.Size) {
	w.requested = size
	w.hasRequest = true
	w.wantsFS = true
	w.serial++
}

func (w *demoWindow) ConfigureIntent() window.ConfigureIntent {
	if w.hasRequest {
		return window.ConfigureShouldSend
	}
	return window.ConfigureNotNeeded
}

func (w *demoWindow) SendPendingConfigure() {}

func (w *demoWindow) TakeAnimationSnapshot() (geometry.Size, bool) {
	if !w.hasSnapshot {
		return geometry.Size{}, false
	}
	w.hasSnapshot = false
	return w.snapshotSize, true
}

func (w *demoWindow) Rules() *window.ResolvedRules { return &w.rules }

func (w *demoWindow) IsInInputRegion(p geometry.Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < w.size.W && p.Y < w.size.H
}

func (w *demoWindow) SetActivated(bool)             {}
func (w *demoWindow) SendFrameCallback(time.Duration) {}
func (w *demoWindow) OutputEnter(string)            {}
func (w *demoWindow) OutputLeave(string)            {}
