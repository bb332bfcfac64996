package layout

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/Gaurav-Gosain/waveland/internal/animation"
	"github.com/Gaurav-Gosain/waveland/internal/config"
	"github.com/Gaurav-Gosain/waveland/internal/geometry"
	"github.com/Gaurav-Gosain/waveland/internal/render"
	"github.com/Gaurav-Gosain/waveland/internal/transaction"
	"github.com/Gaurav-Gosain/waveland/internal/window"
)

// Tile wraps one window with its decorations and animations. It translates
// between window coordinates and tile coordinates: the tile is the window
// plus its border, and for fullscreen tiles the whole view.
type Tile struct {
	win window.Window

	border    focusRing
	focusRing focusRing

	// isFullscreen updates only when the window actually commits a
	// fullscreen size, not when fullscreen is requested, to avoid a
	// backdrop flicker before the window resizes.
	isFullscreen bool

	fullscreenBackdrop render.SolidColorBuffer

	openAnim   *animation.Animation
	resizeAnim *resizeAnimation
	moveX      *moveAnimation
	moveY      *moveAnimation
	alphaAnim  *animation.Animation

	// interactiveMoveOffset is the rubberband offset while a tile is
	// being dragged.
	interactiveMoveOffset geometry.Point

	unmapSnapshot *render.Snapshot

	// Remembered floating geometry for toggling between layers.
	floatingWindowSize geometry.Size
	hasFloatingSize    bool
	floatingPosFrac    geometry.Point
	hasFloatingPos     bool

	viewSize geometry.Size
	scale    float64
	clock    animation.Clock
	opts     *config.Options
}

type resizeAnimation struct {
	anim     *animation.Animation
	sizeFrom geometry.Size
}

type moveAnimation struct {
	anim *animation.Animation
	from float64
}

// NewTile wraps a window.
func NewTile(win window.Window, viewSize geometry.Size, scale float64, clock animation.Clock, opts *config.Options) *Tile {
	t := &Tile{
		win:       win,
		border:    newFocusRing(opts.Border, true),
		focusRing: newFocusRing(opts.FocusRing, false),

		isFullscreen: win.IsFullscreen(),
		fullscreenBackdrop: render.SolidColorBuffer{
			Color:      colorful.Color{},
			ColorAlpha: 1,
			Size:       viewSize,
		},

		viewSize: viewSize,
		scale:    scale,
		clock:    clock,
		opts:     opts,
	}
	if win.Rules().BorderOff {
		t.border.cfg.Off = true
	}
	return t
}

// Window returns the wrapped window.
func (t *Tile) Window() window.Window { return t.win }

// UpdateConfig applies new view size, scale and options.
func (t *Tile) UpdateConfig(viewSize geometry.Size, scale float64, opts *config.Options) {
	t.viewSize = viewSize
	t.scale = scale
	t.opts = opts

	t.border.updateConfig(opts.Border)
	if t.win.Rules().BorderOff {
		t.border.cfg.Off = true
	}
	t.focusRing.updateConfig(opts.FocusRing)
	t.fullscreenBackdrop.Resize(viewSize)
}

// UpdateWindow ingests a new window commit: refreshes the committed
// fullscreen flag and starts a resize animation when the committed size
// jumped far enough.
func (t *Tile) UpdateWindow() {
	t.isFullscreen = t.win.IsFullscreen()

	if from, ok := t.win.TakeAnimationSnapshot(); ok {
		sizeFrom := from
		if resize := t.resizeAnim; resize != nil {
			// Chain from the visually current size rather than
			// jumping to the snapshot.
			val := resize.anim.Value()
			sizeFrom = geometry.Size{
				W: resize.sizeFrom.W + (from.W-resize.sizeFrom.W)*val,
				H: resize.sizeFrom.H + (from.H-resize.sizeFrom.H)*val,
			}
		}

		now := t.win.Size()
		change := math.Max(math.Abs(now.W-sizeFrom.W), math.Abs(now.H-sizeFrom.H))
		if change > resizeAnimationThreshold {
			t.resizeAnim = &resizeAnimation{
				anim:     animation.New(t.clock, 0, 1, 0, t.opts.Animations.WindowResize),
				sizeFrom: sizeFrom,
			}
		} else {
			t.resizeAnim = nil
		}
	}
}

// AdvanceAnimations drops finished animations. Values are read lazily off
// the clock, so this only does cleanup.
func (t *Tile) AdvanceAnimations() {
	if t.openAnim != nil && t.openAnim.IsDone() {
		t.openAnim = nil
	}
	if t.resizeAnim != nil && t.resizeAnim.anim.IsDone() {
		t.resizeAnim = nil
	}
	if t.moveX != nil && t.moveX.anim.IsDone() {
		t.moveX = nil
	}
	if t.moveY != nil && t.moveY.anim.IsDone() {
		t.moveY = nil
	}
	if t.alphaAnim != nil && t.alphaAnim.IsDone() {
		t.alphaAnim = nil
	}
}

// AreAnimationsOngoing reports whether the tile still animates.
func (t *Tile) AreAnimationsOngoing() bool {
	return t.openAnim != nil || t.resizeAnim != nil ||
		t.moveX != nil || t.moveY != nil || t.alphaAnim != nil
}

// RenderOffset is the animated visual displacement of the tile from its
// layout position.
func (t *Tile) RenderOffset() geometry.Point {
	var off geometry.Point
	if t.moveX != nil {
		off.X += t.moveX.from * t.moveX.anim.Value()
	}
	if t.moveY != nil {
		off.Y += t.moveY.from * t.moveY.anim.Value()
	}
	return off.Add(t.interactiveMoveOffset)
}

// StartOpenAnimation begins the window-open scale/fade.
func (t *Tile) StartOpenAnimation() {
	t.openAnim = animation.New(t.clock, 0, 1, 0, t.opts.Animations.WindowOpen)
}

// AnimateMoveFrom starts a move animation from a previous visual origin,
// given as a delta relative to the current layout position.
func (t *Tile) AnimateMoveFrom(from geometry.Point) {
	t.AnimateMoveXFrom(from.X)
	t.AnimateMoveYFrom(from.Y)
}

// AnimateMoveXFrom starts the horizontal move animation.
func (t *Tile) AnimateMoveXFrom(from float64) {
	current := t.RenderOffset().X - t.interactiveMoveOffset.X
	anim := animation.New(t.clock, 1, 0, 0, t.opts.Animations.WindowMovement)
	if t.moveX != nil {
		anim = t.moveX.anim.Restarted(1, 0, 0)
	}
	t.moveX = &moveAnimation{anim: anim, from: from + current}
}

// AnimateMoveYFrom starts the vertical move animation.
func (t *Tile) AnimateMoveYFrom(from float64) {
	current := t.RenderOffset().Y - t.interactiveMoveOffset.Y
	anim := animation.New(t.clock, 1, 0, 0, t.opts.Animations.WindowMovement)
	if t.moveY != nil {
		anim = t.moveY.anim.Restarted(1, 0, 0)
	}
	t.moveY = &moveAnimation{anim: anim, from: from + current}
}

// StopMoveAnimations cancels in-flight move animations.
func (t *Tile) StopMoveAnimations() {
	t.moveX = nil
	t.moveY = nil
}

// AnimateAlphaFrom cross-fades the tile from the given alpha towards 1.
func (t *Tile) AnimateAlphaFrom(from float64) {
	t.alphaAnim = animation.New(t.clock, from, 1, 0, t.opts.Animations.WindowMovement)
}

// AnimateAlphaTo fades the tile towards the given alpha.
func (t *Tile) AnimateAlphaTo(to float64) {
	from := t.currentAlpha()
	t.alphaAnim = animation.New(t.clock, from, to, 0, t.opts.Animations.WindowMovement)
}

func (t *Tile) currentAlpha() float64 {
	if t.alphaAnim == nil {
		return 1
	}
	return geometry.Clamp(t.alphaAnim.Value(), 0, 1)
}

// IsFullscreen reports the committed fullscreen state.
func (t *Tile) IsFullscreen() bool { return t.isFullscreen }

// EffectiveBorderWidth returns the border width when the border is shown.
// Fullscreen always hides it.
func (t *Tile) EffectiveBorderWidth() (float64, bool) {
	if t.isFullscreen || t.border.isOff() {
		return 0, false
	}
	return t.border.width(), true
}

// WindowLoc is the position of the window within the tile. Fullscreen
// windows smaller than the view are centered.
func (t *Tile) WindowLoc() geometry.Point {
	var loc geometry.Point

	if t.isFullscreen {
		ws := t.WindowSize()
		if ws.W < t.viewSize.W {
			loc.X += (t.viewSize.W - ws.W) / 2
		}
		if ws.H < t.viewSize.H {
			loc.Y += (t.viewSize.H - ws.H) / 2
		}
		loc = loc.RoundPhysical(t.scale)
	}

	if w, ok := t.EffectiveBorderWidth(); ok {
		loc = loc.Add(geometry.Pt(w, w))
	}
	return loc
}

// WindowSize is the last committed window size, snapped to physical pixels.
func (t *Tile) WindowSize() geometry.Size {
	return t.win.Size().RoundPhysical(t.scale)
}

// WindowExpectedOrCurrentSize is the size a pending acknowledgement will
// commit, or the current size when nothing is in flight.
func (t *Tile) WindowExpectedOrCurrentSize() geometry.Size {
	if s, ok := t.win.ExpectedSize(); ok {
		return s.RoundPhysical(t.scale)
	}
	return t.WindowSize()
}

func (t *Tile) tileSizeFor(win geometry.Size) geometry.Size {
	if t.isFullscreen {
		return win.Max(t.viewSize)
	}
	if w, ok := t.EffectiveBorderWidth(); ok {
		win.W += w * 2
		win.H += w * 2
	}
	return win
}

// TileSize is the committed tile size: window plus border, or at least the
// view for fullscreen tiles.
func (t *Tile) TileSize() geometry.Size {
	return t.tileSizeFor(t.WindowSize())
}

// TileExpectedOrCurrentSize is TileSize computed from the pending size.
func (t *Tile) TileExpectedOrCurrentSize() geometry.Size {
	return t.tileSizeFor(t.WindowExpectedOrCurrentSize())
}

// AnimatedWindowSize is the window size mid-resize-animation.
func (t *Tile) AnimatedWindowSize() geometry.Size {
	size := t.WindowSize()
	if resize := t.resizeAnim; resize != nil {
		val := resize.anim.Value()
		size.W = math.Max(1, resize.sizeFrom.W+(size.W-resize.sizeFrom.W)*val)
		size.H = math.Max(1, resize.sizeFrom.H+(size.H-resize.sizeFrom.H)*val)
		size = size.RoundPhysical(t.scale)
	}
	return size
}

// AnimatedTileSize is the tile size mid-resize-animation.
func (t *Tile) AnimatedTileSize() geometry.Size {
	return t.tileSizeFor(t.AnimatedWindowSize())
}

// TileWidthForWindowWidth converts a window width to a tile width.
func (t *Tile) TileWidthForWindowWidth(w float64) float64 {
	if t.border.isOff() {
		return w
	}
	return w + t.border.width()*2
}

// TileHeightForWindowHeight converts a window height to a tile height.
func (t *Tile) TileHeightForWindowHeight(h float64) float64 {
	if t.border.isOff() {
		return h
	}
	return h + t.border.width()*2
}

// WindowWidthForTileWidth converts a tile width to a window width.
func (t *Tile) WindowWidthForTileWidth(w float64) float64 {
	if t.border.isOff() {
		return w
	}
	return w - t.border.width()*2
}

// WindowHeightForTileHeight converts a tile height to a window height.
func (t *Tile) WindowHeightForTileHeight(h float64) float64 {
	if t.border.isOff() {
		return h
	}
	return h - t.border.width()*2
}

// MinSize is the window minimum grown by the border.
func (t *Tile) MinSize() geometry.Size {
	size := t.win.MinSize()
	if w, ok := t.EffectiveBorderWidth(); ok {
		size.W = math.Max(1, size.W) + w*2
		size.H = math.Max(1, size.H) + w*2
	}
	return size
}

// MaxSize is the window maximum grown by the border; zero stays "no limit".
func (t *Tile) MaxSize() geometry.Size {
	size := t.win.MaxSize()
	if w, ok := t.EffectiveBorderWidth(); ok {
		if size.W > 0 {
			size.W += w * 2
		}
		if size.H > 0 {
			size.H += w * 2
		}
	}
	return size
}

// MinSizeNonfullscreen ignores the committed fullscreen state when growing
// by the border, for use while sizes are being recomputed.
func (t *Tile) MinSizeNonfullscreen() geometry.Size {
	size := t.win.MinSize()
	if !t.border.isOff() {
		w := t.border.width()
		size.W = math.Max(1, size.W) + w*2
		size.H = math.Max(1, size.H) + w*2
	}
	return size
}

// MaxSizeNonfullscreen is the non-fullscreen analogue of MaxSize.
func (t *Tile) MaxSizeNonfullscreen() geometry.Size {
	size := t.win.MaxSize()
	if !t.border.isOff() {
		w := t.border.width()
		if size.W > 0 {
			size.W += w * 2
		}
		if size.H > 0 {
			size.H += w * 2
		}
	}
	return size
}

// RequestTileSize computes the interior window size and issues a configure.
func (t *Tile) RequestTileSize(size geometry.Size, animate bool, txn transaction.Transaction) {
	// Not EffectiveBorderWidth: the tile may still be committed
	// fullscreen while we size it back to normal.
	if !t.border.isOff() {
		w := t.border.width()
		size.W = math.Max(1, size.W-w*2)
		size.H = math.Max(1, size.H-w*2)
	}

	// Floor instead of round so proportional columns never overflow the
	// working area by a fraction of a pixel.
	size.W = math.Floor(size.W)
	size.H = math.Floor(size.H)

	if !txn.IsZero() {
		txn.AddParticipant(t.clock.NowUnadjusted())
	}
	t.win.RequestSize(size, animate, txn)
}

// RequestFullscreen asks the window to go fullscreen at the view size.
func (t *Tile) RequestFullscreen(_ bool, txn transaction.Transaction) {
	if !txn.IsZero() {
		txn.AddParticipant(t.clock.NowUnadjusted())
	}
	t.win.RequestFullscreen(geometry.Size{
		W: math.Floor(t.viewSize.W),
		H: math.Floor(t.viewSize.H),
	})
}

// IsInInputRegion tests a point in tile coordinates against the window's
// input region.
func (t *Tile) IsInInputRegion(p geometry.Point) bool {
	return t.win.IsInInputRegion(p.Sub(t.WindowLoc()))
}

// IsInActivationRegion tests a point against the whole tile.
func (t *Tile) IsInActivationRegion(p geometry.Point) bool {
	return (geometry.Rect{Size: t.TileSize()}).Contains(p)
}

// Render emits the tile's render elements at the given location, in
// back-to-front order within each logical group: open animation replaces
// everything; otherwise window, fullscreen backdrop, border, then focus
// ring on request.
func (t *Tile) Render(location geometry.Point, focusRingOn bool, isActive bool, target render.Target) []render.Element {
	alpha := t.win.Rules().EffectiveOpacity()
	if t.isFullscreen {
		alpha = 1
	}
	alpha *= t.currentAlpha()

	elems := t.renderInner(location, alpha, isActive, target)

	if t.openAnim != nil {
		// Scale and fade the whole tile out of its center.
		val := t.openAnim.ClampedValue()
		center := geometry.Rect{Loc: location, Size: t.AnimatedTileSize()}.Center()
		out := make([]render.Element, 0, len(elems))
		for _, e := range elems {
			out = append(out, &render.Rescale{
				Inner:  &fadeElement{inner: e, alpha: val},
				Origin: center,
				Scale:  0.5 + 0.5*val,
			})
		}
		return out
	}

	if focusRingOn {
		ring := t.focusRing.render(
			location, t.AnimatedTileSize(), t.ringRadius(), isActive,
			t.drawFocusRingWithBackground(),
		)
		elems = append(elems, ring...)
	}
	return elems
}

func (t *Tile) renderInner(location geometry.Point, alpha float64, isActive bool, target render.Target) []render.Element {
	var elems []render.Element

	winLoc := location.Add(t.WindowLoc())
	winSize := t.AnimatedWindowSize()
	rules := t.win.Rules()

	radius := 0.
	if !t.isFullscreen {
		radius = rules.GeometryCornerRadius
	}

	blockedOut := false
	switch rules.BlockOutFrom {
	case window.BlockOutScreencast:
		blockedOut = target == render.TargetScreencast
	case window.BlockOutScreenCapture:
		blockedOut = target == render.TargetScreencast || target == render.TargetScreenCapture
	}

	if blockedOut {
		buf := &render.SolidColorBuffer{
			Color:        colorful.Color{R: 0.15, G: 0.15, B: 0.15},
			ColorAlpha:   1,
			Size:         winSize,
			CornerRadius: radius,
		}
		elems = append(elems, &render.SolidColor{Buffer: buf, Location: winLoc, Opacity: alpha})
	} else {
		surface := &render.Wayland{
			Window:       t.win.ID(),
			Location:     winLoc,
			Size:         winSize,
			Scale:        t.scale,
			Opacity:      alpha,
			CornerRadius: radius,
		}
		if rules.ClipToGeometry {
			elems = append(elems, &render.Crop{
				Inner: surface,
				Rect:  geometry.Rect{Loc: winLoc, Size: winSize},
			})
		} else {
			elems = append(elems, surface)
		}
	}

	if t.isFullscreen {
		backdropSize := t.viewSize.Max(winSize)
		t.fullscreenBackdrop.Resize(backdropSize)
		elems = append(elems, &render.SolidColor{
			Buffer:   &t.fullscreenBackdrop,
			Location: location,
			Opacity:  1,
		})
	}

	if _, ok := t.EffectiveBorderWidth(); ok {
		border := t.border.render(
			winLoc, winSize, rules.GeometryCornerRadius, isActive,
			t.drawBorderWithBackground(),
		)
		elems = append(elems, border...)
	}

	return elems
}

func (t *Tile) drawBorderWithBackground() bool {
	if with := t.win.Rules().DrawBorderWithBackground; with != nil {
		return *with
	}
	return !t.win.HasSSD()
}

func (t *Tile) drawFocusRingWithBackground() bool {
	if _, ok := t.EffectiveBorderWidth(); ok {
		return false
	}
	return t.drawBorderWithBackground()
}

// ringRadius is the focus ring's inner radius: the window radius expanded by
// the border when one is drawn.
func (t *Tile) ringRadius() float64 {
	if t.isFullscreen {
		return 0
	}
	radius := t.win.Rules().GeometryCornerRadius
	if w, ok := t.EffectiveBorderWidth(); ok {
		radius += w
	}
	return radius
}

// StoreUnmapSnapshot captures the current render for the close animation.
// Idempotent until taken.
func (t *Tile) StoreUnmapSnapshot() {
	if t.unmapSnapshot != nil {
		return
	}

	size := t.TileSize()
	contents := t.renderInner(geometry.Point{}, 1, true, render.TargetOutput)
	blocked := t.renderInner(geometry.Point{}, 1, true, render.TargetScreenCapture)

	t.unmapSnapshot = &render.Snapshot{
		Contents:        contents,
		BlockedContents: blocked,
		Size:            size,
		BlockOutFrom:    t.win.Rules().BlockOutFrom,
	}
}

// TakeUnmapSnapshot removes and returns the stored snapshot, if any.
func (t *Tile) TakeUnmapSnapshot() *render.Snapshot {
	s := t.unmapSnapshot
	t.unmapSnapshot = nil
	return s
}

// Floating geometry memory, used when toggling between layers.

func (t *Tile) rememberFloatingSize(size geometry.Size) {
	t.floatingWindowSize = size
	t.hasFloatingSize = true
}

func (t *Tile) rememberedFloatingSize() (geometry.Size, bool) {
	return t.floatingWindowSize, t.hasFloatingSize
}

func (t *Tile) rememberFloatingPos(frac geometry.Point) {
	t.floatingPosFrac = frac
	t.hasFloatingPos = true
}

func (t *Tile) rememberedFloatingPos() (geometry.Point, bool) {
	return t.floatingPosFrac, t.hasFloatingPos
}

// fadeElement multiplies an inner element's alpha. Used by the open
// animation.
type fadeElement struct {
	inner render.Element
	alpha float64
}

func (f *fadeElement) Geometry() geometry.Rect { return f.inner.Geometry() }
func (f *fadeElement) Alpha() float64          { return f.inner.Alpha() * f.alpha }
