package driftwood

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	// dragImpulsePerPixel converts pointer speed to a distortion impulse.
	dragImpulsePerPixel = 0.02
	// flickThreshold is the minimum flick velocity that seeds momentum.
	flickThreshold = 0.5
	// flickMomentumScale converts flick velocity to momentum.
	flickMomentumScale = 0.05
	// flickImpulseScale converts flick strength to a distortion impulse.
	flickImpulseScale = 0.2

	// wheelImpulseScale converts a wheel delta to a distortion impulse.
	wheelImpulseScale = 0.001
	// wheelMomentumScale and wheelMomentumMax bound the momentum kick a
	// single wheel event seeds.
	wheelMomentumScale = 0.0005
	wheelMomentumMax   = 0.05
	// wheelTickScale converts ebiten wheel ticks to the pixel-like deltas
	// the tuning constants are calibrated for.
	wheelTickScale = 100.0

	// keyboardImpulse is the fixed distortion impulse of an arrow-key snap.
	keyboardImpulse = 0.3

	// Trailing windows that keep the isScrolling gate open after the last
	// wheel event / touch contact.
	wheelScrollWindow = 0.15
	touchScrollWindow = 0.8
)

// pointerState tracks one scrubbing pointer (mouse, or the first touch when
// drag is enabled). Coordinates are screen pixels.
type pointerState struct {
	down     bool
	dragging bool
	startX   float64
	startY   float64
	lastX    float64
	lastY    float64
}

// inputState is the Strip's input controller state. Drag and wheel/touch are
// two interaction modes sharing the same position/distortion side effects,
// gated by the Config capability flags.
type inputState struct {
	pointer pointerState

	touchActive bool
	touchID     ebiten.TouchID
	touchLastX  float64

	touchIDBuf []ebiten.TouchID
	cursorOver bool
}

// pollDevice reads ebiten device input and feeds it through the same event
// methods used by injection. Skipped entirely while an injected event queue
// is draining, mirroring real-input suppression during synthetic runs.
func (s *Strip) pollDevice() {
	s.pollMouse()
	if !s.cfg.DisableWheelTouch {
		s.pollWheel()
		s.pollTouch()
	}
	if !s.cfg.DisableKeyboard {
		s.pollKeyboard()
	}
}

func (s *Strip) pollMouse() {
	mx, my := ebiten.CursorPosition()
	sx, sy := float64(mx), float64(my)

	// The hover affordance is independent of the drag capability; only the
	// press path is gated.
	if s.cfg.DisableDrag {
		s.updateCursor(sx, sy)
		return
	}
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)

	ps := &s.input.pointer
	switch {
	case pressed && !ps.down:
		s.PointerDown(sx, sy)
	case !pressed && ps.down:
		s.PointerUp(sx, sy)
	case pressed && ps.down:
		s.PointerMove(sx, sy)
	default:
		// Hover: cursor affordance only.
		s.updateCursor(sx, sy)
	}
}

func (s *Strip) pollWheel() {
	_, wy := ebiten.Wheel()
	if wy == 0 {
		return
	}
	// Ebiten reports ticks with scroll-down negative; DOM-style deltas are
	// scroll-down positive.
	s.WheelScroll(-wy * wheelTickScale)
}

func (s *Strip) pollTouch() {
	in := &s.input
	in.touchIDBuf = ebiten.AppendTouchIDs(in.touchIDBuf[:0])

	if !in.touchActive {
		if len(in.touchIDBuf) == 0 {
			return
		}
		in.touchActive = true
		in.touchID = in.touchIDBuf[0]
		tx, _ := ebiten.TouchPosition(in.touchID)
		in.touchLastX = float64(tx)
		s.st.markScrolling(touchScrollWindow)
		return
	}

	for _, id := range in.touchIDBuf {
		if id != in.touchID {
			continue
		}
		tx, _ := ebiten.TouchPosition(id)
		s.TouchPan(float64(tx) - in.touchLastX)
		in.touchLastX = float64(tx)
		return
	}

	// Tracked touch lifted; the trailing window keeps momentum gated on.
	in.touchActive = false
	s.st.markScrolling(touchScrollWindow)
}

func (s *Strip) pollKeyboard() {
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
		s.SnapBy(1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) {
		s.SnapBy(-1)
	}
}

// --- Pointer drag ---

// PointerDown begins a drag when the pointer is over a panel. Coordinates are
// screen pixels. Hit testing gates drag start only; it never feeds the
// integrator.
func (s *Strip) PointerDown(sx, sy float64) {
	if s.disposed || s.cfg.DisableDrag {
		return
	}
	if s.hitTestPanel(sx, sy) == nil {
		return
	}
	ps := &s.input.pointer
	ps.down = true
	ps.dragging = false
	ps.startX, ps.startY = sx, sy
	ps.lastX, ps.lastY = sx, sy
}

// PointerMove scrubs the strip while a drag is active: the pixel delta since
// the last move becomes a position delta and a speed-proportional distortion
// impulse.
func (s *Strip) PointerMove(sx, sy float64) {
	if s.disposed {
		return
	}
	ps := &s.input.pointer
	if !ps.down {
		s.updateCursor(sx, sy)
		return
	}

	dx := sx - ps.lastX
	ps.lastX, ps.lastY = sx, sy
	if dx == 0 {
		return
	}

	if !ps.dragging {
		ps.dragging = true
		s.st.dragState = DragActive
		s.emit(StripEvent{Type: EventDragStart, Panel: -1, Position: s.st.targetPosition})
	}

	s.st.addDistortionImpulse(math.Min(math.Abs(dx)*dragImpulsePerPixel, 1))
	s.st.targetPosition += -dx * s.cfg.DragSensitivity
}

// PointerUp ends a drag. A release fast enough to count as a flick seeds
// momentum and a proportional distortion impulse.
func (s *Strip) PointerUp(sx, sy float64) {
	if s.disposed {
		return
	}
	ps := &s.input.pointer
	if !ps.down {
		return
	}
	wasDragging := ps.dragging
	ps.down = false
	ps.dragging = false
	s.st.dragState = DragIdle

	if !wasDragging {
		return
	}

	velocity := (ps.lastX - ps.startX) * s.cfg.FlickScale
	if math.Abs(velocity) > flickThreshold {
		s.st.seedMomentum(-velocity * s.cfg.MomentumMultiplier * flickMomentumScale)
		s.st.addDistortionImpulse(math.Min(math.Abs(velocity)*flickImpulseScale, 1))
	}
	s.emit(StripEvent{
		Type:     EventDragEnd,
		Panel:    -1,
		Position: s.st.targetPosition,
		Velocity: velocity,
	})
}

// --- Wheel / touch scroll ---

// WheelScroll perturbs the target position by a DOM-style wheel delta
// (scroll-down positive), raises distortion, and seeds a bounded momentum
// kick. The trailing scroll window gates momentum and distortion decay.
func (s *Strip) WheelScroll(deltaY float64) {
	if s.disposed || s.cfg.DisableWheelTouch || deltaY == 0 {
		return
	}
	s.st.targetPosition -= deltaY * s.cfg.WheelSensitivity
	s.st.addDistortionImpulse(math.Min(math.Abs(deltaY)*wheelImpulseScale, 1))

	kick := math.Min(math.Abs(deltaY)*wheelMomentumScale, wheelMomentumMax)
	s.st.seedMomentum(math.Copysign(kick, deltaY))
	s.st.markScrolling(wheelScrollWindow)
}

// TouchPan scrubs the strip by a touch pixel delta, sharing the wheel path's
// side effects with its longer trailing window.
func (s *Strip) TouchPan(dxPixels float64) {
	if s.disposed || s.cfg.DisableWheelTouch || dxPixels == 0 {
		return
	}
	s.st.targetPosition += -dxPixels * s.cfg.DragSensitivity
	s.st.addDistortionImpulse(math.Min(math.Abs(dxPixels)*dragImpulsePerPixel, 1))
	s.st.markScrolling(touchScrollWindow)
}

// --- Keyboard ---

// SnapBy moves the target position by exactly n panel units (positive n
// advances the strip rightward, i.e. decreases the target position) and adds
// the fixed keyboard distortion impulse. The discrete nudge rides the same
// continuous integrator as every other input.
func (s *Strip) SnapBy(n int) {
	if s.disposed || n == 0 {
		return
	}
	s.st.targetPosition -= float64(n) * s.cfg.unit()
	s.st.addDistortionImpulse(keyboardImpulse)
	s.emit(StripEvent{Type: EventPanelSnap, Panel: -1, Position: s.st.targetPosition})
}

// --- Hit testing ---

// hitTestPanel returns the visible panel under the screen-space point, or nil.
func (s *Strip) hitTestPanel(sx, sy float64) *Panel {
	wx, wy := s.view.ScreenToWorld(sx, sy)
	for _, p := range s.panels {
		if !p.Visible {
			continue
		}
		halfW := s.cfg.PanelWidth * p.ScaleX / 2
		halfH := s.cfg.PanelHeight * p.ScaleY / 2
		if math.Abs(wx-p.CurrentX) <= halfW && math.Abs(wy) <= halfH {
			return p
		}
	}
	return nil
}

// updateCursor sets the system cursor shape from hover state.
func (s *Strip) updateCursor(sx, sy float64) {
	over := s.hitTestPanel(sx, sy) != nil
	if over == s.input.cursorOver {
		return
	}
	s.input.cursorOver = over
	if over {
		ebiten.SetCursorShape(ebiten.CursorShapePointer)
	} else {
		ebiten.SetCursorShape(ebiten.CursorShapeDefault)
	}
}
