package driftwood

// syntheticEvent represents a single injected input event. Screen coordinates
// are used, identical to real device input, so injected runs exercise the
// same hit-testing and conversion paths.
type syntheticEvent struct {
	kind  syntheticKind
	x, y  float64
	delta float64
	snap  int
}

type syntheticKind uint8

const (
	synthPress syntheticKind = iota
	synthMove
	synthRelease
	synthWheel
	synthTouchPan
	synthSnap
)

// InjectPress queues a pointer press at the given screen coordinates. The
// event is consumed on the next Update, before the frame step runs.
func (s *Strip) InjectPress(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: synthPress, x: x, y: y})
}

// InjectMove queues a pointer move with the button held down. Use this
// between InjectPress and InjectRelease to simulate a drag.
func (s *Strip) InjectMove(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: synthMove, x: x, y: y})
}

// InjectRelease queues a pointer release at the given screen coordinates.
func (s *Strip) InjectRelease(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: synthRelease, x: x, y: y})
}

// InjectWheel queues a wheel event with a DOM-style deltaY (scroll-down
// positive).
func (s *Strip) InjectWheel(deltaY float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: synthWheel, delta: deltaY})
}

// InjectTouchPan queues a touch pan by the given pixel delta.
func (s *Strip) InjectTouchPan(dxPixels float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: synthTouchPan, delta: dxPixels})
}

// InjectSnap queues a keyboard-style snap by n panel units.
func (s *Strip) InjectSnap(n int) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: synthSnap, snap: n})
}

// InjectDrag queues a full drag sequence: press at (fromX, y), linearly
// interpolated moves over frames-2 intermediate frames, and release at
// (toX, y). The total sequence consumes `frames` frames. Minimum is 2.
func (s *Strip) InjectDrag(fromX, toX, y float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	s.InjectPress(fromX, y)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		s.InjectMove(fromX+(toX-fromX)*t, y)
	}
	s.InjectRelease(toX, y)
}

// processInjectedInput pops one event from the inject queue and feeds it
// through the same event methods as device input. Returns true if an event
// was consumed (device input is skipped that frame).
func (s *Strip) processInjectedInput() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	switch evt.kind {
	case synthPress:
		s.PointerDown(evt.x, evt.y)
	case synthMove:
		s.PointerMove(evt.x, evt.y)
	case synthRelease:
		s.PointerUp(evt.x, evt.y)
	case synthWheel:
		s.WheelScroll(evt.delta)
	case synthTouchPan:
		s.TouchPan(evt.delta)
	case synthSnap:
		s.SnapBy(evt.snap)
	}
	return true
}
