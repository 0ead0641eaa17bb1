package driftwood

import "math"

// approxEqual reports whether a and b differ by less than eps.
func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

// newTestStrip builds a strip with default configuration and a settled
// layout, no images.
func newTestStrip() *Strip {
	return NewStrip(Config{})
}

// stepN advances the strip n frames at the 60 Hz reference delta.
func stepN(s *Strip, n int) {
	for i := 0; i < n; i++ {
		s.Advance(1.0 / 60.0)
	}
}

// recordingSink collects emitted strip events for assertions.
type recordingSink struct {
	events []StripEvent
}

func (r *recordingSink) EmitStripEvent(e StripEvent) {
	r.events = append(r.events, e)
}

func (r *recordingSink) countOf(t StripEventType) int {
	n := 0
	for _, e := range r.events {
		if e.Type == t {
			n++
		}
	}
	return n
}
