package driftwood

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// revealTween fades a panel in when its texture arrives. There is no global
// animation manager — the Strip pumps active tweens from its frame step.
type revealTween struct {
	tween *gween.Tween
	panel *Panel
	Done  bool
}

// newRevealTween starts a fade from the panel's current alpha to fully
// opaque over duration seconds.
func newRevealTween(p *Panel, duration float64) *revealTween {
	return &revealTween{
		tween: gween.New(float32(p.Alpha), 1, float32(duration), ease.OutQuad),
		panel: p,
	}
}

// Update advances the tween by dt seconds and writes the value to the panel.
func (r *revealTween) Update(dt float64) {
	if r.Done {
		return
	}
	val, finished := r.tween.Update(float32(dt))
	r.panel.Alpha = float64(val)
	r.Done = finished
}
