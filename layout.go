package driftwood

import "math"

// wrapOffset maps a raw offset into the loop-centered range
// (-totalWidth/2, totalWidth/2]. The double mod keeps the intermediate value
// non-negative for negative raw offsets.
func wrapOffset(raw, totalWidth float64) float64 {
	wrapped := math.Mod(math.Mod(raw, totalWidth)+totalWidth, totalWidth)
	if wrapped > totalWidth/2 {
		wrapped -= totalWidth
	}
	return wrapped
}

// layoutPanel computes panel p's wrapped target position for the given global
// scroll offset, suppresses the loop-boundary jump, and eases CurrentX toward
// the target. dt <= 0 leaves CurrentX untouched.
func layoutPanel(p *Panel, cfg *Config, currentPosition, dt float64) {
	totalWidth := cfg.totalWidth()
	wrapped := wrapOffset(p.BaseOffset-currentPosition, totalWidth)

	// A target jump wider than two panels means the panel crossed the wrap
	// boundary; snap instead of animating across the whole loop.
	if math.Abs(wrapped-p.TargetX) > 2*cfg.PanelWidth {
		p.CurrentX = wrapped
	}
	p.TargetX = wrapped

	p.Visible = math.Abs(p.CurrentX) < (totalWidth/2+cfg.PanelWidth)*1.5
	if !p.Visible {
		// Culled panels freeze at their last position.
		return
	}

	if dt > 0 {
		p.CurrentX += (p.TargetX - p.CurrentX) * approach(cfg.SlideLerp, frames(dt))
	}
}
