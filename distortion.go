package driftwood

import "math"

const (
	// motionThreshold is the minimum average velocity that raises distortion.
	motionThreshold = 0.05
	// settleVelocity is the velocity below which distortion decays fast.
	settleVelocity = 0.5
	// bumpExponent shapes the radial falloff of the surface bump.
	bumpExponent = 1.5
)

// updateDistortion advances the target and current distortion factors by dt
// seconds per the unified decay policy: distortion rises from motion or input
// impulses, decays fast when settling and slower while actively moving fast.
func (st *engineState) updateDistortion(cfg *Config, dt float64) {
	if dt <= 0 {
		return
	}
	f := frames(dt)

	movement := math.Min(1, st.avgVelocity*cfg.DistortionSensitivity)
	if st.avgVelocity > motionThreshold || st.dragState == DragActive {
		// Motion only ever raises the target; decay below is the sole
		// way down.
		st.targetDistortion = math.Max(st.targetDistortion, movement)
	}

	active := st.dragState == DragActive || st.isScrolling
	decay := cfg.DistortionDecaySlow
	if st.isDecelerating || st.avgVelocity < settleVelocity || !active {
		decay = cfg.DistortionDecayFast
	}
	st.targetDistortion *= decayOver(decay, f)

	if st.targetDistortion > 1 {
		st.targetDistortion = 1
	} else if st.targetDistortion < 0 {
		st.targetDistortion = 0
	}

	st.currentDistortion += (st.targetDistortion - st.currentDistortion) *
		approach(cfg.DistortionSmoothing, f)
}

// bumpAmplitude returns the displacement amplitude at radial distance dist
// from the distortion center, for the given current factor. The bump is
// radially symmetric and center-peaked; amplitude is a pure function of
// position and the scalar factor.
func bumpAmplitude(dist, radius, maxDistortion, factor float64) float64 {
	strength := 1 - dist/radius
	if strength <= 0 {
		return 0
	}
	return math.Pow(math.Sin(strength*math.Pi/2), bumpExponent) * maxDistortion * factor
}

// applyDistortion recomputes panel p's surface displacement from its rest
// geometry. The scalar bump is rendered as a radial bulge: each vertex is
// pushed away from the distortion center (the viewport origin) by the bump
// amplitude. Displacement is recomputed from rest every frame and never
// accumulates. Panels with no geometry are skipped rather than aborting the
// frame.
func applyDistortion(p *Panel, cfg *Config, factor float64) {
	if p.grid == nil || len(p.grid.vertices) == 0 {
		return
	}
	if factor <= 0 {
		p.grid.Reset()
		return
	}

	push := cfg.BulgeScale
	p.grid.SetAllVertices(func(col, row int, restX, restY float64) (dx, dy float64) {
		// World-space position of this vertex under the panel's
		// aspect-fit scale.
		wx := p.CurrentX + restX*p.ScaleX
		wy := restY * p.ScaleY
		dist := math.Hypot(wx, wy)

		amp := bumpAmplitude(dist, cfg.DistortionRadius, cfg.MaxDistortion, factor)
		if amp == 0 || dist < 1e-9 {
			return 0, 0
		}

		// Radial direction from the center, converted back to the
		// panel's local units.
		ux := wx / dist
		uy := wy / dist
		return ux * amp * push / p.ScaleX, uy * amp * push / p.ScaleY
	})
}
