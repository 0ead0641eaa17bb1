package driftwood

import "math"

// Per-frame constants are calibrated for a 60 Hz reference frame; step
// normalizes by the measured delta so behavior is framerate-independent.
const (
	referenceFrameRate = 60.0

	momentumDecayBase  = 0.97  // base per-frame momentum decay
	momentumDecayFloor = 0.92  // decay never drops below this per frame
	momentumEpsilon    = 0.001 // momentum below this snaps to zero

	peakDecay        = 0.99 // peak velocity tracker decay per frame
	decelRatio       = 0.7  // avg/peak below this counts as decelerating
	decelMinPeak     = 0.5  // peak must exceed this for deceleration to register
	velocityHistoryN = 5
)

// engineState is the authoritative per-instance scroll and distortion state.
// It is passed explicitly into each per-frame update so the frame step stays
// testable as plain input→output transforms.
type engineState struct {
	currentPosition float64
	targetPosition  float64
	autoScrollSpeed float64

	velocityHistory [velocityHistoryN]float64
	velocityIndex   int
	velocityCount   int
	avgVelocity     float64
	peakVelocity    float64
	isDecelerating  bool

	currentDistortion float64
	targetDistortion  float64

	dragState   DragState
	isScrolling bool
	scrollTimer float64 // seconds until isScrolling clears
}

// frames converts a seconds delta to reference-frame units.
func frames(dt float64) float64 {
	return dt * referenceFrameRate
}

// approach returns the exponential approach fraction for a per-frame factor k
// applied over f reference frames. approach(k, 1) == k; approach(k, 0) == 0,
// so a zero delta never moves state.
func approach(k, f float64) float64 {
	return 1 - math.Pow(1-k, f)
}

// decayOver applies a per-frame decay rate over f reference frames.
func decayOver(rate, f float64) float64 {
	return math.Pow(rate, f)
}

// step advances scroll position and momentum by dt seconds and refreshes the
// smoothed and peak velocity estimates. dt <= 0 is a no-op.
func (st *engineState) step(dt, smoothing float64) {
	if dt <= 0 {
		return
	}
	f := frames(dt)

	// Momentum: applied only while no input is actively driving the target.
	// A drag zeroes it; the trailing wheel/touch window holds a seeded kick
	// untouched until the window closes. Faster momentum decays faster,
	// floored so it always bleeds off.
	switch {
	case st.dragState == DragActive:
		st.autoScrollSpeed = 0
	case st.isScrolling:
		// Wheel/touch is writing the target directly this frame.
	case math.Abs(st.autoScrollSpeed) > momentumEpsilon:
		st.targetPosition += st.autoScrollSpeed * f
		decay := math.Max(momentumDecayFloor, momentumDecayBase-math.Abs(st.autoScrollSpeed)*0.5)
		st.autoScrollSpeed *= decayOver(decay, f)
		if math.Abs(st.autoScrollSpeed) < momentumEpsilon {
			st.autoScrollSpeed = 0
		}
	default:
		st.autoScrollSpeed = 0
	}

	// Exponential approach toward the target. Never overshoots; terminal
	// state is asymptotic equality.
	prev := st.currentPosition
	st.currentPosition += (st.targetPosition - st.currentPosition) * approach(smoothing, f)

	st.pushVelocity(math.Abs(st.currentPosition-prev) / dt)

	st.peakVelocity = math.Max(st.peakVelocity, st.avgVelocity)
	st.peakVelocity *= decayOver(peakDecay, f)

	// Guard the ratio against a near-zero peak.
	st.isDecelerating = st.peakVelocity > decelMinPeak &&
		st.avgVelocity/st.peakVelocity < decelRatio
}

// pushVelocity records one frame velocity sample into the ring buffer and
// refreshes the smoothed average.
func (st *engineState) pushVelocity(v float64) {
	st.velocityHistory[st.velocityIndex] = v
	st.velocityIndex = (st.velocityIndex + 1) % velocityHistoryN
	if st.velocityCount < velocityHistoryN {
		st.velocityCount++
	}

	sum := 0.0
	for i := 0; i < st.velocityCount; i++ {
		sum += st.velocityHistory[i]
	}
	st.avgVelocity = sum / float64(st.velocityCount)
}

// addDistortionImpulse raises the target distortion by v, clamped to [0, 1].
func (st *engineState) addDistortionImpulse(v float64) {
	st.targetDistortion = math.Min(1, st.targetDistortion+v)
}

// seedMomentum sets the momentum velocity directly (flick or wheel kick).
func (st *engineState) seedMomentum(v float64) {
	st.autoScrollSpeed = v
}

// tickScrollTimer counts the trailing scroll window down and clears the
// isScrolling gate when it expires.
func (st *engineState) tickScrollTimer(dt float64) {
	if !st.isScrolling {
		return
	}
	st.scrollTimer -= dt
	if st.scrollTimer <= 0 {
		st.scrollTimer = 0
		st.isScrolling = false
	}
}

// markScrolling opens the isScrolling gate for the given trailing window.
func (st *engineState) markScrolling(window float64) {
	st.isScrolling = true
	if window > st.scrollTimer {
		st.scrollTimer = window
	}
}
