package driftwood

import (
	"fmt"
	"os"
)

// Fallback screen size used when the host reports a degenerate (zero) layout.
// The view re-derives its matrix on the next real Resize, so this only covers
// the frames before the container settles.
const (
	fallbackScreenW = 640
	fallbackScreenH = 360
)

// identityTransform is the identity affine matrix.
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// view maps strip world space (origin at screen center, VisibleHeight world
// units tall) to screen pixels. Matrix layout matches [a, b, c, d, tx, ty]:
//
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
type view struct {
	screenW, screenH float64
	visibleHeight    float64

	matrix    [6]float64
	invMatrix [6]float64
	dirty     bool

	warnedDegenerate bool
}

func newView(visibleHeight float64) *view {
	return &view{
		screenW:       fallbackScreenW,
		screenH:       fallbackScreenH,
		visibleHeight: visibleHeight,
		dirty:         true,
	}
}

// resize records the screen size. A zero size falls back to a default so the
// projection math never divides by zero; the condition is logged once.
func (v *view) resize(w, h int) {
	sw, sh := float64(w), float64(h)
	if sw <= 0 || sh <= 0 {
		if !v.warnedDegenerate {
			fmt.Fprintf(os.Stderr,
				"[driftwood] warning: degenerate layout %dx%d, using fallback %dx%d\n",
				w, h, fallbackScreenW, fallbackScreenH)
			v.warnedDegenerate = true
		}
		sw, sh = fallbackScreenW, fallbackScreenH
	}
	if sw != v.screenW || sh != v.screenH {
		v.screenW = sw
		v.screenH = sh
		v.dirty = true
	}
}

// computeMatrix recomputes the cached view matrix if dirty.
func (v *view) computeMatrix() [6]float64 {
	if !v.dirty {
		return v.matrix
	}
	v.dirty = false

	scale := v.screenH / v.visibleHeight
	v.matrix = [6]float64{scale, 0, 0, scale, v.screenW / 2, v.screenH / 2}
	v.invMatrix = invertAffine(v.matrix)
	return v.matrix
}

// WorldToScreen converts world coordinates to screen coordinates.
func (v *view) WorldToScreen(wx, wy float64) (sx, sy float64) {
	v.computeMatrix()
	return transformPoint(v.matrix, wx, wy)
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (v *view) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	v.computeMatrix()
	return transformPoint(v.invMatrix, sx, sy)
}

// pixelsPerUnit returns the current world→screen scale factor.
func (v *view) pixelsPerUnit() float64 {
	return v.screenH / v.visibleHeight
}

// invertAffine computes the inverse of a 2D affine matrix.
// Returns the identity matrix if the matrix is singular (determinant ≈ 0).
func invertAffine(m [6]float64) [6]float64 {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return identityTransform
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return [6]float64{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}
