package driftwood

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Panel is one image-bearing surface in the loop. One Panel exists per slot
// in the fixed-size visible window; the set is created at Strip construction
// and torn down with it.
type Panel struct {
	// Index is the panel's logical slot, immutable.
	Index int
	// BaseOffset is Index × (PanelWidth + Gap), immutable.
	BaseOffset float64

	// TargetX is the wrapped layout position; CurrentX eases toward it
	// every frame, discontinuous only across the wrap boundary.
	TargetX  float64
	CurrentX float64

	// ScaleX and ScaleY are aspect-fit factors, written once when the
	// panel's texture arrives. (1, 1) until then.
	ScaleX float64
	ScaleY float64

	// Visible reports whether the panel is inside the render band.
	Visible bool

	// TextureState tracks the panel's image lifecycle.
	TextureState TextureState

	// Color is the fallback tint shown until a texture arrives (and the
	// tint applied over the texture afterwards, normally white).
	Color Color

	// Alpha is the panel's reveal opacity, animated in by a tween when the
	// texture arrives.
	Alpha float64

	grid    *SurfaceGrid
	image   *ebiten.Image
	scratch []ebiten.Vertex // per-frame view-transformed vertex buffer
	reveal  *revealTween
}

// newPanels builds the fixed panel set for the given configuration. Geometry
// is captured once here; the live mesh is recomputed from it every frame.
// Panels start settled at their wrapped positions so the first frame renders
// the resting layout with no ease-in.
func newPanels(cfg *Config) []*Panel {
	panels := make([]*Panel, cfg.PanelCount)
	for i := range panels {
		grid := NewSurfaceGrid(cfg.PanelWidth, cfg.PanelHeight, cfg.GridCols, cfg.GridRows)
		base := float64(i) * cfg.unit()
		wrapped := wrapOffset(base, cfg.totalWidth())
		panels[i] = &Panel{
			Index:      i,
			BaseOffset: base,
			TargetX:    wrapped,
			CurrentX:   wrapped,
			ScaleX:     1,
			ScaleY:     1,
			Color:      fallbackColor(i),
			Alpha:      1,
			grid:       grid,
			scratch:    make([]ebiten.Vertex, len(grid.vertices)),
		}
	}
	return panels
}

// fallbackColor derives a muted per-slot color so untextured panels are
// distinguishable.
func fallbackColor(index int) Color {
	h := math.Mod(float64(index)*0.618034, 1) * 2 * math.Pi
	return Color{
		R: 0.45 + 0.2*math.Sin(h),
		G: 0.45 + 0.2*math.Sin(h+2*math.Pi/3),
		B: 0.45 + 0.2*math.Sin(h+4*math.Pi/3),
		A: 1,
	}
}

// Grid returns the panel's surface grid.
func (p *Panel) Grid() *SurfaceGrid { return p.grid }

// Image returns the panel's texture, or nil while pending or failed.
func (p *Panel) Image() *ebiten.Image { return p.image }

// setTexture attaches a decoded image to the panel: records aspect-fit
// factors, remaps the grid UVs, and marks the panel loaded. Called once per
// panel; contain letterboxes by shrinking the plane along one axis, cover
// crops by mapping a centered UV window.
func (p *Panel) setTexture(img *ebiten.Image, cfg *Config) {
	b := img.Bounds()
	iw := float64(b.Dx())
	ih := float64(b.Dy())
	if iw <= 0 || ih <= 0 {
		p.TextureState = TextureFailed
		return
	}

	imgAspect := iw / ih
	panelAspect := cfg.PanelWidth / cfg.PanelHeight

	switch cfg.FitMode {
	case FitCover:
		// Keep the full plane; crop the image to the panel aspect.
		u0, v0, u1, v1 := 0.0, 0.0, iw, ih
		if imgAspect > panelAspect {
			cropW := ih * panelAspect
			u0 = (iw - cropW) / 2
			u1 = u0 + cropW
		} else {
			cropH := iw / panelAspect
			v0 = (ih - cropH) / 2
			v1 = v0 + cropH
		}
		p.grid.MapUV(u0, v0, u1, v1)
	default: // FitContain
		// Keep the full image; shrink the plane along one axis.
		if imgAspect > panelAspect {
			p.ScaleY = panelAspect / imgAspect
		} else if imgAspect < panelAspect {
			p.ScaleX = imgAspect / panelAspect
		}
		p.grid.MapUV(0, 0, iw, ih)
	}

	p.image = img
	p.Color = ColorWhite
	p.TextureState = TextureLoaded
}

// markFailed leaves the panel in its fallback-color state permanently.
func (p *Panel) markFailed() {
	p.TextureState = TextureFailed
}

// dispose drops the panel's resources. Image ownership stays with the Strip:
// images it decoded itself are deallocated there, images passed in via
// Config.Images belong to the caller.
func (p *Panel) dispose() {
	p.image = nil
	p.grid = nil
	p.scratch = nil
	p.reveal = nil
}
