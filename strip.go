package driftwood

import (
	"fmt"
	"math"
	"os"
	"sort"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// maxFrameDelta caps the measured frame delta so a stalled host (window drag,
// breakpoint) doesn't integrate one giant step.
const maxFrameDelta = 0.1

// Strip is one mounted slider instance: the fixed panel set, the motion and
// distortion state, the input controller, and the frame driver. Multiple
// Strips are fully independent; nothing is shared between instances.
//
// All mutation happens on the game loop goroutine — Update, Draw, the input
// methods, and Dispose must be called from there. The only background
// activity is image decoding, which hands its results back to the game loop.
type Strip struct {
	cfg Config
	st  engineState

	panels []*Panel
	view   *view
	input  inputState

	injectQueue []syntheticEvent
	sink        EventSink

	loader    *textureLoader
	resultBuf []loadResult
	created   []*ebiten.Image // images this Strip decoded and must deallocate
	reveals   []*revealTween

	scrollTween *gween.Tween

	lastFrame time.Time
	hasFrame  bool

	drawBuf []*Panel
	triOpts ebiten.DrawTrianglesOptions

	debug    bool
	disposed bool
}

// NewStrip creates a strip with the given configuration. The panel set and
// engine state are created together here and torn down together by Dispose;
// there is no partial re-creation — build a new Strip to change the
// configuration.
func NewStrip(cfg Config) *Strip {
	cfg = cfg.withDefaults()

	s := &Strip{
		cfg:    cfg,
		view:   newView(cfg.VisibleHeight),
		panels: newPanels(&cfg),
	}

	switch {
	case len(cfg.Images) > 0:
		for _, p := range s.panels {
			img := cfg.Images[p.Index%cfg.ImagePoolSize%len(cfg.Images)]
			if img != nil {
				p.setTexture(img, &cfg)
			}
		}
	case len(cfg.ImagePaths) > 0:
		pool := cfg.ImagePaths
		if len(pool) > cfg.ImagePoolSize {
			pool = pool[:cfg.ImagePoolSize]
		}
		s.loader = newTextureLoader(cfg.FS, pool)
	}

	// Panels are created settled; this pass derives their visibility.
	for _, p := range s.panels {
		layoutPanel(p, &s.cfg, 0, 0)
	}
	return s
}

// Config returns the strip's effective configuration (defaults applied).
func (s *Strip) Config() Config { return s.cfg }

// Panels returns the panel records. The returned slice MUST NOT be mutated.
func (s *Strip) Panels() []*Panel { return s.panels }

// Panel returns the panel at the given slot index.
func (s *Strip) Panel(index int) *Panel { return s.panels[index] }

// SetEventSink sets the optional strip event receiver.
func (s *Strip) SetEventSink(sink EventSink) { s.sink = sink }

// SetDebugMode toggles the stderr frame log and the on-screen stats overlay.
func (s *Strip) SetDebugMode(enabled bool) { s.debug = enabled }

// Position returns the eased scroll offset.
func (s *Strip) Position() float64 { return s.st.currentPosition }

// TargetPosition returns the scroll offset the strip is chasing.
func (s *Strip) TargetPosition() float64 { return s.st.targetPosition }

// Velocity returns the smoothed scroll velocity in world units per second.
func (s *Strip) Velocity() float64 { return s.st.avgVelocity }

// DistortionFactor returns the current surface warp factor in [0, 1].
func (s *Strip) DistortionFactor() float64 { return s.st.currentDistortion }

// DragState reports whether a pointer is actively scrubbing the strip.
func (s *Strip) DragState() DragState { return s.st.dragState }

// IsDisposed returns true once Dispose has run.
func (s *Strip) IsDisposed() bool { return s.disposed }

func (s *Strip) emit(evt StripEvent) {
	if s.sink != nil {
		s.sink.EmitStripEvent(evt)
	}
}

// --- Frame driver ---

// Update runs one frame: it measures the delta since the previous frame
// (first frame falls back to 1/60 s), consumes one injected event or polls
// the input devices, and advances the engine. No-op after Dispose.
func (s *Strip) Update() {
	if s.disposed {
		return
	}

	now := time.Now()
	dt := 1.0 / referenceFrameRate
	if s.hasFrame {
		dt = now.Sub(s.lastFrame).Seconds()
		if dt < 0 {
			dt = 0
		} else if dt > maxFrameDelta {
			dt = maxFrameDelta
		}
	}
	s.lastFrame = now
	s.hasFrame = true

	if !s.processInjectedInput() {
		s.pollDevice()
	}
	s.Advance(dt)
}

// Advance steps the engine by dt seconds: texture results, tweens, motion,
// distortion factor, then per-panel wrap layout and surface displacement.
// Within one call the motion output is fully computed before any panel
// consumes it. Exposed so headless hosts and tests can drive the strip with
// an explicit clock. dt <= 0 leaves motion, distortion, and layout state
// untouched; finished texture decodes are still applied.
func (s *Strip) Advance(dt float64) {
	if s.disposed {
		return
	}

	s.drainTextures()
	s.pumpTweens(dt)

	s.st.tickScrollTimer(dt)
	s.st.step(dt, s.cfg.Smoothing)
	s.st.updateDistortion(&s.cfg, dt)

	for _, p := range s.panels {
		layoutPanel(p, &s.cfg, s.st.currentPosition, dt)
	}
	for _, p := range s.panels {
		if p.Visible {
			applyDistortion(p, &s.cfg, s.st.currentDistortion)
		}
	}
}

// drainTextures applies finished background decodes to their panels.
func (s *Strip) drainTextures() {
	if s.loader == nil {
		return
	}
	s.resultBuf = s.loader.drain(s.resultBuf[:0])
	for _, res := range s.resultBuf {
		if res.err != nil {
			fmt.Fprintf(os.Stderr, "[driftwood] warning: %v\n", res.err)
			for _, p := range s.panels {
				if p.Index%s.cfg.ImagePoolSize == res.pool && p.TextureState == TexturePending {
					p.markFailed()
					s.emit(StripEvent{Type: EventTextureFailed, Panel: p.Index})
				}
			}
			continue
		}

		img := ebiten.NewImageFromImage(res.img)
		s.created = append(s.created, img)
		for _, p := range s.panels {
			if p.Index%s.cfg.ImagePoolSize != res.pool || p.TextureState != TexturePending {
				continue
			}
			p.setTexture(img, &s.cfg)
			p.Alpha = 0
			p.reveal = newRevealTween(p, s.cfg.RevealDuration)
			s.reveals = append(s.reveals, p.reveal)
			s.emit(StripEvent{Type: EventTextureLoaded, Panel: p.Index})
		}
	}
}

// pumpTweens advances reveal tweens and the programmatic scroll tween.
func (s *Strip) pumpTweens(dt float64) {
	if dt <= 0 {
		return
	}

	alive := s.reveals[:0]
	for _, r := range s.reveals {
		r.Update(dt)
		if !r.Done {
			alive = append(alive, r)
		}
	}
	s.reveals = alive

	if s.scrollTween != nil {
		val, done := s.scrollTween.Update(float32(dt))
		s.st.targetPosition = float64(val)
		if done {
			s.scrollTween = nil
		}
	}
}

// --- Programmatic scrolling ---

// ScrollTo animates the target position to pos over duration seconds.
// A non-positive duration jumps immediately. The eased current position still
// chases the target, so the motion stays continuous.
func (s *Strip) ScrollTo(pos float64, duration float64) {
	if s.disposed {
		return
	}
	if duration <= 0 {
		s.st.targetPosition = pos
		s.scrollTween = nil
		return
	}
	s.scrollTween = gween.New(float32(s.st.targetPosition), float32(pos),
		float32(duration), ease.OutQuad)
}

// ScrollToPanel scrolls the nearest wrap of the given panel slot to the
// strip center over duration seconds.
func (s *Strip) ScrollToPanel(index int, duration float64) {
	if s.disposed {
		return
	}
	slot := ((index % s.cfg.PanelCount) + s.cfg.PanelCount) % s.cfg.PanelCount
	base := float64(slot) * s.cfg.unit()
	delta := wrapOffset(base-s.st.targetPosition, s.cfg.totalWidth())
	s.ScrollTo(s.st.targetPosition+delta, duration)
	s.emit(StripEvent{Type: EventPanelSnap, Panel: slot, Position: s.st.targetPosition + delta})
}

// --- Rendering ---

// Resize records the host container size. Call from ebiten.Game.Layout.
// A zero size falls back to a default per the degenerate layout rule.
func (s *Strip) Resize(w, h int) {
	if s.disposed {
		return
	}
	s.view.resize(w, h)
}

// Draw renders the visible panels into screen, most-centered panel on top.
// No-op after Dispose.
func (s *Strip) Draw(screen *ebiten.Image) {
	if s.disposed {
		return
	}
	b := screen.Bounds()
	s.view.resize(b.Dx(), b.Dy())
	m := s.view.computeMatrix()

	s.drawBuf = s.drawBuf[:0]
	for _, p := range s.panels {
		if p.Visible && p.grid != nil {
			s.drawBuf = append(s.drawBuf, p)
		}
	}
	sort.Slice(s.drawBuf, func(i, j int) bool {
		return math.Abs(s.drawBuf[i].CurrentX) > math.Abs(s.drawBuf[j].CurrentX)
	})

	for _, p := range s.drawBuf {
		s.drawPanel(screen, p, m)
	}

	if s.debug {
		s.drawDebugOverlay(screen)
	}
}

// drawPanel view-transforms the panel's displaced surface into the scratch
// buffer and submits one DrawTriangles call.
func (s *Strip) drawPanel(screen *ebiten.Image, p *Panel, m [6]float64) {
	verts := p.grid.vertices
	if len(verts) == 0 || len(p.scratch) < len(verts) {
		return
	}

	img := p.image
	if img == nil {
		img = WhitePixel
	}

	cr := float32(p.Color.R)
	cg := float32(p.Color.G)
	cb := float32(p.Color.B)
	ca := float32(p.Color.A * p.Alpha)

	for i, v := range verts {
		wx := p.CurrentX + float64(v.DstX)*p.ScaleX
		wy := float64(v.DstY) * p.ScaleY
		sx, sy := transformPoint(m, wx, wy)
		out := &p.scratch[i]
		out.DstX = float32(sx)
		out.DstY = float32(sy)
		out.SrcX = v.SrcX
		out.SrcY = v.SrcY
		out.ColorR = cr
		out.ColorG = cg
		out.ColorB = cb
		out.ColorA = ca
	}

	screen.DrawTriangles(p.scratch[:len(verts)], p.grid.indices, img, &s.triOpts)
}

// --- Teardown ---

// Dispose tears the strip down: stops the loader workers, releases panel
// geometry and the images the strip decoded, and turns every further Update,
// Draw, and input call into a no-op. A decode completing after Dispose is
// abandoned, never applied.
func (s *Strip) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true

	if s.loader != nil {
		s.loader.stop()
		s.loader = nil
	}
	for _, p := range s.panels {
		p.dispose()
	}
	for _, img := range s.created {
		img.Deallocate()
	}
	s.created = nil
	s.panels = nil
	s.reveals = nil
	s.scrollTween = nil
	s.drawBuf = nil
	s.injectQueue = nil
	s.resultBuf = nil
	s.sink = nil
	s.view = nil
}

// --- Run helper ---

// RunConfig configures the window created by Run.
type RunConfig struct {
	Title         string
	Width, Height int
	Resizable     bool
}

// game adapts a Strip to ebiten.Game for Run.
type game struct {
	strip *Strip
}

func (g *game) Update() error {
	g.strip.Update()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.strip.Draw(screen)
}

func (g *game) Layout(w, h int) (int, int) {
	g.strip.Resize(w, h)
	return w, h
}

// Run opens a window and drives the strip until the window closes. For full
// control implement ebiten.Game yourself and call Update/Draw/Resize
// directly.
func Run(strip *Strip, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 1280
	}
	if cfg.Height <= 0 {
		cfg.Height = 720
	}
	if cfg.Title == "" {
		cfg.Title = "driftwood"
	}
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(cfg.Title)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	if err := ebiten.RunGame(&game{strip: strip}); err != nil {
		return fmt.Errorf("driftwood: run: %w", err)
	}
	return nil
}
