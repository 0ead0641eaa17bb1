package driftwood

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
	"testing"
	"testing/fstest"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// encodePNG returns a solid-color PNG for the loader tests.
func encodePNG(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

// settleLoader pumps the strip until every panel leaves the pending state or
// the deadline passes.
func settleLoader(t *testing.T, s *Strip) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for {
		pending := false
		for _, p := range s.panels {
			if p.TextureState == TexturePending {
				pending = true
				break
			}
		}
		if !pending {
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("loader did not finish in time")
		}
		time.Sleep(5 * time.Millisecond)
		s.Advance(frameDT)
	}
}

func TestNewStripSettledLayout(t *testing.T) {
	s := newTestStrip()

	for _, p := range s.panels {
		want := wrapOffset(p.BaseOffset, s.cfg.totalWidth())
		if p.TargetX != want {
			t.Errorf("panel %d: TargetX = %g, want %g", p.Index, p.TargetX, want)
		}
		if p.CurrentX != p.TargetX {
			t.Errorf("panel %d: CurrentX = %g, want settled at %g", p.Index, p.CurrentX, p.TargetX)
		}
		if !p.Visible {
			t.Errorf("panel %d: not visible at rest", p.Index)
		}
	}

	// The far side of the loop wraps to negative positions.
	if !approxEqual(s.Panel(5).TargetX, 15.5, 1e-9) {
		t.Errorf("panel 5 TargetX = %g, want 15.5", s.Panel(5).TargetX)
	}
	if !approxEqual(s.Panel(6).TargetX, -12.4, 1e-9) {
		t.Errorf("panel 6 TargetX = %g, want -12.4", s.Panel(6).TargetX)
	}
}

func TestNewStripFirstFrameDoesNotMovePanels(t *testing.T) {
	s := NewStrip(Config{PanelCount: 4, PanelWidth: 2.0, Gap: 0.5})

	before := make([]float64, len(s.panels))
	for i, p := range s.panels {
		if p.CurrentX != p.TargetX {
			t.Fatalf("panel %d: CurrentX = %g, TargetX = %g, want settled at rest",
				p.Index, p.CurrentX, p.TargetX)
		}
		before[i] = p.CurrentX
	}

	s.Advance(frameDT)

	for i, p := range s.panels {
		if p.CurrentX != before[i] {
			t.Errorf("panel %d moved on the first frame: %g -> %g",
				p.Index, before[i], p.CurrentX)
		}
	}
}

func TestStripConvergesToTarget(t *testing.T) {
	s := newTestStrip()
	s.ScrollTo(4.0, 0)

	stepN(s, 600)

	if !approxEqual(s.Position(), 4.0, 1e-3) {
		t.Errorf("position = %g, want 4.0", s.Position())
	}
	// Panels settled at the wrapped offsets for the new position.
	for _, p := range s.panels {
		want := wrapOffset(p.BaseOffset-4.0, s.cfg.totalWidth())
		if !approxEqual(p.CurrentX, want, 1e-2) {
			t.Errorf("panel %d: CurrentX = %g, want %g", p.Index, p.CurrentX, want)
		}
	}
}

func TestStripAdvanceZeroDeltaIsNoop(t *testing.T) {
	s := newTestStrip()
	s.WheelScroll(100)
	s.Advance(frameDT)

	pos := s.Position()
	dist := s.DistortionFactor()
	panelX := s.Panel(0).CurrentX

	s.Advance(0)

	if s.Position() != pos || s.DistortionFactor() != dist || s.Panel(0).CurrentX != panelX {
		t.Error("zero delta moved state")
	}
}

func TestStripAdvanceZeroDeltaStillDrainsTextures(t *testing.T) {
	fsys := fstest.MapFS{
		"a.png": &fstest.MapFile{Data: encodePNG(t, 16, 16, color.White)},
	}
	s := NewStrip(Config{ImagePaths: []string{"a.png"}, FS: fsys})
	defer s.Dispose()

	// Wait for the decode to land in the result buffer, then apply it with
	// a zero delta.
	deadline := time.Now().Add(5 * time.Second)
	for len(s.loader.results) == 0 {
		if time.Now().After(deadline) {
			t.Fatal("decode never finished")
		}
		time.Sleep(5 * time.Millisecond)
	}
	s.Advance(0)

	if s.Panel(0).TextureState != TextureLoaded {
		t.Errorf("state = %v, want loaded after a zero-delta drain", s.Panel(0).TextureState)
	}
}

func TestStripVelocityTracksMotion(t *testing.T) {
	s := newTestStrip()
	if s.Velocity() != 0 {
		t.Errorf("velocity at rest = %g, want 0", s.Velocity())
	}

	s.ScrollTo(10, 0)
	stepN(s, 3)

	if s.Velocity() <= 0 {
		t.Errorf("velocity = %g, want > 0 while converging", s.Velocity())
	}
}

func TestScrollToAnimates(t *testing.T) {
	s := newTestStrip()
	s.ScrollTo(-3.1, 0.5)

	// Mid-animation the target is strictly between the endpoints.
	stepN(s, 15)
	mid := s.TargetPosition()
	if mid <= -3.1 || mid >= 0 {
		t.Errorf("mid-animation target = %g, want inside (-3.1, 0)", mid)
	}

	stepN(s, 45)
	if !approxEqual(s.TargetPosition(), -3.1, 1e-3) {
		t.Errorf("final target = %g, want -3.1", s.TargetPosition())
	}
	if s.scrollTween != nil {
		t.Error("finished tween not released")
	}
}

func TestScrollToZeroDurationJumps(t *testing.T) {
	s := newTestStrip()
	s.ScrollTo(7.5, 0)
	if s.TargetPosition() != 7.5 {
		t.Errorf("target = %g, want 7.5", s.TargetPosition())
	}
	if s.scrollTween != nil {
		t.Error("immediate scroll left a tween behind")
	}
}

func TestScrollToReplacesActiveTween(t *testing.T) {
	s := newTestStrip()
	s.ScrollTo(10, 1.0)
	stepN(s, 10)

	s.ScrollTo(-5, 0.25)
	stepN(s, 30)

	if !approxEqual(s.TargetPosition(), -5, 1e-3) {
		t.Errorf("target = %g, want -5 from the replacing tween", s.TargetPosition())
	}
}

func TestScrollToPanelNearestWrap(t *testing.T) {
	s := newTestStrip()
	sink := &recordingSink{}
	s.SetEventSink(sink)

	// Panel 9's base offset is 27.9; the nearest wrap from 0 is -3.1.
	s.ScrollToPanel(9, 0)
	if !approxEqual(s.TargetPosition(), -3.1, 1e-9) {
		t.Errorf("target = %g, want -3.1 (nearest wrap)", s.TargetPosition())
	}
	if sink.countOf(EventPanelSnap) != 1 {
		t.Errorf("snap events = %d, want 1", sink.countOf(EventPanelSnap))
	}
	if sink.events[0].Panel != 9 {
		t.Errorf("snap panel = %d, want 9", sink.events[0].Panel)
	}

	// Negative indices wrap around the slot count.
	s.ScrollToPanel(-1, 0)
	if !approxEqual(s.TargetPosition(), -3.1, 1e-9) {
		t.Errorf("target for slot -1 = %g, want -3.1", s.TargetPosition())
	}
}

func TestScrollToPanelCentersIt(t *testing.T) {
	s := newTestStrip()
	s.ScrollToPanel(3, 0)
	stepN(s, 600)

	if !approxEqual(s.Panel(3).CurrentX, 0, 1e-2) {
		t.Errorf("panel 3 CurrentX = %g, want centered at 0", s.Panel(3).CurrentX)
	}
}

func TestStripImagesAppliedAtConstruction(t *testing.T) {
	imgs := []*ebiten.Image{
		ebiten.NewImage(300, 150),
		ebiten.NewImage(100, 100),
	}
	s := NewStrip(Config{Images: imgs})

	for _, p := range s.panels {
		if p.TextureState != TextureLoaded {
			t.Errorf("panel %d: state = %v, want loaded", p.Index, p.TextureState)
		}
		if p.Image() != imgs[p.Index%2] {
			t.Errorf("panel %d: wrong pool image", p.Index)
		}
	}
	// Square image in a 2:1 panel letterboxes horizontally.
	if !approxEqual(s.Panel(1).ScaleX, 0.5, 1e-9) {
		t.Errorf("panel 1 ScaleX = %g, want 0.5", s.Panel(1).ScaleX)
	}
}

func TestStripLoadsTexturesFromFS(t *testing.T) {
	fsys := fstest.MapFS{
		"a.png": &fstest.MapFile{Data: encodePNG(t, 64, 32, color.RGBA{R: 255, A: 255})},
		"b.png": &fstest.MapFile{Data: encodePNG(t, 32, 64, color.RGBA{G: 255, A: 255})},
	}
	sink := &recordingSink{}

	s := NewStrip(Config{
		ImagePaths: []string{"a.png", "b.png"},
		FS:         fsys,
	})
	s.SetEventSink(sink)
	defer s.Dispose()

	settleLoader(t, s)

	for _, p := range s.panels {
		if p.TextureState != TextureLoaded {
			t.Fatalf("panel %d: state = %v, want loaded", p.Index, p.TextureState)
		}
		if p.Image() == nil {
			t.Fatalf("panel %d: no image attached", p.Index)
		}
	}
	if got := sink.countOf(EventTextureLoaded); got != len(s.panels) {
		t.Errorf("loaded events = %d, want %d", got, len(s.panels))
	}

	// Pool slots alternate across panels: even slots share a.png's image,
	// odd slots share b.png's.
	if s.Panel(0).Image() != s.Panel(2).Image() {
		t.Error("panels 0 and 2 do not share the pool image")
	}
	if s.Panel(0).Image() == s.Panel(1).Image() {
		t.Error("panels 0 and 1 share an image across pool slots")
	}
}

func TestStripLoaderFailureFallsBack(t *testing.T) {
	fsys := fstest.MapFS{
		"good.png": &fstest.MapFile{Data: encodePNG(t, 16, 16, color.White)},
		"bad.png":  &fstest.MapFile{Data: []byte("not an image")},
	}
	sink := &recordingSink{}

	s := NewStrip(Config{
		ImagePaths: []string{"good.png", "bad.png", "missing.png"},
		FS:         fsys,
	})
	s.SetEventSink(sink)
	defer s.Dispose()

	settleLoader(t, s)

	for _, p := range s.panels {
		want := TextureLoaded
		if p.Index%3 != 0 {
			want = TextureFailed
		}
		if p.TextureState != want {
			t.Errorf("panel %d: state = %v, want %v", p.Index, p.TextureState, want)
		}
	}
	if sink.countOf(EventTextureFailed) == 0 {
		t.Error("no failure events emitted")
	}
	// Failed panels keep their fallback tint.
	if s.Panel(1).Color == ColorWhite {
		t.Error("failed panel lost its fallback color")
	}
}

func TestStripRevealRampsAlpha(t *testing.T) {
	fsys := fstest.MapFS{
		"a.png": &fstest.MapFile{Data: encodePNG(t, 16, 16, color.White)},
	}
	s := NewStrip(Config{
		ImagePaths:     []string{"a.png"},
		FS:             fsys,
		RevealDuration: 0.25,
	})
	defer s.Dispose()

	settleLoader(t, s)

	p := s.Panel(0)
	if p.Alpha >= 1 {
		t.Fatalf("alpha = %g immediately after load, want < 1", p.Alpha)
	}

	stepN(s, 5)
	mid := p.Alpha
	if mid <= 0 || mid > 1 {
		t.Errorf("mid-reveal alpha = %g, want in (0, 1]", mid)
	}

	stepN(s, 30)
	if p.Alpha != 1 {
		t.Errorf("final alpha = %g, want 1", p.Alpha)
	}
	if len(s.reveals) != 0 {
		t.Errorf("finished reveals still tracked: %d", len(s.reveals))
	}
}

func TestStripDrawSmoke(t *testing.T) {
	s := NewStrip(Config{Images: []*ebiten.Image{ebiten.NewImage(64, 32)}})
	screen := ebiten.NewImage(640, 360)

	stepN(s, 10)
	s.Draw(screen)

	s.SetDebugMode(true)
	s.Draw(screen)
}

func TestStripDrawOrderCenterOnTop(t *testing.T) {
	s := newTestStrip()
	screen := ebiten.NewImage(640, 360)
	s.Draw(screen)

	if len(s.drawBuf) == 0 {
		t.Fatal("draw buffer empty")
	}
	last := s.drawBuf[len(s.drawBuf)-1]
	for _, p := range s.drawBuf {
		if math.Abs(p.CurrentX) < math.Abs(last.CurrentX) {
			t.Errorf("panel %d (|x|=%g) drawn before a more-centered one was last",
				p.Index, math.Abs(p.CurrentX))
		}
	}
}

func TestStripUpdateFirstFrame(t *testing.T) {
	s := newTestStrip()
	s.ScrollTo(1.0, 0)

	s.Update()

	// First frame steps at the 60 Hz reference delta.
	if !approxEqual(s.Position(), 0.1, 1e-9) {
		t.Errorf("position = %g, want 0.1 after one reference frame", s.Position())
	}
}

func TestStripDispose(t *testing.T) {
	s := NewStrip(Config{Images: []*ebiten.Image{ebiten.NewImage(8, 8)}})

	s.Dispose()

	if !s.IsDisposed() {
		t.Fatal("IsDisposed = false after Dispose")
	}
	if s.panels != nil || s.view != nil {
		t.Error("dispose left panels or view attached")
	}

	// Everything is a no-op afterwards, including a second Dispose.
	s.Dispose()
	s.Update()
	s.Advance(frameDT)
	s.ScrollTo(5, 0)
	s.Resize(100, 100)

	if s.st.targetPosition != 0 {
		t.Errorf("target = %g, want 0 after dispose", s.st.targetPosition)
	}
}

func TestStripDisposeStopsLoader(t *testing.T) {
	fsys := fstest.MapFS{
		"a.png": &fstest.MapFile{Data: encodePNG(t, 16, 16, color.White)},
	}
	s := NewStrip(Config{ImagePaths: []string{"a.png"}, FS: fsys})

	s.Dispose()

	if s.loader != nil {
		t.Error("loader still attached after dispose")
	}
	// A late result is abandoned, not applied.
	s.Advance(frameDT)
}

func TestStripInstancesIndependent(t *testing.T) {
	a := newTestStrip()
	b := newTestStrip()

	a.WheelScroll(500)
	stepN(a, 5)

	if b.TargetPosition() != 0 || b.Position() != 0 {
		t.Error("driving one strip moved another")
	}
	if b.DistortionFactor() != 0 {
		t.Error("distortion leaked across instances")
	}
}

func TestStripResizeAffectsHitTesting(t *testing.T) {
	s := newTestStrip()
	s.Resize(1280, 720)

	// The screen center moves with the new size.
	if p := s.hitTestPanel(640, 360); p == nil || p.Index != 0 {
		t.Errorf("new center hit = %v, want panel 0", p)
	}
}
