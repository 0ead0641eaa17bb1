// Gallery — an infinitely-looping image strip.
//
// Ten panels cycle through five procedurally generated "photos". Drag a panel
// and flick it to throw the strip; scroll the wheel or tap the arrow keys to
// pan; the surface warp ramps with scroll speed. Press D to toggle the debug
// readout.
//
// Demonstrates: NewStrip with a pre-decoded image pool, FitCover, Run, and
// the strip event sink.
package main

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"math"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/phanxgames/driftwood"
)

const (
	screenW = 1280
	screenH = 720

	poolSize = 5   // distinct generated images
	imgW     = 640 // generated image size in pixels
	imgH     = 400
)

// ---- image pool -----------------------------------------------------------

// makePool renders poolSize banded gradient images, each with its own hue
// drift, so the loop is visually distinguishable without asset files.
func makePool() []*ebiten.Image {
	pool := make([]*ebiten.Image, poolSize)
	for i := range pool {
		rgba := image.NewRGBA(image.Rect(0, 0, imgW, imgH))
		phase := float64(i) * 2 * math.Pi / poolSize
		for y := 0; y < imgH; y++ {
			fy := float64(y) / imgH
			for x := 0; x < imgW; x++ {
				fx := float64(x) / imgW
				wave := math.Sin(fx*6*math.Pi+phase) * 0.5
				r := 0.35 + 0.3*math.Sin(phase+fy*2) + 0.1*wave
				g := 0.35 + 0.3*math.Sin(phase+2+fx*3)
				b := 0.45 + 0.3*math.Sin(phase+4+fy*3) - 0.1*wave
				rgba.SetRGBA(x, y, color.RGBA{
					R: clamp8(r), G: clamp8(g), B: clamp8(b), A: 255,
				})
			}
		}
		pool[i] = ebiten.NewImageFromImage(rgba)
	}
	return pool
}

func clamp8(v float64) uint8 {
	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}
	return uint8(v * 255)
}

// ---- event logging --------------------------------------------------------

type logSink struct{}

func (logSink) EmitStripEvent(e driftwood.StripEvent) {
	switch e.Type {
	case driftwood.EventDragEnd:
		fmt.Fprintf(os.Stderr, "[gallery] flick velocity %.2f\n", e.Velocity)
	case driftwood.EventPanelSnap:
		fmt.Fprintf(os.Stderr, "[gallery] snap to position %.2f\n", e.Position)
	}
}

// ---- game -----------------------------------------------------------------

type game struct {
	strip *driftwood.Strip
	debug bool
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		g.debug = !g.debug
		g.strip.SetDebugMode(g.debug)
	}
	g.strip.Update()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{18, 18, 24, 255})
	g.strip.Draw(screen)
}

func (g *game) Layout(w, h int) (int, int) {
	g.strip.Resize(w, h)
	return w, h
}

func main() {
	strip := driftwood.NewStrip(driftwood.Config{
		Images:  makePool(),
		FitMode: driftwood.FitCover,
	})
	strip.SetEventSink(logSink{})
	defer strip.Dispose()

	ebiten.SetWindowSize(screenW, screenH)
	ebiten.SetWindowTitle("driftwood gallery")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(&game{strip: strip}); err != nil {
		log.Fatal(err)
	}
}
