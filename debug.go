package driftwood

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// drawDebugOverlay prints the engine state readout in the top-left corner.
// Only called when debug mode is on.
func (s *Strip) drawDebugOverlay(screen *ebiten.Image) {
	visible := 0
	loaded := 0
	for _, p := range s.panels {
		if p.Visible {
			visible++
		}
		if p.TextureState == TextureLoaded {
			loaded++
		}
	}

	decel := " "
	if s.st.isDecelerating {
		decel = "v"
	}
	drag := " "
	if s.st.dragState == DragActive {
		drag = "drag"
	} else if s.st.isScrolling {
		drag = "scroll"
	}

	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"FPS %.1f  TPS %.1f\npos %.2f -> %.2f  auto %.4f\nvel %.2f peak %.2f %s\nwarp %.3f -> %.3f  %s\npanels %d visible, %d textured",
		ebiten.ActualFPS(), ebiten.ActualTPS(),
		s.st.currentPosition, s.st.targetPosition, s.st.autoScrollSpeed,
		s.st.avgVelocity, s.st.peakVelocity, decel,
		s.st.currentDistortion, s.st.targetDistortion, drag,
		visible, loaded))
}
