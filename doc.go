// Package driftwood is an infinitely-looping, fluid-warping image strip for
// [Ebitengine].
//
// Driftwood renders a horizontal loop of image panels that respond to pointer
// drag, mouse wheel, touch, and keyboard input with momentum and a velocity-
// driven surface distortion. A fixed window of panels wraps toroidally over a
// conceptually infinite sequence, so the strip never reaches an end.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	strip := driftwood.NewStrip(driftwood.Config{
//		Images: pool, // []*ebiten.Image
//	})
//	driftwood.Run(strip, driftwood.RunConfig{
//		Title: "Gallery", Width: 1280, Height: 720,
//	})
//
// For full control, implement [ebiten.Game] yourself and call
// [Strip.Update] and [Strip.Draw] directly:
//
//	type Game struct{ strip *driftwood.Strip }
//
//	func (g *Game) Update() error        { g.strip.Update(); return nil }
//	func (g *Game) Draw(s *ebiten.Image) { g.strip.Draw(s) }
//	func (g *Game) Layout(w, h int) (int, int) { g.strip.Resize(w, h); return w, h }
//
// # Interaction
//
// Dragging a panel scrubs the strip and ramps the surface warp with pointer
// speed; releasing with a flick seeds momentum that decays over time. The
// wheel and single-finger touch pans feed the same integrator, and the arrow
// keys snap exactly one panel left or right. All interaction modes can be
// disabled independently via [Config].
//
// Images are decoded on background goroutines and eased in with a short
// reveal tween (via [gween]) when they arrive; until then each panel shows a
// solid fallback color. Strip events (drag start/end, panel snap, texture
// load) can be forwarded to an ECS via the [Donburi] adapter in driftwood/ecs.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package driftwood
