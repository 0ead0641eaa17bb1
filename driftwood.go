package driftwood

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// toRGBA converts to a premultiplied color.RGBA for image fills.
func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(c.R * c.A * 255),
		G: uint8(c.G * c.A * 255),
		B: uint8(c.B * c.A * 255),
		A: uint8(c.A * 255),
	}
}

// Vec2 is a 2D vector used for positions, offsets, and sizes throughout the API.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// WhitePixel is a 1x1 white image used for panels that have no texture yet.
var WhitePixel *ebiten.Image

func init() {
	WhitePixel = ebiten.NewImage(1, 1)
	WhitePixel.Fill(ColorWhite.toRGBA())
}

// FitMode selects how a loaded image is fitted into a panel's fixed plane.
type FitMode uint8

const (
	// FitContain letterboxes: the whole image is visible, the panel plane
	// shrinks along one axis to match the image aspect.
	FitContain FitMode = iota
	// FitCover crops: the panel plane keeps its full size and the image is
	// center-cropped to the panel aspect.
	FitCover
)

// TextureState tracks the lifecycle of a panel's image.
type TextureState uint8

const (
	// TexturePending means the image has not arrived yet; the panel shows
	// its fallback color.
	TexturePending TextureState = iota
	// TextureLoaded means the image is decoded and mapped onto the panel.
	TextureLoaded
	// TextureFailed means decoding failed; the panel keeps its fallback
	// color permanently. Loads are never retried.
	TextureFailed
)

// DragState is the input controller's interaction state.
type DragState uint8

const (
	// DragIdle means no pointer is actively scrubbing the strip.
	DragIdle DragState = iota
	// DragActive means a pointer is down and moving the strip.
	DragActive
)

// StripEventType identifies a kind of strip event.
type StripEventType uint8

const (
	EventDragStart     StripEventType = iota // pointer began scrubbing the strip
	EventDragEnd                             // pointer released, possibly with a flick
	EventPanelSnap                           // keyboard or ScrollToPanel moved by whole panels
	EventTextureLoaded                       // a panel's image finished decoding
	EventTextureFailed                       // a panel's image could not be decoded
)

// StripEvent carries strip interaction and lifecycle data.
type StripEvent struct {
	Type  StripEventType
	Panel int // panel index, -1 when the event is not panel-specific

	// Position is the strip's target scroll offset at emit time.
	Position float64
	// Velocity is the flick velocity for EventDragEnd, 0 otherwise.
	Velocity float64
}

// EventSink receives strip events. Set one on a Strip to forward events to an
// ECS or any other consumer; see the driftwood/ecs adapter.
type EventSink interface {
	EmitStripEvent(event StripEvent)
}
