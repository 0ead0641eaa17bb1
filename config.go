package driftwood

import (
	"io/fs"

	"github.com/hajimehoshi/ebiten/v2"
)

// Config configures a Strip. All fields are optional; zero values are replaced
// by the documented defaults. The configuration is fixed for the lifetime of
// the Strip — changing layout requires disposing and creating a new instance.
type Config struct {
	// PanelWidth and PanelHeight are the panel plane size in world units.
	// Defaults: 3.0 and 1.5.
	PanelWidth  float64
	PanelHeight float64

	// Gap is the spacing between panel origins beyond PanelWidth. Default 0.1.
	Gap float64

	// FitMode selects contain (letterbox) or cover (crop) image fitting.
	// Default FitContain.
	FitMode FitMode

	// PanelCount is the number of panel slots in the loop. Default 10.
	PanelCount int

	// ImagePoolSize is the number of distinct source images cycled via
	// index mod ImagePoolSize. Defaults to len(Images) or len(ImagePaths)
	// when either is set, otherwise 5.
	ImagePoolSize int

	// GridCols and GridRows set the surface tessellation of each panel.
	// Defaults: 24 and 12.
	GridCols int
	GridRows int

	// Images is an optional pool of pre-decoded images, applied to panels
	// immediately at creation (no background loading).
	Images []*ebiten.Image

	// ImagePaths is an optional pool of image file paths, decoded on
	// background goroutines. FS is the filesystem the paths are opened
	// from; nil means the host OS filesystem.
	ImagePaths []string
	FS         fs.FS

	// DisableDrag, DisableWheelTouch, and DisableKeyboard switch off the
	// corresponding interaction mode. All modes are enabled by default.
	DisableDrag       bool
	DisableWheelTouch bool
	DisableKeyboard   bool

	// VisibleHeight is the world-unit height mapped onto the screen height,
	// fixing the pixels-per-unit scale. Default 2.0.
	VisibleHeight float64

	// Motion tunables. Zero means default.
	Smoothing          float64 // position approach factor per frame, default 0.1
	SlideLerp          float64 // per-panel easing factor per frame, default 0.075
	DragSensitivity    float64 // world units per pixel of drag, default 0.01
	WheelSensitivity   float64 // world units per wheel delta, default 0.01
	FlickScale         float64 // flick velocity per pixel of total drag, default 0.01
	MomentumMultiplier float64 // scales momentum seeded by a flick, default 1.0

	// Distortion tunables. Zero means default.
	DistortionSensitivity float64 // factor per unit of velocity, default 0.15
	DistortionSmoothing   float64 // factor approach per frame, default 0.075
	DistortionDecayFast   float64 // per-frame decay when settling, default 0.95
	DistortionDecaySlow   float64 // per-frame decay while moving fast, default 0.98
	MaxDistortion         float64 // peak bump amplitude, default 2.5
	DistortionRadius      float64 // bump radius in world units, default 2.0
	BulgeScale            float64 // world units of displacement per amplitude unit, default 0.08

	// RevealDuration is the fade-in time in seconds when a texture arrives.
	// Default 0.45.
	RevealDuration float64
}

// withDefaults returns a copy of cfg with zero values replaced by defaults.
func (cfg Config) withDefaults() Config {
	if cfg.PanelWidth == 0 {
		cfg.PanelWidth = 3.0
	}
	if cfg.PanelHeight == 0 {
		cfg.PanelHeight = 1.5
	}
	if cfg.Gap == 0 {
		cfg.Gap = 0.1
	}
	if cfg.PanelCount == 0 {
		cfg.PanelCount = 10
	}
	if cfg.ImagePoolSize == 0 {
		switch {
		case len(cfg.Images) > 0:
			cfg.ImagePoolSize = len(cfg.Images)
		case len(cfg.ImagePaths) > 0:
			cfg.ImagePoolSize = len(cfg.ImagePaths)
		default:
			cfg.ImagePoolSize = 5
		}
	}
	if cfg.GridCols == 0 {
		cfg.GridCols = 24
	}
	if cfg.GridRows == 0 {
		cfg.GridRows = 12
	}
	if cfg.VisibleHeight == 0 {
		cfg.VisibleHeight = 2.0
	}
	if cfg.Smoothing == 0 {
		cfg.Smoothing = 0.1
	}
	if cfg.SlideLerp == 0 {
		cfg.SlideLerp = 0.075
	}
	if cfg.DragSensitivity == 0 {
		cfg.DragSensitivity = 0.01
	}
	if cfg.WheelSensitivity == 0 {
		cfg.WheelSensitivity = 0.01
	}
	if cfg.FlickScale == 0 {
		cfg.FlickScale = 0.01
	}
	if cfg.MomentumMultiplier == 0 {
		cfg.MomentumMultiplier = 1.0
	}
	if cfg.DistortionSensitivity == 0 {
		cfg.DistortionSensitivity = 0.15
	}
	if cfg.DistortionSmoothing == 0 {
		cfg.DistortionSmoothing = 0.075
	}
	if cfg.DistortionDecayFast == 0 {
		cfg.DistortionDecayFast = 0.95
	}
	if cfg.DistortionDecaySlow == 0 {
		cfg.DistortionDecaySlow = 0.98
	}
	if cfg.MaxDistortion == 0 {
		cfg.MaxDistortion = 2.5
	}
	if cfg.DistortionRadius == 0 {
		cfg.DistortionRadius = 2.0
	}
	if cfg.BulgeScale == 0 {
		cfg.BulgeScale = 0.08
	}
	if cfg.RevealDuration == 0 {
		cfg.RevealDuration = 0.45
	}
	return cfg
}

// unit returns the spacing between adjacent panel origins.
func (cfg *Config) unit() float64 {
	return cfg.PanelWidth + cfg.Gap
}

// totalWidth returns the full loop width in world units.
func (cfg *Config) totalWidth() float64 {
	return float64(cfg.PanelCount) * cfg.unit()
}
