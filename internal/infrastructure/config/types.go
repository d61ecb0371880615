package config

// GameConfig is the root config for game.json
type GameConfig struct {
	Display    DisplayConfig    `json:"display"`
	Movement   MovementConfig   `json:"movement"`
	Player     PlayerConfig     `json:"player"`
	Visibility VisibilityConfig `json:"visibility"`
}

type DisplayConfig struct {
	ScreenWidth  int `json:"screenWidth"`
	ScreenHeight int `json:"screenHeight"`
	Scale        int `json:"scale"`
	Framerate    int `json:"framerate"`
	TilePixels   int `json:"tilePixels"` // screen pixels per grid cell
}

// MovementConfig speeds are in grid cells per second
type MovementConfig struct {
	WalkSpeed float64 `json:"walkSpeed"`
	RunSpeed  float64 `json:"runSpeed"`
}

// PlayerConfig sizes are in grid cells
type PlayerConfig struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// VisibilityConfig selects the fog look.
// Either Radius/Color or exactly one preset may be given, never both.
type VisibilityConfig struct {
	Radius int       `json:"radius,omitempty"`
	Color  []float64 `json:"color,omitempty"` // RGB, each channel in [0,1]

	Dark       bool `json:"dark,omitempty"`
	OpaqueDark bool `json:"opaqueDark,omitempty"`
	DenseFog   bool `json:"denseFog,omitempty"`
	LightFog   bool `json:"lightFog,omitempty"`
}

// Presets returns how many named presets are switched on
func (v VisibilityConfig) Presets() int {
	n := 0
	for _, on := range []bool{v.Dark, v.OpaqueDark, v.DenseFog, v.LightFog} {
		if on {
			n++
		}
	}
	return n
}

// Defaults used when game.json leaves a value at zero
const (
	DefaultScreenWidth  = 320
	DefaultScreenHeight = 240
	DefaultScale        = 2
	DefaultFramerate    = 60
	DefaultTilePixels   = 16
	DefaultWalkSpeed    = 0.6 // 0.01 cells per frame at 60fps
	DefaultRunSpeed     = 1.8
	DefaultPlayerSize   = 0.5
)

// ApplyDefaults fills zero values with defaults.
// Visibility is left alone; its zero value already means the default fog.
func (c *GameConfig) ApplyDefaults() {
	if c.Display.ScreenWidth <= 0 {
		c.Display.ScreenWidth = DefaultScreenWidth
	}
	if c.Display.ScreenHeight <= 0 {
		c.Display.ScreenHeight = DefaultScreenHeight
	}
	if c.Display.Scale <= 0 {
		c.Display.Scale = DefaultScale
	}
	if c.Display.Framerate <= 0 {
		c.Display.Framerate = DefaultFramerate
	}
	if c.Display.TilePixels <= 0 {
		c.Display.TilePixels = DefaultTilePixels
	}
	if c.Movement.WalkSpeed <= 0 {
		c.Movement.WalkSpeed = DefaultWalkSpeed
	}
	if c.Movement.RunSpeed <= 0 {
		c.Movement.RunSpeed = DefaultRunSpeed
	}
	if c.Player.Width <= 0 {
		c.Player.Width = DefaultPlayerSize
	}
	if c.Player.Height <= 0 {
		c.Player.Height = DefaultPlayerSize
	}
}

// DefaultGameConfig returns a config with every default applied
func DefaultGameConfig() *GameConfig {
	cfg := &GameConfig{}
	cfg.ApplyDefaults()
	return cfg
}
