package system

import (
	"errors"
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/IndecisiveBear/IndecisiveBearGame/internal/domain/entity"
	"github.com/IndecisiveBear/IndecisiveBearGame/internal/infrastructure/config"
	"github.com/IndecisiveBear/IndecisiveBearGame/internal/infrastructure/logger"
)

// ErrInvalidFogConfig is wrapped by every Configure validation failure
var ErrInvalidFogConfig = errors.New("invalid fog config")

// DefaultFogRadius is the sight radius in cells when none is configured
const DefaultFogRadius = 9

// Lighting falloff
const (
	brightBase    = 0.7
	brightFalloff = 0.8
	darkBase      = 0.5
	darkFalloff   = 0.8
	brightBlend   = 0.8 // how far the bright colour is blended from the fog colour towards white
)

type fogPreset struct {
	color  colorful.Color
	radius int
}

var (
	black = colorful.Color{R: 0, G: 0, B: 0}
	white = colorful.Color{R: 1, G: 1, B: 1}

	presetDark       = fogPreset{color: black, radius: 9}
	presetOpaqueDark = fogPreset{color: black, radius: 5}
	presetDenseFog   = fogPreset{color: colorful.Color{R: 0.55, G: 0.55, B: 0.55}, radius: 4}
	presetLightFog   = fogPreset{color: colorful.Color{R: 0.85, G: 0.85, B: 0.85}, radius: 12}
)

// VisibilityEngine maintains the fog, bright and dark overlays.
// Each overlay is an alpha grid indexed [row][col]; 0 is fully transparent.
type VisibilityEngine struct {
	grid *entity.Grid

	radius      int
	FogColor    colorful.Color
	BrightColor colorful.Color
	DarkColor   colorful.Color

	Fog    [][]float64
	Bright [][]float64
	Dark   [][]float64

	visited [][]bool
}

// NewVisibilityEngine creates an engine with the default fog for grid.
// All fog alphas start opaque until the first Recompute.
func NewVisibilityEngine(grid *entity.Grid) *VisibilityEngine {
	v := &VisibilityEngine{
		grid:      grid,
		radius:    DefaultFogRadius,
		FogColor:  black,
		DarkColor: black,
		Fog:       newOverlay(grid, 1),
		Bright:    newOverlay(grid, 0),
		Dark:      newOverlay(grid, 0),
		visited:   make([][]bool, grid.Rows()),
	}
	for r := range v.visited {
		v.visited[r] = make([]bool, grid.Cols())
	}
	v.BrightColor = v.FogColor.BlendRgb(white, brightBlend)
	return v
}

func newOverlay(grid *entity.Grid, fill float64) [][]float64 {
	overlay := make([][]float64, grid.Rows())
	for r := range overlay {
		overlay[r] = make([]float64, grid.Cols())
		for c := range overlay[r] {
			overlay[r][c] = fill
		}
	}
	return overlay
}

// Radius returns the sight radius in cells
func (v *VisibilityEngine) Radius() int {
	return v.radius
}

// Visited reports whether the last Recompute reached the cell
func (v *VisibilityEngine) Visited(row, col int) bool {
	if !v.grid.InBounds(row, col) {
		return false
	}
	return v.visited[row][col]
}

// Configure selects the fog colour and radius.
// Nothing changes unless the whole config is valid.
func (v *VisibilityEngine) Configure(cfg config.VisibilityConfig) error {
	preset, err := validateFog(cfg)
	if err != nil {
		return err
	}

	v.FogColor = preset.color
	v.radius = preset.radius
	v.BrightColor = v.FogColor.BlendRgb(white, brightBlend)

	logger.Debug("fog configured", "radius", v.radius, "color", v.FogColor.Hex())
	return nil
}

func validateFog(cfg config.VisibilityConfig) (fogPreset, error) {
	if n := cfg.Presets(); n > 1 {
		return fogPreset{}, fmt.Errorf("%w: %d presets selected, at most one allowed", ErrInvalidFogConfig, n)
	}
	explicit := len(cfg.Color) > 0 || cfg.Radius != 0
	if cfg.Presets() == 1 && explicit {
		return fogPreset{}, fmt.Errorf("%w: a preset cannot be combined with color or radius", ErrInvalidFogConfig)
	}
	if len(cfg.Color) > 0 && len(cfg.Color) != 3 {
		return fogPreset{}, fmt.Errorf("%w: color needs 3 channels, got %d", ErrInvalidFogConfig, len(cfg.Color))
	}
	for i, ch := range cfg.Color {
		if ch < 0 || ch > 1 || math.IsNaN(ch) {
			return fogPreset{}, fmt.Errorf("%w: color channel %d is %v, outside [0,1]", ErrInvalidFogConfig, i, ch)
		}
	}
	if cfg.Radius < 0 {
		return fogPreset{}, fmt.Errorf("%w: negative radius %d", ErrInvalidFogConfig, cfg.Radius)
	}

	switch {
	case cfg.Dark:
		return presetDark, nil
	case cfg.OpaqueDark:
		return presetOpaqueDark, nil
	case cfg.DenseFog:
		return presetDenseFog, nil
	case cfg.LightFog:
		return presetLightFog, nil
	}

	p := fogPreset{color: black, radius: DefaultFogRadius}
	if len(cfg.Color) == 3 {
		p.color = colorful.Color{R: cfg.Color[0], G: cfg.Color[1], B: cfg.Color[2]}
	}
	if cfg.Radius > 0 {
		p.radius = cfg.Radius
	}
	return p, nil
}

// fogNode is one queued cell of the sight flood fill
type fogNode struct {
	row, col  int
	remaining int
}

// Recompute rebuilds fog and bright from the viewer cell.
// Sight spreads four-ways through non-wall cells; a cell at path distance d
// gets fog alpha d/radius. Walls on the viewer layer are lit but stop the spread.
func (v *VisibilityEngine) Recompute(origin entity.Cell) {
	for r := range v.Fog {
		for c := range v.Fog[r] {
			v.Fog[r][c] = 1
			v.Bright[r][c] = 0
			v.visited[r][c] = false
		}
	}
	if !v.grid.InBounds(origin.Row, origin.Col) || v.radius <= 0 {
		return
	}

	view := v.grid.Layer(origin.Layer)
	v.Fog[origin.Row][origin.Col] = 0
	v.visited[origin.Row][origin.Col] = true

	queue := []fogNode{{row: origin.Row, col: origin.Col, remaining: v.radius}}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]

		if n.remaining == 0 {
			continue
		}
		if view.IsWall(n.row, n.col) && (n.row != origin.Row || n.col != origin.Col) {
			continue
		}

		remaining := n.remaining - 1
		alpha := 1 - float64(remaining)/float64(v.radius)
		for _, d := range [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
			r, c := n.row+d[0], n.col+d[1]
			if !v.grid.InBounds(r, c) || alpha >= v.Fog[r][c] {
				continue
			}
			v.Fog[r][c] = alpha
			v.visited[r][c] = true
			queue = append(queue, fogNode{row: r, col: c, remaining: remaining})
		}
	}

	for r := range v.visited {
		for c := range v.visited[r] {
			if v.visited[r][c] {
				v.Bright[r][c] = v.brightness(r, c, origin.Layer)
			}
		}
	}
}

// brightness scans from the top layer down to layer; the first item decides
func (v *VisibilityEngine) brightness(row, col, layer int) float64 {
	for k := v.grid.Depth() - 1; k >= layer; k-- {
		kind := v.grid.Layer(k).At(row, col)
		if kind == entity.ItemEmpty {
			continue
		}
		delta := float64(k - layer)
		if kind == entity.ItemWall {
			return 1 - brightBase*math.Pow(brightFalloff, delta)
		}
		if k > layer {
			return 1 - brightBase*math.Pow(brightFalloff, delta-1)
		}
		return 0
	}
	return 0
}

// RecomputeDarkness shades cells the bright pass left untouched by how far
// below layer the nearest surface is
func (v *VisibilityEngine) RecomputeDarkness(layer int) {
	for r := range v.Dark {
		for c := range v.Dark[r] {
			if v.Bright[r][c] != 0 {
				v.Dark[r][c] = 0
				continue
			}
			v.Dark[r][c] = v.darkness(r, c, layer)
		}
	}
}

func (v *VisibilityEngine) darkness(row, col, layer int) float64 {
	if layer <= 0 {
		return 0
	}
	if v.grid.Layer(layer-1).IsWall(row, col) {
		return 0
	}

	delta := layer
	for k := layer - 1; k >= 0; k-- {
		if !v.grid.Layer(k).IsEmpty(row, col) {
			delta = layer - 1 - k
			break
		}
	}
	if delta < 1 {
		return 0
	}
	return 1 - darkBase*math.Pow(darkFalloff, float64(delta-1))
}
