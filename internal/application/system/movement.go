package system

import (
	"github.com/IndecisiveBear/IndecisiveBearGame/internal/domain/entity"
	"github.com/IndecisiveBear/IndecisiveBearGame/internal/infrastructure/config"
	"github.com/IndecisiveBear/IndecisiveBearGame/internal/infrastructure/logger"
)

// MovementSystem moves the player across the stacked grid with Intent & Apply:
// input becomes a displacement, the displacement is applied, then every
// obstacle around the player corrects it.
type MovementSystem struct {
	config *config.MovementConfig
	grid   *entity.Grid
	vis    *VisibilityEngine
	view   *entity.LayerView
}

// StepResult reports what one movement tick changed
type StepResult struct {
	Moved        bool
	CellChanged  bool
	LayerChanged bool
	Collisions   int
}

// NewMovementSystem creates a new movement system.
// vis may be nil when no overlays are needed.
func NewMovementSystem(cfg *config.MovementConfig, grid *entity.Grid, vis *VisibilityEngine) *MovementSystem {
	return &MovementSystem{
		config: cfg,
		grid:   grid,
		vis:    vis,
		view:   grid.Layer(0),
	}
}

// View returns the layer view of the last resolved layer
func (s *MovementSystem) View() *entity.LayerView {
	return s.view
}

// Sync rebuilds the layer view and every overlay for the player's current state.
// Call it once after placing the player.
func (s *MovementSystem) Sync(player *entity.Player) {
	s.view = s.grid.Layer(player.Layer)
	if s.vis == nil {
		return
	}
	row, col := s.grid.CellOf(player.Pos)
	s.vis.Recompute(entity.Cell{Row: row, Col: col, Layer: player.Layer})
	s.vis.RecomputeDarkness(player.Layer)
}

// Speed returns the current speed in cells per second
func (s *MovementSystem) Speed(player *entity.Player) float64 {
	if player.Running {
		return s.config.RunSpeed
	}
	return s.config.WalkSpeed
}

// Step advances the player by one tick
func (s *MovementSystem) Step(player *entity.Player, input InputState, dt float64) StepResult {
	var result StepResult
	var move entity.Vec2

	for _, intent := range IntentsFor(input) {
		switch in := intent.(type) {
		case SpeedToggleIntent:
			player.Running = !player.Running
		case MoveIntent:
			move = entity.Vec2{X: in.DX, Y: in.DY}.Scale(s.Speed(player) * dt)
		}
	}

	if move == (entity.Vec2{}) {
		return result
	}

	prevRow, prevCol := s.grid.CellOf(player.Pos)
	prevLayer := player.Layer

	player.Pos = player.Pos.Add(move)
	result.Moved = true
	result.Collisions = s.resolve(player)

	row, col := s.grid.CellOf(player.Pos)
	result.CellChanged = row != prevRow || col != prevCol
	result.LayerChanged = player.Layer != prevLayer

	switch {
	case result.LayerChanged:
		logger.Debug("layer changed", "from", prevLayer, "to", player.Layer, "row", row, "col", col)
		s.Sync(player)
	case result.CellChanged && s.vis != nil:
		s.vis.Recompute(entity.Cell{Row: row, Col: col, Layer: player.Layer})
	}

	return result
}

// resolve runs every obstacle in the 3x3 neighbourhood of the player cell
// against the player and returns how many collided.
// A layer change ends the pass since the remaining obstacles belong to the old layer.
func (s *MovementSystem) resolve(player *entity.Player) int {
	layer := player.Layer
	row, col := s.grid.CellOf(player.Pos)

	collisions := 0
	var buf [2]Obstacle
	for r := row - 1; r <= row+1; r++ {
		for c := col - 1; c <= col+1; c++ {
			if !s.grid.InBounds(r, c) {
				continue
			}
			for _, obs := range s.obstaclesAt(buf[:0], r, c, layer) {
				if Apply(player, obs) {
					collisions++
				}
				if player.Layer != layer {
					return collisions
				}
			}
		}
	}
	return collisions
}

// obstaclesAt appends the obstacles of cell (row, col) seen from layer:
// the current-layer wall, ramp or void first, then a descending ramp one layer down
func (s *MovementSystem) obstaclesAt(dst []Obstacle, row, col, layer int) []Obstacle {
	view := s.grid.Layer(layer)
	box := s.grid.CellBox(row, col)
	cell := entity.Cell{Row: row, Col: col, Layer: layer}

	kind := view.At(row, col)
	switch {
	case kind == entity.ItemWall:
		dst = append(dst, Obstacle{Cell: cell, Kind: ObstacleWall, Box: box})
	case kind.IsRamp():
		o, _ := kind.Orientation()
		dst = append(dst, Obstacle{Cell: cell, Kind: ObstacleRamp, Box: box, Orientation: o})
	case kind == entity.ItemEmpty && layer > 0 && view.Below().IsEmpty(row, col):
		dst = append(dst, Obstacle{Cell: cell, Kind: ObstacleVoid, Box: box})
	}

	if layer > 0 {
		below := view.Below().At(row, col)
		if below.IsDescending() {
			o, _ := below.Orientation()
			dst = append(dst, Obstacle{
				Cell:        entity.Cell{Row: row, Col: col, Layer: layer - 1},
				Kind:        ObstacleRampDown,
				Box:         box,
				Orientation: o,
			})
		}
	}
	return dst
}
