package playing

import (
	"fmt"

	"github.com/IndecisiveBear/IndecisiveBearGame/internal/application/system"
	"github.com/IndecisiveBear/IndecisiveBearGame/internal/domain/entity"
	"github.com/IndecisiveBear/IndecisiveBearGame/internal/infrastructure/config"
	"github.com/IndecisiveBear/IndecisiveBearGame/internal/infrastructure/logger"
)

// Simulation is the device-free part of a play session: the grid, the
// player and the systems that move and light it. The scene drives it from
// the keyboard; replays drive it from recorded frames.
type Simulation struct {
	Level      *config.LevelConfig
	Grid       *entity.Grid
	Player     *entity.Player
	Movement   *system.MovementSystem
	Visibility *system.VisibilityEngine

	cfg   *config.GameConfig
	dt    float64
	frame int
}

// NewSimulation builds the grid for level and places the player on its spawn
func NewSimulation(cfg *config.GameConfig, level *config.LevelConfig) (*Simulation, error) {
	grid, _ := system.LoadGrid(level)
	if grid.Rows() == 0 || grid.Depth() == 0 {
		return nil, fmt.Errorf("level %s has an empty template", level.ID)
	}

	vis := system.NewVisibilityEngine(grid)
	if err := vis.Configure(cfg.Visibility); err != nil {
		return nil, fmt.Errorf("level %s: %w", level.ID, err)
	}

	s := &Simulation{
		Level:      level,
		Grid:       grid,
		Visibility: vis,
		Movement:   system.NewMovementSystem(&cfg.Movement, grid, vis),
		cfg:        cfg,
		dt:         1.0 / float64(cfg.Display.Framerate),
	}
	s.Reset()

	return s, nil
}

// Reset puts the player back on the spawn cell
func (s *Simulation) Reset() {
	spawn, ok := s.Grid.Spawn()
	if !ok {
		logger.Warning("level has no player spawn, using the first cell", "level", s.Level.ID)
	}

	size := entity.Vec2{X: s.cfg.Player.Width, Y: s.cfg.Player.Height}
	pos := s.Grid.CellCenter(spawn.Row, spawn.Col)
	s.Player = entity.NewPlayer(pos, size, spawn.Layer, s.Grid.Depth())
	s.Movement.Sync(s.Player)
	s.frame = 0
}

// Step advances the simulation by one frame of input
func (s *Simulation) Step(input system.InputState) system.StepResult {
	s.frame++
	result := s.Movement.Step(s.Player, input, s.dt)
	if result.LayerChanged {
		logger.Info("player changed layer", "frame", s.frame, "layer", s.Player.Layer)
	}
	return result
}

// Frame returns how many frames have been stepped since the last reset
func (s *Simulation) Frame() int {
	return s.frame
}

// Cell returns the grid cell the player stands on
func (s *Simulation) Cell() entity.Cell {
	row, col := s.Grid.CellOf(s.Player.Pos)
	return entity.Cell{Row: row, Col: col, Layer: s.Player.Layer}
}
