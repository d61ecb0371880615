package main

import (
	"fmt"

	"github.com/IndecisiveBear/IndecisiveBearGame/internal/application/replay"
	"github.com/IndecisiveBear/IndecisiveBearGame/internal/application/scene/playing"
	"github.com/IndecisiveBear/IndecisiveBearGame/internal/domain/entity"
	"github.com/IndecisiveBear/IndecisiveBearGame/internal/infrastructure/config"
	"github.com/IndecisiveBear/IndecisiveBearGame/internal/infrastructure/logger"
)

// ReplayResult summarises a headless replay run
type ReplayResult struct {
	Session      string
	Frames       int
	LayerChanges int
	Collisions   int
	Final        entity.Cell
	Position     entity.Vec2
	Running      bool
}

func (r ReplayResult) String() string {
	return fmt.Sprintf("session %s: %d frames, %d layer changes, %d collisions, ended at row %d col %d layer %d (%.3f, %.3f)",
		r.Session, r.Frames, r.LayerChanges, r.Collisions,
		r.Final.Row, r.Final.Col, r.Final.Layer, r.Position.X, r.Position.Y)
}

// runReplay feeds every recorded frame through a fresh simulation of level.
// No window or input device is touched.
func runReplay(cfg *config.GameConfig, level *config.LevelConfig, data *replay.ReplayData) (ReplayResult, error) {
	if data.Level != level.ID {
		return ReplayResult{}, fmt.Errorf("replay was recorded on level %q, not %q", data.Level, level.ID)
	}

	sim, err := playing.NewSimulation(cfg, level)
	if err != nil {
		return ReplayResult{}, err
	}

	replayer := replay.NewReplayer(*data)
	result := ReplayResult{Session: replayer.Session()}
	for {
		in, ok := replayer.GetInput()
		if !ok {
			break
		}
		step := sim.Step(playing.FromReplay(in))
		if step.LayerChanged {
			result.LayerChanges++
		}
		result.Collisions += step.Collisions
	}

	result.Frames = sim.Frame()
	result.Final = sim.Cell()
	result.Position = sim.Player.Pos
	result.Running = sim.Player.Running

	logger.Info("replay complete",
		"session", result.Session,
		"frames", result.Frames,
		"layer", result.Final.Layer,
		"row", result.Final.Row,
		"col", result.Final.Col,
	)
	return result, nil
}
