package system

import (
	"testing"

	"github.com/IndecisiveBear/IndecisiveBearGame/internal/domain/entity"
)

const benchSize = 64

// benchGrid is an open benchSize x benchSize floor with a wall every fourth cell
// and a second layer of walls along the diagonal
func benchGrid() *entity.Grid {
	grid := entity.NewGrid(benchSize, benchSize, 2, 1)
	for r := 0; r < benchSize; r++ {
		for c := 0; c < benchSize; c++ {
			if (r*benchSize+c)%4 == 3 {
				grid.Set(r, c, 0, entity.ItemWall)
			}
		}
		grid.Set(r, r, 1, entity.ItemWall)
	}
	return grid
}

// Case: fog recompute, which runs on every cell change

func BenchmarkRecompute_Ground(b *testing.B) {
	vis := NewVisibilityEngine(benchGrid())
	origin := entity.Cell{Row: benchSize / 2, Col: benchSize / 2, Layer: 0}

	for n := 0; n < b.N; n++ {
		vis.Recompute(origin)
	}
}

func BenchmarkRecompute_LightFog(b *testing.B) {
	vis := NewVisibilityEngine(benchGrid())
	vis.radius = presetLightFog.radius
	origin := entity.Cell{Row: benchSize / 2, Col: benchSize / 2, Layer: 1}

	for n := 0; n < b.N; n++ {
		vis.Recompute(origin)
	}
}

func BenchmarkRecomputeDarkness(b *testing.B) {
	vis := NewVisibilityEngine(benchGrid())
	vis.Recompute(entity.Cell{Row: 1, Col: 2, Layer: 1})

	for n := 0; n < b.N; n++ {
		vis.RecomputeDarkness(1)
	}
}

// Case: one frame of walking, which is what runs every tick

func BenchmarkStep_Walk(b *testing.B) {
	grid := entity.NewGrid(benchSize, benchSize, 1, 1)
	sys := NewMovementSystem(createTestMovementConfig(), grid, nil)
	player := entity.NewPlayer(grid.CellCenter(benchSize/2, 1), entity.Vec2{X: 0.5, Y: 0.5}, 0, 1)
	input := InputState{Right: true}

	for n := 0; n < b.N; n++ {
		if n%1000 == 0 {
			player.Pos = grid.CellCenter(benchSize/2, 1)
		}
		sys.Step(player, input, 1.0/60.0)
	}
}
