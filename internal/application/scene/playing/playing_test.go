package playing

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IndecisiveBear/IndecisiveBearGame/internal/application/replay"
	"github.com/IndecisiveBear/IndecisiveBearGame/internal/application/scene"
	"github.com/IndecisiveBear/IndecisiveBearGame/internal/application/state"
	"github.com/IndecisiveBear/IndecisiveBearGame/internal/application/system"
	"github.com/IndecisiveBear/IndecisiveBearGame/internal/domain/entity"
	"github.com/IndecisiveBear/IndecisiveBearGame/internal/infrastructure/config"
)

// createTestLevel creates a small corridor with a ramp up to a ledge
func createTestLevel() *config.LevelConfig {
	return &config.LevelConfig{
		ID:       "test",
		Name:     "Test",
		GridSize: 1,
		Template: [][]string{
			{"W:W", "W:W", "W:W", "W:W", "W:W"},
			{"W:W", "P", "R", "W", "W:W"},
			{"W:W", "W:W", "W:W", "W:W", "W:W"},
		},
	}
}

func TestPlaying_ImplementsScene(t *testing.T) {
	// Compile-time check that Playing implements scene.Scene
	var _ scene.Scene = (*Playing)(nil)
}

func TestNewPlaying(t *testing.T) {
	p, err := New(config.DefaultGameConfig(), createTestLevel(), "")
	require.NoError(t, err)

	assert.Equal(t, state.StatePlaying, p.state)
	assert.Nil(t, p.recorder)
	assert.NotEmpty(t, p.items)

	player := p.Simulation().Player
	assert.Equal(t, entity.Vec2{X: 1, Y: 2}, player.Pos)
	assert.Equal(t, 0, player.Layer)
	assert.Equal(t, 2, player.MaxLayer)
}

func TestNewPlaying_DemoLevel(t *testing.T) {
	loader := config.NewLoader("../../../../cmd/game/configs")
	cfg, err := loader.LoadGame()
	require.NoError(t, err)
	level, err := loader.LoadLevel("demo")
	require.NoError(t, err)

	p, err := New(cfg, level, "")
	require.NoError(t, err)

	assert.Equal(t, entity.Cell{Row: 2, Col: 2, Layer: 0}, p.Simulation().Cell())
	assert.Equal(t, 0.0, p.Simulation().Visibility.Fog[2][2])
}

func TestNewPlaying_Errors(t *testing.T) {
	t.Run("invalid visibility", func(t *testing.T) {
		cfg := config.DefaultGameConfig()
		cfg.Visibility = config.VisibilityConfig{Dark: true, LightFog: true}

		_, err := New(cfg, createTestLevel(), "")
		assert.ErrorIs(t, err, system.ErrInvalidFogConfig)
	})

	t.Run("empty template", func(t *testing.T) {
		_, err := New(config.DefaultGameConfig(), &config.LevelConfig{ID: "empty"}, "")
		assert.Error(t, err)
	})
}

func TestPlaying_Update_ReturnsNilWhenPlaying(t *testing.T) {
	p, err := New(config.DefaultGameConfig(), createTestLevel(), "")
	require.NoError(t, err)

	next, err := p.Update(1.0 / 60.0)

	assert.NoError(t, err)
	assert.Nil(t, next, "Should return nil when continuing to play")
}

func TestPlaying_StepClimbsRamp(t *testing.T) {
	p, err := New(config.DefaultGameConfig(), createTestLevel(), "")
	require.NoError(t, err)

	for i := 0; i < 200; i++ {
		p.step(system.InputState{Right: true})
	}

	sim := p.Simulation()
	assert.Equal(t, 1, sim.Player.Layer)
	assert.Equal(t, 200, sim.Frame())
	assert.Equal(t, 3, sim.Cell().Col)
}

func TestPlaying_Restart(t *testing.T) {
	p, err := New(config.DefaultGameConfig(), createTestLevel(), filepath.Join(t.TempDir(), "r.json"))
	require.NoError(t, err)
	session := p.recorder.Session()

	p.step(system.InputState{Right: true})
	p.state = state.StatePaused
	p.restart()

	assert.Equal(t, state.StatePlaying, p.state)
	assert.Equal(t, entity.Vec2{X: 1, Y: 2}, p.Simulation().Player.Pos)
	assert.Zero(t, p.Simulation().Frame())
	assert.Zero(t, p.recorder.FrameCount())
	assert.NotEqual(t, session, p.recorder.Session())
}

func TestPlaying_WithRecorder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test_replay.json")
	p, err := New(config.DefaultGameConfig(), createTestLevel(), path)
	require.NoError(t, err)
	require.NotNil(t, p.recorder)

	p.step(system.InputState{Right: true})
	p.step(system.InputState{Right: true, SpeedToggle: true})
	assert.Equal(t, 2, p.recorder.FrameCount())

	// OnExit should save without panic
	assert.NotPanics(t, func() {
		p.OnExit()
	})

	data, err := replay.LoadReplay(path)
	require.NoError(t, err)
	assert.Equal(t, "test", data.Level)
	assert.Equal(t, []replay.FrameInput{{F: 0, R: true}, {F: 1, R: true, S: true}}, data.Frames)
}

func TestPlaying_OnEnterOnExit(t *testing.T) {
	p, err := New(config.DefaultGameConfig(), createTestLevel(), "")
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		p.OnEnter()
		p.OnExit()
	})
}

func TestPlaying_Layout(t *testing.T) {
	p, err := New(config.DefaultGameConfig(), createTestLevel(), "")
	require.NoError(t, err)

	w, h := p.Layout(1000, 1000)
	assert.Equal(t, config.DefaultScreenWidth, w)
	assert.Equal(t, config.DefaultScreenHeight, h)
}

func TestPlaying_ToScreen(t *testing.T) {
	p, err := New(config.DefaultGameConfig(), createTestLevel(), "")
	require.NoError(t, err)

	x, y := p.toScreen(p.Simulation().Player.Pos)
	assert.Equal(t, float64(config.DefaultScreenWidth)/2, x)
	assert.Equal(t, float64(config.DefaultScreenHeight)/2, y)

	// one cell north is one tile up the screen
	_, up := p.toScreen(p.Simulation().Player.Pos.Add(entity.Vec2{Y: 1}))
	assert.Equal(t, y-float64(config.DefaultTilePixels), up)
}

func TestRecorder(t *testing.T) {
	r := NewRecorder("test")
	assert.True(t, r.IsRecording())

	r.RecordFrame(system.InputState{Left: true})
	assert.Equal(t, 1, r.FrameCount())

	r.Stop()
	assert.False(t, r.IsRecording())

	// Should not record when stopped
	r.RecordFrame(system.InputState{Left: true})
	assert.Equal(t, 1, r.FrameCount())
	assert.Equal(t, "test", r.GetData().Level)
}

func TestRecorder_SaveEmpty(t *testing.T) {
	r := NewRecorder("test")

	err := r.Save(filepath.Join(t.TempDir(), "empty.json"))
	assert.Error(t, err)
}

func TestShade(t *testing.T) {
	c := shade(colorWall, 0)
	assert.Equal(t, colorWall, c)

	deep := shade(colorWall, 100)
	assert.Equal(t, uint8(float64(colorWall.R)*0.2), deep.R)
	assert.Equal(t, colorWall.A, deep.A)
}

func TestPlaying_Replay(t *testing.T) {
	p, err := New(config.DefaultGameConfig(), createTestLevel(), "")
	require.NoError(t, err)

	p.step(system.InputState{Up: true})
	data := replay.CreateTestReplayData(200, "test", replay.ReplayInput{Right: true})
	p.Replay(replay.NewReplayer(data))
	assert.Equal(t, state.StateReplaying, p.state)
	assert.Zero(t, p.Simulation().Frame(), "playback starts from the spawn")

	for i := 0; i < 200; i++ {
		_, err := p.Update(1.0 / 60.0)
		require.NoError(t, err)
	}
	assert.Equal(t, state.StateReplaying, p.state)
	assert.Equal(t, 1, p.Simulation().Player.Layer)

	// running out of frames pauses the scene
	_, err = p.Update(1.0 / 60.0)
	require.NoError(t, err)
	assert.Equal(t, state.StatePaused, p.state)
	assert.Equal(t, 200, p.Simulation().Frame())
}

func TestFromReplay(t *testing.T) {
	in := FromReplay(replay.ReplayInput{Up: true, Left: true, SpeedToggle: true})

	assert.Equal(t, system.InputState{Up: true, Left: true, SpeedToggle: true}, in)
}
