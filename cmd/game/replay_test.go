package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IndecisiveBear/IndecisiveBearGame/internal/application/replay"
	"github.com/IndecisiveBear/IndecisiveBearGame/internal/domain/entity"
	"github.com/IndecisiveBear/IndecisiveBearGame/internal/infrastructure/config"
)

func loadDemo(t *testing.T) (*config.GameConfig, *config.LevelConfig) {
	t.Helper()

	loader, err := newLoader("")
	require.NoError(t, err)
	cfg, err := loader.LoadGame()
	require.NoError(t, err)
	level, err := loader.LoadLevel("demo")
	require.NoError(t, err)
	return cfg, level
}

func TestNewLoader(t *testing.T) {
	t.Run("embedded", func(t *testing.T) {
		loader, err := newLoader("")
		require.NoError(t, err)

		cfg, err := loader.LoadGame()
		require.NoError(t, err)
		assert.Equal(t, 60, cfg.Display.Framerate)
		assert.True(t, cfg.Visibility.Dark)
	})

	t.Run("directory", func(t *testing.T) {
		loader, err := newLoader("configs")
		require.NoError(t, err)

		level, err := loader.LoadLevel("demo")
		require.NoError(t, err)
		assert.Equal(t, "demo", level.ID)
	})
}

func TestRunReplay_ClimbsDemoRamp(t *testing.T) {
	cfg, level := loadDemo(t)
	data := replay.CreateTestReplayData(700, "demo", replay.ReplayInput{Right: true})

	result, err := runReplay(cfg, level, &data)
	require.NoError(t, err)

	assert.Equal(t, data.Session, result.Session)
	assert.Equal(t, 700, result.Frames)
	assert.Equal(t, 1, result.LayerChanges)
	assert.Equal(t, entity.Cell{Row: 2, Col: 8, Layer: 1}, result.Final)
	assert.InDelta(t, 8.25, result.Position.X, 1e-6, "stopped by the wall at the east edge")
	assert.Positive(t, result.Collisions)
	assert.False(t, result.Running)
}

func TestRunReplay_IsDeterministic(t *testing.T) {
	cfg, level := loadDemo(t)
	data := replay.CreateTestReplayData(400, "demo", replay.ReplayInput{Down: true, Right: true})

	first, err := runReplay(cfg, level, &data)
	require.NoError(t, err)
	second, err := runReplay(cfg, level, &data)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRunReplay_FromFile(t *testing.T) {
	cfg, level := loadDemo(t)
	path := filepath.Join(t.TempDir(), "demo.json")
	require.NoError(t, replay.Save(replay.CreateTestReplayData(60, "demo", replay.ReplayInput{Left: true}), path))

	data, err := replay.LoadReplay(path)
	require.NoError(t, err)
	result, err := runReplay(cfg, level, data)
	require.NoError(t, err)

	assert.Equal(t, 60, result.Frames)
	assert.Equal(t, entity.Cell{Row: 2, Col: 1, Layer: 0}, result.Final)
	assert.Contains(t, result.String(), "60 frames")
}

func TestRunReplay_LevelMismatch(t *testing.T) {
	cfg, level := loadDemo(t)
	data := replay.CreateTestReplayData(10, "other", replay.ReplayInput{})

	_, err := runReplay(cfg, level, &data)
	assert.Error(t, err)
}

func TestRunReplay_EmptyReplay(t *testing.T) {
	cfg, level := loadDemo(t)
	data := replay.NewSession("demo")

	result, err := runReplay(cfg, level, &data)
	require.NoError(t, err)

	assert.Zero(t, result.Frames)
	assert.Equal(t, entity.Cell{Row: 2, Col: 2, Layer: 0}, result.Final)
}

func TestRun_Headless(t *testing.T) {
	t.Run("needs a replay", func(t *testing.T) {
		err := run(options{headless: true})
		assert.Error(t, err)
	})

	t.Run("plays the recorded level", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "demo.json")
		require.NoError(t, replay.Save(replay.CreateTestReplayData(30, "demo", replay.ReplayInput{Up: true}), path))

		err := run(options{replay: path, headless: true})
		assert.NoError(t, err)
	})

	t.Run("missing replay file", func(t *testing.T) {
		err := run(options{replay: filepath.Join(t.TempDir(), "nope.json"), headless: true})
		assert.Error(t, err)
	})
}
