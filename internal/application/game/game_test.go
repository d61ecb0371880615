package game

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"

	"github.com/IndecisiveBear/IndecisiveBearGame/internal/application/scene"
	"github.com/IndecisiveBear/IndecisiveBearGame/internal/infrastructure/config"
)

// mockScene is a test double for Scene interface
type mockScene struct {
	updateCalled  int
	drawCalled    int
	onEnterCalled int
	onExitCalled  int
	lastDT        float64
	nextScene     scene.Scene
	updateErr     error
}

func (m *mockScene) Update(dt float64) (scene.Scene, error) {
	m.updateCalled++
	m.lastDT = dt
	return m.nextScene, m.updateErr
}

func (m *mockScene) Draw(screen *ebiten.Image) {
	m.drawCalled++
}

func (m *mockScene) OnEnter() {
	m.onEnterCalled++
}

func (m *mockScene) OnExit() {
	m.onExitCalled++
}

func testDisplay() config.DisplayConfig {
	return config.DefaultGameConfig().Display
}

func TestNew(t *testing.T) {
	mockInitial := &mockScene{}
	g := New(mockInitial, testDisplay())

	assert.NotNil(t, g)
	assert.Equal(t, 1, mockInitial.onEnterCalled, "OnEnter should be called on initial scene")
}

func TestGame_Update_DelegatesToCurrentScene(t *testing.T) {
	tests := []struct {
		name      string
		framerate int
		dt        float64
	}{
		{"60 fps", 60, 1.0 / 60.0},
		{"30 fps", 30, 1.0 / 30.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			display := testDisplay()
			display.Framerate = tt.framerate
			mockInitial := &mockScene{}
			g := New(mockInitial, display)

			err := g.Update()

			assert.NoError(t, err)
			assert.Equal(t, 1, mockInitial.updateCalled, "Update should delegate to current scene")
			assert.InDelta(t, tt.dt, mockInitial.lastDT, 1e-12)
			assert.Equal(t, 1, g.Frames())
		})
	}
}

func TestGame_Draw_DelegatesToCurrentScene(t *testing.T) {
	mockInitial := &mockScene{}
	g := New(mockInitial, testDisplay())

	img := ebiten.NewImage(320, 240)
	g.Draw(img)

	assert.Equal(t, 1, mockInitial.drawCalled, "Draw should delegate to current scene")
}

func TestGame_Layout(t *testing.T) {
	g := New(&mockScene{}, testDisplay())

	w, h := g.Layout(640, 480)
	assert.Equal(t, config.DefaultScreenWidth, w)
	assert.Equal(t, config.DefaultScreenHeight, h)
}

func TestGame_SceneTransition(t *testing.T) {
	scene1 := &mockScene{}
	scene2 := &mockScene{}
	scene1.nextScene = scene2

	g := New(scene1, testDisplay())
	assert.Equal(t, 1, scene1.onEnterCalled, "Initial scene OnEnter called")

	err := g.Update()
	assert.NoError(t, err)

	assert.Equal(t, 1, scene1.updateCalled, "scene1 Update called")
	assert.Equal(t, 1, scene1.onExitCalled, "scene1 OnExit called on transition")
	assert.Equal(t, 1, scene2.onEnterCalled, "scene2 OnEnter called on transition")

	err = g.Update()
	assert.NoError(t, err)
	assert.Equal(t, 1, scene2.updateCalled, "scene2 Update called")
}

func TestGame_NoTransitionWhenNil(t *testing.T) {
	scene1 := &mockScene{}
	g := New(scene1, testDisplay())

	for i := 0; i < 5; i++ {
		assert.NoError(t, g.Update())
	}

	assert.Equal(t, 5, scene1.updateCalled, "All updates go to scene1")
	assert.Equal(t, 0, scene1.onExitCalled, "No OnExit when no transition")
}

func TestGame_UpdateError(t *testing.T) {
	scene1 := &mockScene{updateErr: assert.AnError}
	g := New(scene1, testDisplay())

	err := g.Update()
	assert.ErrorIs(t, err, assert.AnError)
}

func TestGame_Close(t *testing.T) {
	scene1 := &mockScene{}
	g := New(scene1, testDisplay())

	g.Close()

	assert.Equal(t, 1, scene1.onExitCalled)
}
