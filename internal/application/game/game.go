// Package game adapts a Scene to ebiten.Game and runs scene transitions.
package game

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/IndecisiveBear/IndecisiveBearGame/internal/application/scene"
	"github.com/IndecisiveBear/IndecisiveBearGame/internal/infrastructure/config"
	"github.com/IndecisiveBear/IndecisiveBearGame/internal/infrastructure/logger"
)

// Game implements ebiten.Game and manages Scene transitions.
type Game struct {
	current scene.Scene
	display config.DisplayConfig
	dt      float64
	frames  int
}

// New creates a Game showing initial. The ticks per second come from
// display.Framerate and initial's OnEnter is called immediately.
func New(initial scene.Scene, display config.DisplayConfig) *Game {
	g := &Game{
		current: initial,
		display: display,
		dt:      1.0 / float64(display.Framerate),
	}
	g.current.OnEnter()
	return g
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	g.frames++
	next, err := g.current.Update(g.dt)
	if err != nil {
		logger.Error("scene update failed", "frame", g.frames, "error", err)
		return err
	}

	if next != nil {
		logger.Debug("scene transition", "frame", g.frames, "from", sceneName(g.current), "to", sceneName(next))
		g.current.OnExit()
		g.current = next
		g.current.OnEnter()
	}

	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	g.current.Draw(screen)
}

// Layout returns the logical screen size; ebiten scales it to the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.display.ScreenWidth, g.display.ScreenHeight
}

// Close hands the current scene its OnExit once the window is gone
func (g *Game) Close() {
	g.current.OnExit()
}

// Frames returns how many updates have run
func (g *Game) Frames() int {
	return g.frames
}

// ApplyWindow pushes the display settings into ebiten.
func (g *Game) ApplyWindow(title string) {
	ebiten.SetWindowSize(g.display.ScreenWidth*g.display.Scale, g.display.ScreenHeight*g.display.Scale)
	ebiten.SetWindowTitle(title)
	ebiten.SetTPS(g.display.Framerate)
}

func sceneName(s scene.Scene) string {
	return fmt.Sprintf("%T", s)
}
