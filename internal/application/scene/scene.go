// Package scene defines the Scene interface for game screens.
//
// The level being played is a scene; replays run the same scene
// without a window.
package scene

import "github.com/hajimehoshi/ebiten/v2"

// Scene represents one game screen.
//
// The game loop delegates Update and Draw calls to the current scene.
// Scene transitions are handled by returning a new Scene from Update.
type Scene interface {
	// Update advances the scene by one frame of dt seconds.
	// Returns the next scene if a transition is needed, nil to stay.
	// Returns an error to terminate the game.
	Update(dt float64) (next Scene, err error)

	// Draw renders the scene to the screen.
	Draw(screen *ebiten.Image)

	// OnEnter is called when entering this scene.
	OnEnter()

	// OnExit is called when leaving this scene.
	// Pending recordings are flushed here.
	OnExit()
}
