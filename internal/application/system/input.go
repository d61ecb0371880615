package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputSystem reads the keyboard into an InputState
type InputSystem struct {
	up, down, left, right []ebiten.Key
	toggle                []ebiten.Key
}

// NewInputSystem creates an input system with WASD, arrow keys and Shift bindings
func NewInputSystem() *InputSystem {
	return &InputSystem{
		up:     []ebiten.Key{ebiten.KeyW, ebiten.KeyArrowUp},
		down:   []ebiten.Key{ebiten.KeyS, ebiten.KeyArrowDown},
		left:   []ebiten.Key{ebiten.KeyA, ebiten.KeyArrowLeft},
		right:  []ebiten.Key{ebiten.KeyD, ebiten.KeyArrowRight},
		toggle: []ebiten.Key{ebiten.KeyShiftLeft, ebiten.KeyShiftRight},
	}
}

// InputState holds the directional keys held this frame and the speed toggle edge
type InputState struct {
	Up          bool
	Down        bool
	Left        bool
	Right       bool
	SpeedToggle bool // true only on the frame the toggle key went down
}

// GetInput reads the current input state
func (s *InputSystem) GetInput() InputState {
	return InputState{
		Up:          anyPressed(s.up),
		Down:        anyPressed(s.down),
		Left:        anyPressed(s.left),
		Right:       anyPressed(s.right),
		SpeedToggle: anyJustPressed(s.toggle),
	}
}

func anyPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

func anyJustPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}

// Direction returns the unnormalized movement direction.
// Opposite keys cancel; diagonals keep length sqrt(2).
func (in InputState) Direction() (dx, dy float64) {
	if in.Right {
		dx++
	}
	if in.Left {
		dx--
	}
	if in.Up {
		dy++
	}
	if in.Down {
		dy--
	}
	return dx, dy
}
