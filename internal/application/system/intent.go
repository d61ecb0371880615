package system

// Intent represents an action the player wants to perform this tick
type Intent interface {
	isIntent()
}

// MoveIntent is a world-space direction; Up is +Y
type MoveIntent struct {
	DX, DY float64
}

func (MoveIntent) isIntent() {}

// SpeedToggleIntent flips between walk and run speed
type SpeedToggleIntent struct{}

func (SpeedToggleIntent) isIntent() {}

// IntentsFor converts one frame of input into intents.
// The speed toggle comes first so the new speed applies to this frame's move.
func IntentsFor(input InputState) []Intent {
	var intents []Intent
	if input.SpeedToggle {
		intents = append(intents, SpeedToggleIntent{})
	}
	if dx, dy := input.Direction(); dx != 0 || dy != 0 {
		intents = append(intents, MoveIntent{DX: dx, DY: dy})
	}
	return intents
}
