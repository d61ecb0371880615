// Package state holds the coarse modes a play session moves through.
package state

// GameState is the mode the playing scene is in
type GameState int

const (
	StatePlaying GameState = iota
	StatePaused
	StateReplaying
)

var stateNames = [...]string{
	StatePlaying:   "Playing",
	StatePaused:    "Paused",
	StateReplaying: "Replaying",
}

func (s GameState) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "Unknown"
	}
	return stateNames[s]
}

// Simulating reports whether frames advance the simulation in this state
func (s GameState) Simulating() bool {
	return s == StatePlaying || s == StateReplaying
}
