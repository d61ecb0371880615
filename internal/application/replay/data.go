package replay

// FormatVersion is written into every recording
const FormatVersion = "1.0"

// FrameInput records input state for a single frame
type FrameInput struct {
	F int  `json:"f"`           // Frame number
	U bool `json:"u,omitempty"` // Up
	D bool `json:"d,omitempty"` // Down
	L bool `json:"l,omitempty"` // Left
	R bool `json:"r,omitempty"` // Right
	S bool `json:"s,omitempty"` // SpeedToggle
}

// ReplayData contains all data needed to replay a game session.
// Movement is deterministic, so the level and the inputs are enough.
type ReplayData struct {
	Version   string       `json:"version"`
	Session   string       `json:"session"`
	Level     string       `json:"level"`
	StartTime string       `json:"startTime"`
	Frames    []FrameInput `json:"frames"`
}
