package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntentsFor(t *testing.T) {
	tests := []struct {
		name  string
		input InputState
		want  []Intent
	}{
		{"idle", InputState{}, nil},
		{"move", InputState{Right: true}, []Intent{MoveIntent{DX: 1}}},
		{"toggle only", InputState{SpeedToggle: true}, []Intent{SpeedToggleIntent{}}},
		{
			"toggle comes before move",
			InputState{Down: true, Left: true, SpeedToggle: true},
			[]Intent{SpeedToggleIntent{}, MoveIntent{DX: -1, DY: -1}},
		},
		{"cancelled keys yield no move", InputState{Left: true, Right: true}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IntentsFor(tt.input))
		})
	}
}

func TestIntentTypes(t *testing.T) {
	intents := []Intent{MoveIntent{}, SpeedToggleIntent{}}

	for _, intent := range intents {
		switch intent.(type) {
		case MoveIntent, SpeedToggleIntent:
		default:
			t.Errorf("unexpected intent type %T", intent)
		}
	}
}
