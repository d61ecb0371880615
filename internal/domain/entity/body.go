package entity

// Vec2 is a continuous world position or size
type Vec2 struct {
	X, Y float64
}

// Add returns v + o
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Scale returns v * s
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Axis selects one component of a Vec2
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

// Other returns the perpendicular axis
func (a Axis) Other() Axis {
	if a == AxisX {
		return AxisY
	}
	return AxisX
}

// Get returns the component on axis a
func (v Vec2) Get(a Axis) float64 {
	if a == AxisX {
		return v.X
	}
	return v.Y
}

// With returns a copy of v with the component on axis a replaced
func (v Vec2) With(a Axis, value float64) Vec2 {
	if a == AxisX {
		v.X = value
	} else {
		v.Y = value
	}
	return v
}

// Box is an axis-aligned box given by its center and half extents
type Box struct {
	Center  Vec2
	Extents Vec2
}

// Min returns the bottom-left corner
func (b Box) Min() Vec2 {
	return Vec2{X: b.Center.X - b.Extents.X, Y: b.Center.Y - b.Extents.Y}
}

// Max returns the top-right corner
func (b Box) Max() Vec2 {
	return Vec2{X: b.Center.X + b.Extents.X, Y: b.Center.Y + b.Extents.Y}
}

// Overlaps reports interval overlap on both axes. Touching edges count.
func (b Box) Overlaps(o Box) bool {
	return b.Center.X+b.Extents.X >= o.Center.X-o.Extents.X &&
		b.Center.X-b.Extents.X <= o.Center.X+o.Extents.X &&
		b.Center.Y+b.Extents.Y >= o.Center.Y-o.Extents.Y &&
		b.Center.Y-b.Extents.Y <= o.Center.Y+o.Extents.Y
}

// ClimbState records the ramp an entity is currently traversing.
// The zero value is Idle.
type ClimbState struct {
	Active bool
	Ramp   Cell
}

// Idle returns the state with no active ramp
func Idle() ClimbState {
	return ClimbState{}
}

// Climbing returns the state for an active climb of the ramp at cell
func Climbing(ramp Cell) ClimbState {
	return ClimbState{Active: true, Ramp: ramp}
}

// IsClimbing reports whether the climb in progress is on the given ramp
func (s ClimbState) IsClimbing(ramp Cell) bool {
	return s.Active && s.Ramp == ramp
}

// Mover is the capability collision code needs from a moving entity
type Mover interface {
	Position() Vec2
	SetPosition(pos Vec2)
	Extents() Vec2
	MoveLayer(delta int) bool
	ClimbState() ClimbState
	SetClimbState(state ClimbState)
}

// Player represents the player entity
type Player struct {
	Pos  Vec2 // continuous world position of the box center
	Size Vec2 // full box size

	Layer    int
	MaxLayer int
	Climb    ClimbState

	Running bool
}

// NewPlayer creates a player standing at pos on layer
func NewPlayer(pos Vec2, size Vec2, layer, maxLayer int) *Player {
	return &Player{
		Pos:      pos,
		Size:     size,
		Layer:    layer,
		MaxLayer: maxLayer,
	}
}

// Position returns the box center
func (p *Player) Position() Vec2 { return p.Pos }

// SetPosition moves the box center
func (p *Player) SetPosition(pos Vec2) { p.Pos = pos }

// Extents returns the half size of the collision box
func (p *Player) Extents() Vec2 { return p.Size.Scale(0.5) }

// Box returns the collision box in world space
func (p *Player) Box() Box {
	return Box{Center: p.Pos, Extents: p.Extents()}
}

// MoveLayer shifts the current layer by delta.
// It refuses moves that would leave [0, MaxLayer).
func (p *Player) MoveLayer(delta int) bool {
	next := p.Layer + delta
	if next < 0 || next >= p.MaxLayer {
		return false
	}
	p.Layer = next
	return true
}

// ClimbState returns the current ramp climb
func (p *Player) ClimbState() ClimbState { return p.Climb }

// SetClimbState replaces the current ramp climb
func (p *Player) SetClimbState(state ClimbState) { p.Climb = state }
