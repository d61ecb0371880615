package entity

// ItemKind represents what occupies one (row, col, layer) slot of the grid
type ItemKind int

const (
	ItemEmpty ItemKind = iota
	ItemWall
	ItemRampN
	ItemRampS
	ItemRampE
	ItemRampW
	ItemRampNDown
	ItemRampSDown
	ItemRampEDown
	ItemRampWDown
	ItemPlayer
)

// String returns the tag name used in logs and diagnostics
func (k ItemKind) String() string {
	switch k {
	case ItemEmpty:
		return "Empty"
	case ItemWall:
		return "Wall"
	case ItemRampN:
		return "RampN"
	case ItemRampS:
		return "RampS"
	case ItemRampE:
		return "RampE"
	case ItemRampW:
		return "RampW"
	case ItemRampNDown:
		return "RampNDown"
	case ItemRampSDown:
		return "RampSDown"
	case ItemRampEDown:
		return "RampEDown"
	case ItemRampWDown:
		return "RampWDown"
	case ItemPlayer:
		return "Player"
	default:
		return "Unknown"
	}
}

// IsRamp reports whether the kind is any ramp, ascending or descending
func (k ItemKind) IsRamp() bool {
	return k >= ItemRampN && k <= ItemRampWDown
}

// IsDescending reports whether the kind is a Down-tagged ramp
func (k ItemKind) IsDescending() bool {
	return k >= ItemRampNDown && k <= ItemRampWDown
}

// Orientation returns the climbing direction of a ramp.
// ok is false for non-ramp kinds.
func (k ItemKind) Orientation() (o Orientation, ok bool) {
	switch k {
	case ItemRampN, ItemRampNDown:
		return North, true
	case ItemRampS, ItemRampSDown:
		return South, true
	case ItemRampE, ItemRampEDown:
		return East, true
	case ItemRampW, ItemRampWDown:
		return West, true
	default:
		return 0, false
	}
}

// Descending returns the Down variant of an ascending ramp.
// Other kinds are returned unchanged.
func (k ItemKind) Descending() ItemKind {
	if k >= ItemRampN && k <= ItemRampW {
		return k + (ItemRampNDown - ItemRampN)
	}
	return k
}

// Orientation is the compass direction a ramp climbs towards.
// North is +Y in world space (towards row 0).
type Orientation int

const (
	North Orientation = iota
	South
	East
	West
)

// String returns the orientation initial
func (o Orientation) String() string {
	switch o {
	case North:
		return "N"
	case South:
		return "S"
	case East:
		return "E"
	case West:
		return "W"
	default:
		return "?"
	}
}

// Opposite returns the reverse direction
func (o Orientation) Opposite() Orientation {
	switch o {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	default:
		return East
	}
}

// Cell addresses one slot of the stacked grid
type Cell struct {
	Row   int
	Col   int
	Layer int
}
