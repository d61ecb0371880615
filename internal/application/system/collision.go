package system

import (
	"math"

	"github.com/IndecisiveBear/IndecisiveBearGame/internal/domain/entity"
)

// Collision tuning
const (
	// edgeTolerance scales the obstacle half extent for the perpendicular test of an edge snap
	edgeTolerance = 1.5
	// rampFactor scales the perpendicular extents while a climb is in progress (0 pins to the center line)
	rampFactor = 0.0
	// rampFactor2 is how far past the entry edge the entity must be before a climb arms
	rampFactor2 = 0.9
	// completionEpsilon absorbs float drift in the climb completion tests
	completionEpsilon = 1e-9
)

// ObstacleKind selects the collision rule for an obstacle
type ObstacleKind int

const (
	ObstacleWall ObstacleKind = iota
	ObstacleRamp
	ObstacleRampDown
	ObstacleVoid
)

func (k ObstacleKind) String() string {
	switch k {
	case ObstacleWall:
		return "wall"
	case ObstacleRamp:
		return "ramp"
	case ObstacleRampDown:
		return "rampDown"
	case ObstacleVoid:
		return "void"
	default:
		return "unknown"
	}
}

// Obstacle is one grid slot the entity may collide with.
// Cell identifies the obstacle across ticks; Orientation is only read for ramps.
type Obstacle struct {
	Cell        entity.Cell
	Kind        ObstacleKind
	Box         entity.Box
	Orientation entity.Orientation
}

// IsRamp reports whether the obstacle takes part in climbs
func (o Obstacle) IsRamp() bool {
	return o.Kind == ObstacleRamp || o.Kind == ObstacleRampDown
}

// Resolution is the outcome of testing one obstacle
type Resolution struct {
	Collided   bool
	Position   entity.Vec2
	Moved      bool
	LayerDelta int
	Climb      entity.ClimbState
}

// edge is one side of an obstacle box: the axis it is perpendicular to and
// the sign of the outward normal along that axis
type edge struct {
	axis entity.Axis
	sign float64
}

// edges in evaluation order: right, left, top, bottom
var edges = [4]edge{
	{entity.AxisX, 1},
	{entity.AxisX, -1},
	{entity.AxisY, 1},
	{entity.AxisY, -1},
}

// orientationEdge returns the edge a ramp climbs towards
func orientationEdge(o entity.Orientation) edge {
	switch o {
	case entity.North:
		return edge{entity.AxisY, 1}
	case entity.South:
		return edge{entity.AxisY, -1}
	case entity.East:
		return edge{entity.AxisX, 1}
	default:
		return edge{entity.AxisX, -1}
	}
}

// snap is a pending single-axis position correction
type snap struct {
	set   bool
	axis  entity.Axis
	value float64
}

// onSide reports whether body sits on the e side of the obstacle with its
// perpendicular offset inside tol times the obstacle half extent
func onSide(body, obs entity.Box, e edge, tol float64) bool {
	p := e.axis.Other()
	return e.sign*(body.Center.Get(e.axis)-obs.Center.Get(e.axis)) > 0 &&
		math.Abs(body.Center.Get(p)-obs.Center.Get(p)) < tol*obs.Extents.Get(p)
}

// edgeSnap returns the correction placing body flush against edge e of obs
func edgeSnap(body, obs entity.Box, e edge) snap {
	return snap{
		set:   true,
		axis:  e.axis,
		value: obs.Center.Get(e.axis) + e.sign*(obs.Extents.Get(e.axis)+body.Extents.Get(e.axis)),
	}
}

// Resolve tests body against one obstacle and returns the corrected state.
// It never mutates anything; use Apply to write the result back to a Mover.
func Resolve(body entity.Box, obs Obstacle, climb entity.ClimbState) Resolution {
	res := Resolution{Position: body.Center, Climb: climb}

	// an active climb ignores every other ramp
	if obs.IsRamp() && climb.Active && climb.Ramp != obs.Cell {
		return res
	}

	var pending snap
	switch obs.Kind {
	case ObstacleWall, ObstacleVoid:
		pending = resolveSolid(body, obs, &res)
	case ObstacleRamp:
		if climb.IsClimbing(obs.Cell) {
			pending = resolveAscent(body, obs, &res)
		} else {
			pending = resolveRampApproach(body, obs, &res, false)
		}
	case ObstacleRampDown:
		if climb.IsClimbing(obs.Cell) {
			resolveDescent(body, obs, &res)
		} else {
			pending = resolveRampApproach(body, obs, &res, true)
		}
	}

	if pending.set {
		res.Position = body.Center.With(pending.axis, pending.value)
		res.Moved = res.Position != body.Center
	}
	return res
}

// resolveSolid applies the wall rule: every overlapping edge test replaces the
// pending correction, so a later edge wins over an earlier one
func resolveSolid(body entity.Box, obs Obstacle, res *Resolution) snap {
	var pending snap
	if !body.Overlaps(obs.Box) {
		return pending
	}
	res.Collided = true
	for _, e := range edges {
		if onSide(body, obs.Box, e, edgeTolerance) {
			pending = edgeSnap(body, obs.Box, e)
		}
	}
	return pending
}

// resolveRampApproach handles an overlapping ramp that is not being climbed.
// Ascending ramps arm on the edge opposite their orientation, descending ramps
// on the edge they point to; the other three edges block like a wall.
func resolveRampApproach(body entity.Box, obs Obstacle, res *Resolution, descending bool) snap {
	var pending snap
	if !body.Overlaps(obs.Box) {
		return pending
	}
	res.Collided = true

	entry := orientationEdge(obs.Orientation)
	if !descending {
		entry.sign = -entry.sign
	}

	for _, e := range edges {
		if e != entry {
			if onSide(body, obs.Box, e, edgeTolerance) {
				pending = edgeSnap(body, obs.Box, e)
			}
			continue
		}
		if descending {
			if onSide(body, obs.Box, e, edgeTolerance) {
				res.Climb = entity.Climbing(obs.Cell)
			}
			continue
		}
		if armsAscent(body, obs.Box, e) {
			res.Climb = entity.Climbing(obs.Cell)
		}
	}
	return pending
}

// armsAscent reports whether body is far enough past the entry edge e of an
// ascending ramp and centered enough on the perpendicular axis
func armsAscent(body, obs entity.Box, e edge) bool {
	a, p := e.axis, e.axis.Other()
	depth := e.sign * (body.Center.Get(a) - obs.Center.Get(a))
	return depth > 0 &&
		depth < body.Extents.Get(a)+rampFactor2*obs.Extents.Get(a) &&
		math.Abs(body.Center.Get(p)-obs.Center.Get(p)) < obs.Extents.Get(p)
}

// resolveAscent handles the ramp currently being climbed towards the upper layer
func resolveAscent(body entity.Box, obs Obstacle, res *Resolution) snap {
	var pending snap
	up := orientationEdge(obs.Orientation)
	a, p := up.axis, up.axis.Other()
	s := up.sign

	lead := s*body.Center.Get(a) + body.Extents.Get(a)
	if lead+completionEpsilon >= s*obs.Box.Center.Get(a)+obs.Box.Extents.Get(a) {
		res.LayerDelta = 1
		res.Climb = entity.Idle()
	}

	pinned := body
	pinned.Extents = pinned.Extents.With(p, body.Extents.Get(p)*rampFactor)
	target := obs.Box
	target.Extents = target.Extents.With(p, obs.Box.Extents.Get(p)*rampFactor)
	if pinned.Overlaps(target) {
		return pending
	}

	// keep the entity on the ramp center line
	if body.Center.Get(p) != obs.Box.Center.Get(p) {
		pending = snap{set: true, axis: p, value: obs.Box.Center.Get(p)}
	}

	// backed out through the entry edge
	if s*body.Center.Get(a)+rampFactor2*body.Extents.Get(a) < s*obs.Box.Center.Get(a)-obs.Box.Extents.Get(a) {
		res.Climb = entity.Idle()
	}
	return pending
}

// resolveDescent handles the ramp currently being walked down towards the lower layer
func resolveDescent(body entity.Box, obs Obstacle, res *Resolution) {
	up := orientationEdge(obs.Orientation)
	a, p := up.axis, up.axis.Other()
	s := up.sign

	trail := s*body.Center.Get(a) - body.Extents.Get(a)
	inside := math.Abs(body.Center.Get(p)-obs.Box.Center.Get(p)) < obs.Box.Extents.Get(p)
	if trail <= s*obs.Box.Center.Get(a)-obs.Box.Extents.Get(a)+completionEpsilon && inside {
		res.LayerDelta = -1
		res.Climb = entity.Idle()
	}

	if !body.Overlaps(obs.Box) {
		res.Climb = entity.Idle()
	}
}

// Apply resolves m against obs and writes position, layer and climb state back.
// A refused layer change still clears the climb.
func Apply(m entity.Mover, obs Obstacle) bool {
	body := entity.Box{Center: m.Position(), Extents: m.Extents()}
	res := Resolve(body, obs, m.ClimbState())

	if res.Moved {
		m.SetPosition(res.Position)
	}
	if res.LayerDelta != 0 {
		m.MoveLayer(res.LayerDelta)
	}
	m.SetClimbState(res.Climb)

	return res.Collided
}
