package steer

import (
	"tracktor.local/steer/internal/geom"
)

// Obstacle is a static circle the vehicle must keep clear of.
type Obstacle struct {
	Pos    geom.Vec2
	Radius float64
}

// Avoidance turns the vehicle away from the first obstacle it gets too
// close to. It is reactive: nothing happens until the vehicle is inside
// radius+margin.
type Avoidance struct {
	margin float64
}

// NewAvoidance creates the behavior with the given danger margin.
func NewAvoidance(margin float64) *Avoidance {
	return &Avoidance{margin: margin}
}

// Threat returns the index of the first obstacle, in declaration order, whose
// danger zone contains pos.
func (a *Avoidance) Threat(pos geom.Vec2, obstacles []Obstacle) (int, bool) {
	for i, o := range obstacles {
		if pos.Dist(o.Pos) < o.Radius+a.margin {
			return i, true
		}
	}
	return -1, false
}

// Output returns the override turn and whether avoidance is active. The
// turn is only meaningful when active is true; a zero turn can be active.
func (a *Avoidance) Output(vehicle geom.Pose, obstacles []Obstacle) (turn float64, active bool) {
	i, ok := a.Threat(vehicle.Pos, obstacles)
	if !ok {
		return 0, false
	}

	bearing := geom.HeadingOf(obstacles[i].Pos.Sub(vehicle.Pos))
	return geom.Clamp(geom.AngleDiff(vehicle.Heading, bearing), -1, 1), true
}
