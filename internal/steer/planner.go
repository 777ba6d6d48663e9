package steer

import (
	"errors"
	"math"

	"tracktor.local/steer/internal/config"
	"tracktor.local/steer/internal/geom"
)

// ErrCoincident is returned when the vehicle sits on the target position and
// no curve can be built. Callers treat it as having arrived for that tick.
var ErrCoincident = errors.New("vehicle and target positions coincide")

// Curve is a planned cubic Bézier from the vehicle to the target together
// with the look-ahead parameter used to follow it.
type Curve struct {
	Points   [4]geom.Vec2
	T        float64
	Distance float64 // Straight-line distance between the end points
	Reversal bool    // Near head-on reversal correction was applied
}

// At evaluates the curve at t.
func (c Curve) At(t float64) geom.Vec2 {
	return geom.BezierPoint(c.Points[0], c.Points[1], c.Points[2], c.Points[3], t)
}

// LookAhead returns the point on the curve the vehicle steers toward.
func (c Curve) LookAhead() geom.Vec2 {
	return c.At(c.T)
}

// Sample returns n+1 evenly spaced points along the curve, end points
// included. n < 1 yields just the two end points.
func (c Curve) Sample(n int) []geom.Vec2 {
	if n < 1 {
		n = 1
	}
	pts := make([]geom.Vec2, n+1)
	for i := 0; i <= n; i++ {
		pts[i] = c.At(float64(i) / float64(n))
	}
	return pts
}

// Planner builds the control polygon and look-ahead parameter from the
// vehicle pose toward a target pose.
type Planner struct {
	cfg config.Planner
}

// NewPlanner creates a planner with the given tunables.
func NewPlanner(cfg config.Planner) *Planner {
	return &Planner{cfg: cfg}
}

// Plan constructs the curve from vehicle to target.
func (p *Planner) Plan(vehicle, target geom.Pose) (Curve, error) {
	dist := vehicle.Pos.Dist(target.Pos)
	if dist < config.Epsilon {
		return Curve{}, ErrCoincident
	}

	far := p.farHandle(dist)
	p0, p3 := vehicle.Pos, target.Pos
	c := Curve{
		Points: [4]geom.Vec2{
			p0,
			p0.Add(geom.V(0, p.cfg.NearHandle).Rotate(vehicle.Heading)),
			p3.Add(geom.V(0, far).Rotate(target.Heading + math.Pi)),
			p3,
		},
		T:        geom.Clamp(p.cfg.FollowDist/dist, config.MinT, config.MaxT),
		Distance: dist,
	}

	switch p.cfg.ReversalPolicy {
	case config.PolicyQuarterTurn:
		p.applyQuarterTurn(&c, vehicle, target, far)
	default:
		p.applyBearing(&c, vehicle, target)
	}
	return c, nil
}

func (p *Planner) farHandle(dist float64) float64 {
	if p.cfg.FarHandleFixed > 0 {
		return p.cfg.FarHandleFixed
	}
	return math.Max(dist/2, p.cfg.FarHandleMin)
}

// applyBearing pushes the forward handle toward the target when the headings
// are close to opposite, and pins the look-ahead.
func (p *Planner) applyBearing(c *Curve, vehicle, target geom.Pose) {
	if math.Abs(geom.AngleDiff(vehicle.Heading, target.Heading)) <= p.cfg.ReversalAngle {
		return
	}

	bearing := target.Pos.Sub(vehicle.Pos).Unit()
	c.Points[1] = c.Points[1].Add(bearing.Scale(p.cfg.ReversalOffset))
	c.T = p.cfg.ReversalT
	c.Reversal = true
}

// applyQuarterTurn bends both handles a quarter turn off the bearing line
// so the curve swings around instead of looping back on itself.
func (p *Planner) applyQuarterTurn(c *Curve, vehicle, target geom.Pose, far float64) {
	diff := geom.AngleDiff(target.Heading, vehicle.Heading)
	gap := math.Pi - math.Abs(diff)

	if gap < config.QuarterCurveGap {
		offset := math.Pi / 4
		if diff < 0 {
			offset = -offset
		}
		base := geom.NormalizeAngle(geom.HeadingOf(target.Pos.Sub(vehicle.Pos)) + math.Pi)
		c.Points[1] = vehicle.Pos.Add(geom.V(0, p.cfg.NearHandle).Rotate(base - offset))
		c.Points[2] = target.Pos.Add(geom.V(0, far*config.QuarterFarStretch).Rotate(target.Heading + math.Pi + offset))
		c.Reversal = true
	}

	if c.Distance <= config.QuarterTDist && gap < config.QuarterTGap {
		c.T = config.QuarterT
		c.Reversal = true
	}
}
