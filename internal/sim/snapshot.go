package sim

import (
	"tracktor.local/steer/internal/config"
	"tracktor.local/steer/internal/geom"
	"tracktor.local/steer/internal/steer"
)

// Snapshot is a read-only copy of the world for presentation. Nothing in it
// aliases World state.
type Snapshot struct {
	Vehicle   Vehicle
	Target    Target
	Obstacles []steer.Obstacle

	// Diagnostics of the plan from the current pose. HasCurve is false when
	// the vehicle sits on the target.
	HasCurve  bool
	Curve     steer.Curve
	Path      []geom.Vec2
	LookAhead geom.Vec2
	Command   steer.Command

	Avoiding     bool
	Threat       int // Index into Obstacles, -1 when not avoiding
	AvoidTurn    float64
	DangerMargin float64

	Trail  []geom.Vec2
	Speeds []float64
	Stats  Stats
}

// Snapshot captures the current state and the plan the next tick would use.
func (w *World) Snapshot() Snapshot {
	s := Snapshot{
		Vehicle:      w.vehicle,
		Target:       w.target,
		Obstacles:    w.Obstacles(),
		Threat:       -1,
		DangerMargin: w.params.DangerMargin,
		Trail:        w.trail.Values(),
		Speeds:       w.speeds.Values(),
		Stats:        w.stats,
	}

	cmd, curve, err := w.drive.Output(w.vehicle.Pose, w.target.Pose)
	s.Command = cmd
	if err == nil {
		s.HasCurve = true
		s.Curve = curve
		s.Path = curve.Sample(config.CurveSamples)
		s.LookAhead = curve.LookAhead()
	}

	if i, ok := w.avoid.Threat(w.vehicle.Pos, w.obstacles); ok {
		s.Avoiding = true
		s.Threat = i
		s.AvoidTurn, _ = w.avoid.Output(w.vehicle.Pose, w.obstacles)
	}

	return s
}
