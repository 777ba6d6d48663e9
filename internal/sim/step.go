package sim

import (
	"errors"
	"math"

	"go.uber.org/zap"

	"tracktor.local/steer/internal/config"
	"tracktor.local/steer/internal/geom"
	"tracktor.local/steer/internal/steer"
)

// StepResult describes what happened during one tick.
type StepResult struct {
	Dt         float64
	Command    steer.Command
	Turn       float64 // Turn actually applied
	Avoiding   bool
	Coincident bool // Vehicle sat on the target; arrival is still decided by the heading test
	Arrived    bool
	Reached    Target // Target that was reached, valid when Arrived
}

// Step advances the simulation by dt seconds.
func (w *World) Step(dt float64) StepResult {
	if dt < 0 || math.IsNaN(dt) {
		dt = 0
	}
	res := StepResult{Dt: dt}

	cmd, _, err := w.drive.Output(w.vehicle.Pose, w.target.Pose)
	if errors.Is(err, steer.ErrCoincident) {
		// Sitting on the target: hold course and let the arrival test decide.
		res.Coincident = true
		w.stats.Coincident++
		w.log.Debug("vehicle on target position", zap.Stringer("target", w.target.ID))
	}
	res.Command = cmd

	delta := geom.Clamp(cmd.Speed-w.vehicle.Speed, -config.MaxSpeedStep, config.MaxSpeedStep)
	w.vehicle.Speed += delta * dt

	turn := cmd.Turn
	if avoidTurn, active := w.avoid.Output(w.vehicle.Pose, w.obstacles); active {
		turn = avoidTurn
		res.Avoiding = true
	}
	res.Turn = turn

	w.vehicle.Heading += turn * dt * w.vehicle.Speed

	before := w.vehicle.Pos
	s, c := math.Sincos(w.vehicle.Heading)
	w.vehicle.Pos.X -= w.vehicle.Speed * s * dt * config.LinearScale
	w.vehicle.Pos.Y += w.vehicle.Speed * c * dt * config.LinearScale

	w.stats.Ticks++
	w.stats.SimTime += dt
	w.stats.Travelled += before.Dist(w.vehicle.Pos)
	w.trail.Push(w.vehicle.Pos)
	w.speeds.Push(w.vehicle.Speed)

	if w.arrived() {
		res.Arrived = true
		res.Reached = w.target
		w.stats.Arrivals++
		w.target = w.pickTarget()
		w.log.Info("target reached",
			zap.Stringer("target", res.Reached.ID),
			zap.Stringer("next", w.target.ID),
			zap.Uint64("tick", w.stats.Ticks),
			zap.Float64("sim_time", w.stats.SimTime),
			zap.Float64("next_x", w.target.Pos.X),
			zap.Float64("next_y", w.target.Pos.Y),
			zap.Float64("next_heading", geom.NormalizeAngle(w.target.Heading)),
		)
	}

	return res
}

func (w *World) arrived() bool {
	return w.vehicle.Pos.Dist(w.target.Pos) < w.params.ArrivalDist &&
		math.Abs(geom.AngleDiff(w.vehicle.Heading, w.target.Heading)) < w.params.ArrivalAngle
}

// Run advances the simulation n ticks of fixed dt and returns the number of
// targets reached.
func (w *World) Run(n int, dt float64) int {
	arrivals := 0
	for i := 0; i < n; i++ {
		if w.Step(dt).Arrived {
			arrivals++
		}
	}
	return arrivals
}
