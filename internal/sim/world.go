package sim

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tracktor.local/steer/internal/config"
	"tracktor.local/steer/internal/geom"
	"tracktor.local/steer/internal/steer"
)

// Vehicle is the simulated agent.
type Vehicle struct {
	geom.Pose
	Speed float64
}

// Target is the waypoint the vehicle is driving to. It is always replaced
// as a whole.
type Target struct {
	ID uuid.UUID
	geom.Pose
}

// Stats are running totals for a simulation.
type Stats struct {
	Ticks      uint64
	Arrivals   int
	SimTime    float64 // Seconds of integrated time
	Travelled  float64 // World units driven
	Relaxed    int     // Targets accepted without obstacle clearance
	Coincident int     // Ticks where the vehicle sat exactly on the target
}

// World owns all simulation state. It is not safe for concurrent use; a
// single loop drives it and presentation reads Snapshots.
type World struct {
	params    config.Params
	seed      uint64
	rng       *rand.Rand
	log       *zap.Logger
	drive     *steer.DriveToPoint
	avoid     *steer.Avoidance
	obstacles []steer.Obstacle

	vehicle Vehicle
	target  Target
	stats   Stats
	trail   *Ring[geom.Vec2]
	speeds  *Ring[float64]
}

// New creates a world from validated parameters. A zero seed picks one
// from the wall clock.
func New(p config.Params, log *zap.Logger) (*World, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("simulation params: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}

	seed := p.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	obstacles := make([]steer.Obstacle, len(p.Obstacles))
	for i, o := range p.Obstacles {
		obstacles[i] = steer.Obstacle{Pos: geom.V(o.Position.X, o.Position.Y), Radius: o.Radius}
	}

	w := &World{
		params:    p,
		seed:      seed,
		log:       log.With(zap.Uint64("seed", seed)),
		drive:     steer.NewDriveToPoint(steer.NewPlanner(p.Planner), p.CruiseSpeed),
		avoid:     steer.NewAvoidance(p.DangerMargin),
		obstacles: obstacles,
		trail:     NewRing[geom.Vec2](config.TrailLength),
		speeds:    NewRing[float64](config.TrailLength),
	}
	w.Reset()
	return w, nil
}

// Reset restores the initial vehicle and target and clears statistics.
// The random sequence restarts from the same seed.
func (w *World) Reset() {
	w.rng = rand.New(rand.NewPCG(w.seed, w.seed^0x9E3779B97F4A7C15))
	w.vehicle = Vehicle{
		Pose: geom.Pose{
			Pos:     geom.V(w.params.Start.X, w.params.Start.Y),
			Heading: w.params.StartHeading,
		},
	}
	w.target = Target{
		ID: uuid.New(),
		Pose: geom.Pose{
			Pos:     geom.V(w.params.Target.X, w.params.Target.Y),
			Heading: w.params.TargetAngle,
		},
	}
	w.stats = Stats{}
	w.trail.Clear()
	w.speeds.Clear()
	w.trail.Push(w.vehicle.Pos)
	w.speeds.Push(0)
}

// Seed returns the seed of the random source.
func (w *World) Seed() uint64 { return w.seed }

// Params returns the parameters the world was built with.
func (w *World) Params() config.Params { return w.params }

// Vehicle returns the current vehicle state.
func (w *World) Vehicle() Vehicle { return w.vehicle }

// Target returns the current target.
func (w *World) Target() Target { return w.target }

// Obstacles returns a copy of the obstacle set.
func (w *World) Obstacles() []steer.Obstacle {
	out := make([]steer.Obstacle, len(w.obstacles))
	copy(out, w.obstacles)
	return out
}

// Stats returns the running totals.
func (w *World) Stats() Stats { return w.stats }
