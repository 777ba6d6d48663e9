package sim

import (
	"math"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tracktor.local/steer/internal/config"
	"tracktor.local/steer/internal/geom"
)

// pickTarget rejection-samples the next target. After MaxSampleAttempts
// candidates the clearance constraint is dropped and the last candidate wins.
func (w *World) pickTarget() Target {
	var cand geom.Pose
	for attempt := 0; attempt < config.MaxSampleAttempts; attempt++ {
		cand = w.sampleCandidate()
		if w.clearOfObstacles(cand.Pos) {
			return Target{ID: uuid.New(), Pose: cand}
		}
	}

	w.stats.Relaxed++
	w.log.Warn("no clear target position found, ignoring obstacle clearance",
		zap.Int("attempts", config.MaxSampleAttempts),
		zap.Float64("x", cand.Pos.X),
		zap.Float64("y", cand.Pos.Y),
	)
	return Target{ID: uuid.New(), Pose: cand}
}

func (w *World) sampleCandidate() geom.Pose {
	pos := geom.V(
		w.uniform(-config.FieldHalfSize, config.FieldHalfSize),
		w.uniform(-config.FieldHalfSize, config.FieldHalfSize),
	)

	var heading float64
	switch w.params.HeadingMode {
	case config.HeadingUniform:
		heading = w.uniform(0, 2*math.Pi)
	default:
		heading = w.target.Heading + w.uniform(-math.Pi/2, math.Pi/2)
	}
	return geom.Pose{Pos: pos, Heading: geom.NormalizeAngle(heading)}
}

func (w *World) clearOfObstacles(p geom.Vec2) bool {
	for _, o := range w.obstacles {
		if p.Dist(o.Pos) < o.Radius+config.TargetClearance {
			return false
		}
	}
	return true
}

func (w *World) uniform(lo, hi float64) float64 {
	return lo + w.rng.Float64()*(hi-lo)
}
