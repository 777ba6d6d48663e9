package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// Curve planner
	NearHandle        = 200.0         // Forward handle length from the vehicle
	FarHandleMin      = 400.0         // Lower bound of the distance-adaptive approach handle
	FarHandleFixed    = 500.0         // Approach handle length when the fixed policy is used
	FollowDist        = 250.0         // Look-ahead distance along the curve
	MinT              = 0.1           // Look-ahead parameter clamp
	MaxT              = 1.0           // Look-ahead parameter clamp
	ReversalAngle     = math.Pi / 1.5 // Heading difference above which the bearing policy triggers
	ReversalOffset    = 100.0         // P1 correction along the bearing to the target
	ReversalT         = 0.70          // Fixed look-ahead during a reversal (bearing policy)
	QuarterCurveGap   = 1.2           // π-|diff| below this bends the handles (quarter-turn policy)
	QuarterTGap       = 1.3           // π-|diff| below this fixes t (quarter-turn policy)
	QuarterTDist      = 280.0         // Distance gate for the quarter-turn fixed t
	QuarterT          = 0.5           // Fixed look-ahead during a reversal (quarter-turn policy)
	QuarterFarStretch = 1.2           // Approach handle stretch (quarter-turn policy)
	CurveSamples      = 100           // Segments used for the diagnostic curve
	Epsilon           = 1e-9          // Distances below this count as coincident

	// Behaviors
	CruiseSpeed  = 10.0 // Commanded speed of drive-to-point
	DangerMargin = 70.0 // Clearance beyond an obstacle radius that triggers avoidance
	MaxSpeedStep = 0.5  // Commanded speed delta clamp, per second
	LinearScale  = 50.0 // World units per second per speed unit

	// Arrival
	ArrivalDist  = 50.0
	ArrivalAngle = 0.65

	// Target selection
	FieldHalfSize     = 500.0 // Targets are sampled in [-FieldHalfSize, FieldHalfSize]²
	TargetClearance   = 200.0 // Extra clearance around obstacles for new targets
	MaxSampleAttempts = 100

	// Display
	AspectRatio = 0.5 // Terminal char aspect correction (chars are ~2:1 tall)
	TargetFPS   = 30
	TrailLength = 240 // Samples kept for the vehicle trail and speed history
	MaxFrameDt  = 250 * time.Millisecond

	// App
	AppName    = "TRACKTOR"
	AppVersion = "1.0"
)

// Reversal correction policies.
const (
	PolicyBearing     = "bearing"
	PolicyQuarterTurn = "quarter-turn"
)

// Target heading policies.
const (
	HeadingRelative = "relative"
	HeadingUniform  = "uniform"
)

// Point is a YAML-friendly 2D coordinate.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Obstacle describes a static circular obstacle.
type Obstacle struct {
	Position Point   `yaml:"position"`
	Radius   float64 `yaml:"radius"`
}

// Planner holds the tunables of the curve planner.
type Planner struct {
	NearHandle     float64 `yaml:"near_handle"`
	FarHandleMin   float64 `yaml:"far_handle_min"`
	FarHandleFixed float64 `yaml:"far_handle_fixed"` // zero selects the adaptive handle
	FollowDist     float64 `yaml:"follow_dist"`
	ReversalPolicy string  `yaml:"reversal_policy"`
	ReversalAngle  float64 `yaml:"reversal_angle"`
	ReversalOffset float64 `yaml:"reversal_offset"`
	ReversalT      float64 `yaml:"reversal_t"`
}

// Params is the full runtime configuration of a simulation.
type Params struct {
	Planner      Planner    `yaml:"planner"`
	CruiseSpeed  float64    `yaml:"cruise_speed"`
	DangerMargin float64    `yaml:"danger_margin"`
	ArrivalDist  float64    `yaml:"arrival_dist"`
	ArrivalAngle float64    `yaml:"arrival_angle"`
	HeadingMode  string     `yaml:"heading_mode"`
	Seed         uint64     `yaml:"seed"`
	Start        Point      `yaml:"start"`
	StartHeading float64    `yaml:"start_heading"`
	Target       Point      `yaml:"target"`
	TargetAngle  float64    `yaml:"target_heading"`
	Obstacles    []Obstacle `yaml:"obstacles"`
}

// Default returns the parameters of the reference scenario.
func Default() Params {
	return Params{
		Planner: Planner{
			NearHandle:     NearHandle,
			FarHandleMin:   FarHandleMin,
			FollowDist:     FollowDist,
			ReversalPolicy: PolicyBearing,
			ReversalAngle:  ReversalAngle,
			ReversalOffset: ReversalOffset,
			ReversalT:      ReversalT,
		},
		CruiseSpeed:  CruiseSpeed,
		DangerMargin: DangerMargin,
		ArrivalDist:  ArrivalDist,
		ArrivalAngle: ArrivalAngle,
		HeadingMode:  HeadingRelative,
		Start:        Point{X: -300, Y: -300},
		StartHeading: math.Pi,
		Target:       Point{X: 400, Y: 400},
		TargetAngle:  math.Pi,
		Obstacles: []Obstacle{
			{Position: Point{X: 200, Y: 200}, Radius: 100},
			{Position: Point{X: -200, Y: 200}, Radius: 100},
		},
	}
}

// Load reads a YAML file on top of the defaults. Fields absent from the
// file keep their default value.
func Load(path string) (Params, error) {
	p := Default()
	if path == "" {
		return p, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return p, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return p, nil
}

// Validate checks that the parameters describe a runnable simulation.
func (p Params) Validate() error {
	var errs []error

	switch p.Planner.ReversalPolicy {
	case PolicyBearing, PolicyQuarterTurn:
	default:
		errs = append(errs, fmt.Errorf("unknown reversal policy %q", p.Planner.ReversalPolicy))
	}
	switch p.HeadingMode {
	case HeadingRelative, HeadingUniform:
	default:
		errs = append(errs, fmt.Errorf("unknown heading mode %q", p.HeadingMode))
	}

	if p.Planner.FollowDist <= 0 {
		errs = append(errs, errors.New("planner.follow_dist must be positive"))
	}
	if p.Planner.NearHandle < 0 || p.Planner.FarHandleMin < 0 || p.Planner.FarHandleFixed < 0 {
		errs = append(errs, errors.New("planner handle lengths must not be negative"))
	}
	if p.Planner.ReversalT < MinT || p.Planner.ReversalT > MaxT {
		errs = append(errs, fmt.Errorf("planner.reversal_t must be in [%.1f, %.1f]", MinT, MaxT))
	}
	if p.CruiseSpeed < 0 {
		errs = append(errs, errors.New("cruise_speed must not be negative"))
	}
	if p.ArrivalDist <= 0 || p.ArrivalAngle <= 0 {
		errs = append(errs, errors.New("arrival thresholds must be positive"))
	}
	for i, o := range p.Obstacles {
		if o.Radius <= 0 {
			errs = append(errs, fmt.Errorf("obstacle %d: radius must be positive", i))
		}
	}

	return errors.Join(errs...)
}
