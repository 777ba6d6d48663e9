package steer

import (
	"tracktor.local/steer/internal/geom"
)

// Command is the output of the drive-to-point behavior.
type Command struct {
	Speed float64
	Turn  float64 // [-1, 1]
}

// DriveToPoint steers toward a look-ahead point on the planned curve at a
// constant cruise speed. It holds no state between calls.
type DriveToPoint struct {
	planner *Planner
	speed   float64
}

// NewDriveToPoint creates the behavior.
func NewDriveToPoint(planner *Planner, cruiseSpeed float64) *DriveToPoint {
	return &DriveToPoint{planner: planner, speed: cruiseSpeed}
}

// Output computes the speed and turn commands toward target. On
// ErrCoincident the turn is zero and the returned curve is empty.
func (d *DriveToPoint) Output(vehicle, target geom.Pose) (Command, Curve, error) {
	curve, err := d.planner.Plan(vehicle, target)
	if err != nil {
		return Command{Speed: d.speed}, Curve{}, err
	}

	look := curve.LookAhead()
	desired := geom.HeadingOf(look.Sub(vehicle.Pos))
	turn := geom.Clamp(geom.AngleDiff(desired, vehicle.Heading), -1, 1)

	return Command{Speed: d.speed, Turn: turn}, curve, nil
}
