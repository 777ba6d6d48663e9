package steer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tracktor.local/steer/internal/config"
	"tracktor.local/steer/internal/geom"
)

func pose(x, y, h float64) geom.Pose {
	return geom.Pose{Pos: geom.V(x, y), Heading: h}
}

func defaultPlanner() *Planner {
	return NewPlanner(config.Default().Planner)
}

func quarterPlanner() *Planner {
	cfg := config.Default().Planner
	cfg.ReversalPolicy = config.PolicyQuarterTurn
	return NewPlanner(cfg)
}

func assertVec(t *testing.T, want, got geom.Vec2) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-9, "x")
	assert.InDelta(t, want.Y, got.Y, 1e-9, "y")
}

func TestPlanStraightAhead(t *testing.T) {
	c, err := defaultPlanner().Plan(pose(0, 0, 0), pose(0, 300, 0))
	require.NoError(t, err)

	assert.False(t, c.Reversal)
	assert.InDelta(t, 250.0/300.0, c.T, 1e-12)
	assert.InDelta(t, 300, c.Distance, 1e-12)
	assertVec(t, geom.V(0, 0), c.Points[0])
	assertVec(t, geom.V(0, 200), c.Points[1])
	assertVec(t, geom.V(0, -100), c.Points[2])
	assertVec(t, geom.V(0, 300), c.Points[3])
}

func TestPlanHeadOnReversal(t *testing.T) {
	c, err := defaultPlanner().Plan(pose(0, 0, 0), pose(0, 100, math.Pi))
	require.NoError(t, err)

	assert.True(t, c.Reversal)
	assert.Equal(t, config.ReversalT, c.T)
	// Forward handle is pushed along the bearing to the target.
	assertVec(t, geom.V(0, 300), c.Points[1])
}

func TestPlanReversalUsesNormalizedHeadings(t *testing.T) {
	// Same geometry as above with headings wound up many turns.
	c, err := defaultPlanner().Plan(pose(0, 0, 20*math.Pi), pose(0, 100, -41*math.Pi))
	require.NoError(t, err)
	assert.True(t, c.Reversal)
	assert.Equal(t, config.ReversalT, c.T)
}

func TestPlanModerateTurnIsNotReversal(t *testing.T) {
	c, err := defaultPlanner().Plan(pose(0, 0, 0), pose(200, 200, math.Pi/2))
	require.NoError(t, err)
	assert.False(t, c.Reversal)
}

func TestPlanLookAheadClamp(t *testing.T) {
	p := defaultPlanner()

	far, err := p.Plan(pose(0, 0, 0), pose(0, 5000, 0))
	require.NoError(t, err)
	assert.Equal(t, config.MinT, far.T)

	near, err := p.Plan(pose(0, 0, 0), pose(0, 100, 0))
	require.NoError(t, err)
	assert.Equal(t, config.MaxT, near.T)
}

func TestPlanApproachHandle(t *testing.T) {
	adaptive, err := defaultPlanner().Plan(pose(0, 0, 0), pose(0, 1000, 0))
	require.NoError(t, err)
	assert.InDelta(t, 500, adaptive.Points[3].Dist(adaptive.Points[2]), 1e-9)

	short, err := defaultPlanner().Plan(pose(0, 0, 0), pose(0, 300, 0))
	require.NoError(t, err)
	assert.InDelta(t, config.FarHandleMin, short.Points[3].Dist(short.Points[2]), 1e-9)

	cfg := config.Default().Planner
	cfg.FarHandleFixed = config.FarHandleFixed
	fixed, err := NewPlanner(cfg).Plan(pose(0, 0, 0), pose(0, 3000, 0))
	require.NoError(t, err)
	assert.InDelta(t, config.FarHandleFixed, fixed.Points[3].Dist(fixed.Points[2]), 1e-9)
}

func TestPlanCoincident(t *testing.T) {
	_, err := defaultPlanner().Plan(pose(10, 10, 0), pose(10, 10, 1))
	require.ErrorIs(t, err, ErrCoincident)
}

func TestPlanQuarterTurnClose(t *testing.T) {
	c, err := quarterPlanner().Plan(pose(0, 0, 0), pose(0, 200, math.Pi))
	require.NoError(t, err)

	assert.True(t, c.Reversal)
	assert.Equal(t, config.QuarterT, c.T)
	assert.InDelta(t, config.NearHandle, c.Points[0].Dist(c.Points[1]), 1e-9)
	assert.InDelta(t, config.FarHandleMin*config.QuarterFarStretch, c.Points[3].Dist(c.Points[2]), 1e-9)
	// Both handles swing to the same side of the bearing line.
	assert.Less(t, c.Points[1].X, 0.0)
	assert.Less(t, c.Points[2].X, 0.0)
}

func TestPlanQuarterTurnFar(t *testing.T) {
	c, err := quarterPlanner().Plan(pose(0, 0, 0), pose(0, 1000, math.Pi))
	require.NoError(t, err)

	assert.True(t, c.Reversal)
	assert.InDelta(t, 0.25, c.T, 1e-12)
}

func TestPlanQuarterTurnSameHeading(t *testing.T) {
	got, err := quarterPlanner().Plan(pose(0, 0, 0), pose(0, 300, 0))
	require.NoError(t, err)
	want, err := defaultPlanner().Plan(pose(0, 0, 0), pose(0, 300, 0))
	require.NoError(t, err)

	assert.False(t, got.Reversal)
	assert.Equal(t, want, got)
}

func TestCurveSample(t *testing.T) {
	c, err := defaultPlanner().Plan(pose(0, 0, 0), pose(300, 300, -math.Pi/2))
	require.NoError(t, err)

	pts := c.Sample(config.CurveSamples)
	require.Len(t, pts, config.CurveSamples+1)
	assert.Equal(t, c.Points[0], pts[0])
	assert.Equal(t, c.Points[3], pts[len(pts)-1])

	assert.Len(t, c.Sample(0), 2)
}

func TestDriveStraight(t *testing.T) {
	d := NewDriveToPoint(defaultPlanner(), config.CruiseSpeed)
	cmd, curve, err := d.Output(pose(0, 0, 0), pose(0, 300, 0))
	require.NoError(t, err)

	assert.Equal(t, config.CruiseSpeed, cmd.Speed)
	assert.InDelta(t, 0, cmd.Turn, 1e-9)
	assert.InDelta(t, 250.0/300.0, curve.T, 1e-12)
}

func TestDriveTurnsTowardTarget(t *testing.T) {
	d := NewDriveToPoint(defaultPlanner(), config.CruiseSpeed)

	left, _, err := d.Output(pose(0, 0, 0), pose(-300, 0, math.Pi/2))
	require.NoError(t, err)
	assert.Greater(t, left.Turn, 0.0)
	assert.LessOrEqual(t, left.Turn, 1.0)

	right, _, err := d.Output(pose(0, 0, 0), pose(300, 0, -math.Pi/2))
	require.NoError(t, err)
	assert.Less(t, right.Turn, 0.0)
	assert.GreaterOrEqual(t, right.Turn, -1.0)
}

func TestDriveTurnIsClamped(t *testing.T) {
	d := NewDriveToPoint(defaultPlanner(), config.CruiseSpeed)
	cmd, _, err := d.Output(pose(0, 0, 0), pose(0, -1000, math.Pi))
	require.NoError(t, err)
	assert.InDelta(t, 1, math.Abs(cmd.Turn), 1e-12)
}

func TestDriveCoincident(t *testing.T) {
	d := NewDriveToPoint(defaultPlanner(), config.CruiseSpeed)
	cmd, curve, err := d.Output(pose(5, 5, 0), pose(5, 5, 0))
	require.ErrorIs(t, err, ErrCoincident)
	assert.Equal(t, Command{Speed: config.CruiseSpeed}, cmd)
	assert.Equal(t, Curve{}, curve)
}

func TestAvoidanceEngages(t *testing.T) {
	a := NewAvoidance(config.DangerMargin)
	obstacles := []Obstacle{{Pos: geom.V(0, 0), Radius: 50}}

	turn, active := a.Output(pose(60, 0, 0), obstacles)
	assert.True(t, active)
	assert.NotZero(t, turn)
	assert.Equal(t, -1.0, turn)

	turn, active = a.Output(pose(200, 0, 0), obstacles)
	assert.False(t, active)
	assert.Equal(t, 0.0, turn)
}

func TestAvoidanceBoundaryIsExclusive(t *testing.T) {
	a := NewAvoidance(config.DangerMargin)
	obstacles := []Obstacle{{Pos: geom.V(0, 0), Radius: 50}}

	_, active := a.Output(pose(120, 0, 0), obstacles)
	assert.False(t, active)
	_, active = a.Output(pose(119.9, 0, 0), obstacles)
	assert.True(t, active)
}

func TestAvoidanceFirstObstacleWins(t *testing.T) {
	a := NewAvoidance(config.DangerMargin)
	obstacles := []Obstacle{
		{Pos: geom.V(100, 0), Radius: 50},
		{Pos: geom.V(-1, 0), Radius: 50},
	}

	i, ok := a.Threat(geom.V(0, 0), obstacles)
	require.True(t, ok)
	assert.Equal(t, 0, i)

	// Obstacle 0 lies to the right, so the vehicle turns left.
	turn, active := a.Output(pose(0, 0, 0), obstacles)
	assert.True(t, active)
	assert.Equal(t, 1.0, turn)
}

func TestAvoidanceActiveWithZeroTurn(t *testing.T) {
	a := NewAvoidance(config.DangerMargin)
	obstacles := []Obstacle{{Pos: geom.V(0, 0), Radius: 50}}

	turn, active := a.Output(pose(0, -60, 0), obstacles)
	assert.True(t, active)
	assert.InDelta(t, 0, turn, 1e-12)
}
