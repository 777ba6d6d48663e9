package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"zero", 0, 0},
		{"pi stays pi", math.Pi, math.Pi},
		{"minus pi maps to pi", -math.Pi, math.Pi},
		{"three pi", 3 * math.Pi, math.Pi},
		{"minus three pi", -3 * math.Pi, math.Pi},
		{"just past pi", math.Pi + 0.5, -math.Pi + 0.5},
		{"full turn", 2 * math.Pi, 0},
		{"negative quarter", -math.Pi / 2, -math.Pi / 2},
		{"many turns", 1000*2*math.Pi + 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, NormalizeAngle(tt.in), 1e-9)
		})
	}
}

func TestNormalizeAngleRangeAndIdempotence(t *testing.T) {
	for i := -2000; i <= 2000; i++ {
		a := float64(i) * 0.37 * math.Pi
		n := NormalizeAngle(a)
		require.Greater(t, n, -math.Pi, "input %v", a)
		require.LessOrEqual(t, n, math.Pi, "input %v", a)
		require.Equal(t, n, NormalizeAngle(n), "input %v", a)
	}

	huge := []float64{1e9, -1e9, 1e15 + 0.25, -7e12}
	for _, a := range huge {
		n := NormalizeAngle(a)
		require.Greater(t, n, -math.Pi)
		require.LessOrEqual(t, n, math.Pi)
		require.Equal(t, n, NormalizeAngle(n))
	}
}

func TestAngleDiff(t *testing.T) {
	assert.InDelta(t, 0.2, AngleDiff(0.1, -0.1), 1e-12)
	assert.InDelta(t, -0.2, AngleDiff(-0.1, 0.1), 1e-12)
	// Across the seam the short way round is taken.
	assert.InDelta(t, -0.2, AngleDiff(math.Pi-0.1, -math.Pi+0.1), 1e-9)
	assert.InDelta(t, 0.2, AngleDiff(-math.Pi+0.1, math.Pi-0.1), 1e-9)
	assert.InDelta(t, math.Pi, AngleDiff(math.Pi, 0), 1e-12)
	assert.InDelta(t, math.Pi, AngleDiff(0, math.Pi), 1e-12)
	assert.InDelta(t, 0.5, AngleDiff(40*math.Pi+0.5, -10*math.Pi), 1e-9)
}

func TestAngleDiffProperties(t *testing.T) {
	for i := -300; i <= 300; i++ {
		a := float64(i) * 0.731
		require.Equal(t, 0.0, AngleDiff(a, a), "a=%v", a)
		for j := -30; j <= 30; j++ {
			b := float64(j) * 1.913
			d := AngleDiff(a, b)
			require.LessOrEqual(t, math.Abs(d), math.Pi, "a=%v b=%v", a, b)
			require.Greater(t, d, -math.Pi, "a=%v b=%v", a, b)
		}
	}
}

func TestBezierEndpoints(t *testing.T) {
	p0 := V(0.1, -3.3)
	p1 := V(17.7, 200.9)
	p2 := V(-400.123, 12)
	p3 := V(1e-7, 333.333)

	assert.Equal(t, p0, BezierPoint(p0, p1, p2, p3, 0))
	assert.Equal(t, p3, BezierPoint(p0, p1, p2, p3, 1))
	assert.Equal(t, p0, BezierPoint3(p0, p1, p3, 0))
	assert.Equal(t, p3, BezierPoint3(p0, p1, p3, 1))
}

func TestBezierMidpoint(t *testing.T) {
	// A straight line with evenly spaced handles is traversed linearly.
	mid := BezierPoint(V(0, 0), V(1, 0), V(2, 0), V(3, 0), 0.5)
	assert.InDelta(t, 1.5, mid.X, 1e-12)
	assert.InDelta(t, 0, mid.Y, 1e-12)

	q := BezierPoint3(V(0, 0), V(1, 2), V(2, 0), 0.5)
	assert.InDelta(t, 1.0, q.X, 1e-12)
	assert.InDelta(t, 1.0, q.Y, 1e-12)
}

func TestHeadingConvention(t *testing.T) {
	up := HeadingVector(0)
	assert.InDelta(t, 0, up.X, 1e-12)
	assert.InDelta(t, 1, up.Y, 1e-12)

	left := HeadingVector(math.Pi / 2)
	assert.InDelta(t, -1, left.X, 1e-12)
	assert.InDelta(t, 0, left.Y, 1e-12)

	for _, h := range []float64{0, 0.3, -2.5, math.Pi, 3} {
		got := HeadingOf(HeadingVector(h))
		assert.InDelta(t, 0, AngleDiff(got, h), 1e-9, "heading %v", h)
	}
}

func TestRotateMatchesHeading(t *testing.T) {
	r := V(0, 200).Rotate(math.Pi / 2)
	assert.InDelta(t, -200, r.X, 1e-9)
	assert.InDelta(t, 0, r.Y, 1e-9)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 1.0, Clamp(5, -1, 1))
	assert.Equal(t, -1.0, Clamp(-5, -1, 1))
	assert.Equal(t, 0.25, Clamp(0.25, -1, 1))
}

func TestScreenBearing(t *testing.T) {
	assert.InDelta(t, 0, ScreenBearing(0), 1e-12)
	// A left turn (positive heading) shows as a counter-clockwise bearing.
	assert.InDelta(t, 3*math.Pi/2, ScreenBearing(math.Pi/2), 1e-12)
	assert.InDelta(t, math.Pi/2, ScreenBearing(-math.Pi/2), 1e-12)
}

func TestCellAngle(t *testing.T) {
	assert.InDelta(t, 0, CellAngle(10, 5, 10, 10), 1e-12)
	assert.InDelta(t, math.Pi/2, CellAngle(15, 10, 10, 10), 1e-12)
	assert.InDelta(t, math.Pi, CellAngle(10, 15, 10, 10), 1e-12)
}

func TestArrowGlyphs(t *testing.T) {
	assert.Equal(t, '^', ArrowTip(ScreenBearing(0)))
	assert.Equal(t, '<', ArrowTip(ScreenBearing(math.Pi/2)))
	assert.Equal(t, '>', ArrowTip(ScreenBearing(-math.Pi/2)))
	assert.Equal(t, 'v', ArrowTip(ScreenBearing(math.Pi)))
	assert.Equal(t, '|', ShaftChar(ScreenBearing(41*math.Pi)))
	assert.Equal(t, '-', ShaftChar(ScreenBearing(math.Pi/2)))
	assert.Equal(t, '/', ShaftChar(ScreenBearing(-math.Pi/4)))
	assert.Equal(t, 7, Sector(-0.1))
	assert.Equal(t, 0, Sector(2*math.Pi-0.1))
}
