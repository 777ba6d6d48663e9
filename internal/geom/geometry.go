package geom

import (
	"math"

	"tracktor.local/steer/internal/config"
)

// Vec2 is a point or displacement in world units. Y grows upward.
type Vec2 struct {
	X, Y float64
}

// V is shorthand for Vec2{x, y}.
func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

// Add returns v+o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v-o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v multiplied by s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Len returns the length of v.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Dist returns the distance between v and o.
func (v Vec2) Dist(o Vec2) float64 { return math.Hypot(o.X-v.X, o.Y-v.Y) }

// Angle returns the mathematical angle of v, counter-clockwise from +X.
func (v Vec2) Angle() float64 { return math.Atan2(v.Y, v.X) }

// Lerp interpolates linearly from v to o.
func (v Vec2) Lerp(o Vec2, t float64) Vec2 { return v.Add(o.Sub(v).Scale(t)) }

// Rotate turns v counter-clockwise by a radians.
func (v Vec2) Rotate(a float64) Vec2 {
	s, c := math.Sincos(a)
	return Vec2{v.X*c - v.Y*s, v.X*s + v.Y*c}
}

// Unit returns v scaled to length 1, or the zero vector if v is zero.
func (v Vec2) Unit() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Pose is a position plus heading. Heading is unbounded and must be
// normalized before it is compared.
type Pose struct {
	Pos     Vec2
	Heading float64
}

// HeadingVector returns the unit direction of heading h.
// Heading 0 points up (+Y) and positive headings turn counter-clockwise.
func HeadingVector(h float64) Vec2 {
	s, c := math.Sincos(h)
	return Vec2{-s, c}
}

// HeadingOf returns the heading that points along v.
func HeadingOf(v Vec2) float64 {
	return v.Angle() - math.Pi/2
}

// NormalizeAngle wraps an angle to (-π, π].
func NormalizeAngle(a float64) float64 {
	if a > -math.Pi && a <= math.Pi {
		return a
	}
	r := math.Mod(a, 2*math.Pi)
	if r > math.Pi {
		r -= 2 * math.Pi
	} else if r <= -math.Pi {
		r += 2 * math.Pi
	}
	return r
}

// AngleDiff returns the shortest signed angle a-b, in (-π, π].
func AngleDiff(a, b float64) float64 {
	d := math.Mod(a-b+math.Pi, 2*math.Pi)
	// math.Mod keeps the sign of the dividend.
	if d < 0 {
		d += 2 * math.Pi
	}
	d -= math.Pi
	if d <= -math.Pi {
		d += 2 * math.Pi
	}
	return d
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// BezierPoint evaluates the cubic Bézier curve p0..p3 at t.
// t is not clamped.
func BezierPoint(p0, p1, p2, p3 Vec2, t float64) Vec2 {
	switch t {
	case 0:
		return p0
	case 1:
		return p3
	}
	u := 1 - t
	uu, tt := u*u, t*t
	a, b, c, d := uu*u, 3*uu*t, 3*u*tt, tt*t
	return Vec2{
		X: a*p0.X + b*p1.X + c*p2.X + d*p3.X,
		Y: a*p0.Y + b*p1.Y + c*p2.Y + d*p3.Y,
	}
}

// BezierPoint3 evaluates the quadratic Bézier curve p0..p2 at t.
func BezierPoint3(p0, p1, p2 Vec2, t float64) Vec2 {
	switch t {
	case 0:
		return p0
	case 1:
		return p2
	}
	u := 1 - t
	a, b, c := u*u, 2*u*t, t*t
	return Vec2{
		X: a*p0.X + b*p1.X + c*p2.X,
		Y: a*p0.Y + b*p1.Y + c*p2.Y,
	}
}

// CellAngle computes the screen bearing from center to a cell, accounting
// for terminal aspect ratio. Returns radians in [0, 2π), where 0=up,
// increasing clockwise.
func CellAngle(col, row, centerX, centerY int) float64 {
	dx := float64(col - centerX)
	dy := float64(row-centerY) / config.AspectRatio
	angle := math.Atan2(dx, -dy)
	if angle < 0 {
		angle += 2 * math.Pi
	}
	return angle
}

// ScreenBearing converts a heading (0=up, counter-clockwise) to a screen
// bearing (0=up, clockwise) in [0, 2π).
func ScreenBearing(h float64) float64 {
	b := math.Mod(-h, 2*math.Pi)
	if b < 0 {
		b += 2 * math.Pi
	}
	return b
}

// RingChar returns the appropriate character for a circle outline at the
// given screen bearing.
func RingChar(angle float64) rune {
	for angle < 0 {
		angle += 2 * math.Pi
	}
	for angle >= 2*math.Pi {
		angle -= 2 * math.Pi
	}

	// 8 sectors for character selection
	sector := int(math.Round(angle/(math.Pi/4))) % 8

	switch sector {
	case 0, 4: // top, bottom
		return '-'
	case 1, 5:
		return '\\'
	case 2, 6: // sides
		return '|'
	case 3, 7:
		return '/'
	default:
		return '.'
	}
}

// ShaftChar returns the line character for a stroke along a screen bearing.
func ShaftChar(bearing float64) rune {
	switch Sector(bearing) {
	case 0, 4: // up, down
		return '|'
	case 2, 6: // right, left
		return '-'
	case 1, 5:
		return '/'
	default:
		return '\\'
	}
}

// ArrowTip returns the arrowhead character for a screen bearing.
func ArrowTip(bearing float64) rune {
	return []rune{'^', '/', '>', '\\', 'v', '/', '<', '\\'}[Sector(bearing)]
}

// Sector returns which of 8 compass sectors a screen bearing falls in,
// 0 being up and counting clockwise.
func Sector(bearing float64) int {
	for bearing < 0 {
		bearing += 2 * math.Pi
	}
	for bearing >= 2*math.Pi {
		bearing -= 2 * math.Pi
	}
	return int(math.Round(bearing/(math.Pi/4))) % 8
}
