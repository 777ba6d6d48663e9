package field

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"tracktor.local/steer/internal/geom"
	"tracktor.local/steer/internal/sim"
)

var (
	colorVehicle  = lipgloss.Color("#3D7BFF")
	colorTarget   = lipgloss.Color("#FF3300")
	colorCurve    = lipgloss.Color("#00CC33")
	colorHandle   = lipgloss.Color("#FFCC00")
	colorPolygon  = lipgloss.Color("#CCCCCC")
	colorObstacle = lipgloss.Color("#B266FF")
	colorDanger   = lipgloss.Color("#FFAA00")
	colorTrail    = lipgloss.Color("#1F4FAF")
	colorGrid     = lipgloss.Color("#003300")
	colorBorder   = lipgloss.Color("#004A0A")

	styleVehicle  = lipgloss.NewStyle().Foreground(colorVehicle).Bold(true)
	styleTarget   = lipgloss.NewStyle().Foreground(colorTarget).Bold(true)
	styleLook     = lipgloss.NewStyle().Foreground(colorTarget)
	styleCurve    = lipgloss.NewStyle().Foreground(colorCurve)
	styleHandle   = lipgloss.NewStyle().Foreground(colorHandle).Bold(true)
	stylePolygon  = lipgloss.NewStyle().Foreground(colorPolygon)
	styleObstacle = lipgloss.NewStyle().Foreground(colorObstacle)
	styleFill     = lipgloss.NewStyle().Foreground(lipgloss.Color("#4B2A6B"))
	styleMargin   = lipgloss.NewStyle().Foreground(lipgloss.Color("#3A2A4B"))
	styleDanger   = lipgloss.NewStyle().Foreground(colorDanger).Bold(true)
	styleTrail    = lipgloss.NewStyle().Foreground(colorTrail)
	styleGrid     = lipgloss.NewStyle().Foreground(colorGrid)
	styleBorder   = lipgloss.NewStyle().Foreground(colorBorder)
	styleLegVeh   = lipgloss.NewStyle().Foreground(colorVehicle)
	styleLegTgt   = lipgloss.NewStyle().Foreground(colorTarget)
	styleLegCurve = lipgloss.NewStyle().Foreground(colorCurve)
	styleLegObs   = lipgloss.NewStyle().Foreground(colorObstacle)
)

// Options toggles the diagnostic layers.
type Options struct {
	Curve   bool // Sampled curve and look-ahead point
	Handles bool // Control polygon
	Trail   bool
	Margins bool // Danger margin around obstacles
}

// DefaultOptions shows everything.
func DefaultOptions() Options {
	return Options{Curve: true, Handles: true, Trail: true, Margins: true}
}

type cell struct {
	ch    rune
	style *lipgloss.Style
}

type canvas struct {
	view  View
	cells [][]cell
}

func newCanvas(v View) *canvas {
	cells := make([][]cell, v.Height)
	for i := range cells {
		cells[i] = make([]cell, v.Width)
		for j := range cells[i] {
			cells[i][j] = cell{ch: ' '}
		}
	}
	return &canvas{view: v, cells: cells}
}

func (c *canvas) set(col, row int, ch rune, style *lipgloss.Style) {
	if c.view.Inside(col, row) {
		c.cells[row][col] = cell{ch: ch, style: style}
	}
}

func (c *canvas) plot(p geom.Vec2, ch rune, style *lipgloss.Style) {
	col, row := c.view.Cell(p)
	c.set(col, row, ch, style)
}

// line draws a straight world-space segment, one sample per half cell.
func (c *canvas) line(a, b geom.Vec2, ch rune, style *lipgloss.Style) {
	steps := int(math.Ceil(a.Dist(b)/c.view.CellSize()*2)) + 1
	for i := 0; i <= steps; i++ {
		c.plot(a.Lerp(b, float64(i)/float64(steps)), ch, style)
	}
}

func (c *canvas) String() string {
	var sb strings.Builder
	for row, line := range c.cells {
		for _, cl := range line {
			if cl.style == nil {
				sb.WriteRune(cl.ch)
				continue
			}
			sb.WriteString(cl.style.Render(string(cl.ch)))
		}
		if row < len(c.cells)-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// Render produces the world display as a styled string. Layers are painted
// back to front: grid, obstacles, trail, plan, target, vehicle.
func Render(width, height int, s sim.Snapshot, opts Options) string {
	if width < 10 || height < 5 {
		return ""
	}

	v := NewView(width, height)
	c := newCanvas(v)

	drawGrid(c)
	drawObstacles(c, s, opts)

	if opts.Trail {
		for _, p := range s.Trail {
			c.plot(p, '·', &styleTrail)
		}
	}

	if s.HasCurve {
		if opts.Handles {
			pts := s.Curve.Points
			c.line(pts[0], pts[1], '.', &stylePolygon)
			c.line(pts[1], pts[2], '.', &stylePolygon)
			c.line(pts[2], pts[3], '.', &stylePolygon)
			c.plot(pts[1], 'o', &styleHandle)
			c.plot(pts[2], 'o', &styleHandle)
		}
		if opts.Curve {
			for i := 1; i < len(s.Path); i++ {
				c.line(s.Path[i-1], s.Path[i], '*', &styleCurve)
			}
			c.plot(s.LookAhead, '@', &styleLook)
		}
	}

	drawPose(c, s.Target.Pose, 'X', &styleTarget)
	drawPose(c, s.Vehicle.Pose, 0, &styleVehicle)

	return c.String()
}

func drawGrid(c *canvas) {
	v := c.view
	lo, hi := -Extent, Extent
	c.line(geom.V(lo, 0), geom.V(hi, 0), '-', &styleGrid)
	c.line(geom.V(0, lo), geom.V(0, hi), ':', &styleGrid)

	b := Extent - 100
	corners := []geom.Vec2{geom.V(-b, -b), geom.V(b, -b), geom.V(b, b), geom.V(-b, b)}
	for i := range corners {
		c.line(corners[i], corners[(i+1)%len(corners)], '.', &styleBorder)
	}
	for _, p := range corners {
		c.plot(p, '+', &styleBorder)
	}
	col, row := v.Cell(geom.Vec2{})
	c.set(col, row, '+', &styleGrid)
}

func drawObstacles(c *canvas, s sim.Snapshot, opts Options) {
	v := c.view
	tol := v.CellSize() * 0.6

	for row := 0; row < v.Height; row++ {
		for col := 0; col < v.Width; col++ {
			if ch, style, ok := obstacleCell(v, col, row, tol, s, opts); ok {
				c.set(col, row, ch, style)
			}
		}
	}
}

// obstacleCell picks the glyph of the first obstacle that covers a cell.
func obstacleCell(v View, col, row int, tol float64, s sim.Snapshot, opts Options) (rune, *lipgloss.Style, bool) {
	p := v.World(col, row)
	for i, o := range s.Obstacles {
		d := p.Dist(o.Pos)
		switch {
		case math.Abs(d-o.Radius) < tol:
			ocol, orow := v.Cell(o.Pos)
			return geom.RingChar(geom.CellAngle(col, row, ocol, orow)), &styleObstacle, true
		case d < o.Radius:
			return ':', &styleFill, true
		case opts.Margins && math.Abs(d-o.Radius-s.DangerMargin) < tol:
			if s.Avoiding && s.Threat == i {
				return '.', &styleDanger, true
			}
			return '.', &styleMargin, true
		}
	}
	return 0, nil, false
}

// drawPose marks a position with ch and a short arrow along its heading.
// A zero ch draws the arrow tip itself at the position.
func drawPose(c *canvas, p geom.Pose, ch rune, style *lipgloss.Style) {
	bearing := geom.ScreenBearing(p.Heading)
	tip := geom.ArrowTip(bearing)

	ahead := p.Pos.Add(geom.HeadingVector(p.Heading).Scale(c.view.CellSize() * 2))
	if ch == 0 {
		c.plot(ahead, geom.ShaftChar(bearing), style)
		c.plot(p.Pos, tip, style)
		return
	}
	c.plot(ahead, tip, style)
	c.plot(p.Pos, ch, style)
}

// RenderLegend produces the field legend line.
func RenderLegend(width int) string {
	legend := styleLegVeh.Render("^ vehicle") +
		"  " +
		styleLegTgt.Render("X target  @ look-ahead") +
		"  " +
		styleLegCurve.Render("* curve") +
		"  " +
		styleLegObs.Render("O obstacle")

	pad := (width - lipgloss.Width(legend)) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat(" ", pad) + legend
}
