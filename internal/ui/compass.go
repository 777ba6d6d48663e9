package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"tracktor.local/steer/internal/geom"
)

// RenderCompass renders a compass with an arrow along the vehicle heading
// and a marker on the ring at the bearing of the target. Both angles are
// headings: 0 points up, positive turns counter-clockwise.
func RenderCompass(width, height int, heading, targetBearing float64) string {
	if width < 9 || height < 5 {
		return ""
	}

	grid := make([][]rune, height)
	kind := make([][]byte, height)
	for i := range grid {
		grid[i] = make([]rune, width)
		kind[i] = make([]byte, width)
		for j := range grid[i] {
			grid[i][j] = ' '
		}
	}

	fcx := float64(width-1) / 2.0
	fcy := float64(height-1) / 2.0
	rx := fcx - 2.0 // horizontal radius in columns
	ry := fcy - 1.0 // vertical radius in rows
	if rx < 3 {
		rx = 3
	}
	if ry < 2 {
		ry = 2
	}

	put := func(col, row int, ch rune, k byte) {
		if col >= 0 && col < width && row >= 0 && row < height {
			grid[row][col] = ch
			kind[row][col] = k
		}
	}

	// Ring
	steps := 80
	for i := 0; i < steps; i++ {
		a := float64(i) * 2 * math.Pi / float64(steps)
		col := int(math.Round(fcx + rx*math.Sin(a)))
		row := int(math.Round(fcy - ry*math.Cos(a)))
		if col >= 0 && col < width && row >= 0 && row < height && grid[row][col] == ' ' {
			put(col, row, geom.RingChar(a), 'r')
		}
	}

	cx := int(math.Round(fcx))
	cy := int(math.Round(fcy))

	// Axis markers: +Y up, +X right
	put(cx, cy-int(math.Round(ry))-1, 'Y', 'm')
	put(cx+int(math.Round(rx))+1, cy, 'X', 'm')
	put(cx, cy, '+', 'm')

	// Target bearing on the ring
	tb := geom.ScreenBearing(targetBearing)
	put(int(math.Round(fcx+rx*math.Sin(tb))), int(math.Round(fcy-ry*math.Cos(tb))), 'X', 't')

	// Heading arrow from center
	hb := geom.ScreenBearing(heading)
	sinA, cosA := math.Sin(hb), math.Cos(hb)
	frac := 0.8
	shaftSteps := int(math.Max(rx, ry) * frac)
	if shaftSteps < 2 {
		shaftSteps = 2
	}
	tipCol, tipRow := cx, cy
	for s := 1; s <= shaftSteps; s++ {
		t := float64(s) / float64(shaftSteps) * frac
		col := int(math.Round(fcx + t*rx*sinA))
		row := int(math.Round(fcy - t*ry*cosA))
		if col == cx && row == cy {
			continue
		}
		put(col, row, geom.ShaftChar(hb), 'a')
		tipCol, tipRow = col, row
	}
	if tipCol != cx || tipRow != cy {
		put(tipCol, tipRow, geom.ArrowTip(hb), 'a')
	}

	ringSty := lipgloss.NewStyle().Foreground(ColorDimGreen)
	markSty := lipgloss.NewStyle().Foreground(ColorMatrixGreen).Bold(true)

	var sb strings.Builder
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			ch := string(grid[row][col])
			switch kind[row][col] {
			case 'a':
				sb.WriteString(StyleVehicle.Render(ch))
			case 't':
				sb.WriteString(StyleTarget.Render(ch))
			case 'm':
				sb.WriteString(markSty.Render(ch))
			case 'r':
				sb.WriteString(ringSty.Render(ch))
			default:
				sb.WriteByte(' ')
			}
		}
		if row < height-1 {
			sb.WriteByte('\n')
		}
	}

	return sb.String()
}

// headingToDir names the screen direction of a heading.
func headingToDir(h float64) string {
	dirs := []string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}
	return dirs[geom.Sector(geom.ScreenBearing(h))]
}
