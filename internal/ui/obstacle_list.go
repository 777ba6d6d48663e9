package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"tracktor.local/steer/internal/sim"
)

// Threat row style: black text on orange, the obstacle being avoided
var threatRowSty = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#000000")).
	Background(ColorWarning).
	Bold(true)

// RenderObstacleList renders the obstacles with their clearance from the
// vehicle. The one currently driving avoidance is highlighted.
func RenderObstacleList(s sim.Snapshot, width, height int) string {
	innerW := width - 4
	if innerW < 10 {
		innerW = 10
	}

	title := StylePanelTitle.Render(fmt.Sprintf("OBSTACLES [%d]", len(s.Obstacles)))
	separator := StyleSeparator.Render(strings.Repeat("-", innerW))
	lines := []string{title, separator}

	innerH := height - 2
	if innerH < len(lines)+1 {
		innerH = len(lines) + 1
	}

	if len(s.Obstacles) == 0 {
		lines = append(lines, StyleHelp.Render(" Open field"))
	}

	for i, o := range s.Obstacles {
		if len(lines) >= innerH {
			break
		}
		clearance := s.Vehicle.Pos.Dist(o.Pos) - o.Radius
		raw := fmt.Sprintf(" %d (%6.0f,%6.0f) r%-4.0f %6.0f", i+1, o.Pos.X, o.Pos.Y, o.Radius, clearance)
		raw = truncRaw(raw, innerW)

		switch {
		case i == s.Threat:
			lines = append(lines, threatRowSty.Render(raw))
		case clearance < s.DangerMargin*2:
			lines = append(lines, StyleWarning.Render(raw))
		default:
			lines = append(lines, StyleObstacle.Render(raw))
		}
	}

	for len(lines) < innerH {
		lines = append(lines, "")
	}
	if len(lines) > innerH {
		lines = lines[:innerH]
	}

	rendered := StylePanelBorder.Width(width - 2).Height(innerH).Render(strings.Join(lines, "\n"))
	return clampLines(rendered, height)
}

// truncRaw pads or truncates a raw string to exactly w characters.
func truncRaw(s string, w int) string {
	if len(s) > w {
		return s[:w]
	}
	if len(s) < w {
		return s + strings.Repeat(" ", w-len(s))
	}
	return s
}
