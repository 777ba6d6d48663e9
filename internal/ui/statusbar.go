package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"tracktor.local/steer/internal/sim"
)

// RenderStatusBar renders the bottom status bar.
func RenderStatusBar(width int, running bool, stats sim.Stats, seed uint64) string {
	status := StyleStatusPaused.Render("[PAUSED]")
	if running {
		status = StyleStatusRunning.Render("[RUNNING]")
	}

	info := fmt.Sprintf(" Arrivals: %d  Ticks: %d  Time: %s  Driven: %.0fu  Seed: %d",
		stats.Arrivals, stats.Ticks, formatSimTime(stats.SimTime), stats.Travelled, seed)
	if stats.Relaxed > 0 {
		info += fmt.Sprintf("  Relaxed: %d", stats.Relaxed)
	}

	content := status + StyleStatusBar.Foreground(ColorGreen).Render(info)

	gap := width - 2 - lipgloss.Width(content)
	if gap < 0 {
		gap = 0
	}

	return StyleStatusBar.Width(width).Render(content + strings.Repeat(" ", gap))
}

func formatSimTime(sec float64) string {
	total := int(sec)
	return fmt.Sprintf("%02d:%02d.%d", total/60, total%60, int((sec-float64(total))*10))
}
