package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"tracktor.local/steer/internal/config"
)

// RenderMenuBar renders the top menu bar.
func RenderMenuBar(width int, policy string, running bool) string {
	title := fmt.Sprintf(" %s v%s ", config.AppName, config.AppVersion)

	keys := []struct{ key, label string }{
		{"SPC", "run/pause"},
		{"N", "ext tick"},
		{"R", "eset"},
		{"C", "urve"},
		{"H", "andles"},
		{"T", "rail"},
		{"M", "argins"},
		{"Q", "uit"},
	}

	menu := ""
	for _, k := range keys {
		menu += "  " + StyleMenuKey.Render("["+k.key+"]") + StyleMenuLabel.Render(k.label)
	}

	status := StyleStatusPaused.Render("PAUSED")
	if running {
		status = StyleStatusRunning.Render("RUNNING")
	}

	policyInfo := StyleMenuLabel.Render(fmt.Sprintf("Reversal: %s", policy))

	left := StyleMenuKey.Render(title) + menu
	right := status + "  " + policyInfo + " "

	gap := width - 2 - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	return StyleMenuBar.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}
