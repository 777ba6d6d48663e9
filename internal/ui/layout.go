package ui

import "github.com/charmbracelet/lipgloss"

// ComposeLayout joins the field panel and the side column horizontally,
// with menu bar on top and status bar on bottom.
func ComposeLayout(menuBar, fieldPanel, side, statusBar string) string {
	middle := lipgloss.JoinHorizontal(lipgloss.Top, fieldPanel, side)
	return lipgloss.JoinVertical(lipgloss.Left, menuBar, middle, statusBar)
}

// RenderFieldPanel wraps the field content with a styled border.
// The field itself is rendered externally to avoid import cycles.
func RenderFieldPanel(width, height int, fieldContent, legend string) string {
	content := fieldContent + "\n" + legend
	return StylePanelBorder.Width(width - 2).Height(height - 2).Render(content)
}

// ComposeSide stacks the side column panels.
func ComposeSide(panels ...string) string {
	return lipgloss.JoinVertical(lipgloss.Left, panels...)
}
