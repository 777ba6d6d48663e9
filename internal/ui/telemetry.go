package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"tracktor.local/steer/internal/geom"
	"tracktor.local/steer/internal/sim"
)

// RenderTelemetry renders the vehicle and plan readout beside the field.
func RenderTelemetry(s sim.Snapshot, width, height int, cruise float64) string {
	innerW := width - 4
	if innerW < 20 {
		innerW = 20
	}

	title := StylePanelTitle.Render("TELEMETRY")
	sep := StyleSeparator.Render(strings.Repeat("-", innerW))
	lines := []string{title, sep}

	v := s.Vehicle
	heading := geom.NormalizeAngle(v.Heading)
	targetHeading := geom.NormalizeAngle(s.Target.Heading)
	dist := v.Pos.Dist(s.Target.Pos)
	diff := geom.AngleDiff(v.Heading, s.Target.Heading)

	fields := []struct{ label, value string }{
		{"Pos", fmt.Sprintf("%7.1f %7.1f", v.Pos.X, v.Pos.Y)},
		{"Heading", fmt.Sprintf("%6.1f° %s", degrees(heading), headingToDir(heading))},
		{"Speed", fmt.Sprintf("%5.2f", v.Speed)},
		{"Target", fmt.Sprintf("%7.1f %7.1f", s.Target.Pos.X, s.Target.Pos.Y)},
		{"Tgt head", fmt.Sprintf("%6.1f°", degrees(targetHeading))},
		{"Distance", fmt.Sprintf("%7.1f", dist)},
		{"Misalign", fmt.Sprintf("%6.1f°", degrees(diff))},
	}
	if s.HasCurve {
		fields = append(fields,
			struct{ label, value string }{"Look t", fmt.Sprintf("%.3f", s.Curve.T)},
			struct{ label, value string }{"Turn cmd", fmt.Sprintf("%+.3f", s.Command.Turn)},
		)
	}

	for _, f := range fields {
		lines = append(lines, StyleLabel.Render(fmt.Sprintf(" %-9s", f.label))+StyleValue.Render(f.value))
	}

	lines = append(lines, "")

	// Behavior flags
	flags := ""
	if s.HasCurve && s.Curve.Reversal {
		flags += StyleWarning.Render("[REVERSAL] ")
	}
	if s.Avoiding {
		flags += StyleWarning.Render(fmt.Sprintf("[AVOID %+.2f]", s.AvoidTurn))
	}
	if flags == "" {
		flags = StyleHelp.Render("[follow]")
	}
	lines = append(lines, " "+flags)

	// Speed bar
	barWidth := innerW - 10
	if barWidth < 10 {
		barWidth = 10
	}
	lines = append(lines, StyleLabel.Render(" Speed ")+renderSpeedBar(v.Speed, cruise, barWidth))

	if len(s.Speeds) > 0 {
		spark := renderSparkline(s.Speeds, innerW-2)
		lines = append(lines, " "+lipgloss.NewStyle().Foreground(ColorGreen).Render(spark))
	}

	lines = append(lines, "")

	// Compass fills what is left
	compassH := height - len(lines) - 3
	if compassH > 11 {
		compassH = 11
	}
	compassW := innerW
	if compassW > compassH*3 {
		compassW = compassH * 3
	}
	bearing := geom.HeadingOf(s.Target.Pos.Sub(v.Pos))
	if compass := RenderCompass(compassW, compassH, heading, bearing); compass != "" {
		prefix := strings.Repeat(" ", max(0, (innerW-compassW)/2))
		for _, cl := range strings.Split(compass, "\n") {
			lines = append(lines, prefix+cl)
		}
	}

	for len(lines) < height-2 {
		lines = append(lines, "")
	}
	if len(lines) > height-2 && height > 2 {
		lines = lines[:height-2]
	}

	rendered := StylePanelBorder.Width(width - 2).Height(height - 2).Render(strings.Join(lines, "\n"))
	return clampLines(rendered, height)
}

func degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

func renderSpeedBar(speed, cruise float64, width int) string {
	ratio := 0.0
	if cruise > 0 {
		ratio = geom.Clamp(speed/cruise, 0, 1)
	}
	filled := int(math.Round(ratio * float64(width)))

	filledPart := lipgloss.NewStyle().Foreground(ColorMatrixGreen).Render(strings.Repeat("|", filled))
	emptyPart := lipgloss.NewStyle().Foreground(ColorDimGreen).Render(strings.Repeat("-", width-filled))
	return StyleHelp.Render("[") + filledPart + emptyPart + StyleHelp.Render("]")
}

func renderSparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}

	chars := []byte{'_', '.', '-', '~', '^'}

	start := 0
	if len(values) > width {
		start = len(values) - width
	}
	values = values[start:]

	minV, maxV := values[0], values[0]
	for _, v := range values {
		minV = math.Min(minV, v)
		maxV = math.Max(maxV, v)
	}
	rng := maxV - minV
	if rng < 1e-9 {
		rng = 1
	}

	var sb strings.Builder
	for _, v := range values {
		idx := int((v - minV) / rng * float64(len(chars)-1))
		idx = min(max(idx, 0), len(chars)-1)
		sb.WriteByte(chars[idx])
	}
	return sb.String()
}

// clampLines forces rendered output to exactly height lines.
// lipgloss Height() only sets a minimum; it won't truncate overflow.
func clampLines(rendered string, height int) string {
	out := strings.Split(rendered, "\n")
	if len(out) > height {
		out = out[:height]
	}
	for len(out) < height {
		out = append(out, "")
	}
	return strings.Join(out, "\n")
}
