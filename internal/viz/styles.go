package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Metric value style
	MetricValue = lipgloss.NewStyle().
			Bold(true)

	// Metric label style
	MetricLabel = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888899"))

	// Key hint style
	KeyHint = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688")).
		Italic(true)

	// Sparkline bar colors
	SparkHigh = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff"))
	SparkMid  = lipgloss.NewStyle().Foreground(lipgloss.Color("#88ff88"))
	SparkLow  = lipgloss.NewStyle().Foreground(lipgloss.Color("#338833"))
)

// SparklineChart renders a mini sparkline of the last width values.
func SparklineChart(values []float64, width int) string {
	if width <= 0 {
		return ""
	}
	if len(values) == 0 {
		return strings.Repeat("─", width)
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}

	// Sparkline characters from low to high
	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	var result strings.Builder
	for _, v := range values {
		norm := (v - lo) / rng
		idx := clampInt(int(norm*float64(len(chars)-1)), 0, len(chars)-1)
		c := string(chars[idx])
		switch {
		case norm > 0.7:
			result.WriteString(SparkHigh.Render(c))
		case norm > 0.3:
			result.WriteString(SparkMid.Render(c))
		default:
			result.WriteString(SparkLow.Render(c))
		}
	}
	return result.String()
}

// statusLine renders label/value pairs followed by a key hint.
func statusLine(theme Theme, hint string, pairs ...string) string {
	label := MetricLabel.Foreground(theme.Muted)
	value := MetricValue.Foreground(theme.Text)
	parts := make([]string, 0, len(pairs)/2+1)
	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts, label.Render(pairs[i])+" "+value.Render(pairs[i+1]))
	}
	if hint != "" {
		parts = append(parts, KeyHint.Render(hint))
	}
	return strings.Join(parts, "  ")
}
