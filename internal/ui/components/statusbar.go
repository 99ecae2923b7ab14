package components

import "github.com/charmbracelet/lipgloss"

var (
	hintDescStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9ba0bf"))
	keyCapStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#16161d")).
			Background(lipgloss.Color("#888ba4")).
			Bold(true).
			Padding(0, 1)
	segmentStyle = lipgloss.NewStyle().
			PaddingRight(2)
)

// StatusBar renders a one-line summary in style followed by key hints,
// wrapped to width.
func StatusBar(summary string, style lipgloss.Style, hints []string, width int) string {
	segments := make([]string, 0, len(hints)+1)
	if summary != "" {
		segments = append(segments, style.Render(SanitizeOneLine(summary)))
	}
	for _, h := range hints {
		segments = append(segments, segmentStyle.Render(h))
	}
	return lipgloss.JoinVertical(lipgloss.Left, wrapSegments(segments, width)...)
}

// Hint formats a single keybind hint like "Filter /".
func Hint(key, desc string) string {
	return hintDescStyle.Render(desc+" ") + keyCapStyle.Render(key)
}

func wrapSegments(segments []string, width int) []string {
	if width <= 0 {
		return []string{lipgloss.JoinHorizontal(lipgloss.Top, segments...)}
	}
	rows := make([]string, 0, 2)
	var current []string
	currentWidth := 0
	for _, seg := range segments {
		segWidth := lipgloss.Width(seg)
		if currentWidth > 0 && currentWidth+segWidth > width {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, current...))
			current = []string{seg}
			currentWidth = segWidth
			continue
		}
		current = append(current, seg)
		currentWidth += segWidth
	}
	if len(current) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, current...))
	}
	return rows
}
