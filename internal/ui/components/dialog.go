package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#273540")).
			Padding(1, 2).
			Width(40)

	dialogHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#7f57b4")).
				Bold(true)

	dialogBodyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9ba0bf"))

	dialogFieldStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#436b77"))

	menuActiveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#16161d")).
			Background(lipgloss.Color("#7f57b4")).
			Bold(true)
)

// ConfirmDialog renders a yes/no confirmation.
func ConfirmDialog(title, message string) string {
	header := dialogHeaderStyle.Render(SanitizeOneLine(title))
	body := dialogBodyStyle.Render(SanitizeText(message))
	hint := dialogBodyStyle.Render("\ny: confirm | n: cancel")
	return dialogStyle.Render(header + "\n\n" + body + hint)
}

// InputDialog renders a text input prompt.
func InputDialog(title, input string) string {
	header := dialogHeaderStyle.Render(SanitizeOneLine(title))
	field := dialogFieldStyle.Render("> " + SanitizeOneLine(input) + "█")
	hint := dialogBodyStyle.Render("\nenter: apply | esc: clear")
	return dialogStyle.Render(header + "\n\n" + field + hint)
}

// MenuDialog renders a vertical action menu with the active entry highlighted.
func MenuDialog(title string, entries []string, active int) string {
	header := dialogHeaderStyle.Render(ClampTextWidth(title, 34))
	lines := make([]string, len(entries))
	for i, e := range entries {
		label := padRight(ClampTextWidth(e, 32), 32)
		if i == active {
			lines[i] = menuActiveStyle.Render(" " + label + " ")
		} else {
			lines[i] = dialogBodyStyle.Render(" " + label + " ")
		}
	}
	hint := dialogBodyStyle.Render("\n↑/↓: move | enter: run | esc: close")
	return dialogStyle.Render(header + "\n\n" + strings.Join(lines, "\n") + hint)
}
