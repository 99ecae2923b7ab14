package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// --- Theme Colors ---

var (
	ColorPrimary    = lipgloss.Color("#7f57b4") // purple
	ColorSecondary  = lipgloss.Color("#436b77") // teal
	ColorAccent     = lipgloss.Color("#a7754e") // warm
	ColorBackground = lipgloss.Color("#16161d") // dark
	ColorText       = lipgloss.Color("#d7d9da") // main text
	ColorMuted      = lipgloss.Color("#9ba0bf") // muted text
	ColorSuccess    = lipgloss.Color("#3f866b") // green
	ColorWarning    = lipgloss.Color("#c78854") // warning
	ColorError      = lipgloss.Color("#e06c75") // error
	ColorBorder     = lipgloss.Color("#273540") // border
)

// --- Reusable Styles ---

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorBackground).
			Background(ColorPrimary).
			Bold(true).
			Padding(0, 1)

	CrumbStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Bold(true).
			PaddingLeft(1)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	AccentStyle = lipgloss.NewStyle().
			Foreground(ColorAccent)

	statusSegment = lipgloss.NewStyle().
			Padding(0, 1).
			MarginRight(2)

	InfoStyle = statusSegment.
			Foreground(ColorText).
			Background(ColorBorder)

	SuccessStyle = statusSegment.
			Foreground(ColorBackground).
			Background(ColorSuccess)

	WarningStyle = statusSegment.
			Foreground(ColorBackground).
			Background(ColorWarning)

	ErrorStyle = statusSegment.
			Foreground(ColorBackground).
			Background(ColorError).
			Bold(true)

	IncomingStyle = statusSegment.
			Foreground(ColorBackground).
			Background(ColorAccent).
			Bold(true)
)

// toastStyle picks the status segment style for a toast level.
func toastStyle(level string) lipgloss.Style {
	switch level {
	case "success":
		return SuccessStyle
	case "warning":
		return WarningStyle
	case "error":
		return ErrorStyle
	}
	return InfoStyle
}

// renderHeader draws the one-line header: app name, folder path, active
// filter and sort order, truncated to width.
func renderHeader(crumbs []string, query, sort string, width int) string {
	parts := []string{TitleStyle.Render("launchgrid")}
	parts = append(parts, CrumbStyle.Render(strings.Join(crumbs, " › ")))
	if query != "" {
		parts = append(parts, AccentStyle.Render(" /"+query))
	}
	parts = append(parts, MutedStyle.Render("  sort:"+sort))
	line := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	if width > 0 && lipgloss.Width(line) > width {
		return lipgloss.NewStyle().MaxWidth(width).Render(line)
	}
	return line
}
