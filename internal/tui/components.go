package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// renderHeader returns the styled title line with an optional muted
// subtitle on the same row, truncated to width.
func renderHeader(title, subtitle string, width int) string {
	title = truncateEnd("› "+title, width-2)
	line := HeaderStyle.Render(title)
	if subtitle != "" {
		room := width - lipgloss.Width(title) - 4
		if room > 3 {
			line += "  " + renderMuted(truncateMiddle(subtitle, room))
		}
	}
	return line
}

// renderCentered centers content within a width x height box.
func renderCentered(width, height int, content string) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

func renderMuted(text string) string {
	return lipgloss.NewStyle().Foreground(MutedColor).Render(text)
}

// truncateEnd shortens s to at most limit runes, ending in an ellipsis
// when cut.
func truncateEnd(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	if limit == 1 {
		return "…"
	}
	return string(r[:limit-1]) + "…"
}

// truncateMiddle keeps both ends of s, which suits file paths.
func truncateMiddle(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	r := []rune(s)
	n := len(r)
	if n <= limit {
		return s
	}
	if limit == 1 {
		return "…"
	}
	keep := limit - 1
	left := keep / 2
	right := keep - left
	return string(r[:left]) + "…" + string(r[n-right:])
}
