package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/pders01/reel/internal/config"
)

const AppName = "reel"

var LogoLines = []string{
	"█▀▀▄ █▀▀ █▀▀ █  ",
	"█▄▄▀ █▀▀ █▀▀ █  ",
	"█  █ █▄▄ █▄▄ █▄▄",
}

const CompactLogo = `reel ›`

// Theme colors. Defaults match the stock config; ApplyTheme replaces them.
var (
	PrimaryColor   = lipgloss.Color("#FF6B6B")
	SecondaryColor = lipgloss.Color("#4ECDC4")
	AccentColor    = lipgloss.Color("#95E1D3")
	SurfaceColor   = lipgloss.Color("#16213E")
	TextColor      = lipgloss.Color("#EAEAEA")
	MutedColor     = lipgloss.Color("#94A3B8")
	ErrorColor     = lipgloss.Color("#F87171")
	SuccessColor   = lipgloss.Color("#10B981")
	WarnColor      = lipgloss.Color("#FFE66D")
)

var (
	LogoStyle          lipgloss.Style
	HeaderStyle        lipgloss.Style
	CardStyle          lipgloss.Style
	CardTitleStyle     lipgloss.Style
	CardLinkStyle      lipgloss.Style
	TagStyle           lipgloss.Style
	DotActiveStyle     lipgloss.Style
	DotStyle           lipgloss.Style
	HelpStyle          lipgloss.Style
	SeparatorStyle     lipgloss.Style
	StatusInfoStyle    lipgloss.Style
	StatusSuccessStyle lipgloss.Style
	StatusWarnStyle    lipgloss.Style
	StatusErrorStyle   lipgloss.Style
)

func init() {
	buildStyles()
}

// ApplyTheme swaps the palette for the configured one. Colors left empty
// keep their current value.
func ApplyTheme(colors config.UIColors) {
	set := func(dst *lipgloss.Color, v string) {
		if v != "" {
			*dst = lipgloss.Color(v)
		}
	}
	set(&PrimaryColor, colors.Primary)
	set(&SecondaryColor, colors.Secondary)
	set(&AccentColor, colors.Accent)
	set(&SurfaceColor, colors.Surface)
	set(&TextColor, colors.Text)
	set(&MutedColor, colors.Muted)
	set(&ErrorColor, colors.Error)
	buildStyles()
}

func buildStyles() {
	LogoStyle = lipgloss.NewStyle().
		Foreground(PrimaryColor).
		Bold(true)

	HeaderStyle = lipgloss.NewStyle().
		Foreground(SecondaryColor).
		Bold(true)

	CardStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(MutedColor).
		Foreground(TextColor).
		Padding(0, 1)

	CardTitleStyle = lipgloss.NewStyle().
		Foreground(PrimaryColor).
		Bold(true)

	CardLinkStyle = lipgloss.NewStyle().
		Foreground(SecondaryColor).
		Underline(true)

	TagStyle = lipgloss.NewStyle().
		Foreground(SurfaceColor).
		Background(AccentColor).
		Padding(0, 1)

	DotActiveStyle = lipgloss.NewStyle().
		Foreground(AccentColor).
		Bold(true)

	DotStyle = lipgloss.NewStyle().
		Foreground(MutedColor)

	HelpStyle = lipgloss.NewStyle().
		Foreground(MutedColor).
		Italic(true)

	SeparatorStyle = lipgloss.NewStyle().
		Foreground(MutedColor)

	StatusInfoStyle = lipgloss.NewStyle().
		Foreground(MutedColor)

	StatusSuccessStyle = lipgloss.NewStyle().
		Foreground(SuccessColor)

	StatusWarnStyle = lipgloss.NewStyle().
		Foreground(WarnColor)

	StatusErrorStyle = lipgloss.NewStyle().
		Foreground(ErrorColor).
		Bold(true)
}

func GetWelcomeMessage() string {
	return GetCompactBanner("This deck has no items yet")
}

func GetCompactBanner(message string) string {
	var coloredLines []string
	for _, line := range LogoLines {
		coloredLines = append(coloredLines, LogoStyle.Render(line))
	}

	return lipgloss.JoinVertical(
		lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, coloredLines...),
		"",
		HelpStyle.Render(message),
	)
}

// Banner renders the logo with a version tagline for `reel version`.
func Banner(version string) string {
	tagline := "    Terminal Carousel"
	if version != "" && version != "dev" {
		if version[0] != 'v' && version[0] != 'V' {
			version = "v" + version
		}
		tagline = fmt.Sprintf("    Terminal Carousel %s", version)
	}

	palette := []lipgloss.Color{PrimaryColor, AccentColor, SecondaryColor}
	lines := make([]string, 0, len(LogoLines)+2)
	for i, line := range LogoLines {
		lines = append(lines, lipgloss.NewStyle().
			Foreground(palette[i%len(palette)]).
			Bold(true).
			Render(line))
	}
	lines = append(lines, "", HelpStyle.Render(tagline))

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(SecondaryColor).
		Padding(1, 3).
		Render(lipgloss.JoinVertical(lipgloss.Center, lines...))
}
