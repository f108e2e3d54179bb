package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/pders01/reel/internal/carousel"
	"github.com/pders01/reel/internal/debuglog"
	"github.com/pders01/reel/internal/storage"
)

type cardKey struct {
	source  int
	width   int
	height  int
	hovered bool
}

// cellMeasurer is the terminal version of carousel.StripMeasurer: cards are
// a whole number of columns wide, so one pass is n * (floor(item) + gap).
func cellMeasurer(gap int) carousel.Measurer {
	return func(viewportWidth, n, itemsVisible int) float64 {
		w := math.Floor(carousel.ItemWidth(viewportWidth, itemsVisible, float64(gap)))
		if w <= 0 || n <= 0 {
			return 0
		}
		return float64(n) * (w + float64(gap))
	}
}

// blend mixes two hex colors in Lab space; t=0 is from and t=1 is to.
func blend(from, to lipgloss.Color, t float64) lipgloss.Color {
	t = math.Max(0, math.Min(1, t))
	a, errA := colorful.Hex(string(from))
	b, errB := colorful.Hex(string(to))
	if errA != nil || errB != nil {
		if t < 0.5 {
			return from
		}
		return to
	}
	return lipgloss.Color(a.BlendLab(b, t).Clamped().Hex())
}

func (a *App) markdown(width int) *glamour.TermRenderer {
	if !a.config.UI.Card.Markdown {
		return nil
	}
	if a.glamourRenderer != nil && a.rendererWidth == width {
		return a.glamourRenderer
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		debuglog.Warnf("markdown renderer: %v", err)
		return nil
	}
	a.glamourRenderer = r
	a.rendererWidth = width
	return r
}

func (a *App) renderBody(body string, width int) []string {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil
	}
	if r := a.markdown(width); r != nil {
		if out, err := r.Render(body); err == nil {
			return strings.Split(strings.Trim(out, "\n"), "\n")
		}
	}
	return strings.Split(lipgloss.NewStyle().Width(width).Render(body), "\n")
}

// cardColors picks the border and title colors. A card fading in blends
// from the surface color toward its resting colors.
type cardColors struct {
	border lipgloss.Color
	title  lipgloss.Color
}

func (a *App) restingColors(hovered bool) cardColors {
	c := cardColors{border: MutedColor, title: PrimaryColor}
	if hovered {
		c.border = AccentColor
	}
	return c
}

// renderCard draws one item exactly width x height cells.
func (a *App) renderCard(item storage.Item, width, height int, colors cardColors) string {
	if width < 5 || height < 3 {
		return lipgloss.NewStyle().Width(width).Height(height).Render("")
	}
	inner := width - 4
	rows := height - 2

	lines := []string{CardTitleStyle.Foreground(colors.title).Render(truncateEnd(item.Title, inner))}
	lines = append(lines, "")
	lines = append(lines, a.renderBody(item.Body, inner)...)

	var footer []string
	if len(item.Tags) > 0 {
		tags := make([]string, 0, len(item.Tags))
		for _, t := range item.Tags {
			tags = append(tags, TagStyle.Render(t))
		}
		footer = append(footer, strings.Join(tags, " "))
	}
	if link, err := a.links.ValidateAndNormalize(item.Link); item.Link != "" && err == nil {
		footer = append(footer, CardLinkStyle.Render(truncateMiddle(link, inner)))
	}

	if room := rows - len(footer); len(lines) > room {
		lines = lines[:max(room, 1)]
	}
	for len(lines)+len(footer) < rows {
		lines = append(lines, "")
	}
	lines = append(lines, footer...)
	if len(lines) > rows {
		lines = lines[:rows]
	}
	for i, l := range lines {
		lines[i] = ansi.Truncate(l, inner, "")
	}

	return CardStyle.
		BorderForeground(colors.border).
		Width(width - 2).
		Height(rows).
		Render(strings.Join(lines, "\n"))
}

func (a *App) cachedCard(source int, item storage.Item, width, height int, hovered bool) string {
	k := cardKey{source: source, width: width, height: height, hovered: hovered}
	if card, ok := a.cards[k]; ok {
		return card
	}
	card := a.renderCard(item, width, height, a.restingColors(hovered))
	a.cards[k] = card
	return card
}

func (a *App) resetCards() {
	a.cards = make(map[cardKey]string)
}

// renderPaged shows the current item full width, crossfading in after a
// change.
func (a *App) renderPaged(frame carousel.PagedFrame, height int) string {
	items := a.engine.Items()
	if frame.Index < 0 || frame.Index >= len(items) {
		return ""
	}
	hovered := a.hoverSource != carousel.NoItem
	progress := frame.Progress(a.sched.Now())
	if progress >= 1 {
		return a.cachedCard(frame.Index, items[frame.Index], a.width, height, hovered)
	}
	rest := a.restingColors(hovered)
	return a.renderCard(items[frame.Index], a.width, height, cardColors{
		border: blend(SurfaceColor, rest.border, progress),
		title:  blend(SurfaceColor, rest.title, progress),
	})
}

// renderStrip lays out the cards overlapping the window edge to edge and
// cuts the window at floor(offset).
func (a *App) renderStrip(strip carousel.Strip[storage.Item], height int) string {
	cardW := int(strip.ItemWidth)
	if cardW < 1 {
		return ""
	}
	unit := cardW + a.gap
	left := int(math.Floor(strip.Offset))
	first := left / unit
	skip := left - first*unit
	gap := strings.Repeat(" ", a.gap)

	rows := make([]strings.Builder, height)
	for k := first; (k-first)*unit < a.width+skip; k++ {
		src := strip.Items.Source(k)
		card := a.cachedCard(src, strip.Items.At(k), cardW, height, src == a.hoverSource)
		lines := strings.Split(card, "\n")
		for r := range rows {
			if r < len(lines) {
				rows[r].WriteString(lines[r])
			} else {
				rows[r].WriteString(strings.Repeat(" ", cardW))
			}
			rows[r].WriteString(gap)
		}
	}

	out := make([]string, height)
	for r := range rows {
		out[r] = ansi.Cut(rows[r].String(), skip, skip+a.width)
	}
	return strings.Join(out, "\n")
}

// dotLayout records where the indicator controls were drawn so clicks can
// be mapped back to them.
type dotLayout struct {
	start int
	dots  int
	width int
}

// renderIndicator draws "‹ ● ○ ○ ›", or "‹ Slide 2 of 5 ›" when dots are
// hidden, centered in the row.
func (a *App) renderIndicator() string {
	nav := a.engine.Indicator()
	dots := nav.Dots()
	_, total := nav.Position()
	if total == 0 {
		a.dots = dotLayout{}
		return ""
	}

	parts := []string{DotStyle.Render("‹")}
	plain := 2
	if dots == nil {
		label := nav.Label()
		parts = append(parts, renderMuted(label))
		plain += lipgloss.Width(label) + 1
	} else {
		for _, d := range dots {
			if d.Active {
				parts = append(parts, DotActiveStyle.Render("●"))
			} else {
				parts = append(parts, DotStyle.Render("○"))
			}
			plain += 2
		}
	}
	parts = append(parts, DotStyle.Render("›"))
	plain++

	pad := max((a.width-plain)/2, 0)
	a.dots = dotLayout{start: pad, dots: len(dots), width: plain}
	return strings.Repeat(" ", pad) + strings.Join(parts, " ")
}

// hit maps a column on the indicator row to a control: -1 for
// previous, len(dots) for next, a dot index otherwise, or ok=false.
func (l dotLayout) hit(x int) (target int, ok bool) {
	if l.width == 0 {
		return 0, false
	}
	col := x - l.start
	switch {
	case col == 0:
		return -1, true
	case col == l.width-1:
		return l.dots, true
	case l.dots > 0 && col >= 2 && col < 2+2*l.dots && col%2 == 0:
		return (col - 2) / 2, true
	}
	return 0, false
}
