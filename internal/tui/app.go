package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/pders01/reel/internal/carousel"
	"github.com/pders01/reel/internal/config"
	"github.com/pders01/reel/internal/debuglog"
	"github.com/pders01/reel/internal/media"
	"github.com/pders01/reel/internal/search"
	"github.com/pders01/reel/internal/storage"
	"github.com/pders01/reel/internal/validation"
)

// Rows above the cards: the header and a blank line.
const cardTop = 2

type linkOpener interface {
	Open(link string) error
}

// pointer is the last mouse position seen, so hover can be re-derived when
// the cards move under a still pointer.
type pointer struct {
	x, y int
	seen bool
}

type App struct {
	config     *config.Config
	deck       *storage.Deck
	query      string
	engine     *carousel.Engine[storage.Item]
	sched      *teaScheduler
	viewport   *terminalViewport
	keyHandler *KeyHandler
	help       help.Model
	links      *validation.LinkValidator
	launcher   linkOpener
	reloads    <-chan DeckUpdate

	width       int
	height      int
	gap         int
	hoverSource int
	pointer     pointer
	fading      bool
	dots        dotLayout
	cards       map[cardKey]string

	glamourRenderer *glamour.TermRenderer
	rendererWidth   int

	status     string
	statusKind StatusKind
	err        error
	quitting   bool
}

// NewApp builds the viewer for deck. A non-empty query narrows the deck to
// matching items, and is reapplied whenever the deck is reloaded.
func NewApp(cfg *config.Config, deck *storage.Deck, query string) *App {
	if deck == nil {
		deck = &storage.Deck{}
	}
	ApplyTheme(cfg.UI.Colors)

	gap := int(math.Round(cfg.Carousel.Gap))
	a := &App{
		config:      cfg,
		deck:        deck,
		query:       strings.TrimSpace(query),
		sched:       newTeaScheduler(cfg.Carousel.FrameInterval),
		viewport:    newTerminalViewport(),
		help:        help.New(),
		links:       validation.NewLinkValidator(),
		launcher:    media.NewLauncher(cfg.Media),
		gap:         gap,
		hoverSource: carousel.NoItem,
	}
	a.resetCards()
	a.keyHandler = NewKeyHandler(a, cfg)
	a.engine = carousel.New(a.filter(deck.Items), engineOptions(cfg, gap), a.sched)
	return a
}

func engineOptions(cfg *config.Config, gap int) carousel.Options {
	c := cfg.Carousel
	opts := carousel.DefaultOptions()
	opts.Autoplay = c.Autoplay
	opts.ShowDots = c.ShowDots
	opts.Gap = float64(gap)
	opts.Interval = c.Interval
	opts.FadeDuration = c.FadeDuration
	opts.Velocity = c.Velocity
	opts.ItemsPerView = carousel.ItemsPerView{
		Mobile:  c.ItemsPerView.Mobile,
		Tablet:  c.ItemsPerView.Tablet,
		Desktop: c.ItemsPerView.Desktop,
	}
	opts.Breakpoints = carousel.Breakpoints{
		Tablet:  c.Breakpoints.Tablet,
		Desktop: c.Breakpoints.Desktop,
	}
	opts.Measure = cellMeasurer(gap)
	return opts
}

// WatchReloads feeds deck file changes into the viewer. Call before the
// program starts.
func (a *App) WatchReloads(ch <-chan DeckUpdate) {
	a.reloads = ch
}

func (a *App) filter(items []storage.Item) []storage.Item {
	if a.query == "" {
		return items
	}
	out, err := search.Filter(items, a.query)
	if err != nil {
		a.err = wrapErr("filtering deck", err)
		return items
	}
	a.setStatus(MsgFiltered(a.query, len(out), len(items)), StatusInfo)
	return out
}

func (a *App) Init() tea.Cmd {
	a.engine.Mount(a.viewport, a.viewport)
	return tea.Batch(a.sched.Flush(), waitForReload(a.reloads))
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		a.resetCards()
		a.viewport.setWidth(msg.Width)
		a.refreshHover()

	case tea.KeyMsg:
		model, cmd := a.keyHandler.HandleKey(msg)
		if a.quitting {
			return model, cmd
		}
		cmds = append(cmds, cmd)
		a.refreshHover()

	case tea.MouseMsg:
		a.handleMouse(msg)

	case tickMsg:
		a.sched.handle(msg)

	case fadeTickMsg:
		a.fading = false

	case deckReloadedMsg:
		if msg.err != nil {
			a.err = msg.err
		} else {
			a.applyDeck(msg.deck)
			a.refreshHover()
		}
		cmds = append(cmds, waitForReload(a.reloads))

	case errorMsg:
		a.err = msg.err
	}

	cmds = append(cmds, a.sched.Flush())
	if frame, ok := a.engine.Paged(); ok && !a.fading && frame.Fading(a.sched.Now()) {
		a.fading = true
		cmds = append(cmds, fadeTick(a.sched.frameInterval))
	}
	return a, tea.Batch(cmds...)
}

func (a *App) applyDeck(deck *storage.Deck) {
	a.deck = deck
	a.err = nil
	a.resetCards()
	a.engine.SetItems(a.filter(deck.Items))
	if a.query == "" {
		a.setStatus(MsgDeckReloaded(deck.Title, len(deck.Items)), StatusSuccess)
	}
	debuglog.WithFields(map[string]interface{}{
		"deck":  deck.ID,
		"items": len(a.engine.Items()),
	}).Infof("deck applied")
}

func (a *App) quit() tea.Cmd {
	a.quitting = true
	a.engine.Unmount()
	return tea.Quit
}

func (a *App) setStatus(text string, kind StatusKind) {
	a.status = text
	a.statusKind = kind
}

func (a *App) clearStatus() {
	a.status = ""
	a.err = nil
}

func (a *App) cardHeight() int {
	return max(min(a.config.UI.Card.Height, a.height-cardTop-2-1-a.statusHeight()), 3)
}

func (a *App) statusHeight() int {
	if a.help.ShowAll && a.err == nil && a.status == "" {
		return lipgloss.Height(a.help.View(a.keyHandler.keys))
	}
	return 1
}

func (a *App) handleMouse(msg tea.MouseMsg) {
	switch msg.Action {
	case tea.MouseActionMotion:
		a.updateHover(msg.X, msg.Y)
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft && msg.Y == cardTop+a.cardHeight()+1 {
			a.pointer = pointer{x: msg.X, y: msg.Y, seen: true}
			a.clickIndicator(msg.X)
			a.refreshHover()
		}
	}
}

// refreshHover re-maps the last pointer position after navigation, a resize
// or a reload moved different cards under it.
func (a *App) refreshHover() {
	if a.pointer.seen {
		a.updateHover(a.pointer.x, a.pointer.y)
	}
}

// updateHover maps the pointer to the card under it. Gaps and rows outside
// the cards count as no item.
func (a *App) updateHover(x, y int) {
	a.pointer = pointer{x: x, y: y, seen: true}
	hover := carousel.NoItem
	if y >= cardTop && y < cardTop+a.cardHeight() && x >= 0 && x < a.width {
		if frame, ok := a.engine.Paged(); ok {
			hover = frame.Index
		} else if strip, ok := a.engine.Strip(); ok {
			cardW := int(strip.ItemWidth)
			if unit := cardW + a.gap; cardW > 0 {
				pos := x + int(math.Floor(strip.Offset))
				if pos%unit < cardW {
					hover = strip.Items.Source(pos / unit)
				}
			}
		}
	}
	if hover == a.hoverSource {
		return
	}
	a.hoverSource = hover
	a.engine.SetHover(hover)
}

func (a *App) clickIndicator(x int) {
	target, ok := a.dots.hit(x)
	if !ok {
		return
	}
	nav := a.engine.Indicator()
	switch {
	case target < 0:
		nav.PressPrev()
	case target >= a.dots.dots:
		nav.PressNext()
	default:
		nav.Activate(target)
	}
}

// activeItem is the hovered item, else the one the carousel is showing:
// the paged item, or the leftmost card whose left edge is in view.
func (a *App) activeItem() (storage.Item, bool) {
	items := a.engine.Items()
	if len(items) == 0 {
		return storage.Item{}, false
	}
	if a.hoverSource >= 0 && a.hoverSource < len(items) {
		return items[a.hoverSource], true
	}
	if frame, ok := a.engine.Paged(); ok {
		return items[frame.Index], true
	}
	if strip, ok := a.engine.Strip(); ok {
		unit := int(strip.ItemWidth) + a.gap
		if unit <= 0 {
			return items[0], true
		}
		left := int(math.Floor(strip.Offset))
		k := (left + unit - 1) / unit
		return strip.Items.At(k), true
	}
	return storage.Item{}, false
}

func (a *App) openActiveLink() {
	item, ok := a.activeItem()
	if !ok {
		a.setStatus(MsgNoItems, StatusWarn)
		return
	}
	if item.Link == "" {
		a.setStatus(MsgNoLink, StatusWarn)
		return
	}
	if err := a.launcher.Open(item.Link); err != nil {
		a.err = wrapErr("opening link", err)
		return
	}
	a.err = nil
	a.setStatus(MsgOpening(item.Link), StatusSuccess)
}

func (a *App) View() string {
	if a.quitting || a.width == 0 {
		return ""
	}

	title := a.deck.Title
	if title == "" {
		title = AppName
	}
	header := renderHeader(title, a.deck.Source, a.width)

	height := a.cardHeight()
	var cards string
	switch {
	case len(a.engine.Items()) == 0:
		cards = renderCentered(a.width, height, GetWelcomeMessage())
	default:
		if frame, ok := a.engine.Paged(); ok {
			cards = a.renderPaged(frame, height)
		} else if strip, ok := a.engine.Strip(); ok {
			cards = a.renderStrip(strip, height)
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		cards,
		"",
		a.renderIndicator(),
	)

	statusBar := a.renderStatusBar()
	contentHeight := max(a.height-1-lipgloss.Height(statusBar), 0)
	content = lipgloss.NewStyle().Width(a.width).Height(contentHeight).MaxHeight(contentHeight).Render(content)

	separator := SeparatorStyle.Render(strings.Repeat("─", max(a.width, 0)))
	return lipgloss.JoinVertical(lipgloss.Left, content, separator, statusBar)
}

// renderStatusBar shows errors, then status messages, then key help on the
// left, and the carousel position on the right.
func (a *App) renderStatusBar() string {
	right := a.positionSummary()
	leftWidth := max(a.width-lipgloss.Width(right)-3, 0)

	var left string
	switch {
	case a.err != nil:
		left = StatusErrorStyle.Render(truncateEnd("✗ "+a.err.Error(), leftWidth))
	case a.status != "":
		left = a.statusKind.style().Render(truncateEnd(a.status, leftWidth))
	default:
		a.help.Width = leftWidth
		left = a.help.View(a.keyHandler.keys)
	}

	gap := max(a.width-lipgloss.Width(left)-lipgloss.Width(right)-2, 1)
	return lipgloss.NewStyle().Padding(0, 1).Render(left + strings.Repeat(" ", gap) + StatusInfoStyle.Render(right))
}

func (a *App) positionSummary() string {
	s := a.engine.State()
	if !s.Mounted {
		return ""
	}
	parts := []string{a.engine.Indicator().Label(), s.Mode.String() + "/" + s.Tier.String()}
	switch {
	case !s.Autoplay:
		parts = append(parts, "autoplay off")
	case s.Paused:
		parts = append(parts, "paused")
	}
	return strings.Join(parts, " • ")
}
