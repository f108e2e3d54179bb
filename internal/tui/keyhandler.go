package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pders01/reel/internal/config"
)

type keyMap struct {
	Previous key.Binding
	Next     key.Binding
	GoTo     key.Binding
	Autoplay key.Binding
	Open     key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Previous, k.Next, k.Autoplay, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Previous, k.Next, k.GoTo},
		{k.Autoplay, k.Open},
		{k.Help, k.Quit},
	}
}

// newKeyMap builds the bindings from config. The vi keys and ctrl+c are
// always bound alongside the configured ones.
func newKeyMap(b config.KeyBindings) keyMap {
	return keyMap{
		Previous: binding([]string{b.Previous, "h"}, "prev"),
		Next:     binding([]string{b.Next, "l"}, "next"),
		GoTo: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "go to slide"),
		),
		Autoplay: binding([]string{b.Autoplay}, "autoplay"),
		Open:     binding([]string{b.Open}, "open link"),
		Help:     binding([]string{b.Help}, "help"),
		Quit: key.NewBinding(
			key.WithKeys(nonEmpty(b.Quit, "ctrl+c")...),
			key.WithHelp(keyLabel(b.Quit), "quit"),
		),
	}
}

func binding(keys []string, desc string) key.Binding {
	keys = nonEmpty(keys...)
	label := ""
	for i, k := range keys {
		if i > 0 {
			label += "/"
		}
		label += keyLabel(k)
	}
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(label, desc))
}

func nonEmpty(keys ...string) []string {
	out := make([]string, 0, len(keys))
	seen := make(map[string]bool, len(keys))
	for _, k := range keys {
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}

func keyLabel(k string) string {
	switch k {
	case " ":
		return "space"
	case "left":
		return "←"
	case "right":
		return "→"
	default:
		return k
	}
}

type KeyHandler struct {
	app  *App
	keys keyMap
}

func NewKeyHandler(app *App, cfg *config.Config) *KeyHandler {
	return &KeyHandler{app: app, keys: newKeyMap(cfg.Keys.Bindings)}
}

func (kh *KeyHandler) HandleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a := kh.app

	switch {
	case key.Matches(msg, kh.keys.Quit):
		return a, a.quit()

	case key.Matches(msg, kh.keys.Next):
		a.clearStatus()
		a.engine.Next()

	case key.Matches(msg, kh.keys.Previous):
		a.clearStatus()
		a.engine.Previous()

	case key.Matches(msg, kh.keys.GoTo):
		a.clearStatus()
		a.engine.GoToSlide(int(msg.String()[0] - '1'))

	case key.Matches(msg, kh.keys.Autoplay):
		on := !a.engine.State().Autoplay
		a.engine.SetAutoplay(on)
		if on {
			a.setStatus(MsgAutoplayOn, StatusInfo)
		} else {
			a.setStatus(MsgAutoplayOff, StatusInfo)
		}

	case key.Matches(msg, kh.keys.Open):
		a.openActiveLink()

	case key.Matches(msg, kh.keys.Help):
		a.help.ShowAll = !a.help.ShowAll
	}

	return a, nil
}
