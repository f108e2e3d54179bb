package tui

import (
	"sort"

	"github.com/pders01/reel/internal/carousel"
)

// terminalViewport exposes the terminal width to the carousel. It is fed
// by tea.WindowSizeMsg.
type terminalViewport struct {
	width     int
	nextID    int
	listeners map[int]func()
}

func newTerminalViewport() *terminalViewport {
	return &terminalViewport{listeners: make(map[int]func())}
}

var (
	_ carousel.WidthProvider = (*terminalViewport)(nil)
	_ carousel.ResizeSource  = (*terminalViewport)(nil)
)

func (v *terminalViewport) Width() int { return v.width }

func (v *terminalViewport) OnResize(fn func()) func() {
	v.nextID++
	id := v.nextID
	v.listeners[id] = fn
	return func() { delete(v.listeners, id) }
}

// setWidth records the new width and notifies subscribers in subscription
// order. Unchanged widths notify nobody.
func (v *terminalViewport) setWidth(width int) {
	if width == v.width {
		return
	}
	v.width = width

	ids := make([]int, 0, len(v.listeners))
	for id := range v.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		if fn, ok := v.listeners[id]; ok {
			fn()
		}
	}
}
