package tui

import (
	"fmt"
	"strings"
)

// Canonical short status messages used across the app.
const (
	MsgAutoplayOn  = "Autoplay on"
	MsgAutoplayOff = "Autoplay off"
	MsgNoItems     = "No items"
	MsgNoLink      = "This item has no link"
)

func MsgDeckReloaded(title string, count int) string {
	return fmt.Sprintf("Reloaded '%s' (%s)", strings.TrimSpace(title), MsgItemsCount(count))
}

func MsgItemsCount(n int) string {
	if n == 1 {
		return "1 item"
	}
	return fmt.Sprintf("%d items", n)
}

func MsgFiltered(query string, shown, total int) string {
	return fmt.Sprintf("Filter %q: %d of %d", query, shown, total)
}

func MsgOpening(link string) string {
	return fmt.Sprintf("Opening %s", link)
}
