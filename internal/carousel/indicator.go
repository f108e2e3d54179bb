package carousel

import "fmt"

// Navigator is the operation set the indicator drives.
type Navigator interface {
	Next()
	Previous()
	GoToSlide(i int)
	// Position returns the active slide and the number of slides.
	Position() (active, total int)
}

// Dot is one position marker.
type Dot struct {
	Index  int
	Active bool
	Label  string
}

// Control is a prev/next button.
type Control struct {
	Label string
	// Target is the slide the control leads to.
	Target int
}

// NavigationIndicator exposes dots and prev/next controls for whichever
// controller is active. Paged mode has one dot per item; Continuous mode has
// one per slide of itemsVisible items.
type NavigationIndicator struct {
	nav      Navigator
	showDots bool
}

// NewNavigationIndicator binds an indicator to nav.
func NewNavigationIndicator(nav Navigator, showDots bool) *NavigationIndicator {
	return &NavigationIndicator{nav: nav, showDots: showDots}
}

// Dots returns nil when dots are hidden or there is nothing to show.
func (n *NavigationIndicator) Dots() []Dot {
	if !n.showDots {
		return nil
	}
	active, total := n.nav.Position()
	if total == 0 {
		return nil
	}
	dots := make([]Dot, total)
	for i := range dots {
		dots[i] = Dot{
			Index:  i,
			Active: i == active,
			Label:  fmt.Sprintf("Go to slide %d", i+1),
		}
	}
	return dots
}

// Prev describes the control that moves back one slide, wrapping to the last.
func (n *NavigationIndicator) Prev() Control {
	active, total := n.nav.Position()
	if total == 0 {
		return Control{Label: "Previous slide"}
	}
	target := mod(active-1, total)
	return Control{
		Label:  fmt.Sprintf("Previous slide (%d of %d)", target+1, total),
		Target: target,
	}
}

// Next describes the control that moves forward one slide, wrapping to the first.
func (n *NavigationIndicator) Next() Control {
	active, total := n.nav.Position()
	if total == 0 {
		return Control{Label: "Next slide"}
	}
	target := mod(active+1, total)
	return Control{
		Label:  fmt.Sprintf("Next slide (%d of %d)", target+1, total),
		Target: target,
	}
}

// Position returns the active slide and the number of slides.
func (n *NavigationIndicator) Position() (active, total int) { return n.nav.Position() }

// Label describes the current position, e.g. "Slide 2 of 5".
func (n *NavigationIndicator) Label() string {
	active, total := n.nav.Position()
	if total == 0 {
		return "No slides"
	}
	return fmt.Sprintf("Slide %d of %d", active+1, total)
}

func (n *NavigationIndicator) PressPrev() { n.nav.Previous() }
func (n *NavigationIndicator) PressNext() { n.nav.Next() }

// Activate jumps to dot i.
func (n *NavigationIndicator) Activate(i int) { n.nav.GoToSlide(i) }
