package carousel

import (
	"math"

	"github.com/pders01/reel/internal/debuglog"
)

// TripledSequence is a read-only view of items repeated three times. It gives
// the scrolling strip enough rendered width to cover the wrap boundary.
type TripledSequence[T any] struct {
	items []T
}

func (s TripledSequence[T]) Len() int { return 3 * len(s.items) }

// At returns the item at position i of the tripled view.
func (s TripledSequence[T]) At(i int) T { return s.items[mod(i, len(s.items))] }

// Source returns the position in the underlying sequence for tripled position i.
func (s TripledSequence[T]) Source(i int) int { return mod(i, len(s.items)) }

// Strip is the render contract for Continuous mode: lay out all Items edge to
// edge, ItemWidth wide with Gap between them, and shift left by Offset.
type Strip[T any] struct {
	Items          TripledSequence[T]
	Offset         float64
	ItemWidth      float64
	Gap            float64
	SingleSetWidth float64
	ItemsVisible   int
}

// continuousAnimator scrolls the tripled sequence by a fixed velocity per
// frame and wraps by one pass width so the motion never visibly restarts.
type continuousAnimator struct {
	sched    Scheduler
	measure  Measurer
	velocity float64
	gap      float64

	n             int
	itemsVisible  int
	viewportWidth int

	offset     float64
	setWidth   float64
	slideIndex int

	paused   bool
	autoplay bool
	running  bool

	cancel CancelFunc
	gen    int
}

func newContinuousAnimator(sched Scheduler, opts Options, n, viewportWidth, itemsVisible int) *continuousAnimator {
	c := &continuousAnimator{
		sched:         sched,
		measure:       opts.Measure,
		velocity:      opts.Velocity,
		gap:           opts.Gap,
		n:             n,
		itemsVisible:  itemsVisible,
		viewportWidth: viewportWidth,
		autoplay:      opts.Autoplay,
	}
	c.remeasure()
	return c
}

func (c *continuousAnimator) mode() Mode { return ModeContinuous }

func (c *continuousAnimator) start() {
	c.running = true
	c.arm()
}

func (c *continuousAnimator) stop() {
	c.running = false
	c.disarm()
}

func (c *continuousAnimator) shouldRun() bool {
	return c.running && c.autoplay && c.n > 0 && c.setWidth > 0
}

// arm restarts the frame chain, or leaves it stopped when it cannot run. A
// zero measurement defers the start until a later resize measures non-zero.
func (c *continuousAnimator) arm() {
	c.disarm()
	if !c.shouldRun() {
		if c.running && c.autoplay && c.n > 0 {
			debuglog.Debugf("frame loop deferred: width not measured (viewport=%d)", c.viewportWidth)
		}
		return
	}
	gen := c.gen
	c.cancel = c.sched.Frames(func() {
		if gen != c.gen {
			return
		}
		c.tick()
	})
	debuglog.Debugf("frame loop started (set width=%.2f velocity=%.3f)", c.setWidth, c.velocity)
}

func (c *continuousAnimator) disarm() {
	c.gen++
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
		debuglog.Debugf("frame loop cancelled")
	}
}

func (c *continuousAnimator) tick() {
	if c.paused || !c.autoplay || c.setWidth <= 0 {
		return
	}
	c.offset += c.velocity
	if c.offset >= c.setWidth {
		c.offset = math.Mod(c.offset, c.setWidth)
	}
	c.slideIndex = c.slideAt(c.offset)
}

func (c *continuousAnimator) remeasure() {
	old := c.setWidth
	c.setWidth = c.measure(c.viewportWidth, c.n, c.itemsVisible)
	switch {
	case c.setWidth <= 0:
		c.setWidth = 0
		c.offset = 0
	case old > 0 && old != c.setWidth:
		// Keep the same visual position across a width change.
		c.offset = c.offset * c.setWidth / old
	}
	if c.setWidth > 0 && c.offset >= c.setWidth {
		c.offset = math.Mod(c.offset, c.setWidth)
	}
	if total := c.slides(); c.slideIndex >= total {
		c.slideIndex = max(total-1, 0)
	}
}

// slideSpan is the scroll distance covered by one slide of itemsVisible items.
func (c *continuousAnimator) slideSpan() float64 {
	if c.n == 0 {
		return 0
	}
	return c.setWidth * float64(c.itemsVisible) / float64(c.n)
}

func (c *continuousAnimator) slideAt(offset float64) int {
	span := c.slideSpan()
	if span <= 0 {
		return 0
	}
	return min(int(offset/span), c.slides()-1)
}

// jump moves both the indicator and the scroll position to slide s.
func (c *continuousAnimator) jump(s int) {
	c.slideIndex = s
	if c.setWidth > 0 {
		c.offset = math.Mod(float64(s)*c.slideSpan(), c.setWidth)
	}
}

func (c *continuousAnimator) step(delta int) {
	if c.n == 0 {
		return
	}
	c.jump(mod(c.slideIndex+delta, c.slides()))
}

func (c *continuousAnimator) next() { c.step(1) }
func (c *continuousAnimator) back() { c.step(-1) }

func (c *continuousAnimator) goTo(i int) {
	if c.n == 0 {
		return
	}
	c.jump(mod(i, c.slides()))
}

// setPaused only flips the flag; the frame chain keeps running and reads it
// on every tick so resumption continues from the frozen offset.
func (c *continuousAnimator) setPaused(paused bool) { c.paused = paused }

func (c *continuousAnimator) setAutoplay(on bool) {
	if c.autoplay == on {
		return
	}
	c.autoplay = on
	c.arm()
}

func (c *continuousAnimator) setCount(n int) {
	c.disarm()
	c.n = n
	c.remeasure()
	c.arm()
}

// resize re-measures on every notification, even at an unchanged width, so
// a measurer that reported zero before layout gets another chance.
func (c *continuousAnimator) resize(viewportWidth, itemsVisible int) {
	c.viewportWidth = viewportWidth
	c.itemsVisible = itemsVisible
	c.remeasure()
	if c.shouldRun() != c.live() {
		c.arm()
	}
}

func (c *continuousAnimator) isPaused() bool { return c.paused }
func (c *continuousAnimator) live() bool     { return c.cancel != nil }
func (c *continuousAnimator) slide() int     { return c.slideIndex }

func (c *continuousAnimator) slides() int {
	if c.n == 0 {
		return 0
	}
	return (c.n + c.itemsVisible - 1) / c.itemsVisible
}
