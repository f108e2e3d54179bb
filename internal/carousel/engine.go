// Package carousel implements the rotation engine behind the item strip: a
// breakpoint resolver, a paged crossfade controller for narrow viewports, a
// continuously scrolling animator for wider ones, and the navigation
// indicator that drives whichever is active.
//
// The engine is single-threaded. All timing comes from a Scheduler, and all
// width information from a WidthProvider and ResizeSource supplied at Mount.
package carousel

import (
	"time"

	"github.com/pders01/reel/internal/debuglog"
)

// Mode is the presentation mode. It is determined by the tier.
type Mode int

const (
	ModePaged Mode = iota
	ModeContinuous
)

func (m Mode) String() string {
	if m == ModePaged {
		return "paged"
	}
	return "continuous"
}

// ModeFor returns Paged for Mobile and Continuous otherwise.
func ModeFor(t Tier) Mode {
	if t == TierMobile {
		return ModePaged
	}
	return ModeContinuous
}

const (
	DefaultInterval     = 3 * time.Second
	DefaultFadeDuration = 400 * time.Millisecond
	DefaultVelocity     = 0.375
	DefaultGap          = 2.0
)

// NoItem clears the hover state when passed to SetHover.
const NoItem = -1

// Options configures an Engine. Zero durations, velocity and measurer fall
// back to the package defaults.
type Options struct {
	Autoplay     bool
	ItemsPerView ItemsPerView
	ShowDots     bool
	Gap          float64

	Breakpoints  Breakpoints
	Interval     time.Duration
	FadeDuration time.Duration
	// Velocity is the distance scrolled per frame in Continuous mode.
	Velocity float64
	// Measure overrides the default edge-to-edge strip measurement.
	Measure Measurer
}

// DefaultOptions returns the defaults with autoplay off.
func DefaultOptions() Options {
	return Options{
		ItemsPerView: DefaultItemsPerView(),
		ShowDots:     true,
		Gap:          DefaultGap,
		Breakpoints:  DefaultBreakpoints(),
		Interval:     DefaultInterval,
		FadeDuration: DefaultFadeDuration,
		Velocity:     DefaultVelocity,
	}
}

func (o Options) normalized() Options {
	if o.Gap < 0 {
		o.Gap = 0
	}
	if o.Interval <= 0 {
		o.Interval = DefaultInterval
	}
	if o.FadeDuration <= 0 {
		o.FadeDuration = DefaultFadeDuration
	}
	if o.Velocity <= 0 {
		o.Velocity = DefaultVelocity
	}
	if o.Measure == nil {
		o.Measure = StripMeasurer(o.Gap)
	}
	return o
}

// controller is implemented only by pagedController and continuousAnimator.
// The engine holds exactly one at a time, so at most one timer or frame
// chain is ever live.
type controller interface {
	mode() Mode
	start()
	stop()
	next()
	back()
	goTo(i int)
	setPaused(paused bool)
	setAutoplay(on bool)
	setCount(n int)
	resize(viewportWidth, itemsVisible int)
	isPaused() bool
	live() bool
	slide() int
	slides() int
}

// State is a snapshot of the engine's derived state.
type State struct {
	Mounted          bool
	Tier             Tier
	ItemsVisible     int
	Mode             Mode
	PagedIndex       int
	ContinuousOffset float64
	SingleSetWidth   float64
	Slide            int
	TotalSlides      int
	Paused           bool
	Autoplay         bool
	// Live reports whether a timer or frame chain is currently scheduled.
	Live bool
}

// Engine is the rotation engine for one mounted strip. It never copies or
// mutates items; it only tracks positions.
type Engine[T any] struct {
	opts     Options
	sched    Scheduler
	resolver *BreakpointResolver
	items    []T

	widths      WidthProvider
	unsubscribe func()
	mounted     bool

	tier         Tier
	itemsVisible int
	width        int
	hover        int
	active       controller
}

// New creates an unmounted engine over items. Nothing is scheduled until Mount.
func New[T any](items []T, opts Options, sched Scheduler) *Engine[T] {
	opts = opts.normalized()
	return &Engine[T]{
		opts:     opts,
		sched:    sched,
		resolver: NewBreakpointResolver(opts.Breakpoints, opts.ItemsPerView),
		items:    items,
		hover:    NoItem,
	}
}

// Mount resolves the tier from the current width, starts the matching
// controller and subscribes to resize notifications. Mounting a mounted
// engine is a no-op.
func (e *Engine[T]) Mount(widths WidthProvider, resizes ResizeSource) {
	if e.mounted {
		return
	}
	e.mounted = true
	e.widths = widths
	e.hover = NoItem
	e.width = widths.Width()
	e.tier, e.itemsVisible = e.resolver.Resolve(e.width)
	e.active = e.newController(ModeFor(e.tier))
	e.active.start()
	if resizes != nil {
		e.unsubscribe = resizes.OnResize(e.resize)
	}
	debuglog.WithFields(map[string]interface{}{
		"items": len(e.items),
		"tier":  e.tier,
		"mode":  e.active.mode(),
		"width": e.width,
	}).Infof("carousel mounted")
}

// Unmount cancels whatever timer or frame chain is live and detaches from
// the resize source. Every operation afterwards is a no-op.
func (e *Engine[T]) Unmount() {
	if !e.mounted {
		return
	}
	e.active.stop()
	if e.unsubscribe != nil {
		e.unsubscribe()
		e.unsubscribe = nil
	}
	e.active = nil
	e.widths = nil
	e.mounted = false
	debuglog.Infof("carousel unmounted")
}

func (e *Engine[T]) newController(m Mode) controller {
	var c controller
	if m == ModePaged {
		c = newPagedController(e.sched, e.opts, len(e.items))
	} else {
		c = newContinuousAnimator(e.sched, e.opts, len(e.items), e.width, e.itemsVisible)
	}
	c.setPaused(e.hover != NoItem)
	return c
}

func (e *Engine[T]) resize() {
	if !e.mounted {
		return
	}
	e.width = e.widths.Width()
	tier, visible := e.resolver.Resolve(e.width)
	prevTier := e.tier
	e.tier, e.itemsVisible = tier, visible

	if ModeFor(tier) != e.active.mode() {
		// Cancel before starting so two loops never overlap.
		e.active.stop()
		e.active = e.newController(ModeFor(tier))
		e.active.start()
		debuglog.WithFields(map[string]interface{}{
			"from":  prevTier,
			"to":    tier,
			"mode":  e.active.mode(),
			"width": e.width,
		}).Debugf("mode transition")
		return
	}
	e.active.resize(e.width, visible)
}

// Next moves forward one item (Paged) or one slide (Continuous).
func (e *Engine[T]) Next() {
	if e.mounted {
		e.active.next()
	}
}

// Previous moves back one item (Paged) or one slide (Continuous).
func (e *Engine[T]) Previous() {
	if e.mounted {
		e.active.back()
	}
}

// GoToSlide jumps to slide i. Out-of-range values wrap modulo the slide count.
func (e *Engine[T]) GoToSlide(i int) {
	if e.mounted {
		e.active.goTo(i)
	}
}

// SetHover records the item under the pointer. Any item index pauses
// autoplay; NoItem (or any negative index) resumes it.
func (e *Engine[T]) SetHover(i int) {
	if i < 0 {
		i = NoItem
	}
	e.hover = i
	if e.mounted {
		e.active.setPaused(i != NoItem)
	}
}

// SetAutoplay turns automatic rotation on or off. Turning it off cancels the
// live timer or frame chain.
func (e *Engine[T]) SetAutoplay(on bool) {
	e.opts.Autoplay = on
	if e.mounted {
		e.active.setAutoplay(on)
	}
}

// SetItems replaces the item sequence. When the count changes the live loop
// is cancelled and restarted against the new count; an equal count keeps the
// timer, crossfade and frame chain as they are.
func (e *Engine[T]) SetItems(items []T) {
	changed := len(items) != len(e.items)
	e.items = items
	if !e.mounted || !changed {
		return
	}
	debuglog.Debugf("item count changed to %d", len(items))
	e.active.setCount(len(items))
}

// Items returns the caller's sequence as passed in.
func (e *Engine[T]) Items() []T { return e.items }

// Indicator returns the navigation indicator bound to this engine.
func (e *Engine[T]) Indicator() *NavigationIndicator {
	return NewNavigationIndicator(e, e.opts.ShowDots)
}

// Position implements Navigator.
func (e *Engine[T]) Position() (active, total int) {
	if !e.mounted {
		return 0, 0
	}
	return e.active.slide(), e.active.slides()
}

// Paged returns the Paged render contract, or false outside Paged mode or
// when there are no items.
func (e *Engine[T]) Paged() (PagedFrame, bool) {
	if !e.mounted || len(e.items) == 0 {
		return PagedFrame{}, false
	}
	p, ok := e.active.(*pagedController)
	if !ok {
		return PagedFrame{}, false
	}
	return p.frame(), true
}

// Strip returns the Continuous render contract, or false outside Continuous
// mode or when there are no items.
func (e *Engine[T]) Strip() (Strip[T], bool) {
	if !e.mounted || len(e.items) == 0 {
		return Strip[T]{}, false
	}
	c, ok := e.active.(*continuousAnimator)
	if !ok {
		return Strip[T]{}, false
	}
	return Strip[T]{
		Items:          TripledSequence[T]{items: e.items},
		Offset:         c.offset,
		ItemWidth:      ItemWidth(c.viewportWidth, c.itemsVisible, c.gap),
		Gap:            c.gap,
		SingleSetWidth: c.setWidth,
		ItemsVisible:   c.itemsVisible,
	}, true
}

// State returns a snapshot of the derived state. It is the zero State plus
// Autoplay when unmounted.
func (e *Engine[T]) State() State {
	s := State{
		Mounted:  e.mounted,
		Autoplay: e.opts.Autoplay,
	}
	if !e.mounted {
		return s
	}
	s.Tier = e.tier
	s.ItemsVisible = e.itemsVisible
	s.Mode = e.active.mode()
	s.Paused = e.active.isPaused()
	s.Live = e.active.live()
	s.Slide = e.active.slide()
	s.TotalSlides = e.active.slides()
	switch c := e.active.(type) {
	case *pagedController:
		s.PagedIndex = c.index
	case *continuousAnimator:
		s.ContinuousOffset = c.offset
		s.SingleSetWidth = c.setWidth
	}
	return s
}
