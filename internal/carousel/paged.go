package carousel

import (
	"time"

	"github.com/pders01/reel/internal/debuglog"
)

// PagedFrame is the render contract for Paged mode: item Index is fully
// visible, fading in from Previous since ChangedAt.
type PagedFrame struct {
	Index        int
	Previous     int
	ChangedAt    time.Time
	FadeDuration time.Duration
}

// Progress reports how far the crossfade has run at now, in [0, 1].
func (f PagedFrame) Progress(now time.Time) float64 {
	if f.ChangedAt.IsZero() || f.FadeDuration <= 0 || f.Index == f.Previous {
		return 1
	}
	p := float64(now.Sub(f.ChangedAt)) / float64(f.FadeDuration)
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}

// Fading reports whether the crossfade is still running at now.
func (f PagedFrame) Fading(now time.Time) bool {
	return f.Progress(now) < 1
}

// pagedController shows one item at a time and advances on a fixed interval.
type pagedController struct {
	sched    Scheduler
	interval time.Duration
	fade     time.Duration

	n         int
	index     int
	prev      int
	changedAt time.Time

	paused   bool
	autoplay bool
	running  bool

	cancel CancelFunc
	gen    int
}

func newPagedController(sched Scheduler, opts Options, n int) *pagedController {
	return &pagedController{
		sched:    sched,
		interval: opts.Interval,
		fade:     opts.FadeDuration,
		n:        n,
		autoplay: opts.Autoplay,
	}
}

func (p *pagedController) mode() Mode { return ModePaged }

func (p *pagedController) start() {
	p.running = true
	p.arm()
}

func (p *pagedController) stop() {
	p.running = false
	p.disarm()
}

// arm replaces any live timer with a fresh one when autoplay applies.
func (p *pagedController) arm() {
	p.disarm()
	if !p.running || !p.autoplay || p.n == 0 {
		return
	}
	gen := p.gen
	p.cancel = p.sched.Every(p.interval, func() {
		if gen != p.gen {
			return
		}
		p.tick()
	})
	debuglog.Debugf("paged timer armed (interval=%s n=%d paused=%t)", p.interval, p.n, p.paused)
}

func (p *pagedController) disarm() {
	p.gen++
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
		debuglog.Debugf("paged timer cancelled")
	}
}

func (p *pagedController) tick() {
	if p.paused {
		return
	}
	p.advance(1)
}

func (p *pagedController) advance(delta int) {
	if p.n == 0 {
		return
	}
	p.show(mod(p.index+delta, p.n))
}

func (p *pagedController) show(i int) {
	if i == p.index {
		return
	}
	p.prev = p.index
	p.index = i
	p.changedAt = p.sched.Now()
}

func (p *pagedController) next() { p.advance(1) }
func (p *pagedController) back() { p.advance(-1) }

func (p *pagedController) goTo(i int) {
	if p.n == 0 {
		return
	}
	p.show(mod(i, p.n))
}

func (p *pagedController) setPaused(paused bool) {
	if p.paused == paused {
		return
	}
	p.paused = paused
	p.arm()
}

func (p *pagedController) setAutoplay(on bool) {
	if p.autoplay == on {
		return
	}
	p.autoplay = on
	p.arm()
}

func (p *pagedController) setCount(n int) {
	p.n = n
	if n == 0 || p.index >= n {
		p.index = 0
	}
	p.prev = p.index
	p.changedAt = time.Time{}
	p.arm()
}

func (p *pagedController) resize(int, int) {}

func (p *pagedController) isPaused() bool { return p.paused }
func (p *pagedController) live() bool     { return p.cancel != nil }
func (p *pagedController) slide() int     { return p.index }
func (p *pagedController) slides() int    { return p.n }

func (p *pagedController) frame() PagedFrame {
	return PagedFrame{
		Index:        p.index,
		Previous:     p.prev,
		ChangedAt:    p.changedAt,
		FadeDuration: p.fade,
	}
}
