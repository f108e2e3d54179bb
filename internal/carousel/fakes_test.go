package carousel

import "time"

type fakeTask struct {
	interval  time.Duration
	frame     bool
	fn        func()
	cancelled bool
}

// fakeScheduler runs timers and frames only when a test asks it to.
type fakeScheduler struct {
	now   time.Time
	tasks []*fakeTask
}

func newFakeScheduler() *fakeScheduler {
	return &fakeScheduler{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (s *fakeScheduler) add(t *fakeTask) CancelFunc {
	s.tasks = append(s.tasks, t)
	return func() { t.cancelled = true }
}

func (s *fakeScheduler) Every(interval time.Duration, fn func()) CancelFunc {
	return s.add(&fakeTask{interval: interval, fn: fn})
}

func (s *fakeScheduler) Frames(fn func()) CancelFunc {
	return s.add(&fakeTask{frame: true, fn: fn})
}

func (s *fakeScheduler) Now() time.Time { return s.now }

func (s *fakeScheduler) live(frame bool) []*fakeTask {
	var out []*fakeTask
	for _, t := range s.tasks {
		if !t.cancelled && t.frame == frame {
			out = append(out, t)
		}
	}
	return out
}

func (s *fakeScheduler) liveTimers() int { return len(s.live(false)) }
func (s *fakeScheduler) liveFrames() int { return len(s.live(true)) }

// fire delivers n rounds of every live interval timer, advancing the clock.
func (s *fakeScheduler) fire(n int) {
	for i := 0; i < n; i++ {
		for _, t := range s.live(false) {
			if t.cancelled {
				continue
			}
			s.now = s.now.Add(t.interval)
			t.fn()
		}
	}
}

// frames delivers n frames to every live frame chain.
func (s *fakeScheduler) frames(n int) {
	for i := 0; i < n; i++ {
		for _, t := range s.live(true) {
			if t.cancelled {
				continue
			}
			t.fn()
		}
	}
}

type fakeViewport struct {
	width     int
	listeners map[int]func()
	next      int
}

func newFakeViewport(width int) *fakeViewport {
	return &fakeViewport{width: width, listeners: map[int]func(){}}
}

func (v *fakeViewport) Width() int { return v.width }

func (v *fakeViewport) OnResize(fn func()) func() {
	id := v.next
	v.next++
	v.listeners[id] = fn
	return func() { delete(v.listeners, id) }
}

func (v *fakeViewport) resize(width int) {
	v.width = width
	for _, fn := range v.listeners {
		fn()
	}
}

func items(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = string(rune('a' + i))
	}
	return out
}

func fixedWidth(w float64) Measurer {
	return func(viewportWidth, n, itemsVisible int) float64 {
		if viewportWidth == 0 || n == 0 {
			return 0
		}
		return w
	}
}
