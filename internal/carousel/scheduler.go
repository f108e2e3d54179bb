package carousel

import "time"

// CancelFunc stops a scheduled timer or frame chain. Calling it again is a no-op.
type CancelFunc func()

// Scheduler supplies the timing primitives the engine runs on. Callbacks must
// be delivered on the same goroutine that calls engine operations.
type Scheduler interface {
	// Every calls fn once per interval until cancelled.
	Every(interval time.Duration, fn func()) CancelFunc
	// Frames calls fn once per rendered frame until cancelled.
	Frames(fn func()) CancelFunc
	// Now returns the current time, used to stamp crossfades.
	Now() time.Time
}

// WidthProvider reports the current viewport width.
type WidthProvider interface {
	Width() int
}

// ResizeSource notifies subscribers when the viewport width may have changed.
// The returned function unsubscribes.
type ResizeSource interface {
	OnResize(fn func()) (unsubscribe func())
}

// Measurer returns the rendered width of one pass over n items, gaps included,
// for a viewport of the given width showing itemsVisible items. A result of
// zero means layout is not ready.
type Measurer func(viewportWidth, n, itemsVisible int) float64

// StripMeasurer lays items out edge to edge with gap between neighbours and
// one trailing gap per item so consecutive passes join seamlessly.
func StripMeasurer(gap float64) Measurer {
	return func(viewportWidth, n, itemsVisible int) float64 {
		w := ItemWidth(viewportWidth, itemsVisible, gap)
		if w <= 0 || n <= 0 {
			return 0
		}
		return float64(n) * (w + gap)
	}
}

// ItemWidth is the width of a single item when itemsVisible items and the
// gaps between them share viewportWidth.
func ItemWidth(viewportWidth, itemsVisible int, gap float64) float64 {
	if itemsVisible < 1 {
		itemsVisible = 1
	}
	w := (float64(viewportWidth) - gap*float64(itemsVisible-1)) / float64(itemsVisible)
	if w < 0 {
		return 0
	}
	return w
}

// mod is the non-negative remainder of i / n. n must be positive.
func mod(i, n int) int {
	r := i % n
	if r < 0 {
		r += n
	}
	return r
}
