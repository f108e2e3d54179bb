package carousel

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mountContinuous(t *testing.T, n int, opts Options, width int) (*Engine[string], *fakeScheduler, *fakeViewport) {
	t.Helper()
	sched := newFakeScheduler()
	vp := newFakeViewport(width)
	e := New(items(n), opts, sched)
	e.Mount(vp, vp)
	require.Equal(t, ModeContinuous, e.State().Mode)
	return e, sched, vp
}

// N=4 at Desktop with four visible, velocity 0.375 over a 1200 wide pass:
// 3200 frames cover exactly one pass and land back on zero.
func TestContinuous_FullPassWrapsToZero(t *testing.T) {
	opts := DefaultOptions()
	opts.Autoplay = true
	opts.ItemsPerView.Desktop = 4
	opts.Velocity = 0.375
	opts.Measure = fixedWidth(1200)
	e, sched, _ := mountContinuous(t, 4, opts, 1280)

	require.Equal(t, TierDesktop, e.State().Tier)
	require.Equal(t, 4, e.State().ItemsVisible)
	require.Equal(t, 1200.0, e.State().SingleSetWidth)

	sched.frames(3199)
	assert.InDelta(t, 1199.625, e.State().ContinuousOffset, 1e-9)

	sched.frames(1)
	assert.Equal(t, 0.0, e.State().ContinuousOffset)
}

func TestContinuous_OffsetStaysInRange(t *testing.T) {
	cases := []struct {
		velocity float64
		width    float64
	}{
		{0.375, 7},
		{0.375, 1200},
		{1.25, 10},
		{3, 2.5},
	}

	for _, c := range cases {
		opts := DefaultOptions()
		opts.Autoplay = true
		opts.Velocity = c.velocity
		opts.Measure = fixedWidth(c.width)
		e, sched, _ := mountContinuous(t, 5, opts, 900)

		for tick := 1; tick <= 500; tick++ {
			sched.frames(1)
			off := e.State().ContinuousOffset
			require.GreaterOrEqual(t, off, 0.0)
			require.Less(t, off, c.width)
			assert.InDelta(t, math.Mod(c.velocity*float64(tick), c.width), off, 1e-6,
				"v=%v w=%v tick=%d", c.velocity, c.width, tick)
		}
	}
}

func TestContinuous_WrapPreservesRemainder(t *testing.T) {
	opts := DefaultOptions()
	opts.Autoplay = true
	opts.Velocity = 3
	opts.Measure = fixedWidth(10)
	e, sched, _ := mountContinuous(t, 3, opts, 900)

	sched.frames(4)

	assert.Equal(t, 2.0, e.State().ContinuousOffset)
}

func TestContinuous_HoverFreezesOffset(t *testing.T) {
	opts := DefaultOptions()
	opts.Autoplay = true
	opts.Measure = fixedWidth(1000)
	e, sched, _ := mountContinuous(t, 6, opts, 1100)

	sched.frames(10)
	frozen := e.State().ContinuousOffset
	require.InDelta(t, 3.75, frozen, 1e-9)

	e.SetHover(14)
	sched.frames(250)
	assert.Equal(t, frozen, e.State().ContinuousOffset)
	assert.Equal(t, 1, sched.liveFrames(), "frame chain keeps ticking while paused")

	e.SetHover(NoItem)
	sched.frames(1)
	assert.InDelta(t, frozen+DefaultVelocity, e.State().ContinuousOffset, 1e-9)
}

func TestContinuous_ZeroMeasurementDefersStart(t *testing.T) {
	ready := false
	opts := DefaultOptions()
	opts.Autoplay = true
	opts.Measure = func(viewportWidth, n, itemsVisible int) float64 {
		if !ready {
			return 0
		}
		return 600
	}
	e, sched, vp := mountContinuous(t, 4, opts, 1024)

	assert.Equal(t, 0, sched.liveFrames())
	assert.Equal(t, 0.0, e.State().ContinuousOffset)

	ready = true
	vp.resize(1100)

	assert.Equal(t, 1, sched.liveFrames())
	sched.frames(2)
	assert.InDelta(t, 0.75, e.State().ContinuousOffset, 1e-9)
}

func TestContinuous_DefaultMeasurement(t *testing.T) {
	opts := DefaultOptions()
	e, _, _ := mountContinuous(t, 5, opts, 1024)

	strip, ok := e.Strip()
	require.True(t, ok)

	// (1024 - 2*2) / 3 = 340 wide, plus one gap per item.
	assert.Equal(t, 340.0, strip.ItemWidth)
	assert.Equal(t, 2.0, strip.Gap)
	assert.Equal(t, 5*342.0, strip.SingleSetWidth)
	assert.Equal(t, 15, strip.Items.Len())
}

func TestContinuous_ResizeKeepsOffsetInRange(t *testing.T) {
	opts := DefaultOptions()
	opts.Autoplay = true
	opts.Velocity = 50
	e, sched, vp := mountContinuous(t, 4, opts, 1024)

	sched.frames(20)
	before := e.State()
	require.Greater(t, before.ContinuousOffset, 0.0)

	vp.resize(1500)
	after := e.State()

	assert.Less(t, after.ContinuousOffset, after.SingleSetWidth)
	assert.InDelta(t, before.ContinuousOffset/before.SingleSetWidth,
		after.ContinuousOffset/after.SingleSetWidth, 1e-9)
	assert.Equal(t, 1, sched.liveFrames())
}

func TestContinuous_SingleItemTripled(t *testing.T) {
	opts := DefaultOptions()
	e, _, _ := mountContinuous(t, 1, opts, 800)

	strip, ok := e.Strip()
	require.True(t, ok)
	require.Equal(t, 3, strip.Items.Len())
	for i := 0; i < 3; i++ {
		assert.Equal(t, "a", strip.Items.At(i))
		assert.Equal(t, 0, strip.Items.Source(i))
	}
	assert.Equal(t, strip.ItemWidth+strip.Gap, strip.SingleSetWidth)
}

func TestContinuous_NoItemsStartsNothing(t *testing.T) {
	opts := DefaultOptions()
	opts.Autoplay = true
	e, sched, _ := mountContinuous(t, 0, opts, 1024)

	assert.Equal(t, 0, sched.liveFrames())
	_, ok := e.Strip()
	assert.False(t, ok)
	assert.Nil(t, e.Indicator().Dots())

	e.Next()
	e.GoToSlide(2)
	assert.Equal(t, 0, e.State().Slide)
}

func TestContinuous_AutoplayOffCancelsLoop(t *testing.T) {
	opts := DefaultOptions()
	opts.Autoplay = true
	e, sched, _ := mountContinuous(t, 4, opts, 1024)
	loop := sched.live(true)[0]
	sched.frames(3)
	offset := e.State().ContinuousOffset

	e.SetAutoplay(false)

	assert.True(t, loop.cancelled)
	loop.fn()
	assert.Equal(t, offset, e.State().ContinuousOffset)
	assert.False(t, e.State().Live)
}

func TestContinuous_ItemCountChangeRestartsLoop(t *testing.T) {
	opts := DefaultOptions()
	opts.Autoplay = true
	e, sched, _ := mountContinuous(t, 4, opts, 1024)
	loop := sched.live(true)[0]

	e.SetItems(items(7))

	assert.True(t, loop.cancelled)
	assert.Equal(t, 1, sched.liveFrames())
	assert.Equal(t, 7*342.0, e.State().SingleSetWidth)
	assert.Equal(t, 3, e.State().TotalSlides)
}

func TestContinuous_ManualNavigationMovesOffset(t *testing.T) {
	opts := DefaultOptions()
	e, sched, _ := mountContinuous(t, 7, opts, 1024)
	require.Equal(t, 3, e.State().TotalSlides)
	require.Equal(t, 0, sched.liveFrames())

	e.Next()
	assert.Equal(t, 1, e.State().Slide)
	assert.Equal(t, 3*342.0, e.State().ContinuousOffset)

	e.Next()
	e.Next()
	assert.Equal(t, 0, e.State().Slide)
	assert.Equal(t, 0.0, e.State().ContinuousOffset)

	e.Previous()
	assert.Equal(t, 2, e.State().Slide)
	assert.Equal(t, 6*342.0, e.State().ContinuousOffset)

	e.GoToSlide(7)
	assert.Equal(t, 1, e.State().Slide)
	e.GoToSlide(-1)
	assert.Equal(t, 2, e.State().Slide)
}

func TestContinuous_IndicatorFollowsScroll(t *testing.T) {
	opts := DefaultOptions()
	opts.Autoplay = true
	opts.Velocity = 100
	e, sched, _ := mountContinuous(t, 6, opts, 1024)
	// Two slides of 3 * 342 = 1026 each.
	sched.frames(11)

	assert.Equal(t, 1, e.State().Slide)
	dots := e.Indicator().Dots()
	require.Len(t, dots, 2)
	assert.True(t, dots[1].Active)
}

func TestContinuous_ResizeAtSameWidthRemeasures(t *testing.T) {
	ready := false
	opts := DefaultOptions()
	opts.Autoplay = true
	opts.Measure = func(viewportWidth, n, itemsVisible int) float64 {
		if !ready {
			return 0
		}
		return 1200
	}
	e, sched, vp := mountContinuous(t, 4, opts, 1200)
	require.Equal(t, 0, sched.liveFrames())

	ready = true
	vp.resize(1200)

	assert.Equal(t, 1200.0, e.State().SingleSetWidth)
	assert.Equal(t, 1, sched.liveFrames())

	loop := sched.live(true)[0]
	vp.resize(1200)
	assert.False(t, loop.cancelled, "an unchanged measurement keeps the running loop")
}

func TestContinuous_SameCountKeepsLoop(t *testing.T) {
	opts := DefaultOptions()
	opts.Autoplay = true
	e, sched, _ := mountContinuous(t, 4, opts, 1024)
	loop := sched.live(true)[0]
	sched.frames(6)
	offset := e.State().ContinuousOffset

	e.SetItems([]string{"w", "x", "y", "z"})

	assert.False(t, loop.cancelled)
	assert.Equal(t, offset, e.State().ContinuousOffset)
	strip, ok := e.Strip()
	require.True(t, ok)
	assert.Equal(t, "x", strip.Items.At(1))
}
