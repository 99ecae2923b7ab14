package flip

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Magstic/J2ME-Launcher-sub001/internal/grid"
	"github.com/Magstic/J2ME-Launcher-sub001/internal/grid/geom"
	"github.com/Magstic/J2ME-Launcher-sub001/internal/grid/gridtest"
)

var linear = Options{Duration: 160 * time.Millisecond, Easing: EaseLinear}

func row(r *gridtest.Render, keys ...string) {
	for i, k := range keys {
		r.Rects[k] = geom.Rect{X: float64(i) * 120, W: 100, H: 100}
	}
}

func setup(keys ...string) (*Animator, *gridtest.Render, *gridtest.Scheduler) {
	render := gridtest.NewRender(geom.Rect{W: 1000, H: 1000})
	sched := gridtest.NewScheduler()
	row(render, keys...)
	a := New(render, sched, nil)
	return a, render, sched
}

func TestFirstAnimateOnlyRecordsBaseline(t *testing.T) {
	a, render, sched := setup("a", "b")

	require.NoError(t, a.Animate([]string{"a", "b"}, nil, linear))

	assert.Empty(t, render.Transforms)
	assert.Equal(t, 0, a.Running())
	assert.Equal(t, 0, sched.PendingTicks())
}

func TestMovedKeyPlaysBackToIdentity(t *testing.T) {
	a, render, sched := setup("a", "b")
	require.NoError(t, a.Animate([]string{"a", "b"}, nil, linear))

	// Insert before a: both shift one slot right.
	row(render, "new", "a", "b")
	require.NoError(t, a.Animate([]string{"new", "a", "b"}, nil, linear))

	first := render.TransformsFor("a")
	require.NotEmpty(t, first)
	assert.Equal(t, geom.Point{X: -120}, first[0], "inverted to the old position")

	sched.Frame()
	got, _ := render.LastTransform("a")
	assert.InDelta(t, -108, got.X, 1e-9)

	sched.Frames(9)
	got, _ = render.LastTransform("a")
	assert.Equal(t, geom.Point{}, got)
	got, _ = render.LastTransform("b")
	assert.Equal(t, geom.Point{}, got)
	assert.Equal(t, 0, a.Running())
	assert.Equal(t, 0, sched.PendingTicks())
	assert.Equal(t, 0, sched.PendingTimers())
	assert.Empty(t, render.TransformsFor("new"), "keys without a prior rect do not animate")
}

func TestUnmovedKeyGetsNoTransform(t *testing.T) {
	a, render, sched := setup("a", "b", "c")
	require.NoError(t, a.Animate([]string{"a", "b", "c"}, nil, linear))

	render.Rects["c"] = geom.Rect{X: 0, Y: 120, W: 100, H: 100}
	require.NoError(t, a.Animate([]string{"a", "b", "c"}, nil, linear))
	sched.Frames(12)

	assert.Empty(t, render.TransformsFor("a"))
	assert.Empty(t, render.TransformsFor("b"))
	assert.NotEmpty(t, render.TransformsFor("c"))
}

func TestKeysOutsideWhitelistNeverAnimate(t *testing.T) {
	a, render, sched := setup("a", "b")
	require.NoError(t, a.Animate([]string{"a", "b"}, nil, linear))

	row(render, "b", "a")
	require.NoError(t, a.Animate([]string{"b", "a"}, grid.NewSet("a"), linear))
	sched.Frames(12)

	assert.NotEmpty(t, render.TransformsFor("a"))
	assert.Empty(t, render.TransformsFor("b"))
}

func manyKeys(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("k%03d", i)
	}
	return out
}

func TestLargeKeySetRequiresWhitelist(t *testing.T) {
	keys := manyKeys(MaxAnimated + 1)
	a, _, _ := setup(keys...)

	err := a.Animate(keys, nil, linear)
	assert.ErrorIs(t, err, ErrWhitelistRequired)

	assert.NoError(t, a.Animate(keys[:MaxAnimated], nil, linear))
}

func TestConcurrentAnimationsAreCapped(t *testing.T) {
	keys := manyKeys(100)
	a, render, sched := setup(keys...)
	all := grid.NewSet(keys...)
	require.NoError(t, a.Animate(keys, all, linear))

	for _, k := range keys {
		r := render.Rects[k]
		render.Rects[k] = r.Translate(geom.Point{Y: 50})
	}
	require.NoError(t, a.Animate(keys, all, linear))
	assert.Equal(t, MaxAnimated, a.Running())

	// A second reflow mid-flight may retarget running keys but not add more.
	for _, k := range keys {
		r := render.Rects[k]
		render.Rects[k] = r.Translate(geom.Point{Y: 50})
	}
	sched.Frame()
	require.NoError(t, a.Animate(keys, all, linear))
	assert.Equal(t, MaxAnimated, a.Running())

	sched.Frames(20)
	assert.Equal(t, 0, a.Running())
}

func TestFadePulsesUnmovedKeys(t *testing.T) {
	a, render, sched := setup("a")
	require.NoError(t, a.Animate([]string{"a"}, nil, linear))

	opts := linear
	opts.Fade = true
	opts.FadeFrom = 0.2
	require.NoError(t, a.Animate([]string{"a"}, nil, opts))
	sched.Frames(10)

	assert.Empty(t, render.TransformsFor("a"))
	fades := render.Opacity["a"]
	require.NotEmpty(t, fades)
	assert.Equal(t, 0.2, fades[0])
	assert.Equal(t, 1.0, fades[len(fades)-1])
	assert.IsNonDecreasing(t, fades)
}

func TestRetargetStartsFromShownOffset(t *testing.T) {
	a, render, sched := setup("a")
	require.NoError(t, a.Animate([]string{"a"}, nil, linear))

	render.Rects["a"] = geom.Rect{X: 120, W: 100, H: 100}
	require.NoError(t, a.Animate([]string{"a"}, nil, linear))
	sched.Frames(5)

	render.Rects["a"] = geom.Rect{X: 0, W: 100, H: 100}
	require.NoError(t, a.Animate([]string{"a"}, nil, linear))

	got, _ := render.LastTransform("a")
	assert.InDelta(t, 60, got.X, 1e-9, "old position plus the half-played offset")
	assert.Equal(t, 1, a.Running())

	sched.Frames(10)
	got, _ = render.LastTransform("a")
	assert.Equal(t, geom.Point{}, got)
}

func TestNativeAnimatorIsPreferred(t *testing.T) {
	native := gridtest.NewNative(geom.Rect{W: 1000, H: 1000})
	row(native.Render, "a", "b")
	sched := gridtest.NewScheduler()
	a := New(native, sched, nil)
	require.NoError(t, a.Animate([]string{"a", "b"}, nil, linear))

	row(native.Render, "b", "a")
	require.NoError(t, a.Animate([]string{"b", "a"}, nil, linear))

	require.Contains(t, native.Calls, "a")
	assert.Equal(t, geom.Point{X: -120}, native.Calls["a"].From)
	assert.Equal(t, EaseLinear, native.Calls["a"].Easing)
	assert.Empty(t, native.Transforms, "native playback writes no engine transforms")
	assert.Equal(t, 0, sched.PendingTicks())

	native.Finish()
	assert.Equal(t, 0, a.Running())
	got, _ := native.LastTransform("a")
	assert.Equal(t, geom.Point{}, got)
	assert.Equal(t, 0, sched.PendingTimers())
}

func TestUnsupportedNativeAnimatorFallsBackToTween(t *testing.T) {
	native := gridtest.NewNative(geom.Rect{W: 1000, H: 1000})
	native.Err = fmt.Errorf("web animations: %w", grid.ErrUnsupported)
	row(native.Render, "a", "b")
	sched := gridtest.NewScheduler()
	a := New(native, sched, nil)
	require.NoError(t, a.Animate([]string{"a", "b"}, nil, linear))

	row(native.Render, "b", "a")
	require.NoError(t, a.Animate([]string{"b", "a"}, nil, linear))
	sched.Frames(10)

	assert.NotEmpty(t, native.TransformsFor("a"))
	got, _ := native.LastTransform("a")
	assert.Equal(t, geom.Point{}, got)
	assert.Equal(t, 0, a.Running())
}

func TestFailingNativeAnimatorFallsBackPerKey(t *testing.T) {
	native := gridtest.NewNative(geom.Rect{W: 1000, H: 1000})
	native.Err = errors.New("detached element")
	row(native.Render, "a")
	sched := gridtest.NewScheduler()
	a := New(native, sched, nil)
	require.NoError(t, a.Animate([]string{"a"}, nil, linear))

	native.Rects["a"] = geom.Rect{Y: 40, W: 100, H: 100}
	require.NoError(t, a.Animate([]string{"a"}, nil, linear))

	assert.Equal(t, []geom.Point{{Y: -40}}, native.TransformsFor("a"))
}

func TestDeadlineForcesIdentityWhenNativeNeverFinishes(t *testing.T) {
	native := gridtest.NewNative(geom.Rect{W: 1000, H: 1000})
	row(native.Render, "a")
	sched := gridtest.NewScheduler()
	a := New(native, sched, nil)
	require.NoError(t, a.Animate([]string{"a"}, nil, linear))

	native.Rects["a"] = geom.Rect{X: 300, W: 100, H: 100}
	require.NoError(t, a.Animate([]string{"a"}, nil, linear))
	require.Equal(t, 1, a.Running())

	sched.Advance(linear.Duration + deadlineSlack)
	assert.Equal(t, 0, a.Running())
	got, ok := native.LastTransform("a")
	require.True(t, ok)
	assert.Equal(t, geom.Point{}, got)

	native.Finish()
	assert.Len(t, native.TransformsFor("a"), 1, "late completion is ignored")
}

func TestCaptureRestoresScrollOffset(t *testing.T) {
	a, render, _ := setup("a", "b")
	render.Scroll = geom.Point{Y: 300}

	a.Capture([]string{"a", "b"})
	render.Scroll = geom.Point{}
	row(render, "b", "a")
	require.NoError(t, a.Animate([]string{"b", "a"}, nil, linear))

	assert.Equal(t, geom.Point{Y: 300}, render.Scroll)
	assert.Equal(t, 1, render.ScrollSets)
	assert.NotEmpty(t, render.TransformsFor("a"), "captured records act as the before snapshot")

	require.NoError(t, a.Animate([]string{"b", "a"}, nil, linear))
	assert.Equal(t, 1, render.ScrollSets, "records are consumed by one Animate")
}

func TestStopAndResetSettleEverything(t *testing.T) {
	a, render, sched := setup("a", "b")
	require.NoError(t, a.Animate([]string{"a", "b"}, nil, linear))
	row(render, "b", "a")
	require.NoError(t, a.Animate([]string{"b", "a"}, nil, linear))
	require.Equal(t, 2, a.Running())

	a.Reset()
	assert.Equal(t, 0, a.Running())
	assert.Equal(t, 0, sched.PendingTicks())
	assert.Equal(t, 0, sched.PendingTimers())
	got, _ := render.LastTransform("b")
	assert.Equal(t, geom.Point{}, got)

	row(render, "a", "b")
	before := len(render.Transforms)
	require.NoError(t, a.Animate([]string{"a", "b"}, nil, linear))
	assert.Len(t, render.Transforms, before, "reset drops the baseline")
}

func TestEaseEndpoints(t *testing.T) {
	for _, name := range []string{EaseLinear, EaseIn, EaseOut, EaseInOut, EaseSmoothstep, "bogus"} {
		assert.Equal(t, 0.0, Ease(name, 0), name)
		assert.Equal(t, 1.0, Ease(name, 1), name)
		assert.Equal(t, 1.0, Ease(name, 3), name)
	}
	assert.Equal(t, 0.25, Ease(EaseIn, 0.5))
	assert.Equal(t, 0.75, Ease(EaseOut, 0.5))
	assert.Equal(t, 0.5, Ease(EaseSmoothstep, 0.5))
}
