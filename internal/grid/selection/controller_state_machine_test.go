package selection

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

const (
	tileSize = 100.0
	tileGap  = 20.0
	gridCols = 6
)

func gameKey(i int) string { return fmt.Sprintf("game-%d", i) }

type harness struct {
	t      *testing.T
	sched  *gridtest.Scheduler
	render *gridtest.Render
	input  *gridtest.Input
	store  *grid.SelectionStore
	ctl    *Controller
	items  []grid.Item
}

func newHarness(t *testing.T, cfg Config, cb grid.Callbacks, initial ...string) *harness {
	t.Helper()
	h := &harness{
		t:      t,
		sched:  gridtest.NewScheduler(),
		render: gridtest.NewRender(geom.Rect{W: 1000, H: 1000}),
		input:  gridtest.NewInput(),
		store:  grid.NewSelectionStore(initial...),
	}
	h.render.Grid(36, gridCols, tileSize, tileSize, tileGap, gameKey)
	for i := 0; i < 36; i++ {
		h.items = append(h.items, grid.Item{Key: gameKey(i)})
	}
	h.ctl = New(Options{
		Host:      h.store,
		Render:    h.render,
		Input:     h.input,
		Scheduler: h.sched,
		Callbacks: cb,
		Config:    cfg,
	})
	h.ctl.SetItems(h.items)
	h.ctl.SetColumns(gridCols)
	return h
}

func (h *harness) press(x, y float64, target string, mods grid.Modifiers) {
	h.ctl.PointerDown(grid.PointerEvent{Pos: geom.Point{X: x, Y: y}, Target: target, Mods: mods})
}

func (h *harness) center(i int) (float64, float64) {
	col, row := i%gridCols, i/gridCols
	return float64(col)*(tileSize+tileGap) + tileSize/2, float64(row)*(tileSize+tileGap) + tileSize/2
}

func (h *harness) click(i int, mods grid.Modifiers) {
	x, y := h.center(i)
	h.press(x, y, gameKey(i), mods)
	h.input.UpAt(x, y)
}

func (h *harness) dragTo(x, y float64) {
	h.input.MoveTo(x, y)
	h.sched.Frames(3)
}

func (h *harness) assertClean() {
	h.t.Helper()
	assert.Equal(h.t, StateIdle, h.ctl.State())
	assert.Equal(h.t, 0, h.input.Active(), "gesture listeners leaked")
	assert.Equal(h.t, 0, h.sched.PendingTicks(), "frame callbacks leaked")
	assert.Equal(h.t, 0, h.sched.PendingTimers(), "timers leaked")
	assert.Empty(h.t, h.render.WithClass(grid.ClassSelecting))
	assert.Empty(h.t, h.render.WithClass(grid.ClassDeselecting))
	assert.Nil(h.t, h.render.Box)
}

func topLeftBlock(n int) []string {
	out := grid.NewSet()
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			out.Add(gameKey(r*gridCols + c))
		}
	}
	return out.Sorted()
}

// --- Box Selection ---

func TestBoxSelectKnownGridCommitsOnceAtPointerUp(t *testing.T) {
	h := newHarness(t, Config{}, grid.Callbacks{})

	h.press(10, 10, "", 0)
	assert.Equal(t, StatePendingClear, h.ctl.State())

	for _, p := range []float64{60, 150, 260, 330, 400} {
		h.dragTo(p, p)
		assert.Equal(t, 0, h.store.Commits(), "no commit mid-gesture at %v", p)
	}
	assert.Equal(t, StateBoxSelecting, h.ctl.State())
	assert.Equal(t, topLeftBlock(4), h.ctl.Live().Sorted())
	assert.Equal(t, topLeftBlock(4), h.render.WithClass(grid.ClassSelecting))
	require.NotNil(t, h.render.Box)
	assert.Equal(t, geom.Rect{X: 10, Y: 10, W: 390, H: 390}, *h.render.Box)

	h.input.UpAt(400, 400)

	assert.Equal(t, 1, h.store.Commits())
	assert.Equal(t, topLeftBlock(4), h.store.Selection().Sorted())
	h.assertClean()
}

func TestBoxSelectShrinkingBoxDropsClasses(t *testing.T) {
	h := newHarness(t, Config{}, grid.Callbacks{})

	h.press(10, 10, "", 0)
	h.dragTo(400, 400)
	require.Len(t, h.render.WithClass(grid.ClassSelecting), 16)

	h.dragTo(150, 150)
	assert.Equal(t, topLeftBlock(2), h.render.WithClass(grid.ClassSelecting))

	h.input.UpAt(150, 150)
	assert.Equal(t, topLeftBlock(2), h.store.Selection().Sorted())
	h.assertClean()
}

func TestBoxSelectFoldsPendingClearIntoSingleCommit(t *testing.T) {
	h := newHarness(t, Config{}, grid.Callbacks{}, "game-35")

	h.press(10, 10, "", 0)
	h.dragTo(150, 150)

	assert.Equal(t, 0, h.store.Commits())
	assert.True(t, h.render.HasClass("game-35", grid.ClassDeselecting))
	assert.Equal(t, []string{"game-35"}, h.store.Selection().Sorted(), "host must not see the clear mid-gesture")

	h.input.UpAt(150, 150)
	assert.Equal(t, 1, h.store.Commits())
	assert.Equal(t, topLeftBlock(2), h.store.Selection().Sorted())
	h.assertClean()
}

func TestBoxSelectReselectingDeselectedKeyDropsDeselectingClass(t *testing.T) {
	h := newHarness(t, Config{}, grid.Callbacks{}, "game-0")

	h.press(10, 10, "", 0)
	h.dragTo(50, 50)
	assert.True(t, h.render.HasClass("game-0", grid.ClassSelecting))
	assert.False(t, h.render.HasClass("game-0", grid.ClassDeselecting))

	h.input.UpAt(50, 50)
	assert.Equal(t, []string{"game-0"}, h.store.Selection().Sorted())
}

func TestBoxSelectWithToggleModifierIsAdditive(t *testing.T) {
	h := newHarness(t, Config{}, grid.Callbacks{}, "game-35")

	h.press(10, 10, "", grid.ModCtrl)
	h.dragTo(150, 150)
	assert.Empty(t, h.render.WithClass(grid.ClassDeselecting))

	h.input.UpAt(150, 150)
	want := append(topLeftBlock(2), "game-35")
	assert.ElementsMatch(t, want, h.store.Selection().Sorted())
	assert.Equal(t, 1, h.store.Commits())
}

func TestBoxCornersAreClampedToViewport(t *testing.T) {
	h := newHarness(t, Config{}, grid.Callbacks{})
	h.render.View = geom.Rect{W: 500, H: 500}

	h.press(10, 10, "", 0)
	h.dragTo(2000, 50)

	require.NotNil(t, h.render.Box)
	assert.Equal(t, 500.0, h.render.Box.Right())
	assert.NotContains(t, h.ctl.Live().Sorted(), "game-5", "tile at x=600 lies outside the viewport")
	assert.Contains(t, h.ctl.Live().Sorted(), "game-4")
}

func TestRecomputeIsThrottledToOncePerFrame(t *testing.T) {
	h := newHarness(t, Config{}, grid.Callbacks{})

	h.press(10, 10, "", 0)
	h.input.MoveTo(50, 50)
	h.input.MoveTo(150, 150)
	h.input.MoveTo(400, 400)
	assert.Equal(t, 1, h.sched.PendingTicks(), "moves within a frame coalesce into one tick")
	assert.Nil(t, h.render.Box, "nothing is computed before the frame")

	h.sched.Frame()
	assert.Equal(t, topLeftBlock(4), h.ctl.Live().Sorted())
}

func TestPointerUpFlushesPendingRecompute(t *testing.T) {
	h := newHarness(t, Config{}, grid.Callbacks{})

	h.press(10, 10, "", 0)
	h.input.MoveTo(150, 150)
	h.input.UpAt(150, 150)

	assert.Equal(t, topLeftBlock(2), h.store.Selection().Sorted())
	h.assertClean()
}

func TestMovementWithinThresholdStaysPending(t *testing.T) {
	h := newHarness(t, Config{}, grid.Callbacks{}, "game-1")

	h.press(10, 10, "", 0)
	h.dragTo(12, 11)
	assert.Equal(t, StatePendingClear, h.ctl.State())
	assert.Nil(t, h.render.Box)

	h.input.UpAt(12, 11)
	assert.Equal(t, 1, h.store.Commits())
	assert.Equal(t, 0, h.store.Selection().Len())
	h.assertClean()
}

func TestBlankClickWithToggleKeepsSelection(t *testing.T) {
	h := newHarness(t, Config{}, grid.Callbacks{}, "game-1")

	h.press(10, 10, "", grid.ModMeta)
	h.input.UpAt(10, 10)

	assert.Equal(t, 0, h.store.Commits())
	assert.Equal(t, []string{"game-1"}, h.store.Selection().Sorted())
	h.assertClean()
}

func TestScrollDriftDuringGestureIsCompensated(t *testing.T) {
	h := newHarness(t, Config{}, grid.Callbacks{})

	h.press(10, 10, "", 0)
	h.dragTo(150, 150)
	require.Equal(t, topLeftBlock(2), h.ctl.Live().Sorted())

	// Content scrolls up by one row while the pointer stays put.
	h.render.Scroll = geom.Point{Y: 120}
	h.dragTo(150, 150)

	want := []string{"game-0", "game-1", "game-12", "game-13", "game-6", "game-7"}
	assert.ElementsMatch(t, want, h.ctl.Live().Sorted())
	require.NotNil(t, h.render.Box)
	assert.Equal(t, 0.0, h.render.Box.Top(), "origin scrolled above the viewport is clamped")
}

// --- Interruptions ---

func TestBlurFreezesSelectionAndCommitsAfterFade(t *testing.T) {
	h := newHarness(t, Config{}, grid.Callbacks{})

	h.press(10, 10, "", 0)
	h.dragTo(260, 260)
	frozen := h.ctl.Live().Sorted()
	require.Equal(t, topLeftBlock(3), frozen)

	h.input.Blur()
	assert.Equal(t, StateFading, h.ctl.State())
	assert.True(t, h.render.BoxFading)

	h.dragTo(600, 600)
	h.input.Enter(geom.Point{X: 600, Y: 600})
	assert.Equal(t, frozen, h.ctl.Live().Sorted(), "no mutation after focus loss")
	assert.Equal(t, 0, h.store.Commits())

	h.render.CompleteFade()
	assert.Equal(t, 1, h.store.Commits())
	assert.Equal(t, frozen, h.store.Selection().Sorted())
	h.assertClean()
}

func TestFadeFallbackTimerEndsGestureWithoutRendererSignal(t *testing.T) {
	h := newHarness(t, Config{}, grid.Callbacks{})

	h.press(10, 10, "", 0)
	h.dragTo(150, 150)
	h.input.Hide()

	h.sched.Advance(DefaultFadeOut)
	assert.Equal(t, StateFading, h.ctl.State(), "renderer gets the fade duration plus slack")

	h.sched.Advance(DefaultFadeSlack)
	assert.Equal(t, 1, h.store.Commits())
	assert.Equal(t, topLeftBlock(2), h.store.Selection().Sorted())
	h.assertClean()

	h.render.CompleteFade()
	assert.Equal(t, 1, h.store.Commits(), "late fade signal is ignored")
}

func TestLeaveThenReenterResumesGesture(t *testing.T) {
	h := newHarness(t, Config{}, grid.Callbacks{})

	h.press(10, 10, "", 0)
	h.dragTo(150, 150)
	h.input.Leave(geom.Point{X: 150, Y: -5})
	assert.Equal(t, StateFading, h.ctl.State())

	h.input.Enter(geom.Point{X: 260, Y: 260})
	assert.Equal(t, StateBoxSelecting, h.ctl.State())
	assert.False(t, h.render.BoxFading)

	h.dragTo(260, 260)
	h.input.UpAt(260, 260)
	assert.Equal(t, 1, h.store.Commits())
	assert.Equal(t, topLeftBlock(3), h.store.Selection().Sorted())
	h.assertClean()
}

func TestStaleFadeSignalAfterResumeIsIgnored(t *testing.T) {
	h := newHarness(t, Config{}, grid.Callbacks{})

	h.press(10, 10, "", 0)
	h.dragTo(150, 150)
	h.input.Leave(geom.Point{X: 150, Y: -5})
	h.input.Enter(geom.Point{X: 260, Y: 260})
	h.dragTo(260, 260)
	h.input.Leave(geom.Point{X: 260, Y: -5})
	require.Len(t, h.render.FadeDones, 2)

	h.render.FadeDones[0]()
	assert.Equal(t, StateFading, h.ctl.State())
	assert.Equal(t, 0, h.store.Commits())

	h.render.CompleteFade()
	assert.Equal(t, 1, h.store.Commits())
	assert.Equal(t, topLeftBlock(3), h.store.Selection().Sorted())
	h.assertClean()
}

func TestReenterAfterFadeEndedDoesNothing(t *testing.T) {
	h := newHarness(t, Config{}, grid.Callbacks{})

	h.press(10, 10, "", 0)
	h.dragTo(150, 150)
	h.input.Leave(geom.Point{X: 150, Y: -5})
	h.render.CompleteFade()
	h.input.Enter(geom.Point{X: 260, Y: 260})

	assert.Equal(t, 1, h.store.Commits())
	h.assertClean()
}

func TestBlurAfterLeaveIsNotResumable(t *testing.T) {
	h := newHarness(t, Config{}, grid.Callbacks{})

	h.press(10, 10, "", 0)
	h.dragTo(150, 150)
	h.input.Leave(geom.Point{X: 150, Y: -5})
	h.input.Blur()
	h.input.Enter(geom.Point{X: 260, Y: 260})

	assert.Equal(t, StateFading, h.ctl.State())
	h.render.CompleteFade()
	assert.Equal(t, topLeftBlock(2), h.store.Selection().Sorted())
}

func TestPointerCancelBeforeThresholdEndsWithoutCommit(t *testing.T) {
	h := newHarness(t, Config{}, grid.Callbacks{}, "game-1")

	h.press(10, 10, "", 0)
	h.input.Cancel()

	assert.Equal(t, 0, h.store.Commits())
	h.assertClean()
}

func TestEscapeAbortsBoxGesture(t *testing.T) {
	h := newHarness(t, Config{}, grid.Callbacks{}, "game-1")

	h.press(10, 10, "", 0)
	h.dragTo(260, 260)
	assert.True(t, h.ctl.KeyDown(grid.KeyEscape, 0))

	assert.Equal(t, 0, h.store.Commits())
	assert.Equal(t, []string{"game-1"}, h.store.Selection().Sorted())
	h.assertClean()
	assert.Equal(t, 1, h.render.BoxCleared)
}

func TestPressDuringFadeCommitsFrozenSetFirst(t *testing.T) {
	h := newHarness(t, Config{}, grid.Callbacks{})

	h.press(10, 10, "", 0)
	h.dragTo(150, 150)
	h.input.Blur()

	h.click(20, 0)
	assert.Equal(t, 2, h.store.Commits())
	assert.Equal(t, []string{"game-20"}, h.store.Selection().Sorted())
	h.assertClean()
}

func TestStaleIndexEndsGestureEarly(t *testing.T) {
	h := newHarness(t, Config{}, grid.Callbacks{}, "game-1")

	h.press(10, 10, "", 0)
	h.dragTo(150, 150)
	require.NotNil(t, h.ctl.idx)
	h.ctl.idx.Invalidate()
	h.dragTo(260, 260)

	assert.Equal(t, 0, h.store.Commits())
	assert.Equal(t, []string{"game-1"}, h.store.Selection().Sorted())
	h.assertClean()
}

func TestStaleIndexPanicsInStrictMode(t *testing.T) {
	h := newHarness(t, Config{Strict: true}, grid.Callbacks{})

	h.press(10, 10, "", 0)
	h.dragTo(150, 150)
	h.ctl.idx.Invalidate()
	h.input.MoveTo(260, 260)

	assert.Panics(t, func() { h.sched.Frames(3) })
}

func TestSetItemsDuringBoxGestureKeepsGestureIndex(t *testing.T) {
	h := newHarness(t, Config{Strict: true}, grid.Callbacks{})

	h.press(10, 10, "", 0)
	h.dragTo(150, 150)
	require.Equal(t, topLeftBlock(2), h.ctl.Live().Sorted())

	reversed := make([]grid.Item, len(h.items))
	for i, it := range h.items {
		reversed[len(h.items)-1-i] = it
	}
	h.ctl.SetItems(reversed)
	assert.Equal(t, StateBoxSelecting, h.ctl.State())

	h.dragTo(260, 260)
	assert.Equal(t, topLeftBlock(3), h.ctl.Live().Sorted())
	assert.Equal(t, 0, h.store.Commits())

	h.input.UpAt(260, 260)
	assert.Equal(t, 1, h.store.Commits())
	assert.Equal(t, topLeftBlock(3), h.store.Selection().Sorted())
	h.assertClean()
}

func TestSetItemsDuringBoxGestureDropsVanishedKeysAtCommit(t *testing.T) {
	h := newHarness(t, Config{}, grid.Callbacks{})

	h.press(10, 10, "", 0)
	h.dragTo(260, 260)
	h.ctl.SetItems(h.items[1:])
	h.input.UpAt(260, 260)

	want := grid.NewSet(topLeftBlock(3)...)
	want.Remove("game-0")
	assert.Equal(t, 1, h.store.Commits())
	assert.Equal(t, want.Sorted(), h.store.Selection().Sorted())
	h.assertClean()
}

func TestSetItemsDuringFadeDropsVanishedKeysAtCommit(t *testing.T) {
	h := newHarness(t, Config{}, grid.Callbacks{})

	h.press(10, 10, "", 0)
	h.dragTo(150, 150)
	h.input.Blur()
	h.ctl.SetItems(h.items[1:])
	h.sched.Advance(DefaultFadeOut + DefaultFadeSlack)

	assert.Equal(t, 1, h.store.Commits())
	assert.Equal(t, []string{"game-1", "game-6", "game-7"}, h.store.Selection().Sorted())
	h.assertClean()
}

// --- Discrete Selection ---

func TestShiftClickSelectsRangeFromAnchor(t *testing.T) {
	h := newHarness(t, Config{}, grid.Callbacks{})

	h.click(2, 0)
	h.click(2, grid.ModShift)
	h.click(7, grid.ModShift)

	want := []string{"game-2", "game-3", "game-4", "game-5", "game-6", "game-7"}
	assert.ElementsMatch(t, want, h.store.Selection().Sorted())
	assert.Equal(t, 2, h.ctl.Anchor(), "shift-click keeps the anchor")
	h.assertClean()
}

func TestShiftClickWithoutAnchorStartsRangeAtItem(t *testing.T) {
	h := newHarness(t, Config{}, grid.Callbacks{})

	h.click(4, grid.ModShift)
	assert.Equal(t, []string{"game-4"}, h.store.Selection().Sorted())
	assert.Equal(t, 4, h.ctl.Anchor())

	h.click(1, grid.ModShift)
	assert.ElementsMatch(t, []string{"game-1", "game-2", "game-3", "game-4"}, h.store.Selection().Sorted())
}

func TestShiftCtrlClickUnionsRangeWithSelection(t *testing.T) {
	h := newHarness(t, Config{}, grid.Callbacks{}, "game-20")

	h.click(2, grid.ModCtrl)
	require.Equal(t, 1, h.store.Commits())
	h.click(5, grid.ModCtrl|grid.ModShift)

	want := []string{"game-20", "game-2", "game-3", "game-4", "game-5"}
	assert.Equal(t, 2, h.store.Commits())
	assert.ElementsMatch(t, want, h.store.Selection().Sorted())
	assert.Equal(t, 2, h.ctl.Anchor())
}

func TestShiftClickReplacesSelectionWithRange(t *testing.T) {
	h := newHarness(t, Config{}, grid.Callbacks{}, "game-30")

	h.click(2, grid.ModCtrl)
	h.click(4, grid.ModShift)

	assert.ElementsMatch(t, []string{"game-2", "game-3", "game-4"}, h.store.Selection().Sorted())
}

func TestAnchorFollowsKeyAcrossReorder(t *testing.T) {
	h := newHarness(t, Config{}, grid.Callbacks{})
	h.click(2, 0)

	reversed := make([]grid.Item, len(h.items))
	for i, it := range h.items {
		reversed[len(h.items)-1-i] = it
	}
	h.ctl.SetItems(reversed)
	assert.Equal(t, 33, h.ctl.Anchor())

	h.ctl.SetItems(h.items[3:])
	assert.Equal(t, -1, h.ctl.Anchor(), "vanished anchor is dropped")
}

func TestCtrlClickTogglesMembership(t *testing.T) {
	h := newHarness(t, Config{}, grid.Callbacks{}, "game-1", "game-2")

	h.click(3, grid.ModCtrl)
	assert.ElementsMatch(t, []string{"game-1", "game-2", "game-3"}, h.store.Selection().Sorted())

	h.click(1, grid.ModMeta)
	assert.ElementsMatch(t, []string{"game-2", "game-3"}, h.store.Selection().Sorted())
	assert.Equal(t, 2, h.store.Commits())
}

func TestPlainClickReplacesSelection(t *testing.T) {
	h := newHarness(t, Config{}, grid.Callbacks{}, "game-1", "game-2")

	h.click(9, 0)
	assert.Equal(t, []string{"game-9"}, h.store.Selection().Sorted())
	assert.Equal(t, 1, h.store.Commits())
}

func TestPlainClickOnSoleSelectionIsNoop(t *testing.T) {
	h := newHarness(t, Config{}, grid.Callbacks{}, "game-9")

	h.click(9, 0)
	assert.Equal(t, 0, h.store.Commits())
	assert.Equal(t, 9, h.ctl.Anchor())
}

func TestDoubleClickActivatesItem(t *testing.T) {
	var activated []string
	h := newHarness(t, Config{}, grid.Callbacks{
		OnItemActivate: func(it grid.Item) error {
			activated = append(activated, it.Key)
			return nil
		},
	})

	h.click(4, 0)
	h.sched.Advance(150 * time.Millisecond)
	h.click(4, 0)
	assert.Equal(t, []string{"game-4"}, activated)

	h.sched.Advance(DefaultDoubleClick + 1)
	h.click(4, 0)
	assert.Len(t, activated, 1, "a click after the window starts a new pair")
}

func TestItemPressWithinThresholdIsClick(t *testing.T) {
	h := newHarness(t, Config{}, grid.Callbacks{})

	x, y := h.center(8)
	h.press(x, y, gameKey(8), 0)
	assert.Equal(t, StatePendingItem, h.ctl.State())
	h.input.MoveTo(x+1, y+2)
	h.input.UpAt(x+1, y+2)

	assert.Equal(t, []string{"game-8"}, h.store.Selection().Sorted())
	h.assertClean()
}

type recordingStarter struct {
	items []grid.Item
	err   error
}

func (r *recordingStarter) StartDrag(_ grid.PointerEvent, it grid.Item) error {
	r.items = append(r.items, it)
	return r.err
}

func TestItemPressPastThresholdStartsDrag(t *testing.T) {
	h := newHarness(t, Config{}, grid.Callbacks{}, "game-1")
	starter := &recordingStarter{err: errors.New("transport down")}
	h.ctl.SetDragStarter(starter)

	x, y := h.center(8)
	h.press(x, y, gameKey(8), 0)
	h.input.MoveTo(x+10, y)

	require.Len(t, starter.items, 1)
	assert.Equal(t, "game-8", starter.items[0].Key)
	assert.Equal(t, 0, h.store.Commits(), "drag start leaves selection to the drag coordinator")
	h.assertClean()
}

// --- Context Menu ---

func TestContextMenuOnUnselectedItemCollapsesSelection(t *testing.T) {
	var gotItem string
	var gotKeys []string
	h := newHarness(t, Config{}, grid.Callbacks{
		OnItemContextMenu: func(it grid.Item, keys []string) error {
			gotItem, gotKeys = it.Key, keys
			return nil
		},
	}, "game-1", "game-2")

	h.ctl.PointerDown(grid.PointerEvent{Button: grid.ButtonSecondary, Target: "game-7"})

	assert.Equal(t, "game-7", gotItem)
	assert.Equal(t, []string{"game-7"}, gotKeys)
	assert.Equal(t, []string{"game-7"}, h.store.Selection().Sorted())
	h.assertClean()
}

func TestContextMenuOnSelectedItemKeepsSelectionInItemOrder(t *testing.T) {
	var gotKeys []string
	h := newHarness(t, Config{}, grid.Callbacks{
		OnItemContextMenu: func(_ grid.Item, keys []string) error {
			gotKeys = keys
			return nil
		},
	}, "game-12", "game-3", "game-7")

	h.ctl.PointerDown(grid.PointerEvent{Button: grid.ButtonSecondary, Target: "game-7"})

	assert.Equal(t, []string{"game-3", "game-7", "game-12"}, gotKeys)
	assert.Equal(t, 0, h.store.Commits())
}

func TestContextMenuOnBlank(t *testing.T) {
	called := 0
	h := newHarness(t, Config{}, grid.Callbacks{
		OnBlankContextMenu: func() error {
			called++
			return nil
		},
	})

	h.ctl.PointerDown(grid.PointerEvent{Button: grid.ButtonSecondary})
	assert.Equal(t, 1, called)
	h.assertClean()
}

func TestPanickingCallbackDoesNotBreakController(t *testing.T) {
	h := newHarness(t, Config{}, grid.Callbacks{
		OnItemContextMenu: func(grid.Item, []string) error {
			panic("menu exploded")
		},
	})

	assert.NotPanics(t, func() {
		h.ctl.PointerDown(grid.PointerEvent{Button: grid.ButtonSecondary, Target: "game-3"})
	})
	h.assertClean()

	h.press(10, 10, "", 0)
	h.dragTo(150, 150)
	h.input.UpAt(150, 150)
	assert.Equal(t, topLeftBlock(2), h.store.Selection().Sorted())
}

func TestMiddleButtonIsIgnored(t *testing.T) {
	h := newHarness(t, Config{}, grid.Callbacks{})

	h.ctl.PointerDown(grid.PointerEvent{Button: grid.ButtonMiddle})
	assert.Equal(t, StateIdle, h.ctl.State())
	assert.Equal(t, 0, h.input.Total)
}

func TestEveryGestureDisposesItsSubscription(t *testing.T) {
	h := newHarness(t, Config{}, grid.Callbacks{})

	h.click(1, 0)
	h.press(10, 10, "", 0)
	h.dragTo(200, 200)
	h.input.UpAt(200, 200)
	h.press(10, 10, "", 0)
	h.dragTo(200, 200)
	h.input.Blur()
	h.render.CompleteFade()
	h.press(10, 10, "", 0)
	h.input.Cancel()

	assert.Equal(t, 4, h.input.Total)
	h.assertClean()
}
