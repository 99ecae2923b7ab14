// Package flip animates grid reflows with the First-Last-Invert-Play
// technique: it compares layout rectangles across a mutation and plays each
// moved element from its old offset back to identity.
package flip

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Magstic/J2ME-Launcher-sub001/internal/grid"
	"github.com/Magstic/J2ME-Launcher-sub001/internal/grid/geom"
)

// MaxAnimated caps how many keys animate at the same time.
const MaxAnimated = 60

// Defaults.
const (
	DefaultDuration = 220 * time.Millisecond
	DefaultFadeFrom = 0.6
	deadlineSlack   = 100 * time.Millisecond
)

// ErrWhitelistRequired is returned when more than MaxAnimated keys are
// passed without a whitelist.
var ErrWhitelistRequired = errors.New("flip: whitelist required")

// Record is the layout rectangle of a key captured before a mutation.
type Record struct {
	Key    string
	Before geom.Rect
}

// Options controls one Animate call.
type Options struct {
	Duration time.Duration
	Easing   string
	// Fade cross-fades opacity from FadeFrom to 1, pulsing keys that did
	// not move as well.
	Fade     bool
	FadeFrom float64
}

func (o Options) withDefaults() Options {
	if o.Duration <= 0 {
		o.Duration = DefaultDuration
	}
	if o.Easing == "" {
		o.Easing = EaseOut
	}
	if o.Fade && (o.FadeFrom <= 0 || o.FadeFrom >= 1) {
		o.FadeFrom = DefaultFadeFrom
	}
	return o
}

type tween struct {
	key     string
	from    geom.Point
	move    bool
	fade    bool
	opacity float64
	start   time.Time
	opts    Options
	native  bool
}

// offset returns the translation the tween shows at now.
func (tw *tween) offset(now time.Time) (geom.Point, float64, bool) {
	p := float64(now.Sub(tw.start)) / float64(tw.opts.Duration)
	if p >= 1 {
		return geom.Point{}, 1, true
	}
	e := Ease(tw.opts.Easing, p)
	return geom.Point{X: tw.from.X * (1 - e), Y: tw.from.Y * (1 - e)},
		tw.opacity + (1-tw.opacity)*e, false
}

// Animator reconciles one container's layout changes.
type Animator struct {
	render grid.RenderPort
	sched  grid.Scheduler
	log    *slog.Logger

	baseline map[string]geom.Rect
	records  map[string]Record
	scroll   *geom.Point

	running    map[string]*tween
	tickCancel func()
	deadlines  []func()
	nativeOff  bool
}

// New creates an animator for one container.
func New(render grid.RenderPort, sched grid.Scheduler, log *slog.Logger) *Animator {
	return &Animator{
		render:  render,
		sched:   sched,
		log:     grid.Logger(log).With("component", "flip"),
		running: make(map[string]*tween),
	}
}

// Capture records the current rectangles of keys and the container scroll
// offset right before a mutation. The next Animate call uses these records
// as the "before" snapshot and restores the scroll offset.
func (a *Animator) Capture(keys []string) {
	a.records = make(map[string]Record, len(keys))
	for _, k := range keys {
		if r, ok := a.render.Rect(k); ok {
			a.records[k] = Record{Key: k, Before: r}
		}
	}
	if sp, ok := a.render.(grid.ScrollPort); ok {
		off := sp.ScrollOffset()
		a.scroll = &off
	}
}

// Animate compares the current layout of orderedKeys with the previous
// snapshot and plays every whitelisted key that moved. A nil whitelist
// animates every key and is only accepted up to MaxAnimated keys. The first
// call without a prior snapshot only records the baseline.
func (a *Animator) Animate(orderedKeys []string, whitelist grid.Set, opts Options) error {
	opts = opts.withDefaults()

	if a.scroll != nil {
		if sp, ok := a.render.(grid.ScrollPort); ok {
			sp.SetScrollOffset(*a.scroll)
		}
		a.scroll = nil
	}

	current := make(map[string]geom.Rect, len(orderedKeys))
	for _, k := range orderedKeys {
		if r, ok := a.render.Rect(k); ok {
			current[k] = r
		}
	}

	before := a.before()
	a.records = nil
	a.baseline = current

	if whitelist == nil && len(orderedKeys) > MaxAnimated {
		return fmt.Errorf("animate %d keys: %w", len(orderedKeys), ErrWhitelistRequired)
	}
	if before == nil {
		return nil
	}

	inBatch := make(map[string]bool)
	var batch []*tween
	for _, k := range orderedKeys {
		if whitelist != nil && !whitelist.Has(k) {
			continue
		}
		prev, ok := before[k]
		if !ok {
			continue
		}
		cur, ok := current[k]
		if !ok {
			continue
		}
		delta := prev.Delta(cur)
		if tw, ok := a.running[k]; ok && tw.move {
			shown, _, _ := tw.offset(a.sched.Now())
			delta = delta.Add(shown)
		}
		move := delta != (geom.Point{})
		if !move && !opts.Fade {
			continue
		}
		if !a.admit(k, inBatch) {
			a.log.Debug("flip cap reached", "key", k, "running", len(a.running))
			continue
		}
		inBatch[k] = true
		batch = append(batch, &tween{
			key:     k,
			from:    delta,
			move:    move,
			fade:    opts.Fade,
			opacity: opts.FadeFrom,
			start:   a.sched.Now(),
			opts:    opts,
		})
	}

	for _, tw := range batch {
		a.start(tw)
	}
	if len(batch) > 0 {
		a.armDeadline(batch, opts.Duration+deadlineSlack)
	}
	return nil
}

func (a *Animator) before() map[string]geom.Rect {
	if a.records == nil {
		return a.baseline
	}
	out := make(map[string]geom.Rect, len(a.records))
	for k, rec := range a.records {
		out[k] = rec.Before
	}
	return out
}

// admit reports whether key may start without exceeding MaxAnimated. A key
// that is already running is replaced and does not add to the count.
func (a *Animator) admit(key string, inBatch map[string]bool) bool {
	if _, ok := a.running[key]; ok {
		return true
	}
	n := len(a.running)
	for k := range inBatch {
		if _, ok := a.running[k]; !ok {
			n++
		}
	}
	return n < MaxAnimated
}

func (a *Animator) start(tw *tween) {
	if old, ok := a.running[tw.key]; ok && old.fade && !tw.fade {
		a.setOpacity(tw.key, 1)
	}
	a.running[tw.key] = tw

	if native, ok := a.render.(grid.NativeAnimator); ok && !a.nativeOff {
		kf := grid.Keyframes{
			From:        tw.from,
			FromOpacity: tw.opacity,
			Fade:        tw.fade,
			Duration:    tw.opts.Duration,
			Easing:      tw.opts.Easing,
		}
		err := native.Animate(tw.key, kf, func() { a.finish(tw) })
		if err == nil {
			tw.native = true
			return
		}
		if errors.Is(err, grid.ErrUnsupported) {
			a.nativeOff = true
		} else {
			a.log.Warn("native animation failed, tweening", "key", tw.key, "err", err)
		}
	}

	// Invert: jump to the old position before the first frame paints.
	if tw.move {
		a.render.ApplyTransform(tw.key, tw.from.X, tw.from.Y)
	}
	if tw.fade {
		a.setOpacity(tw.key, tw.opacity)
	}
	a.scheduleTick()
}

func (a *Animator) scheduleTick() {
	if a.tickCancel != nil {
		return
	}
	a.tickCancel = a.sched.RequestTick(a.onTick)
}

func (a *Animator) onTick(now time.Time) {
	a.tickCancel = nil
	pending := false
	for _, tw := range a.running {
		if tw.native {
			continue
		}
		off, opacity, done := tw.offset(now)
		if done {
			a.finish(tw)
			continue
		}
		if tw.move {
			a.render.ApplyTransform(tw.key, off.X, off.Y)
		}
		if tw.fade {
			a.setOpacity(tw.key, opacity)
		}
		pending = true
	}
	if pending {
		a.scheduleTick()
	}
}

// finish settles tw at identity. It is a no-op when tw was replaced or has
// already finished.
func (a *Animator) finish(tw *tween) {
	if a.running[tw.key] != tw {
		return
	}
	delete(a.running, tw.key)
	if tw.move {
		a.render.ApplyTransform(tw.key, 0, 0)
	}
	if tw.fade {
		a.setOpacity(tw.key, 1)
	}
	if len(a.running) == 0 {
		a.stopTimers()
	}
}

// armDeadline forces the batch to identity if neither frames nor native
// completion signals arrive in time.
func (a *Animator) armDeadline(batch []*tween, d time.Duration) {
	a.deadlines = append(a.deadlines, a.sched.AfterFunc(d, func() {
		for _, tw := range batch {
			a.finish(tw)
		}
	}))
}

func (a *Animator) setOpacity(key string, v float64) {
	if op, ok := a.render.(grid.OpacityPort); ok {
		op.SetOpacity(key, v)
	}
}

func (a *Animator) stopTimers() {
	if a.tickCancel != nil {
		a.tickCancel()
		a.tickCancel = nil
	}
	for _, stop := range a.deadlines {
		stop()
	}
	a.deadlines = nil
}

// Running returns the number of keys currently animating.
func (a *Animator) Running() int {
	return len(a.running)
}

// Stop settles every running animation at identity immediately.
func (a *Animator) Stop() {
	for _, tw := range a.running {
		a.finish(tw)
	}
	a.stopTimers()
}

// Reset forgets the baseline so the next Animate only records one. Used
// when the container is remounted.
func (a *Animator) Reset() {
	a.Stop()
	a.baseline = nil
	a.records = nil
	a.scroll = nil
}
