package gridtest

import (
	"sort"

	"github.com/Magstic/J2ME-Launcher-sub001/internal/grid"
	"github.com/Magstic/J2ME-Launcher-sub001/internal/grid/geom"
)

// Transform is one recorded ApplyTransform call.
type Transform struct {
	Key  string
	X, Y float64
}

// Render is an in-memory grid.RenderPort that also implements the optional
// scroll, opacity and box ports. It records every call for assertions.
type Render struct {
	Rects      map[string]geom.Rect
	View       geom.Rect
	Classes    map[string]map[string]bool
	Transforms []Transform
	Opacity    map[string][]float64
	Scroll     geom.Point
	ScrollSets int

	Box        *geom.Rect
	BoxFading  bool
	BoxCleared int
	// FadeDones records every fade completion callback in call order.
	FadeDones []func()
	fadeDone  func()
}

// NewRender creates a render port with the given viewport.
func NewRender(view geom.Rect) *Render {
	return &Render{
		Rects:   make(map[string]geom.Rect),
		View:    view,
		Classes: make(map[string]map[string]bool),
		Opacity: make(map[string][]float64),
	}
}

// Grid lays out count tiles of w x h in cols columns separated by gap, keyed
// by keyFn(i).
func (r *Render) Grid(count, cols int, w, h, gap float64, keyFn func(int) string) {
	for i := 0; i < count; i++ {
		row, col := i/cols, i%cols
		r.Rects[keyFn(i)] = geom.Rect{
			X: float64(col) * (w + gap),
			Y: float64(row) * (h + gap),
			W: w,
			H: h,
		}
	}
}

func (r *Render) Keys() []string {
	out := make([]string, 0, len(r.Rects))
	for k := range r.Rects {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (r *Render) Rect(key string) (geom.Rect, bool) {
	rect, ok := r.Rects[key]
	return rect, ok
}

func (r *Render) Viewport() geom.Rect {
	return r.View
}

func (r *Render) SetTransientClass(key, class string, on bool) {
	m, ok := r.Classes[key]
	if !ok {
		m = make(map[string]bool)
		r.Classes[key] = m
	}
	if on {
		m[class] = true
	} else {
		delete(m, class)
	}
}

func (r *Render) ApplyTransform(key string, x, y float64) {
	r.Transforms = append(r.Transforms, Transform{Key: key, X: x, Y: y})
}

func (r *Render) SetOpacity(key string, v float64) {
	r.Opacity[key] = append(r.Opacity[key], v)
}

func (r *Render) ScrollOffset() geom.Point {
	return r.Scroll
}

func (r *Render) SetScrollOffset(p geom.Point) {
	r.Scroll = p
	r.ScrollSets++
}

func (r *Render) DrawSelectionBox(b geom.Rect) {
	r.Box = &b
	r.BoxFading = false
}

func (r *Render) FadeSelectionBox(b geom.Rect, done func()) {
	r.Box = &b
	r.BoxFading = true
	r.fadeDone = done
	r.FadeDones = append(r.FadeDones, done)
}

func (r *Render) ClearSelectionBox() {
	r.Box = nil
	r.BoxFading = false
	r.BoxCleared++
}

// CompleteFade signals the end of the box fade-out, as a renderer would.
func (r *Render) CompleteFade() {
	if fn := r.fadeDone; fn != nil {
		r.fadeDone = nil
		fn()
	}
}

// HasClass reports whether key currently carries class.
func (r *Render) HasClass(key, class string) bool {
	return r.Classes[key][class]
}

// WithClass returns the sorted keys currently carrying class.
func (r *Render) WithClass(class string) []string {
	var out []string
	for k, m := range r.Classes {
		if m[class] {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// LastTransform returns the latest transform applied to key.
func (r *Render) LastTransform(key string) (geom.Point, bool) {
	for i := len(r.Transforms) - 1; i >= 0; i-- {
		if r.Transforms[i].Key == key {
			return geom.Point{X: r.Transforms[i].X, Y: r.Transforms[i].Y}, true
		}
	}
	return geom.Point{}, false
}

// TransformsFor returns every transform applied to key in order.
func (r *Render) TransformsFor(key string) []geom.Point {
	var out []geom.Point
	for _, t := range r.Transforms {
		if t.Key == key {
			out = append(out, geom.Point{X: t.X, Y: t.Y})
		}
	}
	return out
}

// Native wraps Render with a grid.NativeAnimator. Err makes every call fail.
type Native struct {
	*Render
	Err   error
	Calls map[string]grid.Keyframes
	done  map[string]func()
}

// NewNative creates a native-animating render port.
func NewNative(view geom.Rect) *Native {
	return &Native{
		Render: NewRender(view),
		Calls:  make(map[string]grid.Keyframes),
		done:   make(map[string]func()),
	}
}

func (n *Native) Animate(key string, kf grid.Keyframes, done func()) error {
	if n.Err != nil {
		return n.Err
	}
	n.Calls[key] = kf
	n.done[key] = done
	return nil
}

// Finish completes every running native animation.
func (n *Native) Finish() {
	for k, fn := range n.done {
		delete(n.done, k)
		fn()
	}
}
