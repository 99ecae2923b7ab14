package grid

import (
	"time"

	"github.com/Magstic/J2ME-Launcher-sub001/internal/grid/geom"
)

// --- Render Port ---

// RenderPort is the seam between the engine and the concrete rendering
// surface. Rectangles are layout rectangles in viewport coordinates and never
// include a transform the engine applied.
type RenderPort interface {
	// Keys enumerates the items that currently have a render surface.
	Keys() []string
	// Rect returns the layout rectangle of key; ok is false when the item is
	// not mounted.
	Rect(key string) (r geom.Rect, ok bool)
	// Viewport returns the visible bounds of the container.
	Viewport() geom.Rect
	SetTransientClass(key, class string, on bool)
	ApplyTransform(key string, x, y float64)
}

// Transient classes toggled during a gesture.
const (
	ClassSelecting   = "is-selecting"
	ClassDeselecting = "is-deselecting"
	ClassDragging    = "is-dragging"
)

// ScrollPort is implemented by render ports whose container scrolls.
type ScrollPort interface {
	ScrollOffset() geom.Point
	SetScrollOffset(p geom.Point)
}

// OpacityPort is implemented by render ports that can fade elements.
type OpacityPort interface {
	SetOpacity(key string, v float64)
}

// Keyframes describes one FLIP playback for a native animator.
type Keyframes struct {
	From        geom.Point
	FromOpacity float64
	Fade        bool
	Duration    time.Duration
	Easing      string
}

// NativeAnimator plays keyframes with the platform animation API. It
// returns ErrUnsupported when that API is unavailable. done must be called
// once the animation finishes.
type NativeAnimator interface {
	Animate(key string, kf Keyframes, done func()) error
}

// BoxRenderer draws the rubber-band rectangle.
type BoxRenderer interface {
	DrawSelectionBox(r geom.Rect)
	// FadeSelectionBox starts the fade-out and calls done when it ends.
	// done may never be called; the engine keeps a fallback timer.
	FadeSelectionBox(r geom.Rect, done func())
	ClearSelectionBox()
}

// DragImage is the platform drag image built from a preview. A transparent
// image hides the native ghost so the engine overlay can draw instead.
type DragImage struct {
	Layers      []PreviewLayer
	Overflow    int
	Transparent bool
}

// PreviewLayer is one stacked tile in a multi-item drag preview.
type PreviewLayer struct {
	Key    string
	Offset geom.Point
}

// DragImagePort attaches a drag image to the native drag operation.
type DragImagePort interface {
	SetDragImage(img DragImage) error
}

// DragOverlayPort renders the engine-side drag preview that follows the pointer.
type DragOverlayPort interface {
	ShowDragOverlay(img DragImage, at geom.Point)
	MoveDragOverlay(at geom.Point)
	HideDragOverlay()
}

// --- Input Port ---

// Subscription is returned by InputPort.Subscribe. Dispose releases every
// listener registered by that call and is safe to call more than once.
type Subscription interface {
	Dispose()
}

// GestureHandlers are the window-level listeners a gesture needs. Nil
// handlers are ignored.
type GestureHandlers struct {
	Move   func(ev PointerEvent)
	Up     func(ev PointerEvent)
	Cancel func()
	Leave  func(at geom.Point)
	Enter  func(at geom.Point)
	Blur   func()
	Hidden func()
}

// InputPort delivers window-level events for the lifetime of a gesture.
type InputPort interface {
	Subscribe(h GestureHandlers) Subscription
}

// --- Scheduler ---

// Scheduler is the engine's only source of time. RequestTick runs fn on the
// next rendered frame; AfterFunc runs fn once after d. Both return a function
// that cancels the callback if it has not run yet.
type Scheduler interface {
	RequestTick(fn func(now time.Time)) (cancel func())
	AfterFunc(d time.Duration, fn func()) (stop func())
	Now() time.Time
}

// --- Host ---

// SelectionHost owns the committed selection.
type SelectionHost interface {
	Selection() Set
	CommitSelection(s Set)
}
