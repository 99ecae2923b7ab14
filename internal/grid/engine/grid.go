// Package engine wires the grid components for one container: the
// virtualization window, box selection, reflow animation and drag sessions.
package engine

import (
	"log/slog"

	"github.com/Magstic/J2ME-Launcher-sub001/internal/grid"
	"github.com/Magstic/J2ME-Launcher-sub001/internal/grid/dragsession"
	"github.com/Magstic/J2ME-Launcher-sub001/internal/grid/flip"
	"github.com/Magstic/J2ME-Launcher-sub001/internal/grid/geom"
	"github.com/Magstic/J2ME-Launcher-sub001/internal/grid/selection"
	"github.com/Magstic/J2ME-Launcher-sub001/internal/grid/virtual"
)

// Options are the host ports and hooks for one container.
type Options struct {
	Config    Config
	Host      grid.SelectionHost
	Render    grid.RenderPort
	Input     grid.InputPort
	Scheduler grid.Scheduler
	Callbacks grid.Callbacks
	Transport dragsession.Transport
	Source    dragsession.Context
	Logger    *slog.Logger
}

// Grid is one interactive container.
type Grid struct {
	cfg    Config
	log    *slog.Logger
	render grid.RenderPort

	window    *virtual.Window
	selection *selection.Controller
	flip      *flip.Animator
	drag      *dragsession.Coordinator

	items []grid.Item
}

// New wires a container. A zero Config uses DefaultConfig.
func New(opts Options) *Grid {
	cfg := opts.Config
	if cfg == (Config{}) {
		cfg = DefaultConfig()
	}
	log := grid.Logger(opts.Logger)

	drag := dragsession.New(dragsession.Options{
		Host:          opts.Host,
		Render:        opts.Render,
		Input:         opts.Input,
		Scheduler:     opts.Scheduler,
		Transport:     opts.Transport,
		Callbacks:     opts.Callbacks,
		Source:        opts.Source,
		Logger:        log,
		TeardownDelay: cfg.TeardownDelay,
		PreviewLayers: cfg.PreviewLayers,
	})
	sel := selection.New(selection.Options{
		Host:      opts.Host,
		Render:    opts.Render,
		Input:     opts.Input,
		Scheduler: opts.Scheduler,
		Callbacks: opts.Callbacks,
		Drag:      drag,
		Logger:    log,
		Config:    cfg.selectionConfig(),
	})

	return &Grid{
		cfg:       cfg,
		log:       log.With("component", "engine"),
		render:    opts.Render,
		selection: sel,
		flip:      flip.New(opts.Render, opts.Scheduler, log),
		drag:      drag,
		window: virtual.NewWindow(virtual.Params{
			MinItemWidth: cfg.MinItemWidth,
			RowHeight:    cfg.RowHeight,
			BufferRows:   cfg.BufferRows,
			Scrollable:   true,
		}),
	}
}

// Config returns the effective configuration.
func (g *Grid) Config() Config {
	return g.cfg
}

// Selection exposes the box-selection controller.
func (g *Grid) Selection() *selection.Controller {
	return g.selection
}

// Drag exposes the drag-session coordinator.
func (g *Grid) Drag() *dragsession.Coordinator {
	return g.drag
}

// Flip exposes the reflow animator.
func (g *Grid) Flip() *flip.Animator {
	return g.flip
}

// --- Items & Layout ---

// SetItems replaces the ordered item list and reports whether the rendered
// range changed.
func (g *Grid) SetItems(items []grid.Item) bool {
	g.items = items
	g.selection.SetItems(items)
	g.drag.SetItems(items)
	changed := g.window.SetCount(len(items))
	if g.window.Params().ScrollOffset != g.window.ClampScroll() {
		changed = true
	}
	return changed
}

// Items returns the ordered item list.
func (g *Grid) Items() []grid.Item {
	return g.items
}

// Layout updates the container size and reports whether the rendered range
// changed.
func (g *Grid) Layout(width, height float64) bool {
	changed := g.window.Resize(width, height)
	g.selection.SetColumns(g.window.Range().Columns)
	return changed
}

// Scroll updates the scroll offset and reports whether the rendered range
// changed.
func (g *Grid) Scroll(offset float64) bool {
	return g.window.Scroll(offset)
}

// ScrollOffset returns the offset the current range was computed for.
func (g *Grid) ScrollOffset() float64 {
	return g.window.Params().ScrollOffset
}

// Range returns the current virtual range.
func (g *Grid) Range() virtual.Range {
	return g.window.Range()
}

// Rendered returns the items inside the current virtual range.
func (g *Grid) Rendered() []grid.Item {
	r := g.window.Range()
	if r.Len() == 0 || r.End >= len(g.items) {
		return nil
	}
	return g.items[r.Start : r.End+1]
}

// --- Input ---

// PointerDown routes a press over the container.
func (g *Grid) PointerDown(ev grid.PointerEvent) {
	g.selection.PointerDown(ev)
}

// KeyDown routes a key and scrolls the focused item into view. It reports
// whether the key was consumed.
func (g *Grid) KeyDown(key grid.KeyCode, mods grid.Modifiers) bool {
	if !g.selection.KeyDown(key, mods) {
		return false
	}
	g.revealFocus()
	return true
}

func (g *Grid) revealFocus() {
	focus := g.selection.Focus()
	if focus < 0 {
		return
	}
	p := g.window.Params()
	r := g.window.Range()
	next := virtual.ScrollToIndex(focus, r.Columns, p.RowHeight, p.ScrollOffset, p.ContainerHeight)
	if next == p.ScrollOffset {
		return
	}
	g.window.Scroll(next)
	if sp, ok := g.render.(grid.ScrollPort); ok {
		sp.SetScrollOffset(geom.Point{Y: next})
	}
}

// --- Reflow ---

// Capture snapshots the rendered tiles right before the host mutates the
// item list.
func (g *Grid) Capture() {
	g.flip.Capture(keys(g.Rendered()))
}

// Reflow animates the rendered tiles to their new positions. The whitelist
// is the rendered range capped at flip.MaxAnimated keys.
func (g *Grid) Reflow() error {
	rendered := keys(g.Rendered())
	limit := min(len(rendered), flip.MaxAnimated)
	whitelist := grid.NewSet(rendered[:limit]...)
	if err := g.flip.Animate(rendered, whitelist, g.cfg.flipOptions()); err != nil {
		g.log.Warn("reflow skipped", "keys", len(rendered), "err", err)
		return err
	}
	return nil
}

// Close ends every gesture, settles animations and tears down any session.
func (g *Grid) Close() {
	g.selection.Cancel()
	g.drag.Cancel()
	g.flip.Stop()
}

func keys(items []grid.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Key
	}
	return out
}
