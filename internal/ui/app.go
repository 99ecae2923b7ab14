// Package ui is the terminal launcher: a bubbletea program that hosts the
// grid engine over a cell canvas.
package ui

import (
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/Magstic/J2ME-Launcher-sub001/internal/config"
	"github.com/Magstic/J2ME-Launcher-sub001/internal/grid"
	"github.com/Magstic/J2ME-Launcher-sub001/internal/grid/dragsession"
	"github.com/Magstic/J2ME-Launcher-sub001/internal/grid/engine"
	"github.com/Magstic/J2ME-Launcher-sub001/internal/grid/geom"
	"github.com/Magstic/J2ME-Launcher-sub001/internal/grid/virtual"
	"github.com/Magstic/J2ME-Launcher-sub001/internal/library"
	"github.com/Magstic/J2ME-Launcher-sub001/internal/relay"
	"github.com/Magstic/J2ME-Launcher-sub001/internal/ui/components"
)

const (
	headerRows = 1
	statusRows = 2
	toastTTL   = 3 * time.Second
)

// --- Messages ---

// LibraryReloadedMsg carries the library after it changed on disk.
type LibraryReloadedMsg struct {
	Games []library.Game
}

// IncomingSessionMsg reports a drag started in another window. A nil
// session means it ended.
type IncomingSessionMsg struct {
	Session *dragsession.Session
}

type activateMsg struct{ item grid.Item }
type contextMenuMsg struct {
	item     grid.Item
	selected []string
}
type blankMenuMsg struct{}
type dropMsg struct {
	target string
	keys   []string
}
type launchDoneMsg struct {
	id  string
	err error
}
type relayDoneMsg struct {
	text string
	err  error
}
type clearToastMsg struct{ seq int }

type appToast struct {
	level string
	text  string
	seq   int
}

type menuEntry struct {
	label string
	run   func(App) (App, tea.Cmd)
}

type menuState struct {
	title   string
	entries []menuEntry
	index   int
}

type failureState struct {
	title   string
	message string
}

type confirmState struct {
	title   string
	message string
	onYes   func(App) (App, tea.Cmd)
}

// Options configure NewApp.
type Options struct {
	Config      *config.Config
	LibraryPath string
	Games       []library.Game
	// Transport announces drags to other windows; nil keeps drags local.
	Transport dragsession.Transport
	Relay     *relay.Client
	WindowID  string
	Now       func() time.Time
}

// --- App Model ---

// App is the root TUI model.
type App struct {
	cfg      *config.Config
	libPath  string
	games    []library.Game
	byID     map[string]library.Game
	visible  []library.Game
	folder   string
	query    string
	sort     library.SortOrder
	windowID string

	width      int
	height     int
	gridHeight int

	filtering bool
	helpOpen  bool
	menu      *menuState
	confirm   *confirmState
	failure   *failureState
	toast     *appToast
	toastSeq  int
	incoming  *dragsession.Session

	host  *host
	store *grid.SelectionStore
	grid  *engine.Grid
	relay *relay.Client
	log   *slog.Logger
}

// NewApp creates the root application model.
func NewApp(opts Options) App {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	h := newHost(opts.Now)
	store := grid.NewSelectionStore()
	log := slog.Default().With("component", "ui", "window", opts.WindowID)

	var g *engine.Grid
	callbacks := grid.Callbacks{
		OnItemActivate: func(it grid.Item) error {
			h.emit(activateMsg{item: it})
			return nil
		},
		OnItemContextMenu: func(it grid.Item, selected []string) error {
			h.emit(contextMenuMsg{item: it, selected: selected})
			return nil
		},
		OnBlankContextMenu: func() error {
			h.emit(blankMenuMsg{})
			return nil
		},
		OnDropOnContainer: func(target string) error {
			s, ok := g.Drag().Session()
			if !ok {
				return dragsession.ErrNoSession
			}
			h.emit(dropMsg{target: target, keys: s.Keys()})
			return nil
		},
	}
	g = engine.New(engine.Options{
		Config:    cfg.Grid,
		Host:      store,
		Render:    h,
		Input:     h,
		Scheduler: h,
		Callbacks: callbacks,
		Transport: opts.Transport,
		Source:    dragsession.Context{WindowID: opts.WindowID},
		Logger:    log,
	})
	h.scrollTo = func(y float64) float64 {
		r := g.Range()
		limit := virtual.MaxScroll(len(g.Items()), r.Columns, g.Config().RowHeight, float64(h.height))
		y = min(max(y, 0), max(limit, 0))
		g.Scroll(y)
		return y
	}

	a := App{
		cfg:      cfg,
		libPath:  opts.LibraryPath,
		sort:     library.SortTitle,
		windowID: opts.WindowID,
		host:     h,
		store:    store,
		grid:     g,
		relay:    opts.Relay,
		log:      log,
	}
	a.setGames(opts.Games)
	a.refresh(false)
	return a
}

func (a App) Init() tea.Cmd {
	return nil
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.gridHeight = max(msg.Height-headerRows-statusRows, 1)
		a.grid.Layout(float64(a.width), float64(a.gridHeight))
		a.relayout()
		return a, a.host.frameCmd()

	case frameMsg:
		a.host.frameArmed = false
		a.host.pump(a.host.now())
		return a.afterEngine()

	case tea.MouseMsg:
		return a.handleMouse(msg)

	case tea.BlurMsg:
		a.host.blur()
		return a.afterEngine()

	case tea.KeyMsg:
		return a.handleKey(msg)

	case LibraryReloadedMsg:
		a.setGames(msg.Games)
		a.refresh(true)
		return a, a.host.frameCmd()

	case IncomingSessionMsg:
		a.incoming = msg.Session
		return a, nil

	case launchDoneMsg:
		if msg.err != nil {
			a.log.Error("launch failed", "id", msg.id, "err", msg.err)
			a.failure = &failureState{
				title:   "Launch failed",
				message: fmt.Sprintf("%s: %v", a.byID[msg.id].Title, msg.err),
			}
			return a, nil
		}
		return a.markPlayed(msg.id)

	case relayDoneMsg:
		if msg.err != nil {
			return a, a.setToast("warning", fmt.Sprintf("relay: %v", msg.err))
		}
		if msg.text != "" {
			return a, a.setToast("info", msg.text)
		}
		return a, nil

	case clearToastMsg:
		if a.toast != nil && a.toast.seq == msg.seq {
			a.toast = nil
		}
		return a, nil
	}
	return a, nil
}

// afterEngine relayouts, handles callback effects and arms the next frame.
func (a App) afterEngine() (tea.Model, tea.Cmd) {
	a.relayout()
	var cmds []tea.Cmd
	for _, eff := range a.host.drain() {
		var cmd tea.Cmd
		a, cmd = a.handleEffect(eff)
		cmds = append(cmds, cmd)
	}
	cmds = append(cmds, a.host.frameCmd())
	return a, tea.Batch(cmds...)
}

func (a App) handleEffect(msg tea.Msg) (App, tea.Cmd) {
	switch msg := msg.(type) {
	case activateMsg:
		return a.activate(msg.item)
	case contextMenuMsg:
		a.menu = a.itemMenu(msg.item, msg.selected)
	case blankMenuMsg:
		a.menu = a.blankMenu()
	case dropMsg:
		target := a.byID[msg.target]
		keys := msg.keys
		a.confirm = &confirmState{
			title:   "Move to folder",
			message: fmt.Sprintf("Move %s into %s?", pluralGames(len(keys)), target.Title),
			onYes: func(a App) (App, tea.Cmd) {
				return a.moveInto(target.ID, keys)
			},
		}
	}
	return a, nil
}

// --- Input ---

func (a App) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if a.menu != nil || a.confirm != nil || a.failure != nil || a.helpOpen || a.filtering {
		return a, nil
	}

	gy := msg.Y - headerRows
	inside := msg.X >= 0 && msg.X < a.width && gy >= 0 && gy < a.gridHeight
	pos := geom.Point{X: float64(msg.X) + 0.5, Y: float64(gy) + 0.5}
	ev := grid.PointerEvent{Pos: pos, Mods: mouseMods(msg), Time: a.host.now()}
	if inside {
		ev.Target = a.host.hit(pos)
	}

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		a.scrollBy(-a.grid.Config().RowHeight / 2)
	case msg.Button == tea.MouseButtonWheelDown:
		a.scrollBy(a.grid.Config().RowHeight / 2)
	case msg.Action == tea.MouseActionMotion:
		a.host.track(inside, pos)
		a.host.move(ev)
	case msg.Action == tea.MouseActionPress:
		b, ok := mouseButton(msg.Button)
		if !ok || !inside {
			return a, nil
		}
		ev.Button = b
		a.host.track(true, pos)
		a.grid.PointerDown(ev)
	case msg.Action == tea.MouseActionRelease:
		a.host.up(ev)
	}
	return a.afterEngine()
}

func (a *App) scrollBy(delta float64) {
	a.host.SetScrollOffset(geom.Point{Y: a.grid.ScrollOffset() + delta})
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	vim := a.cfg.VimKeys
	if a.failure != nil {
		a.failure = nil
		return a, nil
	}
	if a.confirm != nil {
		switch {
		case isKey(msg, "y"):
			onYes := a.confirm.onYes
			a.confirm = nil
			return onYes(a)
		case isKey(msg, "n"), isBack(msg):
			a.confirm = nil
		}
		return a, nil
	}
	if a.menu != nil {
		return a.handleMenuKey(msg)
	}
	if a.helpOpen {
		if isBack(msg) || isKey(msg, "?") {
			a.helpOpen = false
		}
		return a, nil
	}
	if a.filtering {
		return a.handleFilterKey(msg)
	}

	// Escape with nothing selected leaves the open folder.
	if isBack(msg) && a.folder != "" && !a.grid.Selection().Active() && a.store.Selection().Len() == 0 {
		a.openFolder("")
		return a, a.host.frameCmd()
	}
	if key, mods, ok := gridKey(msg, vim); ok && a.grid.KeyDown(key, mods) {
		return a.afterEngine()
	}

	switch {
	case isQuit(msg):
		a.grid.Close()
		return a, tea.Quit
	case isKey(msg, "?"):
		a.helpOpen = true
	case isKey(msg, "/"):
		a.filtering = true
	case isKey(msg, "s"):
		a.sort = library.NextSort(a.sort)
		a.refresh(true)
	case isKey(msg, "m"):
		a.menu = a.keyboardMenu()
	case isKey(msg, "a"):
		return a.acceptIncoming()
	case isKey(msg, "r"):
		return a.reload()
	case isKey(msg, "backspace"), isBack(msg):
		if a.folder != "" {
			a.openFolder("")
		}
	}
	return a, a.host.frameCmd()
}

func (a App) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case isEnter(msg):
		a.filtering = false
		return a, nil
	case isBack(msg):
		a.filtering = false
		a.query = ""
	case isKey(msg, "backspace"):
		if r := []rune(a.query); len(r) > 0 {
			a.query = string(r[:len(r)-1])
		}
	case msg.Type == tea.KeySpace:
		a.query += " "
	case msg.Type == tea.KeyRunes:
		a.query += string(msg.Runes)
	default:
		return a, nil
	}
	a.refresh(true)
	return a, a.host.frameCmd()
}

func (a App) handleMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m := *a.menu
	switch {
	case isBack(msg):
		a.menu = nil
	case isUp(msg, a.cfg.VimKeys):
		m.index = (m.index - 1 + len(m.entries)) % len(m.entries)
		a.menu = &m
	case isDown(msg, a.cfg.VimKeys):
		m.index = (m.index + 1) % len(m.entries)
		a.menu = &m
	case isEnter(msg):
		a.menu = nil
		return m.entries[m.index].run(a)
	}
	return a, nil
}

// --- Library ---

func (a *App) setGames(games []library.Game) {
	a.games = games
	a.byID = make(map[string]library.Game, len(games))
	for _, g := range games {
		a.byID[g.ID] = g
	}
	if a.folder != "" {
		if f, ok := a.byID[a.folder]; !ok || !f.IsFolder() {
			a.folder = ""
		}
	}
}

func (a App) shown() []library.Game {
	var base []library.Game
	if a.folder == "" {
		base = library.TopLevel(a.games)
	} else {
		for _, id := range a.byID[a.folder].Members {
			if g, ok := a.byID[id]; ok {
				base = append(base, g)
			}
		}
	}
	if a.query != "" {
		return library.Filter(base, a.query)
	}
	return library.Sort(base, a.sort)
}

// refresh recomputes the visible games and hands them to the engine. With
// animate set the rendered tiles glide to their new slots.
func (a *App) refresh(animate bool) {
	next := a.shown()
	if animate {
		a.grid.Capture()
	}
	a.visible = next
	a.grid.SetItems(library.Items(next))

	keep := grid.NewSet()
	for _, g := range next {
		keep.Add(g.ID)
	}
	a.store.Retain(keep)

	a.relayout()
	if animate {
		a.grid.Reflow()
		// Reflow may restore the captured scroll offset.
		a.relayout()
	}
}

func (a *App) relayout() {
	a.host.layout(a.grid.Items(), a.grid.Range(), a.grid.ScrollOffset(), a.width, a.gridHeight)
}

func (a *App) openFolder(id string) {
	a.grid.Close()
	a.folder = id
	a.query = ""
	a.store.CommitSelection(grid.NewSet())
	a.host.SetScrollOffset(geom.Point{})
	a.refresh(false)
}

func (a App) activate(it grid.Item) (App, tea.Cmd) {
	g, ok := it.Payload.(library.Game)
	if !ok {
		return a, nil
	}
	if g.IsFolder() {
		a.openFolder(g.ID)
		return a, nil
	}
	if len(a.cfg.Library.Emulator) == 0 {
		return a, a.setToast("warning", "no emulator configured (library.emulator)")
	}
	args := append(append([]string(nil), a.cfg.Library.Emulator[1:]...), g.Path)
	cmd := exec.Command(a.cfg.Library.Emulator[0], args...)
	a.log.Info("launching game", "id", g.ID, "path", g.Path)
	id := g.ID
	return a, tea.ExecProcess(cmd, func(err error) tea.Msg { return launchDoneMsg{id: id, err: err} })
}

func (a App) markPlayed(id string) (App, tea.Cmd) {
	games := library.MarkPlayed(a.games, id, a.host.now())
	if err := a.save(games); err != nil {
		return a, a.setToast("error", err.Error())
	}
	a.setGames(games)
	a.refresh(a.sort != library.SortTitle)
	g := a.byID[id]
	return a, tea.Batch(a.host.frameCmd(), a.setToast("success", fmt.Sprintf("%s played %s times", g.Title, humanize.Comma(int64(g.PlayCount)))))
}

func (a App) moveInto(folder string, keys []string) (App, tea.Cmd) {
	games, moved, err := library.MoveInto(a.games, folder, keys)
	if err != nil {
		return a, a.setToast("error", err.Error())
	}
	if moved == 0 {
		return a, a.setToast("info", "nothing to move")
	}
	if err := a.save(games); err != nil {
		return a, a.setToast("error", err.Error())
	}
	a.setGames(games)
	a.refresh(true)
	return a, tea.Batch(a.host.frameCmd(), a.setToast("success", fmt.Sprintf("moved %s into %s", pluralGames(moved), a.byID[folder].Title)))
}

func (a App) save(games []library.Game) error {
	if a.libPath == "" {
		return nil
	}
	if err := library.Save(a.libPath, games); err != nil {
		return fmt.Errorf("save library: %w", err)
	}
	return nil
}

func (a App) reload() (tea.Model, tea.Cmd) {
	if a.libPath == "" {
		return a, nil
	}
	games, err := library.Load(a.libPath)
	if err != nil {
		return a, a.setToast("error", err.Error())
	}
	a.setGames(games)
	a.refresh(true)
	return a, tea.Batch(a.host.frameCmd(), a.setToast("info", "library reloaded"))
}

// acceptIncoming drops another window's drag into the focused folder.
func (a App) acceptIncoming() (tea.Model, tea.Cmd) {
	if a.incoming == nil {
		return a, nil
	}
	focus := a.focused()
	if focus == nil || !focus.IsFolder() {
		return a, a.setToast("warning", "focus a folder to accept the drag")
	}
	s := *a.incoming
	a.incoming = nil
	a, cmd := a.moveInto(focus.ID, s.Keys())

	client := a.relay
	if client == nil {
		return a, cmd
	}
	accept := relay.Acceptance{TargetWindow: a.windowID, TargetKey: focus.ID}
	return a, tea.Batch(cmd, func() tea.Msg {
		return relayDoneMsg{err: client.Accept(s.ID, accept)}
	})
}

func (a App) focused() *library.Game {
	i := a.grid.Selection().Focus()
	if i < 0 || i >= len(a.visible) {
		return nil
	}
	g := a.visible[i]
	return &g
}

// --- Menus ---

func (a App) itemMenu(it grid.Item, selected []string) *menuState {
	g, _ := it.Payload.(library.Game)
	title := g.Title
	if len(selected) > 1 {
		title = fmt.Sprintf("%d selected", len(selected))
	}
	open := "Launch"
	if g.IsFolder() {
		open = "Open folder"
	}
	entries := []menuEntry{{label: open, run: func(a App) (App, tea.Cmd) { return a.activate(it) }}}
	for _, f := range a.games {
		if !f.IsFolder() || f.ID == g.ID || f.ID == a.folder {
			continue
		}
		folder := f.ID
		keys := selected
		entries = append(entries, menuEntry{
			label: "Move to " + f.Title,
			run:   func(a App) (App, tea.Cmd) { return a.moveInto(folder, keys) },
		})
	}
	return &menuState{title: title, entries: entries}
}

func (a App) blankMenu() *menuState {
	entries := []menuEntry{
		{label: "Select all", run: func(a App) (App, tea.Cmd) {
			a.grid.KeyDown(grid.KeySelectAll, grid.ModCtrl)
			return a, nil
		}},
		{label: "Sort by " + string(library.NextSort(a.sort)), run: func(a App) (App, tea.Cmd) {
			a.sort = library.NextSort(a.sort)
			a.refresh(true)
			return a, a.host.frameCmd()
		}},
		{label: "Reload library", run: func(a App) (App, tea.Cmd) {
			m, cmd := a.reload()
			return m.(App), cmd
		}},
	}
	if a.folder != "" {
		entries = append(entries, menuEntry{label: "Back to library", run: func(a App) (App, tea.Cmd) {
			a.openFolder("")
			return a, nil
		}})
	}
	return &menuState{title: "Library", entries: entries}
}

// keyboardMenu opens the menu for the focused item the way a secondary click
// would, without collapsing a selection that contains it.
func (a App) keyboardMenu() *menuState {
	i := a.grid.Selection().Focus()
	items := a.grid.Items()
	if i < 0 || i >= len(items) {
		return a.blankMenu()
	}
	it := items[i]
	sel := a.store.Selection()
	if !sel.Has(it.Key) {
		sel = grid.NewSet(it.Key)
	}
	return a.itemMenu(it, sel.InOrder(items))
}

// --- Toast ---

func (a *App) setToast(level, text string) tea.Cmd {
	a.toastSeq++
	seq := a.toastSeq
	a.toast = &appToast{level: level, text: text, seq: seq}
	return tea.Tick(toastTTL, func(time.Time) tea.Msg { return clearToastMsg{seq: seq} })
}

// --- View ---

func (a App) View() string {
	if a.width == 0 || a.height == 0 {
		return ""
	}
	header := renderHeader(a.crumbs(), a.query, string(a.sort), a.width)

	body := a.renderGrid()
	if dialog := a.renderDialog(); dialog != "" {
		body = lipgloss.Place(a.width, a.gridHeight, lipgloss.Center, lipgloss.Center, dialog)
	}

	return header + "\n" + body + "\n" + a.renderStatus()
}

func (a App) crumbs() []string {
	out := []string{"Library"}
	if a.folder != "" {
		out = append(out, a.byID[a.folder].Title)
	}
	return out
}

func (a App) renderDialog() string {
	switch {
	case a.failure != nil:
		box := components.ErrorBox(a.failure.title, a.failure.message, a.width)
		return lipgloss.JoinVertical(lipgloss.Center, box, components.Muted("press any key"))
	case a.confirm != nil:
		return components.ConfirmDialog(a.confirm.title, a.confirm.message)
	case a.menu != nil:
		labels := make([]string, len(a.menu.entries))
		for i, e := range a.menu.entries {
			labels[i] = e.label
		}
		return components.MenuDialog(a.menu.title, labels, a.menu.index)
	case a.filtering:
		return components.InputDialog("Filter", a.query)
	case a.helpOpen:
		return components.Table("Keys", helpRows, a.width)
	}
	return ""
}

var helpRows = []components.TableRow{
	{Label: "click", Value: "select, ctrl/alt toggles, shift extends"},
	{Label: "drag", Value: "box select, or drag tiles onto a folder"},
	{Label: "arrows", Value: "move focus, shift extends"},
	{Label: "space / enter", Value: "toggle / launch"},
	{Label: "ctrl+a / esc", Value: "select all / clear"},
	{Label: "/ s m", Value: "filter, sort, menu"},
	{Label: "a", Value: "accept a drag from another window"},
	{Label: "backspace", Value: "leave folder"},
	{Label: "q", Value: "quit"},
}

func (a App) renderGrid() string {
	c := components.NewCanvas(a.width, a.gridHeight)
	h := a.host
	if len(a.visible) == 0 {
		msg := "No games yet."
		if a.query != "" {
			msg = "Nothing matches /" + a.query
		}
		c.Text(2, 1, msg, a.width-2, components.PaintTileFaded)
		return c.Render()
	}

	committed := a.store.Selection()
	focus := a.grid.Selection().Focus()
	focusKey := ""
	if items := a.grid.Items(); focus >= 0 && focus < len(items) {
		focusKey = items[focus].Key
	}

	// Moving tiles are drawn last so they pass over settled ones.
	var moving []string
	for _, key := range h.order {
		if _, ok := h.offsets[key]; ok {
			moving = append(moving, key)
			continue
		}
		a.drawTile(c, key, committed, focusKey)
	}
	for _, key := range moving {
		a.drawTile(c, key, committed, focusKey)
	}

	if h.box != nil {
		b := *h.box
		x, y := int(b.X), int(b.Y)
		w := int(b.X+b.W+0.5) - x
		hh := int(b.Y+b.H+0.5) - y
		components.DrawSelectionBox(c, x, y, w, hh, h.boxFading)
	}
	if h.overlay != nil {
		titles := make([]string, len(h.overlay.Layers))
		for i, l := range h.overlay.Layers {
			titles[i] = a.byID[l.Key].Title
		}
		components.DrawStack(c, int(h.overlayAt.X)+1, int(h.overlayAt.Y)+1, titles, h.overlay.Overflow)
	}
	return c.Render()
}

func (a App) drawTile(c *components.Canvas, key string, committed grid.Set, focusKey string) {
	h := a.host
	r := h.rects[key]
	off := h.offsets[key]
	g := a.byID[key]

	paint := components.PaintTile
	switch {
	case h.hasClass(key, grid.ClassDragging):
		paint = components.PaintTileDragging
	case h.hasClass(key, grid.ClassSelecting):
		paint = components.PaintTileSelecting
	case h.hasClass(key, grid.ClassDeselecting):
		paint = components.PaintTileDeselecting
	case committed.Has(key):
		paint = components.PaintTileSelected
	case h.opacity[key] > 0:
		paint = components.PaintTileFaded
	case key == focusKey:
		paint = components.PaintTileFocused
	}

	sub := g.Vendor
	if g.IsFolder() {
		sub = pluralGames(len(g.Members))
	}
	components.DrawTile(c, round(r.X+off.X), round(r.Y+off.Y), int(r.W), int(r.H), components.TileView{
		Title:    g.Title,
		Subtitle: sub,
		Folder:   g.IsFolder(),
		Focused:  key == focusKey,
		Paint:    paint,
	})
}

func (a App) renderStatus() string {
	summary, style := a.summary(), InfoStyle
	switch {
	case a.toast != nil:
		summary, style = a.toast.text, toastStyle(a.toast.level)
	case a.incoming != nil:
		summary = fmt.Sprintf("incoming drag: %s from another window, press a on a folder", pluralGames(len(a.incoming.Items)))
		style = IncomingStyle
	}
	hints := []string{
		components.Hint("/", "Filter"),
		components.Hint("s", "Sort"),
		components.Hint("m", "Menu"),
		components.Hint("?", "Keys"),
		components.Hint("q", "Quit"),
	}
	lines := strings.Split(components.StatusBar(summary, style, hints, a.width), "\n")
	for len(lines) < statusRows {
		lines = append(lines, "")
	}
	return strings.Join(lines[:statusRows], "\n")
}

func (a App) summary() string {
	parts := []string{pluralGames(len(a.visible))}
	if n := a.store.Selection().Len(); n > 0 {
		parts = append(parts, humanize.Comma(int64(n))+" selected")
	}
	if g := a.focused(); g != nil && !g.IsFolder() {
		played := "never played"
		if g.PlayCount > 0 {
			played = fmt.Sprintf("played %s×, %s", humanize.Comma(int64(g.PlayCount)), humanize.Time(g.LastPlayed))
		}
		parts = append(parts, g.Title+": "+played)
	}
	return strings.Join(parts, " · ")
}

func pluralGames(n int) string {
	if n == 1 {
		return "1 game"
	}
	return humanize.Comma(int64(n)) + " games"
}

func round(v float64) int {
	if v < 0 {
		return -int(-v + 0.5)
	}
	return int(v + 0.5)
}
