package ui

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Magstic/J2ME-Launcher-sub001/internal/grid"
	"github.com/Magstic/J2ME-Launcher-sub001/internal/grid/dragsession"
)

func TestViewRendersGridAndStatus(t *testing.T) {
	app, _ := newTestApp(t, testGames())

	assert.Empty(t, NewApp(Options{Games: testGames()}).View())

	view := app.View()
	lines := strings.Split(view, "\n")
	assert.Len(t, lines, 30)
	for _, line := range lines {
		assert.LessOrEqual(t, lipgloss.Width(line), 88)
	}
	assert.Contains(t, view, "launchgrid")
	assert.Contains(t, view, "▸ RPG")
	assert.Contains(t, view, "Game 11")
	assert.Contains(t, view, "12 games")
	assert.Contains(t, view, "sort:title")
}

func TestViewShowsFocusedGameSummary(t *testing.T) {
	games := testGames()
	games[3].PlayCount = 1200
	app, clk := newTestApp(t, games)
	games[3].LastPlayed = clk.Now()

	app = send(app, key("end"))
	assert.Contains(t, app.View(), "Game 11: never played")

	app = send(app, LibraryReloadedMsg{Games: games})
	app = click(app, 3)
	assert.Contains(t, app.View(), "Game 03: played 1,200×")
}

func TestViewDrawsDragOverlay(t *testing.T) {
	app, _ := newTestApp(t, testGames())

	sx, sy := tileCenter(6)
	app = press(app, sx, sy, tea.MouseButtonLeft)
	app = motion(app, 40, 20)
	require.NotNil(t, app.host.overlay)

	// The tile keeps its slot and the card follows the pointer.
	view := app.View()
	assert.GreaterOrEqual(t, strings.Count(view, "Game 06"), 2)
}

func TestViewShowsHelpAndDialogs(t *testing.T) {
	app, _ := newTestApp(t, testGames())

	app = send(app, key("?"))
	assert.Contains(t, app.View(), "leave folder")
	app = send(app, key("?"))
	assert.False(t, app.helpOpen)

	app = send(app, key("/"))
	assert.Contains(t, app.View(), "Filter")
	app = send(app, key("esc"))

	app = send(app, key("m"))
	require.NotNil(t, app.menu)
	assert.Contains(t, app.View(), "Select all")
}

func TestViewEmptyLibrary(t *testing.T) {
	app, _ := newTestApp(t, nil)
	assert.Contains(t, app.View(), "No games yet.")
	assert.Contains(t, app.View(), "0 games")
}

func TestViewShowsLaunchFailure(t *testing.T) {
	app, _ := newTestApp(t, testGames())
	app = send(app, launchDoneMsg{id: "g03", err: fmt.Errorf("exit status 1")})

	out := app.View()
	assert.Contains(t, out, "Launch failed")
	assert.Contains(t, out, "Game 03: exit status 1")
	assert.Contains(t, out, "press any key")
}

func TestStatusStyleFollowsToastLevel(t *testing.T) {
	assert.Equal(t, SuccessStyle, toastStyle("success"))
	assert.Equal(t, WarningStyle, toastStyle("warning"))
	assert.Equal(t, ErrorStyle, toastStyle("error"))
	assert.Equal(t, InfoStyle, toastStyle("info"))

	app, _ := newTestApp(t, testGames())
	app = send(app, key("end"))
	app = send(app, key("enter"))
	require.NotNil(t, app.toast)

	want := WarningStyle.Render(app.toast.text)
	assert.Contains(t, app.renderStatus(), want)
}

func TestStatusShowsIncomingDragBanner(t *testing.T) {
	app, _ := newTestApp(t, testGames())
	app = send(app, IncomingSessionMsg{Session: &dragsession.Session{
		ID:    "s-1",
		Items: []dragsession.SessionItem{{Key: "g02", Kind: grid.KindTile.String()}},
	}})

	text := "incoming drag: 1 game from another window, press a on a folder"
	assert.Contains(t, app.renderStatus(), IncomingStyle.Render(text))
}
