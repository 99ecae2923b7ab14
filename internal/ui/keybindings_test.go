package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/Magstic/J2ME-Launcher-sub001/internal/grid"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestIsQuit(t *testing.T) {
	assert.True(t, isQuit(tea.KeyMsg{Type: tea.KeyCtrlC}))
	assert.True(t, isQuit(runes("q")))
	assert.False(t, isQuit(runes("a")))
}

func TestIsEnter(t *testing.T) {
	assert.True(t, isEnter(tea.KeyMsg{Type: tea.KeyEnter}))
	assert.False(t, isEnter(tea.KeyMsg{Type: tea.KeySpace}))
}

func TestIsBack(t *testing.T) {
	assert.True(t, isBack(tea.KeyMsg{Type: tea.KeyEsc}))
	assert.False(t, isBack(tea.KeyMsg{Type: tea.KeyEnter}))
}

func TestIsUpDownHonorVimSetting(t *testing.T) {
	assert.True(t, isDown(tea.KeyMsg{Type: tea.KeyDown}, false))
	assert.False(t, isDown(runes("j"), false))
	assert.True(t, isDown(runes("j"), true))
	assert.True(t, isUp(runes("k"), true))
	assert.False(t, isUp(tea.KeyMsg{Type: tea.KeyDown}, true))
}

func TestGridKeyMapping(t *testing.T) {
	cases := []struct {
		msg  tea.KeyMsg
		vim  bool
		key  grid.KeyCode
		mods grid.Modifiers
	}{
		{tea.KeyMsg{Type: tea.KeyLeft}, false, grid.KeyLeft, 0},
		{tea.KeyMsg{Type: tea.KeyShiftDown}, false, grid.KeyDown, grid.ModShift},
		{tea.KeyMsg{Type: tea.KeyCtrlRight}, false, grid.KeyRight, grid.ModCtrl},
		{tea.KeyMsg{Type: tea.KeyEnd}, false, grid.KeyEnd, 0},
		{tea.KeyMsg{Type: tea.KeySpace}, false, grid.KeySpace, 0},
		{tea.KeyMsg{Type: tea.KeyEsc}, false, grid.KeyEscape, 0},
		{tea.KeyMsg{Type: tea.KeyCtrlA}, false, grid.KeySelectAll, grid.ModCtrl},
		{runes("l"), true, grid.KeyRight, 0},
		{runes("K"), true, grid.KeyUp, grid.ModShift},
	}
	for _, tc := range cases {
		key, mods, ok := gridKey(tc.msg, tc.vim)
		assert.True(t, ok, tc.msg.String())
		assert.Equal(t, tc.key, key, tc.msg.String())
		assert.Equal(t, tc.mods, mods, tc.msg.String())
	}

	_, _, ok := gridKey(runes("l"), false)
	assert.False(t, ok, "vim keys are off by default")
	_, _, ok = gridKey(runes("/"), true)
	assert.False(t, ok)
}

func TestMouseModsAndButtons(t *testing.T) {
	m := mouseMods(tea.MouseMsg{Shift: true, Alt: true})
	assert.True(t, m.Shift())
	assert.True(t, m.Toggle())

	b, ok := mouseButton(tea.MouseButtonRight)
	assert.True(t, ok)
	assert.Equal(t, grid.ButtonSecondary, b)
	_, ok = mouseButton(tea.MouseButtonWheelUp)
	assert.False(t, ok)
}
