package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Magstic/J2ME-Launcher-sub001/internal/grid"
)

// --- Key Constants ---

func isKey(msg tea.KeyMsg, keys ...string) bool {
	for _, k := range keys {
		if msg.String() == k {
			return true
		}
	}
	return false
}

func isQuit(msg tea.KeyMsg) bool {
	return isKey(msg, "q", "ctrl+c")
}

func isBack(msg tea.KeyMsg) bool {
	if msg.Type == tea.KeyEsc {
		return true
	}
	return isKey(msg, "esc", "escape", "ctrl+[")
}

func isUp(msg tea.KeyMsg, vim bool) bool {
	return isKey(msg, "up") || (vim && isKey(msg, "k"))
}

func isDown(msg tea.KeyMsg, vim bool) bool {
	return isKey(msg, "down") || (vim && isKey(msg, "j"))
}

func isEnter(msg tea.KeyMsg) bool {
	return isKey(msg, "enter", "return")
}

// gridKey maps a key press to the engine's keyboard vocabulary. Vim keys
// only apply when enabled so plain letters stay free for commands.
func gridKey(msg tea.KeyMsg, vim bool) (grid.KeyCode, grid.Modifiers, bool) {
	switch msg.String() {
	case "left":
		return grid.KeyLeft, 0, true
	case "right":
		return grid.KeyRight, 0, true
	case "up":
		return grid.KeyUp, 0, true
	case "down":
		return grid.KeyDown, 0, true
	case "shift+left":
		return grid.KeyLeft, grid.ModShift, true
	case "shift+right":
		return grid.KeyRight, grid.ModShift, true
	case "shift+up":
		return grid.KeyUp, grid.ModShift, true
	case "shift+down":
		return grid.KeyDown, grid.ModShift, true
	case "ctrl+left":
		return grid.KeyLeft, grid.ModCtrl, true
	case "ctrl+right":
		return grid.KeyRight, grid.ModCtrl, true
	case "ctrl+up":
		return grid.KeyUp, grid.ModCtrl, true
	case "ctrl+down":
		return grid.KeyDown, grid.ModCtrl, true
	case "home":
		return grid.KeyHome, 0, true
	case "end":
		return grid.KeyEnd, 0, true
	case "shift+home":
		return grid.KeyHome, grid.ModShift, true
	case "shift+end":
		return grid.KeyEnd, grid.ModShift, true
	case " ":
		return grid.KeySpace, 0, true
	case "enter":
		return grid.KeyEnter, 0, true
	case "esc":
		return grid.KeyEscape, 0, true
	case "ctrl+a":
		return grid.KeySelectAll, grid.ModCtrl, true
	}
	if vim {
		switch msg.String() {
		case "h":
			return grid.KeyLeft, 0, true
		case "l":
			return grid.KeyRight, 0, true
		case "k":
			return grid.KeyUp, 0, true
		case "j":
			return grid.KeyDown, 0, true
		case "H":
			return grid.KeyLeft, grid.ModShift, true
		case "L":
			return grid.KeyRight, grid.ModShift, true
		case "K":
			return grid.KeyUp, grid.ModShift, true
		case "J":
			return grid.KeyDown, grid.ModShift, true
		}
	}
	return grid.KeyUnknown, 0, false
}

// mouseMods reads the modifier state of a mouse event. Terminals report Alt
// where desktop platforms would use Cmd, so Alt toggles like Ctrl.
func mouseMods(msg tea.MouseMsg) grid.Modifiers {
	var m grid.Modifiers
	if msg.Shift {
		m |= grid.ModShift
	}
	if msg.Ctrl {
		m |= grid.ModCtrl
	}
	if msg.Alt {
		m |= grid.ModMeta
	}
	return m
}

func mouseButton(b tea.MouseButton) (grid.Button, bool) {
	switch b {
	case tea.MouseButtonLeft:
		return grid.ButtonPrimary, true
	case tea.MouseButtonRight:
		return grid.ButtonSecondary, true
	case tea.MouseButtonMiddle:
		return grid.ButtonMiddle, true
	}
	return 0, false
}
