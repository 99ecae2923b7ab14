package grid

import (
	"time"

	"github.com/Magstic/J2ME-Launcher-sub001/internal/grid/geom"
)

// Button identifies a pointer button.
type Button int

const (
	ButtonPrimary Button = iota
	ButtonSecondary
	ButtonMiddle
)

// Modifiers is a bit set of held modifier keys.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModMeta
	ModAlt
)

// Shift reports whether Shift is held.
func (m Modifiers) Shift() bool { return m&ModShift != 0 }

// Toggle reports whether the platform toggle modifier (Ctrl or Cmd) is held.
func (m Modifiers) Toggle() bool { return m&(ModCtrl|ModMeta) != 0 }

// PointerEvent is a pointer press, move or release. Target is the key of the
// item under the pointer, empty over blank space.
type PointerEvent struct {
	Pos    geom.Point
	Button Button
	Mods   Modifiers
	Target string
	Time   time.Time
}

// KeyCode is a navigation key understood by the keyboard fallback.
type KeyCode int

const (
	KeyUnknown KeyCode = iota
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
	KeySpace
	KeyEnter
	KeyEscape
	KeySelectAll
)
