package grid

import (
	"fmt"
	"io"
	"log/slog"
)

// Callbacks are the host hooks the engine invokes. Every field is optional.
type Callbacks struct {
	OnItemActivate     func(item Item) error
	OnItemContextMenu  func(item Item, selected []string) error
	OnBlankContextMenu func() error
	OnDragStart        func(item Item) error
	OnDragEnd          func() error
	OnDropOnContainer  func(targetKey string) error
}

// SafeCall runs a host callback. Errors and panics are logged and swallowed
// so a failing host never leaves a gesture half finished.
func SafeCall(log *slog.Logger, name string, fn func() error) (err error) {
	if fn == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s panicked: %v", name, r)
			Logger(log).Error("host callback panicked", "callback", name, "panic", r)
		}
	}()
	if err = fn(); err != nil {
		Logger(log).Error("host callback failed", "callback", name, "err", err)
	}
	return err
}

// Logger returns l, or a logger that discards everything when l is nil.
func Logger(l *slog.Logger) *slog.Logger {
	if l != nil {
		return l
	}
	return discard
}

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))
