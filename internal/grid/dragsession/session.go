package dragsession

import (
	"time"

	"github.com/Magstic/J2ME-Launcher-sub001/internal/grid"
)

// SessionItem is one dragged item as it travels to other windows.
type SessionItem struct {
	Key     string `json:"key"`
	Kind    string `json:"kind"`
	Payload any    `json:"payload,omitempty"`
}

// Context identifies where a drag started.
type Context struct {
	WindowID  string `json:"window_id"`
	Container string `json:"container,omitempty"`
}

// Session is the immutable snapshot of a drag. It is built once at drag
// start and dropped at teardown.
type Session struct {
	ID        string        `json:"id"`
	Items     []SessionItem `json:"items"`
	Source    Context       `json:"source"`
	StartedAt time.Time     `json:"started_at"`
}

// Keys returns the dragged keys in order.
func (s Session) Keys() []string {
	out := make([]string, len(s.Items))
	for i, it := range s.Items {
		out[i] = it.Key
	}
	return out
}

// Has reports whether key is part of the session.
func (s Session) Has(key string) bool {
	for _, it := range s.Items {
		if it.Key == key {
			return true
		}
	}
	return false
}

// Transport carries session lifecycle notifications to other windows.
// Implementations must return promptly; delivery happens in the background.
type Transport interface {
	AnnounceSession(s Session)
	EndSession(id string)
}

func newSessionItems(keys []string, items map[string]grid.Item) []SessionItem {
	out := make([]SessionItem, 0, len(keys))
	for _, k := range keys {
		it := items[k]
		out = append(out, SessionItem{Key: k, Kind: it.Kind.String(), Payload: it.Payload})
	}
	return out
}
