package relay

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Magstic/J2ME-Launcher-sub001/internal/grid/dragsession"
)

const queueSize = 32

// Transport delivers session lifecycle calls to the relay in the background.
// Calls are sent in order by a single worker started with Run.
type Transport struct {
	client *Client
	queue  chan func() error
	log    *slog.Logger
}

var _ dragsession.Transport = (*Transport)(nil)

// NewTransport wraps client.
func NewTransport(client *Client) *Transport {
	return &Transport{
		client: client,
		queue:  make(chan func() error, queueSize),
		log:    slog.With("component", "relay-transport"),
	}
}

// AnnounceSession queues the announcement and returns immediately.
func (t *Transport) AnnounceSession(s dragsession.Session) {
	t.enqueue("announce", func() error { return t.client.Announce(s) })
}

// EndSession queues the removal and returns immediately.
func (t *Transport) EndSession(id string) {
	t.enqueue("end", func() error { return t.client.End(id) })
}

func (t *Transport) enqueue(op string, fn func() error) {
	select {
	case t.queue <- fn:
	default:
		t.log.Warn("relay queue full, dropping call", "op", op)
	}
}

// Run sends queued calls until ctx is done. Failures are logged; the relay
// being down never affects local drags.
func (t *Transport) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case fn := <-t.queue:
			if err := fn(); err != nil {
				t.log.Debug("relay call failed", "err", err)
			}
		}
	}
}

// Watch polls the relay and calls fn whenever the active foreign session
// changes. A nil session means none is active. Sessions started by windowID
// are ignored.
func Watch(ctx context.Context, c *Client, windowID string, interval time.Duration, fn func(*dragsession.Session)) error {
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := ""
	log := slog.With("component", "relay-watch")
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		s, err := c.Active()
		switch {
		case errors.Is(err, ErrNoActiveSession):
			s = nil
		case err != nil:
			log.Debug("poll relay failed", "err", err)
			continue
		}
		if s != nil && s.Source.WindowID == windowID {
			s = nil
		}

		id := ""
		if s != nil {
			id = s.ID
		}
		if id == last {
			continue
		}
		last = id
		fn(s)
	}
}
