package relay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/Magstic/J2ME-Launcher-sub001/internal/grid/dragsession"
)

// DefaultSessionTTL drops sessions whose owner never ended them.
const DefaultSessionTTL = 30 * time.Second

type entry struct {
	session  dragsession.Session
	seen     time.Time
	accepted *Acceptance
}

// Store keeps live sessions in memory.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*entry
	order    []string
	ttl      time.Duration
	now      func() time.Time
}

// NewStore creates an empty store. ttl <= 0 uses DefaultSessionTTL.
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Store{sessions: make(map[string]*entry), ttl: ttl, now: time.Now}
}

// Put adds or replaces a session.
func (s *Store) Put(sess dragsession.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	s.prune(now)
	if _, ok := s.sessions[sess.ID]; !ok {
		s.order = append(s.order, sess.ID)
	}
	s.sessions[sess.ID] = &entry{session: sess, seen: now}
}

// Delete removes a session and reports whether it existed.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return false
	}
	delete(s.sessions, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// Active returns the newest session that has not been accepted or expired.
func (s *Store) Active() (dragsession.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prune(s.now())
	for i := len(s.order) - 1; i >= 0; i-- {
		e := s.sessions[s.order[i]]
		if e.accepted != nil {
			continue
		}
		return e.session, true
	}
	return dragsession.Session{}, false
}

// prune removes sessions older than the ttl. Callers hold s.mu.
func (s *Store) prune(now time.Time) {
	kept := s.order[:0]
	for _, id := range s.order {
		if now.Sub(s.sessions[id].seen) > s.ttl {
			delete(s.sessions, id)
			continue
		}
		kept = append(kept, id)
	}
	s.order = kept
}

// Accept records the drop target of a session.
func (s *Store) Accept(id string, a Acceptance) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.sessions[id]
	if !ok {
		return false
	}
	e.accepted = &a
	return true
}

// Acceptance returns the drop target recorded for id.
func (s *Store) Acceptance(id string) (Acceptance, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.sessions[id]
	if !ok || e.accepted == nil {
		return Acceptance{}, false
	}
	return *e.accepted, true
}

// --- HTTP ---

// Handler serves the relay API over store.
func Handler(store *Store) http.Handler {
	mux := http.NewServeMux()
	log := slog.With("component", "relay-server")

	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		writeData(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	mux.HandleFunc("POST /api/sessions", func(w http.ResponseWriter, r *http.Request) {
		var sess dragsession.Session
		if err := json.NewDecoder(r.Body).Decode(&sess); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_body", err.Error())
			return
		}
		if sess.ID == "" || len(sess.Items) == 0 {
			writeError(w, http.StatusBadRequest, "invalid_session", "id and items are required")
			return
		}
		store.Put(sess)
		log.Info("session announced", "id", sess.ID, "items", len(sess.Items), "window", sess.Source.WindowID)
		writeData(w, http.StatusCreated, sess)
	})

	mux.HandleFunc("GET /api/sessions/active", func(w http.ResponseWriter, r *http.Request) {
		sess, ok := store.Active()
		if !ok {
			writeError(w, http.StatusNotFound, "not_found", "no active session")
			return
		}
		writeData(w, http.StatusOK, sess)
	})

	mux.HandleFunc("DELETE /api/sessions/{id}", func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		if !store.Delete(id) {
			writeError(w, http.StatusNotFound, "not_found", fmt.Sprintf("session %s not found", id))
			return
		}
		log.Info("session ended", "id", id)
		writeData(w, http.StatusOK, map[string]string{"id": id})
	})

	mux.HandleFunc("POST /api/sessions/{id}/accept", func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		var a Acceptance
		if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_body", err.Error())
			return
		}
		if a.TargetWindow == "" {
			writeError(w, http.StatusBadRequest, "invalid_body", "target_window is required")
			return
		}
		if !store.Accept(id, a) {
			writeError(w, http.StatusNotFound, "not_found", fmt.Sprintf("session %s not found", id))
			return
		}
		log.Info("session accepted", "id", id, "window", a.TargetWindow, "target", a.TargetKey)
		writeData(w, http.StatusOK, a)
	})

	return mux
}

func writeData(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(envelope[any]{Data: data})
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(envelope[any]{Error: &apiError{Code: code, Message: message}})
}

// Serve runs the relay on addr until ctx is done.
func Serve(ctx context.Context, addr string, store *Store) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return ServeListener(ctx, ln, store)
}

// ServeListener runs the relay on ln until ctx is done.
func ServeListener(ctx context.Context, ln net.Listener, store *Store) error {
	srv := &http.Server{
		Handler:           Handler(store),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()
	slog.Info("relay listening", "addr", ln.Addr().String())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown relay: %w", err)
		}
		return nil
	}
}
