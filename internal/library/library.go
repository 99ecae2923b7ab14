// Package library stores the launcher's game list on disk and adapts it to
// grid items.
package library

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Magstic/J2ME-Launcher-sub001/internal/grid"
)

// Kinds a library entry can have.
const (
	KindGame   = "game"
	KindFolder = "folder"
)

// ErrNotFolder is returned when a move targets something other than a folder.
var ErrNotFolder = errors.New("target is not a folder")

// Game is one library entry. Folders group other entries by ID.
type Game struct {
	ID         string    `yaml:"id"`
	Title      string    `yaml:"title"`
	Vendor     string    `yaml:"vendor,omitempty"`
	Path       string    `yaml:"path,omitempty"`
	Kind       string    `yaml:"kind,omitempty"`
	Members    []string  `yaml:"members,omitempty"`
	AddedAt    time.Time `yaml:"added_at,omitempty"`
	LastPlayed time.Time `yaml:"last_played,omitempty"`
	PlayCount  int       `yaml:"play_count,omitempty"`
}

// IsFolder reports whether the entry groups other entries.
func (g Game) IsFolder() bool {
	return g.Kind == KindFolder
}

type document struct {
	Games []Game `yaml:"games"`
}

// Load reads the library file. A missing file is an empty library.
func Load(path string) ([]Game, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read library: %w", err)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse library: %w", err)
	}

	seen := make(map[string]bool, len(doc.Games))
	for i, g := range doc.Games {
		if strings.TrimSpace(g.ID) == "" {
			return nil, fmt.Errorf("library entry %d has no id", i)
		}
		if seen[g.ID] {
			return nil, fmt.Errorf("duplicate library id %q", g.ID)
		}
		seen[g.ID] = true
	}
	return doc.Games, nil
}

// Save writes the library atomically through a temp file in the same dir.
func Save(path string, games []Game) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("create library dir: %w", err)
	}

	data, err := yaml.Marshal(document{Games: games})
	if err != nil {
		return fmt.Errorf("marshal library: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".library-*.yaml")
	if err != nil {
		return fmt.Errorf("create temp library: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write library: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close library: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0600); err != nil {
		return fmt.Errorf("chmod library: %w", err)
	}
	return os.Rename(tmp.Name(), path)
}

// --- Grid Adapter ---

// Items converts games to grid items in order. The payload is the Game.
func Items(games []Game) []grid.Item {
	out := make([]grid.Item, len(games))
	for i, g := range games {
		out[i] = grid.Item{Key: g.ID, Kind: grid.ParseKind(g.Kind), Payload: g}
	}
	return out
}

// TopLevel returns the entries that are not members of any folder.
func TopLevel(games []Game) []Game {
	nested := make(map[string]bool)
	for _, g := range games {
		if g.IsFolder() {
			for _, m := range g.Members {
				nested[m] = true
			}
		}
	}
	out := make([]Game, 0, len(games))
	for _, g := range games {
		if !nested[g.ID] {
			out = append(out, g)
		}
	}
	return out
}

// Find returns the entry with id.
func Find(games []Game, id string) (Game, bool) {
	for _, g := range games {
		if g.ID == id {
			return g, true
		}
	}
	return Game{}, false
}

// MoveInto adds keys to folder's members, skipping the folder itself and
// keys already inside. It returns the updated list and the number moved.
func MoveInto(games []Game, folder string, keys []string) ([]Game, int, error) {
	idx := slices.IndexFunc(games, func(g Game) bool { return g.ID == folder })
	if idx < 0 {
		return games, 0, fmt.Errorf("folder %q not found", folder)
	}
	if !games[idx].IsFolder() {
		return games, 0, fmt.Errorf("%q: %w", folder, ErrNotFolder)
	}

	out := slices.Clone(games)
	target := out[idx]
	target.Members = slices.Clone(target.Members)
	moved := 0
	for _, k := range keys {
		if k == folder || slices.Contains(target.Members, k) {
			continue
		}
		if _, ok := Find(games, k); !ok {
			continue
		}
		// Leave any other folder first.
		for i := range out {
			if i != idx && out[i].IsFolder() && slices.Contains(out[i].Members, k) {
				out[i].Members = slices.DeleteFunc(slices.Clone(out[i].Members), func(m string) bool { return m == k })
			}
		}
		target.Members = append(target.Members, k)
		moved++
	}
	out[idx] = target
	return out, moved, nil
}

// MarkPlayed bumps the play counter of id.
func MarkPlayed(games []Game, id string, at time.Time) []Game {
	out := slices.Clone(games)
	for i := range out {
		if out[i].ID == id {
			out[i].LastPlayed = at
			out[i].PlayCount++
		}
	}
	return out
}
