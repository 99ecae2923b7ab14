package library

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/sahilm/fuzzy"
)

// SortOrder names a library ordering.
type SortOrder string

const (
	SortTitle      SortOrder = "title"
	SortRecent     SortOrder = "recent"
	SortMostPlayed SortOrder = "played"
	SortAdded      SortOrder = "added"
)

// NextSort cycles through the orders.
func NextSort(s SortOrder) SortOrder {
	switch s {
	case SortTitle:
		return SortRecent
	case SortRecent:
		return SortMostPlayed
	case SortMostPlayed:
		return SortAdded
	}
	return SortTitle
}

// ParseSort resolves a sort order name.
func ParseSort(s string) (SortOrder, error) {
	switch o := SortOrder(strings.ToLower(strings.TrimSpace(s))); o {
	case SortTitle, SortRecent, SortMostPlayed, SortAdded:
		return o, nil
	case "":
		return SortTitle, nil
	}
	return SortTitle, fmt.Errorf("unknown sort order %q", s)
}

// Sort returns a copy of games in the given order. Folders come first. Ties
// fall back to the title.
func Sort(games []Game, order SortOrder) []Game {
	out := slices.Clone(games)
	slices.SortStableFunc(out, func(a, b Game) int {
		if a.IsFolder() != b.IsFolder() {
			if a.IsFolder() {
				return -1
			}
			return 1
		}
		var c int
		switch order {
		case SortRecent:
			c = b.LastPlayed.Compare(a.LastPlayed)
		case SortMostPlayed:
			c = cmp.Compare(b.PlayCount, a.PlayCount)
		case SortAdded:
			c = b.AddedAt.Compare(a.AddedAt)
		}
		if c != 0 {
			return c
		}
		return cmp.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
	})
	return out
}

type source []Game

func (s source) String(i int) string {
	g := s[i]
	if g.Vendor == "" {
		return g.Title
	}
	return g.Title + " " + g.Vendor
}

func (s source) Len() int { return len(s) }

// Filter returns the games matching query, best match first. An empty query
// returns games unchanged.
func Filter(games []Game, query string) []Game {
	query = strings.TrimSpace(query)
	if query == "" {
		return games
	}
	matches := fuzzy.FindFrom(query, source(games))
	out := make([]Game, 0, len(matches))
	for _, m := range matches {
		out = append(out, games[m.Index])
	}
	return out
}
