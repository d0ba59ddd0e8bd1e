// Package journal holds the read-side rules over a user's entries: search,
// filtering, ordering, streaks and statistics. Everything here is pure and
// operates on slices already loaded from storage.
package journal

import (
	"strings"

	"github.com/sakif/yawmiyat/internal/model"
)

// Matches reports whether query occurs, case-insensitively, in the title, in
// any block's content or in any tag. An empty query matches everything.
func Matches(e model.Entry, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(e.Title), q) {
		return true
	}
	for _, b := range e.Content {
		if strings.Contains(strings.ToLower(b.Content), q) {
			return true
		}
	}
	for _, t := range e.Tags {
		if strings.Contains(strings.ToLower(t), q) {
			return true
		}
	}
	return false
}

// Filter narrows a list of entries. Zero fields do not filter.
type Filter struct {
	Query         string
	FavoritesOnly bool
	HasMood       bool
	Mood          model.Mood
	Tag           string
	Month         string // YYYY-MM
}

func (f Filter) keep(e model.Entry) bool {
	switch {
	case f.FavoritesOnly && !e.IsFavorite:
		return false
	case f.HasMood && e.Mood == "":
		return false
	case f.Mood != "" && e.Mood != f.Mood:
		return false
	case f.Tag != "" && !e.HasTag(f.Tag):
		return false
	case f.Month != "" && !strings.HasPrefix(e.Date, f.Month+"-"):
		return false
	}
	return Matches(e, f.Query)
}

// Apply returns the entries that pass f, in their original order.
func Apply(entries []model.Entry, f Filter) []model.Entry {
	out := make([]model.Entry, 0, len(entries))
	for _, e := range entries {
		if f.keep(e) {
			out = append(out, e)
		}
	}
	return out
}
