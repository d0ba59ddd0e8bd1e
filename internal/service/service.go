// Package service holds the business rules of the journal.
//
// Handlers parse HTTP and call into a service; services validate, apply the
// domain rules and delegate storage to the repository interfaces. Nothing in
// this package knows about HTTP or SQL, so the same services back the API
// server and the offline CLI.
//
// Every method takes the id of the acting user. Rows owned by somebody else
// are reported as not found.
package service

import (
	"strings"
	"time"
)

// Clock returns the current time. Services take one so tests can pin "today".
type Clock func() time.Time

func (c Clock) orDefault() Clock {
	if c == nil {
		return time.Now
	}
	return c
}

const (
	DefaultListLimit = 50
	MaxListLimit     = 500
)

// clampPage applies the list limits the API accepts.
func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// cleanTags trims names, drops blanks and keeps the first of any duplicates.
func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
