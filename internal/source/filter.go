package source

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// titles adapts entries to fuzzy.Source.
type titles []Entry

func (t titles) String(i int) string { return t[i].Title }
func (t titles) Len() int            { return len(t) }

// Filter returns the entries whose titles fuzzy-match query, best match first.
// Headers never match. An empty query returns entries unchanged.
func Filter(entries []Entry, query string) []Entry {
	query = strings.TrimSpace(query)
	if query == "" {
		return entries
	}

	matches := fuzzy.FindFrom(query, titles(entries))
	filtered := make([]Entry, 0, len(matches))
	for _, m := range matches {
		if entries[m.Index].Header {
			continue
		}
		filtered = append(filtered, entries[m.Index])
	}
	return filtered
}
