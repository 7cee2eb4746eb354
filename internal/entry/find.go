package entry

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

type entrySource []*Entry

func (s entrySource) String(i int) string { return s[i].Text }
func (s entrySource) Len() int            { return len(s) }

// Find returns the entry whose label best matches query.
// An exact (case-insensitive) label wins; otherwise the top fuzzy match is
// used. Returns nil when nothing matches.
func Find(entries []*Entry, query string) *Entry {
	query = strings.TrimSpace(query)
	if query == "" || len(entries) == 0 {
		return nil
	}

	for _, e := range entries {
		if strings.EqualFold(e.Text, query) {
			return e
		}
	}

	matches := fuzzy.FindFrom(query, entrySource(entries))
	if len(matches) == 0 {
		return nil
	}
	return entries[matches[0].Index]
}
