package filter

import (
	"github.com/hpungsan/jot/internal/entry"
)

// Query is a composite entry predicate. An entry is selected when the text,
// tag and date conditions all hold; Mode only combines tags within the tag
// condition.
type Query struct {
	Term          string
	Tags          []entry.Tag
	Dates         DateRange
	Mode          MatchMode
	CaseSensitive bool
	Fuzzy         bool
}

// Matches reports whether e satisfies q.
func (q Query) Matches(e entry.Entry) bool {
	return MatchText(e.Body, q.Term, TextOptions{CaseSensitive: q.CaseSensitive, Fuzzy: q.Fuzzy}) &&
		MatchTags(q.Tags, e.Tags, q.Mode) &&
		q.Dates.Contains(e.Date)
}

// Apply returns the entries matching q, in their original order.
func Apply(entries []entry.Entry, q Query) []entry.Entry {
	out := make([]entry.Entry, 0, len(entries))
	for _, e := range entries {
		if q.Matches(e) {
			out = append(out, e)
		}
	}
	return out
}
