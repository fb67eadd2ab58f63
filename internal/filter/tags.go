package filter

import (
	"github.com/hpungsan/jot/internal/entry"
)

// MatchMode selects how a query tag set is combined.
type MatchMode int

const (
	// MatchAny selects entries carrying at least one query tag.
	MatchAny MatchMode = iota
	// MatchAll selects entries carrying every query tag.
	MatchAll
)

// String returns "any" or "all".
func (m MatchMode) String() string {
	if m == MatchAll {
		return "all"
	}
	return "any"
}

// MatchTags reports whether entryTags satisfy query under mode.
// An empty query always matches.
func MatchTags(query, entryTags []entry.Tag, mode MatchMode) bool {
	if len(query) == 0 {
		return true
	}

	have := make(map[entry.Tag]struct{}, len(entryTags))
	for _, t := range entryTags {
		have[t] = struct{}{}
	}

	switch mode {
	case MatchAll:
		for _, q := range query {
			if _, ok := have[q]; !ok {
				return false
			}
		}
		return true
	default:
		for _, q := range query {
			if _, ok := have[q]; ok {
				return true
			}
		}
		return false
	}
}
