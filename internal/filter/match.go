package filter

import (
	"strings"
)

// TextOptions controls how a search term is matched against an entry body.
type TextOptions struct {
	CaseSensitive bool
	Fuzzy         bool
}

// MatchText reports whether term matches body under opts.
// An empty term always matches.
func MatchText(body, term string, opts TextOptions) bool {
	if opts.Fuzzy {
		return FuzzyMatch(body, term, opts.CaseSensitive)
	}
	return Contains(body, term, opts.CaseSensitive)
}

// Contains is a substring test, case-folded unless caseSensitive.
func Contains(haystack, needle string, caseSensitive bool) bool {
	if !caseSensitive {
		haystack = strings.ToLower(haystack)
		needle = strings.ToLower(needle)
	}
	return strings.Contains(haystack, needle)
}

// FuzzyMatch reports whether needle is an ordered subsequence of haystack:
// each needle rune must appear at or after the position where the previous
// one was found. "jrnl" matches "journal"; "xyz" does not.
// This is not an edit-distance match.
func FuzzyMatch(haystack, needle string, caseSensitive bool) bool {
	if !caseSensitive {
		haystack = strings.ToLower(haystack)
		needle = strings.ToLower(needle)
	}

	hay := []rune(haystack)
	pos := 0
	for _, n := range needle {
		found := false
		for pos < len(hay) {
			h := hay[pos]
			pos++
			if h == n {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
