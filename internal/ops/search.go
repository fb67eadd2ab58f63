package ops

import (
	"strings"

	"github.com/hpungsan/jot/internal/entry"
	"github.com/hpungsan/jot/internal/errors"
	"github.com/hpungsan/jot/internal/filter"
	"github.com/hpungsan/jot/internal/store"
)

// SearchInput contains parameters for the Search operation.
type SearchInput struct {
	Query         string // required
	Tags          []string
	From          string
	To            string
	All           bool // every tag must match instead of any
	Fuzzy         bool
	CaseSensitive bool
}

// SearchOutput contains the result of the Search operation.
type SearchOutput struct {
	Entries []entry.Entry `json:"entries"`

	// Term is the trimmed query, for highlighting by the caller
	Term string `json:"term"`
}

// Search returns the entries whose body matches the query and which also pass
// the tag and date filters, in journal order.
func Search(st *store.Store, input SearchInput) (*SearchOutput, error) {
	term := strings.TrimSpace(input.Query)
	if term == "" {
		return nil, errors.NewSearch("query must not be empty")
	}

	dates, err := parseDates(input.From, input.To, errors.NewSearch)
	if err != nil {
		return nil, err
	}

	j, err := load(st)
	if err != nil {
		return nil, err
	}

	q := filter.Query{
		Term:          term,
		Tags:          entry.ParseTags(input.Tags),
		Dates:         dates,
		Mode:          modeFor(input.All),
		CaseSensitive: input.CaseSensitive,
		Fuzzy:         input.Fuzzy,
	}
	return &SearchOutput{
		Entries: filter.Apply(j.Entries(), q),
		Term:    term,
	}, nil
}
