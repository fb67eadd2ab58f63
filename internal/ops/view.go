package ops

import (
	"github.com/hpungsan/jot/internal/entry"
	"github.com/hpungsan/jot/internal/errors"
	"github.com/hpungsan/jot/internal/filter"
	"github.com/hpungsan/jot/internal/store"
)

// ViewInput contains parameters for the View operation.
// ID takes precedence over Recent, which takes precedence over the filters.
type ViewInput struct {
	ID     *int
	Recent bool
	From   string
	To     string
	Tags   []string
	All    bool // every tag must match instead of any
}

// ViewOutput contains the result of the View operation.
type ViewOutput struct {
	Entries []entry.Entry `json:"entries"`

	// Single is set when the caller asked for one entry by id
	Single bool `json:"single"`
}

// View lists entries by id, as the most recent entry, or filtered by date
// range and tags.
func View(st *store.Store, input ViewInput) (*ViewOutput, error) {
	var dates filter.DateRange
	if input.ID == nil && !input.Recent {
		var err error
		if dates, err = parseDates(input.From, input.To, errors.NewInvalidRequest); err != nil {
			return nil, err
		}
	}

	j, err := load(st)
	if err != nil {
		return nil, err
	}

	switch {
	case input.ID != nil:
		e, ok := j.GetEntry(*input.ID)
		if !ok {
			return nil, errors.NewNotFound(*input.ID)
		}
		return &ViewOutput{Entries: []entry.Entry{e}, Single: true}, nil

	case input.Recent:
		out := &ViewOutput{Entries: []entry.Entry{}}
		if e, ok := j.Last(); ok {
			out.Entries = append(out.Entries, e)
		}
		return out, nil
	}

	q := filter.Query{
		Tags:  entry.ParseTags(input.Tags),
		Dates: dates,
		Mode:  modeFor(input.All),
	}
	return &ViewOutput{Entries: filter.Apply(j.Entries(), q)}, nil
}

func modeFor(all bool) filter.MatchMode {
	if all {
		return filter.MatchAll
	}
	return filter.MatchAny
}
