package ops

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/hpungsan/jot/internal/entry"
	"github.com/hpungsan/jot/internal/errors"
	"github.com/hpungsan/jot/internal/filter"
	"github.com/hpungsan/jot/internal/store"
)

// RemoveInput selects the entries to remove. Exactly one selector is used:
// ID, Range ("2..4"), or a From/To date range.
type RemoveInput struct {
	ID    *int
	Range string
	From  string
	To    string
}

// RemoveOutput contains the result of the Remove operation.
type RemoveOutput struct {
	Removed []int `json:"removed"`
}

// Remove deletes entries by id, id range or date range.
//
// Id and id-range removal go one id at a time and are not transactional: a
// missing id stops the batch with a REMOVE error, and the removals applied
// before it are saved. The returned output lists them in both cases.
//
// Date-range removal deletes exactly the entries dated within the range,
// matched by entry rather than id, so an out-of-range entry reusing the id of
// an in-range one is left alone.
func Remove(st *store.Store, input RemoveInput) (*RemoveOutput, error) {
	target, err := removalTargets(input)
	if err != nil {
		return nil, err
	}

	j, err := load(st)
	if err != nil {
		return nil, err
	}

	out := &RemoveOutput{Removed: []int{}}
	var missing *errors.JotError

	if target.dates != nil {
		dates := *target.dates
		for _, e := range j.RemoveWhere(func(e entry.Entry) bool { return dates.Contains(e.Date) }) {
			out.Removed = append(out.Removed, e.ID)
		}
		if len(out.Removed) == 0 {
			return nil, errors.NewRemove(fmt.Sprintf("no entries between %s and %s",
				boundOrOpen(input.From), boundOrOpen(input.To)))
		}
	} else {
		target.ids.Each(func(id int) bool {
			if _, ok := j.RemoveEntry(id); !ok {
				missing = errors.NewRemove(fmt.Sprintf("entry with ID %d not found", id))
				return false
			}
			out.Removed = append(out.Removed, id)
			return true
		})
	}

	if len(out.Removed) > 0 {
		if err := st.Save(j); err != nil {
			return nil, err
		}
		logger(st).Info("entries removed", zap.Ints("ids", out.Removed))
	}

	if missing != nil {
		if len(out.Removed) > 0 {
			missing.Message += fmt.Sprintf(" (already removed: %s)", joinIDs(out.Removed))
		}
		return out, missing
	}
	return out, nil
}

// removal is a validated selector: an id range (a single id is a one-id
// range) or a date range.
type removal struct {
	ids   filter.IDRange
	dates *filter.DateRange
}

// removalTargets validates that exactly one selector is set.
func removalTargets(input RemoveInput) (removal, error) {
	hasRange := strings.TrimSpace(input.Range) != ""
	hasDates := strings.TrimSpace(input.From) != "" || strings.TrimSpace(input.To) != ""

	selectors := 0
	for _, set := range []bool{input.ID != nil, hasRange, hasDates} {
		if set {
			selectors++
		}
	}
	switch {
	case selectors == 0:
		return removal{}, errors.NewRemove("no ID provided (use --id, --range or --from/--to)")
	case selectors > 1:
		return removal{}, errors.NewRemove("use only one of --id, --range or --from/--to")
	}

	switch {
	case input.ID != nil:
		if *input.ID < 0 {
			return removal{}, errors.NewRemove(fmt.Sprintf("invalid ID %d", *input.ID))
		}
		return removal{ids: filter.IDRange{Start: *input.ID, End: *input.ID}}, nil
	case hasRange:
		r, err := filter.ParseIDRange(input.Range)
		if err != nil {
			return removal{}, errors.NewRemove("bad --range").Wrap(err)
		}
		return removal{ids: r}, nil
	}

	r, err := parseDates(input.From, input.To, errors.NewRemove)
	if err != nil {
		return removal{}, err
	}
	return removal{dates: &r}, nil
}

func boundOrOpen(s string) string {
	if strings.TrimSpace(s) == "" {
		return "(open)"
	}
	return strings.TrimSpace(s)
}

func joinIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ", ")
}
