// Package ops implements the jot commands on top of the store. Every
// operation takes a typed input and returns a typed output; nothing here
// prints or exits.
package ops

import (
	"time"

	"go.uber.org/zap"

	"github.com/hpungsan/jot/internal/errors"
	"github.com/hpungsan/jot/internal/filter"
	"github.com/hpungsan/jot/internal/journal"
	"github.com/hpungsan/jot/internal/store"
)

// now is the clock used when an input leaves its time unset.
var now = time.Now

func timeOr(t time.Time) time.Time {
	if t.IsZero() {
		return now()
	}
	return t
}

// load reads the journal, passing store errors through unchanged.
func load(st *store.Store) (*journal.Journal, error) {
	return st.Load()
}

// parseDates parses optional from/to bounds, reporting failures with mk.
func parseDates(from, to string, mk func(string) *errors.JotError) (filter.DateRange, error) {
	r, err := filter.ParseDateRange(from, to)
	if err != nil {
		return filter.DateRange{}, mk("invalid date range").Wrap(err)
	}
	return r, nil
}

func logger(st *store.Store) *zap.Logger {
	return st.Logger().Named("ops")
}
