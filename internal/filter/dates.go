package filter

import (
	stderrors "errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/hpungsan/jot/internal/entry"
)

var (
	// ErrInvalidDate is wrapped by every date parsing failure.
	ErrInvalidDate = stderrors.New("invalid date, expected YYYY-MM-DD")

	// ErrInvalidRange is wrapped by every id or date range failure.
	ErrInvalidRange = stderrors.New("invalid range")
)

// ParseDate parses s in the fixed YYYY-MM-DD layout.
func ParseDate(s string) (entry.Date, error) {
	d, err := entry.ParseDate(strings.TrimSpace(s))
	if err != nil {
		return entry.Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return d, nil
}

// DateRange is an inclusive calendar range. Nil bounds are unconstrained.
type DateRange struct {
	From *entry.Date
	To   *entry.Date
}

// ParseDateRange parses optional from/to strings; empty strings leave a bound open.
func ParseDateRange(from, to string) (DateRange, error) {
	var r DateRange
	if strings.TrimSpace(from) != "" {
		d, err := ParseDate(from)
		if err != nil {
			return DateRange{}, err
		}
		r.From = &d
	}
	if strings.TrimSpace(to) != "" {
		d, err := ParseDate(to)
		if err != nil {
			return DateRange{}, err
		}
		r.To = &d
	}
	if r.From != nil && r.To != nil && r.From.After(*r.To) {
		return DateRange{}, fmt.Errorf("%w: from %s is after to %s", ErrInvalidRange, r.From, r.To)
	}
	return r, nil
}

// Contains reports whether d lies within the range, bounds inclusive.
func (r DateRange) Contains(d entry.Date) bool {
	if r.From != nil && d.Before(*r.From) {
		return false
	}
	if r.To != nil && d.After(*r.To) {
		return false
	}
	return true
}

// IDRange is an inclusive range of entry ids.
type IDRange struct {
	Start int
	End   int
}

// ParseIDRange parses "a..b" or "a..=b" into an inclusive id range.
func ParseIDRange(s string) (IDRange, error) {
	startStr, endStr, ok := strings.Cut(strings.TrimSpace(s), "..")
	if !ok {
		return IDRange{}, fmt.Errorf("%w %q: expected START..END", ErrInvalidRange, s)
	}
	endStr = strings.TrimPrefix(endStr, "=")

	start, err := strconv.Atoi(strings.TrimSpace(startStr))
	if err != nil || start < 0 {
		return IDRange{}, fmt.Errorf("%w %q: bad start", ErrInvalidRange, s)
	}
	end, err := strconv.Atoi(strings.TrimSpace(endStr))
	if err != nil || end < 0 {
		return IDRange{}, fmt.Errorf("%w %q: bad end", ErrInvalidRange, s)
	}
	if start > end {
		return IDRange{}, fmt.Errorf("%w %q: start is after end", ErrInvalidRange, s)
	}
	return IDRange{Start: start, End: end}, nil
}

// Each calls fn for every id in the range in ascending order, stopping early
// when fn returns false. The range is never materialized, so End may be as
// large as math.MaxInt.
func (r IDRange) Each(fn func(id int) bool) {
	for id := r.Start; ; id++ {
		if !fn(id) || id == r.End {
			return
		}
	}
}
