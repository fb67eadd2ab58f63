package ops

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/hpungsan/jot/internal/entry"
	"github.com/hpungsan/jot/internal/errors"
	"github.com/hpungsan/jot/internal/store"
)

// EditInput contains parameters for the Edit operation.
type EditInput struct {
	ID int

	// Body replaces the entry body when non-nil and not blank
	Body *string

	// Tags replaces the entry tags when non-nil; an empty slice clears them
	Tags []string
}

// EditOutput contains the result of the Edit operation.
type EditOutput struct {
	Before  entry.Entry `json:"before"`
	After   entry.Entry `json:"after"`
	Changed bool        `json:"changed"`
}

// Edit replaces the body and/or tags of an entry. Id, timestamp and date are
// kept. A blank body keeps the current one.
func Edit(st *store.Store, input EditInput) (*EditOutput, error) {
	j, err := load(st)
	if err != nil {
		return nil, err
	}

	current, ok := j.GetEntry(input.ID)
	if !ok {
		return nil, errors.NewEdit(fmt.Sprintf("entry with ID %d not found", input.ID))
	}

	updated := current
	changed := false
	if input.Body != nil {
		if body := strings.TrimSpace(*input.Body); body != "" && body != current.Body {
			updated.Body = body
			changed = true
		}
	}
	if input.Tags != nil {
		tags := entry.ParseTags(input.Tags)
		if tags == nil {
			tags = []entry.Tag{}
		}
		if !sameTags(tags, current.Tags) {
			updated.Tags = tags
			changed = true
		}
	}

	if !changed {
		return &EditOutput{Before: current, After: current}, nil
	}

	before, _ := j.UpdateEntry(updated)
	if err := st.Save(j); err != nil {
		return nil, err
	}

	logger(st).Info("entry edited", zap.Int("id", updated.ID))
	return &EditOutput{Before: before, After: updated, Changed: true}, nil
}

func sameTags(a, b []entry.Tag) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
