package ops

import (
	"time"

	"go.uber.org/zap"

	"github.com/hpungsan/jot/internal/config"
	"github.com/hpungsan/jot/internal/entry"
	"github.com/hpungsan/jot/internal/store"
)

// AddInput contains parameters for the Add operation.
type AddInput struct {
	Content string    // required; #tokens become tags
	Now     time.Time // optional, default: current time
}

// AddOutput contains the result of the Add operation.
type AddOutput struct {
	Entry entry.Entry `json:"entry"`
}

// Add creates an entry from raw content and appends it to the journal.
// cfg.Journal.BodyTags decides whether #tokens stay in the body.
func Add(st *store.Store, cfg *config.Config, input AddInput) (*AddOutput, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	j, err := load(st)
	if err != nil {
		return nil, err
	}

	e, err := entry.New(j.NextID(), input.Content, cfg.Journal.BodyTags, timeOr(input.Now))
	if err != nil {
		return nil, err
	}
	stored := j.AddEntry(e)

	if err := st.Save(j); err != nil {
		return nil, err
	}

	logger(st).Info("entry added", zap.Int("id", stored.ID), zap.Int("tags", len(stored.Tags)))
	return &AddOutput{Entry: stored}, nil
}
