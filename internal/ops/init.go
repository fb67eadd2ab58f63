package ops

import (
	"go.uber.org/zap"

	"github.com/hpungsan/jot/internal/store"
)

// InitOutput contains the result of the Init operation.
type InitOutput struct {
	Path    string `json:"path"`
	Created bool   `json:"created"`
}

// Init creates an empty journal if none exists yet. An existing journal is
// left untouched and reported with Created false.
func Init(st *store.Store) (*InitOutput, error) {
	created, err := st.Init()
	if err != nil {
		return nil, err
	}
	logger(st).Info("init", zap.String("path", st.Path()), zap.Bool("created", created))
	return &InitOutput{
		Path:    st.Path(),
		Created: created,
	}, nil
}
