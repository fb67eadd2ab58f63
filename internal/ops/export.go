package ops

import (
	"time"

	"go.uber.org/zap"

	"github.com/hpungsan/jot/internal/config"
	"github.com/hpungsan/jot/internal/export"
	"github.com/hpungsan/jot/internal/store"
)

// openFile launches the system opener; replaced in tests.
var openFile = export.Open

// ExportInput contains parameters for the Export operation.
type ExportInput struct {
	Format  string    // required: json, csv, plain, toml, yaml, html
	BaseDir string    // jot home dir, used to resolve a relative export_dir
	Open    bool      // launch the system opener on the written file
	Now     time.Time // optional, default: current time
}

// ExportOutput contains the result of the Export operation.
type ExportOutput struct {
	Path   string `json:"path"`
	Format string `json:"format"`
	Count  int    `json:"count"`
	Size   string `json:"size"`
	Opened bool   `json:"opened"`
}

// Export writes every entry to a timestamped file in the configured export
// directory.
func Export(st *store.Store, cfg *config.Config, input ExportInput) (*ExportOutput, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	format, err := export.ParseFormat(input.Format)
	if err != nil {
		return nil, err
	}

	j, err := load(st)
	if err != nil {
		return nil, err
	}

	dir := cfg.ExportDir(input.BaseDir)
	res, err := export.Write(st.Fs(), dir, format, j.Entries(), timeOr(input.Now))
	if err != nil {
		return nil, err
	}
	logger(st).Info("journal exported", zap.String("path", res.Path), zap.Int("entries", res.Count))

	out := &ExportOutput{
		Path:   res.Path,
		Format: string(format),
		Count:  res.Count,
		Size:   res.HumanSize(),
	}
	if input.Open {
		if err := openFile(res.Path); err != nil {
			return out, err
		}
		out.Opened = true
	}
	return out, nil
}
