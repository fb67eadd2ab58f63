package ops

import (
	"fmt"
	"strings"

	"github.com/spf13/afero"

	"github.com/hpungsan/jot/internal/config"
	"github.com/hpungsan/jot/internal/errors"
)

// ConfigInput contains the settings to change. Nil fields are left as they are.
type ConfigInput struct {
	Path         string // config file path, required
	ShowTime     *bool
	BodyTags     *bool
	ExportDir    *string
	RotateBackup *bool
	Color        *string
}

// ConfigOutput contains the resulting configuration.
type ConfigOutput struct {
	Config  *config.Config `json:"config"`
	Path    string         `json:"path"`
	Changed bool           `json:"changed"`
}

// Configure loads the config file, applies the given settings and saves it
// when anything changed. With no settings it only reports the current values.
func Configure(fs afero.Fs, input ConfigInput) (*ConfigOutput, error) {
	if input.Path == "" {
		return nil, errors.NewInvalidRequest("config path is required")
	}

	cfg, err := config.Load(fs, input.Path)
	if err != nil {
		return nil, err
	}

	if input.Color != nil {
		switch strings.ToLower(strings.TrimSpace(*input.Color)) {
		case config.ColorAuto, config.ColorAlways, config.ColorNever:
		default:
			return nil, errors.NewInvalidRequest(fmt.Sprintf("color must be one of: %s, %s, %s",
				config.ColorAuto, config.ColorAlways, config.ColorNever))
		}
	}
	if input.ExportDir != nil && strings.TrimSpace(*input.ExportDir) == "" {
		return nil, errors.NewInvalidRequest("export dir must not be empty")
	}

	updated := *cfg
	if input.ShowTime != nil {
		updated.Journal.ShowTime = *input.ShowTime
	}
	if input.BodyTags != nil {
		updated.Journal.BodyTags = *input.BodyTags
	}
	if input.ExportDir != nil {
		updated.Journal.ExportDir = *input.ExportDir
	}
	if input.RotateBackup != nil {
		updated.Journal.RotateBackup = *input.RotateBackup
	}
	if input.Color != nil {
		updated.Journal.Color = *input.Color
	}
	next := config.Normalize(&updated)

	if *next == *cfg {
		return &ConfigOutput{Config: cfg, Path: input.Path}, nil
	}
	if err := config.Save(fs, input.Path, next); err != nil {
		return nil, err
	}
	return &ConfigOutput{Config: next, Path: input.Path, Changed: true}, nil
}
