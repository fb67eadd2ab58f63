package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml"
	"github.com/spf13/afero"

	"github.com/hpungsan/jot/internal/atomicfile"
	"github.com/hpungsan/jot/internal/errors"
)

// FileName is the config file name inside the jot home directory.
const FileName = "config.toml"

// DefaultExportDir is used when export_dir is unset.
const DefaultExportDir = "exports"

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config holds application configuration.
type Config struct {
	Journal JournalConfig `toml:"journal"`
}

// JournalConfig holds the [journal] table.
type JournalConfig struct {
	// ShowTime displays HH:MM next to the entry date
	ShowTime bool `toml:"show_time"`

	// BodyTags keeps #tag tokens in the stored entry body
	BodyTags bool `toml:"body_tags"`

	// ExportDir is where exports are written. Relative paths resolve
	// against the jot home directory.
	ExportDir string `toml:"export_dir"`

	// RotateBackup keeps one .bak generation of the journal on every save
	RotateBackup bool `toml:"rotate_backup"`

	// Color is one of auto, always, never
	Color string `toml:"color"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Journal: JournalConfig{
			ExportDir:    DefaultExportDir,
			RotateBackup: true,
			Color:        ColorAuto,
		},
	}
}

// rawJournal mirrors JournalConfig with pointers so absent keys can be told
// apart from zero values.
type rawJournal struct {
	ShowTime     *bool   `toml:"show_time"`
	BodyTags     *bool   `toml:"body_tags"`
	ExportDir    *string `toml:"export_dir"`
	RotateBackup *bool   `toml:"rotate_backup"`
	Color        *string `toml:"color"`
}

type rawConfig struct {
	Journal rawJournal `toml:"journal"`

	// LegacyJournal is the table name used by older config files.
	LegacyJournal rawJournal `toml:"journal_cfg"`
}

// Path returns the config file path inside baseDir.
func Path(baseDir string) string {
	return filepath.Join(baseDir, FileName)
}

// Load loads configuration from path.
// Returns the default config if the file doesn't exist.
func Load(fs afero.Fs, path string) (*Config, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, errors.NewIO("read config", err)
	}

	raw := rawConfig{}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, errors.NewSerialization("config", err)
	}

	cfg := merge(DefaultConfig(), &raw.LegacyJournal)
	cfg = merge(cfg, &raw.Journal)
	return Normalize(cfg), nil
}

// Save writes cfg to path atomically.
func Save(fs afero.Fs, path string, cfg *Config) error {
	data, err := toml.Marshal(*Normalize(cfg))
	if err != nil {
		return errors.NewSerialization("config", err)
	}
	if err := atomicfile.WriteFile(fs, path, data, 0600); err != nil {
		return errors.NewIO("write config", err)
	}
	return nil
}

// merge applies the keys present in overlay on top of a copy of base.
func merge(base *Config, overlay *rawJournal) *Config {
	result := *base
	if overlay == nil {
		return &result
	}
	if overlay.ShowTime != nil {
		result.Journal.ShowTime = *overlay.ShowTime
	}
	if overlay.BodyTags != nil {
		result.Journal.BodyTags = *overlay.BodyTags
	}
	if overlay.ExportDir != nil {
		result.Journal.ExportDir = *overlay.ExportDir
	}
	if overlay.RotateBackup != nil {
		result.Journal.RotateBackup = *overlay.RotateBackup
	}
	if overlay.Color != nil {
		result.Journal.Color = *overlay.Color
	}
	return &result
}

// Normalize returns a copy of cfg with defaults restored for blank or invalid values.
func Normalize(cfg *Config) *Config {
	result := *cfg
	result.Journal.ExportDir = strings.TrimSpace(result.Journal.ExportDir)
	if result.Journal.ExportDir == "" {
		result.Journal.ExportDir = DefaultExportDir
	}
	switch strings.ToLower(strings.TrimSpace(result.Journal.Color)) {
	case ColorAlways:
		result.Journal.Color = ColorAlways
	case ColorNever:
		result.Journal.Color = ColorNever
	default:
		result.Journal.Color = ColorAuto
	}
	return &result
}

// ExportDir resolves the configured export directory against baseDir.
func (c *Config) ExportDir(baseDir string) string {
	dir := c.Journal.ExportDir
	if dir == "" {
		dir = DefaultExportDir
	}
	if filepath.IsAbs(dir) {
		return filepath.Clean(dir)
	}
	return filepath.Join(baseDir, dir)
}
