package config

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/hpungsan/jot/internal/errors"
)

const testDir = "/home/user/.jot"

func writeConfig(t *testing.T, fs afero.Fs, content string) string {
	t.Helper()
	path := Path(testDir)
	if err := afero.WriteFile(fs, path, []byte(content), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestLoad_DefaultWhenMissing(t *testing.T) {
	fs := afero.NewMemMapFs()

	cfg, err := Load(fs, Path(testDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if *cfg != *DefaultConfig() {
		t.Fatalf("Load() = %+v, want defaults %+v", cfg, DefaultConfig())
	}
	if cfg.Journal.ExportDir != "exports" {
		t.Errorf("ExportDir = %q, want %q", cfg.Journal.ExportDir, "exports")
	}
	if !cfg.Journal.RotateBackup {
		t.Error("RotateBackup should default to true")
	}
}

func TestLoad_OverridesFromFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	path := writeConfig(t, fs, `
[journal]
show_time = true
body_tags = true
export_dir = "/tmp/out"
`)

	cfg, err := Load(fs, path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.Journal.ShowTime || !cfg.Journal.BodyTags {
		t.Errorf("ShowTime/BodyTags = %v/%v, want true/true", cfg.Journal.ShowTime, cfg.Journal.BodyTags)
	}
	if cfg.Journal.ExportDir != "/tmp/out" {
		t.Errorf("ExportDir = %q", cfg.Journal.ExportDir)
	}
	// Absent keys keep their defaults.
	if !cfg.Journal.RotateBackup {
		t.Error("RotateBackup should keep default true when absent")
	}
	if cfg.Journal.Color != ColorAuto {
		t.Errorf("Color = %q, want %q", cfg.Journal.Color, ColorAuto)
	}
}

func TestLoad_ExplicitFalseOverridesDefault(t *testing.T) {
	fs := afero.NewMemMapFs()
	path := writeConfig(t, fs, "[journal]\nrotate_backup = false\n")

	cfg, err := Load(fs, path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Journal.RotateBackup {
		t.Error("RotateBackup = true, want false")
	}
}

func TestLoad_LegacyTable(t *testing.T) {
	fs := afero.NewMemMapFs()
	path := writeConfig(t, fs, "[journal_cfg]\nshow_time = true\nbody_tags = false\n")

	cfg, err := Load(fs, path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.Journal.ShowTime {
		t.Error("legacy journal_cfg.show_time should be honored")
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	fs := afero.NewMemMapFs()
	path := writeConfig(t, fs, "[journal\nshow_time = ")

	_, err := Load(fs, path)
	if !errors.Is(err, errors.ErrSerialization) {
		t.Fatalf("Load() error = %v, want ErrSerialization", err)
	}
}

func TestLoad_InvalidColorFallsBack(t *testing.T) {
	fs := afero.NewMemMapFs()
	path := writeConfig(t, fs, "[journal]\ncolor = \"rainbow\"\n")

	cfg, err := Load(fs, path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Journal.Color != ColorAuto {
		t.Errorf("Color = %q, want %q", cfg.Journal.Color, ColorAuto)
	}
}

func TestSave_RoundTrip(t *testing.T) {
	fs := afero.NewMemMapFs()
	path := Path(testDir)

	cfg := DefaultConfig()
	cfg.Journal.ShowTime = true
	cfg.Journal.RotateBackup = false
	cfg.Journal.ExportDir = "out"
	cfg.Journal.Color = ColorNever

	if err := Save(fs, path, cfg); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), "[journal]") {
		t.Errorf("saved config missing [journal] table:\n%s", data)
	}

	loaded, err := Load(fs, path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("round trip = %+v, want %+v", loaded, cfg)
	}
}

func TestExportDir(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.ExportDir(testDir); got != filepath.Join(testDir, "exports") {
		t.Errorf("ExportDir() = %q", got)
	}

	cfg.Journal.ExportDir = "/abs/exports/"
	if got := cfg.ExportDir(testDir); got != "/abs/exports" {
		t.Errorf("ExportDir() = %q, want /abs/exports", got)
	}
}

func TestMerge_NilOverlay(t *testing.T) {
	base := DefaultConfig()
	got := merge(base, nil)
	if *got != *base {
		t.Errorf("merge(base, nil) = %+v", got)
	}
	if got == base {
		t.Error("Merge should return a copy")
	}
}
