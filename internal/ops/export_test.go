package ops

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"

	"github.com/hpungsan/jot/internal/config"
	"github.com/hpungsan/jot/internal/errors"
)

var exportNow = time.Date(2024, 5, 10, 14, 30, 5, 0, time.UTC)

func stubOpen(t *testing.T, err error) *[]string {
	t.Helper()
	var opened []string
	orig := openFile
	openFile = func(path string) error {
		opened = append(opened, path)
		return err
	}
	t.Cleanup(func() { openFile = orig })
	return &opened
}

func TestExport(t *testing.T) {
	st := newTestStore(t)
	seed(t, st, "Went for a run, then coffee #fitness", "second")
	opened := stubOpen(t, nil)

	out, err := Export(st, config.DefaultConfig(), ExportInput{Format: "csv", BaseDir: testBaseDir, Now: exportNow})
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	wantPath := filepath.Join(testBaseDir, "exports", "journal_20240510_143005.csv")
	if out.Path != wantPath {
		t.Errorf("Path = %q, want %q", out.Path, wantPath)
	}
	if out.Count != 2 || out.Format != "csv" {
		t.Errorf("output = %+v", out)
	}
	if out.Size == "" {
		t.Error("Size should be set")
	}
	if out.Opened || len(*opened) != 0 {
		t.Error("file should not be opened without Open")
	}

	data, err := afero.ReadFile(st.Fs(), wantPath)
	if err != nil {
		t.Fatalf("export file missing: %v", err)
	}
	if !strings.HasPrefix(string(data), "date,title,body,tags\n") {
		t.Errorf("unexpected CSV header:\n%s", data)
	}
}

func TestExport_AbsoluteExportDir(t *testing.T) {
	st := newTestStore(t)
	seed(t, st, "one")
	cfg := config.DefaultConfig()
	cfg.Journal.ExportDir = "/srv/exports"

	out, err := Export(st, cfg, ExportInput{Format: "plain", BaseDir: testBaseDir, Now: exportNow})
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if out.Path != "/srv/exports/journal_20240510_143005.txt" {
		t.Errorf("Path = %q", out.Path)
	}
}

func TestExport_EveryFormat(t *testing.T) {
	st := newTestStore(t)
	seed(t, st, "one #a", "two **bold**")

	for _, format := range []string{"json", "csv", "plain", "toml", "yaml", "html"} {
		t.Run(format, func(t *testing.T) {
			out, err := Export(st, nil, ExportInput{Format: format, BaseDir: testBaseDir, Now: exportNow})
			if err != nil {
				t.Fatalf("Export failed: %v", err)
			}
			if out.Count != 2 {
				t.Errorf("Count = %d, want 2", out.Count)
			}
		})
	}
}

func TestExport_Open(t *testing.T) {
	st := newTestStore(t)
	seed(t, st, "one")

	opened := stubOpen(t, nil)
	out, err := Export(st, nil, ExportInput{Format: "html", BaseDir: testBaseDir, Open: true, Now: exportNow})
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if !out.Opened || len(*opened) != 1 || (*opened)[0] != out.Path {
		t.Errorf("opened = %v, output = %+v", *opened, out)
	}
}

func TestExport_OpenFailureKeepsFile(t *testing.T) {
	st := newTestStore(t)
	seed(t, st, "one")
	stubOpen(t, errors.NewExport("opening files is not supported on plan9"))

	out, err := Export(st, nil, ExportInput{Format: "json", BaseDir: testBaseDir, Open: true, Now: exportNow})
	if !errors.Is(err, errors.ErrExport) {
		t.Fatalf("error = %v, want EXPORT", err)
	}
	if out == nil || out.Opened {
		t.Fatalf("output = %+v", out)
	}
	if ok, _ := afero.Exists(st.Fs(), out.Path); !ok {
		t.Error("export file should still be written")
	}
}

func TestExport_UnknownFormat(t *testing.T) {
	st := newTestStore(t)

	_, err := Export(st, nil, ExportInput{Format: "pdf", BaseDir: testBaseDir})
	if !errors.Is(err, errors.ErrExport) {
		t.Errorf("error = %v, want EXPORT", err)
	}
}
