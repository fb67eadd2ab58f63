package export

import (
	"encoding/csv"
	"encoding/json"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/pelletier/go-toml"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v2"

	"github.com/hpungsan/jot/internal/entry"
	"github.com/hpungsan/jot/internal/errors"
)

var exportTime = time.Date(2024, 5, 10, 14, 30, 5, 0, time.UTC)

func testEntries() []entry.Entry {
	return []entry.Entry{
		{
			ID:        0,
			Timestamp: time.Date(2024, 5, 9, 8, 0, 0, 0, time.UTC),
			Date:      entry.DateOf(2024, 5, 9),
			Body:      "Went for a run, then coffee",
			Tags:      []entry.Tag{"fitness", "morning"},
		},
		{
			ID:        1,
			Timestamp: time.Date(2024, 5, 10, 21, 15, 0, 0, time.UTC),
			Date:      entry.DateOf(2024, 5, 10),
			Body:      "Read **two** chapters",
			Tags:      []entry.Tag{},
		},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"json", FormatJSON},
		{"CSV", FormatCSV},
		{"plain", FormatPlain},
		{"txt", FormatPlain},
		{"toml", FormatTOML},
		{"yml", FormatYAML},
		{" html ", FormatHTML},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if err != nil {
			t.Fatalf("ParseFormat(%q) error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	_, err := ParseFormat("pdf")
	if !errors.Is(err, errors.ErrExport) {
		t.Errorf("ParseFormat(pdf) error = %v, want EXPORT", err)
	}
}

func TestFileName(t *testing.T) {
	if got := FileName(FormatPlain, exportTime); got != "journal_20240510_143005.txt" {
		t.Errorf("FileName(plain) = %q", got)
	}
	if got := FileName(FormatCSV, exportTime); got != "journal_20240510_143005.csv" {
		t.Errorf("FileName(csv) = %q", got)
	}
}

func TestEncodeJSON(t *testing.T) {
	data, err := Encode(FormatJSON, testEntries())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	var got []entry.Entry
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("exported JSON does not parse: %v", err)
	}
	if len(got) != 2 || got[0].Body != "Went for a run, then coffee" || got[1].Date.String() != "2024-05-10" {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if !strings.Contains(string(data), "\n  {") {
		t.Error("JSON export should be indented")
	}

	empty, err := Encode(FormatJSON, nil)
	if err != nil {
		t.Fatalf("Encode(nil): %v", err)
	}
	if string(empty) != "[]" {
		t.Errorf("empty JSON export = %q, want []", empty)
	}
}

func TestEncodeCSV(t *testing.T) {
	entries := testEntries()
	entries[1].Body = strings.Repeat("x", 70) + "\nsecond line"

	data, err := Encode(FormatCSV, entries)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	rows, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	if err != nil {
		t.Fatalf("exported CSV does not parse: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	if strings.Join(rows[0], "|") != "date|title|body|tags" {
		t.Errorf("header = %v", rows[0])
	}

	// Commas stay inside the quoted field.
	if rows[1][2] != "Went for a run, then coffee" {
		t.Errorf("body = %q", rows[1][2])
	}
	if rows[1][3] != "fitness,morning" {
		t.Errorf("tags = %q", rows[1][3])
	}
	if !strings.Contains(string(data), `"Went for a run, then coffee"`) {
		t.Error("body with a comma should be quoted")
	}

	if got := rows[2][1]; got != strings.Repeat("x", TitleRunes) {
		t.Errorf("title = %q, want first line truncated to %d runes", got, TitleRunes)
	}
	if rows[2][3] != "" {
		t.Errorf("tags = %q, want empty", rows[2][3])
	}
}

func TestEncodePlain(t *testing.T) {
	data, err := Encode(FormatPlain, testEntries())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	want := "Date: 2024-05-09\nTags: fitness, morning\n\nWent for a run, then coffee\n\n---\n\n" +
		"Date: 2024-05-10\n\nRead **two** chapters\n\n---\n\n"
	if string(data) != want {
		t.Errorf("plain export =\n%q\nwant\n%q", data, want)
	}
}

func TestEncodeTOML(t *testing.T) {
	data, err := Encode(FormatTOML, testEntries())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !strings.Contains(string(data), "[[entries]]") {
		t.Errorf("TOML export should use an [[entries]] array:\n%s", data)
	}

	var doc document
	if err := toml.Unmarshal(data, &doc); err != nil {
		t.Fatalf("exported TOML does not parse: %v", err)
	}
	if len(doc.Entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(doc.Entries))
	}
	if doc.Entries[0].Date != "2024-05-09" || doc.Entries[0].Tags[1] != "morning" {
		t.Errorf("entry 0 = %+v", doc.Entries[0])
	}
	if !doc.Entries[1].Timestamp.Equal(testEntries()[1].Timestamp) {
		t.Errorf("timestamp = %v", doc.Entries[1].Timestamp)
	}
}

func TestEncodeYAML(t *testing.T) {
	data, err := Encode(FormatYAML, testEntries())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		t.Fatalf("exported YAML does not parse: %v", err)
	}
	if len(doc.Entries) != 2 || doc.Entries[1].Body != "Read **two** chapters" {
		t.Errorf("entries = %+v", doc.Entries)
	}
}

func TestEncodeHTML(t *testing.T) {
	entries := testEntries()
	entries = append(entries, entry.Entry{
		ID:   2,
		Date: entry.DateOf(2024, 5, 11),
		Body: "<script>alert(1)</script>",
		Tags: []entry.Tag{"x"},
	})

	data, err := Encode(FormatHTML, entries)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	html := string(data)

	for _, want := range []string{
		"<strong>two</strong>",
		`<article id="entry-1">`,
		`<span class="tag">#fitness</span>`,
		"3 entries",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("HTML export missing %q", want)
		}
	}
	if strings.Contains(html, "<script>") {
		t.Error("raw HTML in a body must not be passed through")
	}
}

func TestWrite(t *testing.T) {
	fs := afero.NewMemMapFs()
	dir := "/home/user/.jot/exports"

	res, err := Write(fs, dir, FormatJSON, testEntries(), exportTime)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}

	wantPath := filepath.Join(dir, "journal_20240510_143005.json")
	if res.Path != wantPath {
		t.Errorf("Path = %q, want %q", res.Path, wantPath)
	}
	if res.Count != 2 {
		t.Errorf("Count = %d, want 2", res.Count)
	}

	data, err := afero.ReadFile(fs, wantPath)
	if err != nil {
		t.Fatalf("export file not written: %v", err)
	}
	if int64(len(data)) != res.Size {
		t.Errorf("Size = %d, file has %d bytes", res.Size, len(data))
	}
	if res.HumanSize() == "" {
		t.Error("HumanSize should not be empty")
	}
}

func TestWrite_ReadOnlyFs(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())

	_, err := Write(fs, "/exports", FormatCSV, testEntries(), exportTime)
	if !errors.Is(err, errors.ErrExport) {
		t.Errorf("error = %v, want EXPORT", err)
	}
}

func TestOpen(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("opener command is asserted on linux only")
	}

	var started *exec.Cmd
	orig := startCommand
	startCommand = func(cmd *exec.Cmd) error {
		started = cmd
		return nil
	}
	t.Cleanup(func() { startCommand = orig })

	if err := Open("/tmp/journal.html"); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if started == nil {
		t.Fatal("no command started")
	}
	if got := strings.Join(started.Args, " "); got != "xdg-open /tmp/journal.html" {
		t.Errorf("args = %q", got)
	}
}

func TestOpen_StartFailure(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("opener command is asserted on linux only")
	}

	orig := startCommand
	startCommand = func(*exec.Cmd) error { return exec.ErrNotFound }
	t.Cleanup(func() { startCommand = orig })

	err := Open("/tmp/journal.html")
	if !errors.Is(err, errors.ErrExport) {
		t.Errorf("error = %v, want EXPORT", err)
	}
}
