// Package export writes journal entries to files in the supported formats.
package export

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	units "github.com/docker/go-units"
	"github.com/spf13/afero"

	"github.com/hpungsan/jot/internal/atomicfile"
	"github.com/hpungsan/jot/internal/entry"
	"github.com/hpungsan/jot/internal/errors"
)

// Format is an export file format.
type Format string

const (
	FormatJSON  Format = "json"
	FormatCSV   Format = "csv"
	FormatPlain Format = "plain"
	FormatTOML  Format = "toml"
	FormatYAML  Format = "yaml"
	FormatHTML  Format = "html"
)

// Formats lists every supported format in display order.
var Formats = []Format{FormatJSON, FormatCSV, FormatPlain, FormatTOML, FormatYAML, FormatHTML}

// TitleRunes is the maximum length of the title column in CSV exports.
const TitleRunes = 60

// FileTimeLayout is the timestamp layout used in export file names.
const FileTimeLayout = "20060102_150405"

// ParseFormat resolves a format name. Matching is case-insensitive; "txt" and
// "yml" are accepted as aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	case "plain", "txt":
		return FormatPlain, nil
	case "toml":
		return FormatTOML, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "html":
		return FormatHTML, nil
	}
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return "", errors.NewExport(fmt.Sprintf("unknown format %q (expected one of %s)", s, strings.Join(names, ", ")))
}

// Ext returns the file extension for f, without the dot.
func (f Format) Ext() string {
	if f == FormatPlain {
		return "txt"
	}
	return string(f)
}

// FileName returns the export file name for f at now.
func FileName(f Format, now time.Time) string {
	return fmt.Sprintf("journal_%s.%s", now.Format(FileTimeLayout), f.Ext())
}

// Encode renders entries in format f.
func Encode(f Format, entries []entry.Entry) ([]byte, error) {
	switch f {
	case FormatJSON:
		return encodeJSON(entries)
	case FormatCSV:
		return encodeCSV(entries)
	case FormatPlain:
		return encodePlain(entries), nil
	case FormatTOML:
		return encodeTOML(entries)
	case FormatYAML:
		return encodeYAML(entries)
	case FormatHTML:
		return encodeHTML(entries)
	}
	return nil, errors.NewExport(fmt.Sprintf("unknown format %q", f))
}

// Result describes a written export file.
type Result struct {
	Path  string
	Count int
	Size  int64
}

// HumanSize returns Size in human readable decimal units.
func (r Result) HumanSize() string {
	return units.HumanSize(float64(r.Size))
}

// Write encodes entries in format f and writes them atomically to a
// timestamped file in dir, creating dir if needed.
func Write(fs afero.Fs, dir string, f Format, entries []entry.Entry, now time.Time) (*Result, error) {
	data, err := Encode(f, entries)
	if err != nil {
		if _, ok := errors.As(err); ok {
			return nil, err
		}
		return nil, errors.NewExport(fmt.Sprintf("encode %s", f)).Wrap(err)
	}

	path := filepath.Join(dir, FileName(f, now))
	if err := atomicfile.WriteFile(fs, path, data, 0600); err != nil {
		return nil, errors.NewExport(fmt.Sprintf("write %s", path)).Wrap(err)
	}

	return &Result{
		Path:  path,
		Count: len(entries),
		Size:  int64(len(data)),
	}, nil
}
