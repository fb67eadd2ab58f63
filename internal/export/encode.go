package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"html/template"
	"strings"
	"time"

	_ "embed"

	jsoniter "github.com/json-iterator/go"
	"github.com/pelletier/go-toml"
	"github.com/yuin/goldmark"
	"gopkg.in/yaml.v2"

	"github.com/hpungsan/jot/internal/entry"
)

// record is the flat entry shape used by the TOML and YAML exporters.
type record struct {
	ID        int       `toml:"id" yaml:"id"`
	Timestamp time.Time `toml:"timestamp" yaml:"timestamp"`
	Date      string    `toml:"date" yaml:"date"`
	Body      string    `toml:"body" yaml:"body"`
	Tags      []string  `toml:"tags" yaml:"tags"`
}

// document wraps records so TOML can emit them as an [[entries]] array.
type document struct {
	Entries []record `toml:"entries" yaml:"entries"`
}

func toDocument(entries []entry.Entry) document {
	doc := document{Entries: make([]record, len(entries))}
	for i, e := range entries {
		tags := make([]string, len(e.Tags))
		for j, t := range e.Tags {
			tags[j] = t.String()
		}
		doc.Entries[i] = record{
			ID:        e.ID,
			Timestamp: e.Timestamp.UTC(),
			Date:      e.Date.String(),
			Body:      e.Body,
			Tags:      tags,
		}
	}
	return doc
}

func encodeJSON(entries []entry.Entry) ([]byte, error) {
	if entries == nil {
		entries = []entry.Entry{}
	}
	return jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(entries, "", "  ")
}

func encodeCSV(entries []entry.Entry) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"date", "title", "body", "tags"}); err != nil {
		return nil, err
	}
	for _, e := range entries {
		row := []string{
			e.Date.String(),
			e.Title(TitleRunes),
			e.Body,
			entry.JoinTags(e.Tags, ","),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodePlain(entries []entry.Entry) []byte {
	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "Date: %s\n", e.Date)
		if len(e.Tags) > 0 {
			fmt.Fprintf(&b, "Tags: %s\n", entry.JoinTags(e.Tags, ", "))
		}
		fmt.Fprintf(&b, "\n%s\n\n---\n\n", e.Body)
	}
	return []byte(b.String())
}

func encodeTOML(entries []entry.Entry) ([]byte, error) {
	return toml.Marshal(toDocument(entries))
}

func encodeYAML(entries []entry.Entry) ([]byte, error) {
	return yaml.Marshal(toDocument(entries))
}

//go:embed templates/journal.html
var journalHTML string

var journalTemplate = template.Must(template.New("journal").Funcs(template.FuncMap{
	"markdown": renderMarkdown,
	"hashed":   func(t entry.Tag) string { return t.Hashed() },
}).Parse(journalHTML))

type htmlPage struct {
	Generated string
	Entries   []entry.Entry
}

func encodeHTML(entries []entry.Entry) ([]byte, error) {
	var buf bytes.Buffer
	page := htmlPage{
		Generated: fmt.Sprintf("%d %s", len(entries), pluralEntries(len(entries))),
		Entries:   entries,
	}
	if err := journalTemplate.Execute(&buf, page); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// renderMarkdown converts an entry body to HTML. Raw HTML in the body is not
// passed through.
func renderMarkdown(md string) template.HTML {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(md))
	}
	return template.HTML(buf.String())
}

func pluralEntries(n int) string {
	if n == 1 {
		return "entry"
	}
	return "entries"
}
