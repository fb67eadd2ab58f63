package render

import (
	"fmt"
	"strings"

	"github.com/hpungsan/jot/internal/entry"
)

// SeparatorWidth is the rune width of the line drawn after each entry.
const SeparatorWidth = 40

// Options controls entry formatting. Values come from the caller's config;
// nothing here reads configuration on its own.
type Options struct {
	// ShowTime appends HH:MM (UTC) to the date in the header
	ShowTime bool

	// Highlight is a search term whose occurrences are marked in the output
	Highlight string

	// Style decorates each segment; nil means PlainStyle
	Style Style
}

// Format renders e as a header line, the body, and a separator line.
func Format(e entry.Entry, opts Options) string {
	style := opts.Style
	if style == nil {
		style = PlainStyle{}
	}
	hl := func(s string) string {
		return Highlight(s, opts.Highlight, style.Highlight)
	}

	parts := []string{
		style.ID(hl(fmt.Sprintf("[%d]", e.ID))),
		style.Date(hl(e.Date.String())),
	}
	if opts.ShowTime {
		parts = append(parts, style.Time(hl(e.Timestamp.UTC().Format("15:04"))))
	}
	for _, t := range e.Tags {
		parts = append(parts, style.Tag(hl(t.Hashed())))
	}

	header := strings.Join(parts, " ")
	body := hl(e.Body)
	sep := style.Separator(strings.Repeat("─", SeparatorWidth))

	return header + "\n" + body + "\n" + sep
}

// FormatAll renders entries preceded by a count line, or a "no entries" notice.
func FormatAll(entries []entry.Entry, opts Options) string {
	if len(entries) == 0 {
		return "No entries found."
	}
	var b strings.Builder
	b.WriteString(Count(len(entries)))
	for _, e := range entries {
		b.WriteString("\n")
		b.WriteString(Format(e, opts))
	}
	return b.String()
}

// Count returns the "N entries found" line.
func Count(n int) string {
	if n == 1 {
		return "1 entry found"
	}
	return fmt.Sprintf("%d entries found", n)
}

// Detail renders the single-entry block shown by `view <id>`.
func Detail(e entry.Entry) string {
	return fmt.Sprintf("ID: %d\nDate: %s\nBody: %s\nTags: %s",
		e.ID, e.Date, e.Body, entry.JoinTags(e.Tags, ", "))
}

// Highlight wraps every case-insensitive occurrence of term in s with mark,
// keeping the original casing of s. Matches do not overlap.
func Highlight(s, term string, mark func(string) string) string {
	if term == "" || mark == nil {
		return s
	}

	src := []rune(s)
	n := len([]rune(term))
	if n > len(src) {
		return s
	}

	var b strings.Builder
	last := 0
	for i := 0; i+n <= len(src); {
		if strings.EqualFold(string(src[i:i+n]), term) {
			b.WriteString(string(src[last:i]))
			b.WriteString(mark(string(src[i : i+n])))
			i += n
			last = i
			continue
		}
		i++
	}
	b.WriteString(string(src[last:]))
	return b.String()
}
