package render

import (
	"strconv"

	"github.com/gosuri/uitable"
	"github.com/mattn/go-runewidth"

	"github.com/hpungsan/jot/internal/entry"
)

// TitleWidth is the display width of the title column in Table.
const TitleWidth = 48

// Table renders entries as a compact one-line-per-entry listing with columns
// ID, DATE, TITLE and TAGS. Titles are cut to TitleWidth display cells.
func Table(entries []entry.Entry) string {
	if len(entries) == 0 {
		return "No entries found."
	}

	t := uitable.New()
	t.Separator = "  "
	t.AddRow("ID", "DATE", "TITLE", "TAGS")
	for _, e := range entries {
		t.AddRow(
			strconv.Itoa(e.ID),
			e.Date.String(),
			runewidth.Truncate(e.Title(0), TitleWidth, "…"),
			entry.JoinTags(e.Tags, " "),
		)
	}
	return Count(len(entries)) + "\n" + t.String()
}
