package entry

import (
	"strings"
	"time"

	"github.com/hpungsan/jot/internal/errors"
)

// Entry is a single journal record. Entries are values; edits produce a new
// value that replaces the old one in the Journal.
type Entry struct {
	// ID is unique within a Journal and assigned by it on add
	ID int `json:"id"`

	// Timestamp is the creation instant in UTC
	Timestamp time.Time `json:"timestamp"`

	// Date is the UTC calendar date of Timestamp, fixed at creation
	Date Date `json:"date"`

	// Body is the entry text; never empty
	Body string `json:"body"`

	// Tags are in order of first appearance; duplicates are kept
	Tags []Tag `json:"tags"`
}

// New constructs an Entry from raw user content.
// When tagsVisibleInBody is false, '#'-prefixed tokens are removed from the body.
func New(id int, content string, tagsVisibleInBody bool, now time.Time) (Entry, error) {
	if strings.TrimSpace(content) == "" {
		return Entry{}, errors.NewAdd("entry cannot be empty")
	}

	body := BuildBody(content, tagsVisibleInBody)
	if body == "" {
		return Entry{}, errors.NewAdd("entry has no text besides tags")
	}

	tags := ExtractTags(content)
	if tags == nil {
		tags = []Tag{}
	}

	now = now.UTC()
	return Entry{
		ID:        id,
		Timestamp: now,
		Date:      NewDate(now),
		Body:      body,
		Tags:      tags,
	}, nil
}

// ExtractTags returns every whitespace-separated token starting with '#',
// with the '#' stripped, in order of appearance. Duplicates are kept.
func ExtractTags(content string) []Tag {
	var tags []Tag
	for _, word := range strings.Fields(content) {
		if isTagToken(word) {
			tags = append(tags, NewTag(word))
		}
	}
	return tags
}

// BuildBody computes the stored body for content.
func BuildBody(content string, tagsVisibleInBody bool) string {
	if tagsVisibleInBody {
		return strings.TrimSpace(content)
	}
	words := strings.Fields(content)
	kept := words[:0]
	for _, word := range words {
		if !isTagToken(word) {
			kept = append(kept, word)
		}
	}
	return strings.Join(kept, " ")
}

// HasTag reports whether the entry carries tag.
func (e Entry) HasTag(tag Tag) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Title returns the first line of the body, truncated to maxRunes.
func (e Entry) Title(maxRunes int) string {
	line, _, _ := strings.Cut(e.Body, "\n")
	line = strings.TrimSpace(line)
	runes := []rune(line)
	if maxRunes > 0 && len(runes) > maxRunes {
		return string(runes[:maxRunes])
	}
	return line
}

// isTagToken reports whether word is a '#tag' token. A lone "#" is not a tag.
func isTagToken(word string) bool {
	return len(word) > 1 && word[0] == '#'
}
