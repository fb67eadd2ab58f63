package entry

import (
	"encoding/json"
	"strings"
)

// Tag is a normalized label attached to an Entry: the leading '#' is stripped,
// surrounding whitespace trimmed, and case preserved.
type Tag string

// NewTag normalizes raw into a Tag.
func NewTag(raw string) Tag {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "#")
	return Tag(s)
}

// String returns the tag value without the '#' prefix.
func (t Tag) String() string {
	return string(t)
}

// Hashed returns the tag with a '#' prefix for display.
func (t Tag) Hashed() string {
	return "#" + string(t)
}

// UnmarshalJSON accepts both bare strings and legacy {"name": "..."} objects.
func (t *Tag) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = NewTag(s)
		return nil
	}

	var legacy struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &legacy); err != nil {
		return err
	}
	*t = NewTag(legacy.Name)
	return nil
}

// ParseTags normalizes a list of raw tag strings, dropping empty values.
func ParseTags(raw []string) []Tag {
	if len(raw) == 0 {
		return nil
	}
	tags := make([]Tag, 0, len(raw))
	for _, r := range raw {
		if tag := NewTag(r); tag != "" {
			tags = append(tags, tag)
		}
	}
	if len(tags) == 0 {
		return nil
	}
	return tags
}

// JoinTags joins tag values with sep.
func JoinTags(tags []Tag, sep string) string {
	parts := make([]string, len(tags))
	for i, t := range tags {
		parts[i] = string(t)
	}
	return strings.Join(parts, sep)
}
