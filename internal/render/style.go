package render

import (
	"github.com/fatih/color"
)

// Style decorates the individual segments of a formatted entry.
type Style interface {
	ID(s string) string
	Date(s string) string
	Time(s string) string
	Tag(s string) string
	Highlight(s string) string
	Separator(s string) string
}

// Plain highlight markers.
const (
	MarkOpen  = "**"
	MarkClose = "**"
)

// PlainStyle leaves segments untouched and marks highlights with MarkOpen/MarkClose.
type PlainStyle struct{}

func (PlainStyle) ID(s string) string        { return s }
func (PlainStyle) Date(s string) string      { return s }
func (PlainStyle) Time(s string) string      { return s }
func (PlainStyle) Tag(s string) string       { return s }
func (PlainStyle) Separator(s string) string { return s }
func (PlainStyle) Highlight(s string) string { return MarkOpen + s + MarkClose }

// ColorStyle renders segments with ANSI colors.
type ColorStyle struct {
	id        *color.Color
	date      *color.Color
	time      *color.Color
	tag       *color.Color
	highlight *color.Color
	separator *color.Color
}

// NewColorStyle returns a ColorStyle that always emits escape codes; callers
// decide whether color is wanted (terminal detection, --no-color).
func NewColorStyle() *ColorStyle {
	s := &ColorStyle{
		id:        color.New(color.FgCyan, color.Bold),
		date:      color.New(color.FgHiBlack),
		time:      color.New(color.FgHiBlack, color.Underline),
		tag:       color.New(color.FgBlack, color.BgBlue),
		highlight: color.New(color.FgBlack, color.BgYellow),
		separator: color.New(color.FgHiBlack),
	}
	for _, c := range []*color.Color{s.id, s.date, s.time, s.tag, s.highlight, s.separator} {
		c.EnableColor()
	}
	return s
}

func (s *ColorStyle) ID(v string) string        { return s.id.Sprint(v) }
func (s *ColorStyle) Date(v string) string      { return s.date.Sprint(v) }
func (s *ColorStyle) Time(v string) string      { return s.time.Sprint(v) }
func (s *ColorStyle) Tag(v string) string       { return s.tag.Sprint(v) }
func (s *ColorStyle) Highlight(v string) string { return s.highlight.Sprint(v) }
func (s *ColorStyle) Separator(v string) string { return s.separator.Sprint(v) }

// Success formats a confirmation message in green.
func Success(msg string, enabled bool) string {
	if !enabled {
		return msg
	}
	c := color.New(color.FgGreen)
	c.EnableColor()
	return c.Sprint(msg)
}
