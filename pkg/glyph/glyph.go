package glyph

import "fmt"

// Glyph is a symbol printed next to projects and tasks.
type Glyph struct {
	Symbol  string
	Meaning string
}

func (g Glyph) String() string {
	return g.Symbol
}

const (
	escape        = "\x1b"
	resetCode     = 0
	boldCode      = 1
	underlineCode = 4
	strikeCode    = 9
)

func Strike(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, strikeCode, in, escape, resetCode)
}

func Bold(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, boldCode, in, escape, resetCode)
}

func Underline(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, underlineCode, in, escape, resetCode)
}

type Mark int

const (
	Project Mark = iota
	ProjectDone
	Task
	TaskDone
	Reminder
	ReminderOff
	Image
	Selected
)

var defaults = []Glyph{
	Project:     {Symbol: "□", Meaning: "project"},
	ProjectDone: {Symbol: "■", Meaning: "project completed"},
	Task:        {Symbol: "●", Meaning: "task"},
	TaskDone:    {Symbol: "✘", Meaning: "task completed"},
	Reminder:    {Symbol: "⏰", Meaning: "reminder set"},
	ReminderOff: {Symbol: "⏱", Meaning: "reminder disabled"},
	Image:       {Symbol: "▣", Meaning: "images attached"},
	Selected:    {Symbol: "›", Meaning: "selected"},
}

// DefaultGlyphs returns the legend in display order.
func DefaultGlyphs() []Glyph {
	g := make([]Glyph, len(defaults))
	copy(g, defaults)
	return g
}

func (m Mark) Glyph() Glyph {
	if m < 0 || int(m) >= len(defaults) {
		return Glyph{}
	}
	return defaults[m]
}

func (m Mark) String() string {
	return m.Glyph().String()
}

// ForProject picks the project mark for done.
func ForProject(done bool) Mark {
	if done {
		return ProjectDone
	}
	return Project
}

// ForTask picks the task mark for done.
func ForTask(done bool) Mark {
	if done {
		return TaskDone
	}
	return Task
}
