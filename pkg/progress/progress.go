// Package progress carries "checked N of M, found K" updates from long
// sequential loops to whatever is showing them.
package progress

import (
	"fmt"
	"io"
	"strings"
)

// Update is one step of a loop.
type Update struct {
	Stage   string
	Label   string
	Checked int
	Total   int
	Found   int
}

// Reporter receives updates. Done is called once when the loop finishes.
type Reporter interface {
	Report(u Update)
	Done(stage string)
}

// Nop discards every update.
type Nop struct{}

func (Nop) Report(Update) {}
func (Nop) Done(string)   {}

// Line rewrites a single status line on w, the way a terminal progress bar
// would.
type Line struct {
	w     io.Writer
	width int
}

func NewLine(w io.Writer) *Line {
	return &Line{w: w}
}

func (l *Line) Report(u Update) {
	msg := fmt.Sprintf("%s: %s (%d/%d) - Found: %d", u.Stage, u.Label, u.Checked, u.Total, u.Found)
	pad := ""
	if n := l.width - len(msg); n > 0 {
		pad = strings.Repeat(" ", n)
	}
	l.width = len(msg)
	fmt.Fprintf(l.w, "\r%s%s", msg, pad)
}

func (l *Line) Done(stage string) {
	if l.width > 0 {
		fmt.Fprintf(l.w, "\r%s\r", strings.Repeat(" ", l.width))
	}
	l.width = 0
}

// Recorder keeps every update in memory.
type Recorder struct {
	Updates []Update
	Stages  []string
}

func (r *Recorder) Report(u Update) {
	r.Updates = append(r.Updates, u)
}

func (r *Recorder) Done(stage string) {
	r.Stages = append(r.Stages, stage)
}

// Last returns the most recent update, or the zero Update.
func (r *Recorder) Last() Update {
	if len(r.Updates) == 0 {
		return Update{}
	}
	return r.Updates[len(r.Updates)-1]
}
