// Package view renders journal listings for the terminal.
package view

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/stefanpenner/bujo/pkg/store"
)

// DefaultWidth is the width of the rules drawn around listings.
const DefaultWidth = 60

const (
	dateLayout   = "2006-01-02"
	stampLayout  = "2006-01-02T15:04:05"
	headerLayout = "Monday, January 2 2006"
	indent       = "  "
)

var titleCase = cases.Title(language.English)

// Printer writes listings to w. Colors are only emitted when w is a
// terminal that supports them.
type Printer struct {
	Width int
	Color bool

	w      io.Writer
	styles styles
}

// New returns a Printer for w.
func New(w io.Writer) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		Width:  DefaultWidth,
		Color:  r.ColorProfile() != termenv.Ascii,
		w:      w,
		styles: newStyles(r),
	}
}

func (p *Printer) paint(st lipgloss.Style, s string) string {
	if !p.Color {
		return s
	}
	return st.Render(s)
}

func (p *Printer) rule(keyWidth int) string {
	rest := p.Width - keyWidth - 2
	if rest < 1 {
		rest = 1
	}
	return p.paint(p.styles.border, strings.Repeat("-", keyWidth+1)+"+"+strings.Repeat("-", rest))
}

func (p *Printer) bar() string {
	return p.paint(p.styles.border, "|")
}

func (p *Printer) glyph(r *store.Record) string {
	g := r.Signifier()
	switch {
	case r.Complete:
		return p.paint(p.styles.complete, g)
	case r.Kind == store.KindNote:
		return p.paint(p.styles.note, g)
	case r.Kind == store.KindEvent:
		return p.paint(p.styles.event, g)
	default:
		return p.paint(p.styles.task, g)
	}
}

func (p *Printer) content(r *store.Record) string {
	if r.Complete {
		return p.paint(p.styles.done, r.Content)
	}
	return r.Content
}

func (p *Printer) flush(b *strings.Builder) error {
	_, err := io.WriteString(p.w, b.String())
	return err
}

// Print lists every root record sorted by effective date as
// `key | date signifier content`.
func (p *Printer) Print(j *store.Journal) error {
	var roots []*store.Record
	for _, e := range j.AllEntries() {
		if e.Depth == 0 {
			roots = append(roots, e.Record)
		}
	}

	kw := 1
	for _, r := range roots {
		kw = max(kw, len(strconv.FormatInt(int64(r.Key), 10)))
	}

	var b strings.Builder
	b.WriteString(p.rule(kw) + "\n")
	fmt.Fprintf(&b, "%s%s %s\n", strings.Repeat(" ", kw+1), p.bar(), p.paint(p.styles.title, "bujo"))
	b.WriteString(p.rule(kw) + "\n")
	for _, r := range roots {
		fmt.Fprintf(&b, "%s %s %s %s %s\n",
			p.paint(p.styles.key, fmt.Sprintf("%*d", kw, r.Key)),
			p.bar(),
			p.paint(p.styles.date, r.EffectiveDate.Format(dateLayout)),
			p.glyph(r),
			p.content(r),
		)
	}
	return p.flush(&b)
}

// Daily lists today's view: visible records prefixed with their daily ids,
// subtasks indented under their parents, followed by a per-kind summary.
func (p *Printer) Daily(j *store.Journal) error {
	entries := j.DailyEntries()

	kw := 1
	for _, e := range entries {
		kw = max(kw, len(strconv.Itoa(e.Record.DailyID)))
	}

	var b strings.Builder
	b.WriteString(p.paint(p.styles.title, j.Today().Format(headerLayout)) + "\n")
	b.WriteString(p.rule(kw) + "\n")
	if len(entries) == 0 {
		b.WriteString("Nothing scheduled for today.\n")
		return p.flush(&b)
	}
	for _, e := range entries {
		fmt.Fprintf(&b, "%s %s %s%s %s\n",
			p.paint(p.styles.key, fmt.Sprintf("%*d", kw, e.Record.DailyID)),
			p.bar(),
			strings.Repeat(indent, e.Depth),
			p.glyph(e.Record),
			p.content(e.Record),
		)
	}
	b.WriteString(p.rule(kw) + "\n")
	b.WriteString(summary(entries) + "\n")
	return p.flush(&b)
}

// summary counts entries per kind, e.g. "Task 2  Event 1  2 open".
func summary(entries []store.Entry) string {
	var counts [3]int
	open := 0
	for _, e := range entries {
		counts[e.Record.Kind]++
		if e.Record.IsOpen() {
			open++
		}
	}

	var parts []string
	for _, k := range []store.Kind{store.KindTask, store.KindNote, store.KindEvent} {
		if counts[k] > 0 {
			parts = append(parts, fmt.Sprintf("%s %d", titleCase.String(k.String()), counts[k]))
		}
	}
	parts = append(parts, fmt.Sprintf("%d open", open))
	return strings.Join(parts, "  ")
}

// Debug dumps every record at every depth with its internal fields.
func (p *Printer) Debug(j *store.Journal) error {
	var b strings.Builder
	fmt.Fprintf(&b, "next_key=%d roots=%d\n", j.NextKey(), j.Len())
	for _, e := range j.AllEntries() {
		r := e.Record
		id := fmt.Sprintf("key=%d", r.Key)
		if !r.IsRoot() {
			id = fmt.Sprintf("local=%d", r.LocalKey)
		}
		fmt.Fprintf(&b, "%s%s %s daily=%d kind=%s complete=%t effective=%s created=%s uuid=%s content=%q\n",
			strings.Repeat(indent, e.Depth),
			r.Signifier(),
			id,
			r.DailyID,
			r.Kind,
			r.Complete,
			r.EffectiveDate.Format(stampLayout),
			r.CreatedAt.Format(stampLayout),
			r.UUID,
			r.Content,
		)
	}
	return p.flush(&b)
}
