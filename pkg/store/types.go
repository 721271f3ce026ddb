package store

import (
	"fmt"
	"strings"
	"time"
)

// Kind is the type of a journal entry.
type Kind int

const (
	KindTask Kind = iota
	KindNote
	KindEvent
)

// Signifier glyphs shown in front of every entry.
const (
	GlyphTask     = "·"
	GlyphNote     = "-"
	GlyphEvent    = "○"
	GlyphComplete = "×"
)

// String returns the persisted name of the kind ("task", "note", "event").
func (k Kind) String() string {
	switch k {
	case KindNote:
		return "note"
	case KindEvent:
		return "event"
	default:
		return "task"
	}
}

// Glyph returns the default signifier for the kind.
func (k Kind) Glyph() string {
	switch k {
	case KindNote:
		return GlyphNote
	case KindEvent:
		return GlyphEvent
	default:
		return GlyphTask
	}
}

// ParseKind maps a kind name to a Kind. ok is false for unknown names.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "task":
		return KindTask, true
	case "note":
		return KindNote, true
	case "event":
		return KindEvent, true
	}
	return KindTask, false
}

// SplitKind joins words into entry text with single spaces. A trailing kind
// name sets the kind when there is text before it; the default is task.
func SplitKind(words []string) (string, Kind) {
	if len(words) > 1 {
		if kind, ok := ParseKind(words[len(words)-1]); ok {
			return strings.Join(words[:len(words)-1], " "), kind
		}
	}
	return strings.Join(words, " "), KindTask
}

// Key is the stable identifier of a root record.
type Key int64

// NodeID addresses a record inside a Journal's arena. It is only meaningful
// for the lifetime of the Journal that handed it out.
type NodeID int

// NoParent is the Parent of every root record.
const NoParent NodeID = -1

// Record is one journal entry.
type Record struct {
	UUID          string
	Content       string
	Kind          Kind
	Complete      bool
	CreatedAt     time.Time
	EffectiveDate time.Time

	// DailyID is reassigned by Recompute; 0 means not in today's view.
	DailyID int

	// Tree position
	ID       NodeID
	Key      Key // stable key, roots only
	LocalKey int // key within the parent, children only
	Parent   NodeID
	Children []NodeID // insertion order
}

// IsRoot returns true if the record has no parent.
func (r *Record) IsRoot() bool {
	return r.Parent == NoParent
}

// IsOpen returns true if the record has not been completed.
func (r *Record) IsOpen() bool {
	return !r.Complete
}

// Signifier returns the display glyph: the kind's glyph, or the complete
// glyph once the record is done.
func (r *Record) Signifier() string {
	if r.Complete {
		return GlyphComplete
	}
	return r.Kind.Glyph()
}

// RefKind tells which identifier space a Ref points into.
type RefKind int

const (
	RefStable RefKind = iota
	RefDaily
)

// Ref identifies a root record either by stable key or by today's daily id.
type Ref struct {
	Kind  RefKind
	Value int64
}

// StableRef references a root record by its stable key.
func StableRef(k Key) Ref {
	return Ref{Kind: RefStable, Value: int64(k)}
}

// DailyRef references a root record by its current daily id.
func DailyRef(id int) Ref {
	return Ref{Kind: RefDaily, Value: int64(id)}
}

func (r Ref) String() string {
	if r.Kind == RefDaily {
		return fmt.Sprintf("daily id %d", r.Value)
	}
	return fmt.Sprintf("key %d", r.Value)
}

// Entry is a record together with its depth in a flattened listing.
type Entry struct {
	Record *Record
	Depth  int
}
