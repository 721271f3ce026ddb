package store

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"
)

// document is the on-disk shape of a Journal.
type document struct {
	NextKey *int64                `json:"next_key,omitempty"`
	Content map[string]*recordDoc `json:"content"`
}

type recordDoc struct {
	ContentType   string                `json:"content_type"`
	Content       string                `json:"content"`
	Signifier     string                `json:"signifier"`
	Complete      bool                  `json:"complete"`
	EffectiveDate int64                 `json:"effective_date"`
	CreatedAt     int64                 `json:"created_at"`
	DailyID       int                   `json:"daily_id"`
	UUID          string                `json:"uuid,omitempty"`
	Subtasks      map[string]*recordDoc `json:"subtasks"`
}

// Marshal renders a Journal to its JSON document. Daily ids are written as
// they are; nothing is recomputed.
func Marshal(j *Journal) ([]byte, error) {
	next := int64(j.nextKey)
	doc := document{
		NextKey: &next,
		Content: make(map[string]*recordDoc, len(j.roots)),
	}

	type pending struct {
		rec  *Record
		into map[string]*recordDoc
		key  int64
	}
	var stack []pending
	for _, r := range j.Roots() {
		stack = append(stack, pending{rec: r, into: doc.Content, key: int64(r.Key)})
	}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		d := toDoc(p.rec)
		p.into[strconv.FormatInt(p.key, 10)] = d
		for _, c := range j.Children(p.rec) {
			stack = append(stack, pending{rec: c, into: d.Subtasks, key: int64(c.LocalKey)})
		}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding journal: %w", err)
	}
	return data, nil
}

// Unmarshal parses a JSON document into a Journal. The caller is expected to
// call Recompute; persisted daily ids are carried over untouched.
func Unmarshal(data []byte) (*Journal, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}

	j := New()

	type pending struct {
		doc    *recordDoc
		parent *Record
		key    int64
	}
	roots, err := sortedDocs(doc.Content)
	if err != nil {
		return nil, err
	}
	stack := make([]pending, 0, len(roots))
	for i := len(roots) - 1; i >= 0; i-- {
		stack = append(stack, pending{doc: roots[i].doc, key: roots[i].key})
	}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if p.doc == nil {
			return nil, fmt.Errorf("%w: null record at key %d", ErrMalformedDocument, p.key)
		}

		r := fromDoc(p.doc)
		if p.parent == nil {
			j.attachRoot(Key(p.key), r)
		} else {
			j.attachChild(p.parent, int(p.key), r)
		}

		children, err := sortedDocs(p.doc.Subtasks)
		if err != nil {
			return nil, err
		}
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, pending{doc: children[i].doc, parent: r, key: children[i].key})
		}
	}

	if doc.NextKey != nil && Key(*doc.NextKey) > j.nextKey {
		j.nextKey = Key(*doc.NextKey)
	}
	return j, nil
}

type keyedDoc struct {
	key int64
	doc *recordDoc
}

func sortedDocs(m map[string]*recordDoc) ([]keyedDoc, error) {
	out := make([]keyedDoc, 0, len(m))
	seen := make(map[int64]string, len(m))
	for k, d := range m {
		n, err := strconv.ParseInt(k, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: key %q is not an integer", ErrMalformedDocument, k)
		}
		if _, dup := seen[n]; dup {
			return nil, fmt.Errorf("%w: keys %q and %q are the same key", ErrMalformedDocument, seen[n], k)
		}
		seen[n] = k
		out = append(out, keyedDoc{key: n, doc: d})
	}
	sort.Slice(out, func(a, b int) bool { return out[a].key < out[b].key })
	return out, nil
}

func toDoc(r *Record) *recordDoc {
	return &recordDoc{
		ContentType:   r.Kind.String(),
		Content:       r.Content,
		Signifier:     r.Signifier(),
		Complete:      r.Complete,
		EffectiveDate: r.EffectiveDate.Unix(),
		CreatedAt:     r.CreatedAt.Unix(),
		DailyID:       r.DailyID,
		UUID:          r.UUID,
		Subtasks:      make(map[string]*recordDoc, len(r.Children)),
	}
}

func fromDoc(d *recordDoc) *Record {
	kind, _ := ParseKind(d.ContentType)
	id := d.UUID
	if id == "" {
		id = newUUID()
	}
	return &Record{
		UUID:          id,
		Content:       d.Content,
		Kind:          kind,
		Complete:      d.Complete || d.Signifier == GlyphComplete,
		CreatedAt:     time.Unix(d.CreatedAt, 0),
		EffectiveDate: time.Unix(d.EffectiveDate, 0),
		DailyID:       d.DailyID,
	}
}
