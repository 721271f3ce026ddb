package store

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

// newUUID is a package-level var to allow test injection.
var newUUID = func() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Journal is the in-memory record store: an arena of records addressed by
// NodeID, with roots indexed by stable key.
type Journal struct {
	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time

	nodes   []*Record // nil slots are deleted records
	roots   map[Key]NodeID
	nextKey Key
}

// New returns an empty Journal.
func New() *Journal {
	return &Journal{
		Now:   time.Now,
		roots: make(map[Key]NodeID),
	}
}

func (j *Journal) now() time.Time {
	if j.Now == nil {
		return time.Now()
	}
	return j.Now()
}

// Today returns the current time as seen by the journal's clock.
func (j *Journal) Today() time.Time {
	return j.now()
}

// Len returns the number of root records.
func (j *Journal) Len() int {
	return len(j.roots)
}

// NextKey returns the stable key the next Add will use.
func (j *Journal) NextKey() Key {
	return j.nextKey
}

// Node returns the record with the given id, or nil if it was deleted.
func (j *Journal) Node(id NodeID) *Record {
	if id < 0 || int(id) >= len(j.nodes) {
		return nil
	}
	return j.nodes[id]
}

// Root returns the root record with the given stable key.
func (j *Journal) Root(k Key) (*Record, bool) {
	id, ok := j.roots[k]
	if !ok {
		return nil, false
	}
	return j.nodes[id], true
}

// Roots returns all root records ordered by stable key.
func (j *Journal) Roots() []*Record {
	keys := make([]Key, 0, len(j.roots))
	for k := range j.roots {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(a, b int) bool { return keys[a] < keys[b] })

	roots := make([]*Record, 0, len(keys))
	for _, k := range keys {
		roots = append(roots, j.nodes[j.roots[k]])
	}
	return roots
}

// Children returns the direct children of r in insertion order.
func (j *Journal) Children(r *Record) []*Record {
	children := make([]*Record, 0, len(r.Children))
	for _, id := range r.Children {
		if c := j.Node(id); c != nil {
			children = append(children, c)
		}
	}
	return children
}

// Walk visits every record depth-first, roots in key order and children in
// insertion order. Returning false from fn stops the walk.
func (j *Journal) Walk(fn func(r *Record, depth int) bool) {
	roots := j.Roots()
	stack := make([]Entry, 0, len(roots))
	for i := len(roots) - 1; i >= 0; i-- {
		stack = append(stack, Entry{Record: roots[i]})
	}
	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(e.Record, e.Depth) {
			return
		}
		children := j.Children(e.Record)
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, Entry{Record: children[i], Depth: e.Depth + 1})
		}
	}
}

// Add creates a root record and returns its stable key. The record is
// scheduled for now and the daily numbering is recomputed.
func (j *Journal) Add(content string, kind Kind) Key {
	key := j.nextKey
	j.attachRoot(key, j.newRecord(content, kind))
	j.Recompute()
	return key
}

// AddSubtask creates a child of the root record ref resolves to.
func (j *Journal) AddSubtask(ref Ref, content string, kind Kind) (*Record, error) {
	parent, err := j.Resolve(ref)
	if err != nil {
		return nil, err
	}

	localKey := 0
	for _, c := range j.Children(parent) {
		if c.LocalKey > localKey {
			localKey = c.LocalKey
		}
	}

	child := j.newRecord(content, kind)
	j.attachChild(parent, localKey+1, child)
	j.Recompute()
	return child, nil
}

// Delete removes a root record and its whole subtree.
func (j *Journal) Delete(k Key) error {
	id, ok := j.roots[k]
	if !ok {
		return fmt.Errorf("deleting %s: %w", StableRef(k), ErrNotFound)
	}
	delete(j.roots, k)

	stack := []NodeID{id}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if r := j.Node(n); r != nil {
			stack = append(stack, r.Children...)
			j.nodes[n] = nil
		}
	}
	return nil
}

// Resolve returns the root record a Ref points at. Daily ids are matched only
// among root records against the current numbering.
func (j *Journal) Resolve(ref Ref) (*Record, error) {
	switch ref.Kind {
	case RefStable:
		if r, ok := j.Root(Key(ref.Value)); ok {
			return r, nil
		}
	case RefDaily:
		if ref.Value == 0 {
			break
		}
		for _, id := range j.roots {
			if r := j.nodes[id]; int64(r.DailyID) == ref.Value {
				return r, nil
			}
		}
	}
	return nil, fmt.Errorf("no record with %s: %w", ref, ErrNotFound)
}

// ByUUID returns the record with the given UUID at any depth.
func (j *Journal) ByUUID(uuid string) (*Record, bool) {
	for _, r := range j.nodes {
		if r != nil && r.UUID == uuid {
			return r, true
		}
	}
	return nil, false
}

func (j *Journal) newRecord(content string, kind Kind) *Record {
	now := time.Unix(j.now().Unix(), 0)
	return &Record{
		UUID:          newUUID(),
		Content:       content,
		Kind:          kind,
		CreatedAt:     now,
		EffectiveDate: now,
	}
}

func (j *Journal) alloc(r *Record) NodeID {
	r.ID = NodeID(len(j.nodes))
	j.nodes = append(j.nodes, r)
	return r.ID
}

// attachRoot inserts r as a root under key and keeps the key counter ahead of
// every key ever inserted.
func (j *Journal) attachRoot(key Key, r *Record) {
	r.Key = key
	r.Parent = NoParent
	j.roots[key] = j.alloc(r)
	if key >= j.nextKey {
		j.nextKey = key + 1
	}
}

func (j *Journal) attachChild(parent *Record, localKey int, r *Record) {
	r.LocalKey = localKey
	r.Parent = parent.ID
	parent.Children = append(parent.Children, j.alloc(r))
}
