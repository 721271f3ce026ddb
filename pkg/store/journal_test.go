package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedNow is mid-afternoon so that +/- a few hours stays on the same day.
var fixedNow = time.Date(2026, time.March, 14, 15, 0, 0, 0, time.Local)

func setupTestJournal(t *testing.T) *Journal {
	t.Helper()
	j := New()
	j.Now = func() time.Time { return fixedNow }
	return j
}

func TestAddAssignsSequentialKeys(t *testing.T) {
	j := setupTestJournal(t)

	k0 := j.Add("Buy milk", KindTask)
	k1 := j.Add("Meeting notes", KindNote)
	k2 := j.Add("Dentist", KindEvent)

	assert.Equal(t, Key(0), k0)
	assert.Equal(t, Key(1), k1)
	assert.Equal(t, Key(2), k2)
	assert.Equal(t, 3, j.Len())
	assert.Equal(t, Key(3), j.NextKey())
}

func TestAddSetsFields(t *testing.T) {
	j := setupTestJournal(t)

	key := j.Add("", KindEvent)
	r, ok := j.Root(key)
	require.True(t, ok)

	assert.Equal(t, "", r.Content)
	assert.Equal(t, KindEvent, r.Kind)
	assert.Equal(t, GlyphEvent, r.Signifier())
	assert.Equal(t, fixedNow.Unix(), r.CreatedAt.Unix())
	assert.Equal(t, fixedNow.Unix(), r.EffectiveDate.Unix())
	assert.True(t, r.IsRoot())
	assert.True(t, r.IsOpen())
	assert.NotEmpty(t, r.UUID)
	assert.Equal(t, 1, r.DailyID)
}

func TestDeletedMaxKeyIsNotReused(t *testing.T) {
	j := setupTestJournal(t)

	j.Add("a", KindTask)
	last := j.Add("b", KindTask)
	require.NoError(t, j.Delete(last))

	next := j.Add("c", KindTask)
	assert.Equal(t, Key(2), next)
	_, ok := j.Root(last)
	assert.False(t, ok)
}

func TestAddSubtask(t *testing.T) {
	j := setupTestJournal(t)

	parent := j.Add("project", KindTask)
	other := j.Add("other", KindTask)

	c1, err := j.AddSubtask(StableRef(parent), "step one", KindTask)
	require.NoError(t, err)
	c2, err := j.AddSubtask(StableRef(parent), "step two", KindNote)
	require.NoError(t, err)
	c3, err := j.AddSubtask(StableRef(other), "elsewhere", KindTask)
	require.NoError(t, err)

	assert.Equal(t, 1, c1.LocalKey)
	assert.Equal(t, 2, c2.LocalKey)
	// Local keys are scoped to the parent.
	assert.Equal(t, 1, c3.LocalKey)

	p, _ := j.Root(parent)
	children := j.Children(p)
	require.Len(t, children, 2)
	assert.Equal(t, "step one", children[0].Content)
	assert.Equal(t, "step two", children[1].Content)
	assert.Equal(t, p.ID, c1.Parent)
	assert.False(t, c1.IsRoot())
	assert.Equal(t, fixedNow.Unix(), c2.EffectiveDate.Unix())

	// Children are numbered after the roots.
	assert.Equal(t, 3, c1.DailyID)
	assert.Equal(t, 4, c2.DailyID)
	assert.Equal(t, 5, c3.DailyID)
}

func TestAddSubtaskByDailyID(t *testing.T) {
	j := setupTestJournal(t)

	j.Add("first", KindTask)
	key := j.Add("second", KindTask)

	child, err := j.AddSubtask(DailyRef(2), "nested", KindTask)
	require.NoError(t, err)

	p, _ := j.Root(key)
	assert.Equal(t, p.ID, child.Parent)
}

func TestAddSubtaskTargetsRootsOnly(t *testing.T) {
	j := setupTestJournal(t)

	key := j.Add("root", KindTask)
	child, err := j.AddSubtask(StableRef(key), "child", KindTask)
	require.NoError(t, err)
	require.Equal(t, 2, child.DailyID)

	_, err = j.AddSubtask(DailyRef(child.DailyID), "grandchild", KindTask)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddSubtaskNotFound(t *testing.T) {
	j := setupTestJournal(t)

	_, err := j.AddSubtask(StableRef(7), "orphan", KindTask)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, j.Len())
}

func TestDeleteRemovesSubtree(t *testing.T) {
	j := setupTestJournal(t)

	key := j.Add("root", KindTask)
	child, err := j.AddSubtask(StableRef(key), "child", KindTask)
	require.NoError(t, err)
	grandchild := &Record{Content: "grandchild"}
	j.attachChild(child, 1, grandchild)
	keep := j.Add("keep", KindNote)

	require.NoError(t, j.Delete(key))

	assert.Nil(t, j.Node(child.ID))
	assert.Nil(t, j.Node(grandchild.ID))
	assert.Equal(t, 1, j.Len())
	_, ok := j.Root(keep)
	assert.True(t, ok)

	err = j.Delete(key)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolve(t *testing.T) {
	j := setupTestJournal(t)

	j.Add("today", KindTask)
	old := j.Add("yesterday", KindTask)
	r, _ := j.Root(old)
	r.EffectiveDate = fixedNow.AddDate(0, 0, -1)
	j.Recompute()

	got, err := j.Resolve(DailyRef(1))
	require.NoError(t, err)
	assert.Equal(t, "today", got.Content)

	got, err = j.Resolve(StableRef(old))
	require.NoError(t, err)
	assert.Equal(t, "yesterday", got.Content)

	tests := []struct {
		name string
		ref  Ref
	}{
		{"daily zero never matches", DailyRef(0)},
		{"unknown daily id", DailyRef(9)},
		{"unknown key", StableRef(9)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := j.Resolve(tt.ref)
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestWalkOrder(t *testing.T) {
	j := setupTestJournal(t)

	a := j.Add("a", KindTask)
	b := j.Add("b", KindTask)
	a1, err := j.AddSubtask(StableRef(a), "a1", KindTask)
	require.NoError(t, err)
	j.attachChild(a1, 1, &Record{Content: "a1x"})
	_, err = j.AddSubtask(StableRef(a), "a2", KindTask)
	require.NoError(t, err)
	_, err = j.AddSubtask(StableRef(b), "b1", KindTask)
	require.NoError(t, err)

	var got []string
	var depths []int
	j.Walk(func(r *Record, depth int) bool {
		got = append(got, r.Content)
		depths = append(depths, depth)
		return true
	})

	assert.Equal(t, []string{"a", "a1", "a1x", "a2", "b", "b1"}, got)
	assert.Equal(t, []int{0, 1, 2, 1, 0, 1}, depths)
}

func TestWalkStops(t *testing.T) {
	j := setupTestJournal(t)
	j.Add("a", KindTask)
	j.Add("b", KindTask)

	count := 0
	j.Walk(func(*Record, int) bool {
		count++
		return false
	})
	assert.Equal(t, 1, count)
}

func TestSignifierFollowsCompletion(t *testing.T) {
	for _, kind := range []Kind{KindTask, KindNote, KindEvent} {
		t.Run(kind.String(), func(t *testing.T) {
			r := &Record{Kind: kind}
			assert.Equal(t, kind.Glyph(), r.Signifier())
			r.Complete = true
			assert.Equal(t, GlyphComplete, r.Signifier())
		})
	}
}

func TestParseKind(t *testing.T) {
	for _, name := range []string{"task", "note", "event"} {
		k, ok := ParseKind(name)
		assert.True(t, ok)
		assert.Equal(t, name, k.String())
	}

	k, ok := ParseKind("meeting")
	assert.False(t, ok)
	assert.Equal(t, KindTask, k)
}

func TestSplitKind(t *testing.T) {
	tests := []struct {
		words       []string
		wantContent string
		wantKind    Kind
	}{
		{[]string{"Buy", "milk"}, "Buy milk", KindTask},
		{[]string{"Standup", "event"}, "Standup", KindEvent},
		{[]string{"Meeting", "notes", "note"}, "Meeting notes", KindNote},
		{[]string{"note"}, "note", KindTask},
		{[]string{"Buy", "milk", "meeting"}, "Buy milk meeting", KindTask},
		{[]string{""}, "", KindTask},
	}
	for _, tt := range tests {
		content, kind := SplitKind(tt.words)
		assert.Equal(t, tt.wantContent, content, "%v", tt.words)
		assert.Equal(t, tt.wantKind, kind, "%v", tt.words)
	}
}

func TestByUUID(t *testing.T) {
	j := setupTestJournal(t)
	key := j.Add("root", KindTask)
	child, err := j.AddSubtask(StableRef(key), "child", KindNote)
	require.NoError(t, err)

	got, ok := j.ByUUID(child.UUID)
	require.True(t, ok)
	assert.Same(t, child, got)

	require.NoError(t, j.Delete(key))
	_, ok = j.ByUUID(child.UUID)
	assert.False(t, ok)
}
