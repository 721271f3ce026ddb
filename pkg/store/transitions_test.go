package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	got, err := ParseDate("20991231")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2099, time.December, 31, 0, 0, 0, 0, time.Local), got)

	bad := []string{
		"",
		"2099-12-31",
		"2099123",
		"209912311",
		"abcdefgh",
		"+2099123",
		"20991301",
		"20990230",
	}
	for _, s := range bad {
		t.Run(s, func(t *testing.T) {
			_, err := ParseDate(s)
			assert.ErrorIs(t, err, ErrDateFormat)
		})
	}
}

func TestSchedule(t *testing.T) {
	j := setupTestJournal(t)
	key := j.Add("Plan trip", KindTask)

	r, err := j.Schedule(DailyRef(1), "20991231")
	require.NoError(t, err)
	assert.Equal(t, key, r.Key)
	assert.Equal(t, time.Date(2099, time.December, 31, 0, 0, 0, 0, time.Local).Unix(), r.EffectiveDate.Unix())
	assert.Equal(t, fixedNow.Unix(), r.CreatedAt.Unix())

	// Past dates are accepted too.
	r, err = j.Schedule(StableRef(key), "19991231")
	require.NoError(t, err)
	assert.Equal(t, 1999, r.EffectiveDate.Year())
}

func TestScheduleFailuresLeaveRecordUntouched(t *testing.T) {
	j := setupTestJournal(t)
	key := j.Add("Plan trip", KindTask)
	r, _ := j.Root(key)
	before := r.EffectiveDate

	_, err := j.Schedule(DailyRef(1), "2099/12/31")
	assert.ErrorIs(t, err, ErrDateFormat)

	_, err = j.Schedule(DailyRef(5), "20991231")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Equal(t, before, r.EffectiveDate)
}

func TestScheduleRootsOnly(t *testing.T) {
	j := setupTestJournal(t)
	key := j.Add("root", KindTask)
	child, err := j.AddSubtask(StableRef(key), "child", KindTask)
	require.NoError(t, err)

	_, err = j.Schedule(DailyRef(child.DailyID), "20991231")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCompleteByDailyID(t *testing.T) {
	j := setupTestJournal(t)
	j.Add("Buy milk", KindTask)
	key := j.Add("Standup", KindEvent)

	done, err := j.Complete(DailyRef(2))
	require.NoError(t, err)
	require.Len(t, done, 1)
	assert.Equal(t, key, done[0].Key)
	assert.Equal(t, GlyphComplete, done[0].Signifier())

	first, _ := j.Root(0)
	assert.True(t, first.IsOpen())
}

func TestCompleteReachesDirectChildrenOnly(t *testing.T) {
	j := setupTestJournal(t)

	rootKey := j.Add("root", KindTask)
	otherKey := j.Add("other", KindTask)
	child, err := j.AddSubtask(StableRef(otherKey), "child", KindTask)
	require.NoError(t, err)
	grandchild := &Record{UUID: "deep", Content: "grandchild", CreatedAt: fixedNow, EffectiveDate: fixedNow}
	j.attachChild(child, 1, grandchild)
	j.Recompute()

	root, _ := j.Root(rootKey)
	other, _ := j.Root(otherKey)
	assert.Equal(t, 1, root.DailyID)
	assert.Equal(t, 2, other.DailyID)
	assert.Equal(t, 3, child.DailyID)
	assert.Equal(t, 4, grandchild.DailyID)

	// The grandchild is listed in today's view but out of reach.
	_, err = j.Complete(DailyRef(grandchild.DailyID))
	assert.ErrorIs(t, err, ErrNotFound)
	assert.True(t, grandchild.IsOpen())

	done, err := j.Complete(DailyRef(child.DailyID))
	require.NoError(t, err)
	require.Len(t, done, 1)
	assert.Equal(t, child, done[0])
	assert.Equal(t, GlyphComplete, child.Signifier())
	assert.Equal(t, GlyphTask, grandchild.Signifier())
	assert.True(t, root.IsOpen())
	assert.True(t, other.IsOpen())

	done, err = j.Complete(DailyRef(root.DailyID))
	require.NoError(t, err)
	require.Len(t, done, 1)
	assert.Equal(t, root, done[0])
	assert.True(t, other.IsOpen())
}

func TestCompleteByStableKey(t *testing.T) {
	j := setupTestJournal(t)
	key := j.Add("old", KindNote)
	r, _ := j.Root(key)
	r.EffectiveDate = fixedNow.AddDate(0, 0, -10)
	j.Recompute()

	done, err := j.Complete(StableRef(key))
	require.NoError(t, err)
	require.Len(t, done, 1)
	assert.True(t, r.Complete)
}

func TestCompleteNotFound(t *testing.T) {
	j := setupTestJournal(t)
	key := j.Add("old", KindTask)
	r, _ := j.Root(key)
	r.EffectiveDate = fixedNow.AddDate(0, 0, -1)
	j.Recompute()

	// Records outside today's view carry daily id 0, which never matches.
	_, err := j.Complete(DailyRef(0))
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = j.Complete(DailyRef(3))
	assert.ErrorIs(t, err, ErrNotFound)
	assert.True(t, r.IsOpen())
}

func TestMigrateSelectivity(t *testing.T) {
	j := setupTestJournal(t)
	yesterday := fixedNow.AddDate(0, 0, -1)

	open := addAt(t, j, "open task", yesterday)
	completed := addAt(t, j, "done task", yesterday)
	completed.Complete = true
	note, ok := j.Root(j.Add("note", KindNote))
	require.True(t, ok)
	note.EffectiveDate = yesterday
	child, err := j.AddSubtask(StableRef(open.Key), "subtask", KindTask)
	require.NoError(t, err)
	child.EffectiveDate = yesterday

	later := fixedNow.Add(time.Hour)
	j.Now = func() time.Time { return later }
	moved := j.Migrate()

	require.Len(t, moved, 1)
	assert.Equal(t, open, moved[0])
	assert.Equal(t, later.Unix(), open.EffectiveDate.Unix())
	assert.Equal(t, yesterday, completed.EffectiveDate)
	assert.Equal(t, yesterday, note.EffectiveDate)
	assert.Equal(t, yesterday, child.EffectiveDate)
}

func TestEndToEndScenario(t *testing.T) {
	j := setupTestJournal(t)

	milk := j.Add("Buy milk", KindTask)
	assert.Equal(t, Key(0), milk)
	r0, _ := j.Root(milk)
	assert.Equal(t, GlyphTask, r0.Signifier())
	assert.Equal(t, 1, r0.DailyID)

	notes := j.Add("Meeting notes", KindNote)
	assert.Equal(t, Key(1), notes)
	r1, _ := j.Root(notes)
	assert.Equal(t, 2, r1.DailyID)

	_, err := j.Complete(DailyRef(1))
	require.NoError(t, err)
	assert.Equal(t, GlyphComplete, r0.Signifier())

	_, err = j.Schedule(DailyRef(2), "20991231")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2099, time.December, 31, 0, 0, 0, 0, time.Local).Unix(), r1.EffectiveDate.Unix())

	j.Recompute()
	assert.Equal(t, 0, r1.DailyID)
	assert.NotZero(t, r0.DailyID)
}

func TestMarkCompleteTouchesOneRecord(t *testing.T) {
	j := setupTestJournal(t)
	key := j.Add("root", KindTask)
	child, err := j.AddSubtask(StableRef(key), "child", KindTask)
	require.NoError(t, err)
	grandchild := &Record{UUID: "deep", Content: "grandchild", EffectiveDate: fixedNow}
	j.attachChild(child, 1, grandchild)

	r, err := j.MarkComplete("deep")
	require.NoError(t, err)
	assert.Same(t, grandchild, r)
	assert.True(t, grandchild.Complete)
	assert.True(t, child.IsOpen())
	root, _ := j.Root(key)
	assert.True(t, root.IsOpen())

	_, err = j.MarkComplete("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
