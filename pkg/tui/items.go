package tui

import (
	"strconv"

	"github.com/stefanpenner/bujo/pkg/store"
)

// ListItem is one row of the entry list.
type ListItem struct {
	UUID   string
	Label  string // daily id in the daily view, stable key in the full view
	Record *store.Record
	Depth  int
}

// BuildItems flattens the journal into list rows. The daily view shows
// today's entries labeled by daily id; the full view shows everything
// labeled by stable key.
func BuildItems(j *store.Journal, showAll bool) []ListItem {
	var entries []store.Entry
	if showAll {
		entries = j.AllEntries()
	} else {
		entries = j.DailyEntries()
	}

	items := make([]ListItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, ListItem{
			UUID:   e.Record.UUID,
			Label:  label(e.Record, showAll),
			Record: e.Record,
			Depth:  e.Depth,
		})
	}
	return items
}

func label(r *store.Record, showAll bool) string {
	switch {
	case !showAll:
		return strconv.Itoa(r.DailyID)
	case r.IsRoot():
		return strconv.FormatInt(int64(r.Key), 10)
	default:
		return "." + strconv.Itoa(r.LocalKey)
	}
}

// labelWidth is the widest label in items.
func labelWidth(items []ListItem) int {
	w := 1
	for _, it := range items {
		w = max(w, len(it.Label))
	}
	return w
}
