package store

import (
	"sort"
	"time"
)

// Recompute renumbers the daily ids of the whole tree.
//
// Records are visited breadth-first: roots sorted by (effective date, key),
// then each record's children sorted by (effective date, local key). One
// counter is shared across the walk, so roots shown today always get 1..N and
// visible children continue from N+1. A child is in today's view only when
// its own effective date is today and its parent is in today's view.
func (j *Journal) Recompute() {
	today := j.now()

	type item struct {
		rec           *Record
		parentVisible bool
	}

	roots := j.Roots()
	sortByDate(roots)
	queue := make([]item, 0, len(roots))
	for _, r := range roots {
		queue = append(queue, item{rec: r, parentVisible: true})
	}

	counter := 1
	for len(queue) > 0 {
		it := queue[0]
		queue = queue[1:]

		visible := it.parentVisible && SameDay(it.rec.EffectiveDate, today)
		if visible {
			it.rec.DailyID = counter
			counter++
		} else {
			it.rec.DailyID = 0
		}

		children := j.Children(it.rec)
		sortByDate(children)
		for _, c := range children {
			queue = append(queue, item{rec: c, parentVisible: visible})
		}
	}
}

// sortByDate stable-sorts records by effective date, preserving the incoming
// key order between records on the same second.
func sortByDate(recs []*Record) {
	sort.SliceStable(recs, func(a, b int) bool {
		return recs[a].EffectiveDate.Unix() < recs[b].EffectiveDate.Unix()
	})
}

// SameDay reports whether a and b fall on the same local calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.In(time.Local).Date()
	by, bm, bd := b.In(time.Local).Date()
	return ay == by && am == bm && ad == bd
}

// DailyEntries returns today's view: visible roots in daily id order, each
// followed depth-first by its visible descendants.
func (j *Journal) DailyEntries() []Entry {
	var roots []*Record
	for _, r := range j.Roots() {
		if r.DailyID != 0 {
			roots = append(roots, r)
		}
	}
	return j.flatten(roots, func(r *Record) bool { return r.DailyID != 0 }, byDailyID)
}

// AllEntries returns every record: roots sorted by effective date, each
// followed depth-first by its descendants.
func (j *Journal) AllEntries() []Entry {
	roots := j.Roots()
	sortByDate(roots)
	return j.flatten(roots, func(*Record) bool { return true }, sortByDate)
}

func byDailyID(recs []*Record) {
	sort.SliceStable(recs, func(a, b int) bool { return recs[a].DailyID < recs[b].DailyID })
}

func (j *Journal) flatten(roots []*Record, keep func(*Record) bool, order func([]*Record)) []Entry {
	order(roots)
	var out []Entry
	stack := make([]Entry, 0, len(roots))
	for i := len(roots) - 1; i >= 0; i-- {
		stack = append(stack, Entry{Record: roots[i]})
	}
	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, e)

		var children []*Record
		for _, c := range j.Children(e.Record) {
			if keep(c) {
				children = append(children, c)
			}
		}
		order(children)
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, Entry{Record: children[i], Depth: e.Depth + 1})
		}
	}
	return out
}
