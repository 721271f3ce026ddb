package store

import (
	"fmt"
	"time"
)

// DateLayout is the only accepted input format for scheduling.
const DateLayout = "20060102"

// ParseDate parses a YYYYMMDD date to local midnight.
func ParseDate(s string) (time.Time, error) {
	if len(s) != len(DateLayout) {
		return time.Time{}, fmt.Errorf("%q: %w", s, ErrDateFormat)
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return time.Time{}, fmt.Errorf("%q: %w", s, ErrDateFormat)
		}
	}
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%q: %w", s, ErrDateFormat)
	}
	return t, nil
}

// Schedule moves a root record to local midnight of date (YYYYMMDD).
// Past and future dates are both accepted.
func (j *Journal) Schedule(ref Ref, date string) (*Record, error) {
	r, err := j.Resolve(ref)
	if err != nil {
		return nil, err
	}
	t, err := ParseDate(date)
	if err != nil {
		return nil, err
	}
	r.EffectiveDate = t
	return r, nil
}

// Complete marks records done. A stable ref completes that root record. A
// daily ref completes every root and every direct child of a root that
// carries the daily id; deeper descendants are never reached. Nothing is
// marked when no record matches.
func (j *Journal) Complete(ref Ref) ([]*Record, error) {
	if ref.Kind != RefDaily {
		target, err := j.Resolve(ref)
		if err != nil {
			return nil, err
		}
		target.Complete = true
		return []*Record{target}, nil
	}

	var done []*Record
	if ref.Value != 0 {
		for _, root := range j.Roots() {
			if int64(root.DailyID) == ref.Value {
				done = append(done, root)
			}
			for _, c := range j.Children(root) {
				if int64(c.DailyID) == ref.Value {
					done = append(done, c)
				}
			}
		}
	}
	if len(done) == 0 {
		return nil, fmt.Errorf("no record with %s: %w", ref, ErrNotFound)
	}
	for _, r := range done {
		r.Complete = true
	}
	return done, nil
}

// MarkComplete marks exactly the record with the given UUID as done, at any
// depth. Nothing else is touched.
func (j *Journal) MarkComplete(uuid string) (*Record, error) {
	r, ok := j.ByUUID(uuid)
	if !ok {
		return nil, fmt.Errorf("no record with uuid %s: %w", uuid, ErrNotFound)
	}
	r.Complete = true
	return r, nil
}

// Migrate moves every open root task to now and returns the moved records.
// Notes, events, completed records and subtasks are left alone.
func (j *Journal) Migrate() []*Record {
	now := time.Unix(j.now().Unix(), 0)
	var moved []*Record
	for _, r := range j.Roots() {
		if r.Kind == KindTask && r.IsOpen() {
			r.EffectiveDate = now
			moved = append(moved, r)
		}
	}
	return moved
}
