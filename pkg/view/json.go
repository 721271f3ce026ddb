package view

import (
	"encoding/json"

	"github.com/stefanpenner/bujo/pkg/store"
)

// EntryJSON is the machine-readable form of a listed record.
type EntryJSON struct {
	Key           *int64 `json:"key,omitempty"`
	LocalKey      *int   `json:"local_key,omitempty"`
	DailyID       int    `json:"daily_id"`
	Depth         int    `json:"depth"`
	Kind          string `json:"kind"`
	Signifier     string `json:"signifier"`
	Complete      bool   `json:"complete"`
	Content       string `json:"content"`
	EffectiveDate int64  `json:"effective_date"`
	CreatedAt     int64  `json:"created_at"`
	UUID          string `json:"uuid"`
}

// NewEntryJSON converts a listing entry.
func NewEntryJSON(e store.Entry) EntryJSON {
	r := e.Record
	out := EntryJSON{
		DailyID:       r.DailyID,
		Depth:         e.Depth,
		Kind:          r.Kind.String(),
		Signifier:     r.Signifier(),
		Complete:      r.Complete,
		Content:       r.Content,
		EffectiveDate: r.EffectiveDate.Unix(),
		CreatedAt:     r.CreatedAt.Unix(),
		UUID:          r.UUID,
	}
	if r.IsRoot() {
		k := int64(r.Key)
		out.Key = &k
	} else {
		lk := r.LocalKey
		out.LocalKey = &lk
	}
	return out
}

// JSON writes entries as an indented JSON array.
func (p *Printer) JSON(entries []store.Entry) error {
	out := make([]EntryJSON, 0, len(entries))
	for _, e := range entries {
		out = append(out, NewEntryJSON(e))
	}
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
