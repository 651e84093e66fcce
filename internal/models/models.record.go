// FilePath: internal/models/models.record.go
package models

import (
	"bytes"
	"encoding/json"

	"github.com/kc0bfv/power-sensor-monitor/internal/listx"
)

// Entry is one sample as published by the sensor webhook.
// Data is a comma-separated row: humidity, temperature (F), count, total,
// min, max, battery and a quoted power source tag.
type Entry struct {
	PublishedAt string `json:"published_at" db:"published_at"`
	Data        string `json:"data" db:"data"`
}

// RawRecord is the sample history served for a read key, oldest first.
type RawRecord struct {
	Entries []Entry
}

// MarshalJSON writes the record as an array of entries.
func (r RawRecord) MarshalJSON() ([]byte, error) {
	if r.Entries == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(r.Entries)
}

// UnmarshalJSON accepts the entry array and the columnar
// {"published_at": [...], "data": [...]} form.
func (r *RawRecord) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var cols struct {
			PublishedAt []string `json:"published_at"`
			Data        []string `json:"data"`
		}
		if err := json.Unmarshal(trimmed, &cols); err != nil {
			return err
		}
		n := max(len(cols.PublishedAt), len(cols.Data))
		r.Entries = make([]Entry, n)
		for i := range r.Entries {
			if i < len(cols.PublishedAt) {
				r.Entries[i].PublishedAt = cols.PublishedAt[i]
			}
			if i < len(cols.Data) {
				r.Entries[i].Data = cols.Data[i]
			}
		}
		return nil
	}

	var entries []Entry
	if err := json.Unmarshal(trimmed, &entries); err != nil {
		return err
	}
	r.Entries = entries
	return nil
}

func (r RawRecord) Len() int { return len(r.Entries) }

// PublishedAt is the published_at column.
func (r RawRecord) PublishedAt() []string {
	return listx.Map(r.Entries, func(e Entry) string { return e.PublishedAt })
}

// Data is the data column.
func (r RawRecord) Data() []string {
	return listx.Map(r.Entries, func(e Entry) string { return e.Data })
}

// Last returns the newest n entries, or all of them when there are fewer.
func (r RawRecord) Last(n int) RawRecord {
	if n < 0 || n >= len(r.Entries) {
		return r
	}
	return RawRecord{Entries: r.Entries[len(r.Entries)-n:]}
}
