package model

import (
	"bytes"
	"encoding/json"
	"time"
)

type ClickEvent struct {
	ID         string    `json:"id,omitempty" bson:"_id,omitempty"`
	SubjectID  string    `json:"subject_id" bson:"subject_id" validate:"required,mongodb"`
	OccurredAt time.Time `json:"occurred_at" bson:"occurred_at"`
}

// DayCount is one bucket of the daily histogram.
type DayCount struct {
	Label string
	Count int64
}

// DailyBreakdown is a per-day histogram in ascending date order. Days with
// zero events are absent rather than present with a zero count.
type DailyBreakdown []DayCount

// MarshalJSON emits the breakdown as a JSON object whose keys keep the
// slice's ascending date order.
func (d DailyBreakdown) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, dc := range d {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(dc.Label)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(dc.Count)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ClickMetrics is recomputed on every request and never cached.
type ClickMetrics struct {
	Today          int64          `json:"today"`
	Week           int64          `json:"week"`
	Month          int64          `json:"month"`
	AllTime        int64          `json:"all_time"`
	DailyBreakdown DailyBreakdown `json:"daily_breakdown"`
}
