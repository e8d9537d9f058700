package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Timestamp decodes the date shapes the data API emits: RFC3339 strings,
// plain dates, and Firestore {seconds, nanoseconds} objects.
type Timestamp struct {
	Time *time.Time
}

func NewTimestamp(t *time.Time) Timestamp {
	return Timestamp{Time: t}
}

func (ts *Timestamp) UnmarshalJSON(b []byte) error {
	ts.Time = nil
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		if s == "" {
			return nil
		}
		for _, layout := range []string{time.RFC3339Nano, "2006-01-02"} {
			if t, err := time.Parse(layout, s); err == nil {
				ts.Time = &t
				return nil
			}
		}
		return fmt.Errorf("unrecognised timestamp %q", s)
	}

	var fs struct {
		Seconds     *int64 `json:"seconds"`
		Nanoseconds int64  `json:"nanoseconds"`
		USeconds    *int64 `json:"_seconds"`
		UNanos      int64  `json:"_nanoseconds"`
	}
	if err := json.Unmarshal(b, &fs); err != nil {
		return fmt.Errorf("unrecognised timestamp %s", string(b))
	}
	switch {
	case fs.Seconds != nil:
		t := time.Unix(*fs.Seconds, fs.Nanoseconds).UTC()
		ts.Time = &t
	case fs.USeconds != nil:
		t := time.Unix(*fs.USeconds, fs.UNanos).UTC()
		ts.Time = &t
	}
	return nil
}

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if ts.Time == nil {
		return []byte("null"), nil
	}
	return json.Marshal(ts.Time.UTC().Format(time.RFC3339Nano))
}
