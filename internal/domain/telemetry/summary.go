package telemetry

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// Number is a backend numeric field. Missing, null, non-numeric, NaN and
// infinite values all decode to zero with Valid() == false.
type Number struct {
	value float64
	valid bool
}

func NewNumber(v float64) Number {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Number{}
	}
	return Number{value: v, valid: true}
}

func (n Number) Float() float64 { return n.value }

func (n Number) Valid() bool { return n.valid }

// Int truncates toward zero, saturating at the int range.
func (n Number) Int() int {
	switch {
	case math.IsNaN(n.value):
		return 0
	case n.value >= math.MaxInt:
		return math.MaxInt
	case n.value <= math.MinInt:
		return math.MinInt
	}
	return int(math.Trunc(n.value))
}

func (n *Number) UnmarshalJSON(b []byte) error {
	*n = Number{}

	var raw any
	if err := json.Unmarshal(b, &raw); err != nil || raw == nil {
		return nil
	}
	if s, ok := raw.(string); ok {
		raw = strings.TrimSpace(s)
	}

	f, err := cast.ToFloat64E(raw)
	if err != nil {
		return nil
	}
	*n = NewNumber(f)
	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.value)
}

// Entry is one sparse telemetry row. Summary responses key rows by UserID,
// average responses by Date.
type Entry struct {
	UserID            string `json:"userId,omitempty"`
	Date              string `json:"date,omitempty"`
	AlertPerHour      Number `json:"alertPerHour"`
	TotalSessionHours Number `json:"totalSessionHours"`
}

// SummaryResponse is the body of the face-detection-session summary and
// average endpoints.
type SummaryResponse struct {
	Data              []Entry `json:"data"`
	TotalSessionHours Number  `json:"totalSessionHours"`
	AlertPerHour      Number  `json:"alertPerHour"`
	MaxAlertsPerUser  Number  `json:"maxAlertsPerUser"`
}

var entryDateLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
	"2006-01",
}

// ParseEntryDate reads an entry date in the calendar's location.
func (c Calendar) ParseEntryDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty entry date")
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(c.loc()), nil
	}
	for _, layout := range entryDateLayouts {
		if t, err := time.ParseInLocation(layout, s, c.loc()); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised entry date %q", s)
}
