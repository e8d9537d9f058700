package telemetry

import "time"

type SummaryRequest struct {
	Period  string `uri:"period" validate:"required,telemetry_period"`
	Date    string `form:"date" validate:"omitempty,datetime=2006-01-02"`
	Offset  int    `form:"offset" validate:"omitempty,min=-120,max=120"`
	Surface string `form:"surface" validate:"omitempty,max=64"`
	Seq     int64  `form:"seq" validate:"omitempty,min=0"`
}

// Bucket is one point of the dense company series.
type Bucket struct {
	Index        int       `json:"index"`
	Label        string    `json:"label"`
	Start        time.Time `json:"start"`
	AlertPerHour int       `json:"alert_per_hour"`
	HasData      bool      `json:"has_data"`
}

type Aggregate struct {
	AlertPerHour      int      `json:"alert_per_hour"`
	TotalSessionHours int      `json:"total_session_hours"`
	MaxAlertsPerUser  int      `json:"max_alerts_per_user"`
	Series            []Bucket `json:"series"`
}

// DriverStat is one row of the ranked per-driver list. Known is false for
// telemetry whose user id matches no company driver.
type DriverStat struct {
	DriverID          string  `json:"driver_id"`
	Name              string  `json:"name"`
	Email             string  `json:"email"`
	AlertPerHour      int     `json:"alert_per_hour"`
	TotalSessionHours int     `json:"total_session_hours"`
	HasData           bool    `json:"has_data"`
	Known             bool    `json:"known"`
	rate              float64
}

type SummaryResponse struct {
	Period    string       `json:"period"`
	Anchor    string       `json:"anchor"`
	Start     time.Time    `json:"start"`
	End       time.Time    `json:"end"`
	Previous  string       `json:"previous"`
	Next      string       `json:"next"`
	Aggregate Aggregate    `json:"aggregate"`
	Drivers   []DriverStat `json:"drivers"`
	Skipped   int          `json:"skipped"`
	Seq       int64        `json:"seq,omitempty"`
}
