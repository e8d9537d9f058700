package backend

import (
	"context"
	"net/http"
	"time"

	"drivebuddy-admin/internal/domain/session"
	"drivebuddy-admin/internal/domain/telemetry"
)

// TelemetrySource adapts Client to telemetry.Source.
type TelemetrySource struct {
	client *Client
}

func NewTelemetrySource(client *Client) telemetry.Source {
	return &TelemetrySource{client: client}
}

func (s *TelemetrySource) Summary(ctx context.Context, sess session.Session, period telemetry.Period, date time.Time) (*telemetry.SummaryResponse, error) {
	return s.fetch(ctx, sess, "/face-detection-session/{period}-summary/", period, date)
}

func (s *TelemetrySource) Average(ctx context.Context, sess session.Session, period telemetry.Period, date time.Time) (*telemetry.SummaryResponse, error) {
	return s.fetch(ctx, sess, "/face-detection-session/{period}-average/", period, date)
}

func (s *TelemetrySource) fetch(ctx context.Context, sess session.Session, path string, period telemetry.Period, date time.Time) (*telemetry.SummaryResponse, error) {
	ctx = session.NewContext(ctx, sess)

	var resp telemetry.SummaryResponse
	req := s.client.request(ctx).
		SetPathParam("period", string(period)).
		SetQueryParam("companyID", sess.CompanyID).
		SetQueryParam("date", date.Format("2006-01-02"))
	if err := s.client.do(req, http.MethodGet, path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
