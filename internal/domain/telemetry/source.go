package telemetry

import (
	"context"
	"strings"
	"time"

	"drivebuddy-admin/internal/domain/session"
)

//go:generate mockgen -source=source.go -destination=mocks/mock_source.go -package=mocks

// Source fetches period summaries from the analytics backend. date is the
// first day of the requested window.
type Source interface {
	// Summary returns one entry per driver with telemetry in the period.
	Summary(ctx context.Context, sess session.Session, period Period, date time.Time) (*SummaryResponse, error)
	// Average returns company-wide entries keyed by bucket date.
	Average(ctx context.Context, sess session.Session, period Period, date time.Time) (*SummaryResponse, error)
}

// SequenceTracker remembers the newest request sequence seen per UI surface
// so responses to superseded requests can be discarded.
type SequenceTracker interface {
	// Advance stores max(current, seq) and returns the stored value.
	Advance(ctx context.Context, key string, seq int64) (int64, error)
	Latest(ctx context.Context, key string) (int64, error)
}

func SequenceKey(companyID, adminID, surface string) string {
	if surface == "" {
		surface = "default"
	}
	return strings.Join([]string{"telemetry-seq", companyID, adminID, surface}, ":")
}
