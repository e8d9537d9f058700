package telemetry

import (
	"context"
	"sort"
	"time"

	domainDriver "drivebuddy-admin/internal/domain/driver"
	"drivebuddy-admin/internal/domain/session"
	domainTelemetry "drivebuddy-admin/internal/domain/telemetry"
	"drivebuddy-admin/internal/logger"
	appErrors "drivebuddy-admin/pkg/errors"
	"drivebuddy-admin/pkg/utils"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const dateLayout = "2006-01-02"

// Service shapes backend telemetry into dense chart series and a ranked
// per-driver list. Nothing is cached between calls.
type Service struct {
	source     domainTelemetry.Source
	driverRepo domainDriver.Repository
	calendar   domainTelemetry.Calendar
	tracker    domainTelemetry.SequenceTracker
	now        func() time.Time
}

func NewService(
	source domainTelemetry.Source,
	driverRepo domainDriver.Repository,
	calendar domainTelemetry.Calendar,
	tracker domainTelemetry.SequenceTracker,
) *Service {
	if tracker == nil {
		tracker = NewMemorySequenceTracker()
	}
	return &Service{
		source:     source,
		driverRepo: driverRepo,
		calendar:   calendar,
		tracker:    tracker,
		now:        time.Now,
	}
}

func (s *Service) GetSummary(ctx context.Context, sess session.Session, req *SummaryRequest) (*SummaryResponse, error) {
	if err := sess.Validate(); err != nil {
		return nil, appErrors.NewAppError(appErrors.CodeValidation, "Missing company context", err)
	}
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError(appErrors.CodeValidation, "Invalid telemetry query", err)
	}

	period, err := domainTelemetry.ParsePeriod(req.Period)
	if err != nil {
		return nil, appErrors.NewAppError(appErrors.CodeValidation, "Period must be day, week, month or year", err)
	}

	anchor, err := s.resolveAnchor(req.Date)
	if err != nil {
		return nil, err
	}
	anchor = s.calendar.Shift(period, anchor, req.Offset)
	window := s.calendar.Window(period, anchor)

	log := logger.WithCompany(sess.CompanyID, sess.AdminID)
	key := domainTelemetry.SequenceKey(sess.CompanyID, sess.AdminID, req.Surface)
	if req.Seq > 0 {
		if _, err := s.tracker.Advance(ctx, key, req.Seq); err != nil {
			log.Warn("Failed to register telemetry request sequence", zap.String("key", key), zap.Error(err))
		}
	}

	var (
		average *domainTelemetry.SummaryResponse
		summary *domainTelemetry.SummaryResponse
		drivers []*domainDriver.Driver
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		average, err = s.source.Average(gctx, sess, period, window.Start)
		return wrapSourceError(err)
	})
	g.Go(func() error {
		var err error
		summary, err = s.source.Summary(gctx, sess, period, window.Start)
		return wrapSourceError(err)
	})
	g.Go(func() error {
		var err error
		drivers, err = s.driverRepo.ListByCompany(gctx, sess.CompanyID)
		if err != nil && appErrors.CodeOf(err) == "" {
			return appErrors.NewAppError(appErrors.CodePersistence, "Failed to load drivers", err)
		}
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if average == nil {
		average = &domainTelemetry.SummaryResponse{}
	}
	if summary == nil {
		summary = &domainTelemetry.SummaryResponse{}
	}

	if req.Seq > 0 {
		latest, err := s.tracker.Latest(ctx, key)
		if err != nil {
			log.Warn("Failed to read telemetry request sequence", zap.String("key", key), zap.Error(err))
		} else if latest > req.Seq {
			log.Info("Discarding superseded telemetry response",
				zap.Int64("seq", req.Seq),
				zap.Int64("latest", latest),
				zap.String("surface", req.Surface),
				zap.String("event", "telemetry_stale_discarded"),
			)
			return nil, appErrors.NewAppError(appErrors.CodeStaleRequest, "A newer telemetry request superseded this one", nil)
		}
	}

	series, skipped := s.denseSeries(window, average)
	resp := &SummaryResponse{
		Period:   string(period),
		Anchor:   anchor.Format(dateLayout),
		Start:    window.Start,
		End:      window.End,
		Previous: s.calendar.Shift(period, anchor, -1).Format(dateLayout),
		Next:     s.calendar.Shift(period, anchor, 1).Format(dateLayout),
		Aggregate: Aggregate{
			AlertPerHour:      firstValid(summary.AlertPerHour, average.AlertPerHour).Int(),
			TotalSessionHours: firstValid(summary.TotalSessionHours, average.TotalSessionHours).Int(),
			MaxAlertsPerUser:  firstValid(summary.MaxAlertsPerUser, average.MaxAlertsPerUser).Int(),
			Series:            series,
		},
		Drivers: rankDrivers(drivers, summary),
		Skipped: skipped,
		Seq:     req.Seq,
	}
	return resp, nil
}

func (s *Service) resolveAnchor(date string) (time.Time, error) {
	loc := s.calendar.Location
	if loc == nil {
		loc = time.UTC
	}
	if date == "" {
		return s.now().In(loc), nil
	}
	t, err := time.ParseInLocation(dateLayout, date, loc)
	if err != nil {
		return time.Time{}, appErrors.NewAppError(appErrors.CodeValidation, "Date must be YYYY-MM-DD", err)
	}
	return t, nil
}

// denseSeries places sparse average entries onto every bucket of w. Buckets
// without data stay at zero. Entries with unreadable or out-of-window dates
// are counted and dropped. When several entries land in one bucket the first
// readable value wins.
func (s *Service) denseSeries(w domainTelemetry.Window, avg *domainTelemetry.SummaryResponse) ([]Bucket, int) {
	series := make([]Bucket, w.Len())
	for i := range series {
		series[i] = Bucket{Index: i, Label: w.Labels[i], Start: w.Buckets[i]}
	}

	skipped := 0
	for _, e := range avg.Data {
		t, err := s.calendar.ParseEntryDate(e.Date)
		if err != nil {
			skipped++
			continue
		}
		idx := s.calendar.BucketIndex(w, t)
		if idx < 0 || idx >= len(series) {
			skipped++
			continue
		}
		if series[idx].HasData || !e.AlertPerHour.Valid() {
			continue
		}
		series[idx].AlertPerHour = e.AlertPerHour.Int()
		series[idx].HasData = true
	}
	return series, skipped
}

// rankDrivers lists every company driver plus any telemetry rows for unknown
// user ids, worst alert rate first. Ties keep driver fetch order.
func rankDrivers(drivers []*domainDriver.Driver, summary *domainTelemetry.SummaryResponse) []DriverStat {
	byUser := make(map[string]domainTelemetry.Entry)
	var order []string
	for _, e := range summary.Data {
		if e.UserID == "" {
			continue
		}
		if _, seen := byUser[e.UserID]; !seen {
			order = append(order, e.UserID)
		}
		byUser[e.UserID] = e
	}

	stats := make([]DriverStat, 0, len(drivers)+len(byUser))
	for _, d := range drivers {
		stat := DriverStat{DriverID: d.ID, Name: d.Name, Email: d.Email, Known: true}
		if e, ok := byUser[d.ID]; ok {
			fillStat(&stat, e)
			delete(byUser, d.ID)
		}
		stats = append(stats, stat)
	}
	for _, id := range order {
		e, ok := byUser[id]
		if !ok {
			continue
		}
		stat := DriverStat{DriverID: id}
		fillStat(&stat, e)
		stats = append(stats, stat)
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].rate > stats[j].rate
	})
	return stats
}

func fillStat(stat *DriverStat, e domainTelemetry.Entry) {
	stat.HasData = true
	stat.rate = e.AlertPerHour.Float()
	stat.AlertPerHour = e.AlertPerHour.Int()
	stat.TotalSessionHours = e.TotalSessionHours.Int()
}

func firstValid(nums ...domainTelemetry.Number) domainTelemetry.Number {
	for _, n := range nums {
		if n.Valid() {
			return n
		}
	}
	return domainTelemetry.Number{}
}

func wrapSourceError(err error) error {
	if err == nil || appErrors.CodeOf(err) != "" {
		return err
	}
	return appErrors.NewAppError(appErrors.CodeUpstream, "Failed to load telemetry", err)
}
