package telemetry

import (
	"context"
	"errors"
	"testing"
	"time"

	domainDriver "drivebuddy-admin/internal/domain/driver"
	driverMocks "drivebuddy-admin/internal/domain/driver/mocks"
	"drivebuddy-admin/internal/domain/session"
	domainTelemetry "drivebuddy-admin/internal/domain/telemetry"
	telemetryMocks "drivebuddy-admin/internal/domain/telemetry/mocks"
	appErrors "drivebuddy-admin/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var testSession = session.Session{AdminID: "admin-1", CompanyID: "company-1", Role: session.RoleAdmin}

type fixture struct {
	svc     *Service
	source  *telemetryMocks.MockSource
	drivers *driverMocks.MockRepository
	tracker *MemorySequenceTracker
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	cal, err := domainTelemetry.NewCalendar("America/Vancouver", time.Sunday)
	require.NoError(t, err)

	f := &fixture{
		source:  telemetryMocks.NewMockSource(ctrl),
		drivers: driverMocks.NewMockRepository(ctrl),
		tracker: NewMemorySequenceTracker(),
	}
	f.svc = NewService(f.source, f.drivers, cal, f.tracker)
	return f
}

func num(v float64) domainTelemetry.Number { return domainTelemetry.NewNumber(v) }

func TestGetSummary_WeekSeriesIsDense(t *testing.T) {
	f := newFixture(t)

	f.source.EXPECT().Average(gomock.Any(), testSession, domainTelemetry.PeriodWeek, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ session.Session, _ domainTelemetry.Period, date time.Time) (*domainTelemetry.SummaryResponse, error) {
			assert.Equal(t, "2024-02-11", date.Format("2006-01-02"))
			return &domainTelemetry.SummaryResponse{
				Data: []domainTelemetry.Entry{
					{Date: "2024-02-12", AlertPerHour: num(3.9)},
					{Date: "2024-02-15", AlertPerHour: num(2)},
					{Date: "2024-03-01", AlertPerHour: num(9)},
					{Date: "garbage", AlertPerHour: num(9)},
				},
			}, nil
		})
	f.source.EXPECT().Summary(gomock.Any(), testSession, domainTelemetry.PeriodWeek, gomock.Any()).
		Return(&domainTelemetry.SummaryResponse{TotalSessionHours: num(12.7), AlertPerHour: num(2.99), MaxAlertsPerUser: num(7)}, nil)
	f.drivers.EXPECT().ListByCompany(gomock.Any(), "company-1").Return(nil, nil)

	resp, err := f.svc.GetSummary(context.Background(), testSession, &SummaryRequest{Period: "week", Date: "2024-02-14"})
	require.NoError(t, err)

	series := resp.Aggregate.Series
	require.Len(t, series, 7)
	values := make([]int, len(series))
	for i, b := range series {
		values[i] = b.AlertPerHour
	}
	assert.Equal(t, []int{0, 3, 0, 0, 2, 0, 0}, values)
	assert.Equal(t, "Sun", series[0].Label)
	assert.True(t, series[1].HasData)
	assert.False(t, series[0].HasData)
	assert.Equal(t, 2, resp.Skipped)

	assert.Equal(t, 12, resp.Aggregate.TotalSessionHours)
	assert.Equal(t, 2, resp.Aggregate.AlertPerHour)
	assert.Equal(t, 7, resp.Aggregate.MaxAlertsPerUser)

	assert.Equal(t, "2024-02-07", resp.Previous)
	assert.Equal(t, "2024-02-21", resp.Next)
}

func TestGetSummary_YearSeriesAcceptsMonthAndISODates(t *testing.T) {
	f := newFixture(t)

	f.source.EXPECT().Average(gomock.Any(), gomock.Any(), domainTelemetry.PeriodYear, gomock.Any()).Return(&domainTelemetry.SummaryResponse{
		Data: []domainTelemetry.Entry{
			{Date: "2024-03", AlertPerHour: num(4)},
			{Date: "2024-05-01T00:00:00", AlertPerHour: num(6)},
			{Date: "2024-11-15T08:30", AlertPerHour: num(1)},
		},
	}, nil)
	f.source.EXPECT().Summary(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(&domainTelemetry.SummaryResponse{}, nil)
	f.drivers.EXPECT().ListByCompany(gomock.Any(), gomock.Any()).Return(nil, nil)

	resp, err := f.svc.GetSummary(context.Background(), testSession, &SummaryRequest{Period: "year", Date: "2024-06-10"})
	require.NoError(t, err)

	series := resp.Aggregate.Series
	require.Len(t, series, 12)
	assert.Zero(t, resp.Skipped)
	assert.Equal(t, 4, series[2].AlertPerHour)
	assert.Equal(t, 6, series[4].AlertPerHour)
	assert.Equal(t, 1, series[10].AlertPerHour)
	assert.True(t, series[2].HasData)
	assert.False(t, series[3].HasData)
}

func TestGetSummary_FirstReadableEntryWinsBucket(t *testing.T) {
	f := newFixture(t)

	f.source.EXPECT().Average(gomock.Any(), gomock.Any(), domainTelemetry.PeriodWeek, gomock.Any()).Return(&domainTelemetry.SummaryResponse{
		Data: []domainTelemetry.Entry{
			{Date: "2024-02-12", AlertPerHour: domainTelemetry.Number{}},
			{Date: "2024-02-12 09:00", AlertPerHour: num(5)},
			{Date: "2024-02-12 18:00", AlertPerHour: num(8)},
			{Date: "2024-02-13", AlertPerHour: num(2)},
			{Date: "2024-02-13 10:00", AlertPerHour: domainTelemetry.Number{}},
		},
	}, nil)
	f.source.EXPECT().Summary(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(&domainTelemetry.SummaryResponse{}, nil)
	f.drivers.EXPECT().ListByCompany(gomock.Any(), gomock.Any()).Return(nil, nil)

	resp, err := f.svc.GetSummary(context.Background(), testSession, &SummaryRequest{Period: "week", Date: "2024-02-14"})
	require.NoError(t, err)

	series := resp.Aggregate.Series
	assert.Equal(t, 5, series[1].AlertPerHour)
	assert.True(t, series[1].HasData)
	assert.Equal(t, 2, series[2].AlertPerHour)
	assert.True(t, series[2].HasData)
}

func TestGetSummary_DriversRankedWithMissingAndUnknown(t *testing.T) {
	f := newFixture(t)

	f.source.EXPECT().Average(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(&domainTelemetry.SummaryResponse{}, nil)
	f.source.EXPECT().Summary(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(&domainTelemetry.SummaryResponse{
		Data: []domainTelemetry.Entry{
			{UserID: "d2", AlertPerHour: num(5.5), TotalSessionHours: num(3.2)},
			{UserID: "ghost", AlertPerHour: num(1)},
			{UserID: "d3", AlertPerHour: num(5.9)},
			{UserID: "d4", AlertPerHour: domainTelemetry.Number{}},
		},
	}, nil)
	f.drivers.EXPECT().ListByCompany(gomock.Any(), "company-1").Return([]*domainDriver.Driver{
		{ID: "d1", Name: "One"},
		{ID: "d2", Name: "Two"},
		{ID: "d3", Name: "Three"},
		{ID: "d4", Name: "Four"},
	}, nil)

	resp, err := f.svc.GetSummary(context.Background(), testSession, &SummaryRequest{Period: "month", Date: "2024-02-14"})
	require.NoError(t, err)
	require.Len(t, resp.Aggregate.Series, 29)

	var ids []string
	for _, d := range resp.Drivers {
		ids = append(ids, d.DriverID)
	}
	assert.Equal(t, []string{"d3", "d2", "ghost", "d1", "d4"}, ids)

	assert.Equal(t, 5, resp.Drivers[0].AlertPerHour)
	assert.Equal(t, 5, resp.Drivers[1].AlertPerHour)
	assert.Equal(t, 3, resp.Drivers[1].TotalSessionHours)
	assert.False(t, resp.Drivers[2].Known)
	assert.False(t, resp.Drivers[3].HasData)
	assert.True(t, resp.Drivers[3].Known)
	assert.Zero(t, resp.Drivers[4].AlertPerHour)
}

func TestGetSummary_OffsetShiftsAnchor(t *testing.T) {
	f := newFixture(t)

	f.source.EXPECT().Average(gomock.Any(), gomock.Any(), domainTelemetry.PeriodMonth, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ session.Session, _ domainTelemetry.Period, date time.Time) (*domainTelemetry.SummaryResponse, error) {
			assert.Equal(t, "2024-02-01", date.Format("2006-01-02"))
			return &domainTelemetry.SummaryResponse{}, nil
		})
	f.source.EXPECT().Summary(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
	f.drivers.EXPECT().ListByCompany(gomock.Any(), gomock.Any()).Return(nil, nil)

	resp, err := f.svc.GetSummary(context.Background(), testSession, &SummaryRequest{Period: "month", Date: "2024-01-31", Offset: 1})
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", resp.Anchor)
	assert.Equal(t, "2024-03-29", resp.Next)
	assert.Equal(t, "2024-01-29", resp.Previous)
}

func TestGetSummary_StaleRequestDiscarded(t *testing.T) {
	f := newFixture(t)
	key := domainTelemetry.SequenceKey("company-1", "admin-1", "chart")

	f.source.EXPECT().Average(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ session.Session, _ domainTelemetry.Period, _ time.Time) (*domainTelemetry.SummaryResponse, error) {
			// a newer request for the same surface lands while this one is in flight
			_, _ = f.tracker.Advance(ctx, key, 6)
			return &domainTelemetry.SummaryResponse{}, nil
		})
	f.source.EXPECT().Summary(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(&domainTelemetry.SummaryResponse{}, nil)
	f.drivers.EXPECT().ListByCompany(gomock.Any(), gomock.Any()).Return(nil, nil)

	_, err := f.svc.GetSummary(context.Background(), testSession, &SummaryRequest{Period: "day", Date: "2024-02-14", Surface: "chart", Seq: 5})
	require.Error(t, err)
	assert.Equal(t, appErrors.CodeStaleRequest, appErrors.CodeOf(err))
}

func TestGetSummary_CurrentSequenceIsServed(t *testing.T) {
	f := newFixture(t)

	f.source.EXPECT().Average(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(&domainTelemetry.SummaryResponse{}, nil)
	f.source.EXPECT().Summary(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(&domainTelemetry.SummaryResponse{}, nil)
	f.drivers.EXPECT().ListByCompany(gomock.Any(), gomock.Any()).Return(nil, nil)

	resp, err := f.svc.GetSummary(context.Background(), testSession, &SummaryRequest{Period: "day", Date: "2024-02-14", Seq: 3})
	require.NoError(t, err)
	assert.Len(t, resp.Aggregate.Series, 24)
	assert.Equal(t, int64(3), resp.Seq)

	latest, err := f.tracker.Latest(context.Background(), domainTelemetry.SequenceKey("company-1", "admin-1", ""))
	require.NoError(t, err)
	assert.Equal(t, int64(3), latest)
}

func TestGetSummary_SourceErrorsPropagate(t *testing.T) {
	f := newFixture(t)

	f.source.EXPECT().Average(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("boom"))
	f.source.EXPECT().Summary(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(&domainTelemetry.SummaryResponse{}, nil).AnyTimes()
	f.drivers.EXPECT().ListByCompany(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()

	_, err := f.svc.GetSummary(context.Background(), testSession, &SummaryRequest{Period: "year", Date: "2024-02-14"})
	assert.Equal(t, appErrors.CodeUpstream, appErrors.CodeOf(err))
}

func TestGetSummary_Validation(t *testing.T) {
	cases := map[string]*SummaryRequest{
		"bad period": {Period: "decade"},
		"bad date":   {Period: "day", Date: "14/02/2024"},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)
			_, err := f.svc.GetSummary(context.Background(), testSession, req)
			assert.Equal(t, appErrors.CodeValidation, appErrors.CodeOf(err))
		})
	}
}

func TestMemorySequenceTracker(t *testing.T) {
	tr := NewMemorySequenceTracker()
	ctx := context.Background()

	v, _ := tr.Advance(ctx, "k", 4)
	assert.Equal(t, int64(4), v)
	v, _ = tr.Advance(ctx, "k", 2)
	assert.Equal(t, int64(4), v)
	v, _ = tr.Latest(ctx, "other")
	assert.Zero(t, v)
}
