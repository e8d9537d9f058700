package telemetry

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

// Period is a telemetry aggregation granularity
type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

var ErrUnknownPeriod = errors.New("unknown telemetry period")

func ParsePeriod(s string) (Period, error) {
	switch p := Period(s); p {
	case PeriodDay, PeriodWeek, PeriodMonth, PeriodYear:
		return p, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPeriod, s)
}

var monthLabels = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// Calendar fixes the timezone and first weekday used for every window.
type Calendar struct {
	Location  *time.Location
	WeekStart time.Weekday
}

func NewCalendar(timezone string, weekStart time.Weekday) (Calendar, error) {
	loc := time.UTC
	if timezone != "" {
		l, err := time.LoadLocation(timezone)
		if err != nil {
			return Calendar{}, fmt.Errorf("failed to load timezone %q: %w", timezone, err)
		}
		loc = l
	}
	return Calendar{Location: loc, WeekStart: weekStart}, nil
}

func (c Calendar) loc() *time.Location {
	if c.Location == nil {
		return time.UTC
	}
	return c.Location
}

// Window is the half-open range [Start, End) covered by one period.
type Window struct {
	Period  Period
	Start   time.Time
	End     time.Time
	Buckets []time.Time
	Labels  []string
}

func (w Window) Len() int {
	return len(w.Buckets)
}

// StartOf truncates t to the first instant of its period.
func (c Calendar) StartOf(p Period, t time.Time) time.Time {
	loc := c.loc()
	t = t.In(loc)
	y, m, d := t.Date()

	switch p {
	case PeriodWeek:
		offset := (int(t.Weekday()) - int(c.WeekStart) + 7) % 7
		return time.Date(y, m, d-offset, 0, 0, 0, 0, loc)
	case PeriodMonth:
		return time.Date(y, m, 1, 0, 0, 0, 0, loc)
	case PeriodYear:
		return time.Date(y, time.January, 1, 0, 0, 0, 0, loc)
	default:
		return time.Date(y, m, d, 0, 0, 0, 0, loc)
	}
}

// Window computes the dense bucket layout of the period containing anchor.
func (c Calendar) Window(p Period, anchor time.Time) Window {
	loc := c.loc()
	start := c.StartOf(p, anchor)
	y, m, d := start.Date()
	w := Window{Period: p, Start: start}

	switch p {
	case PeriodWeek:
		w.End = time.Date(y, m, d+7, 0, 0, 0, 0, loc)
		for i := 0; i < 7; i++ {
			day := time.Date(y, m, d+i, 0, 0, 0, 0, loc)
			w.Buckets = append(w.Buckets, day)
			w.Labels = append(w.Labels, day.Weekday().String()[:3])
		}
	case PeriodMonth:
		w.End = time.Date(y, m+1, 1, 0, 0, 0, 0, loc)
		for i := 0; i < daysIn(y, m); i++ {
			w.Buckets = append(w.Buckets, time.Date(y, m, 1+i, 0, 0, 0, 0, loc))
			w.Labels = append(w.Labels, strconv.Itoa(i+1))
		}
	case PeriodYear:
		w.End = time.Date(y+1, time.January, 1, 0, 0, 0, 0, loc)
		for i := 0; i < 12; i++ {
			w.Buckets = append(w.Buckets, time.Date(y, time.Month(i+1), 1, 0, 0, 0, 0, loc))
			w.Labels = append(w.Labels, monthLabels[i])
		}
	default:
		w.End = time.Date(y, m, d+1, 0, 0, 0, 0, loc)
		for h := 0; h < 24; h++ {
			w.Buckets = append(w.Buckets, time.Date(y, m, d, h, 0, 0, 0, loc))
			w.Labels = append(w.Labels, strconv.Itoa(h))
		}
	}

	return w
}

// BucketIndex maps t onto the window's buckets, or -1 when t is outside it.
func (c Calendar) BucketIndex(w Window, t time.Time) int {
	t = t.In(c.loc())
	if t.Before(w.Start) || !t.Before(w.End) {
		return -1
	}

	switch w.Period {
	case PeriodWeek:
		return daysBetween(w.Start, t)
	case PeriodMonth:
		return t.Day() - 1
	case PeriodYear:
		return int(t.Month()) - 1
	default:
		return t.Hour()
	}
}

// Shift moves anchor by steps whole periods: 1 day, 7 days, 1 calendar month
// or 12 calendar months per step. Month arithmetic clamps to the last day.
func (c Calendar) Shift(p Period, anchor time.Time, steps int) time.Time {
	loc := c.loc()
	anchor = anchor.In(loc)
	if steps == 0 {
		return anchor
	}

	y, m, d := anchor.Date()
	hh, mm, ss := anchor.Clock()
	ns := anchor.Nanosecond()

	switch p {
	case PeriodWeek:
		return time.Date(y, m, d+7*steps, hh, mm, ss, ns, loc)
	case PeriodMonth:
		return addMonthsClamped(anchor, steps, loc)
	case PeriodYear:
		return addMonthsClamped(anchor, 12*steps, loc)
	default:
		return time.Date(y, m, d+steps, hh, mm, ss, ns, loc)
	}
}

func addMonthsClamped(t time.Time, months int, loc *time.Location) time.Time {
	y, m, d := t.Date()
	hh, mm, ss := t.Clock()
	first := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, loc)
	if last := daysIn(first.Year(), first.Month()); d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, hh, mm, ss, t.Nanosecond(), loc)
}

func daysIn(y int, m time.Month) int {
	return time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func daysBetween(from, to time.Time) int {
	fy, fm, fd := from.Date()
	ty, tm, td := to.Date()
	a := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	b := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}
