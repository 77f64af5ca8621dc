package usage

import (
	"context"
	"time"

	domusage "github.com/kailas-cloud/yatra/internal/domain/usage"
	"github.com/kailas-cloud/yatra/internal/domain/usage/quota"
)

// Service handles usage reporting.
type Service struct {
	qr  QuotaReader
	now func() time.Time
}

// New creates a Service. qr can be nil (no remote geocoder).
func New(qr QuotaReader) *Service {
	return &Service{qr: qr, now: time.Now}
}

// WithClock overrides the clock used for period boundaries.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// GetReport builds a usage report for the given period.
func (s *Service) GetReport(_ context.Context, period domusage.Period) domusage.Report {
	now := s.now().UTC()
	var start, end time.Time
	var limit, used, remaining int64

	switch period {
	case domusage.PeriodDay:
		start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		end = start.AddDate(0, 0, 1)
		if s.qr != nil {
			limit = s.qr.DailyLimit()
			used = s.qr.DailyUsed()
			remaining = s.qr.RemainingDaily()
		}
	default:
		period = domusage.PeriodMonth
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		end = start.AddDate(0, 1, 0)
		if s.qr != nil {
			limit = s.qr.MonthlyLimit()
			used = s.qr.MonthlyUsed()
			remaining = s.qr.RemainingMonthly()
		}
	}

	provider := ""
	if s.qr != nil {
		provider = s.qr.Provider()
	}

	q := quota.New(limit, used, remaining, end.UnixMilli())
	return domusage.NewReport(period, start.UnixMilli(), end.UnixMilli(), provider, q)
}
