package yatra

import (
	"context"
	"time"

	domusage "github.com/kailas-cloud/yatra/internal/domain/usage"
)

// UsagePeriod is the aggregation granularity for usage reports.
type UsagePeriod string

// UsagePeriod constants.
const (
	PeriodDay   UsagePeriod = "day"
	PeriodMonth UsagePeriod = "month"
)

// UsageReport contains geocoder request usage for a time period.
type UsageReport struct {
	Period      UsagePeriod
	Provider    string
	PeriodStart time.Time
	PeriodEnd   time.Time
	Quota       QuotaStatus
}

// QuotaStatus tracks geocoder request quota state.
type QuotaStatus struct {
	Limit int64
	Used  int64
	// Remaining is -1 when unlimited.
	Remaining   int64
	IsExhausted bool
	ResetsAt    time.Time
}

// Usage returns a geocoder usage report for the given period. Unknown periods report the month.
// Observer always records success, the underlying use-case is in-memory.
func (c *Client) Usage(ctx context.Context, period UsagePeriod) UsageReport {
	start := time.Now()
	defer func() { c.obs.observe("usage", start, nil) }()

	report := c.usageSvc.GetReport(ctx, domusage.Period(period))
	q := report.Quota()

	return UsageReport{
		Period:      UsagePeriod(report.Period()),
		Provider:    report.Provider(),
		PeriodStart: time.UnixMilli(report.PeriodStart()).UTC(),
		PeriodEnd:   time.UnixMilli(report.PeriodEnd()).UTC(),
		Quota: QuotaStatus{
			Limit:       q.Limit(),
			Used:        q.Used(),
			Remaining:   q.Remaining(),
			IsExhausted: q.IsExhausted(),
			ResetsAt:    time.UnixMilli(q.ResetsAt()).UTC(),
		},
	}
}

// usageUseCase is the internal interface for usage reports.
type usageUseCase interface {
	GetReport(ctx context.Context, period domusage.Period) domusage.Report
}
