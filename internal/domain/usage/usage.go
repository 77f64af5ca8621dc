package usage

import (
	"fmt"

	"github.com/kailas-cloud/yatra/internal/domain/usage/quota"
)

// Period is the aggregation granularity.
type Period string

// Aggregation period constants.
const (
	PeriodDay   Period = "day"
	PeriodMonth Period = "month"
)

// ParsePeriod maps a query value to a Period. Empty defaults to month.
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case "":
		return PeriodMonth, nil
	case PeriodDay, PeriodMonth:
		return Period(s), nil
	default:
		return "", fmt.Errorf("unknown usage period %q", s)
	}
}

// Report is a geocoder usage report for a time period.
type Report struct {
	period      Period
	periodStart int64
	periodEnd   int64
	provider    string
	quota       quota.Quota
}

// NewReport creates a usage report.
func NewReport(period Period, start, end int64, provider string, q quota.Quota) Report {
	return Report{
		period:      period,
		periodStart: start,
		periodEnd:   end,
		provider:    provider,
		quota:       q,
	}
}

// Period returns the aggregation granularity.
func (r *Report) Period() Period { return r.period }

// PeriodStart returns the period start timestamp (unix millis).
func (r *Report) PeriodStart() int64 { return r.periodStart }

// PeriodEnd returns the period end timestamp (unix millis).
func (r *Report) PeriodEnd() int64 { return r.periodEnd }

// Provider returns the geocoder provider name, empty when no geocoder is configured.
func (r *Report) Provider() string { return r.provider }

// Quota returns the quota status.
func (r *Report) Quota() quota.Quota { return r.quota }
