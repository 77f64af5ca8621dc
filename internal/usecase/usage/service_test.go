package usage

import (
	"context"
	"testing"
	"time"

	domusage "github.com/kailas-cloud/yatra/internal/domain/usage"
)

// --- Mock ---

type mockQuotaReader struct {
	dailyLimit       int64
	monthlyLimit     int64
	dailyUsed        int64
	monthlyUsed      int64
	remainingDaily   int64
	remainingMonthly int64
}

func (m *mockQuotaReader) Provider() string        { return "nominatim" }
func (m *mockQuotaReader) DailyLimit() int64       { return m.dailyLimit }
func (m *mockQuotaReader) MonthlyLimit() int64     { return m.monthlyLimit }
func (m *mockQuotaReader) DailyUsed() int64        { return m.dailyUsed }
func (m *mockQuotaReader) MonthlyUsed() int64      { return m.monthlyUsed }
func (m *mockQuotaReader) RemainingDaily() int64   { return m.remainingDaily }
func (m *mockQuotaReader) RemainingMonthly() int64 { return m.remainingMonthly }

var fixedNow = time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

// --- Tests ---

func TestGetReport_DailyPeriod(t *testing.T) {
	qr := &mockQuotaReader{
		dailyLimit:       1000,
		dailyUsed:        300,
		remainingDaily:   700,
		monthlyLimit:     20000,
		monthlyUsed:      5000,
		remainingMonthly: 15000,
	}
	svc := New(qr).WithClock(fixedClock)
	r := svc.GetReport(context.Background(), domusage.PeriodDay)

	if r.Period() != domusage.PeriodDay {
		t.Errorf("expected period %q, got %q", domusage.PeriodDay, r.Period())
	}

	dayStart := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	if r.PeriodStart() != dayStart.UnixMilli() {
		t.Errorf("expected period start %d, got %d", dayStart.UnixMilli(), r.PeriodStart())
	}
	dayEnd := dayStart.Add(24 * time.Hour)
	if r.PeriodEnd() != dayEnd.UnixMilli() {
		t.Errorf("expected period end %d, got %d", dayEnd.UnixMilli(), r.PeriodEnd())
	}

	if r.Quota().Limit() != 1000 {
		t.Errorf("expected limit 1000, got %d", r.Quota().Limit())
	}
	if r.Quota().Used() != 300 {
		t.Errorf("expected used 300, got %d", r.Quota().Used())
	}
	if r.Quota().Remaining() != 700 {
		t.Errorf("expected remaining 700, got %d", r.Quota().Remaining())
	}
	if r.Quota().IsExhausted() {
		t.Error("expected not exhausted")
	}
	if r.Quota().ResetsAt() != dayEnd.UnixMilli() {
		t.Errorf("expected resets at day end, got %d", r.Quota().ResetsAt())
	}
	if r.Provider() != "nominatim" {
		t.Errorf("expected provider nominatim, got %q", r.Provider())
	}
}

func TestGetReport_MonthlyPeriod(t *testing.T) {
	qr := &mockQuotaReader{monthlyLimit: 20000, monthlyUsed: 20000, remainingMonthly: 0}
	svc := New(qr).WithClock(fixedClock)
	r := svc.GetReport(context.Background(), domusage.PeriodMonth)

	monthStart := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	if r.PeriodStart() != monthStart.UnixMilli() || r.PeriodEnd() != monthEnd.UnixMilli() {
		t.Errorf("unexpected month window [%d, %d)", r.PeriodStart(), r.PeriodEnd())
	}
	if !r.Quota().IsExhausted() {
		t.Error("expected exhausted")
	}
}

func TestGetReport_UnknownPeriodFallsBackToMonth(t *testing.T) {
	svc := New(&mockQuotaReader{}).WithClock(fixedClock)
	r := svc.GetReport(context.Background(), domusage.Period("total"))

	if r.Period() != domusage.PeriodMonth {
		t.Errorf("expected month, got %q", r.Period())
	}
}

func TestGetReport_NilReader(t *testing.T) {
	svc := New(nil).WithClock(fixedClock)
	r := svc.GetReport(context.Background(), domusage.PeriodDay)

	if !r.Quota().Unlimited() {
		t.Error("expected unlimited quota without a reader")
	}
	if r.Quota().IsExhausted() {
		t.Error("expected not exhausted")
	}
	if r.Provider() != "" {
		t.Errorf("expected empty provider, got %q", r.Provider())
	}
}
