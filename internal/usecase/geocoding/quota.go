package geocoding

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/yatra/internal/domain"
)

// QuotaAction defines behavior when the request quota is exhausted.
type QuotaAction string

const (
	// QuotaActionWarn logs a warning but allows the request.
	QuotaActionWarn QuotaAction = "warn"
	// QuotaActionReject blocks the request.
	QuotaActionReject QuotaAction = "reject"
)

// QuotaStore is the persistence interface for request counters.
type QuotaStore interface {
	IncrBy(ctx context.Context, key string, val int64) error
	Get(ctx context.Context, key string) (int64, error)
}

// QuotaTracker counts upstream geocoder requests against daily and monthly caps.
// Check is in-memory only. Record updates memory first, then writes behind to the store.
type QuotaTracker struct {
	mu             sync.Mutex
	dailyUsed      int64
	monthlyUsed    int64
	dailyLimit     int64
	monthlyLimit   int64
	action         QuotaAction
	provider       string
	lastDayReset   time.Time
	lastMonthReset time.Time
	store          QuotaStore
	now            func() time.Time
	logger         *zap.Logger
}

// NewQuotaTracker creates a tracker. A limit of 0 means unlimited.
func NewQuotaTracker(
	provider string, dailyLimit, monthlyLimit int64,
	action QuotaAction, logger *zap.Logger,
) *QuotaTracker {
	q := &QuotaTracker{
		dailyLimit:   dailyLimit,
		monthlyLimit: monthlyLimit,
		action:       action,
		provider:     provider,
		now:          time.Now,
		logger:       logger,
	}
	now := q.now().UTC()
	q.lastDayReset = truncateToDay(now)
	q.lastMonthReset = truncateToMonth(now)
	return q
}

// WithClock replaces the time source. Intended for tests.
func (q *QuotaTracker) WithClock(now func() time.Time) *QuotaTracker {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.now = now
	t := now().UTC()
	q.lastDayReset = truncateToDay(t)
	q.lastMonthReset = truncateToMonth(t)
	return q
}

// WithStore attaches a persistence store and loads current counters.
func (q *QuotaTracker) WithStore(ctx context.Context, store QuotaStore) *QuotaTracker {
	q.store = store
	q.loadFromStore(ctx)
	return q
}

func (q *QuotaTracker) loadFromStore(ctx context.Context) {
	q.mu.Lock()
	defer q.mu.Unlock()

	now := q.now().UTC()

	if val, err := q.store.Get(ctx, q.dailyKey(now)); err == nil {
		q.dailyUsed = val
	} else {
		q.logger.Warn("Failed to load daily quota from store", zap.Error(err))
	}

	if val, err := q.store.Get(ctx, q.monthlyKey(now)); err == nil {
		q.monthlyUsed = val
	} else {
		q.logger.Warn("Failed to load monthly quota from store", zap.Error(err))
	}

	q.logger.Info("Geocoder quota loaded from store",
		zap.String("provider", q.provider),
		zap.Int64("daily_used", q.dailyUsed),
		zap.Int64("monthly_used", q.monthlyUsed),
	)
}

func (q *QuotaTracker) dailyKey(t time.Time) string {
	return fmt.Sprintf("%squota:%s:daily:%s", domain.KeyPrefix, q.provider, t.Format("2006-01-02"))
}

func (q *QuotaTracker) monthlyKey(t time.Time) string {
	return fmt.Sprintf("%squota:%s:monthly:%s", domain.KeyPrefix, q.provider, t.Format("2006-01"))
}

// Check reports whether another upstream request is allowed.
func (q *QuotaTracker) Check(_ context.Context) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.resetIfNeeded()

	dailyExceeded := q.dailyLimit > 0 && q.dailyUsed >= q.dailyLimit
	monthlyExceeded := q.monthlyLimit > 0 && q.monthlyUsed >= q.monthlyLimit

	if !dailyExceeded && !monthlyExceeded {
		return nil
	}

	if q.action == QuotaActionReject {
		return domain.ErrGeocoderQuotaExceeded
	}

	q.logger.Warn("Geocoder quota exceeded",
		zap.String("provider", q.provider),
		zap.Int64("daily_used", q.dailyUsed),
		zap.Int64("daily_limit", q.dailyLimit),
		zap.Int64("monthly_used", q.monthlyUsed),
		zap.Int64("monthly_limit", q.monthlyLimit),
	)
	return nil
}

// Record registers n upstream requests.
func (q *QuotaTracker) Record(n int64) {
	q.mu.Lock()
	q.resetIfNeeded()
	q.dailyUsed += n
	q.monthlyUsed += n
	store := q.store
	now := q.now().UTC()
	dailyKey := q.dailyKey(now)
	monthlyKey := q.monthlyKey(now)
	q.mu.Unlock()

	if store == nil {
		return
	}

	// Background context so a canceled request still gets counted.
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := store.IncrBy(ctx, dailyKey, n); err != nil {
		q.logger.Warn("Failed to persist daily quota", zap.String("key", dailyKey), zap.Error(err))
	}
	if err := store.IncrBy(ctx, monthlyKey, n); err != nil {
		q.logger.Warn("Failed to persist monthly quota", zap.String("key", monthlyKey), zap.Error(err))
	}
}

// RemainingDaily returns requests left today (-1 if unlimited).
func (q *QuotaTracker) RemainingDaily() int64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.resetIfNeeded()
	return remaining(q.dailyLimit, q.dailyUsed)
}

// RemainingMonthly returns requests left this month (-1 if unlimited).
func (q *QuotaTracker) RemainingMonthly() int64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.resetIfNeeded()
	return remaining(q.monthlyLimit, q.monthlyUsed)
}

func remaining(limit, used int64) int64 {
	if limit == 0 {
		return -1
	}
	if used >= limit {
		return 0
	}
	return limit - used
}

// DailyLimit returns the daily request cap.
func (q *QuotaTracker) DailyLimit() int64 { return q.dailyLimit }

// MonthlyLimit returns the monthly request cap.
func (q *QuotaTracker) MonthlyLimit() int64 { return q.monthlyLimit }

// DailyUsed returns requests made today.
func (q *QuotaTracker) DailyUsed() int64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.resetIfNeeded()
	return q.dailyUsed
}

// MonthlyUsed returns requests made this month.
func (q *QuotaTracker) MonthlyUsed() int64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.resetIfNeeded()
	return q.monthlyUsed
}

// Provider returns the geocoder name the quota applies to.
func (q *QuotaTracker) Provider() string { return q.provider }

// resetIfNeeded zeroes counters when the day or month rolls over. Caller holds mu.
func (q *QuotaTracker) resetIfNeeded() {
	now := q.now().UTC()
	today := truncateToDay(now)
	thisMonth := truncateToMonth(now)

	if today.After(q.lastDayReset) {
		q.dailyUsed = 0
		q.lastDayReset = today
	}
	if thisMonth.After(q.lastMonthReset) {
		q.monthlyUsed = 0
		q.lastMonthReset = thisMonth
	}
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func truncateToMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
