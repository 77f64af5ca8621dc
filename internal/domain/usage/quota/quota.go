// Package quota holds the geocoder request quota snapshot.
package quota

// Quota is a point-in-time view of one quota window.
type Quota struct {
	limit     int64
	used      int64
	remaining int64
	resetsAt  int64 // unix millis, converted to RFC 3339 at transport layer
}

// New creates a Quota snapshot. limit 0 means unlimited; remaining is clamped at 0.
func New(limit, used, remaining, resetsAt int64) Quota {
	if limit <= 0 {
		limit, remaining = 0, -1
	} else if remaining < 0 {
		remaining = 0
	}
	return Quota{limit: limit, used: used, remaining: remaining, resetsAt: resetsAt}
}

// Limit returns the request cap (0 = unlimited).
func (q Quota) Limit() int64 { return q.limit }

// Used returns requests consumed in the window.
func (q Quota) Used() int64 { return q.used }

// Remaining returns requests left (-1 = unlimited).
func (q Quota) Remaining() int64 { return q.remaining }

// Unlimited reports whether no cap is configured.
func (q Quota) Unlimited() bool { return q.limit == 0 }

// IsExhausted reports whether the cap is spent.
func (q Quota) IsExhausted() bool { return q.limit > 0 && q.remaining <= 0 }

// ResetsAt returns the reset timestamp (unix millis).
func (q Quota) ResetsAt() int64 { return q.resetsAt }
