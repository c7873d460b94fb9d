package report

import (
	"fmt"
	"time"
)

// Store persists evaluation run summaries.
type Store interface {
	Add(Record) error
	Query(model string, since time.Time) ([]Record, error)
}

// ParseSince interprets s either as a look-back duration ("720h") or as an
// RFC 3339 date and returns the resulting cutoff. An empty string means no
// cutoff at all.
func ParseSince(s string, now time.Time) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if d, err := time.ParseDuration(s); err == nil {
		return now.Add(-d), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("report: cannot parse since value %q", s)
}
