package clock

import "time"

// DBFormat is the millisecond timestamp format actions are ordered by.
const DBFormat = "2006-01-02 15:04:05.000"

// Clock supplies wall time. Builders take a Clock so tests can pin output.
type Clock interface {
	Now() time.Time
}

// UTC is the production clock.
type UTC struct{}

// NewUTC returns the production clock.
func NewUTC() *UTC { return &UTC{} }

// Now returns the current time in UTC.
func (UTC) Now() time.Time { return time.Now().UTC() }

// DBTime renders a time in the canonical action-timestamp format.
func DBTime(t time.Time) string { return t.UTC().Format(DBFormat) }

// Fixed is a test clock pinned to one instant.
type Fixed struct {
	T time.Time
}

// Now returns the pinned instant.
func (f Fixed) Now() time.Time { return f.T }
