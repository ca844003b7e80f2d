package repository

import "time"

// JournalEntry represents a journal row.
type JournalEntry struct {
	ID         string
	SessionID  string
	RecordedAt time.Time
	Kind       string
	Outcome    string
	Detail     string
	Error      string
}

// Outcome values.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// JournalFilters defines list filters.
type JournalFilters struct {
	SessionID string
	Kind      string
	Limit     int // zero = no limit
}
