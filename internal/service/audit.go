package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jask/urna/internal/database"
	"github.com/jask/urna/internal/database/repository"
)

// AuditService appends workflow outcomes to the local journal. One service
// instance is one terminal session.
type AuditService struct {
	Entries   *repository.JournalRepo
	SessionID string
	Now       func() time.Time
}

// NewAuditService starts a journal session with a fresh id.
func NewAuditService(entries *repository.JournalRepo) *AuditService {
	return &AuditService{Entries: entries, SessionID: uuid.NewString(), Now: database.Now}
}

// Record implements workflow.Journal.
func (s *AuditService) Record(ctx context.Context, kind, detail string, err error) error {
	if s.Entries == nil {
		return fmt.Errorf("audit: journal not configured")
	}
	now := database.Now
	if s.Now != nil {
		now = s.Now
	}
	e := repository.JournalEntry{
		ID:         uuid.NewString(),
		SessionID:  s.SessionID,
		RecordedAt: now(),
		Kind:       kind,
		Outcome:    repository.OutcomeOK,
		Detail:     detail,
	}
	if err != nil {
		e.Outcome = repository.OutcomeError
		e.Error = err.Error()
	}
	if err := s.Entries.Insert(ctx, e); err != nil {
		return fmt.Errorf("audit: insert %s: %w", kind, err)
	}
	return nil
}

// Recent returns the latest entries, newest first. An empty session in f
// lists every session.
func (s *AuditService) Recent(ctx context.Context, f repository.JournalFilters) ([]repository.JournalEntry, error) {
	if s.Entries == nil {
		return nil, fmt.Errorf("audit: journal not configured")
	}
	return s.Entries.List(ctx, f)
}
