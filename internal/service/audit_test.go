package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/urna/internal/database"
	"github.com/jask/urna/internal/database/repository"
	"github.com/jask/urna/internal/workflow"
)

var _ workflow.Journal = (*AuditService)(nil)

func newTestService(t *testing.T) *AuditService {
	t.Helper()
	db, err := database.OpenMigrated(filepath.Join(t.TempDir(), "audit.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewAuditService(repository.NewJournalRepo(db))
}

func TestAuditRecord(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	clock := time.Date(2026, 10, 4, 9, 30, 0, 0, time.UTC)
	svc.Now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}

	require.NoError(t, svc.Record(ctx, workflow.KindKeysStatus, "present=true", nil))
	require.NoError(t, svc.Record(ctx, workflow.KindVote, "", errors.New("status 503")))

	recent, err := svc.Recent(ctx, repository.JournalFilters{Limit: 10})
	require.NoError(t, err)
	require.Len(t, recent, 2)

	vote := recent[0]
	require.Equal(t, workflow.KindVote, vote.Kind)
	require.Equal(t, repository.OutcomeError, vote.Outcome)
	require.Equal(t, "status 503", vote.Error)
	require.Empty(t, vote.Detail)
	require.Equal(t, svc.SessionID, vote.SessionID)
	require.NotEqual(t, recent[0].ID, recent[1].ID)

	require.Equal(t, repository.OutcomeOK, recent[1].Outcome)
	require.Equal(t, "present=true", recent[1].Detail)
}

func TestAuditRecentBySession(t *testing.T) {
	ctx := context.Background()
	first := newTestService(t)
	second := &AuditService{Entries: first.Entries, SessionID: "second-session"}

	require.NoError(t, first.Record(ctx, workflow.KindKeysStatus, "present=true", nil))
	require.NoError(t, second.Record(ctx, workflow.KindOffices, "count=2", nil))
	require.NoError(t, second.Record(ctx, workflow.KindVote, "", nil))

	all, err := first.Recent(ctx, repository.JournalFilters{})
	require.NoError(t, err)
	require.Len(t, all, 3)

	mine, err := second.Recent(ctx, repository.JournalFilters{SessionID: second.SessionID})
	require.NoError(t, err)
	require.Len(t, mine, 2)
	for _, e := range mine {
		require.Equal(t, "second-session", e.SessionID)
	}

	votes, err := first.Recent(ctx, repository.JournalFilters{SessionID: second.SessionID, Kind: workflow.KindVote, Limit: 5})
	require.NoError(t, err)
	require.Len(t, votes, 1)
}

func TestAuditSessionsAreDistinct(t *testing.T) {
	a := NewAuditService(nil)
	b := NewAuditService(nil)
	require.NotEmpty(t, a.SessionID)
	require.NotEqual(t, a.SessionID, b.SessionID)
}

func TestAuditWithoutRepo(t *testing.T) {
	svc := NewAuditService(nil)
	require.Error(t, svc.Record(context.Background(), workflow.KindVote, "", nil))
	_, err := svc.Recent(context.Background(), repository.JournalFilters{Limit: 1})
	require.Error(t, err)
}
