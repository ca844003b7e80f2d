package repository

import (
	"context"
	"database/sql"
	"strings"
)

// JournalRepo handles the audit journal.
type JournalRepo struct {
	db *sql.DB
}

func NewJournalRepo(db *sql.DB) *JournalRepo { return &JournalRepo{db: db} }

func (r *JournalRepo) Insert(ctx context.Context, e JournalEntry) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO journal(id, session_id, recorded_at, kind, outcome, detail, error)
	VALUES(?, ?, ?, ?, ?, ?, ?);
	`, e.ID, e.SessionID, e.RecordedAt, e.Kind, e.Outcome, e.Detail, e.Error)
	return err
}

// List returns entries newest first.
func (r *JournalRepo) List(ctx context.Context, f JournalFilters) ([]JournalEntry, error) {
	var (
		where []string
		args  []any
	)
	if f.SessionID != "" {
		where = append(where, "session_id = ?")
		args = append(args, f.SessionID)
	}
	if f.Kind != "" {
		where = append(where, "kind = ?")
		args = append(args, f.Kind)
	}
	q := `SELECT id, session_id, recorded_at, kind, outcome, detail, error FROM journal`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY recorded_at DESC, rowid DESC"
	if f.Limit > 0 {
		q += " LIMIT ?"
		args = append(args, f.Limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []JournalEntry
	for rows.Next() {
		var e JournalEntry
		if err := rows.Scan(&e.ID, &e.SessionID, &e.RecordedAt, &e.Kind, &e.Outcome, &e.Detail, &e.Error); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// CountByOutcome returns the number of rows per outcome for kind, or across
// all kinds when kind is empty.
func (r *JournalRepo) CountByOutcome(ctx context.Context, kind string) (map[string]int, error) {
	q := `SELECT outcome, COUNT(*) FROM journal`
	var args []any
	if kind != "" {
		q += ` WHERE kind = ?`
		args = append(args, kind)
	}
	rows, err := r.db.QueryContext(ctx, q+` GROUP BY outcome`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := map[string]int{}
	for rows.Next() {
		var (
			outcome string
			n       int
		)
		if err := rows.Scan(&outcome, &n); err != nil {
			return nil, err
		}
		out[outcome] = n
	}
	return out, rows.Err()
}
