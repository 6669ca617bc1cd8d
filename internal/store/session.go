package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// SQLiteSessionRepo stores conversation session records in SQLite.
type SQLiteSessionRepo struct {
	db *sql.DB
}

var _ SessionRecords = (*SQLiteSessionRepo)(nil)

func (r *SQLiteSessionRepo) LoadSession(ctx context.Context, id string) (*SessionRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT session_id, data_json, created_at, updated_at FROM conversation_sessions WHERE session_id = ?`, id)

	var rec SessionRecord
	var data string
	var createdAt, updatedAt int64
	err := row.Scan(&rec.ID, &data, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan session row: %w", err)
	}

	rec.Data = []byte(data)
	rec.CreatedAt = time.Unix(createdAt, 0)
	rec.UpdatedAt = time.Unix(updatedAt, 0)
	return &rec, nil
}

func (r *SQLiteSessionRepo) SaveSession(ctx context.Context, rec SessionRecord) error {
	query := `
	INSERT INTO conversation_sessions (session_id, data_json, created_at, updated_at)
	VALUES (?, ?, ?, ?)
	ON CONFLICT(session_id) DO UPDATE SET
		data_json = excluded.data_json,
		updated_at = excluded.updated_at`

	_, err := r.db.ExecContext(ctx, query,
		rec.ID, string(rec.Data), rec.CreatedAt.Unix(), rec.UpdatedAt.Unix())
	if err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}
	return nil
}

func (r *SQLiteSessionRepo) DeleteSession(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM conversation_sessions WHERE session_id = ?`, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// ListSessions returns the most recently updated records first.
func (r *SQLiteSessionRepo) ListSessions(ctx context.Context, limit int) ([]SessionRecord, error) {
	query := `SELECT session_id, data_json, created_at, updated_at FROM conversation_sessions ORDER BY updated_at DESC, session_id`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionRecord
	for rows.Next() {
		var rec SessionRecord
		var data string
		var createdAt, updatedAt int64
		if err := rows.Scan(&rec.ID, &data, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan session row: %w", err)
		}
		rec.Data = []byte(data)
		rec.CreatedAt = time.Unix(createdAt, 0)
		rec.UpdatedAt = time.Unix(updatedAt, 0)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// CleanupExpiredSessions removes sessions not updated within ttl.
func (r *SQLiteSessionRepo) CleanupExpiredSessions(ctx context.Context, ttl time.Duration) (int64, error) {
	cutoff := time.Now().Add(-ttl).Unix()
	result, err := r.db.ExecContext(ctx, `DELETE FROM conversation_sessions WHERE updated_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("cleanup sessions: %w", err)
	}
	return result.RowsAffected()
}
