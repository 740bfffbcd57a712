package audit

import (
	"context"
	"fmt"
	"time"

	"toonpass/internal/platform/database"
)

// PostgresStore appends audit events to the audit_events table. It also runs
// on SQLite through a bound DBTX.
type PostgresStore struct {
	db database.DBTX
}

func NewPostgresStore(db database.DBTX) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Append(ctx context.Context, event Event) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO audit_events (occurred_at, reader_id, episode_id, action, kind, points, balance, decision, reason, request_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, event.Timestamp.UTC(), event.ReaderID, event.EpisodeID, event.Action, event.Kind,
		event.Points, event.Balance, event.Decision, event.Reason, event.RequestID)
	if err != nil {
		return fmt.Errorf("append audit event: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListByReader(ctx context.Context, readerID string) ([]Event, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT occurred_at, reader_id, episode_id, action, kind, points, balance, decision, reason, request_id
		FROM audit_events
		WHERE reader_id = $1
		ORDER BY id
	`, readerID)
	if err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var e Event
		var occurredAt time.Time
		if err := rows.Scan(&occurredAt, &e.ReaderID, &e.EpisodeID, &e.Action, &e.Kind,
			&e.Points, &e.Balance, &e.Decision, &e.Reason, &e.RequestID); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		e.Timestamp = occurredAt.UTC()
		out = append(out, e)
	}
	return out, rows.Err()
}
