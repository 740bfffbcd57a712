package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"toonpass/internal/platform/database"
	"toonpass/internal/points/models"
	id "toonpass/pkg/domain"
	"toonpass/pkg/platform/sentinel"
)

const paymentColumns = `id, reader_id, amount_won, points, method, created_at`

// PostgresStore persists payment history.
type PostgresStore struct {
	db database.DBTX
}

func NewPostgres(db database.DBTX) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, p *models.Payment) error {
	if p.ID.IsNil() {
		p.ID = id.NewPaymentID()
	}
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO payments (`+paymentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO NOTHING
	`, uuid.UUID(p.ID), uuid.UUID(p.ReaderID), p.AmountWon, p.Points, p.Method, p.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("create payment: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sentinel.ErrAlreadyUsed
	}
	return nil
}

func (s *PostgresStore) ListByReader(ctx context.Context, readerID id.ReaderID) ([]*models.Payment, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+paymentColumns+` FROM payments WHERE reader_id = $1`, uuid.UUID(readerID))
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()
	out := []*models.Payment{}
	for rows.Next() {
		var p models.Payment
		var paymentID, ownerID uuid.UUID
		var createdAt time.Time
		if err := rows.Scan(&paymentID, &ownerID, &p.AmountWon, &p.Points, &p.Method, &createdAt); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		p.ID = id.PaymentID(paymentID)
		p.ReaderID = id.ReaderID(ownerID)
		p.CreatedAt = createdAt.UTC()
		out = append(out, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate payments: %w", err)
	}
	SortNewestFirst(out)
	return out, nil
}
