package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"toonpass/internal/platform/database"
	"toonpass/internal/reader/models"
	id "toonpass/pkg/domain"
	"toonpass/pkg/platform/sentinel"
)

const readerColumns = `id, nickname, points, version, created_at, updated_at`

// PostgresStore persists readers. Bound to a *sql.Tx it takes part in the
// grant transaction.
type PostgresStore struct {
	db      database.DBTX
	dialect database.Dialect
}

func NewPostgres(db database.DBTX, dialect database.Dialect) *PostgresStore {
	return &PostgresStore{db: db, dialect: dialect}
}

func (s *PostgresStore) Create(ctx context.Context, r *models.Reader) error {
	if r.ID.IsNil() {
		r.ID = id.NewReaderID()
	}
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO readers (id, nickname, points, version, created_at, updated_at)
		VALUES ($1, $2, $3, 1, $4, $5)
		ON CONFLICT (id) DO NOTHING
	`, uuid.UUID(r.ID), r.Nickname, r.Wallet.Points, r.CreatedAt.UTC(), r.UpdatedAt.UTC())
	if err != nil {
		return fmt.Errorf("create reader: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sentinel.ErrAlreadyUsed
	}
	r.Version = 1
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, readerID id.ReaderID) (*models.Reader, error) {
	return s.find(ctx, `SELECT `+readerColumns+` FROM readers WHERE id = $1`, readerID)
}

// FindByIDForUpdate row-locks the reader until the surrounding transaction
// ends. SQLite has no row locks; its single writer serializes instead.
func (s *PostgresStore) FindByIDForUpdate(ctx context.Context, readerID id.ReaderID) (*models.Reader, error) {
	query := `SELECT ` + readerColumns + ` FROM readers WHERE id = $1`
	if s.dialect.SupportsRowLocks() {
		query += ` FOR UPDATE`
	}
	return s.find(ctx, query, readerID)
}

func (s *PostgresStore) find(ctx context.Context, query string, readerID id.ReaderID) (*models.Reader, error) {
	r, err := scanReader(s.db.QueryRowContext(ctx, query, uuid.UUID(readerID)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find reader: %w", err)
	}
	return r, nil
}

// Update writes the wallet and nickname when the stored version still
// matches r.Version.
func (s *PostgresStore) Update(ctx context.Context, r *models.Reader) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE readers
		SET nickname = $2, points = $3, version = version + 1, updated_at = $4
		WHERE id = $1 AND version = $5
	`, uuid.UUID(r.ID), r.Nickname, r.Wallet.Points, r.UpdatedAt.UTC(), r.Version)
	if err != nil {
		return fmt.Errorf("update reader: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update reader rows: %w", err)
	}
	if rows == 0 {
		if _, err := s.FindByID(ctx, r.ID); errors.Is(err, sentinel.ErrNotFound) {
			return sentinel.ErrNotFound
		}
		return sentinel.ErrConflict
	}
	r.Version++
	return nil
}

func (s *PostgresStore) List(ctx context.Context) ([]*models.Reader, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+readerColumns+` FROM readers ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list readers: %w", err)
	}
	defer rows.Close()
	var out []*models.Reader
	for rows.Next() {
		r, err := scanReader(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reader: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

type readerRow interface {
	Scan(dest ...any) error
}

func scanReader(row readerRow) (*models.Reader, error) {
	var r models.Reader
	var readerID uuid.UUID
	var createdAt, updatedAt time.Time
	if err := row.Scan(&readerID, &r.Nickname, &r.Wallet.Points, &r.Version, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	r.ID = id.ReaderID(readerID)
	r.CreatedAt = createdAt.UTC()
	r.UpdatedAt = updatedAt.UTC()
	return &r, nil
}
