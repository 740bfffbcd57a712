package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"toonpass/internal/entitlement/models"
	"toonpass/internal/platform/database"
	id "toonpass/pkg/domain"
	"toonpass/pkg/platform/sentinel"
)

const (
	rentalColumns   = `id, reader_id, episode_id, price_paid, rented_at, expires_at`
	purchaseColumns = `id, reader_id, episode_id, price_paid, purchased_at`
)

// PostgresRentals persists rentals. Status is not a column; it is derived
// from expires_at by the caller.
type PostgresRentals struct {
	db database.DBTX
}

func NewPostgresRentals(db database.DBTX) *PostgresRentals {
	return &PostgresRentals{db: db}
}

func (s *PostgresRentals) Create(ctx context.Context, r *models.Rental) error {
	if r.ID.IsNil() {
		r.ID = id.NewRentalID()
	}
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO rentals (`+rentalColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO NOTHING
	`, uuid.UUID(r.ID), uuid.UUID(r.ReaderID), uuid.UUID(r.EpisodeID), r.PricePaid, r.RentedAt.UTC(), r.ExpiresAt.UTC())
	if err != nil {
		return fmt.Errorf("create rental: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sentinel.ErrAlreadyUsed
	}
	return nil
}

func (s *PostgresRentals) FindByID(ctx context.Context, rentalID id.RentalID) (*models.Rental, error) {
	r, err := scanRental(s.db.QueryRowContext(ctx, `SELECT `+rentalColumns+` FROM rentals WHERE id = $1`, uuid.UUID(rentalID)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find rental: %w", err)
	}
	return r, nil
}

func (s *PostgresRentals) ListByReader(ctx context.Context, readerID id.ReaderID) ([]*models.Rental, error) {
	return s.list(ctx, `SELECT `+rentalColumns+` FROM rentals WHERE reader_id = $1`, uuid.UUID(readerID))
}

func (s *PostgresRentals) ListByReaderAndEpisode(ctx context.Context, readerID id.ReaderID, episodeID id.EpisodeID) ([]*models.Rental, error) {
	return s.list(ctx, `SELECT `+rentalColumns+` FROM rentals WHERE reader_id = $1 AND episode_id = $2`,
		uuid.UUID(readerID), uuid.UUID(episodeID))
}

// list sorts in Go so both engines agree on the order of equal timestamps.
func (s *PostgresRentals) list(ctx context.Context, query string, args ...any) ([]*models.Rental, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list rentals: %w", err)
	}
	defer rows.Close()
	var out []*models.Rental
	for rows.Next() {
		r, err := scanRental(rows)
		if err != nil {
			return nil, fmt.Errorf("scan rental: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rentals: %w", err)
	}
	SortRentals(out)
	return out, nil
}

// PostgresPurchases relies on the (reader_id, episode_id) unique constraint.
type PostgresPurchases struct {
	db database.DBTX
}

func NewPostgresPurchases(db database.DBTX) *PostgresPurchases {
	return &PostgresPurchases{db: db}
}

func (s *PostgresPurchases) Create(ctx context.Context, p *models.Purchase) error {
	if p.ID.IsNil() {
		p.ID = id.NewPurchaseID()
	}
	var inserted uuid.UUID
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO purchases (`+purchaseColumns+`)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT DO NOTHING
		RETURNING id
	`, uuid.UUID(p.ID), uuid.UUID(p.ReaderID), uuid.UUID(p.EpisodeID), p.PricePaid, p.PurchasedAt.UTC()).Scan(&inserted)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return sentinel.ErrAlreadyUsed
		}
		return fmt.Errorf("create purchase: %w", err)
	}
	return nil
}

func (s *PostgresPurchases) FindByID(ctx context.Context, purchaseID id.PurchaseID) (*models.Purchase, error) {
	return s.findOne(ctx, `SELECT `+purchaseColumns+` FROM purchases WHERE id = $1`, uuid.UUID(purchaseID))
}

func (s *PostgresPurchases) FindByReaderAndEpisode(ctx context.Context, readerID id.ReaderID, episodeID id.EpisodeID) (*models.Purchase, error) {
	return s.findOne(ctx, `SELECT `+purchaseColumns+` FROM purchases WHERE reader_id = $1 AND episode_id = $2`,
		uuid.UUID(readerID), uuid.UUID(episodeID))
}

func (s *PostgresPurchases) findOne(ctx context.Context, query string, args ...any) (*models.Purchase, error) {
	p, err := scanPurchase(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find purchase: %w", err)
	}
	return p, nil
}

func (s *PostgresPurchases) ListByReader(ctx context.Context, readerID id.ReaderID) ([]*models.Purchase, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+purchaseColumns+`
		FROM purchases
		WHERE reader_id = $1
		ORDER BY purchased_at, id
	`, uuid.UUID(readerID))
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	defer rows.Close()
	var out []*models.Purchase
	for rows.Next() {
		p, err := scanPurchase(rows)
		if err != nil {
			return nil, fmt.Errorf("scan purchase: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

type row interface {
	Scan(dest ...any) error
}

func scanRental(rw row) (*models.Rental, error) {
	var r models.Rental
	var rentalID, readerID, episodeID uuid.UUID
	var rentedAt, expiresAt time.Time
	if err := rw.Scan(&rentalID, &readerID, &episodeID, &r.PricePaid, &rentedAt, &expiresAt); err != nil {
		return nil, err
	}
	r.ID = id.RentalID(rentalID)
	r.ReaderID = id.ReaderID(readerID)
	r.EpisodeID = id.EpisodeID(episodeID)
	r.RentedAt = rentedAt.UTC()
	r.ExpiresAt = expiresAt.UTC()
	return &r, nil
}

func scanPurchase(rw row) (*models.Purchase, error) {
	var p models.Purchase
	var purchaseID, readerID, episodeID uuid.UUID
	var purchasedAt time.Time
	if err := rw.Scan(&purchaseID, &readerID, &episodeID, &p.PricePaid, &purchasedAt); err != nil {
		return nil, err
	}
	p.ID = id.PurchaseID(purchaseID)
	p.ReaderID = id.ReaderID(readerID)
	p.EpisodeID = id.EpisodeID(episodeID)
	p.PurchasedAt = purchasedAt.UTC()
	return &p, nil
}
