package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"toonpass/internal/catalog/models"
	"toonpass/internal/platform/database"
	id "toonpass/pkg/domain"
	"toonpass/pkg/platform/sentinel"
)

// PostgresStore persists episodes through database/sql. Wrapped with
// database.Bind the same SQL runs on SQLite.
type PostgresStore struct {
	db database.DBTX
}

func NewPostgres(db database.DBTX) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, ep *models.Episode) error {
	if ep == nil {
		return fmt.Errorf("episode is required")
	}
	if ep.ID.IsNil() {
		ep.ID = id.NewEpisodeID()
	}
	query := `
		INSERT INTO episodes (id, webtoon_id, number, title, rent_price, buy_price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO NOTHING
	`
	res, err := s.db.ExecContext(ctx, query,
		uuid.UUID(ep.ID),
		uuid.UUID(ep.WebtoonID),
		ep.Number,
		ep.Title,
		ep.RentPrice,
		ep.BuyPrice,
		ep.CreatedAt.UTC(),
		ep.UpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("create episode: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sentinel.ErrAlreadyUsed
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, ep *models.Episode) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE episodes
		SET title = $2, rent_price = $3, buy_price = $4, updated_at = $5
		WHERE id = $1
	`, uuid.UUID(ep.ID), ep.Title, ep.RentPrice, ep.BuyPrice, ep.UpdatedAt.UTC())
	if err != nil {
		return fmt.Errorf("update episode: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update episode rows: %w", err)
	}
	if rows == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, episodeID id.EpisodeID) (*models.Episode, error) {
	ep, err := scanEpisode(s.db.QueryRowContext(ctx, `
		SELECT id, webtoon_id, number, title, rent_price, buy_price, created_at, updated_at
		FROM episodes
		WHERE id = $1
	`, uuid.UUID(episodeID)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find episode: %w", err)
	}
	return ep, nil
}

func (s *PostgresStore) ListByWebtoon(ctx context.Context, webtoonID id.WebtoonID) ([]*models.Episode, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, webtoon_id, number, title, rent_price, buy_price, created_at, updated_at
		FROM episodes
		WHERE webtoon_id = $1
		ORDER BY number
	`, uuid.UUID(webtoonID))
	if err != nil {
		return nil, fmt.Errorf("list episodes: %w", err)
	}
	defer rows.Close()

	var out []*models.Episode
	for rows.Next() {
		ep, err := scanEpisode(rows)
		if err != nil {
			return nil, fmt.Errorf("scan episode: %w", err)
		}
		out = append(out, ep)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate episodes: %w", err)
	}
	return out, nil
}

type episodeRow interface {
	Scan(dest ...any) error
}

func scanEpisode(row episodeRow) (*models.Episode, error) {
	var ep models.Episode
	var episodeID, webtoonID uuid.UUID
	var createdAt, updatedAt time.Time
	if err := row.Scan(&episodeID, &webtoonID, &ep.Number, &ep.Title, &ep.RentPrice, &ep.BuyPrice, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	ep.ID = id.EpisodeID(episodeID)
	ep.WebtoonID = id.WebtoonID(webtoonID)
	ep.CreatedAt = createdAt.UTC()
	ep.UpdatedAt = updatedAt.UTC()
	return &ep, nil
}
