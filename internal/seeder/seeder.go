package seeder

import (
	"context"
	"fmt"
	"log/slog"

	catalogmodels "toonpass/internal/catalog/models"
	readermodels "toonpass/internal/reader/models"
	id "toonpass/pkg/domain"
)

// ReaderService registers demo readers.
type ReaderService interface {
	Register(ctx context.Context, nickname string) (*readermodels.Reader, error)
	List(ctx context.Context) ([]*readermodels.Reader, error)
}

// CatalogService creates demo episodes.
type CatalogService interface {
	CreateEpisode(ctx context.Context, req *catalogmodels.CreateEpisodeRequest) (*catalogmodels.Episode, error)
}

// Seeder populates the stores with demo data through the services, so the
// seeded records obey the same rules as API-created ones.
type Seeder struct {
	readers ReaderService
	catalog CatalogService
	logger  *slog.Logger
}

// Result lists what SeedAll created.
type Result struct {
	Skipped   bool
	Readers   []*readermodels.Reader
	WebtoonID id.WebtoonID
	Episodes  []*catalogmodels.Episode
}

func New(readers ReaderService, catalog CatalogService, logger *slog.Logger) *Seeder {
	return &Seeder{readers: readers, catalog: catalog, logger: logger}
}

var demoNicknames = []string{"minji", "joon", "haneul", "seoyeon"}

var demoEpisodes = []string{
	"The Tower Gate",
	"First Floor",
	"A Bargain With the Keeper",
	"Rent or Own",
	"The Tenth Minute",
}

// SeedAll creates demo readers and one webtoon's episodes at the default
// prices. It does nothing when readers already exist.
func (s *Seeder) SeedAll(ctx context.Context) (*Result, error) {
	existing, err := s.readers.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list readers: %w", err)
	}
	if len(existing) > 0 {
		s.logger.InfoContext(ctx, "demo data already present, skipping seed", "readers", len(existing))
		return &Result{Skipped: true}, nil
	}

	s.logger.InfoContext(ctx, "seeding demo data...")
	result := &Result{WebtoonID: id.NewWebtoonID()}

	for _, nickname := range demoNicknames {
		r, err := s.readers.Register(ctx, nickname)
		if err != nil {
			return nil, fmt.Errorf("seed reader %s: %w", nickname, err)
		}
		result.Readers = append(result.Readers, r)
	}

	for i, title := range demoEpisodes {
		ep, err := s.catalog.CreateEpisode(ctx, &catalogmodels.CreateEpisodeRequest{
			WebtoonID: result.WebtoonID.String(),
			Number:    i + 1,
			Title:     title,
		})
		if err != nil {
			return nil, fmt.Errorf("seed episode %d: %w", i+1, err)
		}
		result.Episodes = append(result.Episodes, ep)
	}

	s.logger.InfoContext(ctx, "demo data seeded successfully",
		"readers", len(result.Readers),
		"episodes", len(result.Episodes),
		"webtoon_id", result.WebtoonID.String(),
	)
	return result, nil
}
