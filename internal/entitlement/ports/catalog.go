// Package ports declares what the entitlement engine needs from other
// bounded contexts.
package ports

import (
	"context"

	catalogmodels "toonpass/internal/catalog/models"
	id "toonpass/pkg/domain"
)

// Catalog resolves an episode's current prices.
// Error Contract:
// - FindEpisode returns sentinel.ErrNotFound for unknown episodes
type Catalog interface {
	FindEpisode(ctx context.Context, episodeID id.EpisodeID) (*catalogmodels.Episode, error)
}
