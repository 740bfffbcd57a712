package adapters

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	catalogmodels "toonpass/internal/catalog/models"
	"toonpass/internal/entitlement/ports"
	id "toonpass/pkg/domain"
)

// EpisodeFinder is the catalog read the adapter wraps.
type EpisodeFinder interface {
	FindByID(ctx context.Context, episodeID id.EpisodeID) (*catalogmodels.Episode, error)
}

// CatalogAdapter serves episode lookups from an expiring LRU. Price updates
// must call Invalidate so a grant never charges a stale price beyond the
// update that replaced it.
type CatalogAdapter struct {
	episodes EpisodeFinder
	cache    *expirable.LRU[id.EpisodeID, catalogmodels.Episode]

	// generation is bumped by every Invalidate. A lookup whose store read
	// straddled an invalidation does not cache what it read.
	mu         sync.Mutex
	generation uint64
}

var _ ports.Catalog = (*CatalogAdapter)(nil)

// NewCatalogAdapter caches up to size episodes for ttl. A non-positive size
// disables caching.
func NewCatalogAdapter(episodes EpisodeFinder, size int, ttl time.Duration) *CatalogAdapter {
	a := &CatalogAdapter{episodes: episodes}
	if size > 0 {
		a.cache = expirable.NewLRU[id.EpisodeID, catalogmodels.Episode](size, nil, ttl)
	}
	return a
}

func (a *CatalogAdapter) FindEpisode(ctx context.Context, episodeID id.EpisodeID) (*catalogmodels.Episode, error) {
	if a.cache != nil {
		if ep, ok := a.cache.Get(episodeID); ok {
			return &ep, nil
		}
	}
	gen := a.currentGeneration()
	ep, err := a.episodes.FindByID(ctx, episodeID)
	if err != nil {
		return nil, err
	}
	if a.cache != nil {
		a.mu.Lock()
		if a.generation == gen {
			a.cache.Add(episodeID, *ep)
		}
		a.mu.Unlock()
	}
	out := *ep
	return &out, nil
}

// Invalidate drops a cached episode. Its signature matches the catalog
// service's price change hook.
func (a *CatalogAdapter) Invalidate(_ context.Context, episodeID id.EpisodeID) {
	if a.cache == nil {
		return
	}
	a.mu.Lock()
	a.generation++
	a.cache.Remove(episodeID)
	a.mu.Unlock()
}

func (a *CatalogAdapter) currentGeneration() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.generation
}
