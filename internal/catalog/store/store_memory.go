package store

import (
	"context"
	"sort"
	"sync"

	"toonpass/internal/catalog/models"
	id "toonpass/pkg/domain"
	"toonpass/pkg/platform/sentinel"
)

// InMemory keeps episodes in process memory. Reads return copies so callers
// can never mutate stored prices without going through Update.
type InMemory struct {
	mu       sync.RWMutex
	episodes map[id.EpisodeID]*models.Episode
}

func NewInMemory() *InMemory {
	return &InMemory{episodes: make(map[id.EpisodeID]*models.Episode)}
}

// Create stores a new episode, assigning an ID when the caller left it nil.
func (s *InMemory) Create(_ context.Context, ep *models.Episode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ep.ID.IsNil() {
		ep.ID = id.NewEpisodeID()
	}
	if _, exists := s.episodes[ep.ID]; exists {
		return sentinel.ErrAlreadyUsed
	}
	stored := *ep
	s.episodes[ep.ID] = &stored
	return nil
}

func (s *InMemory) Update(_ context.Context, ep *models.Episode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.episodes[ep.ID]; !ok {
		return sentinel.ErrNotFound
	}
	stored := *ep
	s.episodes[ep.ID] = &stored
	return nil
}

func (s *InMemory) FindByID(_ context.Context, episodeID id.EpisodeID) (*models.Episode, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ep, ok := s.episodes[episodeID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	out := *ep
	return &out, nil
}

// ListByWebtoon returns the webtoon's episodes ordered by number.
func (s *InMemory) ListByWebtoon(_ context.Context, webtoonID id.WebtoonID) ([]*models.Episode, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Episode
	for _, ep := range s.episodes {
		if ep.WebtoonID == webtoonID {
			cp := *ep
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}
