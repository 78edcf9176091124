package service

import (
	"context"
	"sync"

	"github.com/tastebook/backend/internal/store"
	"github.com/tastebook/backend/internal/types"
)

// EngagementService overlays like/share counters onto recipe views. Counts
// are cached per process; the store's change broadcast evicts stale entries
// so every instance converges on the last write observed.
type EngagementService struct {
	store store.EngagementStore

	mu    sync.Mutex
	cache map[string]store.Engagement
}

func NewEngagementService(st store.EngagementStore) *EngagementService {
	return &EngagementService{
		store: st,
		cache: make(map[string]store.Engagement),
	}
}

// Start subscribes to the change broadcast. Call once at startup.
func (s *EngagementService) Start(ctx context.Context) error {
	return s.store.Subscribe(ctx, func(recipeID string) {
		s.mu.Lock()
		delete(s.cache, recipeID)
		s.mu.Unlock()
	})
}

// Record increments exactly one counter by 1, creating the record on first
// interaction, and returns the updated tally.
func (s *EngagementService) Record(ctx context.Context, recipeID string, kind store.EngagementKind) (store.Engagement, error) {
	rec, err := s.store.Increment(ctx, recipeID, kind)
	if err != nil {
		return store.Engagement{}, err
	}

	s.mu.Lock()
	s.cache[recipeID] = rec
	s.mu.Unlock()
	return rec, nil
}

// Merge overlays counters onto the views, defaulting to zero. The persisted
// state is never mutated by a read.
func (s *EngagementService) Merge(ctx context.Context, views []types.RecipeView) ([]types.RecipeView, error) {
	missing := make([]string, 0, len(views))
	s.mu.Lock()
	for _, v := range views {
		if _, ok := s.cache[v.ID]; !ok {
			missing = append(missing, v.ID)
		}
	}
	s.mu.Unlock()

	if len(missing) > 0 {
		fetched, err := s.store.GetAll(ctx, missing)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		for id, rec := range fetched {
			s.cache[id] = rec
		}
		s.mu.Unlock()
	}

	out := append([]types.RecipeView(nil), views...)
	s.mu.Lock()
	for i := range out {
		rec := s.cache[out[i].ID]
		out[i].Likes = rec.Likes
		out[i].Shares = rec.Shares
	}
	s.mu.Unlock()
	return out, nil
}
