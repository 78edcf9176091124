package store

import (
	"context"
	"sync"
)

// MemoryEngagementStore is the process-local fallback used when Redis is not
// configured, and the fixture for unit tests. Counters are lost on restart,
// which is acceptable for a best-effort signal.
type MemoryEngagementStore struct {
	mu      sync.Mutex
	records map[string]Engagement
	subs    []func(recipeID string)
}

func NewMemoryEngagementStore() *MemoryEngagementStore {
	return &MemoryEngagementStore{records: make(map[string]Engagement)}
}

func (s *MemoryEngagementStore) Increment(ctx context.Context, recipeID string, kind EngagementKind) (Engagement, error) {
	if _, err := ParseEngagementKind(string(kind)); err != nil {
		return Engagement{}, err
	}

	s.mu.Lock()
	rec := s.records[recipeID]
	switch kind {
	case KindLikes:
		rec.Likes++
	case KindShares:
		rec.Shares++
	}
	s.records[recipeID] = rec
	subs := append(([]func(string))(nil), s.subs...)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(recipeID)
	}
	return rec, nil
}

func (s *MemoryEngagementStore) Get(ctx context.Context, recipeID string) (Engagement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.records[recipeID], nil
}

func (s *MemoryEngagementStore) GetAll(ctx context.Context, recipeIDs []string) (map[string]Engagement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]Engagement, len(recipeIDs))
	for _, id := range recipeIDs {
		out[id] = s.records[id]
	}
	return out, nil
}

func (s *MemoryEngagementStore) Subscribe(ctx context.Context, fn func(recipeID string)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
	return nil
}

// MemorySearchStore is the in-process counterpart of RedisSearchStore.
type MemorySearchStore struct {
	mu      sync.Mutex
	queries map[string][]string
}

func NewMemorySearchStore() *MemorySearchStore {
	return &MemorySearchStore{queries: make(map[string][]string)}
}

func (s *MemorySearchStore) Record(ctx context.Context, userID, query string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.queries[userID]
	out := make([]string, 0, len(list)+1)
	out = append(out, query)
	for _, q := range list {
		if q != query {
			out = append(out, q)
		}
	}
	if len(out) > RecentSearchLimit {
		out = out[:RecentSearchLimit]
	}
	s.queries[userID] = out
	return nil
}

func (s *MemorySearchStore) Recent(ctx context.Context, userID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.queries[userID]...), nil
}
