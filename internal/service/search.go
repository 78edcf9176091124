package service

import (
	"context"
	"strings"

	"github.com/tastebook/backend/internal/store"
)

// SearchService keeps the per-user recent-search history.
type SearchService struct {
	store store.SearchStore
}

func NewSearchService(st store.SearchStore) *SearchService {
	return &SearchService{store: st}
}

// Record prepends the query to the user's history, dropping any prior
// occurrence first. Blank queries are ignored.
func (s *SearchService) Record(ctx context.Context, userID, query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	return s.store.Record(ctx, userID, query)
}

// Recent returns the history, most recent first, capped at the store limit.
func (s *SearchService) Recent(ctx context.Context, userID string) ([]string, error) {
	return s.store.Recent(ctx, userID)
}
