package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tastebook/backend/internal/store"
)

func TestSearchHistoryMostRecentFirst(t *testing.T) {
	svc := NewSearchService(store.NewMemorySearchStore())
	ctx := context.Background()

	for _, q := range []string{"pasta", "soup", "curry"} {
		require.NoError(t, svc.Record(ctx, "u1", q))
	}

	recent, err := svc.Recent(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"curry", "soup", "pasta"}, recent)
}

func TestSearchHistoryDeduplicates(t *testing.T) {
	svc := NewSearchService(store.NewMemorySearchStore())
	ctx := context.Background()

	require.NoError(t, svc.Record(ctx, "u1", "pasta"))
	require.NoError(t, svc.Record(ctx, "u1", "soup"))
	// repeating a query moves it to the front instead of duplicating it
	require.NoError(t, svc.Record(ctx, "u1", "pasta"))

	recent, err := svc.Recent(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"pasta", "soup"}, recent)
}

func TestSearchHistoryCapped(t *testing.T) {
	svc := NewSearchService(store.NewMemorySearchStore())
	ctx := context.Background()

	for i := 0; i < store.RecentSearchLimit+5; i++ {
		require.NoError(t, svc.Record(ctx, "u1", fmt.Sprintf("query %d", i)))
	}

	recent, err := svc.Recent(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, recent, store.RecentSearchLimit)
	assert.Equal(t, fmt.Sprintf("query %d", store.RecentSearchLimit+4), recent[0])
}

func TestSearchHistoryIgnoresBlank(t *testing.T) {
	svc := NewSearchService(store.NewMemorySearchStore())
	ctx := context.Background()

	require.NoError(t, svc.Record(ctx, "u1", "   "))
	require.NoError(t, svc.Record(ctx, "u1", ""))

	recent, err := svc.Recent(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, recent)
}

func TestSearchHistoryPerUser(t *testing.T) {
	svc := NewSearchService(store.NewMemorySearchStore())
	ctx := context.Background()

	require.NoError(t, svc.Record(ctx, "u1", "pasta"))
	require.NoError(t, svc.Record(ctx, "u2", "soup"))

	recent, err := svc.Recent(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"pasta"}, recent)
}
