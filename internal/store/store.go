// Package store holds the engagement counters and recent-search history.
// Both live outside the relational store: they are lightweight, best-effort
// signals, not authoritative records.
package store

import (
	"context"
	"errors"
)

// Engagement is the per-recipe like/share tally.
type Engagement struct {
	Likes  int64 `json:"likes"`
	Shares int64 `json:"shares"`
}

// EngagementKind names one counter.
type EngagementKind string

const (
	KindLikes  EngagementKind = "likes"
	KindShares EngagementKind = "shares"
)

var ErrUnknownKind = errors.New("unknown engagement kind")

// ParseEngagementKind validates a request value.
func ParseEngagementKind(s string) (EngagementKind, error) {
	switch EngagementKind(s) {
	case KindLikes, KindShares:
		return EngagementKind(s), nil
	}
	return "", ErrUnknownKind
}

// EngagementStore tracks counters per recipe and broadcasts changes so that
// other readers can drop stale copies. Increments create a zeroed record on
// first interaction and bump exactly one counter by 1.
type EngagementStore interface {
	Increment(ctx context.Context, recipeID string, kind EngagementKind) (Engagement, error)
	Get(ctx context.Context, recipeID string) (Engagement, error)
	GetAll(ctx context.Context, recipeIDs []string) (map[string]Engagement, error)
	// Subscribe invokes fn with the recipe id of every change, including
	// changes made by other processes, until ctx is done. Delivery is
	// broadcast with no ordering guarantee beyond "last write observed".
	Subscribe(ctx context.Context, fn func(recipeID string)) error
}

// RecentSearchLimit bounds how many queries are kept per user.
const RecentSearchLimit = 10

// SearchStore keeps a bounded, most-recent-first, de-duplicated list of
// search queries per user.
type SearchStore interface {
	Record(ctx context.Context, userID, query string) error
	Recent(ctx context.Context, userID string) ([]string, error)
}
