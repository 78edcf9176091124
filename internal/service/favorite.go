package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tastebook/backend/internal/model"
)

// FavoriteService maintains the per-user set of favorited recipe ids, stored
// as an array on the user record.
type FavoriteService struct {
	db *gorm.DB
}

func NewFavoriteService(db *gorm.DB) *FavoriteService {
	return &FavoriteService{db: db}
}

// Get returns the user's favorite recipe ids. An unknown user yields an
// empty set, not an error.
func (s *FavoriteService) Get(ctx context.Context, userID uuid.UUID) ([]string, error) {
	var user model.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []string{}, nil
		}
		return nil, err
	}
	if user.Favorites == nil {
		return []string{}, nil
	}
	return []string(user.Favorites), nil
}

// Toggle flips the membership of recipeID in the user's favorites and
// returns the new set. The update is a read-modify-write of the whole user
// record: two concurrent toggles on the same user are last-writer-wins, an
// accepted limitation of the array-on-record layout.
func (s *FavoriteService) Toggle(ctx context.Context, userID uuid.UUID, recipeID string) ([]string, error) {
	var user model.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	updated := make(model.JSONStringArray, 0, len(user.Favorites)+1)
	found := false
	for _, id := range user.Favorites {
		if id == recipeID {
			found = true
			continue
		}
		updated = append(updated, id)
	}
	if !found {
		updated = append(updated, recipeID)
	}
	user.Favorites = updated

	if err := s.db.WithContext(ctx).Save(&user).Error; err != nil {
		return nil, err
	}
	return []string(updated), nil
}

// Contains builds a membership set for overlaying is_favorite flags.
func Contains(favorites []string) map[string]bool {
	set := make(map[string]bool, len(favorites))
	for _, id := range favorites {
		set[id] = true
	}
	return set
}
