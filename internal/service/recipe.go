package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tastebook/backend/internal/model"
	"github.com/tastebook/backend/internal/types"
)

// RecipeService handles recipe CRUD and draft normalization.
type RecipeService struct {
	db *gorm.DB
}

func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// Normalize applies the draft defaults and drops blank ingredient/step
// entries. Difficulty is case-folded so the query engine compares a single
// spelling.
func Normalize(draft *types.RecipeDraft) {
	draft.Title = strings.TrimSpace(draft.Title)
	draft.Description = strings.TrimSpace(draft.Description)

	if strings.TrimSpace(draft.Difficulty) == "" {
		draft.Difficulty = "easy"
	}
	draft.Difficulty = strings.ToLower(strings.TrimSpace(draft.Difficulty))
	if strings.TrimSpace(draft.Cuisine) == "" {
		draft.Cuisine = "Other"
	}
	if strings.TrimSpace(draft.Category) == "" {
		draft.Category = "Other"
	}
	if strings.TrimSpace(draft.PrepTime) == "" {
		draft.PrepTime = "0"
	}
	if strings.TrimSpace(draft.CookTime) == "" {
		draft.CookTime = "0"
	}

	ingredients := make(model.JSONStringArray, 0, len(draft.Ingredients))
	for _, ing := range draft.Ingredients {
		if strings.TrimSpace(ing) != "" {
			ingredients = append(ingredients, ing)
		}
	}
	draft.Ingredients = ingredients

	steps := make(model.StepList, 0, len(draft.Steps))
	for _, st := range draft.Steps {
		if strings.TrimSpace(st.Instruction) != "" {
			steps = append(steps, st)
		}
	}
	draft.Steps = steps
}

// Create normalizes the draft and stores it under the given owner.
func (s *RecipeService) Create(ctx context.Context, userID uuid.UUID, draft *types.RecipeDraft) (*model.Recipe, error) {
	Normalize(draft)

	recipe := model.Recipe{
		Title:       draft.Title,
		Description: draft.Description,
		ImageURL:    draft.ImageURL,
		Ingredients: draft.Ingredients,
		Steps:       draft.Steps,
		PrepTime:    draft.PrepTime,
		CookTime:    draft.CookTime,
		Difficulty:  draft.Difficulty,
		Cuisine:     draft.Cuisine,
		Category:    draft.Category,
		UserID:      userID,
	}
	if err := s.db.WithContext(ctx).Create(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

// Get retrieves a recipe by id.
func (s *RecipeService) Get(ctx context.Context, id uuid.UUID) (*model.Recipe, error) {
	var recipe model.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

// Update replaces the whole record (not a partial merge); only the owner may
// update.
func (s *RecipeService) Update(ctx context.Context, userID, id uuid.UUID, draft *types.RecipeDraft) (*model.Recipe, error) {
	recipe, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if recipe.UserID != userID {
		return nil, ErrNotOwner
	}

	Normalize(draft)
	recipe.Title = draft.Title
	recipe.Description = draft.Description
	recipe.ImageURL = draft.ImageURL
	recipe.Ingredients = draft.Ingredients
	recipe.Steps = draft.Steps
	recipe.PrepTime = draft.PrepTime
	recipe.CookTime = draft.CookTime
	recipe.Difficulty = draft.Difficulty
	recipe.Cuisine = draft.Cuisine
	recipe.Category = draft.Category

	if err := s.db.WithContext(ctx).Save(recipe).Error; err != nil {
		return nil, err
	}
	return recipe, nil
}

// Delete removes a recipe; only the owner may delete.
func (s *RecipeService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	recipe, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if recipe.UserID != userID {
		return ErrNotOwner
	}
	return s.db.WithContext(ctx).Delete(&model.Recipe{}, "id = ?", id).Error
}

// List returns the full collection in insertion order. Errors propagate to
// the caller; there is no silent empty-list fallback.
func (s *RecipeService) List(ctx context.Context) ([]model.Recipe, error) {
	var recipes []model.Recipe
	if err := s.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// ListByUser returns only the recipes owned by the given user.
func (s *RecipeService) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Recipe, error) {
	var recipes []model.Recipe
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at ASC, id ASC").Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}
