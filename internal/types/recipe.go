package types

import (
	"time"

	"github.com/tastebook/backend/internal/model"
)

// RecipeView is a recipe as rendered to clients: the stored record plus the
// engagement counters and favorite flag overlaid at read time.
type RecipeView struct {
	ID          string       `json:"id"`
	UserID      string       `json:"user_id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	ImageURL    string       `json:"image_url"`
	Ingredients []string     `json:"ingredients"`
	Steps       []model.Step `json:"steps"`
	PrepTime    string       `json:"prep_time"`
	CookTime    string       `json:"cook_time"`
	Difficulty  string       `json:"difficulty"`
	Cuisine     string       `json:"cuisine"`
	Category    string       `json:"category"`
	CreatedAt   time.Time    `json:"created_at"`
	Likes       int64        `json:"likes"`
	Shares      int64        `json:"shares"`
	IsFavorite  bool         `json:"is_favorite"`
}

// NewRecipeView builds a view from a stored recipe; overlays start zeroed.
func NewRecipeView(r *model.Recipe) RecipeView {
	return RecipeView{
		ID:          r.ID.String(),
		UserID:      r.UserID.String(),
		Title:       r.Title,
		Description: r.Description,
		ImageURL:    r.ImageURL,
		Ingredients: []string(r.Ingredients),
		Steps:       []model.Step(r.Steps),
		PrepTime:    r.PrepTime,
		CookTime:    r.CookTime,
		Difficulty:  r.Difficulty,
		Cuisine:     r.Cuisine,
		Category:    r.Category,
		CreatedAt:   r.CreatedAt,
	}
}

// NewRecipeViews builds views for a slice of stored recipes, preserving order.
func NewRecipeViews(recipes []model.Recipe) []RecipeView {
	views := make([]RecipeView, len(recipes))
	for i := range recipes {
		views[i] = NewRecipeView(&recipes[i])
	}
	return views
}
