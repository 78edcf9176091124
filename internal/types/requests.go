package types

import "github.com/tastebook/backend/internal/model"

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required"`
	RememberMe bool   `json:"remember_me"`
}

type AuthResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// RecipeDraft is the payload for creating or replacing a recipe. Ingredients
// and steps tolerate both array and JSON-encoded-string shapes on the wire.
type RecipeDraft struct {
	Title       string                `json:"title" binding:"required"`
	Description string                `json:"description"`
	ImageURL    string                `json:"image_url"`
	Ingredients model.JSONStringArray `json:"ingredients"`
	Steps       model.StepList        `json:"steps"`
	PrepTime    string                `json:"prep_time"`
	CookTime    string                `json:"cook_time"`
	Difficulty  string                `json:"difficulty"`
	Cuisine     string                `json:"cuisine"`
	Category    string                `json:"category"`
}

type UpdateProfileRequest struct {
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}

type EngageRequest struct {
	Kind string `json:"kind" binding:"required"`
}
