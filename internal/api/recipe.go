package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tastebook/backend/internal/middleware"
	"github.com/tastebook/backend/internal/query"
	"github.com/tastebook/backend/internal/service"
	"github.com/tastebook/backend/internal/store"
	"github.com/tastebook/backend/internal/types"
)

type RecipeHandler struct {
	recipes     *service.RecipeService
	favorites   *service.FavoriteService
	engagement  *service.EngagementService
	searches    *service.SearchService
	authService middleware.TokenValidator
	rateLimiter *middleware.RateLimiter
}

func NewRecipeHandler(
	recipes *service.RecipeService,
	favorites *service.FavoriteService,
	engagement *service.EngagementService,
	searches *service.SearchService,
	authService middleware.TokenValidator,
	rateLimiter *middleware.RateLimiter,
) *RecipeHandler {
	return &RecipeHandler{
		recipes:     recipes,
		favorites:   favorites,
		engagement:  engagement,
		searches:    searches,
		authService: authService,
		rateLimiter: rateLimiter,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", middleware.OptionalAuth(h.authService), h.ListRecipes)
		recipes.GET("/:id", middleware.OptionalAuth(h.authService), h.GetRecipe)
		recipes.POST("", middleware.AuthMiddleware(h.authService), h.CreateRecipe)
		recipes.PUT("/:id", middleware.AuthMiddleware(h.authService), h.UpdateRecipe)
		recipes.DELETE("/:id", middleware.AuthMiddleware(h.authService), h.DeleteRecipe)
		recipes.POST("/:id/favorite", middleware.AuthMiddleware(h.authService), h.ToggleFavorite)

		engage := recipes.Group("")
		engage.Use(middleware.AuthMiddleware(h.authService))
		if h.rateLimiter != nil {
			engage.Use(h.rateLimiter.RateLimitMiddleware())
		}
		engage.POST("/:id/engage", h.Engage)
	}

	router.GET("/favorites", middleware.AuthMiddleware(h.authService), h.ListFavorites)
}

// ListRecipes fetches the collection, overlays engagement counters and
// favorite flags, and runs the query pipeline over it.
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	ctx := c.Request.Context()
	userID, signedIn := middleware.CurrentUserID(c)

	list, err := h.collect(c, userID, signedIn)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch recipes"})
		return
	}

	criteria := query.Criteria{
		Query:      c.Query("query"),
		Tag:        c.Query("tag"),
		Tab:        query.ParseTab(c.Query("tab")),
		Sort:       query.ParseSortKey(c.Query("sort")),
		Cuisine:    c.Query("cuisine"),
		Difficulty: c.Query("difficulty"),
		SignedIn:   signedIn,
	}

	result := query.Run(list, criteria)

	if signedIn && criteria.Query != "" {
		if err := h.searches.Record(ctx, userID.String(), criteria.Query); err != nil {
			log.Printf("failed to record search: %v", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"recipes":          result.Recipes,
		"sign_in_required": result.SignInRequired,
	})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	ctx := c.Request.Context()
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	recipe, err := h.recipes.Get(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch recipe"})
		return
	}

	views, err := h.engagement.Merge(ctx, []types.RecipeView{types.NewRecipeView(recipe)})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch recipe"})
		return
	}
	view := views[0]

	if userID, signedIn := middleware.CurrentUserID(c); signedIn {
		favs, err := h.favorites.Get(ctx, userID)
		if err == nil {
			view.IsFavorite = service.Contains(favs)[view.ID]
		}
	}

	c.JSON(http.StatusOK, view)
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var draft types.RecipeDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe, err := h.recipes.Create(c.Request.Context(), userID, &draft)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create recipe"})
		return
	}

	c.JSON(http.StatusCreated, recipe)
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	var draft types.RecipeDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe, err := h.recipes.Update(c.Request.Context(), userID, id, &draft)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		case errors.Is(err, service.ErrNotOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": service.ErrNotOwner.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update recipe"})
		}
		return
	}

	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	if err := h.recipes.Delete(c.Request.Context(), userID, id); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		case errors.Is(err, service.ErrNotOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": service.ErrNotOwner.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete recipe"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "recipe deleted successfully",
		"id":      id.String(),
	})
}

// ToggleFavorite flips the bookmark for the current user and returns the new
// favorite id set.
func (h *RecipeHandler) ToggleFavorite(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	if _, err := h.recipes.Get(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to toggle favorite"})
		return
	}

	favorites, err := h.favorites.Toggle(c.Request.Context(), userID, id.String())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to toggle favorite"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"favorites": favorites})
}

// ListFavorites returns the current user's favorited recipes with overlays.
func (h *RecipeHandler) ListFavorites(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	list, err := h.collect(c, userID, true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch favorites"})
		return
	}

	out := make([]types.RecipeView, 0, len(list))
	for _, v := range list {
		if v.IsFavorite {
			out = append(out, v)
		}
	}

	c.JSON(http.StatusOK, gin.H{"recipes": out})
}

// Engage increments one like/share counter by exactly 1.
func (h *RecipeHandler) Engage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	var req types.EngageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	kind, err := store.ParseEngagementKind(req.Kind)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.recipes.Get(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record engagement"})
		return
	}

	record, err := h.engagement.Record(c.Request.Context(), id.String(), kind)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record engagement"})
		return
	}

	c.JSON(http.StatusOK, record)
}

// collect loads the collection (optionally only the caller's own recipes)
// and applies the engagement and favorite overlays.
func (h *RecipeHandler) collect(c *gin.Context, userID uuid.UUID, signedIn bool) ([]types.RecipeView, error) {
	ctx := c.Request.Context()
	mine := signedIn && c.Query("mine") == "true"

	var list []types.RecipeView
	if mine {
		recs, err := h.recipes.ListByUser(ctx, userID)
		if err != nil {
			return nil, err
		}
		list = types.NewRecipeViews(recs)
	} else {
		recs, err := h.recipes.List(ctx)
		if err != nil {
			return nil, err
		}
		list = types.NewRecipeViews(recs)
	}

	list, err := h.engagement.Merge(ctx, list)
	if err != nil {
		return nil, err
	}

	if signedIn {
		favs, err := h.favorites.Get(ctx, userID)
		if err != nil {
			return nil, err
		}
		set := service.Contains(favs)
		for i := range list {
			list[i].IsFavorite = set[list[i].ID]
		}
	}

	return list, nil
}
