package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tastebook/backend/internal/middleware"
	"github.com/tastebook/backend/internal/service"
)

// SearchHandler exposes the per-user recent-search history.
type SearchHandler struct {
	searchService *service.SearchService
	authService   middleware.TokenValidator
}

func NewSearchHandler(searchService *service.SearchService, authService middleware.TokenValidator) *SearchHandler {
	return &SearchHandler{
		searchService: searchService,
		authService:   authService,
	}
}

func (h *SearchHandler) RegisterRoutes(router *gin.RouterGroup) {
	searches := router.Group("/searches")
	searches.Use(middleware.AuthMiddleware(h.authService))
	{
		searches.GET("", h.RecentSearches)
		searches.POST("", h.RecordSearch)
	}
}

func (h *SearchHandler) RecentSearches(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	searches, err := h.searchService.Recent(c.Request.Context(), userID.String())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get recent searches"})
		return
	}
	if searches == nil {
		searches = []string{}
	}

	c.JSON(http.StatusOK, gin.H{"searches": searches})
}

// RecordSearch stores a query explicitly, for callers that resolve results
// on their own side. List queries are recorded automatically.
func (h *SearchHandler) RecordSearch(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req struct {
		Query string `json:"query" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.searchService.Record(c.Request.Context(), userID.String(), req.Query); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record search"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"query": req.Query})
}
