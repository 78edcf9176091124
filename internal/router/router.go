package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tastebook/backend/internal/api"
	"github.com/tastebook/backend/internal/middleware"
)

// Handlers groups everything the router mounts. Image may be nil when no
// object storage is configured.
type Handlers struct {
	Auth    *api.AuthHandler
	Recipe  *api.RecipeHandler
	Profile *api.ProfileHandler
	Search  *api.SearchHandler
	Image   *api.ImageHandler
}

// SetupRouter configures the application routes
func SetupRouter(h Handlers, allowedOrigins []string) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORS(allowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	{
		h.Auth.RegisterRoutes(v1)
		h.Recipe.RegisterRoutes(v1)
		h.Profile.RegisterRoutes(v1)
		h.Search.RegisterRoutes(v1)
		if h.Image != nil {
			h.Image.RegisterRoutes(v1)
		}
	}

	return router
}
