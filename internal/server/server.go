package server

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/tastebook/backend/config"
	"github.com/tastebook/backend/internal/api"
	"github.com/tastebook/backend/internal/middleware"
	"github.com/tastebook/backend/internal/router"
	"github.com/tastebook/backend/internal/service"
	"github.com/tastebook/backend/internal/store"
)

// Server wires the stores, services and handlers and runs the HTTP server.
type Server struct {
	cfg        *config.Config
	http       *http.Server
	engagement *service.EngagementService
	cancel     context.CancelFunc
}

// New builds the full application. redisClient and s3cfg may be nil: without
// Redis the engagement and search stores fall back to process-local memory
// and rate limiting is disabled; without S3 the image endpoint is not
// mounted.
func New(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, s3cfg *config.S3Config) *Server {
	var (
		engStore    store.EngagementStore
		searchStore store.SearchStore
		rateLimiter *middleware.RateLimiter
	)
	if redisClient != nil {
		engStore = store.NewRedisEngagementStore(redisClient)
		searchStore = store.NewRedisSearchStore(redisClient)
		rateLimiter = middleware.NewRateLimiter(redisClient, middleware.RateLimitConfig{
			Window:    10 * time.Second,
			Limit:     10,
			KeyPrefix: "ratelimit:engage",
		})
	} else {
		engStore = store.NewMemoryEngagementStore()
		searchStore = store.NewMemorySearchStore()
	}

	authService := service.NewAuthService(db, cfg.JWTSecret)
	recipeService := service.NewRecipeService(db)
	favoriteService := service.NewFavoriteService(db)
	engagementService := service.NewEngagementService(engStore)
	searchService := service.NewSearchService(searchStore)
	profileService := service.NewProfileService(db)

	handlers := router.Handlers{
		Auth:    api.NewAuthHandler(authService),
		Recipe:  api.NewRecipeHandler(recipeService, favoriteService, engagementService, searchService, authService, rateLimiter),
		Profile: api.NewProfileHandler(profileService, authService),
		Search:  api.NewSearchHandler(searchService, authService),
	}
	if s3cfg != nil {
		handlers.Image = api.NewImageHandler(service.NewImageService(s3cfg), authService)
	}

	engine := router.SetupRouter(handlers, cfg.AllowedOrigins)

	return &Server{
		cfg:        cfg,
		engagement: engagementService,
		http: &http.Server{
			Addr:    net.JoinHostPort(cfg.ServerHost, cfg.ServerPort),
			Handler: engine,
		},
	}
}

// Handler exposes the HTTP handler for tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Start subscribes to the engagement broadcast and serves until Shutdown.
func (s *Server) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	if err := s.engagement.Start(ctx); err != nil {
		return err
	}

	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.cancel != nil {
		s.cancel()
	}
	return s.http.Shutdown(ctx)
}
