package integration

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tastebook/backend/config"
	"github.com/tastebook/backend/internal/client"
	"github.com/tastebook/backend/internal/model"
	"github.com/tastebook/backend/internal/server"
	"github.com/tastebook/backend/internal/testhelpers"
	"github.com/tastebook/backend/internal/types"
)

// Runs the whole stack against a containerized Postgres: server wiring,
// wire-format round-trips and the client contract.
func TestFullStackAgainstPostgres(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := testhelpers.SetupPostgres(t)

	cfg := &config.Config{
		ServerHost: "localhost",
		ServerPort: "0",
		JWTSecret:  "integration-secret",
	}
	srv := server.New(cfg, db, nil, nil)

	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	ctx := context.Background()
	c := client.New(ts.URL)

	_, err := c.Register(ctx, "Iris", "iris@example.com", "password123")
	require.NoError(t, err)

	created, err := c.Create(ctx, types.RecipeDraft{
		Title:       "Shakshuka",
		Cuisine:     "Middle Eastern",
		Category:    "Breakfast",
		CookTime:    "20 mins",
		Ingredients: model.JSONStringArray{"eggs", "tomatoes", "peppers"},
		Steps: model.StepList{
			{Instruction: "Simmer the sauce."},
			{Instruction: "Poach the eggs in it.", Image: "https://img/eggs.jpg"},
		},
	})
	require.NoError(t, err)

	// arrays survive the text-column round-trip through Postgres
	got, err := c.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"eggs", "tomatoes", "peppers"}, got.Ingredients)
	require.Len(t, got.Steps, 2)
	assert.Equal(t, "https://img/eggs.jpg", got.Steps[1].Image)

	favs, err := c.ToggleFavorite(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{created.ID}, favs)

	likes, _, err := c.Engage(ctx, created.ID, "likes")
	require.NoError(t, err)
	assert.Equal(t, int64(1), likes)

	res, err := c.List(ctx, client.ListParams{Tab: "favorites"})
	require.NoError(t, err)
	require.Len(t, res.Recipes, 1)
	assert.True(t, res.Recipes[0].IsFavorite)
	assert.Equal(t, int64(1), res.Recipes[0].Likes)

	// a second login sees the same persisted state
	c2 := client.New(ts.URL)
	_, err = c2.Login(ctx, "iris@example.com", "password123", true)
	require.NoError(t, err)

	list, err := c2.Favorites(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Shakshuka", list[0].Title)
}
