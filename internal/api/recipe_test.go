package api

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tastebook/backend/internal/types"
)

func createRecipe(t *testing.T, router *gin.Engine, token, title string, extra map[string]interface{}) string {
	t.Helper()

	body := map[string]interface{}{
		"title":       title,
		"ingredients": []string{"water"},
		"steps":       []string{"Boil."},
	}
	for k, v := range extra {
		body[k] = v
	}

	w := doJSON(t, router, http.MethodPost, "/api/v1/recipes", token, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		ID string `json:"id"`
	}
	decode(t, w, &resp)
	require.NotEmpty(t, resp.ID)
	return resp.ID
}

type listResponse struct {
	Recipes        []types.RecipeView `json:"recipes"`
	SignInRequired bool               `json:"sign_in_required"`
}

func TestCreateRecipeRequiresAuth(t *testing.T) {
	router := setupTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/recipes", "", map[string]interface{}{
		"title": "Anonymous Stew",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateRecipeAppliesDefaults(t *testing.T) {
	router := setupTestRouter(t)
	token := registerUser(t, router, "Alice", "alice@example.com")

	w := doJSON(t, router, http.MethodPost, "/api/v1/recipes", token, map[string]interface{}{
		"title":       "Plain Rice",
		"ingredients": []string{"rice", "  ", "water"},
		"steps":       []string{"Rinse.", "", "Cook."},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp types.RecipeView
	decode(t, w, &resp)
	assert.Equal(t, "easy", resp.Difficulty)
	assert.Equal(t, "Other", resp.Cuisine)
	assert.Equal(t, "Other", resp.Category)
	assert.Equal(t, "0", resp.CookTime)
	assert.Equal(t, []string{"rice", "water"}, resp.Ingredients)
	require.Len(t, resp.Steps, 2)
}

func TestCreateRecipeAcceptsEncodedStringArrays(t *testing.T) {
	router := setupTestRouter(t)
	token := registerUser(t, router, "Alice", "alice@example.com")

	// legacy writers send arrays nested inside JSON strings
	w := doJSON(t, router, http.MethodPost, "/api/v1/recipes", token, map[string]interface{}{
		"title":       "Legacy Loaf",
		"ingredients": `["flour","yeast"]`,
		"steps":       `["Knead.","Bake."]`,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp types.RecipeView
	decode(t, w, &resp)
	assert.Equal(t, []string{"flour", "yeast"}, resp.Ingredients)
	require.Len(t, resp.Steps, 2)
	assert.Equal(t, "Knead.", resp.Steps[0].Instruction)
}

func TestGetRecipe(t *testing.T) {
	router := setupTestRouter(t)
	token := registerUser(t, router, "Alice", "alice@example.com")
	id := createRecipe(t, router, token, "Tom Yum", map[string]interface{}{"cuisine": "Thai"})

	// public read, no token needed
	w := doJSON(t, router, http.MethodGet, "/api/v1/recipes/"+id, "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp types.RecipeView
	decode(t, w, &resp)
	assert.Equal(t, "Tom Yum", resp.Title)
	assert.Equal(t, "Thai", resp.Cuisine)
	assert.False(t, resp.IsFavorite)

	w = doJSON(t, router, http.MethodGet, "/api/v1/recipes/"+uuid.NewString(), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/v1/recipes/not-a-uuid", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateRecipeOwnership(t *testing.T) {
	router := setupTestRouter(t)
	owner := registerUser(t, router, "Alice", "alice@example.com")
	stranger := registerUser(t, router, "Mallory", "mallory@example.com")
	id := createRecipe(t, router, owner, "Original", nil)

	w := doJSON(t, router, http.MethodPut, "/api/v1/recipes/"+id, stranger, map[string]interface{}{
		"title": "Hijacked",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, router, http.MethodPut, "/api/v1/recipes/"+id, owner, map[string]interface{}{
		"title": "Renamed",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp types.RecipeView
	decode(t, w, &resp)
	assert.Equal(t, "Renamed", resp.Title)
}

func TestDeleteRecipe(t *testing.T) {
	router := setupTestRouter(t)
	owner := registerUser(t, router, "Alice", "alice@example.com")
	stranger := registerUser(t, router, "Mallory", "mallory@example.com")
	id := createRecipe(t, router, owner, "Doomed Dish", nil)

	w := doJSON(t, router, http.MethodDelete, "/api/v1/recipes/"+id, stranger, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, router, http.MethodDelete, "/api/v1/recipes/"+id, owner, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodDelete, "/api/v1/recipes/"+id, owner, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListRecipesWithQuery(t *testing.T) {
	router := setupTestRouter(t)
	token := registerUser(t, router, "Alice", "alice@example.com")
	createRecipe(t, router, token, "Tom Yum Soup", map[string]interface{}{
		"cuisine": "Thai", "ingredients": []string{"lime juice", "shrimp"},
	})
	createRecipe(t, router, token, "Beef Stew", map[string]interface{}{"cuisine": "French"})

	w := doJSON(t, router, http.MethodGet, "/api/v1/recipes?query=lime", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp listResponse
	decode(t, w, &resp)
	require.Len(t, resp.Recipes, 1)
	assert.Equal(t, "Tom Yum Soup", resp.Recipes[0].Title)
}

func TestListRecipesMine(t *testing.T) {
	router := setupTestRouter(t)
	alice := registerUser(t, router, "Alice", "alice@example.com")
	bob := registerUser(t, router, "Bob", "bob@example.com")
	createRecipe(t, router, alice, "Alice's Pie", nil)
	createRecipe(t, router, bob, "Bob's Bread", nil)

	w := doJSON(t, router, http.MethodGet, "/api/v1/recipes?mine=true", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp listResponse
	decode(t, w, &resp)
	require.Len(t, resp.Recipes, 1)
	assert.Equal(t, "Alice's Pie", resp.Recipes[0].Title)

	// signed out, mine is ignored and the full collection comes back
	w = doJSON(t, router, http.MethodGet, "/api/v1/recipes?mine=true", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &resp)
	assert.Len(t, resp.Recipes, 2)
}

func TestFavoritesTabSignedOut(t *testing.T) {
	router := setupTestRouter(t)
	token := registerUser(t, router, "Alice", "alice@example.com")
	createRecipe(t, router, token, "Anything", nil)

	w := doJSON(t, router, http.MethodGet, "/api/v1/recipes?tab=favorites", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp listResponse
	decode(t, w, &resp)
	assert.True(t, resp.SignInRequired)
	assert.Empty(t, resp.Recipes)
}

func TestToggleFavoriteFlow(t *testing.T) {
	router := setupTestRouter(t)
	token := registerUser(t, router, "Alice", "alice@example.com")
	id := createRecipe(t, router, token, "Keeper", nil)

	w := doJSON(t, router, http.MethodPost, "/api/v1/recipes/"+id+"/favorite", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var toggled struct {
		Favorites []string `json:"favorites"`
	}
	decode(t, w, &toggled)
	assert.Equal(t, []string{id}, toggled.Favorites)

	// the flag shows up on listings and on the favorites tab
	w = doJSON(t, router, http.MethodGet, "/api/v1/recipes?tab=favorites", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp listResponse
	decode(t, w, &resp)
	require.Len(t, resp.Recipes, 1)
	assert.True(t, resp.Recipes[0].IsFavorite)

	// and on the dedicated favorites listing
	w = doJSON(t, router, http.MethodGet, "/api/v1/favorites", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &resp)
	assert.Len(t, resp.Recipes, 1)

	// toggling again removes it
	w = doJSON(t, router, http.MethodPost, "/api/v1/recipes/"+id+"/favorite", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &toggled)
	assert.Empty(t, toggled.Favorites)
}

func TestToggleFavoriteUnknownRecipe(t *testing.T) {
	router := setupTestRouter(t)
	token := registerUser(t, router, "Alice", "alice@example.com")

	w := doJSON(t, router, http.MethodPost, "/api/v1/recipes/"+uuid.NewString()+"/favorite", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEngageFlow(t *testing.T) {
	router := setupTestRouter(t)
	token := registerUser(t, router, "Alice", "alice@example.com")
	id := createRecipe(t, router, token, "Crowd Pleaser", nil)

	for i := 0; i < 2; i++ {
		w := doJSON(t, router, http.MethodPost, "/api/v1/recipes/"+id+"/engage", token, map[string]string{"kind": "likes"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}
	w := doJSON(t, router, http.MethodPost, "/api/v1/recipes/"+id+"/engage", token, map[string]string{"kind": "shares"})
	require.Equal(t, http.StatusOK, w.Code)

	var rec struct {
		Likes  int64 `json:"likes"`
		Shares int64 `json:"shares"`
	}
	decode(t, w, &rec)
	assert.Equal(t, int64(2), rec.Likes)
	assert.Equal(t, int64(1), rec.Shares)

	// counters show up merged into reads
	w = doJSON(t, router, http.MethodGet, "/api/v1/recipes/"+id, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var view types.RecipeView
	decode(t, w, &view)
	assert.Equal(t, int64(2), view.Likes)

	// unknown kinds are rejected
	w = doJSON(t, router, http.MethodPost, "/api/v1/recipes/"+id+"/engage", token, map[string]string{"kind": "views"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// engagement requires a session
	w = doJSON(t, router, http.MethodPost, "/api/v1/recipes/"+id+"/engage", "", map[string]string{"kind": "likes"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTrendingTabOrdersByLikes(t *testing.T) {
	router := setupTestRouter(t)
	token := registerUser(t, router, "Alice", "alice@example.com")
	createRecipe(t, router, token, "Plain", nil)
	hot := createRecipe(t, router, token, "Hot", nil)

	for i := 0; i < 3; i++ {
		w := doJSON(t, router, http.MethodPost, "/api/v1/recipes/"+hot+"/engage", token, map[string]string{"kind": "likes"})
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := doJSON(t, router, http.MethodGet, "/api/v1/recipes?tab=trending", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp listResponse
	decode(t, w, &resp)
	require.Len(t, resp.Recipes, 2)
	assert.Equal(t, "Hot", resp.Recipes[0].Title)
}

func TestRecentSearchesRecorded(t *testing.T) {
	router := setupTestRouter(t)
	token := registerUser(t, router, "Alice", "alice@example.com")

	// anonymous searches leave no history
	w := doJSON(t, router, http.MethodGet, "/api/v1/recipes?query=pasta", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/v1/recipes?query=noodles", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, router, http.MethodGet, "/api/v1/recipes?query=broth", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/v1/searches", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Searches []string `json:"searches"`
	}
	decode(t, w, &resp)
	assert.Equal(t, []string{"broth", "noodles"}, resp.Searches)

	w = doJSON(t, router, http.MethodGet, "/api/v1/searches", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRecordSearchExplicitly(t *testing.T) {
	router := setupTestRouter(t)
	token := registerUser(t, router, "Alice", "alice@example.com")

	w := doJSON(t, router, http.MethodPost, "/api/v1/searches", token, map[string]string{"query": "dumplings"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/v1/searches", token, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/v1/searches", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Searches []string `json:"searches"`
	}
	decode(t, w, &resp)
	assert.Equal(t, []string{"dumplings"}, resp.Searches)
}

func TestProfileEndpoints(t *testing.T) {
	router := setupTestRouter(t)
	token := registerUser(t, router, "Alice", "alice@example.com")

	w := doJSON(t, router, http.MethodGet, "/api/v1/profile", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var user struct {
		Name      string `json:"name"`
		AvatarURL string `json:"avatar_url"`
	}
	decode(t, w, &user)
	assert.Equal(t, "Alice", user.Name)

	w = doJSON(t, router, http.MethodPut, "/api/v1/profile", token, map[string]string{
		"name":       "Alice Cooper",
		"avatar_url": "https://img/ac.png",
	})
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &user)
	assert.Equal(t, "Alice Cooper", user.Name)
	assert.Equal(t, "https://img/ac.png", user.AvatarURL)

	w = doJSON(t, router, http.MethodGet, "/api/v1/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
