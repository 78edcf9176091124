// Package client is a Go consumer of the recipe API. It owns the wire-shape
// normalization the backend store requires: ingredient and step lists are
// tolerated in both array and JSON-encoded-string form on read, and sent as
// plain arrays on write.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tastebook/backend/internal/types"
)

// ErrNotFound is returned when the server reports no such record.
var ErrNotFound = errors.New("client: not found")

// FetchError is any non-2xx response or transport failure. Callers decide
// fallback policy; the client never swallows a failure into an empty list.
type FetchError struct {
	Method     string
	URL        string
	StatusCode int
	Message    string
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
	}
	if e.Message != "" {
		return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.URL, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s %s: status %d", e.Method, e.URL, e.StatusCode)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Client talks to a recipe API server. The zero value is not usable; use New.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

// WithToken sets the bearer token up front, skipping Login.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// New builds a client for the server at baseURL (e.g. "http://localhost:8080").
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Register creates an account and stores the returned session token.
func (c *Client) Register(ctx context.Context, name, email, password string) (*types.AuthResponse, error) {
	var resp types.AuthResponse
	err := c.do(ctx, http.MethodPost, "/api/v1/auth/register", types.RegisterRequest{
		Name:     name,
		Email:    email,
		Password: password,
	}, &resp)
	if err != nil {
		return nil, err
	}
	c.token = resp.Token
	return &resp, nil
}

// Login authenticates and stores the returned session token.
func (c *Client) Login(ctx context.Context, email, password string, rememberMe bool) (*types.AuthResponse, error) {
	var resp types.AuthResponse
	err := c.do(ctx, http.MethodPost, "/api/v1/auth/login", types.LoginRequest{
		Email:      email,
		Password:   password,
		RememberMe: rememberMe,
	}, &resp)
	if err != nil {
		return nil, err
	}
	c.token = resp.Token
	return &resp, nil
}

// Logout clears the stored token.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/logout", nil, nil); err != nil {
		return err
	}
	c.token = ""
	return nil
}

// ListParams narrow and order a recipe listing. Zero values mean "no
// constraint"; the server treats "all" the same way.
type ListParams struct {
	Query      string
	Tag        string
	Tab        string
	Sort       string
	Cuisine    string
	Difficulty string
	Mine       bool
}

// ListResult is a listing plus the sign-in prompt flag the favorites tab
// sets for anonymous callers.
type ListResult struct {
	Recipes        []types.RecipeView `json:"recipes"`
	SignInRequired bool               `json:"sign_in_required"`
}

// ListAll fetches the full collection with no criteria applied.
func (c *Client) ListAll(ctx context.Context) ([]types.RecipeView, error) {
	res, err := c.List(ctx, ListParams{})
	if err != nil {
		return nil, err
	}
	return res.Recipes, nil
}

// List fetches recipes matching params.
func (c *Client) List(ctx context.Context, params ListParams) (*ListResult, error) {
	q := url.Values{}
	set := func(key, val string) {
		if val != "" {
			q.Set(key, val)
		}
	}
	set("query", params.Query)
	set("tag", params.Tag)
	set("tab", params.Tab)
	set("sort", params.Sort)
	set("cuisine", params.Cuisine)
	set("difficulty", params.Difficulty)
	if params.Mine {
		q.Set("mine", "true")
	}

	path := "/api/v1/recipes"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var res ListResult
	if err := c.do(ctx, http.MethodGet, path, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// GetByID fetches one recipe. Returns ErrNotFound for an unknown id.
func (c *Client) GetByID(ctx context.Context, id string) (*types.RecipeView, error) {
	var recipe types.RecipeView
	if err := c.do(ctx, http.MethodGet, "/api/v1/recipes/"+url.PathEscape(id), nil, &recipe); err != nil {
		return nil, err
	}
	return &recipe, nil
}

// Create submits a draft and returns the stored, normalized record.
func (c *Client) Create(ctx context.Context, draft types.RecipeDraft) (*types.RecipeView, error) {
	var recipe types.RecipeView
	if err := c.do(ctx, http.MethodPost, "/api/v1/recipes", draft, &recipe); err != nil {
		return nil, err
	}
	return &recipe, nil
}

// Update replaces the recipe's editable fields with the draft. Full-record
// replace semantics, not a partial merge.
func (c *Client) Update(ctx context.Context, id string, draft types.RecipeDraft) (*types.RecipeView, error) {
	var recipe types.RecipeView
	if err := c.do(ctx, http.MethodPut, "/api/v1/recipes/"+url.PathEscape(id), draft, &recipe); err != nil {
		return nil, err
	}
	return &recipe, nil
}

// Delete removes a recipe. Returns ErrNotFound if it is already gone.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/recipes/"+url.PathEscape(id), nil, nil)
}

// ToggleFavorite flips favorite membership for the signed-in user and
// returns the updated favorites set.
func (c *Client) ToggleFavorite(ctx context.Context, id string) ([]string, error) {
	var resp struct {
		Favorites []string `json:"favorites"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/v1/recipes/"+url.PathEscape(id)+"/favorite", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Favorites, nil
}

// Favorites fetches the signed-in user's favorited recipes.
func (c *Client) Favorites(ctx context.Context) ([]types.RecipeView, error) {
	var resp struct {
		Recipes []types.RecipeView `json:"recipes"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/favorites", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Recipes, nil
}

// Engage records a like or share for a recipe and returns the updated
// counters.
func (c *Client) Engage(ctx context.Context, id, kind string) (likes, shares int64, err error) {
	var resp struct {
		Likes  int64 `json:"likes"`
		Shares int64 `json:"shares"`
	}
	err = c.do(ctx, http.MethodPost, "/api/v1/recipes/"+url.PathEscape(id)+"/engage", types.EngageRequest{Kind: kind}, &resp)
	if err != nil {
		return 0, 0, err
	}
	return resp.Likes, resp.Shares, nil
}

// RecentSearches fetches the signed-in user's search history, most recent
// first.
func (c *Client) RecentSearches(ctx context.Context) ([]string, error) {
	var resp struct {
		Searches []string `json:"searches"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/searches", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Searches, nil
}

// RecordSearch stores a query in the signed-in user's history.
func (c *Client) RecordSearch(ctx context.Context, query string) error {
	return c.do(ctx, http.MethodPost, "/api/v1/searches", map[string]string{"query": query}, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	fullURL := c.baseURL + path

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return &FetchError{Method: method, URL: fullURL, Err: err}
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		return &FetchError{Method: method, URL: fullURL, Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &FetchError{Method: method, URL: fullURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &FetchError{
			Method:     method,
			URL:        fullURL,
			StatusCode: resp.StatusCode,
			Message:    errorMessage(resp.Body),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &FetchError{Method: method, URL: fullURL, StatusCode: resp.StatusCode, Err: err}
	}
	return nil
}

func errorMessage(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil {
		return ""
	}
	var payload struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(data, &payload) == nil && payload.Error != "" {
		return payload.Error
	}
	return strings.TrimSpace(string(data))
}
