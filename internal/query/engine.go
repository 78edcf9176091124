// Package query turns a recipe collection and a set of criteria into a
// filtered, deterministically ordered view. All sorts are stable: recipes
// with equal keys keep their original collection order.
package query

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/tastebook/backend/internal/types"
)

// Tab is a named, predefined filter+sort view.
type Tab string

const (
	TabTrending      Tab = "trending"
	TabNew           Tab = "new"
	TabLatest        Tab = "latest"
	TabFastest       Tab = "fastest"
	TabFavorites     Tab = "favorites"
	TabMostPopular   Tab = "popular"
	TabEditorsChoice Tab = "editors-choice"
)

// SortKey is an explicit sort override; it supersedes any tab.
type SortKey string

const (
	SortTitle      SortKey = "title"
	SortCookTime   SortKey = "cookTime"
	SortDifficulty SortKey = "difficulty"
)

const (
	trendingLimit      = 6
	editorsChoiceLimit = 5
)

// AllSentinel is the filter value meaning "no filtering on this dimension".
const AllSentinel = "all"

// Criteria describes one invocation of the engine. Zero values act as
// pass-through on their dimension.
type Criteria struct {
	Query      string  // free text, matched OR-wise across fields
	Tag        string  // cuisine/category quick filter, exact (case-insensitive)
	Tab        Tab     // named view, applied only when Query and Tag are empty
	Sort       SortKey // explicit override, supersedes Tab
	Cuisine    string  // exact filter, "" or "all" pass through
	Difficulty string  // exact filter, "" or "all" pass through
	SignedIn   bool    // gates the Favorites view
}

// Result is the ordered view plus derived flags for the caller.
type Result struct {
	Recipes        []types.RecipeView
	SignInRequired bool
}

// ParseTab maps a request value to a known tab; unknown values yield "".
func ParseTab(s string) Tab {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trending":
		return TabTrending
	case "new":
		return TabNew
	case "latest":
		return TabLatest
	case "fastest":
		return TabFastest
	case "favorites":
		return TabFavorites
	case "popular", "most-popular":
		return TabMostPopular
	case "editors-choice", "editorschoice":
		return TabEditorsChoice
	}
	return ""
}

// ParseSortKey maps a request value to a known sort key; unknown values
// yield "".
func ParseSortKey(s string) SortKey {
	switch strings.TrimSpace(s) {
	case "title":
		return SortTitle
	case "cookTime", "cook_time":
		return SortCookTime
	case "difficulty":
		return SortDifficulty
	}
	return ""
}

// Run executes the pipeline: filter, then order by the explicit sort key or
// the active tab. The input slice is never mutated.
func Run(source []types.RecipeView, c Criteria) Result {
	filtered := filter(source, c)

	if c.Sort != "" {
		return Result{Recipes: applySort(filtered, c.Sort)}
	}

	if c.Query == "" && c.Tag == "" && c.Tab != "" {
		return applyTab(filtered, c)
	}

	return Result{Recipes: filtered}
}

func filter(source []types.RecipeView, c Criteria) []types.RecipeView {
	q := strings.ToLower(strings.TrimSpace(c.Query))
	tag := strings.ToLower(strings.TrimSpace(c.Tag))

	out := make([]types.RecipeView, 0, len(source))
	for _, r := range source {
		if q != "" && !matchesFreeText(r, q) {
			continue
		}
		if tag != "" &&
			strings.ToLower(r.Cuisine) != tag &&
			strings.ToLower(r.Category) != tag {
			continue
		}
		if !passesExact(r.Cuisine, c.Cuisine) {
			continue
		}
		if !passesExact(r.Difficulty, c.Difficulty) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// matchesFreeText: a recipe matches if any of title, cuisine, category,
// difficulty or any single ingredient contains the query (OR, not AND).
func matchesFreeText(r types.RecipeView, q string) bool {
	if strings.Contains(strings.ToLower(r.Title), q) ||
		strings.Contains(strings.ToLower(r.Cuisine), q) ||
		strings.Contains(strings.ToLower(r.Category), q) ||
		strings.Contains(strings.ToLower(r.Difficulty), q) {
		return true
	}
	for _, ing := range r.Ingredients {
		if strings.Contains(strings.ToLower(ing), q) {
			return true
		}
	}
	return false
}

func passesExact(field, want string) bool {
	want = strings.ToLower(strings.TrimSpace(want))
	if want == "" || want == AllSentinel {
		return true
	}
	return strings.ToLower(field) == want
}

func applyTab(recipes []types.RecipeView, c Criteria) Result {
	switch c.Tab {
	case TabTrending:
		sorted := sortedCopy(recipes, func(a, b types.RecipeView) bool {
			return a.Likes > b.Likes
		})
		if len(sorted) > trendingLimit {
			sorted = sorted[:trendingLimit]
		}
		return Result{Recipes: sorted}

	case TabNew, TabLatest:
		return Result{Recipes: sortedCopy(recipes, func(a, b types.RecipeView) bool {
			// zero timestamps sort last in the descending order
			return a.CreatedAt.After(b.CreatedAt)
		})}

	case TabFastest:
		return Result{Recipes: sortedCopy(recipes, func(a, b types.RecipeView) bool {
			return cookMinutes(a.CookTime) < cookMinutes(b.CookTime)
		})}

	case TabFavorites:
		if !c.SignedIn {
			return Result{Recipes: []types.RecipeView{}, SignInRequired: true}
		}
		out := make([]types.RecipeView, 0, len(recipes))
		for _, r := range recipes {
			if r.IsFavorite {
				out = append(out, r)
			}
		}
		return Result{Recipes: out}

	case TabMostPopular:
		return Result{Recipes: sortedCopy(recipes, func(a, b types.RecipeView) bool {
			return a.Likes+a.Shares > b.Likes+b.Shares
		})}

	case TabEditorsChoice:
		// stand-in curation: first records of the filtered set, order kept
		out := recipes
		if len(out) > editorsChoiceLimit {
			out = out[:editorsChoiceLimit]
		}
		return Result{Recipes: append([]types.RecipeView(nil), out...)}
	}

	return Result{Recipes: recipes}
}

func applySort(recipes []types.RecipeView, key SortKey) []types.RecipeView {
	switch key {
	case SortTitle:
		coll := collate.New(language.Und, collate.IgnoreCase)
		return sortedCopy(recipes, func(a, b types.RecipeView) bool {
			return coll.CompareString(a.Title, b.Title) < 0
		})
	case SortCookTime:
		return sortedCopy(recipes, func(a, b types.RecipeView) bool {
			return cookMinutes(a.CookTime) < cookMinutes(b.CookTime)
		})
	case SortDifficulty:
		return sortedCopy(recipes, func(a, b types.RecipeView) bool {
			return difficultyRank(a.Difficulty) < difficultyRank(b.Difficulty)
		})
	}
	return recipes
}

func sortedCopy(recipes []types.RecipeView, less func(a, b types.RecipeView) bool) []types.RecipeView {
	out := append([]types.RecipeView(nil), recipes...)
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// cookMinutes parses the leading digit run of a free-text duration:
// "30 mins" -> 30, "45" -> 45, "1 hr" -> 1 (the unit is ignored). Values
// with no digit prefix sort last.
func cookMinutes(s string) int64 {
	s = strings.TrimSpace(s)
	var n int64
	seen := false
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int64(r-'0')
		seen = true
	}
	if !seen {
		return int64(1<<62) - 1
	}
	return n
}

// difficultyRank gives the fixed order easy < moderate < hard; anything
// unknown or blank sorts after hard.
func difficultyRank(d string) int {
	switch strings.ToLower(strings.TrimSpace(d)) {
	case "easy":
		return 1
	case "moderate":
		return 2
	case "hard":
		return 3
	}
	return 4
}
