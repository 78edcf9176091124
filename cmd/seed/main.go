package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"time"

	"github.com/tastebook/backend/internal/client"
	"github.com/tastebook/backend/internal/model"
	"github.com/tastebook/backend/internal/types"
)

var seedRecipes = []types.RecipeDraft{
	{
		Title:       "Classic Margherita Pizza",
		Description: "Neapolitan-style pizza with tomato, fresh mozzarella and basil.",
		Ingredients: model.JSONStringArray{"pizza dough", "san marzano tomatoes", "fresh mozzarella", "basil leaves", "olive oil", "salt"},
		Steps: model.StepList{
			{Instruction: "Stretch the dough into a 12 inch round."},
			{Instruction: "Spread crushed tomatoes and season with salt."},
			{Instruction: "Top with torn mozzarella and bake at the highest oven setting for 8 minutes."},
			{Instruction: "Finish with basil and a drizzle of olive oil."},
		},
		PrepTime:   "20 mins",
		CookTime:   "10 mins",
		Difficulty: "easy",
		Cuisine:    "Italian",
		Category:   "Dinner",
	},
	{
		Title:       "Thai Green Curry",
		Description: "Fragrant coconut curry with chicken, eggplant and thai basil.",
		Ingredients: model.JSONStringArray{"green curry paste", "coconut milk", "chicken thighs", "thai eggplant", "fish sauce", "palm sugar", "thai basil", "lime"},
		Steps: model.StepList{
			{Instruction: "Fry the curry paste in the thick top of the coconut milk until fragrant."},
			{Instruction: "Add chicken and coat in the paste."},
			{Instruction: "Pour in the remaining coconut milk and simmer with eggplant for 15 minutes."},
			{Instruction: "Season with fish sauce, palm sugar and a squeeze of lime."},
		},
		PrepTime:   "15 mins",
		CookTime:   "25 mins",
		Difficulty: "moderate",
		Cuisine:    "Thai",
		Category:   "Dinner",
	},
	{
		Title:       "Overnight Oats",
		Description: "No-cook breakfast oats with yogurt and berries.",
		Ingredients: model.JSONStringArray{"rolled oats", "milk", "greek yogurt", "honey", "mixed berries", "chia seeds"},
		Steps: model.StepList{
			{Instruction: "Stir oats, milk, yogurt, honey and chia seeds in a jar."},
			{Instruction: "Refrigerate overnight."},
			{Instruction: "Top with berries before serving."},
		},
		PrepTime:   "5 mins",
		CookTime:   "0",
		Difficulty: "easy",
		Cuisine:    "American",
		Category:   "Breakfast",
	},
	{
		Title:       "Beef Bourguignon",
		Description: "Slow-braised beef in red wine with pearl onions and mushrooms.",
		Ingredients: model.JSONStringArray{"beef chuck", "red wine", "pearl onions", "mushrooms", "carrots", "bacon", "beef stock", "thyme", "bay leaf"},
		Steps: model.StepList{
			{Instruction: "Brown the bacon, then the beef in batches."},
			{Instruction: "Deglaze with red wine and add stock and herbs."},
			{Instruction: "Braise covered at 160C for 3 hours."},
			{Instruction: "Saute onions and mushrooms and fold in before serving."},
		},
		PrepTime:   "30 mins",
		CookTime:   "3 hrs",
		Difficulty: "hard",
		Cuisine:    "French",
		Category:   "Dinner",
	},
	{
		Title:       "Tom Yum Soup",
		Description: "Hot and sour Thai soup with shrimp, lemongrass and lime.",
		Ingredients: model.JSONStringArray{"shrimp", "lemongrass", "galangal", "kaffir lime leaves", "fish sauce", "lime juice", "chili", "mushrooms"},
		Steps: model.StepList{
			{Instruction: "Simmer lemongrass, galangal and lime leaves in stock for 10 minutes."},
			{Instruction: "Add mushrooms and shrimp and cook until the shrimp turn pink."},
			{Instruction: "Season off the heat with fish sauce, lime juice and chili."},
		},
		PrepTime:   "10 mins",
		CookTime:   "15 mins",
		Difficulty: "easy",
		Cuisine:    "Thai",
		Category:   "Soup",
	},
	{
		Title:       "Shakshuka",
		Description: "Eggs poached in a spiced tomato and pepper sauce.",
		Ingredients: model.JSONStringArray{"eggs", "canned tomatoes", "red peppers", "onion", "garlic", "cumin", "paprika", "feta"},
		Steps: model.StepList{
			{Instruction: "Soften onion and peppers, then add garlic and spices."},
			{Instruction: "Add tomatoes and simmer until thick."},
			{Instruction: "Make wells, crack in the eggs and cover until just set."},
			{Instruction: "Crumble feta over the top."},
		},
		PrepTime:   "10 mins",
		CookTime:   "20 mins",
		Difficulty: "easy",
		Cuisine:    "Middle Eastern",
		Category:   "Breakfast",
	},
}

func main() {
	baseURL := flag.String("url", envDefault("API_URL", "http://localhost:8080"), "API base URL")
	email := flag.String("email", envDefault("SEED_EMAIL", "seed@tastebook.dev"), "seed account email")
	password := flag.String("password", envDefault("SEED_PASSWORD", "seedpassword"), "seed account password")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	c := client.New(*baseURL)

	if _, err := c.Login(ctx, *email, *password, false); err != nil {
		var fetchErr *client.FetchError
		if !errors.As(err, &fetchErr) || fetchErr.StatusCode != 401 {
			log.Fatalf("login: %v", err)
		}
		if _, err := c.Register(ctx, "Seed User", *email, *password); err != nil {
			log.Fatalf("register: %v", err)
		}
		log.Printf("created seed account %s", *email)
	}

	existing, err := c.ListAll(ctx)
	if err != nil {
		log.Fatalf("list: %v", err)
	}
	have := make(map[string]bool, len(existing))
	for _, r := range existing {
		have[r.Title] = true
	}

	created := 0
	for _, draft := range seedRecipes {
		if have[draft.Title] {
			continue
		}
		recipe, err := c.Create(ctx, draft)
		if err != nil {
			log.Fatalf("create %q: %v", draft.Title, err)
		}
		log.Printf("created %q (%s)", recipe.Title, recipe.ID)
		created++
	}
	log.Printf("done, %d recipes created, %d already present", created, len(seedRecipes)-created)
}

func envDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
