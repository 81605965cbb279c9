package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/platefit/backend/internal/model"
)

// SpoonacularService handles recipe search and per-recipe enrichment against
// the Spoonacular API, with a process-lifetime cache of enrichment results.
type SpoonacularService struct {
	apiKey  string
	baseURL string
	client  *http.Client

	mu    sync.Mutex
	cache map[int]enrichment
	group singleflight.Group
}

// enrichment is a cached (nutrition, pricing) pair for one recipe id.
// Entries are written once and never invalidated.
type enrichment struct {
	nutrition *model.RecipeNutrition
	pricing   *model.RecipePricing
}

// NewSpoonacularService creates a new SpoonacularService instance. The cache
// lives as long as the service; construct it once at startup.
func NewSpoonacularService(apiKey, baseURL string, timeout time.Duration) *SpoonacularService {
	return &SpoonacularService{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		cache:   make(map[int]enrichment),
	}
}

// ingredientRef is an ingredient entry inside a search result.
type ingredientRef struct {
	Name string `json:"name"`
}

// searchResult mirrors the findByIngredients response shape.
type searchResult struct {
	ID                int             `json:"id"`
	Title             string          `json:"title"`
	Image             string          `json:"image"`
	UsedIngredients   []ingredientRef `json:"usedIngredients"`
	MissedIngredients []ingredientRef `json:"missedIngredients"`
}

// Search finds recipes matching the given ingredients. Zero upstream matches
// is an empty slice, not an error.
func (s *SpoonacularService) Search(ctx context.Context, ingredients []string, limit int) ([]model.RecipeCandidate, error) {
	params := url.Values{}
	params.Set("ingredients", strings.Join(ingredients, ","))
	params.Set("number", strconv.Itoa(limit))
	// ranking=1 prioritizes recipes that use the most of the ingredients
	params.Set("ranking", "1")
	params.Set("apiKey", s.apiKey)

	endpoint := fmt.Sprintf("%s/recipes/findByIngredients?%s", s.baseURL, params.Encode())

	var results []searchResult
	if err := s.getJSON(ctx, endpoint, &results); err != nil {
		return nil, &model.ExternalServiceError{Service: "spoonacular", Err: fmt.Errorf("search failed: %w", err)}
	}

	candidates := make([]model.RecipeCandidate, 0, len(results))
	for _, r := range results {
		c := model.RecipeCandidate{
			ID:    r.ID,
			Title: r.Title,
			Image: r.Image,
		}
		for _, i := range r.UsedIngredients {
			c.UsedIngredients = append(c.UsedIngredients, i.Name)
		}
		for _, i := range r.MissedIngredients {
			c.MissedIngredients = append(c.MissedIngredients, i.Name)
		}
		candidates = append(candidates, c)
	}

	return candidates, nil
}

// Enrich returns nutrition and pricing for a recipe, consulting the cache
// first. Concurrent calls for the same id share one upstream round-trip.
// A nutrition failure is an error (the caller drops the recipe); a pricing
// failure degrades to nil pricing.
func (s *SpoonacularService) Enrich(ctx context.Context, recipeID int) (*model.RecipeNutrition, *model.RecipePricing, error) {
	s.mu.Lock()
	if e, ok := s.cache[recipeID]; ok {
		s.mu.Unlock()
		return e.nutrition, e.pricing, nil
	}
	s.mu.Unlock()

	v, err, _ := s.group.Do(strconv.Itoa(recipeID), func() (interface{}, error) {
		// A cancelled request must not abandon the lookup mid-flight: the
		// result is reusable by future requests once cached. The HTTP client
		// timeout still bounds the call.
		fetchCtx := context.WithoutCancel(ctx)

		nutrition, servings, err := s.fetchInformation(fetchCtx, recipeID)
		if err != nil {
			return nil, err
		}

		pricing := s.fetchPricing(fetchCtx, recipeID, servings)

		e := enrichment{nutrition: nutrition, pricing: pricing}
		s.mu.Lock()
		s.cache[recipeID] = e
		s.mu.Unlock()

		return e, nil
	})
	if err != nil {
		return nil, nil, err
	}

	e := v.(enrichment)
	return e.nutrition, e.pricing, nil
}

// informationResult mirrors the slice of the recipe information response we
// consume.
type informationResult struct {
	Servings  int `json:"servings"`
	Nutrition struct {
		Nutrients []struct {
			Name   string  `json:"name"`
			Amount float64 `json:"amount"`
		} `json:"nutrients"`
	} `json:"nutrition"`
}

// fetchInformation retrieves nutrition data and the serving count for a
// recipe. Failure here is fatal for the recipe.
func (s *SpoonacularService) fetchInformation(ctx context.Context, recipeID int) (*model.RecipeNutrition, int, error) {
	params := url.Values{}
	params.Set("includeNutrition", "true")
	params.Set("apiKey", s.apiKey)

	endpoint := fmt.Sprintf("%s/recipes/%d/information?%s", s.baseURL, recipeID, params.Encode())

	var info informationResult
	if err := s.getJSON(ctx, endpoint, &info); err != nil {
		return nil, 0, &model.ExternalServiceError{Service: "spoonacular", Err: fmt.Errorf("information lookup for recipe %d failed: %w", recipeID, err)}
	}

	servings := info.Servings
	if servings < 1 {
		servings = 1
	}

	if len(info.Nutrition.Nutrients) == 0 {
		return nil, servings, nil
	}

	nutrients := make(map[string]float64, len(info.Nutrition.Nutrients))
	for _, n := range info.Nutrition.Nutrients {
		nutrients[n.Name] = n.Amount
	}

	return &model.RecipeNutrition{
		Calories: int(nutrients["Calories"]),
		ProteinG: nutrients["Protein"],
		CarbsG:   nutrients["Carbohydrates"],
		FatsG:    nutrients["Fat"],
	}, servings, nil
}

// fetchPricing retrieves the price breakdown for a recipe. Pricing is
// optional: any failure, including the 404 Spoonacular returns for recipes
// without price data, yields nil.
func (s *SpoonacularService) fetchPricing(ctx context.Context, recipeID, servings int) *model.RecipePricing {
	params := url.Values{}
	params.Set("apiKey", s.apiKey)

	endpoint := fmt.Sprintf("%s/recipes/%d/priceBreakdown?%s", s.baseURL, recipeID, params.Encode())

	var breakdown struct {
		TotalCost float64 `json:"totalCost"`
	}
	if err := s.getJSON(ctx, endpoint, &breakdown); err != nil {
		log.Printf("Skipping pricing for recipe %d: %v", recipeID, err)
		return nil
	}

	if breakdown.TotalCost <= 0 || servings < 1 {
		return nil
	}

	// totalCost is reported in cents
	return &model.RecipePricing{
		CostPerServing: breakdown.TotalCost / float64(servings) / 100,
		Currency:       "USD",
		Servings:       servings,
	}
}

// getJSON issues a GET request and decodes a JSON response. Any non-200
// status is an error; 4xx and 5xx are treated uniformly.
func (s *SpoonacularService) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
