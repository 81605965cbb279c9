package service

import (
	"context"

	"github.com/platefit/backend/internal/model"
)

// ChatClient is the boundary to the LLM chat service. A single synchronous
// call; no streaming.
type ChatClient interface {
	Send(ctx context.Context, prompt string) (string, error)
}

// RecipeSource is the boundary to the recipe search/enrichment API.
type RecipeSource interface {
	Search(ctx context.Context, ingredients []string, limit int) ([]model.RecipeCandidate, error)
	Enrich(ctx context.Context, recipeID int) (*model.RecipeNutrition, *model.RecipePricing, error)
}

// Recommender is the pipeline entry point consumed by the HTTP layer.
type Recommender interface {
	Recommend(ctx context.Context, req model.RecommendationRequest) (*model.RecommendationResult, error)
}
