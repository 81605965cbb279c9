package service

import (
	"context"
	"errors"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/platefit/backend/internal/model"
)

// RecommendationService orchestrates the recommendation pipeline:
// validate → metrics → extract → search → enrich → filter → rank.
// Each stage transition is one-way; any failure aborts the request with the
// originating stage attached and no partial recipe list.
type RecommendationService struct {
	extractor         *IngredientExtractor
	recipes           RecipeSource
	searchResults     int
	enrichConcurrency int
}

// NewRecommendationService creates a new RecommendationService instance.
// searchResults is how many candidates to request from the search step
// (headroom for filtering); enrichConcurrency bounds the enrichment fan-out.
func NewRecommendationService(chat ChatClient, recipes RecipeSource, searchResults, enrichConcurrency int) *RecommendationService {
	if searchResults < 1 {
		searchResults = 15
	}
	if enrichConcurrency < 1 {
		enrichConcurrency = 5
	}
	return &RecommendationService{
		extractor:         NewIngredientExtractor(chat),
		recipes:           recipes,
		searchResults:     searchResults,
		enrichConcurrency: enrichConcurrency,
	}
}

// Recommend runs one request through the full pipeline. No retries happen at
// this level; a failed stage reports its origin via PipelineError.
func (s *RecommendationService) Recommend(ctx context.Context, req model.RecommendationRequest) (*model.RecommendationResult, error) {
	input, err := req.Validate()
	if err != nil {
		return nil, &model.PipelineError{Stage: model.StageValidating, Err: err}
	}

	metrics := ComputeMetrics(input)
	log.Printf("Computed metrics - BMI: %.1f, TDEE: %d", metrics.BMI, metrics.TDEEEstimate)

	ingredients, err := s.extractor.Extract(ctx, input.FoodPreferences, input.DietGoals, input.Allergies)
	if err != nil {
		return nil, &model.PipelineError{Stage: model.StageExtracting, Err: err}
	}
	log.Printf("Extracted %d ingredients", len(ingredients))

	candidates, err := s.recipes.Search(ctx, ingredients, s.searchResults)
	if err != nil {
		return nil, &model.PipelineError{Stage: model.StageSearching, Err: err}
	}
	log.Printf("Search returned %d candidates", len(candidates))

	enriched := s.enrichAll(ctx, candidates)

	safe := FilterAllergens(enriched, input.Allergies)

	for i := range safe {
		safe[i].MacroAlignmentScore = ScoreAlignment(safe[i].Nutrition, metrics.MacroTargets)
	}
	ranked := Rank(safe)

	log.Printf("Returning %d recipes", len(ranked))
	return &model.RecommendationResult{
		UserMetrics:       metrics,
		ParsedIngredients: ingredients,
		RecipeCount:       len(ranked),
		Recipes:           ranked,
	}, nil
}

// enrichAll fans enrichment out across a bounded worker group and waits for
// every lookup to settle. A failed nutrition lookup drops only that
// candidate; the rest of the request proceeds.
func (s *RecommendationService) enrichAll(ctx context.Context, candidates []model.RecipeCandidate) []model.Recipe {
	results := make([]*model.Recipe, len(candidates))

	g := new(errgroup.Group)
	g.SetLimit(s.enrichConcurrency)

	for i, candidate := range candidates {
		i, candidate := i, candidate
		g.Go(func() error {
			nutrition, pricing, err := s.recipes.Enrich(ctx, candidate.ID)
			if err != nil {
				var svcErr *model.ExternalServiceError
				if !errors.As(err, &svcErr) {
					log.Printf("Unexpected enrichment error for recipe %d: %v", candidate.ID, err)
				} else {
					log.Printf("Dropping recipe %d: %v", candidate.ID, err)
				}
				return nil
			}
			results[i] = &model.Recipe{
				RecipeCandidate: candidate,
				Nutrition:       nutrition,
				Pricing:         pricing,
			}
			return nil
		})
	}
	g.Wait()

	enriched := make([]model.Recipe, 0, len(candidates))
	for _, r := range results {
		if r != nil {
			enriched = append(enriched, *r)
		}
	}
	return enriched
}
