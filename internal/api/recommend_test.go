package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platefit/backend/internal/model"
)

// fakeRecommender implements service.Recommender for handler tests.
type fakeRecommender struct {
	result *model.RecommendationResult
	err    error
}

func (f *fakeRecommender) Recommend(ctx context.Context, req model.RecommendationRequest) (*model.RecommendationResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func setupRouter(rec *fakeRecommender) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewRecommendHandler(rec, nil)
	handler.RegisterRoutes(router.Group("/api/v1"))
	return router
}

func postRecommend(t *testing.T, router *gin.Engine, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/recipes/recommend", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRecommendHandler_Recommend(t *testing.T) {
	validBody := model.RecommendationRequest{
		HeightCm:        180,
		WeightKg:        75,
		FoodPreferences: "Mediterranean",
		DietGoals:       "lose weight",
	}

	t.Run("should return the result envelope on success", func(t *testing.T) {
		rec := &fakeRecommender{
			result: &model.RecommendationResult{
				UserMetrics:       model.UserMetrics{TDEEEstimate: 2805},
				ParsedIngredients: []string{"chicken", "broccoli"},
				RecipeCount:       1,
				Recipes: []model.Recipe{{
					RecipeCandidate:     model.RecipeCandidate{ID: 101, Title: "Chicken Bowl"},
					MacroAlignmentScore: 92,
				}},
			},
		}
		router := setupRouter(rec)

		w := postRecommend(t, router, validBody)

		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Success           bool           `json:"success"`
			ParsedIngredients []string       `json:"parsed_ingredients"`
			RecipeCount       int            `json:"recipe_count"`
			Recipes           []model.Recipe `json:"recipes"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, []string{"chicken", "broccoli"}, resp.ParsedIngredients)
		assert.Equal(t, 1, resp.RecipeCount)
		require.Len(t, resp.Recipes, 1)
		assert.Equal(t, 101, resp.Recipes[0].ID)
	})

	t.Run("should map validation failures to 400 with the field name", func(t *testing.T) {
		rec := &fakeRecommender{
			err: &model.PipelineError{
				Stage: model.StageValidating,
				Err:   &model.ValidationError{Field: "height_cm", Message: "must be between 100-250 cm"},
			},
		}
		router := setupRouter(rec)

		w := postRecommend(t, router, validBody)

		require.Equal(t, http.StatusBadRequest, w.Code)
		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, false, resp["success"])
		assert.Equal(t, "height_cm", resp["field"])
	})

	t.Run("should map empty extraction to 422", func(t *testing.T) {
		rec := &fakeRecommender{
			err: &model.PipelineError{
				Stage: model.StageExtracting,
				Err:   &model.EmptyExtractionError{},
			},
		}
		router := setupRouter(rec)

		w := postRecommend(t, router, validBody)

		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "empty_extraction", resp["type"])
	})

	t.Run("should map upstream failures to 502", func(t *testing.T) {
		rec := &fakeRecommender{
			err: &model.PipelineError{
				Stage: model.StageSearching,
				Err:   &model.ExternalServiceError{Service: "spoonacular", Err: errors.New("status 500")},
			},
		}
		router := setupRouter(rec)

		w := postRecommend(t, router, validBody)

		require.Equal(t, http.StatusBadGateway, w.Code)
		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "external_api_error", resp["type"])
	})

	t.Run("should map unknown failures to 500", func(t *testing.T) {
		rec := &fakeRecommender{err: errors.New("boom")}
		router := setupRouter(rec)

		w := postRecommend(t, router, validBody)

		require.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("should reject a non-JSON body", func(t *testing.T) {
		router := setupRouter(&fakeRecommender{})

		req := httptest.NewRequest(http.MethodPost, "/api/v1/recipes/recommend", bytes.NewReader([]byte("not json")))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHealthCheck(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/health", HealthCheck)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
	assert.Contains(t, resp, "uptime_seconds")
}
