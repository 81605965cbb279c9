package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/platefit/backend/internal/middleware"
	"github.com/platefit/backend/internal/model"
	"github.com/platefit/backend/internal/service"
)

// RecommendHandler handles recipe recommendation requests
type RecommendHandler struct {
	recommender service.Recommender
	rateLimiter *middleware.RateLimiter
}

// NewRecommendHandler creates a new RecommendHandler instance
func NewRecommendHandler(recommender service.Recommender, rateLimiter *middleware.RateLimiter) *RecommendHandler {
	return &RecommendHandler{
		recommender: recommender,
		rateLimiter: rateLimiter,
	}
}

// RegisterRoutes registers the recommendation routes
func (h *RecommendHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.POST("/recommend", h.rateLimiter.Middleware(), h.Recommend)
	}
}

// Recommend runs a request through the recommendation pipeline and writes
// the result envelope.
func (h *RecommendHandler) Recommend(c *gin.Context) {
	var req model.RecommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "request body must be JSON"})
		return
	}

	log.Printf("Processing recommendation request - height: %d, weight: %d", req.HeightCm, req.WeightKg)

	result, err := h.recommender.Recommend(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":            true,
		"user_metrics":       result.UserMetrics,
		"parsed_ingredients": result.ParsedIngredients,
		"recipe_count":       result.RecipeCount,
		"recipes":            result.Recipes,
	})
}

// writeError maps pipeline failures onto status codes: caller faults are
// 400, upstream faults 502, an unusable extraction 422, anything else 500.
func (h *RecommendHandler) writeError(c *gin.Context, err error) {
	var validationErr *model.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   validationErr.Message,
			"field":   validationErr.Field,
		})
		return
	}

	var emptyErr *model.EmptyExtractionError
	if errors.As(err, &emptyErr) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"success": false,
			"error":   emptyErr.Error(),
			"type":    "empty_extraction",
		})
		return
	}

	var svcErr *model.ExternalServiceError
	if errors.As(err, &svcErr) {
		log.Printf("External service error: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{
			"success": false,
			"error":   "an upstream service failed; please retry later",
			"type":    "external_api_error",
		})
		return
	}

	log.Printf("Unexpected pipeline error: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"error":   "internal server error",
		"type":    "internal_error",
	})
}
