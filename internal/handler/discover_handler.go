package handler

import (
	"errors"
	"net/http"

	"eatwise/internal/assistant"
	"eatwise/internal/models"
	"eatwise/internal/nutrition"

	"github.com/gin-gonic/gin"
)

type InsightsResponse struct {
	Insights []string `json:"insights"`
}

type SnacksResponse struct {
	Snacks   []models.Snack `json:"snacks"`
	Fallback bool           `json:"fallback"`
}

type RecipesResponse struct {
	Recipes  []models.Recipe `json:"recipes"`
	Fallback bool            `json:"fallback"`
}

type FactsResponse struct {
	Facts []string `json:"facts"`
}

// Insights godoc
// @Summary      Personalized insights
// @Description  Four or five recommendations from the profile and today's intake.
// @Tags         Discover
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} handler.InsightsResponse
// @Failure      503 {object} handler.ErrorResponse "Unable to generate insights"
// @Router       /api/discover/insights [get]
func (h *Handler) Insights(c *gin.Context) {
	insights, err := h.assistant.Insights(c.Request.Context(), currentEmail(c))
	if err != nil {
		if errors.Is(err, assistant.ErrNoInsights) {
			abortMessage(c, http.StatusServiceUnavailable, "Unable to generate insights. Try again later.")
			return
		}
		internalError(c, "Unable to generate insights. Try again later.", err)
		return
	}
	c.JSON(http.StatusOK, InsightsResponse{Insights: insights})
}

// SmartSnacks godoc
// @Summary      Snacks for your conditions
// @Description  Four snacks suited to the profile's conditions. A built-in list is served when the model fails.
// @Tags         Discover
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} handler.SnacksResponse
// @Router       /api/discover/snacks [get]
func (h *Handler) SmartSnacks(c *gin.Context) {
	snacks, fallback, err := h.assistant.SmartSnacks(c.Request.Context(), currentEmail(c))
	if err != nil {
		internalError(c, "Failed to suggest snacks", err)
		return
	}
	c.JSON(http.StatusOK, SnacksResponse{Snacks: snacks, Fallback: fallback})
}

// Recipes godoc
// @Summary      Recipes for your conditions
// @Description  Three recipes suited to the profile's conditions. A built-in list is served when the model fails.
// @Tags         Discover
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} handler.RecipesResponse
// @Router       /api/discover/recipes [get]
func (h *Handler) Recipes(c *gin.Context) {
	recipes, fallback, err := h.assistant.Recipes(c.Request.Context(), currentEmail(c))
	if err != nil {
		internalError(c, "Failed to suggest recipes", err)
		return
	}
	c.JSON(http.StatusOK, RecipesResponse{Recipes: recipes, Fallback: fallback})
}

// Facts godoc
// @Summary      Health facts
// @Tags         Discover
// @Produce      json
// @Success      200 {object} handler.FactsResponse
// @Router       /api/discover/facts [get]
func (h *Handler) Facts(c *gin.Context) {
	c.JSON(http.StatusOK, FactsResponse{Facts: nutrition.HealthFacts})
}
