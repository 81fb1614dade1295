package handler

import (
	"errors"
	"net/http"

	"eatwise/internal/models"
	"eatwise/internal/nutrition"
	"eatwise/internal/storage"

	"github.com/gin-gonic/gin"
)

type GoalRequest struct {
	CurrentWeight float64 `json:"currentWeight" example:"80"`
	TargetWeight  float64 `json:"targetWeight" example:"75"`
	TimeFrame     int     `json:"timeFrame" example:"10"`
	ActivityLevel float64 `json:"activityLevel" example:"1.55"`
}

type TipsResponse struct {
	Tips []nutrition.Tip `json:"tips"`
}

// SaveGoal godoc
// @Summary      Plan a weight goal
// @Description  Computes maintenance and target calories plus macros, using age, gender and height from the profile, and saves the plan.
// @Tags         Goal
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body handler.GoalRequest true "Goal inputs"
// @Success      200 {object} models.WeightGoal
// @Failure      400 {object} handler.ErrorResponse "Please fill in all fields"
// @Failure      401 {object} handler.ErrorResponse
// @Router       /api/goal [post]
func (h *Handler) SaveGoal(c *gin.Context) {
	var req GoalRequest
	if err := decodeJSON(c, &req); err != nil {
		abortMessage(c, http.StatusBadRequest, "Invalid request")
		return
	}
	ctx := c.Request.Context()
	email := currentEmail(c)

	in := nutrition.GoalInput{
		CurrentWeight: req.CurrentWeight,
		TargetWeight:  req.TargetWeight,
		TimeFrame:     req.TimeFrame,
		ActivityLevel: req.ActivityLevel,
	}
	user, err := h.store.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		applyProfile(&in, user.Profile)
	case !errors.Is(err, storage.ErrNotFound):
		internalError(c, "Failed to load profile", err)
		return
	}

	goal, err := nutrition.PlanGoal(in)
	if err != nil {
		switch {
		case errors.Is(err, nutrition.ErrMissingGoalFields):
			abortMessage(c, http.StatusBadRequest, "Please fill in all fields")
		case errors.Is(err, nutrition.ErrActivityLevel):
			abortMessage(c, http.StatusBadRequest, "Activity level must be between 1.2 and 1.9")
		default:
			abortMessage(c, http.StatusBadRequest, "Invalid goal")
		}
		return
	}

	saved, err := h.store.SaveGoal(ctx, email, goal)
	if err != nil {
		internalError(c, "Failed to save goal", err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

func applyProfile(in *nutrition.GoalInput, p models.Profile) {
	if p.Age != nil {
		in.Age = *p.Age
	}
	if p.Gender != nil {
		in.Gender = *p.Gender
	}
	if p.Height != nil {
		in.Height = *p.Height
	}
}

// GetGoal godoc
// @Summary      Saved weight goal
// @Tags         Goal
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} models.WeightGoal
// @Failure      404 {object} handler.ErrorResponse "No goal set"
// @Router       /api/goal [get]
func (h *Handler) GetGoal(c *gin.Context) {
	goal, err := h.store.GetGoal(c.Request.Context(), currentEmail(c))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			abortMessage(c, http.StatusNotFound, "No goal set")
			return
		}
		internalError(c, "Failed to load goal", err)
		return
	}
	c.JSON(http.StatusOK, goal)
}

// Tips godoc
// @Summary      Health tips
// @Description  Tips for the conditions in the profile, always ending with the general tip.
// @Tags         Goal
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} handler.TipsResponse
// @Router       /api/tips [get]
func (h *Handler) Tips(c *gin.Context) {
	var diseases []string
	user, err := h.store.GetUserByEmail(c.Request.Context(), currentEmail(c))
	switch {
	case err == nil:
		diseases = user.Profile.Diseases
	case !errors.Is(err, storage.ErrNotFound):
		internalError(c, "Failed to fetch profile", err)
		return
	}
	c.JSON(http.StatusOK, TipsResponse{Tips: nutrition.Tips(diseases)})
}
