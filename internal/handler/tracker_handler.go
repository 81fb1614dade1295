package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"eatwise/internal/assistant"
	"eatwise/internal/models"
	"eatwise/internal/nutrition"
	"eatwise/internal/storage"

	"github.com/gin-gonic/gin"
)

// default serving for manually logged foods
const manualQuantityG = 100

type EntryRequest struct {
	Food      string          `json:"food" example:"Oatmeal"`
	QuantityG float64         `json:"quantity_g" example:"100"`
	Calories  float64         `json:"calories" example:"389"`
	Protein   float64         `json:"protein" example:"16.9"`
	Carbs     float64         `json:"carbs" example:"66.3"`
	Fat       float64         `json:"fat" example:"6.9"`
	MealType  models.MealType `json:"mealType" example:"breakfast"`
}

type EntriesResponse struct {
	Date    string             `json:"date" example:"2026-10-15"`
	Entries []models.FoodEntry `json:"entries"`
}

type ResetResponse struct {
	Date    string `json:"date" example:"2026-10-15"`
	Removed int64  `json:"removed" example:"3"`
}

// day reads ?date=YYYY-MM-DD, defaulting to today.
func (h *Handler) day(c *gin.Context) (string, bool) {
	d := c.Query("date")
	if d == "" {
		return h.now().Format(models.DayLayout), true
	}
	if _, err := time.Parse(models.DayLayout, d); err != nil {
		abortMessage(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		return "", false
	}
	return d, true
}

// ListEntries godoc
// @Summary      Tracker entries
// @Description  Foods logged on a day.
// @Tags         Tracker
// @Produce      json
// @Security     BearerAuth
// @Param        date query string false "Day (YYYY-MM-DD), default today"
// @Success      200 {object} handler.EntriesResponse
// @Failure      400 {object} handler.ErrorResponse
// @Failure      401 {object} handler.ErrorResponse
// @Router       /api/tracker [get]
func (h *Handler) ListEntries(c *gin.Context) {
	day, ok := h.day(c)
	if !ok {
		return
	}
	entries, err := h.store.ListEntries(c.Request.Context(), currentEmail(c), day)
	if err != nil {
		internalError(c, "Failed to load tracker", err)
		return
	}
	c.JSON(http.StatusOK, EntriesResponse{Date: day, Entries: entries})
}

// AddEntry godoc
// @Summary      Log a food manually
// @Description  Adds a manual entry for today. Food, calories, protein, carbs and fat are all required.
// @Tags         Tracker
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body handler.EntryRequest true "Food entry"
// @Success      201 {object} models.FoodEntry
// @Failure      400 {object} handler.ErrorResponse "Please fill in all fields"
// @Failure      401 {object} handler.ErrorResponse
// @Router       /api/tracker [post]
func (h *Handler) AddEntry(c *gin.Context) {
	var req EntryRequest
	if err := decodeJSON(c, &req); err != nil {
		abortMessage(c, http.StatusBadRequest, "Invalid request")
		return
	}
	req.Food = strings.TrimSpace(req.Food)
	if req.Food == "" || req.Calories == 0 || req.Protein == 0 || req.Carbs == 0 || req.Fat == 0 {
		abortMessage(c, http.StatusBadRequest, "Please fill in all fields")
		return
	}
	if req.Calories < 0 || req.Protein < 0 || req.Carbs < 0 || req.Fat < 0 || req.QuantityG < 0 {
		abortMessage(c, http.StatusBadRequest, "Nutrition values must not be negative")
		return
	}
	if !req.MealType.Valid() {
		abortMessage(c, http.StatusBadRequest, "Invalid meal type")
		return
	}
	if req.QuantityG == 0 {
		req.QuantityG = manualQuantityG
	}

	now := h.now()
	entry, err := h.store.AddEntry(c.Request.Context(), currentEmail(c), models.FoodEntry{
		Food:       req.Food,
		QuantityG:  req.QuantityG,
		Calories:   req.Calories,
		Protein:    req.Protein,
		Carbs:      req.Carbs,
		Fat:        req.Fat,
		MealType:   req.MealType,
		Source:     models.SourceManual,
		ConsumedOn: now.Format(models.DayLayout),
		Time:       now.Format("15:04"),
	})
	if err != nil {
		internalError(c, "Failed to add food", err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// AddFromAnalysis godoc
// @Summary      Log the last analyzed food
// @Description  Adds the tracker_data of the latest label analysis to today's tracker.
// @Tags         Tracker
// @Produce      json
// @Security     BearerAuth
// @Success      201 {object} models.FoodEntry
// @Failure      400 {object} handler.ErrorResponse "Analyze a food item first."
// @Failure      401 {object} handler.ErrorResponse
// @Router       /api/tracker/from-analysis [post]
func (h *Handler) AddFromAnalysis(c *gin.Context) {
	entry, err := h.assistant.TrackLatest(c.Request.Context(), currentEmail(c))
	if err != nil {
		if errors.Is(err, assistant.ErrNoTrackerData) {
			abortMessage(c, http.StatusBadRequest, "Analyze a food item first.")
			return
		}
		internalError(c, "Failed to add food", err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// DeleteEntry godoc
// @Summary      Delete a tracker entry
// @Tags         Tracker
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Entry id"
// @Success      200 {object} handler.SuccessResponse
// @Failure      404 {object} handler.ErrorResponse "Entry not found"
// @Router       /api/tracker/{id} [delete]
func (h *Handler) DeleteEntry(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		abortMessage(c, http.StatusBadRequest, "Invalid entry id")
		return
	}
	if err := h.store.DeleteEntry(c.Request.Context(), currentEmail(c), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			abortMessage(c, http.StatusNotFound, "Entry not found")
			return
		}
		internalError(c, "Failed to delete food", err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Success: true})
}

// ResetDay godoc
// @Summary      Reset a day
// @Description  Clears every entry logged on the day.
// @Tags         Tracker
// @Produce      json
// @Security     BearerAuth
// @Param        date query string false "Day (YYYY-MM-DD), default today"
// @Success      200 {object} handler.ResetResponse
// @Router       /api/tracker/reset [post]
func (h *Handler) ResetDay(c *gin.Context) {
	day, ok := h.day(c)
	if !ok {
		return
	}
	n, err := h.store.ResetDay(c.Request.Context(), currentEmail(c), day)
	if err != nil {
		internalError(c, "Failed to reset tracker", err)
		return
	}
	c.JSON(http.StatusOK, ResetResponse{Date: day, Removed: n})
}

// Summary godoc
// @Summary      Calorie summary
// @Description  Totals, calories per food and progress against the goal targets (defaults without a goal).
// @Tags         Tracker
// @Produce      json
// @Security     BearerAuth
// @Param        date query string false "Day (YYYY-MM-DD), default today"
// @Success      200 {object} nutrition.Summary
// @Router       /api/tracker/summary [get]
func (h *Handler) Summary(c *gin.Context) {
	day, ok := h.day(c)
	if !ok {
		return
	}
	entries, targets, ok := h.dayWithTargets(c, day)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, nutrition.Summarize(entries, targets))
}

// Focus godoc
// @Summary      Today's focus
// @Description  Calories and protein eaten today against target.
// @Tags         Tracker
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} nutrition.Focus
// @Router       /api/focus [get]
func (h *Handler) Focus(c *gin.Context) {
	entries, targets, ok := h.dayWithTargets(c, h.now().Format(models.DayLayout))
	if !ok {
		return
	}
	c.JSON(http.StatusOK, nutrition.TodaysFocus(entries, targets))
}

func (h *Handler) dayWithTargets(c *gin.Context, day string) ([]models.FoodEntry, nutrition.Targets, bool) {
	ctx := c.Request.Context()
	email := currentEmail(c)

	entries, err := h.store.ListEntries(ctx, email, day)
	if err != nil {
		internalError(c, "Failed to load tracker", err)
		return nil, nutrition.Targets{}, false
	}
	var goal *models.WeightGoal
	g, err := h.store.GetGoal(ctx, email)
	switch {
	case err == nil:
		goal = &g
	case !errors.Is(err, storage.ErrNotFound):
		internalError(c, "Failed to load goal", err)
		return nil, nutrition.Targets{}, false
	}
	return entries, nutrition.TargetsFor(goal), true
}
