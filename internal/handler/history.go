package handler

import (
	"errors"
	"net/http"
	"strconv"

	"eatwise/internal/archiver"
	"eatwise/internal/models"
	"eatwise/internal/storage"

	"github.com/gin-gonic/gin"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

type HistoryResponse struct {
	Analyses []models.Analysis `json:"analyses"`
}

// ListAnalyses godoc
// @Summary      Label analysis history
// @Description  The user's past label analyses, newest first.
// @Tags         History
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "Max items (default 20, max 100)"
// @Success      200 {object} handler.HistoryResponse
// @Failure      401 {object} handler.ErrorResponse
// @Failure      500 {object} handler.ErrorResponse
// @Router       /api/analyses [get]
func (h *Handler) ListAnalyses(c *gin.Context) {
	limit := defaultHistoryLimit
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			abortMessage(c, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = min(n, maxHistoryLimit)
	}

	list, err := h.store.ListAnalyses(c.Request.Context(), currentEmail(c), limit)
	if err != nil {
		internalError(c, "Failed to fetch history", err)
		return
	}
	c.JSON(http.StatusOK, HistoryResponse{Analyses: list})
}

// AnalysisImage godoc
// @Summary      Archived label photo
// @Description  The photo uploaded for one of the user's analyses, when the server keeps them.
// @Tags         History
// @Produce      image/png
// @Produce      image/jpeg
// @Security     BearerAuth
// @Param        id path string true "Analysis id"
// @Success      200 {file} file
// @Failure      404 {object} handler.ErrorResponse "Image not found"
// @Router       /api/analyses/{id}/image [get]
func (h *Handler) AnalysisImage(c *gin.Context) {
	id := c.Param("id")
	if _, err := h.store.GetAnalysis(c.Request.Context(), currentEmail(c), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			abortMessage(c, http.StatusNotFound, "Analysis not found")
			return
		}
		internalError(c, "Failed to fetch analysis", err)
		return
	}
	if h.images == nil {
		abortMessage(c, http.StatusNotFound, "Image not found")
		return
	}
	data, mime, err := h.images.Load(id)
	if err != nil {
		if errors.Is(err, archiver.ErrNotFound) || errors.Is(err, archiver.ErrInvalidID) {
			abortMessage(c, http.StatusNotFound, "Image not found")
			return
		}
		internalError(c, "Failed to load image", err)
		return
	}
	c.Data(http.StatusOK, mime, data)
}
