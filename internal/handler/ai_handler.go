package handler

import (
	"errors"
	"io"
	"net/http"

	"eatwise/internal/assistant"
	"eatwise/internal/logging"
	"eatwise/internal/nutrition"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	noImageReply    = "No image uploaded."
	unreadableReply = "Could not analyze the image. Please upload a clearer food label."
	multipartSlack  = 1 << 20
)

type AskRequest struct {
	Message string `json:"message" example:"Is peanut butter healthy?"`
}

type ReplyResponse struct {
	Reply string `json:"reply" example:"Peanut butter is rich in healthy fats..."`
}

type EstimateRequest struct {
	Food string `json:"food" example:"banana"`
}

// AskAI godoc
// @Summary      Ask the AI
// @Description  Forwards the message to the model. Model failures return the demo-mode reply with status 200.
// @Tags         AI
// @Accept       json
// @Produce      json
// @Param        request body handler.AskRequest true "Message"
// @Success      200 {object} handler.ReplyResponse
// @Failure      429 {object} handler.ErrorResponse "Too many requests"
// @Router       /ask-ai [post]
func (h *Handler) AskAI(c *gin.Context) {
	var req AskRequest
	if err := decodeJSON(c, &req); err != nil {
		c.JSON(http.StatusOK, ReplyResponse{Reply: assistant.DemoReply})
		return
	}
	reply := h.assistant.Ask(c.Request.Context(), req.Message)
	c.JSON(http.StatusOK, ReplyResponse{Reply: reply.Text})
}

// AnalyzeImage godoc
// @Summary      Analyze a food label
// @Description  OCRs the uploaded label and asks the model for a structured verdict.
// @Description  A missing file or an unreadable image is reported in "reply" with status 200.
// @Tags         AI
// @Accept       multipart/form-data
// @Produce      json
// @Param        image formData file true "Food label photo (max 5 MiB)"
// @Success      200 {object} assistant.LabelResult
// @Failure      413 {object} handler.ErrorResponse "Image too large"
// @Failure      429 {object} handler.ErrorResponse "Too many requests"
// @Router       /analyze-image [post]
func (h *Handler) AnalyzeImage(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes+multipartSlack)

	fh, err := c.FormFile("image")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			abortMessage(c, http.StatusRequestEntityTooLarge, "Image too large")
			return
		}
		c.JSON(http.StatusOK, ReplyResponse{Reply: noImageReply})
		return
	}
	if fh.Size > h.maxUploadBytes {
		abortMessage(c, http.StatusRequestEntityTooLarge, "Image too large")
		return
	}

	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusOK, ReplyResponse{Reply: unreadableReply})
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusOK, ReplyResponse{Reply: unreadableReply})
		return
	}

	logging.FromContext(c.Request.Context()).Info("image received",
		zap.String("filename", fh.Filename), zap.Int64("size", fh.Size))

	res, err := h.assistant.AnalyzeLabel(c.Request.Context(), currentEmail(c), data)
	if err != nil {
		if !errors.Is(err, assistant.ErrUnreadableImage) {
			logging.FromContext(c.Request.Context()).Error("image analysis", zap.Error(err))
		}
		c.JSON(http.StatusOK, ReplyResponse{Reply: unreadableReply})
		return
	}
	if h.images != nil && res.AnalysisID != "" {
		if _, err := h.images.Save(res.AnalysisID, data); err != nil {
			logging.FromContext(c.Request.Context()).Warn("archive label image",
				zap.String("analysis_id", res.AnalysisID), zap.Error(err))
		}
	}
	c.JSON(http.StatusOK, res)
}

// AssistantAsk godoc
// @Summary      Ask with context
// @Description  Asks the model with the user's last analyzed food and today's intake attached.
// @Tags         Assistant
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body handler.AskRequest true "Question"
// @Success      200 {object} assistant.Reply
// @Failure      400 {object} handler.ErrorResponse
// @Failure      401 {object} handler.ErrorResponse
// @Router       /api/assistant/ask [post]
func (h *Handler) AssistantAsk(c *gin.Context) {
	var req AskRequest
	if err := decodeJSON(c, &req); err != nil {
		abortMessage(c, http.StatusBadRequest, "Invalid request")
		return
	}
	reply, err := h.assistant.AskWithContext(c.Request.Context(), currentEmail(c), req.Message)
	if err != nil {
		if errors.Is(err, assistant.ErrEmptyQuestion) {
			abortMessage(c, http.StatusBadRequest, "Message is required")
			return
		}
		internalError(c, "Failed to ask assistant", err)
		return
	}
	c.JSON(http.StatusOK, reply)
}

// Estimate godoc
// @Summary      Nutrition auto-fill
// @Description  Estimated calories and macros per 100 g for a named food.
// @Tags         Assistant
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body handler.EstimateRequest true "Food name"
// @Success      200 {object} nutrition.Estimate
// @Failure      400 {object} handler.ErrorResponse "Food name is required"
// @Failure      502 {object} handler.ErrorResponse "Could not estimate nutrition"
// @Router       /api/assistant/estimate [post]
func (h *Handler) Estimate(c *gin.Context) {
	var req EstimateRequest
	if err := decodeJSON(c, &req); err != nil {
		abortMessage(c, http.StatusBadRequest, "Invalid request")
		return
	}
	est, err := h.assistant.EstimateNutrition(c.Request.Context(), req.Food)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, est)
	case errors.Is(err, assistant.ErrEmptyFood):
		abortMessage(c, http.StatusBadRequest, "Food name is required")
	case errors.Is(err, nutrition.ErrIncompleteEstimate):
		abortMessage(c, http.StatusBadGateway, "Incomplete nutrition data")
	default:
		logging.FromContext(c.Request.Context()).Warn("nutrition estimate", zap.Error(err))
		abortMessage(c, http.StatusBadGateway, "Could not estimate nutrition. Please enter values manually.")
	}
}

// Snack godoc
// @Summary      Smart snack
// @Description  Snack suggestion that takes the last analyzed food into account.
// @Tags         Assistant
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} assistant.Reply
// @Failure      400 {object} handler.ErrorResponse "Analyze a food first to get snack suggestions."
// @Failure      401 {object} handler.ErrorResponse
// @Router       /api/assistant/snack [post]
func (h *Handler) Snack(c *gin.Context) {
	reply, err := h.assistant.SuggestSnack(c.Request.Context(), currentEmail(c))
	if err != nil {
		if errors.Is(err, assistant.ErrNoAnalysis) {
			abortMessage(c, http.StatusBadRequest, "Analyze a food first to get snack suggestions.")
			return
		}
		internalError(c, "Failed to suggest a snack", err)
		return
	}
	c.JSON(http.StatusOK, reply)
}
