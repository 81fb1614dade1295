// Package handler implements the HTTP and websocket endpoints.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"eatwise/internal/assistant"
	"eatwise/internal/auth"
	"eatwise/internal/logging"
	"eatwise/internal/middleware"
	"eatwise/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Store is the persistence the handlers need.
type Store interface {
	CreateUser(ctx context.Context, email, passwordHash string) error
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
	SaveProfile(ctx context.Context, email string, p models.Profile) error

	AddEntry(ctx context.Context, email string, e models.FoodEntry) (models.FoodEntry, error)
	ListEntries(ctx context.Context, email, day string) ([]models.FoodEntry, error)
	DeleteEntry(ctx context.Context, email string, id int64) error
	ResetDay(ctx context.Context, email, day string) (int64, error)

	SaveGoal(ctx context.Context, email string, g models.WeightGoal) (models.WeightGoal, error)
	GetGoal(ctx context.Context, email string) (models.WeightGoal, error)

	ListAnalyses(ctx context.Context, email string, limit int) ([]models.Analysis, error)
	GetAnalysis(ctx context.Context, email, id string) (models.Analysis, error)
}

// ImageArchive stores uploaded label photos by analysis id.
type ImageArchive interface {
	Save(id string, data []byte) (string, error)
	Load(id string) ([]byte, string, error)
}

// Handler holds the dependencies shared by every endpoint.
type Handler struct {
	store          Store
	issuer         *auth.Issuer
	assistant      *assistant.Service
	images         ImageArchive
	maxUploadBytes int64
	now            func() time.Time
}

// New builds the handlers. images may be nil, in which case label photos are
// not kept.
func New(store Store, issuer *auth.Issuer, svc *assistant.Service, images ImageArchive, maxUploadBytes int64) *Handler {
	return &Handler{
		store:          store,
		issuer:         issuer,
		assistant:      svc,
		images:         images,
		maxUploadBytes: maxUploadBytes,
		now:            time.Now,
	}
}

type ErrorResponse struct {
	Message string `json:"message" example:"Invalid request"`
}

type SuccessResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message,omitempty" example:"Profile saved successfully"`
}

var errEmptyBody = errors.New("empty request body")

// decodeJSON reads the raw body and unmarshals it into v.
func decodeJSON(c *gin.Context, v any) error {
	raw, err := c.GetRawData()
	if err != nil {
		return err
	}
	if len(raw) == 0 {
		return errEmptyBody
	}
	return json.Unmarshal(raw, v)
}

func abortMessage(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Message: msg})
}

// internalError logs err against the request and answers 500 with msg.
func internalError(c *gin.Context, msg string, err error) {
	logging.FromContext(c.Request.Context()).Error(msg, zap.Error(err))
	_ = c.Error(err)
	abortMessage(c, http.StatusInternalServerError, msg)
}

func currentEmail(c *gin.Context) string {
	return c.GetString(middleware.EmailKey)
}
