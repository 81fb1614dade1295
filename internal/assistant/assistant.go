// Package assistant composes prompts from user state, calls the model and
// turns its replies into tracker data, falling back to canned text when the
// model cannot be reached.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"eatwise/internal/llm"
	"eatwise/internal/metrics"
	"eatwise/internal/models"
	"eatwise/internal/nutrition"
	"eatwise/internal/ocr"
	"eatwise/internal/prompt"
	"eatwise/internal/storage"

	"go.uber.org/zap"
)

const (
	DemoReply         = "⚠️ Demo mode: AI quota exceeded. Real-time AI works when credits are available."
	DemoAnalysisReply = "⚠️ Demo analysis: This product appears to contain mixed ingredients. Some may contribute to higher calories or sugar. Real-time AI analysis activates when credits are available."

	// used when an analysis exists but the model gave no product name
	unnamedFood = "this food"
)

var (
	ErrUnreadableImage = errors.New("could not read text from image")
	ErrNoAnalysis      = errors.New("no analyzed food yet")
	ErrNoTrackerData   = errors.New("latest analysis has no tracker data")
	ErrEmptyFood       = errors.New("food name is required")
	ErrEmptyQuestion   = errors.New("question is required")
	ErrNoInsights      = errors.New("insights unavailable")
)

// Store is the persistence the assistant reads context from and writes to.
type Store interface {
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
	ListEntries(ctx context.Context, email, day string) ([]models.FoodEntry, error)
	AddEntry(ctx context.Context, email string, e models.FoodEntry) (models.FoodEntry, error)
	SaveAnalysis(ctx context.Context, a models.Analysis) (models.Analysis, error)
	LatestAnalysis(ctx context.Context, email string) (models.Analysis, error)
}

type Service struct {
	llm       llm.Completer
	ocr       ocr.Engine
	store     Store
	languages []string
	logger    *zap.Logger
	metrics   *metrics.Metrics
	now       func() time.Time
}

func New(completer llm.Completer, engine ocr.Engine, store Store, languages []string, logger *zap.Logger) *Service {
	return &Service{
		llm:       completer,
		ocr:       engine,
		store:     store,
		languages: languages,
		logger:    logger.Named("assistant"),
		metrics:   metrics.Default(),
		now:       time.Now,
	}
}

// Reply is a chat answer. Fallback marks the canned demo text.
type Reply struct {
	Text     string `json:"reply"`
	Note     string `json:"note,omitempty"`
	Fallback bool   `json:"fallback,omitempty"`
}

// Ask forwards message to the model unchanged.
func (s *Service) Ask(ctx context.Context, message string) Reply {
	text, err := s.llm.Complete(ctx, message)
	if err != nil {
		s.logger.Warn("ask failed, serving demo reply", zap.Error(err))
		s.metrics.FallbackTotal.WithLabelValues("ask").Inc()
		return Reply{Text: DemoReply, Fallback: true}
	}
	return Reply{Text: text}
}

// AskWithContext wraps question with the user's last analyzed food and
// today's intake before asking.
func (s *Service) AskWithContext(ctx context.Context, email, question string) (Reply, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return Reply{}, ErrEmptyQuestion
	}
	data, err := s.context(ctx, email)
	if err != nil {
		return Reply{}, err
	}
	data.Question = question

	p, err := prompt.Render(prompt.ContextQuestion, data)
	if err != nil {
		return Reply{}, err
	}
	reply := s.Ask(ctx, p)
	if strings.Contains(strings.ToLower(question), "can i eat more") && data.Calories > 0 {
		reply.Note = "You’ve consumed about " + strconv.FormatFloat(data.Calories, 'f', -1, 64) + " kcal today."
	}
	return reply, nil
}

func (s *Service) context(ctx context.Context, email string) (prompt.ContextData, error) {
	var data prompt.ContextData
	entries, err := s.store.ListEntries(ctx, email, s.today())
	if err != nil {
		return data, fmt.Errorf("load today's entries: %w", err)
	}
	totals := nutrition.Sum(entries)
	data.Calories, data.Protein, data.Carbs, data.Fat = totals.Calories, totals.Protein, totals.Carbs, totals.Fat

	last, err := s.store.LatestAnalysis(ctx, email)
	switch {
	case err == nil:
		data.LastFood = foodName(last)
	case !errors.Is(err, storage.ErrNotFound):
		return data, fmt.Errorf("load latest analysis: %w", err)
	}
	return data, nil
}

// SuggestSnack asks for a snack that complements the last analyzed food.
func (s *Service) SuggestSnack(ctx context.Context, email string) (Reply, error) {
	last, err := s.store.LatestAnalysis(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return Reply{}, ErrNoAnalysis
		}
		return Reply{}, fmt.Errorf("load latest analysis: %w", err)
	}
	question, err := prompt.Render(prompt.SnackQuestion, prompt.ContextData{LastFood: foodName(last)})
	if err != nil {
		return Reply{}, err
	}
	return s.AskWithContext(ctx, email, question)
}

// EstimateNutrition asks for per-100 g values of a named food.
func (s *Service) EstimateNutrition(ctx context.Context, food string) (nutrition.Estimate, error) {
	food = strings.TrimSpace(food)
	if food == "" {
		return nutrition.Estimate{}, ErrEmptyFood
	}
	p, err := prompt.Render(prompt.NutritionLookup, prompt.FoodData{Food: food})
	if err != nil {
		return nutrition.Estimate{}, err
	}
	reply, err := s.llm.Complete(ctx, p)
	if err != nil {
		return nutrition.Estimate{}, fmt.Errorf("nutrition lookup: %w", err)
	}
	return nutrition.ParseEstimate(reply)
}

// TrackLatest logs the latest analysis's tracker_data as a food entry for today.
func (s *Service) TrackLatest(ctx context.Context, email string) (models.FoodEntry, error) {
	last, err := s.store.LatestAnalysis(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.FoodEntry{}, ErrNoTrackerData
		}
		return models.FoodEntry{}, fmt.Errorf("load latest analysis: %w", err)
	}
	parsed, err := nutrition.ParseLabelAnalysis(last.Reply)
	if err != nil || parsed.TrackerData == nil {
		return models.FoodEntry{}, ErrNoTrackerData
	}

	td := parsed.TrackerData
	now := s.now()
	entry := models.FoodEntry{
		Food:       td.Food,
		QuantityG:  td.QuantityG,
		Calories:   td.CaloriesKcal,
		Protein:    td.ProteinG,
		Carbs:      td.CarbsG,
		Fat:        td.FatG,
		Source:     models.SourceAnalysis,
		ConsumedOn: now.Format(models.DayLayout),
		Time:       now.Format("15:04"),
	}
	if entry.Food == "" {
		entry.Food = foodName(last)
	}
	return s.store.AddEntry(ctx, email, entry)
}

func (s *Service) today() string {
	return s.now().Format(models.DayLayout)
}

func foodName(a models.Analysis) string {
	if a.Product != "" {
		return a.Product
	}
	return unnamedFood
}
