package assistant

import (
	"context"
	"fmt"

	"eatwise/internal/models"
	"eatwise/internal/nutrition"
	"eatwise/internal/ocr"
	"eatwise/internal/prompt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LabelResult is the outcome of a label scan.
type LabelResult struct {
	ExtractedText string                `json:"extractedText"`
	Reply         string                `json:"reply"`
	Analysis      *models.LabelAnalysis `json:"analysis,omitempty"`
	AnalysisID    string                `json:"analysisId,omitempty"`
	Fallback      bool                  `json:"fallback,omitempty"`
}

// AnalyzeLabel reads the label in image and asks the model for a verdict.
// Any failure before the model call is ErrUnreadableImage. A failed model call
// yields the demo analysis text. Successful replies are stored for email
// when it is not empty.
func (s *Service) AnalyzeLabel(ctx context.Context, email string, image []byte) (LabelResult, error) {
	text, err := s.readLabel(ctx, image)
	if err != nil {
		s.metrics.OCRRunsTotal.WithLabelValues("error").Inc()
		s.logger.Info("label unreadable", zap.Error(err))
		return LabelResult{}, fmt.Errorf("%w: %v", ErrUnreadableImage, err)
	}
	if text == "" {
		s.metrics.OCRRunsTotal.WithLabelValues("empty").Inc()
	} else {
		s.metrics.OCRRunsTotal.WithLabelValues("ok").Inc()
	}
	s.logger.Debug("label text extracted", zap.Int("chars", len(text)))

	p, err := prompt.Render(prompt.LabelAnalysis, prompt.LabelData{Text: text})
	if err != nil {
		return LabelResult{}, err
	}
	result := LabelResult{ExtractedText: text}

	reply, err := s.llm.Complete(ctx, p)
	if err != nil {
		s.logger.Warn("label analysis failed, serving demo analysis", zap.Error(err))
		s.metrics.FallbackTotal.WithLabelValues("analysis").Inc()
		result.Reply = DemoAnalysisReply
		result.Fallback = true
		return result, nil
	}
	result.Reply = reply

	record := models.Analysis{UserEmail: email, ExtractedText: text, Reply: reply}
	if parsed, err := nutrition.ParseLabelAnalysis(reply); err == nil {
		result.Analysis = parsed
		record.Product = parsed.Product.Name
	}
	if email != "" {
		saved, err := s.store.SaveAnalysis(ctx, record)
		if err != nil {
			s.logger.Error("save analysis", zap.String("email", email), zap.Error(err))
		} else {
			result.AnalysisID = saved.ID
		}
	}
	return result, nil
}

func (s *Service) readLabel(ctx context.Context, image []byte) (string, error) {
	format, err := ocr.DetectImage(image)
	if err != nil {
		return "", err
	}
	prepared, err := ocr.Preprocess(image)
	if err != nil {
		return "", err
	}
	res, err := s.ocr.Recognize(ctx, ocr.Input{
		ID:        uuid.NewString(),
		Image:     prepared,
		Format:    format,
		Languages: s.languages,
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", s.ocr.Name(), err)
	}
	return ocr.CleanText(res.PlainText), nil
}
