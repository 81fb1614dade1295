package assistant

import (
	"context"
	"errors"
	"fmt"

	"eatwise/internal/models"
	"eatwise/internal/nutrition"
	"eatwise/internal/prompt"
	"eatwise/internal/storage"

	"go.uber.org/zap"
)

// Insights returns up to five personalized recommendations.
func (s *Service) Insights(ctx context.Context, email string) ([]string, error) {
	data, err := s.profileData(ctx, email, true)
	if err != nil {
		return nil, err
	}
	p, err := prompt.Render(prompt.Insights, data)
	if err != nil {
		return nil, err
	}
	reply, err := s.llm.Complete(ctx, p)
	if err != nil {
		s.logger.Warn("insights failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrNoInsights, err)
	}
	insights := nutrition.ParseInsights(reply)
	if len(insights) == 0 {
		return nil, ErrNoInsights
	}
	return insights, nil
}

// SmartSnacks suggests snacks for the user's conditions. The bool reports
// whether the built-in list was served instead of model output.
func (s *Service) SmartSnacks(ctx context.Context, email string) ([]models.Snack, bool, error) {
	data, err := s.profileData(ctx, email, false)
	if err != nil {
		return nil, false, err
	}
	p, err := prompt.Render(prompt.SmartSnacks, data)
	if err != nil {
		return nil, false, err
	}
	reply, err := s.llm.Complete(ctx, p)
	if err == nil {
		snacks, perr := nutrition.ParseSnacks(reply)
		if perr == nil && len(snacks) > 0 {
			return snacks, false, nil
		}
		err = perr
	}
	s.logger.Warn("smart snacks failed, serving defaults", zap.Error(err))
	s.metrics.FallbackTotal.WithLabelValues("snacks").Inc()
	return nutrition.DefaultSnacks, true, nil
}

func (s *Service) Recipes(ctx context.Context, email string) ([]models.Recipe, bool, error) {
	data, err := s.profileData(ctx, email, false)
	if err != nil {
		return nil, false, err
	}
	p, err := prompt.Render(prompt.Recipes, data)
	if err != nil {
		return nil, false, err
	}
	reply, err := s.llm.Complete(ctx, p)
	if err == nil {
		recipes, perr := nutrition.ParseRecipes(reply)
		if perr == nil && len(recipes) > 0 {
			return recipes, false, nil
		}
		err = perr
	}
	s.logger.Warn("recipes failed, serving defaults", zap.Error(err))
	s.metrics.FallbackTotal.WithLabelValues("recipes").Inc()
	return nutrition.DefaultRecipes, true, nil
}

func (s *Service) profileData(ctx context.Context, email string, withIntake bool) (prompt.ProfileData, error) {
	var data prompt.ProfileData
	user, err := s.store.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		if user.Profile.Name != nil {
			data.Name = *user.Profile.Name
		}
		if user.Profile.Age != nil {
			data.Age = *user.Profile.Age
		}
		data.Diseases = user.Profile.Diseases
	case !errors.Is(err, storage.ErrNotFound):
		return data, fmt.Errorf("load profile: %w", err)
	}

	if withIntake {
		entries, err := s.store.ListEntries(ctx, email, s.today())
		if err != nil {
			return data, fmt.Errorf("load today's entries: %w", err)
		}
		totals := nutrition.Sum(entries)
		data.Calories, data.Protein = totals.Calories, totals.Protein
	}
	return data, nil
}
