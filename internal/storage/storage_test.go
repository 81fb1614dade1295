package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"eatwise/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "eatwise.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func ptr[T any](v T) *T { return &v }

func TestCreateUser(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.CreateUser(ctx, "a@b.com", "hash"))
	err := s.CreateUser(ctx, "a@b.com", "other")
	assert.ErrorIs(t, err, ErrEmailExists)

	u, err := s.GetUserByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, "hash", u.PasswordHash)
	assert.False(t, u.ProfileCompleted)
	assert.Equal(t, []string{}, u.Profile.Diseases)
	assert.Nil(t, u.Profile.Name)
}

func TestGetUserByEmailNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetUserByEmail(context.Background(), "missing@x.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSaveProfile(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	require.NoError(t, s.CreateUser(ctx, "a@b.com", "hash"))

	err := s.SaveProfile(ctx, "a@b.com", models.Profile{
		Name:     ptr("Ana"),
		Age:      ptr(31),
		Gender:   ptr("female"),
		Height:   ptr(165.0),
		Weight:   ptr(60.5),
		Diseases: []string{"diabetes"},
	})
	require.NoError(t, err)

	u, err := s.GetUserByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	assert.True(t, u.ProfileCompleted)
	assert.Equal(t, "hash", u.PasswordHash)
	assert.Equal(t, "Ana", *u.Profile.Name)
	assert.Equal(t, 31, *u.Profile.Age)
	assert.Equal(t, 165.0, *u.Profile.Height)
	assert.Equal(t, 60.5, *u.Profile.Weight)
	assert.Equal(t, []string{"diabetes"}, u.Profile.Diseases)

	// partial update keeps the other fields
	require.NoError(t, s.SaveProfile(ctx, "a@b.com", models.Profile{Weight: ptr(59.0)}))
	u, err = s.GetUserByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, "Ana", *u.Profile.Name)
	assert.Equal(t, 59.0, *u.Profile.Weight)
	assert.Equal(t, []string{"diabetes"}, u.Profile.Diseases)
}

func TestSaveProfileCreatesMissingUser(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.SaveProfile(ctx, "new@b.com", models.Profile{Name: ptr("New")}))
	u, err := s.GetUserByEmail(ctx, "new@b.com")
	require.NoError(t, err)
	assert.True(t, u.ProfileCompleted)
	assert.Empty(t, u.PasswordHash)
}

func TestEntries(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	first, err := s.AddEntry(ctx, "a@b.com", models.FoodEntry{
		Food: "Oats", QuantityG: 50, Calories: 190, Protein: 6.5, Carbs: 33, Fat: 3.5,
		MealType: models.MealBreakfast, Source: models.SourceManual, ConsumedOn: "2026-10-15", Time: "08:10",
	})
	require.NoError(t, err)
	assert.NotZero(t, first.ID)

	_, err = s.AddEntry(ctx, "a@b.com", models.FoodEntry{Food: "Chips", Calories: 530, Source: models.SourceAnalysis, ConsumedOn: "2026-10-15"})
	require.NoError(t, err)
	_, err = s.AddEntry(ctx, "a@b.com", models.FoodEntry{Food: "Rice", Calories: 200, Source: models.SourceManual, ConsumedOn: "2026-10-14"})
	require.NoError(t, err)
	_, err = s.AddEntry(ctx, "other@b.com", models.FoodEntry{Food: "Rice", Calories: 200, Source: models.SourceManual, ConsumedOn: "2026-10-15"})
	require.NoError(t, err)

	list, err := s.ListEntries(ctx, "a@b.com", "2026-10-15")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Oats", list[0].Food)
	assert.Equal(t, models.MealBreakfast, list[0].MealType)
	assert.Equal(t, "Chips", list[1].Food)

	assert.ErrorIs(t, s.DeleteEntry(ctx, "other@b.com", first.ID), ErrNotFound)
	require.NoError(t, s.DeleteEntry(ctx, "a@b.com", first.ID))
	assert.ErrorIs(t, s.DeleteEntry(ctx, "a@b.com", first.ID), ErrNotFound)

	n, err := s.ResetDay(ctx, "a@b.com", "2026-10-15")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	list, err = s.ListEntries(ctx, "a@b.com", "2026-10-15")
	require.NoError(t, err)
	assert.Empty(t, list)

	list, err = s.ListEntries(ctx, "a@b.com", "2026-10-14")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestGoal(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.GetGoal(ctx, "a@b.com")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.SaveGoal(ctx, "a@b.com", models.WeightGoal{CurrentWeight: 80, TargetWeight: 75, TargetCalories: 2209, GoalType: models.GoalLoss})
	require.NoError(t, err)
	_, err = s.SaveGoal(ctx, "a@b.com", models.WeightGoal{CurrentWeight: 80, TargetWeight: 78, TargetCalories: 2500, GoalType: models.GoalLoss})
	require.NoError(t, err)

	g, err := s.GetGoal(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, 78.0, g.TargetWeight)
	assert.Equal(t, 2500.0, g.TargetCalories)
	assert.False(t, g.UpdatedAt.IsZero())
}

func TestAnalyses(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.LatestAnalysis(ctx, "a@b.com")
	assert.ErrorIs(t, err, ErrNotFound)

	base := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	for i, product := range []string{"Chips", "Cola", "Bar"} {
		a, err := s.SaveAnalysis(ctx, models.Analysis{
			UserEmail: "a@b.com", ExtractedText: "text", Reply: "{}", Product: product,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
		assert.NotEmpty(t, a.ID)
	}

	latest, err := s.LatestAnalysis(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, "Bar", latest.Product)
	assert.True(t, latest.CreatedAt.Equal(base.Add(2*time.Minute)))

	list, err := s.ListAnalyses(ctx, "a@b.com", 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Bar", list[0].Product)
	assert.Equal(t, "Cola", list[1].Product)

	list, err = s.ListAnalyses(ctx, "other@b.com", 0)
	require.NoError(t, err)
	assert.Empty(t, list)

	got, err := s.GetAnalysis(ctx, "a@b.com", latest.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bar", got.Product)
	_, err = s.GetAnalysis(ctx, "other@b.com", latest.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
