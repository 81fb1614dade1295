package storage

import (
	"context"
	"fmt"

	"eatwise/internal/models"
)

// AddEntry stores e for the user and returns it with its id and creation time set.
func (s *Store) AddEntry(ctx context.Context, email string, e models.FoodEntry) (models.FoodEntry, error) {
	e.CreatedAt = s.now()
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO food_entries(user_email, food, quantity_g, calories, protein, carbs, fat,
			meal_type, source, consumed_on, time_label, created_at)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		email, e.Food, e.QuantityG, e.Calories, e.Protein, e.Carbs, e.Fat,
		string(e.MealType), string(e.Source), e.ConsumedOn, e.Time, e.CreatedAt.Format(timeLayout))
	if err != nil {
		return e, fmt.Errorf("insert entry: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return e, fmt.Errorf("entry id: %w", err)
	}
	e.ID = id
	return e, nil
}

// ListEntries returns the user's entries for day (YYYY-MM-DD) in insertion order.
func (s *Store) ListEntries(ctx context.Context, email, day string) ([]models.FoodEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, food, quantity_g, calories, protein, carbs, fat, meal_type, source,
		       consumed_on, time_label, created_at
		FROM food_entries WHERE user_email = ? AND consumed_on = ? ORDER BY id ASC`, email, day)
	if err != nil {
		return nil, fmt.Errorf("select entries: %w", err)
	}
	defer rows.Close()

	entries := []models.FoodEntry{}
	for rows.Next() {
		var (
			e                models.FoodEntry
			mealType, source string
			createdAt        string
		)
		if err := rows.Scan(&e.ID, &e.Food, &e.QuantityG, &e.Calories, &e.Protein, &e.Carbs, &e.Fat,
			&mealType, &source, &e.ConsumedOn, &e.Time, &createdAt); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		e.MealType = models.MealType(mealType)
		e.Source = models.EntrySource(source)
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	return entries, nil
}

// DeleteEntry removes one entry owned by the user.
func (s *Store) DeleteEntry(ctx context.Context, email string, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM food_entries WHERE id = ? AND user_email = ?`, id, email)
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ResetDay clears the user's tracker for day and reports how many entries went.
func (s *Store) ResetDay(ctx context.Context, email, day string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM food_entries WHERE user_email = ? AND consumed_on = ?`, email, day)
	if err != nil {
		return 0, fmt.Errorf("reset day: %w", err)
	}
	return res.RowsAffected()
}
