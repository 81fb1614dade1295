package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"eatwise/internal/models"
)

// SaveGoal replaces the user's weight goal.
func (s *Store) SaveGoal(ctx context.Context, email string, g models.WeightGoal) (models.WeightGoal, error) {
	g.UpdatedAt = s.now()
	payload, err := json.Marshal(g)
	if err != nil {
		return g, fmt.Errorf("encode goal: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO weight_goals(user_email, payload, updated_at) VALUES(?, ?, ?)
		ON CONFLICT(user_email) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		email, string(payload), g.UpdatedAt.Format(timeLayout))
	if err != nil {
		return g, fmt.Errorf("upsert goal: %w", err)
	}
	return g, nil
}

func (s *Store) GetGoal(ctx context.Context, email string) (models.WeightGoal, error) {
	var (
		g       models.WeightGoal
		payload string
	)
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM weight_goals WHERE user_email = ?`, email).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return g, ErrNotFound
		}
		return g, fmt.Errorf("select goal: %w", err)
	}
	if err := json.Unmarshal([]byte(payload), &g); err != nil {
		return g, fmt.Errorf("decode goal: %w", err)
	}
	return g, nil
}
