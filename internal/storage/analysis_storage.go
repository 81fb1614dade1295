package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"eatwise/internal/models"

	"github.com/google/uuid"
)

// SaveAnalysis records a label scan. An empty ID is filled with a new uuid.
func (s *Store) SaveAnalysis(ctx context.Context, a models.Analysis) (models.Analysis, error) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = s.now()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO analyses(id, user_email, extracted_text, reply, product, created_at)
		VALUES(?, ?, ?, ?, ?, ?)`,
		a.ID, a.UserEmail, a.ExtractedText, a.Reply, a.Product, a.CreatedAt.UTC().Format(timeLayout))
	if err != nil {
		return a, fmt.Errorf("insert analysis: %w", err)
	}
	return a, nil
}

// ListAnalyses returns the user's most recent analyses, newest first.
func (s *Store) ListAnalyses(ctx context.Context, email string, limit int) ([]models.Analysis, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_email, extracted_text, reply, product, created_at
		FROM analyses WHERE user_email = ? ORDER BY created_at DESC, rowid DESC LIMIT ?`, email, limit)
	if err != nil {
		return nil, fmt.Errorf("select analyses: %w", err)
	}
	defer rows.Close()

	list := []models.Analysis{}
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate analyses: %w", err)
	}
	return list, nil
}

func (s *Store) LatestAnalysis(ctx context.Context, email string) (models.Analysis, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_email, extracted_text, reply, product, created_at
		FROM analyses WHERE user_email = ? ORDER BY created_at DESC, rowid DESC LIMIT 1`, email)
	a, err := scanAnalysis(row)
	if errors.Is(err, sql.ErrNoRows) {
		return a, ErrNotFound
	}
	return a, err
}

// GetAnalysis returns one of the user's analyses by id.
func (s *Store) GetAnalysis(ctx context.Context, email, id string) (models.Analysis, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_email, extracted_text, reply, product, created_at
		FROM analyses WHERE user_email = ? AND id = ?`, email, id)
	a, err := scanAnalysis(row)
	if errors.Is(err, sql.ErrNoRows) {
		return a, ErrNotFound
	}
	return a, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAnalysis(sc scanner) (models.Analysis, error) {
	var (
		a         models.Analysis
		createdAt string
	)
	if err := sc.Scan(&a.ID, &a.UserEmail, &a.ExtractedText, &a.Reply, &a.Product, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return a, err
		}
		return a, fmt.Errorf("scan analysis: %w", err)
	}
	a.CreatedAt = parseTime(createdAt)
	return a, nil
}
