package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"eatwise/internal/models"

	"modernc.org/sqlite"
)

// sqlite extended result code for a UNIQUE constraint violation
const sqliteConstraintUnique = 2067

// CreateUser inserts a fresh account with an incomplete profile.
func (s *Store) CreateUser(ctx context.Context, email, passwordHash string) error {
	now := s.now().Format(timeLayout)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users(email, password_hash, profile_completed, created_at, updated_at) VALUES(?, ?, 0, ?, ?)`,
		email, passwordHash, now, now)
	if err != nil {
		var sqliteErr *sqlite.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code() == sqliteConstraintUnique {
			return ErrEmailExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	var (
		user                 models.User
		name, gender, dis    sql.NullString
		age                  sql.NullInt64
		height, weight       sql.NullFloat64
		completed            int
		createdAt, updatedAt string
	)
	row := s.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, name, age, gender, height, weight, diseases,
		       profile_completed, created_at, updated_at
		FROM users WHERE email = ?`, email)
	if err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &name, &age, &gender,
		&height, &weight, &dis, &completed, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return user, ErrNotFound
		}
		return user, fmt.Errorf("select user: %w", err)
	}

	if name.Valid {
		user.Profile.Name = &name.String
	}
	if age.Valid {
		a := int(age.Int64)
		user.Profile.Age = &a
	}
	if gender.Valid {
		user.Profile.Gender = &gender.String
	}
	if height.Valid {
		user.Profile.Height = &height.Float64
	}
	if weight.Valid {
		user.Profile.Weight = &weight.Float64
	}
	user.Profile.Diseases = []string{}
	if dis.Valid && dis.String != "" {
		if err := json.Unmarshal([]byte(dis.String), &user.Profile.Diseases); err != nil {
			return user, fmt.Errorf("decode diseases: %w", err)
		}
	}
	user.ProfileCompleted = completed == 1
	user.CreatedAt = parseTime(createdAt)
	user.UpdatedAt = parseTime(updatedAt)
	return user, nil
}

// SaveProfile writes the profile and marks it completed. A missing user row
// is created without a password. Nil fields keep their stored value.
func (s *Store) SaveProfile(ctx context.Context, email string, p models.Profile) error {
	var diseases sql.NullString
	if p.Diseases != nil {
		raw, err := json.Marshal(p.Diseases)
		if err != nil {
			return fmt.Errorf("encode diseases: %w", err)
		}
		diseases = sql.NullString{String: string(raw), Valid: true}
	}

	now := s.now().Format(timeLayout)
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users(email, name, age, gender, height, weight, diseases, profile_completed, created_at, updated_at)
		VALUES(?, ?, ?, ?, ?, ?, ?, 1, ?, ?)
		ON CONFLICT(email) DO UPDATE SET
			name = COALESCE(excluded.name, users.name),
			age = COALESCE(excluded.age, users.age),
			gender = COALESCE(excluded.gender, users.gender),
			height = COALESCE(excluded.height, users.height),
			weight = COALESCE(excluded.weight, users.weight),
			diseases = COALESCE(excluded.diseases, users.diseases),
			profile_completed = 1,
			updated_at = excluded.updated_at`,
		email, p.Name, p.Age, p.Gender, p.Height, p.Weight, diseases, now, now)
	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}
