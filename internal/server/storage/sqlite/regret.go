package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/regretshq/regrets/internal/models"
	"github.com/regretshq/regrets/internal/server/storage"
)

// CreateRegret creates a new regret in the storage
func (s *Storage) CreateRegret(ctx context.Context, regret *models.Regret) error {
	query := `
		INSERT INTO regrets (id, owner_id, title, message, level, is_public, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		regret.ID,
		regret.OwnerID,
		regret.Title,
		regret.Message,
		regret.Level,
		regret.IsPublic,
		regret.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to insert regret: %w", err)
	}

	return nil
}

// GetRegretByID retrieves a regret by ID
func (s *Storage) GetRegretByID(ctx context.Context, id string) (*models.Regret, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, storage.ErrInvalidRegretID
	}

	query := `
		SELECT id, owner_id, title, message, level, is_public, created_at
		FROM regrets
		WHERE id = ?
	`

	regret := &models.Regret{}

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&regret.ID,
		&regret.OwnerID,
		&regret.Title,
		&regret.Message,
		&regret.Level,
		&regret.IsPublic,
		&regret.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrRegretNotFound
		}
		return nil, fmt.Errorf("failed to get regret: %w", err)
	}

	return regret, nil
}

// UpdateRegret overwrites the mutable fields of an existing regret
func (s *Storage) UpdateRegret(ctx context.Context, regret *models.Regret) error {
	query := `
		UPDATE regrets
		SET title = ?, message = ?, level = ?, is_public = ?
		WHERE id = ?
	`

	result, err := s.db.ExecContext(ctx, query,
		regret.Title,
		regret.Message,
		regret.Level,
		regret.IsPublic,
		regret.ID,
	)

	if err != nil {
		return fmt.Errorf("failed to update regret: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrRegretNotFound
	}

	return nil
}

// DeleteRegret deletes a regret by ID
func (s *Storage) DeleteRegret(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return storage.ErrInvalidRegretID
	}

	query := `DELETE FROM regrets WHERE id = ?`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete regret: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrRegretNotFound
	}

	return nil
}

// ListPublicRegrets retrieves all public regrets, newest first
func (s *Storage) ListPublicRegrets(ctx context.Context) ([]*models.Regret, error) {
	query := `
		SELECT id, owner_id, title, message, level, is_public, created_at
		FROM regrets
		WHERE is_public = 1
		ORDER BY created_at DESC
	`

	return s.queryRegrets(ctx, query)
}

// ListRegretsByOwner retrieves all regrets of one owner, newest first
func (s *Storage) ListRegretsByOwner(ctx context.Context, ownerID string) ([]*models.Regret, error) {
	query := `
		SELECT id, owner_id, title, message, level, is_public, created_at
		FROM regrets
		WHERE owner_id = ?
		ORDER BY created_at DESC
	`

	return s.queryRegrets(ctx, query, ownerID)
}

func (s *Storage) queryRegrets(ctx context.Context, query string, args ...any) ([]*models.Regret, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query regrets: %w", err)
	}
	defer rows.Close()

	regrets := make([]*models.Regret, 0)

	for rows.Next() {
		regret := &models.Regret{}
		err := rows.Scan(
			&regret.ID,
			&regret.OwnerID,
			&regret.Title,
			&regret.Message,
			&regret.Level,
			&regret.IsPublic,
			&regret.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan regret: %w", err)
		}
		regrets = append(regrets, regret)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate regrets: %w", err)
	}

	return regrets, nil
}
