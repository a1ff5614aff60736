package storage

import (
	"context"

	"github.com/regretshq/regrets/internal/models"
)

// RegretStore defines interface for regret record persistence
type RegretStore interface {
	// CreateRegret creates a new regret in the storage
	CreateRegret(ctx context.Context, regret *models.Regret) error

	// GetRegretByID retrieves a regret by ID.
	// Returns ErrInvalidRegretID when id is not a well-formed identifier,
	// ErrRegretNotFound when it is well-formed but absent.
	GetRegretByID(ctx context.Context, id string) (*models.Regret, error)

	// UpdateRegret overwrites the mutable fields of an existing regret.
	// Returns ErrRegretNotFound if the regret doesn't exist.
	UpdateRegret(ctx context.Context, regret *models.Regret) error

	// DeleteRegret deletes a regret by ID.
	// Returns ErrInvalidRegretID / ErrRegretNotFound like GetRegretByID.
	DeleteRegret(ctx context.Context, id string) error

	// ListPublicRegrets retrieves all public regrets ordered by creation
	// time descending. Returns empty slice if none found.
	ListPublicRegrets(ctx context.Context) ([]*models.Regret, error)

	// ListRegretsByOwner retrieves all regrets of one owner ordered by
	// creation time descending. Returns empty slice if none found.
	ListRegretsByOwner(ctx context.Context, ownerID string) ([]*models.Regret, error)
}
