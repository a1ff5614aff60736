// Package policy decides whether a caller may read or mutate a regret.
//
// A decision combines three independent facts: the record's visibility,
// whether a verified identity is present, and whether that identity owns
// the record. Every path terminates in exactly one outcome.
package policy

import (
	"context"
	"errors"
	"fmt"

	"github.com/regretshq/regrets/internal/models"
	"github.com/regretshq/regrets/internal/server/storage"
	"github.com/regretshq/regrets/internal/server/token"
)

// Decision is the outcome of an authorization check
type Decision int

const (
	// Allow grants the operation
	Allow Decision = iota
	// DenyUnauthenticated rejects because no usable identity was presented
	DenyUnauthenticated
	// DenyForbidden rejects because the identity is not the owner
	DenyForbidden
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case DenyUnauthenticated:
		return "unauthenticated"
	case DenyForbidden:
		return "forbidden"
	default:
		return "unknown"
	}
}

// Engine decides access to regret records. It re-fetches the user behind
// a claim on every check: a token outlives the account it was issued for,
// and a vanished account must read as unauthenticated.
type Engine struct {
	users storage.UserStore
}

// NewEngine creates a policy engine backed by the given user store
func NewEngine(users storage.UserStore) *Engine {
	return &Engine{users: users}
}

// ResolveUser maps a verified claim to the stored user record.
// Returns storage.ErrUserNotFound when the claimed identity no longer
// exists.
func (e *Engine) ResolveUser(ctx context.Context, claims *token.Claims) (*models.User, error) {
	user, err := e.users.GetUserByEmail(ctx, claims.Email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, storage.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}
	return user, nil
}

// AuthorizeRead decides a read of regret for an optional caller identity.
// claims may be nil (anonymous caller).
//
// Public records are readable by anyone, identity is never looked up.
// Private records require an identity that resolves to the owner; a claim
// whose user no longer exists in storage counts as unauthenticated, not
// as a missing resource.
func (e *Engine) AuthorizeRead(ctx context.Context, regret *models.Regret, claims *token.Claims) (Decision, error) {
	if regret.IsPublic {
		return Allow, nil
	}

	if claims == nil {
		return DenyUnauthenticated, nil
	}

	user, err := e.ResolveUser(ctx, claims)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return DenyUnauthenticated, nil
		}
		return DenyForbidden, err
	}

	if user.ID == regret.OwnerID {
		return Allow, nil
	}

	return DenyForbidden, nil
}

// AuthorizeMutation decides an update or delete of regret. Identity is
// mandatory here: callers reach this only through the required auth gate,
// so claims must be non-nil and visibility plays no part.
func (e *Engine) AuthorizeMutation(ctx context.Context, regret *models.Regret, claims *token.Claims) (Decision, error) {
	if claims == nil {
		return DenyUnauthenticated, nil
	}

	user, err := e.ResolveUser(ctx, claims)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return DenyUnauthenticated, nil
		}
		return DenyForbidden, err
	}

	if user.ID != regret.OwnerID {
		return DenyForbidden, nil
	}

	return Allow, nil
}
