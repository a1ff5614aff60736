package policy

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/regretshq/regrets/internal/models"
	"github.com/regretshq/regrets/internal/server/storage"
	"github.com/regretshq/regrets/internal/server/token"
)

// mockUserStore is a mock implementation of storage.UserStore for testing
type mockUserStore struct {
	users    map[string]*models.User // email -> User
	getError error
}

func (m *mockUserStore) CreateUser(ctx context.Context, user *models.User) error {
	if _, exists := m.users[user.Email]; exists {
		return storage.ErrUserAlreadyExists
	}
	m.users[user.Email] = user
	return nil
}

func (m *mockUserStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	user, ok := m.users[email]
	if !ok {
		return nil, storage.ErrUserNotFound
	}
	return user, nil
}

func ownerClaims() *token.Claims {
	return &token.Claims{Email: "owner@example.com", Username: "owner"}
}

func strangerClaims() *token.Claims {
	return &token.Claims{Email: "stranger@example.com", Username: "stranger"}
}

func setupEngine() (*Engine, *models.Regret, *models.Regret) {
	users := &mockUserStore{users: map[string]*models.User{
		"owner@example.com":    {ID: "user-owner", Username: "owner", Email: "owner@example.com"},
		"stranger@example.com": {ID: "user-stranger", Username: "stranger", Email: "stranger@example.com"},
	}}

	public := &models.Regret{ID: "r-public", OwnerID: "user-owner", IsPublic: true}
	private := &models.Regret{ID: "r-private", OwnerID: "user-owner", IsPublic: false}

	return NewEngine(users), public, private
}

// TestEngine_AuthorizeRead_TruthTable covers all six combinations of
// visibility x caller identity.
func TestEngine_AuthorizeRead_TruthTable(t *testing.T) {
	engine, public, private := setupEngine()
	ctx := context.Background()

	tests := []struct {
		name   string
		regret *models.Regret
		claims *token.Claims
		want   Decision
	}{
		{"public anonymous", public, nil, Allow},
		{"public owner", public, ownerClaims(), Allow},
		{"public non-owner", public, strangerClaims(), Allow},
		{"private anonymous", private, nil, DenyUnauthenticated},
		{"private owner", private, ownerClaims(), Allow},
		{"private non-owner", private, strangerClaims(), DenyForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := engine.AuthorizeRead(ctx, tt.regret, tt.claims)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEngine_AuthorizeRead_VanishedUser(t *testing.T) {
	engine, _, private := setupEngine()
	ctx := context.Background()

	// Valid claim whose account no longer exists: unauthenticated, not 404
	ghost := &token.Claims{Email: "ghost@example.com", Username: "ghost"}

	decision, err := engine.AuthorizeRead(ctx, private, ghost)
	require.NoError(t, err)
	assert.Equal(t, DenyUnauthenticated, decision)
}

func TestEngine_AuthorizeRead_PublicSkipsLookup(t *testing.T) {
	users := &mockUserStore{getError: errors.New("store is down")}
	engine := NewEngine(users)
	ctx := context.Background()

	public := &models.Regret{ID: "r1", OwnerID: "u1", IsPublic: true}

	// Public reads must not touch the user store at all
	decision, err := engine.AuthorizeRead(ctx, public, ownerClaims())
	require.NoError(t, err)
	assert.Equal(t, Allow, decision)
}

func TestEngine_AuthorizeRead_StorageFailure(t *testing.T) {
	users := &mockUserStore{getError: errors.New("store is down")}
	engine := NewEngine(users)
	ctx := context.Background()

	private := &models.Regret{ID: "r1", OwnerID: "u1", IsPublic: false}

	_, err := engine.AuthorizeRead(ctx, private, ownerClaims())
	assert.Error(t, err)
}

func TestEngine_AuthorizeMutation(t *testing.T) {
	engine, public, private := setupEngine()
	ctx := context.Background()

	tests := []struct {
		name   string
		regret *models.Regret
		claims *token.Claims
		want   Decision
	}{
		{"owner may mutate private", private, ownerClaims(), Allow},
		{"owner may mutate public", public, ownerClaims(), Allow},
		{"non-owner forbidden even when public", public, strangerClaims(), DenyForbidden},
		{"non-owner forbidden when private", private, strangerClaims(), DenyForbidden},
		{"missing claims unauthenticated", private, nil, DenyUnauthenticated},
		{"vanished user unauthenticated", private, &token.Claims{Email: "ghost@example.com"}, DenyUnauthenticated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := engine.AuthorizeMutation(ctx, tt.regret, tt.claims)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEngine_ResolveUser(t *testing.T) {
	engine, _, _ := setupEngine()
	ctx := context.Background()

	user, err := engine.ResolveUser(ctx, ownerClaims())
	require.NoError(t, err)
	assert.Equal(t, "user-owner", user.ID)

	_, err = engine.ResolveUser(ctx, &token.Claims{Email: "ghost@example.com"})
	assert.ErrorIs(t, err, storage.ErrUserNotFound)
}
