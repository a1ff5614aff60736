package handlers

import (
	"context"
	"log/slog"
	"os"
	"sort"

	"github.com/regretshq/regrets/internal/models"
	"github.com/regretshq/regrets/internal/server/storage"

	"github.com/google/uuid"
)

// setupTestLogger creates a logger for testing
func setupTestLogger() *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: slog.LevelError,
	}
	handler := slog.NewTextHandler(os.Stdout, opts)
	return slog.New(handler)
}

// mockUserStore is a mock implementation of storage.UserStore for testing
type mockUserStore struct {
	users       map[string]*models.User // email -> User
	createError error
	getError    error
}

func newMockUserStore() *mockUserStore {
	return &mockUserStore{users: make(map[string]*models.User)}
}

func (m *mockUserStore) CreateUser(ctx context.Context, user *models.User) error {
	if m.createError != nil {
		return m.createError
	}
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

// mockRegretStore is a mock implementation of storage.RegretStore for testing
type mockRegretStore struct {
	regrets     map[string]*models.Regret // id -> Regret
	createError error
	getError    error
	updateError error
	deleteError error
	listError   error
}

func newMockRegretStore() *mockRegretStore {
	return &mockRegretStore{regrets: make(map[string]*models.Regret)}
}

func (m *mockRegretStore) CreateRegret(ctx context.Context, regret *models.Regret) error {
	if m.createError != nil {
		return m.createError
	}
	m.regrets[regret.ID] = regret
	return nil
}

func (m *mockRegretStore) GetRegretByID(ctx context.Context, id string) (*models.Regret, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, storage.ErrInvalidRegretID
	}
	regret, ok := m.regrets[id]
	if !ok {
		return nil, storage.ErrRegretNotFound
	}
	copied := *regret
	return &copied, nil
}

func (m *mockRegretStore) UpdateRegret(ctx context.Context, regret *models.Regret) error {
	if m.updateError != nil {
		return m.updateError
	}
	if _, ok := m.regrets[regret.ID]; !ok {
		return storage.ErrRegretNotFound
	}
	copied := *regret
	m.regrets[regret.ID] = &copied
	return nil
}

func (m *mockRegretStore) DeleteRegret(ctx context.Context, id string) error {
	if m.deleteError != nil {
		return m.deleteError
	}
	if _, err := uuid.Parse(id); err != nil {
		return storage.ErrInvalidRegretID
	}
	if _, ok := m.regrets[id]; !ok {
		return storage.ErrRegretNotFound
	}
	delete(m.regrets, id)
	return nil
}

func (m *mockRegretStore) ListPublicRegrets(ctx context.Context) ([]*models.Regret, error) {
	if m.listError != nil {
		return nil, m.listError
	}
	result := make([]*models.Regret, 0)
	for _, regret := range m.regrets {
		if regret.IsPublic {
			result = append(result, regret)
		}
	}
	sortNewestFirst(result)
	return result, nil
}

func (m *mockRegretStore) ListRegretsByOwner(ctx context.Context, ownerID string) ([]*models.Regret, error) {
	if m.listError != nil {
		return nil, m.listError
	}
	result := make([]*models.Regret, 0)
	for _, regret := range m.regrets {
		if regret.OwnerID == ownerID {
			result = append(result, regret)
		}
	}
	sortNewestFirst(result)
	return result, nil
}

func sortNewestFirst(regrets []*models.Regret) {
	sort.Slice(regrets, func(i, j int) bool {
		return regrets[i].CreatedAt.After(regrets[j].CreatedAt)
	})
}
