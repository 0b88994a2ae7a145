package auth

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ayush/food-ratings/internal/models"
)

// memUserStore is an in-memory UserStore with the same uniqueness rules
// as the real stores.
type memUserStore struct {
	mu     sync.Mutex
	byID   map[string]*models.User
	nextID int

	// createErr, when set, is returned by CreateUser.
	createErr error
	// lookupErr, when set, is returned by both lookups.
	lookupErr error
	// created records every user handed to CreateUser.
	created []models.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{byID: map[string]*models.User{}}
}

func (m *memUserStore) CreateUser(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.created = append(m.created, *u)
	if m.createErr != nil {
		return m.createErr
	}
	for _, existing := range m.byID {
		if existing.Name == u.Name || existing.AccessToken == u.AccessToken {
			return models.ErrDuplicate
		}
	}
	m.nextID++
	u.ID = "user-" + strconv.Itoa(m.nextID)
	cp := *u
	m.byID[u.ID] = &cp
	return nil
}

func (m *memUserStore) GetUserByToken(_ context.Context, token string) (*models.User, error) {
	return m.find(func(u *models.User) bool { return u.AccessToken == token })
}

func (m *memUserStore) GetUserByName(_ context.Context, name string) (*models.User, error) {
	return m.find(func(u *models.User) bool { return u.Name == name })
}

func (m *memUserStore) find(match func(*models.User) bool) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.lookupErr != nil {
		return nil, m.lookupErr
	}
	for _, u := range m.byID {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, models.ErrNotFound
}

// fixedTokens hands out the given tokens in order.
type fixedTokens struct {
	tokens []string
	err    error
}

func (f *fixedTokens) Issue() (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if len(f.tokens) == 0 {
		return "", errors.New("no tokens left")
	}
	t := f.tokens[0]
	f.tokens = f.tokens[1:]
	return t, nil
}

func newTestService(t *testing.T, store UserStore) *Service {
	t.Helper()
	return newServiceWith(t, store, RandomTokenIssuer{})
}

func newServiceWith(t *testing.T, store UserStore, tokens TokenIssuer) *Service {
	t.Helper()
	svc, err := NewService(store, NewBcryptHasher(bcrypt.MinCost), tokens)
	require.NoError(t, err)
	return svc
}
