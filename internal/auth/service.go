package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ayush/food-ratings/internal/models"
)

// UserStore defines the interface for identity persistence.
type UserStore interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUserByToken(ctx context.Context, token string) (*models.User, error)
	GetUserByName(ctx context.Context, name string) (*models.User, error)
}

// Service owns identity creation and lookup. It is the only place a
// plaintext password is hashed.
type Service struct {
	users  UserStore
	hasher Hasher
	tokens TokenIssuer

	// compared against when the name is unknown, so both login failures
	// cost one hash comparison
	dummyHash string
}

func NewService(users UserStore, hasher Hasher, tokens TokenIssuer) (*Service, error) {
	dummy, err := hasher.Hash("not-a-real-password")
	if err != nil {
		return nil, fmt.Errorf("dummy hash: %w", err)
	}
	return &Service{users: users, hasher: hasher, tokens: tokens, dummyHash: dummy}, nil
}

// CreateIdentity validates the credentials, hashes the password once,
// issues the access token and stores the new user in a single insert.
func (s *Service) CreateIdentity(ctx context.Context, name, password string) (*models.User, error) {
	req := models.RegisterRequest{Name: name, Password: password}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	token, err := s.tokens.Issue()
	if err != nil {
		return nil, err
	}

	u := &models.User{
		Name:         name,
		PasswordHash: hashed,
		AccessToken:  token,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.CreateUser(ctx, u); err != nil {
		if errors.Is(err, models.ErrDuplicate) && s.nameTaken(ctx, name) {
			return nil, fmt.Errorf("create user: %w", models.ErrNameTaken)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// nameTaken tells a name conflict apart from the other unique columns.
func (s *Service) nameTaken(ctx context.Context, name string) bool {
	_, err := s.users.GetUserByName(ctx, name)
	return err == nil
}

func (s *Service) FindByToken(ctx context.Context, token string) (*models.User, error) {
	return s.users.GetUserByToken(ctx, token)
}

func (s *Service) FindByName(ctx context.Context, name string) (*models.User, error) {
	return s.users.GetUserByName(ctx, name)
}

// Authenticate returns the user for a correct name/password pair.
// Any failed login, including a password longer than bcrypt reads,
// yields models.ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, name, password string) (*models.User, error) {
	if len(password) > models.MaxPasswordBytes {
		s.hasher.Verify(password[:models.MaxPasswordBytes], s.dummyHash)
		return nil, models.ErrInvalidCredentials
	}
	u, err := s.users.GetUserByName(ctx, name)
	if err != nil {
		if !errors.Is(err, models.ErrNotFound) {
			return nil, fmt.Errorf("find user: %w", err)
		}
		s.hasher.Verify(password, s.dummyHash)
		return nil, models.ErrInvalidCredentials
	}
	if !s.hasher.Verify(password, u.PasswordHash) {
		return nil, models.ErrInvalidCredentials
	}
	return u, nil
}
