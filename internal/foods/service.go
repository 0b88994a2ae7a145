package foods

import (
	"context"
	"fmt"
	"time"

	"github.com/ayush/food-ratings/internal/models"
)

// FoodStore defines the interface for rating persistence.
type FoodStore interface {
	InsertFood(ctx context.Context, f *models.Food) error
	ListFoodsByUser(ctx context.Context, userID string) ([]models.Food, error)
}

// Service creates and lists ratings. The owner is always passed in by
// the caller from the authenticated identity.
type Service struct {
	store FoodStore
}

func NewService(store FoodStore) *Service {
	return &Service{store: store}
}

// CreateRating stores a rating owned by ownerID. A name may be used once
// per owner.
func (s *Service) CreateRating(ctx context.Context, ownerID, name string, rating float64) (*models.Food, error) {
	if err := models.ValidateName(name); err != nil {
		return nil, err
	}

	f := &models.Food{
		Name:      name,
		Rating:    rating,
		UserID:    ownerID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.InsertFood(ctx, f); err != nil {
		return nil, fmt.Errorf("insert food: %w", err)
	}
	return f, nil
}

// ListRatingsForCaller returns ownerID's ratings in insertion order.
func (s *Service) ListRatingsForCaller(ctx context.Context, ownerID string) ([]models.Food, error) {
	foods, err := s.store.ListFoodsByUser(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list foods: %w", err)
	}
	if foods == nil {
		foods = []models.Food{}
	}
	return foods, nil
}
