package models

import "time"

// Food is a single rating submitted by a user.
type Food struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Rating    float64   `json:"rating"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateFoodRequest is the JSON body for POST /food. Owner fields sent by
// the client are not part of it; the owner always comes from the token.
type CreateFoodRequest struct {
	Name   string   `json:"name" validate:"required,min=2"`
	Rating *float64 `json:"rating" validate:"required"`
}

func (r CreateFoodRequest) Validate() error {
	return validateStruct(r)
}

// CreateFoodResponse is the body of a successful POST /food.
type CreateFoodResponse struct {
	FoodID string `json:"foodId"`
}
