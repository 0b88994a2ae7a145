package foods

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/ayush/food-ratings/internal/auth"
	"github.com/ayush/food-ratings/internal/httpx"
	"github.com/ayush/food-ratings/internal/models"
)

// Handler holds food rating HTTP handlers. Both routes sit behind
// middleware.RequireAuth.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Create stores a rating for the current user.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, auth.UnauthorizedMessage)
		return
	}

	var req models.CreateFoodRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, fmt.Sprintf("Could not create food: %s", err.Error()))
		return
	}

	food, err := h.svc.CreateRating(r.Context(), user.ID, req.Name, *req.Rating)
	if err != nil {
		var ve *models.ValidationError
		switch {
		case errors.As(err, &ve):
			httpx.WriteError(w, http.StatusBadRequest, fmt.Sprintf("Could not create food: %s", ve.Error()))
		case errors.Is(err, models.ErrDuplicate):
			httpx.WriteError(w, http.StatusBadRequest, "Could not create food: you already rated this food")
		default:
			slog.Error("create food", "error", err, "user_id", user.ID)
			httpx.WriteError(w, http.StatusBadRequest, "Could not create food")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, models.CreateFoodResponse{FoodID: food.ID})
}

// List returns all ratings of the current user, oldest first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, auth.UnauthorizedMessage)
		return
	}

	foods, err := h.svc.ListRatingsForCaller(r.Context(), user.ID)
	if err != nil {
		slog.Error("list foods", "error", err, "user_id", user.ID)
		httpx.WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, foods)
}
