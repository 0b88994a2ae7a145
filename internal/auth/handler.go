package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/ayush/food-ratings/internal/httpx"
	"github.com/ayush/food-ratings/internal/models"
)

// UnauthorizedMessage is the single message for every rejected token.
const UnauthorizedMessage = "Please try logging in again"

// Handler holds auth-related HTTP handlers.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Register creates a new user and returns its access token.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.svc.CreateIdentity(r.Context(), req.Name, req.Password)
	if err != nil {
		var ve *models.ValidationError
		switch {
		case errors.As(err, &ve):
			httpx.WriteError(w, http.StatusBadRequest, fmt.Sprintf("Could not create user: %s", ve.Error()))
		case errors.Is(err, models.ErrNameTaken):
			httpx.WriteError(w, http.StatusBadRequest, "Could not create user: name already exists")
		case errors.Is(err, models.ErrDuplicate):
			slog.Warn("create user conflict", "error", err, "name", req.Name)
			httpx.WriteError(w, http.StatusBadRequest, "Could not create user")
		default:
			slog.Error("create user", "error", err, "name", req.Name)
			httpx.WriteError(w, http.StatusBadRequest, "Could not create user")
		}
		return
	}

	slog.Info("user created", "user_id", user.ID, "name", user.Name)
	httpx.WriteJSON(w, http.StatusOK, models.AuthResponse{UserID: user.ID, AccessToken: user.AccessToken})
}

// Login checks a name/password pair and returns the user's access token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.svc.Authenticate(r.Context(), req.Name, req.Password)
	if err != nil {
		if !errors.Is(err, models.ErrInvalidCredentials) {
			slog.Error("login lookup", "error", err)
		}
		httpx.WriteError(w, http.StatusNotFound, "User not found")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, models.AuthResponse{UserID: user.ID, AccessToken: user.AccessToken})
}

// Secret returns a message only an authenticated user may read.
func (h *Handler) Secret(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, UnauthorizedMessage)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, models.SecretResponse{
		SecretMessage: fmt.Sprintf("This is a secret message for %s", user.Name),
	})
}

// Profile returns the currently authenticated user.
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, UnauthorizedMessage)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, models.ProfileResponse{Name: user.Name})
}
