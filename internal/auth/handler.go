package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/mwalczyk/taskboard/internal/apperr"
	"github.com/mwalczyk/taskboard/internal/models"
	"github.com/mwalczyk/taskboard/internal/store"
)

// UserStore defines the interface for user persistence.
type UserStore interface {
	Create(ctx context.Context, username, passwordHash string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// Handler holds auth-related HTTP handlers.
type Handler struct {
	users  UserStore
	tokens *TokenManager
	dev    bool
}

func NewHandler(users UserStore, tokens *TokenManager, dev bool) *Handler {
	return &Handler{users: users, tokens: tokens, dev: dev}
}

// Register creates a new user from {username, password}.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperr.Write(w, apperr.Validation("Invalid request body"), h.dev)
		return
	}
	if req.Username == "" || req.Password == "" {
		apperr.Write(w, apperr.Validation("Username and password are required"), h.dev)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		apperr.Write(w, apperr.Internal("Server error", err), h.dev)
		return
	}

	user, err := h.users.Create(r.Context(), req.Username, string(hash))
	if err != nil {
		if errors.Is(err, store.ErrUsernameTaken) {
			apperr.Write(w, apperr.Validation("Username already exists"), h.dev)
			return
		}
		apperr.Write(w, apperr.Internal("Server error", err), h.dev)
		return
	}

	apperr.WriteJSON(w, http.StatusCreated, models.AuthUser{
		ID:       user.ID.Hex(),
		Username: user.Username,
	})
}

// Login verifies credentials and issues a bearer token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperr.Write(w, apperr.Validation("Invalid request body"), h.dev)
		return
	}
	if req.Username == "" || req.Password == "" {
		apperr.Write(w, apperr.Validation("Username and password are required"), h.dev)
		return
	}

	user, err := h.users.GetByUsername(r.Context(), req.Username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			apperr.Write(w, apperr.Validation("Invalid credentials"), h.dev)
			return
		}
		apperr.Write(w, apperr.Internal("Server error", err), h.dev)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		apperr.Write(w, apperr.Validation("Invalid credentials"), h.dev)
		return
	}

	token, err := h.tokens.Issue(user.ID.Hex(), user.Username)
	if err != nil {
		apperr.Write(w, apperr.Internal("Server error", err), h.dev)
		return
	}

	apperr.WriteJSON(w, http.StatusOK, models.LoginResponse{
		Token: token,
		User:  models.AuthUser{ID: user.ID.Hex(), Username: user.Username},
	})
}
