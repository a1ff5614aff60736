package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/regretshq/regrets/internal/models"
	"github.com/regretshq/regrets/internal/server/password"
	"github.com/regretshq/regrets/internal/server/storage"
	"github.com/regretshq/regrets/internal/server/token"
	"github.com/regretshq/regrets/internal/validation"
	"github.com/regretshq/regrets/pkg/api"
)

// AuthHandler handles registration and login requests
type AuthHandler struct {
	logger *slog.Logger
	users  storage.UserStore
	hasher *password.Hasher
	codec  *token.Codec
}

// NewAuthHandler creates a new handler for authentication endpoints
func NewAuthHandler(logger *slog.Logger, users storage.UserStore, hasher *password.Hasher, codec *token.Codec) *AuthHandler {
	return &AuthHandler{
		logger: logger,
		users:  users,
		hasher: hasher,
		codec:  codec,
	}
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode register request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := validation.ValidateUsername(req.Username); err != nil {
		h.logger.WarnContext(ctx, "invalid username", slog.String("username", req.Username), slog.Any("error", err))
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := validation.ValidateEmail(req.Email); err != nil {
		h.logger.WarnContext(ctx, "invalid email", slog.Any("error", err))
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := validation.ValidatePassword(req.Password); err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}

	digest, err := h.hasher.Hash(req.Password)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to hash password", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: digest,
		CreatedAt:    time.Now(),
	}

	if err := h.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrUserAlreadyExists) {
			h.logger.WarnContext(ctx, "email already registered", slog.String("email", req.Email))
			sendError(h.logger, w, "email already registered", http.StatusConflict)
			return
		}
		h.logger.ErrorContext(ctx, "failed to create user", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	tokenString, err := h.codec.Sign(user.Email, user.Username)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to sign token", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "user registered successfully",
		slog.String("username", req.Username),
		slog.String("user_id", user.ID))

	resp := api.AuthResponse{
		Token:    tokenString,
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
	}

	sendJSON(h.logger, w, resp, http.StatusCreated)
}

// Login handles POST /api/v1/auth/login
//
// Unknown email and wrong password both map to the same response so the
// caller cannot tell which check failed.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode login request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.Email == "" || req.Password == "" {
		sendError(h.logger, w, "email and password are required", http.StatusBadRequest)
		return
	}

	user, err := h.users.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			h.logger.WarnContext(ctx, "login failed: unknown email")
			sendError(h.logger, w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	if !h.hasher.Verify(req.Password, user.PasswordHash) {
		h.logger.WarnContext(ctx, "login failed: password mismatch", slog.String("user_id", user.ID))
		sendError(h.logger, w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	tokenString, err := h.codec.Sign(user.Email, user.Username)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to sign token", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "user logged in successfully", slog.String("user_id", user.ID))

	resp := api.AuthResponse{
		Token:    tokenString,
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
	}

	sendJSON(h.logger, w, resp, http.StatusOK)
}
