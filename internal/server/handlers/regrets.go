package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/regretshq/regrets/internal/models"
	"github.com/regretshq/regrets/internal/server/policy"
	"github.com/regretshq/regrets/internal/server/storage"
	"github.com/regretshq/regrets/pkg/api"
)

// RegretHandler handles regret CRUD and listing requests
type RegretHandler struct {
	logger  *slog.Logger
	regrets storage.RegretStore
	policy  *policy.Engine
}

// NewRegretHandler creates a new handler for regret endpoints
func NewRegretHandler(logger *slog.Logger, regrets storage.RegretStore, engine *policy.Engine) *RegretHandler {
	return &RegretHandler{
		logger:  logger,
		regrets: regrets,
		policy:  engine,
	}
}

// Create handles POST /api/v1/regrets. Requires identity.
func (h *RegretHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := h.resolveCaller(w, r)
	if !ok {
		return
	}

	var req api.CreateRegretRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode create request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.Title == "" || req.Message == "" {
		sendError(h.logger, w, "title and message are required", http.StatusBadRequest)
		return
	}

	regret := &models.Regret{
		ID:        uuid.New().String(),
		OwnerID:   user.ID,
		Title:     req.Title,
		Message:   req.Message,
		Level:     req.Level,
		IsPublic:  req.IsPublic,
		CreatedAt: time.Now(),
	}

	if err := h.regrets.CreateRegret(ctx, regret); err != nil {
		h.logger.ErrorContext(ctx, "failed to create regret", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "regret created",
		slog.String("regret_id", regret.ID),
		slog.String("owner_id", user.ID))

	sendJSON(h.logger, w, toAPIRegret(regret), http.StatusCreated)
}

// ListPublic handles GET /api/v1/regrets. No identity required; only
// public records are returned, newest first.
func (h *RegretHandler) ListPublic(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	regrets, err := h.regrets.ListPublicRegrets(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list public regrets", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	if len(regrets) == 0 {
		sendError(h.logger, w, "no regrets found", http.StatusNotFound)
		return
	}

	sendJSON(h.logger, w, toListResponse(regrets), http.StatusOK)
}

// ListMine handles GET /api/v1/regrets/mine. Requires identity; returns
// the caller's own records, public and private, newest first.
func (h *RegretHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := h.resolveCaller(w, r)
	if !ok {
		return
	}

	regrets, err := h.regrets.ListRegretsByOwner(ctx, user.ID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list own regrets", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	if len(regrets) == 0 {
		sendError(h.logger, w, "no regrets found", http.StatusNotFound)
		return
	}

	sendJSON(h.logger, w, toListResponse(regrets), http.StatusOK)
}

// Get handles GET /api/v1/regrets/{id}. Identity is optional: the gate
// lets anonymous and garbage-token callers through, and the policy
// engine decides per record.
func (h *RegretHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	regret, ok := h.fetchRegret(w, r)
	if !ok {
		return
	}

	claims, _ := ClaimsFromContext(ctx)

	decision, err := h.policy.AuthorizeRead(ctx, regret, claims)
	if err != nil {
		h.logger.ErrorContext(ctx, "read authorization failed", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	if !h.applyDecision(w, decision) {
		return
	}

	sendJSON(h.logger, w, toAPIRegret(regret), http.StatusOK)
}

// Update handles PATCH /api/v1/regrets/{id}. Requires identity and
// ownership. Fields absent from the body (or present but empty, for
// strings) are left unchanged.
func (h *RegretHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	regret, ok := h.fetchRegret(w, r)
	if !ok {
		return
	}

	claims, _ := ClaimsFromContext(ctx)

	decision, err := h.policy.AuthorizeMutation(ctx, regret, claims)
	if err != nil {
		h.logger.ErrorContext(ctx, "mutation authorization failed", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	if !h.applyDecision(w, decision) {
		return
	}

	var req api.UpdateRegretRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode update request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	applyPartialUpdate(regret, &req)

	if err := h.regrets.UpdateRegret(ctx, regret); err != nil {
		if errors.Is(err, storage.ErrRegretNotFound) {
			sendError(h.logger, w, "regret not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to update regret", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "regret updated", slog.String("regret_id", regret.ID))

	sendJSON(h.logger, w, toAPIRegret(regret), http.StatusOK)
}

// Delete handles DELETE /api/v1/regrets/{id}. Requires identity and
// ownership.
func (h *RegretHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	regret, ok := h.fetchRegret(w, r)
	if !ok {
		return
	}

	claims, _ := ClaimsFromContext(ctx)

	decision, err := h.policy.AuthorizeMutation(ctx, regret, claims)
	if err != nil {
		h.logger.ErrorContext(ctx, "mutation authorization failed", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	if !h.applyDecision(w, decision) {
		return
	}

	if err := h.regrets.DeleteRegret(ctx, regret.ID); err != nil {
		if errors.Is(err, storage.ErrRegretNotFound) {
			sendError(h.logger, w, "regret not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to delete regret", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "regret deleted", slog.String("regret_id", regret.ID))

	w.WriteHeader(http.StatusNoContent)
}

// resolveCaller maps the request's claims to a stored user and writes the
// failure response itself. Claims are guaranteed by the required gate,
// but the account may have vanished since the token was issued.
func (h *RegretHandler) resolveCaller(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	ctx := r.Context()

	claims, ok := ClaimsFromContext(ctx)
	if !ok {
		h.logger.ErrorContext(ctx, "claims not found in context")
		sendError(h.logger, w, "authentication required", http.StatusUnauthorized)
		return nil, false
	}

	user, err := h.policy.ResolveUser(ctx, claims)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			h.logger.WarnContext(ctx, "claimed identity no longer exists")
			sendError(h.logger, w, "authentication required", http.StatusUnauthorized)
			return nil, false
		}
		h.logger.ErrorContext(ctx, "failed to resolve user", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return nil, false
	}

	return user, true
}

// fetchRegret loads the record addressed by the {id} path segment and
// writes the failure response itself. A malformed id reads the same as
// an absent one.
func (h *RegretHandler) fetchRegret(w http.ResponseWriter, r *http.Request) (*models.Regret, bool) {
	ctx := r.Context()
	id := r.PathValue("id")

	regret, err := h.regrets.GetRegretByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrRegretNotFound) || errors.Is(err, storage.ErrInvalidRegretID) {
			sendError(h.logger, w, "regret not found", http.StatusNotFound)
			return nil, false
		}
		h.logger.ErrorContext(ctx, "failed to get regret", slog.Any("error", err), slog.String("regret_id", id))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return nil, false
	}

	return regret, true
}

// applyDecision writes the response for a deny decision and reports
// whether the caller may proceed.
func (h *RegretHandler) applyDecision(w http.ResponseWriter, decision policy.Decision) bool {
	switch decision {
	case policy.Allow:
		return true
	case policy.DenyUnauthenticated:
		sendError(h.logger, w, "authentication required", http.StatusUnauthorized)
	case policy.DenyForbidden:
		sendError(h.logger, w, "you do not own this regret", http.StatusForbidden)
	}
	return false
}

// applyPartialUpdate copies present, non-empty fields from req onto
// regret. Booleans apply whenever present; there is no way to clear a
// string field to empty.
func applyPartialUpdate(regret *models.Regret, req *api.UpdateRegretRequest) {
	if req.Title != nil && *req.Title != "" {
		regret.Title = *req.Title
	}
	if req.Message != nil && *req.Message != "" {
		regret.Message = *req.Message
	}
	if req.Level != nil && *req.Level != "" {
		regret.Level = *req.Level
	}
	if req.IsPublic != nil {
		regret.IsPublic = *req.IsPublic
	}
}

func toAPIRegret(regret *models.Regret) api.Regret {
	return api.Regret{
		ID:        regret.ID,
		OwnerID:   regret.OwnerID,
		Title:     regret.Title,
		Message:   regret.Message,
		Level:     regret.Level,
		IsPublic:  regret.IsPublic,
		CreatedAt: regret.CreatedAt,
	}
}

func toListResponse(regrets []*models.Regret) api.RegretListResponse {
	items := make([]api.Regret, 0, len(regrets))
	for _, regret := range regrets {
		items = append(items, toAPIRegret(regret))
	}
	return api.RegretListResponse{
		Count:   len(items),
		Regrets: items,
	}
}
