package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/memoro-app/memoro-api/internal/api/shared"
	"github.com/memoro-app/memoro-api/internal/domain"
	"github.com/memoro-app/memoro-api/internal/domain/srs"
	"github.com/memoro-app/memoro-api/internal/platform/logger"
	"github.com/memoro-app/memoro-api/internal/redact"
	"github.com/memoro-app/memoro-api/internal/store"
)

// CreateItemRequest represents the request body for creating a flashcard item.
type CreateItemRequest struct {
	Prompt          string   `json:"prompt" validate:"required"`
	PrimaryAnswer   string   `json:"primary_answer" validate:"required"`
	AcceptedAnswers []string `json:"accepted_answers,omitempty"`
	Tags            []string `json:"tags,omitempty"`
}

// PostponeItemRequest represents the request body for postponing an item's review.
type PostponeItemRequest struct {
	Days int `json:"days" validate:"required,gte=1"`
}

// ItemListResponse wraps a list of items.
type ItemListResponse struct {
	Items []*domain.Item `json:"items"`
	Count int            `json:"count"`
}

// ItemHandler handles item-related HTTP requests
type ItemHandler struct {
	itemStore store.ItemStore
	scheduler srs.Service
	logger    *slog.Logger
}

// NewItemHandler creates a new ItemHandler
func NewItemHandler(itemStore store.ItemStore, scheduler srs.Service, logger *slog.Logger) *ItemHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ItemHandler")
	}

	return &ItemHandler{
		itemStore: itemStore,
		scheduler: scheduler,
		logger:    logger.With(slog.String("component", "item_handler")),
	}
}

// CreateItem handles POST /items requests.
func (h *ItemHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateItemRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	item, err := domain.NewItem(req.Prompt, req.PrimaryAnswer, req.AcceptedAnswers, req.Tags)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	if err := h.itemStore.Create(r.Context(), item); err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to create item"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("item created", slog.String("item_id", item.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, item)
}

// GetItem handles GET /items/{id} requests.
func (h *ItemHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := parseIDParam(w, r, log)
	if !ok {
		return
	}

	item, err := h.itemStore.GetByID(r.Context(), id)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to get item"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, item)
}

// ListItems handles GET /items requests.
// With ?due=true only items due for review are returned, most overdue first.
func (h *ItemHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	var (
		items []*domain.Item
		err   error
	)

	if r.URL.Query().Get("due") == "true" {
		items, err = h.itemStore.ListDue(r.Context(), time.Now().UTC())
	} else {
		items, err = h.itemStore.List(r.Context())
	}
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to list items", err)
		return
	}

	if items == nil {
		items = []*domain.Item{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, ItemListResponse{Items: items, Count: len(items)})
}

// DeleteItem handles DELETE /items/{id} requests.
func (h *ItemHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := parseIDParam(w, r, log)
	if !ok {
		return
	}

	if err := h.itemStore.Delete(r.Context(), id); err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to delete item"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("item deleted", slog.String("item_id", id.String()))
	w.WriteHeader(http.StatusNoContent)
}

// PostponeItem handles POST /items/{id}/postpone requests.
// It shifts the item's next review time forward without recording a review.
func (h *ItemHandler) PostponeItem(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := parseIDParam(w, r, log)
	if !ok {
		return
	}

	var req PostponeItemRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	item, err := h.itemStore.GetByID(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	updated, err := h.scheduler.PostponeReview(item, req.Days, time.Now().UTC())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	if err := h.itemStore.Update(r.Context(), updated); err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to postpone item"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("item postponed",
		slog.String("item_id", id.String()),
		slog.Int("days", req.Days))
	shared.RespondWithJSON(w, r, http.StatusOK, updated)
}

// parseIDParam extracts and parses the {id} URL parameter.
// On failure it writes the error response and returns ok=false.
func parseIDParam(w http.ResponseWriter, r *http.Request, log *slog.Logger) (uuid.UUID, bool) {
	raw := chi.URLParam(r, "id")
	if raw == "" {
		log.Warn("ID not found in URL path")
		shared.RespondWithError(w, r, http.StatusBadRequest, "ID is required")
		return uuid.Nil, false
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		log.Warn("invalid ID format", slog.String("id", raw))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid ID format")
		return uuid.Nil, false
	}

	return id, true
}
