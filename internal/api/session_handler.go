package api

import (
	"log/slog"
	"net/http"

	"github.com/memoro-app/memoro-api/internal/api/shared"
	"github.com/memoro-app/memoro-api/internal/platform/logger"
	"github.com/memoro-app/memoro-api/internal/redact"
	"github.com/memoro-app/memoro-api/internal/service/quiz"
)

// StartSessionRequest represents the request body for starting a quiz session.
type StartSessionRequest struct {
	Mode          string `json:"mode" validate:"required,oneof=spaced difficulty_first random sequential"`
	Limit         int    `json:"limit" validate:"gte=0"`
	FuzzyMatching *bool  `json:"fuzzy_matching,omitempty"`
}

// SubmitAnswerRequest represents the request body for answering the current question.
type SubmitAnswerRequest struct {
	Response   string `json:"response"`
	Quality    *int   `json:"quality,omitempty" validate:"omitempty,gte=0,lte=5"`
	Confidence *int   `json:"confidence,omitempty" validate:"omitempty,gte=1,lte=5"`
}

// QuestionResponse represents the next question presented to the learner.
// Answers are deliberately not included.
type QuestionResponse struct {
	ItemID string   `json:"item_id"`
	Prompt string   `json:"prompt"`
	Tags   []string `json:"tags,omitempty"`
}

// SessionHandler handles quiz session HTTP requests
type SessionHandler struct {
	quizService  quiz.Service
	defaultFuzzy bool
	logger       *slog.Logger
}

// NewSessionHandler creates a new SessionHandler. defaultFuzzy supplies the
// fuzzy-matching setting for sessions that do not set it explicitly.
func NewSessionHandler(quizService quiz.Service, defaultFuzzy bool, logger *slog.Logger) *SessionHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for SessionHandler")
	}

	return &SessionHandler{
		quizService:  quizService,
		defaultFuzzy: defaultFuzzy,
		logger:       logger.With(slog.String("component", "session_handler")),
	}
}

// StartSession handles POST /sessions requests.
func (h *SessionHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req StartSessionRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	fuzzy := h.defaultFuzzy
	if req.FuzzyMatching != nil {
		fuzzy = *req.FuzzyMatching
	}

	info, err := h.quizService.StartSession(r.Context(), quiz.Config{
		Mode:          quiz.Mode(req.Mode),
		Limit:         req.Limit,
		FuzzyMatching: fuzzy,
	})
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to start session"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("session started", slog.String("session_id", info.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, info)
}

// NextQuestion handles GET /sessions/{id}/next requests.
// Responds 204 No Content when the session has just completed.
func (h *SessionHandler) NextQuestion(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	sessionID, ok := parseIDParam(w, r, log)
	if !ok {
		return
	}

	item, err := h.quizService.NextQuestion(r.Context(), sessionID)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to get next question"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	if item == nil {
		log.Debug("session exhausted", slog.String("session_id", sessionID.String()))
		w.WriteHeader(http.StatusNoContent)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, QuestionResponse{
		ItemID: item.ID.String(),
		Prompt: item.Prompt,
		Tags:   item.Tags,
	})
}

// SubmitAnswer handles POST /sessions/{id}/answers requests.
func (h *SessionHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	sessionID, ok := parseIDParam(w, r, log)
	if !ok {
		return
	}

	var req SubmitAnswerRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format",
			slog.String("error", redact.Error(err)),
			slog.String("session_id", sessionID.String()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	feedback, err := h.quizService.SubmitAnswer(r.Context(), sessionID, req.Response, quiz.SubmitOptions{
		Quality:    req.Quality,
		Confidence: req.Confidence,
	})
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to submit answer"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("answer submitted",
		slog.String("session_id", sessionID.String()),
		slog.Bool("correct", feedback.Correct))
	shared.RespondWithJSON(w, r, http.StatusOK, feedback)
}

// SkipQuestion handles POST /sessions/{id}/skip requests.
func (h *SessionHandler) SkipQuestion(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	sessionID, ok := parseIDParam(w, r, log)
	if !ok {
		return
	}

	if err := h.quizService.SkipQuestion(r.Context(), sessionID); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CancelSession handles POST /sessions/{id}/cancel requests.
func (h *SessionHandler) CancelSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	sessionID, ok := parseIDParam(w, r, log)
	if !ok {
		return
	}

	if err := h.quizService.CancelSession(r.Context(), sessionID); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("session cancelled", slog.String("session_id", sessionID.String()))
	w.WriteHeader(http.StatusNoContent)
}

// SessionStats handles GET /sessions/{id}/stats requests.
func (h *SessionHandler) SessionStats(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	sessionID, ok := parseIDParam(w, r, log)
	if !ok {
		return
	}

	stats, err := h.quizService.SessionStats(r.Context(), sessionID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, stats)
}
