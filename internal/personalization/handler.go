package personalization

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vitalia-ro/wellness-ai-platform/internal/profile"
	"github.com/vitalia-ro/wellness-ai-platform/pkg/logging"
)

// Handler exposes the personalization service over HTTP.
type Handler struct {
	service *Service
	logger  *logging.Logger
}

// NewHandler creates the HTTP handler for personalization endpoints.
func NewHandler(service *Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{service: service, logger: logger}
}

// MessageRequest is the fast-path request body.
type MessageRequest struct {
	UserID  string `json:"user_id"`
	Message string `json:"message"`
}

// MessageResponse is the fast-path response.
type MessageResponse struct {
	Context    string       `json:"context"`
	Mood       profile.Mood `json:"mood"`
	FactsFound int          `json:"facts_found"`
}

// PostMessage handles POST /v1/conversations/message.
func (h *Handler) PostMessage(w http.ResponseWriter, r *http.Request) {
	var req MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.service.ProcessMessage(r.Context(), req.UserID, req.Message)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{
		Context:    result.Context,
		Mood:       result.Mood,
		FactsFound: result.FactsFound,
	})
}

// GetProfile handles GET /v1/profiles/{userID}.
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	p, err := h.service.Profile(r.Context(), userID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// CorrectRequest carries explicit scalar corrections.
type CorrectRequest struct {
	Name       string `json:"name,omitempty"`
	Age        int    `json:"age,omitempty"`
	Occupation string `json:"occupation,omitempty"`
	Location   string `json:"location,omitempty"`
}

// CorrectProfile handles PATCH /v1/profiles/{userID}.
func (h *Handler) CorrectProfile(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	var req CorrectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	p, err := h.service.Correct(r.Context(), userID, profile.PartialFacts{
		Name:       req.Name,
		Age:        req.Age,
		Occupation: req.Occupation,
		Location:   req.Location,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// DeleteProfile handles DELETE /v1/profiles/{userID}.
func (h *Handler) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if err := h.service.Forget(r.Context(), userID); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AnalyzeRequest supplies the conversation history for the batch pass.
type AnalyzeRequest struct {
	Conversations []Conversation `json:"conversations"`
}

// AnalyzeResponse carries the behavioral profile and its rendered block.
type AnalyzeResponse struct {
	Profile *PersonalityProfile `json:"profile"`
	Context string              `json:"context"`
}

// AnalyzeHistory handles POST /v1/profiles/{userID}/analyze.
func (h *Handler) AnalyzeHistory(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	p, block, err := h.service.AnalyzeHistory(r.Context(), userID, req.Conversations)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, AnalyzeResponse{Profile: p, Context: block})
}

// HealthCheck handles GET /health.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, profile.ErrProfileNotFound):
		http.Error(w, "profile not found", http.StatusNotFound)
	case errors.Is(err, profile.ErrMissingUserID),
		errors.Is(err, ErrEmptyMessage),
		errors.Is(err, ErrNoConversations):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, profile.ErrStoreUnavailable):
		h.logger.Error("profile store unavailable", "error", err)
		http.Error(w, "profile store unavailable", http.StatusServiceUnavailable)
	default:
		h.logger.Error("personalization request failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
