package leads

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/wolfman30/supplychain-leads/pkg/logging"
)

// Creator is the write side used by the JSON endpoint.
type Creator interface {
	Create(ctx context.Context, rec Record) (*Lead, error)
}

// Handler handles HTTP requests for leads
type Handler struct {
	creator Creator
	repo    Repository
	logger  *logging.Logger
}

// NewHandler creates a new leads handler
func NewHandler(creator Creator, repo Repository, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		creator: creator,
		repo:    repo,
		logger:  logger,
	}
}

// CreateLeadRequest is the body of POST /api/leads
type CreateLeadRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Interest string `json:"interest"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// CreateWebLead handles POST /api/leads requests
func (h *Handler) CreateWebLead(w http.ResponseWriter, r *http.Request) {
	var req CreateLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode request", "error", err)
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	lead, err := h.creator.Create(r.Context(), Record{
		Name:     req.Name,
		Email:    req.Email,
		Interest: Interest(req.Interest),
	})
	switch {
	case err == nil:
	case IsValidation(err):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	case errors.Is(err, context.Canceled):
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "request cancelled"})
		return
	default:
		h.logger.Error("failed to create lead", "error", err)
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "failed to submit lead"})
		return
	}

	writeJSON(w, http.StatusCreated, lead)
}

// ListLeadsResponse is the response for listing leads
type ListLeadsResponse struct {
	Leads  []*Lead `json:"leads"`
	Count  int     `json:"count"`
	Offset int     `json:"offset"`
	Limit  int     `json:"limit"`
}

// ListLeads handles GET /admin/leads requests
func (h *Handler) ListLeads(w http.ResponseWriter, r *http.Request) {
	filter := ListFilter{
		Limit:  50,
		Offset: 0,
	}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 && limit <= 100 {
			filter.Limit = limit
		}
	}

	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if offset, err := strconv.Atoi(offsetStr); err == nil && offset >= 0 {
			filter.Offset = offset
		}
	}

	if raw := r.URL.Query().Get("interest"); raw != "" {
		interest, ok := ParseInterest(raw)
		if !ok {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: ErrInvalidInterest.Error()})
			return
		}
		filter.Interest = interest
	}

	leads, err := h.repo.List(r.Context(), filter)
	if err != nil {
		h.logger.Error("failed to list leads", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to list leads"})
		return
	}

	writeJSON(w, http.StatusOK, ListLeadsResponse{
		Leads:  leads,
		Count:  len(leads),
		Offset: filter.Offset,
		Limit:  filter.Limit,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
