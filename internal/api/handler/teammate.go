package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/daap14/crewdesk/internal/api/middleware"
	"github.com/daap14/crewdesk/internal/api/response"
	"github.com/daap14/crewdesk/internal/api/serializer"
	"github.com/daap14/crewdesk/internal/api/validation"
	"github.com/daap14/crewdesk/internal/teammate"
)

// TeammateHandler handles teammate endpoints. Teammates cannot be updated.
type TeammateHandler struct {
	repo     teammate.Repository
	basePath string
}

// NewTeammateHandler creates a new TeammateHandler. basePath is the prefix
// the routes are mounted under and is used to build Location headers.
func NewTeammateHandler(repo teammate.Repository, basePath string) *TeammateHandler {
	return &TeammateHandler{repo: repo, basePath: basePath}
}

// List handles GET /Teammates/.
func (h *TeammateHandler) List(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	teammates, err := h.repo.List(r.Context())
	if err != nil {
		slog.Error("failed to list teammates", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list teammates", requestID)
		return
	}

	items := serializer.Teammates(teammates)
	response.SuccessList(w, http.StatusOK, items, len(items), requestID)
}

// Create handles POST /Teammates/. The body carries only a confirmation; the
// new record's address is in the Location header.
func (h *TeammateHandler) Create(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var req validation.TeammateRequest
	if !decodeBody(w, r, &req, requestID) {
		return
	}

	if fieldErrors := validation.ValidateTeammateRequest(req); len(fieldErrors) > 0 {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed", fieldErrors, requestID)
		return
	}

	t := &teammate.Teammate{
		Name:     *req.Name,
		Function: *req.Function,
	}

	if err := h.repo.Create(r.Context(), t); err != nil {
		if errors.Is(err, teammate.ErrDuplicate) {
			response.Err(w, http.StatusConflict, "DUPLICATE", fmt.Sprintf("A teammate with function %q already exists", t.Function), requestID)
			return
		}
		slog.Error("failed to create teammate", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create teammate", requestID)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("%s/%d", h.basePath, t.ID))
	response.Success(w, http.StatusOK, "Teammate added", requestID)
}

// GetByID handles GET /Teammates/{id}.
func (h *TeammateHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	id, err := parseID(r)
	if err != nil {
		response.Err(w, http.StatusNotFound, "NOT_FOUND", "Teammate not found", requestID)
		return
	}

	t, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, teammate.ErrNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Teammate not found", requestID)
			return
		}
		slog.Error("failed to get teammate", "error", err, "id", id)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to get teammate", requestID)
		return
	}

	response.Success(w, http.StatusOK, serializer.Teammate(t), requestID)
}

// Delete handles DELETE /Teammates/{id}.
func (h *TeammateHandler) Delete(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	id, err := parseID(r)
	if err != nil {
		response.Err(w, http.StatusNotFound, "NOT_FOUND", "Teammate not found", requestID)
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, teammate.ErrNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Teammate not found", requestID)
			return
		}
		slog.Error("failed to delete teammate", "error", err, "id", id)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete teammate", requestID)
		return
	}

	response.Success(w, http.StatusOK, "Teammate deleted", requestID)
}
