package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/daap14/crewdesk/internal/api/middleware"
	"github.com/daap14/crewdesk/internal/api/response"
	"github.com/daap14/crewdesk/internal/api/serializer"
	"github.com/daap14/crewdesk/internal/api/validation"
	"github.com/daap14/crewdesk/internal/project"
)

// ProjectHandler handles project CRUD endpoints.
type ProjectHandler struct {
	repo project.Repository
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(repo project.Repository) *ProjectHandler {
	return &ProjectHandler{repo: repo}
}

// List handles GET /Projects/.
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	projects, err := h.repo.List(r.Context())
	if err != nil {
		slog.Error("failed to list projects", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list projects", requestID)
		return
	}

	items := serializer.Projects(projects)
	response.SuccessList(w, http.StatusOK, items, len(items), requestID)
}

// Create handles POST /Projects/. The created record is returned.
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var req validation.ProjectRequest
	if !decodeBody(w, r, &req, requestID) {
		return
	}

	if fieldErrors := validation.ValidateProjectRequest(req); len(fieldErrors) > 0 {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed", fieldErrors, requestID)
		return
	}

	p := &project.Project{
		Title:       *req.Title,
		Description: *req.Description,
	}

	if err := h.repo.Create(r.Context(), p); err != nil {
		if errors.Is(err, project.ErrDuplicate) {
			response.Err(w, http.StatusConflict, "DUPLICATE", "A project with this title or description already exists", requestID)
			return
		}
		slog.Error("failed to create project", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create project", requestID)
		return
	}

	response.Success(w, http.StatusOK, serializer.Project(p), requestID)
}

// GetByID handles GET /Projects/{id}.
func (h *ProjectHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	id, err := parseID(r)
	if err != nil {
		response.Err(w, http.StatusNotFound, "NOT_FOUND", "Project not found", requestID)
		return
	}

	p, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, project.ErrNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Project not found", requestID)
			return
		}
		slog.Error("failed to get project", "error", err, "id", id)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to get project", requestID)
		return
	}

	response.Success(w, http.StatusOK, serializer.Project(p), requestID)
}

// Update handles PUT /Projects/{id}, overwriting title and description.
func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	id, err := parseID(r)
	if err != nil {
		response.Err(w, http.StatusNotFound, "NOT_FOUND", "Project not found", requestID)
		return
	}

	var req validation.ProjectRequest
	if !decodeBody(w, r, &req, requestID) {
		return
	}

	if fieldErrors := validation.ValidateProjectRequest(req); len(fieldErrors) > 0 {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed", fieldErrors, requestID)
		return
	}

	_, err = h.repo.Update(r.Context(), id, project.UpdateFields{
		Title:       *req.Title,
		Description: *req.Description,
	})
	if err != nil {
		switch {
		case errors.Is(err, project.ErrNotFound):
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Project not found", requestID)
		case errors.Is(err, project.ErrDuplicate):
			response.Err(w, http.StatusConflict, "DUPLICATE", "A project with this title or description already exists", requestID)
		default:
			slog.Error("failed to update project", "error", err, "id", id)
			response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update project", requestID)
		}
		return
	}

	response.Success(w, http.StatusOK, "Project updated", requestID)
}

// Delete handles DELETE /Projects/{id}.
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	id, err := parseID(r)
	if err != nil {
		response.Err(w, http.StatusNotFound, "NOT_FOUND", "Project not found", requestID)
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, project.ErrNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Project not found", requestID)
			return
		}
		slog.Error("failed to delete project", "error", err, "id", id)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete project", requestID)
		return
	}

	response.Success(w, http.StatusOK, "Project deleted", requestID)
}
