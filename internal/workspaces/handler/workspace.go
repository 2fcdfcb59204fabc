package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"

	"tempo/internal/workspaces/service"
	apperrors "tempo/pkg/errors"
	httputil "tempo/pkg/http"
	"tempo/pkg/logger"
	"tempo/pkg/middleware"
	"tempo/pkg/model"
)

type WorkspaceHandler struct {
	service service.WorkspaceService
	log     *logger.Logger
}

func NewWorkspaceHandler(service service.WorkspaceService, log *logger.Logger) *WorkspaceHandler {
	return &WorkspaceHandler{
		service: service,
		log:     log,
	}
}

type createWorkspaceRequest struct {
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	Capacity int    `json:"capacity"`
}

func (h *WorkspaceHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		h.writeError(w, "Create", apperrors.Unauthorized("Authentication required"))
		return
	}

	var req createWorkspaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	workspace := &model.Workspace{
		Name:     req.Name,
		Kind:     req.Kind,
		Capacity: req.Capacity,
	}

	if err := h.service.Create(r.Context(), identity, workspace); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, workspace); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *WorkspaceHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := strconv.ParseInt(ps.ByName("id"), 10, 64)
	if err != nil {
		h.writeError(w, "GetByID", apperrors.InvalidInput("workspace id must be an integer"))
		return
	}

	workspace, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	if err := httputil.WriteSuccess(w, workspace); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *WorkspaceHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	workspaces, err := h.service.GetAll(r.Context())
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	if err := httputil.WriteSuccess(w, workspaces); err != nil {
		h.log.Error("failed to write success response", "handler", "GetAll", "operation", "WriteSuccess", "error", err)
	}
}

func (h *WorkspaceHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		h.writeError(w, "Delete", apperrors.Unauthorized("Authentication required"))
		return
	}

	id, err := strconv.ParseInt(ps.ByName("id"), 10, 64)
	if err != nil {
		h.writeError(w, "Delete", apperrors.InvalidInput("workspace id must be an integer"))
		return
	}

	removed, err := h.service.Delete(r.Context(), id, identity)
	if err != nil {
		h.writeError(w, "Delete", err)
		return
	}

	if err := httputil.WriteSuccess(w, removed); err != nil {
		h.log.Error("failed to write success response", "handler", "Delete", "operation", "WriteSuccess", "error", err)
	}
}

func (h *WorkspaceHandler) writeError(w http.ResponseWriter, handlerName string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handlerName, "operation", "WriteError", "error", writeErr)
	}
}

func (h *WorkspaceHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/workspaces", h.Create)
	router.GET("/api/v1/workspaces", h.GetAll)
	router.GET("/api/v1/workspaces/:id", h.GetByID)
	router.DELETE("/api/v1/workspaces/:id", h.Delete)
}
