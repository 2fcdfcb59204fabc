package handler

import (
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"

	"tempo/internal/audit/service"
	apperrors "tempo/pkg/errors"
	httputil "tempo/pkg/http"
	"tempo/pkg/logger"
	"tempo/pkg/middleware"
)

type AuditHandler struct {
	service service.AuditService
	log     *logger.Logger
}

func NewAuditHandler(service service.AuditService, log *logger.Logger) *AuditHandler {
	return &AuditHandler{
		service: service,
		log:     log,
	}
}

func (h *AuditHandler) GetRecent(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok || !identity.IsAdmin() {
		h.writeError(w, "GetRecent", apperrors.Forbidden("Only admins can read the audit log"))
		return
	}

	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		var err error
		limit, err = strconv.Atoi(limitStr)
		if err != nil {
			h.writeError(w, "GetRecent", apperrors.InvalidInput("limit must be an integer"))
			return
		}
	}

	entries, err := h.service.GetRecent(r.Context(), limit)
	if err != nil {
		h.writeError(w, "GetRecent", err)
		return
	}

	if err := httputil.WriteSuccess(w, entries); err != nil {
		h.log.Error("failed to write success response", "handler", "GetRecent", "operation", "WriteSuccess", "error", err)
	}
}

func (h *AuditHandler) GetByEntity(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok || !identity.IsAdmin() {
		h.writeError(w, "GetByEntity", apperrors.Forbidden("Only admins can read the audit log"))
		return
	}

	entries, err := h.service.GetByEntity(r.Context(), ps.ByName("entityType"), ps.ByName("entityId"))
	if err != nil {
		h.writeError(w, "GetByEntity", err)
		return
	}

	if err := httputil.WriteSuccess(w, entries); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByEntity", "operation", "WriteSuccess", "error", err)
	}
}

func (h *AuditHandler) writeError(w http.ResponseWriter, handlerName string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handlerName, "operation", "WriteError", "error", writeErr)
	}
}

func (h *AuditHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/audit", h.GetRecent)
	router.GET("/api/v1/audit/:entityType/:entityId", h.GetByEntity)
}
