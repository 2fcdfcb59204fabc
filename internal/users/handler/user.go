package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"tempo/internal/users/service"
	apperrors "tempo/pkg/errors"
	httputil "tempo/pkg/http"
	"tempo/pkg/logger"
	"tempo/pkg/middleware"
)

type UserHandler struct {
	service service.UserService
	log     *logger.Logger
}

func NewUserHandler(service service.UserService, log *logger.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		log:     log,
	}
}

func (h *UserHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		h.writeError(w, "GetAll", apperrors.Unauthorized("Authentication required"))
		return
	}

	users, err := h.service.GetAll(r.Context(), identity)
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	if err := httputil.WriteSuccess(w, users); err != nil {
		h.log.Error("failed to write success response", "handler", "GetAll", "operation", "WriteSuccess", "error", err)
	}
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		h.writeError(w, "Me", apperrors.Unauthorized("Authentication required"))
		return
	}

	user, err := h.service.GetByID(r.Context(), identity.UserID)
	if err != nil {
		h.writeError(w, "Me", err)
		return
	}

	if err := httputil.WriteSuccess(w, user); err != nil {
		h.log.Error("failed to write success response", "handler", "Me", "operation", "WriteSuccess", "error", err)
	}
}

func (h *UserHandler) writeError(w http.ResponseWriter, handlerName string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handlerName, "operation", "WriteError", "error", writeErr)
	}
}

func (h *UserHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/users", h.GetAll)
	router.GET("/api/v1/users/me", h.Me)
}
