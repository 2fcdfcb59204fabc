package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/julienschmidt/httprouter"

	"tempo/internal/bookings/service"
	apperrors "tempo/pkg/errors"
	httputil "tempo/pkg/http"
	"tempo/pkg/logger"
	"tempo/pkg/middleware"
	"tempo/pkg/model"
)

type BookingHandler struct {
	service service.BookingService
	log     *logger.Logger
}

func NewBookingHandler(service service.BookingService, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log,
	}
}

type createBookingRequest struct {
	WorkspaceID int64     `json:"workspace_id"`
	StartAt     time.Time `json:"start_at"`
	EndAt       time.Time `json:"end_at"`
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		h.writeError(w, "Create", apperrors.Unauthorized("Authentication required"))
		return
	}

	var req createBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	booking := &model.Booking{
		WorkspaceID: req.WorkspaceID,
		StartAt:     req.StartAt.UTC(),
		EndAt:       req.EndAt.UTC(),
	}

	if err := h.service.Create(r.Context(), identity, booking); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, booking); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		h.writeError(w, "List", apperrors.Unauthorized("Authentication required"))
		return
	}

	bookings, err := h.service.ListForRequester(r.Context(), identity)
	if err != nil {
		h.writeError(w, "List", err)
		return
	}

	if err := httputil.WriteSuccess(w, bookings); err != nil {
		h.log.Error("failed to write success response", "handler", "List", "operation", "WriteSuccess", "error", err)
	}
}

// Availability reports whether a candidate interval would collide with an
// existing booking, without reserving anything. Intended for UI probing;
// the answer is advisory and can go stale before the create call lands.
func (h *BookingHandler) Availability(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()

	workspaceID, err := strconv.ParseInt(query.Get("workspace_id"), 10, 64)
	if err != nil || workspaceID < 1 {
		h.writeError(w, "Availability", apperrors.InvalidInput("workspace_id must be a positive integer"))
		return
	}

	startAt, err := time.Parse(time.RFC3339, query.Get("start_at"))
	if err != nil {
		h.writeError(w, "Availability", apperrors.InvalidInput("invalid start_at format, must be RFC3339"))
		return
	}

	endAt, err := time.Parse(time.RFC3339, query.Get("end_at"))
	if err != nil {
		h.writeError(w, "Availability", apperrors.InvalidInput("invalid end_at format, must be RFC3339"))
		return
	}

	overlaps, err := h.service.CheckOverlap(r.Context(), workspaceID, startAt.UTC(), endAt.UTC(), query.Get("exclude_id"))
	if err != nil {
		h.writeError(w, "Availability", err)
		return
	}

	if err := httputil.WriteSuccess(w, map[string]bool{"available": !overlaps}); err != nil {
		h.log.Error("failed to write success response", "handler", "Availability", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		h.writeError(w, "Delete", apperrors.Unauthorized("Authentication required"))
		return
	}

	removed, err := h.service.Delete(r.Context(), ps.ByName("id"), identity)
	if err != nil {
		h.writeError(w, "Delete", err)
		return
	}

	if err := httputil.WriteSuccess(w, removed); err != nil {
		h.log.Error("failed to write success response", "handler", "Delete", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) writeError(w http.ResponseWriter, handlerName string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handlerName, "operation", "WriteError", "error", writeErr)
	}
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/bookings", h.Create)
	router.GET("/api/v1/bookings", h.List)
	router.GET("/api/v1/bookings/availability", h.Availability)
	router.DELETE("/api/v1/bookings/:id", h.Delete)
}
