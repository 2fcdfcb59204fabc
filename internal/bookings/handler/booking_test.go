package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"

	apperrors "tempo/pkg/errors"
	"tempo/pkg/logger"
	"tempo/pkg/middleware"
	"tempo/pkg/model"
)

// Mock service for testing
type mockBookingService struct {
	createFunc       func(ctx context.Context, requester model.Identity, booking *model.Booking) error
	checkOverlapFunc func(ctx context.Context, workspaceID int64, startAt, endAt time.Time, excludeID string) (bool, error)
	deleteFunc       func(ctx context.Context, id string, requester model.Identity) (*model.Booking, error)
}

func (m *mockBookingService) Create(ctx context.Context, requester model.Identity, booking *model.Booking) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, requester, booking)
	}
	return nil
}

func (m *mockBookingService) CheckOverlap(ctx context.Context, workspaceID int64, startAt, endAt time.Time, excludeID string) (bool, error) {
	if m.checkOverlapFunc != nil {
		return m.checkOverlapFunc(ctx, workspaceID, startAt, endAt, excludeID)
	}
	return false, nil
}

func (m *mockBookingService) ListForRequester(ctx context.Context, requester model.Identity) ([]*model.BookingDetail, error) {
	return []*model.BookingDetail{}, nil
}

func (m *mockBookingService) Delete(ctx context.Context, id string, requester model.Identity) (*model.Booking, error) {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id, requester)
	}
	return &model.Booking{ID: id}, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{
		Level:   "error",
		Format:  logger.JSON,
		Service: "test",
	})
}

func authedRequest(method, target, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	identity := model.Identity{UserID: "user-1", Email: "one@example.com", Role: model.RoleUser}
	return req.WithContext(middleware.ContextWithIdentity(req.Context(), identity))
}

func TestCreate_StatusCodes(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		serviceErr error
		expectCode int
	}{
		{
			name:       "admitted",
			body:       `{"workspace_id":1,"start_at":"2024-06-10T09:00:00Z","end_at":"2024-06-10T10:00:00Z"}`,
			serviceErr: nil,
			expectCode: http.StatusCreated,
		},
		{
			name:       "overlap rejected",
			body:       `{"workspace_id":1,"start_at":"2024-06-10T09:00:00Z","end_at":"2024-06-10T10:00:00Z"}`,
			serviceErr: apperrors.BookingOverlap("The requested time range overlaps an existing booking for this workspace"),
			expectCode: http.StatusConflict,
		},
		{
			name:       "workspace missing",
			body:       `{"workspace_id":99,"start_at":"2024-06-10T09:00:00Z","end_at":"2024-06-10T10:00:00Z"}`,
			serviceErr: apperrors.NotFoundWithID("Workspace", "99"),
			expectCode: http.StatusNotFound,
		},
		{
			name:       "malformed body",
			body:       `{"workspace_id":`,
			serviceErr: nil,
			expectCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &mockBookingService{
				createFunc: func(ctx context.Context, requester model.Identity, booking *model.Booking) error {
					return tt.serviceErr
				},
			}
			handler := NewBookingHandler(mockService, testLogger())

			req := authedRequest(http.MethodPost, "/api/v1/bookings", tt.body)
			w := httptest.NewRecorder()

			handler.Create(w, req, httprouter.Params{})

			if w.Code != tt.expectCode {
				t.Errorf("expected status %d, got %d (body: %s)", tt.expectCode, w.Code, w.Body.String())
			}
		})
	}
}

func TestCreate_OverlapResponseCode(t *testing.T) {
	mockService := &mockBookingService{
		createFunc: func(ctx context.Context, requester model.Identity, booking *model.Booking) error {
			return apperrors.BookingOverlap("overlap")
		},
	}
	handler := NewBookingHandler(mockService, testLogger())

	req := authedRequest(http.MethodPost, "/api/v1/bookings",
		`{"workspace_id":1,"start_at":"2024-06-10T09:00:00Z","end_at":"2024-06-10T10:00:00Z"}`)
	w := httptest.NewRecorder()

	handler.Create(w, req, httprouter.Params{})

	var resp struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Code != apperrors.CodeBookingOverlap {
		t.Errorf("expected code %s in body, got %q", apperrors.CodeBookingOverlap, resp.Code)
	}
}

func TestCreate_Unauthenticated(t *testing.T) {
	handler := NewBookingHandler(&mockBookingService{}, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings",
		strings.NewReader(`{"workspace_id":1,"start_at":"2024-06-10T09:00:00Z","end_at":"2024-06-10T10:00:00Z"}`))
	w := httptest.NewRecorder()

	handler.Create(w, req, httprouter.Params{})

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", w.Code)
	}
}

func TestAvailability_QueryValidation(t *testing.T) {
	handler := NewBookingHandler(&mockBookingService{}, testLogger())

	tests := []struct {
		name        string
		queryString string
		expectCode  int
	}{
		{
			name:        "valid query",
			queryString: "?workspace_id=1&start_at=2024-06-10T09:00:00Z&end_at=2024-06-10T10:00:00Z",
			expectCode:  http.StatusOK,
		},
		{
			name:        "missing workspace id",
			queryString: "?start_at=2024-06-10T09:00:00Z&end_at=2024-06-10T10:00:00Z",
			expectCode:  http.StatusBadRequest,
		},
		{
			name:        "bad start format",
			queryString: "?workspace_id=1&start_at=tomorrow&end_at=2024-06-10T10:00:00Z",
			expectCode:  http.StatusBadRequest,
		},
		{
			name:        "negative workspace id",
			queryString: "?workspace_id=-3&start_at=2024-06-10T09:00:00Z&end_at=2024-06-10T10:00:00Z",
			expectCode:  http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := authedRequest(http.MethodGet, "/api/v1/bookings/availability"+tt.queryString, "")
			w := httptest.NewRecorder()

			handler.Availability(w, req, httprouter.Params{})

			if w.Code != tt.expectCode {
				t.Errorf("expected status %d, got %d (body: %s)", tt.expectCode, w.Code, w.Body.String())
			}
		})
	}
}

func TestDelete_StatusCodes(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		expectCode int
	}{
		{"deleted", nil, http.StatusOK},
		{"missing", apperrors.NotFoundWithID("Booking", "abc"), http.StatusNotFound},
		{"foreign booking", apperrors.Forbidden("You can only delete your own bookings"), http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &mockBookingService{
				deleteFunc: func(ctx context.Context, id string, requester model.Identity) (*model.Booking, error) {
					if tt.serviceErr != nil {
						return nil, tt.serviceErr
					}
					return &model.Booking{ID: id}, nil
				},
			}
			handler := NewBookingHandler(mockService, testLogger())

			req := authedRequest(http.MethodDelete, "/api/v1/bookings/abc", "")
			w := httptest.NewRecorder()

			handler.Delete(w, req, httprouter.Params{{Key: "id", Value: "abc"}})

			if w.Code != tt.expectCode {
				t.Errorf("expected status %d, got %d", tt.expectCode, w.Code)
			}
		})
	}
}
