package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	workspaceserrors "tempo/internal/workspaces/errors"
	"tempo/internal/workspaces/validator"
	mongotx "tempo/pkg/db/mongo"
	apperrors "tempo/pkg/errors"
	"tempo/pkg/logger"
	"tempo/pkg/model"
)

type mockWorkspaceRepo struct {
	mu         sync.Mutex
	workspaces map[int64]*model.Workspace
	nextID     int64
}

func newMockWorkspaceRepo() *mockWorkspaceRepo {
	return &mockWorkspaceRepo{workspaces: make(map[int64]*model.Workspace)}
}

func (m *mockWorkspaceRepo) Create(ctx context.Context, workspace *model.Workspace) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	workspace.ID = m.nextID
	stored := *workspace
	m.workspaces[workspace.ID] = &stored
	return nil
}

func (m *mockWorkspaceRepo) FindByID(ctx context.Context, id int64) (*model.Workspace, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ws, ok := m.workspaces[id]
	if !ok {
		return nil, workspaceserrors.ErrNotFound
	}
	return ws, nil
}

func (m *mockWorkspaceRepo) FindAll(ctx context.Context) ([]*model.Workspace, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Workspace
	for _, ws := range m.workspaces {
		out = append(out, ws)
	}
	return out, nil
}

func (m *mockWorkspaceRepo) FindByIDs(ctx context.Context, ids []int64) (map[int64]*model.Workspace, error) {
	return nil, nil
}

func (m *mockWorkspaceRepo) Delete(ctx context.Context, id int64) (*model.Workspace, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ws, ok := m.workspaces[id]
	if !ok {
		return nil, workspaceserrors.ErrNotFound
	}
	delete(m.workspaces, id)
	return ws, nil
}

func (m *mockWorkspaceRepo) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(mongo.NewSessionContext(ctx, nil))
}

type mockBookingRepo struct {
	deletedForWorkspace int64
	cascadeCount        int64
}

func (m *mockBookingRepo) Create(ctx context.Context, booking *model.Booking) error { return nil }

func (m *mockBookingRepo) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	return nil, nil
}

func (m *mockBookingRepo) FindOverlapping(ctx context.Context, workspaceID int64, startAt, endAt time.Time, excludeID string) ([]*model.Booking, error) {
	return nil, nil
}

func (m *mockBookingRepo) FindByUser(ctx context.Context, userID string) ([]*model.Booking, error) {
	return nil, nil
}

func (m *mockBookingRepo) FindAll(ctx context.Context) ([]*model.Booking, error) { return nil, nil }

func (m *mockBookingRepo) Delete(ctx context.Context, id string) (*model.Booking, error) {
	return nil, nil
}

func (m *mockBookingRepo) DeleteByWorkspace(ctx context.Context, workspaceID int64) (int64, error) {
	m.deletedForWorkspace = workspaceID
	return m.cascadeCount, nil
}

func (m *mockBookingRepo) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(mongo.NewSessionContext(ctx, nil))
}

type mockAuditService struct {
	entries []map[string]any
}

func (m *mockAuditService) LogDeletion(ctx context.Context, entityType, entityID string, entityData map[string]any, performedBy model.Identity) {
	m.entries = append(m.entries, entityData)
}

func (m *mockAuditService) GetRecent(ctx context.Context, limit int) ([]*model.AuditLog, error) {
	return nil, nil
}

func (m *mockAuditService) GetByEntity(ctx context.Context, entityType, entityID string) ([]*model.AuditLog, error) {
	return nil, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "error", Format: logger.JSON, Service: "test"})
}

func admin() model.Identity {
	return model.Identity{UserID: "admin-1", Role: model.RoleAdmin}
}

func member() model.Identity {
	return model.Identity{UserID: "user-1", Role: model.RoleUser}
}

func newTestService(repo *mockWorkspaceRepo, bookings *mockBookingRepo, audit *mockAuditService) WorkspaceService {
	log := testLogger()
	return NewWorkspaceService(repo, bookings, audit, validator.NewWorkspaceValidator(log), log)
}

func TestCreate_DefaultsCapacity(t *testing.T) {
	repo := newMockWorkspaceRepo()
	svc := newTestService(repo, &mockBookingRepo{}, &mockAuditService{})

	workspace := &model.Workspace{Name: "  Desk   A ", Kind: model.WorkspaceKindDesk}
	if err := svc.Create(context.Background(), admin(), workspace); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if workspace.ID == 0 {
		t.Error("expected sequential id to be assigned")
	}
	if workspace.Capacity != 1 {
		t.Errorf("expected capacity defaulted to 1, got %d", workspace.Capacity)
	}
	if workspace.Name != "Desk A" {
		t.Errorf("expected normalized name, got %q", workspace.Name)
	}
}

func TestCreate_Validation(t *testing.T) {
	svc := newTestService(newMockWorkspaceRepo(), &mockBookingRepo{}, &mockAuditService{})

	tests := []struct {
		name      string
		workspace *model.Workspace
	}{
		{"empty name", &model.Workspace{Name: "", Kind: model.WorkspaceKindDesk}},
		{"unknown kind", &model.Workspace{Name: "Desk", Kind: "GARAGE"}},
		{"capacity too large", &model.Workspace{Name: "Hall", Kind: model.WorkspaceKindMeetingRoom, Capacity: 1000}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Create(context.Background(), admin(), tt.workspace)
			if !apperrors.IsCode(err, apperrors.CodeInvalidInput) {
				t.Errorf("expected %s, got %v", apperrors.CodeInvalidInput, err)
			}
		})
	}
}

func TestCreate_AdminOnly(t *testing.T) {
	svc := newTestService(newMockWorkspaceRepo(), &mockBookingRepo{}, &mockAuditService{})

	workspace := &model.Workspace{Name: "Desk", Kind: model.WorkspaceKindDesk}
	err := svc.Create(context.Background(), member(), workspace)
	if !apperrors.IsCode(err, apperrors.CodeForbidden) {
		t.Fatalf("expected %s, got %v", apperrors.CodeForbidden, err)
	}
}

func TestDelete_CascadesAndAudits(t *testing.T) {
	repo := newMockWorkspaceRepo()
	bookings := &mockBookingRepo{cascadeCount: 3}
	audit := &mockAuditService{}
	svc := newTestService(repo, bookings, audit)

	workspace := &model.Workspace{Name: "Boardroom", Kind: model.WorkspaceKindMeetingRoom, Capacity: 10}
	if err := svc.Create(context.Background(), admin(), workspace); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	removed, err := svc.Delete(context.Background(), workspace.ID, admin())
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if removed.ID != workspace.ID {
		t.Errorf("expected deleted snapshot of workspace %d, got %d", workspace.ID, removed.ID)
	}
	if bookings.deletedForWorkspace != workspace.ID {
		t.Error("expected bookings cascade delete for the workspace")
	}
	if len(audit.entries) != 1 {
		t.Fatalf("expected 1 audit entry, got %d", len(audit.entries))
	}
	if audit.entries[0]["deleted_bookings"] != int64(3) {
		t.Errorf("expected cascade count recorded in audit, got %v", audit.entries[0]["deleted_bookings"])
	}
}

func TestDelete_NotFoundAndForbidden(t *testing.T) {
	svc := newTestService(newMockWorkspaceRepo(), &mockBookingRepo{}, &mockAuditService{})

	if _, err := svc.Delete(context.Background(), 42, admin()); !apperrors.IsCode(err, apperrors.CodeNotFound) {
		t.Errorf("expected %s, got %v", apperrors.CodeNotFound, err)
	}
	if _, err := svc.Delete(context.Background(), 42, member()); !apperrors.IsCode(err, apperrors.CodeForbidden) {
		t.Errorf("expected %s, got %v", apperrors.CodeForbidden, err)
	}
}

func TestGetByID(t *testing.T) {
	repo := newMockWorkspaceRepo()
	svc := newTestService(repo, &mockBookingRepo{}, &mockAuditService{})

	workspace := &model.Workspace{Name: "Desk", Kind: model.WorkspaceKindDesk}
	if err := svc.Create(context.Background(), admin(), workspace); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	found, err := svc.GetByID(context.Background(), workspace.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if found.Name != "Desk" {
		t.Errorf("expected workspace Desk, got %q", found.Name)
	}

	if _, err := svc.GetByID(context.Background(), 99); !apperrors.IsCode(err, apperrors.CodeNotFound) {
		t.Errorf("expected %s, got %v", apperrors.CodeNotFound, err)
	}
}
