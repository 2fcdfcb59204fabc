package service

import (
	"context"
	"strconv"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	userserrors "tempo/internal/users/errors"
	"tempo/pkg/config"
	apperrors "tempo/pkg/errors"
	"tempo/pkg/logger"
	"tempo/pkg/model"
	"tempo/pkg/token"
)

type mockUserRepo struct {
	byEmail map[string]*model.User
	nextID  int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{byEmail: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error {
	if _, exists := m.byEmail[user.Email]; exists {
		return userserrors.ErrEmailTaken
	}
	m.nextID++
	user.ID = "user-" + strconv.Itoa(m.nextID)
	stored := *user
	m.byEmail[user.Email] = &stored
	return nil
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	for _, u := range m.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, userserrors.ErrNotFound
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return nil, userserrors.ErrNotFound
	}
	return u, nil
}

func (m *mockUserRepo) FindByIDs(ctx context.Context, ids []string) (map[string]*model.User, error) {
	return nil, nil
}

func (m *mockUserRepo) FindAll(ctx context.Context) ([]*model.User, error) { return nil, nil }

func newTestService(repo *mockUserRepo) (AuthService, *token.Issuer) {
	log := logger.New(logger.Config{Level: "error", Format: logger.JSON, Service: "test"})
	issuer := token.NewIssuer("0123456789abcdef0123456789abcdef", time.Hour)
	cfg := &config.Config{BcryptCost: bcrypt.MinCost}
	return NewAuthService(repo, issuer, cfg, log), issuer
}

func TestRegister(t *testing.T) {
	repo := newMockUserRepo()
	svc, _ := newTestService(repo)

	user, err := svc.Register(context.Background(), "  Alice@Example.COM ", "hunter2hunter2")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Errorf("expected normalized email, got %q", user.Email)
	}
	if user.Role != model.RoleUser {
		t.Errorf("expected default role USER, got %q", user.Role)
	}
	if user.Password == "hunter2hunter2" {
		t.Error("password must not be stored in plain text")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("hunter2hunter2")); err != nil {
		t.Error("stored password is not a valid bcrypt hash of the input")
	}
}

func TestRegister_Validation(t *testing.T) {
	svc, _ := newTestService(newMockUserRepo())

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"bad email", "not-an-email", "hunter2hunter2"},
		{"empty email", "", "hunter2hunter2"},
		{"short password", "alice@example.com", "short"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.email, tt.password)
			if !apperrors.IsCode(err, apperrors.CodeInvalidInput) {
				t.Errorf("expected %s, got %v", apperrors.CodeInvalidInput, err)
			}
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := newTestService(newMockUserRepo())

	if _, err := svc.Register(context.Background(), "alice@example.com", "hunter2hunter2"); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}

	_, err := svc.Register(context.Background(), "ALICE@example.com", "otherpassword")
	if !apperrors.IsCode(err, apperrors.CodeConflict) {
		t.Fatalf("expected %s for duplicate email, got %v", apperrors.CodeConflict, err)
	}
}

func TestLogin(t *testing.T) {
	svc, issuer := newTestService(newMockUserRepo())

	registered, err := svc.Register(context.Background(), "alice@example.com", "hunter2hunter2")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	accessToken, user, err := svc.Login(context.Background(), "alice@example.com", "hunter2hunter2")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if user.ID != registered.ID {
		t.Errorf("expected user %s, got %s", registered.ID, user.ID)
	}

	identity, err := issuer.Verify(accessToken)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if identity.UserID != registered.ID || identity.Role != model.RoleUser {
		t.Errorf("unexpected identity in token: %+v", identity)
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	svc, _ := newTestService(newMockUserRepo())

	if _, err := svc.Register(context.Background(), "alice@example.com", "hunter2hunter2"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", "alice@example.com", "wrongpassword"},
		{"unknown email", "bob@example.com", "hunter2hunter2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.Login(context.Background(), tt.email, tt.password)
			if !apperrors.IsCode(err, apperrors.CodeUnauthorized) {
				t.Errorf("expected %s, got %v", apperrors.CodeUnauthorized, err)
			}
		})
	}
}
