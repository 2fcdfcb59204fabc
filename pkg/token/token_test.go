package token

import (
	"testing"
	"time"

	"tempo/pkg/model"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestIssueAndVerify(t *testing.T) {
	issuer := NewIssuer(testSecret, time.Hour)

	user := &model.User{ID: "user-1", Email: "alice@example.com", Role: model.RoleAdmin}
	raw, err := issuer.Issue(user)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	identity, err := issuer.Verify(raw)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if identity.UserID != "user-1" || identity.Email != "alice@example.com" || identity.Role != model.RoleAdmin {
		t.Errorf("unexpected identity: %+v", identity)
	}
}

func TestVerify_Expired(t *testing.T) {
	issuer := NewIssuer(testSecret, -time.Minute)

	raw, err := issuer.Issue(&model.User{ID: "user-1", Role: model.RoleUser})
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if _, err := issuer.Verify(raw); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	issuer := NewIssuer(testSecret, time.Hour)
	other := NewIssuer("ffffffffffffffffffffffffffffffff", time.Hour)

	raw, err := issuer.Issue(&model.User{ID: "user-1", Role: model.RoleUser})
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if _, err := other.Verify(raw); err == nil {
		t.Fatal("expected token signed with a different secret to be rejected")
	}
}

func TestVerify_Garbage(t *testing.T) {
	issuer := NewIssuer(testSecret, time.Hour)

	for _, raw := range []string{"", "not.a.token", "a.b"} {
		if _, err := issuer.Verify(raw); err == nil {
			t.Errorf("expected %q to be rejected", raw)
		}
	}
}
