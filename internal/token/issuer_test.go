package token

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"marketplace-backend/internal/domain/account"
	appErrors "marketplace-backend/pkg/errors"
)

func TestIssueAndVerifySessionToken(t *testing.T) {
	issuer := NewIssuer("test-secret", 15)
	accountID := uuid.New()

	signed, err := issuer.IssueSessionToken(accountID, "jane@example.com", account.RoleVendor)
	if err != nil {
		t.Fatalf("IssueSessionToken() error = %v", err)
	}

	claims, err := issuer.VerifySessionToken(signed)
	if err != nil {
		t.Fatalf("VerifySessionToken() error = %v", err)
	}

	if claims.AccountID != accountID {
		t.Errorf("AccountID = %v, want %v", claims.AccountID, accountID)
	}
	if claims.Email != "jane@example.com" {
		t.Errorf("Email = %q, want %q", claims.Email, "jane@example.com")
	}
	if claims.Role != account.RoleVendor {
		t.Errorf("Role = %q, want %q", claims.Role, account.RoleVendor)
	}
	if claims.ExpiresAt == nil {
		t.Fatal("ExpiresAt is nil")
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 || ttl > 15*time.Minute {
		t.Errorf("token TTL = %v, want within (0, 15m]", ttl)
	}
}

func TestVerifySessionTokenRejectsWrongSecret(t *testing.T) {
	signed, err := NewIssuer("secret-a", 15).IssueSessionToken(uuid.New(), "a@b.com", account.RoleCustomer)
	if err != nil {
		t.Fatalf("IssueSessionToken() error = %v", err)
	}

	if _, err := NewIssuer("secret-b", 15).VerifySessionToken(signed); !errors.Is(err, appErrors.ErrInvalidToken) {
		t.Errorf("VerifySessionToken() error = %v, want ErrInvalidToken", err)
	}
}

func TestVerifySessionTokenRejectsGarbage(t *testing.T) {
	issuer := NewIssuer("test-secret", 15)

	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := issuer.VerifySessionToken(tok); !errors.Is(err, appErrors.ErrInvalidToken) {
			t.Errorf("VerifySessionToken(%q) error = %v, want ErrInvalidToken", tok, err)
		}
	}
}

func TestVerifySessionTokenRejectsExpired(t *testing.T) {
	issuer := NewIssuer("test-secret", -1)

	signed, err := issuer.IssueSessionToken(uuid.New(), "a@b.com", account.RoleCustomer)
	if err != nil {
		t.Fatalf("IssueSessionToken() error = %v", err)
	}

	if _, err := issuer.VerifySessionToken(signed); !errors.Is(err, appErrors.ErrInvalidToken) {
		t.Errorf("VerifySessionToken() error = %v, want ErrInvalidToken", err)
	}

	// An expired token with a genuine signature still verifies when expiry is
	// skipped, so it can be revoked after the fact.
	claims, err := issuer.VerifySessionTokenSkipExpiry(signed)
	if err != nil {
		t.Fatalf("VerifySessionTokenSkipExpiry() error = %v", err)
	}
	if claims.Email != "a@b.com" {
		t.Errorf("Email = %q, want %q", claims.Email, "a@b.com")
	}
}

func TestVerifySessionTokenSkipExpiryStillChecksSignature(t *testing.T) {
	signed, err := NewIssuer("secret-a", -1).IssueSessionToken(uuid.New(), "a@b.com", account.RoleCustomer)
	if err != nil {
		t.Fatalf("IssueSessionToken() error = %v", err)
	}

	if _, err := NewIssuer("secret-b", -1).VerifySessionTokenSkipExpiry(signed); !errors.Is(err, appErrors.ErrInvalidToken) {
		t.Errorf("VerifySessionTokenSkipExpiry() error = %v, want ErrInvalidToken", err)
	}
}

func TestNewSingleUseToken(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		tok, err := NewSingleUseToken()
		if err != nil {
			t.Fatalf("NewSingleUseToken() error = %v", err)
		}
		if len(tok) != 24 {
			t.Fatalf("token length = %d, want 24", len(tok))
		}
		if seen[tok] {
			t.Fatalf("duplicate token generated: %s", tok)
		}
		seen[tok] = true
	}
}
