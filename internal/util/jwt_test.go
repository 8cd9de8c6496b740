package util

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestJWTManagerGenerateAndParse(t *testing.T) {
	manager := NewJWTManager("top-secret", time.Hour)

	userID := uuid.New()
	token, expiresAt, err := manager.Generate(userID, "user@example.com", "Test User")
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token to be non-empty")
	}
	if expiresAt.Before(time.Now()) {
		t.Fatalf("expected expiry in the future")
	}

	claims, err := manager.Parse(token)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if claims.UserID != userID {
		t.Fatalf("expected user id %s, got %s", userID, claims.UserID)
	}
	if claims.Email != "user@example.com" {
		t.Fatalf("expected email claim, got %q", claims.Email)
	}
	if claims.Name != "Test User" {
		t.Fatalf("expected name claim, got %q", claims.Name)
	}
	if claims.IssuedAt == nil {
		t.Fatalf("expected issued-at claim to be set")
	}
}

func TestJWTManagerParseExpiredToken(t *testing.T) {
	manager := NewJWTManager("secret", time.Millisecond)
	token, _, err := manager.Generate(uuid.New(), "user@example.com", "Test User")
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	time.Sleep(2 * time.Millisecond)

	if _, err := manager.Parse(token); err == nil {
		t.Fatalf("expected parse error for expired token")
	}
}

func TestJWTManagerParseWrongSecret(t *testing.T) {
	manager := NewJWTManager("secret-a", time.Hour)
	token, _, err := manager.Generate(uuid.New(), "user@example.com", "Test User")
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	other := NewJWTManager("secret-b", time.Hour)
	if _, err := other.Parse(token); err == nil {
		t.Fatalf("expected parse error for token signed with a different secret")
	}
}

func TestJWTManagerParseMalformedToken(t *testing.T) {
	manager := NewJWTManager("secret", time.Hour)
	if _, err := manager.Parse("not-a-token"); err == nil {
		t.Fatalf("expected parse error for malformed token")
	}
}
