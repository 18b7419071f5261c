package auth

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Minute)

	token, err := issuer.Issue(42)
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}

	claims, err := issuer.Parse(token)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if claims.UserID != 42 {
		t.Fatalf("unexpected user id %d", claims.UserID)
	}
}

func TestTokenExpired(t *testing.T) {
	issuer := NewTokenIssuer("secret", -time.Minute)

	token, err := issuer.Issue(1)
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}
	if _, err := issuer.Parse(token); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := NewTokenIssuer("secret-a", time.Minute).Issue(1)
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}
	if _, err := NewTokenIssuer("secret-b", time.Minute).Parse(token); err == nil {
		t.Fatal("expected bad signature to be rejected")
	}
}

func TestTokenGarbage(t *testing.T) {
	if _, err := NewTokenIssuer("secret", time.Minute).Parse("not-a-token"); err == nil {
		t.Fatal("expected malformed token to be rejected")
	}
}
