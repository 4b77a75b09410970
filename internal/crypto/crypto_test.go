package crypto

import (
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret-with-enough-length"

func TestJWTRoundTrip(t *testing.T) {
	tokens := NewJWT(testSecret, time.Hour)

	tok, err := tokens.Issue("user-1", "jane@example.com")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	claims, err := tokens.Verify(tok)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if claims.UserID != "user-1" || claims.Email != "jane@example.com" {
		t.Fatalf("claims mismatch: %+v", claims)
	}
}

func TestJWTRejectsExpired(t *testing.T) {
	tokens := NewJWT(testSecret, time.Hour)
	issuedAt := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tokens.now = func() time.Time { return issuedAt }

	tok, err := tokens.Issue("user-1", "jane@example.com")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	tokens.now = func() time.Time { return issuedAt.Add(2 * time.Hour) }
	if _, err := tokens.Verify(tok); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestJWTRejectsForeignSecret(t *testing.T) {
	tok, err := NewJWT("another-secret-of-enough-length", time.Hour).Issue("user-1", "a@b.c")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	if _, err := NewJWT(testSecret, time.Hour).Verify(tok); err == nil {
		t.Fatal("expected signature mismatch")
	}
}

func TestJWTRejectsTamperedPayload(t *testing.T) {
	tokens := NewJWT(testSecret, time.Hour)
	tok, err := tokens.Issue("user-1", "a@b.c")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	parts := strings.Split(tok, ".")
	parts[1] = parts[1] + "x"
	if _, err := tokens.Verify(strings.Join(parts, ".")); err == nil {
		t.Fatal("expected tampered token to be rejected")
	}
}

func TestBcryptHasher(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("secret1")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if hash == "secret1" {
		t.Fatal("hash must not equal the password")
	}
	if !h.Compare(hash, "secret1") {
		t.Fatal("expected matching password")
	}
	if h.Compare(hash, "secret2") {
		t.Fatal("expected mismatch for wrong password")
	}
	if h.Compare("not-a-hash", "secret1") {
		t.Fatal("expected mismatch for malformed hash")
	}
}
