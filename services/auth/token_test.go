package auth

import (
	"testing"
	"time"
)

func TestJWTIssuerRoundTrip(t *testing.T) {
	issuer := NewJWTIssuer("test-secret", time.Hour)

	token, err := issuer.Issue(Identity{CustomerID: "cust-1", MobileNumber: "+919876543210"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	identity, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if identity.CustomerID != "cust-1" || identity.MobileNumber != "+919876543210" {
		t.Fatalf("unexpected identity %+v", identity)
	}
}

func TestJWTIssuerRejectsForeignSignature(t *testing.T) {
	issuer := NewJWTIssuer("test-secret", time.Hour)
	other := NewJWTIssuer("different-secret", time.Hour)

	token, err := other.Issue(Identity{CustomerID: "cust-1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := issuer.Verify(token); err == nil {
		t.Fatal("expected verification to fail for a foreign signature")
	}
}

func TestJWTIssuerRejectsExpiredToken(t *testing.T) {
	issuer := NewJWTIssuer("test-secret", -time.Minute)

	token, err := issuer.Issue(Identity{CustomerID: "cust-1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := issuer.Verify(token); err == nil {
		t.Fatal("expected verification to fail for an expired token")
	}
}

func TestJWTIssuerRejectsGarbage(t *testing.T) {
	issuer := NewJWTIssuer("test-secret", time.Hour)
	if _, err := issuer.Verify("not-a-token"); err == nil {
		t.Fatal("expected verification to fail")
	}
}
