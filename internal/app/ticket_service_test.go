package app

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/form3tech-oss/jwt-go"
)

func TestTicketServiceIssueAndVerify(t *testing.T) {
	svc := NewTicketService("test-secret", "shithead", time.Hour)

	tokenString, err := svc.Issue("game-1", "user123", TicketRoleSeat)
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}

	claims := parseTicketClaims(t, tokenString, "test-secret")
	if got := stringClaim(t, claims, "gid"); got != "game-1" {
		t.Fatalf("gid = %s, want game-1", got)
	}
	if got := stringClaim(t, claims, "sub"); got != "user123" {
		t.Fatalf("sub = %s, want user123", got)
	}
	if got := stringClaim(t, claims, "role"); got != TicketRoleSeat {
		t.Fatalf("role = %s, want %s", got, TicketRoleSeat)
	}
	if stringClaim(t, claims, "jti") == "" {
		t.Fatal("jti is empty")
	}

	verified, err := svc.Verify(tokenString)
	if err != nil {
		t.Fatalf("verify error: %v", err)
	}
	if verified.GameID != "game-1" || verified.Subject != "user123" || verified.Role != TicketRoleSeat {
		t.Fatalf("unexpected claims: %+v", verified)
	}
	if !verified.ExpiresAt.After(time.Now()) {
		t.Fatalf("expiry should be in the future: %v", verified.ExpiresAt)
	}
}

func TestTicketServiceRejects(t *testing.T) {
	svc := NewTicketService("test-secret", "shithead", time.Hour)
	good, err := svc.Issue("game-1", "user123", TicketRoleSpectator)
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}

	expired := NewTicketService("test-secret", "shithead", time.Minute)
	expired.now = func() time.Time { return time.Now().Add(-time.Hour) }
	old, _ := expired.Issue("game-1", "user123", TicketRoleSeat)

	otherIssuer := NewTicketService("test-secret", "someone-else", time.Hour)
	foreign, _ := otherIssuer.Issue("game-1", "user123", TicketRoleSeat)

	otherKey := NewTicketService("other-secret", "shithead", time.Hour)
	forged, _ := otherKey.Issue("game-1", "user123", TicketRoleSeat)

	tests := []struct {
		name  string
		token string
	}{
		{"expired", old},
		{"wrong issuer", foreign},
		{"wrong key", forged},
		{"garbage", "not-a-token"},
		{"tampered", good[:len(good)-2] + "xx"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Verify(tt.token); !errors.Is(err, ErrInvalidTicket) {
				t.Fatalf("expected ErrInvalidTicket, got %v", err)
			}
		})
	}
}

func TestTicketServiceIssueValidation(t *testing.T) {
	svc := NewTicketService("secret", "issuer", time.Hour)
	if _, err := svc.Issue("game", "user", "dealer"); err == nil {
		t.Fatal("expected error for unsupported role")
	}
	if _, err := svc.Issue("", "user", TicketRoleSeat); err == nil {
		t.Fatal("expected error for empty game id")
	}
	if _, err := NewTicketService("", "issuer", time.Hour).Issue("game", "user", TicketRoleSeat); err == nil {
		t.Fatal("expected error for missing ticket config")
	}
}

func parseTicketClaims(t *testing.T, tokenString, secret string) jwt.MapClaims {
	t.Helper()

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		t.Fatalf("parse token error: %v", err)
	}
	if !token.Valid {
		t.Fatal("token is invalid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatal("claims are not map claims")
	}
	return claims
}

func stringClaim(t *testing.T, claims jwt.MapClaims, name string) string {
	t.Helper()
	value, ok := claims[name]
	if !ok {
		t.Fatalf("missing %s claim", name)
	}
	str, ok := value.(string)
	if !ok {
		t.Fatalf("%s claim is not a string", name)
	}
	return str
}
