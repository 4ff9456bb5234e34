package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/form3tech-oss/jwt-go"
	"github.com/google/uuid"
)

// ErrInvalidTicket is returned for tickets that fail signature, issuer or expiry checks.
var ErrInvalidTicket = errors.New("invalid ticket")

const (
	TicketRoleSeat      = "seat"
	TicketRoleSpectator = "spectator"
)

// TicketClaims is what a verified ticket grants: which game, which audience
// projection, and until when.
type TicketClaims struct {
	GameID    string
	Subject   string
	Role      string
	ExpiresAt time.Time
}

// TicketService signs short-lived HS256 tickets that let a client fetch the
// projection for its seat without a session.
type TicketService struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewTicketService(secret, issuer string, ttl time.Duration) *TicketService {
	return &TicketService{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue signs a ticket for subject in gameID.
func (s *TicketService) Issue(gameID, subject, role string) (string, error) {
	if s == nil {
		return "", fmt.Errorf("ticket service is nil")
	}
	if gameID == "" || subject == "" {
		return "", fmt.Errorf("game id and subject are required")
	}
	if len(s.secret) == 0 || s.issuer == "" {
		return "", fmt.Errorf("ticket config is incomplete")
	}
	switch role {
	case TicketRoleSeat, TicketRoleSpectator:
	default:
		return "", fmt.Errorf("unsupported ticket role: %s", role)
	}

	now := s.now()
	claims := jwt.MapClaims{
		"iss":  s.issuer,
		"sub":  subject,
		"gid":  gameID,
		"role": role,
		"iat":  now.Unix(),
		"exp":  now.Add(s.ttl).Unix(),
		"jti":  uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify checks signature, issuer and expiry and returns the ticket's claims.
func (s *TicketService) Verify(raw string) (TicketClaims, error) {
	token, err := jwt.Parse(raw, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return TicketClaims{}, fmt.Errorf("%w: %v", ErrInvalidTicket, err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return TicketClaims{}, ErrInvalidTicket
	}
	if !claims.VerifyIssuer(s.issuer, true) {
		return TicketClaims{}, fmt.Errorf("%w: wrong issuer", ErrInvalidTicket)
	}

	out := TicketClaims{}
	out.GameID, _ = claims["gid"].(string)
	out.Subject, _ = claims["sub"].(string)
	out.Role, _ = claims["role"].(string)
	if exp, ok := claims["exp"].(float64); ok {
		out.ExpiresAt = time.Unix(int64(exp), 0)
	}
	if out.GameID == "" || out.Subject == "" {
		return TicketClaims{}, fmt.Errorf("%w: missing claims", ErrInvalidTicket)
	}
	return out, nil
}
