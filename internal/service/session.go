package service

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/veloraid/velora/internal/domain"
)

// SessionService issues and validates signed session tokens. Expiry is
// absolute from issuance; an active session stays alive because the
// session middleware exchanges every valid token for a freshly issued one.
type SessionService struct {
	secret []byte
	ttl    time.Duration
}

// NewSessionService creates a SessionService signing with the given secret.
func NewSessionService(secret string, ttl time.Duration) *SessionService {
	return &SessionService{secret: []byte(secret), ttl: ttl}
}

// Issue converts a verified identity into a signed session token.
func (s *SessionService) Issue(identity domain.Identity) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, enrichClaims(identity, time.Now(), s.ttl))
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Refresh re-issues a token from existing claims with a fresh expiry.
func (s *SessionService) Refresh(claims *domain.SessionClaims) (string, error) {
	return s.Issue(domain.Identity{
		ID:    claims.UserID,
		Email: claims.Email,
		Name:  claims.Name,
		Role:  claims.Role,
	})
}

// Validate parses and verifies a session token. Any decode or verification
// failure degrades to ErrUnauthorized; it never panics into callers.
func (s *SessionService) Validate(tokenString string) (*domain.SessionClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, domain.ErrUnauthorized
	}

	return projectClaims(mapClaims)
}

// enrichClaims builds token claims from a verified identity. The role
// claim defaults to USER when the identity carries none.
func enrichClaims(identity domain.Identity, now time.Time, ttl time.Duration) jwt.MapClaims {
	role := identity.Role
	if role == "" {
		role = domain.RoleUser
	}
	return jwt.MapClaims{
		"sub":   strconv.FormatInt(identity.ID, 10),
		"email": identity.Email,
		"name":  identity.Name,
		"role":  string(role),
		"iat":   now.Unix(),
		"exp":   now.Add(ttl).Unix(),
	}
}

// projectClaims maps decoded token claims onto the session view shape.
func projectClaims(claims jwt.MapClaims) (*domain.SessionClaims, error) {
	sub, err := claims.GetSubject()
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	email, _ := claims["email"].(string)
	name, _ := claims["name"].(string)
	role, _ := claims["role"].(string)
	if role == "" {
		role = string(domain.RoleUser)
	}

	return &domain.SessionClaims{
		UserID: userID,
		Email:  email,
		Name:   name,
		Role:   domain.Role(role),
	}, nil
}
