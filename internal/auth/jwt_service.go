package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const (
	// VerificationTokenExpiry is the lifetime of email verification tokens.
	VerificationTokenExpiry = 15 * time.Minute
	// SessionTokenExpiry is the lifetime of tokens issued at login.
	SessionTokenExpiry = 7 * 24 * time.Hour
)

// ErrInvalidToken is returned for any token that fails signature, format or expiry checks.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims represents JWT claims.
type Claims struct {
	UserID uuid.UUID `json:"userId"`
	Email  string    `json:"email"`
	jwt.RegisteredClaims
}

// JWTService handles JWT token generation and validation.
type JWTService struct {
	secret []byte
	now    func() time.Time
}

// NewJWTService creates a new JWT service with the given secret.
func NewJWTService(secret string) *JWTService {
	return &JWTService{
		secret: []byte(secret),
		now:    time.Now,
	}
}

// WithClock returns a copy of s that stamps issued tokens using now.
func (s *JWTService) WithClock(now func() time.Time) *JWTService {
	return &JWTService{secret: s.secret, now: now}
}

// Issue signs a token for the subject that expires ttl from now.
func (s *JWTService) Issue(subjectID uuid.UUID, email string, ttl time.Duration) (string, error) {
	issuedAt := s.now()
	claims := &Claims{
		UserID: subjectID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// IssueVerification issues the short-lived token embedded in verification links.
func (s *JWTService) IssueVerification(subjectID uuid.UUID, email string) (string, error) {
	return s.Issue(subjectID, email, VerificationTokenExpiry)
}

// IssueSession issues the token returned at login.
func (s *JWTService) IssueSession(subjectID uuid.UUID, email string) (string, error) {
	return s.Issue(subjectID, email, SessionTokenExpiry)
}

// Verify validates a JWT token and returns the claims. Every failure is reported as
// ErrInvalidToken.
func (s *JWTService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == uuid.Nil || claims.ExpiresAt == nil {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
