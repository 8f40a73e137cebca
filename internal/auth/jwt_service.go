package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	apperrors "chronotask/internal/errors"
)

// ResetSessionTTL bounds the session issued right after a password reset.
// Deliberately shorter than a normal login session.
const ResetSessionTTL = 10 * time.Minute

// SessionCookieName is the HTTP-only cookie carrying the session token.
const SessionCookieName = "jwt"

// SessionClaims are the claims of a session token.
type SessionClaims struct {
	UserID uint `json:"user_id"`
	jwt.RegisteredClaims
}

// ConfirmationClaims are the claims of an email confirmation token. The email
// being confirmed travels as the subject.
type ConfirmationClaims struct {
	jwt.RegisteredClaims
}

// JWTService signs and verifies session and confirmation tokens.
type JWTService struct {
	secret []byte
}

// NewJWTService creates a JWT service. An empty secret is a configuration
// error; callers must treat it as fatal.
func NewJWTService(secret string) (*JWTService, error) {
	if secret == "" {
		return nil, errors.New("jwt signing secret is not configured")
	}
	return &JWTService{secret: []byte(secret)}, nil
}

// GenerateSessionToken signs a session token for the user, valid for ttl.
func (s *JWTService) GenerateSessionToken(userID uint, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateSessionToken verifies signature and expiry and returns the claims.
func (s *JWTService) ValidateSessionToken(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	if err := s.parse(tokenString, claims); err != nil {
		return nil, err
	}
	if claims.UserID == 0 {
		return nil, fmt.Errorf("%w: missing user id", apperrors.ErrInvalidToken)
	}
	return claims, nil
}

// GenerateConfirmationToken signs a token proving ownership of the email.
func (s *JWTService) GenerateConfirmationToken(email string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &ConfirmationClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateConfirmationToken verifies a confirmation token and returns the
// email it was issued for.
func (s *JWTService) ValidateConfirmationToken(tokenString string) (string, error) {
	claims := &ConfirmationClaims{}
	if err := s.parse(tokenString, claims); err != nil {
		return "", err
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: missing subject", apperrors.ErrInvalidToken)
	}
	return claims.Subject, nil
}

func (s *JWTService) parse(tokenString string, claims jwt.Claims) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrInvalidToken, err)
	}
	if !token.Valid {
		return apperrors.ErrInvalidToken
	}
	return nil
}
