// Package auth issues and verifies the bearer tokens carried by signed-in users.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/nirjapatel2005/Tribal-Craft/internal/domain"
)

const issuer = "tribalcraft"

var _ domain.TokenService = (*JWTService)(nil)

type claims struct {
	Role domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// JWTService signs HS256 tokens whose subject is the user id.
type JWTService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewJWTService(secret string, ttl time.Duration) *JWTService {
	return &JWTService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (s *JWTService) Issue(user *domain.User) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

func (s *JWTService) Verify(raw string) (*domain.TokenClaims, error) {
	parsed := &claims{}
	_, err := jwt.ParseWithClaims(raw, parsed, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.AuthError("token has expired")
		}
		return nil, domain.AuthError("invalid token")
	}
	if parsed.Subject == "" {
		return nil, domain.AuthError("invalid token")
	}
	return &domain.TokenClaims{
		UserID:    parsed.Subject,
		Role:      parsed.Role,
		ExpiresAt: parsed.ExpiresAt.Time,
	}, nil
}
