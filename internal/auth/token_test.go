package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/nirjapatel2005/Tribal-Craft/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueVerify(t *testing.T) {
	s := NewJWTService("secret", time.Hour)
	token, exp, err := s.Issue(&domain.User{ID: "u1", Role: domain.RoleAdmin})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := s.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
}

func TestVerify_Expired(t *testing.T) {
	s := NewJWTService("secret", time.Minute)
	s.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, _, err := s.Issue(&domain.User{ID: "u1", Role: domain.RoleUser})
	require.NoError(t, err)

	s.now = time.Now
	_, err = s.Verify(token)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
	assert.Contains(t, err.Error(), "expired")
}

func TestVerify_Rejects(t *testing.T) {
	s := NewJWTService("secret", time.Hour)
	other := NewJWTService("other-secret", time.Hour)
	foreign, _, err := other.Issue(&domain.User{ID: "u1"})
	require.NoError(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject: "u1", Issuer: issuer, ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noExp := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "u1", Issuer: issuer})
	noExpToken, err := noExp.SignedString([]byte("secret"))
	require.NoError(t, err)

	for name, token := range map[string]string{
		"garbage":      "not.a.token",
		"wrong secret": foreign,
		"alg none":     unsigned,
		"no expiry":    noExpToken,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := s.Verify(token)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrUnauthorized))
		})
	}
}
