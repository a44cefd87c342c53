package middleware

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nirjapatel2005/Tribal-Craft/internal/auth"
	"github.com/nirjapatel2005/Tribal-Craft/internal/domain"
	"github.com/nirjapatel2005/Tribal-Craft/internal/repository"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type guardFixture struct {
	router *gin.Engine
	tokens *auth.JWTService
	users  domain.UserRepository
}

func newGuardFixture(t *testing.T) *guardFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	f := &guardFixture{
		tokens: auth.NewJWTService("middleware-secret", time.Hour),
		users:  repository.NewMemoryUserRepository(logger),
	}
	guard := NewGuard(f.tokens, f.users, logger)

	f.router = gin.New()
	f.router.Use(RequestID(), RequestLogger(logger))
	whoami := func(c *gin.Context) {
		user, ok := CurrentUser(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"id": user.ID})
	}
	f.router.GET("/user", guard.Require(domain.RoleUser), whoami)
	f.router.GET("/admin", guard.Require(domain.RoleAdmin), whoami)
	return f
}

func (f *guardFixture) addUser(t *testing.T, id string, role domain.Role) string {
	t.Helper()
	user := &domain.User{ID: id, Username: id, Email: id + "@example.com", Role: role}
	require.NoError(t, f.users.Create(context.Background(), user))
	token, _, err := f.tokens.Issue(user)
	require.NoError(t, err)
	return token
}

func (f *guardFixture) get(path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func failMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Status  string
		Message string
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Fail", body.Status)
	return body.Message
}

func TestGuard_RejectsMissingAndMalformedTokens(t *testing.T) {
	f := newGuardFixture(t)

	rec := f.get("/user", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Authorization header required", failMessage(t, rec))

	rec = f.get("/user", "Token abc")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = f.get("/user", "Bearer not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid token", failMessage(t, rec))
}

func TestGuard_UnknownSubject(t *testing.T) {
	f := newGuardFixture(t)
	token, _, err := f.tokens.Issue(&domain.User{ID: "ghost", Role: domain.RoleUser})
	require.NoError(t, err)

	rec := f.get("/user", "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGuard_Roles(t *testing.T) {
	f := newGuardFixture(t)
	userToken := f.addUser(t, "u1", domain.RoleUser)
	adminToken := f.addUser(t, "a1", domain.RoleAdmin)

	rec := f.get("/user", "Bearer "+userToken)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":"u1"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))

	rec = f.get("/admin", "Bearer "+userToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = f.get("/admin", "bearer "+adminToken)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = f.get("/user", "Bearer "+adminToken)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequestID_KeepsCallerValue(t *testing.T) {
	f := newGuardFixture(t)
	req := httptest.NewRequest(http.MethodGet, "/user", nil)
	req.Header.Set(RequestIDHeader, "trace-123")
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	assert.Equal(t, "trace-123", rec.Header().Get(RequestIDHeader))
}
