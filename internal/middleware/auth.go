package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/nirjapatel2005/Tribal-Craft/internal/domain"
	"github.com/sirupsen/logrus"
)

const currentUserKey = "currentUser"

// Guard authenticates bearer tokens and loads the caller before a handler runs.
type Guard struct {
	tokens domain.TokenService
	users  domain.UserRepository
	log    *logrus.Logger
}

func NewGuard(tokens domain.TokenService, users domain.UserRepository, logger *logrus.Logger) *Guard {
	return &Guard{tokens: tokens, users: users, log: logger}
}

// Require admits requests whose token resolves to a stored user holding role. The role is read from
// the stored user, not from the token.
func (g *Guard) Require(role domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			g.log.Warn("Middleware: Authorization header is missing")
			abort(c, http.StatusUnauthorized, "Authorization header required")
			return
		}

		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			g.log.Warn("Middleware: Invalid Authorization header format")
			abort(c, http.StatusUnauthorized, "Invalid Authorization header format")
			return
		}

		claims, err := g.tokens.Verify(parts[1])
		if err != nil {
			g.log.Warnf("Middleware: Token rejected: %v", err)
			abort(c, http.StatusUnauthorized, domain.PublicMessage(err))
			return
		}

		user, err := g.users.GetByID(c.Request.Context(), claims.UserID)
		if errors.Is(err, domain.ErrNotFound) {
			g.log.Warnf("Middleware: Token subject %s no longer exists", claims.UserID)
			abort(c, http.StatusUnauthorized, "user not found")
			return
		}
		if err != nil {
			g.log.Errorf("Middleware: Failed to load user %s: %v", claims.UserID, err)
			abort(c, http.StatusInternalServerError, domain.PublicMessage(err))
			return
		}

		if !user.HasRole(role) {
			g.log.Warnf("Middleware: User %s with role %s denied %s %s", user.ID, user.Role, c.Request.Method, c.FullPath())
			abort(c, http.StatusForbidden, "access denied. "+string(role)+" role required")
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the user stored by Require.
func CurrentUser(c *gin.Context) (*domain.User, bool) {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*domain.User)
	return user, ok
}

func abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"Status": "Fail", "Message": message})
}
