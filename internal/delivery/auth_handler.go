package delivery

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nirjapatel2005/Tribal-Craft/internal/domain"
	"github.com/nirjapatel2005/Tribal-Craft/internal/middleware"
	"github.com/sirupsen/logrus"
)

type AuthHandler struct {
	useCase domain.UserUseCase
	guard   *middleware.Guard
	log     *logrus.Logger
}

func NewAuthHandler(uc domain.UserUseCase, guard *middleware.Guard, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		useCase: uc,
		guard:   guard,
		log:     logger,
	}
}

func (h *AuthHandler) RegisterRoutes(router gin.IRouter) {
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/signup", h.Signup)
		authGroup.POST("/login", h.Login)
		authGroup.GET("/me", h.guard.Require(domain.RoleUser), h.Me)
	}
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var in domain.RegisterInput
	if !bindJSON(c, h.log, &in, "register user") {
		return
	}

	user, err := h.useCase.Register(c.Request.Context(), in)
	if err != nil {
		failWith(c, h.log, err, "register user")
		return
	}

	h.log.Infof("User registered successfully: ID %s", user.ID)
	SuccessResponse(c, http.StatusCreated, "User registered successfully", user)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var in domain.LoginInput
	if !bindJSON(c, h.log, &in, "log in") {
		return
	}

	result, err := h.useCase.Login(c.Request.Context(), in)
	if err != nil {
		failWith(c, h.log, err, "log in")
		return
	}

	SuccessResponse(c, http.StatusOK, "Login successful", result)
}

func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		ErrorResponse(c, http.StatusUnauthorized, "User identification missing")
		return
	}
	SuccessResponse(c, http.StatusOK, "Profile retrieved successfully", user)
}
