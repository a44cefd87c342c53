package delivery

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nirjapatel2005/Tribal-Craft/internal/domain"
	"github.com/nirjapatel2005/Tribal-Craft/internal/middleware"
	"github.com/nirjapatel2005/Tribal-Craft/internal/storage"
	"github.com/sirupsen/logrus"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type RouterDeps struct {
	Users    domain.UserUseCase
	Carts    domain.CartUseCase
	Orders   domain.OrderUseCase
	Crafts   domain.CraftUseCase
	Contacts domain.ContactUseCase
	Guard    *middleware.Guard
	Store    Pinger

	UploadDir      string
	UploadMaxBytes int64
	Logger         *logrus.Logger
}

// NewRouter mounts every API route under /api and serves stored images under /uploads.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()
	router.RedirectTrailingSlash = false
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger(deps.Logger))

	if deps.UploadDir != "" {
		router.Static(storage.URLPrefix, deps.UploadDir)
	}

	api := router.Group("/api")
	api.GET("/health", healthHandler(deps.Store, deps.Logger))

	NewAuthHandler(deps.Users, deps.Guard, deps.Logger).RegisterRoutes(api)
	NewCartHandler(deps.Carts, deps.Guard, deps.Logger).RegisterRoutes(api)
	NewCheckoutHandler(deps.Orders, deps.Guard, deps.Logger).RegisterRoutes(api)
	NewCraftHandler(deps.Crafts, deps.Guard, deps.UploadMaxBytes, deps.Logger).RegisterRoutes(api)
	NewContactHandler(deps.Contacts, deps.Guard, deps.Logger).RegisterRoutes(api)

	router.NoRoute(func(c *gin.Context) {
		ErrorResponse(c, http.StatusNotFound, "Route not found")
	})
	return router
}

func healthHandler(store Pinger, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			log.Errorf("Health check failed: %v", err)
			ErrorResponse(c, http.StatusServiceUnavailable, "Store unavailable")
			return
		}
		SuccessResponse(c, http.StatusOK, "Tribal Craft API is running", nil)
	}
}
