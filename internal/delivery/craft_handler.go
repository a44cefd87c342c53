package delivery

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nirjapatel2005/Tribal-Craft/internal/domain"
	"github.com/nirjapatel2005/Tribal-Craft/internal/middleware"
	"github.com/sirupsen/logrus"
)

// formOverhead is the allowance for the text fields of a sell form on top of the image itself.
const formOverhead = 1 << 20

type CraftHandler struct {
	useCase        domain.CraftUseCase
	guard          *middleware.Guard
	uploadMaxBytes int64
	log            *logrus.Logger
}

func NewCraftHandler(uc domain.CraftUseCase, guard *middleware.Guard, uploadMaxBytes int64, logger *logrus.Logger) *CraftHandler {
	return &CraftHandler{
		useCase:        uc,
		guard:          guard,
		uploadMaxBytes: uploadMaxBytes,
		log:            logger,
	}
}

func (h *CraftHandler) RegisterRoutes(router gin.IRouter) {
	admin := h.guard.Require(domain.RoleAdmin)

	crafts := router.Group("/crafts")
	{
		crafts.GET("/approved", h.ListApproved)
		crafts.GET("/pending", admin, h.ListPending)
		crafts.POST("/sell", h.guard.Require(domain.RoleUser), h.Sell)
		crafts.PUT("/approve/:id", admin, h.Approve)
		crafts.PUT("/reject/:id", admin, h.Reject)
	}
}

func (h *CraftHandler) Sell(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.uploadMaxBytes+formOverhead)

	var in domain.CraftSubmission
	if err := c.ShouldBind(&in); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.log.Warnf("Sell request from user %s exceeded %d bytes", userID, tooLarge.Limit)
			ErrorResponse(c, http.StatusBadRequest, "image is too large")
			return
		}
		h.log.Warnf("Failed to bind sell form for user %s: %v", userID, err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	var image *domain.ImageUpload
	header, err := c.FormFile("image")
	switch {
	case errors.Is(err, http.ErrMissingFile):
		// reported as a validation error by Submit
	case err != nil:
		h.log.Warnf("Failed to read image for user %s: %v", userID, err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid image upload")
		return
	default:
		var file multipart.File
		file, err = header.Open()
		if err != nil {
			failWith(c, h.log, domain.StorageError(err, "could not read image"), "open uploaded image")
			return
		}
		defer file.Close()
		image = &domain.ImageUpload{Filename: header.Filename, Size: header.Size, Content: file}
	}

	craft, err := h.useCase.Submit(c.Request.Context(), userID, in, image)
	if err != nil {
		failWith(c, h.log, err, "submit craft for user "+userID)
		return
	}

	h.log.Infof("Craft %s submitted by user %s", craft.ID, userID)
	SuccessResponse(c, http.StatusCreated, "Craft submitted successfully and is awaiting approval", craft)
}

func (h *CraftHandler) ListApproved(c *gin.Context) {
	h.list(c, h.useCase.ListApproved, "approved")
}

func (h *CraftHandler) ListPending(c *gin.Context) {
	h.list(c, h.useCase.ListPending, "pending")
}

func (h *CraftHandler) list(c *gin.Context, fetch func(ctx context.Context) ([]*domain.Craft, error), label string) {
	crafts, err := fetch(c.Request.Context())
	if err != nil {
		failWith(c, h.log, err, "list "+label+" crafts")
		return
	}

	h.log.Infof("Retrieved %d %s crafts", len(crafts), label)
	if len(crafts) == 0 {
		SuccessResponse(c, http.StatusOK, "No crafts found", []*domain.Craft{})
		return
	}
	SuccessResponse(c, http.StatusOK, "Crafts retrieved successfully", crafts)
}

func (h *CraftHandler) Approve(c *gin.Context) {
	h.moderate(c, h.useCase.Approve, "approved")
}

func (h *CraftHandler) Reject(c *gin.Context) {
	h.moderate(c, h.useCase.Reject, "rejected")
}

func (h *CraftHandler) moderate(c *gin.Context, decide func(ctx context.Context, id string) (*domain.Craft, error), label string) {
	id := c.Param("id")
	craft, err := decide(c.Request.Context(), id)
	if err != nil {
		failWith(c, h.log, err, "moderate craft "+id)
		return
	}

	h.log.Infof("Craft %s %s", id, label)
	SuccessResponse(c, http.StatusOK, "Craft "+label+" successfully", craft)
}
