package delivery

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nirjapatel2005/Tribal-Craft/internal/domain"
	"github.com/nirjapatel2005/Tribal-Craft/internal/middleware"
	"github.com/sirupsen/logrus"
)

type ContactHandler struct {
	useCase domain.ContactUseCase
	guard   *middleware.Guard
	log     *logrus.Logger
}

func NewContactHandler(uc domain.ContactUseCase, guard *middleware.Guard, logger *logrus.Logger) *ContactHandler {
	return &ContactHandler{
		useCase: uc,
		guard:   guard,
		log:     logger,
	}
}

func (h *ContactHandler) RegisterRoutes(router gin.IRouter) {
	contact := router.Group("/contact")
	{
		contact.POST("/submit", h.Submit)

		admin := contact.Group("/admin/submissions", h.guard.Require(domain.RoleAdmin))
		admin.GET("", h.ListSubmissions)
		admin.PUT("/:id/status", h.UpdateStatus)
		admin.DELETE("/:id", h.DeleteSubmission)
	}
}

func (h *ContactHandler) Submit(c *gin.Context) {
	var in domain.ContactInput
	if !bindJSON(c, h.log, &in, "submit contact form") {
		return
	}

	contact, err := h.useCase.Submit(c.Request.Context(), in)
	if err != nil {
		failWith(c, h.log, err, "submit contact form")
		return
	}

	h.log.Infof("Contact submission %s received", contact.ID)
	SuccessResponse(c, http.StatusCreated, "Thank you for your message! We will get back to you soon.", contact)
}

func (h *ContactHandler) ListSubmissions(c *gin.Context) {
	contacts, err := h.useCase.ListAll(c.Request.Context())
	if err != nil {
		failWith(c, h.log, err, "list contact submissions")
		return
	}
	if len(contacts) == 0 {
		SuccessResponse(c, http.StatusOK, "No submissions found", []*domain.Contact{})
		return
	}
	SuccessResponse(c, http.StatusOK, "Submissions retrieved successfully", contacts)
}

func (h *ContactHandler) UpdateStatus(c *gin.Context) {
	id := c.Param("id")
	var update domain.ContactStatusUpdate
	if !bindJSON(c, h.log, &update, "update contact status") {
		return
	}

	contact, err := h.useCase.UpdateStatus(c.Request.Context(), id, update)
	if err != nil {
		failWith(c, h.log, err, "update contact submission "+id)
		return
	}
	SuccessResponse(c, http.StatusOK, "Submission updated successfully", contact)
}

func (h *ContactHandler) DeleteSubmission(c *gin.Context) {
	id := c.Param("id")
	if err := h.useCase.Delete(c.Request.Context(), id); err != nil {
		failWith(c, h.log, err, "delete contact submission "+id)
		return
	}

	h.log.Infof("Contact submission %s deleted", id)
	SuccessResponse(c, http.StatusOK, "Submission deleted successfully", nil)
}
