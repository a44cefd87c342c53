package delivery

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nirjapatel2005/Tribal-Craft/internal/domain"
	"github.com/nirjapatel2005/Tribal-Craft/internal/middleware"
	"github.com/sirupsen/logrus"
)

type CartHandler struct {
	useCase domain.CartUseCase
	guard   *middleware.Guard
	log     *logrus.Logger
}

func NewCartHandler(uc domain.CartUseCase, guard *middleware.Guard, logger *logrus.Logger) *CartHandler {
	return &CartHandler{
		useCase: uc,
		guard:   guard,
		log:     logger,
	}
}

func (h *CartHandler) RegisterRoutes(router gin.IRouter) {
	cart := router.Group("/cart", h.guard.Require(domain.RoleUser))
	{
		cart.GET("", h.GetCart)
		cart.POST("/add", h.AddItem)
		cart.DELETE("/remove/:craftId", h.RemoveItem)
		cart.DELETE("/clear", h.ClearCart)
	}
}

func (h *CartHandler) GetCart(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	cart, err := h.useCase.GetOrCreate(c.Request.Context(), userID)
	if err != nil {
		failWith(c, h.log, err, "load cart of user "+userID)
		return
	}
	SuccessResponse(c, http.StatusOK, "Cart retrieved successfully", cart)
}

func (h *CartHandler) AddItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var in domain.CartItemInput
	if !bindJSON(c, h.log, &in, "add cart item") {
		return
	}

	cart, err := h.useCase.AddItem(c.Request.Context(), userID, in)
	if err != nil {
		failWith(c, h.log, err, "add item to cart of user "+userID)
		return
	}

	h.log.Infof("Craft %s added to cart of user %s", in.CraftID, userID)
	SuccessResponse(c, http.StatusOK, "Item added to cart", cart)
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	craftID := c.Param("craftId")

	cart, err := h.useCase.RemoveItem(c.Request.Context(), userID, craftID)
	if err != nil {
		failWith(c, h.log, err, "remove item from cart of user "+userID)
		return
	}
	SuccessResponse(c, http.StatusOK, "Item removed from cart", cart)
}

func (h *CartHandler) ClearCart(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	cart, err := h.useCase.Clear(c.Request.Context(), userID)
	if err != nil {
		failWith(c, h.log, err, "clear cart of user "+userID)
		return
	}
	SuccessResponse(c, http.StatusOK, "Cart cleared", cart)
}
