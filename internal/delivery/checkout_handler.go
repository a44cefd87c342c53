package delivery

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nirjapatel2005/Tribal-Craft/internal/domain"
	"github.com/nirjapatel2005/Tribal-Craft/internal/middleware"
	"github.com/sirupsen/logrus"
)

type CheckoutHandler struct {
	useCase domain.OrderUseCase
	guard   *middleware.Guard
	log     *logrus.Logger
}

func NewCheckoutHandler(uc domain.OrderUseCase, guard *middleware.Guard, logger *logrus.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		useCase: uc,
		guard:   guard,
		log:     logger,
	}
}

func (h *CheckoutHandler) RegisterRoutes(router gin.IRouter) {
	user := h.guard.Require(domain.RoleUser)
	admin := h.guard.Require(domain.RoleAdmin)

	checkout := router.Group("/checkout")
	{
		checkout.POST("/create-order", user, h.CreateOrder)
		checkout.GET("/orders", user, h.ListOrders)
		checkout.GET("/orders/:id", user, h.GetOrder)
		checkout.PUT("/orders/:id/status", admin, h.UpdateStatus)
		checkout.PUT("/orders/:id/cancel", user, h.CancelOrder)
		checkout.GET("/admin/orders", admin, h.ListAllOrders)
	}
}

func (h *CheckoutHandler) CreateOrder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	h.log.Infof("Processing create order request for User ID: %s", userID)

	var in domain.CreateOrderInput
	if !bindJSON(c, h.log, &in, "create order") {
		return
	}

	order, err := h.useCase.CreateOrder(c.Request.Context(), userID, in)
	if err != nil {
		failWith(c, h.log, err, "create order for user "+userID)
		return
	}

	h.log.Infof("Order %s created successfully for user %s", order.OrderNumber, userID)
	SuccessResponse(c, http.StatusCreated, "Order created successfully", order)
}

func (h *CheckoutHandler) ListOrders(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	orders, err := h.useCase.ListOrdersForUser(c.Request.Context(), userID)
	if err != nil {
		failWith(c, h.log, err, "list orders of user "+userID)
		return
	}
	if len(orders) == 0 {
		SuccessResponse(c, http.StatusOK, "No orders found", []*domain.Order{})
		return
	}
	SuccessResponse(c, http.StatusOK, "Orders retrieved successfully", orders)
}

func (h *CheckoutHandler) GetOrder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	orderID := c.Param("id")

	order, err := h.useCase.GetOrder(c.Request.Context(), userID, orderID)
	if err != nil {
		failWith(c, h.log, err, "get order "+orderID)
		return
	}
	SuccessResponse(c, http.StatusOK, "Order retrieved successfully", order)
}

func (h *CheckoutHandler) UpdateStatus(c *gin.Context) {
	orderID := c.Param("id")
	var update domain.OrderStatusUpdate
	if !bindJSON(c, h.log, &update, "update order status") {
		return
	}

	order, err := h.useCase.UpdateStatus(c.Request.Context(), orderID, update)
	if err != nil {
		failWith(c, h.log, err, "update status of order "+orderID)
		return
	}

	h.log.Infof("Order %s updated: status %s, payment %s", orderID, order.Status, order.PaymentStatus)
	SuccessResponse(c, http.StatusOK, "Order status updated successfully", order)
}

func (h *CheckoutHandler) CancelOrder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	orderID := c.Param("id")

	order, err := h.useCase.Cancel(c.Request.Context(), userID, orderID)
	if err != nil {
		failWith(c, h.log, err, "cancel order "+orderID)
		return
	}
	SuccessResponse(c, http.StatusOK, "Order cancelled successfully", order)
}

func (h *CheckoutHandler) ListAllOrders(c *gin.Context) {
	orders, err := h.useCase.ListAllOrders(c.Request.Context())
	if err != nil {
		failWith(c, h.log, err, "list all orders")
		return
	}

	h.log.Infof("Retrieved %d orders", len(orders))
	if len(orders) == 0 {
		SuccessResponse(c, http.StatusOK, "No orders found", []*domain.Order{})
		return
	}
	SuccessResponse(c, http.StatusOK, "Orders retrieved successfully", orders)
}
