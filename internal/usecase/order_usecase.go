package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/nirjapatel2005/Tribal-Craft/internal/domain"
	"github.com/nirjapatel2005/Tribal-Craft/internal/events"
	"github.com/nirjapatel2005/Tribal-Craft/internal/lock"
	"github.com/sirupsen/logrus"
)

var _ domain.OrderUseCase = (*orderUseCase)(nil)

type orderUseCase struct {
	orders    domain.OrderRepository
	carts     domain.CartRepository
	locker    lock.Locker
	publisher events.Publisher
	log       *logrus.Logger
	now       func() time.Time
}

func NewOrderUseCase(orders domain.OrderRepository, carts domain.CartRepository, locker lock.Locker,
	publisher events.Publisher, logger *logrus.Logger) domain.OrderUseCase {
	return &orderUseCase{
		orders:    orders,
		carts:     carts,
		locker:    locker,
		publisher: publisher,
		log:       logger,
		now:       time.Now,
	}
}

// CreateOrder turns the user's cart into an order and empties the cart. The two writes are not
// atomic: if emptying the cart fails the order stays and the error is reported.
func (uc *orderUseCase) CreateOrder(ctx context.Context, userID string, in domain.CreateOrderInput) (*domain.Order, error) {
	if err := in.Validate(); err != nil {
		uc.log.Warnf("Use Case: Checkout rejected for user %s: %v", userID, err)
		return nil, err
	}

	var order *domain.Order
	err := withCartLock(ctx, uc.locker, userID, func() error {
		cart, err := uc.carts.GetByUserID(ctx, userID)
		if errors.Is(err, domain.ErrNotFound) {
			return domain.EmptyCartError()
		}
		if err != nil {
			return err
		}
		if cart.IsEmpty() {
			return domain.EmptyCartError()
		}

		now := uc.now()
		pricing := domain.PriceSubtotal(cart.TotalAmount)
		uc.log.Infof("Use Case: Checkout for user %s: subtotal %s, shipping %s, tax %s, total %s",
			userID, pricing.Subtotal, pricing.ShippingCost, pricing.Tax, pricing.Total)

		o := &domain.Order{
			ID:              uuid.NewString(),
			UserID:          userID,
			OrderNumber:     domain.NewOrderNumber(now),
			Items:           domain.SnapshotItems(cart.Items),
			ShippingAddress: *in.ShippingAddress,
			PaymentMethod:   in.PaymentMethod,
			PaymentStatus:   domain.PaymentPending,
			Status:          domain.FulfillmentPending,
			Subtotal:        pricing.Subtotal,
			ShippingCost:    pricing.ShippingCost,
			Tax:             pricing.Tax,
			TotalAmount:     pricing.Total,
			Notes:           in.Notes,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		// regenerated immediately before persisting
		o.OrderNumber = domain.NewOrderNumber(uc.now())
		if err := uc.orders.Create(ctx, o); err != nil {
			uc.log.Errorf("Use Case: Repository failed to create order for user %s: %v", userID, err)
			return err
		}
		order = o
		uc.log.Infof("Use Case: Order %s (%s) created for user %s", o.ID, o.OrderNumber, userID)

		cart.Clear()
		cart.UpdatedAt = uc.now()
		if err := uc.carts.Save(ctx, cart); err != nil {
			uc.log.Errorf("Use Case: CRITICAL! Order %s was created but the cart of user %s could not be emptied: %v. Manual intervention required!",
				o.ID, userID, err)
			return domain.StorageError(err, "order %s was placed but the cart could not be emptied", o.OrderNumber)
		}
		return nil
	})
	if order != nil {
		publish(ctx, uc.publisher, uc.log, events.New(events.OrderCreated, order.ID, order))
	}
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (uc *orderUseCase) ListOrdersForUser(ctx context.Context, userID string) ([]*domain.Order, error) {
	orders, err := uc.orders.ListByUserID(ctx, userID)
	if err != nil {
		uc.log.Errorf("Use Case: Failed to list orders for user %s: %v", userID, err)
		return nil, err
	}
	return orders, nil
}

// GetOrder returns the order only to its owner. Another user's order is reported as not found.
func (uc *orderUseCase) GetOrder(ctx context.Context, userID, orderID string) (*domain.Order, error) {
	order, err := uc.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		uc.log.Warnf("Use Case: User %s requested order %s owned by another user", userID, orderID)
		return nil, domain.NotFoundError("order not found")
	}
	return order, nil
}

func (uc *orderUseCase) UpdateStatus(ctx context.Context, orderID string, update domain.OrderStatusUpdate) (*domain.Order, error) {
	if err := update.Validate(); err != nil {
		return nil, err
	}
	order, err := uc.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	order.ApplyStatus(update, uc.now())
	if err := uc.orders.Save(ctx, order); err != nil {
		uc.log.Errorf("Use Case: Failed to save status of order %s: %v", orderID, err)
		return nil, err
	}
	uc.log.Infof("Use Case: Order %s status now %s, payment %s", orderID, order.Status, order.PaymentStatus)
	publish(ctx, uc.publisher, uc.log, events.New(events.OrderStatusUpdated, order.ID, map[string]string{
		"orderNumber":   order.OrderNumber,
		"orderStatus":   string(order.Status),
		"paymentStatus": string(order.PaymentStatus),
	}))
	return order, nil
}

func (uc *orderUseCase) Cancel(ctx context.Context, userID, orderID string) (*domain.Order, error) {
	order, err := uc.GetOrder(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	if err := order.Cancel(uc.now()); err != nil {
		uc.log.Warnf("Use Case: User %s cannot cancel order %s: %v", userID, orderID, err)
		return nil, err
	}
	if err := uc.orders.Save(ctx, order); err != nil {
		uc.log.Errorf("Use Case: Failed to save cancelled order %s: %v", orderID, err)
		return nil, err
	}
	uc.log.Infof("Use Case: Order %s cancelled by user %s", orderID, userID)
	publish(ctx, uc.publisher, uc.log, events.New(events.OrderCancelled, order.ID, map[string]string{
		"orderNumber": order.OrderNumber,
		"userId":      userID,
	}))
	return order, nil
}

func (uc *orderUseCase) ListAllOrders(ctx context.Context) ([]*domain.Order, error) {
	orders, err := uc.orders.ListAll(ctx)
	if err != nil {
		uc.log.Errorf("Use Case: Failed to list all orders: %v", err)
		return nil, err
	}
	return orders, nil
}
