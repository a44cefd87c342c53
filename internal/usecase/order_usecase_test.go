package usecase

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/nirjapatel2005/Tribal-Craft/internal/domain"
	"github.com/nirjapatel2005/Tribal-Craft/internal/events"
	"github.com/nirjapatel2005/Tribal-Craft/internal/lock"
	"github.com/nirjapatel2005/Tribal-Craft/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type OrderUseCaseSuite struct {
	suite.Suite
	ctx       context.Context
	carts     *failingCartSaves
	orders    domain.OrderRepository
	publisher *recordingPublisher
	cartUC    domain.CartUseCase
	uc        domain.OrderUseCase
	clock     time.Time
}

func TestOrderUseCaseSuite(t *testing.T) {
	suite.Run(t, new(OrderUseCaseSuite))
}

func (s *OrderUseCaseSuite) SetupTest() {
	s.ctx = context.Background()
	logger := quietLogger()
	locker := lock.NewLocalLocker(5 * time.Second)
	s.carts = &failingCartSaves{CartRepository: repository.NewMemoryCartRepository(logger)}
	s.orders = repository.NewMemoryOrderRepository(logger)
	s.publisher = &recordingPublisher{}
	s.cartUC = NewCartUseCase(s.carts, locker, logger)

	s.clock = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	uc := NewOrderUseCase(s.orders, s.carts, locker, s.publisher, logger).(*orderUseCase)
	uc.now = func() time.Time {
		s.clock = s.clock.Add(time.Second)
		return s.clock
	}
	s.uc = uc
}

func checkoutInput() domain.CreateOrderInput {
	return domain.CreateOrderInput{
		ShippingAddress: &domain.ShippingAddress{
			FullName: "Asha Devi", Address: "12 Market Road", City: "Ranchi", State: "Jharkhand",
			ZipCode: "834001", Country: "India", Phone: "9876543210",
		},
		PaymentMethod: domain.PaymentUPI,
	}
}

func (s *OrderUseCaseSuite) fillCart(userID string, items ...domain.CartItemInput) {
	for _, it := range items {
		_, err := s.cartUC.AddItem(s.ctx, userID, it)
		s.Require().NoError(err)
	}
}

func (s *OrderUseCaseSuite) TestCheckoutEmptyCart() {
	_, err := s.uc.CreateOrder(s.ctx, "u1", checkoutInput())
	s.True(errors.Is(err, domain.ErrEmptyCart), "no cart: %v", err)

	_, err = s.cartUC.GetOrCreate(s.ctx, "u1")
	s.Require().NoError(err)
	_, err = s.uc.CreateOrder(s.ctx, "u1", checkoutInput())
	s.True(errors.Is(err, domain.ErrEmptyCart), "empty cart: %v", err)
}

func (s *OrderUseCaseSuite) TestCheckoutValidation() {
	s.fillCart("u1", item("a", "$30"))
	in := checkoutInput()
	in.PaymentMethod = "barter"
	_, err := s.uc.CreateOrder(s.ctx, "u1", in)
	s.True(errors.Is(err, domain.ErrValidation))

	in = checkoutInput()
	in.ShippingAddress = nil
	_, err = s.uc.CreateOrder(s.ctx, "u1", in)
	s.True(errors.Is(err, domain.ErrValidation))
}

func (s *OrderUseCaseSuite) TestCheckoutFreeShipping() {
	s.fillCart("u1", item("a", "$30"), item("b", "$45"), item("b", "$45"))

	order, err := s.uc.CreateOrder(s.ctx, "u1", checkoutInput())
	s.Require().NoError(err)

	s.True(decimal.NewFromInt(120).Equal(order.Subtotal))
	s.True(order.ShippingCost.IsZero())
	s.True(decimal.RequireFromString("9.60").Equal(order.Tax))
	s.True(decimal.RequireFromString("129.60").Equal(order.TotalAmount))
	s.True(order.Subtotal.Add(order.ShippingCost).Add(order.Tax).Equal(order.TotalAmount))
	s.Equal(domain.PaymentPending, order.PaymentStatus)
	s.Equal(domain.FulfillmentPending, order.Status)
	s.Regexp(regexp.MustCompile(`^TC\d{13}[0-9A-Z]{5}$`), order.OrderNumber)
	s.Len(order.Items, 2)

	cart, err := s.cartUC.GetOrCreate(s.ctx, "u1")
	s.Require().NoError(err)
	s.True(cart.IsEmpty())
	s.True(cart.TotalAmount.IsZero())

	s.Equal([]string{events.OrderCreated}, s.publisher.types())
}

func (s *OrderUseCaseSuite) TestCheckoutPaysShippingUnderThreshold() {
	s.fillCart("u1", item("a", "$50"))

	order, err := s.uc.CreateOrder(s.ctx, "u1", checkoutInput())
	s.Require().NoError(err)
	s.True(decimal.NewFromInt(10).Equal(order.ShippingCost))
	s.True(decimal.RequireFromString("4.00").Equal(order.Tax))
	s.True(decimal.RequireFromString("64.00").Equal(order.TotalAmount))
}

func (s *OrderUseCaseSuite) TestOrderItemsAreSnapshots() {
	s.fillCart("u1", item("a", "$30"))
	order, err := s.uc.CreateOrder(s.ctx, "u1", checkoutInput())
	s.Require().NoError(err)

	s.fillCart("u1", item("a", "$30"), item("a", "$30"))

	stored, err := s.uc.GetOrder(s.ctx, "u1", order.ID)
	s.Require().NoError(err)
	s.Require().Len(stored.Items, 1)
	s.Equal(1, stored.Items[0].Quantity)
	s.True(decimal.NewFromInt(30).Equal(stored.Subtotal))
}

func (s *OrderUseCaseSuite) TestCartSaveFailureAfterOrderIsReported() {
	s.fillCart("u1", item("a", "$30"))
	s.carts.fail = true

	_, err := s.uc.CreateOrder(s.ctx, "u1", checkoutInput())
	s.Require().Error(err)
	s.True(errors.Is(err, domain.ErrStorage))

	orders, err := s.uc.ListOrdersForUser(s.ctx, "u1")
	s.Require().NoError(err)
	s.Len(orders, 1, "the order write is not rolled back")
}

func (s *OrderUseCaseSuite) TestListAndGetOwnership() {
	s.fillCart("u1", item("a", "$30"))
	first, err := s.uc.CreateOrder(s.ctx, "u1", checkoutInput())
	s.Require().NoError(err)
	s.fillCart("u1", item("b", "$45"))
	second, err := s.uc.CreateOrder(s.ctx, "u1", checkoutInput())
	s.Require().NoError(err)
	s.fillCart("u2", item("c", "$5"))
	_, err = s.uc.CreateOrder(s.ctx, "u2", checkoutInput())
	s.Require().NoError(err)

	mine, err := s.uc.ListOrdersForUser(s.ctx, "u1")
	s.Require().NoError(err)
	s.Require().Len(mine, 2)
	s.Equal(second.ID, mine[0].ID)
	s.Equal(first.ID, mine[1].ID)

	all, err := s.uc.ListAllOrders(s.ctx)
	s.Require().NoError(err)
	s.Len(all, 3)

	_, err = s.uc.GetOrder(s.ctx, "u2", first.ID)
	s.True(errors.Is(err, domain.ErrNotFound))
	_, err = s.uc.GetOrder(s.ctx, "u1", "missing")
	s.True(errors.Is(err, domain.ErrNotFound))
}

func (s *OrderUseCaseSuite) TestCancel() {
	s.fillCart("u1", item("a", "$30"))
	order, err := s.uc.CreateOrder(s.ctx, "u1", checkoutInput())
	s.Require().NoError(err)

	_, err = s.uc.Cancel(s.ctx, "u2", order.ID)
	s.True(errors.Is(err, domain.ErrNotFound))

	cancelled, err := s.uc.Cancel(s.ctx, "u1", order.ID)
	s.Require().NoError(err)
	s.Equal(domain.FulfillmentCancelled, cancelled.Status)
	s.Equal(domain.PaymentPending, cancelled.PaymentStatus)

	_, err = s.uc.Cancel(s.ctx, "u1", order.ID)
	s.True(errors.Is(err, domain.ErrInvalidTransition))
}

func (s *OrderUseCaseSuite) TestCancelDelivered() {
	s.fillCart("u1", item("a", "$30"))
	order, err := s.uc.CreateOrder(s.ctx, "u1", checkoutInput())
	s.Require().NoError(err)

	delivered := domain.FulfillmentDelivered
	_, err = s.uc.UpdateStatus(s.ctx, order.ID, domain.OrderStatusUpdate{Status: &delivered})
	s.Require().NoError(err)

	_, err = s.uc.Cancel(s.ctx, "u1", order.ID)
	s.True(errors.Is(err, domain.ErrInvalidTransition))
}

func (s *OrderUseCaseSuite) TestUpdateStatus() {
	s.fillCart("u1", item("a", "$30"))
	order, err := s.uc.CreateOrder(s.ctx, "u1", checkoutInput())
	s.Require().NoError(err)

	paid := domain.PaymentCompleted
	updated, err := s.uc.UpdateStatus(s.ctx, order.ID, domain.OrderStatusUpdate{PaymentStatus: &paid})
	s.Require().NoError(err)
	s.Equal(domain.PaymentCompleted, updated.PaymentStatus)
	s.Equal(domain.FulfillmentPending, updated.Status)

	cancelled := domain.FulfillmentCancelled
	_, err = s.uc.UpdateStatus(s.ctx, order.ID, domain.OrderStatusUpdate{Status: &cancelled})
	s.Require().NoError(err)
	back := domain.FulfillmentShipped
	updated, err = s.uc.UpdateStatus(s.ctx, order.ID, domain.OrderStatusUpdate{Status: &back})
	s.Require().NoError(err)
	s.Equal(domain.FulfillmentShipped, updated.Status, "admins may move between any statuses")

	bogus := domain.FulfillmentStatus("teleported")
	_, err = s.uc.UpdateStatus(s.ctx, order.ID, domain.OrderStatusUpdate{Status: &bogus})
	s.True(errors.Is(err, domain.ErrValidation))

	_, err = s.uc.UpdateStatus(s.ctx, "missing", domain.OrderStatusUpdate{Status: &back})
	s.True(errors.Is(err, domain.ErrNotFound))
}

func (s *OrderUseCaseSuite) TestPublishFailureDoesNotFailCheckout() {
	s.publisher.err = errors.New("broker unavailable")
	s.fillCart("u1", item("a", "$30"))
	_, err := s.uc.CreateOrder(s.ctx, "u1", checkoutInput())
	s.NoError(err)
}
