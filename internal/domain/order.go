package domain

import (
	"context"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentCreditCard PaymentMethod = "credit_card"
	PaymentDebitCard  PaymentMethod = "debit_card"
	PaymentUPI        PaymentMethod = "upi"
	PaymentNetBanking PaymentMethod = "net_banking"
	PaymentCOD        PaymentMethod = "cod"
)

func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentCreditCard, PaymentDebitCard, PaymentUPI, PaymentNetBanking, PaymentCOD:
		return true
	default:
		return false
	}
}

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentPending, PaymentCompleted, PaymentFailed, PaymentRefunded:
		return true
	default:
		return false
	}
}

type FulfillmentStatus string

const (
	FulfillmentPending   FulfillmentStatus = "pending"
	FulfillmentConfirmed FulfillmentStatus = "confirmed"
	FulfillmentShipped   FulfillmentStatus = "shipped"
	FulfillmentDelivered FulfillmentStatus = "delivered"
	FulfillmentCancelled FulfillmentStatus = "cancelled"
)

func (s FulfillmentStatus) IsValid() bool {
	switch s {
	case FulfillmentPending, FulfillmentConfirmed, FulfillmentShipped, FulfillmentDelivered, FulfillmentCancelled:
		return true
	default:
		return false
	}
}

type ShippingAddress struct {
	FullName string `json:"fullName" bson:"fullName" validate:"required"`
	Address  string `json:"address" bson:"address" validate:"required"`
	City     string `json:"city" bson:"city" validate:"required"`
	State    string `json:"state" bson:"state" validate:"required"`
	ZipCode  string `json:"zipCode" bson:"zipCode" validate:"required"`
	Country  string `json:"country" bson:"country" validate:"required"`
	Phone    string `json:"phone" bson:"phone" validate:"required"`
}

func (a *ShippingAddress) trim() {
	for _, f := range []*string{&a.FullName, &a.Address, &a.City, &a.State, &a.ZipCode, &a.Country, &a.Phone} {
		*f = strings.TrimSpace(*f)
	}
}

// OrderItem is the frozen copy of a cart line.
type OrderItem struct {
	CraftID    string          `json:"craftId" bson:"craftId"`
	CraftTitle string          `json:"craftTitle" bson:"craftTitle"`
	CraftPrice string          `json:"craftPrice" bson:"craftPrice"`
	CraftImage string          `json:"craftImage" bson:"craftImage"`
	Quantity   int             `json:"quantity" bson:"quantity"`
	UnitPrice  decimal.Decimal `json:"unitPrice" bson:"unitPrice"`
}

type Order struct {
	ID              string            `json:"id" bson:"_id"`
	UserID          string            `json:"userId" bson:"userId"`
	OrderNumber     string            `json:"orderNumber" bson:"orderNumber"`
	Items           []OrderItem       `json:"items" bson:"items"`
	ShippingAddress ShippingAddress   `json:"shippingAddress" bson:"shippingAddress"`
	PaymentMethod   PaymentMethod     `json:"paymentMethod" bson:"paymentMethod"`
	PaymentStatus   PaymentStatus     `json:"paymentStatus" bson:"paymentStatus"`
	Status          FulfillmentStatus `json:"orderStatus" bson:"orderStatus"`
	Subtotal        decimal.Decimal   `json:"subtotal" bson:"subtotal"`
	ShippingCost    decimal.Decimal   `json:"shippingCost" bson:"shippingCost"`
	Tax             decimal.Decimal   `json:"tax" bson:"tax"`
	TotalAmount     decimal.Decimal   `json:"totalAmount" bson:"totalAmount"`
	Notes           string            `json:"notes" bson:"notes"`
	CreatedAt       time.Time         `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt" bson:"updatedAt"`
}

// Cancel moves the order to cancelled. Delivered and already cancelled orders cannot be cancelled.
func (o *Order) Cancel(now time.Time) error {
	switch o.Status {
	case FulfillmentDelivered:
		return InvalidTransitionError("cannot cancel a delivered order")
	case FulfillmentCancelled:
		return InvalidTransitionError("order is already cancelled")
	}
	o.Status = FulfillmentCancelled
	o.UpdatedAt = now
	return nil
}

// ApplyStatus sets whichever of the two statuses the update carries.
func (o *Order) ApplyStatus(update OrderStatusUpdate, now time.Time) {
	if update.PaymentStatus != nil && *update.PaymentStatus != "" {
		o.PaymentStatus = *update.PaymentStatus
	}
	if update.Status != nil && *update.Status != "" {
		o.Status = *update.Status
	}
	o.UpdatedAt = now
}

func (o *Order) Clone() *Order {
	cp := *o
	cp.Items = append([]OrderItem(nil), o.Items...)
	if cp.Items == nil {
		cp.Items = []OrderItem{}
	}
	return &cp
}

// SnapshotItems copies cart lines into order lines that share no memory with the cart.
func SnapshotItems(items []CartItem) []OrderItem {
	out := make([]OrderItem, len(items))
	for i, item := range items {
		out[i] = OrderItem{
			CraftID:    item.CraftID,
			CraftTitle: item.CraftTitle,
			CraftPrice: item.CraftPrice,
			CraftImage: item.CraftImage,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
		}
	}
	return out
}

const orderNumberAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NewOrderNumber returns "TC", the unix millisecond timestamp and five random base36 characters.
func NewOrderNumber(now time.Time) string {
	var b strings.Builder
	b.WriteString("TC")
	b.WriteString(strconv.FormatInt(now.UnixMilli(), 10))
	for i := 0; i < 5; i++ {
		b.WriteByte(orderNumberAlphabet[rand.Intn(len(orderNumberAlphabet))])
	}
	return b.String()
}

type CreateOrderInput struct {
	ShippingAddress *ShippingAddress `json:"shippingAddress"`
	PaymentMethod   PaymentMethod    `json:"paymentMethod"`
	Notes           string           `json:"notes"`
}

func (in *CreateOrderInput) Validate() error {
	if in.ShippingAddress == nil || in.PaymentMethod == "" {
		return ValidationError("shipping address and payment method are required")
	}
	in.ShippingAddress.trim()
	if err := validateStruct(in.ShippingAddress); err != nil {
		return err
	}
	if !in.PaymentMethod.IsValid() {
		return ValidationError("invalid payment method %q", in.PaymentMethod)
	}
	in.Notes = strings.TrimSpace(in.Notes)
	return nil
}

// OrderStatusUpdate carries the admin's requested statuses. Absent or empty fields are left unchanged.
type OrderStatusUpdate struct {
	Status        *FulfillmentStatus `json:"orderStatus"`
	PaymentStatus *PaymentStatus     `json:"paymentStatus"`
}

func (u OrderStatusUpdate) Validate() error {
	if u.Status != nil && *u.Status != "" && !u.Status.IsValid() {
		return ValidationError("invalid order status %q", *u.Status)
	}
	if u.PaymentStatus != nil && *u.PaymentStatus != "" && !u.PaymentStatus.IsValid() {
		return ValidationError("invalid payment status %q", *u.PaymentStatus)
	}
	return nil
}

// OrderRepository lists orders newest first. Create returns a conflict error on a duplicate order number.
type OrderRepository interface {
	Create(ctx context.Context, order *Order) error
	GetByID(ctx context.Context, id string) (*Order, error)
	ListByUserID(ctx context.Context, userID string) ([]*Order, error)
	ListAll(ctx context.Context) ([]*Order, error)
	Save(ctx context.Context, order *Order) error
}

type OrderUseCase interface {
	CreateOrder(ctx context.Context, userID string, in CreateOrderInput) (*Order, error)
	ListOrdersForUser(ctx context.Context, userID string) ([]*Order, error)
	GetOrder(ctx context.Context, userID, orderID string) (*Order, error)
	UpdateStatus(ctx context.Context, orderID string, update OrderStatusUpdate) (*Order, error)
	Cancel(ctx context.Context, userID, orderID string) (*Order, error)
	ListAllOrders(ctx context.Context) ([]*Order, error)
}
