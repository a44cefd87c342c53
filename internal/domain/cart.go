package domain

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartItem is a snapshot of a catalog entry taken when it was added to the cart.
type CartItem struct {
	CraftID    string `json:"craftId" bson:"craftId"`
	CraftTitle string `json:"craftTitle" bson:"craftTitle"`
	CraftPrice string `json:"craftPrice" bson:"craftPrice"`
	CraftImage string `json:"craftImage" bson:"craftImage"`
	Quantity   int    `json:"quantity" bson:"quantity"`
	// UnitPrice is CraftPrice parsed at add time.
	UnitPrice decimal.Decimal `json:"unitPrice" bson:"unitPrice"`
}

// LineTotal is the unit price times the quantity.
func (i CartItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// CartItemInput is the body of an add-to-cart request. Quantity is accepted for compatibility
// but every add counts as one unit.
type CartItemInput struct {
	CraftID    string `json:"craftId" validate:"required"`
	CraftTitle string `json:"craftTitle" validate:"required"`
	CraftPrice string `json:"craftPrice" validate:"required"`
	CraftImage string `json:"craftImage" validate:"required"`
	Quantity   int    `json:"quantity"`
}

// Validate checks required fields and that the price parses.
func (in *CartItemInput) Validate() (decimal.Decimal, error) {
	in.CraftID = strings.TrimSpace(in.CraftID)
	in.CraftTitle = strings.TrimSpace(in.CraftTitle)
	in.CraftPrice = strings.TrimSpace(in.CraftPrice)
	in.CraftImage = strings.TrimSpace(in.CraftImage)
	if err := validateStruct(in); err != nil {
		return decimal.Zero, err
	}
	return ParsePrice(in.CraftPrice)
}

type Cart struct {
	ID          string          `json:"id" bson:"_id"`
	UserID      string          `json:"userId" bson:"userId"`
	Items       []CartItem      `json:"items" bson:"items"`
	TotalAmount decimal.Decimal `json:"totalAmount" bson:"totalAmount"`
	CreatedAt   time.Time       `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt" bson:"updatedAt"`
}

func NewCart(userID string, now time.Time) *Cart {
	return &Cart{
		ID:          uuid.NewString(),
		UserID:      userID,
		Items:       []CartItem{},
		TotalAmount: decimal.Zero,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// AddItem bumps the quantity of an existing line by one or appends a new line with quantity 1.
func (c *Cart) AddItem(in CartItemInput, unitPrice decimal.Decimal) {
	for i := range c.Items {
		if c.Items[i].CraftID == in.CraftID {
			c.Items[i].Quantity++
			c.Recalculate()
			return
		}
	}
	c.Items = append(c.Items, CartItem{
		CraftID:    in.CraftID,
		CraftTitle: in.CraftTitle,
		CraftPrice: in.CraftPrice,
		CraftImage: in.CraftImage,
		Quantity:   1,
		UnitPrice:  unitPrice,
	})
	c.Recalculate()
}

// RemoveItem drops every line for craftID. Unknown ids leave the items untouched.
func (c *Cart) RemoveItem(craftID string) {
	kept := make([]CartItem, 0, len(c.Items))
	for _, item := range c.Items {
		if item.CraftID != craftID {
			kept = append(kept, item)
		}
	}
	c.Items = kept
	c.Recalculate()
}

func (c *Cart) Clear() {
	c.Items = []CartItem{}
	c.TotalAmount = decimal.Zero
}

// Recalculate sets TotalAmount to the sum of the line totals.
func (c *Cart) Recalculate() {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.LineTotal())
	}
	c.TotalAmount = total
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Clone returns a deep copy of the cart.
func (c *Cart) Clone() *Cart {
	cp := *c
	cp.Items = append([]CartItem(nil), c.Items...)
	if cp.Items == nil {
		cp.Items = []CartItem{}
	}
	return &cp
}

// CartRepository stores at most one cart per user. Create returns a conflict error when the user
// already has one.
type CartRepository interface {
	GetByUserID(ctx context.Context, userID string) (*Cart, error)
	Create(ctx context.Context, cart *Cart) error
	Save(ctx context.Context, cart *Cart) error
}

type CartUseCase interface {
	GetOrCreate(ctx context.Context, userID string) (*Cart, error)
	AddItem(ctx context.Context, userID string, in CartItemInput) (*Cart, error)
	RemoveItem(ctx context.Context, userID, craftID string) (*Cart, error)
	Clear(ctx context.Context, userID string) (*Cart, error)
}
