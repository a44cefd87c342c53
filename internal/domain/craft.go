package domain

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type CraftStatus string

const (
	CraftPending  CraftStatus = "pending"
	CraftApproved CraftStatus = "approved"
	CraftRejected CraftStatus = "rejected"
)

type Craft struct {
	ID             string          `json:"id" bson:"_id"`
	SellerFullName string          `json:"sellerFullName" bson:"sellerFullName"`
	ItemName       string          `json:"itemName" bson:"itemName"`
	Description    string          `json:"description" bson:"description"`
	Price          string          `json:"price" bson:"price"`
	Amount         decimal.Decimal `json:"amount" bson:"amount"`
	Region         string          `json:"region" bson:"region"`
	ArtistName     string          `json:"artistName" bson:"artistName"`
	SellerEmail    string          `json:"sellerEmail" bson:"sellerEmail"`
	SellerPhone    string          `json:"sellerPhone" bson:"sellerPhone"`
	ImageURL       string          `json:"imageUrl" bson:"imageUrl"`
	Status         CraftStatus     `json:"status" bson:"status"`
	SellerID       string          `json:"sellerId" bson:"sellerId"`
	CreatedAt      time.Time       `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt" bson:"updatedAt"`
}

// CraftSubmission is the multipart form of a sell request, without the image.
type CraftSubmission struct {
	SellerFullName string `form:"sellerFullName" json:"sellerFullName" validate:"required"`
	ItemName       string `form:"itemName" json:"itemName" validate:"required"`
	Description    string `form:"description" json:"description" validate:"required"`
	Price          string `form:"price" json:"price" validate:"required"`
	Region         string `form:"region" json:"region" validate:"required"`
	ArtistName     string `form:"artistName" json:"artistName" validate:"required"`
	SellerEmail    string `form:"sellerEmail" json:"sellerEmail" validate:"required"`
	SellerPhone    string `form:"sellerPhone" json:"sellerPhone" validate:"required"`
}

// Validate trims the fields, checks they are present and returns the parsed price.
func (s *CraftSubmission) Validate() (decimal.Decimal, error) {
	for _, f := range []*string{&s.SellerFullName, &s.ItemName, &s.Description, &s.Price,
		&s.Region, &s.ArtistName, &s.SellerEmail, &s.SellerPhone} {
		*f = strings.TrimSpace(*f)
	}
	if err := validateStruct(s); err != nil {
		return decimal.Zero, err
	}
	return ParsePrice(s.Price)
}

// ImageUpload is an uploaded image file as received from the client.
type ImageUpload struct {
	Filename string
	Size     int64
	Content  io.Reader
}

// ImageStore persists uploaded images and returns the public URL they are served under.
type ImageStore interface {
	Save(ctx context.Context, upload ImageUpload) (string, error)
	Delete(ctx context.Context, url string) error
}

type CraftRepository interface {
	Create(ctx context.Context, craft *Craft) error
	GetByID(ctx context.Context, id string) (*Craft, error)
	ListByStatus(ctx context.Context, status CraftStatus) ([]*Craft, error)
	UpdateStatus(ctx context.Context, id string, status CraftStatus, now time.Time) (*Craft, error)
}

type CraftUseCase interface {
	Submit(ctx context.Context, sellerID string, in CraftSubmission, image *ImageUpload) (*Craft, error)
	ListPending(ctx context.Context) ([]*Craft, error)
	ListApproved(ctx context.Context) ([]*Craft, error)
	Approve(ctx context.Context, id string) (*Craft, error)
	Reject(ctx context.Context, id string) (*Craft, error)
}
