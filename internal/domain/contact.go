package domain

import (
	"context"
	"strings"
	"time"
)

type ContactStatus string

const (
	ContactNew     ContactStatus = "new"
	ContactRead    ContactStatus = "read"
	ContactReplied ContactStatus = "replied"
	ContactClosed  ContactStatus = "closed"
)

func (s ContactStatus) IsValid() bool {
	switch s {
	case ContactNew, ContactRead, ContactReplied, ContactClosed:
		return true
	default:
		return false
	}
}

type Contact struct {
	ID         string        `json:"id" bson:"_id"`
	Name       string        `json:"name" bson:"name"`
	Email      string        `json:"email" bson:"email"`
	Message    string        `json:"message" bson:"message"`
	Status     ContactStatus `json:"status" bson:"status"`
	AdminNotes string        `json:"adminNotes" bson:"adminNotes"`
	CreatedAt  time.Time     `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time     `json:"updatedAt" bson:"updatedAt"`
}

type ContactInput struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,emailshape"`
	Message string `json:"message" validate:"required"`
}

func (in *ContactInput) Validate() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Message = strings.TrimSpace(in.Message)
	if in.Name == "" || in.Email == "" || in.Message == "" {
		return ValidationError("all fields are required")
	}
	if err := validateStruct(in); err != nil {
		return ValidationError("please enter a valid email address")
	}
	return nil
}

// ContactStatusUpdate sets the triage status. AdminNotes replaces the stored note only when non-empty.
type ContactStatusUpdate struct {
	Status     ContactStatus `json:"status"`
	AdminNotes string        `json:"adminNotes"`
}

func (u ContactStatusUpdate) Validate() error {
	if !u.Status.IsValid() {
		return ValidationError("invalid contact status %q", u.Status)
	}
	return nil
}

type ContactRepository interface {
	Create(ctx context.Context, contact *Contact) error
	GetByID(ctx context.Context, id string) (*Contact, error)
	ListAll(ctx context.Context) ([]*Contact, error)
	Save(ctx context.Context, contact *Contact) error
	Delete(ctx context.Context, id string) error
}

type ContactUseCase interface {
	Submit(ctx context.Context, in ContactInput) (*Contact, error)
	ListAll(ctx context.Context) ([]*Contact, error)
	UpdateStatus(ctx context.Context, id string, update ContactStatusUpdate) (*Contact, error)
	Delete(ctx context.Context, id string) error
}
