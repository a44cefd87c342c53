package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/nirjapatel2005/Tribal-Craft/internal/domain"
	"github.com/nirjapatel2005/Tribal-Craft/internal/events"
	"github.com/sirupsen/logrus"
)

var _ domain.ContactUseCase = (*contactUseCase)(nil)

type contactUseCase struct {
	contacts  domain.ContactRepository
	publisher events.Publisher
	log       *logrus.Logger
	now       func() time.Time
}

func NewContactUseCase(contacts domain.ContactRepository, publisher events.Publisher, logger *logrus.Logger) domain.ContactUseCase {
	return &contactUseCase{contacts: contacts, publisher: publisher, log: logger, now: time.Now}
}

func (uc *contactUseCase) Submit(ctx context.Context, in domain.ContactInput) (*domain.Contact, error) {
	if err := in.Validate(); err != nil {
		uc.log.Warnf("Use Case: Contact submission rejected: %v", err)
		return nil, err
	}

	now := uc.now()
	contact := &domain.Contact{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Email:     in.Email,
		Message:   in.Message,
		Status:    domain.ContactNew,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.contacts.Create(ctx, contact); err != nil {
		uc.log.Errorf("Use Case: Failed to store contact submission from %s: %v", in.Email, err)
		return nil, err
	}
	uc.log.Infof("Use Case: Contact submission %s received from %s", contact.ID, contact.Email)
	publish(ctx, uc.publisher, uc.log, events.New(events.ContactSubmitted, contact.ID, map[string]string{
		"name":  contact.Name,
		"email": contact.Email,
	}))
	return contact, nil
}

func (uc *contactUseCase) ListAll(ctx context.Context) ([]*domain.Contact, error) {
	return uc.contacts.ListAll(ctx)
}

func (uc *contactUseCase) UpdateStatus(ctx context.Context, id string, update domain.ContactStatusUpdate) (*domain.Contact, error) {
	if err := update.Validate(); err != nil {
		return nil, err
	}
	contact, err := uc.contacts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	contact.Status = update.Status
	if update.AdminNotes != "" {
		contact.AdminNotes = update.AdminNotes
	}
	contact.UpdatedAt = uc.now()
	if err := uc.contacts.Save(ctx, contact); err != nil {
		uc.log.Errorf("Use Case: Failed to update contact submission %s: %v", id, err)
		return nil, err
	}
	uc.log.Infof("Use Case: Contact submission %s marked %s", id, contact.Status)
	return contact, nil
}

func (uc *contactUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.contacts.Delete(ctx, id); err != nil {
		uc.log.Warnf("Use Case: Failed to delete contact submission %s: %v", id, err)
		return err
	}
	uc.log.Infof("Use Case: Contact submission %s deleted", id)
	return nil
}
