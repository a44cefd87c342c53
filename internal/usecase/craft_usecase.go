package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/nirjapatel2005/Tribal-Craft/internal/domain"
	"github.com/nirjapatel2005/Tribal-Craft/internal/events"
	"github.com/sirupsen/logrus"
)

var _ domain.CraftUseCase = (*craftUseCase)(nil)

type craftUseCase struct {
	crafts    domain.CraftRepository
	images    domain.ImageStore
	publisher events.Publisher
	log       *logrus.Logger
	now       func() time.Time
}

func NewCraftUseCase(crafts domain.CraftRepository, images domain.ImageStore, publisher events.Publisher, logger *logrus.Logger) domain.CraftUseCase {
	return &craftUseCase{crafts: crafts, images: images, publisher: publisher, log: logger, now: time.Now}
}

// Submit stores the image and creates a pending listing owned by sellerID. The stored image is
// removed again if the listing cannot be created.
func (uc *craftUseCase) Submit(ctx context.Context, sellerID string, in domain.CraftSubmission, image *domain.ImageUpload) (*domain.Craft, error) {
	amount, err := in.Validate()
	if err != nil {
		uc.log.Warnf("Use Case: Craft submission by %s rejected: %v", sellerID, err)
		return nil, err
	}
	if image == nil || image.Content == nil {
		return nil, domain.ValidationError("image is required")
	}

	imageURL, err := uc.images.Save(ctx, *image)
	if err != nil {
		uc.log.Warnf("Use Case: Failed to store image for craft submission by %s: %v", sellerID, err)
		return nil, err
	}

	now := uc.now()
	craft := &domain.Craft{
		ID:             uuid.NewString(),
		SellerFullName: in.SellerFullName,
		ItemName:       in.ItemName,
		Description:    in.Description,
		Price:          in.Price,
		Amount:         amount,
		Region:         in.Region,
		ArtistName:     in.ArtistName,
		SellerEmail:    in.SellerEmail,
		SellerPhone:    in.SellerPhone,
		ImageURL:       imageURL,
		Status:         domain.CraftPending,
		SellerID:       sellerID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.crafts.Create(ctx, craft); err != nil {
		uc.log.Errorf("Use Case: Repository failed to create craft for seller %s: %v", sellerID, err)
		if delErr := uc.images.Delete(ctx, imageURL); delErr != nil {
			uc.log.Errorf("Use Case: Failed to remove orphaned image %s: %v", imageURL, delErr)
		}
		return nil, err
	}

	uc.log.Infof("Use Case: Craft %s submitted by %s and awaiting moderation", craft.ID, sellerID)
	publish(ctx, uc.publisher, uc.log, events.New(events.CraftSubmitted, craft.ID, craft))
	return craft, nil
}

func (uc *craftUseCase) ListPending(ctx context.Context) ([]*domain.Craft, error) {
	return uc.crafts.ListByStatus(ctx, domain.CraftPending)
}

func (uc *craftUseCase) ListApproved(ctx context.Context) ([]*domain.Craft, error) {
	return uc.crafts.ListByStatus(ctx, domain.CraftApproved)
}

func (uc *craftUseCase) Approve(ctx context.Context, id string) (*domain.Craft, error) {
	return uc.moderate(ctx, id, domain.CraftApproved)
}

func (uc *craftUseCase) Reject(ctx context.Context, id string) (*domain.Craft, error) {
	return uc.moderate(ctx, id, domain.CraftRejected)
}

// moderate sets the decision unconditionally, so repeating or reversing a decision is allowed.
func (uc *craftUseCase) moderate(ctx context.Context, id string, status domain.CraftStatus) (*domain.Craft, error) {
	craft, err := uc.crafts.UpdateStatus(ctx, id, status, uc.now())
	if err != nil {
		uc.log.Warnf("Use Case: Failed to set craft %s to %s: %v", id, status, err)
		return nil, err
	}
	uc.log.Infof("Use Case: Craft %s is now %s", id, status)
	publish(ctx, uc.publisher, uc.log, events.New(events.CraftModerated, craft.ID, map[string]string{
		"status":   string(status),
		"sellerId": craft.SellerID,
	}))
	return craft, nil
}
