package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/nirjapatel2005/Tribal-Craft/internal/domain"
	"github.com/nirjapatel2005/Tribal-Craft/internal/lock"
	"github.com/sirupsen/logrus"
)

var _ domain.CartUseCase = (*cartUseCase)(nil)

type cartUseCase struct {
	carts  domain.CartRepository
	locker lock.Locker
	log    *logrus.Logger
	now    func() time.Time
}

func NewCartUseCase(carts domain.CartRepository, locker lock.Locker, logger *logrus.Logger) domain.CartUseCase {
	return &cartUseCase{carts: carts, locker: locker, log: logger, now: time.Now}
}

func cartLockKey(userID string) string {
	return "cart:" + userID
}

// withCartLock runs fn while holding the user's cart lock.
func withCartLock(ctx context.Context, locker lock.Locker, userID string, fn func() error) error {
	unlock, err := locker.Lock(ctx, cartLockKey(userID))
	if err != nil {
		return err
	}
	defer unlock()
	return fn()
}

// loadOrCreateCart returns the user's cart, persisting a new empty one when there is none.
// A concurrent create from another instance is resolved by reading the winner's cart.
func loadOrCreateCart(ctx context.Context, carts domain.CartRepository, userID string, now time.Time) (*domain.Cart, error) {
	cart, err := carts.GetByUserID(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	cart = domain.NewCart(userID, now)
	if err := carts.Create(ctx, cart); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return carts.GetByUserID(ctx, userID)
		}
		return nil, err
	}
	return cart, nil
}

func (uc *cartUseCase) GetOrCreate(ctx context.Context, userID string) (*domain.Cart, error) {
	cart, err := loadOrCreateCart(ctx, uc.carts, userID, uc.now())
	if err != nil {
		uc.log.Errorf("Use Case: Failed to get cart for user %s: %v", userID, err)
		return nil, err
	}
	return cart, nil
}

func (uc *cartUseCase) AddItem(ctx context.Context, userID string, in domain.CartItemInput) (*domain.Cart, error) {
	unitPrice, err := in.Validate()
	if err != nil {
		uc.log.Warnf("Use Case: Add to cart rejected for user %s: %v", userID, err)
		return nil, err
	}

	var cart *domain.Cart
	err = withCartLock(ctx, uc.locker, userID, func() error {
		now := uc.now()
		c, err := loadOrCreateCart(ctx, uc.carts, userID, now)
		if err != nil {
			return err
		}
		c.AddItem(in, unitPrice)
		c.UpdatedAt = now
		if err := uc.carts.Save(ctx, c); err != nil {
			return err
		}
		cart = c
		return nil
	})
	if err != nil {
		uc.log.Errorf("Use Case: Failed to add craft %s to cart of user %s: %v", in.CraftID, userID, err)
		return nil, err
	}
	uc.log.Infof("Use Case: Craft %s added to cart of user %s, total %s", in.CraftID, userID, cart.TotalAmount)
	return cart, nil
}

func (uc *cartUseCase) RemoveItem(ctx context.Context, userID, craftID string) (*domain.Cart, error) {
	return uc.mutate(ctx, userID, "remove "+craftID, func(c *domain.Cart) { c.RemoveItem(craftID) })
}

func (uc *cartUseCase) Clear(ctx context.Context, userID string) (*domain.Cart, error) {
	return uc.mutate(ctx, userID, "clear", (*domain.Cart).Clear)
}

// mutate applies change to an existing cart under the user's lock.
func (uc *cartUseCase) mutate(ctx context.Context, userID, action string, change func(*domain.Cart)) (*domain.Cart, error) {
	var cart *domain.Cart
	err := withCartLock(ctx, uc.locker, userID, func() error {
		c, err := uc.carts.GetByUserID(ctx, userID)
		if err != nil {
			return err
		}
		change(c)
		c.UpdatedAt = uc.now()
		if err := uc.carts.Save(ctx, c); err != nil {
			return err
		}
		cart = c
		return nil
	})
	if err != nil {
		uc.log.Warnf("Use Case: Cart %s failed for user %s: %v", action, userID, err)
		return nil, err
	}
	uc.log.Infof("Use Case: Cart %s done for user %s, total %s", action, userID, cart.TotalAmount)
	return cart, nil
}
