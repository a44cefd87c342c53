package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/nirjapatel2005/Tribal-Craft/internal/domain"
	"github.com/sirupsen/logrus"
)

// The memory repositories keep copies of every entity so callers never share state with the store.

var (
	_ domain.UserRepository    = (*memoryUserRepository)(nil)
	_ domain.CraftRepository   = (*memoryCraftRepository)(nil)
	_ domain.CartRepository    = (*memoryCartRepository)(nil)
	_ domain.OrderRepository   = (*memoryOrderRepository)(nil)
	_ domain.ContactRepository = (*memoryContactRepository)(nil)
)

type memoryUserRepository struct {
	mu      sync.RWMutex
	byID    map[string]domain.User
	byEmail map[string]string
	log     *logrus.Logger
}

func NewMemoryUserRepository(logger *logrus.Logger) domain.UserRepository {
	return &memoryUserRepository{
		byID:    make(map[string]domain.User),
		byEmail: make(map[string]string),
		log:     logger,
	}
}

func (r *memoryUserRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byEmail[user.Email]; exists {
		r.log.Warnf("Repository: Duplicate email on create user: %s", user.Email)
		return domain.ConflictError("user with email '%s' already exists", user.Email)
	}
	r.byID[user.ID] = *user
	r.byEmail[user.Email] = user.ID
	r.log.Infof("Repository: User created with ID: %s", user.ID)
	return nil
}

func (r *memoryUserRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.byID[id]
	if !ok {
		return nil, domain.NotFoundError("user not found")
	}
	return &user, nil
}

func (r *memoryUserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[email]
	if !ok {
		return nil, domain.NotFoundError("user not found")
	}
	user := r.byID[id]
	return &user, nil
}

type memoryCraftRepository struct {
	mu     sync.RWMutex
	crafts map[string]domain.Craft
	seq    []string
	log    *logrus.Logger
}

func NewMemoryCraftRepository(logger *logrus.Logger) domain.CraftRepository {
	return &memoryCraftRepository{crafts: make(map[string]domain.Craft), log: logger}
}

func (r *memoryCraftRepository) Create(_ context.Context, craft *domain.Craft) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.crafts[craft.ID]; exists {
		return domain.ConflictError("craft %s already exists", craft.ID)
	}
	r.crafts[craft.ID] = *craft
	r.seq = append(r.seq, craft.ID)
	r.log.Infof("Repository: Craft created with ID: %s", craft.ID)
	return nil
}

func (r *memoryCraftRepository) GetByID(_ context.Context, id string) (*domain.Craft, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	craft, ok := r.crafts[id]
	if !ok {
		return nil, domain.NotFoundError("craft not found")
	}
	return &craft, nil
}

// ListByStatus returns matching crafts in submission order.
func (r *memoryCraftRepository) ListByStatus(_ context.Context, status domain.CraftStatus) ([]*domain.Craft, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Craft, 0)
	for _, id := range r.seq {
		craft := r.crafts[id]
		if craft.Status == status {
			out = append(out, &craft)
		}
	}
	return out, nil
}

func (r *memoryCraftRepository) UpdateStatus(_ context.Context, id string, status domain.CraftStatus, now time.Time) (*domain.Craft, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	craft, ok := r.crafts[id]
	if !ok {
		return nil, domain.NotFoundError("craft not found")
	}
	craft.Status = status
	craft.UpdatedAt = now
	r.crafts[id] = craft
	r.log.Infof("Repository: Craft %s status set to %s", id, status)
	return &craft, nil
}

type memoryCartRepository struct {
	mu     sync.RWMutex
	byUser map[string]*domain.Cart
	log    *logrus.Logger
}

func NewMemoryCartRepository(logger *logrus.Logger) domain.CartRepository {
	return &memoryCartRepository{byUser: make(map[string]*domain.Cart), log: logger}
}

func (r *memoryCartRepository) GetByUserID(_ context.Context, userID string) (*domain.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cart, ok := r.byUser[userID]
	if !ok {
		return nil, domain.NotFoundError("cart not found")
	}
	return cart.Clone(), nil
}

func (r *memoryCartRepository) Create(_ context.Context, cart *domain.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byUser[cart.UserID]; exists {
		return domain.ConflictError("cart for user %s already exists", cart.UserID)
	}
	r.byUser[cart.UserID] = cart.Clone()
	r.log.Infof("Repository: Cart created with ID: %s for user: %s", cart.ID, cart.UserID)
	return nil
}

func (r *memoryCartRepository) Save(_ context.Context, cart *domain.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.byUser[cart.UserID]
	if !ok || existing.ID != cart.ID {
		return domain.NotFoundError("cart not found")
	}
	r.byUser[cart.UserID] = cart.Clone()
	return nil
}

type memoryOrderRepository struct {
	mu       sync.RWMutex
	orders   map[string]*domain.Order
	byNumber map[string]string
	seq      []string
	log      *logrus.Logger
}

func NewMemoryOrderRepository(logger *logrus.Logger) domain.OrderRepository {
	return &memoryOrderRepository{
		orders:   make(map[string]*domain.Order),
		byNumber: make(map[string]string),
		log:      logger,
	}
}

func (r *memoryOrderRepository) Create(_ context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byNumber[order.OrderNumber]; exists {
		return domain.ConflictError("order number %s already exists", order.OrderNumber)
	}
	r.orders[order.ID] = order.Clone()
	r.byNumber[order.OrderNumber] = order.ID
	r.seq = append(r.seq, order.ID)
	r.log.Infof("Repository: Order %s created with number %s", order.ID, order.OrderNumber)
	return nil
}

func (r *memoryOrderRepository) GetByID(_ context.Context, id string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, domain.NotFoundError("order not found")
	}
	return order.Clone(), nil
}

func (r *memoryOrderRepository) ListByUserID(_ context.Context, userID string) ([]*domain.Order, error) {
	return r.list(func(o *domain.Order) bool { return o.UserID == userID }), nil
}

func (r *memoryOrderRepository) ListAll(_ context.Context) ([]*domain.Order, error) {
	return r.list(func(*domain.Order) bool { return true }), nil
}

// list returns matching orders newest first; equal timestamps keep the later insert first.
func (r *memoryOrderRepository) list(match func(*domain.Order) bool) []*domain.Order {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Order, 0)
	for i := len(r.seq) - 1; i >= 0; i-- {
		if order := r.orders[r.seq[i]]; match(order) {
			out = append(out, order.Clone())
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *memoryOrderRepository) Save(_ context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[order.ID]; !ok {
		return domain.NotFoundError("order not found")
	}
	r.orders[order.ID] = order.Clone()
	return nil
}

type memoryContactRepository struct {
	mu       sync.RWMutex
	contacts map[string]domain.Contact
	seq      []string
	log      *logrus.Logger
}

func NewMemoryContactRepository(logger *logrus.Logger) domain.ContactRepository {
	return &memoryContactRepository{contacts: make(map[string]domain.Contact), log: logger}
}

func (r *memoryContactRepository) Create(_ context.Context, contact *domain.Contact) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.contacts[contact.ID] = *contact
	r.seq = append(r.seq, contact.ID)
	r.log.Infof("Repository: Contact submission created with ID: %s", contact.ID)
	return nil
}

func (r *memoryContactRepository) GetByID(_ context.Context, id string) (*domain.Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	contact, ok := r.contacts[id]
	if !ok {
		return nil, domain.NotFoundError("contact submission not found")
	}
	return &contact, nil
}

func (r *memoryContactRepository) ListAll(_ context.Context) ([]*domain.Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Contact, 0, len(r.seq))
	for i := len(r.seq) - 1; i >= 0; i-- {
		contact, ok := r.contacts[r.seq[i]]
		if ok {
			out = append(out, &contact)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memoryContactRepository) Save(_ context.Context, contact *domain.Contact) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.contacts[contact.ID]; !ok {
		return domain.NotFoundError("contact submission not found")
	}
	r.contacts[contact.ID] = *contact
	return nil
}

func (r *memoryContactRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.contacts[id]; !ok {
		return domain.NotFoundError("contact submission not found")
	}
	delete(r.contacts, id)
	for i, seqID := range r.seq {
		if seqID == id {
			r.seq = append(r.seq[:i], r.seq[i+1:]...)
			break
		}
	}
	r.log.Infof("Repository: Contact submission %s deleted", id)
	return nil
}
