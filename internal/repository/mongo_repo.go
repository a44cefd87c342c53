package repository

import (
	"context"
	"errors"
	"time"

	"github.com/nirjapatel2005/Tribal-Craft/internal/domain"
	"github.com/nirjapatel2005/Tribal-Craft/pkg/mongodb"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	_ domain.UserRepository    = (*mongoUserRepository)(nil)
	_ domain.CraftRepository   = (*mongoCraftRepository)(nil)
	_ domain.CartRepository    = (*mongoCartRepository)(nil)
	_ domain.OrderRepository   = (*mongoOrderRepository)(nil)
	_ domain.ContactRepository = (*mongoContactRepository)(nil)
)

type mongoUserRepository struct {
	coll *mongo.Collection
	log  *logrus.Logger
}

func NewMongoUserRepository(db *mongo.Database, logger *logrus.Logger) domain.UserRepository {
	return &mongoUserRepository{coll: db.Collection(mongodb.UsersCollection), log: logger}
}

func (r *mongoUserRepository) Create(ctx context.Context, user *domain.User) error {
	if err := insertOne(ctx, r.coll, user, "user with email '"+user.Email+"'"); err != nil {
		r.log.Warnf("Repository: Failed to create user %s: %v", user.Email, err)
		return err
	}
	r.log.Infof("Repository: User created with ID: %s", user.ID)
	return nil
}

func (r *mongoUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return findOne[domain.User](ctx, r.coll, byID(id), "user")
}

func (r *mongoUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return findOne[domain.User](ctx, r.coll, bson.M{"email": email}, "user")
}

type mongoCraftRepository struct {
	coll *mongo.Collection
	log  *logrus.Logger
}

func NewMongoCraftRepository(db *mongo.Database, logger *logrus.Logger) domain.CraftRepository {
	return &mongoCraftRepository{coll: db.Collection(mongodb.CraftsCollection), log: logger}
}

func (r *mongoCraftRepository) Create(ctx context.Context, craft *domain.Craft) error {
	if err := insertOne(ctx, r.coll, craft, "craft"); err != nil {
		r.log.Errorf("Repository: Failed to insert craft %s: %v", craft.ID, err)
		return err
	}
	r.log.Infof("Repository: Craft created with ID: %s", craft.ID)
	return nil
}

func (r *mongoCraftRepository) GetByID(ctx context.Context, id string) (*domain.Craft, error) {
	return findOne[domain.Craft](ctx, r.coll, byID(id), "craft")
}

func (r *mongoCraftRepository) ListByStatus(ctx context.Context, status domain.CraftStatus) ([]*domain.Craft, error) {
	return findAll[domain.Craft](ctx, r.coll, bson.M{"status": status}, oldestFirst, "crafts")
}

func (r *mongoCraftRepository) UpdateStatus(ctx context.Context, id string, status domain.CraftStatus, now time.Time) (*domain.Craft, error) {
	update := bson.M{"$set": bson.M{"status": status, "updatedAt": now}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	craft := &domain.Craft{}
	err := r.coll.FindOneAndUpdate(ctx, byID(id), update, opts).Decode(craft)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.NotFoundError("craft not found")
	}
	if err != nil {
		r.log.Errorf("Repository: Failed to update craft %s status: %v", id, err)
		return nil, domain.StorageError(err, "could not update craft status")
	}
	r.log.Infof("Repository: Craft %s status set to %s", id, status)
	return craft, nil
}

type mongoCartRepository struct {
	coll *mongo.Collection
	log  *logrus.Logger
}

func NewMongoCartRepository(db *mongo.Database, logger *logrus.Logger) domain.CartRepository {
	return &mongoCartRepository{coll: db.Collection(mongodb.CartsCollection), log: logger}
}

func (r *mongoCartRepository) GetByUserID(ctx context.Context, userID string) (*domain.Cart, error) {
	cart, err := findOne[domain.Cart](ctx, r.coll, bson.M{"userId": userID}, "cart")
	if err != nil {
		return nil, err
	}
	if cart.Items == nil {
		cart.Items = []domain.CartItem{}
	}
	return cart, nil
}

func (r *mongoCartRepository) Create(ctx context.Context, cart *domain.Cart) error {
	if err := insertOne(ctx, r.coll, cart, "cart for user "+cart.UserID); err != nil {
		r.log.Warnf("Repository: Failed to create cart for user %s: %v", cart.UserID, err)
		return err
	}
	r.log.Infof("Repository: Cart created with ID: %s for user: %s", cart.ID, cart.UserID)
	return nil
}

func (r *mongoCartRepository) Save(ctx context.Context, cart *domain.Cart) error {
	return replaceOne(ctx, r.coll, cart.ID, cart, "cart")
}

type mongoOrderRepository struct {
	coll *mongo.Collection
	log  *logrus.Logger
}

func NewMongoOrderRepository(db *mongo.Database, logger *logrus.Logger) domain.OrderRepository {
	return &mongoOrderRepository{coll: db.Collection(mongodb.OrdersCollection), log: logger}
}

func (r *mongoOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	if err := insertOne(ctx, r.coll, order, "order number "+order.OrderNumber); err != nil {
		r.log.Errorf("Repository: Failed to insert order for user %s: %v", order.UserID, err)
		return err
	}
	r.log.Infof("Repository: Order %s created with number %s", order.ID, order.OrderNumber)
	return nil
}

func (r *mongoOrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	return findOne[domain.Order](ctx, r.coll, byID(id), "order")
}

func (r *mongoOrderRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Order, error) {
	return findAll[domain.Order](ctx, r.coll, bson.M{"userId": userID}, newestFirst, "orders")
}

func (r *mongoOrderRepository) ListAll(ctx context.Context) ([]*domain.Order, error) {
	return findAll[domain.Order](ctx, r.coll, bson.M{}, newestFirst, "orders")
}

func (r *mongoOrderRepository) Save(ctx context.Context, order *domain.Order) error {
	return replaceOne(ctx, r.coll, order.ID, order, "order")
}

type mongoContactRepository struct {
	coll *mongo.Collection
	log  *logrus.Logger
}

func NewMongoContactRepository(db *mongo.Database, logger *logrus.Logger) domain.ContactRepository {
	return &mongoContactRepository{coll: db.Collection(mongodb.ContactsCollection), log: logger}
}

func (r *mongoContactRepository) Create(ctx context.Context, contact *domain.Contact) error {
	if err := insertOne(ctx, r.coll, contact, "contact submission"); err != nil {
		r.log.Errorf("Repository: Failed to insert contact submission: %v", err)
		return err
	}
	r.log.Infof("Repository: Contact submission created with ID: %s", contact.ID)
	return nil
}

func (r *mongoContactRepository) GetByID(ctx context.Context, id string) (*domain.Contact, error) {
	return findOne[domain.Contact](ctx, r.coll, byID(id), "contact submission")
}

func (r *mongoContactRepository) ListAll(ctx context.Context) ([]*domain.Contact, error) {
	return findAll[domain.Contact](ctx, r.coll, bson.M{}, newestFirst, "contact submissions")
}

func (r *mongoContactRepository) Save(ctx context.Context, contact *domain.Contact) error {
	return replaceOne(ctx, r.coll, contact.ID, contact, "contact submission")
}

func (r *mongoContactRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, byID(id))
	if err != nil {
		r.log.Errorf("Repository: Failed to delete contact submission %s: %v", id, err)
		return domain.StorageError(err, "could not delete contact submission")
	}
	if res.DeletedCount == 0 {
		return domain.NotFoundError("contact submission not found")
	}
	r.log.Infof("Repository: Contact submission %s deleted", id)
	return nil
}
