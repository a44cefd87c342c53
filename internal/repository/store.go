package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/nirjapatel2005/Tribal-Craft/config"
	"github.com/nirjapatel2005/Tribal-Craft/internal/domain"
	"github.com/nirjapatel2005/Tribal-Craft/pkg/db"
	"github.com/nirjapatel2005/Tribal-Craft/pkg/mongodb"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Store bundles the repositories of one backend together with its health check and shutdown.
type Store struct {
	Driver   string
	Users    domain.UserRepository
	Crafts   domain.CraftRepository
	Carts    domain.CartRepository
	Orders   domain.OrderRepository
	Contacts domain.ContactRepository

	ping  func(ctx context.Context) error
	close func(ctx context.Context) error
}

func (s *Store) Ping(ctx context.Context) error {
	if s.ping == nil {
		return nil
	}
	return s.ping(ctx)
}

func (s *Store) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}

// NewStore connects the backend named by cfg.StoreDriver and prepares its schema.
func NewStore(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*Store, error) {
	switch cfg.StoreDriver {
	case config.DriverMongo:
		client, database, err := mongodb.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, err
		}
		if err := mongodb.EnsureIndexes(ctx, database); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		logger.Infof("Repository: Connected to MongoDB database %s", cfg.MongoDatabase)
		return NewMongoStore(client, database, logger), nil

	case config.DriverPostgres:
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := db.Migrate(ctx, database); err != nil {
			_ = database.Close()
			return nil, err
		}
		logger.Info("Repository: Connected to PostgreSQL and applied migrations")
		return NewPostgresStore(database, logger), nil

	case config.DriverMemory:
		logger.Warn("Repository: Using in-memory store, data will not survive a restart")
		return NewMemoryStore(logger), nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

func NewMemoryStore(logger *logrus.Logger) *Store {
	return &Store{
		Driver:   config.DriverMemory,
		Users:    NewMemoryUserRepository(logger),
		Crafts:   NewMemoryCraftRepository(logger),
		Carts:    NewMemoryCartRepository(logger),
		Orders:   NewMemoryOrderRepository(logger),
		Contacts: NewMemoryContactRepository(logger),
	}
}

func NewPostgresStore(database *sql.DB, logger *logrus.Logger) *Store {
	return &Store{
		Driver:   config.DriverPostgres,
		Users:    NewPostgresUserRepository(database, logger),
		Crafts:   NewPostgresCraftRepository(database, logger),
		Carts:    NewPostgresCartRepository(database, logger),
		Orders:   NewPostgresOrderRepository(database, logger),
		Contacts: NewPostgresContactRepository(database, logger),
		ping:     database.PingContext,
		close:    func(context.Context) error { return database.Close() },
	}
}

func NewMongoStore(client *mongo.Client, database *mongo.Database, logger *logrus.Logger) *Store {
	return &Store{
		Driver:   config.DriverMongo,
		Users:    NewMongoUserRepository(database, logger),
		Crafts:   NewMongoCraftRepository(database, logger),
		Carts:    NewMongoCartRepository(database, logger),
		Orders:   NewMongoOrderRepository(database, logger),
		Contacts: NewMongoContactRepository(database, logger),
		ping:     func(ctx context.Context) error { return client.Ping(ctx, readpref.Primary()) },
		close:    client.Disconnect,
	}
}
