package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/nirjapatel2005/Tribal-Craft/internal/domain"
	"github.com/sirupsen/logrus"
)

var _ domain.CartRepository = (*postgresCartRepository)(nil)

type postgresCartRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresCartRepository(db *sql.DB, logger *logrus.Logger) domain.CartRepository {
	return &postgresCartRepository{db: db, log: logger}
}

func (r *postgresCartRepository) GetByUserID(ctx context.Context, userID string) (*domain.Cart, error) {
	cart, err := scanDocument[domain.Cart](r.db.QueryRowContext(ctx, `SELECT data FROM carts WHERE user_id = $1`, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundError("cart not found")
	}
	if err != nil {
		r.log.Errorf("Repository: Failed to load cart for user %s: %v", userID, err)
		return nil, domain.StorageError(err, "could not load cart")
	}
	if cart.Items == nil {
		cart.Items = []domain.CartItem{}
	}
	return cart, nil
}

func (r *postgresCartRepository) Create(ctx context.Context, cart *domain.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return domain.StorageError(err, "failed to encode cart")
	}

	query := `
        INSERT INTO carts (id, user_id, data, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5)
    `
	_, err = r.db.ExecContext(ctx, query, cart.ID, cart.UserID, data, cart.CreatedAt, cart.UpdatedAt)
	if err != nil {
		if pqErrorCode(err) == pqUniqueViolation {
			r.log.Warnf("Repository: Cart for user %s already exists", cart.UserID)
			return domain.ConflictError("cart for user %s already exists", cart.UserID)
		}
		r.log.Errorf("Repository: Failed to insert cart for user %s: %v", cart.UserID, err)
		return domain.StorageError(err, "could not create cart")
	}
	r.log.Infof("Repository: Cart created with ID: %s for user: %s", cart.ID, cart.UserID)
	return nil
}

func (r *postgresCartRepository) Save(ctx context.Context, cart *domain.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return domain.StorageError(err, "failed to encode cart")
	}

	res, err := r.db.ExecContext(ctx, `UPDATE carts SET data = $2, updated_at = $3 WHERE id = $1`, cart.ID, data, cart.UpdatedAt)
	if err != nil {
		r.log.Errorf("Repository: Failed to save cart %s: %v", cart.ID, err)
		return domain.StorageError(err, "could not save cart")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NotFoundError("cart not found")
	}
	return nil
}
