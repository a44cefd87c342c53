package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/nirjapatel2005/Tribal-Craft/internal/domain"
	"github.com/sirupsen/logrus"
)

var _ domain.OrderRepository = (*postgresOrderRepository)(nil)

type postgresOrderRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresOrderRepository(db *sql.DB, logger *logrus.Logger) domain.OrderRepository {
	return &postgresOrderRepository{db: db, log: logger}
}

func (r *postgresOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	data, err := json.Marshal(order)
	if err != nil {
		return domain.StorageError(err, "failed to encode order")
	}

	query := `
        INSERT INTO orders (id, user_id, order_number, data, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6)
    `
	_, err = r.db.ExecContext(ctx, query, order.ID, order.UserID, order.OrderNumber, data, order.CreatedAt, order.UpdatedAt)
	if err != nil {
		if pqErrorCode(err) == pqUniqueViolation {
			r.log.Warnf("Repository: Duplicate order number %s", order.OrderNumber)
			return domain.ConflictError("order number %s already exists", order.OrderNumber)
		}
		r.log.Errorf("Repository: Failed to insert order for user %s: %v", order.UserID, err)
		return domain.StorageError(err, "could not create order")
	}
	r.log.Infof("Repository: Order %s created with number %s", order.ID, order.OrderNumber)
	return nil
}

func (r *postgresOrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	order, err := scanDocument[domain.Order](r.db.QueryRowContext(ctx, `SELECT data FROM orders WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundError("order not found")
	}
	if err != nil {
		r.log.Errorf("Repository: Failed to load order %s: %v", id, err)
		return nil, domain.StorageError(err, "could not load order")
	}
	return order, nil
}

func (r *postgresOrderRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Order, error) {
	return r.list(ctx, `SELECT data FROM orders WHERE user_id = $1 ORDER BY created_at DESC`, userID)
}

func (r *postgresOrderRepository) ListAll(ctx context.Context) ([]*domain.Order, error) {
	return r.list(ctx, `SELECT data FROM orders ORDER BY created_at DESC`)
}

func (r *postgresOrderRepository) list(ctx context.Context, query string, args ...interface{}) ([]*domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.log.Errorf("Repository: Failed to list orders: %v", err)
		return nil, domain.StorageError(err, "could not list orders")
	}
	orders, err := scanDocuments[domain.Order](rows)
	if err != nil {
		return nil, domain.StorageError(err, "could not read orders")
	}
	return orders, nil
}

func (r *postgresOrderRepository) Save(ctx context.Context, order *domain.Order) error {
	data, err := json.Marshal(order)
	if err != nil {
		return domain.StorageError(err, "failed to encode order")
	}

	res, err := r.db.ExecContext(ctx, `UPDATE orders SET data = $2, updated_at = $3 WHERE id = $1`, order.ID, data, order.UpdatedAt)
	if err != nil {
		r.log.Errorf("Repository: Failed to save order %s: %v", order.ID, err)
		return domain.StorageError(err, "could not save order")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NotFoundError("order not found")
	}
	return nil
}
