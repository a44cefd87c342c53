package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/nirjapatel2005/Tribal-Craft/internal/domain"
	"github.com/sirupsen/logrus"
)

var _ domain.UserRepository = (*postgresUserRepository)(nil)

type postgresUserRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresUserRepository(db *sql.DB, logger *logrus.Logger) domain.UserRepository {
	return &postgresUserRepository{db: db, log: logger}
}

func (r *postgresUserRepository) Create(ctx context.Context, user *domain.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return domain.StorageError(err, "failed to encode user")
	}

	query := `
        INSERT INTO users (id, email, password_hash, data, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6)
    `
	_, err = r.db.ExecContext(ctx, query, user.ID, user.Email, user.PasswordHash, data, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		if pqErrorCode(err) == pqUniqueViolation {
			r.log.Warnf("Repository: Duplicate email on create user: %s", user.Email)
			return domain.ConflictError("user with email '%s' already exists", user.Email)
		}
		r.log.Errorf("Repository: Failed to insert user %s: %v", user.Email, err)
		return domain.StorageError(err, "could not create user")
	}
	r.log.Infof("Repository: User created with ID: %s", user.ID)
	return nil
}

func (r *postgresUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.getOne(ctx, `SELECT password_hash, data FROM users WHERE id = $1`, id)
}

func (r *postgresUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, `SELECT password_hash, data FROM users WHERE email = $1`, email)
}

func (r *postgresUserRepository) getOne(ctx context.Context, query string, arg string) (*domain.User, error) {
	var (
		hash string
		raw  []byte
	)
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&hash, &raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundError("user not found")
	}
	if err != nil {
		r.log.Errorf("Repository: Failed to load user %s: %v", arg, err)
		return nil, domain.StorageError(err, "could not load user")
	}

	user := &domain.User{}
	if err := json.Unmarshal(raw, user); err != nil {
		return nil, domain.StorageError(err, "corrupt user document")
	}
	user.PasswordHash = hash
	return user, nil
}
