package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nirjapatel2005/Tribal-Craft/internal/domain"
	"github.com/sirupsen/logrus"
)

var _ domain.CraftRepository = (*postgresCraftRepository)(nil)

type postgresCraftRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresCraftRepository(db *sql.DB, logger *logrus.Logger) domain.CraftRepository {
	return &postgresCraftRepository{db: db, log: logger}
}

func (r *postgresCraftRepository) Create(ctx context.Context, craft *domain.Craft) error {
	data, err := json.Marshal(craft)
	if err != nil {
		return domain.StorageError(err, "failed to encode craft")
	}

	query := `
        INSERT INTO crafts (id, status, data, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5)
    `
	_, err = r.db.ExecContext(ctx, query, craft.ID, craft.Status, data, craft.CreatedAt, craft.UpdatedAt)
	if err != nil {
		switch pqErrorCode(err) {
		case pqUniqueViolation:
			return domain.ConflictError("craft %s already exists", craft.ID)
		case pqCheckViolation:
			return domain.ValidationError("invalid craft status %q", craft.Status)
		}
		r.log.Errorf("Repository: Failed to insert craft %s: %v", craft.ID, err)
		return domain.StorageError(err, "could not create craft")
	}
	r.log.Infof("Repository: Craft created with ID: %s", craft.ID)
	return nil
}

func (r *postgresCraftRepository) GetByID(ctx context.Context, id string) (*domain.Craft, error) {
	craft, err := scanDocument[domain.Craft](r.db.QueryRowContext(ctx, `SELECT data FROM crafts WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundError("craft not found")
	}
	if err != nil {
		r.log.Errorf("Repository: Failed to load craft %s: %v", id, err)
		return nil, domain.StorageError(err, "could not load craft")
	}
	return craft, nil
}

func (r *postgresCraftRepository) ListByStatus(ctx context.Context, status domain.CraftStatus) ([]*domain.Craft, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT data FROM crafts WHERE status = $1 ORDER BY created_at ASC`, status)
	if err != nil {
		r.log.Errorf("Repository: Failed to list %s crafts: %v", status, err)
		return nil, domain.StorageError(err, "could not list crafts")
	}
	crafts, err := scanDocuments[domain.Craft](rows)
	if err != nil {
		return nil, domain.StorageError(err, "could not read crafts")
	}
	return crafts, nil
}

// UpdateStatus rewrites the document under a row lock so the status column and the JSON agree.
func (r *postgresCraftRepository) UpdateStatus(ctx context.Context, id string, status domain.CraftStatus, now time.Time) (craft *domain.Craft, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		r.log.Errorf("Repository: Failed to begin transaction: %v", err)
		return nil, domain.StorageError(err, "could not start transaction")
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				r.log.Errorf("Repository: Failed to rollback transaction: %v", rbErr)
			}
			return
		}
		if cErr := tx.Commit(); cErr != nil {
			r.log.Errorf("Repository: Failed to commit transaction: %v", cErr)
			craft, err = nil, domain.StorageError(cErr, "failed to commit craft status")
		}
	}()

	craft, err = scanDocument[domain.Craft](tx.QueryRowContext(ctx, `SELECT data FROM crafts WHERE id = $1 FOR UPDATE`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundError("craft not found")
	}
	if err != nil {
		return nil, domain.StorageError(err, "could not load craft")
	}

	craft.Status = status
	craft.UpdatedAt = now
	data, err := json.Marshal(craft)
	if err != nil {
		return nil, domain.StorageError(err, "failed to encode craft")
	}
	if _, err = tx.ExecContext(ctx, `UPDATE crafts SET status = $2, data = $3, updated_at = $4 WHERE id = $1`,
		id, status, data, now); err != nil {
		r.log.Errorf("Repository: Failed to update craft %s status: %v", id, err)
		return nil, domain.StorageError(fmt.Errorf("update craft %s: %w", id, err), "could not update craft status")
	}
	r.log.Infof("Repository: Craft %s status set to %s", id, status)
	return craft, nil
}
