package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/nirjapatel2005/Tribal-Craft/internal/domain"
	"github.com/sirupsen/logrus"
)

var _ domain.ContactRepository = (*postgresContactRepository)(nil)

type postgresContactRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresContactRepository(db *sql.DB, logger *logrus.Logger) domain.ContactRepository {
	return &postgresContactRepository{db: db, log: logger}
}

func (r *postgresContactRepository) Create(ctx context.Context, contact *domain.Contact) error {
	data, err := json.Marshal(contact)
	if err != nil {
		return domain.StorageError(err, "failed to encode contact submission")
	}
	_, err = r.db.ExecContext(ctx, `INSERT INTO contacts (id, data, created_at, updated_at) VALUES ($1, $2, $3, $4)`,
		contact.ID, data, contact.CreatedAt, contact.UpdatedAt)
	if err != nil {
		r.log.Errorf("Repository: Failed to insert contact submission: %v", err)
		return domain.StorageError(err, "could not create contact submission")
	}
	r.log.Infof("Repository: Contact submission created with ID: %s", contact.ID)
	return nil
}

func (r *postgresContactRepository) GetByID(ctx context.Context, id string) (*domain.Contact, error) {
	contact, err := scanDocument[domain.Contact](r.db.QueryRowContext(ctx, `SELECT data FROM contacts WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundError("contact submission not found")
	}
	if err != nil {
		r.log.Errorf("Repository: Failed to load contact submission %s: %v", id, err)
		return nil, domain.StorageError(err, "could not load contact submission")
	}
	return contact, nil
}

func (r *postgresContactRepository) ListAll(ctx context.Context) ([]*domain.Contact, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT data FROM contacts ORDER BY created_at DESC`)
	if err != nil {
		r.log.Errorf("Repository: Failed to list contact submissions: %v", err)
		return nil, domain.StorageError(err, "could not list contact submissions")
	}
	contacts, err := scanDocuments[domain.Contact](rows)
	if err != nil {
		return nil, domain.StorageError(err, "could not read contact submissions")
	}
	return contacts, nil
}

func (r *postgresContactRepository) Save(ctx context.Context, contact *domain.Contact) error {
	data, err := json.Marshal(contact)
	if err != nil {
		return domain.StorageError(err, "failed to encode contact submission")
	}
	res, err := r.db.ExecContext(ctx, `UPDATE contacts SET data = $2, updated_at = $3 WHERE id = $1`, contact.ID, data, contact.UpdatedAt)
	if err != nil {
		r.log.Errorf("Repository: Failed to save contact submission %s: %v", contact.ID, err)
		return domain.StorageError(err, "could not save contact submission")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NotFoundError("contact submission not found")
	}
	return nil
}

func (r *postgresContactRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM contacts WHERE id = $1`, id)
	if err != nil {
		r.log.Errorf("Repository: Failed to delete contact submission %s: %v", id, err)
		return domain.StorageError(err, "could not delete contact submission")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NotFoundError("contact submission not found")
	}
	r.log.Infof("Repository: Contact submission %s deleted", id)
	return nil
}
