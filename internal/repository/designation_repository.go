package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/nunukkam/admin-portal-api/internal/models"
)

// DesignationRepository manages persistence for job designations.
type DesignationRepository struct {
	db *sqlx.DB
}

// NewDesignationRepository constructs a DesignationRepository.
func NewDesignationRepository(db *sqlx.DB) *DesignationRepository {
	return &DesignationRepository{db: db}
}

// List returns all designations ordered by title.
func (r *DesignationRepository) List(ctx context.Context) ([]models.Designation, error) {
	const query = `SELECT id, title, created_at FROM designations ORDER BY title ASC`
	var designations []models.Designation
	if err := r.db.SelectContext(ctx, &designations, query); err != nil {
		return nil, fmt.Errorf("list designations: %w", err)
	}
	return designations, nil
}

// FindByID returns a designation by identifier.
func (r *DesignationRepository) FindByID(ctx context.Context, id string) (*models.Designation, error) {
	const query = `SELECT id, title, created_at FROM designations WHERE id = $1 LIMIT 1`
	var d models.Designation
	if err := r.db.GetContext(ctx, &d, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find designation by id: %w", err)
	}
	return &d, nil
}

// Create inserts a designation.
func (r *DesignationRepository) Create(ctx context.Context, d *models.Designation) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO designations (id, title, created_at) VALUES (:id, :title, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, d); err != nil {
		return fmt.Errorf("create designation: %w", err)
	}
	return nil
}

// Update renames a designation.
func (r *DesignationRepository) Update(ctx context.Context, d *models.Designation) error {
	const query = `UPDATE designations SET title = :title WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, d); err != nil {
		return fmt.Errorf("update designation: %w", err)
	}
	return nil
}

// Delete removes a designation. The active-reference guard runs in the
// service layer.
func (r *DesignationRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM designations WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete designation: %w", err)
	}
	return nil
}
