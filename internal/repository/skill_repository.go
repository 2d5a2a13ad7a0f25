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

// SkillRepository manages persistence for the shared skill catalogue.
type SkillRepository struct {
	db *sqlx.DB
}

// NewSkillRepository constructs a SkillRepository.
func NewSkillRepository(db *sqlx.DB) *SkillRepository {
	return &SkillRepository{db: db}
}

// List returns all skills ordered by name.
func (r *SkillRepository) List(ctx context.Context) ([]models.Skill, error) {
	const query = `SELECT id, name, description, created_at FROM skills ORDER BY name ASC`
	var skills []models.Skill
	if err := r.db.SelectContext(ctx, &skills, query); err != nil {
		return nil, fmt.Errorf("list skills: %w", err)
	}
	return skills, nil
}

// FindByID returns a skill by identifier.
func (r *SkillRepository) FindByID(ctx context.Context, id string) (*models.Skill, error) {
	const query = `SELECT id, name, description, created_at FROM skills WHERE id = $1 LIMIT 1`
	var skill models.Skill
	if err := r.db.GetContext(ctx, &skill, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find skill by id: %w", err)
	}
	return &skill, nil
}

// Create inserts a skill.
func (r *SkillRepository) Create(ctx context.Context, skill *models.Skill) error {
	if skill.ID == "" {
		skill.ID = uuid.NewString()
	}
	if skill.CreatedAt.IsZero() {
		skill.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO skills (id, name, description, created_at) VALUES (:id, :name, :description, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, skill); err != nil {
		return fmt.Errorf("create skill: %w", err)
	}
	return nil
}

// Update modifies a skill.
func (r *SkillRepository) Update(ctx context.Context, skill *models.Skill) error {
	const query = `UPDATE skills SET name = :name, description = :description WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, skill); err != nil {
		return fmt.Errorf("update skill: %w", err)
	}
	return nil
}

// Delete removes a skill. The course-reference guard runs in the service
// layer before this is called.
func (r *SkillRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM skills WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete skill: %w", err)
	}
	return nil
}
