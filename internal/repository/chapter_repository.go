package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/nunukkam/admin-portal-api/internal/models"
)

// ChapterRepository manages persistence for chapters. Assessments nest
// inside the chapter row as JSONB; they have no table of their own.
type ChapterRepository struct {
	db *sqlx.DB
}

// NewChapterRepository constructs a ChapterRepository.
func NewChapterRepository(db *sqlx.DB) *ChapterRepository {
	return &ChapterRepository{db: db}
}

const chapterColumns = `id, name, skills, assessments, created_at`

// List returns chapters, optionally filtered by a name search.
func (r *ChapterRepository) List(ctx context.Context, search string) ([]models.Chapter, error) {
	query := fmt.Sprintf(`SELECT %s FROM chapters`, chapterColumns)
	var args []interface{}
	if search != "" {
		query += " WHERE LOWER(name) LIKE $1"
		args = append(args, "%"+strings.ToLower(search)+"%")
	}
	query += " ORDER BY created_at ASC"

	var chapters []models.Chapter
	if err := r.db.SelectContext(ctx, &chapters, query, args...); err != nil {
		return nil, fmt.Errorf("list chapters: %w", err)
	}
	return chapters, nil
}

// FindByID returns a chapter by identifier.
func (r *ChapterRepository) FindByID(ctx context.Context, id string) (*models.Chapter, error) {
	query := fmt.Sprintf(`SELECT %s FROM chapters WHERE id = $1 LIMIT 1`, chapterColumns)
	var chapter models.Chapter
	if err := r.db.GetContext(ctx, &chapter, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find chapter by id: %w", err)
	}
	return &chapter, nil
}

// Create inserts a new chapter with its nested assessments.
func (r *ChapterRepository) Create(ctx context.Context, chapter *models.Chapter) error {
	if chapter.ID == "" {
		chapter.ID = uuid.NewString()
	}
	if chapter.CreatedAt.IsZero() {
		chapter.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO chapters (id, name, skills, assessments, created_at) VALUES (:id, :name, :skills, :assessments, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, chapter); err != nil {
		return fmt.Errorf("create chapter: %w", err)
	}
	return nil
}

// Update replaces a chapter including the full assessment payload.
func (r *ChapterRepository) Update(ctx context.Context, chapter *models.Chapter) error {
	const query = `UPDATE chapters SET name = :name, skills = :skills, assessments = :assessments WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, chapter); err != nil {
		return fmt.Errorf("update chapter: %w", err)
	}
	return nil
}

// Delete removes a chapter.
func (r *ChapterRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM chapters WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete chapter: %w", err)
	}
	return nil
}

// Count returns the total chapter count.
func (r *ChapterRepository) Count(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(*) FROM chapters`
	var count int
	if err := r.db.GetContext(ctx, &count, query); err != nil {
		return 0, fmt.Errorf("count chapters: %w", err)
	}
	return count, nil
}
