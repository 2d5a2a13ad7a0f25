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

// CollegeRepository manages persistence for partner colleges. Students,
// training schedules and assessment deadlines are owned by the college row
// and persist as JSONB columns; student mutations always rewrite through
// the owning college.
type CollegeRepository struct {
	db *sqlx.DB
}

// NewCollegeRepository constructs a CollegeRepository.
func NewCollegeRepository(db *sqlx.DB) *CollegeRepository {
	return &CollegeRepository{db: db}
}

const collegeColumns = `id, name, university, city, state, address, pincode, poc_name, poc_number, program_coordinator, students, schedules, assessment_deadlines, created_at, updated_at`

// List returns colleges matching the provided filters with total count.
func (r *CollegeRepository) List(ctx context.Context, filter models.CollegeFilter) ([]models.College, int, error) {
	baseQuery := `FROM colleges WHERE 1=1`
	var conditions []string
	var args []interface{}

	if filter.State != "" {
		conditions = append(conditions, fmt.Sprintf("state = $%d", len(args)+1))
		args = append(args, filter.State)
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(LOWER(name) LIKE $%d OR LOWER(city) LIKE $%d)", len(args)+1, len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}
	if len(conditions) > 0 {
		baseQuery += " AND " + strings.Join(conditions, " AND ")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	listQuery := fmt.Sprintf("SELECT %s %s ORDER BY name ASC LIMIT %d OFFSET %d", collegeColumns, baseQuery, pageSize, offset)

	var colleges []models.College
	if err := r.db.SelectContext(ctx, &colleges, listQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("list colleges: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", baseQuery)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count colleges: %w", err)
	}
	return colleges, total, nil
}

// FindByID returns a college by identifier.
func (r *CollegeRepository) FindByID(ctx context.Context, id string) (*models.College, error) {
	query := fmt.Sprintf(`SELECT %s FROM colleges WHERE id = $1 LIMIT 1`, collegeColumns)
	var college models.College
	if err := r.db.GetContext(ctx, &college, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find college by id: %w", err)
	}
	return &college, nil
}

// Create inserts a new college.
func (r *CollegeRepository) Create(ctx context.Context, college *models.College) error {
	if college.ID == "" {
		college.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if college.CreatedAt.IsZero() {
		college.CreatedAt = now
	}
	college.UpdatedAt = now
	const query = `INSERT INTO colleges (id, name, university, city, state, address, pincode, poc_name, poc_number, program_coordinator, students, schedules, assessment_deadlines, created_at, updated_at)
        VALUES (:id, :name, :university, :city, :state, :address, :pincode, :poc_name, :poc_number, :program_coordinator, :students, :schedules, :assessment_deadlines, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, college); err != nil {
		return fmt.Errorf("create college: %w", err)
	}
	return nil
}

// Update modifies college profile fields, schedules and deadlines. The
// student roster moves through UpdateStudents.
func (r *CollegeRepository) Update(ctx context.Context, college *models.College) error {
	college.UpdatedAt = time.Now().UTC()
	const query = `UPDATE colleges SET name = :name, university = :university, city = :city, state = :state, address = :address, pincode = :pincode, poc_name = :poc_name, poc_number = :poc_number, program_coordinator = :program_coordinator, schedules = :schedules, assessment_deadlines = :assessment_deadlines, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, college); err != nil {
		return fmt.Errorf("update college: %w", err)
	}
	return nil
}

// UpdateStudents rewrites the student roster of one college.
func (r *CollegeRepository) UpdateStudents(ctx context.Context, collegeID string, students models.StudentList) error {
	const query = `UPDATE colleges SET students = $2, updated_at = $3 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, collegeID, students, time.Now().UTC()); err != nil {
		return fmt.Errorf("update college students: %w", err)
	}
	return nil
}

// Delete removes a college and the roster it owns.
func (r *CollegeRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM colleges WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete college: %w", err)
	}
	return nil
}

// Count returns the total college count.
func (r *CollegeRepository) Count(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(*) FROM colleges`
	var count int
	if err := r.db.GetContext(ctx, &count, query); err != nil {
		return 0, fmt.Errorf("count colleges: %w", err)
	}
	return count, nil
}

// CountStudents sums roster sizes across all colleges.
func (r *CollegeRepository) CountStudents(ctx context.Context) (int, error) {
	const query = `SELECT COALESCE(SUM(jsonb_array_length(students)), 0) FROM colleges`
	var count int
	if err := r.db.GetContext(ctx, &count, query); err != nil {
		return 0, fmt.Errorf("count students: %w", err)
	}
	return count, nil
}
