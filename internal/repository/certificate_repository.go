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

// CertificateRepository manages persistence for issued certificates.
type CertificateRepository struct {
	db *sqlx.DB
}

// NewCertificateRepository constructs a CertificateRepository.
func NewCertificateRepository(db *sqlx.DB) *CertificateRepository {
	return &CertificateRepository{db: db}
}

const certificateColumns = `id, serial, college_id, student_id, student_name, course_id, course_title, file_path, issued_by, issued_at`

// Create inserts an issued certificate record.
func (r *CertificateRepository) Create(ctx context.Context, cert *models.Certificate) error {
	if cert.ID == "" {
		cert.ID = uuid.NewString()
	}
	if cert.IssuedAt.IsZero() {
		cert.IssuedAt = time.Now().UTC()
	}
	const query = `INSERT INTO certificates (id, serial, college_id, student_id, student_name, course_id, course_title, file_path, issued_by, issued_at)
        VALUES (:id, :serial, :college_id, :student_id, :student_name, :course_id, :course_title, :file_path, :issued_by, :issued_at)`
	if _, err := r.db.NamedExecContext(ctx, query, cert); err != nil {
		return fmt.Errorf("create certificate: %w", err)
	}
	return nil
}

// FindByID returns a certificate by identifier.
func (r *CertificateRepository) FindByID(ctx context.Context, id string) (*models.Certificate, error) {
	query := fmt.Sprintf(`SELECT %s FROM certificates WHERE id = $1 LIMIT 1`, certificateColumns)
	var cert models.Certificate
	if err := r.db.GetContext(ctx, &cert, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find certificate by id: %w", err)
	}
	return &cert, nil
}

// FindByStudentAndCourse returns an existing certificate for the pair, if
// one was already issued.
func (r *CertificateRepository) FindByStudentAndCourse(ctx context.Context, studentID, courseID string) (*models.Certificate, error) {
	query := fmt.Sprintf(`SELECT %s FROM certificates WHERE student_id = $1 AND course_id = $2 LIMIT 1`, certificateColumns)
	var cert models.Certificate
	if err := r.db.GetContext(ctx, &cert, query, studentID, courseID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find certificate by student and course: %w", err)
	}
	return &cert, nil
}

// ListByCollege returns certificates issued to one college's students.
func (r *CertificateRepository) ListByCollege(ctx context.Context, collegeID string) ([]models.Certificate, error) {
	query := fmt.Sprintf(`SELECT %s FROM certificates WHERE college_id = $1 ORDER BY issued_at DESC`, certificateColumns)
	var certs []models.Certificate
	if err := r.db.SelectContext(ctx, &certs, query, collegeID); err != nil {
		return nil, fmt.Errorf("list certificates by college: %w", err)
	}
	return certs, nil
}

// NextSerial produces the next sequential certificate serial for a year.
func (r *CertificateRepository) NextSerial(ctx context.Context, year int) (string, error) {
	const query = `SELECT COUNT(*) FROM certificates WHERE EXTRACT(YEAR FROM issued_at) = $1`
	var count int
	if err := r.db.GetContext(ctx, &count, query, year); err != nil {
		return "", fmt.Errorf("count certificates for serial: %w", err)
	}
	return fmt.Sprintf("NKM-%d-%05d", year, count+1), nil
}
