package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/nunukkam/admin-portal-api/internal/models"
	appErrors "github.com/nunukkam/admin-portal-api/pkg/errors"
	"github.com/nunukkam/admin-portal-api/pkg/export"
	"github.com/nunukkam/admin-portal-api/pkg/storage"
)

type certificateRepository interface {
	Create(ctx context.Context, cert *models.Certificate) error
	FindByID(ctx context.Context, id string) (*models.Certificate, error)
	FindByStudentAndCourse(ctx context.Context, studentID, courseID string) (*models.Certificate, error)
	ListByCollege(ctx context.Context, collegeID string) ([]models.Certificate, error)
	NextSerial(ctx context.Context, year int) (string, error)
}

type certificateCollegeSource interface {
	FindByID(ctx context.Context, id string) (*models.College, error)
}

type certificateCourseSource interface {
	FindByID(ctx context.Context, id string) (*models.Course, error)
}

// IssueCertificateRequest is the payload for issuing a certificate.
type IssueCertificateRequest struct {
	CollegeID string `json:"college_id" validate:"required"`
	StudentID string `json:"student_id" validate:"required"`
	CourseID  string `json:"course_id" validate:"required"`
}

// CertificateService issues completion certificates as PDFs. Issuance is
// idempotent per student and course: a second request returns the existing
// record.
type CertificateService struct {
	repo     certificateRepository
	colleges certificateCollegeSource
	courses  certificateCourseSource
	audit    auditRecorder

	renderer   *export.CertificateRenderer
	store      *storage.LocalStorage
	signer     *storage.SignedURLSigner
	issuerName string

	validator *validator.Validate
	logger    *zap.Logger
}

// NewCertificateService constructs a CertificateService.
func NewCertificateService(repo certificateRepository, colleges certificateCollegeSource, courses certificateCourseSource, audit auditRecorder, store *storage.LocalStorage, signer *storage.SignedURLSigner, issuerName string, validate *validator.Validate, logger *zap.Logger) *CertificateService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &CertificateService{
		repo:       repo,
		colleges:   colleges,
		courses:    courses,
		audit:      audit,
		renderer:   export.NewCertificateRenderer(),
		store:      store,
		signer:     signer,
		issuerName: issuerName,
		validator:  validate,
		logger:     logger,
	}
}

// Issue renders and records a certificate for a student's completed course.
func (s *CertificateService) Issue(ctx context.Context, actorID string, req IssueCertificateRequest) (*models.Certificate, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid certificate payload")
	}

	if existing, err := s.repo.FindByStudentAndCourse(ctx, req.StudentID, req.CourseID); err == nil {
		return existing, nil
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check existing certificate")
	}

	college, err := s.colleges.FindByID(ctx, req.CollegeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "college not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load college")
	}

	var student *models.Student
	for i := range college.Students {
		if college.Students[i].ID == req.StudentID {
			student = &college.Students[i]
			break
		}
	}
	if student == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found in college")
	}

	course, err := s.courses.FindByID(ctx, req.CourseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}

	issuedAt := time.Now().UTC()
	serial, err := s.repo.NextSerial(ctx, issuedAt.Year())
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to allocate serial")
	}

	payload, err := s.renderer.Render(export.CertificateData{
		Serial:      serial,
		StudentName: student.Name,
		CollegeName: college.Name,
		CourseTitle: course.Title,
		IssuerName:  s.issuerName,
		IssuedAt:    issuedAt,
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render certificate")
	}

	relPath, err := s.store.Save(fmt.Sprintf("certificate-%s.pdf", serial), payload)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store certificate")
	}

	cert := &models.Certificate{
		Serial:      serial,
		CollegeID:   college.ID,
		StudentID:   student.ID,
		StudentName: student.Name,
		CourseID:    course.ID,
		CourseTitle: course.Title,
		FilePath:    relPath,
		IssuedBy:    actorID,
		IssuedAt:    issuedAt,
	}
	if err := s.repo.Create(ctx, cert); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record certificate")
	}

	if s.audit != nil {
		entry := &models.AuditLog{
			Action:     models.AuditActionCertificateIssue,
			Resource:   "certificates",
			ResourceID: &cert.ID,
			NewValues:  []byte(fmt.Sprintf(`{"serial":%q,"student":%q}`, serial, student.Name)),
		}
		if actorID != "" {
			entry.UserID = &actorID
		}
		if err := s.audit.Create(ctx, entry); err != nil {
			s.logger.Warn("failed to record audit log", zap.String("action", entry.Action), zap.Error(err))
		}
	}

	return cert, nil
}

// Get returns a certificate with a signed download URL.
func (s *CertificateService) Get(ctx context.Context, id string) (*models.Certificate, string, error) {
	cert, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", appErrors.Clone(appErrors.ErrNotFound, "certificate not found")
		}
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load certificate")
	}

	url, _, err := s.signer.Generate(cert.ID, cert.FilePath)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign download link")
	}
	return cert, url, nil
}

// ListByCollege returns certificates issued to one college's students.
func (s *CertificateService) ListByCollege(ctx context.Context, collegeID string) ([]models.Certificate, error) {
	certs, err := s.repo.ListByCollege(ctx, collegeID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list certificates")
	}
	return certs, nil
}

// Resolve verifies a signed download token and returns the file path.
func (s *CertificateService) Resolve(ctx context.Context, token string) (string, error) {
	certID, relPath, _, err := s.signer.Parse(token, false)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid or expired download link")
	}

	cert, err := s.repo.FindByID(ctx, certID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", appErrors.Clone(appErrors.ErrNotFound, "certificate not found")
		}
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load certificate")
	}
	if cert.FilePath != relPath {
		return "", appErrors.Clone(appErrors.ErrNotFound, "certificate file not available")
	}

	return s.store.Path(relPath), nil
}
