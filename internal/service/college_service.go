package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nunukkam/admin-portal-api/internal/models"
	appErrors "github.com/nunukkam/admin-portal-api/pkg/errors"
)

type collegeRepository interface {
	List(ctx context.Context, filter models.CollegeFilter) ([]models.College, int, error)
	FindByID(ctx context.Context, id string) (*models.College, error)
	Create(ctx context.Context, college *models.College) error
	Update(ctx context.Context, college *models.College) error
	UpdateStudents(ctx context.Context, collegeID string, students models.StudentList) error
	Delete(ctx context.Context, id string) error
}

// CollegeRequest is the payload for creating or editing a college.
type CollegeRequest struct {
	Name                string                      `json:"name" validate:"required"`
	University          string                      `json:"university"`
	City                string                      `json:"city" validate:"required"`
	State               string                      `json:"state" validate:"required"`
	Address             string                      `json:"address"`
	Pincode             string                      `json:"pincode"`
	POCName             string                      `json:"poc_name"`
	POCNumber           string                      `json:"poc_number"`
	ProgramCoordinator  string                      `json:"program_coordinator"`
	Schedules           []models.Schedule           `json:"schedules"`
	AssessmentDeadlines []models.AssessmentDeadline `json:"assessment_deadlines"`
}

// StudentRequest is the payload for a student inside a college roster.
type StudentRequest struct {
	Name           string `json:"name" validate:"required"`
	Department     string `json:"department"`
	Batch          string `json:"batch" validate:"required"`
	ContactNumber  string `json:"contact_number"`
	Email          string `json:"email" validate:"omitempty,email"`
	CourseAssigned string `json:"course_assigned"`
	Trainer        string `json:"trainer"`
	BatchStartDate string `json:"batch_start_date"`
	BatchEndDate   string `json:"batch_end_date"`
}

// CollegeService provides college use cases. Students belong to exactly one
// college; every roster mutation goes through the owning college record.
type CollegeService struct {
	repo      collegeRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCollegeService constructs a CollegeService.
func NewCollegeService(repo collegeRepository, validate *validator.Validate, logger *zap.Logger) *CollegeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &CollegeService{repo: repo, validator: validate, logger: logger}
}

// List returns colleges matching the filter with pagination metadata.
func (s *CollegeService) List(ctx context.Context, filter models.CollegeFilter) ([]models.College, *models.Pagination, error) {
	colleges, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list colleges")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	return colleges, &models.Pagination{Page: page, PageSize: pageSize, TotalCount: total}, nil
}

// Get returns a single college by id.
func (s *CollegeService) Get(ctx context.Context, id string) (*models.College, error) {
	college, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "college not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load college")
	}
	return college, nil
}

// Create adds a college.
func (s *CollegeService) Create(ctx context.Context, req CollegeRequest) (*models.College, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid college payload")
	}

	college := &models.College{
		Name:                req.Name,
		University:          req.University,
		City:                req.City,
		State:               req.State,
		Address:             req.Address,
		Pincode:             req.Pincode,
		POCName:             req.POCName,
		POCNumber:           req.POCNumber,
		ProgramCoordinator:  req.ProgramCoordinator,
		Students:            models.StudentList{},
		Schedules:           models.ScheduleList(req.Schedules),
		AssessmentDeadlines: models.DeadlineList(req.AssessmentDeadlines),
	}
	if err := s.repo.Create(ctx, college); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create college")
	}
	return college, nil
}

// Update edits a college's profile, schedules and deadlines.
func (s *CollegeService) Update(ctx context.Context, id string, req CollegeRequest) (*models.College, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid college payload")
	}

	college, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	college.Name = req.Name
	college.University = req.University
	college.City = req.City
	college.State = req.State
	college.Address = req.Address
	college.Pincode = req.Pincode
	college.POCName = req.POCName
	college.POCNumber = req.POCNumber
	college.ProgramCoordinator = req.ProgramCoordinator
	college.Schedules = models.ScheduleList(req.Schedules)
	college.AssessmentDeadlines = models.DeadlineList(req.AssessmentDeadlines)

	if err := s.repo.Update(ctx, college); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update college")
	}
	return college, nil
}

// Delete removes a college and the roster it owns.
func (s *CollegeService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete college")
	}
	return nil
}

// AddStudent appends a student to a college roster.
func (s *CollegeService) AddStudent(ctx context.Context, collegeID string, req StudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}

	college, err := s.Get(ctx, collegeID)
	if err != nil {
		return nil, err
	}

	student := models.Student{
		ID:             uuid.NewString(),
		Name:           req.Name,
		Department:     req.Department,
		Batch:          req.Batch,
		ContactNumber:  req.ContactNumber,
		Email:          req.Email,
		CourseAssigned: req.CourseAssigned,
		Trainer:        req.Trainer,
		BatchStartDate: req.BatchStartDate,
		BatchEndDate:   req.BatchEndDate,
	}
	students := append(college.Students, student)

	if err := s.repo.UpdateStudents(ctx, collegeID, students); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save student")
	}
	return &student, nil
}

// UpdateStudent edits a student through the owning college. Editing through
// any other college is a not-found, not a move.
func (s *CollegeService) UpdateStudent(ctx context.Context, collegeID, studentID string, req StudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}

	college, err := s.Get(ctx, collegeID)
	if err != nil {
		return nil, err
	}

	for i, st := range college.Students {
		if st.ID != studentID {
			continue
		}
		updated := models.Student{
			ID:             studentID,
			Name:           req.Name,
			Department:     req.Department,
			Batch:          req.Batch,
			ContactNumber:  req.ContactNumber,
			Email:          req.Email,
			CourseAssigned: req.CourseAssigned,
			Trainer:        req.Trainer,
			BatchStartDate: req.BatchStartDate,
			BatchEndDate:   req.BatchEndDate,
		}
		college.Students[i] = updated
		if err := s.repo.UpdateStudents(ctx, collegeID, college.Students); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save student")
		}
		return &updated, nil
	}

	return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found in college")
}

// RemoveStudent drops a student from the owning college's roster.
func (s *CollegeService) RemoveStudent(ctx context.Context, collegeID, studentID string) error {
	college, err := s.Get(ctx, collegeID)
	if err != nil {
		return err
	}

	for i, st := range college.Students {
		if st.ID != studentID {
			continue
		}
		students := append(college.Students[:i], college.Students[i+1:]...)
		if err := s.repo.UpdateStudents(ctx, collegeID, students); err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to remove student")
		}
		return nil
	}

	return appErrors.Clone(appErrors.ErrNotFound, "student not found in college")
}
