package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/nunukkam/admin-portal-api/internal/models"
	appErrors "github.com/nunukkam/admin-portal-api/pkg/errors"
)

type courseRepository interface {
	List(ctx context.Context, filter models.CourseFilter) ([]models.Course, int, error)
	FindByID(ctx context.Context, id string) (*models.Course, error)
	Create(ctx context.Context, course *models.Course) error
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id string) error
	CountReferencingSkill(ctx context.Context, skillID string) (int, error)
}

type skillRepository interface {
	List(ctx context.Context) ([]models.Skill, error)
	FindByID(ctx context.Context, id string) (*models.Skill, error)
	Create(ctx context.Context, skill *models.Skill) error
	Update(ctx context.Context, skill *models.Skill) error
	Delete(ctx context.Context, id string) error
}

// CourseRequest is the payload for creating or editing a course.
type CourseRequest struct {
	Title        string                `json:"title" validate:"required"`
	Description  string                `json:"description"`
	CoreSkills   []string              `json:"core_skills"`
	DurationDays int                   `json:"duration_days" validate:"gte=0"`
	Modules      []models.CourseModule `json:"modules"`
	Status       models.CourseStatus   `json:"status" validate:"omitempty,oneof=Draft Published"`
}

// SkillRequest is the payload for creating or editing a skill.
type SkillRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// CourseService provides course and skill catalogue use cases.
type CourseService struct {
	courses   courseRepository
	skills    skillRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCourseService constructs a CourseService.
func NewCourseService(courses courseRepository, skills skillRepository, validate *validator.Validate, logger *zap.Logger) *CourseService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &CourseService{courses: courses, skills: skills, validator: validate, logger: logger}
}

// List returns courses matching the filter with pagination metadata.
func (s *CourseService) List(ctx context.Context, filter models.CourseFilter) ([]models.Course, *models.Pagination, error) {
	courses, total, err := s.courses.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list courses")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	return courses, &models.Pagination{Page: page, PageSize: pageSize, TotalCount: total}, nil
}

// Get returns a single course by id.
func (s *CourseService) Get(ctx context.Context, id string) (*models.Course, error) {
	course, err := s.courses.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}
	return course, nil
}

// Create adds a course. Referenced skills must exist.
func (s *CourseService) Create(ctx context.Context, req CourseRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}
	if err := s.checkSkills(ctx, req.CoreSkills); err != nil {
		return nil, err
	}

	course := &models.Course{
		Title:        req.Title,
		Description:  req.Description,
		CoreSkills:   models.StringList(req.CoreSkills),
		DurationDays: req.DurationDays,
		Modules:      models.ModuleList(req.Modules),
		Status:       req.Status,
	}
	if err := s.courses.Create(ctx, course); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create course")
	}
	return course, nil
}

// Update edits a course including its module layout and status.
func (s *CourseService) Update(ctx context.Context, id string, req CourseRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}
	if err := s.checkSkills(ctx, req.CoreSkills); err != nil {
		return nil, err
	}

	course, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	course.Title = req.Title
	course.Description = req.Description
	course.CoreSkills = models.StringList(req.CoreSkills)
	course.DurationDays = req.DurationDays
	course.Modules = models.ModuleList(req.Modules)
	if req.Status != "" {
		course.Status = req.Status
	}

	if err := s.courses.Update(ctx, course); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update course")
	}
	return course, nil
}

// Delete removes a course.
func (s *CourseService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.courses.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete course")
	}
	return nil
}

// ListSkills returns the shared skill catalogue.
func (s *CourseService) ListSkills(ctx context.Context) ([]models.Skill, error) {
	skills, err := s.skills.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list skills")
	}
	return skills, nil
}

// CreateSkill adds a skill to the catalogue.
func (s *CourseService) CreateSkill(ctx context.Context, req SkillRequest) (*models.Skill, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "skill name is required")
	}
	skill := &models.Skill{Name: req.Name, Description: req.Description}
	if err := s.skills.Create(ctx, skill); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create skill")
	}
	return skill, nil
}

// UpdateSkill edits a skill.
func (s *CourseService) UpdateSkill(ctx context.Context, id string, req SkillRequest) (*models.Skill, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "skill name is required")
	}
	skill, err := s.skills.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "skill not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load skill")
	}
	skill.Name = req.Name
	skill.Description = req.Description
	if err := s.skills.Update(ctx, skill); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update skill")
	}
	return skill, nil
}

// DeleteSkill removes a skill unless a course still lists it.
func (s *CourseService) DeleteSkill(ctx context.Context, id string) error {
	if _, err := s.skills.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "skill not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load skill")
	}

	count, err := s.courses.CountReferencingSkill(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check skill references")
	}
	if count > 0 {
		return appErrors.Clone(appErrors.ErrReferenced, "skill is referenced by courses and cannot be deleted")
	}

	if err := s.skills.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete skill")
	}
	return nil
}

func (s *CourseService) checkSkills(ctx context.Context, ids []string) error {
	for _, id := range ids {
		if _, err := s.skills.FindByID(ctx, id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return appErrors.Clone(appErrors.ErrValidation, "unknown skill: "+id)
			}
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to verify skills")
		}
	}
	return nil
}
