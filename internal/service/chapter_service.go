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

type chapterRepository interface {
	List(ctx context.Context, search string) ([]models.Chapter, error)
	FindByID(ctx context.Context, id string) (*models.Chapter, error)
	Create(ctx context.Context, chapter *models.Chapter) error
	Update(ctx context.Context, chapter *models.Chapter) error
	Delete(ctx context.Context, id string) error
}

// ChapterRequest is the payload for creating or editing a chapter.
type ChapterRequest struct {
	Name   string   `json:"name" validate:"required"`
	Skills []string `json:"skills"`
}

// AssessmentRequest is the payload for an assessment nested in a chapter.
type AssessmentRequest struct {
	Title         string                `json:"title" validate:"required"`
	Kind          models.AssessmentKind `json:"kind" validate:"required,oneof=Pre-KBA Post-KBA"`
	Duration      int                   `json:"duration" validate:"gt=0"`
	Type          string                `json:"type" validate:"required"`
	Skills        []string              `json:"skills"`
	PassingCutoff int                   `json:"passing_cutoff" validate:"gte=0,lte=100"`
	Proficiency   models.Proficiency    `json:"proficiency"`
	Questions     []models.Question     `json:"questions"`
}

// ChapterService provides chapter use cases including the assessments that
// nest inside each chapter.
type ChapterService struct {
	repo      chapterRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewChapterService constructs a ChapterService.
func NewChapterService(repo chapterRepository, validate *validator.Validate, logger *zap.Logger) *ChapterService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &ChapterService{repo: repo, validator: validate, logger: logger}
}

// List returns chapters, optionally filtered by a name search.
func (s *ChapterService) List(ctx context.Context, search string) ([]models.Chapter, error) {
	chapters, err := s.repo.List(ctx, search)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list chapters")
	}
	return chapters, nil
}

// Get returns a single chapter by id.
func (s *ChapterService) Get(ctx context.Context, id string) (*models.Chapter, error) {
	chapter, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "chapter not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load chapter")
	}
	return chapter, nil
}

// Create adds a chapter.
func (s *ChapterService) Create(ctx context.Context, req ChapterRequest) (*models.Chapter, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "chapter name is required")
	}
	chapter := &models.Chapter{Name: req.Name, Skills: models.StringList(req.Skills)}
	if err := s.repo.Create(ctx, chapter); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create chapter")
	}
	return chapter, nil
}

// Update edits a chapter's name and skill tags.
func (s *ChapterService) Update(ctx context.Context, id string, req ChapterRequest) (*models.Chapter, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "chapter name is required")
	}
	chapter, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	chapter.Name = req.Name
	chapter.Skills = models.StringList(req.Skills)
	if err := s.repo.Update(ctx, chapter); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update chapter")
	}
	return chapter, nil
}

// Delete removes a chapter with its nested assessments.
func (s *ChapterService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete chapter")
	}
	return nil
}

// AddAssessment appends an assessment to a chapter.
func (s *ChapterService) AddAssessment(ctx context.Context, chapterID string, req AssessmentRequest) (*models.Assessment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid assessment payload")
	}

	chapter, err := s.Get(ctx, chapterID)
	if err != nil {
		return nil, err
	}

	assessment := models.Assessment{
		ID:            uuid.NewString(),
		Title:         req.Title,
		Kind:          req.Kind,
		Duration:      req.Duration,
		Type:          req.Type,
		Skills:        req.Skills,
		PassingCutoff: req.PassingCutoff,
		Proficiency:   req.Proficiency,
		Questions:     withQuestionIDs(req.Questions),
	}
	chapter.Assessments = append(chapter.Assessments, assessment)

	if err := s.repo.Update(ctx, chapter); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save assessment")
	}
	return &assessment, nil
}

// UpdateAssessment replaces an assessment nested in a chapter.
func (s *ChapterService) UpdateAssessment(ctx context.Context, chapterID, assessmentID string, req AssessmentRequest) (*models.Assessment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid assessment payload")
	}

	chapter, err := s.Get(ctx, chapterID)
	if err != nil {
		return nil, err
	}

	for i, a := range chapter.Assessments {
		if a.ID != assessmentID {
			continue
		}
		updated := models.Assessment{
			ID:            assessmentID,
			Title:         req.Title,
			Kind:          req.Kind,
			Duration:      req.Duration,
			Type:          req.Type,
			Skills:        req.Skills,
			PassingCutoff: req.PassingCutoff,
			Proficiency:   req.Proficiency,
			Questions:     withQuestionIDs(req.Questions),
		}
		chapter.Assessments[i] = updated
		if err := s.repo.Update(ctx, chapter); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save assessment")
		}
		return &updated, nil
	}

	return nil, appErrors.Clone(appErrors.ErrNotFound, "assessment not found in chapter")
}

// RemoveAssessment drops an assessment from a chapter.
func (s *ChapterService) RemoveAssessment(ctx context.Context, chapterID, assessmentID string) error {
	chapter, err := s.Get(ctx, chapterID)
	if err != nil {
		return err
	}

	for i, a := range chapter.Assessments {
		if a.ID != assessmentID {
			continue
		}
		chapter.Assessments = append(chapter.Assessments[:i], chapter.Assessments[i+1:]...)
		if err := s.repo.Update(ctx, chapter); err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to remove assessment")
		}
		return nil
	}

	return appErrors.Clone(appErrors.ErrNotFound, "assessment not found in chapter")
}

func withQuestionIDs(questions []models.Question) []models.Question {
	out := make([]models.Question, len(questions))
	for i, q := range questions {
		if q.ID == "" {
			q.ID = uuid.NewString()
		}
		out[i] = q
	}
	return out
}
