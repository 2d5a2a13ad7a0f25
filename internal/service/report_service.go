package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/nunukkam/admin-portal-api/internal/models"
	appErrors "github.com/nunukkam/admin-portal-api/pkg/errors"
	"github.com/nunukkam/admin-portal-api/pkg/export"
	"github.com/nunukkam/admin-portal-api/pkg/jobs"
	"github.com/nunukkam/admin-portal-api/pkg/storage"
)

type reportRepository interface {
	Create(ctx context.Context, job *models.ReportJob) error
	FindByID(ctx context.Context, id string) (*models.ReportJob, error)
	ListByRequester(ctx context.Context, userID string, limit int) ([]models.ReportJob, error)
	MarkProcessing(ctx context.Context, id string) error
	MarkFinished(ctx context.Context, id, filePath string, finishedAt time.Time) error
	MarkFailed(ctx context.Context, id, message string, finishedAt time.Time) error
}

type reportCollegeSource interface {
	List(ctx context.Context, filter models.CollegeFilter) ([]models.College, int, error)
	FindByID(ctx context.Context, id string) (*models.College, error)
}

type reportCourseSource interface {
	List(ctx context.Context, filter models.CourseFilter) ([]models.Course, int, error)
}

type reportUserSource interface {
	List(ctx context.Context, filter models.UserFilter) ([]models.User, int, error)
}

// GenerateReportRequest is the payload for queueing a report.
type GenerateReportRequest struct {
	Type      models.ReportType   `json:"type" validate:"required,oneof=students courses colleges users"`
	Format    models.ReportFormat `json:"format" validate:"required,oneof=csv pdf"`
	CollegeID string              `json:"college_id"`
	CourseID  string              `json:"course_id"`
	Batch     string              `json:"batch"`
}

// ReportConfig tunes the background report pipeline.
type ReportConfig struct {
	WorkerConcurrency int
	WorkerRetries     int
}

// ReportService generates CSV and PDF exports asynchronously. Handlers only
// enqueue; a worker pool renders the file into local storage and download
// links are HMAC-signed with an expiry.
type ReportService struct {
	repo     reportRepository
	colleges reportCollegeSource
	courses  reportCourseSource
	users    reportUserSource

	queue   *jobs.Queue
	store   *storage.LocalStorage
	signer  *storage.SignedURLSigner
	csv     *export.CSVExporter
	pdf     *export.PDFExporter
	now     func() time.Time
	timeout time.Duration

	validator *validator.Validate
	logger    *zap.Logger
}

// NewReportService constructs a ReportService with its own worker queue.
// Call Start before enqueueing and Stop on shutdown.
func NewReportService(repo reportRepository, colleges reportCollegeSource, courses reportCourseSource, users reportUserSource, store *storage.LocalStorage, signer *storage.SignedURLSigner, validate *validator.Validate, logger *zap.Logger, cfg ReportConfig) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	s := &ReportService{
		repo:      repo,
		colleges:  colleges,
		courses:   courses,
		users:     users,
		store:     store,
		signer:    signer,
		csv:       export.NewCSVExporter(),
		pdf:       export.NewPDFExporter(),
		now:       func() time.Time { return time.Now().UTC() },
		timeout:   2 * time.Minute,
		validator: validate,
		logger:    logger,
	}
	s.queue = jobs.NewQueue("reports", s.handleJob, jobs.QueueConfig{
		Workers:    cfg.WorkerConcurrency,
		MaxRetries: cfg.WorkerRetries,
		Logger:     logger,
	})
	return s
}

// Start launches the report workers.
func (s *ReportService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop drains the report workers.
func (s *ReportService) Stop() {
	s.queue.Stop()
}

// Generate validates the request, persists a queued job and enqueues it.
func (s *ReportService) Generate(ctx context.Context, actorID string, req GenerateReportRequest) (*models.ReportJob, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid report request")
	}

	job := &models.ReportJob{
		Type: req.Type,
		Params: models.ReportJobParams{
			Format:    req.Format,
			CollegeID: req.CollegeID,
			CourseID:  req.CourseID,
			Batch:     req.Batch,
		},
		CreatedBy: actorID,
	}
	if err := s.repo.Create(ctx, job); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create report job")
	}

	if err := s.queue.Enqueue(jobs.Job{ID: job.ID, Type: string(job.Type)}); err != nil {
		if markErr := s.repo.MarkFailed(ctx, job.ID, "queue unavailable", s.now()); markErr != nil {
			s.logger.Warn("failed to mark report failed", zap.String("job_id", job.ID), zap.Error(markErr))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to enqueue report job")
	}

	return job, nil
}

// Status returns a job's state. Finished jobs carry a signed download URL.
func (s *ReportService) Status(ctx context.Context, actorID, jobID string) (*models.ReportJob, error) {
	job, err := s.repo.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "report job not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load report job")
	}
	if job.CreatedBy != actorID {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "report belongs to another user")
	}

	if job.Status == models.ReportStatusFinished && job.FilePath != nil {
		url, _, err := s.signer.Generate(job.ID, *job.FilePath)
		if err != nil {
			s.logger.Warn("failed to sign report url", zap.String("job_id", job.ID), zap.Error(err))
		} else {
			job.ResultURL = &url
		}
	}
	return job, nil
}

// ListMine returns the caller's recent report jobs.
func (s *ReportService) ListMine(ctx context.Context, actorID string, limit int) ([]models.ReportJob, error) {
	reportJobs, err := s.repo.ListByRequester(ctx, actorID, limit)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list report jobs")
	}
	return reportJobs, nil
}

// Resolve verifies a signed download token and returns the file path.
func (s *ReportService) Resolve(ctx context.Context, token string) (string, error) {
	jobID, relPath, _, err := s.signer.Parse(token, false)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid or expired download link")
	}

	job, err := s.repo.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", appErrors.Clone(appErrors.ErrNotFound, "report job not found")
		}
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load report job")
	}
	if job.FilePath == nil || *job.FilePath != relPath {
		return "", appErrors.Clone(appErrors.ErrNotFound, "report file not available")
	}

	return s.store.Path(relPath), nil
}

func (s *ReportService) handleJob(ctx context.Context, job jobs.Job) error {
	runCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	record, err := s.repo.FindByID(runCtx, job.ID)
	if err != nil {
		return fmt.Errorf("load report job %s: %w", job.ID, err)
	}
	if record.Status == models.ReportStatusFinished {
		return nil
	}

	if err := s.repo.MarkProcessing(runCtx, record.ID); err != nil {
		s.logger.Warn("failed to mark report processing", zap.String("job_id", record.ID), zap.Error(err))
	}

	dataset, title, err := s.buildDataset(runCtx, record)
	if err != nil {
		if markErr := s.repo.MarkFailed(runCtx, record.ID, err.Error(), s.now()); markErr != nil {
			s.logger.Warn("failed to mark report failed", zap.String("job_id", record.ID), zap.Error(markErr))
		}
		return fmt.Errorf("build dataset for %s: %w", record.ID, err)
	}

	var payload []byte
	var ext string
	switch record.Params.Format {
	case models.ReportFormatPDF:
		payload, err = s.pdf.Render(dataset, title)
		ext = "pdf"
	default:
		payload, err = s.csv.Render(dataset)
		ext = "csv"
	}
	if err != nil {
		if markErr := s.repo.MarkFailed(runCtx, record.ID, err.Error(), s.now()); markErr != nil {
			s.logger.Warn("failed to mark report failed", zap.String("job_id", record.ID), zap.Error(markErr))
		}
		return fmt.Errorf("render report %s: %w", record.ID, err)
	}

	filename := fmt.Sprintf("%s-%s.%s", record.Type, record.ID, ext)
	relPath, err := s.store.Save(filename, payload)
	if err != nil {
		if markErr := s.repo.MarkFailed(runCtx, record.ID, "storage write failed", s.now()); markErr != nil {
			s.logger.Warn("failed to mark report failed", zap.String("job_id", record.ID), zap.Error(markErr))
		}
		return fmt.Errorf("store report %s: %w", record.ID, err)
	}

	if err := s.repo.MarkFinished(runCtx, record.ID, relPath, s.now()); err != nil {
		return fmt.Errorf("finish report %s: %w", record.ID, err)
	}

	s.logger.Info("report generated",
		zap.String("job_id", record.ID),
		zap.String("type", string(record.Type)),
		zap.String("file", relPath))
	return nil
}

func (s *ReportService) buildDataset(ctx context.Context, job *models.ReportJob) (export.Dataset, string, error) {
	switch job.Type {
	case models.ReportTypeStudents:
		return s.studentsDataset(ctx, job.Params)
	case models.ReportTypeCourses:
		return s.coursesDataset(ctx)
	case models.ReportTypeColleges:
		return s.collegesDataset(ctx)
	case models.ReportTypeUsers:
		return s.usersDataset(ctx)
	default:
		return export.Dataset{}, "", fmt.Errorf("unknown report type %q", job.Type)
	}
}

func (s *ReportService) studentsDataset(ctx context.Context, params models.ReportJobParams) (export.Dataset, string, error) {
	var colleges []models.College
	if params.CollegeID != "" {
		college, err := s.colleges.FindByID(ctx, params.CollegeID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return export.Dataset{}, "", fmt.Errorf("college %s not found", params.CollegeID)
			}
			return export.Dataset{}, "", err
		}
		colleges = []models.College{*college}
	} else {
		all, err := s.allColleges(ctx)
		if err != nil {
			return export.Dataset{}, "", err
		}
		colleges = all
	}

	rows := make([]map[string]string, 0)
	for _, college := range colleges {
		for _, st := range college.Students {
			if params.Batch != "" && st.Batch != params.Batch {
				continue
			}
			if params.CourseID != "" && st.CourseAssigned != params.CourseID {
				continue
			}
			rows = append(rows, map[string]string{
				"Student":     st.Name,
				"College":     college.Name,
				"Department":  st.Department,
				"Batch":       st.Batch,
				"Email":       st.Email,
				"Course":      st.CourseAssigned,
				"Trainer":     st.Trainer,
				"Batch Start": st.BatchStartDate,
				"Batch End":   st.BatchEndDate,
			})
		}
	}

	dataset := export.Dataset{
		Headers: []string{"Student", "College", "Department", "Batch", "Email", "Course", "Trainer", "Batch Start", "Batch End"},
		Rows:    rows,
	}
	return dataset, "Students Report", nil
}

func (s *ReportService) coursesDataset(ctx context.Context) (export.Dataset, string, error) {
	courses, _, err := s.courses.List(ctx, models.CourseFilter{PageSize: 100})
	if err != nil {
		return export.Dataset{}, "", err
	}
	rows := make([]map[string]string, 0, len(courses))
	for _, c := range courses {
		rows = append(rows, map[string]string{
			"Title":           c.Title,
			"Status":          string(c.Status),
			"Duration (days)": strconv.Itoa(c.DurationDays),
			"Modules":         strconv.Itoa(len(c.Modules)),
			"Core Skills":     strconv.Itoa(len(c.CoreSkills)),
		})
	}
	return export.Dataset{
		Headers: []string{"Title", "Status", "Duration (days)", "Modules", "Core Skills"},
		Rows:    rows,
	}, "Courses Report", nil
}

func (s *ReportService) collegesDataset(ctx context.Context) (export.Dataset, string, error) {
	colleges, err := s.allColleges(ctx)
	if err != nil {
		return export.Dataset{}, "", err
	}
	rows := make([]map[string]string, 0, len(colleges))
	for _, c := range colleges {
		rows = append(rows, map[string]string{
			"Name":       c.Name,
			"University": c.University,
			"City":       c.City,
			"State":      c.State,
			"POC":        c.POCName,
			"Students":   strconv.Itoa(len(c.Students)),
		})
	}
	return export.Dataset{
		Headers: []string{"Name", "University", "City", "State", "POC", "Students"},
		Rows:    rows,
	}, "Colleges Report", nil
}

func (s *ReportService) usersDataset(ctx context.Context) (export.Dataset, string, error) {
	users, _, err := s.users.List(ctx, models.UserFilter{PageSize: 100})
	if err != nil {
		return export.Dataset{}, "", err
	}
	rows := make([]map[string]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, map[string]string{
			"Name":        u.FullName,
			"Email":       u.Email,
			"Phone":       u.Phone,
			"Role":        u.RoleID,
			"Designation": u.DesignationID,
			"Status":      string(u.Status),
		})
	}
	return export.Dataset{
		Headers: []string{"Name", "Email", "Phone", "Role", "Designation", "Status"},
		Rows:    rows,
	}, "Users Report", nil
}

func (s *ReportService) allColleges(ctx context.Context) ([]models.College, error) {
	var out []models.College
	for page := 1; ; page++ {
		batch, total, err := s.colleges.List(ctx, models.CollegeFilter{Page: page, PageSize: 100})
		if err != nil {
			return nil, err
		}
		out = append(out, batch...)
		if len(out) >= total || len(batch) == 0 {
			return out, nil
		}
	}
}
