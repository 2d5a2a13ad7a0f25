package service

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nunukkam/admin-portal-api/internal/models"
	appErrors "github.com/nunukkam/admin-portal-api/pkg/errors"
	"github.com/nunukkam/admin-portal-api/pkg/jobs"
	"github.com/nunukkam/admin-portal-api/pkg/storage"
)

type mockReportRepo struct {
	jobs map[string]*models.ReportJob
}

func newMockReportRepo() *mockReportRepo {
	return &mockReportRepo{jobs: make(map[string]*models.ReportJob)}
}

func (m *mockReportRepo) Create(ctx context.Context, job *models.ReportJob) error {
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	job.Status = models.ReportStatusQueued
	cp := *job
	m.jobs[job.ID] = &cp
	return nil
}

func (m *mockReportRepo) FindByID(ctx context.Context, id string) (*models.ReportJob, error) {
	if job, ok := m.jobs[id]; ok {
		cp := *job
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockReportRepo) ListByRequester(ctx context.Context, userID string, limit int) ([]models.ReportJob, error) {
	var out []models.ReportJob
	for _, job := range m.jobs {
		if job.CreatedBy == userID {
			out = append(out, *job)
		}
	}
	return out, nil
}

func (m *mockReportRepo) MarkProcessing(ctx context.Context, id string) error {
	m.jobs[id].Status = models.ReportStatusProcessing
	return nil
}

func (m *mockReportRepo) MarkFinished(ctx context.Context, id, filePath string, finishedAt time.Time) error {
	job := m.jobs[id]
	job.Status = models.ReportStatusFinished
	job.FilePath = &filePath
	return nil
}

func (m *mockReportRepo) MarkFailed(ctx context.Context, id, message string, finishedAt time.Time) error {
	job := m.jobs[id]
	job.Status = models.ReportStatusFailed
	job.ErrorMessage = &message
	return nil
}

type mockCollegeSource struct {
	colleges []models.College
}

func (m *mockCollegeSource) List(ctx context.Context, filter models.CollegeFilter) ([]models.College, int, error) {
	if filter.Page > 1 {
		return nil, len(m.colleges), nil
	}
	return m.colleges, len(m.colleges), nil
}

func (m *mockCollegeSource) FindByID(ctx context.Context, id string) (*models.College, error) {
	for _, c := range m.colleges {
		if c.ID == id {
			cp := c
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

type mockCourseSource struct {
	courses []models.Course
}

func (m *mockCourseSource) List(ctx context.Context, filter models.CourseFilter) ([]models.Course, int, error) {
	return m.courses, len(m.courses), nil
}

type mockUserSource struct {
	users []models.User
}

func (m *mockUserSource) List(ctx context.Context, filter models.UserFilter) ([]models.User, int, error) {
	return m.users, len(m.users), nil
}

func newTestReportService(t *testing.T, repo *mockReportRepo, colleges *mockCollegeSource) *ReportService {
	t.Helper()
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	signer := storage.NewSignedURLSigner("report-secret", time.Hour)
	return NewReportService(repo, colleges, &mockCourseSource{}, &mockUserSource{}, store, signer, validator.New(), zap.NewNop(), ReportConfig{})
}

func rosterCollege() models.College {
	return models.College{
		ID:   "college-1",
		Name: "Global Institute of Technology",
		Students: models.StudentList{
			{ID: "student-1", Name: "Rahul S", Department: "CSE", Batch: "2026-A", Email: "rahul@git.edu", CourseAssigned: "course-1"},
			{ID: "student-2", Name: "Meena K", Department: "ECE", Batch: "2026-B", Email: "meena@git.edu", CourseAssigned: "course-2"},
		},
	}
}

func TestReportServiceGenerateRejectsUnknownType(t *testing.T) {
	svc := newTestReportService(t, newMockReportRepo(), &mockCollegeSource{})

	_, err := svc.Generate(context.Background(), "user-1", GenerateReportRequest{Type: "payroll", Format: models.ReportFormatCSV})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestReportServiceHandleJobRendersStudentsCSV(t *testing.T) {
	repo := newMockReportRepo()
	colleges := &mockCollegeSource{colleges: []models.College{rosterCollege()}}
	svc := newTestReportService(t, repo, colleges)

	job := &models.ReportJob{
		Type:      models.ReportTypeStudents,
		Params:    models.ReportJobParams{Format: models.ReportFormatCSV, Batch: "2026-A"},
		CreatedBy: "user-1",
	}
	require.NoError(t, repo.Create(context.Background(), job))

	err := svc.handleJob(context.Background(), jobs.Job{ID: job.ID, Type: string(job.Type)})
	require.NoError(t, err)

	stored := repo.jobs[job.ID]
	assert.Equal(t, models.ReportStatusFinished, stored.Status)
	require.NotNil(t, stored.FilePath)

	raw, err := os.ReadFile(svc.store.Path(*stored.FilePath))
	require.NoError(t, err)
	content := string(raw)
	assert.Contains(t, content, "Rahul S")
	assert.NotContains(t, content, "Meena K")
	assert.Equal(t, ".csv", filepath.Ext(*stored.FilePath))
}

func TestReportServiceHandleJobMarksFailedOnMissingCollege(t *testing.T) {
	repo := newMockReportRepo()
	svc := newTestReportService(t, repo, &mockCollegeSource{})

	job := &models.ReportJob{
		Type:      models.ReportTypeStudents,
		Params:    models.ReportJobParams{Format: models.ReportFormatCSV, CollegeID: "missing"},
		CreatedBy: "user-1",
	}
	require.NoError(t, repo.Create(context.Background(), job))

	err := svc.handleJob(context.Background(), jobs.Job{ID: job.ID})
	require.Error(t, err)
	stored := repo.jobs[job.ID]
	assert.Equal(t, models.ReportStatusFailed, stored.Status)
	require.NotNil(t, stored.ErrorMessage)
	assert.Contains(t, *stored.ErrorMessage, "missing")
}

func TestReportServiceHandleJobSkipsFinished(t *testing.T) {
	repo := newMockReportRepo()
	svc := newTestReportService(t, repo, &mockCollegeSource{})

	path := "already-there.csv"
	repo.jobs["job-1"] = &models.ReportJob{
		ID:       "job-1",
		Type:     models.ReportTypeStudents,
		Status:   models.ReportStatusFinished,
		FilePath: &path,
	}

	err := svc.handleJob(context.Background(), jobs.Job{ID: "job-1"})
	require.NoError(t, err)
	assert.Equal(t, models.ReportStatusFinished, repo.jobs["job-1"].Status)
}

func TestReportServiceStatusSignsFinishedJobs(t *testing.T) {
	repo := newMockReportRepo()
	colleges := &mockCollegeSource{colleges: []models.College{rosterCollege()}}
	svc := newTestReportService(t, repo, colleges)

	job := &models.ReportJob{
		Type:      models.ReportTypeStudents,
		Params:    models.ReportJobParams{Format: models.ReportFormatCSV},
		CreatedBy: "user-1",
	}
	require.NoError(t, repo.Create(context.Background(), job))
	require.NoError(t, svc.handleJob(context.Background(), jobs.Job{ID: job.ID}))

	status, err := svc.Status(context.Background(), "user-1", job.ID)
	require.NoError(t, err)
	require.NotNil(t, status.ResultURL)

	resourceID, relPath, _, err := svc.signer.Parse(*status.ResultURL, false)
	require.NoError(t, err)
	assert.Equal(t, job.ID, resourceID)
	assert.Equal(t, *repo.jobs[job.ID].FilePath, relPath)
}

func TestReportServiceStatusForeignJobForbidden(t *testing.T) {
	repo := newMockReportRepo()
	svc := newTestReportService(t, repo, &mockCollegeSource{})

	job := &models.ReportJob{Type: models.ReportTypeCourses, CreatedBy: "owner"}
	require.NoError(t, repo.Create(context.Background(), job))

	_, err := svc.Status(context.Background(), "intruder", job.ID)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}

func TestReportServiceResolveRoundTrip(t *testing.T) {
	repo := newMockReportRepo()
	colleges := &mockCollegeSource{colleges: []models.College{rosterCollege()}}
	svc := newTestReportService(t, repo, colleges)

	job := &models.ReportJob{
		Type:      models.ReportTypeStudents,
		Params:    models.ReportJobParams{Format: models.ReportFormatCSV},
		CreatedBy: "user-1",
	}
	require.NoError(t, repo.Create(context.Background(), job))
	require.NoError(t, svc.handleJob(context.Background(), jobs.Job{ID: job.ID}))

	token, expires, err := svc.signer.Generate(job.ID, *repo.jobs[job.ID].FilePath)
	require.NoError(t, err)
	assert.True(t, expires.After(time.Now()))

	absPath, err := svc.Resolve(context.Background(), token)
	require.NoError(t, err)
	_, err = os.Stat(absPath)
	require.NoError(t, err)

	_, err = svc.Resolve(context.Background(), "not.a.valid.token")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}
