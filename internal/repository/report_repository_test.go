package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nunukkam/admin-portal-api/internal/models"
)

func TestCreateReportJobDefaultsToQueued(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewReportRepository(db)

	mock.ExpectExec("INSERT INTO report_jobs").WillReturnResult(sqlmock.NewResult(1, 1))

	job := &models.ReportJob{
		Type:      models.ReportTypeStudents,
		Params:    models.ReportJobParams{Format: models.ReportFormatCSV, CollegeID: "college-1"},
		CreatedBy: "user-1",
	}
	err := repo.Create(context.Background(), job)
	require.NoError(t, err)
	assert.NotEmpty(t, job.ID)
	assert.Equal(t, models.ReportStatusQueued, job.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindReportJobScansParams(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewReportRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "type", "params", "status", "file_path", "result_url", "created_by", "created_at", "finished_at", "error_message"}).
		AddRow("job-1", string(models.ReportTypeStudents), []byte(`{"format":"pdf","college_id":"college-1"}`), string(models.ReportStatusFinished), "reports/job-1.pdf", nil, "user-1", now, now, nil)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, type, params, status, file_path, result_url, created_by, created_at, finished_at, error_message FROM report_jobs WHERE id = $1 LIMIT 1`)).
		WithArgs("job-1").
		WillReturnRows(rows)

	job, err := repo.FindByID(context.Background(), "job-1")
	require.NoError(t, err)
	assert.Equal(t, models.ReportFormatPDF, job.Params.Format)
	assert.Equal(t, "college-1", job.Params.CollegeID)
	require.NotNil(t, job.FilePath)
	assert.Equal(t, "reports/job-1.pdf", *job.FilePath)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkFinished(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewReportRepository(db)

	finished := time.Now()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE report_jobs SET status = $2, file_path = $3, finished_at = $4, error_message = NULL WHERE id = $1`)).
		WithArgs("job-1", models.ReportStatusFinished, "reports/job-1.csv", finished).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.MarkFinished(context.Background(), "job-1", "reports/job-1.csv", finished)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkFailed(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewReportRepository(db)

	finished := time.Now()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE report_jobs SET status = $2, error_message = $3, finished_at = $4 WHERE id = $1`)).
		WithArgs("job-1", models.ReportStatusFailed, "college not found", finished).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.MarkFailed(context.Background(), "job-1", "college not found", finished)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
