package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/aimplatform/reviewintel/models"
)

func newTestAnalysisRepo(t *testing.T) (*analysisRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	wrapped, mock, db := newTestDB(t)
	repo := &analysisRepository{
		DB:     wrapped,
		logger: wrapped.logger,
	}
	return repo, mock, db
}

func analysisRows(id int64, status models.AnalysisStatus) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.
		NewRows(analysisColumns).
		AddRow(id, 3, "fake_scan", `{"batch":1}`, nil, status, now, nil, nil)
}

func TestStartJob_Success(t *testing.T) {
	repo, mock, db := newTestAnalysisRepo(t)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO analyses").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(31))

	job, err := repo.StartJob(context.Background(), 3, "fake_scan", `{"batch":1}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if job.ID != 31 {
		t.Errorf("expected ID=31, got %d", job.ID)
	}
	if job.Status != models.AnalysisPending {
		t.Errorf("expected pending status, got %s", job.Status)
	}
	if job.StartedAt.IsZero() {
		t.Error("expected StartedAt to be stamped")
	}
	if job.CompletedAt != nil {
		t.Error("expected nil CompletedAt on a fresh job")
	}
}

func TestStartJob_MissingFields(t *testing.T) {
	repo, _, db := newTestAnalysisRepo(t)
	defer db.Close()

	if _, err := repo.StartJob(context.Background(), 0, "fake_scan", ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for missing user id, got %v", err)
	}
	if _, err := repo.StartJob(context.Background(), 3, "", ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for missing analysis type, got %v", err)
	}
}

func TestGetJob_NotFound(t *testing.T) {
	repo, mock, db := newTestAnalysisRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT id").
		WithArgs(int64(42)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetJob(context.Background(), 42)
	if !errors.Is(err, ErrAnalysisNotFound) {
		t.Fatalf("expected ErrAnalysisNotFound, got %v", err)
	}
}

func TestListJobs_Filtered(t *testing.T) {
	repo, mock, db := newTestAnalysisRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT id").
		WithArgs(int64(3), "pending").
		WillReturnRows(analysisRows(31, models.AnalysisPending))

	jobs, err := repo.ListJobs(context.Background(), AnalysisFilter{
		UserID: 3,
		Status: models.AnalysisPending,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(jobs) != 1 {
		t.Fatalf("expected 1 job, got %d", len(jobs))
	}
}

func TestTransitionJob_PendingToProcessing(t *testing.T) {
	repo, mock, db := newTestAnalysisRepo(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT status").
		WithArgs(int64(31)).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("pending"))
	mock.ExpectExec("UPDATE analyses").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery("SELECT id").
		WithArgs(int64(31)).
		WillReturnRows(analysisRows(31, models.AnalysisProcessing))

	job, err := repo.TransitionJob(context.Background(), 31, models.AnalysisProcessing, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if job.Status != models.AnalysisProcessing {
		t.Errorf("expected processing status, got %s", job.Status)
	}
}

func TestTransitionJob_ProcessingToCompleted(t *testing.T) {
	repo, mock, db := newTestAnalysisRepo(t)
	defer db.Close()

	result := `{"flagged":12}`
	execTime := 4.2
	now := time.Now()

	completed := sqlmock.
		NewRows(analysisColumns).
		AddRow(31, 3, "fake_scan", `{"batch":1}`, result, "completed", now, now, execTime)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT status").
		WithArgs(int64(31)).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("processing"))
	mock.ExpectExec("UPDATE analyses").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery("SELECT id").
		WithArgs(int64(31)).
		WillReturnRows(completed)

	job, err := repo.TransitionJob(context.Background(), 31, models.AnalysisCompleted, &result, &execTime)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if job.CompletedAt == nil {
		t.Error("expected CompletedAt after terminal transition")
	}
	if job.ExecutionTime == nil || *job.ExecutionTime != execTime {
		t.Errorf("unexpected execution time: %v", job.ExecutionTime)
	}
	if job.Result != result {
		t.Errorf("expected result %q, got %q", result, job.Result)
	}
}

func TestTransitionJob_IllegalEdge(t *testing.T) {
	repo, mock, db := newTestAnalysisRepo(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT status").
		WithArgs(int64(31)).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("pending"))
	mock.ExpectRollback()

	_, err := repo.TransitionJob(context.Background(), 31, models.AnalysisCompleted, nil, nil)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if !errors.Is(err, ErrState) {
		t.Fatalf("expected error to match ErrState, got %v", err)
	}
}

func TestTransitionJob_SelfTransition(t *testing.T) {
	repo, mock, db := newTestAnalysisRepo(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT status").
		WithArgs(int64(31)).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("processing"))
	mock.ExpectRollback()

	_, err := repo.TransitionJob(context.Background(), 31, models.AnalysisProcessing, nil, nil)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestTransitionJob_TerminalStateFrozen(t *testing.T) {
	repo, mock, db := newTestAnalysisRepo(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT status").
		WithArgs(int64(31)).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("completed"))
	mock.ExpectRollback()

	_, err := repo.TransitionJob(context.Background(), 31, models.AnalysisFailed, nil, nil)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestTransitionJob_UnknownStatus(t *testing.T) {
	repo, _, db := newTestAnalysisRepo(t)
	defer db.Close()

	_, err := repo.TransitionJob(context.Background(), 31, "archived", nil, nil)
	if !errors.Is(err, ErrInvalidAnalysisStatus) {
		t.Fatalf("expected ErrInvalidAnalysisStatus, got %v", err)
	}
}

func TestTransitionJob_LostRace(t *testing.T) {
	repo, mock, db := newTestAnalysisRepo(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT status").
		WithArgs(int64(31)).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("pending"))
	mock.ExpectExec("UPDATE analyses").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := repo.TransitionJob(context.Background(), 31, models.AnalysisProcessing, nil, nil)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestTransitionJob_NotFound(t *testing.T) {
	repo, mock, db := newTestAnalysisRepo(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT status").
		WithArgs(int64(42)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err := repo.TransitionJob(context.Background(), 42, models.AnalysisProcessing, nil, nil)
	if !errors.Is(err, ErrAnalysisNotFound) {
		t.Fatalf("expected ErrAnalysisNotFound, got %v", err)
	}
}
