package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/edubridge/academy-api/internal/dto"
	"github.com/edubridge/academy-api/internal/models"
	"github.com/edubridge/academy-api/internal/repository"
)

func setupSubmissionService(t *testing.T) (*gorm.DB, SubmissionService, *stubEventPublisher) {
	t.Helper()

	db := openTestDB(t, "submission_service",
		&models.Profile{},
		&models.Assignment{},
		&models.Submission{},
	)

	validate := validator.New(validator.WithRequiredStructEnabled())
	events := &stubEventPublisher{}

	svc := NewSubmissionService(
		repository.NewSubmissionRepository(db),
		repository.NewAssignmentRepository(db),
		repository.NewProfileRepository(db),
		validate,
		events,
		zerolog.Nop(),
	)
	if concrete, ok := svc.(*submissionService); ok {
		concrete.now = func() time.Time { return time.Date(2025, time.April, 12, 14, 0, 0, 0, time.UTC) }
	}

	return db, svc, events
}

func seedTargetedAssignment(t *testing.T, db *gorm.DB, phase models.TargetPhase) models.Assignment {
	t.Helper()

	assignment := models.Assignment{Title: "Phase work", Description: "desc", TargetPhase: phase}
	require.NoError(t, db.Create(&assignment).Error)

	return assignment
}

func TestSubmissionServiceSubmit(t *testing.T) {
	db, svc, events := setupSubmissionService(t)
	student := seedTestStudent(t, db, "submit@academy.test", models.PhaseOne)
	assignment := seedTargetedAssignment(t, db, models.TargetPhaseBoth)

	payload := dto.SubmissionCreateRequest{
		AssignmentID: assignment.ID,
		GithubURL:    "https://github.com/student/work",
		VideoURL:     "https://vimeo.com/200",
	}

	response, err := svc.Submit(context.Background(), student.ID, payload)
	require.NoError(t, err)
	require.Equal(t, models.SubmissionStatusPending, response.Status)
	require.Equal(t, assignment.ID, response.AssignmentID)
	require.Equal(t, time.Date(2025, time.April, 12, 14, 0, 0, 0, time.UTC), response.SubmittedAt)
	require.Equal(t, assignment.Title, response.Assignment.Title)
	require.Equal(t, student.Email, response.Student.Email)

	require.Len(t, events.events, 1)
	require.Equal(t, EventSubmissionCreated, events.events[0].Name)
}

func TestSubmissionServiceRejectsWrongPhase(t *testing.T) {
	db, svc, _ := setupSubmissionService(t)
	student := seedTestStudent(t, db, "phase2@academy.test", models.PhaseTwo)
	assignment := seedTargetedAssignment(t, db, models.TargetPhaseOne)

	payload := dto.SubmissionCreateRequest{
		AssignmentID: assignment.ID,
		GithubURL:    "https://github.com/student/work",
		VideoURL:     "https://vimeo.com/200",
	}

	_, err := svc.Submit(context.Background(), student.ID, payload)
	require.ErrorIs(t, err, ErrNotEligible)
}

func TestSubmissionServiceRejectsDuplicate(t *testing.T) {
	db, svc, _ := setupSubmissionService(t)
	student := seedTestStudent(t, db, "twice@academy.test", models.PhaseOne)
	assignment := seedTargetedAssignment(t, db, models.TargetPhaseOne)

	payload := dto.SubmissionCreateRequest{
		AssignmentID: assignment.ID,
		GithubURL:    "https://github.com/student/work",
		VideoURL:     "https://vimeo.com/200",
	}

	_, err := svc.Submit(context.Background(), student.ID, payload)
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), student.ID, payload)
	require.ErrorIs(t, err, ErrAlreadySubmitted)
}

func TestSubmissionServiceMissingAssignment(t *testing.T) {
	db, svc, _ := setupSubmissionService(t)
	student := seedTestStudent(t, db, "missing@academy.test", models.PhaseOne)

	payload := dto.SubmissionCreateRequest{
		AssignmentID: 4040,
		GithubURL:    "https://github.com/student/work",
		VideoURL:     "https://vimeo.com/200",
	}

	_, err := svc.Submit(context.Background(), student.ID, payload)
	require.ErrorIs(t, err, ErrAssignmentNotFound)
}

func TestSubmissionServiceValidatesLinks(t *testing.T) {
	db, svc, _ := setupSubmissionService(t)
	student := seedTestStudent(t, db, "badlink@academy.test", models.PhaseOne)
	assignment := seedTargetedAssignment(t, db, models.TargetPhaseBoth)

	payload := dto.SubmissionCreateRequest{
		AssignmentID: assignment.ID,
		GithubURL:    "not-a-url",
		VideoURL:     "https://vimeo.com/200",
	}

	_, err := svc.Submit(context.Background(), student.ID, payload)
	require.Error(t, err)

	var validationErrors validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrors)
}

func TestSubmissionServiceListFiltersByStatus(t *testing.T) {
	db, svc, _ := setupSubmissionService(t)
	student := seedTestStudent(t, db, "listing@academy.test", models.PhaseOne)
	assignment := seedTargetedAssignment(t, db, models.TargetPhaseBoth)

	_, err := svc.Submit(context.Background(), student.ID, dto.SubmissionCreateRequest{
		AssignmentID: assignment.ID,
		GithubURL:    "https://github.com/student/work",
		VideoURL:     "https://vimeo.com/200",
	})
	require.NoError(t, err)

	pending := models.SubmissionStatusPending
	listed, err := svc.List(context.Background(), dto.SubmissionListRequest{Status: &pending})
	require.NoError(t, err)
	require.Len(t, listed, 1)

	graded := models.SubmissionStatusGraded
	listed, err = svc.List(context.Background(), dto.SubmissionListRequest{Status: &graded})
	require.NoError(t, err)
	require.Empty(t, listed)
}
