package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/edubridge/academy-api/internal/dto"
	"github.com/edubridge/academy-api/internal/models"
	"github.com/edubridge/academy-api/internal/repository"
)

type stubActivityRecorder struct {
	entries []ActivityEntry
}

func (s *stubActivityRecorder) Record(_ context.Context, entry ActivityEntry) (dto.ActivityLogResponse, error) {
	s.entries = append(s.entries, entry)
	return dto.ActivityLogResponse{Action: entry.Action, EntityType: entry.EntityType, EntityID: entry.EntityID}, nil
}

type stubEventPublisher struct {
	events []Event
}

func (s *stubEventPublisher) Publish(_ context.Context, event Event) error {
	s.events = append(s.events, event)
	return nil
}

func openTestDB(t *testing.T, name string, destinations ...interface{}) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(destinations...))

	return db
}

func seedTestStudent(t *testing.T, db *gorm.DB, email string, phase models.Phase) models.Profile {
	t.Helper()

	student := models.Profile{
		Email:        email,
		FullName:     "Test Student",
		Role:         models.RoleStudent,
		Phase:        &phase,
		PasswordHash: "x",
	}
	require.NoError(t, db.Create(&student).Error)

	return student
}

func setupGradingService(t *testing.T) (*gorm.DB, GradingService, *stubActivityRecorder, *stubEventPublisher) {
	t.Helper()

	db := openTestDB(t, "grading_service",
		&models.Profile{},
		&models.Assignment{},
		&models.Quiz{},
		&models.Project{},
		&models.Submission{},
		&models.QuizSubmission{},
		&models.ProjectSubmission{},
		&models.Grade{},
	)

	validate := validator.New(validator.WithRequiredStructEnabled())
	activity := &stubActivityRecorder{}
	events := &stubEventPublisher{}

	svc := NewGradingService(
		repository.NewGradeRepository(db),
		repository.NewSubmissionRepository(db),
		repository.NewQuizSubmissionRepository(db),
		repository.NewProjectSubmissionRepository(db),
		validate,
		activity,
		events,
		zerolog.Nop(),
	)
	if concrete, ok := svc.(*gradingService); ok {
		concrete.now = func() time.Time { return time.Date(2025, time.April, 10, 9, 0, 0, 0, time.UTC) }
	}

	return db, svc, activity, events
}

func seedPendingSubmission(t *testing.T, db *gorm.DB, studentID uint) models.Submission {
	t.Helper()

	assignment := models.Assignment{Title: "Build a CLI", TargetPhase: models.TargetPhaseBoth}
	require.NoError(t, db.Create(&assignment).Error)

	submission := models.Submission{
		AssignmentID: assignment.ID,
		StudentID:    studentID,
		GithubURL:    "https://github.com/student/cli",
		VideoURL:     "https://vimeo.com/100",
		SubmittedAt:  time.Now().UTC(),
		Status:       models.SubmissionStatusPending,
	}
	require.NoError(t, db.Create(&submission).Error)

	return submission
}

func TestGradingServiceGradeAssignmentSubmission(t *testing.T) {
	db, svc, activity, events := setupGradingService(t)
	student := seedTestStudent(t, db, "grade-me@academy.test", models.PhaseOne)
	submission := seedPendingSubmission(t, db, student.ID)

	actor := ActivityActor{ID: 42, Role: "admin"}
	payload := dto.GradeCreateRequest{
		Kind:         dto.GradeKindAssignment,
		SubmissionID: submission.ID,
		Grade:        85,
		MaxGrade:     100,
		Feedback:     "  <b>Solid</b> structure, missing tests  ",
	}

	response, err := svc.Grade(context.Background(), payload, actor)
	require.NoError(t, err)
	require.Equal(t, student.ID, response.StudentID)
	require.Equal(t, 85.0, response.Grade)
	require.Equal(t, 85.0, response.Percentage)
	require.Equal(t, "Solid structure, missing tests", response.Feedback)
	require.NotNil(t, response.SubmissionID)
	require.Equal(t, submission.ID, *response.SubmissionID)
	require.NotNil(t, response.GradedBy)
	require.Equal(t, actor.ID, *response.GradedBy)

	var stored models.Submission
	require.NoError(t, db.First(&stored, submission.ID).Error)
	require.Equal(t, models.SubmissionStatusGraded, stored.Status)

	require.Len(t, activity.entries, 1)
	require.Equal(t, "submission.graded", activity.entries[0].Action)
	require.Equal(t, actor.ID, activity.entries[0].ActorID)

	require.Len(t, events.events, 1)
	require.Equal(t, EventSubmissionGraded, events.events[0].Name)
}

func TestGradingServiceRejectsSecondGrade(t *testing.T) {
	db, svc, _, _ := setupGradingService(t)
	student := seedTestStudent(t, db, "once-only@academy.test", models.PhaseOne)
	submission := seedPendingSubmission(t, db, student.ID)

	actor := ActivityActor{ID: 42, Role: "admin"}
	payload := dto.GradeCreateRequest{
		Kind:         dto.GradeKindAssignment,
		SubmissionID: submission.ID,
		Grade:        70,
		MaxGrade:     100,
	}

	_, err := svc.Grade(context.Background(), payload, actor)
	require.NoError(t, err)

	_, err = svc.Grade(context.Background(), payload, actor)
	require.ErrorIs(t, err, ErrAlreadyGraded)
}

func TestGradingServiceQuizMustBeSubmitted(t *testing.T) {
	db, svc, _, _ := setupGradingService(t)
	student := seedTestStudent(t, db, "quiz-grade@academy.test", models.PhaseOne)

	quiz := models.Quiz{Title: "Goroutines", TargetPhase: models.TargetPhaseOne, TimeLimitMinutes: 45}
	require.NoError(t, db.Create(&quiz).Error)

	attempt := models.QuizSubmission{
		QuizID:    quiz.ID,
		StudentID: student.ID,
		StartedAt: time.Now().UTC(),
		Status:    models.QuizSubmissionStatusInProgress,
	}
	require.NoError(t, db.Create(&attempt).Error)

	actor := ActivityActor{ID: 42, Role: "admin"}
	payload := dto.GradeCreateRequest{
		Kind:         dto.GradeKindQuiz,
		SubmissionID: attempt.ID,
		Grade:        8,
		MaxGrade:     10,
	}

	_, err := svc.Grade(context.Background(), payload, actor)
	require.ErrorIs(t, err, ErrQuizNotSubmitted)

	submittedAt := time.Now().UTC()
	require.NoError(t, db.Model(&models.QuizSubmission{}).
		Where("id = ?", attempt.ID).
		Updates(map[string]interface{}{
			"status":       models.QuizSubmissionStatusSubmitted,
			"submitted_at": submittedAt,
		}).Error)

	response, err := svc.Grade(context.Background(), payload, actor)
	require.NoError(t, err)
	require.NotNil(t, response.QuizSubmissionID)
	require.Equal(t, attempt.ID, *response.QuizSubmissionID)
	require.Equal(t, 80.0, response.Percentage)

	var stored models.QuizSubmission
	require.NoError(t, db.First(&stored, attempt.ID).Error)
	require.Equal(t, models.QuizSubmissionStatusGraded, stored.Status)
}

func TestGradingServiceUnknownSubmission(t *testing.T) {
	_, svc, _, _ := setupGradingService(t)

	payload := dto.GradeCreateRequest{
		Kind:         dto.GradeKindProject,
		SubmissionID: 9999,
		Grade:        50,
		MaxGrade:     100,
	}

	_, err := svc.Grade(context.Background(), payload, ActivityActor{ID: 1, Role: "admin"})
	require.ErrorIs(t, err, ErrSubmissionNotFound)
}

func TestGradingServiceListByStudent(t *testing.T) {
	db, svc, _, _ := setupGradingService(t)
	student := seedTestStudent(t, db, "list-grades@academy.test", models.PhaseOne)
	submission := seedPendingSubmission(t, db, student.ID)

	payload := dto.GradeCreateRequest{
		Kind:         dto.GradeKindAssignment,
		SubmissionID: submission.ID,
		Grade:        92,
		MaxGrade:     100,
	}
	_, err := svc.Grade(context.Background(), payload, ActivityActor{ID: 1, Role: "admin"})
	require.NoError(t, err)

	grades, err := svc.ListByStudent(context.Background(), student.ID)
	require.NoError(t, err)
	require.Len(t, grades, 1)
	require.Equal(t, 92.0, grades[0].Grade)

	other, err := svc.ListByStudent(context.Background(), student.ID+500)
	require.NoError(t, err)
	require.Empty(t, other)
}
