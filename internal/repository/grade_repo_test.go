package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/edubridge/academy-api/internal/models"
)

func setupGradeRepo(t *testing.T) (*gorm.DB, GradeRepository) {
	t.Helper()

	dsn := fmt.Sprintf("file:grade_repo_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Profile{},
		&models.Assignment{},
		&models.Quiz{},
		&models.Submission{},
		&models.QuizSubmission{},
		&models.ProjectSubmission{},
		&models.Grade{},
	))

	return db, NewGradeRepository(db)
}

func TestGradeRepositoryRecordFlipsSubmissionStatus(t *testing.T) {
	db, repo := setupGradeRepo(t)
	student := seedStudent(t, db, "graded@academy.test")

	assignment := models.Assignment{Title: "HTTP basics", TargetPhase: models.TargetPhaseBoth}
	require.NoError(t, db.Create(&assignment).Error)

	submission := models.Submission{
		AssignmentID: assignment.ID,
		StudentID:    student.ID,
		GithubURL:    "https://github.com/a/b",
		VideoURL:     "https://vimeo.com/1",
		SubmittedAt:  time.Now().UTC(),
		Status:       models.SubmissionStatusPending,
	}
	require.NoError(t, db.Create(&submission).Error)

	gradedBy := uint(7)
	grade := models.Grade{
		StudentID:    student.ID,
		AssignmentID: &assignment.ID,
		SubmissionID: &submission.ID,
		Grade:        88,
		MaxGrade:     100,
		GradedBy:     &gradedBy,
		GradedAt:     time.Now().UTC(),
	}
	require.NoError(t, repo.Record(context.Background(), &grade))
	require.NotZero(t, grade.ID)

	var stored models.Submission
	require.NoError(t, db.First(&stored, submission.ID).Error)
	require.Equal(t, models.SubmissionStatusGraded, stored.Status)
}

func TestGradeRepositoryRecordFlipsQuizAttemptStatus(t *testing.T) {
	db, repo := setupGradeRepo(t)
	student := seedStudent(t, db, "quiz-graded@academy.test")

	quiz := models.Quiz{Title: "SQL quiz", TargetPhase: models.TargetPhaseOne, TimeLimitMinutes: 30}
	require.NoError(t, db.Create(&quiz).Error)

	submittedAt := time.Now().UTC()
	attempt := models.QuizSubmission{
		QuizID:      quiz.ID,
		StudentID:   student.ID,
		StartedAt:   submittedAt.Add(-20 * time.Minute),
		SubmittedAt: &submittedAt,
		Status:      models.QuizSubmissionStatusSubmitted,
	}
	require.NoError(t, db.Create(&attempt).Error)

	grade := models.Grade{
		StudentID:        student.ID,
		QuizID:           &quiz.ID,
		QuizSubmissionID: &attempt.ID,
		Grade:            9,
		MaxGrade:         10,
		GradedAt:         time.Now().UTC(),
	}
	require.NoError(t, repo.Record(context.Background(), &grade))

	var stored models.QuizSubmission
	require.NoError(t, db.First(&stored, attempt.ID).Error)
	require.Equal(t, models.QuizSubmissionStatusGraded, stored.Status)
}

func TestGradeRepositoryRecordRequiresTarget(t *testing.T) {
	db, repo := setupGradeRepo(t)
	student := seedStudent(t, db, "no-target@academy.test")

	grade := models.Grade{StudentID: student.ID, Grade: 50, MaxGrade: 100, GradedAt: time.Now().UTC()}
	err := repo.Record(context.Background(), &grade)
	require.ErrorIs(t, err, ErrGradeTargetMissing)

	// the transaction must have rolled the grade row back too
	var count int64
	require.NoError(t, db.Model(&models.Grade{}).Count(&count).Error)
	require.EqualValues(t, 0, count)
}

func TestGradeRepositoryListFilters(t *testing.T) {
	db, repo := setupGradeRepo(t)
	alice := seedStudent(t, db, "alice-grades@academy.test")
	bob := seedStudent(t, db, "bob-grades@academy.test")

	assignment := models.Assignment{Title: "CLI tool", TargetPhase: models.TargetPhaseBoth}
	require.NoError(t, db.Create(&assignment).Error)

	for i, student := range []models.Profile{alice, bob} {
		submission := models.Submission{
			AssignmentID: assignment.ID,
			StudentID:    student.ID,
			GithubURL:    "https://github.com/a/b",
			VideoURL:     "https://vimeo.com/1",
			SubmittedAt:  time.Now().UTC(),
			Status:       models.SubmissionStatusPending,
		}
		require.NoError(t, db.Create(&submission).Error)

		grade := models.Grade{
			StudentID:    student.ID,
			AssignmentID: &assignment.ID,
			SubmissionID: &submission.ID,
			Grade:        float64(70 + i),
			MaxGrade:     100,
			GradedAt:     time.Now().UTC().Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, repo.Record(context.Background(), &grade))
	}

	all, err := repo.List(context.Background(), GradeFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)

	mine, err := repo.ListByStudent(context.Background(), alice.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Equal(t, alice.ID, mine[0].StudentID)
	require.Equal(t, 70.0, mine[0].Grade)
}
