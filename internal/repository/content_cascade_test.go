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

// setupCascadeDB opens sqlite with foreign-key enforcement on, so the
// ON DELETE CASCADE constraints actually fire like they do on postgres.
func setupCascadeDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:cascade_%d?mode=memory&cache=shared&_foreign_keys=1", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Profile{},
		&models.Assignment{},
		&models.Quiz{},
		&models.Project{},
		&models.Submission{},
		&models.QuizSubmission{},
		&models.ProjectSubmission{},
		&models.Grade{},
	))

	return db
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()

	var count int64
	require.NoError(t, db.Model(model).Count(&count).Error)
	return count
}

func TestAssignmentDeleteCascadesToSubmissionsAndGrades(t *testing.T) {
	db := setupCascadeDB(t)
	repo := NewAssignmentRepository(db)
	student := seedStudent(t, db, "cascade.assignment@academy.test")

	assignment := models.Assignment{Title: "Doomed homework", TargetPhase: models.TargetPhaseBoth}
	require.NoError(t, db.Create(&assignment).Error)

	submission := models.Submission{
		AssignmentID: assignment.ID,
		StudentID:    student.ID,
		GithubURL:    "https://github.com/student/doomed",
		VideoURL:     "https://videos.academy.test/doomed",
		SubmittedAt:  time.Now().UTC(),
		Status:       models.SubmissionStatusGraded,
	}
	require.NoError(t, db.Create(&submission).Error)

	grade := models.Grade{
		StudentID:    student.ID,
		AssignmentID: &assignment.ID,
		SubmissionID: &submission.ID,
		Grade:        80,
		MaxGrade:     100,
		GradedAt:     time.Now().UTC(),
	}
	require.NoError(t, db.Create(&grade).Error)

	require.NoError(t, repo.Delete(context.Background(), assignment.ID))

	require.EqualValues(t, 0, countRows(t, db, &models.Submission{}))
	require.EqualValues(t, 0, countRows(t, db, &models.Grade{}))
}

func TestQuizDeleteCascadesToAttemptsAndGrades(t *testing.T) {
	db := setupCascadeDB(t)
	repo := NewQuizRepository(db)
	student := seedStudent(t, db, "cascade.quiz@academy.test")

	quiz := models.Quiz{Title: "Doomed quiz", TargetPhase: models.TargetPhaseBoth, TimeLimitMinutes: 30}
	require.NoError(t, db.Create(&quiz).Error)

	now := time.Now().UTC()
	attempt := models.QuizSubmission{
		QuizID:      quiz.ID,
		StudentID:   student.ID,
		StartedAt:   now,
		SubmittedAt: &now,
		Status:      models.QuizSubmissionStatusGraded,
	}
	require.NoError(t, db.Create(&attempt).Error)

	grade := models.Grade{
		StudentID:        student.ID,
		QuizID:           &quiz.ID,
		QuizSubmissionID: &attempt.ID,
		Grade:            70,
		MaxGrade:         100,
		GradedAt:         now,
	}
	require.NoError(t, db.Create(&grade).Error)

	require.NoError(t, repo.Delete(context.Background(), quiz.ID))

	require.EqualValues(t, 0, countRows(t, db, &models.QuizSubmission{}))
	require.EqualValues(t, 0, countRows(t, db, &models.Grade{}))
}

func TestProjectDeleteCascadesToSubmissionsAndGrades(t *testing.T) {
	db := setupCascadeDB(t)
	repo := NewProjectRepository(db)
	student := seedStudent(t, db, "cascade.project@academy.test")

	project := models.Project{Title: "Doomed capstone", TargetPhase: models.TargetPhaseBoth}
	require.NoError(t, db.Create(&project).Error)

	submission := models.ProjectSubmission{
		ProjectID:   project.ID,
		StudentID:   student.ID,
		GithubURL:   "https://github.com/student/doomed-capstone",
		VideoURL:    "https://videos.academy.test/doomed-capstone",
		SubmittedAt: time.Now().UTC(),
		Status:      models.SubmissionStatusGraded,
	}
	require.NoError(t, db.Create(&submission).Error)

	grade := models.Grade{
		StudentID:           student.ID,
		ProjectID:           &project.ID,
		ProjectSubmissionID: &submission.ID,
		Grade:               90,
		MaxGrade:            100,
		GradedAt:            time.Now().UTC(),
	}
	require.NoError(t, db.Create(&grade).Error)

	require.NoError(t, repo.Delete(context.Background(), project.ID))

	require.EqualValues(t, 0, countRows(t, db, &models.ProjectSubmission{}))
	require.EqualValues(t, 0, countRows(t, db, &models.Grade{}))
}
