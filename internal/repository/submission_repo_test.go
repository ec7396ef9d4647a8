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

func setupSubmissionRepo(t *testing.T) (*gorm.DB, SubmissionRepository) {
	t.Helper()

	dsn := fmt.Sprintf("file:submission_repo_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Profile{}, &models.Assignment{}, &models.Submission{}))

	return db, NewSubmissionRepository(db)
}

func seedAssignment(t *testing.T, db *gorm.DB, title string, phase models.TargetPhase) models.Assignment {
	t.Helper()

	assignment := models.Assignment{Title: title, Description: "desc", TargetPhase: phase}
	require.NoError(t, db.Create(&assignment).Error)

	return assignment
}

func TestSubmissionRepositoryUniquePerAssignmentAndStudent(t *testing.T) {
	db, repo := setupSubmissionRepo(t)
	student := seedStudent(t, db, "unique@academy.test")
	assignment := seedAssignment(t, db, "REST API", models.TargetPhaseBoth)

	first := models.Submission{
		AssignmentID: assignment.ID,
		StudentID:    student.ID,
		GithubURL:    "https://github.com/a/b",
		VideoURL:     "https://vimeo.com/1",
		SubmittedAt:  time.Now().UTC(),
		Status:       models.SubmissionStatusPending,
	}
	require.NoError(t, repo.Create(context.Background(), &first))

	second := first
	second.ID = 0
	require.Error(t, repo.Create(context.Background(), &second))

	exists, err := repo.ExistsForStudent(context.Background(), assignment.ID, student.ID)
	require.NoError(t, err)
	require.True(t, exists)

	exists, err = repo.ExistsForStudent(context.Background(), assignment.ID, student.ID+100)
	require.NoError(t, err)
	require.False(t, exists)
}

func TestSubmissionRepositoryListFilters(t *testing.T) {
	db, repo := setupSubmissionRepo(t)
	alice := seedStudent(t, db, "alice-subs@academy.test")
	bob := seedStudent(t, db, "bob-subs@academy.test")
	assignment := seedAssignment(t, db, "Worker pool", models.TargetPhaseBoth)

	now := time.Now().UTC()
	for i, student := range []models.Profile{alice, bob} {
		submission := models.Submission{
			AssignmentID: assignment.ID,
			StudentID:    student.ID,
			GithubURL:    "https://github.com/a/b",
			VideoURL:     "https://vimeo.com/1",
			SubmittedAt:  now.Add(time.Duration(i) * time.Minute),
			Status:       models.SubmissionStatusPending,
		}
		require.NoError(t, repo.Create(context.Background(), &submission))
	}

	all, err := repo.List(context.Background(), SubmissionFilter{AssignmentID: &assignment.ID})
	require.NoError(t, err)
	require.Len(t, all, 2)
	// newest first
	require.Equal(t, bob.ID, all[0].StudentID)
	require.Equal(t, assignment.Title, all[0].Assignment.Title)

	status := models.SubmissionStatusGraded
	graded, err := repo.List(context.Background(), SubmissionFilter{Status: &status})
	require.NoError(t, err)
	require.Empty(t, graded)

	mine, err := repo.List(context.Background(), SubmissionFilter{StudentID: &alice.ID})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Equal(t, alice.Email, mine[0].Student.Email)
}
