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

func setupAssignmentRepo(t *testing.T) (*gorm.DB, AssignmentRepository) {
	t.Helper()

	dsn := fmt.Sprintf("file:assignment_repo_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Assignment{}))

	return db, NewAssignmentRepository(db)
}

func TestAssignmentRepositoryListEligibleByPhase(t *testing.T) {
	db, repo := setupAssignmentRepo(t)

	for _, spec := range []struct {
		title string
		phase models.TargetPhase
	}{
		{"Shared kickoff", models.TargetPhaseBoth},
		{"Fundamentals drill", models.TargetPhaseOne},
		{"Capstone prep", models.TargetPhaseTwo},
	} {
		assignment := models.Assignment{Title: spec.title, TargetPhase: spec.phase}
		require.NoError(t, db.Create(&assignment).Error)
	}

	phase1, err := repo.ListEligible(context.Background(), models.PhaseOne)
	require.NoError(t, err)
	require.Len(t, phase1, 2)
	for _, assignment := range phase1 {
		require.NotEqual(t, models.TargetPhaseTwo, assignment.TargetPhase)
	}

	phase2, err := repo.ListEligible(context.Background(), models.PhaseTwo)
	require.NoError(t, err)
	require.Len(t, phase2, 2)
	for _, assignment := range phase2 {
		require.NotEqual(t, models.TargetPhaseOne, assignment.TargetPhase)
	}
}

func TestAssignmentRepositoryDeleteMissing(t *testing.T) {
	_, repo := setupAssignmentRepo(t)

	err := repo.Delete(context.Background(), 12345)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
