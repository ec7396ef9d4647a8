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

func setupAssignmentService(t *testing.T) (*gorm.DB, AssignmentService, *stubActivityRecorder) {
	t.Helper()

	db := openTestDB(t, "assignment_service", &models.Assignment{})

	activity := &stubActivityRecorder{}
	svc := NewAssignmentService(
		repository.NewAssignmentRepository(db),
		validator.New(validator.WithRequiredStructEnabled()),
		activity,
		zerolog.Nop(),
	)

	return db, svc, activity
}

func TestAssignmentServiceCreate(t *testing.T) {
	db, svc, activity := setupAssignmentService(t)

	due := "2025-05-01T17:00:00Z"
	actor := ActivityActor{ID: 9, Role: "admin"}
	response, err := svc.Create(context.Background(), dto.AssignmentCreateRequest{
		Title:        "  Build a REST API  ",
		Description:  " Ship a small service ",
		Instructions: `Use <b>Fiber</b>.<script>alert("x")</script>`,
		TargetPhase:  "phase1",
		DueDate:      &due,
		DocumentURL:  "https://docs.academy.test/rest.pdf",
	}, actor)
	require.NoError(t, err)
	require.Equal(t, "Build a REST API", response.Title)
	require.Equal(t, "Ship a small service", response.Description)
	require.Equal(t, models.TargetPhase("phase1"), response.TargetPhase)
	require.Contains(t, response.Instructions, "<b>Fiber</b>")
	require.NotContains(t, response.Instructions, "<script>")
	require.NotNil(t, response.DueDate)
	require.WithinDuration(t, time.Date(2025, time.May, 1, 17, 0, 0, 0, time.UTC), *response.DueDate, time.Second)
	require.NotNil(t, response.CreatedBy)
	require.Equal(t, actor.ID, *response.CreatedBy)

	var stored models.Assignment
	require.NoError(t, db.First(&stored, response.ID).Error)
	require.Equal(t, "Build a REST API", stored.Title)

	require.Len(t, activity.entries, 1)
	require.Equal(t, "assignment.created", activity.entries[0].Action)
	require.Equal(t, "assignment", activity.entries[0].EntityType)
}

func TestAssignmentServiceCreateRejectsMalformedDueDate(t *testing.T) {
	_, svc, _ := setupAssignmentService(t)

	due := "01-05-2025"
	_, err := svc.Create(context.Background(), dto.AssignmentCreateRequest{
		Title:       "Broken date",
		Description: "desc text",
		TargetPhase: "both",
		DueDate:     &due,
	}, ActivityActor{ID: 9, Role: "admin"})
	require.Error(t, err)

	var validationErrors validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrors)
}

func TestAssignmentServiceUpdatePartial(t *testing.T) {
	_, svc, activity := setupAssignmentService(t)

	created, err := svc.Create(context.Background(), dto.AssignmentCreateRequest{
		Title:       "Original title",
		Description: "Original description",
		TargetPhase: "phase1",
	}, ActivityActor{ID: 9, Role: "admin"})
	require.NoError(t, err)

	title := "Updated title"
	phase := "both"
	updated, err := svc.Update(context.Background(), created.ID, dto.AssignmentUpdateRequest{
		Title:       &title,
		TargetPhase: &phase,
	}, ActivityActor{ID: 9, Role: "admin"})
	require.NoError(t, err)
	require.Equal(t, "Updated title", updated.Title)
	require.Equal(t, models.TargetPhaseBoth, updated.TargetPhase)
	require.Equal(t, "Original description", updated.Description)

	require.Len(t, activity.entries, 2)
	require.Equal(t, "assignment.updated", activity.entries[1].Action)
}

func TestAssignmentServiceGetAndDeleteMissing(t *testing.T) {
	_, svc, _ := setupAssignmentService(t)

	_, err := svc.Get(context.Background(), 808)
	require.ErrorIs(t, err, ErrAssignmentNotFound)

	err = svc.Delete(context.Background(), 808, ActivityActor{ID: 9, Role: "admin"})
	require.ErrorIs(t, err, ErrAssignmentNotFound)
}
