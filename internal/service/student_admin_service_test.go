package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/edubridge/academy-api/internal/dto"
	"github.com/edubridge/academy-api/internal/models"
	"github.com/edubridge/academy-api/internal/repository"
)

func setupStudentAdminService(t *testing.T) (*gorm.DB, StudentAdminService, *stubActivityRecorder, *stubEventPublisher) {
	t.Helper()

	db := openTestDB(t, "student_admin_service", &models.Profile{})

	activity := &stubActivityRecorder{}
	events := &stubEventPublisher{}

	svc := NewStudentAdminService(
		repository.NewProfileRepository(db),
		validator.New(validator.WithRequiredStructEnabled()),
		activity,
		events,
		zerolog.Nop(),
	)
	if concrete, ok := svc.(*studentAdminService); ok {
		concrete.bcryptCost = bcrypt.MinCost
	}

	return db, svc, activity, events
}

func TestStudentAdminServiceProvision(t *testing.T) {
	db, svc, activity, events := setupStudentAdminService(t)

	actor := ActivityActor{ID: 1, Role: "admin"}
	profile, err := svc.Provision(context.Background(), dto.StudentCreateRequest{
		Email:    " NEW.Student@Academy.Test ",
		Password: "sekret1",
		FullName: "  New Student ",
		Phase:    "phase1",
	}, actor)
	require.NoError(t, err)
	require.Equal(t, "new.student@academy.test", profile.Email)
	require.Equal(t, "New Student", profile.FullName)
	require.Equal(t, models.RoleStudent, profile.Role)
	require.NotNil(t, profile.Phase)
	require.Equal(t, models.PhaseOne, *profile.Phase)

	var stored models.Profile
	require.NoError(t, db.First(&stored, profile.ID).Error)
	require.NotEqual(t, "sekret1", stored.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("sekret1")))

	require.Len(t, activity.entries, 1)
	require.Equal(t, "student.provisioned", activity.entries[0].Action)
	require.Len(t, events.events, 1)
	require.Equal(t, EventStudentProvisioned, events.events[0].Name)
}

func TestStudentAdminServiceProvisionRejectsTakenEmail(t *testing.T) {
	_, svc, _, _ := setupStudentAdminService(t)

	payload := dto.StudentCreateRequest{
		Email:    "taken@academy.test",
		Password: "sekret1",
		FullName: "First Owner",
		Phase:    "phase1",
	}

	_, err := svc.Provision(context.Background(), payload, ActivityActor{ID: 1, Role: "admin"})
	require.NoError(t, err)

	payload.FullName = "Second Owner"
	_, err = svc.Provision(context.Background(), payload, ActivityActor{ID: 1, Role: "admin"})
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestStudentAdminServiceUpdatePhase(t *testing.T) {
	db, svc, _, _ := setupStudentAdminService(t)
	student := seedTestStudent(t, db, "promote@academy.test", models.PhaseOne)

	phase := "phase2"
	profile, err := svc.Update(context.Background(), student.ID, dto.StudentUpdateRequest{Phase: &phase}, ActivityActor{ID: 1, Role: "admin"})
	require.NoError(t, err)
	require.NotNil(t, profile.Phase)
	require.Equal(t, models.PhaseTwo, *profile.Phase)
}

func TestStudentAdminServiceUpdateMissing(t *testing.T) {
	_, svc, _, _ := setupStudentAdminService(t)

	name := "Renamed"
	_, err := svc.Update(context.Background(), 404, dto.StudentUpdateRequest{FullName: &name}, ActivityActor{ID: 1, Role: "admin"})
	require.ErrorIs(t, err, ErrStudentNotFound)
}

func TestStudentAdminServiceDelete(t *testing.T) {
	db, svc, _, _ := setupStudentAdminService(t)
	student := seedTestStudent(t, db, "remove@academy.test", models.PhaseOne)

	require.NoError(t, svc.Delete(context.Background(), student.ID, ActivityActor{ID: 1, Role: "admin"}))
	require.ErrorIs(t, svc.Delete(context.Background(), student.ID, ActivityActor{ID: 1, Role: "admin"}), ErrStudentNotFound)
}

func TestStudentAdminServiceListPagination(t *testing.T) {
	db, svc, _, _ := setupStudentAdminService(t)
	seedTestStudent(t, db, "list-a@academy.test", models.PhaseOne)
	seedTestStudent(t, db, "list-b@academy.test", models.PhaseOne)
	seedTestStudent(t, db, "list-c@academy.test", models.PhaseTwo)

	page, err := svc.List(context.Background(), dto.StudentListRequest{Page: 1, PageSize: 2})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	require.EqualValues(t, 3, page.Pagination.TotalItems)
	require.Equal(t, 2, page.Pagination.TotalPages)

	filtered, err := svc.List(context.Background(), dto.StudentListRequest{Phase: "phase2"})
	require.NoError(t, err)
	require.Len(t, filtered.Items, 1)
	require.Equal(t, "list-c@academy.test", filtered.Items[0].Email)
}
