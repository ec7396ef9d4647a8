package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/edubridge/academy-api/internal/dto"
	"github.com/edubridge/academy-api/internal/models"
	"github.com/edubridge/academy-api/internal/repository"
	"github.com/edubridge/academy-api/internal/service"
	"github.com/edubridge/academy-api/internal/utils"
)

type portalFixture struct {
	db      *gorm.DB
	app     *fiber.App
	grading service.GradingService
}

// setupPortalFixture wires the student routes against real services over an
// in-memory database. Auth middleware is replaced with a locals shim that
// impersonates whichever user the request's X-Test-User header names.
func setupPortalFixture(t *testing.T) *portalFixture {
	t.Helper()

	dsn := fmt.Sprintf("file:portal_handler_%d?mode=memory&cache=shared", time.Now().UnixNano())
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
		&models.Attendance{},
	))

	validate := validator.New(validator.WithRequiredStructEnabled())
	logger := zerolog.Nop()

	profiles := repository.NewProfileRepository(db)
	assignments := repository.NewAssignmentRepository(db)
	quizzes := repository.NewQuizRepository(db)
	projects := repository.NewProjectRepository(db)
	submissions := repository.NewSubmissionRepository(db)
	quizSubmissions := repository.NewQuizSubmissionRepository(db)
	projectSubmissions := repository.NewProjectSubmissionRepository(db)
	grades := repository.NewGradeRepository(db)
	attendance := repository.NewAttendanceRepository(db)

	feedSvc := service.NewStudentFeedService(profiles, assignments, quizzes, projects, submissions, quizSubmissions, projectSubmissions, grades, logger)
	submissionSvc := service.NewSubmissionService(submissions, assignments, profiles, validate, nil, logger)
	quizSubmissionSvc := service.NewQuizSubmissionService(quizSubmissions, quizzes, profiles, validate, nil, logger)
	projectSubmissionSvc := service.NewProjectSubmissionService(projectSubmissions, projects, profiles, validate, nil, logger)
	gradingSvc := service.NewGradingService(grades, submissions, quizSubmissions, projectSubmissions, validate, nil, nil, logger)
	attendanceSvc := service.NewAttendanceService(attendance, profiles, validate, nil, nil, logger)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if raw := c.Get("X-Test-User"); raw != "" {
			var id uint
			_, err := fmt.Sscanf(raw, "%d", &id)
			require.NoError(t, err)
			c.Locals("user_id", id)
			c.Locals("user_role", models.RoleStudent)
		}
		return c.Next()
	})

	portal := NewStudentPortalHandler(feedSvc, submissionSvc, quizSubmissionSvc, projectSubmissionSvc, gradingSvc, attendanceSvc, logger)
	portal.Register(app.Group("/student"))

	return &portalFixture{db: db, app: app, grading: gradingSvc}
}

func (f *portalFixture) seedStudent(t *testing.T, email string, phase models.Phase) models.Profile {
	t.Helper()

	student := models.Profile{
		Email:        email,
		FullName:     "Portal Student",
		Role:         models.RoleStudent,
		Phase:        &phase,
		PasswordHash: "x",
	}
	require.NoError(t, f.db.Create(&student).Error)

	return student
}

func (f *portalFixture) request(t *testing.T, method, target string, userID uint, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("X-Test-User", fmt.Sprintf("%d", userID))
	if body != nil {
		req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	}

	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)

	return resp
}

func decodeEnvelope(t *testing.T, resp *http.Response, data interface{}) utils.APIResponse {
	t.Helper()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var envelope struct {
		Success bool            `json:"success"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &envelope))

	if data != nil && len(envelope.Data) > 0 {
		require.NoError(t, json.Unmarshal(envelope.Data, data))
	}

	return utils.APIResponse{Success: envelope.Success, Message: envelope.Message}
}

func TestStudentPortalFeedScopedToPhase(t *testing.T) {
	f := setupPortalFixture(t)
	alice := f.seedStudent(t, "alice-portal@academy.test", models.PhaseOne)
	bob := f.seedStudent(t, "bob-portal@academy.test", models.PhaseTwo)

	require.NoError(t, f.db.Create(&models.Assignment{Title: "Everyone", TargetPhase: models.TargetPhaseBoth}).Error)
	require.NoError(t, f.db.Create(&models.Assignment{Title: "Phase1 only", TargetPhase: models.TargetPhaseOne}).Error)

	resp := f.request(t, fiber.MethodGet, "/student/feed", alice.ID, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var aliceFeed dto.StudentFeedResponse
	envelope := decodeEnvelope(t, resp, &aliceFeed)
	require.True(t, envelope.Success)
	require.Len(t, aliceFeed.Assignments, 2)

	resp = f.request(t, fiber.MethodGet, "/student/feed", bob.ID, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var bobFeed dto.StudentFeedResponse
	decodeEnvelope(t, resp, &bobFeed)
	require.Len(t, bobFeed.Assignments, 1)
	require.Equal(t, "Everyone", bobFeed.Assignments[0].Assignment.Title)
}

func TestStudentPortalSubmitLifecycle(t *testing.T) {
	f := setupPortalFixture(t)
	student := f.seedStudent(t, "lifecycle@academy.test", models.PhaseOne)

	assignment := models.Assignment{Title: "Deliverable", TargetPhase: models.TargetPhaseOne}
	require.NoError(t, f.db.Create(&assignment).Error)

	payload := dto.SubmissionCreateRequest{
		AssignmentID: assignment.ID,
		GithubURL:    "https://github.com/student/deliverable",
		VideoURL:     "https://vimeo.com/555",
	}

	resp := f.request(t, fiber.MethodPost, "/student/submissions", student.ID, payload)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created dto.SubmissionResponse
	decodeEnvelope(t, resp, &created)
	require.Equal(t, models.SubmissionStatusPending, created.Status)

	// resubmitting the same assignment is a conflict
	resp = f.request(t, fiber.MethodPost, "/student/submissions", student.ID, payload)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)

	// an admin grades it, then the student sees the evaluation
	_, err := f.grading.Grade(context.Background(), dto.GradeCreateRequest{
		Kind:         dto.GradeKindAssignment,
		SubmissionID: created.ID,
		Grade:        95,
		MaxGrade:     100,
		Feedback:     "Strong submission",
	}, service.ActivityActor{ID: 1, Role: "admin"})
	require.NoError(t, err)

	resp = f.request(t, fiber.MethodGet, "/student/grades", student.ID, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var myGrades []dto.GradeResponse
	decodeEnvelope(t, resp, &myGrades)
	require.Len(t, myGrades, 1)
	require.Equal(t, 95.0, myGrades[0].Grade)
	require.Equal(t, "Strong submission", myGrades[0].Feedback)

	resp = f.request(t, fiber.MethodGet, "/student/feed", student.ID, nil)
	var feed dto.StudentFeedResponse
	decodeEnvelope(t, resp, &feed)
	require.Len(t, feed.Assignments, 1)
	require.NotNil(t, feed.Assignments[0].Submission)
	require.Equal(t, models.SubmissionStatusGraded, feed.Assignments[0].Submission.Status)
	require.NotNil(t, feed.Assignments[0].Submission.Grade)
	require.Equal(t, 95.0, feed.Assignments[0].Submission.Grade.Grade)
}

func TestStudentPortalRejectsOutOfPhaseContent(t *testing.T) {
	f := setupPortalFixture(t)
	student := f.seedStudent(t, "wrong-phase@academy.test", models.PhaseTwo)

	assignment := models.Assignment{Title: "Phase1 work", TargetPhase: models.TargetPhaseOne}
	require.NoError(t, f.db.Create(&assignment).Error)

	resp := f.request(t, fiber.MethodPost, "/student/submissions", student.ID, dto.SubmissionCreateRequest{
		AssignmentID: assignment.ID,
		GithubURL:    "https://github.com/student/work",
		VideoURL:     "https://vimeo.com/555",
	})
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	envelope := decodeEnvelope(t, resp, nil)
	require.False(t, envelope.Success)
}

func TestStudentPortalQuizFlow(t *testing.T) {
	f := setupPortalFixture(t)
	student := f.seedStudent(t, "quiz-flow@academy.test", models.PhaseOne)

	quiz := models.Quiz{Title: "Interfaces", TargetPhase: models.TargetPhaseOne, TimeLimitMinutes: 30}
	require.NoError(t, f.db.Create(&quiz).Error)

	resp := f.request(t, fiber.MethodPost, "/student/quizzes/start", student.ID, dto.QuizStartRequest{QuizID: quiz.ID})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var attempt dto.QuizSubmissionResponse
	decodeEnvelope(t, resp, &attempt)
	require.Equal(t, models.QuizSubmissionStatusInProgress, attempt.Status)

	resp = f.request(t, fiber.MethodPost, "/student/quizzes/submit", student.ID, dto.QuizSubmitRequest{
		QuizID:    quiz.ID,
		GithubURL: "https://github.com/student/quiz",
		VideoURL:  "https://vimeo.com/556",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	decodeEnvelope(t, resp, &attempt)
	require.Equal(t, models.QuizSubmissionStatusSubmitted, attempt.Status)

	// a second submit must not roll the attempt back
	resp = f.request(t, fiber.MethodPost, "/student/quizzes/submit", student.ID, dto.QuizSubmitRequest{
		QuizID:    quiz.ID,
		GithubURL: "https://github.com/student/quiz",
		VideoURL:  "https://vimeo.com/556",
	})
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestStudentPortalAttendanceHistory(t *testing.T) {
	f := setupPortalFixture(t)
	student := f.seedStudent(t, "attendance-view@academy.test", models.PhaseOne)

	require.NoError(t, f.db.Create(&models.Attendance{
		StudentID: student.ID,
		Date:      time.Date(2025, time.April, 21, 0, 0, 0, 0, time.UTC),
		Status:    models.AttendanceStatusPresent,
	}).Error)

	resp := f.request(t, fiber.MethodGet, "/student/attendance", student.ID, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var history dto.StudentAttendanceResponse
	decodeEnvelope(t, resp, &history)
	require.Len(t, history.Records, 1)
	require.InDelta(t, 100.0, history.Summary.Rate, 0.001)
}

func TestStudentPortalThrottlesSubmissionBursts(t *testing.T) {
	f := setupPortalFixture(t)
	student := f.seedStudent(t, "burst@academy.test", models.PhaseOne)

	// Invalid payloads bounce off validation with 400, but the limiter's
	// counter still moves. The 21st request within the window is refused.
	for i := 0; i < 20; i++ {
		resp := f.request(t, fiber.MethodPost, "/student/submissions", student.ID, map[string]string{"github_url": "not-a-url"})
		require.NotEqual(t, fiber.StatusTooManyRequests, resp.StatusCode)
	}

	resp := f.request(t, fiber.MethodPost, "/student/submissions", student.ID, map[string]string{"github_url": "not-a-url"})
	require.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
}
