package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/edubridge/academy-api/internal/dto"
	"github.com/edubridge/academy-api/internal/models"
	"github.com/edubridge/academy-api/internal/observability"
	"github.com/edubridge/academy-api/internal/repository"
)

// ProjectSubmissionService covers the project submission flow.
type ProjectSubmissionService interface {
	Submit(ctx context.Context, studentID uint, payload dto.ProjectSubmissionCreateRequest) (dto.ProjectSubmissionResponse, error)
	List(ctx context.Context, req dto.ProjectSubmissionListRequest) ([]dto.ProjectSubmissionResponse, error)
}

type projectSubmissionService struct {
	submissions repository.ProjectSubmissionRepository
	projects    repository.ProjectRepository
	profiles    repository.ProfileRepository
	validator   *validator.Validate
	events      EventPublisher
	logger      zerolog.Logger
	now         func() time.Time
}

// NewProjectSubmissionService constructs the project submission service.
func NewProjectSubmissionService(submissions repository.ProjectSubmissionRepository, projects repository.ProjectRepository, profiles repository.ProfileRepository, validate *validator.Validate, events EventPublisher, logger zerolog.Logger) ProjectSubmissionService {
	return &projectSubmissionService{
		submissions: submissions,
		projects:    projects,
		profiles:    profiles,
		validator:   validate,
		events:      events,
		logger:      logger.With().Str("component", "project_submission_service").Logger(),
		now:         time.Now,
	}
}

func (s *projectSubmissionService) Submit(ctx context.Context, studentID uint, payload dto.ProjectSubmissionCreateRequest) (dto.ProjectSubmissionResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ProjectSubmissionResponse{}, err
	}

	project, err := s.projects.GetByID(ctx, payload.ProjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ProjectSubmissionResponse{}, ErrProjectNotFound
		}
		return dto.ProjectSubmissionResponse{}, err
	}

	student, err := s.profiles.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ProjectSubmissionResponse{}, ErrStudentNotFound
		}
		return dto.ProjectSubmissionResponse{}, err
	}

	if !project.TargetPhase.EligibleFor(student.CurrentPhase()) {
		return dto.ProjectSubmissionResponse{}, ErrNotEligible
	}

	exists, err := s.submissions.ExistsForStudent(ctx, project.ID, studentID)
	if err != nil {
		return dto.ProjectSubmissionResponse{}, err
	}
	if exists {
		return dto.ProjectSubmissionResponse{}, ErrAlreadySubmitted
	}

	submission := models.ProjectSubmission{
		ProjectID:   project.ID,
		StudentID:   studentID,
		GithubURL:   payload.GithubURL,
		VideoURL:    payload.VideoURL,
		SubmittedAt: s.now().UTC(),
		Status:      models.SubmissionStatusPending,
	}

	if err := s.submissions.Create(ctx, &submission); err != nil {
		return dto.ProjectSubmissionResponse{}, err
	}

	submission.Project = project
	submission.Student = student

	observability.SubmissionsTotal().WithLabelValues("project").Inc()
	s.publishEvent(ctx, EventSubmissionCreated, map[string]interface{}{
		"kind":          dto.GradeKindProject,
		"submission_id": submission.ID,
		"project_id":    project.ID,
		"student_id":    studentID,
	})

	return dto.NewProjectSubmissionResponse(submission), nil
}

func (s *projectSubmissionService) List(ctx context.Context, req dto.ProjectSubmissionListRequest) ([]dto.ProjectSubmissionResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	submissions, err := s.submissions.List(ctx, repository.ProjectSubmissionFilter{
		ProjectID: req.ProjectID,
		StudentID: req.StudentID,
		Status:    req.Status,
	})
	if err != nil {
		return nil, err
	}

	return dto.NewProjectSubmissionResponseSlice(submissions), nil
}

func (s *projectSubmissionService) publishEvent(ctx context.Context, name string, metadata map[string]interface{}) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, Event{Name: name, Metadata: metadata}); err != nil {
		s.logger.Warn().Err(err).Str("event", name).Msg("failed to publish event")
	}
}
