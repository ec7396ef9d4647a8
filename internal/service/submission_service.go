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

// ErrSubmissionNotFound indicates the submission was not located.
var ErrSubmissionNotFound = errors.New("submission not found")

// ErrAlreadySubmitted indicates the student already submitted for this item.
var ErrAlreadySubmitted = errors.New("submission already exists")

// ErrNotEligible indicates the content item is not targeted at the student's
// phase.
var ErrNotEligible = errors.New("content not available for this phase")

// SubmissionService covers the assignment submission flow: students hand in
// link-based deliverables, admins list them for review.
type SubmissionService interface {
	Submit(ctx context.Context, studentID uint, payload dto.SubmissionCreateRequest) (dto.SubmissionResponse, error)
	List(ctx context.Context, req dto.SubmissionListRequest) ([]dto.SubmissionResponse, error)
}

type submissionService struct {
	submissions repository.SubmissionRepository
	assignments repository.AssignmentRepository
	profiles    repository.ProfileRepository
	validator   *validator.Validate
	events      EventPublisher
	logger      zerolog.Logger
	now         func() time.Time
}

// NewSubmissionService constructs the submission service.
func NewSubmissionService(submissions repository.SubmissionRepository, assignments repository.AssignmentRepository, profiles repository.ProfileRepository, validate *validator.Validate, events EventPublisher, logger zerolog.Logger) SubmissionService {
	return &submissionService{
		submissions: submissions,
		assignments: assignments,
		profiles:    profiles,
		validator:   validate,
		events:      events,
		logger:      logger.With().Str("component", "submission_service").Logger(),
		now:         time.Now,
	}
}

func (s *submissionService) Submit(ctx context.Context, studentID uint, payload dto.SubmissionCreateRequest) (dto.SubmissionResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.SubmissionResponse{}, err
	}

	assignment, err := s.assignments.GetByID(ctx, payload.AssignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubmissionResponse{}, ErrAssignmentNotFound
		}
		return dto.SubmissionResponse{}, err
	}

	student, err := s.profiles.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubmissionResponse{}, ErrStudentNotFound
		}
		return dto.SubmissionResponse{}, err
	}

	if !assignment.TargetPhase.EligibleFor(student.CurrentPhase()) {
		return dto.SubmissionResponse{}, ErrNotEligible
	}

	exists, err := s.submissions.ExistsForStudent(ctx, assignment.ID, studentID)
	if err != nil {
		return dto.SubmissionResponse{}, err
	}
	if exists {
		return dto.SubmissionResponse{}, ErrAlreadySubmitted
	}

	submission := models.Submission{
		AssignmentID: assignment.ID,
		StudentID:    studentID,
		GithubURL:    payload.GithubURL,
		VideoURL:     payload.VideoURL,
		SubmittedAt:  s.now().UTC(),
		Status:       models.SubmissionStatusPending,
	}

	if err := s.submissions.Create(ctx, &submission); err != nil {
		return dto.SubmissionResponse{}, err
	}

	submission.Assignment = assignment
	submission.Student = student

	observability.SubmissionsTotal().WithLabelValues("assignment").Inc()
	s.publishEvent(ctx, EventSubmissionCreated, map[string]interface{}{
		"kind":          dto.GradeKindAssignment,
		"submission_id": submission.ID,
		"assignment_id": assignment.ID,
		"student_id":    studentID,
	})

	return dto.NewSubmissionResponse(submission), nil
}

func (s *submissionService) List(ctx context.Context, req dto.SubmissionListRequest) ([]dto.SubmissionResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	submissions, err := s.submissions.List(ctx, repository.SubmissionFilter{
		AssignmentID: req.AssignmentID,
		StudentID:    req.StudentID,
		Status:       req.Status,
	})
	if err != nil {
		return nil, err
	}

	return dto.NewSubmissionResponseSlice(submissions), nil
}

func (s *submissionService) publishEvent(ctx context.Context, name string, metadata map[string]interface{}) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, Event{Name: name, Metadata: metadata}); err != nil {
		s.logger.Warn().Err(err).Str("event", name).Msg("failed to publish event")
	}
}
