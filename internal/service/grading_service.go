package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"gorm.io/gorm"

	"github.com/edubridge/academy-api/internal/dto"
	"github.com/edubridge/academy-api/internal/models"
	"github.com/edubridge/academy-api/internal/observability"
	"github.com/edubridge/academy-api/internal/repository"
)

// ErrAlreadyGraded indicates the submission already carries a grade.
var ErrAlreadyGraded = errors.New("submission already graded")

// ErrQuizNotSubmitted indicates the quiz attempt has not been handed in yet.
var ErrQuizNotSubmitted = errors.New("quiz attempt not submitted yet")

// GradingService records evaluations. Creating a grade and flipping the parent
// submission to graded is one logical action; the repository performs both
// writes in a single transaction.
type GradingService interface {
	Grade(ctx context.Context, payload dto.GradeCreateRequest, actor ActivityActor) (dto.GradeResponse, error)
	List(ctx context.Context, req dto.GradeListRequest) ([]dto.GradeResponse, error)
	ListByStudent(ctx context.Context, studentID uint) ([]dto.GradeResponse, error)
}

type gradingService struct {
	grades             repository.GradeRepository
	submissions        repository.SubmissionRepository
	quizSubmissions    repository.QuizSubmissionRepository
	projectSubmissions repository.ProjectSubmissionRepository
	validator          *validator.Validate
	activity           ActivityRecorder
	events             EventPublisher
	sanitizer          *bluemonday.Policy
	logger             zerolog.Logger
	now                func() time.Time
}

// NewGradingService constructs the grading service.
func NewGradingService(grades repository.GradeRepository, submissions repository.SubmissionRepository, quizSubmissions repository.QuizSubmissionRepository, projectSubmissions repository.ProjectSubmissionRepository, validate *validator.Validate, activity ActivityRecorder, events EventPublisher, logger zerolog.Logger) GradingService {
	return &gradingService{
		grades:             grades,
		submissions:        submissions,
		quizSubmissions:    quizSubmissions,
		projectSubmissions: projectSubmissions,
		validator:          validate,
		activity:           activity,
		events:             events,
		sanitizer:          bluemonday.StrictPolicy(),
		logger:             logger.With().Str("component", "grading_service").Logger(),
		now:                time.Now,
	}
}

func (s *gradingService) Grade(ctx context.Context, payload dto.GradeCreateRequest, actor ActivityActor) (dto.GradeResponse, error) {
	tracer := otel.Tracer("github.com/edubridge/academy-api/internal/service/grading")
	ctx, span := tracer.Start(ctx, "grading.record")
	span.SetAttributes(
		attribute.String("grading.kind", payload.Kind),
		attribute.Int64("grading.submission_id", int64(payload.SubmissionID)),
		attribute.Int64("grading.actor_id", int64(actor.ID)),
	)
	defer span.End()

	if err := s.validator.Struct(payload); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation_failed")
		return dto.GradeResponse{}, err
	}

	gradedBy := actor.ID
	grade := models.Grade{
		Grade:    payload.Grade,
		MaxGrade: payload.MaxGrade,
		Feedback: strings.TrimSpace(s.sanitizer.Sanitize(payload.Feedback)),
		GradedBy: &gradedBy,
		GradedAt: s.now().UTC(),
	}

	if err := s.resolveTarget(ctx, payload, &grade); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "target_resolution_failed")
		return dto.GradeResponse{}, err
	}

	if err := s.grades.Record(ctx, &grade); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "grade_write_failed")
		return dto.GradeResponse{}, err
	}

	observability.GradesRecordedTotal().WithLabelValues(payload.Kind).Inc()

	s.recordActivity(ctx, actor, payload, grade)
	s.publishEvent(ctx, EventSubmissionGraded, map[string]interface{}{
		"kind":          payload.Kind,
		"submission_id": payload.SubmissionID,
		"student_id":    grade.StudentID,
		"grade":         grade.Grade,
		"max_grade":     grade.MaxGrade,
	})

	span.SetAttributes(attribute.Float64("grading.grade", grade.Grade))

	return dto.NewGradeResponse(grade), nil
}

// resolveTarget loads the submission being graded, rejects repeat grading and
// fills the grade's denormalized references.
func (s *gradingService) resolveTarget(ctx context.Context, payload dto.GradeCreateRequest, grade *models.Grade) error {
	switch payload.Kind {
	case dto.GradeKindAssignment:
		submission, err := s.submissions.GetByID(ctx, payload.SubmissionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSubmissionNotFound
			}
			return err
		}
		if submission.IsGraded() {
			return ErrAlreadyGraded
		}
		grade.StudentID = submission.StudentID
		grade.AssignmentID = &submission.AssignmentID
		grade.SubmissionID = &submission.ID
		return nil

	case dto.GradeKindQuiz:
		attempt, err := s.quizSubmissions.GetByID(ctx, payload.SubmissionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSubmissionNotFound
			}
			return err
		}
		if attempt.IsGraded() {
			return ErrAlreadyGraded
		}
		if attempt.Status != models.QuizSubmissionStatusSubmitted {
			return ErrQuizNotSubmitted
		}
		grade.StudentID = attempt.StudentID
		grade.QuizID = &attempt.QuizID
		grade.QuizSubmissionID = &attempt.ID
		return nil

	case dto.GradeKindProject:
		submission, err := s.projectSubmissions.GetByID(ctx, payload.SubmissionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSubmissionNotFound
			}
			return err
		}
		if submission.IsGraded() {
			return ErrAlreadyGraded
		}
		grade.StudentID = submission.StudentID
		grade.ProjectID = &submission.ProjectID
		grade.ProjectSubmissionID = &submission.ID
		return nil

	default:
		return ErrSubmissionNotFound
	}
}

func (s *gradingService) List(ctx context.Context, req dto.GradeListRequest) ([]dto.GradeResponse, error) {
	grades, err := s.grades.List(ctx, repository.GradeFilter{
		StudentID: req.StudentID,
		GradedBy:  req.GradedBy,
	})
	if err != nil {
		return nil, err
	}

	responses := make([]dto.GradeResponse, 0, len(grades))
	for _, grade := range grades {
		responses = append(responses, dto.NewGradeResponse(grade))
	}

	return responses, nil
}

func (s *gradingService) ListByStudent(ctx context.Context, studentID uint) ([]dto.GradeResponse, error) {
	grades, err := s.grades.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.GradeResponse, 0, len(grades))
	for _, grade := range grades {
		responses = append(responses, dto.NewGradeResponse(grade))
	}

	return responses, nil
}

func (s *gradingService) recordActivity(ctx context.Context, actor ActivityActor, payload dto.GradeCreateRequest, grade models.Grade) {
	if s.activity == nil {
		return
	}
	entityID := payload.SubmissionID
	_, _ = s.activity.Record(ctx, ActivityEntry{
		ActorID:    actor.ID,
		ActorRole:  actor.Role,
		Action:     "submission.graded",
		EntityType: payload.Kind + "_submission",
		EntityID:   &entityID,
		Metadata: map[string]interface{}{
			"student_id": grade.StudentID,
			"grade":      grade.Grade,
			"max_grade":  grade.MaxGrade,
		},
	})
}

func (s *gradingService) publishEvent(ctx context.Context, name string, metadata map[string]interface{}) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, Event{Name: name, Metadata: metadata}); err != nil {
		s.logger.Warn().Err(err).Str("event", name).Msg("failed to publish event")
	}
}
