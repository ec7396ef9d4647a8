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

// ErrQuizAttemptNotFound indicates no attempt exists for the quiz and student.
var ErrQuizAttemptNotFound = errors.New("quiz attempt not found")

// ErrQuizAlreadySubmitted indicates the attempt was already handed in.
var ErrQuizAlreadySubmitted = errors.New("quiz already submitted")

// QuizSubmissionService covers the quiz attempt lifecycle. Starting is
// optional: submitting without a prior start creates the attempt already in
// submitted state.
type QuizSubmissionService interface {
	Start(ctx context.Context, studentID uint, payload dto.QuizStartRequest) (dto.QuizSubmissionResponse, error)
	Submit(ctx context.Context, studentID uint, payload dto.QuizSubmitRequest) (dto.QuizSubmissionResponse, error)
	List(ctx context.Context, req dto.QuizSubmissionListRequest) ([]dto.QuizSubmissionResponse, error)
}

type quizSubmissionService struct {
	attempts  repository.QuizSubmissionRepository
	quizzes   repository.QuizRepository
	profiles  repository.ProfileRepository
	validator *validator.Validate
	events    EventPublisher
	logger    zerolog.Logger
	now       func() time.Time
}

// NewQuizSubmissionService constructs the quiz attempt service.
func NewQuizSubmissionService(attempts repository.QuizSubmissionRepository, quizzes repository.QuizRepository, profiles repository.ProfileRepository, validate *validator.Validate, events EventPublisher, logger zerolog.Logger) QuizSubmissionService {
	return &quizSubmissionService{
		attempts:  attempts,
		quizzes:   quizzes,
		profiles:  profiles,
		validator: validate,
		events:    events,
		logger:    logger.With().Str("component", "quiz_submission_service").Logger(),
		now:       time.Now,
	}
}

func (s *quizSubmissionService) Start(ctx context.Context, studentID uint, payload dto.QuizStartRequest) (dto.QuizSubmissionResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.QuizSubmissionResponse{}, err
	}

	quiz, student, err := s.lookup(ctx, payload.QuizID, studentID)
	if err != nil {
		return dto.QuizSubmissionResponse{}, err
	}

	if _, err := s.attempts.GetByQuizAndStudent(ctx, quiz.ID, studentID); err == nil {
		return dto.QuizSubmissionResponse{}, ErrAlreadySubmitted
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.QuizSubmissionResponse{}, err
	}

	attempt := models.QuizSubmission{
		QuizID:    quiz.ID,
		StudentID: studentID,
		StartedAt: s.now().UTC(),
		Status:    models.QuizSubmissionStatusInProgress,
	}

	if err := s.attempts.Create(ctx, &attempt); err != nil {
		return dto.QuizSubmissionResponse{}, err
	}

	attempt.Quiz = quiz
	attempt.Student = student

	return dto.NewQuizSubmissionResponse(attempt), nil
}

func (s *quizSubmissionService) Submit(ctx context.Context, studentID uint, payload dto.QuizSubmitRequest) (dto.QuizSubmissionResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.QuizSubmissionResponse{}, err
	}

	quiz, student, err := s.lookup(ctx, payload.QuizID, studentID)
	if err != nil {
		return dto.QuizSubmissionResponse{}, err
	}

	submittedAt := s.now().UTC()
	githubURL := payload.GithubURL
	videoURL := payload.VideoURL

	attempt, err := s.attempts.GetByQuizAndStudent(ctx, quiz.ID, studentID)
	switch {
	case err == nil:
		if !attempt.CanTransitionTo(models.QuizSubmissionStatusSubmitted) {
			return dto.QuizSubmissionResponse{}, ErrQuizAlreadySubmitted
		}
		attempt.GithubURL = &githubURL
		attempt.VideoURL = &videoURL
		attempt.SubmittedAt = &submittedAt
		attempt.Status = models.QuizSubmissionStatusSubmitted
		if err := s.attempts.Update(ctx, &attempt); err != nil {
			return dto.QuizSubmissionResponse{}, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		attempt = models.QuizSubmission{
			QuizID:      quiz.ID,
			StudentID:   studentID,
			GithubURL:   &githubURL,
			VideoURL:    &videoURL,
			StartedAt:   submittedAt,
			SubmittedAt: &submittedAt,
			Status:      models.QuizSubmissionStatusSubmitted,
		}
		if err := s.attempts.Create(ctx, &attempt); err != nil {
			return dto.QuizSubmissionResponse{}, err
		}
	default:
		return dto.QuizSubmissionResponse{}, err
	}

	attempt.Quiz = quiz
	attempt.Student = student

	observability.SubmissionsTotal().WithLabelValues("quiz").Inc()
	s.publishEvent(ctx, EventSubmissionCreated, map[string]interface{}{
		"kind":          dto.GradeKindQuiz,
		"submission_id": attempt.ID,
		"quiz_id":       quiz.ID,
		"student_id":    studentID,
	})

	return dto.NewQuizSubmissionResponse(attempt), nil
}

func (s *quizSubmissionService) List(ctx context.Context, req dto.QuizSubmissionListRequest) ([]dto.QuizSubmissionResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	attempts, err := s.attempts.List(ctx, repository.QuizSubmissionFilter{
		QuizID:    req.QuizID,
		StudentID: req.StudentID,
		Status:    req.Status,
	})
	if err != nil {
		return nil, err
	}

	return dto.NewQuizSubmissionResponseSlice(attempts), nil
}

func (s *quizSubmissionService) lookup(ctx context.Context, quizID, studentID uint) (models.Quiz, models.Profile, error) {
	quiz, err := s.quizzes.GetByID(ctx, quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Quiz{}, models.Profile{}, ErrQuizNotFound
		}
		return models.Quiz{}, models.Profile{}, err
	}

	student, err := s.profiles.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Quiz{}, models.Profile{}, ErrStudentNotFound
		}
		return models.Quiz{}, models.Profile{}, err
	}

	if !quiz.TargetPhase.EligibleFor(student.CurrentPhase()) {
		return models.Quiz{}, models.Profile{}, ErrNotEligible
	}

	return quiz, student, nil
}

func (s *quizSubmissionService) publishEvent(ctx context.Context, name string, metadata map[string]interface{}) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, Event{Name: name, Metadata: metadata}); err != nil {
		s.logger.Warn().Err(err).Str("event", name).Msg("failed to publish event")
	}
}
